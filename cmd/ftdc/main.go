package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"

	"github.com/funvibe/ftdc/internal/config"
	ftdc "github.com/funvibe/ftdc/pkg/embed"
)

const usage = `Usage: ftdc [flags] [document.ftd.yaml ...]

Compiles YAML-encoded ftd documents and prints the root document.
Without -config, ftdc.yaml is looked up from the current directory upwards.

Flags:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ftdc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	configPath := fs.String("config", "", "path to ftdc.yaml")
	root := fs.String("root", "", "id of the document to compile (default: first document)")
	device := fs.String("device", "", "desktop or mobile")
	dark := fs.Bool("dark", false, "compile with ftd#dark-mode set")
	locale := fs.String("locale", "", "BCP-47 locale for number formatting")
	breakpoint := fs.Int64("breakpoint", 0, "mobile breakpoint width in px")
	output := fs.String("o", "", "output format: json, yaml or tree")
	verbose := fs.Bool("v", false, "log compilation steps to stderr")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	opts, err := loadOptions(*configPath)
	if err != nil {
		report(stderr, err)
		return 1
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "root":
			opts.Root = *root
		case "device":
			opts.Device = *device
		case "dark":
			opts.DarkMode = *dark
		case "locale":
			opts.Locale = *locale
		case "breakpoint":
			opts.Breakpoint = *breakpoint
		case "o":
			opts.Output = *output
		case "v":
			opts.Verbose = *verbose
		}
	})
	if err := opts.Validate("command line"); err != nil {
		report(stderr, err)
		return 2
	}

	searchDir := opts.Dir()
	if searchDir == "" {
		searchDir = "."
	}
	c := ftdc.New(opts, searchDir)
	if opts.Verbose {
		c.SetLogger(log.New(stderr, "ftdc: ", log.LstdFlags))
	}

	paths := append(opts.DocumentPaths(), fs.Args()...)
	for _, path := range paths {
		id, err := c.AddFile(path)
		if err != nil {
			report(stderr, err)
			return 1
		}
		if opts.Root == "" {
			opts.Root = id
		}
	}
	if opts.Root == "" {
		fs.Usage()
		return 2
	}

	doc, err := c.Compile(opts.Root)
	if err != nil {
		report(stderr, err)
		return 1
	}
	out, err := ftdc.Marshal(doc, opts.Output)
	if err != nil {
		report(stderr, err)
		return 1
	}
	if _, err := stdout.Write(out); err != nil {
		report(stderr, errors.Wrap(err, "writing output"))
		return 1
	}
	return 0
}

func loadOptions(path string) (*config.Options, error) {
	if path == "" {
		found, err := config.FindConfig(".")
		if err != nil {
			return nil, err
		}
		if found == "" {
			return config.DefaultOptions(), nil
		}
		path = found
	}
	return config.LoadConfig(path)
}

// report prints err, in red when stderr is a terminal.
func report(w io.Writer, err error) {
	msg := "error: " + err.Error()
	if kind := ftdc.ErrorKind(err); kind != "" {
		msg = fmt.Sprintf("error[%s]: %s", kind, err)
	}
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		msg = "\033[31m" + msg + "\033[0m"
	}
	fmt.Fprintln(w, msg)
}
