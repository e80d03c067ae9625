package config

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// ConfigFileNames are looked up by FindConfig, in order.
var ConfigFileNames = []string{"ftdc.yaml", "ftdc.yml"}

// Options represents the top-level ftdc.yaml configuration.
type Options struct {
	// Root is the id of the document to compile.
	Root string `yaml:"root"`

	// Documents lists YAML-encoded AST files (relative to ftdc.yaml).
	// The document id of each file is its base name without extension
	// unless the file declares one.
	Documents []string `yaml:"documents,omitempty"`

	// Device selects which side of responsive values is reduced.
	// One of "desktop" (default) or "mobile".
	Device string `yaml:"device,omitempty"`

	// DarkMode is the initial value of ftd#dark-mode.
	DarkMode bool `yaml:"dark-mode,omitempty"`

	// Locale is a BCP-47 tag used for number formatting. Defaults to "en".
	Locale string `yaml:"locale,omitempty"`

	// Breakpoint is the initial mobile breakpoint width in px. Defaults to 768.
	Breakpoint int64 `yaml:"breakpoint,omitempty"`

	// Output is one of "json" (default), "yaml" or "tree".
	Output string `yaml:"output,omitempty"`

	// Verbose enables driver logging.
	Verbose bool `yaml:"verbose,omitempty"`

	dir string
}

// DefaultOptions returns options with every default applied.
func DefaultOptions() *Options {
	opts := &Options{}
	opts.setDefaults()
	return opts
}

// LoadConfig reads and parses an ftdc.yaml file.
func LoadConfig(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return ParseConfig(data, path)
}

// ParseConfig parses ftdc.yaml content from bytes.
// The path argument is used for error messages and to resolve Documents.
func ParseConfig(data []byte, path string) (*Options, error) {
	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := opts.validate(path); err != nil {
		return nil, err
	}
	opts.setDefaults()
	opts.dir = filepath.Dir(path)
	return &opts, nil
}

// FindConfig searches for ftdc.yaml starting from dir and walking up
// to parent directories. Returns an empty path and nil error if not found.
func FindConfig(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	for {
		for _, name := range ConfigFileNames {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// DocumentPaths returns Documents resolved against the config file directory.
func (o *Options) DocumentPaths() []string {
	paths := make([]string, 0, len(o.Documents))
	for _, doc := range o.Documents {
		if filepath.IsAbs(doc) || o.dir == "" {
			paths = append(paths, doc)
			continue
		}
		paths = append(paths, filepath.Join(o.dir, doc))
	}
	return paths
}

// Dir returns the directory of the loaded config file, or "".
func (o *Options) Dir() string {
	return o.dir
}

// Validate checks options assembled outside ParseConfig, such as command
// line overrides. source names them in errors.
func (o *Options) Validate(source string) error {
	return o.validate(source)
}

// IsMobile reports whether responsive values reduce to their mobile side.
func (o *Options) IsMobile() bool {
	return o.Device == "mobile"
}

// LanguageTag returns the parsed locale.
func (o *Options) LanguageTag() language.Tag {
	tag, err := language.Parse(o.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

func (o *Options) validate(path string) error {
	switch o.Device {
	case "", "desktop", "mobile":
	default:
		return fmt.Errorf("%s: device must be desktop or mobile, got %q", path, o.Device)
	}

	switch o.Output {
	case "", "json", "yaml", "tree":
	default:
		return fmt.Errorf("%s: output must be json, yaml or tree, got %q", path, o.Output)
	}

	if o.Locale != "" {
		if _, err := language.Parse(o.Locale); err != nil {
			return fmt.Errorf("%s: invalid locale %q: %w", path, o.Locale, err)
		}
	}

	if o.Breakpoint < 0 {
		return fmt.Errorf("%s: breakpoint must not be negative", path)
	}

	seen := make(map[string]bool)
	for i, doc := range o.Documents {
		if doc == "" {
			return fmt.Errorf("%s: documents[%d]: empty path", path, i)
		}
		if seen[doc] {
			return fmt.Errorf("%s: documents[%d]: %s listed twice", path, i, doc)
		}
		seen[doc] = true
	}
	return nil
}

func (o *Options) setDefaults() {
	if o.Device == "" {
		o.Device = "desktop"
	}
	if o.Locale == "" {
		o.Locale = "en"
	}
	if o.Breakpoint == 0 {
		o.Breakpoint = 768
	}
	if o.Output == "" {
		o.Output = "json"
	}
}
