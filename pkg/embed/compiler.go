package ftdc

import (
	"io"
	"log"

	"github.com/pkg/errors"

	"github.com/funvibe/ftdc/internal/analyzer"
	"github.com/funvibe/ftdc/internal/config"
	"github.com/funvibe/ftdc/internal/dependencies"
	"github.com/funvibe/ftdc/internal/diagnostics"
	"github.com/funvibe/ftdc/internal/elements"
	"github.com/funvibe/ftdc/internal/executor"
	"github.com/funvibe/ftdc/internal/modules"
	"github.com/funvibe/ftdc/internal/pipeline"
)

// Document is a compiled root document: the executed element tree, its
// metadata and the variable dependency map.
type Document = elements.Document

// Options configures a Compiler. See config.Options for the fields.
type Options = config.Options

// Compiler compiles YAML-encoded ftd documents. Documents are registered
// with AddSource or AddFile, or found under the search directories, and
// stay cached across Compile calls.
type Compiler struct {
	opts   *config.Options
	loader *modules.Loader
	logger *log.Logger
}

// New creates a compiler. A nil opts uses the defaults.
func New(opts *Options, searchDirs ...string) *Compiler {
	if opts == nil {
		opts = config.DefaultOptions()
	}
	return &Compiler{
		opts:   opts,
		loader: modules.NewLoader(searchDirs...),
		logger: log.New(io.Discard, "", 0),
	}
}

// SetLogger routes driver logging to l. Nil silences it.
func (c *Compiler) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	c.logger = l
}

// Options returns the options the compiler was created with.
func (c *Compiler) Options() *Options {
	return c.opts
}

// AddSource registers the YAML AST of document id.
func (c *Compiler) AddSource(id string, data []byte) {
	c.loader.AddSource(id, data)
}

// AddFile parses a YAML AST file and returns its document id.
func (c *Compiler) AddFile(path string) (string, error) {
	mod, err := c.loader.LoadFile(path)
	if err != nil {
		return "", errors.Wrap(err, "loading document")
	}
	return mod.ID, nil
}

// Compile analyzes, executes and collects the dependencies of document
// rootID. The first error aborts compilation.
func (c *Compiler) Compile(rootID string) (*Document, error) {
	ctx := pipeline.NewPipelineContext(c.opts, c.loader, rootID, c.logger)
	ctx = pipeline.New(
		&analyzer.SemanticAnalyzerProcessor{},
		&executor.ExecutorProcessor{},
		&dependencies.DependencyProcessor{},
	).Run(ctx)
	if ctx.Failed() {
		return nil, errors.Wrapf(ctx.Errors[0], "compiling %s", rootID)
	}

	doc := ctx.Document
	fp, err := Fingerprint(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "fingerprinting %s", rootID)
	}
	doc.Fingerprint = fp
	c.logger.Printf("compiled %s (%s)", rootID, fp)
	return doc, nil
}

// ErrorKind returns the diagnostic kind of err, such as "ParseError", or
// "" when err does not come from a document.
func ErrorKind(err error) string {
	kind, ok := diagnostics.KindOf(err)
	if !ok {
		return ""
	}
	return kind.String()
}
