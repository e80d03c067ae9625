package pipeline

import (
	"io"
	"log"

	"github.com/funvibe/ftdc/internal/config"
	"github.com/funvibe/ftdc/internal/elements"
	"github.com/funvibe/ftdc/internal/modules"
	"github.com/funvibe/ftdc/internal/symbols"
)

// Processor is one stage of the compilation pipeline.
type Processor interface {
	Process(ctx *PipelineContext) *PipelineContext
}

// ProcessorFunc adapts a function to Processor.
type ProcessorFunc func(ctx *PipelineContext) *PipelineContext

func (f ProcessorFunc) Process(ctx *PipelineContext) *PipelineContext { return f(ctx) }

// PipelineContext carries the state of one compilation between stages.
type PipelineContext struct {
	Options *config.Options
	Loader  *modules.Loader
	Logger  *log.Logger
	RootID  string

	// Set by analysis.
	Instructions []*symbols.Component
	Symbols      *symbols.SymbolTable
	Constants    *symbols.Interner
	UsedModules  []string

	// Set by execution.
	Root     elements.Element
	Document *elements.Document

	Errors []error
}

// NewPipelineContext prepares the compilation of rootID. A nil logger
// is replaced by one that discards output.
func NewPipelineContext(opts *config.Options, loader *modules.Loader, rootID string, logger *log.Logger) *PipelineContext {
	if opts == nil {
		opts = config.DefaultOptions()
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &PipelineContext{
		Options: opts,
		Loader:  loader,
		Logger:  logger,
		RootID:  rootID,
	}
}

// Failed reports whether an earlier stage recorded an error.
func (ctx *PipelineContext) Failed() bool {
	return len(ctx.Errors) > 0
}
