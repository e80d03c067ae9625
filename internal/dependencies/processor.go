package dependencies

import (
	"github.com/funvibe/ftdc/internal/evaluator"
	"github.com/funvibe/ftdc/internal/pipeline"
	"github.com/funvibe/ftdc/internal/styles"
)

// DependencyProcessor fills ctx.Document.Dependencies from the element
// traces and the global variables of every used module.
type DependencyProcessor struct{}

func (dp *DependencyProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Document == nil {
		return ctx
	}
	device, _ := styles.ParseDevice(ctx.Options.Device)
	eval := evaluator.New(ctx.Symbols, styles.Target{Device: device, DarkMode: ctx.Options.DarkMode}, ctx.RootID, ctx.Logger)

	m := ctx.Document.Dependencies
	Collect(ctx.Document.Root, m)
	if err := Variables(eval, ctx.UsedModules, m); err != nil {
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	ctx.Logger.Printf("collected dependencies of %s: %d variables", ctx.RootID, m.Len())
	return ctx
}
