package analyzer

import (
	"github.com/funvibe/ftdc/internal/modules"
	"github.com/funvibe/ftdc/internal/pipeline"
)

// SemanticAnalyzerProcessor runs analysis of ctx.RootID and publishes the
// symbol table and root instructions for the executor.
type SemanticAnalyzerProcessor struct{}

func (sap *SemanticAnalyzerProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	if ctx.Loader == nil {
		ctx.Loader = modules.NewLoader()
	}
	a := New(ctx.Loader, ctx.Logger)
	result, err := a.Interpret(ctx.RootID)
	if err != nil {
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}

	ctx.Instructions = result.Instructions
	ctx.Symbols = result.Symbols
	ctx.Constants = result.Constants
	ctx.UsedModules = result.UsedModules
	ctx.Logger.Printf("analyzed %s: %d instructions, %d definitions", result.Root, len(result.Instructions), len(result.Symbols.Names()))
	return ctx
}
