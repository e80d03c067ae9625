package executor

import (
	"github.com/funvibe/ftdc/internal/elements"
	"github.com/funvibe/ftdc/internal/evaluator"
	"github.com/funvibe/ftdc/internal/pipeline"
	"github.com/funvibe/ftdc/internal/styles"
	"github.com/funvibe/ftdc/internal/symbols"
)

// ExecutorProcessor expands the analyzed instructions into the element
// tree, renests headings, assigns data-ids and starts ctx.Document.
type ExecutorProcessor struct{}

func (ep *ExecutorProcessor) Process(ctx *pipeline.PipelineContext) *pipeline.PipelineContext {
	device, _ := styles.ParseDevice(ctx.Options.Device)
	target := styles.Target{Device: device, DarkMode: ctx.Options.DarkMode}
	x := New(ctx.Symbols, target, ctx.RootID, ctx.Options.LanguageTag(), ctx.Logger)

	root, meta, err := x.Execute(ctx.Instructions)
	if err != nil {
		ctx.Errors = append(ctx.Errors, err)
		return ctx
	}
	root.Children = Renest(root.Children)
	AssignIDs(root)
	if meta.Breakpoint == nil {
		bp := ctx.Options.Breakpoint
		meta.Breakpoint = &bp
	}

	doc := elements.NewDocument(ctx.RootID)
	doc.Root = root
	doc.Meta = meta
	doc.UsedModules = ctx.UsedModules
	if ctx.Constants != nil {
		ctx.Constants.Each(func(name string, v symbols.Value) {
			doc.Constants.Set(name, evaluator.Export(v))
		})
	}
	ctx.Root = root
	ctx.Document = doc

	count := 0
	elements.Walk(root, func(elements.Element) { count++ })
	ctx.Logger.Printf("executed %s: %d elements", ctx.RootID, count)
	return ctx
}
