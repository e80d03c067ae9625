package analyzer

import (
	"github.com/funvibe/ftdc/internal/ast"
	"github.com/funvibe/ftdc/internal/diagnostics"
	"github.com/funvibe/ftdc/internal/parser"
	"github.com/funvibe/ftdc/internal/prettyprinter"
	"github.com/funvibe/ftdc/internal/symbols"
	"github.com/funvibe/ftdc/internal/typesystem"
)

// condition parses a boolean condition and resolves every reference in it.
func (a *Analyzer) condition(text string, sc *scope, line int) (symbols.State[*symbols.Expression], error) {
	src := parser.StripBraces(text)
	node, err := parser.ParseExpression(src, line)
	if err != nil {
		return symbols.State[*symbols.Expression]{}, diagnostics.WithDocument(err, sc.docID(), line)
	}
	expr := symbols.NewExpression(node, prettyprinter.Print(node), line)
	st, err := a.bindReferences(node, expr, sc, line)
	if err != nil || st.IsContinue() {
		return symbols.Forward[*symbols.Expression](st), err
	}
	if ref, ok := node.(*ast.Reference); ok {
		if pv, ok := expr.References.Get(ref.Source()); ok && !isBooleanish(pv.Kind()) {
			return symbols.State[*symbols.Expression]{}, diagnostics.Parsef(sc.docID(), line, "condition `%s` is a `%s`, not a boolean", src, pv.Kind())
		}
	}
	return symbols.Done(expr), nil
}

// bindReferences resolves the references and validates the calls of node,
// recording each resolved reference in expr under its source text.
func (a *Analyzer) bindReferences(node ast.Expression, expr *symbols.Expression, sc *scope, line int) (symbols.State[struct{}], error) {
	for _, ref := range ast.References(node) {
		st, err := a.resolveReference(ref.Name, sc, line)
		if err != nil || st.IsContinue() {
			return symbols.Forward[struct{}](st), err
		}
		r := st.Value
		var pv symbols.PropertyValue
		if ref.Clone {
			pv = &symbols.Clone{Name: r.Name, KindData: r.Kind, Source: r.Source, Mutable: r.Mutable, Line: line}
		} else {
			pv = &symbols.Reference{Name: r.Name, KindData: r.Kind, Source: r.Source, Mutable: r.Mutable, Line: line}
		}
		expr.References.Set(ref.Source(), pv)
	}

	var callErr error
	var blocked string
	ast.Inspect(node, func(e ast.Expression) bool {
		call, ok := e.(*ast.CallExpression)
		if !ok || callErr != nil || blocked != "" {
			return callErr == nil && blocked == ""
		}
		if _, isRef := call.Function.(*ast.Reference); !isRef {
			b, ok := lookupBuiltin(call.FunctionName())
			if !ok || b.action {
				callErr = diagnostics.Parsef(sc.docID(), line, "unknown function `%s` in condition", call.FunctionName())
			}
			return callErr == nil
		}
		st, err := a.functionCall(call, sc, line)
		switch {
		case err != nil:
			callErr = err
		case st.IsContinue():
			blocked = st.Missing
		default:
			expr.References.Set(call.CallKey(), st.Value)
		}
		return false
	})
	if callErr != nil {
		return symbols.State[struct{}]{}, callErr
	}
	if blocked != "" {
		return symbols.Continue[struct{}](blocked), nil
	}
	return symbols.Done(struct{}{}), nil
}

// isBooleanish reports whether a condition over kind can be tested for
// truth: booleans, and optionals or lists tested for presence.
func isBooleanish(kind typesystem.Kind) bool {
	switch typesystem.StripConstant(kind).(type) {
	case typesystem.KBoolean, typesystem.KOptional, typesystem.KList:
		return true
	}
	return false
}
