package analyzer

import (
	"github.com/funvibe/ftdc/internal/ast"
	"github.com/funvibe/ftdc/internal/diagnostics"
	"github.com/funvibe/ftdc/internal/parser"
	"github.com/funvibe/ftdc/internal/symbols"
	"github.com/funvibe/ftdc/internal/typesystem"
)

type loopResult struct {
	loop  *symbols.Loop
	scope *scope
}

// loop analyzes `<driver> as $alias [counter $ctr]`. The driver must be a
// list; the returned scope binds the alias to its element kind.
func (a *Analyzer) loop(l *ast.Loop, sc *scope) (symbols.State[loopResult], error) {
	line := l.Line
	header, err := parser.ParseLoop(l.Expression, line)
	if err != nil {
		return symbols.State[loopResult]{}, diagnostics.WithDocument(err, sc.docID(), line)
	}
	parsed, err := parser.ParseValue(header.Driver, line)
	if err != nil {
		return symbols.State[loopResult]{}, diagnostics.WithDocument(err, sc.docID(), line)
	}

	var (
		on      symbols.PropertyValue
		mutable bool
	)
	switch parsed.Form {
	case parser.FormReference, parser.FormClone:
		st, err := a.resolveReference(parsed.Name, sc, line)
		if err != nil || st.IsContinue() {
			return symbols.Forward[loopResult](st), err
		}
		r := st.Value
		if parsed.Form == parser.FormClone {
			on = &symbols.Clone{Name: r.Name, KindData: r.Kind, Source: r.Source, Mutable: true, Line: line}
			mutable = true
		} else {
			on = &symbols.Reference{Name: r.Name, KindData: r.Kind, Source: r.Source, Mutable: r.Mutable, Line: line}
			mutable = r.Mutable
		}
	case parser.FormFunctionCall:
		st, err := a.functionCallValue(parsed.Call, nil, false, sc, line)
		if err != nil || st.IsContinue() {
			return symbols.Forward[loopResult](st), err
		}
		on = st.Value
	default:
		return symbols.State[loopResult]{}, diagnostics.Parsef(sc.docID(), line, "loop over `%s`: expected a reference or a function call", header.Driver)
	}

	if !typesystem.IsList(on.Kind()) {
		return symbols.State[loopResult]{}, diagnostics.Parsef(sc.docID(), line, "loop over `%s` of kind `%s`, expected a list", header.Driver, on.Kind())
	}
	elem := typesystem.Data(typesystem.RefInner(typesystem.StripConstant(on.Kind())))

	return symbols.Done(loopResult{
		loop: &symbols.Loop{
			On:           on,
			Alias:        header.Alias,
			CounterAlias: header.CounterAlias,
			Line:         line,
		},
		scope: sc.withLoop(header.Alias, header.CounterAlias, elem, mutable),
	}), nil
}
