package analyzer

import (
	"github.com/funvibe/ftdc/internal/ast"
	"github.com/funvibe/ftdc/internal/config"
	"github.com/funvibe/ftdc/internal/diagnostics"
	"github.com/funvibe/ftdc/internal/parser"
	"github.com/funvibe/ftdc/internal/symbols"
	"github.com/funvibe/ftdc/internal/typesystem"
)

type declState = symbols.State[struct{}]

var declared = symbols.Done(struct{}{})

// declare analyzes one definition of sc's document into the symbol table.
func (a *Analyzer) declare(node ast.Node, sc *scope) (declState, error) {
	switch n := node.(type) {
	case *ast.Record:
		return a.declareRecord(n, sc)
	case *ast.OrType:
		return a.declareOrType(n, sc)
	case *ast.VariableDefinition:
		return a.declareVariable(n, sc)
	case *ast.FunctionDefinition:
		return a.declareFunction(n, sc)
	case *ast.ComponentDefinition:
		return a.declareComponent(n, sc)
	}
	return declState{}, diagnostics.Otherf(sc.docID(), node.GetLine(), "unexpected definition %T", node)
}

func (a *Analyzer) declareRecord(n *ast.Record, sc *scope) (declState, error) {
	name := sc.docID() + config.ThingSeparator + n.Name
	// registered first so that field kinds may name the record itself
	rec := &symbols.Record{Name: name, Line: n.Line}
	a.symbols.DefinePending(rec)
	st, err := a.arguments(name, n.Fields, sc)
	if err != nil || st.IsContinue() {
		return symbols.Forward[struct{}](st), err
	}
	rec.Fields = st.Value
	if dst, err := a.defaults(name, n.Fields, rec.Fields, sc); err != nil || dst.IsContinue() {
		return dst, err
	}
	a.symbols.Define(rec)
	return declared, nil
}

// declareOrType registers the or-type before its variants so that a
// variant may refer back to it.
func (a *Analyzer) declareOrType(n *ast.OrType, sc *scope) (declState, error) {
	name := sc.docID() + config.ThingSeparator + n.Name
	ot := &symbols.OrType{Name: name, Line: n.Line}
	a.symbols.DefinePending(ot)

	seen := make(map[string]bool, len(n.Variants))
	for _, v := range n.Variants {
		if seen[v.Name] {
			return declState{}, diagnostics.Parsef(sc.docID(), v.Line, "repeated variant `%s` in `%s`", v.Name, n.Name)
		}
		seen[v.Name] = true

		variant := &symbols.OrTypeVariant{Name: v.Name, Line: v.Line}
		if len(v.Fields) > 0 {
			recName := name + config.VariantSeparator + v.Name
			argst, err := a.arguments(recName, v.Fields, sc)
			if err != nil || argst.IsContinue() {
				return symbols.Forward[struct{}](argst), err
			}
			variant.Kind = symbols.VariantAnonymousRecord
			variant.Record = &symbols.Record{Name: recName, Fields: argst.Value, Line: v.Line}
			// the record is reachable through the or-type while its
			// defaults are analyzed
			ot.Variants = append(ot.Variants, variant)
			if dst, err := a.defaults(recName, v.Fields, variant.Record.Fields, sc); err != nil || dst.IsContinue() {
				ot.Variants = nil
				return dst, err
			}
			continue
		}

		kst, err := a.resolveKind(v.Kind, sc, v.Line)
		if err != nil || kst.IsContinue() {
			ot.Variants = nil
			return symbols.Forward[struct{}](kst), err
		}
		field := &symbols.Argument{Name: v.Name, Kind: kst.Value, Line: v.Line}
		variant.Field = field
		if v.Constant {
			variant.Kind = symbols.VariantConstant
			if v.Value == nil {
				return declState{}, diagnostics.Parsef(sc.docID(), v.Line, "constant variant `%s` of `%s` needs a value", v.Name, n.Name)
			}
		}
		if v.Value != nil {
			pst, err := a.propertyValue(v.Value, &field.Kind, false, sc, v.Line)
			if err != nil || pst.IsContinue() {
				ot.Variants = nil
				return symbols.Forward[struct{}](pst), err
			}
			field.Value = pst.Value
		}
		ot.Variants = append(ot.Variants, variant)
	}
	a.symbols.Define(ot)
	return declared, nil
}

func (a *Analyzer) declareVariable(n *ast.VariableDefinition, sc *scope) (declState, error) {
	name := sc.docID() + config.ThingSeparator + n.Name
	kst, err := a.resolveKind(n.Kind, sc, n.Line)
	if err != nil || kst.IsContinue() {
		return symbols.Forward[struct{}](kst), err
	}
	kind := kst.Value
	if n.Value == nil {
		if !kind.IsOptional() {
			return declState{}, diagnostics.MissingDataf(sc.docID(), n.Line, "variable `%s` has no value", n.Name)
		}
	}
	var value symbols.PropertyValue = symbols.NoneOf(kind.Kind, n.Line)
	if n.Value != nil {
		pst, err := a.propertyValue(n.Value, &kind, n.Mutable, sc, n.Line)
		if err != nil || pst.IsContinue() {
			return symbols.Forward[struct{}](pst), err
		}
		value = pst.Value
	}
	if lit, ok := value.(*symbols.Literal); ok {
		lit.Mutable = n.Mutable
		if !n.Mutable && symbols.IsStatic(lit.Value) {
			lit.Value = a.constants.Intern(name, lit.Value)
		}
	}
	a.symbols.Define(&symbols.Variable{
		Name:    name,
		Kind:    kind,
		Mutable: n.Mutable,
		Value:   value,
		Line:    n.Line,
	})
	return declared, nil
}

// declareFunction checks that the body only reads names in scope and only
// assigns to mutable arguments and variables.
func (a *Analyzer) declareFunction(n *ast.FunctionDefinition, sc *scope) (declState, error) {
	name := sc.docID() + config.ThingSeparator + n.Name
	argst, err := a.arguments(name, n.Arguments, sc)
	if err != nil || argst.IsContinue() {
		return symbols.Forward[struct{}](argst), err
	}
	if dst, err := a.defaults(name, n.Arguments, argst.Value, sc); err != nil || dst.IsContinue() {
		return dst, err
	}
	returnKind := n.ReturnKind
	if returnKind == "" {
		returnKind = "void"
	}
	kst, err := a.resolveKind(returnKind, sc, n.Line)
	if err != nil || kst.IsContinue() {
		return symbols.Forward[struct{}](kst), err
	}
	body, err := parser.ParseProgram(parser.StripBraces(n.Body), n.Line)
	if err != nil {
		return declState{}, diagnostics.WithDocument(err, sc.docID(), n.Line)
	}

	fn := &symbols.Function{Name: name, ReturnKind: kst.Value, Arguments: argst.Value, Body: body, Line: n.Line}
	a.symbols.DefinePending(fn)

	inner := sc.within(name, fn.Arguments)
	refs := symbols.NewExpression(nil, n.Body, n.Line)
	for _, e := range body.Expressions {
		if assign, ok := e.(*ast.AssignExpression); ok {
			rst, err := a.resolveReference(assign.Target.Name, inner, n.Line)
			if err != nil || rst.IsContinue() {
				return symbols.Forward[struct{}](rst), err
			}
			if !rst.Value.Mutable {
				return declState{}, diagnostics.ForbiddenUsagef(sc.docID(), n.Line, "`%s` is immutable and cannot be assigned in `%s`", assign.Target.Name, n.Name)
			}
		}
		bst, err := a.bindReferences(e, refs, inner, n.Line)
		if err != nil || bst.IsContinue() {
			return bst, err
		}
	}
	fn.References = refs.References
	a.symbols.Define(fn)
	return declared, nil
}

func (a *Analyzer) declareComponent(n *ast.ComponentDefinition, sc *scope) (declState, error) {
	name := sc.docID() + config.ThingSeparator + n.Name
	fields := n.Arguments
	if n.Definition == nil {
		if sc.docID() != config.KernelDocument {
			return declState{}, diagnostics.Parsef(sc.docID(), n.Line, "component `%s` has no definition", n.Name)
		}
		fields = withCommonArguments(fields, n.Line)
	}
	argst, err := a.arguments(name, fields, sc)
	if err != nil || argst.IsContinue() {
		return symbols.Forward[struct{}](argst), err
	}
	if dst, err := a.defaults(name, fields, argst.Value, sc); err != nil || dst.IsContinue() {
		return dst, err
	}

	def := &symbols.ComponentDefinition{
		Name:      name,
		Arguments: argst.Value,
		CSS:       n.CSS,
		Kernel:    n.Definition == nil,
		Line:      n.Line,
	}
	a.symbols.DefinePending(def)
	if n.Definition != nil {
		cst, err := a.component(n.Definition, sc.within(name, def.Arguments))
		if err != nil || cst.IsContinue() {
			return symbols.Forward[struct{}](cst), err
		}
		def.Definition = cst.Value
	}
	a.symbols.Define(def)
	return declared, nil
}

// arguments resolves the kinds of declared fields. Defaults are analyzed
// separately, once the owner is registered.
func (a *Analyzer) arguments(owner string, fields []*ast.Field, sc *scope) (symbols.State[[]*symbols.Argument], error) {
	var (
		out                     []*symbols.Argument
		caption, body, children string
	)
	seen := make(map[string]bool, len(fields))
	for _, f := range fields {
		if seen[f.Name] {
			return symbols.State[[]*symbols.Argument]{}, diagnostics.Parsef(sc.docID(), f.Line, "repeated argument `%s` in `%s`", f.Name, owner)
		}
		seen[f.Name] = true

		kst, err := a.resolveKind(f.Kind, sc, f.Line)
		if err != nil || kst.IsContinue() {
			return symbols.Forward[[]*symbols.Argument](kst), err
		}
		kind := kst.Value
		for _, slot := range []struct {
			on   bool
			name *string
			what string
		}{
			{kind.Caption, &caption, "caption"},
			{kind.Body, &body, "body"},
			{typesystem.IsChildren(kind.Kind), &children, "children"},
		} {
			if !slot.on {
				continue
			}
			if *slot.name != "" {
				return symbols.State[[]*symbols.Argument]{}, diagnostics.Parsef(sc.docID(), f.Line, "`%s` and `%s` both take the %s of `%s`", *slot.name, f.Name, slot.what, owner)
			}
			*slot.name = f.Name
		}

		access := symbols.AccessPublic
		switch f.Access {
		case "", "public":
		case "private":
			access = symbols.AccessPrivate
		default:
			return symbols.State[[]*symbols.Argument]{}, diagnostics.Parsef(sc.docID(), f.Line, "invalid access modifier `%s`", f.Access)
		}
		out = append(out, &symbols.Argument{
			Name:    f.Name,
			Kind:    kind,
			Mutable: f.Mutable,
			Access:  access,
			Line:    f.Line,
		})
	}
	return symbols.Done(out), nil
}

// defaults analyzes default values inside owner's scope, so that a default
// may read a sibling argument.
func (a *Analyzer) defaults(owner string, fields []*ast.Field, args []*symbols.Argument, sc *scope) (declState, error) {
	inner := sc.within(owner, args)
	for i, f := range fields {
		if f.Value == nil {
			continue
		}
		st, err := a.propertyValue(f.Value, &args[i].Kind, f.Mutable, inner, f.Line)
		if err != nil || st.IsContinue() {
			return symbols.Forward[struct{}](st), err
		}
		args[i].Value = st.Value
	}
	return declared, nil
}
