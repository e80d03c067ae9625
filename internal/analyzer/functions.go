package analyzer

import (
	"strconv"

	"github.com/funvibe/ftdc/internal/ast"
	"github.com/funvibe/ftdc/internal/config"
	"github.com/funvibe/ftdc/internal/diagnostics"
	"github.com/funvibe/ftdc/internal/symbols"
	"github.com/funvibe/ftdc/internal/typesystem"
)

// callee is the function a call expression targets.
type callee struct {
	function *symbols.Function
	name     string
	module   string // canonical name of the module argument, if any
}

// resolveCallee resolves the function name of a call. A name reaching
// through a module-valued argument is retargeted to the argument's default
// module for analysis; the executor retargets again to the bound module.
func (a *Analyzer) resolveCallee(name string, sc *scope, line int) (symbols.State[callee], error) {
	if r, ok, err := a.resolveLocal(name, sc, line); ok || err != nil {
		if err != nil {
			return symbols.State[callee]{}, err
		}
		if !typesystem.IsModule(r.Kind.Kind) || r.Member == "" {
			return symbols.State[callee]{}, diagnostics.Parsef(sc.docID(), line, "`%s` is not a function", name)
		}
		module, err := defaultModule(r.Argument, sc.docID(), line)
		if err != nil {
			return symbols.State[callee]{}, err
		}
		target := module + config.ThingSeparator + r.Member
		st, err := a.Search(target, sc.docID(), line)
		if err != nil || st.IsContinue() {
			return symbols.Forward[callee](st), err
		}
		fn, ok := st.Value.Thing.(*symbols.Function)
		if !ok || st.Value.Remaining != "" {
			return symbols.State[callee]{}, diagnostics.Parsef(sc.docID(), line, "`%s` is not a function", target)
		}
		moduleArg := r.Name[:len(r.Name)-len(r.Member)-1]
		return symbols.Done(callee{function: fn, name: target, module: moduleArg}), nil
	}

	qualified := qualify(sc.doc, name)
	st, err := a.Search(qualified, sc.docID(), line)
	if err != nil || st.IsContinue() {
		return symbols.Forward[callee](st), err
	}
	fn, ok := st.Value.Thing.(*symbols.Function)
	if !ok || st.Value.Remaining != "" {
		return symbols.State[callee]{}, diagnostics.Parsef(sc.docID(), line, "`%s` is not a function", name)
	}
	return symbols.Done(callee{function: fn, name: fn.Name}), nil
}

// functionCallValue analyzes `$fn(k = v, ...)`. Every formal argument is
// bound, in declaration order, from the call, its default, or None.
func (a *Analyzer) functionCallValue(call *ast.CallExpression, expected *typesystem.KindData, mutable bool, sc *scope, line int) (pvState, error) {
	st, err := a.functionCall(call, sc, line)
	if err != nil || st.IsContinue() {
		return symbols.Forward[symbols.PropertyValue](st), err
	}
	fc := st.Value
	fc.Mutable = mutable
	if expected == nil {
		return done(fc)
	}
	if typesystem.IsSameAs(expected.Kind, fc.KindData.Kind) {
		fc.KindData = typesystem.GetKind(expected, fc.KindData)
		return done(fc)
	}
	build := func(kind typesystem.KindData) symbols.PropertyValue {
		out := *fc
		out.KindData = kind
		return &out
	}
	if pv, ok := a.wrapInVariant(*expected, fc.KindData, build, 0); ok {
		return done(pv)
	}
	return fail(diagnostics.Parsef(sc.docID(), line, "kind mismatch for `%s(...)`: expected `%s`, found `%s`", fc.Name, expected.Kind, fc.KindData.Kind))
}

func (a *Analyzer) functionCall(call *ast.CallExpression, sc *scope, line int) (symbols.State[*symbols.FunctionCall], error) {
	name := call.FunctionName()
	if b, ok := lookupBuiltin(name); ok {
		if len(call.Named) > 0 || len(call.Arguments) > 0 && b.action {
			return symbols.State[*symbols.FunctionCall]{}, diagnostics.Parsef(sc.docID(), line, "`%s` takes no arguments", b.name)
		}
		fc := &symbols.FunctionCall{Name: b.name, KindData: typesystem.Data(b.result), Values: symbols.NewFields(), Line: line}
		for i, arg := range call.Arguments {
			st, err := a.expressionValue(arg, nil, false, sc, line)
			if err != nil || st.IsContinue() {
				return symbols.Forward[*symbols.FunctionCall](st), err
			}
			fc.Values.Set(strconv.Itoa(i), st.Value)
		}
		return symbols.Done(fc), nil
	}
	if len(call.Arguments) > 0 {
		return symbols.State[*symbols.FunctionCall]{}, diagnostics.Parsef(sc.docID(), line, "function `%s` must be called with keyword arguments", name)
	}

	cst, err := a.resolveCallee(name, sc, line)
	if err != nil || cst.IsContinue() {
		return symbols.Forward[*symbols.FunctionCall](cst), err
	}
	fn := cst.Value.function

	supplied := make(map[string]*ast.NamedArgument, len(call.Named))
	for _, named := range call.Named {
		if _, ok := symbols.FindArgument(fn.Arguments, named.Name); !ok {
			return symbols.State[*symbols.FunctionCall]{}, diagnostics.Parsef(sc.docID(), line, "function `%s` has no argument `%s`", fn.Name, named.Name)
		}
		supplied[named.Name] = named
	}

	values := symbols.NewFields()
	for _, formal := range fn.Arguments {
		named, ok := supplied[formal.Name]
		switch {
		case ok:
			if named.Mutable != formal.Mutable {
				return symbols.State[*symbols.FunctionCall]{}, diagnostics.ForbiddenUsagef(sc.docID(), line, "mutability of argument `%s` of `%s` does not match", formal.Name, fn.Name)
			}
			kind := formal.Kind
			st, err := a.expressionValue(named.Value, &kind, formal.Mutable, sc, line)
			if err != nil || st.IsContinue() {
				return symbols.Forward[*symbols.FunctionCall](st), err
			}
			values.Set(formal.Name, st.Value)
		case formal.Value != nil:
			values.Set(formal.Name, formal.Value)
		case formal.Kind.IsOptional():
			values.Set(formal.Name, symbols.NoneOf(formal.Kind.Kind, line))
		default:
			return symbols.State[*symbols.FunctionCall]{}, diagnostics.Parsef(sc.docID(), line, "argument `%s` of `%s` is required", formal.Name, fn.Name)
		}
	}
	return symbols.Done(&symbols.FunctionCall{
		Name:     cst.Value.name,
		KindData: fn.ReturnKind,
		Values:   values,
		Module:   cst.Value.module,
		Line:     line,
	}), nil
}

// expressionValue converts an argument expression of a call into a
// property value of the expected kind.
func (a *Analyzer) expressionValue(e ast.Expression, expected *typesystem.KindData, mutable bool, sc *scope, line int) (pvState, error) {
	switch n := e.(type) {
	case *ast.Reference:
		form := "$"
		if n.Clone {
			form = "*$"
		}
		return a.propertyValue(&ast.StringValue{Value: form + n.Name, Line: line}, expected, mutable, sc, line)
	case *ast.CallExpression:
		return a.functionCallValue(n, expected, mutable, sc, line)
	case *ast.StringLiteral:
		return a.literalValue(&ast.StringValue{Value: n.Value, Line: line}, expected, sc, line)
	case *ast.IntegerLiteral, *ast.FloatLiteral, *ast.BooleanLiteral, *ast.Identifier:
		return a.literalValue(&ast.StringValue{Value: n.TokenLiteral(), Line: line}, expected, sc, line)
	case *ast.PrefixExpression:
		if lit, ok := n.Right.(*ast.IntegerLiteral); ok && n.Operator == "-" {
			return a.literalValue(&ast.StringValue{Value: "-" + lit.TokenLiteral(), Line: line}, expected, sc, line)
		}
		if lit, ok := n.Right.(*ast.FloatLiteral); ok && n.Operator == "-" {
			return a.literalValue(&ast.StringValue{Value: "-" + lit.TokenLiteral(), Line: line}, expected, sc, line)
		}
	case *ast.NullLiteral:
		return a.literalValue(&ast.OptionalValue{Line: line}, expected, sc, line)
	}
	return fail(diagnostics.Parsef(sc.docID(), line, "unsupported argument expression `%s`", e.TokenLiteral()))
}
