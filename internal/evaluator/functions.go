package evaluator

import (
	"strconv"
	"strings"

	"github.com/funvibe/ftdc/internal/ast"
	"github.com/funvibe/ftdc/internal/config"
	"github.com/funvibe/ftdc/internal/diagnostics"
	"github.com/funvibe/ftdc/internal/symbols"
	"github.com/funvibe/ftdc/internal/typesystem"
)

// Call evaluates a function call in env. Built-ins take positional
// values; user functions run their body in a fresh scope holding one
// binding per formal argument.
func (e *Evaluator) Call(fc *symbols.FunctionCall, env *Env) (symbols.Value, error) {
	if _, ok := e.symbols.Find(fc.Name); !ok {
		args := make([]symbols.Value, 0, fc.Values.Len())
		for i := 0; ; i++ {
			pv, ok := fc.Values.Get(strconv.Itoa(i))
			if !ok {
				break
			}
			v, err := e.Resolve(pv, env)
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
		if v, ok, err := e.builtin(fc.Name, args, fc.Line); ok || err != nil {
			return v, err
		}
	}

	name, err := e.retarget(fc, env)
	if err != nil {
		return nil, err
	}
	fn, ok := e.function(name)
	if !ok {
		return nil, diagnostics.NotFoundf(e.docID, fc.Line, "unknown function `%s`", name)
	}
	if e.depth >= maxCallDepth {
		return nil, diagnostics.Otherf(e.docID, fc.Line, "call depth exceeded in `%s`", fn.Name)
	}
	e.depth++
	defer func() { e.depth-- }()

	frame := NewEnv().Enclosed(fn.Name)
	for _, formal := range fn.Arguments {
		pv, ok := fc.Values.Get(formal.Name)
		if !ok || pv == formal.Value {
			frame.Bind(formal.Name, &Binding{Argument: formal, Default: formal.Value, Self: frame})
			continue
		}
		v, err := e.Resolve(pv, env)
		if err != nil {
			return nil, err
		}
		frame.Bind(formal.Name, Fixed(formal, v))
	}

	var result symbols.Value
	if fn.Body != nil {
		for _, expr := range fn.Body.Expressions {
			result, err = e.eval(expr, fn.References, env, frame)
			if err != nil {
				return nil, err
			}
		}
	}
	return coerce(result, fn.ReturnKind.Kind), nil
}

// retarget resolves the callee of a call made through a module argument
// to the module actually bound to that argument.
func (e *Evaluator) retarget(fc *symbols.FunctionCall, env *Env) (string, error) {
	if fc.Module == "" {
		return fc.Name, nil
	}
	i := strings.LastIndex(fc.Module, ".")
	if i < 0 {
		return fc.Name, nil
	}
	owner, arg := fc.Module[:i], fc.Module[i+1:]
	b, ok := env.binding(owner, arg)
	if !ok {
		return fc.Name, nil
	}
	v, err := e.BindingValue(b)
	if err != nil {
		return "", err
	}
	m, ok := symbols.Unwrap(v).(*symbols.ModuleValue)
	if !ok {
		return fc.Name, nil
	}
	_, member, _ := strings.Cut(fc.Name, config.ThingSeparator)
	return m.Name + config.ThingSeparator + member, nil
}

func (e *Evaluator) callExpression(call *ast.CallExpression, refs *references, env *Env, frame *Env) (symbols.Value, error) {
	line := call.Token.Line
	if _, isRef := call.Function.(*ast.Reference); !isRef {
		args := make([]symbols.Value, 0, len(call.Arguments))
		for _, a := range call.Arguments {
			v, err := e.eval(a, refs, env, frame)
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
		v, ok, err := e.builtin(call.FunctionName(), args, line)
		if !ok && err == nil {
			return nil, diagnostics.NotFoundf(e.docID, line, "unknown function `%s`", call.FunctionName())
		}
		return v, err
	}
	pv, ok := refs.Get(call.CallKey())
	if !ok {
		return nil, diagnostics.NotFoundf(e.docID, line, "unresolved call `%s`", call.FunctionName())
	}
	fc, ok := pv.(*symbols.FunctionCall)
	if !ok {
		return nil, diagnostics.Otherf(e.docID, line, "`%s` is not a call", call.FunctionName())
	}
	return e.Call(fc, scopeFor(fc, env, frame))
}

// assign runs `$x = v`, `$x += v` or `$x -= v` inside a function body.
// Only the function's own arguments can change while rendering; global
// variables change at runtime only.
func (e *Evaluator) assign(n *ast.AssignExpression, refs *references, env *Env, frame *Env) (symbols.Value, error) {
	line := n.Token.Line
	if frame == nil {
		return nil, diagnostics.Parsef(e.docID, line, "assignment outside a function body")
	}
	pv, ok := refs.Get(n.Target.Source())
	if !ok {
		return nil, diagnostics.NotFoundf(e.docID, line, "unresolved reference `%s`", n.Target.Source())
	}
	name, source, _ := symbols.ReferenceName(pv)
	if source.Kind != symbols.SourceLocal || source.Name != frame.owner {
		e.logger.Printf("%s:%d: assignment to %s skipped while rendering", e.docID, line, name)
		return nil, diagnostics.Otherf(e.docID, line, "cannot assign to `%s` while rendering", name)
	}
	arg, path := cutPath(strings.TrimPrefix(name, source.Name+"."))
	if path != "" {
		return nil, diagnostics.Otherf(e.docID, line, "cannot assign to a part of `%s`", arg)
	}
	b, ok := frame.binding(frame.owner, arg)
	if !ok {
		return nil, diagnostics.NotFoundf(e.docID, line, "`%s` has no argument `%s`", frame.owner, arg)
	}

	value, err := e.eval(n.Value, refs, env, frame)
	if err != nil {
		return nil, err
	}
	if n.Operator != "=" {
		current, err := e.BindingValue(b)
		if err != nil {
			return nil, err
		}
		value, err = e.arithmetic(strings.TrimSuffix(n.Operator, "="), current, value, line)
		if err != nil {
			return nil, err
		}
	}
	b.Set(value)
	return value, nil
}

// coerce fits a function result to the declared return kind.
func coerce(v symbols.Value, kind typesystem.Kind) symbols.Value {
	kind = typesystem.StripConstant(kind)
	switch k := kind.(type) {
	case typesystem.KVoid:
		return nil
	case typesystem.KOptional:
		if o, ok := v.(*symbols.OptionalValue); ok {
			return o
		}
		if v == nil {
			return &symbols.OptionalValue{Elem: k.Elem}
		}
		return &symbols.OptionalValue{Data: coerce(v, k.Elem), Elem: k.Elem}
	case typesystem.KDecimal:
		if i, ok := v.(*symbols.IntegerValue); ok {
			return &symbols.DecimalValue{Value: float64(i.Value)}
		}
	case typesystem.KString:
		if _, ok := v.(*symbols.StringValue); !ok {
			if text, ok := symbols.Text(v); ok {
				return &symbols.StringValue{Text: text}
			}
		}
	}
	return v
}
