package executor

import (
	"github.com/funvibe/ftdc/internal/ast"
	"github.com/funvibe/ftdc/internal/evaluator"
	"github.com/funvibe/ftdc/internal/symbols"
	"github.com/funvibe/ftdc/internal/typesystem"
)

// placeholder is the loop item a dummy element is built from: the zero
// value of kind, records filled from their field defaults.
func (x *Executor) placeholder(kind typesystem.Kind, line int) symbols.Value {
	return x.zero(typesystem.StripConstant(kind), line, 0)
}

func (x *Executor) zero(kind typesystem.Kind, line, depth int) symbols.Value {
	switch k := kind.(type) {
	case typesystem.KString:
		return &symbols.StringValue{}
	case typesystem.KInteger:
		return &symbols.IntegerValue{}
	case typesystem.KDecimal:
		return &symbols.DecimalValue{}
	case typesystem.KBoolean:
		return &symbols.BooleanValue{}
	case typesystem.KOptional:
		return &symbols.OptionalValue{Elem: k.Elem}
	case typesystem.KList:
		return &symbols.ListValue{Elem: k.Elem}
	case typesystem.KConstant:
		return x.zero(k.Elem, line, depth)
	case typesystem.KRecord:
		return x.zeroRecord(k.Name, line, depth)
	case typesystem.KOrType:
		return x.zeroOrType(k.Name, line, depth)
	}
	return &symbols.OptionalValue{Elem: kind}
}

func (x *Executor) zeroRecord(name string, line, depth int) symbols.Value {
	fields := symbols.NewFields()
	out := &symbols.RecordValue{Name: name, Fields: fields}
	t, ok := x.symbols.Find(name)
	if !ok || depth > 8 {
		return out
	}
	rec, ok := t.(*symbols.Record)
	if !ok {
		return out
	}
	for _, f := range rec.Fields {
		if f.Value != nil {
			if v, err := x.eval.Resolve(f.Value, evaluator.NewEnv()); err == nil && v != nil {
				fields.Set(f.Name, symbols.NewLiteral(v, line))
				continue
			}
		}
		fields.Set(f.Name, symbols.NewLiteral(x.zero(typesystem.StripConstant(f.Kind.Kind), line, depth+1), line))
	}
	return out
}

func (x *Executor) zeroOrType(name string, line, depth int) symbols.Value {
	t, ok := x.symbols.Find(name)
	if !ok {
		return &symbols.OptionalValue{Elem: typesystem.OrType(name)}
	}
	ot, ok := t.(*symbols.OrType)
	if !ok || len(ot.Variants) == 0 {
		return &symbols.OptionalValue{Elem: typesystem.OrType(name)}
	}
	v := ot.Variants[0]
	out := &symbols.OrTypeValue{Name: name, Variant: v.Name, FullVariant: v.FullName(name)}
	switch {
	case v.Field != nil && v.Field.Value != nil:
		out.Value = v.Field.Value
	case v.Field != nil:
		out.Value = symbols.NewLiteral(x.zero(typesystem.StripConstant(v.Field.Kind.Kind), line, depth+1), line)
	case v.Record != nil:
		out.Value = symbols.NewLiteral(x.zeroRecord(v.Record.Name, line, depth+1), line)
	}
	return out
}

// conditionValue is the value a variable must take for a condition to
// hold: true for `$v`, false for `!$v`, the literal for `$v == lit`, and
// the condition text for anything else.
func conditionValue(expr *symbols.Expression) any {
	switch n := expr.Node.(type) {
	case *ast.Reference:
		return true
	case *ast.PrefixExpression:
		if _, ok := n.Right.(*ast.Reference); ok && n.Operator == "!" {
			return false
		}
	case *ast.InfixExpression:
		if n.Operator != "==" {
			break
		}
		if _, ok := n.Left.(*ast.Reference); ok {
			if v, ok := literalOf(n.Right); ok {
				return v
			}
		}
		if _, ok := n.Right.(*ast.Reference); ok {
			if v, ok := literalOf(n.Left); ok {
				return v
			}
		}
	}
	return expr.Text
}

func literalOf(e ast.Expression) (any, bool) {
	switch l := e.(type) {
	case *ast.IntegerLiteral:
		return l.Value, true
	case *ast.FloatLiteral:
		return l.Value, true
	case *ast.StringLiteral:
		return l.Value, true
	case *ast.BooleanLiteral:
		return l.Value, true
	case *ast.Identifier:
		return l.Value, true
	}
	return nil, false
}
