package evaluator

import (
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/apd"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/funvibe/ftdc/internal/ast"
	"github.com/funvibe/ftdc/internal/config"
	"github.com/funvibe/ftdc/internal/diagnostics"
	"github.com/funvibe/ftdc/internal/symbols"
	"github.com/funvibe/ftdc/internal/typesystem"
)

// decimalContext is used for decimal arithmetic in expressions.
var decimalContext = apd.BaseContext.WithPrecision(34)

type references = orderedmap.OrderedMap[string, symbols.PropertyValue]

// Condition evaluates expr in env and tests the result for truth.
func (e *Evaluator) Condition(expr *symbols.Expression, env *Env) (bool, error) {
	v, err := e.eval(expr.Node, expr.References, env, nil)
	if err != nil {
		return false, err
	}
	return Truthy(v), nil
}

// Truthy is true for a true boolean, a present optional and a non-empty
// list. Other values are tested against their zero value.
func Truthy(v symbols.Value) bool {
	switch val := v.(type) {
	case nil:
		return false
	case *symbols.BooleanValue:
		return val.Value
	case *symbols.OptionalValue:
		return val.Data != nil
	case *symbols.ListValue:
		return len(val.Data) > 0
	case *symbols.StringValue:
		return val.Text != ""
	case *symbols.IntegerValue:
		return val.Value != 0
	case *symbols.DecimalValue:
		return val.Value != 0
	}
	return true
}

// eval evaluates node. frame is the scope of a function body, nil in
// conditions.
func (e *Evaluator) eval(node ast.Expression, refs *references, env *Env, frame *Env) (symbols.Value, error) {
	line := 0
	if node != nil {
		line = node.GetToken().Line
	}
	switch n := node.(type) {
	case nil:
		return nil, nil
	case *ast.Reference:
		pv, ok := refs.Get(n.Source())
		if !ok {
			return nil, diagnostics.NotFoundf(e.docID, line, "unresolved reference `%s`", n.Source())
		}
		return e.Resolve(pv, scopeFor(pv, env, frame))
	case *ast.Identifier:
		return &symbols.StringValue{Text: n.Value}, nil
	case *ast.IntegerLiteral:
		return &symbols.IntegerValue{Value: n.Value}, nil
	case *ast.FloatLiteral:
		return &symbols.DecimalValue{Value: n.Value}, nil
	case *ast.StringLiteral:
		return &symbols.StringValue{Text: n.Value}, nil
	case *ast.BooleanLiteral:
		return &symbols.BooleanValue{Value: n.Value}, nil
	case *ast.NullLiteral:
		return &symbols.OptionalValue{Elem: typesystem.String}, nil
	case *ast.PrefixExpression:
		right, err := e.eval(n.Right, refs, env, frame)
		if err != nil {
			return nil, err
		}
		return e.prefix(n.Operator, right, line)
	case *ast.InfixExpression:
		return e.infix(n, refs, env, frame)
	case *ast.CallExpression:
		return e.callExpression(n, refs, env, frame)
	case *ast.AssignExpression:
		return e.assign(n, refs, env, frame)
	}
	return nil, diagnostics.Parsef(e.docID, line, "unsupported expression `%s`", node.TokenLiteral())
}

// scopeFor picks where a reference of a function body is resolved: the
// function's own arguments live in frame.
func scopeFor(pv symbols.PropertyValue, env, frame *Env) *Env {
	if frame == nil {
		return env
	}
	if _, source, ok := symbols.ReferenceName(pv); ok && source.Kind == symbols.SourceLocal && source.Name == frame.owner {
		return frame
	}
	if _, ok := pv.(*symbols.FunctionCall); ok {
		return frame
	}
	return env
}

func (e *Evaluator) prefix(op string, right symbols.Value, line int) (symbols.Value, error) {
	switch op {
	case "!":
		return &symbols.BooleanValue{Value: !Truthy(right)}, nil
	case "-":
		switch v := symbols.Unwrap(right).(type) {
		case *symbols.IntegerValue:
			return &symbols.IntegerValue{Value: -v.Value}, nil
		case *symbols.DecimalValue:
			return &symbols.DecimalValue{Value: -v.Value}, nil
		}
	}
	return nil, diagnostics.Parsef(e.docID, line, "operator %s is not defined for %s", op, kindName(right))
}

func (e *Evaluator) infix(n *ast.InfixExpression, refs *references, env *Env, frame *Env) (symbols.Value, error) {
	line := n.Token.Line
	left, err := e.eval(n.Left, refs, env, frame)
	if err != nil {
		return nil, err
	}
	switch n.Operator {
	case "&&":
		if !Truthy(left) {
			return &symbols.BooleanValue{Value: false}, nil
		}
		right, err := e.eval(n.Right, refs, env, frame)
		if err != nil {
			return nil, err
		}
		return &symbols.BooleanValue{Value: Truthy(right)}, nil
	case "||":
		if Truthy(left) {
			return &symbols.BooleanValue{Value: true}, nil
		}
		right, err := e.eval(n.Right, refs, env, frame)
		if err != nil {
			return nil, err
		}
		return &symbols.BooleanValue{Value: Truthy(right)}, nil
	}

	right, err := e.eval(n.Right, refs, env, frame)
	if err != nil {
		return nil, err
	}
	switch n.Operator {
	case "==":
		return &symbols.BooleanValue{Value: Equal(left, right)}, nil
	case "!=":
		return &symbols.BooleanValue{Value: !Equal(left, right)}, nil
	case "<", "<=", ">", ">=":
		c, err := e.compare(left, right, n.Operator, line)
		if err != nil {
			return nil, err
		}
		return &symbols.BooleanValue{Value: c}, nil
	case "+", "-", "*", "/", "%":
		return e.arithmetic(n.Operator, left, right, line)
	}
	return nil, diagnostics.Parsef(e.docID, line, "unknown operator %s", n.Operator)
}

// Equal compares two values. An or-type value equals a string naming its
// variant, or equal to its payload.
func Equal(a, b symbols.Value) bool {
	a, b = symbols.Unwrap(a), symbols.Unwrap(b)
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if x, ok := number(a); ok {
		if y, ok := number(b); ok {
			return x == y
		}
	}
	switch av := a.(type) {
	case *symbols.StringValue:
		switch bv := b.(type) {
		case *symbols.StringValue:
			return av.Text == bv.Text
		case *symbols.OrTypeValue:
			return Equal(bv, av)
		}
	case *symbols.BooleanValue:
		bv, ok := b.(*symbols.BooleanValue)
		return ok && av.Value == bv.Value
	case *symbols.OrTypeValue:
		switch bv := b.(type) {
		case *symbols.OrTypeValue:
			return av.FullVariant == bv.FullVariant && Equal(literalValue(av.Value), literalValue(bv.Value))
		case *symbols.StringValue:
			if bv.Text == av.Variant || bv.Text == av.FullVariant || strings.HasSuffix(bv.Text, config.VariantSeparator+av.Variant) {
				return true
			}
			return Equal(literalValue(av.Value), bv)
		default:
			return Equal(literalValue(av.Value), bv)
		}
	case *symbols.ListValue:
		bv, ok := b.(*symbols.ListValue)
		if !ok || len(av.Data) != len(bv.Data) {
			return false
		}
		for i := range av.Data {
			if !Equal(literalValue(av.Data[i]), literalValue(bv.Data[i])) {
				return false
			}
		}
		return true
	case *symbols.RecordValue:
		bv, ok := b.(*symbols.RecordValue)
		if !ok || av.Name != bv.Name || av.Fields.Len() != bv.Fields.Len() {
			return false
		}
		for pair := av.Fields.Oldest(); pair != nil; pair = pair.Next() {
			other, ok := bv.Fields.Get(pair.Key)
			if !ok || !Equal(literalValue(pair.Value), literalValue(other)) {
				return false
			}
		}
		return true
	case *symbols.ModuleValue:
		bv, ok := b.(*symbols.ModuleValue)
		return ok && av.Name == bv.Name
	}
	return false
}

// literalValue unwraps an already resolved property value.
func literalValue(pv symbols.PropertyValue) symbols.Value {
	if l, ok := pv.(*symbols.Literal); ok {
		return l.Value
	}
	return nil
}

func number(v symbols.Value) (float64, bool) {
	switch n := v.(type) {
	case *symbols.IntegerValue:
		return float64(n.Value), true
	case *symbols.DecimalValue:
		return n.Value, true
	}
	return 0, false
}

func (e *Evaluator) compare(a, b symbols.Value, op string, line int) (bool, error) {
	a, b = symbols.Unwrap(a), symbols.Unwrap(b)
	var c int
	if x, ok := number(a); ok {
		y, ok := number(b)
		if !ok {
			return false, diagnostics.Parsef(e.docID, line, "cannot compare %s with %s", kindName(a), kindName(b))
		}
		switch {
		case x < y:
			c = -1
		case x > y:
			c = 1
		}
	} else {
		x, ok1 := a.(*symbols.StringValue)
		y, ok2 := b.(*symbols.StringValue)
		if !ok1 || !ok2 {
			return false, diagnostics.Parsef(e.docID, line, "cannot compare %s with %s", kindName(a), kindName(b))
		}
		c = strings.Compare(x.Text, y.Text)
	}
	switch op {
	case "<":
		return c < 0, nil
	case "<=":
		return c <= 0, nil
	case ">":
		return c > 0, nil
	}
	return c >= 0, nil
}

// arithmetic combines integers exactly and decimals with decimal
// precision. `+` on a string concatenates.
func (e *Evaluator) arithmetic(op string, a, b symbols.Value, line int) (symbols.Value, error) {
	a, b = symbols.Unwrap(a), symbols.Unwrap(b)
	if op == "+" {
		_, as := a.(*symbols.StringValue)
		_, bs := b.(*symbols.StringValue)
		if as || bs {
			x, _ := symbols.Text(a)
			y, _ := symbols.Text(b)
			return &symbols.StringValue{Text: x + y}, nil
		}
	}
	if x, ok := a.(*symbols.IntegerValue); ok {
		if y, ok := b.(*symbols.IntegerValue); ok {
			return e.integerArithmetic(op, x.Value, y.Value, line)
		}
	}
	x, ok1 := number(a)
	y, ok2 := number(b)
	if !ok1 || !ok2 {
		return nil, diagnostics.Parsef(e.docID, line, "operator %s is not defined for %s and %s", op, kindName(a), kindName(b))
	}
	return e.decimalArithmetic(op, x, y, line)
}

func (e *Evaluator) integerArithmetic(op string, x, y int64, line int) (symbols.Value, error) {
	switch op {
	case "+":
		return &symbols.IntegerValue{Value: x + y}, nil
	case "-":
		return &symbols.IntegerValue{Value: x - y}, nil
	case "*":
		return &symbols.IntegerValue{Value: x * y}, nil
	}
	if y == 0 {
		return nil, diagnostics.Otherf(e.docID, line, "division by zero")
	}
	if op == "/" {
		return &symbols.IntegerValue{Value: x / y}, nil
	}
	return &symbols.IntegerValue{Value: x % y}, nil
}

func (e *Evaluator) decimalArithmetic(op string, x, y float64, line int) (symbols.Value, error) {
	dx, err := new(apd.Decimal).SetFloat64(x)
	if err != nil {
		return nil, diagnostics.Otherf(e.docID, line, "%v", err)
	}
	dy, err := new(apd.Decimal).SetFloat64(y)
	if err != nil {
		return nil, diagnostics.Otherf(e.docID, line, "%v", err)
	}
	if (op == "/" || op == "%") && dy.Sign() == 0 {
		return nil, diagnostics.Otherf(e.docID, line, "division by zero")
	}
	result := new(apd.Decimal)
	switch op {
	case "+":
		_, err = decimalContext.Add(result, dx, dy)
	case "-":
		_, err = decimalContext.Sub(result, dx, dy)
	case "*":
		_, err = decimalContext.Mul(result, dx, dy)
	case "/":
		_, err = decimalContext.Quo(result, dx, dy)
	case "%":
		_, err = decimalContext.Rem(result, dx, dy)
	}
	if err != nil {
		return nil, diagnostics.Otherf(e.docID, line, "%v", err)
	}
	f, err := result.Float64()
	if err != nil {
		return nil, diagnostics.Otherf(e.docID, line, "%v", err)
	}
	return &symbols.DecimalValue{Value: f}, nil
}

// builtin evaluates len and is_empty. The event-only builtins have no
// value while rendering.
func (e *Evaluator) builtin(name string, args []symbols.Value, line int) (symbols.Value, bool, error) {
	name = strings.TrimPrefix(name, config.KernelDocument+config.VariantSeparator)
	switch name {
	case config.LenFuncName, config.IsEmptyFuncName:
		if len(args) != 1 {
			return nil, true, diagnostics.Parsef(e.docID, line, "`%s` takes one argument", name)
		}
		n := -1
		switch v := args[0].(type) {
		case *symbols.ListValue:
			n = len(v.Data)
		case *symbols.StringValue:
			n = utf8.RuneCountInString(v.Text)
		case *symbols.OptionalValue:
			if v.Data != nil {
				return e.builtin(name, []symbols.Value{v.Data}, line)
			}
			n = 0
		}
		if n < 0 {
			return nil, true, diagnostics.Parsef(e.docID, line, "`%s` is not defined for %s", name, kindName(args[0]))
		}
		if name == config.LenFuncName {
			return &symbols.IntegerValue{Value: int64(n)}, true, nil
		}
		return &symbols.BooleanValue{Value: n == 0}, true, nil
	case config.EnableDarkModeFuncName, config.EnableLightModeFuncName, config.EnableSystemModeFuncName:
		return nil, true, nil
	}
	return nil, false, nil
}

func kindName(v symbols.Value) string {
	if v == nil {
		return "nothing"
	}
	return v.Kind().String()
}
