package parser

import (
	"testing"

	"github.com/funvibe/ftdc/internal/ast"
	"github.com/funvibe/ftdc/internal/diagnostics"
)

func parseOK(t *testing.T, src string) ast.Expression {
	t.Helper()
	exp, err := ParseExpression(src, 1)
	if err != nil {
		t.Fatalf("ParseExpression(%q): %v", src, err)
	}
	return exp
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"$a + $b * 2", "($a + ($b * 2))"},
		{"!$a && $b", "((!$a) && $b)"},
		{"not $a and $b or $c", "(((!$a) && $b) || $c)"},
		{"$a == 1 || $b != 2", "(($a == 1) || ($b != 2))"},
		{"{ $x >= 3 }", "($x >= 3)"},
		{"($a + 1) * 2", "(($a + 1) * 2)"},
		{"-$a - 1", "((-$a) - 1)"},
		{`len($items) > 0`, "(len($items) > 0)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := render(parseOK(t, tt.input))
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestNamedCall(t *testing.T) {
	exp := parseOK(t, "$lib.add(a = 1, $b = $count)")
	call, ok := exp.(*ast.CallExpression)
	if !ok {
		t.Fatalf("expected call, got %T", exp)
	}
	if call.FunctionName() != "lib.add" {
		t.Errorf("function = %q", call.FunctionName())
	}
	if len(call.Named) != 2 {
		t.Fatalf("expected 2 named args, got %d", len(call.Named))
	}
	if call.Named[0].Name != "a" || call.Named[0].Mutable {
		t.Errorf("first arg = %+v", call.Named[0])
	}
	if call.Named[1].Name != "b" || !call.Named[1].Mutable {
		t.Errorf("second arg = %+v", call.Named[1])
	}
}

func TestParseProgram(t *testing.T) {
	prog, err := ParseProgram("$a = !$a;\n$b += 1\n$a", 3)
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	if len(prog.Expressions) != 3 {
		t.Fatalf("expected 3 expressions, got %d", len(prog.Expressions))
	}
	assign, ok := prog.Expressions[1].(*ast.AssignExpression)
	if !ok || assign.Operator != "+=" || assign.Target.Name != "b" {
		t.Errorf("second expression = %#v", prog.Expressions[1])
	}
	if assign.Token.Line != 4 {
		t.Errorf("line = %d, want 4", assign.Token.Line)
	}
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{"$a +", "(1", "1 2", "3 = 4", ""} {
		t.Run(src, func(t *testing.T) {
			_, err := ParseExpression(src, 5)
			if err == nil {
				t.Fatal("expected error")
			}
			if !diagnostics.Is(err, diagnostics.ParseError) {
				t.Errorf("expected ParseError, got %v", err)
			}
		})
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input string
		form  ValueForm
		name  string
	}{
		{"hello", FormLiteral, ""},
		{"$count", FormReference, "count"},
		{"$lib#person.name", FormReference, "lib#person.name"},
		{"*$count", FormClone, "count"},
		{"clone($count)", FormClone, "count"},
		{"clone(count)", FormClone, "count"},
		{"$add(a = 1, b = 2)", FormFunctionCall, "add"},
		{`\$5`, FormLiteral, ""},
		{"$ 5", FormLiteral, ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			pv, err := ParseValue(tt.input, 1)
			if err != nil {
				t.Fatalf("ParseValue: %v", err)
			}
			if pv.Form != tt.form || pv.Name != tt.name {
				t.Errorf("got form %d name %q", pv.Form, pv.Name)
			}
		})
	}

	pv, _ := ParseValue(`\$5`, 1)
	if pv.Text != "$5" {
		t.Errorf("escaped literal = %q", pv.Text)
	}
	if _, err := ParseValue("$add(1, 2)", 1); err == nil {
		t.Error("positional arguments must be rejected")
	}
}

func TestParseLoop(t *testing.T) {
	lh, err := ParseLoop("$xs as $x counter $i", 1)
	if err != nil {
		t.Fatalf("ParseLoop: %v", err)
	}
	if lh.Driver != "$xs" || lh.Alias != "x" || lh.CounterAlias != "i" {
		t.Errorf("loop = %+v", lh)
	}
	lh, _ = ParseLoop("$xs", 1)
	if lh.Alias != "object" {
		t.Errorf("default alias = %q", lh.Alias)
	}
	if _, err := ParseLoop("$xs as", 1); err == nil {
		t.Error("expected error for incomplete clause")
	}
	if _, err := ParseLoop("$xs with $x", 1); err == nil {
		t.Error("expected error for unknown clause")
	}
}

func render(e ast.Expression) string {
	switch n := e.(type) {
	case *ast.Reference:
		return n.Source()
	case *ast.Identifier:
		return n.Value
	case *ast.IntegerLiteral, *ast.FloatLiteral, *ast.BooleanLiteral:
		return n.TokenLiteral()
	case *ast.StringLiteral:
		return `"` + n.Value + `"`
	case *ast.PrefixExpression:
		return "(" + n.Operator + render(n.Right) + ")"
	case *ast.InfixExpression:
		return "(" + render(n.Left) + " " + n.Operator + " " + render(n.Right) + ")"
	case *ast.CallExpression:
		s := n.FunctionName() + "("
		for i, a := range n.Arguments {
			if i > 0 {
				s += ", "
			}
			s += render(a)
		}
		return s + ")"
	}
	return "?"
}
