package prettyprinter

import (
	"testing"

	"github.com/funvibe/ftdc/internal/elements"
	"github.com/funvibe/ftdc/internal/parser"
)

func TestPrintExpression(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"$count > 0", "$count > 0"},
		{"{ $dark }", "$dark"},
		{"$a and not $b", "$a && !$b"},
		{"($a + 1) * 2", "($a + 1) * 2"},
		{"$a + (1 * 2)", "$a + 1 * 2"},
		{"$a - ($b - $c)", "$a - ($b - $c)"},
		{"($a - $b) - $c", "$a - $b - $c"},
		{"!($a || $b)", "!($a || $b)"},
		{"'x' == $s", `"x" == $s`},
		{"len( $xs )", "len($xs)"},
		{"$lib#greet(name = 'hi', $n = 1)", `$lib#greet(name = "hi", $n = 1)`},
		{"*$item == null", "*$item == NULL"},
		{"1.50 + -2", "1.5 + -2"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node, err := parser.ParseExpression(parser.StripBraces(tt.input), 1)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got := Print(node); got != tt.expected {
				t.Errorf("Print() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestPrintIsStable(t *testing.T) {
	for _, src := range []string{"$a || $b && $c", "($a || $b) && $c", "$x % 2 == 0 || !$flag"} {
		node, err := parser.ParseExpression(src, 1)
		if err != nil {
			t.Fatalf("parse %q: %v", src, err)
		}
		once := Print(node)
		again, err := parser.ParseExpression(once, 1)
		if err != nil {
			t.Fatalf("reparse %q: %v", once, err)
		}
		if twice := Print(again); twice != once {
			t.Errorf("%q printed as %q, then %q", src, once, twice)
		}
	}
}

func TestPrintProgram(t *testing.T) {
	prog, err := parser.ParseProgram("$count += 1; $open = !$open", 1)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	expected := "$count += 1\n$open = !$open"
	if got := PrintProgram(prog); got != expected {
		t.Errorf("PrintProgram() = %q, want %q", got, expected)
	}
}

func TestPrintTree(t *testing.T) {
	root := elements.NewColumn()
	root.DataID = "main"
	text := elements.NewText(elements.KindText)
	text.Text = "hello"
	text.DataID = "0"
	text.Condition = &elements.Condition{Expression: "$open"}
	root.Children = []elements.Element{text, elements.NewNull()}

	expected := "column [main]\n" +
		"  text [0] \"hello\" if $open\n" +
		"  null\n"
	if got := PrintTree(root); got != expected {
		t.Errorf("PrintTree() =\n%s\nwant\n%s", got, expected)
	}
}
