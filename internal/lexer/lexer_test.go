package lexer

import (
	"testing"

	"github.com/funvibe/ftdc/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `$dark && not $lib#count.value >= 10 || len($items) == 0; $a-b - 1.5
*$x != "hi"`

	tests := []struct {
		expectedType   token.TokenType
		expectedLexeme string
	}{
		{token.REF, "$dark"},
		{token.AND, "&&"},
		{token.BANG, "not"},
		{token.REF, "$lib#count.value"},
		{token.GTE, ">="},
		{token.INT, "10"},
		{token.OR, "||"},
		{token.IDENT, "len"},
		{token.LPAREN, "("},
		{token.REF, "$items"},
		{token.RPAREN, ")"},
		{token.EQ, "=="},
		{token.INT, "0"},
		{token.SEMICOLON, ";"},
		{token.REF, "$a-b"},
		{token.MINUS, "-"},
		{token.FLOAT, "1.5"},
		{token.NEWLINE, "\n"},
		{token.CLONE, "*$x"},
		{token.NOT_EQ, "!="},
		{token.STRING, "hi"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - type wrong. expected=%q, got=%q (%q)", i, tt.expectedType, tok.Type, tok.Lexeme)
		}
		if tok.Lexeme != tt.expectedLexeme {
			t.Fatalf("tests[%d] - lexeme wrong. expected=%q, got=%q", i, tt.expectedLexeme, tok.Lexeme)
		}
	}
}

func TestReferenceLiteralDropsSigil(t *testing.T) {
	tok := New("$person.name").NextToken()
	if tok.Literal != "person.name" {
		t.Errorf("literal = %v, want person.name", tok.Literal)
	}
	tok = New("*$person").NextToken()
	if tok.Type != token.CLONE || tok.Literal != "person" {
		t.Errorf("clone token = %v", tok)
	}
}

func TestLineNumbers(t *testing.T) {
	toks := NewAt("$a\n$b", 7).Tokens()
	if toks[0].Line != 7 {
		t.Errorf("first token line = %d, want 7", toks[0].Line)
	}
	if toks[2].Line != 8 {
		t.Errorf("third token line = %d, want 8", toks[2].Line)
	}
}

func TestUnterminatedString(t *testing.T) {
	tok := New(`"abc`).NextToken()
	if tok.Type != token.ILLEGAL {
		t.Errorf("expected ILLEGAL, got %s", tok.Type)
	}
}
