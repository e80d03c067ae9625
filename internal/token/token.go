package token

import "fmt"

type TokenType string

type Token struct {
	Type    TokenType
	Lexeme  string
	Literal any
	Line    int
	Column  int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q) at %d:%d", t.Type, t.Lexeme, t.Line, t.Column)
}

const (
	ILLEGAL TokenType = "ILLEGAL"
	EOF     TokenType = "EOF"
	NEWLINE TokenType = "NEWLINE"

	// Identifiers and literals
	IDENT  TokenType = "IDENT"  // plain names: function names, keyword argument names
	REF    TokenType = "REF"    // $name, $doc#name.field
	CLONE  TokenType = "CLONE"  // *$name
	INT    TokenType = "INT"    // 12
	FLOAT  TokenType = "FLOAT"  // 1.5
	STRING TokenType = "STRING" // "text" or 'text'

	// Operators
	ASSIGN       TokenType = "="
	PLUS_ASSIGN  TokenType = "+="
	MINUS_ASSIGN TokenType = "-="
	PLUS         TokenType = "+"
	MINUS        TokenType = "-"
	ASTERISK     TokenType = "*"
	SLASH        TokenType = "/"
	PERCENT      TokenType = "%"
	BANG         TokenType = "!"
	EQ           TokenType = "=="
	NOT_EQ       TokenType = "!="
	LT           TokenType = "<"
	GT           TokenType = ">"
	LTE          TokenType = "<="
	GTE          TokenType = ">="
	AND          TokenType = "&&"
	OR           TokenType = "||"

	// Delimiters
	COMMA     TokenType = ","
	SEMICOLON TokenType = ";"
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"

	// Keywords
	TRUE  TokenType = "TRUE"
	FALSE TokenType = "FALSE"
	NULL  TokenType = "NULL"
)

var keywords = map[string]TokenType{
	"true":  TRUE,
	"false": FALSE,
	"null":  NULL,
	"NULL":  NULL,
	"and":   AND,
	"or":    OR,
	"not":   BANG,
}

// LookupIdent returns the keyword token type for ident, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
