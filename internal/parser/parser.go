package parser

import (
	"fmt"
	"strings"

	"github.com/funvibe/ftdc/internal/ast"
	"github.com/funvibe/ftdc/internal/diagnostics"
	"github.com/funvibe/ftdc/internal/lexer"
	"github.com/funvibe/ftdc/internal/token"
)

const MaxRecursionDepth = 200

const (
	_ int = iota
	LOWEST
	ASSIGN      // = += -=
	OR          // ||
	AND         // &&
	EQUALS      // == !=
	LESSGREATER // > < >= <=
	SUM         // + -
	PRODUCT     // * / %
	PREFIX      // -X !X
	CALL        // fn(X)
)

var precedences = map[token.TokenType]int{
	token.ASSIGN:       ASSIGN,
	token.PLUS_ASSIGN:  ASSIGN,
	token.MINUS_ASSIGN: ASSIGN,
	token.OR:           OR,
	token.AND:          AND,
	token.EQ:           EQUALS,
	token.NOT_EQ:       EQUALS,
	token.LT:           LESSGREATER,
	token.GT:           LESSGREATER,
	token.LTE:          LESSGREATER,
	token.GTE:          LESSGREATER,
	token.PLUS:         SUM,
	token.MINUS:        SUM,
	token.ASTERISK:     PRODUCT,
	token.SLASH:        PRODUCT,
	token.PERCENT:      PRODUCT,
	token.LPAREN:       CALL,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser is a Pratt parser for the expression language.
type Parser struct {
	tokens []token.Token
	pos    int

	curToken  token.Token
	peekToken token.Token

	errors []error
	depth  int

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn
}

// New creates a parser over src; line is the document line src starts at.
func New(src string, line int) *Parser {
	p := &Parser{tokens: lexer.NewAt(src, line).Tokens()}

	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.REF, p.parseReference)
	p.registerPrefix(token.CLONE, p.parseReference)
	p.registerPrefix(token.INT, p.parseIntegerLiteral)
	p.registerPrefix(token.FLOAT, p.parseFloatLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.TRUE, p.parseBoolean)
	p.registerPrefix(token.FALSE, p.parseBoolean)
	p.registerPrefix(token.NULL, p.parseNull)
	p.registerPrefix(token.BANG, p.parsePrefixExpression)
	p.registerPrefix(token.MINUS, p.parsePrefixExpression)
	p.registerPrefix(token.LPAREN, p.parseGroupedExpression)
	p.registerPrefix(token.LBRACE, p.parseBracedExpression)

	p.infixParseFns = make(map[token.TokenType]infixParseFn)
	for _, t := range []token.TokenType{
		token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.PERCENT,
		token.EQ, token.NOT_EQ, token.LT, token.GT, token.LTE, token.GTE,
		token.AND, token.OR,
	} {
		p.registerInfix(t, p.parseInfixExpression)
	}
	p.registerInfix(token.LPAREN, p.parseCallExpression)
	p.registerInfix(token.ASSIGN, p.parseAssignExpression)
	p.registerInfix(token.PLUS_ASSIGN, p.parseAssignExpression)
	p.registerInfix(token.MINUS_ASSIGN, p.parseAssignExpression)

	p.nextToken()
	p.nextToken()
	return p
}

// ParseExpression parses a single expression. Surrounding `{ }` are allowed.
func ParseExpression(src string, line int) (ast.Expression, error) {
	p := New(src, line)
	p.skipNewlines()
	exp := p.parseExpression(LOWEST)
	p.nextToken()
	p.skipNewlines()
	if len(p.errors) == 0 && !p.curTokenIs(token.EOF) {
		p.errorf(p.curToken, "unexpected %q after expression", p.curToken.Lexeme)
	}
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	return exp, nil
}

// ParseProgram parses a function body: expressions separated by `;` or
// newlines.
func ParseProgram(src string, line int) (*ast.Program, error) {
	p := New(src, line)
	prog := &ast.Program{}
	for {
		for p.curTokenIs(token.NEWLINE) || p.curTokenIs(token.SEMICOLON) {
			p.nextToken()
		}
		if p.curTokenIs(token.EOF) {
			break
		}
		exp := p.parseExpression(LOWEST)
		if exp != nil {
			prog.Expressions = append(prog.Expressions, exp)
		}
		p.nextToken()
		if !p.curTokenIs(token.NEWLINE) && !p.curTokenIs(token.SEMICOLON) && !p.curTokenIs(token.EOF) {
			p.errorf(p.curToken, "expected `;` or newline, got %q", p.curToken.Lexeme)
			break
		}
	}
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	if len(prog.Expressions) == 0 {
		return nil, diagnostics.Parsef("", line, "empty function body")
	}
	return prog, nil
}

func (p *Parser) registerPrefix(t token.TokenType, fn prefixParseFn) { p.prefixParseFns[t] = fn }
func (p *Parser) registerInfix(t token.TokenType, fn infixParseFn)   { p.infixParseFns[t] = fn }

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	if p.pos < len(p.tokens) {
		p.peekToken = p.tokens[p.pos]
		p.pos++
	} else {
		p.peekToken = token.Token{Type: token.EOF, Line: p.curToken.Line}
	}
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) skipNewlines() {
	for p.curTokenIs(token.NEWLINE) {
		p.nextToken()
	}
}

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.errorf(p.peekToken, "expected %s, got %q", t, p.peekToken.Lexeme)
	return false
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) errorf(tok token.Token, format string, args ...any) {
	p.errors = append(p.errors, diagnostics.Parsef("", tok.Line, "%s", fmt.Sprintf(format, args...)))
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	p.depth++
	defer func() { p.depth-- }()

	if p.depth > MaxRecursionDepth {
		p.errorf(p.curToken, "expression too complex: recursion depth limit exceeded")
		return nil
	}

	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		if p.curTokenIs(token.EOF) {
			p.errorf(p.curToken, "unexpected end of expression")
		} else {
			p.errorf(p.curToken, "no prefix parse function for %q", p.curToken.Lexeme)
		}
		return nil
	}
	leftExp := prefix()

	for !p.peekTokenIs(token.NEWLINE) && !p.peekTokenIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
		if leftExp == nil {
			return nil
		}
	}

	return leftExp
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
}

func (p *Parser) parseReference() ast.Expression {
	name, _ := p.curToken.Literal.(string)
	return &ast.Reference{Token: p.curToken, Name: name, Clone: p.curTokenIs(token.CLONE)}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	v, _ := p.curToken.Literal.(int64)
	return &ast.IntegerLiteral{Token: p.curToken, Value: v}
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	v, _ := p.curToken.Literal.(float64)
	return &ast.FloatLiteral{Token: p.curToken, Value: v}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Lexeme}
}

func (p *Parser) parseBoolean() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parseNull() ast.Expression {
	return &ast.NullLiteral{Token: p.curToken}
}

func (p *Parser) parsePrefixExpression() ast.Expression {
	op := p.curToken.Lexeme
	if p.curTokenIs(token.BANG) {
		op = "!"
	}
	expression := &ast.PrefixExpression{Token: p.curToken, Operator: op}
	p.nextToken()
	expression.Right = p.parseExpression(PREFIX)
	if expression.Right == nil {
		return nil
	}
	return expression
}

func (p *Parser) parseInfixExpression(left ast.Expression) ast.Expression {
	expression := &ast.InfixExpression{
		Token:    p.curToken,
		Operator: string(p.curToken.Type),
		Left:     left,
	}
	precedence := p.curPrecedence()
	p.nextToken()
	p.skipNewlines()
	expression.Right = p.parseExpression(precedence)
	if expression.Right == nil {
		return nil
	}
	return expression
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	exp := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return exp
}

func (p *Parser) parseBracedExpression() ast.Expression {
	p.nextToken()
	p.skipNewlines()
	exp := p.parseExpression(LOWEST)
	for p.peekTokenIs(token.NEWLINE) {
		p.nextToken()
	}
	if !p.expectPeek(token.RBRACE) {
		return nil
	}
	return exp
}

func (p *Parser) parseCallExpression(function ast.Expression) ast.Expression {
	switch function.(type) {
	case *ast.Identifier, *ast.Reference:
	default:
		p.errorf(p.curToken, "cannot call %q", function.TokenLiteral())
		return nil
	}
	call := &ast.CallExpression{Token: p.curToken, Function: function}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return call
	}
	for {
		p.nextToken()
		if named := p.tryNamedArgument(); named != nil {
			call.Named = append(call.Named, named)
		} else {
			arg := p.parseExpression(LOWEST)
			if arg == nil {
				return nil
			}
			call.Arguments = append(call.Arguments, arg)
		}
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		break
	}
	if len(call.Named) > 0 && len(call.Arguments) > 0 {
		p.errorf(call.Token, "cannot mix positional and keyword arguments")
		return nil
	}
	return call
}

// tryNamedArgument parses `name = value` or `$name = value` when the
// current token starts one.
func (p *Parser) tryNamedArgument() *ast.NamedArgument {
	if !(p.curTokenIs(token.IDENT) || p.curTokenIs(token.REF)) || !p.peekTokenIs(token.ASSIGN) {
		return nil
	}
	named := &ast.NamedArgument{Mutable: p.curTokenIs(token.REF)}
	if named.Mutable {
		named.Name, _ = p.curToken.Literal.(string)
	} else {
		named.Name = p.curToken.Lexeme
	}
	p.nextToken() // =
	p.nextToken()
	named.Value = p.parseExpression(LOWEST)
	if named.Value == nil {
		return nil
	}
	return named
}

func (p *Parser) parseAssignExpression(left ast.Expression) ast.Expression {
	target, ok := left.(*ast.Reference)
	if !ok || target.Clone {
		p.errorf(p.curToken, "left side of %s must be a reference", p.curToken.Lexeme)
		return nil
	}
	exp := &ast.AssignExpression{Token: p.curToken, Target: target, Operator: p.curToken.Lexeme}
	p.nextToken()
	exp.Value = p.parseExpression(ASSIGN - 1)
	if exp.Value == nil {
		return nil
	}
	return exp
}

// StripBraces removes one pair of surrounding `{ }` from a condition.
func StripBraces(src string) string {
	s := strings.TrimSpace(src)
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		return strings.TrimSpace(s[1 : len(s)-1])
	}
	return s
}
