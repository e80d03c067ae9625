package ast

import (
	"fmt"

	"github.com/funvibe/ftdc/internal/token"
)

// Visitor walks expression nodes.
type Visitor interface {
	VisitIdentifier(*Identifier)
	VisitReference(*Reference)
	VisitIntegerLiteral(*IntegerLiteral)
	VisitFloatLiteral(*FloatLiteral)
	VisitStringLiteral(*StringLiteral)
	VisitBooleanLiteral(*BooleanLiteral)
	VisitNullLiteral(*NullLiteral)
	VisitPrefixExpression(*PrefixExpression)
	VisitInfixExpression(*InfixExpression)
	VisitCallExpression(*CallExpression)
	VisitAssignExpression(*AssignExpression)
}

// Expression is a node of the condition/function-body language.
type Expression interface {
	Accept(v Visitor)
	TokenLiteral() string
	GetToken() token.Token
	expressionNode()
}

// Identifier is a bare name: a built-in function or keyword argument name.
type Identifier struct {
	Token token.Token
	Value string
}

func (i *Identifier) Accept(v Visitor)      { v.VisitIdentifier(i) }
func (i *Identifier) expressionNode()       {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token { return i.Token }

// Reference is `$name` (or `*$name` when Clone is set). Name excludes sigils.
type Reference struct {
	Token token.Token
	Name  string
	Clone bool
}

func (r *Reference) Accept(v Visitor)      { v.VisitReference(r) }
func (r *Reference) expressionNode()       {}
func (r *Reference) TokenLiteral() string  { return r.Token.Lexeme }
func (r *Reference) GetToken() token.Token { return r.Token }

// Source returns the reference as written, sigil included.
func (r *Reference) Source() string {
	if r.Clone {
		return "*$" + r.Name
	}
	return "$" + r.Name
}

type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) Accept(v Visitor)      { v.VisitIntegerLiteral(il) }
func (il *IntegerLiteral) expressionNode()       {}
func (il *IntegerLiteral) TokenLiteral() string  { return il.Token.Lexeme }
func (il *IntegerLiteral) GetToken() token.Token { return il.Token }

type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (fl *FloatLiteral) Accept(v Visitor)      { v.VisitFloatLiteral(fl) }
func (fl *FloatLiteral) expressionNode()       {}
func (fl *FloatLiteral) TokenLiteral() string  { return fl.Token.Lexeme }
func (fl *FloatLiteral) GetToken() token.Token { return fl.Token }

type StringLiteral struct {
	Token token.Token
	Value string
}

func (sl *StringLiteral) Accept(v Visitor)      { v.VisitStringLiteral(sl) }
func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }

type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) Accept(v Visitor)      { v.VisitBooleanLiteral(b) }
func (b *BooleanLiteral) expressionNode()       {}
func (b *BooleanLiteral) TokenLiteral() string  { return b.Token.Lexeme }
func (b *BooleanLiteral) GetToken() token.Token { return b.Token }

type NullLiteral struct {
	Token token.Token
}

func (n *NullLiteral) Accept(v Visitor)      { v.VisitNullLiteral(n) }
func (n *NullLiteral) expressionNode()       {}
func (n *NullLiteral) TokenLiteral() string  { return n.Token.Lexeme }
func (n *NullLiteral) GetToken() token.Token { return n.Token }

// PrefixExpression is `!x` or `-x`.
type PrefixExpression struct {
	Token    token.Token
	Operator string
	Right    Expression
}

func (pe *PrefixExpression) Accept(v Visitor)      { v.VisitPrefixExpression(pe) }
func (pe *PrefixExpression) expressionNode()       {}
func (pe *PrefixExpression) TokenLiteral() string  { return pe.Token.Lexeme }
func (pe *PrefixExpression) GetToken() token.Token { return pe.Token }

// InfixExpression is `left <op> right`. Operator is normalized, so `and`
// is stored as "&&".
type InfixExpression struct {
	Token    token.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (ie *InfixExpression) Accept(v Visitor)      { v.VisitInfixExpression(ie) }
func (ie *InfixExpression) expressionNode()       {}
func (ie *InfixExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *InfixExpression) GetToken() token.Token { return ie.Token }

// NamedArgument is `name = value` inside a call.
type NamedArgument struct {
	Name    string
	Mutable bool // written as `$name = value`
	Value   Expression
}

// CallExpression is `fn(a, b)` for built-ins or `$fn(k = v, ...)` for
// user functions.
type CallExpression struct {
	Token     token.Token
	Function  Expression // *Identifier or *Reference
	Arguments []Expression
	Named     []*NamedArgument
}

func (ce *CallExpression) Accept(v Visitor)      { v.VisitCallExpression(ce) }
func (ce *CallExpression) expressionNode()       {}
func (ce *CallExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token { return ce.Token }

// FunctionName returns the callee name without sigil.
func (ce *CallExpression) FunctionName() string {
	switch fn := ce.Function.(type) {
	case *Identifier:
		return fn.Value
	case *Reference:
		return fn.Name
	}
	return ""
}

// CallKey identifies a user function call inside an expression; one
// callee may be called several times with different arguments.
func (ce *CallExpression) CallKey() string {
	name := ce.FunctionName()
	if r, ok := ce.Function.(*Reference); ok {
		name = r.Source()
	}
	return fmt.Sprintf("%s@%d:%d", name, ce.Token.Line, ce.Token.Column)
}

// AssignExpression is `$x = v`, `$x += v` or `$x -= v` in a function body.
type AssignExpression struct {
	Token    token.Token
	Target   *Reference
	Operator string
	Value    Expression
}

func (ae *AssignExpression) Accept(v Visitor)      { v.VisitAssignExpression(ae) }
func (ae *AssignExpression) expressionNode()       {}
func (ae *AssignExpression) TokenLiteral() string  { return ae.Token.Lexeme }
func (ae *AssignExpression) GetToken() token.Token { return ae.Token }

// Program is a sequence of expressions; its value is the last one's.
type Program struct {
	Expressions []Expression
}

// Inspect calls fn for node and every descendant, depth-first.
// Returning false from fn skips the node's children.
func Inspect(node Expression, fn func(Expression) bool) {
	if node == nil || !fn(node) {
		return
	}
	switch n := node.(type) {
	case *PrefixExpression:
		Inspect(n.Right, fn)
	case *InfixExpression:
		Inspect(n.Left, fn)
		Inspect(n.Right, fn)
	case *CallExpression:
		// The callee is a name, not a value read.
		for _, arg := range n.Arguments {
			Inspect(arg, fn)
		}
		for _, arg := range n.Named {
			Inspect(arg.Value, fn)
		}
	case *AssignExpression:
		Inspect(n.Target, fn)
		Inspect(n.Value, fn)
	}
}

// References returns every reference in node in source order, without
// duplicates.
func References(node Expression) []*Reference {
	var refs []*Reference
	seen := make(map[string]bool)
	Inspect(node, func(e Expression) bool {
		if r, ok := e.(*Reference); ok && !seen[r.Source()] {
			seen[r.Source()] = true
			refs = append(refs, r)
		}
		return true
	})
	return refs
}
