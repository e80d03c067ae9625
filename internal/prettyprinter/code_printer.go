package prettyprinter

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/funvibe/ftdc/internal/ast"
)

// --- Code Printer (Output looks like source code) ---

// Operator precedence (higher = binds tighter)
var operatorPrecedence = map[string]int{
	"=":  1,
	"+=": 1,
	"-=": 1,
	"||": 2,
	"&&": 3,
	"==": 4,
	"!=": 4,
	"<":  5,
	">":  5,
	"<=": 5,
	">=": 5,
	"+":  6,
	"-":  6,
	"*":  7,
	"/":  7,
	"%":  7,
}

const prefixPrecedence = 8

func getPrecedence(op string) int {
	if p, ok := operatorPrecedence[op]; ok {
		return p
	}
	return 10 // Default high precedence for unknown ops
}

// Right-associative operators
var rightAssoc = map[string]bool{
	"=":  true,
	"+=": true,
	"-=": true,
}

// CodePrinter prints expressions of conditions and function bodies back to
// canonical source text: single spaces around binary operators, double
// quoted strings and only the parentheses precedence requires.
type CodePrinter struct {
	buf bytes.Buffer
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// Print returns the canonical text of expr.
func Print(expr ast.Expression) string {
	p := NewCodePrinter()
	p.printExpr(expr, 0, false)
	return p.String()
}

// PrintProgram prints a function body, one expression per line.
func PrintProgram(prog *ast.Program) string {
	p := NewCodePrinter()
	for i, expr := range prog.Expressions {
		if i > 0 {
			p.writeln()
		}
		p.printExpr(expr, 0, false)
	}
	return p.String()
}

func (p *CodePrinter) printExpr(expr ast.Expression, parentPrec int, isRight bool) {
	if expr == nil {
		p.write("<???>")
		return
	}
	switch e := expr.(type) {
	case *ast.InfixExpression:
		prec := getPrecedence(e.Operator)
		needParens := prec < parentPrec
		// For same precedence, check associativity
		if prec == parentPrec {
			if isRight && !rightAssoc[e.Operator] {
				needParens = true
			} else if !isRight && rightAssoc[e.Operator] {
				needParens = true
			}
		}
		if needParens {
			p.write("(")
		}
		p.printExpr(e.Left, prec, false)
		p.write(" " + e.Operator + " ")
		p.printExpr(e.Right, prec, true)
		if needParens {
			p.write(")")
		}
	case *ast.PrefixExpression:
		p.write(e.Operator)
		p.printExpr(e.Right, prefixPrecedence, false)
	default:
		expr.Accept(p)
	}
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) writeln() {
	p.buf.WriteString("\n")
}

func (p *CodePrinter) VisitIdentifier(n *ast.Identifier) {
	p.write(n.Value)
}

func (p *CodePrinter) VisitReference(n *ast.Reference) {
	p.write(n.Source())
}

func (p *CodePrinter) VisitIntegerLiteral(n *ast.IntegerLiteral) {
	p.write(strconv.FormatInt(n.Value, 10))
}

func (p *CodePrinter) VisitFloatLiteral(n *ast.FloatLiteral) {
	s := strconv.FormatFloat(n.Value, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	p.write(s)
}

func (p *CodePrinter) VisitStringLiteral(n *ast.StringLiteral) {
	p.write(strconv.Quote(n.Value))
}

func (p *CodePrinter) VisitBooleanLiteral(n *ast.BooleanLiteral) {
	if n.Value {
		p.write("true")
	} else {
		p.write("false")
	}
}

func (p *CodePrinter) VisitNullLiteral(n *ast.NullLiteral) {
	p.write("NULL")
}

func (p *CodePrinter) VisitPrefixExpression(n *ast.PrefixExpression) {
	p.printExpr(n, 0, false)
}

func (p *CodePrinter) VisitInfixExpression(n *ast.InfixExpression) {
	p.printExpr(n, 0, false)
}

func (p *CodePrinter) VisitCallExpression(n *ast.CallExpression) {
	n.Function.Accept(p)
	p.write("(")
	first := true
	for _, arg := range n.Arguments {
		if !first {
			p.write(", ")
		}
		first = false
		p.printExpr(arg, 0, false)
	}
	for _, arg := range n.Named {
		if !first {
			p.write(", ")
		}
		first = false
		if arg.Mutable {
			p.write("$")
		}
		p.write(arg.Name + " = ")
		p.printExpr(arg.Value, 0, false)
	}
	p.write(")")
}

func (p *CodePrinter) VisitAssignExpression(n *ast.AssignExpression) {
	p.write(n.Target.Source())
	p.write(" " + n.Operator + " ")
	p.printExpr(n.Value, 0, false)
}
