package parser

import (
	"regexp"
	"strings"

	"github.com/funvibe/ftdc/internal/ast"
	"github.com/funvibe/ftdc/internal/config"
	"github.com/funvibe/ftdc/internal/diagnostics"
)

// ValueForm classifies a textual property value.
type ValueForm int

const (
	FormLiteral ValueForm = iota
	FormReference
	FormClone
	FormFunctionCall
)

// ParsedValue is the classification of a textual property value.
type ParsedValue struct {
	Form ValueForm
	Name string // reference name without sigil, or the callee name
	Call *ast.CallExpression
	Text string // literal text, escapes removed
}

var referenceName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_\-\.#]*$`)

// IsReferenceName reports whether name (without sigil) can be referenced.
func IsReferenceName(name string) bool {
	return referenceName.MatchString(name) && !strings.HasSuffix(name, ".") && !strings.HasSuffix(name, "-")
}

// ParseValue classifies s as a literal, `$ref`, `*$ref` / `clone(ref)` or
// `$fn(k = v, ...)`. A leading `\$` escapes a literal dollar sign.
func ParseValue(s string, line int) (*ParsedValue, error) {
	trimmed := strings.TrimSpace(s)

	if strings.HasPrefix(trimmed, `\$`) {
		return &ParsedValue{Form: FormLiteral, Text: trimmed[1:]}, nil
	}

	if strings.HasPrefix(trimmed, config.CloneFuncName+"(") && strings.HasSuffix(trimmed, ")") {
		inner := strings.TrimSpace(trimmed[len(config.CloneFuncName)+1 : len(trimmed)-1])
		inner = strings.TrimPrefix(inner, config.ReferencePrefix)
		if !IsReferenceName(inner) {
			return nil, diagnostics.Parsef("", line, "invalid clone target `%s`", inner)
		}
		return &ParsedValue{Form: FormClone, Name: inner}, nil
	}

	if strings.HasPrefix(trimmed, config.ClonePrefix) {
		name := trimmed[len(config.ClonePrefix):]
		if IsReferenceName(name) {
			return &ParsedValue{Form: FormClone, Name: name}, nil
		}
	}

	if strings.HasPrefix(trimmed, config.ReferencePrefix) {
		name := trimmed[len(config.ReferencePrefix):]
		if IsReferenceName(name) {
			return &ParsedValue{Form: FormReference, Name: name}, nil
		}
		if open := strings.Index(name, "("); open > 0 && strings.HasSuffix(name, ")") && IsReferenceName(name[:open]) {
			exp, err := ParseExpression(trimmed, line)
			if err != nil {
				return nil, err
			}
			call, ok := exp.(*ast.CallExpression)
			if !ok {
				return nil, diagnostics.Parsef("", line, "expected a function call, got `%s`", trimmed)
			}
			if len(call.Arguments) > 0 {
				return nil, diagnostics.Parsef("", line, "function `%s` must be called with keyword arguments", call.FunctionName())
			}
			return &ParsedValue{Form: FormFunctionCall, Name: call.FunctionName(), Call: call}, nil
		}
	}

	return &ParsedValue{Form: FormLiteral, Text: s}, nil
}

// LoopHeader is a parsed `$loop$` value.
type LoopHeader struct {
	Driver       string
	Alias        string
	CounterAlias string
}

// ParseLoop parses `<driver> as $alias [counter $ctr]`. The alias
// defaults to "object" when omitted.
func ParseLoop(s string, line int) (*LoopHeader, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, diagnostics.Parsef("", line, "empty loop")
	}
	lh := &LoopHeader{Driver: fields[0], Alias: "object"}
	rest := fields[1:]
	for len(rest) > 0 {
		if len(rest) < 2 {
			return nil, diagnostics.Parsef("", line, "incomplete loop clause `%s`", s)
		}
		name := strings.TrimPrefix(rest[1], config.ReferencePrefix)
		if !IsReferenceName(name) {
			return nil, diagnostics.Parsef("", line, "invalid loop alias `%s`", rest[1])
		}
		switch rest[0] {
		case "as":
			lh.Alias = name
		case "counter":
			lh.CounterAlias = name
		default:
			return nil, diagnostics.Parsef("", line, "unexpected `%s` in loop", rest[0])
		}
		rest = rest[2:]
	}
	return lh, nil
}
