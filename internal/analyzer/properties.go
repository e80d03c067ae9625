package analyzer

import (
	"github.com/funvibe/ftdc/internal/ast"
	"github.com/funvibe/ftdc/internal/config"
	"github.com/funvibe/ftdc/internal/diagnostics"
	"github.com/funvibe/ftdc/internal/symbols"
	"github.com/funvibe/ftdc/internal/typesystem"
)

type propsState = symbols.State[[]*symbols.Property]

// properties resolves the caption, body and headers of an invocation
// against the arguments of its target. Unconditional headers of a list
// argument accumulate into one property; any other argument may receive
// at most one unconditional value.
func (a *Analyzer) properties(inv *ast.ComponentInvocation, t target, sc *scope) (propsState, error) {
	docID := sc.docID()
	var props []*symbols.Property
	sources := make(map[string]int)

	passed := func(value ast.VariableValue, kind symbols.PropertySourceKind, what string, accepts func(typesystem.KindData) bool) error {
		if value == nil {
			return nil
		}
		var arg *symbols.Argument
		for _, candidate := range t.arguments {
			if accepts(candidate.Kind) {
				arg = candidate
				break
			}
		}
		if arg == nil {
			return diagnostics.UnknownDataf(docID, inv.Line, "`%s` does not take a %s", t.name, what)
		}
		if arg.Access == symbols.AccessPrivate {
			return diagnostics.InvalidAccessf(docID, inv.Line, "argument `%s` of `%s` is private", arg.Name, t.name)
		}
		if sources[arg.Name] > 0 {
			return diagnostics.ForbiddenUsagef(docID, inv.Line, "pass either caption or body for `%s`, not both", arg.Name)
		}
		st, err := a.propertyValue(value, &arg.Kind, false, sc, inv.Line)
		if err != nil {
			return err
		}
		if st.IsContinue() {
			return continued(st.Missing)
		}
		props = append(props, &symbols.Property{
			Value:  st.Value,
			Source: symbols.PropertySource{Kind: kind, Name: arg.Name},
			Line:   inv.Line,
		})
		sources[arg.Name]++
		return nil
	}
	if err := passed(inv.Caption, symbols.PropertyCaption, "caption", func(k typesystem.KindData) bool { return k.Caption }); err != nil {
		return propsFailure(err)
	}
	if err := passed(inv.Body, symbols.PropertyBody, "body", func(k typesystem.KindData) bool { return k.Body }); err != nil {
		return propsFailure(err)
	}

	kwArgs := kwArgsArgument(t.arguments)
	kw := symbols.NewFields()
	accumulated := make(map[string]bool)
	headerSeen := make(map[string]bool)

	for _, h := range inv.Headers {
		base, variant := ast.HeaderBaseKey(h.Key), ast.HeaderVariant(h.Key)
		arg, ok := symbols.FindArgument(t.arguments, base)
		if !ok {
			if base == "id" {
				continue
			}
			if kwArgs == nil {
				return propsState{}, diagnostics.Parsef(docID, h.Line, "`%s` has no argument `%s`", t.name, base)
			}
			if h.Condition != "" {
				return propsState{}, diagnostics.Parsef(docID, h.Line, "keyword argument `%s` cannot be conditional", h.Key)
			}
			if h.Mutable {
				return propsState{}, diagnostics.ForbiddenUsagef(docID, h.Line, "keyword argument `%s` cannot be mutable", h.Key)
			}
			st, err := a.propertyValue(h.Value, nil, false, sc, h.Line)
			if err != nil || st.IsContinue() {
				return symbols.Forward[[]*symbols.Property](st), err
			}
			kw.Set(h.Key, st.Value)
			continue
		}
		if arg.Access == symbols.AccessPrivate {
			return propsState{}, diagnostics.InvalidAccessf(docID, h.Line, "argument `%s` of `%s` is private", arg.Name, t.name)
		}
		if h.Mutable != arg.Mutable {
			return propsState{}, diagnostics.ForbiddenUsagef(docID, h.Line, "mutability of `%s` does not match its declaration in `%s`", arg.Name, t.name)
		}
		if typesystem.IsChildren(arg.Kind.Kind) && h.Condition != "" {
			return propsState{}, diagnostics.Parsef(docID, h.Line, "`%s` cannot be conditional", arg.Name)
		}

		kind := arg.Kind
		if variant != "" {
			if kind, ok = narrow(kind, variant); !ok {
				return propsState{}, diagnostics.NotFoundf(docID, h.Line, "`%s` has no variant `%s`", arg.Kind.Kind, variant)
			}
		}

		if h.Condition == "" && arg.Kind.IsList() && variant == "" {
			if accumulated[arg.Name] {
				continue
			}
			accumulated[arg.Name] = true
			st, err := a.accumulateHeaders(unconditionalHeaders(inv.Headers, arg.Name), kind, sc)
			if err != nil || st.IsContinue() {
				return symbols.Forward[[]*symbols.Property](st), err
			}
			props = append(props, &symbols.Property{
				Value:  st.Value,
				Source: symbols.PropertySource{Kind: symbols.PropertyHeader, Name: arg.Name, Mutable: h.Mutable},
				Line:   h.Line,
			})
			sources[arg.Name]++
			continue
		}

		var cond *symbols.Expression
		if h.Condition != "" {
			cst, err := a.condition(h.Condition, sc, h.Line)
			if err != nil || cst.IsContinue() {
				return symbols.Forward[[]*symbols.Property](cst), err
			}
			cond = cst.Value
		} else {
			if headerSeen[arg.Name] {
				return propsState{}, diagnostics.ForbiddenUsagef(docID, h.Line, "repeated header `%s`", arg.Name)
			}
			headerSeen[arg.Name] = true
			sources[arg.Name]++
		}

		st, err := a.propertyValue(h.Value, &kind, h.Mutable, sc, h.Line)
		if err != nil || st.IsContinue() {
			return symbols.Forward[[]*symbols.Property](st), err
		}
		props = append(props, &symbols.Property{
			Value:     st.Value,
			Source:    symbols.PropertySource{Kind: symbols.PropertyHeader, Name: arg.Name, Mutable: h.Mutable},
			Condition: cond,
			Line:      h.Line,
		})
	}

	if kw.Len() > 0 {
		props = append(props, &symbols.Property{
			Value:  symbols.NewLiteral(&symbols.KwArgsValue{Arguments: kw}, inv.Line),
			Source: symbols.PropertySource{Kind: symbols.PropertyHeader, Name: kwArgs.Name},
			Line:   inv.Line,
		})
		sources[kwArgs.Name]++
	}

	for _, arg := range t.arguments {
		switch {
		case sources[arg.Name] > 1:
			return propsState{}, diagnostics.ForbiddenUsagef(docID, inv.Line, "`%s` is passed more than once to `%s`", arg.Name, t.name)
		case sources[arg.Name] == 0 && arg.IsRequired():
			return propsState{}, diagnostics.MissingDataf(docID, inv.Line, "argument `%s` of `%s` is required", arg.Name, t.name)
		}
	}

	if t.name == config.TextInputComponent && sources["value"] > 0 && sources["default-value"] > 0 {
		return propsState{}, diagnostics.ForbiddenUsagef(docID, inv.Line, "`value` and `default-value` cannot both be passed to `%s`", t.name)
	}
	return symbols.Done(props), nil
}

// blocked carries a Continue through helpers that only return an error.
type blocked struct{ missing string }

func (b *blocked) Error() string { return "waiting for " + b.missing }

func continued(missing string) error { return &blocked{missing: missing} }

func propsFailure(err error) (propsState, error) {
	if b, ok := err.(*blocked); ok {
		return symbols.Continue[[]*symbols.Property](b.missing), nil
	}
	return propsState{}, err
}

func kwArgsArgument(args []*symbols.Argument) *symbols.Argument {
	for _, arg := range args {
		if typesystem.IsKwArgs(arg.Kind.Kind) {
			return arg
		}
	}
	return nil
}

func unconditionalHeaders(headers []*ast.Header, name string) []*ast.Header {
	var out []*ast.Header
	for _, h := range headers {
		if h.Condition == "" && h.Key == name {
			out = append(out, h)
		}
	}
	return out
}
