package analyzer

import (
	"strings"

	"github.com/funvibe/ftdc/internal/ast"
	"github.com/funvibe/ftdc/internal/config"
	"github.com/funvibe/ftdc/internal/diagnostics"
	"github.com/funvibe/ftdc/internal/symbols"
	"github.com/funvibe/ftdc/internal/typesystem"
)

// target is what an invocation instantiates.
type target struct {
	name      string
	arguments []*symbols.Argument
	source    symbols.ComponentSource
	// variable is the UI or module binding of a FromVariable target.
	variable *symbols.Reference
	// configurable is false for raw UI bindings, which take no properties.
	configurable bool
}

// component analyzes an invocation. The loop is analyzed first because its
// alias is visible to the name, condition, properties and children.
func (a *Analyzer) component(inv *ast.ComponentInvocation, sc *scope) (symbols.State[*symbols.Component], error) {
	line := inv.Line
	c := &symbols.Component{Line: line}

	inner := sc
	if inv.Iteration != nil {
		st, err := a.loop(inv.Iteration, sc)
		if err != nil || st.IsContinue() {
			return symbols.Forward[*symbols.Component](st), err
		}
		c.Iteration = st.Value.loop
		inner = st.Value.scope
	}

	tst, err := a.target(inv.Name, inner, line)
	if err != nil || tst.IsContinue() {
		return symbols.Forward[*symbols.Component](tst), err
	}
	t := tst.Value
	c.Name = t.name
	c.Source = t.source
	c.Variable = t.variable

	if inv.Condition != nil {
		st, err := a.condition(inv.Condition.Expression, inner, inv.Condition.Line)
		if err != nil || st.IsContinue() {
			return symbols.Forward[*symbols.Component](st), err
		}
		c.Condition = st.Value
	}

	for _, e := range inv.Events {
		st, err := a.event(e, inner)
		if err != nil || st.IsContinue() {
			return symbols.Forward[*symbols.Component](st), err
		}
		c.Events = append(c.Events, st.Value)
	}

	if id, ok := literalID(inv); ok {
		c.ID = id
	}

	if !t.configurable {
		if inv.Caption != nil || inv.Body != nil || len(propertyHeaders(inv.Headers)) > 0 || len(inv.Subsections) > 0 {
			return symbols.State[*symbols.Component]{}, diagnostics.Parsef(sc.docID(), line, "component variable `%s` takes no properties", inv.Name)
		}
		return symbols.Done(c), nil
	}

	pst, err := a.properties(inv, t, inner)
	if err != nil || pst.IsContinue() {
		return symbols.Forward[*symbols.Component](pst), err
	}
	c.Properties = pst.Value

	cst, err := a.children(inv, t, c.Properties, inner)
	if err != nil || cst.IsContinue() {
		return symbols.Forward[*symbols.Component](cst), err
	}
	if cst.Value != nil {
		c.Properties = append(c.Properties, cst.Value.property)
		c.Children = cst.Value.components
	}
	return symbols.Done(c), nil
}

// target resolves the name of an invocation. Loop aliases and arguments of
// kind UI, and global UI variables, give variable components; a member of a
// module argument is analyzed against the argument's default module.
func (a *Analyzer) target(name string, sc *scope, line int) (symbols.State[target], error) {
	r, ok, err := a.resolveLoop(name, sc, line)
	if !ok && err == nil {
		r, ok, err = a.resolveLocal(name, sc, line)
	}
	if err != nil {
		return symbols.State[target]{}, err
	}
	if ok {
		switch {
		case typesystem.IsUI(r.Kind.Kind) && !typesystem.IsList(r.Kind.Kind) && r.Member == "":
			return symbols.Done(target{
				name:     r.Name,
				source:   symbols.FromVariable,
				variable: &symbols.Reference{Name: r.Name, KindData: r.Kind, Source: r.Source, Mutable: r.Mutable, Line: line},
			}), nil
		case typesystem.IsModule(r.Kind.Kind) && r.Member != "":
			return a.moduleTarget(r, sc, line)
		}
	}

	qualified := qualify(sc.doc, name)
	st, err := a.Search(qualified, sc.docID(), line)
	if err != nil || st.IsContinue() {
		return symbols.Forward[target](st), err
	}
	if st.Value.Remaining != "" {
		return symbols.State[target]{}, diagnostics.Parsef(sc.docID(), line, "`%s` is not a component", name)
	}
	switch thing := st.Value.Thing.(type) {
	case *symbols.ComponentDefinition:
		return symbols.Done(target{
			name:         thing.Name,
			arguments:    thing.Arguments,
			source:       symbols.FromDeclaration,
			configurable: true,
		}), nil
	case *symbols.Variable:
		if typesystem.IsUI(thing.Kind.Kind) && !typesystem.IsList(thing.Kind.Kind) {
			return symbols.Done(target{
				name:     thing.Name,
				source:   symbols.FromVariable,
				variable: &symbols.Reference{Name: thing.Name, KindData: thing.Kind, Source: symbols.Global, Mutable: thing.Mutable, Line: line},
			}), nil
		}
	}
	return symbols.State[target]{}, diagnostics.Parsef(sc.docID(), line, "`%s` is not a component", name)
}

func (a *Analyzer) moduleTarget(r *resolved, sc *scope, line int) (symbols.State[target], error) {
	module, err := defaultModule(r.Argument, sc.docID(), line)
	if err != nil {
		return symbols.State[target]{}, err
	}
	st, err := a.Search(module+config.ThingSeparator+r.Member, sc.docID(), line)
	if err != nil || st.IsContinue() {
		return symbols.Forward[target](st), err
	}
	def, ok := st.Value.Thing.(*symbols.ComponentDefinition)
	if !ok || st.Value.Remaining != "" {
		return symbols.State[target]{}, diagnostics.Parsef(sc.docID(), line, "`%s` is not a component of module `%s`", r.Member, module)
	}
	binding := strings.TrimSuffix(r.Name, "."+r.Member)
	return symbols.Done(target{
		name:         def.Name,
		arguments:    def.Arguments,
		source:       symbols.FromVariable,
		variable:     &symbols.Reference{Name: binding, KindData: r.Argument.Kind, Source: r.Source, Line: line},
		configurable: true,
	}), nil
}

// literalID returns the value of an unconditional literal `id` header.
func literalID(inv *ast.ComponentInvocation) (string, bool) {
	for _, h := range inv.Headers {
		if h.Key != "id" || h.Condition != "" {
			continue
		}
		if s, ok := h.Value.(*ast.StringValue); ok && !strings.HasPrefix(strings.TrimSpace(s.Value), config.ReferencePrefix) {
			return strings.TrimSpace(s.Value), true
		}
	}
	return "", false
}

// propertyHeaders drops the headers every invocation accepts.
func propertyHeaders(headers []*ast.Header) []*ast.Header {
	var out []*ast.Header
	for _, h := range headers {
		if h.Key != "id" {
			out = append(out, h)
		}
	}
	return out
}

type childrenResult struct {
	property   *symbols.Property
	components []*symbols.Component
}

// children packs the subsections of an invocation into the children slot.
func (a *Analyzer) children(inv *ast.ComponentInvocation, t target, props []*symbols.Property, sc *scope) (symbols.State[*childrenResult], error) {
	if len(inv.Subsections) == 0 {
		return symbols.Done[*childrenResult](nil), nil
	}
	line := inv.Line
	slot, ok := symbols.ChildrenArgument(t.arguments)
	if !ok {
		return symbols.State[*childrenResult]{}, diagnostics.Parsef(sc.docID(), line, "Subsection is unexpected for `%s`", t.name)
	}
	for _, p := range props {
		if p.ArgumentName(t.arguments) == slot.Name {
			return symbols.State[*childrenResult]{}, diagnostics.Parsef(sc.docID(), p.Line, "`%s` is passed both as header and as subsections", slot.Name)
		}
	}

	list := &symbols.ListValue{Elem: typesystem.UI}
	var comps []*symbols.Component
	for _, sub := range inv.Subsections {
		st, err := a.component(sub, sc)
		if err != nil || st.IsContinue() {
			return symbols.Forward[*childrenResult](st), err
		}
		comps = append(comps, st.Value)
		list.Data = append(list.Data, symbols.NewLiteral(&symbols.UIValue{Name: st.Value.Name, Component: st.Value}, sub.Line))
	}
	return symbols.Done(&childrenResult{
		property: &symbols.Property{
			Value:  symbols.NewLiteral(list, line),
			Source: symbols.PropertySource{Kind: symbols.PropertySubsection, Name: slot.Name},
			Line:   line,
		},
		components: comps,
	}), nil
}
