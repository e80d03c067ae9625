package executor

import (
	"regexp"
	"strings"

	"github.com/funvibe/ftdc/internal/config"
	"github.com/funvibe/ftdc/internal/elements"
	"github.com/funvibe/ftdc/internal/evaluator"
	"github.com/funvibe/ftdc/internal/symbols"
	"github.com/funvibe/ftdc/internal/typesystem"
)

// markupSpan matches `{name: text}` inside a text.
var markupSpan = regexp.MustCompile(`\{([A-Za-z_][\w.#-]*): ([^{}]*)\}`)

// markup turns a text whose spans name components taking a string
// caption into a Markup element holding one instance per span.
func (x *Executor) markup(t *elements.Text, a *args) (elements.Element, error) {
	spans := markupSpan.FindAllStringSubmatch(t.Text, -1)
	if len(spans) == 0 {
		return t, nil
	}
	var children []elements.Element
	for _, span := range spans {
		def, ok := x.markupComponent(span[1])
		if !ok {
			continue
		}
		c := &symbols.Component{
			Name: def.Name,
			Line: a.line,
			Properties: []*symbols.Property{{
				Value:  symbols.NewLiteral(&symbols.StringValue{Text: span[2]}, a.line),
				Source: symbols.PropertySource{Kind: symbols.PropertyCaption},
				Line:   a.line,
			}},
		}
		el, err := x.instantiate(c, evaluator.NewEnv())
		if err != nil {
			return nil, err
		}
		children = append(children, el)
	}
	if len(children) == 0 {
		return t, nil
	}
	m := elements.NewMarkup()
	m.Text = t.Text
	m.Common = t.Common
	m.Children = children
	return m, nil
}

func (x *Executor) markupComponent(name string) (*symbols.ComponentDefinition, bool) {
	candidates := []string{symbols.Qualify(x.docID, name)}
	if rest, ok := strings.CutPrefix(name, config.KernelDocument+"."); ok {
		candidates = append(candidates, config.KernelDocument+config.ThingSeparator+rest)
	}
	for _, candidate := range candidates {
		t, ok := x.symbols.Find(candidate)
		if !ok {
			continue
		}
		def, ok := t.(*symbols.ComponentDefinition)
		if !ok {
			continue
		}
		for _, arg := range def.Arguments {
			if !arg.Kind.Caption {
				continue
			}
			if _, ok := typesystem.Inner(typesystem.StripConstant(arg.Kind.Kind)).(typesystem.KString); ok {
				return def, true
			}
		}
	}
	return nil, false
}
