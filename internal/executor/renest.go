package executor

import (
	"github.com/funvibe/ftdc/internal/elements"
)

// heading returns the level of a row or column tagged with a heading
// region.
func heading(e elements.Element) (*elements.Container, int, bool) {
	var (
		c      *elements.Container
		common *elements.Common
	)
	switch el := e.(type) {
	case *elements.Row:
		c, common = &el.Container, &el.Common
	case *elements.Column:
		c, common = &el.Container, &el.Common
	default:
		return nil, 0, false
	}
	level, ok := common.Region.HeadingLevel()
	return c, level, ok
}

// adopt appends e to the children of heading container h. A heading that
// forwards external children receives e there.
func adopt(h *elements.Container, e elements.Element) {
	if h.AppendAt != nil && h.ExternalChildren != nil {
		h.ExternalChildren.Children = append(h.ExternalChildren.Children, e)
		return
	}
	h.Children = append(h.Children, e)
}

// Renest turns a flat run of siblings into an outline: every element
// following a heading moves into it until a heading of the same or a
// higher priority appears. Lower levels have higher priority. Nested
// containers are renested in turn. Renesting its own output changes
// nothing.
func Renest(list []elements.Element) []elements.Element {
	type open struct {
		c     *elements.Container
		level int
	}
	var (
		out   []elements.Element
		stack []open
	)
	for _, e := range list {
		c, level, ok := heading(e)
		if ok {
			for len(stack) > 0 && stack[len(stack)-1].level >= level {
				stack = stack[:len(stack)-1]
			}
		}
		if len(stack) == 0 {
			out = append(out, e)
		} else {
			adopt(stack[len(stack)-1].c, e)
		}
		if ok {
			stack = append(stack, open{c: c, level: level})
		}
	}
	for _, e := range out {
		renestWithin(e)
	}
	return out
}

func renestWithin(e elements.Element) {
	switch el := e.(type) {
	case elements.Parent:
		c := el.GetContainer()
		c.Children = Renest(c.Children)
		if c.ExternalChildren != nil {
			c.ExternalChildren.Children = Renest(c.ExternalChildren.Children)
		}
	case *elements.Markup:
		for _, child := range el.Children {
			renestWithin(child)
		}
	}
}
