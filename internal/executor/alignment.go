package executor

import (
	"github.com/funvibe/ftdc/internal/elements"
)

// alignChildren gives every child of c the self-alignment that places it
// where the container's align-content says. Children anchored outside
// the normal flow keep their own position.
func alignChildren(c *elements.Container, horizontal bool) {
	if c.AlignContent == nil {
		return
	}
	ca := c.AlignContent.ChildAlignment(horizontal)
	for _, child := range c.Children {
		common := child.GetCommon()
		if common == nil || common.Anchor.Escapes() {
			continue
		}
		aligned := ca
		common.ChildAlignment = &aligned
	}
}
