package executor

import (
	"strconv"

	"github.com/funvibe/ftdc/internal/config"
	"github.com/funvibe/ftdc/internal/elements"
)

// AssignIDs gives every element of the tree under root its data-id: the
// comma-joined child-index path from root, which itself is "main". A
// dummy gets its path suffixed with ":dummy". Children spliced in from a
// caller are suffixed with ":" and the id of their insertion point,
// "<append-at>-external:<path of the container>". Ids are recomputed
// from scratch on every call.
func AssignIDs(root elements.Element) {
	if c := root.GetCommon(); c != nil {
		c.DataID = config.RootDataID
	}
	assignChildren(root, "", "")
}

func assignChildren(e elements.Element, path, external string) {
	for i, child := range elements.Children(e) {
		assign(child, join(path, i), external)
	}
	p, ok := e.(elements.Parent)
	if !ok || p.GetContainer().ExternalChildren == nil {
		return
	}
	ext := p.GetContainer().ExternalChildren
	at := path
	if at == "" {
		at = config.RootDataID
	}
	id := ext.ID + config.ExternalIDMarker + at
	if external != "" {
		id = external + "." + id
	}
	for i, child := range ext.Children {
		assign(child, join(path, i), id)
	}
}

func assign(e elements.Element, path, external string) {
	c := e.GetCommon()
	if c == nil {
		return
	}
	id := path
	if external != "" {
		id += ":" + external
	}
	if c.IsDummy {
		id += ":" + config.DummySuffix
	}
	c.DataID = id
	assignChildren(e, path, external)
}

func join(path string, i int) string {
	if path == "" {
		return strconv.Itoa(i)
	}
	return path + "," + strconv.Itoa(i)
}
