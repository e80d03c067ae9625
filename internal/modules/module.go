package modules

import (
	"github.com/funvibe/ftdc/internal/ast"
)

// Module is one loaded document.
type Module struct {
	ID       string
	Path     string
	Document *ast.Document
	Imports  map[string]string // alias -> document id

	Analyzing bool
	Analyzed  bool
}

func newModule(doc *ast.Document, path string) *Module {
	m := &Module{
		ID:       doc.ID,
		Path:     path,
		Document: doc,
		Imports:  make(map[string]string),
	}
	for _, node := range doc.Nodes {
		if imp, ok := node.(*ast.Import); ok {
			m.Imports[imp.AliasOrDefault()] = imp.Path
		}
	}
	return m
}

// ResolveAlias maps an import alias used inside the module to a document id.
func (m *Module) ResolveAlias(alias string) (string, bool) {
	id, ok := m.Imports[alias]
	return id, ok
}

// Definitions returns the nodes that introduce a name.
func (m *Module) Definitions() []ast.Node {
	var out []ast.Node
	for _, node := range m.Document.Nodes {
		if node.DeclaredName() != "" {
			out = append(out, node)
		}
	}
	return out
}

// Invocations returns the top-level component invocations.
func (m *Module) Invocations() []*ast.ComponentInvocation {
	var out []*ast.ComponentInvocation
	for _, node := range m.Document.Nodes {
		if inv, ok := node.(*ast.ComponentInvocation); ok {
			out = append(out, inv)
		}
	}
	return out
}
