// Package dependencies builds the reactive dependency map of an executed
// document: for every global variable, which nodes (or other variables)
// must be updated when it changes, and how.
package dependencies

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/funvibe/ftdc/internal/elements"
)

// Collect turns the traces left on the elements under root into
// dependency records keyed by data-id. Elements without a data-id are
// skipped, so ids must be assigned first.
func Collect(root elements.Element, m *elements.DependencyMap) {
	elements.Walk(root, func(e elements.Element) {
		c := e.GetCommon()
		if c == nil || c.DataID == "" {
			return
		}
		for _, tr := range c.Traces {
			elements.AddDependency(m, tr.Variable, c.DataID, fromTrace(tr))
		}
	})
}

func fromTrace(tr *elements.Trace) *elements.Dependency {
	d := &elements.Dependency{
		Type:       tr.Type,
		Condition:  tr.Condition,
		Parameters: orderedmap.New[string, *elements.Parameter](),
	}
	if tr.Key != "" && tr.Value != nil {
		d.Parameters.Set(tr.Key, &elements.Parameter{Value: *tr.Value, Default: tr.Default})
	}
	if tr.Remaining != "" {
		remaining := tr.Remaining
		d.Remaining = &remaining
	}
	return d
}
