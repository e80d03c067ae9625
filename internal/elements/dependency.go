package elements

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Parameter is what a dependency sets on its node: the slot value while
// the dependency's condition holds, and the value otherwise.
type Parameter struct {
	Value   ConditionalValue  `json:"value" yaml:"value"`
	Default *ConditionalValue `json:"default,omitempty" yaml:"default,omitempty"`
}

// Dependency is one way a node reacts to a change of a variable.
type Dependency struct {
	Type       DependencyType                             `json:"dependency-type" yaml:"dependency-type"`
	Condition  any                                        `json:"condition,omitempty" yaml:"condition,omitempty"`
	Parameters *orderedmap.OrderedMap[string, *Parameter] `json:"parameters" yaml:"parameters"`
	Remaining  *string                                    `json:"remaining,omitempty" yaml:"remaining,omitempty"`
}

// NodeDependencies are the dependencies of one variable, by node data-id.
// For Variable dependencies the key is the dependent variable's name.
type NodeDependencies struct {
	Dependencies *orderedmap.OrderedMap[string, []*Dependency] `json:"dependencies" yaml:"dependencies"`
}

// DependencyMap maps a variable name to what depends on it.
type DependencyMap = orderedmap.OrderedMap[string, *NodeDependencies]

func NewDependencyMap() *DependencyMap {
	return orderedmap.New[string, *NodeDependencies]()
}

// AddDependency appends d to m[variable][node].
func AddDependency(m *DependencyMap, variable, node string, d *Dependency) {
	nd, ok := m.Get(variable)
	if !ok {
		nd = &NodeDependencies{Dependencies: orderedmap.New[string, []*Dependency]()}
		m.Set(variable, nd)
	}
	list, _ := nd.Dependencies.Get(node)
	nd.Dependencies.Set(node, append(list, d))
}

// Lookup returns the dependencies of variable on node.
func Lookup(m *DependencyMap, variable, node string) []*Dependency {
	nd, ok := m.Get(variable)
	if !ok {
		return nil
	}
	list, _ := nd.Dependencies.Get(node)
	return list
}
