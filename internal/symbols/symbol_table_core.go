package symbols

import (
	"sort"
	"strings"
)

// SymbolTable maps qualified names ("doc#name") to definitions across every
// loaded document.
type SymbolTable struct {
	things  map[string]Thing
	pending map[string]bool
	order   []string
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		things:  make(map[string]Thing),
		pending: make(map[string]bool),
	}
}

// Define stores t under its qualified name, replacing a pending placeholder.
func (st *SymbolTable) Define(t Thing) {
	name := t.ThingName()
	if _, exists := st.things[name]; !exists {
		st.order = append(st.order, name)
	}
	st.things[name] = t
	delete(st.pending, name)
}

// DefinePending stores a placeholder so that recursive definitions can see
// their own signature while their body is analyzed.
func (st *SymbolTable) DefinePending(t Thing) {
	st.Define(t)
	st.pending[t.ThingName()] = true
}

func (st *SymbolTable) IsPending(name string) bool {
	return st.pending[name]
}

// Find looks up an exact qualified name.
func (st *SymbolTable) Find(name string) (Thing, bool) {
	t, ok := st.things[name]
	return t, ok
}

// FindWithRemaining finds the longest prefix of name, split at '.', that is
// defined, and returns the unconsumed suffix.
func (st *SymbolTable) FindWithRemaining(name string) (Thing, string, bool) {
	candidate := name
	remaining := ""
	for {
		if t, ok := st.things[candidate]; ok {
			return t, remaining, true
		}
		i := strings.LastIndex(candidate, ".")
		if i < 0 || i < strings.Index(candidate, "#") {
			return nil, "", false
		}
		if remaining == "" {
			remaining = candidate[i+1:]
		} else {
			remaining = candidate[i+1:] + "." + remaining
		}
		candidate = candidate[:i]
	}
}

// Names returns every defined name in definition order.
func (st *SymbolTable) Names() []string {
	out := make([]string, len(st.order))
	copy(out, st.order)
	return out
}

// DocumentNames returns the names defined by document docID, sorted.
func (st *SymbolTable) DocumentNames(docID string) []string {
	var out []string
	prefix := docID + "#"
	for _, name := range st.order {
		if strings.HasPrefix(name, prefix) {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
