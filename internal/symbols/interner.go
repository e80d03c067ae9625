package symbols

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Interner holds each constant value once, keyed by the qualified name of
// the immutable variable that introduced it.
type Interner struct {
	values *orderedmap.OrderedMap[string, Value]
}

func NewInterner() *Interner {
	return &Interner{values: orderedmap.New[string, Value]()}
}

// Intern records v under name. A name is interned at most once; later
// calls keep the first value.
func (in *Interner) Intern(name string, v Value) Value {
	if existing, ok := in.values.Get(name); ok {
		return existing
	}
	in.values.Set(name, v)
	return v
}

func (in *Interner) Lookup(name string) (Value, bool) {
	return in.values.Get(name)
}

func (in *Interner) Len() int { return in.values.Len() }

// Each visits constants in interning order.
func (in *Interner) Each(fn func(name string, v Value)) {
	for pair := in.values.Oldest(); pair != nil; pair = pair.Next() {
		fn(pair.Key, pair.Value)
	}
}

// IsStatic reports whether v contains no references or calls, so its
// value can never change.
func IsStatic(v Value) bool {
	switch val := v.(type) {
	case *OptionalValue:
		return val.Data == nil || IsStatic(val.Data)
	case *ListValue:
		for _, item := range val.Data {
			if !isStaticProperty(item) {
				return false
			}
		}
	case *RecordValue:
		for pair := val.Fields.Oldest(); pair != nil; pair = pair.Next() {
			if !isStaticProperty(pair.Value) {
				return false
			}
		}
	case *OrTypeValue:
		return isStaticProperty(val.Value)
	case *UIValue, *ModuleValue:
		return false
	}
	return true
}

func isStaticProperty(pv PropertyValue) bool {
	l, ok := pv.(*Literal)
	return ok && IsStatic(l.Value)
}
