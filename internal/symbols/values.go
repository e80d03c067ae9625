package symbols

import (
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/funvibe/ftdc/internal/typesystem"
)

// Fields is an insertion-ordered map of named property values.
type Fields = orderedmap.OrderedMap[string, PropertyValue]

// NewFields returns an empty ordered field map.
func NewFields() *Fields {
	return orderedmap.New[string, PropertyValue]()
}

// Value is a fully evaluated datum.
type Value interface {
	Kind() typesystem.Kind
	valueNode()
}

type StringValue struct {
	Text string
}

func (s *StringValue) Kind() typesystem.Kind { return typesystem.String }
func (s *StringValue) valueNode()            {}

type IntegerValue struct {
	Value int64
}

func (i *IntegerValue) Kind() typesystem.Kind { return typesystem.Integer }
func (i *IntegerValue) valueNode()            {}

type DecimalValue struct {
	Value float64
}

func (d *DecimalValue) Kind() typesystem.Kind { return typesystem.Decimal }
func (d *DecimalValue) valueNode()            {}

type BooleanValue struct {
	Value bool
}

func (b *BooleanValue) Kind() typesystem.Kind { return typesystem.Boolean }
func (b *BooleanValue) valueNode()            {}

// OptionalValue holds Data, or nothing when Data is nil.
type OptionalValue struct {
	Data Value
	Elem typesystem.Kind
}

func (o *OptionalValue) Kind() typesystem.Kind { return typesystem.OptionalOf(o.Elem) }
func (o *OptionalValue) valueNode()            {}

// IsNone reports whether the optional is empty.
func (o *OptionalValue) IsNone() bool { return o.Data == nil }

type ListValue struct {
	Data []PropertyValue
	Elem typesystem.Kind
}

func (l *ListValue) Kind() typesystem.Kind { return typesystem.ListOf(l.Elem) }
func (l *ListValue) valueNode()            {}

// RecordValue is an instance of the record Name.
type RecordValue struct {
	Name   string
	Fields *Fields
}

func (r *RecordValue) Kind() typesystem.Kind { return typesystem.Record(r.Name) }
func (r *RecordValue) valueNode()            {}

// Field returns the named field value.
func (r *RecordValue) Field(name string) (PropertyValue, bool) {
	return r.Fields.Get(name)
}

// OrTypeValue is a selected variant of the or-type Name.
type OrTypeValue struct {
	Name        string
	Variant     string
	FullVariant string
	Value       PropertyValue
}

func (o *OrTypeValue) Kind() typesystem.Kind {
	return typesystem.KOrType{Name: o.Name, Variant: o.Variant, FullVariant: o.FullVariant}
}
func (o *OrTypeValue) valueNode() {}

// UIValue is a component held as a value. Scope is the environment the
// executor captured when the value was bound; the component's references
// are resolved there, not where it is finally placed.
type UIValue struct {
	Name      string
	Component *Component
	Scope     any
}

func (u *UIValue) Kind() typesystem.Kind { return typesystem.UI }
func (u *UIValue) valueNode()            {}

// ModuleValue names an imported document. Things is filled lazily by
// callers that need the member list.
type ModuleValue struct {
	Name   string
	Things []string
}

func (m *ModuleValue) Kind() typesystem.Kind { return typesystem.Module }
func (m *ModuleValue) valueNode()            {}

type KwArgsValue struct {
	Arguments *Fields
}

func (k *KwArgsValue) Kind() typesystem.Kind { return typesystem.KwArgs }
func (k *KwArgsValue) valueNode()            {}

type ObjectValue struct {
	Values *Fields
}

func (o *ObjectValue) Kind() typesystem.Kind { return typesystem.Object }
func (o *ObjectValue) valueNode()            {}

// Text renders a primitive value as display text.
func Text(v Value) (string, bool) {
	switch val := v.(type) {
	case *StringValue:
		return val.Text, true
	case *IntegerValue:
		return strconv.FormatInt(val.Value, 10), true
	case *DecimalValue:
		return strconv.FormatFloat(val.Value, 'f', -1, 64), true
	case *BooleanValue:
		return strconv.FormatBool(val.Value), true
	case *OptionalValue:
		if val.Data == nil {
			return "", false
		}
		return Text(val.Data)
	}
	return "", false
}

// Unwrap strips optional wrappers. It returns nil for an empty optional.
func Unwrap(v Value) Value {
	for {
		o, ok := v.(*OptionalValue)
		if !ok {
			return v
		}
		if o.Data == nil {
			return nil
		}
		v = o.Data
	}
}
