package elements

type AttributeType string

const (
	AttributeStyle AttributeType = "style"
	Attribute      AttributeType = "attribute"
)

// ConditionalValue is one serialized value of a slot. Reference names the
// variable the value was read from, if any.
type ConditionalValue struct {
	Value     string  `json:"value" yaml:"value"`
	Important bool    `json:"important,omitempty" yaml:"important,omitempty"`
	Reference *string `json:"reference,omitempty" yaml:"reference,omitempty"`
}

// ConditionWithValue pairs a printed condition with the value the slot
// takes while it holds.
type ConditionWithValue struct {
	Condition string           `json:"condition" yaml:"condition"`
	Value     ConditionalValue `json:"value" yaml:"value"`
}

// ConditionalAttribute is a slot whose value depends on runtime
// conditions: the first holding condition wins, otherwise Default.
type ConditionalAttribute struct {
	Type                AttributeType        `json:"attribute-type" yaml:"attribute-type"`
	ConditionsWithValue []ConditionWithValue `json:"conditions-with-value" yaml:"conditions-with-value"`
	Default             *ConditionalValue    `json:"default,omitempty" yaml:"default,omitempty"`
}

// Resolve returns the value selected by holds, which reports whether the
// i-th condition is true.
func (ca *ConditionalAttribute) Resolve(holds func(i int) bool) *ConditionalValue {
	for i := range ca.ConditionsWithValue {
		if holds(i) {
			return &ca.ConditionsWithValue[i].Value
		}
	}
	return ca.Default
}

type DependencyType string

const (
	DependencyValue    DependencyType = "value"
	DependencyStyle    DependencyType = "style"
	DependencyVisible  DependencyType = "visible"
	DependencyVariable DependencyType = "variable"
)

// Trace records that a slot of an element was computed from Variable, a
// global. Remaining is the field path read below the variable.
type Trace struct {
	Variable  string
	Remaining string
	Type      DependencyType
	// Key is the CSS property or attribute name; empty for Visible.
	Key string
	// Condition is the value Variable must have for this trace to apply:
	// true for `$v`, false for `!$v`, the literal for `$v == lit`, or the
	// printed expression otherwise. Nil for unconditional slots.
	Condition any
	Value     *ConditionalValue
	Default   *ConditionalValue
}
