package ast

// ValueSource records where a string value was written.
type ValueSource int

const (
	SourceDefault ValueSource = iota
	SourceCaption
	SourceBody
	SourceHeader
)

func (s ValueSource) String() string {
	switch s {
	case SourceCaption:
		return "caption"
	case SourceBody:
		return "body"
	case SourceHeader:
		return "header"
	default:
		return "default"
	}
}

// VariableValue is the unevaluated value of a header, caption, body or
// variable definition.
type VariableValue interface {
	GetLine() int
	variableValue()
}

// StringValue is a scalar written as text.
type StringValue struct {
	Value  string
	Source ValueSource
	Line   int
}

func (s *StringValue) GetLine() int { return s.Line }
func (s *StringValue) variableValue() {}

// ListItem is a list element with an optional kind tag.
type ListItem struct {
	Kind  string
	Value VariableValue
}

// ListValue is a list literal.
type ListValue struct {
	Values []*ListItem
	Line   int
}

func (l *ListValue) GetLine() int { return l.Line }
func (l *ListValue) variableValue() {}

// RecordValue is a record literal. It also encodes UI values, in which case
// Name is the component to invoke and Values holds its subsections.
type RecordValue struct {
	Name    string
	Caption VariableValue
	Headers []*Header
	Body    VariableValue
	Values  []*ListItem
	Line    int
}

func (r *RecordValue) GetLine() int { return r.Line }
func (r *RecordValue) variableValue() {}

// Invocation converts a record literal describing UI into an invocation.
func (r *RecordValue) Invocation() *ComponentInvocation {
	inv := &ComponentInvocation{
		Name:    r.Name,
		Caption: r.Caption,
		Body:    r.Body,
		Line:    r.Line,
	}
	for _, h := range r.Headers {
		switch {
		case h.Key == "if":
			if s, ok := h.Value.(*StringValue); ok {
				inv.Condition = &Condition{Expression: s.Value, Line: h.Line}
				continue
			}
		case h.Key == "$loop$":
			if s, ok := h.Value.(*StringValue); ok {
				inv.Iteration = &Loop{Expression: s.Value, Line: h.Line}
				continue
			}
		case IsEventKey(h.Key):
			if s, ok := h.Value.(*StringValue); ok {
				inv.Events = append(inv.Events, &Event{Name: EventName(h.Key), Action: s.Value, Line: h.Line})
				continue
			}
		}
		inv.Headers = append(inv.Headers, h)
	}
	for _, item := range r.Values {
		if rec, ok := item.Value.(*RecordValue); ok {
			child := rec.Invocation()
			if child.Name == "" {
				child.Name = item.Kind
			}
			inv.Subsections = append(inv.Subsections, child)
		}
	}
	return inv
}

// OptionalValue wraps a value that may be null; Value is nil for null.
type OptionalValue struct {
	Value VariableValue
	Line  int
}

func (o *OptionalValue) GetLine() int { return o.Line }
func (o *OptionalValue) variableValue() {}

// IsNull reports whether v is an explicit null.
func IsNull(v VariableValue) bool {
	if v == nil {
		return false
	}
	o, ok := v.(*OptionalValue)
	return ok && o.Value == nil
}

// IsEventKey reports whether a header key has the `$on-<event>$` shape.
func IsEventKey(key string) bool {
	return len(key) > 5 && key[0] == '$' && key[len(key)-1] == '$' && key[1:4] == "on-"
}

// EventName strips the `$on-` and `$` markers from an event key.
func EventName(key string) string {
	if !IsEventKey(key) {
		return key
	}
	return key[4 : len(key)-1]
}
