package symbols

import (
	"github.com/funvibe/ftdc/internal/typesystem"
)

type SourceKind int

const (
	SourceGlobal SourceKind = iota
	SourceLocal
	SourceLoop
)

// Source says where a reference is resolved. Name is the component for
// Local and the loop alias for Loop.
type Source struct {
	Kind SourceKind
	Name string
}

var Global = Source{Kind: SourceGlobal}

func Local(component string) Source  { return Source{Kind: SourceLocal, Name: component} }
func LoopSource(alias string) Source { return Source{Kind: SourceLoop, Name: alias} }

func (s Source) IsGlobal() bool { return s.Kind == SourceGlobal }

func (s Source) String() string {
	switch s.Kind {
	case SourceLocal:
		return "local(" + s.Name + ")"
	case SourceLoop:
		return "loop(" + s.Name + ")"
	default:
		return "global"
	}
}

// PropertyValue is an unreduced value attached to a slot.
type PropertyValue interface {
	Kind() typesystem.Kind
	IsMutable() bool
	GetLine() int
	propertyValue()
}

// Literal is an already evaluated value.
type Literal struct {
	Value   Value
	Mutable bool
	Line    int
}

func (l *Literal) Kind() typesystem.Kind { return l.Value.Kind() }
func (l *Literal) IsMutable() bool       { return l.Mutable }
func (l *Literal) GetLine() int          { return l.Line }
func (l *Literal) propertyValue()        {}

// Reference is a live pointer; reading it re-resolves Name.
type Reference struct {
	Name     string
	KindData typesystem.KindData
	Source   Source
	Mutable  bool
	Line     int
}

func (r *Reference) Kind() typesystem.Kind { return r.KindData.Kind }
func (r *Reference) IsMutable() bool       { return r.Mutable }
func (r *Reference) GetLine() int          { return r.Line }
func (r *Reference) propertyValue()        {}

// Clone is a snapshot of Name taken when it is evaluated.
type Clone struct {
	Name     string
	KindData typesystem.KindData
	Source   Source
	Mutable  bool
	Line     int
}

func (c *Clone) Kind() typesystem.Kind { return c.KindData.Kind }
func (c *Clone) IsMutable() bool       { return c.Mutable }
func (c *Clone) GetLine() int          { return c.Line }
func (c *Clone) propertyValue()        {}

// FunctionCall invokes Name with keyword arguments. Module is set when the
// callee was reached through a module-typed argument.
type FunctionCall struct {
	Name     string
	KindData typesystem.KindData
	Mutable  bool
	Values   *Fields
	Module   string
	Line     int
}

func (f *FunctionCall) Kind() typesystem.Kind { return f.KindData.Kind }
func (f *FunctionCall) IsMutable() bool       { return f.Mutable }
func (f *FunctionCall) GetLine() int          { return f.Line }
func (f *FunctionCall) propertyValue()        {}

// NewLiteral wraps v as an immutable literal.
func NewLiteral(v Value, line int) *Literal {
	return &Literal{Value: v, Line: line}
}

// NoneOf is an empty optional of kind k.
func NoneOf(k typesystem.Kind, line int) *Literal {
	return NewLiteral(&OptionalValue{Elem: typesystem.Inner(k)}, line)
}

// ReferenceName returns the name a Reference or Clone points at.
func ReferenceName(pv PropertyValue) (string, Source, bool) {
	switch v := pv.(type) {
	case *Reference:
		return v.Name, v.Source, true
	case *Clone:
		return v.Name, v.Source, true
	}
	return "", Source{}, false
}

// IsNone reports whether pv is a literal empty optional.
func IsNone(pv PropertyValue) bool {
	l, ok := pv.(*Literal)
	if !ok {
		return false
	}
	o, ok := l.Value.(*OptionalValue)
	return ok && o.IsNone()
}
