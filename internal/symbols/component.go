package symbols

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/funvibe/ftdc/internal/ast"
	"github.com/funvibe/ftdc/internal/typesystem"
)

type Access int

const (
	AccessPublic Access = iota
	AccessPrivate
)

// Argument is a formal parameter of a component or function, or a record
// field. Value is the default, nil when there is none.
type Argument struct {
	Name    string
	Kind    typesystem.KindData
	Mutable bool
	Value   PropertyValue
	Access  Access
	Line    int
}

// IsRequired reports whether a caller must supply the argument.
func (a *Argument) IsRequired() bool {
	return a.Value == nil && !a.Kind.IsOptional() && !a.Kind.IsList()
}

// FindArgument returns the argument called name.
func FindArgument(args []*Argument, name string) (*Argument, bool) {
	for _, a := range args {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// ChildrenArgument returns the unique List(UI) argument, if any.
func ChildrenArgument(args []*Argument) (*Argument, bool) {
	for _, a := range args {
		if typesystem.IsChildren(a.Kind.Kind) {
			return a, true
		}
	}
	return nil, false
}

type PropertySourceKind int

const (
	PropertyCaption PropertySourceKind = iota
	PropertyBody
	PropertyHeader
	PropertySubsection
)

// PropertySource says how a property was written at the invocation.
type PropertySource struct {
	Kind    PropertySourceKind
	Name    string
	Mutable bool
}

// Property is an actual argument of an invocation.
type Property struct {
	Value     PropertyValue
	Source    PropertySource
	Condition *Expression
	Line      int
}

// ArgumentName resolves the argument a property targets.
func (p *Property) ArgumentName(args []*Argument) string {
	switch p.Source.Kind {
	case PropertyHeader:
		return p.Source.Name
	case PropertyCaption:
		for _, a := range args {
			if a.Kind.Caption {
				return a.Name
			}
		}
	case PropertyBody:
		for _, a := range args {
			if a.Kind.Body {
				return a.Name
			}
		}
	case PropertySubsection:
		if a, ok := ChildrenArgument(args); ok {
			return a.Name
		}
	}
	return ""
}

type ComponentSource int

const (
	FromDeclaration ComponentSource = iota
	FromVariable
)

// Component is an analyzed invocation. A FromVariable component is
// invoked through Variable, a UI or module valued binding, and Name is
// only known once that binding is evaluated.
type Component struct {
	ID         string
	Name       string
	Properties []*Property
	Iteration  *Loop
	Condition  *Expression
	Events     []*Event
	Children   []*Component
	Source     ComponentSource
	Variable   *Reference
	Line       int
}

// PropertiesFor returns the properties targeting the named argument.
func (c *Component) PropertiesFor(name string, args []*Argument) []*Property {
	var out []*Property
	for _, p := range c.Properties {
		if p.ArgumentName(args) == name {
			out = append(out, p)
		}
	}
	return out
}

// Loop repeats a component once per element of On.
type Loop struct {
	On           PropertyValue
	Alias        string
	CounterAlias string
	Line         int
}

// Expression is an analyzed boolean condition. References maps each
// reference text appearing in Node (e.g. "$dark") to what it resolved to.
type Expression struct {
	Node       ast.Expression
	Text       string
	References *orderedmap.OrderedMap[string, PropertyValue]
	Line       int
}

// NewExpression returns an expression with an empty reference map.
func NewExpression(node ast.Expression, text string, line int) *Expression {
	return &Expression{
		Node:       node,
		Text:       text,
		References: orderedmap.New[string, PropertyValue](),
		Line:       line,
	}
}

type EventKind int

const (
	EventClick EventKind = iota
	EventMouseEnter
	EventMouseLeave
	EventClickOutside
	EventInput
	EventChange
	EventBlur
	EventFocus
	EventGlobalKey
	EventGlobalKeySeq
	EventRivePlay
	EventRivePause
	EventRiveStateChange
)

var eventNames = map[EventKind]string{
	EventClick:           "click",
	EventMouseEnter:      "mouse-enter",
	EventMouseLeave:      "mouse-leave",
	EventClickOutside:    "click-outside",
	EventInput:           "input",
	EventChange:          "change",
	EventBlur:            "blur",
	EventFocus:           "focus",
	EventGlobalKey:       "global-key",
	EventGlobalKeySeq:    "global-key-seq",
	EventRivePlay:        "rive-play",
	EventRivePause:       "rive-pause",
	EventRiveStateChange: "rive-state-change",
}

// EventKindByName looks up a plain event name.
func EventKindByName(name string) (EventKind, bool) {
	for k, n := range eventNames {
		if n == name {
			return k, true
		}
	}
	return 0, false
}

// EventName is a parsed event header. Keys holds the key list of global-key
// events; Timeline the rive timeline or state.
type EventName struct {
	Kind     EventKind
	Keys     []string
	Timeline string
}

func (e EventName) String() string {
	name := eventNames[e.Kind]
	switch e.Kind {
	case EventGlobalKey, EventGlobalKeySeq:
		return name + "[" + strings.Join(e.Keys, "-") + "]"
	case EventRivePlay, EventRivePause, EventRiveStateChange:
		return name + "[" + e.Timeline + "]"
	}
	return name
}

type Event struct {
	Name   EventName
	Action *FunctionCall
	Line   int
}
