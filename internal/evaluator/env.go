package evaluator

import (
	"github.com/funvibe/ftdc/internal/styles"
	"github.com/funvibe/ftdc/internal/symbols"
)

// Binding is what an argument of a component or function is bound to at
// one invocation. Properties are the invocation's values for the
// argument, evaluated in Caller; Default is the declared default,
// evaluated in Self when no property applies.
type Binding struct {
	Argument   *symbols.Argument
	Properties []*symbols.Property
	Caller     *Env
	Default    symbols.PropertyValue
	Self       *Env

	// value is set once a function body assigns to the argument, or when
	// the binding was created from an already evaluated value.
	value    symbols.Value
	assigned bool
}

// Fixed returns a binding holding an evaluated value.
func Fixed(arg *symbols.Argument, v symbols.Value) *Binding {
	return &Binding{Argument: arg, value: v, assigned: true}
}

// Set overrides the bound value.
func (b *Binding) Set(v symbols.Value) {
	b.value = v
	b.assigned = true
}

type loopFrame struct {
	alias  string
	driver symbols.PropertyValue
	env    *Env // where driver is evaluated
	item   symbols.Value
	index  int
}

// Env is the scope an invocation is expanded in. Local references name
// the definition that owns them, so lookups walk outwards until they
// reach a frame of that owner.
type Env struct {
	parent    *Env
	owner     string
	args      map[string]*Binding
	loop      *loopFrame
	device    *styles.Device
	inherited map[string]symbols.Value
}

func NewEnv() *Env {
	return &Env{}
}

// Enclosed returns a scope for the body of owner, a qualified component
// or function name.
func (e *Env) Enclosed(owner string) *Env {
	return &Env{parent: e, owner: owner, args: make(map[string]*Binding)}
}

func (e *Env) Owner() string { return e.owner }

// Bind attaches b to the argument name of this scope's owner.
func (e *Env) Bind(name string, b *Binding) {
	if e.args == nil {
		e.args = make(map[string]*Binding)
	}
	e.args[name] = b
}

// WithLoop returns a scope where alias is the index-th item of driver.
func (e *Env) WithLoop(alias string, driver symbols.PropertyValue, driverEnv *Env, item symbols.Value, index int) *Env {
	return &Env{parent: e, loop: &loopFrame{
		alias:  alias,
		driver: driver,
		env:    driverEnv,
		item:   item,
		index:  index,
	}}
}

// WithDevice returns a scope rendered for one device only.
func (e *Env) WithDevice(d styles.Device) *Env {
	return &Env{parent: e, device: &d}
}

// WithInherited returns a scope whose descendants read `inherited.<key>`
// as v.
func (e *Env) WithInherited(key string, v symbols.Value) *Env {
	return &Env{parent: e, inherited: map[string]symbols.Value{key: v}}
}

// Device returns the innermost device restriction.
func (e *Env) Device() (styles.Device, bool) {
	for s := e; s != nil; s = s.parent {
		if s.device != nil {
			return *s.device, true
		}
	}
	return styles.Desktop, false
}

func (e *Env) binding(owner, name string) (*Binding, bool) {
	for s := e; s != nil; s = s.parent {
		if s.owner != owner || s.args == nil {
			continue
		}
		b, ok := s.args[name]
		return b, ok
	}
	return nil, false
}

func (e *Env) frame(alias string) (*loopFrame, bool) {
	for s := e; s != nil; s = s.parent {
		if s.loop != nil && s.loop.alias == alias {
			return s.loop, true
		}
	}
	return nil, false
}

func (e *Env) inheritedValue(key string) (symbols.Value, bool) {
	for s := e; s != nil; s = s.parent {
		if v, ok := s.inherited[key]; ok {
			return v, true
		}
	}
	return nil, false
}
