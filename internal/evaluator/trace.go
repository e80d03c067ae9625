package evaluator

import (
	"strconv"
	"strings"

	"github.com/funvibe/ftdc/internal/config"
	"github.com/funvibe/ftdc/internal/symbols"
)

// Use is a global variable a value was read from. Remaining is the path
// read below the variable, empty when the whole variable was read.
type Use struct {
	Variable  string
	Remaining string
}

// Path returns the variable name with the remaining path appended.
func (u Use) Path() string {
	if u.Remaining == "" {
		return u.Variable
	}
	return u.Variable + "." + u.Remaining
}

// Trace lists the global variables pv reads when evaluated in env,
// following argument bindings and loop drivers back to their source.
func (e *Evaluator) Trace(pv symbols.PropertyValue, env *Env) []Use {
	var out []Use
	seen := make(map[Use]bool)
	e.trace(pv, env, func(u Use) {
		if !seen[u] {
			seen[u] = true
			out = append(out, u)
		}
	}, 0)
	return out
}

// TraceCondition lists the global variables a condition reads.
func (e *Evaluator) TraceCondition(expr *symbols.Expression, env *Env) []Use {
	var out []Use
	seen := make(map[Use]bool)
	for pair := expr.References.Oldest(); pair != nil; pair = pair.Next() {
		e.trace(pair.Value, env, func(u Use) {
			if !seen[u] {
				seen[u] = true
				out = append(out, u)
			}
		}, 0)
	}
	return out
}

func (e *Evaluator) trace(pv symbols.PropertyValue, env *Env, emit func(Use), depth int) {
	if depth > maxCallDepth {
		return
	}
	switch v := pv.(type) {
	case *symbols.Literal:
		e.traceValue(v.Value, env, emit, depth)
	case *symbols.Reference:
		e.traceName(v.Name, v.Source, env, emit, depth)
	case *symbols.Clone:
		e.traceName(v.Name, v.Source, env, emit, depth)
	case *symbols.FunctionCall:
		for pair := v.Values.Oldest(); pair != nil; pair = pair.Next() {
			e.trace(pair.Value, env, emit, depth+1)
		}
		if fn, ok := e.function(v.Name); ok && fn.References != nil {
			for pair := fn.References.Oldest(); pair != nil; pair = pair.Next() {
				if name, source, ok := symbols.ReferenceName(pair.Value); ok && source.IsGlobal() {
					e.traceName(name, source, env, emit, depth+1)
				}
			}
		}
	}
}

func (e *Evaluator) traceValue(v symbols.Value, env *Env, emit func(Use), depth int) {
	switch val := v.(type) {
	case *symbols.OptionalValue:
		if val.Data != nil {
			e.traceValue(val.Data, env, emit, depth)
		}
	case *symbols.ListValue:
		for _, item := range val.Data {
			e.trace(item, env, emit, depth)
		}
	case *symbols.RecordValue:
		for pair := val.Fields.Oldest(); pair != nil; pair = pair.Next() {
			e.trace(pair.Value, env, emit, depth)
		}
	case *symbols.OrTypeValue:
		if val.Value != nil {
			e.trace(val.Value, env, emit, depth)
		}
	case *symbols.KwArgsValue:
		for pair := val.Arguments.Oldest(); pair != nil; pair = pair.Next() {
			e.trace(pair.Value, env, emit, depth)
		}
	}
}

func (e *Evaluator) traceName(name string, source symbols.Source, env *Env, emit func(Use), depth int) {
	switch source.Kind {
	case symbols.SourceLocal:
		arg, path := cutPath(strings.TrimPrefix(name, source.Name+"."))
		b, ok := env.binding(source.Name, arg)
		if !ok || b.assigned {
			return
		}
		for _, br := range e.Branches(b) {
			if br.Condition != nil {
				for pair := br.Condition.References.Oldest(); pair != nil; pair = pair.Next() {
					e.trace(pair.Value, br.CondEnv, emit, depth+1)
				}
			}
			e.trace(project(br.Value, path), br.Env, emit, depth+1)
		}
	case symbols.SourceLoop:
		frame, ok := env.frame(source.Name)
		if !ok || name == config.LoopCounter {
			return
		}
		path := strings.TrimPrefix(strings.TrimPrefix(name, source.Name), ".")
		driver := frame.driver
		if _, _, isRef := symbols.ReferenceName(driver); isRef {
			item := strconv.Itoa(frame.index)
			if path != "" {
				item += "." + path
			}
			driver = project(driver, item)
		}
		e.trace(driver, frame.env, emit, depth+1)
	default:
		e.traceGlobal(name, env, emit)
	}
}

func (e *Evaluator) traceGlobal(name string, env *Env, emit func(Use)) {
	switch name {
	case config.FTDSpecialValue, config.FTDSpecialChecked:
		return
	case config.DarkModeVariable, config.DeviceVariable:
		emit(Use{Variable: name})
		return
	}
	if rest, ok := strings.CutPrefix(name, config.InheritedPrefix+"."); ok {
		frame, path := cutPath(rest)
		if _, ok := env.inheritedValue(frame); ok {
			return
		}
		variable := config.DefaultColorsVariable
		if frame == config.InheritedTypes {
			variable = config.DefaultTypesVariable
		}
		emit(Use{Variable: variable, Remaining: path})
		return
	}
	if thing, remaining, ok := e.symbols.FindWithRemaining(name); ok {
		emit(Use{Variable: thing.ThingName(), Remaining: remaining})
	}
}

// project narrows a reference to a path below it. Other values are
// returned unchanged, so the whole value is traced.
func project(pv symbols.PropertyValue, path string) symbols.PropertyValue {
	if path == "" {
		return pv
	}
	switch v := pv.(type) {
	case *symbols.Reference:
		out := *v
		out.Name += "." + path
		return &out
	case *symbols.Clone:
		out := *v
		out.Name += "." + path
		return &out
	}
	return pv
}

// IsConstant reports whether pv evaluates to the same value for every
// state of the document: it reads no mutable variable and neither the
// dark mode nor the device.
func (e *Evaluator) IsConstant(pv symbols.PropertyValue, env *Env) bool {
	return e.constantUses(e.Trace(pv, env))
}

// IsConstantCondition is IsConstant for a condition.
func (e *Evaluator) IsConstantCondition(expr *symbols.Expression, env *Env) bool {
	return e.constantUses(e.TraceCondition(expr, env))
}

func (e *Evaluator) constantUses(uses []Use) bool {
	for _, u := range uses {
		if e.IsMutable(u.Variable) {
			return false
		}
	}
	return true
}

// IsMutable reports whether the global variable name can change while
// the document is shown.
func (e *Evaluator) IsMutable(name string) bool {
	switch name {
	case config.DarkModeVariable, config.DeviceVariable:
		return true
	}
	t, ok := e.symbols.Find(name)
	if !ok {
		return false
	}
	v, ok := t.(*symbols.Variable)
	return ok && v.Mutable
}

func (e *Evaluator) function(name string) (*symbols.Function, bool) {
	t, ok := e.symbols.Find(name)
	if !ok {
		return nil, false
	}
	fn, ok := t.(*symbols.Function)
	return fn, ok
}
