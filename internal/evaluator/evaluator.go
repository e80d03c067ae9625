// Package evaluator reduces analyzed property values to values, evaluates
// conditions and user functions, and reports which global variables a
// value was read from.
package evaluator

import (
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/funvibe/ftdc/internal/config"
	"github.com/funvibe/ftdc/internal/diagnostics"
	"github.com/funvibe/ftdc/internal/styles"
	"github.com/funvibe/ftdc/internal/symbols"
	"github.com/funvibe/ftdc/internal/typesystem"
)

const maxCallDepth = 256

// Evaluator resolves values against a symbol table for one render target.
type Evaluator struct {
	symbols *symbols.SymbolTable
	target  styles.Target
	docID   string
	logger  *log.Logger
	depth   int
}

// New creates an evaluator. docID names the document in diagnostics; a
// nil logger disables logging.
func New(st *symbols.SymbolTable, target styles.Target, docID string, logger *log.Logger) *Evaluator {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Evaluator{symbols: st, target: target, docID: docID, logger: logger}
}

func (e *Evaluator) Symbols() *symbols.SymbolTable { return e.symbols }
func (e *Evaluator) Target() styles.Target         { return e.target }

// Resolve reduces pv to a value in env. Nested items are resolved too,
// so the result holds only literals. Components held as values capture
// env as their scope.
func (e *Evaluator) Resolve(pv symbols.PropertyValue, env *Env) (symbols.Value, error) {
	switch v := pv.(type) {
	case nil:
		return nil, nil
	case *symbols.Literal:
		return e.resolveValue(v.Value, env, v.Line)
	case *symbols.Reference:
		return e.lookup(v.Name, v.Source, env, v.Line)
	case *symbols.Clone:
		return e.lookup(v.Name, v.Source, env, v.Line)
	case *symbols.FunctionCall:
		return e.Call(v, env)
	}
	return nil, diagnostics.Otherf(e.docID, pv.GetLine(), "unexpected property value %T", pv)
}

func (e *Evaluator) resolveValue(v symbols.Value, env *Env, line int) (symbols.Value, error) {
	switch val := v.(type) {
	case *symbols.OptionalValue:
		if val.Data == nil {
			return val, nil
		}
		data, err := e.resolveValue(val.Data, env, line)
		if err != nil {
			return nil, err
		}
		return &symbols.OptionalValue{Data: data, Elem: val.Elem}, nil
	case *symbols.ListValue:
		out := &symbols.ListValue{Elem: val.Elem, Data: make([]symbols.PropertyValue, 0, len(val.Data))}
		for _, item := range val.Data {
			r, err := e.Resolve(item, env)
			if err != nil {
				return nil, err
			}
			out.Data = append(out.Data, symbols.NewLiteral(r, item.GetLine()))
		}
		return out, nil
	case *symbols.RecordValue:
		fields, err := e.resolveFields(val.Fields, env)
		if err != nil {
			return nil, err
		}
		return &symbols.RecordValue{Name: val.Name, Fields: fields}, nil
	case *symbols.OrTypeValue:
		out := *val
		if val.Value != nil {
			inner, err := e.Resolve(val.Value, env)
			if err != nil {
				return nil, err
			}
			out.Value = symbols.NewLiteral(inner, val.Value.GetLine())
		}
		return &out, nil
	case *symbols.UIValue:
		if val.Scope != nil {
			return val, nil
		}
		out := *val
		out.Scope = env
		return &out, nil
	case *symbols.KwArgsValue:
		fields, err := e.resolveFields(val.Arguments, env)
		if err != nil {
			return nil, err
		}
		return &symbols.KwArgsValue{Arguments: fields}, nil
	case *symbols.ObjectValue:
		fields, err := e.resolveFields(val.Values, env)
		if err != nil {
			return nil, err
		}
		return &symbols.ObjectValue{Values: fields}, nil
	}
	return v, nil
}

func (e *Evaluator) resolveFields(fields *symbols.Fields, env *Env) (*symbols.Fields, error) {
	out := symbols.NewFields()
	if fields == nil {
		return out, nil
	}
	for pair := fields.Oldest(); pair != nil; pair = pair.Next() {
		r, err := e.Resolve(pair.Value, env)
		if err != nil {
			return nil, err
		}
		out.Set(pair.Key, symbols.NewLiteral(r, pair.Value.GetLine()))
	}
	return out, nil
}

// lookup reads the variable, argument or loop item name points at.
func (e *Evaluator) lookup(name string, source symbols.Source, env *Env, line int) (symbols.Value, error) {
	switch source.Kind {
	case symbols.SourceLocal:
		return e.lookupLocal(name, source.Name, env, line)
	case symbols.SourceLoop:
		frame, ok := env.frame(source.Name)
		if !ok {
			return nil, diagnostics.NotFoundf(e.docID, line, "loop `%s` is not active", source.Name)
		}
		if name == config.LoopCounter {
			return &symbols.IntegerValue{Value: int64(frame.index)}, nil
		}
		path := strings.TrimPrefix(strings.TrimPrefix(name, source.Name), ".")
		return e.walk(frame.item, path, line)
	}
	return e.lookupGlobal(name, env, line)
}

func (e *Evaluator) lookupLocal(name, owner string, env *Env, line int) (symbols.Value, error) {
	arg, path := cutPath(strings.TrimPrefix(name, owner+"."))
	b, ok := env.binding(owner, arg)
	if !ok {
		return nil, diagnostics.NotFoundf(e.docID, line, "`%s` has no argument `%s` in scope", owner, arg)
	}
	v, err := e.BindingValue(b)
	if err != nil {
		return nil, err
	}
	if m, ok := symbols.Unwrap(v).(*symbols.ModuleValue); ok && path != "" {
		return e.lookupGlobal(m.Name+config.ThingSeparator+path, env, line)
	}
	return e.walk(v, path, line)
}

func (e *Evaluator) lookupGlobal(name string, env *Env, line int) (symbols.Value, error) {
	switch name {
	case config.FTDSpecialValue:
		return &symbols.StringValue{}, nil
	case config.FTDSpecialChecked:
		return &symbols.BooleanValue{}, nil
	case config.DarkModeVariable:
		return &symbols.BooleanValue{Value: e.target.DarkMode}, nil
	case config.DeviceVariable:
		return e.deviceValue(env), nil
	}
	if rest, ok := strings.CutPrefix(name, config.InheritedPrefix+"."); ok {
		frame, path := cutPath(rest)
		if v, ok := env.inheritedValue(frame); ok {
			return e.walk(v, path, line)
		}
		variable := config.DefaultColorsVariable
		if frame == config.InheritedTypes {
			variable = config.DefaultTypesVariable
		}
		return e.lookupGlobal(variable+"."+path, env, line)
	}

	thing, remaining, ok := e.symbols.FindWithRemaining(name)
	if !ok {
		return nil, diagnostics.NotFoundf(e.docID, line, "unknown variable `%s`", name)
	}
	v, ok := thing.(*symbols.Variable)
	if !ok {
		return nil, diagnostics.Parsef(e.docID, line, "`%s` is not a variable", thing.ThingName())
	}
	value, err := e.Resolve(v.Value, NewEnv())
	if err != nil {
		return nil, err
	}
	return e.walk(value, remaining, line)
}

// deviceValue returns the value of ftd#device seen from env.
func (e *Evaluator) deviceValue(env *Env) symbols.Value {
	device := e.target.Device
	if env != nil {
		if d, ok := env.Device(); ok {
			device = d
		}
	}
	variant := device.String()
	out := &symbols.OrTypeValue{
		Name:        config.DeviceDataOrType,
		Variant:     variant,
		FullVariant: config.DeviceDataOrType + config.VariantSeparator + variant,
		Value:       symbols.NewLiteral(&symbols.StringValue{Text: variant}, 0),
	}
	if t, ok := e.symbols.Find(config.DeviceDataOrType); ok {
		if ot, ok := t.(*symbols.OrType); ok {
			if v, ok := ot.Variant(variant); ok && v.Field != nil && v.Field.Value != nil {
				out.Value = v.Field.Value
			}
		}
	}
	return out
}

// walk follows a dotted path of record fields and list indices.
func (e *Evaluator) walk(v symbols.Value, path string, line int) (symbols.Value, error) {
	for path != "" {
		segment, rest := cutPath(path)
		switch val := symbols.Unwrap(v).(type) {
		case *symbols.RecordValue:
			field, ok := val.Field(segment)
			if !ok {
				return nil, diagnostics.NotFoundf(e.docID, line, "record `%s` has no field `%s`", val.Name, segment)
			}
			inner, err := e.Resolve(field, NewEnv())
			if err != nil {
				return nil, err
			}
			v = inner
		case *symbols.ListValue:
			i, err := strconv.Atoi(segment)
			if err != nil || i < 0 || i >= len(val.Data) {
				return nil, diagnostics.NotFoundf(e.docID, line, "index `%s` is out of range", segment)
			}
			inner, err := e.Resolve(val.Data[i], NewEnv())
			if err != nil {
				return nil, err
			}
			v = inner
		case *symbols.KwArgsValue:
			field, ok := val.Arguments.Get(segment)
			if !ok {
				return nil, diagnostics.NotFoundf(e.docID, line, "no keyword argument `%s`", segment)
			}
			inner, err := e.Resolve(field, NewEnv())
			if err != nil {
				return nil, err
			}
			v = inner
		case nil:
			return nil, diagnostics.NotFoundf(e.docID, line, "cannot read `%s` of an empty value", segment)
		default:
			return nil, diagnostics.NotFoundf(e.docID, line, "cannot read `%s` of a `%s` value", segment, val.Kind())
		}
		path = rest
	}
	return v, nil
}

// BindingValue evaluates a binding: the first conditional property whose
// condition holds, else the unconditional property, else the default.
func (e *Evaluator) BindingValue(b *Binding) (symbols.Value, error) {
	if b.assigned {
		return b.value, nil
	}
	var fallback *symbols.Property
	for _, p := range b.Properties {
		if p.Condition == nil {
			fallback = p
			continue
		}
		ok, err := e.Condition(p.Condition, b.Caller)
		if err != nil {
			return nil, err
		}
		if ok {
			return e.Resolve(p.Value, b.Caller)
		}
	}
	if fallback != nil {
		return e.Resolve(fallback.Value, b.Caller)
	}
	if b.Default != nil {
		return e.Resolve(b.Default, b.Self)
	}
	return zeroValue(b.Argument, e.docID)
}

// zeroValue is the value of an argument nothing was passed to.
func zeroValue(arg *symbols.Argument, docID string) (symbols.Value, error) {
	if arg == nil {
		return nil, nil
	}
	kind := typesystem.StripConstant(arg.Kind.Kind)
	switch {
	case typesystem.IsOptional(kind):
		return &symbols.OptionalValue{Elem: typesystem.Inner(kind)}, nil
	case typesystem.IsList(kind):
		return &symbols.ListValue{Elem: typesystem.InnerList(kind)}, nil
	}
	return nil, diagnostics.MissingDataf(docID, arg.Line, "argument `%s` has no value", arg.Name)
}

// Branch is one alternative of a binding. Condition is nil for the value
// used when no other branch applies.
type Branch struct {
	Condition *symbols.Expression
	CondEnv   *Env
	Value     symbols.PropertyValue
	Env       *Env
}

// Branches lists the alternatives of b in evaluation order, the
// unconditional one last. A fallback that only forwards another argument
// is replaced by that argument's branches.
func (e *Evaluator) Branches(b *Binding) []Branch {
	if b.assigned {
		return []Branch{{Value: symbols.NewLiteral(b.value, 0), Env: NewEnv()}}
	}
	var out []Branch
	var fallback *Branch
	for _, p := range b.Properties {
		if p.Condition == nil {
			fallback = &Branch{Value: p.Value, Env: b.Caller}
			continue
		}
		out = append(out, Branch{Condition: p.Condition, CondEnv: b.Caller, Value: p.Value, Env: b.Caller})
	}
	if fallback == nil {
		if b.Default == nil {
			v, err := zeroValue(b.Argument, e.docID)
			if err != nil || v == nil {
				return out
			}
			return append(out, Branch{Value: symbols.NewLiteral(v, 0), Env: b.Self})
		}
		fallback = &Branch{Value: b.Default, Env: b.Self}
	}
	if r, ok := fallback.Value.(*symbols.Reference); ok && r.Source.Kind == symbols.SourceLocal {
		arg, path := cutPath(strings.TrimPrefix(r.Name, r.Source.Name+"."))
		if inner, ok := fallback.Env.binding(r.Source.Name, arg); ok && path == "" {
			return append(out, e.Branches(inner)...)
		}
	}
	return append(out, *fallback)
}

func cutPath(path string) (string, string) {
	head, rest, _ := strings.Cut(path, ".")
	return head, rest
}
