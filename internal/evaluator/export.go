package evaluator

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/funvibe/ftdc/internal/config"
	"github.com/funvibe/ftdc/internal/symbols"
)

// Export converts a resolved value to plain data for serialization.
// Records keep their field order; or-type values carry their full
// variant name.
func Export(v symbols.Value) any {
	switch val := v.(type) {
	case nil:
		return nil
	case *symbols.StringValue:
		return val.Text
	case *symbols.IntegerValue:
		return val.Value
	case *symbols.DecimalValue:
		return val.Value
	case *symbols.BooleanValue:
		return val.Value
	case *symbols.OptionalValue:
		if val.Data == nil {
			return nil
		}
		return Export(val.Data)
	case *symbols.ListValue:
		out := make([]any, 0, len(val.Data))
		for _, item := range val.Data {
			out = append(out, exportProperty(item))
		}
		return out
	case *symbols.RecordValue:
		return exportFields(val.Fields)
	case *symbols.OrTypeValue:
		out := orderedmap.New[string, any]()
		out.Set("variant", val.FullVariant)
		if val.Value != nil {
			out.Set("value", exportProperty(val.Value))
		}
		return out
	case *symbols.UIValue:
		out := orderedmap.New[string, any]()
		out.Set("component", val.Name)
		return out
	case *symbols.ModuleValue:
		return val.Name
	case *symbols.KwArgsValue:
		return exportFields(val.Arguments)
	case *symbols.ObjectValue:
		return exportFields(val.Values)
	}
	return nil
}

func exportFields(fields *symbols.Fields) *orderedmap.OrderedMap[string, any] {
	out := orderedmap.New[string, any]()
	if fields == nil {
		return out
	}
	for pair := fields.Oldest(); pair != nil; pair = pair.Next() {
		out.Set(pair.Key, exportProperty(pair.Value))
	}
	return out
}

// exportProperty exports a literal; unresolved values export as the name
// they point at.
func exportProperty(pv symbols.PropertyValue) any {
	switch v := pv.(type) {
	case *symbols.Literal:
		return Export(v.Value)
	case *symbols.Reference:
		return reference(v.Name)
	case *symbols.Clone:
		return reference(v.Name)
	case *symbols.FunctionCall:
		out := orderedmap.New[string, any]()
		out.Set("function", v.Name)
		return out
	}
	return nil
}

func reference(name string) *orderedmap.OrderedMap[string, any] {
	out := orderedmap.New[string, any]()
	out.Set("reference", name)
	return out
}

// ExportArgument exports an event argument. An argument bound to exactly
// one global variable exports as a reference to it, so that the action
// can change the variable; anything else exports its current value.
func (e *Evaluator) ExportArgument(pv symbols.PropertyValue, env *Env) (any, error) {
	if name, source, ok := symbols.ReferenceName(pv); ok {
		if source.IsGlobal() && (name == config.FTDSpecialValue || name == config.FTDSpecialChecked) {
			return reference(name), nil
		}
		if uses := e.Trace(pv, env); len(uses) == 1 {
			return reference(uses[0].Path()), nil
		}
	}
	v, err := e.Resolve(pv, env)
	if err != nil {
		return nil, err
	}
	return Export(v), nil
}
