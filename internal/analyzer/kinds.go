package analyzer

import (
	"github.com/funvibe/ftdc/internal/diagnostics"
	"github.com/funvibe/ftdc/internal/symbols"
	"github.com/funvibe/ftdc/internal/typesystem"
)

// resolveKind turns a textual kind annotation into KindData. Non-primitive
// base names are looked up in the symbol table: records, or-types (possibly
// narrowed to a variant), components (UI) and variables (their kind).
func (a *Analyzer) resolveKind(text string, sc *scope, line int) (symbols.State[typesystem.KindData], error) {
	ann, err := typesystem.ParseAnnotation(text, sc.docID(), line)
	if err != nil {
		return symbols.State[typesystem.KindData]{}, err
	}
	if ann.Children {
		return symbols.Done(typesystem.Data(typesystem.ListOf(typesystem.UI))), nil
	}
	if base, ok := typesystem.Primitive(ann.Base); ok {
		return symbols.Done(ann.Apply(base)), nil
	}

	st, err := a.Search(qualify(sc.doc, ann.Base), sc.docID(), line)
	if err != nil || st.IsContinue() {
		return symbols.Forward[typesystem.KindData](st), err
	}
	base, err := kindOfThing(st.Value, sc.docID(), line)
	if err != nil {
		return symbols.State[typesystem.KindData]{}, err
	}
	return symbols.Done(ann.Apply(base)), nil
}

func kindOfThing(f found, docID string, line int) (typesystem.Kind, error) {
	switch t := f.Thing.(type) {
	case *symbols.Record:
		if f.Remaining == "" {
			return typesystem.Record(t.Name), nil
		}
	case *symbols.OrType:
		if f.Remaining == "" {
			return typesystem.OrType(t.Name), nil
		}
		if _, ok := t.Variant(f.Remaining); ok {
			return typesystem.OrTypeVariant(t.Name, f.Remaining), nil
		}
		return nil, diagnostics.NotFoundf(docID, line, "`%s` has no variant `%s`", t.Name, f.Remaining)
	case *symbols.ComponentDefinition:
		if f.Remaining == "" {
			return typesystem.UI, nil
		}
	case *symbols.Variable:
		if f.Remaining == "" {
			return t.Kind.Kind, nil
		}
	}
	return nil, diagnostics.Parsef(docID, line, "`%s.%s` is not a kind", f.Thing.ThingName(), f.Remaining)
}

// walkFields follows a dotted path of record fields and list indices
// starting at kind. It stops at a module kind and returns the rest of the
// path unconsumed.
func (a *Analyzer) walkFields(kind typesystem.KindData, path string, docID string, line int) (typesystem.KindData, string, error) {
	for path != "" {
		segment, rest := cutPath(path)
		concrete := typesystem.Inner(typesystem.StripConstant(kind.Kind))
		switch k := concrete.(type) {
		case typesystem.KModule:
			return kind, path, nil
		case typesystem.KRecord:
			rec, ok := a.record(k.Name)
			if !ok {
				return kind, "", diagnostics.NotFoundf(docID, line, "record `%s` is not defined", k.Name)
			}
			field, ok := rec.Field(segment)
			if !ok {
				return kind, "", diagnostics.NotFoundf(docID, line, "record `%s` has no field `%s`", k.Name, segment)
			}
			kind = typesystem.Data(field.Kind.Kind)
		case typesystem.KList:
			if !isIndex(segment) {
				return kind, "", diagnostics.NotFoundf(docID, line, "`%s` is not a list index", segment)
			}
			kind = typesystem.Data(k.Elem)
		default:
			return kind, "", diagnostics.NotFoundf(docID, line, "kind `%s` has no field `%s`", concrete, segment)
		}
		path = rest
	}
	return kind, "", nil
}

// record finds a record definition, or the record of an anonymous
// or-type variant named "doc#or-type.variant".
func (a *Analyzer) record(name string) (*symbols.Record, bool) {
	t, remaining, ok := a.symbols.FindWithRemaining(name)
	if !ok {
		return nil, false
	}
	switch thing := t.(type) {
	case *symbols.Record:
		return thing, remaining == ""
	case *symbols.OrType:
		if v, ok := thing.Variant(remaining); ok && v.Kind == symbols.VariantAnonymousRecord {
			return v.Record, true
		}
	}
	return nil, false
}

func (a *Analyzer) orType(name string) (*symbols.OrType, bool) {
	t, ok := a.symbols.Find(name)
	if !ok {
		return nil, false
	}
	ot, ok := t.(*symbols.OrType)
	return ot, ok
}

func cutPath(path string) (string, string) {
	for i := 0; i < len(path); i++ {
		if path[i] == '.' {
			return path[:i], path[i+1:]
		}
	}
	return path, ""
}

func isIndex(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// narrow restricts the or-type inside kind to the variant path, e.g.
// "fixed.px" for `width.fixed.px`.
func narrow(kind typesystem.KindData, path string) (typesystem.KindData, bool) {
	switch k := kind.Kind.(type) {
	case typesystem.KOptional:
		inner, ok := narrow(typesystem.KindData{Kind: k.Elem}, path)
		kind.Kind = typesystem.OptionalOf(inner.Kind)
		return kind, ok
	case typesystem.KConstant:
		inner, ok := narrow(typesystem.KindData{Kind: k.Elem}, path)
		kind.Kind = typesystem.ConstantOf(inner.Kind)
		return kind, ok
	case typesystem.KList:
		inner, ok := narrow(typesystem.KindData{Kind: k.Elem}, path)
		kind.Kind = typesystem.ListOf(inner.Kind)
		return kind, ok
	case typesystem.KOrType:
		kind.Kind = typesystem.KOrType{Name: k.Name, Variant: path, FullVariant: k.Name + "." + path}
		return kind, true
	}
	return kind, false
}
