package analyzer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/ftdc/internal/ast"
	"github.com/funvibe/ftdc/internal/diagnostics"
	"github.com/funvibe/ftdc/internal/parser"
	"github.com/funvibe/ftdc/internal/symbols"
	"github.com/funvibe/ftdc/internal/typesystem"
)

type pvState = symbols.State[symbols.PropertyValue]

func done(pv symbols.PropertyValue) (pvState, error) {
	return symbols.Done(pv), nil
}

func fail(err error) (pvState, error) {
	return pvState{}, err
}

// propertyValue analyzes v against expected. Strings that parse as a
// reference, clone or function call are resolved; everything else is a
// literal built from the shape of expected. mutable marks a slot that
// receives a mutable binding.
func (a *Analyzer) propertyValue(v ast.VariableValue, expected *typesystem.KindData, mutable bool, sc *scope, line int) (pvState, error) {
	if v != nil && v.GetLine() > 0 {
		line = v.GetLine()
	}
	if s, ok := v.(*ast.StringValue); ok {
		parsed, err := parser.ParseValue(s.Value, line)
		if err != nil {
			return fail(diagnostics.WithDocument(err, sc.docID(), line))
		}
		switch parsed.Form {
		case parser.FormReference, parser.FormClone:
			return a.referenceValue(parsed, expected, mutable, sc, line)
		case parser.FormFunctionCall:
			return a.functionCallValue(parsed.Call, expected, mutable, sc, line)
		}
		if parsed.Text != s.Value {
			v = &ast.StringValue{Value: parsed.Text, Source: s.Source, Line: s.Line}
		}
	}
	return a.literalValue(v, expected, sc, line)
}

func (a *Analyzer) referenceValue(parsed *parser.ParsedValue, expected *typesystem.KindData, mutable bool, sc *scope, line int) (pvState, error) {
	st, err := a.resolveReference(parsed.Name, sc, line)
	if err != nil || st.IsContinue() {
		return symbols.Forward[symbols.PropertyValue](st), err
	}
	r := st.Value
	clone := parsed.Form == parser.FormClone
	if !clone {
		if err := checkMutable(r, mutable, sc.docID(), line); err != nil {
			return fail(err)
		}
	}
	build := func(kind typesystem.KindData) symbols.PropertyValue {
		if clone {
			return &symbols.Clone{Name: r.Name, KindData: kind, Source: r.Source, Mutable: mutable, Line: line}
		}
		return &symbols.Reference{Name: r.Name, KindData: kind, Source: r.Source, Mutable: mutable, Line: line}
	}
	if expected == nil {
		return done(build(r.Kind))
	}
	if typesystem.IsSameAs(expected.Kind, r.Kind.Kind) {
		return done(build(typesystem.GetKind(expected, r.Kind)))
	}
	if pv, ok := a.wrapInVariant(*expected, r.Kind, build, 0); ok {
		return done(pv)
	}
	if typesystem.IsList(expected.Kind) {
		elem := expected.InnerList()
		if typesystem.IsSameAs(elem.Kind, r.Kind.Kind) {
			item := build(typesystem.GetKind(&elem, r.Kind))
			return done(&symbols.Literal{
				Value: &symbols.ListValue{Elem: elem.Kind, Data: []symbols.PropertyValue{item}},
				Line:  line,
			})
		}
	}
	return fail(diagnostics.Parsef(sc.docID(), line, "kind mismatch for `%s`: expected `%s`, found `%s`", parsed.Name, expected.Kind, r.Kind.Kind))
}

// wrapInVariant places a value of kind found inside a regular variant of
// the or-type expected. A narrowed or-type uses its variant path; an
// unnarrowed one takes the first regular variant that fits, searching
// nested or-types.
func (a *Analyzer) wrapInVariant(expected typesystem.KindData, found typesystem.KindData, build func(typesystem.KindData) symbols.PropertyValue, depth int) (symbols.PropertyValue, bool) {
	if depth > 3 {
		return nil, false
	}
	k, ok := typesystem.OrTypeOf(expected.Kind)
	if !ok || typesystem.IsList(expected.Kind) {
		return nil, false
	}
	ot, ok := a.orType(k.Name)
	if !ok {
		return nil, false
	}
	try := func(variant *symbols.OrTypeVariant, rest string) (symbols.PropertyValue, bool) {
		if variant.Kind != symbols.VariantRegular {
			return nil, false
		}
		fieldKind := variant.Field.Kind
		if rest != "" {
			if fieldKind, ok = narrow(fieldKind, rest); !ok {
				return nil, false
			}
		}
		var inner symbols.PropertyValue
		if rest == "" && typesystem.IsSameAs(fieldKind.Kind, found.Kind) {
			inner = build(typesystem.GetKind(&fieldKind, found))
		} else if inner, ok = a.wrapInVariant(fieldKind, found, build, depth+1); !ok {
			return nil, false
		}
		return orTypeLiteral(ot, variant, inner), true
	}
	if k.Variant != "" {
		first, rest := cutPath(k.Variant)
		variant, ok := ot.Variant(first)
		if !ok {
			return nil, false
		}
		return try(variant, rest)
	}
	for _, variant := range ot.Variants {
		if variant.Kind == symbols.VariantRegular && typesystem.IsSameAs(variant.Field.Kind.Kind, found.Kind) {
			return try(variant, "")
		}
	}
	for _, variant := range ot.Variants {
		if variant.Kind != symbols.VariantRegular {
			continue
		}
		if _, nested := typesystem.OrTypeOf(variant.Field.Kind.Kind); nested {
			if pv, ok := try(variant, ""); ok {
				return pv, true
			}
		}
	}
	return nil, false
}

func orTypeLiteral(ot *symbols.OrType, variant *symbols.OrTypeVariant, inner symbols.PropertyValue) *symbols.Literal {
	line := 0
	if inner != nil {
		line = inner.GetLine()
	}
	return &symbols.Literal{
		Value: &symbols.OrTypeValue{
			Name:        ot.Name,
			Variant:     variant.Name,
			FullVariant: variant.FullName(ot.Name),
			Value:       inner,
		},
		Line: line,
	}
}

// literalValue builds a literal of the expected kind from v.
func (a *Analyzer) literalValue(v ast.VariableValue, expected *typesystem.KindData, sc *scope, line int) (pvState, error) {
	if expected == nil {
		return a.untypedValue(v, sc, line)
	}
	kind := typesystem.StripConstant(expected.Kind)
	if o, ok := v.(*ast.OptionalValue); ok {
		if o.Value == nil {
			if !typesystem.IsOptional(kind) {
				return fail(diagnostics.Parsef(sc.docID(), line, "null is not a valid value for non-optional kind `%s`", kind))
			}
			return done(symbols.NoneOf(kind, line))
		}
		v = o.Value
	}
	if v == nil {
		return fail(diagnostics.Parsef(sc.docID(), line, "missing value for kind `%s`", kind))
	}

	switch k := kind.(type) {
	case typesystem.KOptional:
		inner := *expected
		inner.Kind = k.Elem
		st, err := a.literalValue(v, &inner, sc, line)
		if err != nil || st.IsContinue() {
			return st, err
		}
		if lit, ok := st.Value.(*symbols.Literal); ok {
			return done(&symbols.Literal{Value: &symbols.OptionalValue{Data: lit.Value, Elem: k.Elem}, Line: lit.Line})
		}
		return st, nil
	case typesystem.KList:
		return a.listValue(v, typesystem.KindData{Kind: k.Elem}, sc, line)
	case typesystem.KRecord:
		rec, ok := a.record(k.Name)
		if !ok {
			return fail(diagnostics.NotFoundf(sc.docID(), line, "record `%s` is not defined", k.Name))
		}
		return a.recordValue(rec, v, sc, line)
	case typesystem.KOrType:
		ot, ok := a.orType(k.Name)
		if !ok {
			return fail(diagnostics.NotFoundf(sc.docID(), line, "or-type `%s` is not defined", k.Name))
		}
		return a.orTypeValue(ot, k.Variant, v, sc, line)
	case typesystem.KUI:
		return a.uiValue(v, sc, line)
	case typesystem.KModule:
		return a.moduleValue(v, sc, line)
	case typesystem.KKwArgs, typesystem.KObject:
		return a.objectValue(v, k, sc, line)
	}

	s, ok := v.(*ast.StringValue)
	if !ok {
		return fail(diagnostics.Parsef(sc.docID(), line, "expected a `%s` value", kind))
	}
	value, err := parsePrimitive(kind, s.Value)
	if err != nil {
		return fail(diagnostics.Parsef(sc.docID(), line, "%s", err))
	}
	return done(symbols.NewLiteral(value, line))
}

// parsePrimitive parses text as a literal of a primitive kind.
func parsePrimitive(kind typesystem.Kind, text string) (symbols.Value, error) {
	trimmed := strings.TrimSpace(text)
	switch kind.(type) {
	case typesystem.KString:
		return &symbols.StringValue{Text: text}, nil
	case typesystem.KInteger:
		if n, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
			return &symbols.IntegerValue{Value: n}, nil
		}
	case typesystem.KDecimal:
		if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
			return &symbols.DecimalValue{Value: f}, nil
		}
	case typesystem.KBoolean:
		switch trimmed {
		case "true":
			return &symbols.BooleanValue{Value: true}, nil
		case "false":
			return &symbols.BooleanValue{Value: false}, nil
		}
	}
	return nil, fmt.Errorf("`%s` is not a valid %s", text, kind)
}

func (a *Analyzer) untypedValue(v ast.VariableValue, sc *scope, line int) (pvState, error) {
	switch val := v.(type) {
	case *ast.StringValue:
		return done(symbols.NewLiteral(&symbols.StringValue{Text: val.Value}, line))
	case *ast.OptionalValue:
		if val.Value == nil {
			return done(symbols.NoneOf(typesystem.String, line))
		}
		return a.untypedValue(val.Value, sc, line)
	case *ast.ListValue:
		return a.listValue(v, typesystem.Data(typesystem.String), sc, line)
	case *ast.RecordValue:
		return a.objectValue(v, typesystem.Object, sc, line)
	}
	return fail(diagnostics.Parsef(sc.docID(), line, "unsupported value"))
}

func (a *Analyzer) listValue(v ast.VariableValue, elem typesystem.KindData, sc *scope, line int) (pvState, error) {
	list := &symbols.ListValue{Elem: elem.Kind}
	items, ok := v.(*ast.ListValue)
	if !ok {
		st, err := a.literalValue(v, &elem, sc, line)
		if err != nil || st.IsContinue() {
			return st, err
		}
		list.Data = append(list.Data, st.Value)
		return done(symbols.NewLiteral(list, line))
	}
	for _, item := range items.Values {
		if item.Kind != "" && !typesystem.IsUI(elem.Kind) {
			kst, err := a.resolveKind(item.Kind, sc, line)
			if err != nil || kst.IsContinue() {
				return symbols.Forward[symbols.PropertyValue](kst), err
			}
			if !typesystem.IsSameAs(kst.Value.Kind, elem.Kind) {
				return fail(diagnostics.Parsef(sc.docID(), line, "list item of kind `%s` in a `%s` list", kst.Value.Kind, elem.Kind))
			}
		}
		st, err := a.propertyValue(item.Value, &elem, false, sc, line)
		if err != nil || st.IsContinue() {
			return st, err
		}
		list.Data = append(list.Data, st.Value)
	}
	return done(symbols.NewLiteral(list, line))
}

// recordValue builds a record from a caption string or a record literal.
// Fields take the caption, the body, headers of their name and, for a
// children field, the subsections. Defaults that refer to sibling fields
// are rewired to the sibling's value once every field is known.
func (a *Analyzer) recordValue(rec *symbols.Record, v ast.VariableValue, sc *scope, line int) (pvState, error) {
	var (
		caption, body ast.VariableValue
		headers       []*ast.Header
		children      []*ast.ListItem
	)
	switch val := v.(type) {
	case *ast.StringValue:
		caption = val
	case *ast.RecordValue:
		caption, body, headers, children = val.Caption, val.Body, val.Headers, val.Values
		if val.Line > 0 {
			line = val.Line
		}
	default:
		return fail(diagnostics.Parsef(sc.docID(), line, "expected a `%s` record value", rec.Name))
	}

	for _, h := range headers {
		if _, ok := rec.Field(ast.HeaderBaseKey(h.Key)); !ok {
			return fail(diagnostics.NotFoundf(sc.docID(), h.Line, "record `%s` has no field `%s`", rec.Name, h.Key))
		}
		if h.Condition != "" {
			return fail(diagnostics.Parsef(sc.docID(), h.Line, "record field `%s` cannot be conditional", h.Key))
		}
	}

	fields := symbols.NewFields()
	fromDefault := make(map[string]bool)
	captionUsed, bodyUsed := false, false
	for _, f := range rec.Fields {
		var own []*ast.Header
		for _, h := range headers {
			if ast.HeaderBaseKey(h.Key) == f.Name {
				own = append(own, h)
			}
		}
		fromCaption := f.Kind.Caption && caption != nil && !captionUsed
		fromBody := f.Kind.Body && body != nil && !bodyUsed && !fromCaption
		if f.Kind.Caption && f.Kind.Body && caption != nil && body != nil {
			return fail(diagnostics.ForbiddenUsagef(sc.docID(), line, "pass either caption or body for `%s.%s`, not both", rec.Name, f.Name))
		}
		if (fromCaption || fromBody) && len(own) > 0 {
			return fail(diagnostics.ForbiddenUsagef(sc.docID(), line, "`%s.%s` is passed both as header and caption or body", rec.Name, f.Name))
		}
		if len(own) > 1 && !f.Kind.IsList() {
			return fail(diagnostics.ForbiddenUsagef(sc.docID(), own[1].Line, "repeated field `%s` in `%s`", f.Name, rec.Name))
		}

		var (
			st  pvState
			err error
		)
		switch {
		case fromCaption:
			captionUsed = true
			st, err = a.propertyValue(caption, &f.Kind, false, sc, line)
		case fromBody:
			bodyUsed = true
			st, err = a.propertyValue(body, &f.Kind, false, sc, line)
		case len(own) > 0 && f.Kind.IsList():
			st, err = a.accumulateHeaders(own, f.Kind, sc)
		case len(own) == 1:
			kind := f.Kind
			if variant := ast.HeaderVariant(own[0].Key); variant != "" {
				var ok bool
				if kind, ok = narrow(kind, variant); !ok {
					return fail(diagnostics.NotFoundf(sc.docID(), own[0].Line, "`%s` has no variant `%s`", f.Kind.Kind, variant))
				}
			}
			st, err = a.propertyValue(own[0].Value, &kind, own[0].Mutable, sc, own[0].Line)
		case typesystem.IsChildren(f.Kind.Kind) && len(children) > 0:
			st, err = a.subsectionList(children, sc, line)
		case f.Value != nil:
			fromDefault[f.Name] = true
			st = symbols.Done(f.Value)
		case f.Kind.IsOptional():
			st = symbols.Done[symbols.PropertyValue](symbols.NoneOf(f.Kind.Kind, line))
		case f.Kind.IsList():
			st = symbols.Done[symbols.PropertyValue](symbols.NewLiteral(&symbols.ListValue{Elem: f.Kind.InnerList().Kind}, line))
		default:
			return fail(diagnostics.MissingDataf(sc.docID(), line, "field `%s` of `%s` is required", f.Name, rec.Name))
		}
		if err != nil || st.IsContinue() {
			return st, err
		}
		fields.Set(f.Name, st.Value)
	}
	if caption != nil && !captionUsed {
		return fail(diagnostics.UnknownDataf(sc.docID(), line, "record `%s` does not take a caption", rec.Name))
	}
	if body != nil && !bodyUsed {
		return fail(diagnostics.UnknownDataf(sc.docID(), line, "record `%s` does not take a body", rec.Name))
	}

	if err := a.rewireSiblings(rec, fields, fromDefault, sc.docID(), line); err != nil {
		return fail(err)
	}
	return done(symbols.NewLiteral(&symbols.RecordValue{Name: rec.Name, Fields: fields}, line))
}

// accumulateHeaders packs repeated headers of a list argument into one list.
func (a *Analyzer) accumulateHeaders(headers []*ast.Header, kind typesystem.KindData, sc *scope) (pvState, error) {
	elem := kind.InnerList()
	list := &symbols.ListValue{Elem: elem.Kind}
	for _, h := range headers {
		st, err := a.propertyValue(h.Value, &kind, h.Mutable, sc, h.Line)
		if err != nil || st.IsContinue() {
			return st, err
		}
		if lit, ok := st.Value.(*symbols.Literal); ok {
			if items, ok := symbols.Unwrap(lit.Value).(*symbols.ListValue); ok {
				list.Data = append(list.Data, items.Data...)
				continue
			}
		}
		if len(headers) == 1 {
			return st, nil
		}
		return fail(diagnostics.Parsef(sc.docID(), h.Line, "a list reference cannot be combined with other `%s` headers", h.Key))
	}
	return done(symbols.NewLiteral(list, headers[0].Line))
}

// rewireSiblings replaces default references to sibling fields, such as
// `$color.light` in the default of `color.dark`, by the sibling's value.
func (a *Analyzer) rewireSiblings(rec *symbols.Record, fields *symbols.Fields, fromDefault map[string]bool, docID string, line int) error {
	prefix := rec.Name + "."
	for round := 0; round <= len(rec.Fields); round++ {
		changed := false
		pending := false
		for pair := fields.Oldest(); pair != nil; pair = pair.Next() {
			if !fromDefault[pair.Key] {
				continue
			}
			name, source, ok := symbols.ReferenceName(pair.Value)
			if !ok || source.Kind != symbols.SourceLocal || source.Name != rec.Name || !strings.HasPrefix(name, prefix) {
				continue
			}
			sibling, path := cutPath(strings.TrimPrefix(name, prefix))
			if sibling == pair.Key {
				return diagnostics.Parsef(docID, line, "field `%s` of `%s` refers to itself", pair.Key, rec.Name)
			}
			target, ok := fields.Get(sibling)
			if !ok {
				return diagnostics.NotFoundf(docID, line, "record `%s` has no field `%s`", rec.Name, sibling)
			}
			if _, s, isRef := symbols.ReferenceName(target); isRef && s.Kind == symbols.SourceLocal && s.Name == rec.Name && fromDefault[sibling] {
				pending = true
				continue
			}
			projected, err := a.project(target, path, docID, line)
			if err != nil {
				return err
			}
			fields.Set(pair.Key, projected)
			changed = true
		}
		if !pending {
			return nil
		}
		if !changed {
			return diagnostics.Parsef(docID, line, "cyclic field defaults in `%s`", rec.Name)
		}
	}
	return nil
}

// project reads path out of pv: a field of a literal record, or a longer
// reference name.
func (a *Analyzer) project(pv symbols.PropertyValue, path string, docID string, line int) (symbols.PropertyValue, error) {
	if path == "" {
		return pv, nil
	}
	switch v := pv.(type) {
	case *symbols.Literal:
		rec, ok := symbols.Unwrap(v.Value).(*symbols.RecordValue)
		if !ok {
			return nil, diagnostics.NotFoundf(docID, line, "cannot read `%s` of a `%s` value", path, v.Kind())
		}
		field, rest := cutPath(path)
		inner, ok := rec.Field(field)
		if !ok {
			return nil, diagnostics.NotFoundf(docID, line, "record `%s` has no field `%s`", rec.Name, field)
		}
		return a.project(inner, rest, docID, line)
	case *symbols.Reference:
		kind, _, err := a.walkFields(v.KindData, path, docID, line)
		if err != nil {
			return nil, err
		}
		out := *v
		out.Name += "." + path
		out.KindData = kind
		return &out, nil
	case *symbols.Clone:
		kind, _, err := a.walkFields(v.KindData, path, docID, line)
		if err != nil {
			return nil, err
		}
		out := *v
		out.Name += "." + path
		out.KindData = kind
		return &out, nil
	}
	return nil, diagnostics.Parsef(docID, line, "cannot read `%s` of a function call", path)
}

// orTypeValue builds an or-type value. With a variant path the value is
// the variant's payload; otherwise the text names a constant variant
// (`Type.variant` or just `variant`) or is a literal of one of the
// regular variants.
func (a *Analyzer) orTypeValue(ot *symbols.OrType, variantPath string, v ast.VariableValue, sc *scope, line int) (pvState, error) {
	if variantPath != "" {
		first, rest := cutPath(variantPath)
		variant, ok := ot.Variant(first)
		if !ok {
			return fail(diagnostics.NotFoundf(sc.docID(), line, "`%s` has no variant `%s`", ot.Name, first))
		}
		return a.variantValue(ot, variant, rest, v, sc, line)
	}

	s, ok := v.(*ast.StringValue)
	if !ok {
		return fail(diagnostics.Parsef(sc.docID(), line, "expected a variant of `%s`", ot.Name))
	}
	text := strings.TrimSpace(s.Value)

	if looksQualified(text) {
		st, err := a.Search(qualify(sc.doc, text), sc.docID(), line)
		if err == nil && st.IsContinue() {
			return symbols.Forward[symbols.PropertyValue](st), nil
		}
		if err == nil {
			if other, ok := st.Value.Thing.(*symbols.OrType); ok && other.Name == ot.Name {
				return a.constantVariant(ot, st.Value.Remaining, sc, line)
			}
		}
	}
	if _, ok := ot.Variant(text); ok {
		return a.constantVariant(ot, text, sc, line)
	}
	if pv, ok := a.implicitVariant(ot, s, sc, line, 0); ok {
		return done(pv)
	}
	return fail(diagnostics.Parsef(sc.docID(), line, "`%s` is not a variant of `%s`", text, ot.Name))
}

func looksQualified(text string) bool {
	if text == "" || !(text[0] >= 'a' && text[0] <= 'z' || text[0] >= 'A' && text[0] <= 'Z') {
		return false
	}
	return strings.ContainsAny(text, ".#") && !strings.ContainsAny(text, " \t")
}

func (a *Analyzer) constantVariant(ot *symbols.OrType, name string, sc *scope, line int) (pvState, error) {
	variant, ok := ot.Variant(name)
	if !ok {
		return fail(diagnostics.NotFoundf(sc.docID(), line, "`%s` has no variant `%s`", ot.Name, name))
	}
	if variant.Kind != symbols.VariantConstant {
		return fail(diagnostics.Parsef(sc.docID(), line, "variant `%s` of `%s` needs a value", name, ot.Name))
	}
	lit := orTypeLiteral(ot, variant, variant.Field.Value)
	lit.Line = line
	return done(lit)
}

func (a *Analyzer) variantValue(ot *symbols.OrType, variant *symbols.OrTypeVariant, rest string, v ast.VariableValue, sc *scope, line int) (pvState, error) {
	var (
		st  pvState
		err error
	)
	switch variant.Kind {
	case symbols.VariantConstant:
		return fail(diagnostics.Parsef(sc.docID(), line, "constant variant `%s` of `%s` cannot take a value", variant.Name, ot.Name))
	case symbols.VariantAnonymousRecord:
		st, err = a.recordValue(variant.Record, v, sc, line)
	default:
		kind := variant.Field.Kind
		if rest != "" {
			var ok bool
			if kind, ok = narrow(kind, rest); !ok {
				return fail(diagnostics.NotFoundf(sc.docID(), line, "`%s` has no variant `%s`", kind.Kind, rest))
			}
		}
		st, err = a.literalValue(v, &kind, sc, line)
	}
	if err != nil || st.IsContinue() {
		return st, err
	}
	lit := orTypeLiteral(ot, variant, st.Value)
	lit.Line = line
	return done(lit)
}

// implicitVariant reads text as the payload of a regular variant: numeric
// and boolean payloads first (searching nested or-types), then records
// that take a caption.
func (a *Analyzer) implicitVariant(ot *symbols.OrType, s *ast.StringValue, sc *scope, line int, depth int) (symbols.PropertyValue, bool) {
	if depth > 3 {
		return nil, false
	}
	for _, variant := range ot.Variants {
		if variant.Kind != symbols.VariantRegular {
			continue
		}
		kind := typesystem.Inner(variant.Field.Kind.Kind)
		switch k := kind.(type) {
		case typesystem.KInteger, typesystem.KDecimal, typesystem.KBoolean:
			value, err := parsePrimitive(kind, s.Value)
			if err == nil {
				return orTypeLiteral(ot, variant, symbols.NewLiteral(value, line)), true
			}
		case typesystem.KOrType:
			if nested, ok := a.orType(k.Name); ok && nested.Name != ot.Name {
				if pv, ok := a.implicitVariant(nested, s, sc, line, depth+1); ok {
					return orTypeLiteral(ot, variant, pv), true
				}
			}
		}
	}
	if depth > 0 {
		return nil, false
	}
	for _, variant := range ot.Variants {
		if variant.Kind != symbols.VariantRegular {
			continue
		}
		name, ok := typesystem.RecordName(variant.Field.Kind.Kind)
		if !ok {
			continue
		}
		rec, ok := a.record(name)
		if !ok || !hasCaptionField(rec) {
			continue
		}
		st, err := a.recordValue(rec, s, sc, line)
		if err == nil && !st.IsContinue() {
			return orTypeLiteral(ot, variant, st.Value), true
		}
	}
	return nil, false
}

func hasCaptionField(rec *symbols.Record) bool {
	for _, f := range rec.Fields {
		if f.Kind.Caption {
			return true
		}
	}
	return false
}

func (a *Analyzer) uiValue(v ast.VariableValue, sc *scope, line int) (pvState, error) {
	rv, ok := v.(*ast.RecordValue)
	if !ok {
		return fail(diagnostics.Parsef(sc.docID(), line, "expected a component"))
	}
	inv := rv.Invocation()
	if inv.Name == "" {
		return fail(diagnostics.Parsef(sc.docID(), line, "component value without a name"))
	}
	st, err := a.component(inv, sc)
	if err != nil || st.IsContinue() {
		return symbols.Forward[symbols.PropertyValue](st), err
	}
	return done(symbols.NewLiteral(&symbols.UIValue{Name: st.Value.Name, Component: st.Value}, line))
}

// subsectionList analyzes record children into a List(UI) literal.
func (a *Analyzer) subsectionList(items []*ast.ListItem, sc *scope, line int) (pvState, error) {
	list := &symbols.ListValue{Elem: typesystem.UI}
	for _, item := range items {
		st, err := a.uiValue(item.Value, sc, line)
		if err != nil || st.IsContinue() {
			return st, err
		}
		list.Data = append(list.Data, st.Value)
	}
	return done(symbols.NewLiteral(list, line))
}

func (a *Analyzer) moduleValue(v ast.VariableValue, sc *scope, line int) (pvState, error) {
	s, ok := v.(*ast.StringValue)
	if !ok {
		return fail(diagnostics.Parsef(sc.docID(), line, "expected a module name"))
	}
	id := strings.TrimSpace(s.Value)
	if resolvedID, ok := sc.doc.ResolveAlias(id); ok {
		id = resolvedID
	}
	if _, ok := a.loader.Get(id); !ok {
		return symbols.Continue[symbols.PropertyValue](id + "#"), nil
	}
	return done(symbols.NewLiteral(&symbols.ModuleValue{Name: id}, line))
}

// objectValue collects headers of a record literal by name. Values keep
// references; literals stay strings.
func (a *Analyzer) objectValue(v ast.VariableValue, kind typesystem.Kind, sc *scope, line int) (pvState, error) {
	rv, ok := v.(*ast.RecordValue)
	if !ok {
		return fail(diagnostics.Parsef(sc.docID(), line, "expected a mapping for `%s`", kind))
	}
	fields := symbols.NewFields()
	for _, h := range rv.Headers {
		st, err := a.propertyValue(h.Value, nil, h.Mutable, sc, h.Line)
		if err != nil || st.IsContinue() {
			return st, err
		}
		fields.Set(h.Key, st.Value)
	}
	if _, ok := kind.(typesystem.KKwArgs); ok {
		return done(symbols.NewLiteral(&symbols.KwArgsValue{Arguments: fields}, line))
	}
	return done(symbols.NewLiteral(&symbols.ObjectValue{Values: fields}, line))
}
