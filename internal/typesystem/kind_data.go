package typesystem

import (
	"strings"
)

// KindData is a Kind plus whether it may receive an invocation's caption
// and/or body.
type KindData struct {
	Kind    Kind
	Caption bool
	Body    bool
}

// Data wraps k without caption or body flags.
func Data(k Kind) KindData {
	return KindData{Kind: k}
}

func (k KindData) WithCaption() KindData {
	k.Caption = true
	return k
}

func (k KindData) WithBody() KindData {
	k.Body = true
	return k
}

func (k KindData) IsCaptionOrBody() bool { return k.Caption || k.Body }
func (k KindData) IsOptional() bool      { return IsOptional(k.Kind) }
func (k KindData) IsList() bool          { return IsList(k.Kind) }

// IsSameAs compares the kinds, ignoring caption/body flags.
func (k KindData) IsSameAs(other KindData) bool {
	return IsSameAs(k.Kind, other.Kind)
}

// Inner returns k with one Optional wrapper stripped.
func (k KindData) Inner() KindData {
	k.Kind = Inner(k.Kind)
	return k
}

// InnerList returns k with one List wrapper stripped, after stripping Optional.
func (k KindData) InnerList() KindData {
	k.Kind = RefInner(k.Kind)
	return k
}

// IntoOptional wraps the kind in Optional unless it already is.
func (k KindData) IntoOptional() KindData {
	if !IsOptional(k.Kind) {
		k.Kind = OptionalOf(k.Kind)
	}
	return k
}

// IntoList wraps the kind in List.
func (k KindData) IntoList() KindData {
	k.Kind = ListOf(k.Kind)
	return k
}

func (k KindData) String() string {
	var prefix []string
	switch {
	case k.Caption && k.Body:
		prefix = append(prefix, "caption or body")
	case k.Caption:
		prefix = append(prefix, "caption")
	case k.Body:
		prefix = append(prefix, "body")
	}
	if k.Kind != nil {
		prefix = append(prefix, k.Kind.String())
	}
	return strings.Join(prefix, " ")
}

// GetKind widens found against expected: expected's flags and
// optional/list/constant structure are kept, its concrete kind is replaced
// by found's unless found is a module or an or-type. UI kinds pass
// expected through.
func GetKind(expected *KindData, found KindData) KindData {
	if expected == nil {
		return found
	}
	if IsUI(expected.Kind) {
		return *expected
	}
	foundConcrete := RefInner(StripConstant(found.Kind))
	switch foundConcrete.(type) {
	case KModule, KOrType:
		return *expected
	}
	out := *expected
	out.Kind = replaceConcrete(expected.Kind, foundConcrete)
	return out
}

func replaceConcrete(k Kind, concrete Kind) Kind {
	switch w := k.(type) {
	case KOptional:
		return KOptional{Elem: replaceConcrete(w.Elem, concrete)}
	case KList:
		return KList{Elem: replaceConcrete(w.Elem, concrete)}
	case KConstant:
		return KConstant{Elem: replaceConcrete(w.Elem, concrete)}
	}
	return concrete
}
