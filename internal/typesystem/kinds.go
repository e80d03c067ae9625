package typesystem

import (
	"fmt"
)

// Kind is the type of a value.
type Kind interface {
	String() string
	Equal(Kind) bool
	kind()
}

type KString struct{}

func (KString) String() string        { return "string" }
func (KString) Equal(other Kind) bool { _, ok := other.(KString); return ok }
func (KString) kind()                 {}

type KInteger struct{}

func (KInteger) String() string        { return "integer" }
func (KInteger) Equal(other Kind) bool { _, ok := other.(KInteger); return ok }
func (KInteger) kind()                 {}

type KDecimal struct{}

func (KDecimal) String() string        { return "decimal" }
func (KDecimal) Equal(other Kind) bool { _, ok := other.(KDecimal); return ok }
func (KDecimal) kind()                 {}

type KBoolean struct{}

func (KBoolean) String() string        { return "boolean" }
func (KBoolean) Equal(other Kind) bool { _, ok := other.(KBoolean); return ok }
func (KBoolean) kind()                 {}

type KVoid struct{}

func (KVoid) String() string        { return "void" }
func (KVoid) Equal(other Kind) bool { _, ok := other.(KVoid); return ok }
func (KVoid) kind()                 {}

// KUI is the kind of component values.
type KUI struct{}

func (KUI) String() string        { return "ftd.ui" }
func (KUI) Equal(other Kind) bool { _, ok := other.(KUI); return ok }
func (KUI) kind()                 {}

type KModule struct{}

func (KModule) String() string        { return "module" }
func (KModule) Equal(other Kind) bool { _, ok := other.(KModule); return ok }
func (KModule) kind()                 {}

type KKwArgs struct{}

func (KKwArgs) String() string        { return "kw-args" }
func (KKwArgs) Equal(other Kind) bool { _, ok := other.(KKwArgs); return ok }
func (KKwArgs) kind()                 {}

type KObject struct{}

func (KObject) String() string        { return "object" }
func (KObject) Equal(other Kind) bool { _, ok := other.(KObject); return ok }
func (KObject) kind()                 {}

// KRecord is a record kind identified by its qualified name.
type KRecord struct {
	Name string
}

func (k KRecord) String() string { return k.Name }
func (k KRecord) Equal(other Kind) bool {
	o, ok := other.(KRecord)
	return ok && o.Name == k.Name
}
func (KRecord) kind() {}

// KOrType is an or-type kind, optionally narrowed to one variant.
// FullVariant is the qualified variant name, e.g. "ftd#length.px".
type KOrType struct {
	Name        string
	Variant     string
	FullVariant string
}

func (k KOrType) String() string {
	if k.Variant != "" {
		return k.Name + "." + k.Variant
	}
	return k.Name
}
func (k KOrType) Equal(other Kind) bool {
	o, ok := other.(KOrType)
	return ok && o.Name == k.Name && o.Variant == k.Variant
}
func (KOrType) kind() {}

type KList struct {
	Elem Kind
}

func (k KList) String() string { return fmt.Sprintf("%s list", k.Elem) }
func (k KList) Equal(other Kind) bool {
	o, ok := other.(KList)
	return ok && k.Elem.Equal(o.Elem)
}
func (KList) kind() {}

type KOptional struct {
	Elem Kind
}

func (k KOptional) String() string { return fmt.Sprintf("optional %s", k.Elem) }
func (k KOptional) Equal(other Kind) bool {
	o, ok := other.(KOptional)
	return ok && k.Elem.Equal(o.Elem)
}
func (KOptional) kind() {}

type KConstant struct {
	Elem Kind
}

func (k KConstant) String() string { return fmt.Sprintf("constant %s", k.Elem) }
func (k KConstant) Equal(other Kind) bool {
	o, ok := other.(KConstant)
	return ok && k.Elem.Equal(o.Elem)
}
func (KConstant) kind() {}

var (
	String  Kind = KString{}
	Integer Kind = KInteger{}
	Decimal Kind = KDecimal{}
	Boolean Kind = KBoolean{}
	Void    Kind = KVoid{}
	UI      Kind = KUI{}
	Module  Kind = KModule{}
	KwArgs  Kind = KKwArgs{}
	Object  Kind = KObject{}
)

func Record(name string) Kind { return KRecord{Name: name} }
func OrType(name string) Kind { return KOrType{Name: name} }
func ListOf(k Kind) Kind      { return KList{Elem: k} }
func OptionalOf(k Kind) Kind  { return KOptional{Elem: k} }
func ConstantOf(k Kind) Kind  { return KConstant{Elem: k} }

// OrTypeVariant narrows an or-type kind to one variant.
func OrTypeVariant(name, variant string) Kind {
	return KOrType{Name: name, Variant: variant, FullVariant: name + "." + variant}
}

// Inner strips one Optional wrapper.
func Inner(k Kind) Kind {
	if o, ok := k.(KOptional); ok {
		return o.Elem
	}
	return k
}

// InnerList strips one List wrapper.
func InnerList(k Kind) Kind {
	if l, ok := k.(KList); ok {
		return l.Elem
	}
	return k
}

// RefInner strips an Optional wrapper and then a List wrapper.
func RefInner(k Kind) Kind {
	return InnerList(Inner(k))
}

// StripConstant removes a Constant wrapper.
func StripConstant(k Kind) Kind {
	if c, ok := k.(KConstant); ok {
		return c.Elem
	}
	return k
}

func IsOptional(k Kind) bool { _, ok := StripConstant(k).(KOptional); return ok }
func IsList(k Kind) bool     { _, ok := Inner(StripConstant(k)).(KList); return ok }
func IsConstant(k Kind) bool { _, ok := k.(KConstant); return ok }

func IsUI(k Kind) bool {
	_, ok := Inner(StripConstant(k)).(KUI)
	return ok
}

func IsModule(k Kind) bool {
	_, ok := Inner(StripConstant(k)).(KModule)
	return ok
}

func IsKwArgs(k Kind) bool {
	_, ok := Inner(StripConstant(k)).(KKwArgs)
	return ok
}

// IsChildren reports whether k is the children slot kind, List(UI).
func IsChildren(k Kind) bool {
	l, ok := Inner(StripConstant(k)).(KList)
	if !ok {
		return false
	}
	_, ok = l.Elem.(KUI)
	return ok
}

// RecordName returns the record name of k after unwrapping, if any.
func RecordName(k Kind) (string, bool) {
	r, ok := Inner(StripConstant(k)).(KRecord)
	return r.Name, ok
}

// OrTypeOf returns the or-type kind of k after unwrapping, if any.
func OrTypeOf(k Kind) (KOrType, bool) {
	o, ok := Inner(StripConstant(k)).(KOrType)
	return o, ok
}

// IsPrimitive reports whether k is string, integer, decimal or boolean.
func IsPrimitive(k Kind) bool {
	switch Inner(StripConstant(k)).(type) {
	case KString, KInteger, KDecimal, KBoolean:
		return true
	}
	return false
}

// IsSameAs compares kinds ignoring Optional and Constant wrappers on either
// side. Or-types with the same name are the same regardless of narrowing.
func IsSameAs(a, b Kind) bool {
	a = StripConstant(a)
	b = StripConstant(b)
	if o, ok := a.(KOptional); ok {
		return IsSameAs(o.Elem, b)
	}
	if o, ok := b.(KOptional); ok {
		return IsSameAs(a, o.Elem)
	}
	switch ak := a.(type) {
	case KUI:
		_, ok := b.(KUI)
		return ok
	case KOrType:
		bk, ok := b.(KOrType)
		return ok && ak.Name == bk.Name
	case KList:
		bk, ok := b.(KList)
		return ok && IsSameAs(ak.Elem, bk.Elem)
	}
	return a.Equal(b)
}
