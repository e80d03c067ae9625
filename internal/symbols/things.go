package symbols

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/funvibe/ftdc/internal/ast"
	"github.com/funvibe/ftdc/internal/typesystem"
)

// Thing is anything a document defines at top level.
type Thing interface {
	ThingName() string
	GetLine() int
	thing()
}

// Record is a record type definition.
type Record struct {
	Name   string
	Fields []*Argument
	Line   int
}

func (r *Record) ThingName() string { return r.Name }
func (r *Record) GetLine() int      { return r.Line }
func (r *Record) thing()            {}

// Field returns the named field.
func (r *Record) Field(name string) (*Argument, bool) {
	return FindArgument(r.Fields, name)
}

type VariantKind int

const (
	VariantRegular VariantKind = iota
	VariantAnonymousRecord
	VariantConstant
)

// OrTypeVariant is one case of an or-type. Regular and Constant variants
// carry Field; anonymous record variants carry Record.
type OrTypeVariant struct {
	Kind   VariantKind
	Name   string
	Field  *Argument
	Record *Record
	Line   int
}

// FullName is the variant name qualified with its or-type, e.g.
// "ftd#length.px".
func (v *OrTypeVariant) FullName(orType string) string {
	return orType + "." + v.Name
}

// OrType is a tagged union definition.
type OrType struct {
	Name     string
	Variants []*OrTypeVariant
	Line     int
}

func (o *OrType) ThingName() string { return o.Name }
func (o *OrType) GetLine() int      { return o.Line }
func (o *OrType) thing()            {}

// Variant returns the named variant. A qualified name is accepted too.
func (o *OrType) Variant(name string) (*OrTypeVariant, bool) {
	name = strings.TrimPrefix(name, o.Name+".")
	for _, v := range o.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return nil, false
}

// OrTypeWithVariant is a lookup result naming one variant of an or-type.
type OrTypeWithVariant struct {
	OrType  *OrType
	Variant *OrTypeVariant
}

func (o *OrTypeWithVariant) ThingName() string { return o.Variant.FullName(o.OrType.Name) }
func (o *OrTypeWithVariant) GetLine() int      { return o.Variant.Line }
func (o *OrTypeWithVariant) thing()            {}

// Variable is a global variable.
type Variable struct {
	Name    string
	Kind    typesystem.KindData
	Mutable bool
	Value   PropertyValue
	Line    int
}

func (v *Variable) ThingName() string { return v.Name }
func (v *Variable) GetLine() int      { return v.Line }
func (v *Variable) thing()            {}

// Function is a user function whose body is an expression program.
// References holds what every reference and call of the body resolved to,
// keyed like Expression.References.
type Function struct {
	Name       string
	ReturnKind typesystem.KindData
	Arguments  []*Argument
	Body       *ast.Program
	References *orderedmap.OrderedMap[string, PropertyValue]
	Line       int
}

func (f *Function) ThingName() string { return f.Name }
func (f *Function) GetLine() int      { return f.Line }
func (f *Function) thing()            {}

// ComponentDefinition is a reusable component template. Kernel components
// have no Definition; the executor builds their elements directly.
type ComponentDefinition struct {
	Name       string
	Arguments  []*Argument
	Definition *Component
	CSS        string
	Kernel     bool
	Line       int
}

func (c *ComponentDefinition) ThingName() string { return c.Name }
func (c *ComponentDefinition) GetLine() int      { return c.Line }
func (c *ComponentDefinition) thing()            {}

// Argument returns the named argument.
func (c *ComponentDefinition) Argument(name string) (*Argument, bool) {
	return FindArgument(c.Arguments, name)
}

// SplitQualified splits "doc#name.rest" into "doc", "name" and "rest".
func SplitQualified(name string) (doc, thing, remaining string) {
	if i := strings.Index(name, "#"); i >= 0 {
		doc, name = name[:i], name[i+1:]
	}
	if i := strings.Index(name, "."); i >= 0 {
		return doc, name[:i], name[i+1:]
	}
	return doc, name, ""
}

// Qualify prefixes name with docID unless it is already qualified.
func Qualify(docID, name string) string {
	if strings.Contains(name, "#") {
		return name
	}
	return docID + "#" + name
}
