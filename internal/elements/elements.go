// Package elements defines the executed element tree: one node per kernel
// component instance, with its styling already reduced to CSS-ready values.
package elements

import (
	"github.com/funvibe/ftdc/internal/styles"
)

// Element discriminators, serialized under the "element" key.
const (
	KindRow       = "row"
	KindColumn    = "column"
	KindScene     = "scene"
	KindGrid      = "grid"
	KindText      = "text"
	KindInteger   = "integer"
	KindDecimal   = "decimal"
	KindBoolean   = "boolean"
	KindCode      = "code"
	KindImage     = "image"
	KindIFrame    = "iframe"
	KindTextInput = "text-input"
	KindMarkup    = "markup"
	KindNull      = "null"
)

// Element is a node of the executed tree.
type Element interface {
	ElementKind() string
	// GetCommon returns nil for Null.
	GetCommon() *Common
}

// Parent is an element that holds children.
type Parent interface {
	Element
	GetContainer() *Container
}

type Null struct {
	Element string `json:"element" yaml:"element"`
}

func NewNull() *Null { return &Null{Element: KindNull} }

func (n *Null) ElementKind() string { return KindNull }
func (n *Null) GetCommon() *Common  { return nil }

// IsNull reports whether e is absent from the rendered output.
func IsNull(e Element) bool {
	_, ok := e.(*Null)
	return e == nil || ok
}

// Container is the children part of rows, columns, scenes, grids and the
// document root.
type Container struct {
	Children         []Element         `json:"children" yaml:"children"`
	ExternalChildren *ExternalChildren `json:"external-children,omitempty" yaml:"external-children,omitempty"`
	Open             *bool             `json:"open,omitempty" yaml:"open,omitempty"`
	AppendAt         *string           `json:"append-at,omitempty" yaml:"append-at,omitempty"`
	Wrap             *bool             `json:"wrap,omitempty" yaml:"wrap,omitempty"`
	Spacing          *styles.Spacing   `json:"spacing,omitempty" yaml:"spacing,omitempty"`
	AlignContent     *styles.Alignment `json:"align-content,omitempty" yaml:"align-content,omitempty"`
}

// ExternalChildren are children passed by the caller of a component and
// spliced into a container nested inside the component's body.
type ExternalChildren struct {
	ID       string    `json:"id" yaml:"id"`
	AppendAt string    `json:"append-at" yaml:"append-at"`
	Children []Element `json:"children" yaml:"children"`
}

// Row lays children out horizontally.
type Row struct {
	Element string `json:"element" yaml:"element"`
	Common    `yaml:",inline"`
	Container `yaml:",inline"`
}

func NewRow() *Row { return &Row{Element: KindRow} }

func (r *Row) ElementKind() string      { return KindRow }
func (r *Row) GetCommon() *Common       { return &r.Common }
func (r *Row) GetContainer() *Container { return &r.Container }

// Column lays children out vertically.
type Column struct {
	Element string `json:"element" yaml:"element"`
	Common    `yaml:",inline"`
	Container `yaml:",inline"`
}

func NewColumn() *Column { return &Column{Element: KindColumn} }

func (c *Column) ElementKind() string      { return KindColumn }
func (c *Column) GetCommon() *Common       { return &c.Common }
func (c *Column) GetContainer() *Container { return &c.Container }

// Scene positions children absolutely.
type Scene struct {
	Element string `json:"element" yaml:"element"`
	Common    `yaml:",inline"`
	Container `yaml:",inline"`
}

func NewScene() *Scene { return &Scene{Element: KindScene} }

func (s *Scene) ElementKind() string      { return KindScene }
func (s *Scene) GetCommon() *Common       { return &s.Common }
func (s *Scene) GetContainer() *Container { return &s.Container }

type Grid struct {
	Element     string         `json:"element" yaml:"element"`
	Slots       string         `json:"slots" yaml:"slots"`
	SlotWidths  *string        `json:"slot-widths,omitempty" yaml:"slot-widths,omitempty"`
	SlotHeights *string        `json:"slot-heights,omitempty" yaml:"slot-heights,omitempty"`
	GridSpacing *styles.Length `json:"grid-spacing,omitempty" yaml:"grid-spacing,omitempty"`
	Inline      bool           `json:"inline" yaml:"inline"`
	AutoFlow    *string        `json:"auto-flow,omitempty" yaml:"auto-flow,omitempty"`
	Common    `yaml:",inline"`
	Container `yaml:",inline"`
}

func NewGrid() *Grid { return &Grid{Element: KindGrid} }

func (g *Grid) ElementKind() string      { return KindGrid }
func (g *Grid) GetCommon() *Common       { return &g.Common }
func (g *Grid) GetContainer() *Container { return &g.Container }

// Text is ftd#text and the text-like ftd#integer, ftd#decimal and
// ftd#boolean; Element tells them apart.
type Text struct {
	Element    string            `json:"element" yaml:"element"`
	Text       string            `json:"text" yaml:"text"`
	TextAlign  *styles.Enum      `json:"text-align,omitempty" yaml:"text-align,omitempty"`
	TextIndent *styles.Length    `json:"text-indent,omitempty" yaml:"text-indent,omitempty"`
	LineClamp  *int64            `json:"line-clamp,omitempty" yaml:"line-clamp,omitempty"`
	Style      *styles.TextStyle `json:"style,omitempty" yaml:"style,omitempty"`
	Display    *styles.Enum      `json:"display,omitempty" yaml:"display,omitempty"`
	Format     *string           `json:"format,omitempty" yaml:"format,omitempty"`
	Common    `yaml:",inline"`
}

// NewText returns a text-like element of kind KindText, KindInteger,
// KindDecimal or KindBoolean.
func NewText(kind string) *Text { return &Text{Element: kind} }

func (t *Text) ElementKind() string { return t.Element }
func (t *Text) GetCommon() *Common  { return &t.Common }

type Code struct {
	Element   string       `json:"element" yaml:"element"`
	Text      string       `json:"text" yaml:"text"`
	Lang      string       `json:"lang" yaml:"lang"`
	Theme     *string      `json:"theme,omitempty" yaml:"theme,omitempty"`
	TextAlign *styles.Enum `json:"text-align,omitempty" yaml:"text-align,omitempty"`
	LineClamp *int64       `json:"line-clamp,omitempty" yaml:"line-clamp,omitempty"`
	Common    `yaml:",inline"`
}

func NewCode() *Code { return &Code{Element: KindCode} }

func (c *Code) ElementKind() string { return KindCode }
func (c *Code) GetCommon() *Common  { return &c.Common }

type Image struct {
	Element string          `json:"element" yaml:"element"`
	Src     styles.ImageSrc `json:"src" yaml:"src"`
	Alt     *string         `json:"alt,omitempty" yaml:"alt,omitempty"`
	Fit     *styles.Enum    `json:"fit,omitempty" yaml:"fit,omitempty"`
	Loading *styles.Enum    `json:"loading" yaml:"loading"`
	Common    `yaml:",inline"`
}

func NewImage() *Image { return &Image{Element: KindImage} }

func (i *Image) ElementKind() string { return KindImage }
func (i *Image) GetCommon() *Common  { return &i.Common }

type IFrame struct {
	Element string       `json:"element" yaml:"element"`
	Src     *string      `json:"src,omitempty" yaml:"src,omitempty"`
	SrcDoc  *string      `json:"srcdoc,omitempty" yaml:"srcdoc,omitempty"`
	Loading *styles.Enum `json:"loading" yaml:"loading"`
	Common    `yaml:",inline"`
}

func NewIFrame() *IFrame { return &IFrame{Element: KindIFrame} }

func (f *IFrame) ElementKind() string { return KindIFrame }
func (f *IFrame) GetCommon() *Common  { return &f.Common }

type TextInput struct {
	Element      string       `json:"element" yaml:"element"`
	Placeholder  *string      `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Value        *string      `json:"value,omitempty" yaml:"value,omitempty"`
	DefaultValue *string      `json:"default-value,omitempty" yaml:"default-value,omitempty"`
	Multiline    bool         `json:"multiline" yaml:"multiline"`
	Enabled      *bool        `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	MaxLength    *int64       `json:"max-length,omitempty" yaml:"max-length,omitempty"`
	Type         *styles.Enum `json:"type,omitempty" yaml:"type,omitempty"`
	Common    `yaml:",inline"`
}

func NewTextInput() *TextInput { return &TextInput{Element: KindTextInput} }

func (t *TextInput) ElementKind() string { return KindTextInput }
func (t *TextInput) GetCommon() *Common  { return &t.Common }

// Markup is a text whose `{name: text}` spans were expanded into
// component instances, in order of appearance.
type Markup struct {
	Element  string    `json:"element" yaml:"element"`
	Text     string    `json:"text" yaml:"text"`
	Children []Element `json:"children" yaml:"children"`
	Common    `yaml:",inline"`
}

func NewMarkup() *Markup { return &Markup{Element: KindMarkup} }

func (m *Markup) ElementKind() string { return KindMarkup }
func (m *Markup) GetCommon() *Common  { return &m.Common }

// Children returns the direct children of e, external ones excluded.
func Children(e Element) []Element {
	switch el := e.(type) {
	case Parent:
		return el.GetContainer().Children
	case *Markup:
		return el.Children
	}
	return nil
}

// Walk calls fn for e and every descendant, depth-first, external
// children included.
func Walk(e Element, fn func(Element)) {
	if e == nil {
		return
	}
	fn(e)
	for _, child := range Children(e) {
		Walk(child, fn)
	}
	if p, ok := e.(Parent); ok && p.GetContainer().ExternalChildren != nil {
		for _, child := range p.GetContainer().ExternalChildren.Children {
			Walk(child, fn)
		}
	}
}
