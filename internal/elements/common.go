package elements

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/funvibe/ftdc/internal/styles"
)

// Common holds what every element kind shares: identity, visibility,
// events and the styling common arguments reduced to typed values.
type Common struct {
	DataID    string     `json:"data-id,omitempty" yaml:"data-id,omitempty"`
	ID        *string    `json:"id,omitempty" yaml:"id,omitempty"`
	IsDummy   bool       `json:"is-dummy,omitempty" yaml:"is-dummy,omitempty"`
	Device    *string    `json:"device,omitempty" yaml:"device,omitempty"`
	Condition *Condition `json:"condition,omitempty" yaml:"condition,omitempty"`
	Events    []*Event   `json:"events,omitempty" yaml:"events,omitempty"`

	Link         *string  `json:"link,omitempty" yaml:"link,omitempty"`
	OpenInNewTab bool     `json:"open-in-new-tab,omitempty" yaml:"open-in-new-tab,omitempty"`
	Classes      []string `json:"classes,omitempty" yaml:"classes,omitempty"`
	CSS          []string `json:"css,omitempty" yaml:"css,omitempty"`
	JS           []string `json:"js,omitempty" yaml:"js,omitempty"`

	Region         *styles.Enum           `json:"region,omitempty" yaml:"region,omitempty"`
	Anchor         *styles.Anchor         `json:"anchor,omitempty" yaml:"anchor,omitempty"`
	ChildAlignment *styles.ChildAlignment `json:"child-alignment,omitempty" yaml:"child-alignment,omitempty"`

	Padding           *styles.Length `json:"padding,omitempty" yaml:"padding,omitempty"`
	PaddingLeft       *styles.Length `json:"padding-left,omitempty" yaml:"padding-left,omitempty"`
	PaddingRight      *styles.Length `json:"padding-right,omitempty" yaml:"padding-right,omitempty"`
	PaddingTop        *styles.Length `json:"padding-top,omitempty" yaml:"padding-top,omitempty"`
	PaddingBottom     *styles.Length `json:"padding-bottom,omitempty" yaml:"padding-bottom,omitempty"`
	PaddingHorizontal *styles.Length `json:"padding-horizontal,omitempty" yaml:"padding-horizontal,omitempty"`
	PaddingVertical   *styles.Length `json:"padding-vertical,omitempty" yaml:"padding-vertical,omitempty"`
	Margin            *styles.Length `json:"margin,omitempty" yaml:"margin,omitempty"`
	MarginLeft        *styles.Length `json:"margin-left,omitempty" yaml:"margin-left,omitempty"`
	MarginRight       *styles.Length `json:"margin-right,omitempty" yaml:"margin-right,omitempty"`
	MarginTop         *styles.Length `json:"margin-top,omitempty" yaml:"margin-top,omitempty"`
	MarginBottom      *styles.Length `json:"margin-bottom,omitempty" yaml:"margin-bottom,omitempty"`
	MarginHorizontal  *styles.Length `json:"margin-horizontal,omitempty" yaml:"margin-horizontal,omitempty"`
	MarginVertical    *styles.Length `json:"margin-vertical,omitempty" yaml:"margin-vertical,omitempty"`

	BorderWidth             *styles.Length `json:"border-width,omitempty" yaml:"border-width,omitempty"`
	BorderLeftWidth         *styles.Length `json:"border-left-width,omitempty" yaml:"border-left-width,omitempty"`
	BorderRightWidth        *styles.Length `json:"border-right-width,omitempty" yaml:"border-right-width,omitempty"`
	BorderTopWidth          *styles.Length `json:"border-top-width,omitempty" yaml:"border-top-width,omitempty"`
	BorderBottomWidth       *styles.Length `json:"border-bottom-width,omitempty" yaml:"border-bottom-width,omitempty"`
	BorderRadius            *styles.Length `json:"border-radius,omitempty" yaml:"border-radius,omitempty"`
	BorderTopLeftRadius     *styles.Length `json:"border-top-left-radius,omitempty" yaml:"border-top-left-radius,omitempty"`
	BorderTopRightRadius    *styles.Length `json:"border-top-right-radius,omitempty" yaml:"border-top-right-radius,omitempty"`
	BorderBottomLeftRadius  *styles.Length `json:"border-bottom-left-radius,omitempty" yaml:"border-bottom-left-radius,omitempty"`
	BorderBottomRightRadius *styles.Length `json:"border-bottom-right-radius,omitempty" yaml:"border-bottom-right-radius,omitempty"`
	BorderColor             *styles.Color  `json:"border-color,omitempty" yaml:"border-color,omitempty"`
	BorderLeftColor         *styles.Color  `json:"border-left-color,omitempty" yaml:"border-left-color,omitempty"`
	BorderRightColor        *styles.Color  `json:"border-right-color,omitempty" yaml:"border-right-color,omitempty"`
	BorderTopColor          *styles.Color  `json:"border-top-color,omitempty" yaml:"border-top-color,omitempty"`
	BorderBottomColor       *styles.Color  `json:"border-bottom-color,omitempty" yaml:"border-bottom-color,omitempty"`
	BorderStyle             *styles.Enum   `json:"border-style,omitempty" yaml:"border-style,omitempty"`
	BorderStyleLeft         *styles.Enum   `json:"border-style-left,omitempty" yaml:"border-style-left,omitempty"`
	BorderStyleRight        *styles.Enum   `json:"border-style-right,omitempty" yaml:"border-style-right,omitempty"`
	BorderStyleTop          *styles.Enum   `json:"border-style-top,omitempty" yaml:"border-style-top,omitempty"`
	BorderStyleBottom       *styles.Enum   `json:"border-style-bottom,omitempty" yaml:"border-style-bottom,omitempty"`
	BorderStyleHorizontal   *styles.Enum   `json:"border-style-horizontal,omitempty" yaml:"border-style-horizontal,omitempty"`
	BorderStyleVertical     *styles.Enum   `json:"border-style-vertical,omitempty" yaml:"border-style-vertical,omitempty"`

	Width     *styles.Resizing `json:"width,omitempty" yaml:"width,omitempty"`
	Height    *styles.Resizing `json:"height,omitempty" yaml:"height,omitempty"`
	MinWidth  *styles.Resizing `json:"min-width,omitempty" yaml:"min-width,omitempty"`
	MaxWidth  *styles.Resizing `json:"max-width,omitempty" yaml:"max-width,omitempty"`
	MinHeight *styles.Resizing `json:"min-height,omitempty" yaml:"min-height,omitempty"`
	MaxHeight *styles.Resizing `json:"max-height,omitempty" yaml:"max-height,omitempty"`

	Background    *styles.Background     `json:"background,omitempty" yaml:"background,omitempty"`
	Color         *styles.Color          `json:"color,omitempty" yaml:"color,omitempty"`
	Role          *styles.ResponsiveType `json:"role,omitempty" yaml:"role,omitempty"`
	AlignSelf     *styles.Enum           `json:"align-self,omitempty" yaml:"align-self,omitempty"`
	Overflow      *styles.Enum           `json:"overflow,omitempty" yaml:"overflow,omitempty"`
	OverflowX     *styles.Enum           `json:"overflow-x,omitempty" yaml:"overflow-x,omitempty"`
	OverflowY     *styles.Enum           `json:"overflow-y,omitempty" yaml:"overflow-y,omitempty"`
	Opacity       *styles.Decimal        `json:"opacity,omitempty" yaml:"opacity,omitempty"`
	Resize        *styles.Enum           `json:"resize,omitempty" yaml:"resize,omitempty"`
	WhiteSpace    *styles.Enum           `json:"white-space,omitempty" yaml:"white-space,omitempty"`
	TextTransform *styles.Enum           `json:"text-transform,omitempty" yaml:"text-transform,omitempty"`
	Sticky        *styles.Keyword        `json:"sticky,omitempty" yaml:"sticky,omitempty"`
	Shadow        *styles.Shadow         `json:"shadow,omitempty" yaml:"shadow,omitempty"`
	ZIndex        *styles.Integer        `json:"z-index,omitempty" yaml:"z-index,omitempty"`
	Left          *styles.Length         `json:"left,omitempty" yaml:"left,omitempty"`
	Right         *styles.Length         `json:"right,omitempty" yaml:"right,omitempty"`
	Top           *styles.Length         `json:"top,omitempty" yaml:"top,omitempty"`
	Bottom        *styles.Length         `json:"bottom,omitempty" yaml:"bottom,omitempty"`
	Cursor        *styles.Enum           `json:"cursor,omitempty" yaml:"cursor,omitempty"`

	Conditional *orderedmap.OrderedMap[string, *ConditionalAttribute] `json:"conditional-attributes,omitempty" yaml:"conditional-attributes,omitempty"`

	// Traces are the references the element's slots were computed from;
	// the dependency collector turns them into dependency records once
	// data-ids are known.
	Traces []*Trace `json:"-" yaml:"-"`
}

// Condition is a runtime visibility toggle. Visible is the value the
// condition had when the element was executed.
type Condition struct {
	Expression string `json:"expression" yaml:"expression"`
	Visible    bool   `json:"visible" yaml:"visible"`
}

// Event is a captured event handler; actions are not run at compile time.
type Event struct {
	Name      string                              `json:"name" yaml:"name"`
	Function  string                              `json:"function" yaml:"function"`
	Arguments *orderedmap.OrderedMap[string, any] `json:"arguments,omitempty" yaml:"arguments,omitempty"`
}

// StyleSlot is one styling common argument: the CSS property it sets and
// the Common field holding its reduced value.
type StyleSlot struct {
	Arg string
	CSS string
	get func(*Common) styles.Style
	set func(*Common, styles.Style) bool
}

func slot[T styles.Style](arg, css string, field func(*Common) *T) StyleSlot {
	return StyleSlot{
		Arg: arg,
		CSS: css,
		get: func(c *Common) styles.Style { return *field(c) },
		set: func(c *Common, s styles.Style) bool {
			v, ok := s.(T)
			if ok {
				*field(c) = v
			}
			return ok
		},
	}
}

// StyleSlots lists the styling common arguments in serialization order.
var StyleSlots = []StyleSlot{
	slot("padding", "padding", func(c *Common) **styles.Length { return &c.Padding }),
	slot("padding-left", "padding-left", func(c *Common) **styles.Length { return &c.PaddingLeft }),
	slot("padding-right", "padding-right", func(c *Common) **styles.Length { return &c.PaddingRight }),
	slot("padding-top", "padding-top", func(c *Common) **styles.Length { return &c.PaddingTop }),
	slot("padding-bottom", "padding-bottom", func(c *Common) **styles.Length { return &c.PaddingBottom }),
	slot("padding-horizontal", "padding-inline", func(c *Common) **styles.Length { return &c.PaddingHorizontal }),
	slot("padding-vertical", "padding-block", func(c *Common) **styles.Length { return &c.PaddingVertical }),
	slot("margin", "margin", func(c *Common) **styles.Length { return &c.Margin }),
	slot("margin-left", "margin-left", func(c *Common) **styles.Length { return &c.MarginLeft }),
	slot("margin-right", "margin-right", func(c *Common) **styles.Length { return &c.MarginRight }),
	slot("margin-top", "margin-top", func(c *Common) **styles.Length { return &c.MarginTop }),
	slot("margin-bottom", "margin-bottom", func(c *Common) **styles.Length { return &c.MarginBottom }),
	slot("margin-horizontal", "margin-inline", func(c *Common) **styles.Length { return &c.MarginHorizontal }),
	slot("margin-vertical", "margin-block", func(c *Common) **styles.Length { return &c.MarginVertical }),
	slot("border-width", "border-width", func(c *Common) **styles.Length { return &c.BorderWidth }),
	slot("border-left-width", "border-left-width", func(c *Common) **styles.Length { return &c.BorderLeftWidth }),
	slot("border-right-width", "border-right-width", func(c *Common) **styles.Length { return &c.BorderRightWidth }),
	slot("border-top-width", "border-top-width", func(c *Common) **styles.Length { return &c.BorderTopWidth }),
	slot("border-bottom-width", "border-bottom-width", func(c *Common) **styles.Length { return &c.BorderBottomWidth }),
	slot("border-radius", "border-radius", func(c *Common) **styles.Length { return &c.BorderRadius }),
	slot("border-top-left-radius", "border-top-left-radius", func(c *Common) **styles.Length { return &c.BorderTopLeftRadius }),
	slot("border-top-right-radius", "border-top-right-radius", func(c *Common) **styles.Length { return &c.BorderTopRightRadius }),
	slot("border-bottom-left-radius", "border-bottom-left-radius", func(c *Common) **styles.Length { return &c.BorderBottomLeftRadius }),
	slot("border-bottom-right-radius", "border-bottom-right-radius", func(c *Common) **styles.Length { return &c.BorderBottomRightRadius }),
	slot("border-color", "border-color", func(c *Common) **styles.Color { return &c.BorderColor }),
	slot("border-left-color", "border-left-color", func(c *Common) **styles.Color { return &c.BorderLeftColor }),
	slot("border-right-color", "border-right-color", func(c *Common) **styles.Color { return &c.BorderRightColor }),
	slot("border-top-color", "border-top-color", func(c *Common) **styles.Color { return &c.BorderTopColor }),
	slot("border-bottom-color", "border-bottom-color", func(c *Common) **styles.Color { return &c.BorderBottomColor }),
	slot("border-style", "border-style", func(c *Common) **styles.Enum { return &c.BorderStyle }),
	slot("border-style-left", "border-left-style", func(c *Common) **styles.Enum { return &c.BorderStyleLeft }),
	slot("border-style-right", "border-right-style", func(c *Common) **styles.Enum { return &c.BorderStyleRight }),
	slot("border-style-top", "border-top-style", func(c *Common) **styles.Enum { return &c.BorderStyleTop }),
	slot("border-style-bottom", "border-bottom-style", func(c *Common) **styles.Enum { return &c.BorderStyleBottom }),
	slot("border-style-horizontal", "border-inline-style", func(c *Common) **styles.Enum { return &c.BorderStyleHorizontal }),
	slot("border-style-vertical", "border-block-style", func(c *Common) **styles.Enum { return &c.BorderStyleVertical }),
	slot("width", "width", func(c *Common) **styles.Resizing { return &c.Width }),
	slot("height", "height", func(c *Common) **styles.Resizing { return &c.Height }),
	slot("min-width", "min-width", func(c *Common) **styles.Resizing { return &c.MinWidth }),
	slot("max-width", "max-width", func(c *Common) **styles.Resizing { return &c.MaxWidth }),
	slot("min-height", "min-height", func(c *Common) **styles.Resizing { return &c.MinHeight }),
	slot("max-height", "max-height", func(c *Common) **styles.Resizing { return &c.MaxHeight }),
	slot("background", "background", func(c *Common) **styles.Background { return &c.Background }),
	slot("color", "color", func(c *Common) **styles.Color { return &c.Color }),
	slot("role", "role", func(c *Common) **styles.ResponsiveType { return &c.Role }),
	slot("align-self", "align-self", func(c *Common) **styles.Enum { return &c.AlignSelf }),
	slot("overflow", "overflow", func(c *Common) **styles.Enum { return &c.Overflow }),
	slot("overflow-x", "overflow-x", func(c *Common) **styles.Enum { return &c.OverflowX }),
	slot("overflow-y", "overflow-y", func(c *Common) **styles.Enum { return &c.OverflowY }),
	slot("opacity", "opacity", func(c *Common) **styles.Decimal { return &c.Opacity }),
	slot("resize", "resize", func(c *Common) **styles.Enum { return &c.Resize }),
	slot("white-space", "white-space", func(c *Common) **styles.Enum { return &c.WhiteSpace }),
	slot("text-transform", "text-transform", func(c *Common) **styles.Enum { return &c.TextTransform }),
	slot("sticky", "position", func(c *Common) **styles.Keyword { return &c.Sticky }),
	slot("anchor", "position", func(c *Common) **styles.Anchor { return &c.Anchor }),
	slot("shadow", "box-shadow", func(c *Common) **styles.Shadow { return &c.Shadow }),
	slot("z-index", "z-index", func(c *Common) **styles.Integer { return &c.ZIndex }),
	slot("left", "left", func(c *Common) **styles.Length { return &c.Left }),
	slot("right", "right", func(c *Common) **styles.Length { return &c.Right }),
	slot("top", "top", func(c *Common) **styles.Length { return &c.Top }),
	slot("bottom", "bottom", func(c *Common) **styles.Length { return &c.Bottom }),
	slot("cursor", "cursor", func(c *Common) **styles.Enum { return &c.Cursor }),
}

var slotsByArg = func() map[string]StyleSlot {
	m := make(map[string]StyleSlot, len(StyleSlots))
	for _, s := range StyleSlots {
		m[s.Arg] = s
	}
	return m
}()

// SlotFor returns the styling slot of a common argument.
func SlotFor(arg string) (StyleSlot, bool) {
	s, ok := slotsByArg[arg]
	return s, ok
}

// Get returns the slot's value on c; a missing value is a typed nil.
func (s StyleSlot) Get(c *Common) styles.Style { return s.get(c) }

// Set stores v in the slot's field.
func (s StyleSlot) Set(c *Common, v styles.Style) error {
	if !s.set(c, v) {
		return fmt.Errorf("`%s` cannot hold a %T", s.Arg, v)
	}
	return nil
}

// Declarations projects every styling slot of c, missing ones as
// styles.IgnoreSentinel, then the child alignment set by the parent.
func (c *Common) Declarations(t styles.Target) []styles.Declaration {
	out := make([]styles.Declaration, 0, len(StyleSlots)+2)
	for _, s := range StyleSlots {
		v := s.Get(c)
		if d, ok := v.(styles.Declarer); ok && styles.CSS(v, t) != styles.IgnoreSentinel {
			out = append(out, d.Declarations(t)...)
			continue
		}
		out = append(out, styles.Declaration{Property: s.CSS, Value: styles.CSS(v, t)})
	}
	if c.ChildAlignment != nil {
		out = append(out, c.ChildAlignment.Declarations()...)
	}
	return out
}

// ConditionalFor returns the conditional attribute of key, creating it.
func (c *Common) ConditionalFor(key string, typ AttributeType) *ConditionalAttribute {
	if c.Conditional == nil {
		c.Conditional = orderedmap.New[string, *ConditionalAttribute]()
	}
	if ca, ok := c.Conditional.Get(key); ok {
		return ca
	}
	ca := &ConditionalAttribute{Type: typ}
	c.Conditional.Set(key, ca)
	return ca
}
