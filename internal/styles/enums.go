package styles

import (
	"fmt"
	"strings"
)

// Enum is a value of one of the keyword or-types: Type is the or-type,
// Variant the variant name.
type Enum struct {
	Type    string `json:"type"`
	Variant string `json:"variant"`
}

type enumTable struct {
	variants []string
	css      map[string]string // variants whose CSS differs from the name
}

var enumTables = map[string]enumTable{
	"ftd#cursor": {variants: []string{
		"default", "none", "context-menu", "help", "pointer", "progress", "wait", "cell",
		"crosshair", "text", "vertical-text", "alias", "copy", "move", "no-drop",
		"not-allowed", "grab", "grabbing", "e-resize", "n-resize", "ne-resize", "nw-resize",
		"s-resize", "se-resize", "sw-resize", "w-resize", "ew-resize", "ns-resize",
		"nesw-resize", "nwse-resize", "col-resize", "row-resize", "all-scroll", "zoom-in",
		"zoom-out",
	}},
	"ftd#overflow":        {variants: []string{"scroll", "visible", "hidden", "auto"}},
	"ftd#text-align":      {variants: []string{"start", "center", "end", "justify"}},
	"ftd#text-transform":  {variants: []string{"none", "capitalize", "uppercase", "lowercase", "initial", "inherit"}},
	"ftd#border-style":    {variants: []string{"dotted", "dashed", "solid", "double", "groove", "ridge", "inset", "outset"}},
	"ftd#resize":          {variants: []string{"horizontal", "vertical", "both"}},
	"ftd#align-self":      {variants: []string{"start", "center", "end"}},
	"ftd#display":         {variants: []string{"block", "inline", "inline-block"}},
	"ftd#white-space":     {variants: []string{"normal", "nowrap", "pre", "pre-wrap", "pre-line", "break-spaces"}},
	"ftd#image-fit":       {variants: []string{"none", "cover", "contain", "fill", "scale-down"}},
	"ftd#loading":         {variants: []string{"eager", "lazy"}},
	"ftd#background-repeat": {variants: []string{
		"repeat", "repeat-x", "repeat-y", "no-repeat", "space", "round",
	}},
	"ftd#text-input-type": {
		variants: []string{"text", "email", "password", "url", "datetime", "date", "time", "month", "week", "color", "file"},
		css:      map[string]string{"datetime": "datetime-local"},
	},
	"ftd#region": {variants: []string{
		"h0", "h1", "h2", "h3", "h4", "h5", "h6", "h7", "title", "main", "navigation",
		"aside", "footer", "description", "announce", "announce-urgently",
	}},
}

// IsEnumType reports whether orType is a keyword or-type.
func IsEnumType(orType string) bool {
	_, ok := enumTables[orType]
	return ok
}

// NewEnum validates variant against the table of orType.
func NewEnum(orType, variant string) (*Enum, error) {
	table, ok := enumTables[orType]
	if !ok {
		return nil, fmt.Errorf("`%s` is not a keyword type", orType)
	}
	for _, v := range table.variants {
		if v == variant {
			return &Enum{Type: orType, Variant: variant}, nil
		}
	}
	return nil, fmt.Errorf("`%s` is not a variant of `%s`", variant, orType)
}

// EnumFromCSS maps CSS text back to the variant of orType.
func EnumFromCSS(orType, css string) (*Enum, error) {
	table, ok := enumTables[orType]
	if !ok {
		return nil, fmt.Errorf("`%s` is not a keyword type", orType)
	}
	for _, v := range table.variants {
		if table.cssOf(v) == css {
			return &Enum{Type: orType, Variant: v}, nil
		}
	}
	return nil, fmt.Errorf("`%s` is not a CSS value of `%s`", css, orType)
}

func (t enumTable) cssOf(variant string) string {
	if css, ok := t.css[variant]; ok {
		return css
	}
	return variant
}

func (e *Enum) ToCSSString(t Target) string {
	return enumTables[e.Type].cssOf(e.Variant)
}

// HeadingLevel returns n for a region hn.
func (e *Enum) HeadingLevel() (int, bool) {
	if e == nil || e.Type != "ftd#region" || len(e.Variant) != 2 || e.Variant[0] != 'h' {
		return 0, false
	}
	n := int(e.Variant[1] - '0')
	if n < 0 || n > 7 {
		return 0, false
	}
	return n, true
}

type AnchorKind string

const (
	AnchorWindow AnchorKind = "window"
	AnchorParent AnchorKind = "parent"
	AnchorID     AnchorKind = "id"
)

// Anchor is a value of ftd#anchor.
type Anchor struct {
	Kind AnchorKind `json:"kind"`
	ID   string     `json:"id,omitempty"`
}

func ParseAnchor(variant, id string) (*Anchor, error) {
	switch k := AnchorKind(variant); k {
	case AnchorWindow, AnchorParent:
		return &Anchor{Kind: k}, nil
	case AnchorID:
		if strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("anchor id is empty")
		}
		return &Anchor{Kind: k, ID: id}, nil
	}
	return nil, fmt.Errorf("unknown anchor `%s`", variant)
}

// ToCSSString is the CSS position of the anchored element.
func (a *Anchor) ToCSSString(t Target) string {
	if a.Kind == AnchorWindow {
		return "fixed"
	}
	return "absolute"
}

// Escapes reports whether the element leaves the normal flow of its parent.
func (a *Anchor) Escapes() bool {
	return a != nil && (a.Kind == AnchorWindow || a.Kind == AnchorParent)
}
