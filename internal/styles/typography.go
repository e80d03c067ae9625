package styles

import (
	"fmt"
	"strconv"
	"strings"
)

// FontSize is a value of ftd#font-size.
type FontSize struct {
	Unit  LengthUnit `json:"unit"`
	Value float64    `json:"value"`
}

// FontSizeUnit maps an ftd#font-size variant.
func FontSizeUnit(variant string) (LengthUnit, error) {
	switch u := LengthUnit(variant); u {
	case UnitPx, UnitEm, UnitRem:
		return u, nil
	}
	return "", fmt.Errorf("unknown font size `%s`", variant)
}

func (f *FontSize) ToCSSString(t Target) string {
	return num(f.Value) + string(f.Unit)
}

// Type is a value of ftd#type.
type Type struct {
	Size          *FontSize `json:"size,omitempty"`
	LineHeight    *FontSize `json:"line-height,omitempty"`
	LetterSpacing *FontSize `json:"letter-spacing,omitempty"`
	Weight        *int64    `json:"weight,omitempty"`
	FontFamily    *string   `json:"font-family,omitempty"`
}

// Declarations lists the font properties that are set.
func (ty *Type) Declarations(t Target) []Declaration {
	var out []Declaration
	if ty.Size != nil {
		out = append(out, Declaration{"font-size", ty.Size.ToCSSString(t)})
	}
	if ty.LineHeight != nil {
		out = append(out, Declaration{"line-height", ty.LineHeight.ToCSSString(t)})
	}
	if ty.LetterSpacing != nil {
		out = append(out, Declaration{"letter-spacing", ty.LetterSpacing.ToCSSString(t)})
	}
	if ty.Weight != nil {
		out = append(out, Declaration{"font-weight", strconv.FormatInt(*ty.Weight, 10)})
	}
	if ty.FontFamily != nil {
		out = append(out, Declaration{"font-family", *ty.FontFamily})
	}
	return out
}

func (ty *Type) ToCSSString(t Target) string {
	return joinDeclarations(ty.Declarations(t))
}

// ResponsiveType is a value of ftd#responsive-type.
type ResponsiveType struct {
	Desktop Type `json:"desktop"`
	Mobile  Type `json:"mobile"`
}

// For returns the side of r used on the target device.
func (r *ResponsiveType) For(t Target) *Type {
	if t.Device == Mobile {
		return &r.Mobile
	}
	return &r.Desktop
}

func (r *ResponsiveType) Declarations(t Target) []Declaration {
	return r.For(t).Declarations(t)
}

func (r *ResponsiveType) ToCSSString(t Target) string {
	return r.For(t).ToCSSString(t)
}

var fontWeights = []struct {
	name   string
	weight int
}{
	{"hairline", 100},
	{"extra-light", 200},
	{"light", 300},
	{"regular", 400},
	{"medium", 500},
	{"semi-bold", 600},
	{"bold", 700},
	{"extra-bold", 800},
	{"heavy", 900},
}

// FontWeight returns the CSS weight of a text-style weight name.
func FontWeight(name string) (int, bool) {
	for _, w := range fontWeights {
		if w.name == name {
			return w.weight, true
		}
	}
	return 0, false
}

// TextStyle is a list of ftd#text-style modifiers folded into flags and
// at most one weight.
type TextStyle struct {
	Underline bool `json:"underline,omitempty"`
	Italic    bool `json:"italic,omitempty"`
	Strike    bool `json:"strike,omitempty"`
	Weight    int  `json:"weight,omitempty"`
}

// TextStyleError is a repeated modifier or a second weight.
type TextStyleError struct {
	Modifier string
	Reason   string
}

func (e *TextStyleError) Error() string {
	return fmt.Sprintf("text-style `%s`: %s", e.Modifier, e.Reason)
}

// ParseTextStyle folds the modifier names in order.
func ParseTextStyle(names []string) (*TextStyle, error) {
	ts := &TextStyle{}
	seen := make(map[string]bool, len(names))
	weightName := ""
	for _, name := range names {
		if seen[name] {
			return nil, &TextStyleError{Modifier: name, Reason: "is repeated"}
		}
		seen[name] = true
		switch name {
		case "underline":
			ts.Underline = true
		case "italic":
			ts.Italic = true
		case "strike":
			ts.Strike = true
		default:
			w, ok := FontWeight(name)
			if !ok {
				return nil, &TextStyleError{Modifier: name, Reason: "is unknown"}
			}
			if weightName != "" {
				return nil, &TextStyleError{Modifier: name, Reason: "conflicts with weight `" + weightName + "`"}
			}
			weightName = name
			ts.Weight = w
		}
	}
	return ts, nil
}

func (ts *TextStyle) Declarations(t Target) []Declaration {
	var out []Declaration
	var decorations []string
	if ts.Underline {
		decorations = append(decorations, "underline")
	}
	if ts.Strike {
		decorations = append(decorations, "line-through")
	}
	if len(decorations) > 0 {
		out = append(out, Declaration{"text-decoration", strings.Join(decorations, " ")})
	}
	if ts.Italic {
		out = append(out, Declaration{"font-style", "italic"})
	}
	if ts.Weight != 0 {
		out = append(out, Declaration{"font-weight", strconv.Itoa(ts.Weight)})
	}
	return out
}

func (ts *TextStyle) ToCSSString(t Target) string {
	return joinDeclarations(ts.Declarations(t))
}
