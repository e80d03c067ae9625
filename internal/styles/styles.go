// Package styles holds the CSS-ready forms of the kernel styling kinds and
// their projections to CSS text.
package styles

import (
	"math"
	"strconv"
	"strings"
)

// IgnoreSentinel is the CSS text of a slot that has no value. Serializers
// skip declarations carrying it.
const IgnoreSentinel = "ftd-ignore"

type Device int

const (
	Desktop Device = iota
	Mobile
)

func (d Device) String() string {
	if d == Mobile {
		return "mobile"
	}
	return "desktop"
}

// ParseDevice accepts "desktop" and "mobile".
func ParseDevice(s string) (Device, bool) {
	switch s {
	case "desktop", "":
		return Desktop, true
	case "mobile":
		return Mobile, true
	}
	return Desktop, false
}

// Target is what responsive and light/dark values are reduced for.
type Target struct {
	Device   Device
	DarkMode bool
}

// Style is a reduced styling value.
type Style interface {
	ToCSSString(t Target) string
}

// CSS projects s, or returns IgnoreSentinel when s is nil.
func CSS(s Style, t Target) string {
	if s == nil || isNilStyle(s) {
		return IgnoreSentinel
	}
	out := s.ToCSSString(t)
	if out == "" {
		return IgnoreSentinel
	}
	return out
}

// isNilStyle catches typed nil pointers stored in the interface.
func isNilStyle(s Style) bool {
	switch v := s.(type) {
	case *Length:
		return v == nil
	case *Resizing:
		return v == nil
	case *Spacing:
		return v == nil
	case *Color:
		return v == nil
	case *Background:
		return v == nil
	case *Type:
		return v == nil
	case *ResponsiveType:
		return v == nil
	case *Shadow:
		return v == nil
	case *TextStyle:
		return v == nil
	case *Anchor:
		return v == nil
	case *Enum:
		return v == nil
	case *ImageSrc:
		return v == nil
	case *Decimal:
		return v == nil
	case *Integer:
		return v == nil
	case *Keyword:
		return v == nil
	}
	return false
}

// Declaration is one CSS property and its value.
type Declaration struct {
	Property string `json:"property"`
	Value    string `json:"value"`
}

// Declarer is a style that spans several CSS properties.
type Declarer interface {
	Declarations(t Target) []Declaration
}

// JoinDeclarations renders ds as an inline style.
func JoinDeclarations(ds []Declaration) string {
	return joinDeclarations(ds)
}

func joinDeclarations(ds []Declaration) string {
	parts := make([]string, 0, len(ds))
	for _, d := range ds {
		parts = append(parts, d.Property+": "+d.Value)
	}
	return strings.Join(parts, "; ")
}

// num formats a number without a trailing ".0".
func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
