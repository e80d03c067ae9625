package styles

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/mazznoer/csscolorparser"
)

// ColorValue is one resolved color; Alpha is in 0..1 with one decimal.
type ColorValue struct {
	R     uint8   `json:"r"`
	G     uint8   `json:"g"`
	B     uint8   `json:"b"`
	Alpha float64 `json:"alpha"`
}

// ParseColor accepts every CSS color syntax. A `#` followed by eight hex
// digits is read as RRGGBBAA.
func ParseColor(s string) (ColorValue, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") && len(s) == 9 {
		return parseHexRGBA(s[1:])
	}
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return ColorValue{}, fmt.Errorf("invalid color `%s`: %w", s, err)
	}
	r, err := channel(c.R)
	if err != nil {
		return ColorValue{}, fmt.Errorf("invalid color `%s`: %w", s, err)
	}
	g, err := channel(c.G)
	if err != nil {
		return ColorValue{}, fmt.Errorf("invalid color `%s`: %w", s, err)
	}
	b, err := channel(c.B)
	if err != nil {
		return ColorValue{}, fmt.Errorf("invalid color `%s`: %w", s, err)
	}
	return ColorValue{R: r, G: g, B: b, Alpha: round1(c.A)}, nil
}

func parseHexRGBA(hex string) (ColorValue, error) {
	var parts [4]uint8
	for i := range parts {
		n, err := strconv.ParseUint(hex[2*i:2*i+2], 16, 8)
		if err != nil {
			return ColorValue{}, fmt.Errorf("invalid color `#%s`", hex)
		}
		parts[i] = uint8(n)
	}
	return ColorValue{
		R:     parts[0],
		G:     parts[1],
		B:     parts[2],
		Alpha: round1(float64(parts[3]) / 255),
	}, nil
}

// channel converts a 0..1 component to a byte.
func channel(f float64) (uint8, error) {
	return safecast.Convert[uint8](int64(math.Round(f * 255)))
}

func (c ColorValue) String() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", c.R, c.G, c.B, num(c.Alpha))
}

// Color is a value of ftd#color.
type Color struct {
	Light ColorValue `json:"light"`
	Dark  ColorValue `json:"dark"`
}

// NewColor parses the light and dark sides. An empty dark side repeats
// the light one.
func NewColor(light, dark string) (*Color, error) {
	l, err := ParseColor(light)
	if err != nil {
		return nil, err
	}
	if dark == "" {
		return &Color{Light: l, Dark: l}, nil
	}
	d, err := ParseColor(dark)
	if err != nil {
		return nil, err
	}
	return &Color{Light: l, Dark: d}, nil
}

func (c *Color) ToCSSString(t Target) string {
	if t.DarkMode {
		return c.Dark.String()
	}
	return c.Light.String()
}
