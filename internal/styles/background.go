package styles

import (
	"fmt"
	"strings"
)

// ImageSrc is a value of ftd#image-src.
type ImageSrc struct {
	Light string `json:"light"`
	Dark  string `json:"dark"`
}

func (s *ImageSrc) ToCSSString(t Target) string {
	if t.DarkMode && s.Dark != "" {
		return s.Dark
	}
	return s.Light
}

type BackgroundKind string

const (
	BackgroundSolid          BackgroundKind = "solid"
	BackgroundImageKind      BackgroundKind = "image"
	BackgroundLinearGradient BackgroundKind = "linear-gradient"
)

// Background is a value of ftd#background. Exactly one of Solid, Image and
// LinearGradient is set, as named by Kind.
type Background struct {
	Kind           BackgroundKind   `json:"kind"`
	Solid          *Color           `json:"solid,omitempty"`
	Image          *BackgroundImage `json:"image,omitempty"`
	LinearGradient *LinearGradient  `json:"linear-gradient,omitempty"`
}

func (b *Background) ToCSSString(t Target) string {
	switch b.Kind {
	case BackgroundSolid:
		if b.Solid != nil {
			return b.Solid.ToCSSString(t)
		}
	case BackgroundImageKind:
		if b.Image != nil {
			return b.Image.ToCSSString(t)
		}
	case BackgroundLinearGradient:
		if b.LinearGradient != nil {
			return b.LinearGradient.ToCSSString(t)
		}
	}
	return ""
}

// Declarations returns the background shorthand followed by the image
// placement properties, if any.
func (b *Background) Declarations(t Target) []Declaration {
	out := []Declaration{}
	if css := b.ToCSSString(t); css != "" {
		prop := "background"
		if b.Kind == BackgroundImageKind {
			prop = "background-image"
		}
		out = append(out, Declaration{prop, css})
	}
	if b.Kind == BackgroundImageKind && b.Image != nil {
		if b.Image.Repeat != nil {
			out = append(out, Declaration{"background-repeat", b.Image.Repeat.ToCSSString(t)})
		}
		if b.Image.Size != nil {
			out = append(out, Declaration{"background-size", b.Image.Size.ToCSSString(t)})
		}
		if b.Image.Position != nil {
			out = append(out, Declaration{"background-position", b.Image.Position.ToCSSString(t)})
		}
	}
	return out
}

// BackgroundImage is a value of ftd#background-image.
type BackgroundImage struct {
	Src      ImageSrc   `json:"src"`
	Repeat   *Enum      `json:"repeat,omitempty"`
	Size     *Placement `json:"size,omitempty"`
	Position *Placement `json:"position,omitempty"`
}

func (i *BackgroundImage) ToCSSString(t Target) string {
	return "url(" + i.Src.ToCSSString(t) + ")"
}

// Placement is a background size or position: a keyword or a length pair.
type Placement struct {
	Keyword string      `json:"keyword,omitempty"`
	Length  *LengthPair `json:"length,omitempty"`
}

func (p *Placement) ToCSSString(t Target) string {
	if p.Length != nil {
		return p.Length.ToCSSString(t)
	}
	return strings.ReplaceAll(p.Keyword, "-", " ")
}

type DirectionKind string

const (
	DirectionNamed DirectionKind = "named"
	DirectionAngle DirectionKind = "angle"
	DirectionTurn  DirectionKind = "turn"
)

var directionDegrees = map[string]float64{
	"top":          0,
	"top-right":    45,
	"right":        90,
	"bottom-right": 135,
	"bottom":       180,
	"bottom-left":  225,
	"left":         270,
	"top-left":     315,
}

// GradientDirection is a value of ftd#linear-gradient-directions.
type GradientDirection struct {
	Kind  DirectionKind `json:"kind"`
	Name  string        `json:"name,omitempty"`
	Value float64       `json:"value,omitempty"`
}

// NamedDirection accepts the eight compass names.
func NamedDirection(name string) (GradientDirection, error) {
	if _, ok := directionDegrees[name]; !ok {
		return GradientDirection{}, fmt.Errorf("unknown gradient direction `%s`", name)
	}
	return GradientDirection{Kind: DirectionNamed, Name: name}, nil
}

func (d GradientDirection) ToCSSString(t Target) string {
	switch d.Kind {
	case DirectionAngle:
		return num(d.Value) + "deg"
	case DirectionTurn:
		return num(d.Value) + "turn"
	}
	return num(directionDegrees[d.Name]) + "deg"
}

// GradientColor is a value of ftd#linear-gradient-color.
type GradientColor struct {
	Color        Color   `json:"color"`
	Start        *Length `json:"start,omitempty"`
	End          *Length `json:"end,omitempty"`
	StopPosition *Length `json:"stop-position,omitempty"`
}

func (c *GradientColor) ToCSSString(t Target) string {
	parts := []string{c.Color.ToCSSString(t)}
	if c.Start != nil {
		parts = append(parts, c.Start.ToCSSString(t))
	}
	if c.End != nil {
		parts = append(parts, c.End.ToCSSString(t))
	}
	out := strings.Join(parts, " ")
	if c.StopPosition != nil {
		out += ", " + c.StopPosition.ToCSSString(t)
	}
	return out
}

// LinearGradient is a value of ftd#linear-gradient.
type LinearGradient struct {
	Direction GradientDirection `json:"direction"`
	Colors    []GradientColor   `json:"colors"`
}

func (g *LinearGradient) ToCSSString(t Target) string {
	parts := []string{g.Direction.ToCSSString(t)}
	for i := range g.Colors {
		parts = append(parts, g.Colors[i].ToCSSString(t))
	}
	return "linear-gradient(" + strings.Join(parts, ", ") + ")"
}
