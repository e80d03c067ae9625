package styles

import "fmt"

type LengthUnit string

const (
	UnitPx         LengthUnit = "px"
	UnitPercent    LengthUnit = "percent"
	UnitCalc       LengthUnit = "calc"
	UnitVh         LengthUnit = "vh"
	UnitVw         LengthUnit = "vw"
	UnitVmin       LengthUnit = "vmin"
	UnitVmax       LengthUnit = "vmax"
	UnitEm         LengthUnit = "em"
	UnitRem        LengthUnit = "rem"
	UnitResponsive LengthUnit = "responsive"
)

// Length is a value of ftd#length.
type Length struct {
	Unit       LengthUnit        `json:"unit"`
	Value      float64           `json:"value,omitempty"`
	Calc       string            `json:"calc,omitempty"`
	Responsive *ResponsiveLength `json:"responsive,omitempty"`
}

// ResponsiveLength picks a length by device.
type ResponsiveLength struct {
	Desktop Length `json:"desktop"`
	Mobile  Length `json:"mobile"`
}

func Px(n int64) *Length             { return &Length{Unit: UnitPx, Value: float64(n)} }
func Percent(x float64) *Length      { return &Length{Unit: UnitPercent, Value: x} }
func CalcLength(expr string) *Length { return &Length{Unit: UnitCalc, Calc: expr} }

// NewLength builds a length of a numeric unit.
func NewLength(unit LengthUnit, x float64) *Length {
	return &Length{Unit: unit, Value: x}
}

// LengthUnitByVariant maps an ftd#length variant name to its unit.
func LengthUnitByVariant(variant string) (LengthUnit, bool) {
	switch u := LengthUnit(variant); u {
	case UnitPx, UnitPercent, UnitCalc, UnitVh, UnitVw, UnitVmin, UnitVmax, UnitEm, UnitRem, UnitResponsive:
		return u, true
	}
	return "", false
}

func (l *Length) ToCSSString(t Target) string {
	switch l.Unit {
	case UnitPx:
		return num(l.Value) + "px"
	case UnitPercent:
		return num(l.Value) + "%"
	case UnitCalc:
		return "calc(" + l.Calc + ")"
	case UnitVh, UnitVw, UnitVmin, UnitVmax, UnitEm, UnitRem:
		return num(l.Value) + string(l.Unit)
	case UnitResponsive:
		if l.Responsive == nil {
			return ""
		}
		if t.Device == Mobile {
			return l.Responsive.Mobile.ToCSSString(t)
		}
		return l.Responsive.Desktop.ToCSSString(t)
	}
	return ""
}

func (l *Length) String() string {
	return l.ToCSSString(Target{})
}

// LengthPair is a value of ftd#length-pair.
type LengthPair struct {
	X Length `json:"x"`
	Y Length `json:"y"`
}

func (p *LengthPair) ToCSSString(t Target) string {
	return p.X.ToCSSString(t) + " " + p.Y.ToCSSString(t)
}

type ResizingMode string

const (
	FillContainer ResizingMode = "fill-container"
	HugContent    ResizingMode = "hug-content"
	AutoSize      ResizingMode = "auto"
	FixedSize     ResizingMode = "fixed"
)

// Resizing is a value of ftd#resizing.
type Resizing struct {
	Mode  ResizingMode `json:"mode"`
	Fixed *Length      `json:"fixed,omitempty"`
}

// ParseResizingMode maps a constant variant of ftd#resizing.
func ParseResizingMode(variant string) (ResizingMode, error) {
	switch m := ResizingMode(variant); m {
	case FillContainer, HugContent, AutoSize, FixedSize:
		return m, nil
	}
	return "", fmt.Errorf("unknown resizing `%s`", variant)
}

func (r *Resizing) ToCSSString(t Target) string {
	switch r.Mode {
	case HugContent:
		return "fit-content"
	case FillContainer:
		return "100%"
	case AutoSize:
		return "auto"
	case FixedSize:
		if r.Fixed != nil {
			return r.Fixed.ToCSSString(t)
		}
	}
	return ""
}

type SpacingMode string

const (
	SpaceFixed   SpacingMode = "fixed"
	SpaceBetween SpacingMode = "space-between"
	SpaceAround  SpacingMode = "space-around"
	SpaceEvenly  SpacingMode = "space-evenly"
)

// Spacing is a value of ftd#spacing.
type Spacing struct {
	Mode  SpacingMode `json:"mode"`
	Fixed *Length     `json:"fixed,omitempty"`
}

// ParseSpacingMode maps a variant of ftd#spacing.
func ParseSpacingMode(variant string) (SpacingMode, error) {
	switch m := SpacingMode(variant); m {
	case SpaceFixed, SpaceBetween, SpaceAround, SpaceEvenly:
		return m, nil
	}
	return "", fmt.Errorf("unknown spacing `%s`", variant)
}

func (s *Spacing) ToCSSString(t Target) string {
	if s.Mode == SpaceFixed {
		if s.Fixed == nil {
			return ""
		}
		return s.Fixed.ToCSSString(t)
	}
	return string(s.Mode)
}

// Gap is the CSS gap: the fixed length, or zero for distributed modes.
func (s *Spacing) Gap(t Target) string {
	if s.Mode == SpaceFixed && s.Fixed != nil {
		return s.Fixed.ToCSSString(t)
	}
	return "0"
}

// JustifyContent is the CSS justify-content the spacing implies.
func (s *Spacing) JustifyContent() string {
	if s.Mode == SpaceFixed {
		return "start"
	}
	return string(s.Mode)
}
