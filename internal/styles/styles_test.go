package styles

import (
	"errors"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"red", "rgba(255,0,0,1)"},
		{"blue", "rgba(0,0,255,1)"},
		{"#fff", "rgba(255,255,255,1)"},
		{"#00ff0080", "rgba(0,255,0,0.5)"},
		{"rgba(10, 20, 30, 0.25)", "rgba(10,20,30,0.3)"},
		{"  black ", "rgba(0,0,0,1)"},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if err != nil {
			t.Fatalf("ParseColor(%q): %v", tt.in, err)
		}
		if got.String() != tt.want {
			t.Errorf("ParseColor(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseColorInvalid(t *testing.T) {
	for _, in := range []string{"not-a-color", "#zzzzzzzz"} {
		if _, err := ParseColor(in); err == nil {
			t.Errorf("ParseColor(%q) succeeded", in)
		}
	}
}

func TestColorRoundTrip(t *testing.T) {
	for _, in := range []string{"red", "#336699", "#11223344", "rgba(1,2,3,0.7)", "hsl(120, 100%, 50%)"} {
		first, err := ParseColor(in)
		if err != nil {
			t.Fatalf("ParseColor(%q): %v", in, err)
		}
		second, err := ParseColor(first.String())
		if err != nil {
			t.Fatalf("ParseColor(%q): %v", first.String(), err)
		}
		if first != second {
			t.Errorf("%q: %+v reparsed as %+v", in, first, second)
		}
	}
}

func TestColorDarkMode(t *testing.T) {
	c, err := NewColor("blue", "red")
	if err != nil {
		t.Fatal(err)
	}
	if got := c.ToCSSString(Target{}); got != "rgba(0,0,255,1)" {
		t.Errorf("light = %s", got)
	}
	if got := c.ToCSSString(Target{DarkMode: true}); got != "rgba(255,0,0,1)" {
		t.Errorf("dark = %s", got)
	}

	same, err := NewColor("white", "")
	if err != nil {
		t.Fatal(err)
	}
	if same.Light != same.Dark {
		t.Errorf("empty dark side should repeat light, got %+v", same)
	}
}

func TestLengthCSS(t *testing.T) {
	responsive := &Length{Unit: UnitResponsive, Responsive: &ResponsiveLength{
		Desktop: *Px(20),
		Mobile:  *Px(10),
	}}
	tests := []struct {
		name   string
		length *Length
		target Target
		want   string
	}{
		{"px", Px(10), Target{}, "10px"},
		{"percent", Percent(50), Target{}, "50%"},
		{"calc", CalcLength("100% - 10px"), Target{}, "calc(100% - 10px)"},
		{"em", NewLength(UnitEm, 1.5), Target{}, "1.5em"},
		{"vh", NewLength(UnitVh, 100), Target{}, "100vh"},
		{"responsive desktop", responsive, Target{}, "20px"},
		{"responsive mobile", responsive, Target{Device: Mobile}, "10px"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.length.ToCSSString(tt.target); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResizingAndSpacing(t *testing.T) {
	tests := []struct {
		style Style
		want  string
	}{
		{&Resizing{Mode: HugContent}, "fit-content"},
		{&Resizing{Mode: FillContainer}, "100%"},
		{&Resizing{Mode: AutoSize}, "auto"},
		{&Resizing{Mode: FixedSize, Fixed: Px(40)}, "40px"},
		{&Spacing{Mode: SpaceBetween}, "space-between"},
		{&Spacing{Mode: SpaceFixed, Fixed: Px(8)}, "8px"},
	}
	for _, tt := range tests {
		if got := CSS(tt.style, Target{}); got != tt.want {
			t.Errorf("CSS(%+v) = %q, want %q", tt.style, got, tt.want)
		}
	}

	between := &Spacing{Mode: SpaceBetween}
	if between.Gap(Target{}) != "0" || between.JustifyContent() != "space-between" {
		t.Errorf("space-between: gap %q justify %q", between.Gap(Target{}), between.JustifyContent())
	}
	fixed := &Spacing{Mode: SpaceFixed, Fixed: Px(8)}
	if fixed.Gap(Target{}) != "8px" || fixed.JustifyContent() != "start" {
		t.Errorf("fixed: gap %q justify %q", fixed.Gap(Target{}), fixed.JustifyContent())
	}

	if _, err := ParseResizingMode("stretch"); err == nil {
		t.Error("ParseResizingMode accepted an unknown mode")
	}
}

func TestCSSIgnoresMissing(t *testing.T) {
	var length *Length
	var color *Color
	if got := CSS(nil, Target{}); got != IgnoreSentinel {
		t.Errorf("nil: %q", got)
	}
	if got := CSS(length, Target{}); got != IgnoreSentinel {
		t.Errorf("typed nil length: %q", got)
	}
	if got := CSS(color, Target{}); got != IgnoreSentinel {
		t.Errorf("typed nil color: %q", got)
	}
	if got := CSS(&Spacing{Mode: SpaceFixed}, Target{}); got != IgnoreSentinel {
		t.Errorf("empty output: %q", got)
	}
}

func TestAlignment(t *testing.T) {
	a, err := ParseAlignment("bottom-right")
	if err != nil {
		t.Fatal(err)
	}
	if got := a.JustifyContent(true); got != "end" {
		t.Errorf("row justify = %q", got)
	}
	if got := a.AlignItems(true); got != "end" {
		t.Errorf("row align = %q", got)
	}

	tc := TopCenter
	if got := tc.JustifyContent(false); got != "start" {
		t.Errorf("column justify = %q", got)
	}
	if got := tc.AlignItems(false); got != "center" {
		t.Errorf("column align = %q", got)
	}
	child := tc.ChildAlignment(true)
	if child.AlignSelf != "start" || child.JustifySelf != "center" {
		t.Errorf("child alignment = %+v", child)
	}

	if _, err := ParseAlignment("middle"); err == nil {
		t.Error("ParseAlignment accepted `middle`")
	}
}

func TestLinearGradient(t *testing.T) {
	red, _ := NewColor("red", "")
	blue, _ := NewColor("blue", "")
	dir, err := NamedDirection("right")
	if err != nil {
		t.Fatal(err)
	}
	g := &LinearGradient{
		Direction: dir,
		Colors: []GradientColor{
			{Color: *red},
			{Color: *blue, Start: Percent(50)},
		},
	}
	want := "linear-gradient(90deg, rgba(255,0,0,1), rgba(0,0,255,1) 50%)"
	if got := g.ToCSSString(Target{}); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	turn := GradientDirection{Kind: DirectionTurn, Value: 0.25}
	if got := turn.ToCSSString(Target{}); got != "0.25turn" {
		t.Errorf("turn = %q", got)
	}
	if _, err := NamedDirection("up"); err == nil {
		t.Error("NamedDirection accepted `up`")
	}
}

func TestBackgroundDeclarations(t *testing.T) {
	repeat, err := NewEnum("ftd#background-repeat", "no-repeat")
	if err != nil {
		t.Fatal(err)
	}
	b := &Background{
		Kind: BackgroundImageKind,
		Image: &BackgroundImage{
			Src:      ImageSrc{Light: "a.png", Dark: "b.png"},
			Repeat:   repeat,
			Position: &Placement{Keyword: "left-top"},
		},
	}
	got := joinDeclarations(b.Declarations(Target{DarkMode: true}))
	want := "background-image: url(b.png); background-repeat: no-repeat; background-position: left top"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestParseTextStyle(t *testing.T) {
	ts, err := ParseTextStyle([]string{"underline", "strike", "italic", "bold"})
	if err != nil {
		t.Fatal(err)
	}
	want := "text-decoration: underline line-through; font-style: italic; font-weight: 700"
	if got := ts.ToCSSString(Target{}); got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	failures := [][]string{
		{"bold", "light"},
		{"italic", "italic"},
		{"blinking"},
	}
	for _, names := range failures {
		_, err := ParseTextStyle(names)
		var tsErr *TextStyleError
		if !errors.As(err, &tsErr) {
			t.Errorf("ParseTextStyle(%v) = %v, want *TextStyleError", names, err)
		}
	}
}

func TestTypeDeclarations(t *testing.T) {
	weight := int64(600)
	family := "Inter"
	rt := &ResponsiveType{
		Desktop: Type{Size: &FontSize{Unit: UnitPx, Value: 24}, Weight: &weight, FontFamily: &family},
		Mobile:  Type{Size: &FontSize{Unit: UnitRem, Value: 1.2}},
	}
	if got := rt.ToCSSString(Target{}); got != "font-size: 24px; font-weight: 600; font-family: Inter" {
		t.Errorf("desktop = %q", got)
	}
	if got := rt.ToCSSString(Target{Device: Mobile}); got != "font-size: 1.2rem" {
		t.Errorf("mobile = %q", got)
	}
}

func TestShadow(t *testing.T) {
	black, _ := NewColor("black", "")
	s := &Shadow{X: *Px(1), Y: *Px(2), Blur: *Px(3), Spread: *Px(0), Color: *black, Inset: true}
	if got := s.ToCSSString(Target{}); got != "inset rgba(0,0,0,1) 1px 2px 3px 0px" {
		t.Errorf("got %q", got)
	}
}

func TestEnumRoundTrip(t *testing.T) {
	for orType, table := range enumTables {
		for _, variant := range table.variants {
			e, err := NewEnum(orType, variant)
			if err != nil {
				t.Fatalf("NewEnum(%s, %s): %v", orType, variant, err)
			}
			back, err := EnumFromCSS(orType, e.ToCSSString(Target{}))
			if err != nil {
				t.Fatalf("EnumFromCSS(%s, %s): %v", orType, e.ToCSSString(Target{}), err)
			}
			if *back != *e {
				t.Errorf("%s.%s came back as %s", orType, variant, back.Variant)
			}
		}
	}

	dt, _ := NewEnum("ftd#text-input-type", "datetime")
	if got := dt.ToCSSString(Target{}); got != "datetime-local" {
		t.Errorf("datetime = %q", got)
	}
	if _, err := NewEnum("ftd#cursor", "sideways"); err == nil {
		t.Error("NewEnum accepted an unknown cursor")
	}
}

func TestRegionHeadingLevel(t *testing.T) {
	h2, _ := NewEnum("ftd#region", "h2")
	if n, ok := h2.HeadingLevel(); !ok || n != 2 {
		t.Errorf("h2 = %d, %v", n, ok)
	}
	footer, _ := NewEnum("ftd#region", "footer")
	if _, ok := footer.HeadingLevel(); ok {
		t.Error("footer is not a heading")
	}
}

func TestAnchor(t *testing.T) {
	w, err := ParseAnchor("window", "")
	if err != nil {
		t.Fatal(err)
	}
	if w.ToCSSString(Target{}) != "fixed" || !w.Escapes() {
		t.Errorf("window anchor: %+v", w)
	}
	id, err := ParseAnchor("id", "hero")
	if err != nil {
		t.Fatal(err)
	}
	if id.ToCSSString(Target{}) != "absolute" || id.Escapes() {
		t.Errorf("id anchor: %+v", id)
	}
	if _, err := ParseAnchor("id", " "); err == nil {
		t.Error("empty anchor id accepted")
	}
}
