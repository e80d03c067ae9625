package executor

import (
	"github.com/funvibe/ftdc/internal/config"
	"github.com/funvibe/ftdc/internal/diagnostics"
	"github.com/funvibe/ftdc/internal/styles"
	"github.com/funvibe/ftdc/internal/symbols"
)

// reduce converts the value of a styling argument to its typed form. An
// absent value reduces to nil.
func (x *Executor) reduce(arg string, v symbols.Value, line int) (styles.Style, error) {
	switch val := symbols.Unwrap(v).(type) {
	case nil:
		return nil, nil
	case *symbols.OrTypeValue:
		return x.reduceOrType(val, line)
	case *symbols.RecordValue:
		return x.reduceRecord(val, line)
	case *symbols.ListValue:
		return x.reduceTextStyle(val, line)
	case *symbols.DecimalValue:
		return styles.DecimalOf(val.Value), nil
	case *symbols.IntegerValue:
		if arg == "opacity" {
			return styles.DecimalOf(float64(val.Value)), nil
		}
		return styles.IntegerOf(val.Value), nil
	case *symbols.BooleanValue:
		if !val.Value {
			return nil, nil
		}
		return styles.KeywordOf(arg), nil
	case *symbols.StringValue:
		return styles.KeywordOf(val.Text), nil
	}
	return nil, diagnostics.InvalidKindf(x.docID, line, "`%s` cannot be styled from a `%s` value", arg, v.Kind())
}

func (x *Executor) reduceOrType(v *symbols.OrTypeValue, line int) (styles.Style, error) {
	switch v.Name {
	case config.LengthOrType:
		return x.length(v, line)
	case config.ResizingOrType:
		return x.resizing(v, line)
	case config.SpacingOrType:
		return x.spacing(v, line)
	case config.AlignOrType:
		a, err := styles.ParseAlignment(v.Variant)
		if err != nil {
			return nil, diagnostics.Parsef(x.docID, line, "%v", err)
		}
		return &a, nil
	case config.BackgroundOrType:
		return x.background(v, line)
	case config.AnchorOrType:
		id, _ := symbols.Text(payload(v))
		a, err := styles.ParseAnchor(v.Variant, id)
		if err != nil {
			return nil, diagnostics.Parsef(x.docID, line, "%v", err)
		}
		return a, nil
	case config.FontSizeOrType:
		return x.fontSize(v, line)
	case config.BackgroundSizeOrType, config.BackgroundPositionOrType:
		return x.placement(v, line)
	case config.LinearGradientDirectionOrType:
		d, err := x.direction(v, line)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
	if styles.IsEnumType(v.Name) {
		e, err := styles.NewEnum(v.Name, v.Variant)
		if err != nil {
			return nil, diagnostics.Parsef(x.docID, line, "%v", err)
		}
		return e, nil
	}
	return nil, diagnostics.InvalidKindf(x.docID, line, "`%s` is not a styling type", v.Name)
}

func (x *Executor) reduceRecord(r *symbols.RecordValue, line int) (styles.Style, error) {
	switch r.Name {
	case config.ColorRecord:
		return x.color(r, line)
	case config.ImageSrcRecord:
		return imageSrc(r), nil
	case config.ShadowRecord:
		return x.shadow(r, line)
	case config.TypeRecord:
		return x.fontType(r, line)
	case config.ResponsiveTypeRecord:
		return x.responsiveType(r, line)
	case config.ResponsiveLengthRecord:
		rl, err := x.responsiveLength(r, line)
		if err != nil {
			return nil, err
		}
		return &styles.Length{Unit: styles.UnitResponsive, Responsive: rl}, nil
	}
	return nil, diagnostics.InvalidKindf(x.docID, line, "`%s` is not a styling record", r.Name)
}

func (x *Executor) reduceTextStyle(list *symbols.ListValue, line int) (styles.Style, error) {
	if len(list.Data) == 0 {
		return nil, nil
	}
	names := make([]string, 0, len(list.Data))
	for _, item := range list.Data {
		ot, ok := symbols.Unwrap(literal(item)).(*symbols.OrTypeValue)
		if !ok {
			return nil, diagnostics.InvalidKindf(x.docID, line, "text-style list holds a non text-style value")
		}
		names = append(names, ot.Variant)
	}
	ts, err := styles.ParseTextStyle(names)
	if err != nil {
		return nil, diagnostics.Parsef(x.docID, line, "%v", err)
	}
	return ts, nil
}

// payload returns the value carried by an or-type variant.
func payload(v *symbols.OrTypeValue) symbols.Value {
	if v.Value == nil {
		return nil
	}
	return symbols.Unwrap(literal(v.Value))
}

// field returns a record field's value, nil when absent or empty.
func field(r *symbols.RecordValue, name string) symbols.Value {
	pv, ok := r.Field(name)
	if !ok {
		return nil
	}
	return symbols.Unwrap(literal(pv))
}

func textField(r *symbols.RecordValue, name string) string {
	s, _ := symbols.Text(field(r, name))
	return s
}

func number(v symbols.Value) (float64, bool) {
	switch n := v.(type) {
	case *symbols.IntegerValue:
		return float64(n.Value), true
	case *symbols.DecimalValue:
		return n.Value, true
	}
	return 0, false
}

func (x *Executor) length(v *symbols.OrTypeValue, line int) (*styles.Length, error) {
	unit, ok := styles.LengthUnitByVariant(v.Variant)
	if !ok {
		return nil, diagnostics.Parsef(x.docID, line, "unknown length `%s`", v.Variant)
	}
	p := payload(v)
	switch unit {
	case styles.UnitCalc:
		s, _ := symbols.Text(p)
		return styles.CalcLength(s), nil
	case styles.UnitResponsive:
		r, ok := p.(*symbols.RecordValue)
		if !ok {
			return nil, diagnostics.InvalidKindf(x.docID, line, "responsive length needs a record")
		}
		rl, err := x.responsiveLength(r, line)
		if err != nil {
			return nil, err
		}
		return &styles.Length{Unit: styles.UnitResponsive, Responsive: rl}, nil
	case styles.UnitPx:
		if i, ok := p.(*symbols.IntegerValue); ok {
			return styles.Px(i.Value), nil
		}
	}
	n, ok := number(p)
	if !ok {
		return nil, diagnostics.InvalidKindf(x.docID, line, "length `%s` needs a number", v.Variant)
	}
	return styles.NewLength(unit, n), nil
}

// lengthField reduces an ftd#length field; absent fields give nil.
func (x *Executor) lengthField(r *symbols.RecordValue, name string, line int) (*styles.Length, error) {
	ot, ok := field(r, name).(*symbols.OrTypeValue)
	if !ok {
		return nil, nil
	}
	return x.length(ot, line)
}

func (x *Executor) responsiveLength(r *symbols.RecordValue, line int) (*styles.ResponsiveLength, error) {
	desktop, err := x.lengthField(r, "desktop", line)
	if err != nil {
		return nil, err
	}
	mobile, err := x.lengthField(r, "mobile", line)
	if err != nil {
		return nil, err
	}
	if desktop == nil {
		return nil, diagnostics.MissingDataf(x.docID, line, "responsive length has no desktop value")
	}
	if mobile == nil {
		mobile = desktop
	}
	return &styles.ResponsiveLength{Desktop: *desktop, Mobile: *mobile}, nil
}

func (x *Executor) resizing(v *symbols.OrTypeValue, line int) (*styles.Resizing, error) {
	if v.Variant == string(styles.FixedSize) {
		l, ok := payload(v).(*symbols.OrTypeValue)
		if !ok {
			return nil, diagnostics.InvalidKindf(x.docID, line, "fixed resizing needs a length")
		}
		fixed, err := x.length(l, line)
		if err != nil {
			return nil, err
		}
		return &styles.Resizing{Mode: styles.FixedSize, Fixed: fixed}, nil
	}
	mode, err := styles.ParseResizingMode(v.Variant)
	if err != nil {
		return nil, diagnostics.Parsef(x.docID, line, "%v", err)
	}
	return &styles.Resizing{Mode: mode}, nil
}

func (x *Executor) spacing(v *symbols.OrTypeValue, line int) (*styles.Spacing, error) {
	if v.Variant == string(styles.SpaceFixed) {
		l, ok := payload(v).(*symbols.OrTypeValue)
		if !ok {
			return nil, diagnostics.InvalidKindf(x.docID, line, "fixed spacing needs a length")
		}
		fixed, err := x.length(l, line)
		if err != nil {
			return nil, err
		}
		return &styles.Spacing{Mode: styles.SpaceFixed, Fixed: fixed}, nil
	}
	mode, err := styles.ParseSpacingMode(v.Variant)
	if err != nil {
		return nil, diagnostics.Parsef(x.docID, line, "%v", err)
	}
	return &styles.Spacing{Mode: mode}, nil
}

func (x *Executor) color(r *symbols.RecordValue, line int) (*styles.Color, error) {
	c, err := styles.NewColor(textField(r, "light"), textField(r, "dark"))
	if err != nil {
		return nil, diagnostics.Parsef(x.docID, line, "invalid color: %v", err)
	}
	return c, nil
}

// colorField reduces an ftd#color field.
func (x *Executor) colorField(r *symbols.RecordValue, name string, line int) (*styles.Color, error) {
	c, ok := field(r, name).(*symbols.RecordValue)
	if !ok {
		return nil, diagnostics.MissingDataf(x.docID, line, "`%s` has no color `%s`", r.Name, name)
	}
	return x.color(c, line)
}

func imageSrc(r *symbols.RecordValue) *styles.ImageSrc {
	src := &styles.ImageSrc{Light: textField(r, "light"), Dark: textField(r, "dark")}
	if src.Dark == "" {
		src.Dark = src.Light
	}
	return src
}

func (x *Executor) shadow(r *symbols.RecordValue, line int) (*styles.Shadow, error) {
	s := &styles.Shadow{}
	for _, f := range []struct {
		name string
		dst  *styles.Length
	}{
		{"x-offset", &s.X},
		{"y-offset", &s.Y},
		{"blur", &s.Blur},
		{"spread", &s.Spread},
	} {
		l, err := x.lengthField(r, f.name, line)
		if err != nil {
			return nil, err
		}
		if l == nil {
			l = styles.Px(0)
		}
		*f.dst = *l
	}
	if _, ok := field(r, "color").(*symbols.RecordValue); ok {
		c, err := x.colorField(r, "color", line)
		if err != nil {
			return nil, err
		}
		s.Color = *c
	} else {
		c, _ := styles.NewColor("black", "")
		s.Color = *c
	}
	if b, ok := field(r, "inset").(*symbols.BooleanValue); ok {
		s.Inset = b.Value
	}
	return s, nil
}

func (x *Executor) background(v *symbols.OrTypeValue, line int) (*styles.Background, error) {
	r, ok := payload(v).(*symbols.RecordValue)
	if !ok {
		return nil, diagnostics.InvalidKindf(x.docID, line, "background `%s` needs a record", v.Variant)
	}
	switch styles.BackgroundKind(v.Variant) {
	case styles.BackgroundSolid:
		c, err := x.color(r, line)
		if err != nil {
			return nil, err
		}
		return &styles.Background{Kind: styles.BackgroundSolid, Solid: c}, nil
	case styles.BackgroundImageKind:
		img, err := x.backgroundImage(r, line)
		if err != nil {
			return nil, err
		}
		return &styles.Background{Kind: styles.BackgroundImageKind, Image: img}, nil
	case styles.BackgroundLinearGradient:
		g, err := x.linearGradient(r, line)
		if err != nil {
			return nil, err
		}
		return &styles.Background{Kind: styles.BackgroundLinearGradient, LinearGradient: g}, nil
	}
	return nil, diagnostics.Parsef(x.docID, line, "unknown background `%s`", v.Variant)
}

func (x *Executor) backgroundImage(r *symbols.RecordValue, line int) (*styles.BackgroundImage, error) {
	src, ok := field(r, "src").(*symbols.RecordValue)
	if !ok {
		return nil, diagnostics.MissingDataf(x.docID, line, "background image has no src")
	}
	img := &styles.BackgroundImage{Src: *imageSrc(src)}
	if rep, ok := field(r, "repeat").(*symbols.OrTypeValue); ok {
		e, err := styles.NewEnum(rep.Name, rep.Variant)
		if err != nil {
			return nil, diagnostics.Parsef(x.docID, line, "%v", err)
		}
		img.Repeat = e
	}
	for _, f := range []struct {
		name string
		dst  **styles.Placement
	}{
		{"size", &img.Size},
		{"position", &img.Position},
	} {
		ot, ok := field(r, f.name).(*symbols.OrTypeValue)
		if !ok {
			continue
		}
		p, err := x.placement(ot, line)
		if err != nil {
			return nil, err
		}
		*f.dst = p
	}
	return img, nil
}

// placement reduces ftd#background-size and ftd#background-position: a
// keyword variant or a length pair.
func (x *Executor) placement(v *symbols.OrTypeValue, line int) (*styles.Placement, error) {
	pair, ok := payload(v).(*symbols.RecordValue)
	if !ok || pair.Name != config.LengthPairRecord {
		return &styles.Placement{Keyword: v.Variant}, nil
	}
	px, err := x.lengthField(pair, "x", line)
	if err != nil {
		return nil, err
	}
	py, err := x.lengthField(pair, "y", line)
	if err != nil {
		return nil, err
	}
	if px == nil || py == nil {
		return nil, diagnostics.MissingDataf(x.docID, line, "length pair needs both x and y")
	}
	return &styles.Placement{Length: &styles.LengthPair{X: *px, Y: *py}}, nil
}

func (x *Executor) direction(v *symbols.OrTypeValue, line int) (styles.GradientDirection, error) {
	switch styles.DirectionKind(v.Variant) {
	case styles.DirectionAngle, styles.DirectionTurn:
		n, ok := number(payload(v))
		if !ok {
			return styles.GradientDirection{}, diagnostics.InvalidKindf(x.docID, line, "gradient %s needs a number", v.Variant)
		}
		return styles.GradientDirection{Kind: styles.DirectionKind(v.Variant), Value: n}, nil
	}
	d, err := styles.NamedDirection(v.Variant)
	if err != nil {
		return styles.GradientDirection{}, diagnostics.Parsef(x.docID, line, "%v", err)
	}
	return d, nil
}

func (x *Executor) linearGradient(r *symbols.RecordValue, line int) (*styles.LinearGradient, error) {
	g := &styles.LinearGradient{Direction: styles.GradientDirection{Kind: styles.DirectionNamed, Name: "bottom"}}
	if ot, ok := field(r, "direction").(*symbols.OrTypeValue); ok {
		d, err := x.direction(ot, line)
		if err != nil {
			return nil, err
		}
		g.Direction = d
	}
	colors, _ := field(r, "colors").(*symbols.ListValue)
	if colors == nil || len(colors.Data) == 0 {
		return nil, diagnostics.MissingDataf(x.docID, line, "linear gradient has no colors")
	}
	for _, item := range colors.Data {
		cr, ok := symbols.Unwrap(literal(item)).(*symbols.RecordValue)
		if !ok {
			return nil, diagnostics.InvalidKindf(x.docID, line, "gradient color needs a record")
		}
		c, err := x.colorField(cr, "color", line)
		if err != nil {
			return nil, err
		}
		gc := styles.GradientColor{Color: *c}
		for _, f := range []struct {
			name string
			dst  **styles.Length
		}{
			{"start", &gc.Start},
			{"end", &gc.End},
			{"stop-position", &gc.StopPosition},
		} {
			l, err := x.lengthField(cr, f.name, line)
			if err != nil {
				return nil, err
			}
			*f.dst = l
		}
		g.Colors = append(g.Colors, gc)
	}
	return g, nil
}

func (x *Executor) fontSize(v *symbols.OrTypeValue, line int) (*styles.FontSize, error) {
	unit, err := styles.FontSizeUnit(v.Variant)
	if err != nil {
		return nil, diagnostics.Parsef(x.docID, line, "%v", err)
	}
	n, ok := number(payload(v))
	if !ok {
		return nil, diagnostics.InvalidKindf(x.docID, line, "font size `%s` needs a number", v.Variant)
	}
	return &styles.FontSize{Unit: unit, Value: n}, nil
}

func (x *Executor) fontType(r *symbols.RecordValue, line int) (*styles.Type, error) {
	t := &styles.Type{}
	for _, f := range []struct {
		name string
		dst  **styles.FontSize
	}{
		{"size", &t.Size},
		{"line-height", &t.LineHeight},
		{"letter-spacing", &t.LetterSpacing},
	} {
		ot, ok := field(r, f.name).(*symbols.OrTypeValue)
		if !ok {
			continue
		}
		fs, err := x.fontSize(ot, line)
		if err != nil {
			return nil, err
		}
		*f.dst = fs
	}
	if w, ok := field(r, "weight").(*symbols.IntegerValue); ok {
		weight := w.Value
		t.Weight = &weight
	}
	if s, ok := field(r, "font-family").(*symbols.StringValue); ok {
		family := s.Text
		t.FontFamily = &family
	}
	return t, nil
}

func (x *Executor) responsiveType(r *symbols.RecordValue, line int) (*styles.ResponsiveType, error) {
	d, ok := field(r, "desktop").(*symbols.RecordValue)
	if !ok {
		return nil, diagnostics.MissingDataf(x.docID, line, "responsive type has no desktop value")
	}
	desktop, err := x.fontType(d, line)
	if err != nil {
		return nil, err
	}
	mobile := desktop
	if m, ok := field(r, "mobile").(*symbols.RecordValue); ok {
		if mobile, err = x.fontType(m, line); err != nil {
			return nil, err
		}
	}
	return &styles.ResponsiveType{Desktop: *desktop, Mobile: *mobile}, nil
}
