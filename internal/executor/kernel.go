package executor

import (
	"github.com/funvibe/ftdc/internal/config"
	"github.com/funvibe/ftdc/internal/diagnostics"
	"github.com/funvibe/ftdc/internal/elements"
	"github.com/funvibe/ftdc/internal/evaluator"
	"github.com/funvibe/ftdc/internal/styles"
	"github.com/funvibe/ftdc/internal/symbols"
)

const youtubeEmbed = "https://www.youtube.com/embed/"

// kernel builds the element of a kernel component instance.
func (x *Executor) kernel(def *symbols.ComponentDefinition, c *symbols.Component, bindings map[string]*evaluator.Binding, env *evaluator.Env) (elements.Element, error) {
	a := &args{x: x, bindings: bindings, env: env, id: c.ID, line: c.Line}
	switch def.Name {
	case config.TextComponent:
		return x.text(a)
	case config.IntegerComponent:
		return x.number(a, elements.KindInteger)
	case config.DecimalComponent:
		return x.number(a, elements.KindDecimal)
	case config.BooleanComponent:
		return x.number(a, elements.KindBoolean)
	case config.CodeComponent:
		return x.code(a)
	case config.ImageComponent:
		return x.image(a)
	case config.IFrameComponent:
		return x.iframe(a)
	case config.TextInputComponent:
		return x.textInput(a)
	case config.RowComponent:
		row := elements.NewRow()
		a.common = &row.Common
		return row, x.container(a, &row.Container, true)
	case config.ColumnComponent:
		col := elements.NewColumn()
		a.common = &col.Common
		return col, x.container(a, &col.Container, false)
	case config.SceneComponent:
		scene := elements.NewScene()
		a.common = &scene.Common
		return scene, x.container(a, &scene.Container, false)
	case config.GridComponent:
		return x.grid(a)
	case config.DesktopComponent:
		return x.device(a, styles.Desktop)
	case config.MobileComponent:
		return x.device(a, styles.Mobile)
	case config.DocumentComponent:
		return x.document(a)
	}
	return nil, diagnostics.NotFoundf(x.docID, c.Line, "no element for kernel component `%s`", def.Name)
}

func (x *Executor) text(a *args) (elements.Element, error) {
	t := elements.NewText(elements.KindText)
	a.common = &t.Common
	var err error
	if t.Text, err = a.str("text"); err != nil {
		return nil, err
	}
	if err := a.attribute("text", "text", plainText); err != nil {
		return nil, err
	}
	if err := x.textual(a, t); err != nil {
		return nil, err
	}
	if t.TextIndent, err = styleOf[*styles.Length](a, "text-indent", "text-indent"); err != nil {
		return nil, err
	}
	if t.Display, err = styleOf[*styles.Enum](a, "display", "display"); err != nil {
		return nil, err
	}
	if err := a.fill(); err != nil {
		return nil, err
	}
	return x.markup(t, a)
}

func plainText(v symbols.Value) (string, error) {
	s, _ := symbols.Text(v)
	return s, nil
}

// number builds ftd#integer, ftd#decimal and ftd#boolean.
func (x *Executor) number(a *args, kind string) (elements.Element, error) {
	t := elements.NewText(kind)
	a.common = &t.Common
	var err error
	if t.Format, err = a.optString("format"); err != nil {
		return nil, err
	}
	show := func(v symbols.Value) (string, error) {
		return x.formatValue(v, t.Format, a.line)
	}
	v, err := a.value("value")
	if err != nil {
		return nil, err
	}
	if t.Text, err = show(v); err != nil {
		return nil, err
	}
	if err := a.attribute("value", "text", show); err != nil {
		return nil, err
	}
	if err := x.textual(a, t); err != nil {
		return nil, err
	}
	return t, a.fill()
}

// textual reads the arguments text-like elements share.
func (x *Executor) textual(a *args, t *elements.Text) error {
	var err error
	if t.TextAlign, err = styleOf[*styles.Enum](a, "text-align", "text-align"); err != nil {
		return err
	}
	if t.LineClamp, err = a.optInt("line-clamp"); err != nil {
		return err
	}
	t.Style, err = styleOf[*styles.TextStyle](a, "style", "text-style")
	return err
}

func (x *Executor) code(a *args) (elements.Element, error) {
	c := elements.NewCode()
	a.common = &c.Common
	var err error
	if c.Text, err = a.str("text"); err != nil {
		return nil, err
	}
	if err := a.attribute("text", "text", plainText); err != nil {
		return nil, err
	}
	if c.Lang, err = a.str("lang"); err != nil {
		return nil, err
	}
	if c.Lang == "" {
		c.Lang = "txt"
	}
	if c.Theme, err = a.optString("theme"); err != nil {
		return nil, err
	}
	if c.TextAlign, err = styleOf[*styles.Enum](a, "text-align", "text-align"); err != nil {
		return nil, err
	}
	if c.LineClamp, err = a.optInt("line-clamp"); err != nil {
		return nil, err
	}
	return c, a.fill()
}

func (x *Executor) image(a *args) (elements.Element, error) {
	img := elements.NewImage()
	a.common = &img.Common
	v, err := a.value("src")
	if err != nil {
		return nil, err
	}
	src, ok := symbols.Unwrap(v).(*symbols.RecordValue)
	if !ok {
		return nil, diagnostics.MissingDataf(x.docID, a.line, "image has no src")
	}
	img.Src = *imageSrc(src)
	err = a.attribute("src", "src", func(v symbols.Value) (string, error) {
		if r, ok := symbols.Unwrap(v).(*symbols.RecordValue); ok {
			return imageSrc(r).ToCSSString(x.target), nil
		}
		return "", nil
	})
	if err != nil {
		return nil, err
	}
	if img.Alt, err = a.optString("alt"); err != nil {
		return nil, err
	}
	if img.Fit, err = styleOf[*styles.Enum](a, "fit", "object-fit"); err != nil {
		return nil, err
	}
	if img.Loading, err = styleOf[*styles.Enum](a, "loading", "loading"); err != nil {
		return nil, err
	}
	return img, a.fill()
}

// iframe takes exactly one of src, youtube and srcdoc.
func (x *Executor) iframe(a *args) (elements.Element, error) {
	f := elements.NewIFrame()
	a.common = &f.Common
	src, err := a.optString("src")
	if err != nil {
		return nil, err
	}
	youtube, err := a.optString("youtube")
	if err != nil {
		return nil, err
	}
	srcdoc, err := a.optString("srcdoc")
	if err != nil {
		return nil, err
	}
	set := 0
	for _, s := range []*string{src, youtube, srcdoc} {
		if s != nil {
			set++
		}
	}
	switch {
	case set == 0:
		return nil, diagnostics.MissingDataf(x.docID, a.line, "iframe needs one of src, youtube and srcdoc")
	case set > 1:
		return nil, diagnostics.ForbiddenUsagef(x.docID, a.line, "iframe takes only one of src, youtube and srcdoc")
	}
	if youtube != nil {
		embed := youtubeEmbed + *youtube
		src = &embed
	}
	f.Src, f.SrcDoc = src, srcdoc
	if f.Loading, err = styleOf[*styles.Enum](a, "loading", "loading"); err != nil {
		return nil, err
	}
	return f, a.fill()
}

func (x *Executor) textInput(a *args) (elements.Element, error) {
	t := elements.NewTextInput()
	a.common = &t.Common
	var err error
	if t.Placeholder, err = a.optString("placeholder"); err != nil {
		return nil, err
	}
	if t.Value, err = a.optString("value"); err != nil {
		return nil, err
	}
	if err := a.attribute("value", "value", plainText); err != nil {
		return nil, err
	}
	if t.DefaultValue, err = a.optString("default-value"); err != nil {
		return nil, err
	}
	if t.Multiline, err = a.bool("multiline"); err != nil {
		return nil, err
	}
	if t.Enabled, err = a.optBool("enabled"); err != nil {
		return nil, err
	}
	if t.MaxLength, err = a.optInt("max-length"); err != nil {
		return nil, err
	}
	if t.Type, err = styleOf[*styles.Enum](a, "type", "type"); err != nil {
		return nil, err
	}
	return t, a.fill()
}

func (x *Executor) grid(a *args) (elements.Element, error) {
	g := elements.NewGrid()
	a.common = &g.Common
	var err error
	if g.Slots, err = a.str("slots"); err != nil {
		return nil, err
	}
	if g.SlotWidths, err = a.optString("slot-widths"); err != nil {
		return nil, err
	}
	if g.SlotHeights, err = a.optString("slot-heights"); err != nil {
		return nil, err
	}
	if g.GridSpacing, err = styleOf[*styles.Length](a, "spacing", "gap"); err != nil {
		return nil, err
	}
	if g.Inline, err = a.bool("inline"); err != nil {
		return nil, err
	}
	if g.AutoFlow, err = a.optString("auto-flow"); err != nil {
		return nil, err
	}
	children, err := x.children(a, a.bindings[config.ChildrenKeyword], x.inherit(a))
	if err != nil {
		return nil, err
	}
	g.Children = children
	return g, a.fill()
}

// container fills a row, column or scene. horizontal is set for rows,
// whose children are aligned along the cross axis differently.
func (x *Executor) container(a *args, c *elements.Container, horizontal bool) error {
	var err error
	if c.Open, err = a.optBool("open"); err != nil {
		return err
	}
	if c.AppendAt, err = a.optString("append-at"); err != nil {
		return err
	}
	if c.Wrap, err = a.optBool("wrap"); err != nil {
		return err
	}
	if _, ok := a.bindings["spacing"]; ok {
		if c.Spacing, err = styleOf[*styles.Spacing](a, "spacing", "gap"); err != nil {
			return err
		}
	}
	if c.AlignContent, err = styleOf[*styles.Alignment](a, "align-content", "align-content"); err != nil {
		return err
	}

	own := a.bindings[config.ChildrenKeyword]
	if ext, ok := x.externalSource(c); ok && forwards(own, ext) {
		own = nil
	}
	if c.Children, err = x.children(a, own, x.inherit(a)); err != nil {
		return err
	}
	if err := x.external(a, c); err != nil {
		return err
	}
	alignChildren(c, horizontal)
	return a.fill()
}

// inherit returns how the scope of a container's children is extended
// with the colors and types the container passes down.
func (x *Executor) inherit(a *args) func(*evaluator.Env) *evaluator.Env {
	frames := map[string]symbols.Value{}
	for _, key := range []string{config.InheritedColors, config.InheritedTypes} {
		v, err := a.value(key)
		if err != nil || symbols.Unwrap(v) == nil {
			continue
		}
		frames[key] = symbols.Unwrap(v)
	}
	if len(frames) == 0 {
		return nil
	}
	return func(env *evaluator.Env) *evaluator.Env {
		for _, key := range []string{config.InheritedColors, config.InheritedTypes} {
			if v, ok := frames[key]; ok {
				env = env.WithInherited(key, v)
			}
		}
		return env
	}
}

// children expands the UI values bound to b. scope, when set, extends
// the scope each child was captured in.
func (x *Executor) children(a *args, b *evaluator.Binding, scope func(*evaluator.Env) *evaluator.Env) ([]elements.Element, error) {
	out := []elements.Element{}
	if b == nil {
		return out, nil
	}
	v, err := x.eval.BindingValue(b)
	if err != nil {
		return nil, err
	}
	list, ok := symbols.Unwrap(v).(*symbols.ListValue)
	if !ok {
		return out, nil
	}
	for _, item := range list.Data {
		ui, ok := symbols.Unwrap(literal(item)).(*symbols.UIValue)
		if !ok {
			return nil, diagnostics.InvalidKindf(x.docID, a.line, "children hold a non-component value")
		}
		env, _ := ui.Scope.(*evaluator.Env)
		if env == nil {
			env = a.env
		}
		if scope != nil {
			env = scope(env)
		}
		els, err := x.expand(ui.Component, env)
		if err != nil {
			return nil, err
		}
		out = append(out, els...)
	}
	return out, nil
}

// device builds ftd#desktop and ftd#mobile: the children rendered for
// that device only, shown while ftd#device has that value.
func (x *Executor) device(a *args, d styles.Device) (elements.Element, error) {
	children, err := x.children(a, a.bindings[config.ChildrenKeyword], func(env *evaluator.Env) *evaluator.Env {
		return env.WithDevice(d)
	})
	if err != nil {
		return nil, err
	}
	el := single(children)
	common := el.GetCommon()
	if common == nil {
		return el, nil
	}
	name := d.String()
	common.Device = &name
	mergeCondition(common, config.ReferencePrefix+config.DeviceVariable+" == "+name, x.target.Device == d)
	common.Traces = append(common.Traces, &elements.Trace{
		Variable:  config.DeviceVariable,
		Type:      elements.DependencyVisible,
		Condition: name,
	})
	return el, nil
}

// document records the arguments of ftd#document as page metadata. Its
// children become the root's, so the invocation itself renders nothing.
func (x *Executor) document(a *args) (elements.Element, error) {
	if x.page != nil {
		return nil, diagnostics.ForbiddenUsagef(x.docID, a.line, "a document has only one ftd#document")
	}
	col := elements.NewColumn()
	a.common = &col.Common
	children, err := x.children(a, a.bindings[config.ChildrenKeyword], nil)
	if err != nil {
		return nil, err
	}
	col.Children = children
	if err := a.fill(); err != nil {
		return nil, err
	}

	var meta elements.Meta
	if meta.Title, err = a.optString("title"); err != nil {
		return nil, err
	}
	if meta.Description, err = a.optString("description"); err != nil {
		return nil, err
	}
	v, err := a.value("og-image")
	if err != nil {
		return nil, err
	}
	if r, ok := symbols.Unwrap(v).(*symbols.RecordValue); ok {
		img := imageSrc(r).ToCSSString(x.target)
		meta.OGImage = &img
	}
	if v, err = a.value("theme-color"); err != nil {
		return nil, err
	}
	if r, ok := symbols.Unwrap(v).(*symbols.RecordValue); ok {
		c, err := x.color(r, a.line)
		if err != nil {
			return nil, err
		}
		css := c.ToCSSString(x.target)
		meta.ThemeColor = &css
	}
	if v, err = a.value("breakpoint"); err != nil {
		return nil, err
	}
	if r, ok := symbols.Unwrap(v).(*symbols.RecordValue); ok {
		if n, ok := field(r, "mobile").(*symbols.IntegerValue); ok {
			width := n.Value
			meta.Breakpoint = &width
		}
	}

	x.page = col
	x.meta = meta
	return elements.NewNull(), nil
}
