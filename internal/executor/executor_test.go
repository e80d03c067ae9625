package executor

import (
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/funvibe/ftdc/internal/analyzer"
	"github.com/funvibe/ftdc/internal/config"
	"github.com/funvibe/ftdc/internal/diagnostics"
	"github.com/funvibe/ftdc/internal/elements"
	"github.com/funvibe/ftdc/internal/modules"
	"github.com/funvibe/ftdc/internal/styles"
	"github.com/funvibe/ftdc/internal/symbols"
)

// execute analyzes src as document "index" and runs it through the
// executor and the layout passes.
func execute(t *testing.T, src string) (*elements.Column, elements.Meta, error) {
	t.Helper()
	loader := modules.NewLoader()
	loader.AddSource("index", []byte(src))
	res, err := analyzer.New(loader, nil).Interpret("index")
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	x := New(res.Symbols, styles.Target{}, "index", language.English, nil)
	root, meta, err := x.Execute(res.Instructions)
	if err != nil {
		return nil, meta, err
	}
	root.Children = Renest(root.Children)
	AssignIDs(root)
	return root, meta, nil
}

func mustExecute(t *testing.T, src string) *elements.Column {
	t.Helper()
	root, _, err := execute(t, src)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	return root
}

func textAt(t *testing.T, e elements.Element) *elements.Text {
	t.Helper()
	text, ok := e.(*elements.Text)
	if !ok {
		t.Fatalf("expected a text element, got %T", e)
	}
	return text
}

func TestLengthFromVariable(t *testing.T) {
	root := mustExecute(t, `
id: index
ast:
  - variable: {name: v, kind: integer, value: 10}
  - invoke:
      --name: ftd.text
      --caption: hello
      padding: $v
`)
	if len(root.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(root.Children))
	}
	text := textAt(t, root.Children[0])
	if text.Text != "hello" {
		t.Errorf("text = %q", text.Text)
	}
	if text.Padding == nil || *text.Padding != *styles.Px(10) {
		t.Fatalf("padding = %+v", text.Padding)
	}
	if css := text.Padding.ToCSSString(styles.Target{}); css != "10px" {
		t.Errorf("padding css = %q", css)
	}
	if text.DataID != "0" {
		t.Errorf("data-id = %q", text.DataID)
	}

	var found *elements.Trace
	for _, tr := range text.Traces {
		if tr.Variable == "index#v" && tr.Key == "padding" {
			found = tr
		}
	}
	if found == nil {
		t.Fatalf("no trace of index#v on padding: %+v", text.Traces)
	}
	if found.Type != elements.DependencyStyle || found.Value == nil || found.Value.Value != "10px" {
		t.Errorf("trace = %+v", found)
	}
}

func TestLoopOverList(t *testing.T) {
	root := mustExecute(t, `
id: index
ast:
  - variable: {name: xs, kind: integer list, value: [1, 2, 3]}
  - invoke:
      --name: ftd.column
      --children:
        - {--name: ftd.integer, --caption: $x, "$loop$": "$xs as $x"}
`)
	col, ok := root.Children[0].(*elements.Column)
	if !ok {
		t.Fatalf("expected a column, got %T", root.Children[0])
	}
	if col.DataID != "0" {
		t.Errorf("column data-id = %q", col.DataID)
	}
	want := []struct{ text, id string }{{"1", "0,0"}, {"2", "0,1"}, {"3", "0,2"}}
	if len(col.Children) != len(want) {
		t.Fatalf("expected %d children, got %d", len(want), len(col.Children))
	}
	for i, w := range want {
		text := textAt(t, col.Children[i])
		if text.Text != w.text || text.DataID != w.id {
			t.Errorf("child %d = (%q, %q), want (%q, %q)", i, text.Text, text.DataID, w.text, w.id)
		}
		if text.IsDummy {
			t.Errorf("child %d is a dummy", i)
		}
	}
}

func TestLoopCounter(t *testing.T) {
	tests := []struct {
		name    string
		loop    string
		caption string
	}{
		{"named counter", "$xs as $x counter $i", "$i"},
		{"implicit counter", "$xs as $x", "$LOOP.COUNTER"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := mustExecute(t, `
id: index
ast:
  - variable: {name: xs, kind: integer list, value: [10, 20, 30]}
  - invoke:
      --name: ftd.column
      --children:
        - {--name: ftd.integer, --caption: "`+tt.caption+`", "$loop$": "`+tt.loop+`"}
`)
			col := root.Children[0].(*elements.Column)
			if len(col.Children) != 3 {
				t.Fatalf("expected 3 children, got %d", len(col.Children))
			}
			for i, want := range []string{"0", "1", "2"} {
				if got := textAt(t, col.Children[i]).Text; got != want {
					t.Errorf("child %d = %q, want %q", i, got, want)
				}
			}
		})
	}
}

func TestMutableLoopAddsDummy(t *testing.T) {
	root := mustExecute(t, `
id: index
ast:
  - variable: {name: $names, kind: string list, value: [a, b]}
  - invoke:
      --name: ftd.column
      --children:
        - {--name: ftd.text, --caption: $n, "$loop$": "$names as $n"}
`)
	col := root.Children[0].(*elements.Column)
	if len(col.Children) != 3 {
		t.Fatalf("expected 2 items and a dummy, got %d children", len(col.Children))
	}
	dummy := textAt(t, col.Children[2])
	if !dummy.IsDummy {
		t.Fatal("last child is not a dummy")
	}
	if dummy.DataID != "0,2:"+config.DummySuffix {
		t.Errorf("dummy data-id = %q", dummy.DataID)
	}
}

func TestConditionalStyle(t *testing.T) {
	root := mustExecute(t, `
id: index
ast:
  - variable: {name: dark, kind: boolean, value: false}
  - invoke:
      --name: ftd.text
      --caption: hi
      "color if { $dark }": red
      color: blue
`)
	text := textAt(t, root.Children[0])
	if text.Color == nil || text.Color.ToCSSString(styles.Target{}) != "rgba(0,0,255,1)" {
		t.Fatalf("color = %+v", text.Color)
	}
	if text.Conditional == nil {
		t.Fatal("no conditional attributes")
	}
	ca, ok := text.Conditional.Get("color")
	if !ok {
		t.Fatal("no conditional attribute for color")
	}
	if ca.Type != elements.AttributeStyle {
		t.Errorf("attribute type = %q", ca.Type)
	}
	if ca.Default == nil || ca.Default.Value != "rgba(0,0,255,1)" {
		t.Errorf("default = %+v", ca.Default)
	}
	if len(ca.ConditionsWithValue) != 1 {
		t.Fatalf("conditions = %+v", ca.ConditionsWithValue)
	}
	cv := ca.ConditionsWithValue[0]
	if cv.Condition != "$dark" || cv.Value.Value != "rgba(255,0,0,1)" {
		t.Errorf("condition = %+v", cv)
	}

	var found bool
	for _, tr := range text.Traces {
		if tr.Variable == "index#dark" && tr.Key == "color" && tr.Condition == true {
			found = true
			if tr.Value == nil || tr.Value.Value != "rgba(255,0,0,1)" {
				t.Errorf("trace value = %+v", tr.Value)
			}
			if tr.Default == nil || tr.Default.Value != "rgba(0,0,255,1)" {
				t.Errorf("trace default = %+v", tr.Default)
			}
		}
	}
	if !found {
		t.Errorf("no condition trace on index#dark: %+v", text.Traces)
	}
}

func TestVisibilityCondition(t *testing.T) {
	root := mustExecute(t, `
id: index
ast:
  - variable: {name: $open, kind: boolean, value: false}
  - variable: {name: never, kind: boolean, value: false}
  - invoke: {--name: ftd.text, --caption: shown, if: "{ $open }"}
  - invoke: {--name: ftd.text, --caption: gone, if: "{ $never }"}
`)
	text := textAt(t, root.Children[0])
	if text.Condition == nil || text.Condition.Expression != "$open" || text.Condition.Visible {
		t.Errorf("condition = %+v", text.Condition)
	}
	if !elements.IsNull(root.Children[1]) {
		t.Errorf("constant false condition rendered %T", root.Children[1])
	}
}

func TestUserComponent(t *testing.T) {
	root := mustExecute(t, `
id: index
ast:
  - component:
      name: card
      arguments:
        - {name: title, kind: caption string}
      definition:
        --name: ftd.column
        --children:
          - {--name: ftd.text, --caption: $card.title}
  - invoke: {--name: card, --caption: Hello}
  - invoke: {--name: card, --caption: World}
`)
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 cards, got %d", len(root.Children))
	}
	for i, want := range []string{"Hello", "World"} {
		col, ok := root.Children[i].(*elements.Column)
		if !ok || len(col.Children) != 1 {
			t.Fatalf("card %d = %+v", i, root.Children[i])
		}
		if text := textAt(t, col.Children[0]); text.Text != want {
			t.Errorf("card %d title = %q, want %q", i, text.Text, want)
		}
	}
}

func TestIFrameSources(t *testing.T) {
	root := mustExecute(t, `
id: index
ast:
  - invoke: {--name: ftd.iframe, youtube: abc}
`)
	f, ok := root.Children[0].(*elements.IFrame)
	if !ok {
		t.Fatalf("expected an iframe, got %T", root.Children[0])
	}
	if f.Src == nil || *f.Src != "https://www.youtube.com/embed/abc" {
		t.Errorf("src = %v", f.Src)
	}

	_, _, err := execute(t, `
id: index
ast:
  - invoke: {--name: ftd.iframe, --caption: "https://example.com", youtube: abc}
`)
	if !diagnostics.Is(err, diagnostics.ForbiddenUsage) {
		t.Errorf("expected ForbiddenUsage, got %v", err)
	}
}

func TestDocumentMeta(t *testing.T) {
	root, meta, err := execute(t, `
id: index
ast:
  - invoke:
      --name: ftd.document
      title: Home
      --children:
        - {--name: ftd.text, --caption: body}
`)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if meta.Title == nil || *meta.Title != "Home" {
		t.Errorf("title = %v", meta.Title)
	}
	if len(root.Children) != 1 || textAt(t, root.Children[0]).Text != "body" {
		t.Errorf("root children = %+v", root.Children)
	}
}

func TestFormatValue(t *testing.T) {
	x := New(symbols.NewSymbolTable(), styles.Target{}, "index", language.English, nil)
	ptr := func(s string) *string { return &s }
	tests := []struct {
		name   string
		value  symbols.Value
		format *string
		want   string
	}{
		{"no format", &symbols.IntegerValue{Value: 1234567}, nil, "1234567"},
		{"grouped", &symbols.IntegerValue{Value: 1234567}, ptr(","), "1,234,567"},
		{"padded", &symbols.IntegerValue{Value: 42}, ptr("%05d"), "00042"},
		{"decimal", &symbols.DecimalValue{Value: 3.14159}, ptr("%.2f"), "3.14"},
		{"boolean", &symbols.BooleanValue{Value: true}, ptr("%d"), "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := x.formatValue(tt.value, tt.format, 1)
			if err != nil {
				t.Fatalf("formatValue: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := x.formatValue(&symbols.IntegerValue{Value: 1}, ptr("%s"), 1); !diagnostics.Is(err, diagnostics.OtherError) {
		t.Errorf("expected OtherError for a mismatched verb, got %v", err)
	}
}

func TestExternalChildren(t *testing.T) {
	root := mustExecute(t, `
id: index
ast:
  - component:
      name: card
      arguments:
        - {name: children, kind: children}
      definition:
        --name: ftd.column
        --children:
          - {--name: ftd.text, --caption: title}
          - {--name: ftd.column, append-at: body}
  - invoke:
      --name: card
      --children:
        - {--name: ftd.text, --caption: passed}
`)
	card, ok := root.Children[0].(*elements.Column)
	if !ok || len(card.Children) != 2 {
		t.Fatalf("card = %+v", root.Children[0])
	}
	if title := textAt(t, card.Children[0]); title.Text != "title" {
		t.Errorf("title = %q", title.Text)
	}
	slot, ok := card.Children[1].(*elements.Column)
	if !ok {
		t.Fatalf("slot = %T", card.Children[1])
	}
	if len(slot.Children) != 0 {
		t.Errorf("slot renders %d own children", len(slot.Children))
	}
	ext := slot.ExternalChildren
	if ext == nil {
		t.Fatal("no external children")
	}
	if ext.ID != "body" || ext.AppendAt != "body" || len(ext.Children) != 1 {
		t.Fatalf("external children = %+v", ext)
	}
	passed := textAt(t, ext.Children[0])
	if passed.Text != "passed" {
		t.Errorf("passed = %q", passed.Text)
	}
	if !strings.Contains(passed.DataID, "body-external:") {
		t.Errorf("external data-id = %q", passed.DataID)
	}
}

func TestMarkup(t *testing.T) {
	root := mustExecute(t, `
id: index
ast:
  - invoke: {--name: ftd.text, --caption: "hello {ftd.text: world}"}
  - invoke: {--name: ftd.text, --caption: "plain {nothing: here}"}
`)
	m, ok := root.Children[0].(*elements.Markup)
	if !ok {
		t.Fatalf("expected markup, got %T", root.Children[0])
	}
	if m.Text != "hello {ftd.text: world}" || len(m.Children) != 1 {
		t.Fatalf("markup = %+v", m)
	}
	if span := textAt(t, m.Children[0]); span.Text != "world" {
		t.Errorf("span = %q", span.Text)
	}
	if plain := textAt(t, root.Children[1]); plain.Text != "plain {nothing: here}" {
		t.Errorf("plain text = %q", plain.Text)
	}
}

func TestDeviceWrappers(t *testing.T) {
	root := mustExecute(t, `
id: index
ast:
  - invoke:
      --name: ftd.desktop
      --children:
        - {--name: ftd.text, --caption: wide}
  - invoke:
      --name: ftd.mobile
      --children:
        - {--name: ftd.text, --caption: narrow}
`)
	tests := []struct {
		text    string
		device  string
		visible bool
	}{
		{"wide", "desktop", true},
		{"narrow", "mobile", false},
	}
	if len(root.Children) != len(tests) {
		t.Fatalf("expected %d children, got %d", len(tests), len(root.Children))
	}
	for i, tt := range tests {
		text := textAt(t, root.Children[i])
		if text.Text != tt.text {
			t.Errorf("child %d = %q", i, text.Text)
		}
		if text.Device == nil || *text.Device != tt.device {
			t.Errorf("%s device = %v", tt.text, text.Device)
		}
		want := "$" + config.DeviceVariable + " == " + tt.device
		if text.Condition == nil || text.Condition.Expression != want || text.Condition.Visible != tt.visible {
			t.Errorf("%s condition = %+v", tt.text, text.Condition)
		}
	}
}

func TestContainerAlignsChildren(t *testing.T) {
	root := mustExecute(t, `
id: index
ast:
  - invoke:
      --name: ftd.row
      align-content: top-left
      --children:
        - {--name: ftd.text, --caption: a}
        - {--name: ftd.text, --caption: b, anchor: window}
  - invoke:
      --name: ftd.column
      align-content: bottom-right
      --children:
        - {--name: ftd.text, --caption: c}
`)
	row := root.Children[0].(*elements.Row)
	a := textAt(t, row.Children[0])
	if a.ChildAlignment == nil || *a.ChildAlignment != (styles.ChildAlignment{AlignSelf: "start", JustifySelf: "flex-start"}) {
		t.Errorf("row child alignment = %+v", a.ChildAlignment)
	}
	if b := textAt(t, row.Children[1]); b.ChildAlignment != nil {
		t.Errorf("anchored child aligned: %+v", b.ChildAlignment)
	}

	col := root.Children[1].(*elements.Column)
	c := textAt(t, col.Children[0])
	if c.ChildAlignment == nil || *c.ChildAlignment != (styles.ChildAlignment{AlignSelf: "end", JustifySelf: "flex-end"}) {
		t.Errorf("column child alignment = %+v", c.ChildAlignment)
	}
}
