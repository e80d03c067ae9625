package elements

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/funvibe/ftdc/internal/styles"
)

func TestSlotsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range StyleSlots {
		if seen[s.Arg] {
			t.Errorf("slot %s listed twice", s.Arg)
		}
		seen[s.Arg] = true
		if s.CSS == "" {
			t.Errorf("slot %s has no CSS property", s.Arg)
		}
	}
}

func TestSlotSetAndGet(t *testing.T) {
	var c Common
	padding, _ := SlotFor("padding")
	if err := padding.Set(&c, styles.Px(10)); err != nil {
		t.Fatal(err)
	}
	if c.Padding == nil || c.Padding.String() != "10px" {
		t.Fatalf("padding = %+v", c.Padding)
	}
	if got := styles.CSS(padding.Get(&c), styles.Target{}); got != "10px" {
		t.Errorf("css = %q", got)
	}

	color, _ := SlotFor("color")
	if err := color.Set(&c, styles.Px(1)); err == nil {
		t.Error("a length was accepted as a color")
	}
	if _, ok := SlotFor("text"); ok {
		t.Error("text is not a common styling slot")
	}
}

func TestDeclarationsAreTotal(t *testing.T) {
	red, _ := styles.NewColor("red", "")
	c := Common{
		Padding:    styles.Px(4),
		Color:      red,
		Background: &styles.Background{Kind: styles.BackgroundSolid, Solid: red},
		Opacity:    styles.DecimalOf(0.5),
	}
	for _, target := range []styles.Target{{}, {Device: styles.Mobile, DarkMode: true}} {
		ds := c.Declarations(target)
		if len(ds) < len(StyleSlots) {
			t.Fatalf("%d declarations for %d slots", len(ds), len(StyleSlots))
		}
		for _, d := range ds {
			if d.Value == "" {
				t.Errorf("%s has an empty value", d.Property)
			}
		}
	}
	joined := styles.JoinDeclarations(c.Declarations(styles.Target{}))
	for _, want := range []string{"padding: 4px", "opacity: 0.5", "background: rgba(255,0,0,1)", "margin: " + styles.IgnoreSentinel} {
		if !strings.Contains(joined, want) {
			t.Errorf("missing %q in %s", want, joined)
		}
	}
}

func TestConditionalResolve(t *testing.T) {
	var c Common
	ca := c.ConditionalFor("color", AttributeStyle)
	ca.ConditionsWithValue = append(ca.ConditionsWithValue, ConditionWithValue{
		Condition: "$dark",
		Value:     ConditionalValue{Value: "rgba(255,0,0,1)"},
	})
	ca.Default = &ConditionalValue{Value: "rgba(0,0,255,1)"}
	if c.ConditionalFor("color", AttributeStyle) != ca {
		t.Fatal("ConditionalFor created a second attribute")
	}

	if got := ca.Resolve(func(int) bool { return true }); got.Value != "rgba(255,0,0,1)" {
		t.Errorf("dark = %s", got.Value)
	}
	if got := ca.Resolve(func(int) bool { return false }); got.Value != "rgba(0,0,255,1)" {
		t.Errorf("light = %s", got.Value)
	}
}

func TestDependencyMapOrder(t *testing.T) {
	m := NewDependencyMap()
	AddDependency(m, "doc#b", "1", &Dependency{Type: DependencyStyle})
	AddDependency(m, "doc#a", "0", &Dependency{Type: DependencyValue})
	AddDependency(m, "doc#b", "1", &Dependency{Type: DependencyVisible})

	if got := len(Lookup(m, "doc#b", "1")); got != 2 {
		t.Fatalf("doc#b on 1: %d dependencies", got)
	}
	if Lookup(m, "doc#c", "0") != nil {
		t.Error("unknown variable has dependencies")
	}
	var keys []string
	for p := m.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	if strings.Join(keys, ",") != "doc#b,doc#a" {
		t.Errorf("insertion order lost: %v", keys)
	}
}

func TestWalkIncludesExternalChildren(t *testing.T) {
	inner := NewText(KindText)
	external := NewText(KindText)
	col := NewColumn()
	col.Children = []Element{inner, NewNull()}
	col.ExternalChildren = &ExternalChildren{Children: []Element{external}}

	var kinds []string
	Walk(col, func(e Element) { kinds = append(kinds, e.ElementKind()) })
	if strings.Join(kinds, ",") != "column,text,null,text" {
		t.Errorf("walk order = %v", kinds)
	}
}

func TestElementJSON(t *testing.T) {
	txt := NewText(KindInteger)
	txt.Text = "42"
	txt.DataID = "0"
	txt.Padding = styles.Px(2)
	row := NewRow()
	row.DataID = "main"
	row.Children = []Element{txt}

	data, err := json.Marshal(row)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{`"element":"row"`, `"element":"integer"`, `"data-id":"0"`, `"text":"42"`, `"padding":{"unit":"px","value":2}`} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %s in %s", want, out)
		}
	}
	if strings.Contains(out, "Traces") {
		t.Errorf("traces leaked into output: %s", out)
	}
}
