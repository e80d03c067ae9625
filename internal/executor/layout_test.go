package executor

import (
	"testing"

	"github.com/funvibe/ftdc/internal/elements"
	"github.com/funvibe/ftdc/internal/styles"
)

func headingColumn(t *testing.T, level string) *elements.Column {
	t.Helper()
	region, err := styles.NewEnum("ftd#region", level)
	if err != nil {
		t.Fatalf("region %s: %v", level, err)
	}
	c := elements.NewColumn()
	c.Region = region
	return c
}

func plain(s string) *elements.Text {
	t := elements.NewText(elements.KindText)
	t.Text = s
	return t
}

func TestRenest(t *testing.T) {
	h1 := headingColumn(t, "h1")
	h2 := headingColumn(t, "h2")
	h1b := headingColumn(t, "h1")
	intro, p1, p2, p3 := plain("intro"), plain("p1"), plain("p2"), plain("p3")

	out := Renest([]elements.Element{intro, h1, p1, h2, p2, h1b, p3})

	if len(out) != 3 || out[0] != elements.Element(intro) || out[1] != elements.Element(h1) || out[2] != elements.Element(h1b) {
		t.Fatalf("top level = %+v", out)
	}
	if len(h1.Children) != 2 || h1.Children[0] != elements.Element(p1) || h1.Children[1] != elements.Element(h2) {
		t.Errorf("h1 children = %+v", h1.Children)
	}
	if len(h2.Children) != 1 || h2.Children[0] != elements.Element(p2) {
		t.Errorf("h2 children = %+v", h2.Children)
	}
	if len(h1b.Children) != 1 || h1b.Children[0] != elements.Element(p3) {
		t.Errorf("second h1 children = %+v", h1b.Children)
	}
}

func TestRenestIsIdempotent(t *testing.T) {
	h2 := headingColumn(t, "h2")
	h3 := headingColumn(t, "h3")
	h1 := headingColumn(t, "h1")
	list := []elements.Element{h2, plain("a"), h3, plain("b"), h1, plain("c")}

	once := Renest(list)
	counts := func(els []elements.Element) []int {
		var out []int
		for _, e := range els {
			n := 0
			elements.Walk(e, func(elements.Element) { n++ })
			out = append(out, n)
		}
		return out
	}
	before := counts(once)
	twice := Renest(once)
	after := counts(twice)

	if len(twice) != len(once) {
		t.Fatalf("second pass changed the top level: %d -> %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] || before[i] != after[i] {
			t.Errorf("element %d changed on the second pass", i)
		}
	}
}

func TestAssignIDs(t *testing.T) {
	root := elements.NewColumn()
	row := elements.NewRow()
	dummy := plain("")
	dummy.IsDummy = true
	row.Children = []elements.Element{plain("a"), dummy}

	inner := elements.NewColumn()
	appendAt := "slot"
	inner.AppendAt = &appendAt
	passed := plain("passed")
	inner.ExternalChildren = &elements.ExternalChildren{ID: "slot", AppendAt: "slot", Children: []elements.Element{passed}}

	root.Children = []elements.Element{row, elements.NewNull(), inner}
	AssignIDs(root)
	AssignIDs(root)

	tests := []struct {
		name string
		el   elements.Element
		want string
	}{
		{"root", root, "main"},
		{"row", row, "0"},
		{"row child", row.Children[0], "0,0"},
		{"dummy", dummy, "0,1:dummy"},
		{"inner", inner, "2"},
		{"external", passed, "2,0:slot-external:2"},
	}
	for _, tt := range tests {
		if got := tt.el.GetCommon().DataID; got != tt.want {
			t.Errorf("%s data-id = %q, want %q", tt.name, got, tt.want)
		}
	}

	seen := map[string]bool{}
	elements.Walk(root, func(e elements.Element) {
		c := e.GetCommon()
		if c == nil {
			return
		}
		if seen[c.DataID] {
			t.Errorf("duplicate data-id %q", c.DataID)
		}
		seen[c.DataID] = true
	})
}
