package prettyprinter

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/funvibe/ftdc/internal/elements"
)

// --- Tree Printer (Output shows the executed element tree) ---

// TreePrinter renders an element tree one node per line, children
// indented by two spaces under their parent.
type TreePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewTreePrinter() *TreePrinter {
	return &TreePrinter{}
}

// PrintTree returns the indented rendering of root.
func PrintTree(root elements.Element) string {
	p := NewTreePrinter()
	p.Print(root)
	return p.String()
}

func (p *TreePrinter) String() string {
	return p.buf.String()
}

func (p *TreePrinter) Print(e elements.Element) {
	p.writeIndent()
	p.buf.WriteString(describe(e))
	p.buf.WriteString("\n")

	p.indent++
	defer func() { p.indent-- }()
	for _, child := range elements.Children(e) {
		p.Print(child)
	}
	parent, ok := e.(elements.Parent)
	if !ok || parent.GetContainer().ExternalChildren == nil {
		return
	}
	ext := parent.GetContainer().ExternalChildren
	p.writeIndent()
	p.buf.WriteString("external " + ext.ID + " @" + ext.AppendAt + "\n")
	p.indent++
	for _, child := range ext.Children {
		p.Print(child)
	}
	p.indent--
}

func (p *TreePrinter) writeIndent() {
	p.buf.WriteString(strings.Repeat("  ", p.indent))
}

func describe(e elements.Element) string {
	if elements.IsNull(e) {
		return elements.KindNull
	}
	parts := []string{e.ElementKind()}
	c := e.GetCommon()
	if c.DataID != "" {
		parts = append(parts, "["+c.DataID+"]")
	}
	if c.ID != nil {
		parts = append(parts, "#"+*c.ID)
	}
	switch el := e.(type) {
	case *elements.Text:
		parts = append(parts, strconv.Quote(el.Text))
	case *elements.Markup:
		parts = append(parts, strconv.Quote(el.Text))
	case *elements.Code:
		parts = append(parts, el.Lang)
	case *elements.IFrame:
		if el.Src != nil {
			parts = append(parts, *el.Src)
		}
	}
	if c.Condition != nil {
		parts = append(parts, "if "+c.Condition.Expression)
	}
	if c.IsDummy {
		parts = append(parts, "(dummy)")
	}
	return strings.Join(parts, " ")
}
