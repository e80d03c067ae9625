package styles

import "fmt"

// Alignment is a value of ftd#align: a position in a 3x3 grid.
type Alignment string

const (
	TopLeft      Alignment = "top-left"
	TopCenter    Alignment = "top-center"
	TopRight     Alignment = "top-right"
	Left         Alignment = "left"
	Center       Alignment = "center"
	Right        Alignment = "right"
	BottomLeft   Alignment = "bottom-left"
	BottomCenter Alignment = "bottom-center"
	BottomRight  Alignment = "bottom-right"
)

var alignments = []Alignment{TopLeft, TopCenter, TopRight, Left, Center, Right, BottomLeft, BottomCenter, BottomRight}

func ParseAlignment(variant string) (Alignment, error) {
	for _, a := range alignments {
		if string(a) == variant {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown alignment `%s`", variant)
}

// column is 0, 1 or 2 from left to right.
func (a Alignment) column() int {
	switch a {
	case TopLeft, Left, BottomLeft:
		return 0
	case TopCenter, Center, BottomCenter:
		return 1
	}
	return 2
}

// row is 0, 1 or 2 from top to bottom.
func (a Alignment) row() int {
	switch a {
	case TopLeft, TopCenter, TopRight:
		return 0
	case Left, Center, Right:
		return 1
	}
	return 2
}

var positions = [3]string{"start", "center", "end"}

// JustifyContent is the CSS justify-content of a container laid out
// horizontally (a row) or vertically (a column).
func (a Alignment) JustifyContent(horizontal bool) string {
	if horizontal {
		return positions[a.column()]
	}
	return positions[a.row()]
}

// AlignItems is the cross-axis counterpart of JustifyContent.
func (a Alignment) AlignItems(horizontal bool) string {
	if horizontal {
		return positions[a.row()]
	}
	return positions[a.column()]
}

// ChildAlignment places one child inside a container with alignment a.
type ChildAlignment struct {
	AlignSelf   string `json:"align-self"`
	JustifySelf string `json:"justify-self"`
}

// ChildAlignment translates the container alignment into self-alignment
// of a child. Rows align children vertically with align-self; columns
// align them horizontally.
func (a Alignment) ChildAlignment(horizontal bool) ChildAlignment {
	flex := [3]string{"flex-start", "center", "flex-end"}
	if horizontal {
		return ChildAlignment{AlignSelf: positions[a.row()], JustifySelf: flex[a.column()]}
	}
	return ChildAlignment{AlignSelf: positions[a.column()], JustifySelf: flex[a.row()]}
}

func (c *ChildAlignment) Declarations() []Declaration {
	return []Declaration{{"align-self", c.AlignSelf}, {"justify-self", c.JustifySelf}}
}

func (a Alignment) ToCSSString(t Target) string {
	return string(a)
}
