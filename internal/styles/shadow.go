package styles

import "strings"

// Shadow is a value of ftd#shadow.
type Shadow struct {
	X      Length `json:"x-offset"`
	Y      Length `json:"y-offset"`
	Blur   Length `json:"blur"`
	Spread Length `json:"spread"`
	Color  Color  `json:"color"`
	Inset  bool   `json:"inset,omitempty"`
}

func (s *Shadow) ToCSSString(t Target) string {
	parts := make([]string, 0, 6)
	if s.Inset {
		parts = append(parts, "inset")
	}
	parts = append(parts,
		s.Color.ToCSSString(t),
		s.X.ToCSSString(t),
		s.Y.ToCSSString(t),
		s.Blur.ToCSSString(t),
		s.Spread.ToCSSString(t),
	)
	return strings.Join(parts, " ")
}
