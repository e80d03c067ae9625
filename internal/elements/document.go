package elements

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Meta is filled from an ftd#document root.
type Meta struct {
	Title       *string `json:"title,omitempty" yaml:"title,omitempty"`
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
	OGImage     *string `json:"og-image,omitempty" yaml:"og-image,omitempty"`
	ThemeColor  *string `json:"theme-color,omitempty" yaml:"theme-color,omitempty"`
	Breakpoint  *int64  `json:"breakpoint,omitempty" yaml:"breakpoint,omitempty"`
}

// Document is the compiled form of one root document.
type Document struct {
	ID           string                              `json:"id" yaml:"id"`
	Root         Element                             `json:"root" yaml:"root"`
	Meta         Meta                                `json:"meta" yaml:"meta"`
	Dependencies *DependencyMap                      `json:"dependencies" yaml:"dependencies"`
	Constants    *orderedmap.OrderedMap[string, any] `json:"constants" yaml:"constants"`
	UsedModules  []string                            `json:"used-modules" yaml:"used-modules"`
	Fingerprint  string                              `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
}

// NewDocument returns an empty document for id.
func NewDocument(id string) *Document {
	return &Document{
		ID:           id,
		Dependencies: NewDependencyMap(),
		Constants:    orderedmap.New[string, any](),
	}
}
