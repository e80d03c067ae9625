package typesystem

import (
	"strings"

	"github.com/funvibe/ftdc/internal/diagnostics"
)

const (
	wordCaption  = "caption"
	wordBody     = "body"
	wordOr       = "or"
	wordOptional = "optional"
	wordList     = "list"
	wordConstant = "constant"
	wordChildren = "children"
)

// Annotation is a kind annotation split into its base name and modifiers,
// e.g. "caption or body optional string".
type Annotation struct {
	Base     string
	Caption  bool
	Body     bool
	Optional bool
	List     bool
	Constant bool
	Children bool
}

// ParseAnnotation splits a textual kind annotation. Modifiers may appear in
// any order around a single base token. A missing base defaults to string
// when caption or body is present; otherwise it is an InvalidKind error.
func ParseAnnotation(text, docID string, line int) (*Annotation, error) {
	words := strings.Fields(text)
	a := &Annotation{}
	var base []string

	set := func(flag *bool, word string) error {
		if *flag {
			return diagnostics.ForbiddenUsagef(docID, line, "repeated `%s` in kind `%s`", word, text)
		}
		*flag = true
		return nil
	}

	for i := 0; i < len(words); i++ {
		w := words[i]
		var err error
		switch w {
		case wordCaption:
			if i+2 < len(words) && words[i+1] == wordOr && words[i+2] == wordBody {
				if err = set(&a.Caption, w); err == nil {
					err = set(&a.Body, wordBody)
				}
				i += 2
			} else {
				err = set(&a.Caption, w)
			}
		case wordBody:
			err = set(&a.Body, w)
		case wordOptional:
			err = set(&a.Optional, w)
		case wordList:
			err = set(&a.List, w)
		case wordConstant:
			err = set(&a.Constant, w)
		default:
			base = append(base, w)
		}
		if err != nil {
			return nil, err
		}
	}

	switch len(base) {
	case 0:
		if !a.Caption && !a.Body {
			return nil, diagnostics.InvalidKindf(docID, line, "kind `%s` has no base kind", text)
		}
		a.Base = "string"
	case 1:
		a.Base = base[0]
	default:
		return nil, diagnostics.Parsef(docID, line, "invalid kind `%s`", text)
	}

	if a.Base == wordChildren {
		if a.Caption || a.Body || a.Optional || a.List || a.Constant {
			return nil, diagnostics.Parsef(docID, line, "`children` does not accept modifiers: `%s`", text)
		}
		a.Children = true
	}
	return a, nil
}

// Primitive returns the built-in kind named by base, if any.
func Primitive(base string) (Kind, bool) {
	switch base {
	case "string":
		return String, true
	case "integer":
		return Integer, true
	case "decimal":
		return Decimal, true
	case "boolean":
		return Boolean, true
	case "void":
		return Void, true
	case "object":
		return Object, true
	case "ftd.ui", "ui":
		return UI, true
	case "module":
		return Module, true
	case "kw-args":
		return KwArgs, true
	case wordChildren:
		return ListOf(UI), true
	}
	return nil, false
}

// Apply wraps base with the annotation's modifiers and flags. The order is
// list first, then optional, then constant.
func (a *Annotation) Apply(base Kind) KindData {
	k := base
	if a.List {
		k = ListOf(k)
	}
	if a.Optional {
		k = OptionalOf(k)
	}
	if a.Constant {
		k = ConstantOf(k)
	}
	return KindData{Kind: k, Caption: a.Caption, Body: a.Body}
}
