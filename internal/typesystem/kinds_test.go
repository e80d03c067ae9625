package typesystem

import (
	"testing"

	"github.com/funvibe/ftdc/internal/diagnostics"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{String, "string"},
		{ListOf(Integer), "integer list"},
		{OptionalOf(Record("doc#person")), "optional doc#person"},
		{OrTypeVariant("ftd#length", "px"), "ftd#length.px"},
		{ConstantOf(Boolean), "constant boolean"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestIsSameAs(t *testing.T) {
	tests := []struct {
		name string
		a, b Kind
		want bool
	}{
		{"identical", Integer, Integer, true},
		{"optional ignored", OptionalOf(Integer), Integer, true},
		{"constant ignored", ConstantOf(String), OptionalOf(String), true},
		{"different primitives", Integer, Decimal, false},
		{"variant narrowing ignored", OrTypeVariant("ftd#length", "px"), OrType("ftd#length"), true},
		{"different or-types", OrType("ftd#length"), OrType("ftd#align"), false},
		{"records by name", Record("a#r"), Record("b#r"), false},
		{"lists", ListOf(OptionalOf(Integer)), ListOf(Integer), true},
		{"list vs element", ListOf(Integer), Integer, false},
		{"ui", UI, OptionalOf(UI), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSameAs(tt.a, tt.b); got != tt.want {
				t.Errorf("IsSameAs(%s, %s) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestInnerHelpers(t *testing.T) {
	k := OptionalOf(ListOf(String))
	if !Inner(k).Equal(ListOf(String)) {
		t.Errorf("Inner = %s", Inner(k))
	}
	if !RefInner(k).Equal(String) {
		t.Errorf("RefInner = %s", RefInner(k))
	}
	if !InnerList(ListOf(Integer)).Equal(Integer) {
		t.Errorf("InnerList = %s", InnerList(ListOf(Integer)))
	}
	if !IsChildren(ListOf(UI)) || IsChildren(ListOf(String)) {
		t.Error("IsChildren misclassifies")
	}
}

func TestGetKind(t *testing.T) {
	expected := KindData{Kind: OptionalOf(ListOf(String)), Caption: true}

	got := GetKind(&expected, Data(Integer))
	if !got.Kind.Equal(OptionalOf(ListOf(Integer))) || !got.Caption {
		t.Errorf("GetKind = %+v", got)
	}

	got = GetKind(&expected, Data(OrType("ftd#length")))
	if !got.Kind.Equal(expected.Kind) {
		t.Errorf("or-type must keep expected, got %s", got.Kind)
	}

	ui := Data(UI)
	got = GetKind(&ui, Data(Integer))
	if !got.Kind.Equal(UI) {
		t.Errorf("ui must pass through, got %s", got.Kind)
	}

	got = GetKind(nil, Data(Decimal))
	if !got.Kind.Equal(Decimal) {
		t.Errorf("nil expected must return found, got %s", got.Kind)
	}
}

func TestParseAnnotation(t *testing.T) {
	tests := []struct {
		text string
		want Annotation
	}{
		{"string", Annotation{Base: "string"}},
		{"caption", Annotation{Base: "string", Caption: true}},
		{"caption or body", Annotation{Base: "string", Caption: true, Body: true}},
		{"body optional integer", Annotation{Base: "integer", Body: true, Optional: true}},
		{"integer list", Annotation{Base: "integer", List: true}},
		{"constant optional ftd.color", Annotation{Base: "ftd.color", Optional: true, Constant: true}},
		{"children", Annotation{Base: "children", Children: true}},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			a, err := ParseAnnotation(tt.text, "doc", 3)
			if err != nil {
				t.Fatalf("ParseAnnotation: %v", err)
			}
			if *a != tt.want {
				t.Errorf("got %+v, want %+v", *a, tt.want)
			}
		})
	}
}

func TestParseAnnotationErrors(t *testing.T) {
	tests := []struct {
		text string
		kind diagnostics.ErrorKind
	}{
		{"optional", diagnostics.InvalidKind},
		{"", diagnostics.InvalidKind},
		{"children list", diagnostics.ParseError},
		{"optional children", diagnostics.ParseError},
		{"string integer", diagnostics.ParseError},
		{"list integer list", diagnostics.ForbiddenUsage},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			_, err := ParseAnnotation(tt.text, "doc", 7)
			if err == nil {
				t.Fatal("expected error")
			}
			if !diagnostics.Is(err, tt.kind) {
				t.Errorf("got %v, want %s", err, tt.kind)
			}
		})
	}
}

func TestApplyModifiers(t *testing.T) {
	a, err := ParseAnnotation("caption optional integer list", "doc", 1)
	if err != nil {
		t.Fatal(err)
	}
	kd := a.Apply(Integer)
	if !kd.Kind.Equal(OptionalOf(ListOf(Integer))) || !kd.Caption {
		t.Errorf("Apply = %s", kd)
	}
	if kd.String() != "caption optional integer list" {
		t.Errorf("KindData.String() = %q", kd.String())
	}
}
