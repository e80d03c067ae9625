package symbols

import (
	"testing"

	"github.com/funvibe/ftdc/internal/typesystem"
)

func TestFindWithRemaining(t *testing.T) {
	st := NewSymbolTable()
	st.Define(&Record{Name: "doc#person"})
	st.Define(&Variable{Name: "doc#owner", Kind: typesystem.Data(typesystem.Record("doc#person"))})

	tests := []struct {
		name      string
		wantThing string
		remaining string
		found     bool
	}{
		{"doc#owner", "doc#owner", "", true},
		{"doc#owner.name", "doc#owner", "name", true},
		{"doc#owner.address.city", "doc#owner", "address.city", true},
		{"doc#missing.x", "", "", false},
		{"other#owner", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			thing, remaining, ok := st.FindWithRemaining(tt.name)
			if ok != tt.found {
				t.Fatalf("found = %v, want %v", ok, tt.found)
			}
			if !ok {
				return
			}
			if thing.ThingName() != tt.wantThing || remaining != tt.remaining {
				t.Errorf("got (%s, %q), want (%s, %q)", thing.ThingName(), remaining, tt.wantThing, tt.remaining)
			}
		})
	}
}

func TestPendingDefinitions(t *testing.T) {
	st := NewSymbolTable()
	st.DefinePending(&ComponentDefinition{Name: "doc#card"})
	if !st.IsPending("doc#card") {
		t.Fatal("expected placeholder to be pending")
	}
	st.Define(&ComponentDefinition{Name: "doc#card", Line: 4})
	if st.IsPending("doc#card") {
		t.Error("definition must clear the pending flag")
	}
	if names := st.Names(); len(names) != 1 {
		t.Errorf("names = %v", names)
	}
	thing, _ := st.Find("doc#card")
	if thing.GetLine() != 4 {
		t.Errorf("placeholder was not replaced")
	}
}

func TestState(t *testing.T) {
	done := Done(42)
	if done.IsContinue() || done.Value != 42 {
		t.Errorf("done = %+v", done)
	}
	blocked := Continue[int]("lib#x")
	if !blocked.IsContinue() || blocked.Missing != "lib#x" {
		t.Errorf("blocked = %+v", blocked)
	}
	forwarded := Forward[string](blocked)
	if !forwarded.IsContinue() || forwarded.Missing != "lib#x" {
		t.Errorf("forwarded = %+v", forwarded)
	}
}

func TestInterner(t *testing.T) {
	in := NewInterner()
	first := in.Intern("doc#a", &IntegerValue{Value: 1})
	in.Intern("doc#a", &IntegerValue{Value: 2})
	in.Intern("doc#b", &StringValue{Text: "x"})

	if first.(*IntegerValue).Value != 1 {
		t.Error("first value must be kept")
	}
	v, _ := in.Lookup("doc#a")
	if v.(*IntegerValue).Value != 1 {
		t.Errorf("lookup = %v", v)
	}
	var order []string
	in.Each(func(name string, _ Value) { order = append(order, name) })
	if len(order) != 2 || order[0] != "doc#a" || order[1] != "doc#b" {
		t.Errorf("order = %v", order)
	}
}

func TestIsStatic(t *testing.T) {
	fields := NewFields()
	fields.Set("name", NewLiteral(&StringValue{Text: "Bob"}, 1))
	static := &RecordValue{Name: "doc#person", Fields: fields}
	if !IsStatic(static) {
		t.Error("literal record must be static")
	}

	list := &ListValue{Elem: typesystem.Integer, Data: []PropertyValue{
		NewLiteral(&IntegerValue{Value: 1}, 1),
		&Reference{Name: "doc#x", Source: Global},
	}}
	if IsStatic(list) {
		t.Error("list with a reference must not be static")
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		v    Value
		want string
		ok   bool
	}{
		{&StringValue{Text: "hi"}, "hi", true},
		{&IntegerValue{Value: -3}, "-3", true},
		{&DecimalValue{Value: 1.5}, "1.5", true},
		{&BooleanValue{Value: true}, "true", true},
		{&OptionalValue{Elem: typesystem.String}, "", false},
		{&OptionalValue{Data: &IntegerValue{Value: 7}, Elem: typesystem.Integer}, "7", true},
	}
	for _, tt := range tests {
		got, ok := Text(tt.v)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Text(%T) = (%q, %v), want (%q, %v)", tt.v, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSplitQualified(t *testing.T) {
	doc, thing, rest := SplitQualified("ftd#length.px")
	if doc != "ftd" || thing != "length" || rest != "px" {
		t.Errorf("got %q %q %q", doc, thing, rest)
	}
	if Qualify("doc", "x") != "doc#x" || Qualify("doc", "lib#x") != "lib#x" {
		t.Error("Qualify mismatch")
	}
}
