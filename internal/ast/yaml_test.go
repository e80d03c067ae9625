package ast

import (
	"testing"
)

const sampleDocument = `
id: index
ast:
  - import: {path: lib/colors, alias: c}
  - record:
      name: person
      fields:
        - {name: name, kind: caption string}
        - {name: age, kind: integer, value: 18}
  - or-type:
      name: status
      variants:
        - {name: ok, kind: integer, constant: true, value: 1}
        - {name: custom, kind: string}
  - variable: {name: $count, kind: integer, value: 0}
  - variable: {name: names, kind: string list, value: [a, b]}
  - function: {name: add, return-kind: integer, arguments: [{name: a, kind: integer}], body: "$a + 1"}
  - component:
      name: card
      arguments:
        - {name: title, kind: caption string}
        - {name: secret, kind: integer, access: private, value: 1}
      definition:
        --name: ftd.column
        --children:
          - {--name: ftd.text, --caption: $card.title}
  - invoke:
      --name: card
      --caption: Hello
      padding.px: 10
      "color if { $dark }": red
      "$on-click$": "$add(a = 1)"
      if: "{ $count > 0 }"
      "$loop$": "$names as $n"
      owner: {name: Bob}
      note: null
`

func TestParseYAMLDocument(t *testing.T) {
	doc, err := ParseYAML([]byte(sampleDocument))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if doc.ID != "index" {
		t.Errorf("id = %q", doc.ID)
	}
	if len(doc.Nodes) != 8 {
		t.Fatalf("expected 8 nodes, got %d", len(doc.Nodes))
	}

	imp, ok := doc.Nodes[0].(*Import)
	if !ok || imp.Path != "lib/colors" || imp.AliasOrDefault() != "c" {
		t.Errorf("import = %+v", doc.Nodes[0])
	}

	rec := doc.Nodes[1].(*Record)
	if rec.Name != "person" || len(rec.Fields) != 2 || rec.Fields[0].Kind != "caption string" {
		t.Errorf("record = %+v", rec)
	}
	if s, ok := rec.Fields[1].Value.(*StringValue); !ok || s.Value != "18" {
		t.Errorf("default age = %+v", rec.Fields[1].Value)
	}

	ot := doc.Nodes[2].(*OrType)
	if len(ot.Variants) != 2 || !ot.Variants[0].Constant {
		t.Errorf("or-type = %+v", ot)
	}

	v := doc.Nodes[3].(*VariableDefinition)
	if v.Name != "count" || !v.Mutable {
		t.Errorf("variable = %+v", v)
	}
	list, ok := doc.Nodes[4].(*VariableDefinition).Value.(*ListValue)
	if !ok || len(list.Values) != 2 {
		t.Errorf("list variable = %+v", doc.Nodes[4])
	}

	cd := doc.Nodes[6].(*ComponentDefinition)
	if cd.Arguments[1].Access != "private" {
		t.Errorf("access = %q", cd.Arguments[1].Access)
	}
	if cd.Definition.Name != "ftd.column" || len(cd.Definition.Subsections) != 1 {
		t.Errorf("definition = %+v", cd.Definition)
	}

	inv := doc.Nodes[7].(*ComponentInvocation)
	if inv.Name != "card" {
		t.Errorf("name = %q", inv.Name)
	}
	if c, ok := inv.Caption.(*StringValue); !ok || c.Value != "Hello" || c.Source != SourceCaption {
		t.Errorf("caption = %+v", inv.Caption)
	}
	if inv.Condition == nil || inv.Condition.Expression != "{ $count > 0 }" {
		t.Errorf("condition = %+v", inv.Condition)
	}
	if inv.Iteration == nil || inv.Iteration.Expression != "$names as $n" {
		t.Errorf("iteration = %+v", inv.Iteration)
	}
	if len(inv.Events) != 1 || inv.Events[0].Name != "click" {
		t.Errorf("events = %+v", inv.Events)
	}

	if len(inv.Headers) != 4 {
		t.Fatalf("expected 4 headers, got %d", len(inv.Headers))
	}
	if HeaderBaseKey(inv.Headers[0].Key) != "padding" || HeaderVariant(inv.Headers[0].Key) != "px" {
		t.Errorf("padding header key = %q", inv.Headers[0].Key)
	}
	if inv.Headers[1].Key != "color" || inv.Headers[1].Condition != "{ $dark }" {
		t.Errorf("conditional header = %+v", inv.Headers[1])
	}
	if _, ok := inv.Headers[2].Value.(*RecordValue); !ok {
		t.Errorf("record header = %+v", inv.Headers[2].Value)
	}
	if !IsNull(inv.Headers[3].Value) {
		t.Errorf("null header = %+v", inv.Headers[3].Value)
	}
}

func TestParseYAMLErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unknown entry", "ast: [{widget: {}}]"},
		{"invocation without name", "ast: [{invoke: {padding: 1}}]"},
		{"bad structural key", "ast: [{invoke: {--name: x, --what: 1}}]"},
		{"fields not a list", "ast: [{record: {name: r, fields: 1}}]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseYAML([]byte(tt.input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestEventKeys(t *testing.T) {
	if !IsEventKey("$on-global-key[ctrl-s]$") {
		t.Error("expected event key")
	}
	if EventName("$on-mouse-enter$") != "mouse-enter" {
		t.Errorf("event name = %q", EventName("$on-mouse-enter$"))
	}
	if IsEventKey("$loop$") {
		t.Error("$loop$ is not an event")
	}
}
