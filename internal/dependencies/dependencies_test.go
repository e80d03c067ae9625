package dependencies

import (
	"testing"

	"github.com/funvibe/ftdc/internal/analyzer"
	"github.com/funvibe/ftdc/internal/config"
	"github.com/funvibe/ftdc/internal/elements"
	"github.com/funvibe/ftdc/internal/executor"
	"github.com/funvibe/ftdc/internal/modules"
	"github.com/funvibe/ftdc/internal/pipeline"
)

func compile(t *testing.T, src string) *elements.Document {
	t.Helper()
	loader := modules.NewLoader()
	loader.AddSource("index", []byte(src))
	ctx := pipeline.NewPipelineContext(nil, loader, "index", nil)
	ctx = pipeline.New(
		&analyzer.SemanticAnalyzerProcessor{},
		&executor.ExecutorProcessor{},
		&DependencyProcessor{},
	).Run(ctx)
	if ctx.Failed() {
		t.Fatalf("compile: %v", ctx.Errors[0])
	}
	return ctx.Document
}

func single(t *testing.T, m *elements.DependencyMap, variable, node string) *elements.Dependency {
	t.Helper()
	deps := elements.Lookup(m, variable, node)
	if len(deps) == 0 {
		t.Fatalf("no dependency of %s on %s", node, variable)
	}
	return deps[0]
}

func TestStyleDependency(t *testing.T) {
	doc := compile(t, `
id: index
ast:
  - variable: {name: v, kind: integer, value: 10}
  - invoke:
      --name: ftd.text
      --caption: hello
      padding: $v
`)
	d := single(t, doc.Dependencies, "index#v", "0")
	if d.Type != elements.DependencyStyle {
		t.Errorf("type = %q", d.Type)
	}
	p, ok := d.Parameters.Get("padding")
	if !ok {
		t.Fatal("no padding parameter")
	}
	if p.Value.Value != "10px" {
		t.Errorf("padding value = %q", p.Value.Value)
	}
}

func TestConditionalStyleDependency(t *testing.T) {
	doc := compile(t, `
id: index
ast:
  - variable: {name: dark, kind: boolean, value: false}
  - invoke:
      --name: ftd.text
      --caption: hi
      "color if { $dark }": red
      color: blue
`)
	var found *elements.Dependency
	for _, d := range elements.Lookup(doc.Dependencies, "index#dark", "0") {
		if d.Type == elements.DependencyStyle && d.Condition == true {
			found = d
		}
	}
	if found == nil {
		t.Fatal("no conditional style dependency on index#dark")
	}
	p, ok := found.Parameters.Get("color")
	if !ok {
		t.Fatal("no color parameter")
	}
	if p.Value.Value != "rgba(255,0,0,1)" {
		t.Errorf("value = %q", p.Value.Value)
	}
	if p.Default == nil || p.Default.Value != "rgba(0,0,255,1)" {
		t.Errorf("default = %+v", p.Default)
	}
}

func TestValueDependencyInLoop(t *testing.T) {
	doc := compile(t, `
id: index
ast:
  - variable: {name: $names, kind: string list, value: [a, b]}
  - invoke:
      --name: ftd.column
      --children:
        - {--name: ftd.text, --caption: $n, "$loop$": "$names as $n"}
`)
	for i, node := range []string{"0,0", "0,1"} {
		d := single(t, doc.Dependencies, "index#names", node)
		if d.Type != elements.DependencyValue {
			t.Errorf("%s type = %q", node, d.Type)
		}
		if d.Remaining == nil || *d.Remaining != []string{"0", "1"}[i] {
			t.Errorf("%s remaining = %v", node, d.Remaining)
		}
	}
}

func TestVariableDependencies(t *testing.T) {
	doc := compile(t, `
id: index
ast:
  - variable: {name: $base, kind: integer, value: 1}
  - variable: {name: derived, kind: integer, value: $base}
  - variable: {name: accent, kind: ftd.color, value: red}
  - invoke: {--name: ftd.text, --caption: x}
`)
	d := single(t, doc.Dependencies, "index#base", "index#derived")
	if d.Type != elements.DependencyVariable {
		t.Errorf("type = %q", d.Type)
	}

	dark := single(t, doc.Dependencies, config.DarkModeVariable, "index#accent")
	if dark.Type != elements.DependencyVariable {
		t.Errorf("dark-mode type = %q", dark.Type)
	}
	p, ok := dark.Parameters.Get("value")
	if !ok || p.Value.Value != "rgba(255,0,0,1)" || p.Default == nil || p.Default.Value != "rgba(255,0,0,1)" {
		t.Errorf("dark-mode parameter = %+v", p)
	}
}

func TestTypeVariableDependsOnDevice(t *testing.T) {
	doc := compile(t, `
id: index
ast:
  - variable: {name: heading, kind: ftd.type, value: {weight: 700}}
  - invoke: {--name: ftd.text, --caption: x}
`)
	deps := elements.Lookup(doc.Dependencies, config.DeviceVariable, "index#heading")
	want := []string{"mobile", "xl", "desktop"}
	if len(deps) != len(want) {
		t.Fatalf("dependencies = %+v", deps)
	}
	for i, d := range deps {
		if d.Type != elements.DependencyVariable {
			t.Errorf("%d type = %q", i, d.Type)
		}
		if d.Condition != want[i] {
			t.Errorf("%d condition = %v, want %s", i, d.Condition, want[i])
		}
	}
}

func TestCollectSkipsNodesWithoutID(t *testing.T) {
	text := elements.NewText(elements.KindText)
	text.Traces = []*elements.Trace{{Variable: "doc#x", Type: elements.DependencyValue}}
	m := elements.NewDependencyMap()
	Collect(text, m)
	if m.Len() != 0 {
		t.Fatalf("collected %d variables from a node without data-id", m.Len())
	}

	text.DataID = "3"
	Collect(text, m)
	if deps := elements.Lookup(m, "doc#x", "3"); len(deps) != 1 || deps[0].Type != elements.DependencyValue {
		t.Errorf("dependencies = %+v", deps)
	}
}
