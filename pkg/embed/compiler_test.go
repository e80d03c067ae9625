package ftdc_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/funvibe/ftdc/internal/elements"
	"github.com/funvibe/ftdc/internal/styles"
	ftdc "github.com/funvibe/ftdc/pkg/embed"
)

func compile(t *testing.T, src string) *ftdc.Document {
	t.Helper()
	c := ftdc.New(nil)
	c.AddSource("index", []byte(src))
	doc, err := c.Compile("index")
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	return doc
}

func compileErr(t *testing.T, src string) error {
	t.Helper()
	c := ftdc.New(nil)
	c.AddSource("index", []byte(src))
	doc, err := c.Compile("index")
	if err == nil {
		t.Fatalf("expected an error, got document %s", doc.ID)
	}
	return err
}

const lengthDoc = `
id: index
ast:
  - variable: {name: v, kind: integer, value: 10}
  - invoke:
      --name: ftd.text
      --caption: hello
      padding: $v
`

func TestLengthFromVariable(t *testing.T) {
	doc := compile(t, lengthDoc)
	text, ok := elements.Children(doc.Root)[0].(*elements.Text)
	if !ok {
		t.Fatalf("expected a text, got %T", elements.Children(doc.Root)[0])
	}
	if text.Padding == nil || text.Padding.ToCSSString(styles.Target{}) != "10px" {
		t.Errorf("padding = %+v", text.Padding)
	}
	deps := elements.Lookup(doc.Dependencies, "index#v", "0")
	if len(deps) == 0 || deps[0].Type != elements.DependencyStyle {
		t.Fatalf("dependencies = %+v", deps)
	}
	if p, ok := deps[0].Parameters.Get("padding"); !ok || p.Value.Value != "10px" {
		t.Errorf("padding parameter = %+v", p)
	}
}

func TestLoopTree(t *testing.T) {
	doc := compile(t, `
id: index
ast:
  - variable: {name: xs, kind: integer list, value: [1, 2, 3]}
  - invoke:
      --name: ftd.column
      --children:
        - {--name: ftd.integer, --caption: $x, "$loop$": "$xs as $x"}
`)
	out, err := ftdc.Marshal(doc, "tree")
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	expected := "column [main]\n" +
		"  column [0]\n" +
		"    integer [0,0] \"1\"\n" +
		"    integer [0,1] \"2\"\n" +
		"    integer [0,2] \"3\"\n"
	if string(out) != expected {
		t.Errorf("tree =\n%s\nwant\n%s", out, expected)
	}
}

func TestOrTypeConstant(t *testing.T) {
	doc := compile(t, `
id: index
ast:
  - or-type:
      name: status
      variants:
        - {name: ok, kind: integer, constant: true, value: 1}
  - variable: {name: s, kind: status, value: status.ok}
  - invoke: {--name: ftd.text, --caption: x}
`)
	v, ok := doc.Constants.Get("index#s")
	if !ok {
		t.Fatalf("index#s is not a constant: %v", doc.Constants)
	}
	om, ok := v.(*orderedmap.OrderedMap[string, any])
	if !ok {
		t.Fatalf("constant = %T", v)
	}
	if payload, _ := om.Get("value"); payload != int64(1) {
		t.Errorf("payload = %v", payload)
	}
}

func TestConditionalColorDependency(t *testing.T) {
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
	var found bool
	for _, d := range elements.Lookup(doc.Dependencies, "index#dark", "0") {
		if d.Type != elements.DependencyStyle || d.Condition != true {
			continue
		}
		p, ok := d.Parameters.Get("color")
		if !ok {
			continue
		}
		found = true
		if p.Value.Value != "rgba(255,0,0,1)" || p.Default == nil || p.Default.Value != "rgba(0,0,255,1)" {
			t.Errorf("color parameter = %+v", p)
		}
	}
	if !found {
		t.Error("no conditional color dependency on index#dark")
	}
}

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "caption and body",
			src: `
id: index
ast:
  - invoke: {--name: ftd.text, --caption: a, --body: b}
`,
			want: "ForbiddenUsage",
		},
		{
			name: "private argument",
			src: `
id: index
ast:
  - component:
      name: counter
      arguments:
        - {name: x, kind: integer, access: private, value: 1}
      definition: {--name: ftd.integer, --caption: $counter.x}
  - invoke: {--name: counter, x: 5}
`,
			want: "InvalidAccess",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := compileErr(t, tt.src)
			if got := ftdc.ErrorKind(err); got != tt.want {
				t.Errorf("ErrorKind = %q, want %q (%v)", got, tt.want, err)
			}
			if !strings.Contains(err.Error(), "compiling index") {
				t.Errorf("error %q does not name the document", err)
			}
		})
	}
}

func TestCompileIsDeterministic(t *testing.T) {
	a := compile(t, lengthDoc)
	b := compile(t, lengthDoc)
	if a.Fingerprint == "" || a.Fingerprint != b.Fingerprint {
		t.Errorf("fingerprints differ: %q, %q", a.Fingerprint, b.Fingerprint)
	}
	ja, err := ftdc.Marshal(a, "json")
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	jb, err := ftdc.Marshal(b, "json")
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(ja, jb) {
		t.Error("json output differs between runs")
	}

	other := compile(t, strings.Replace(lengthDoc, "value: 10", "value: 12", 1))
	if other.Fingerprint == a.Fingerprint {
		t.Error("different documents share a fingerprint")
	}
}

func TestMarshalFormats(t *testing.T) {
	doc := compile(t, lengthDoc)
	js, err := ftdc.Marshal(doc, "json")
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	for _, want := range []string{`"id": "index"`, `"data-id": "main"`, `"index#v"`} {
		if !bytes.Contains(js, []byte(want)) {
			t.Errorf("json output lacks %s", want)
		}
	}
	ym, err := ftdc.Marshal(doc, "yaml")
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !bytes.Contains(ym, []byte("id: index")) {
		t.Errorf("yaml output lacks the document id:\n%s", ym)
	}
	if _, err := ftdc.Marshal(doc, "xml"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestAddFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.ftd.yaml")
	src := strings.Replace(lengthDoc, "id: index\n", "", 1)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	c := ftdc.New(nil)
	id, err := c.AddFile(path)
	if err != nil {
		t.Fatalf("AddFile: %v", err)
	}
	if id != "page" {
		t.Fatalf("id = %q", id)
	}
	doc, err := c.Compile(id)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if len(elements.Lookup(doc.Dependencies, "page#v", "0")) == 0 {
		t.Error("no dependency on page#v")
	}
}
