package modules

import (
	"os"
	"path/filepath"
	"testing"
)

const libSource = `
id: lib
ast:
  - variable: {name: greeting, kind: string, value: hello}
`

const indexSource = `
id: index
ast:
  - import: {path: lib, alias: l}
  - invoke: {--name: ftd.text, --caption: $l.greeting}
`

func TestLoadFromSources(t *testing.T) {
	l := NewLoader()
	l.AddSource("lib", []byte(libSource))
	l.AddSource("index", []byte(indexSource))

	index, err := l.Load("index")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, ok := index.ResolveAlias("l"); !ok || got != "lib" {
		t.Errorf("alias l = %q", got)
	}
	if len(index.Invocations()) != 1 || len(index.Definitions()) != 0 {
		t.Errorf("unexpected node split")
	}

	lib, err := l.Load("lib")
	if err != nil {
		t.Fatalf("Load lib: %v", err)
	}
	if len(lib.Definitions()) != 1 {
		t.Errorf("lib definitions = %d", len(lib.Definitions()))
	}
	if ids := l.IDs(); len(ids) != 2 || ids[0] != "index" {
		t.Errorf("ids = %v", ids)
	}
}

func TestLoadFromSearchDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "lib.ftd.yaml"), []byte(libSource), 0o644); err != nil {
		t.Fatal(err)
	}
	l := NewLoader(dir)
	mod, err := l.Load("lib")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if mod.Path != filepath.Join(dir, "lib.ftd.yaml") {
		t.Errorf("path = %s", mod.Path)
	}
	if _, err := l.Load("missing"); err == nil {
		t.Error("expected error for a missing document")
	}
}

func TestMismatchedSourceID(t *testing.T) {
	l := NewLoader()
	l.AddSource("other", []byte(libSource))
	if _, err := l.Load("other"); err == nil {
		t.Error("expected id mismatch error")
	}
}

func TestDocumentID(t *testing.T) {
	tests := map[string]string{
		"docs/index.ftd.yaml": "index",
		"lib.ftd.yml":         "lib",
		"plain":               "plain",
	}
	for path, want := range tests {
		if got := DocumentID(path); got != want {
			t.Errorf("DocumentID(%q) = %q, want %q", path, got, want)
		}
	}
}
