package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseConfig_Defaults(t *testing.T) {
	opts, err := ParseConfig([]byte("root: index\n"), "ftdc.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Root != "index" {
		t.Errorf("root = %q, want index", opts.Root)
	}
	if opts.Device != "desktop" {
		t.Errorf("device = %q, want desktop", opts.Device)
	}
	if opts.Locale != "en" {
		t.Errorf("locale = %q, want en", opts.Locale)
	}
	if opts.Breakpoint != 768 {
		t.Errorf("breakpoint = %d, want 768", opts.Breakpoint)
	}
	if opts.Output != "json" {
		t.Errorf("output = %q, want json", opts.Output)
	}
	if opts.IsMobile() {
		t.Error("expected desktop device")
	}
}

func TestParseConfig_Full(t *testing.T) {
	yaml := `
root: index
documents:
  - index.ftd.yaml
  - lib.ftd.yaml
device: mobile
dark-mode: true
locale: de
breakpoint: 600
output: tree
`
	opts, err := ParseConfig([]byte(yaml), filepath.Join("project", "ftdc.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !opts.IsMobile() {
		t.Error("expected mobile device")
	}
	if !opts.DarkMode {
		t.Error("expected dark-mode")
	}
	if opts.LanguageTag().String() != "de" {
		t.Errorf("locale = %s, want de", opts.LanguageTag())
	}
	paths := opts.DocumentPaths()
	if len(paths) != 2 || paths[0] != filepath.Join("project", "index.ftd.yaml") {
		t.Errorf("document paths = %v", paths)
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"bad device", "device: tablet\n", "device must be desktop or mobile"},
		{"bad output", "output: html\n", "output must be json, yaml or tree"},
		{"bad locale", "locale: \"!!\"\n", "invalid locale"},
		{"negative breakpoint", "breakpoint: -1\n", "breakpoint must not be negative"},
		{"duplicate document", "documents: [a.ftd.yaml, a.ftd.yaml]\n", "listed twice"},
		{"malformed", "root: [\n", "parsing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml), "ftdc.yaml")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.want)
			}
		})
	}
}

func TestFindConfig(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	cfgPath := filepath.Join(root, "ftdc.yaml")
	if err := os.WriteFile(cfgPath, []byte("root: index\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	found, err := FindConfig(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != cfgPath {
		t.Errorf("found %q, want %q", found, cfgPath)
	}

	opts, err := LoadConfig(found)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if opts.Root != "index" {
		t.Errorf("root = %q", opts.Root)
	}
}
