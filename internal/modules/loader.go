package modules

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/funvibe/ftdc/internal/ast"
	"github.com/funvibe/ftdc/internal/config"
)

// Loader resolves document ids to parsed documents. Documents come from
// registered sources first, then from files under the search directories.
type Loader struct {
	LoadedModules map[string]*Module // by document id
	Sources       map[string][]byte  // in-memory YAML documents by id
	SearchDirs    []string
	Processing    map[string]bool
}

func NewLoader(searchDirs ...string) *Loader {
	return &Loader{
		LoadedModules: make(map[string]*Module),
		Sources:       make(map[string][]byte),
		SearchDirs:    searchDirs,
		Processing:    make(map[string]bool),
	}
}

// Add registers an already parsed document.
func (l *Loader) Add(doc *ast.Document, path string) (*Module, error) {
	if doc.ID == "" {
		return nil, fmt.Errorf("document %s has no id", path)
	}
	if existing, ok := l.LoadedModules[doc.ID]; ok {
		if existing.Path != path {
			return nil, fmt.Errorf("document %s defined twice (%s, %s)", doc.ID, existing.Path, path)
		}
		return existing, nil
	}
	mod := newModule(doc, path)
	l.LoadedModules[doc.ID] = mod
	return mod, nil
}

// AddSource registers YAML source for id without parsing it yet.
func (l *Loader) AddSource(id string, data []byte) {
	l.Sources[id] = data
}

// LoadFile parses a YAML document file. The id defaults to the file name
// without its source extension.
func (l *Loader) LoadFile(path string) (*Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := ast.ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if doc.ID == "" {
		doc.ID = DocumentID(path)
	}
	return l.Add(doc, path)
}

// Get returns an already loaded module.
func (l *Loader) Get(id string) (*Module, bool) {
	mod, ok := l.LoadedModules[id]
	return mod, ok
}

// Load returns the module for id, parsing it from a registered source or a
// search directory on first use.
func (l *Loader) Load(id string) (*Module, error) {
	if mod, ok := l.LoadedModules[id]; ok {
		return mod, nil
	}
	if l.Processing[id] {
		return nil, fmt.Errorf("circular dependency detected loading document: %s", id)
	}
	l.Processing[id] = true
	defer delete(l.Processing, id)

	if data, ok := l.Sources[id]; ok {
		doc, err := ast.ParseYAML(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", id, err)
		}
		if doc.ID == "" {
			doc.ID = id
		}
		if doc.ID != id {
			return nil, fmt.Errorf("source registered as %s declares id %s", id, doc.ID)
		}
		return l.Add(doc, "source:"+id)
	}

	for _, dir := range l.SearchDirs {
		for _, ext := range config.SourceFileExtensions {
			path := filepath.Join(dir, filepath.FromSlash(id)+ext)
			if _, err := os.Stat(path); err != nil {
				continue
			}
			doc, err := l.parseFile(path)
			if err != nil {
				return nil, err
			}
			if doc.ID == "" {
				doc.ID = id
			}
			return l.Add(doc, path)
		}
	}
	return nil, fmt.Errorf("document %s not found", id)
}

func (l *Loader) parseFile(path string) (*ast.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := ast.ParseYAML(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// IDs returns the ids of loaded modules, sorted.
func (l *Loader) IDs() []string {
	ids := make([]string, 0, len(l.LoadedModules))
	for id := range l.LoadedModules {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DocumentID derives a document id from a file path.
func DocumentID(path string) string {
	base := filepath.ToSlash(path)
	for _, ext := range config.SourceFileExtensions {
		if strings.HasSuffix(base, ext) {
			base = strings.TrimSuffix(base, ext)
			break
		}
	}
	if i := strings.LastIndex(base, "/"); i >= 0 {
		base = base[i+1:]
	}
	return base
}
