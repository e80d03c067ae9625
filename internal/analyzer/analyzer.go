package analyzer

import (
	"io"
	"log"
	"strings"

	"github.com/funvibe/ftdc/internal/ast"
	"github.com/funvibe/ftdc/internal/config"
	"github.com/funvibe/ftdc/internal/diagnostics"
	"github.com/funvibe/ftdc/internal/modules"
	"github.com/funvibe/ftdc/internal/symbols"
	"github.com/funvibe/ftdc/internal/typesystem"
)

// Analyzer turns loaded documents into definitions in a shared symbol table
// and analyzes the top-level invocations of a root document.
type Analyzer struct {
	loader    *modules.Loader
	symbols   *symbols.SymbolTable
	constants *symbols.Interner
	logger    *log.Logger

	processed map[string]bool // qualified names of finished definitions
	used      []string        // module ids in load order
}

// Result is everything the executor needs from analysis.
type Result struct {
	Root         string
	Instructions []*symbols.Component
	Symbols      *symbols.SymbolTable
	Constants    *symbols.Interner
	UsedModules  []string
}

// New creates an analyzer reading documents from loader. A nil logger
// disables logging.
func New(loader *modules.Loader, logger *log.Logger) *Analyzer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Analyzer{
		loader:    loader,
		symbols:   symbols.NewSymbolTable(),
		constants: symbols.NewInterner(),
		logger:    logger,
		processed: make(map[string]bool),
	}
}

func (a *Analyzer) Symbols() *symbols.SymbolTable { return a.symbols }

// scope is the resolution context of whatever is being analyzed: the
// document, the enclosing definition and its arguments, and active loops.
type scope struct {
	doc        *modules.Module
	definition string
	arguments  []*symbols.Argument
	loop       *loopScope
	inEvent    bool
}

type loopScope struct {
	alias   string
	counter string
	kind    typesystem.KindData
	mutable bool
	parent  *loopScope
}

func topLevel(doc *modules.Module) *scope {
	return &scope{doc: doc}
}

func (s *scope) docID() string { return s.doc.ID }

// within returns a scope for the body of definition.
func (s *scope) within(definition string, args []*symbols.Argument) *scope {
	return &scope{doc: s.doc, definition: definition, arguments: args}
}

// withLoop returns a scope where alias is bound to elements of kind.
func (s *scope) withLoop(alias, counter string, kind typesystem.KindData, mutable bool) *scope {
	next := *s
	next.loop = &loopScope{alias: alias, counter: counter, kind: kind, mutable: mutable, parent: s.loop}
	return &next
}

func (s *scope) forEvent() *scope {
	next := *s
	next.inEvent = true
	return &next
}

// qualify turns a name as written in doc into "doc#name", resolving
// import aliases and the implicit ftd alias.
func qualify(doc *modules.Module, name string) string {
	if i := strings.Index(name, config.ThingSeparator); i >= 0 {
		if id, ok := doc.ResolveAlias(name[:i]); ok {
			return id + name[i:]
		}
		return name
	}
	if head, rest, ok := strings.Cut(name, config.VariantSeparator); ok {
		if head == config.KernelDocument {
			return config.KernelDocument + config.ThingSeparator + rest
		}
		if id, ok := doc.ResolveAlias(head); ok {
			return id + config.ThingSeparator + rest
		}
	}
	return doc.ID + config.ThingSeparator + name
}

// found is a symbol table hit plus the unconsumed part of the name.
type found struct {
	Thing     symbols.Thing
	Remaining string
}

// Search looks up a qualified name. It returns a Continue state when the
// name belongs to a document that is not loaded yet, or that declares the
// name but has not had it analyzed.
func (a *Analyzer) Search(name string, docID string, line int) (symbols.State[found], error) {
	if t, remaining, ok := a.symbols.FindWithRemaining(name); ok {
		return symbols.Done(found{Thing: t, Remaining: remaining}), nil
	}
	owner, thing, _ := symbols.SplitQualified(name)
	missing := owner + config.ThingSeparator + thing
	mod, ok := a.loader.Get(owner)
	if !ok {
		return symbols.Continue[found](missing), nil
	}
	if declaration(mod, thing) != nil && !a.processed[missing] {
		return symbols.Continue[found](missing), nil
	}
	return symbols.State[found]{}, diagnostics.Parsef(docID, line, "unknown name `%s`", name)
}

// declaration returns the node of mod that declares name.
func declaration(mod *modules.Module, name string) ast.Node {
	for _, node := range mod.Document.Nodes {
		if node.DeclaredName() == name {
			return node
		}
	}
	return nil
}
