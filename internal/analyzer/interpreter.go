package analyzer

import (
	"slices"

	"github.com/funvibe/ftdc/internal/ast"
	"github.com/funvibe/ftdc/internal/config"
	"github.com/funvibe/ftdc/internal/diagnostics"
	"github.com/funvibe/ftdc/internal/modules"
	"github.com/funvibe/ftdc/internal/symbols"
)

// task is a unit of work on the driver stack: a definition, keyed by its
// qualified name, or a top-level invocation of the root document.
type task struct {
	key  string
	mod  *modules.Module
	node ast.Node
}

// Interpret analyzes the kernel document and then every entry of the root
// document in declaration order. Whenever an entry needs a definition that
// is not analyzed yet, the entry is suspended, the definition is analyzed
// (loading its document first if needed) and the entry is retried.
func (a *Analyzer) Interpret(rootID string) (*Result, error) {
	if _, ok := a.loader.Sources[config.KernelDocument]; !ok {
		a.loader.AddSource(config.KernelDocument, kernelSource)
	}
	kernel, err := a.load(config.KernelDocument, rootID, 0)
	if err != nil {
		return nil, err
	}
	if _, err := a.processModule(kernel, false); err != nil {
		return nil, err
	}

	root, err := a.load(rootID, rootID, 0)
	if err != nil {
		return nil, err
	}
	instructions, err := a.processModule(root, true)
	if err != nil {
		return nil, err
	}
	root.Analyzed = true

	return &Result{
		Root:         rootID,
		Instructions: instructions,
		Symbols:      a.symbols,
		Constants:    a.constants,
		UsedModules:  append([]string(nil), a.used...),
	}, nil
}

// processModule analyzes the definitions of mod and, when invoke is set,
// its top-level invocations, returning those in order.
func (a *Analyzer) processModule(mod *modules.Module, invoke bool) ([]*symbols.Component, error) {
	mod.Analyzing = true
	defer func() { mod.Analyzing = false }()

	seen := make(map[string]int)
	var out []*symbols.Component
	for _, node := range mod.Document.Nodes {
		switch n := node.(type) {
		case *ast.Import:
			if _, err := a.load(n.Path, mod.ID, n.Line); err != nil {
				return nil, err
			}
		case *ast.ComponentInvocation:
			if !invoke {
				continue
			}
			c, err := a.run(task{mod: mod, node: n})
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		default:
			name := node.DeclaredName()
			if first, ok := seen[name]; ok {
				return nil, diagnostics.Parsef(mod.ID, node.GetLine(), "`%s` is already defined on line %d", name, first)
			}
			seen[name] = node.GetLine()
			key := mod.ID + config.ThingSeparator + name
			if a.processed[key] {
				continue
			}
			if _, err := a.run(task{key: key, mod: mod, node: node}); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// run drives root to completion. Suspended tasks stay on the stack below
// the definitions they wait for; a definition already on the stack means
// the definitions depend on each other.
func (a *Analyzer) run(root task) (*symbols.Component, error) {
	stack := []task{root}
	active := map[string]bool{}
	if root.key != "" {
		active[root.key] = true
	}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		c, missing, err := a.step(t)
		if err != nil {
			return nil, err
		}
		if missing == "" {
			stack = stack[:len(stack)-1]
			if t.key != "" {
				delete(active, t.key)
				a.processed[t.key] = true
			}
			if len(stack) == 0 {
				return c, nil
			}
			continue
		}

		a.logger.Printf("%s:%d waits for %s", t.mod.ID, t.node.GetLine(), missing)
		next, err := a.resolveMissing(missing, t)
		if err != nil {
			return nil, err
		}
		if next == nil {
			continue
		}
		if active[next.key] {
			return nil, diagnostics.Parsef(t.mod.ID, t.node.GetLine(), "cyclic definition: `%s` depends on itself", next.key)
		}
		active[next.key] = true
		stack = append(stack, *next)
	}
	return nil, nil
}

func (a *Analyzer) step(t task) (*symbols.Component, string, error) {
	sc := topLevel(t.mod)
	if inv, ok := t.node.(*ast.ComponentInvocation); ok {
		st, err := a.component(inv, sc)
		if err != nil {
			return nil, "", err
		}
		if st.IsContinue() {
			return nil, st.Missing, nil
		}
		return st.Value, "", nil
	}
	st, err := a.declare(t.node, sc)
	if err != nil {
		return nil, "", err
	}
	if st.IsContinue() {
		return nil, st.Missing, nil
	}
	return nil, "", nil
}

// resolveMissing makes missing ("doc#name" or "doc#") available. It returns
// the task that defines it, or nil when loading the document was enough.
func (a *Analyzer) resolveMissing(missing string, waiting task) (*task, error) {
	docID, name, _ := symbols.SplitQualified(missing)
	mod, err := a.load(docID, waiting.mod.ID, waiting.node.GetLine())
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, nil
	}
	key := docID + config.ThingSeparator + name
	if a.processed[key] {
		return nil, diagnostics.Otherf(waiting.mod.ID, waiting.node.GetLine(), "`%s` was analyzed but is still reported missing", key)
	}
	node := declaration(mod, name)
	if node == nil {
		return nil, nil
	}
	return &task{key: key, mod: mod, node: node}, nil
}

// load returns the module id, loading it on first use. from and line
// locate the entry that needed it, for error reporting.
func (a *Analyzer) load(id, from string, line int) (*modules.Module, error) {
	mod, ok := a.loader.Get(id)
	if !ok {
		var err error
		if mod, err = a.loader.Load(id); err != nil {
			return nil, diagnostics.NotFoundf(from, line, "cannot load document `%s`: %v", id, err)
		}
		a.logger.Printf("loaded document %s from %s", mod.ID, mod.Path)
	}
	if !slices.Contains(a.used, mod.ID) {
		a.used = append(a.used, mod.ID)
	}
	return mod, nil
}
