package analyzer

import (
	"strings"

	"github.com/funvibe/ftdc/internal/config"
	"github.com/funvibe/ftdc/internal/diagnostics"
	"github.com/funvibe/ftdc/internal/symbols"
	"github.com/funvibe/ftdc/internal/typesystem"
)

// resolved is what a reference name points at.
type resolved struct {
	Name    string // canonical name: "doc#var.path", "doc#comp.arg.path" or "alias.path"
	Source  symbols.Source
	Kind    typesystem.KindData
	Mutable bool
	// Argument is the local argument for Local sources.
	Argument *symbols.Argument
	// Member is the unconsumed path after a module-valued binding.
	Member string
}

// resolveReference resolves a reference name (without sigil) through the
// loop, local argument and global scopes, in that order.
func (a *Analyzer) resolveReference(name string, sc *scope, line int) (symbols.State[*resolved], error) {
	if r, ok := specialReference(name, sc); ok {
		return symbols.Done(r), nil
	}
	if r, ok, err := a.resolveLoop(name, sc, line); ok || err != nil {
		return symbols.Done(r), err
	}
	if r, ok, err := a.resolveLocal(name, sc, line); ok || err != nil {
		if err == nil && r.Member != "" {
			return a.resolveModuleMember(r, sc, line)
		}
		return symbols.Done(r), err
	}
	if strings.HasPrefix(name, config.InheritedPrefix+".") {
		return a.resolveInherited(name, sc, line)
	}
	return a.resolveGlobal(name, sc, line)
}

func specialReference(name string, sc *scope) (*resolved, bool) {
	if !sc.inEvent {
		return nil, false
	}
	switch name {
	case config.SpecialValue, config.FTDSpecialValue:
		return &resolved{Name: config.FTDSpecialValue, Source: symbols.Global, Kind: typesystem.Data(typesystem.String)}, true
	case config.SpecialChecked, config.FTDSpecialChecked:
		return &resolved{Name: config.FTDSpecialChecked, Source: symbols.Global, Kind: typesystem.Data(typesystem.Boolean)}, true
	}
	return nil, false
}

func (a *Analyzer) resolveLoop(name string, sc *scope, line int) (*resolved, bool, error) {
	for l := sc.loop; l != nil; l = l.parent {
		if name == config.LoopCounter && l == sc.loop || name == l.counter && l.counter != "" {
			return &resolved{
				Name:   config.LoopCounter,
				Source: symbols.LoopSource(l.alias),
				Kind:   typesystem.Data(typesystem.Integer),
			}, true, nil
		}
		if name != l.alias && !strings.HasPrefix(name, l.alias+".") {
			continue
		}
		kind, member, err := a.walkFields(l.kind, strings.TrimPrefix(strings.TrimPrefix(name, l.alias), "."), sc.docID(), line)
		if err != nil {
			return nil, false, err
		}
		return &resolved{
			Name:    name,
			Source:  symbols.LoopSource(l.alias),
			Kind:    kind,
			Mutable: l.mutable,
			Member:  member,
		}, true, nil
	}
	return nil, false, nil
}

// resolveLocal matches `<definition>.<arg>[.path]`, with the definition
// written short or qualified, or a bare `<arg>[.path]`.
func (a *Analyzer) resolveLocal(name string, sc *scope, line int) (*resolved, bool, error) {
	if sc.definition == "" {
		return nil, false, nil
	}
	_, short, _ := symbols.SplitQualified(sc.definition)
	rest := name
	explicit := false
	for _, prefix := range []string{sc.definition + ".", short + "."} {
		if strings.HasPrefix(name, prefix) {
			rest = name[len(prefix):]
			explicit = true
			break
		}
	}
	argName, path := cutPath(rest)
	arg, ok := symbols.FindArgument(sc.arguments, argName)
	if !ok {
		if explicit {
			return nil, false, diagnostics.Parsef(sc.docID(), line, "`%s` has no argument `%s`", sc.definition, argName)
		}
		return nil, false, nil
	}
	kind, member, err := a.walkFields(arg.Kind, path, sc.docID(), line)
	if err != nil {
		return nil, false, err
	}
	canonical := sc.definition + "." + argName
	if path != "" {
		canonical += "." + path
	}
	return &resolved{
		Name:     canonical,
		Source:   symbols.Local(sc.definition),
		Kind:     kind,
		Mutable:  arg.Mutable,
		Argument: arg,
		Member:   member,
	}, true, nil
}

// resolveModuleMember types `<module arg>.<member>` by looking the member
// up in the argument's default module.
func (a *Analyzer) resolveModuleMember(r *resolved, sc *scope, line int) (symbols.State[*resolved], error) {
	module, err := defaultModule(r.Argument, sc.docID(), line)
	if err != nil {
		return symbols.State[*resolved]{}, err
	}
	st, err := a.Search(module+config.ThingSeparator+r.Member, sc.docID(), line)
	if err != nil || st.IsContinue() {
		return symbols.Forward[*resolved](st), err
	}
	v, ok := st.Value.Thing.(*symbols.Variable)
	if !ok {
		return symbols.State[*resolved]{}, diagnostics.Parsef(sc.docID(), line, "`%s` is not a variable of module `%s`", r.Member, module)
	}
	kind, _, err := a.walkFields(v.Kind, st.Value.Remaining, sc.docID(), line)
	if err != nil {
		return symbols.State[*resolved]{}, err
	}
	out := *r
	out.Kind = kind
	out.Mutable = v.Mutable
	return symbols.Done(&out), nil
}

// defaultModule returns the document id a module argument defaults to.
func defaultModule(arg *symbols.Argument, docID string, line int) (string, error) {
	if arg != nil {
		if l, ok := arg.Value.(*symbols.Literal); ok {
			if m, ok := symbols.Unwrap(l.Value).(*symbols.ModuleValue); ok {
				return m.Name, nil
			}
		}
	}
	return "", diagnostics.Parsef(docID, line, "module argument has no default module")
}

func (a *Analyzer) resolveInherited(name string, sc *scope, line int) (symbols.State[*resolved], error) {
	rest := strings.TrimPrefix(name, config.InheritedPrefix+".")
	frame, path := cutPath(rest)
	var variable string
	switch frame {
	case config.InheritedColors:
		variable = config.DefaultColorsVariable
	case config.InheritedTypes:
		variable = config.DefaultTypesVariable
	default:
		return symbols.State[*resolved]{}, diagnostics.Parsef(sc.docID(), line, "unknown inherited value `%s`", name)
	}
	st, err := a.Search(variable, sc.docID(), line)
	if err != nil || st.IsContinue() {
		return symbols.Forward[*resolved](st), err
	}
	v := st.Value.Thing.(*symbols.Variable)
	kind, _, err := a.walkFields(v.Kind, path, sc.docID(), line)
	if err != nil {
		return symbols.State[*resolved]{}, err
	}
	return symbols.Done(&resolved{Name: name, Source: symbols.Global, Kind: kind}), nil
}

func (a *Analyzer) resolveGlobal(name string, sc *scope, line int) (symbols.State[*resolved], error) {
	qualified := qualify(sc.doc, name)
	st, err := a.Search(qualified, sc.docID(), line)
	if err != nil || st.IsContinue() {
		return symbols.Forward[*resolved](st), err
	}
	v, ok := st.Value.Thing.(*symbols.Variable)
	if !ok {
		return symbols.State[*resolved]{}, diagnostics.Parsef(sc.docID(), line, "`%s` is not a variable", name)
	}
	kind, member, err := a.walkFields(v.Kind, st.Value.Remaining, sc.docID(), line)
	if err != nil {
		return symbols.State[*resolved]{}, err
	}
	if member != "" {
		return symbols.State[*resolved]{}, diagnostics.Parsef(sc.docID(), line, "module members of global `%s` cannot be referenced", name)
	}
	return symbols.Done(&resolved{
		Name:    qualified,
		Source:  symbols.Global,
		Kind:    kind,
		Mutable: v.Mutable,
	}), nil
}

// checkMutable rejects a mutable slot bound to an immutable target.
func checkMutable(r *resolved, mutable bool, docID string, line int) error {
	if mutable && !r.Mutable {
		return diagnostics.Parsef(docID, line, "cannot have mutable reference of immutable variable `%s`", r.Name)
	}
	return nil
}
