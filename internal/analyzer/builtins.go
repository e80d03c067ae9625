package analyzer

import (
	_ "embed"

	"github.com/funvibe/ftdc/internal/ast"
	"github.com/funvibe/ftdc/internal/config"
	"github.com/funvibe/ftdc/internal/typesystem"
)

//go:embed kernel.ftd.yaml
var kernelSource []byte

// KernelSource returns the YAML source of the built-in ftd document.
func KernelSource() []byte {
	return kernelSource
}

// commonArguments are accepted by every kernel component in addition to its
// own arguments. Kinds are written as they would be inside the ftd document.
var commonArguments = []struct {
	name, kind string
}{
	{"id", "optional string"},
	{"padding", "optional length"},
	{"padding-left", "optional length"},
	{"padding-right", "optional length"},
	{"padding-top", "optional length"},
	{"padding-bottom", "optional length"},
	{"padding-horizontal", "optional length"},
	{"padding-vertical", "optional length"},
	{"margin", "optional length"},
	{"margin-left", "optional length"},
	{"margin-right", "optional length"},
	{"margin-top", "optional length"},
	{"margin-bottom", "optional length"},
	{"margin-horizontal", "optional length"},
	{"margin-vertical", "optional length"},
	{"border-width", "optional length"},
	{"border-left-width", "optional length"},
	{"border-right-width", "optional length"},
	{"border-top-width", "optional length"},
	{"border-bottom-width", "optional length"},
	{"border-radius", "optional length"},
	{"border-top-left-radius", "optional length"},
	{"border-top-right-radius", "optional length"},
	{"border-bottom-left-radius", "optional length"},
	{"border-bottom-right-radius", "optional length"},
	{"border-color", "optional color"},
	{"border-left-color", "optional color"},
	{"border-right-color", "optional color"},
	{"border-top-color", "optional color"},
	{"border-bottom-color", "optional color"},
	{"border-style", "optional border-style"},
	{"border-style-left", "optional border-style"},
	{"border-style-right", "optional border-style"},
	{"border-style-top", "optional border-style"},
	{"border-style-bottom", "optional border-style"},
	{"border-style-horizontal", "optional border-style"},
	{"border-style-vertical", "optional border-style"},
	{"width", "optional resizing"},
	{"height", "optional resizing"},
	{"min-width", "optional resizing"},
	{"max-width", "optional resizing"},
	{"min-height", "optional resizing"},
	{"max-height", "optional resizing"},
	{"link", "optional string"},
	{"open-in-new-tab", "optional boolean"},
	{"background", "optional background"},
	{"color", "optional color"},
	{"role", "optional responsive-type"},
	{"align-self", "optional align-self"},
	{"overflow", "optional overflow"},
	{"overflow-x", "optional overflow"},
	{"overflow-y", "optional overflow"},
	{"opacity", "optional decimal"},
	{"resize", "optional resize"},
	{"white-space", "optional white-space"},
	{"text-transform", "optional text-transform"},
	{"sticky", "optional boolean"},
	{"shadow", "optional shadow"},
	{"z-index", "optional integer"},
	{"left", "optional length"},
	{"right", "optional length"},
	{"top", "optional length"},
	{"bottom", "optional length"},
	{"anchor", "optional anchor"},
	{"region", "optional region"},
	{"cursor", "optional cursor"},
	{"classes", "string list"},
	{"css", "string list"},
	{"js", "string list"},
}

// withCommonArguments returns the declared arguments of a kernel component
// followed by the common arguments it does not declare itself.
func withCommonArguments(declared []*ast.Field, line int) []*ast.Field {
	out := make([]*ast.Field, 0, len(declared)+len(commonArguments))
	out = append(out, declared...)
	seen := make(map[string]bool, len(declared))
	for _, f := range declared {
		seen[f.Name] = true
	}
	for _, c := range commonArguments {
		if seen[c.name] {
			continue
		}
		out = append(out, &ast.Field{Name: c.name, Kind: c.kind, Line: line})
	}
	return out
}

// builtinFunction describes a function of the expression language that
// needs no definition.
type builtinFunction struct {
	name   string
	result typesystem.Kind
	// action builtins may only be used as event actions.
	action bool
}

var builtinFunctions = map[string]builtinFunction{
	config.LenFuncName:              {name: config.LenFuncName, result: typesystem.Integer},
	config.IsEmptyFuncName:          {name: config.IsEmptyFuncName, result: typesystem.Boolean},
	config.EnableDarkModeFuncName:   {name: config.EnableDarkModeFuncName, result: typesystem.Void, action: true},
	config.EnableLightModeFuncName:  {name: config.EnableLightModeFuncName, result: typesystem.Void, action: true},
	config.EnableSystemModeFuncName: {name: config.EnableSystemModeFuncName, result: typesystem.Void, action: true},
}

// lookupBuiltin accepts both `len` and `ftd.len`.
func lookupBuiltin(name string) (builtinFunction, bool) {
	if len(name) > len(config.KernelDocument)+1 && name[:len(config.KernelDocument)+1] == config.KernelDocument+"." {
		name = name[len(config.KernelDocument)+1:]
	}
	b, ok := builtinFunctions[name]
	return b, ok
}
