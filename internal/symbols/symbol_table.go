// symbols/symbol_table.go - Main symbol table entry point
//
// The package is split into focused files:
// - symbol_table_core.go: SymbolTable, definition, lookup with remaining path
// - values.go: fully evaluated values
// - property_values.go: unreduced values attached to slots (literal, reference, clone, call)
// - component.go: arguments, properties, component invocations, loops, events, conditions
// - things.go: top-level definitions (records, or-types, variables, functions, components)
// - state.go: the Continue/Thing suspension state returned by lookups
// - interner.go: interned constants

package symbols
