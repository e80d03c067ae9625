package ast

// Node is a top-level entry of a parsed document.
type Node interface {
	GetLine() int
	// DeclaredName returns the name a definition introduces, or "" for
	// invocations and imports.
	DeclaredName() string
	documentNode()
}

// Import makes another document's definitions available under Alias.
type Import struct {
	Path  string
	Alias string
	Line  int
}

func (i *Import) GetLine() int         { return i.Line }
func (i *Import) DeclaredName() string { return "" }
func (i *Import) documentNode()        {}

// AliasOrDefault returns the alias, defaulting to the last path segment.
func (i *Import) AliasOrDefault() string {
	if i.Alias != "" {
		return i.Alias
	}
	path := i.Path
	for idx := len(path) - 1; idx >= 0; idx-- {
		if path[idx] == '/' {
			return path[idx+1:]
		}
	}
	return path
}

// Field is a record field, a component argument or a function argument.
type Field struct {
	Name    string
	Kind    string // textual kind annotation, e.g. "caption or body string"
	Mutable bool
	Access  string // "", "public" or "private"
	Value   VariableValue
	Line    int
}

// Record declares a record type.
type Record struct {
	Name   string
	Fields []*Field
	Line   int
}

func (r *Record) GetLine() int         { return r.Line }
func (r *Record) DeclaredName() string { return r.Name }
func (r *Record) documentNode()        {}

// OrTypeVariant is one case of an or-type. A variant with Fields is an
// anonymous record; a Constant variant carries a fixed Value.
type OrTypeVariant struct {
	Name     string
	Kind     string
	Constant bool
	Value    VariableValue
	Fields   []*Field
	Line     int
}

// OrType declares a tagged union.
type OrType struct {
	Name     string
	Variants []*OrTypeVariant
	Line     int
}

func (o *OrType) GetLine() int         { return o.Line }
func (o *OrType) DeclaredName() string { return o.Name }
func (o *OrType) documentNode()        {}

// VariableDefinition declares a global variable.
type VariableDefinition struct {
	Name    string
	Kind    string
	Mutable bool
	Value   VariableValue
	Line    int
}

func (v *VariableDefinition) GetLine() int         { return v.Line }
func (v *VariableDefinition) DeclaredName() string { return v.Name }
func (v *VariableDefinition) documentNode()        {}

// ComponentDefinition declares a reusable component.
type ComponentDefinition struct {
	Name       string
	Arguments  []*Field
	Definition *ComponentInvocation
	CSS        string
	Line       int
}

func (c *ComponentDefinition) GetLine() int         { return c.Line }
func (c *ComponentDefinition) DeclaredName() string { return c.Name }
func (c *ComponentDefinition) documentNode()        {}

// FunctionDefinition declares a function whose body is written in the
// expression language.
type FunctionDefinition struct {
	Name       string
	ReturnKind string
	Arguments  []*Field
	Body       string
	Line       int
}

func (f *FunctionDefinition) GetLine() int         { return f.Line }
func (f *FunctionDefinition) DeclaredName() string { return f.Name }
func (f *FunctionDefinition) documentNode()        {}

// Header is a `key: value` line of an invocation or record value.
type Header struct {
	Key       string
	Kind      string // optional kind tag
	Mutable   bool
	Value     VariableValue
	Condition string
	Line      int
}

// Condition is the `if: { ... }` of an invocation.
type Condition struct {
	Expression string
	Line       int
}

// Loop is the `$loop$: <driver> as $alias [counter $ctr]` of an invocation.
type Loop struct {
	Expression string
	Line       int
}

// Event is a `$on-<event>$: <action>` header.
type Event struct {
	Name   string
	Action string
	Line   int
}

// ComponentInvocation instantiates a component.
type ComponentInvocation struct {
	Name        string
	Caption     VariableValue
	Body        VariableValue
	Headers     []*Header
	Subsections []*ComponentInvocation
	Condition   *Condition
	Iteration   *Loop
	Events      []*Event
	Line        int
}

func (c *ComponentInvocation) GetLine() int         { return c.Line }
func (c *ComponentInvocation) DeclaredName() string { return "" }
func (c *ComponentInvocation) documentNode()        {}

// HeadersNamed returns every header whose key (without variant suffix) is name.
func (c *ComponentInvocation) HeadersNamed(name string) []*Header {
	var out []*Header
	for _, h := range c.Headers {
		if HeaderBaseKey(h.Key) == name {
			out = append(out, h)
		}
	}
	return out
}

// HeaderBaseKey strips a `.variant` suffix from a header key.
func HeaderBaseKey(key string) string {
	for i := 0; i < len(key); i++ {
		if key[i] == '.' {
			return key[:i]
		}
	}
	return key
}

// HeaderVariant returns the `.variant` suffix of a header key, or "".
func HeaderVariant(key string) string {
	for i := 0; i < len(key); i++ {
		if key[i] == '.' {
			return key[i+1:]
		}
	}
	return ""
}

// Document is a parsed source file.
type Document struct {
	ID    string
	Nodes []Node
}
