package evaluator

import (
	"testing"

	"github.com/funvibe/ftdc/internal/config"
	"github.com/funvibe/ftdc/internal/diagnostics"
	"github.com/funvibe/ftdc/internal/parser"
	"github.com/funvibe/ftdc/internal/styles"
	"github.com/funvibe/ftdc/internal/symbols"
	"github.com/funvibe/ftdc/internal/typesystem"
)

func lit(v symbols.Value) *symbols.Literal { return symbols.NewLiteral(v, 1) }

func str(s string) *symbols.StringValue     { return &symbols.StringValue{Text: s} }
func integer(n int64) *symbols.IntegerValue { return &symbols.IntegerValue{Value: n} }

func global(name string, k typesystem.Kind) *symbols.Reference {
	return &symbols.Reference{Name: name, KindData: typesystem.Data(k), Source: symbols.Global, Line: 1}
}

func condition(t *testing.T, src string, refs map[string]symbols.PropertyValue) *symbols.Expression {
	t.Helper()
	node, err := parser.ParseExpression(src, 1)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	expr := symbols.NewExpression(node, src, 1)
	for k, v := range refs {
		expr.References.Set(k, v)
	}
	return expr
}

// testTable defines a person record, an immutable owner, a mutable
// counter and a list of names.
func testTable() *symbols.SymbolTable {
	st := symbols.NewSymbolTable()
	st.Define(&symbols.Record{Name: "doc#person", Fields: []*symbols.Argument{
		{Name: "name", Kind: typesystem.Data(typesystem.String)},
		{Name: "age", Kind: typesystem.Data(typesystem.Integer)},
	}})
	fields := symbols.NewFields()
	fields.Set("name", lit(str("Ada")))
	fields.Set("age", lit(integer(36)))
	st.Define(&symbols.Variable{
		Name:  "doc#owner",
		Kind:  typesystem.Data(typesystem.Record("doc#person")),
		Value: lit(&symbols.RecordValue{Name: "doc#person", Fields: fields}),
	})
	st.Define(&symbols.Variable{
		Name:    "doc#count",
		Kind:    typesystem.Data(typesystem.Integer),
		Mutable: true,
		Value:   &symbols.Literal{Value: integer(3), Mutable: true},
	})
	st.Define(&symbols.Variable{
		Name: "doc#names",
		Kind: typesystem.Data(typesystem.ListOf(typesystem.String)),
		Value: lit(&symbols.ListValue{Elem: typesystem.String, Data: []symbols.PropertyValue{
			lit(str("a")), lit(str("b")),
		}}),
	})
	st.Define(&symbols.Variable{
		Name:  "doc#alias",
		Kind:  typesystem.Data(typesystem.String),
		Value: global("doc#owner.name", typesystem.String),
	})
	return st
}

func TestResolveGlobalPaths(t *testing.T) {
	e := New(testTable(), styles.Target{}, "doc", nil)
	tests := []struct {
		name string
		want string
	}{
		{"doc#owner.name", "Ada"},
		{"doc#owner.age", "36"},
		{"doc#names.1", "b"},
		{"doc#alias", "Ada"},
		{"doc#count", "3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := e.Resolve(global(tt.name, typesystem.String), NewEnv())
			if err != nil {
				t.Fatal(err)
			}
			if got, _ := symbols.Text(v); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	_, err := e.Resolve(global("doc#owner.email", typesystem.String), NewEnv())
	if !diagnostics.Is(err, diagnostics.NotFound) {
		t.Errorf("missing field: %v", err)
	}
	_, err = e.Resolve(global("doc#names.7", typesystem.String), NewEnv())
	if !diagnostics.Is(err, diagnostics.NotFound) {
		t.Errorf("out of range: %v", err)
	}
}

func TestTargetVariables(t *testing.T) {
	e := New(testTable(), styles.Target{Device: styles.Mobile, DarkMode: true}, "doc", nil)
	dark, err := e.Resolve(global(config.DarkModeVariable, typesystem.Boolean), NewEnv())
	if err != nil || !Truthy(dark) {
		t.Errorf("dark mode = %v, %v", dark, err)
	}

	device, err := e.Resolve(global(config.DeviceVariable, typesystem.OrType(config.DeviceDataOrType)), NewEnv())
	if err != nil {
		t.Fatal(err)
	}
	if !Equal(device, str("mobile")) {
		t.Errorf("device = %+v", device)
	}
	desktop, _ := e.Resolve(global(config.DeviceVariable, typesystem.OrType(config.DeviceDataOrType)), NewEnv().WithDevice(styles.Desktop))
	if !Equal(desktop, str("desktop")) {
		t.Errorf("device wrapper ignored: %+v", desktop)
	}
}

func TestBindingSelection(t *testing.T) {
	st := testTable()
	st.Define(&symbols.Variable{Name: "doc#flag", Kind: typesystem.Data(typesystem.Boolean), Mutable: true, Value: lit(&symbols.BooleanValue{Value: true})})
	e := New(st, styles.Target{}, "doc", nil)

	arg := &symbols.Argument{Name: "title", Kind: typesystem.Data(typesystem.String), Value: lit(str("default"))}
	caller := NewEnv()
	body := caller.Enclosed("doc#card")

	onFlag := condition(t, "$flag", map[string]symbols.PropertyValue{"$flag": global("doc#flag", typesystem.Boolean)})
	offFlag := condition(t, "!$flag", map[string]symbols.PropertyValue{"$flag": global("doc#flag", typesystem.Boolean)})

	tests := []struct {
		name  string
		props []*symbols.Property
		want  string
	}{
		{"default", nil, "default"},
		{"unconditional", []*symbols.Property{{Value: lit(str("plain"))}}, "plain"},
		{"condition holds", []*symbols.Property{{Value: lit(str("plain"))}, {Value: lit(str("flagged")), Condition: onFlag}}, "flagged"},
		{"condition fails", []*symbols.Property{{Value: lit(str("plain"))}, {Value: lit(str("off")), Condition: offFlag}}, "plain"},
		{"first true wins", []*symbols.Property{{Value: lit(str("one")), Condition: onFlag}, {Value: lit(str("two")), Condition: onFlag}}, "one"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Binding{Argument: arg, Properties: tt.props, Caller: caller, Default: arg.Value, Self: body}
			v, err := e.BindingValue(b)
			if err != nil {
				t.Fatal(err)
			}
			if got, _ := symbols.Text(v); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
			branches := e.Branches(b)
			if len(branches) == 0 || branches[len(branches)-1].Condition != nil {
				t.Errorf("last branch must be unconditional: %+v", branches)
			}
		})
	}

	_, err := e.BindingValue(&Binding{Argument: &symbols.Argument{Name: "x", Kind: typesystem.Data(typesystem.Integer)}})
	if !diagnostics.Is(err, diagnostics.MissingData) {
		t.Errorf("unbound required argument: %v", err)
	}
	v, err := e.BindingValue(&Binding{Argument: &symbols.Argument{Name: "xs", Kind: typesystem.Data(typesystem.ListOf(typesystem.Integer))}})
	if err != nil || Truthy(v) {
		t.Errorf("unbound list = %v, %v", v, err)
	}
}

func TestLocalAndLoopReferences(t *testing.T) {
	e := New(testTable(), styles.Target{}, "doc", nil)
	root := NewEnv()
	body := root.Enclosed("doc#card")
	body.Bind("who", &Binding{
		Argument:   &symbols.Argument{Name: "who", Kind: typesystem.Data(typesystem.Record("doc#person"))},
		Properties: []*symbols.Property{{Value: global("doc#owner", typesystem.Record("doc#person"))}},
		Caller:     root,
		Self:       body,
	})

	local := &symbols.Reference{Name: "doc#card.who.name", Source: symbols.Local("doc#card"), KindData: typesystem.Data(typesystem.String)}
	v, err := e.Resolve(local, body)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := symbols.Text(v); got != "Ada" {
		t.Errorf("local = %q", got)
	}
	uses := e.Trace(local, body)
	if len(uses) != 1 || uses[0].Path() != "doc#owner.name" {
		t.Errorf("local trace = %+v", uses)
	}

	driver := global("doc#names", typesystem.ListOf(typesystem.String))
	loop := body.WithLoop("n", driver, body, str("b"), 1)
	item := &symbols.Reference{Name: "n", Source: symbols.LoopSource("n"), KindData: typesystem.Data(typesystem.String)}
	v, _ = e.Resolve(item, loop)
	if got, _ := symbols.Text(v); got != "b" {
		t.Errorf("loop item = %q", got)
	}
	counter := &symbols.Reference{Name: config.LoopCounter, Source: symbols.LoopSource("n"), KindData: typesystem.Data(typesystem.Integer)}
	v, _ = e.Resolve(counter, loop)
	if got, _ := symbols.Text(v); got != "1" {
		t.Errorf("loop counter = %q", got)
	}
	uses = e.Trace(item, loop)
	if len(uses) != 1 || uses[0].Variable != "doc#names" || uses[0].Remaining != "1" {
		t.Errorf("loop trace = %+v", uses)
	}
}

func TestConditions(t *testing.T) {
	e := New(testTable(), styles.Target{}, "doc", nil)
	refs := map[string]symbols.PropertyValue{
		"$count": global("doc#count", typesystem.Integer),
		"$names": global("doc#names", typesystem.ListOf(typesystem.String)),
		"$owner": global("doc#owner", typesystem.Record("doc#person")),
	}
	tests := []struct {
		src  string
		want bool
	}{
		{"$count > 2", true},
		{"$count == 3 && !($count < 1)", true},
		{"$count >= 4 || false", false},
		{"len($names) == 2", true},
		{"is_empty($names)", false},
		{"$names", true},
		{"$count * 2 - 1 == 5", true},
		{"$count / 2 == 1", true},
		{"$count % 2 == 1", true},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got, err := e.Condition(condition(t, tt.src, refs), NewEnv())
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecimalArithmetic(t *testing.T) {
	e := New(symbols.NewSymbolTable(), styles.Target{}, "doc", nil)
	v, err := e.arithmetic("+", &symbols.DecimalValue{Value: 0.1}, &symbols.DecimalValue{Value: 0.2}, 1)
	if err != nil {
		t.Fatal(err)
	}
	if d := v.(*symbols.DecimalValue).Value; d != 0.3 {
		t.Errorf("0.1 + 0.2 = %v", d)
	}
	v, _ = e.arithmetic("*", integer(3), &symbols.DecimalValue{Value: 0.5}, 1)
	if d := v.(*symbols.DecimalValue).Value; d != 1.5 {
		t.Errorf("3 * 0.5 = %v", d)
	}
	v, _ = e.arithmetic("+", str("n="), integer(4), 1)
	if got, _ := symbols.Text(v); got != "n=4" {
		t.Errorf("concat = %q", got)
	}
	if _, err := e.arithmetic("/", integer(1), integer(0), 1); !diagnostics.Is(err, diagnostics.OtherError) {
		t.Errorf("division by zero: %v", err)
	}
}

func TestEqualOrTypes(t *testing.T) {
	ok := &symbols.OrTypeValue{Name: "doc#status", Variant: "ok", FullVariant: "doc#status.ok", Value: lit(integer(1))}
	failed := &symbols.OrTypeValue{Name: "doc#status", Variant: "failed", FullVariant: "doc#status.failed", Value: lit(integer(2))}
	if !Equal(ok, str("ok")) || !Equal(str("status.ok"), ok) || !Equal(ok, integer(1)) {
		t.Error("or-type must equal its variant name and payload")
	}
	if Equal(ok, failed) || Equal(ok, str("failed")) {
		t.Error("different variants compared equal")
	}
	if !Equal(&symbols.OptionalValue{Data: integer(2), Elem: typesystem.Integer}, &symbols.DecimalValue{Value: 2}) {
		t.Error("numbers must compare by value")
	}
}

func TestCallUserFunction(t *testing.T) {
	st := testTable()
	body, err := parser.ParseProgram("$total = $a; $total += $b; $total", 1)
	if err != nil {
		t.Fatal(err)
	}
	local := func(name string, k typesystem.Kind) *symbols.Reference {
		return &symbols.Reference{Name: "doc#sum." + name, Source: symbols.Local("doc#sum"), KindData: typesystem.Data(k), Mutable: name == "total"}
	}
	refs := symbols.NewExpression(nil, "", 1).References
	refs.Set("$total", local("total", typesystem.Integer))
	refs.Set("$a", local("a", typesystem.Integer))
	refs.Set("$b", local("b", typesystem.Integer))
	b := &symbols.Argument{Name: "b", Kind: typesystem.Data(typesystem.Integer), Value: lit(integer(10))}
	st.Define(&symbols.Function{
		Name:       "doc#sum",
		ReturnKind: typesystem.Data(typesystem.Decimal),
		Arguments: []*symbols.Argument{
			{Name: "a", Kind: typesystem.Data(typesystem.Integer)},
			b,
			{Name: "total", Kind: typesystem.Data(typesystem.Integer), Mutable: true, Value: lit(integer(0))},
		},
		Body:       body,
		References: refs,
	})
	e := New(st, styles.Target{}, "doc", nil)

	values := symbols.NewFields()
	values.Set("a", global("doc#count", typesystem.Integer))
	values.Set("b", b.Value)
	values.Set("total", lit(integer(0)))
	call := &symbols.FunctionCall{Name: "doc#sum", KindData: typesystem.Data(typesystem.Decimal), Values: values, Line: 1}

	v, err := e.Call(call, NewEnv())
	if err != nil {
		t.Fatal(err)
	}
	if d, ok := v.(*symbols.DecimalValue); !ok || d.Value != 13 {
		t.Errorf("sum = %#v", v)
	}
	uses := e.Trace(call, NewEnv())
	if len(uses) != 1 || uses[0].Variable != "doc#count" {
		t.Errorf("call trace = %+v", uses)
	}
	if e.IsConstant(call, NewEnv()) {
		t.Error("a call reading a mutable variable is not constant")
	}
}

func TestExport(t *testing.T) {
	fields := symbols.NewFields()
	fields.Set("name", lit(str("Ada")))
	fields.Set("tags", lit(&symbols.ListValue{Elem: typesystem.String, Data: []symbols.PropertyValue{lit(str("x"))}}))
	out := Export(&symbols.RecordValue{Name: "doc#person", Fields: fields})
	m, ok := out.(interface{ Len() int })
	if !ok || m.Len() != 2 {
		t.Fatalf("export = %#v", out)
	}

	e := New(testTable(), styles.Target{}, "doc", nil)
	arg, err := e.ExportArgument(global("doc#count", typesystem.Integer), NewEnv())
	if err != nil {
		t.Fatal(err)
	}
	ref, ok := arg.(interface {
		Get(string) (any, bool)
	})
	if !ok {
		t.Fatalf("argument = %#v", arg)
	}
	if name, _ := ref.Get("reference"); name != "doc#count" {
		t.Errorf("reference = %v", name)
	}
}
