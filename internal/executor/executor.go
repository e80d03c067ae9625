// Package executor expands analyzed instructions into the element tree:
// loops are unrolled, conditions and bindings evaluated, user components
// inlined and kernel components turned into elements with reduced styles.
package executor

import (
	"io"
	"log"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"golang.org/x/text/language"

	"github.com/funvibe/ftdc/internal/config"
	"github.com/funvibe/ftdc/internal/diagnostics"
	"github.com/funvibe/ftdc/internal/elements"
	"github.com/funvibe/ftdc/internal/evaluator"
	"github.com/funvibe/ftdc/internal/styles"
	"github.com/funvibe/ftdc/internal/symbols"
)

const maxInstanceDepth = 256

// instance is a user component being expanded. Containers inside its body
// use it to find the children passed by its caller.
type instance struct {
	def      *symbols.ComponentDefinition
	bindings map[string]*evaluator.Binding
	env      *evaluator.Env
}

// Executor turns the instructions of one root document into elements.
type Executor struct {
	eval      *evaluator.Evaluator
	symbols   *symbols.SymbolTable
	target    styles.Target
	docID     string
	locale    language.Tag
	logger    *log.Logger
	meta      elements.Meta
	page      *elements.Column
	instances []*instance
}

// New creates an executor for the document docID. A nil logger disables
// logging.
func New(st *symbols.SymbolTable, target styles.Target, docID string, locale language.Tag, logger *log.Logger) *Executor {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Executor{
		eval:    evaluator.New(st, target, docID, logger),
		symbols: st,
		target:  target,
		docID:   docID,
		locale:  locale,
		logger:  logger,
	}
}

// Execute expands instructions into the children of a root column. When
// an instruction is an ftd#document, its children become the root's and
// its arguments fill the returned Meta.
func (x *Executor) Execute(instructions []*symbols.Component) (*elements.Column, elements.Meta, error) {
	root := elements.NewColumn()
	root.Children = []elements.Element{}
	env := evaluator.NewEnv()
	for _, c := range instructions {
		els, err := x.expand(c, env)
		if err != nil {
			return nil, elements.Meta{}, err
		}
		root.Children = append(root.Children, els...)
	}
	if x.page != nil {
		doc := x.page
		root.Children = doc.Children
		root.Common = doc.Common
	}
	return root, x.meta, nil
}

// expand produces the elements of one invocation: one per loop item, or a
// single one when there is no loop. A loop over a mutable list also gets a
// hidden dummy element used as a template when items are added later.
func (x *Executor) expand(c *symbols.Component, env *evaluator.Env) ([]elements.Element, error) {
	if c.Iteration == nil {
		el, err := x.instantiate(c, env)
		if err != nil {
			return nil, err
		}
		return []elements.Element{el}, nil
	}

	loop := c.Iteration
	v, err := x.eval.Resolve(loop.On, env)
	if err != nil {
		return nil, err
	}
	list, ok := symbols.Unwrap(v).(*symbols.ListValue)
	if !ok {
		if symbols.Unwrap(v) == nil {
			return nil, nil
		}
		return nil, diagnostics.InvalidKindf(x.docID, loop.Line, "loop over a `%s` value", v.Kind())
	}

	out := make([]elements.Element, 0, len(list.Data)+1)
	for i, item := range list.Data {
		el, err := x.instantiate(c, env.WithLoop(loop.Alias, loop.On, env, literal(item), i))
		if err != nil {
			return nil, err
		}
		out = append(out, el)
	}

	if x.mutableDriver(loop, env) {
		placeholder := x.placeholder(list.Elem, loop.Line)
		el, err := x.instantiate(c, env.WithLoop(loop.Alias, loop.On, env, placeholder, len(list.Data)))
		if err != nil {
			x.logger.Printf("%s:%d: no template element for loop over %s: %v", x.docID, loop.Line, loopName(loop), err)
			return out, nil
		}
		if common := el.GetCommon(); common != nil {
			common.IsDummy = true
			out = append(out, el)
		}
	}
	return out, nil
}

func (x *Executor) mutableDriver(loop *symbols.Loop, env *evaluator.Env) bool {
	if _, ok := loop.On.(*symbols.Clone); ok {
		return true
	}
	if loop.On.IsMutable() {
		return true
	}
	for _, u := range x.eval.Trace(loop.On, env) {
		if u.Variable != config.DeviceVariable && u.Variable != config.DarkModeVariable && x.eval.IsMutable(u.Variable) {
			return true
		}
	}
	return false
}

func loopName(loop *symbols.Loop) string {
	if name, _, ok := symbols.ReferenceName(loop.On); ok {
		return name
	}
	return "$" + loop.Alias
}

// instantiate builds the element of one invocation in env and applies its
// condition, id and events.
func (x *Executor) instantiate(c *symbols.Component, env *evaluator.Env) (elements.Element, error) {
	var (
		visible  = true
		constant = true
	)
	if c.Condition != nil {
		ok, err := x.eval.Condition(c.Condition, env)
		if err != nil {
			return nil, err
		}
		visible = ok
		constant = x.eval.IsConstantCondition(c.Condition, env)
		if !visible && constant {
			return elements.NewNull(), nil
		}
	}

	el, err := x.component(c, env)
	if err != nil {
		return nil, err
	}
	common := el.GetCommon()
	if common == nil {
		return el, nil
	}

	if c.ID != "" {
		id := c.ID
		common.ID = &id
	}
	if c.Condition != nil && !constant {
		mergeCondition(common, c.Condition.Text, visible)
		for _, u := range x.eval.TraceCondition(c.Condition, env) {
			common.Traces = append(common.Traces, &elements.Trace{
				Variable:  u.Variable,
				Remaining: u.Remaining,
				Type:      elements.DependencyVisible,
				Condition: conditionValue(c.Condition),
			})
		}
	}

	events, err := x.events(c.Events, env)
	if err != nil {
		return nil, err
	}
	common.Events = append(common.Events, events...)
	return el, nil
}

// mergeCondition ands expr into the condition already on common.
func mergeCondition(common *elements.Common, expr string, visible bool) {
	if common.Condition == nil {
		common.Condition = &elements.Condition{Expression: expr, Visible: visible}
		return
	}
	common.Condition = &elements.Condition{
		Expression: common.Condition.Expression + " && " + expr,
		Visible:    common.Condition.Visible && visible,
	}
}

// component resolves what an invocation instantiates and builds it.
func (x *Executor) component(c *symbols.Component, env *evaluator.Env) (elements.Element, error) {
	if c.Source == symbols.FromVariable && c.Variable != nil {
		v, err := x.eval.Resolve(c.Variable, env)
		if err != nil {
			return nil, err
		}
		switch val := symbols.Unwrap(v).(type) {
		case *symbols.UIValue:
			return x.uiValue(val, env)
		case *symbols.ModuleValue:
			_, member, _ := strings.Cut(c.Name, config.ThingSeparator)
			return x.definition(c, val.Name+config.ThingSeparator+member, env)
		case nil:
			return elements.NewNull(), nil
		default:
			return nil, diagnostics.InvalidKindf(x.docID, c.Line, "`%s` is not a component", c.Variable.Name)
		}
	}
	return x.definition(c, c.Name, env)
}

// uiValue builds a component held in a variable, in the scope it was
// captured in.
func (x *Executor) uiValue(ui *symbols.UIValue, env *evaluator.Env) (elements.Element, error) {
	scope, ok := ui.Scope.(*evaluator.Env)
	if !ok || scope == nil {
		scope = env
	}
	els, err := x.expand(ui.Component, scope)
	if err != nil {
		return nil, err
	}
	return single(els), nil
}

// single returns the only element of els, or a column holding them.
func single(els []elements.Element) elements.Element {
	if len(els) == 1 {
		return els[0]
	}
	col := elements.NewColumn()
	col.Children = els
	if col.Children == nil {
		col.Children = []elements.Element{}
	}
	return col
}

func (x *Executor) definition(c *symbols.Component, name string, env *evaluator.Env) (elements.Element, error) {
	t, ok := x.symbols.Find(name)
	if !ok {
		return nil, diagnostics.NotFoundf(x.docID, c.Line, "unknown component `%s`", name)
	}
	def, ok := t.(*symbols.ComponentDefinition)
	if !ok {
		return nil, diagnostics.InvalidKindf(x.docID, c.Line, "`%s` is not a component", name)
	}
	return x.instance(c, def, env)
}

// instance binds the arguments of def to the invocation's properties and
// expands the definition body, or builds the element of a kernel
// component.
func (x *Executor) instance(c *symbols.Component, def *symbols.ComponentDefinition, env *evaluator.Env) (elements.Element, error) {
	if len(x.instances) >= maxInstanceDepth {
		return nil, diagnostics.Otherf(x.docID, c.Line, "component `%s` nests too deeply", def.Name)
	}
	body := env.Enclosed(def.Name)
	bindings := make(map[string]*evaluator.Binding, len(def.Arguments))
	for _, arg := range def.Arguments {
		b := &evaluator.Binding{
			Argument:   arg,
			Properties: c.PropertiesFor(arg.Name, def.Arguments),
			Caller:     env,
			Default:    arg.Value,
			Self:       body,
		}
		bindings[arg.Name] = b
		body.Bind(arg.Name, b)
	}

	if def.Kernel {
		return x.kernel(def, c, bindings, body)
	}
	if def.Definition == nil {
		return nil, diagnostics.MissingDataf(x.docID, c.Line, "component `%s` has no definition", def.Name)
	}

	x.instances = append(x.instances, &instance{def: def, bindings: bindings, env: body})
	defer func() { x.instances = x.instances[:len(x.instances)-1] }()

	el, err := x.instantiate(def.Definition, body)
	if err != nil {
		return nil, err
	}
	if common := el.GetCommon(); common != nil && def.CSS != "" {
		common.CSS = append(common.CSS, def.CSS)
	}
	return el, nil
}

// caller returns the innermost user component being expanded.
func (x *Executor) caller() (*instance, bool) {
	if len(x.instances) == 0 {
		return nil, false
	}
	return x.instances[len(x.instances)-1], true
}

func (x *Executor) events(events []*symbols.Event, env *evaluator.Env) ([]*elements.Event, error) {
	var out []*elements.Event
	for _, ev := range events {
		e := &elements.Event{Name: ev.Name.String()}
		if ev.Action != nil {
			e.Function = ev.Action.Name
			if ev.Action.Values != nil && ev.Action.Values.Len() > 0 {
				e.Arguments = orderedmap.New[string, any]()
				for pair := ev.Action.Values.Oldest(); pair != nil; pair = pair.Next() {
					v, err := x.eval.ExportArgument(pair.Value, env)
					if err != nil {
						return nil, err
					}
					e.Arguments.Set(pair.Key, v)
				}
			}
		}
		out = append(out, e)
	}
	return out, nil
}

// literal returns the value of an already resolved item.
func literal(pv symbols.PropertyValue) symbols.Value {
	if l, ok := pv.(*symbols.Literal); ok {
		return l.Value
	}
	return nil
}
