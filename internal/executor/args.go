package executor

import (
	"github.com/funvibe/ftdc/internal/diagnostics"
	"github.com/funvibe/ftdc/internal/elements"
	"github.com/funvibe/ftdc/internal/evaluator"
	"github.com/funvibe/ftdc/internal/styles"
	"github.com/funvibe/ftdc/internal/symbols"
)

// args reads the bound arguments of one kernel instance. Readers that
// take a key also record on common how the slot varies at runtime: the
// conditional values and one trace per global variable read.
type args struct {
	x        *Executor
	bindings map[string]*evaluator.Binding
	env      *evaluator.Env
	common   *elements.Common
	id       string
	line     int
}

func (a *args) value(name string) (symbols.Value, error) {
	b, ok := a.bindings[name]
	if !ok {
		return nil, nil
	}
	return a.x.eval.BindingValue(b)
}

func (a *args) optString(name string) (*string, error) {
	v, err := a.value(name)
	if err != nil {
		return nil, err
	}
	s, ok := symbols.Text(symbols.Unwrap(v))
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (a *args) str(name string) (string, error) {
	s, err := a.optString(name)
	if err != nil || s == nil {
		return "", err
	}
	return *s, nil
}

func (a *args) optInt(name string) (*int64, error) {
	v, err := a.value(name)
	if err != nil {
		return nil, err
	}
	switch n := symbols.Unwrap(v).(type) {
	case *symbols.IntegerValue:
		out := n.Value
		return &out, nil
	case nil:
		return nil, nil
	}
	return nil, diagnostics.InvalidKindf(a.x.docID, a.line, "`%s` must be an integer", name)
}

func (a *args) optBool(name string) (*bool, error) {
	v, err := a.value(name)
	if err != nil {
		return nil, err
	}
	switch b := symbols.Unwrap(v).(type) {
	case *symbols.BooleanValue:
		out := b.Value
		return &out, nil
	case nil:
		return nil, nil
	}
	return nil, diagnostics.InvalidKindf(a.x.docID, a.line, "`%s` must be a boolean", name)
}

func (a *args) bool(name string) (bool, error) {
	b, err := a.optBool(name)
	return b != nil && *b, err
}

func (a *args) strings(name string) ([]string, error) {
	v, err := a.value(name)
	if err != nil {
		return nil, err
	}
	list, ok := symbols.Unwrap(v).(*symbols.ListValue)
	if !ok {
		return nil, nil
	}
	var out []string
	for _, item := range list.Data {
		if s, ok := symbols.Text(literal(item)); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

// style reduces the styling argument name, whose CSS property is key.
func (a *args) style(name, key string) (styles.Style, error) {
	b, ok := a.bindings[name]
	if !ok {
		return nil, nil
	}
	v, err := a.x.eval.BindingValue(b)
	if err != nil {
		return nil, err
	}
	s, err := a.x.reduce(name, v, a.line)
	if err != nil {
		return nil, err
	}
	err = a.record(b, key, elements.AttributeStyle, elements.DependencyStyle, func(v symbols.Value) (string, error) {
		s, err := a.x.reduce(name, v, a.line)
		if err != nil {
			return "", err
		}
		return styles.CSS(s, a.x.target), nil
	})
	return s, err
}

// styleOf is style for slots of one concrete type.
func styleOf[T styles.Style](a *args, name, key string) (T, error) {
	var zero T
	s, err := a.style(name, key)
	if err != nil || s == nil {
		return zero, err
	}
	v, ok := s.(T)
	if !ok {
		return zero, diagnostics.InvalidKindf(a.x.docID, a.line, "`%s` cannot hold a %T", name, s)
	}
	return v, nil
}

// attribute records how a content argument varies; show renders one of
// its values the way the element displays it.
func (a *args) attribute(name, key string, show func(symbols.Value) (string, error)) error {
	b, ok := a.bindings[name]
	if !ok {
		return nil
	}
	return a.record(b, key, elements.Attribute, elements.DependencyValue, show)
}

type branchValue struct {
	branch evaluator.Branch
	value  *elements.ConditionalValue
	uses   []evaluator.Use
}

func (a *args) record(b *evaluator.Binding, key string, typ elements.AttributeType, dep elements.DependencyType, show func(symbols.Value) (string, error)) error {
	var (
		entries     []branchValue
		fallback    *elements.ConditionalValue
		conditional bool
		traced      bool
	)
	for _, br := range a.x.eval.Branches(b) {
		uses := a.x.eval.Trace(br.Value, br.Env)
		if br.Condition != nil {
			conditional = true
		}
		if len(uses) > 0 {
			traced = true
		}
		entries = append(entries, branchValue{branch: br, uses: uses})
	}
	if !conditional && !traced {
		return nil
	}

	for i := range entries {
		e := &entries[i]
		v, err := a.x.eval.Resolve(e.branch.Value, e.branch.Env)
		if err != nil {
			return err
		}
		text, err := show(v)
		if err != nil {
			return err
		}
		e.value = &elements.ConditionalValue{Value: text}
		if len(e.uses) == 1 {
			path := e.uses[0].Path()
			e.value.Reference = &path
		}
		if e.branch.Condition == nil {
			fallback = e.value
		}
	}

	if conditional {
		ca := a.common.ConditionalFor(key, typ)
		ca.ConditionsWithValue = ca.ConditionsWithValue[:0]
		for _, e := range entries {
			if e.branch.Condition != nil {
				ca.ConditionsWithValue = append(ca.ConditionsWithValue, elements.ConditionWithValue{
					Condition: e.branch.Condition.Text,
					Value:     *e.value,
				})
			}
		}
		ca.Default = fallback
	}

	for _, e := range entries {
		var when any
		if cond := e.branch.Condition; cond != nil {
			when = cond.Text
			for _, u := range a.x.eval.TraceCondition(cond, e.branch.CondEnv) {
				a.trace(u, dep, key, conditionValue(cond), e.value, fallback)
			}
		}
		for _, u := range e.uses {
			a.trace(u, dep, key, when, e.value, nil)
		}
	}
	return nil
}

func (a *args) trace(u evaluator.Use, dep elements.DependencyType, key string, when any, value, def *elements.ConditionalValue) {
	a.common.Traces = append(a.common.Traces, &elements.Trace{
		Variable:  u.Variable,
		Remaining: u.Remaining,
		Type:      dep,
		Key:       key,
		Condition: when,
		Value:     value,
		Default:   def,
	})
}

// fill sets the common arguments of every kernel element.
func (a *args) fill() error {
	c := a.common
	var err error
	if c.Link, err = a.optString("link"); err != nil {
		return err
	}
	if c.OpenInNewTab, err = a.bool("open-in-new-tab"); err != nil {
		return err
	}
	if c.Classes, err = a.strings("classes"); err != nil {
		return err
	}
	css, err := a.strings("css")
	if err != nil {
		return err
	}
	c.CSS = append(c.CSS, css...)
	if c.JS, err = a.strings("js"); err != nil {
		return err
	}
	if c.Region, err = styleOf[*styles.Enum](a, "region", "region"); err != nil {
		return err
	}
	for _, slot := range elements.StyleSlots {
		s, err := a.style(slot.Arg, slot.CSS)
		if err != nil {
			return err
		}
		if s == nil {
			continue
		}
		if err := slot.Set(c, s); err != nil {
			return diagnostics.InvalidKindf(a.x.docID, a.line, "%v", err)
		}
	}
	return nil
}
