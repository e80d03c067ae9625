package executor

import (
	"github.com/funvibe/ftdc/internal/elements"
	"github.com/funvibe/ftdc/internal/evaluator"
	"github.com/funvibe/ftdc/internal/symbols"
)

// passedChildren is the children argument of a user component as bound
// at its invocation.
type passedChildren struct {
	owner   string
	arg     string
	binding *evaluator.Binding
}

// externalSource returns the children the caller of the enclosing user
// component passed, when c declares where to append them.
func (x *Executor) externalSource(c *elements.Container) (passedChildren, bool) {
	if c.AppendAt == nil {
		return passedChildren{}, false
	}
	inst, ok := x.caller()
	if !ok {
		return passedChildren{}, false
	}
	arg, ok := symbols.ChildrenArgument(inst.def.Arguments)
	if !ok {
		return passedChildren{}, false
	}
	b := inst.bindings[arg.Name]
	if b == nil || len(b.Properties) == 0 {
		return passedChildren{}, false
	}
	return passedChildren{owner: inst.def.Name, arg: arg.Name, binding: b}, true
}

// forwards reports whether b passes the children p on unchanged.
func forwards(b *evaluator.Binding, p passedChildren) bool {
	if b == nil {
		return false
	}
	for _, prop := range b.Properties {
		r, ok := prop.Value.(*symbols.Reference)
		if ok && r.Source.Kind == symbols.SourceLocal && r.Source.Name == p.owner && r.Name == p.owner+"."+p.arg {
			return true
		}
	}
	return false
}

// external moves the caller's children into c.ExternalChildren. The
// runtime appends them to the node whose id is AppendAt.
func (x *Executor) external(a *args, c *elements.Container) error {
	p, ok := x.externalSource(c)
	if !ok {
		return nil
	}
	children, err := x.children(a, p.binding, x.inherit(a))
	if err != nil {
		return err
	}
	id := *c.AppendAt
	if a.id != "" {
		id = a.id
	}
	c.ExternalChildren = &elements.ExternalChildren{
		ID:       id,
		AppendAt: *c.AppendAt,
		Children: children,
	}
	return nil
}
