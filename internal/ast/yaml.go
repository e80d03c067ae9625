package ast

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAML encoding of documents
//
//	id: index
//	ast:
//	  - import: {path: lib, alias: l}
//	  - record: {name: person, fields: [{name: name, kind: caption string}]}
//	  - or-type: {name: status, variants: [{name: ok, kind: integer, constant: true, value: 1}]}
//	  - variable: {name: v, kind: integer, value: 10}
//	  - function: {name: add, return-kind: integer, arguments: [...], body: "$a + $b"}
//	  - component: {name: card, arguments: [...], definition: {--name: ftd.column}}
//	  - invoke: {--name: ftd.text, --caption: hello, padding.px: 10}
//
// Invocations and record values are mappings whose `--`-prefixed keys are
// structural (--name, --caption, --body, --children, --headers) and whose
// other keys are headers. A header key may carry a `$` mutability marker,
// a `.variant` suffix and an `if { ... }` condition.

// ParseYAML decodes a YAML-encoded document.
func ParseYAML(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (d *Document) UnmarshalYAML(n *yaml.Node) error {
	var items *yaml.Node
	switch n.Kind {
	case yaml.SequenceNode:
		items = n
	case yaml.MappingNode:
		for i := 0; i+1 < len(n.Content); i += 2 {
			key, val := n.Content[i].Value, n.Content[i+1]
			switch key {
			case "id":
				d.ID = val.Value
			case "ast":
				items = val
			default:
				return yamlErrorf(n.Content[i], "unknown document key %q", key)
			}
		}
	default:
		return yamlErrorf(n, "document must be a mapping or a sequence")
	}
	if items == nil {
		return nil
	}
	if items.Kind != yaml.SequenceNode {
		return yamlErrorf(items, "ast must be a sequence")
	}
	for _, item := range items.Content {
		node, err := decodeNode(item)
		if err != nil {
			return err
		}
		d.Nodes = append(d.Nodes, node)
	}
	return nil
}

func decodeNode(n *yaml.Node) (Node, error) {
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return nil, yamlErrorf(n, "ast entry must be a single-key mapping")
	}
	key, body := n.Content[0].Value, n.Content[1]
	switch key {
	case "import":
		imp := &Import{Line: n.Line}
		if body.Kind == yaml.ScalarNode {
			imp.Path = body.Value
			return imp, nil
		}
		if err := forEachPair(body, func(k string, v *yaml.Node) error {
			switch k {
			case "path":
				imp.Path = v.Value
			case "alias":
				imp.Alias = v.Value
			default:
				return yamlErrorf(v, "unknown import key %q", k)
			}
			return nil
		}); err != nil {
			return nil, err
		}
		return imp, nil
	case "record":
		rec := &Record{Line: n.Line}
		err := forEachPair(body, func(k string, v *yaml.Node) error {
			switch k {
			case "name":
				rec.Name = v.Value
			case "fields":
				fields, err := decodeFields(v)
				rec.Fields = fields
				return err
			default:
				return yamlErrorf(v, "unknown record key %q", k)
			}
			return nil
		})
		return rec, err
	case "or-type":
		return decodeOrType(body, n.Line)
	case "variable":
		v := &VariableDefinition{Line: n.Line}
		err := forEachPair(body, func(k string, val *yaml.Node) error {
			switch k {
			case "name":
				v.Name, v.Mutable = splitMutable(val.Value)
			case "kind":
				v.Kind = val.Value
			case "mutable":
				v.Mutable = v.Mutable || val.Value == "true"
			case "value":
				value, err := decodeValue(val, SourceDefault)
				v.Value = value
				return err
			default:
				return yamlErrorf(val, "unknown variable key %q", k)
			}
			return nil
		})
		return v, err
	case "function":
		fn := &FunctionDefinition{Line: n.Line}
		err := forEachPair(body, func(k string, v *yaml.Node) error {
			switch k {
			case "name":
				fn.Name = v.Value
			case "return-kind":
				fn.ReturnKind = v.Value
			case "arguments":
				args, err := decodeFields(v)
				fn.Arguments = args
				return err
			case "body":
				fn.Body = v.Value
			default:
				return yamlErrorf(v, "unknown function key %q", k)
			}
			return nil
		})
		return fn, err
	case "component":
		cd := &ComponentDefinition{Line: n.Line}
		err := forEachPair(body, func(k string, v *yaml.Node) error {
			switch k {
			case "name":
				cd.Name = v.Value
			case "arguments":
				args, err := decodeFields(v)
				cd.Arguments = args
				return err
			case "css":
				cd.CSS = v.Value
			case "definition":
				inv, err := decodeInvocation(v)
				cd.Definition = inv
				return err
			default:
				return yamlErrorf(v, "unknown component key %q", k)
			}
			return nil
		})
		return cd, err
	case "invoke":
		return decodeInvocation(body)
	}
	return nil, yamlErrorf(n, "unknown ast entry %q", key)
}

func decodeOrType(body *yaml.Node, line int) (*OrType, error) {
	ot := &OrType{Line: line}
	err := forEachPair(body, func(k string, v *yaml.Node) error {
		switch k {
		case "name":
			ot.Name = v.Value
		case "variants":
			if v.Kind != yaml.SequenceNode {
				return yamlErrorf(v, "variants must be a sequence")
			}
			for _, item := range v.Content {
				variant := &OrTypeVariant{Line: item.Line}
				if err := forEachPair(item, func(vk string, vv *yaml.Node) error {
					switch vk {
					case "name":
						variant.Name = vv.Value
					case "kind":
						variant.Kind = vv.Value
					case "constant":
						variant.Constant = vv.Value == "true"
					case "value":
						value, err := decodeValue(vv, SourceDefault)
						variant.Value = value
						return err
					case "fields":
						fields, err := decodeFields(vv)
						variant.Fields = fields
						return err
					default:
						return yamlErrorf(vv, "unknown variant key %q", vk)
					}
					return nil
				}); err != nil {
					return err
				}
				ot.Variants = append(ot.Variants, variant)
			}
		default:
			return yamlErrorf(v, "unknown or-type key %q", k)
		}
		return nil
	})
	return ot, err
}

func decodeFields(n *yaml.Node) ([]*Field, error) {
	n = resolveAlias(n)
	if n.Kind != yaml.SequenceNode {
		return nil, yamlErrorf(n, "fields must be a sequence")
	}
	var fields []*Field
	for _, item := range n.Content {
		f := &Field{Line: item.Line}
		if err := forEachPair(item, func(k string, v *yaml.Node) error {
			switch k {
			case "name":
				f.Name, f.Mutable = splitMutable(v.Value)
			case "kind":
				f.Kind = v.Value
			case "mutable":
				f.Mutable = f.Mutable || v.Value == "true"
			case "access":
				f.Access = v.Value
			case "value":
				value, err := decodeValue(v, SourceDefault)
				f.Value = value
				return err
			default:
				return yamlErrorf(v, "unknown field key %q", k)
			}
			return nil
		}); err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func decodeInvocation(n *yaml.Node) (*ComponentInvocation, error) {
	rec, err := decodeRecordValue(n)
	if err != nil {
		return nil, err
	}
	inv := rec.Invocation()
	if inv.Name == "" {
		return nil, yamlErrorf(n, "invocation without --name")
	}
	return inv, nil
}

func decodeRecordValue(n *yaml.Node) (*RecordValue, error) {
	if n.Kind != yaml.MappingNode {
		return nil, yamlErrorf(n, "expected a mapping")
	}
	rec := &RecordValue{Line: n.Line}
	err := forEachPair(n, func(k string, v *yaml.Node) error {
		switch k {
		case "--name":
			rec.Name = v.Value
		case "--caption":
			value, err := decodeValue(v, SourceCaption)
			rec.Caption = value
			return err
		case "--body":
			value, err := decodeValue(v, SourceBody)
			rec.Body = value
			return err
		case "--children":
			if v.Kind != yaml.SequenceNode {
				return yamlErrorf(v, "--children must be a sequence")
			}
			for _, child := range v.Content {
				childRec, err := decodeRecordValue(child)
				if err != nil {
					return err
				}
				rec.Values = append(rec.Values, &ListItem{Kind: childRec.Name, Value: childRec})
			}
		case "--headers":
			if v.Kind != yaml.SequenceNode {
				return yamlErrorf(v, "--headers must be a sequence")
			}
			for _, item := range v.Content {
				if err := forEachPair(item, func(hk string, hv *yaml.Node) error {
					h, err := decodeHeader(hk, hv)
					if err != nil {
						return err
					}
					rec.Headers = append(rec.Headers, h)
					return nil
				}); err != nil {
					return err
				}
			}
		default:
			if strings.HasPrefix(k, "--") {
				return yamlErrorf(v, "unknown structural key %q", k)
			}
			h, err := decodeHeader(k, v)
			if err != nil {
				return err
			}
			rec.Headers = append(rec.Headers, h)
		}
		return nil
	})
	return rec, err
}

func decodeHeader(key string, v *yaml.Node) (*Header, error) {
	h := &Header{Line: v.Line}
	key = strings.TrimSpace(key)
	if idx := strings.Index(key, " if "); idx >= 0 {
		h.Condition = strings.TrimSpace(key[idx+4:])
		key = strings.TrimSpace(key[:idx])
	}
	if IsEventKey(key) || key == "$loop$" {
		h.Key = key
	} else {
		h.Key, h.Mutable = splitMutable(key)
	}
	value, err := decodeValue(v, SourceHeader)
	if err != nil {
		return nil, err
	}
	h.Value = value
	return h, nil
}

func decodeValue(n *yaml.Node, source ValueSource) (VariableValue, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return &OptionalValue{Line: n.Line}, nil
		}
		return &StringValue{Value: n.Value, Source: source, Line: n.Line}, nil
	case yaml.SequenceNode:
		list := &ListValue{Line: n.Line}
		for _, item := range n.Content {
			li, err := decodeListItem(item)
			if err != nil {
				return nil, err
			}
			list.Values = append(list.Values, li)
		}
		return list, nil
	case yaml.MappingNode:
		return decodeRecordValue(n)
	case yaml.AliasNode:
		return decodeValue(n.Alias, source)
	}
	return nil, yamlErrorf(n, "unsupported value")
}

// decodeListItem accepts a plain value or a tagged `{kind: k, value: v}` item.
func decodeListItem(n *yaml.Node) (*ListItem, error) {
	if n.Kind == yaml.MappingNode && len(n.Content) == 4 {
		var kind string
		var value *yaml.Node
		for i := 0; i+1 < len(n.Content); i += 2 {
			switch n.Content[i].Value {
			case "kind":
				kind = n.Content[i+1].Value
			case "value":
				value = n.Content[i+1]
			}
		}
		if kind != "" && value != nil {
			v, err := decodeValue(value, SourceDefault)
			if err != nil {
				return nil, err
			}
			return &ListItem{Kind: kind, Value: v}, nil
		}
	}
	v, err := decodeValue(n, SourceDefault)
	if err != nil {
		return nil, err
	}
	item := &ListItem{Value: v}
	if rec, ok := v.(*RecordValue); ok {
		item.Kind = rec.Name
	}
	return item, nil
}

func forEachPair(n *yaml.Node, fn func(key string, value *yaml.Node) error) error {
	n = resolveAlias(n)
	if n.Kind != yaml.MappingNode {
		return yamlErrorf(n, "expected a mapping")
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if err := fn(n.Content[i].Value, n.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}

// resolveAlias follows `*name` aliases to the anchored node.
func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func splitMutable(name string) (string, bool) {
	if strings.HasPrefix(name, "$") {
		return name[1:], true
	}
	return name, false
}

func yamlErrorf(n *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("line %d: %s", n.Line, fmt.Sprintf(format, args...))
}
