// Package yaml is the YAML wire reader/writer collaborator. It maps
// yaml.v3's node model onto the value tree, giving the engine a second
// grammar behind the same tree boundary as the JSON driver.
package yaml

import (
	"fmt"
	"strconv"
	"strings"

	yamlv3 "gopkg.in/yaml.v3"

	"github.com/reoring/wiretree/tree"
)

// Parse reads one YAML document into a tree. Duplicate mapping keys and
// non-scalar keys are rejected.
func Parse(data []byte) (*tree.Node, error) {
	var doc yamlv3.Node
	if err := yamlv3.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return tree.Null(), nil
	}
	return fromYAML(doc.Content[0])
}

func fromYAML(n *yamlv3.Node) (*tree.Node, error) {
	switch n.Kind {
	case yamlv3.ScalarNode:
		switch n.Tag {
		case "!!null":
			return tree.Null(), nil
		case "!!bool":
			b, err := strconv.ParseBool(n.Value)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad bool %q", n.Line, n.Value)
			}
			return tree.Bool(b), nil
		case "!!int", "!!float":
			return tree.Number(n.Value), nil
		default:
			return tree.String(n.Value), nil
		}
	case yamlv3.SequenceNode:
		arr := tree.NewArray()
		for _, e := range n.Content {
			v, err := fromYAML(e)
			if err != nil {
				return nil, err
			}
			arr.Append(v)
		}
		return arr, nil
	case yamlv3.MappingNode:
		obj := tree.NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yamlv3.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping key is not a scalar", k.Line)
			}
			if _, dup := obj.Get(k.Value); dup {
				return nil, fmt.Errorf("line %d: duplicate mapping key %q", k.Line, k.Value)
			}
			v, err := fromYAML(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(k.Value, v)
		}
		return obj, nil
	case yamlv3.AliasNode:
		return fromYAML(n.Alias)
	default:
		return nil, fmt.Errorf("line %d: unsupported YAML node kind %d", n.Line, n.Kind)
	}
}

// Marshal emits a tree as one YAML document, preserving field order.
func Marshal(n *tree.Node) ([]byte, error) {
	y, err := toYAML(n)
	if err != nil {
		return nil, err
	}
	return yamlv3.Marshal(y)
}

func toYAML(n *tree.Node) (*yamlv3.Node, error) {
	if n == nil {
		return scalar("!!null", "null"), nil
	}
	switch n.Type {
	case tree.NullType:
		return scalar("!!null", "null"), nil
	case tree.BoolType:
		return scalar("!!bool", strconv.FormatBool(n.B)), nil
	case tree.NumberType:
		if strings.ContainsAny(n.Num, ".eE") {
			return scalar("!!float", n.Num), nil
		}
		return scalar("!!int", n.Num), nil
	case tree.StringType:
		return scalar("!!str", n.Str), nil
	case tree.ArrayType:
		out := &yamlv3.Node{Kind: yamlv3.SequenceNode, Tag: "!!seq"}
		for _, e := range n.Elems {
			y, err := toYAML(e)
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content, y)
		}
		return out, nil
	case tree.ObjectType:
		out := &yamlv3.Node{Kind: yamlv3.MappingNode, Tag: "!!map"}
		for _, f := range n.Fields {
			y, err := toYAML(f.Value)
			if err != nil {
				return nil, err
			}
			out.Content = append(out.Content, scalar("!!str", f.Key), y)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown node type %d", n.Type)
	}
}

func scalar(tag, value string) *yamlv3.Node {
	return &yamlv3.Node{Kind: yamlv3.ScalarNode, Tag: tag, Value: value}
}
