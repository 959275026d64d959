package binel

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAML tags carrying attribute kinds. Every attribute scalar is written with
// its kind's tag so the projection survives a round trip even for values such
// as Float(1) or Text("true").
const (
	yamlBoolTag  = "!!bool"
	yamlIntTag   = "!!int"
	yamlFloatTag = "!!float"
	yamlStrTag   = "!!str"
)

var (
	_ yaml.Marshaler   = (*Element)(nil)
	_ yaml.Unmarshaler = (*Element)(nil)
	_ yaml.Marshaler   = (*File)(nil)
	_ yaml.Unmarshaler = (*File)(nil)
)

// MarshalYAML renders e as a mapping with name, attributes and children keys.
func (e *Element) MarshalYAML() (any, error) {
	return e.yamlNode(), nil
}

// UnmarshalYAML rebuilds e from the mapping produced by MarshalYAML.
func (e *Element) UnmarshalYAML(node *yaml.Node) error {
	decoded, err := elementFromYAML(node)
	if err != nil {
		return err
	}
	parent := e.parent
	*e = *decoded
	e.parent = parent
	for _, c := range e.order {
		c.parent = e
	}

	return nil
}

// MarshalYAML renders f as a mapping with package and root keys.
func (f *File) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	node.Content = append(node.Content,
		strNode("package"), strNode(f.Package),
		strNode("root"),
	)
	if f.Root == nil {
		node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"})
	} else {
		node.Content = append(node.Content, f.Root.yamlNode())
	}

	return node, nil
}

// UnmarshalYAML rebuilds f from the mapping produced by MarshalYAML.
func (f *File) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: map file must be a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "package":
			f.Package = value.Value
		case "root":
			if value.ShortTag() == "!!null" {
				f.Root = nil
				continue
			}
			root, err := elementFromYAML(value)
			if err != nil {
				return err
			}
			f.Root = root
		default:
			return fmt.Errorf("line %d: unknown map file key %q", key.Line, key.Value)
		}
	}

	return nil
}

func (e *Element) yamlNode() *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	node.Content = append(node.Content, strNode("name"), strNode(e.Name))

	if len(e.Attributes) > 0 {
		attrs := &yaml.Node{Kind: yaml.MappingNode}
		for _, k := range e.AttrKeys() {
			attrs.Content = append(attrs.Content, strNode(k), attrNode(e.Attributes[k]))
		}
		node.Content = append(node.Content, strNode("attributes"), attrs)
	}

	if len(e.order) > 0 {
		children := &yaml.Node{Kind: yaml.SequenceNode}
		for _, child := range e.order {
			children.Content = append(children.Content, child.yamlNode())
		}
		node.Content = append(node.Content, strNode("children"), children)
	}

	return node
}

func elementFromYAML(node *yaml.Node) (*Element, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: element must be a mapping", node.Line)
	}

	e := New("")
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		switch key.Value {
		case "name":
			e.Name = value.Value
		case "attributes":
			if value.Kind != yaml.MappingNode {
				return nil, fmt.Errorf("line %d: attributes must be a mapping", value.Line)
			}
			for j := 0; j+1 < len(value.Content); j += 2 {
				attr, err := attrFromYAML(value.Content[j+1])
				if err != nil {
					return nil, fmt.Errorf("attribute %q: %w", value.Content[j].Value, err)
				}
				e.Attributes[value.Content[j].Value] = attr
			}
		case "children":
			if value.Kind != yaml.SequenceNode {
				return nil, fmt.Errorf("line %d: children must be a sequence", value.Line)
			}
			for _, c := range value.Content {
				child, err := elementFromYAML(c)
				if err != nil {
					return nil, err
				}
				e.Insert(child)
			}
		default:
			return nil, fmt.Errorf("line %d: unknown element key %q", key.Line, key.Value)
		}
	}
	if e.Name == "" {
		return nil, fmt.Errorf("line %d: element without a name", node.Line)
	}

	return e, nil
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: yamlStrTag, Value: s}
}

func attrNode(a Attr) *yaml.Node {
	node := &yaml.Node{Kind: yaml.ScalarNode}
	switch a.Kind() {
	case KindBool:
		node.Tag = yamlBoolTag
		v, _ := a.AsBool()
		node.Value = strconv.FormatBool(v)
	case KindInt:
		node.Tag = yamlIntTag
		v, _ := a.AsInt()
		node.Value = strconv.FormatInt(int64(v), 10)
	case KindFloat:
		node.Tag = yamlFloatTag
		v, _ := a.AsFloat()
		node.Value = formatYAMLFloat(v)
	default:
		node.Tag = yamlStrTag
		node.Value, _ = a.AsText()
	}

	return node
}

func attrFromYAML(node *yaml.Node) (Attr, error) {
	if node.Kind != yaml.ScalarNode {
		return Attr{}, fmt.Errorf("line %d: attribute value must be a scalar", node.Line)
	}

	switch node.ShortTag() {
	case yamlBoolTag:
		v, err := strconv.ParseBool(node.Value)
		if err != nil {
			return Attr{}, fmt.Errorf("line %d: %w", node.Line, err)
		}

		return Bool(v), nil
	case yamlIntTag:
		v, err := strconv.ParseInt(node.Value, 10, 32)
		if err != nil {
			return Attr{}, fmt.Errorf("line %d: %w", node.Line, err)
		}

		return Int(int32(v)), nil
	case yamlFloatTag:
		v, err := parseYAMLFloat(node.Value)
		if err != nil {
			return Attr{}, fmt.Errorf("line %d: %w", node.Line, err)
		}

		return Float(v), nil
	case yamlStrTag:
		return Text(node.Value), nil
	default:
		return Attr{}, fmt.Errorf("line %d: unsupported attribute tag %s", node.Line, node.ShortTag())
	}
}

func formatYAMLFloat(v float32) string {
	f := float64(v)
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}

	return strconv.FormatFloat(f, 'g', -1, 32)
}

func parseYAMLFloat(s string) (float32, error) {
	switch strings.ToLower(s) {
	case ".nan":
		return float32(math.NaN()), nil
	case ".inf", "+.inf":
		return float32(math.Inf(1)), nil
	case "-.inf":
		return float32(math.Inf(-1)), nil
	}

	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, err
	}

	return float32(v), nil
}
