package model

import (
	yamlv2 "gopkg.in/yaml.v2"
	"gopkg.in/yaml.v3"
)

// FrontMatter is the YAML block at the head of a task card: the title plus
// the remaining metadata fields in file order.
type FrontMatter struct {
	Title string
	Meta  Metadata
}

// UnmarshalYAML decodes via yaml.v2's MapSlice, the order-preserving form
// of the engine the frontmatter parser delegates to.
func (f *FrontMatter) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var ms yamlv2.MapSlice
	if err := unmarshal(&ms); err != nil {
		return err
	}
	for _, item := range ms {
		key := stringify(item.Key)
		if key == "title" {
			f.Title = ValueOf(item.Value).Scalar()
			continue
		}
		f.Meta.Set(key, ValueOf(item.Value))
	}
	return nil
}

// MarshalYAML emits the title first, then the metadata fields in order,
// as an explicit yaml.v3 mapping node.
func (f FrontMatter) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	n.Content = append(n.Content, scalarNode("title"), scalarNode(f.Title))
	for _, fd := range f.Meta {
		vn, err := valueNode(fd.Value)
		if err != nil {
			return nil, err
		}
		n.Content = append(n.Content, scalarNode(fd.Key), vn)
	}
	return n, nil
}

func scalarNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func valueNode(v Value) (*yaml.Node, error) {
	if !v.IsList() {
		return scalarNode(v.Scalar()), nil
	}
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, item := range v.List() {
		seq.Content = append(seq.Content, scalarNode(item))
	}
	return seq, nil
}

// compile-time check
var _ yaml.Marshaler = FrontMatter{}
