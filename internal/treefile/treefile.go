// Package treefile reads element trees described in YAML.
//
// Each YAML document is one node:
//
//	tag: ul
//	attrs: {class: list}
//	children:
//	  - {tag: li, key: a, text: first}
//	  - {tag: li, key: b, html: "<b>second</b>"}
//	  - text: trailing text
//	  - comment: note
//	  - fragment:
//	      - {tag: span, text: x}
//
// A node has exactly one of tag, text (without tag), comment or fragment.
// On a tag node text and html set its content and exclude children. ns is
// "svg", "math" or a namespace URI.
package treefile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Node is the YAML form of a tree node.
type Node struct {
	Tag      string         `yaml:"tag,omitempty"`
	Ns       string         `yaml:"ns,omitempty"`
	Key      *string        `yaml:"key,omitempty"`
	Attrs    map[string]any `yaml:"attrs,omitempty"`
	Text     *string        `yaml:"text,omitempty"`
	HTML     *string        `yaml:"html,omitempty"`
	Comment  *string        `yaml:"comment,omitempty"`
	Fragment []*Node        `yaml:"fragment,omitempty"`
	Children []*Node        `yaml:"children,omitempty"`
}

// Decode reads every YAML document from r as one tree.
func Decode(r io.Reader) ([]*vdom.Node, error) {
	dec := yaml.NewDecoder(r)
	var trees []*vdom.Node
	for i := 0; ; i++ {
		var n Node
		err := dec.Decode(&n)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("treefile: document %d: %w", i, err)
		}
		tree, err := n.Build()
		if err != nil {
			return nil, fmt.Errorf("treefile: document %d: %w", i, err)
		}
		trees = append(trees, tree)
	}
	if len(trees) == 0 {
		return nil, errors.New("treefile: no documents")
	}
	return trees, nil
}

// Load reads every tree in the file at path.
func Load(path string) ([]*vdom.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// LoadOne reads the first tree in the file at path.
func LoadOne(path string) (*vdom.Node, error) {
	trees, err := Load(path)
	if err != nil {
		return nil, err
	}
	return trees[0], nil
}

// Build converts n to a sealed node.
func (n *Node) Build() (*vdom.Node, error) {
	kinds := 0
	for _, set := range []bool{n.Tag != "", n.Comment != nil, n.Fragment != nil, n.Tag == "" && n.Text != nil} {
		if set {
			kinds++
		}
	}
	if kinds != 1 {
		return nil, errors.New("node needs exactly one of tag, text, comment or fragment")
	}

	switch {
	case n.Comment != nil:
		return vdom.NewComment(*n.Comment).Seal(), nil
	case n.Fragment != nil:
		children, err := build(n.Fragment)
		if err != nil {
			return nil, err
		}
		b := vdom.NewFragment().Children(children...)
		if n.Key != nil {
			b.Key(*n.Key)
		}
		return b.Seal(), nil
	case n.Tag == "":
		return vdom.NewText(*n.Text).Seal(), nil
	}
	return n.buildTag()
}

func (n *Node) buildTag() (*vdom.Node, error) {
	content := 0
	for _, set := range []bool{n.Text != nil, n.HTML != nil, n.Children != nil} {
		if set {
			content++
		}
	}
	if content > 1 {
		return nil, fmt.Errorf("<%s>: text, html and children are exclusive", n.Tag)
	}

	b := vdom.NewTag(n.Tag)
	switch n.Ns {
	case "":
	case "svg":
		b.Ns(dom.NamespaceSVG)
	case "math":
		b.Ns(dom.NamespaceMathML)
	default:
		b.Ns(n.Ns)
	}
	if n.Key != nil {
		b.Key(*n.Key)
	}
	if len(n.Attrs) > 0 {
		b.Attrs(n.Attrs)
	}

	switch {
	case n.Text != nil:
		b.Text(*n.Text)
	case n.HTML != nil:
		b.HTML(*n.HTML)
	case n.Children != nil:
		children, err := build(n.Children)
		if err != nil {
			return nil, fmt.Errorf("<%s>: %w", n.Tag, err)
		}
		b.Children(children...)
	}
	return b.Seal(), nil
}

func build(nodes []*Node) ([]any, error) {
	out := make([]any, len(nodes))
	for i, c := range nodes {
		if c == nil {
			return nil, fmt.Errorf("child %d is empty", i)
		}
		n, err := c.Build()
		if err != nil {
			return nil, fmt.Errorf("child %d: %w", i, err)
		}
		out[i] = n
	}
	return out, nil
}
