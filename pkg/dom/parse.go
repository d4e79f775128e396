package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseFragment parses markup as the content of context and returns the
// resulting top-level live nodes, detached. A nil context parses as body
// content.
func ParseFragment(markup string, context *Node) ([]*Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	if context != nil && context.Type == ElementNode {
		ctx = &html.Node{
			Type:      html.ElementNode,
			Data:      context.Tag,
			DataAtom:  atom.Lookup([]byte(context.Tag)),
			Namespace: shortNamespace(context.Namespace),
		}
	}
	parsed, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return nil, fmt.Errorf("dom: parse fragment: %w", err)
	}
	out := make([]*Node, 0, len(parsed))
	for _, p := range parsed {
		if n := convert(p); n != nil {
			out = append(out, n)
		}
	}
	return out, nil
}

// Parse parses markup into a new container element with the given tag.
func Parse(markup, containerTag string) (*Node, error) {
	root := NewElement(containerTag, NamespaceHTML)
	nodes, err := ParseFragment(markup, root)
	if err != nil {
		return nil, err
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, nil
}

func convert(p *html.Node) *Node {
	switch p.Type {
	case html.TextNode:
		return NewText(p.Data)
	case html.CommentNode:
		return NewComment(p.Data)
	case html.ElementNode:
		n := NewElement(p.Data, longNamespace(p.Namespace))
		for _, a := range p.Attr {
			if a.Key == "xmlns" && a.Namespace == "" {
				continue
			}
			n.SetAttribute(a.Key, a.Val)
		}
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			if cn := convert(c); cn != nil {
				n.AppendChild(cn)
			}
		}
		return n
	default:
		return nil
	}
}

func longNamespace(short string) string {
	switch short {
	case "svg":
		return NamespaceSVG
	case "math":
		return NamespaceMathML
	default:
		return NamespaceHTML
	}
}

func shortNamespace(long string) string {
	switch long {
	case NamespaceSVG:
		return "svg"
	case NamespaceMathML:
		return "math"
	default:
		return ""
	}
}
