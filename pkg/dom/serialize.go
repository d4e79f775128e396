package dom

import (
	"io"
	"strings"
)

// Serialize returns the canonical markup of n and its descendants.
func Serialize(n *Node) string {
	var b strings.Builder
	writeNode(&b, n, inheritedNamespace(n))
	return b.String()
}

// SerializeChildren returns the canonical markup of n's children.
func SerializeChildren(n *Node) string {
	var b strings.Builder
	ns := n.Namespace
	if n.Type != ElementNode {
		ns = inheritedNamespace(n)
	}
	for _, c := range n.children {
		writeNode(&b, c, ns)
	}
	return b.String()
}

// WriteTo writes the canonical markup of nodes to w.
func WriteTo(w io.Writer, nodes ...*Node) error {
	var b strings.Builder
	for _, n := range nodes {
		writeNode(&b, n, inheritedNamespace(n))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func inheritedNamespace(n *Node) string {
	for p := n.parent; p != nil; p = p.parent {
		if p.Type == ElementNode {
			return p.Namespace
		}
	}
	return NamespaceHTML
}

func writeNode(b *strings.Builder, n *Node, parentNs string) {
	switch n.Type {
	case TextNode:
		b.WriteString(EscapeText(n.Data))
	case CommentNode:
		b.WriteString("<!--")
		b.WriteString(n.Data)
		b.WriteString("-->")
	case FragmentNode:
		for _, c := range n.children {
			writeNode(b, c, parentNs)
		}
	case ElementNode:
		b.WriteByte('<')
		b.WriteString(n.Tag)
		if n.Namespace != parentNs {
			b.WriteString(` xmlns="`)
			b.WriteString(EscapeAttr(n.Namespace))
			b.WriteByte('"')
		}
		for _, a := range n.Attributes() {
			b.WriteByte(' ')
			b.WriteString(a.Name)
			b.WriteString(`="`)
			b.WriteString(EscapeAttr(a.Value))
			b.WriteByte('"')
		}
		if IsVoid(n.Tag, n.Namespace) {
			b.WriteString("/>")
			return
		}
		b.WriteByte('>')
		for _, c := range n.children {
			writeNode(b, c, n.Namespace)
		}
		b.WriteString("</")
		b.WriteString(n.Tag)
		b.WriteByte('>')
	}
}
