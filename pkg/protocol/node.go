package protocol

import (
	"fmt"

	"github.com/vango-dev/vtree/pkg/dom"
)

// Node is the wire form of a live node. Listeners do not travel.
type Node struct {
	Type      dom.NodeType
	Tag       string
	Namespace string
	Data      string // text and comment nodes
	Attrs     []dom.Attr
	Children  []*Node
}

// FromDOM copies a live node and its subtree into wire form.
func FromDOM(n *dom.Node) *Node {
	w := &Node{Type: n.Type, Tag: n.Tag, Namespace: n.Namespace, Data: n.Data}
	if n.Type == dom.ElementNode {
		w.Attrs = n.Attributes()
	}
	if kids := n.ChildNodes(); len(kids) > 0 {
		w.Children = make([]*Node, len(kids))
		for i, c := range kids {
			w.Children[i] = FromDOM(c)
		}
	}
	return w
}

// DOM creates a detached live node from w.
func (w *Node) DOM() *dom.Node {
	var n *dom.Node
	switch w.Type {
	case dom.TextNode:
		return dom.NewText(w.Data)
	case dom.CommentNode:
		return dom.NewComment(w.Data)
	case dom.FragmentNode:
		n = dom.NewFragment()
	default:
		n = dom.NewElement(w.Tag, w.Namespace)
		for _, a := range w.Attrs {
			n.SetAttribute(a.Name, a.Value)
		}
	}
	for _, c := range w.Children {
		n.AppendChild(c.DOM())
	}
	return n
}

// EncodeNode appends w.
func EncodeNode(e *Encoder, w *Node) {
	e.WriteByte(byte(w.Type))
	switch w.Type {
	case dom.TextNode, dom.CommentNode:
		e.WriteString(w.Data)
		return
	case dom.ElementNode:
		e.WriteString(w.Tag)
		e.WriteString(w.Namespace)
		e.WriteUvarint(uint64(len(w.Attrs)))
		for _, a := range w.Attrs {
			e.WriteString(a.Name)
			e.WriteString(a.Value)
		}
	}
	e.WriteUvarint(uint64(len(w.Children)))
	for _, c := range w.Children {
		EncodeNode(e, c)
	}
}

// DecodeNode reads a node written by EncodeNode, enforcing MaxNodeDepth.
func DecodeNode(d *Decoder) (*Node, error) {
	return decodeNode(d, 0)
}

func decodeNode(d *Decoder, depth int) (*Node, error) {
	if depth > MaxNodeDepth {
		return nil, ErrMaxDepthExceeded
	}
	t, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	w := &Node{Type: dom.NodeType(t)}

	switch w.Type {
	case dom.TextNode, dom.CommentNode:
		w.Data, err = d.ReadString()
		return w, err
	case dom.ElementNode:
		if w.Tag, err = d.ReadString(); err != nil {
			return nil, err
		}
		if w.Namespace, err = d.ReadString(); err != nil {
			return nil, err
		}
		count, err := d.ReadCollectionCount()
		if err != nil {
			return nil, err
		}
		if count > 0 {
			w.Attrs = make([]dom.Attr, count)
			for i := range w.Attrs {
				if w.Attrs[i].Name, err = d.ReadString(); err != nil {
					return nil, err
				}
				if w.Attrs[i].Value, err = d.ReadString(); err != nil {
					return nil, err
				}
			}
		}
	case dom.FragmentNode:
	default:
		return nil, fmt.Errorf("protocol: unknown node type %d", t)
	}

	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}
	if count > 0 {
		w.Children = make([]*Node, count)
		for i := range w.Children {
			if w.Children[i], err = decodeNode(d, depth+1); err != nil {
				return nil, err
			}
		}
	}
	return w, nil
}
