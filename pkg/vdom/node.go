package vdom

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/vango-dev/vtree/pkg/dom"
)

// Node is a sealed tree node. It has no mutators for attributes or children;
// the only mutable state is the live back-reference owned by the renderer
// and the patch engine.
type Node struct {
	kind     Kind
	tag      string
	key      string
	hasKey   bool
	ref      *Ref
	ns       string
	attrs    *Attrs
	children *Children
	raw      bool
	text     string // KindText and KindComment
	comp     Component

	renderOnce sync.Once
	rendered   *Node

	live    *dom.Node
	liveEnd *dom.Node // closing marker of a fragment range
}

// Kind returns the node variant.
func (n *Node) Kind() Kind { return n.kind }

// Tag returns the tag name of a KindTag node.
func (n *Node) Tag() string { return n.tag }

// Key returns the identity hint and whether one was declared.
func (n *Node) Key() (string, bool) { return n.key, n.hasKey }

// Ref returns the reference capability, or nil.
func (n *Node) Ref() *Ref { return n.ref }

// Namespace returns the declared namespace. Empty means inherit.
func (n *Node) Namespace() string { return n.ns }

// Attrs returns the attribute set, nil when there are none.
func (n *Node) Attrs() *Attrs { return n.attrs }

// Children returns the children, nil when absent.
func (n *Node) Children() *Children { return n.children }

// RawText reports whether text children are markup rather than text.
func (n *Node) RawText() bool { return n.raw }

// Text returns the content of a text or comment node.
func (n *Node) Text() string { return n.text }

// Component returns the component of a placeholder node.
func (n *Node) Component() Component { return n.comp }

// Rendered returns the subtree a component placeholder renders to. The
// component is rendered once per placeholder node; a nil result renders as
// an empty comment.
func (n *Node) Rendered() *Node {
	if n.kind != KindComponent {
		return nil
	}
	n.renderOnce.Do(func() {
		if n.comp != nil {
			n.rendered = n.comp.Render()
		}
		if n.rendered == nil {
			n.rendered = NewComment("").Seal()
		}
	})
	return n.rendered
}

// SameComponent reports whether two placeholders render the same component
// type, which makes the previous rendering reusable.
func SameComponent(a, b *Node) bool {
	return reflect.TypeOf(a.comp) == reflect.TypeOf(b.comp)
}

// Live returns the first live node representing n, or nil when n is not
// built. Component placeholders report their rendered subtree's node.
func (n *Node) Live() *dom.Node {
	if n.kind == KindComponent {
		if n.rendered == nil {
			return nil
		}
		return n.rendered.Live()
	}
	return n.live
}

// LiveEnd returns the last live node representing n. It differs from Live
// only for fragments, whose range ends with a closing marker.
func (n *Node) LiveEnd() *dom.Node {
	if n.kind == KindComponent {
		if n.rendered == nil {
			return nil
		}
		return n.rendered.LiveEnd()
	}
	if n.liveEnd != nil {
		return n.liveEnd
	}
	return n.live
}

// LiveNodes returns every live node representing n in document order: one
// node, or a fragment's whole marker range.
func (n *Node) LiveNodes() []*dom.Node {
	start, end := n.Live(), n.LiveEnd()
	if start == nil {
		return nil
	}
	out := []*dom.Node{start}
	for x := start; x != end; {
		x = x.NextSibling()
		if x == nil {
			break
		}
		out = append(out, x)
	}
	return out
}

// Bind records the live node built for n. It is used by the renderer and
// the patch engine.
func (n *Node) Bind(live *dom.Node) {
	n.live = live
	n.liveEnd = nil
}

// BindRange records a fragment's marker range.
func (n *Node) BindRange(start, end *dom.Node) {
	n.live = start
	n.liveEnd = end
}

// Adopt copies the live back-reference of prev onto n.
func (n *Node) Adopt(prev *Node) {
	n.live = prev.live
	n.liveEnd = prev.liveEnd
}

// Release drops the live back-reference.
func (n *Node) Release() {
	n.live = nil
	n.liveEnd = nil
}

// Clone returns a sealed copy of n sharing its attributes and children, with
// an independent live slot. Component placeholders render again.
func (n *Node) Clone() *Node {
	return &Node{
		kind:     n.kind,
		tag:      n.tag,
		key:      n.key,
		hasKey:   n.hasKey,
		ref:      n.ref,
		ns:       n.ns,
		attrs:    n.attrs,
		children: n.children,
		raw:      n.raw,
		text:     n.text,
		comp:     n.comp,
	}
}

// String describes n for error messages, e.g. li[key=3].
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	var s string
	switch n.kind {
	case KindTag:
		s = n.tag
	case KindText:
		s = "#text"
	case KindComment:
		s = "#comment"
	case KindFragment:
		s = "#fragment"
	case KindComponent:
		s = fmt.Sprintf("component(%T)", n.comp)
	}
	if n.hasKey {
		s += "[key=" + n.key + "]"
	}
	return s
}

// ChildrenKind tells which shape a Children value holds.
type ChildrenKind uint8

const (
	ChildrenText ChildrenKind = iota
	ChildrenNodes
)

// Children is a sealed child list: either text or a node sequence.
type Children struct {
	kind  ChildrenKind
	text  string
	nodes []*Node
}

// TextChildren seals a text child.
func TextChildren(s string) *Children {
	return &Children{kind: ChildrenText, text: s}
}

// NodeChildren seals a node sequence. The slice is copied.
func NodeChildren(nodes ...*Node) *Children {
	c := &Children{kind: ChildrenNodes, nodes: make([]*Node, len(nodes))}
	copy(c.nodes, nodes)
	return c
}

// Kind returns the shape of the children.
func (c *Children) Kind() ChildrenKind { return c.kind }

// Text returns the text child.
func (c *Children) Text() string {
	if c == nil {
		return ""
	}
	return c.text
}

// Nodes returns the node sequence. The slice must not be modified.
func (c *Children) Nodes() []*Node {
	if c == nil || c.kind != ChildrenNodes {
		return nil
	}
	return c.nodes
}

// Len returns the number of child nodes; text children count as zero.
func (c *Children) Len() int {
	return len(c.Nodes())
}

// Attr represents a single attribute argument to an element factory.
type Attr struct {
	Name  string
	Value any
}

func attr(name string, value any) Attr {
	return Attr{Name: name, Value: value}
}

// Component is anything that can render to a Node.
type Component interface {
	Render() *Node
}

// FuncComponent wraps a render function.
type FuncComponent struct {
	render func() *Node
}

// Render implements Component.
func (f *FuncComponent) Render() *Node {
	return f.render()
}

// Func creates a component from a render function.
func Func(render func() *Node) Component {
	return &FuncComponent{render: render}
}
