package dom

import "strings"

// NodeType is the node type discriminator.
type NodeType uint8

const (
	ElementNode NodeType = iota + 1
	TextNode
	CommentNode
	// FragmentNode holds detached siblings, such as a freshly built
	// fragment range, until they are inserted somewhere.
	FragmentNode
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	case CommentNode:
		return "Comment"
	case FragmentNode:
		return "Fragment"
	default:
		return "Unknown"
	}
}

// Well-known namespaces. The HTML namespace is the empty string.
const (
	NamespaceHTML   = ""
	NamespaceSVG    = "http://www.w3.org/2000/svg"
	NamespaceMathML = "http://www.w3.org/1998/Math/MathML"
)

// Node is a live document node.
type Node struct {
	Type      NodeType
	Tag       string
	Namespace string
	// Data holds the content of text and comment nodes.
	Data string

	attrs     map[string]string
	listeners map[string]Listener

	parent   *Node
	children []*Node
}

// NewElement creates a detached element.
func NewElement(tag, ns string) *Node {
	return &Node{Type: ElementNode, Tag: strings.ToLower(tag), Namespace: ns}
}

// NewText creates a detached text node.
func NewText(data string) *Node {
	return &Node{Type: TextNode, Data: data}
}

// NewComment creates a detached comment node.
func NewComment(data string) *Node {
	return &Node{Type: CommentNode, Data: data}
}

// NewFragment creates an empty fragment holder.
func NewFragment() *Node {
	return &Node{Type: FragmentNode}
}

// Parent returns the parent node or nil.
func (n *Node) Parent() *Node { return n.parent }

// ChildNodes returns a snapshot of the children.
func (n *Node) ChildNodes() []*Node {
	if len(n.children) == 0 {
		return nil
	}
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return len(n.children) }

// Child returns the i-th child or nil.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// FirstChild returns the first child or nil.
func (n *Node) FirstChild() *Node { return n.Child(0) }

// LastChild returns the last child or nil.
func (n *Node) LastChild() *Node { return n.Child(len(n.children) - 1) }

// Index returns the position of n among its siblings, or -1 if detached.
func (n *Node) Index() int {
	if n.parent == nil {
		return -1
	}
	for i, c := range n.parent.children {
		if c == n {
			return i
		}
	}
	return -1
}

// NextSibling returns the following sibling or nil.
func (n *Node) NextSibling() *Node {
	if n.parent == nil {
		return nil
	}
	return n.parent.Child(n.Index() + 1)
}

// PrevSibling returns the preceding sibling or nil.
func (n *Node) PrevSibling() *Node {
	if n.parent == nil {
		return nil
	}
	return n.parent.Child(n.Index() - 1)
}

// AppendChild appends c, detaching it from its current parent first.
func (n *Node) AppendChild(c *Node) {
	n.InsertBefore(c, nil)
}

// InsertBefore inserts c before ref. A nil ref appends. Inserting a node that
// is already a child of n moves it.
func (n *Node) InsertBefore(c, ref *Node) {
	if c == ref {
		return
	}
	c.Detach()
	c.parent = n
	if ref == nil || ref.parent != n {
		n.children = append(n.children, c)
		return
	}
	i := ref.Index()
	n.children = append(n.children, nil)
	copy(n.children[i+1:], n.children[i:])
	n.children[i] = c
}

// RemoveChild removes c if it is a child of n.
func (n *Node) RemoveChild(c *Node) {
	if c == nil || c.parent != n {
		return
	}
	c.Detach()
}

// ReplaceChild puts c where old is and detaches old.
func (n *Node) ReplaceChild(c, old *Node) {
	if old == nil || old.parent != n {
		return
	}
	if c == old {
		return
	}
	c.Detach()
	i := old.Index()
	n.children[i] = c
	c.parent = n
	old.parent = nil
}

// RemoveChildren detaches every child.
func (n *Node) RemoveChildren() {
	for _, c := range n.children {
		c.parent = nil
	}
	n.children = nil
}

// Detach removes n from its parent.
func (n *Node) Detach() {
	p := n.parent
	if p == nil {
		return
	}
	i := n.Index()
	copy(p.children[i:], p.children[i+1:])
	p.children[len(p.children)-1] = nil
	p.children = p.children[:len(p.children)-1]
	n.parent = nil
}

// TextContent returns the concatenated text of n and its descendants.
func (n *Node) TextContent() string {
	switch n.Type {
	case TextNode, CommentNode:
		return n.Data
	}
	var b strings.Builder
	var walk func(*Node)
	walk = func(x *Node) {
		for _, c := range x.children {
			switch c.Type {
			case TextNode:
				b.WriteString(c.Data)
			case ElementNode:
				walk(c)
			}
		}
	}
	walk(n)
	return b.String()
}

// SetTextContent replaces the children of an element with a single text
// node, or with nothing when s is empty. On text and comment nodes it sets
// Data.
func (n *Node) SetTextContent(s string) {
	if n.Type == TextNode || n.Type == CommentNode {
		n.Data = s
		return
	}
	n.RemoveChildren()
	if s != "" {
		n.AppendChild(NewText(s))
	}
}

// SetInnerHTML replaces the children of an element with parsed markup.
func (n *Node) SetInnerHTML(markup string) error {
	nodes, err := ParseFragment(markup, n)
	if err != nil {
		return err
	}
	n.RemoveChildren()
	for _, c := range nodes {
		n.AppendChild(c)
	}
	return nil
}

// SplitText splits a text node at byte offset, keeping the head in n and
// inserting the tail as a new following sibling, which is returned.
func (n *Node) SplitText(offset int) *Node {
	if n.Type != TextNode || offset < 0 || offset > len(n.Data) {
		return nil
	}
	tail := NewText(n.Data[offset:])
	n.Data = n.Data[:offset]
	if n.parent != nil {
		n.parent.InsertBefore(tail, n.NextSibling())
	}
	return tail
}

// Path returns the child indexes leading from root to n, or nil if n is not
// inside root.
func Path(root, n *Node) []int {
	var rev []int
	for x := n; x != root; x = x.parent {
		if x == nil {
			return nil
		}
		rev = append(rev, x.Index())
	}
	path := make([]int, len(rev))
	for i := range rev {
		path[i] = rev[len(rev)-1-i]
	}
	return path
}

// Resolve follows a path produced by Path.
func Resolve(root *Node, path []int) *Node {
	n := root
	for _, i := range path {
		if n = n.Child(i); n == nil {
			return nil
		}
	}
	return n
}

// Clone returns a detached deep copy of n. Listeners are copied too.
func (n *Node) Clone() *Node {
	c := &Node{Type: n.Type, Tag: n.Tag, Namespace: n.Namespace, Data: n.Data}
	if len(n.attrs) > 0 {
		c.attrs = make(map[string]string, len(n.attrs))
		for k, v := range n.attrs {
			c.attrs[k] = v
		}
	}
	if len(n.listeners) > 0 {
		c.listeners = make(map[string]Listener, len(n.listeners))
		for k, v := range n.listeners {
			c.listeners[k] = v
		}
	}
	for _, child := range n.children {
		c.AppendChild(child.Clone())
	}
	return c
}
