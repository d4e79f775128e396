package vdom

import (
	"github.com/vango-dev/vtree/internal/errors"
)

// assignment bits, one per single-assignment property
const (
	setKey uint8 = 1 << iota
	setRef
	setNs
	setAttrs
	setChildren
)

// Builder is a node in the Building phase. Variant and tag are fixed at
// creation; every other property is assigned at most once, then Seal turns
// the builder into an immutable *Node.
type Builder struct {
	kind     Kind
	tag      string
	key      string
	hasKey   bool
	ref      *Ref
	ns       string
	attrs    map[string]any
	children *Children
	raw      bool
	text     string
	comp     Component

	set    uint8
	sealed *Node
}

// NewTag starts a tag node.
func NewTag(tag string) *Builder {
	return &Builder{kind: KindTag, tag: tag}
}

// NewText starts a text node.
func NewText(text string) *Builder {
	return &Builder{kind: KindText, text: text}
}

// NewComment starts a comment node.
func NewComment(text string) *Builder {
	return &Builder{kind: KindComment, text: text}
}

// NewFragment starts a fragment.
func NewFragment() *Builder {
	return &Builder{kind: KindFragment}
}

// NewComponent starts a component placeholder.
func NewComponent(c Component) *Builder {
	return &Builder{kind: KindComponent, comp: c}
}

// Kind returns the variant fixed at creation.
func (b *Builder) Kind() Kind { return b.kind }

// Sealed reports whether Seal has been called.
func (b *Builder) Sealed() bool { return b.sealed != nil }

// writable reports whether the builder may still be modified, and records
// the assignment of prop. A builder used after Seal panics in dev mode and
// ignores the call otherwise.
func (b *Builder) writable(prop uint8, name string) bool {
	if b.sealed != nil {
		if DevMode() {
			panic(errors.New(errors.CodeBuilderSealed).WithDetailf("%s on %s", name, b.sealed))
		}
		return false
	}
	if b.set&prop != 0 && DevMode() {
		Logger().Warn("vdom: property assigned twice", "prop", name, "kind", b.kind.String(), "tag", b.tag)
	}
	b.set |= prop
	return true
}

// Key sets the identity hint used to match siblings across passes.
func (b *Builder) Key(key string) *Builder {
	if b.writable(setKey, "Key") {
		b.key, b.hasKey = key, true
	}
	return b
}

// Ref sets the reference capability.
func (b *Builder) Ref(r *Ref) *Builder {
	if b.writable(setRef, "Ref") {
		b.ref = r
	}
	return b
}

// Ns declares the namespace of a tag node and, by inheritance, its
// descendants.
func (b *Builder) Ns(ns string) *Builder {
	if b.writable(setNs, "Ns") {
		b.ns = ns
	}
	return b
}

// Attrs sets the attributes. A repeated call merges into the earlier set.
func (b *Builder) Attrs(m map[string]any) *Builder {
	if b.writable(setAttrs, "Attrs") {
		b.mergeAttrs(m)
	}
	return b
}

// Attr sets a single attribute without counting as an Attrs assignment.
func (b *Builder) Attr(name string, v any) *Builder {
	if b.sealed != nil {
		b.writable(0, "Attr")
		return b
	}
	b.mergeAttrs(map[string]any{name: v})
	return b
}

func (b *Builder) mergeAttrs(m map[string]any) {
	if len(m) == 0 {
		return
	}
	if b.attrs == nil {
		b.attrs = make(map[string]any, len(m))
	}
	for k, v := range m {
		b.attrs[k] = v
	}
}

// Children sets a node sequence. Arguments may be *Node, *Builder (sealed
// on the spot), []*Node, string (a text node) or nil (skipped).
func (b *Builder) Children(children ...any) *Builder {
	if !b.writable(setChildren, "Children") {
		return b
	}
	nodes := make([]*Node, 0, len(children))
	for _, c := range children {
		nodes = appendChild(nodes, c)
	}
	b.children = &Children{kind: ChildrenNodes, nodes: nodes}
	b.raw = false
	return b
}

// Text sets escaped text children. On a fragment it becomes a single text
// node.
func (b *Builder) Text(s string) *Builder {
	if !b.writable(setChildren, "Text") {
		return b
	}
	b.setText(s, false)
	return b
}

// HTML sets raw markup children. The content is written without escaping.
func (b *Builder) HTML(s string) *Builder {
	if !b.writable(setChildren, "HTML") {
		return b
	}
	b.setText(s, true)
	return b
}

func (b *Builder) setText(s string, raw bool) {
	if b.kind == KindFragment {
		b.children = NodeChildren(NewText(s).Seal())
		return
	}
	b.children = TextChildren(s)
	b.raw = raw
}

// Seal finishes the builder and returns the immutable node. Sealing twice
// returns the same node.
func (b *Builder) Seal() *Node {
	if b.sealed != nil {
		return b.sealed
	}
	n := &Node{
		kind:   b.kind,
		tag:    b.tag,
		key:    b.key,
		hasKey: b.hasKey,
		ref:    b.ref,
		ns:     b.ns,
		raw:    b.raw,
		text:   b.text,
		comp:   b.comp,
	}
	if b.kind == KindTag {
		n.attrs = NewAttrs(b.attrs)
	}
	if b.kind == KindTag || b.kind == KindFragment {
		n.children = b.children
	}
	b.sealed = n
	b.attrs = nil
	return n
}

func appendChild(nodes []*Node, c any) []*Node {
	switch v := c.(type) {
	case nil:
	case *Node:
		if v != nil {
			nodes = append(nodes, v)
		}
	case *Builder:
		if v != nil {
			nodes = append(nodes, v.Seal())
		}
	case []*Node:
		for _, n := range v {
			if n != nil {
				nodes = append(nodes, n)
			}
		}
	case string:
		nodes = append(nodes, NewText(v).Seal())
	case Component:
		nodes = append(nodes, NewComponent(v).Seal())
	default:
		if DevMode() {
			panic(errors.New(errors.CodeMixedChildren).WithDetailf("unsupported child %T", c))
		}
	}
	return nodes
}
