// Package treegen draws random sealed trees for property tests.
//
// Generated trees stay inside the subset of markup that parses back to the
// same structure: tags that never auto-close, comments without fragment
// marker text and text without carriage returns or NUL.
package treegen

import (
	"fmt"

	"pgregory.net/rapid"

	"github.com/vango-dev/vtree/pkg/vdom"
)

var (
	textRunes = []rune("ab <&\"'>")
	tags      = []string{"div", "span", "section", "label"}
	attrNames = []string{"class", "data-x", "id", "title"}
	keyPool   = []string{"k0", "k1", "k2", "k3", "k4", "k5"}
)

// Tree draws a tree at most depth levels deep.
func Tree(depth int) *rapid.Generator[*vdom.Node] {
	return rapid.Custom(func(t *rapid.T) *vdom.Node {
		return drawNode(t, depth)
	})
}

// Element draws a tag node at most depth levels deep.
func Element(depth int) *rapid.Generator[*vdom.Node] {
	return rapid.Custom(func(t *rapid.T) *vdom.Node {
		return drawTag(t, depth, "", false)
	})
}

func text(t *rapid.T, label string) string {
	return rapid.StringOfN(rapid.SampledFrom(textRunes), 0, 6, -1).Draw(t, label)
}

func drawNode(t *rapid.T, depth int) *vdom.Node {
	kinds := 3
	if depth <= 0 {
		kinds = 1
	}
	switch rapid.IntRange(0, kinds).Draw(t, "kind") {
	case 0:
		return vdom.Text(text(t, "text"))
	case 1:
		return vdom.Comment(rapid.StringMatching(`[a-z]{0,4}`).Draw(t, "comment"))
	case 2:
		return vdom.NewFragment().Children(drawChildren(t, depth-1)...).Seal()
	default:
		return drawTag(t, depth-1, "", false)
	}
}

func drawTag(t *rapid.T, depth int, key string, keyed bool) *vdom.Node {
	b := vdom.NewTag(rapid.SampledFrom(tags).Draw(t, "tag"))
	if keyed {
		b.Key(key)
	}
	attrs := make(map[string]any)
	for _, name := range attrNames {
		if rapid.Bool().Draw(t, "has-"+name) {
			attrs[name] = text(t, name)
		}
	}
	b.Attrs(attrs)

	shape := 0
	if depth >= 0 {
		shape = rapid.IntRange(0, 2).Draw(t, "children")
	}
	switch shape {
	case 1:
		b.Text(text(t, "content"))
	case 2:
		b.Children(drawChildren(t, depth)...)
	}
	return b.Seal()
}

// drawChildren draws a sibling list. Keyed lists take their keys from a
// small pool so that consecutive draws share identities.
func drawChildren(t *rapid.T, depth int) []any {
	if rapid.Bool().Draw(t, "keyed") {
		keys := rapid.Permutation(keyPool).Draw(t, "keys")
		n := rapid.IntRange(0, len(keys)).Draw(t, "len")
		out := make([]any, n)
		for i := range out {
			out[i] = drawTag(t, depth-1, keys[i], true)
		}
		return out
	}
	n := rapid.IntRange(0, 4).Draw(t, "len")
	out := make([]any, n)
	for i := range out {
		out[i] = drawNode(t, depth)
	}
	return out
}

// Copy rebuilds n as an unbound tree with the same structure. Component
// placeholders are copied as their rendered output.
func Copy(n *vdom.Node) *vdom.Node {
	switch n.Kind() {
	case vdom.KindText:
		return vdom.Text(n.Text())
	case vdom.KindComment:
		return vdom.Comment(n.Text())
	case vdom.KindComponent:
		return Copy(n.Rendered())
	}
	var b *vdom.Builder
	if n.Kind() == vdom.KindFragment {
		b = vdom.NewFragment()
	} else {
		b = vdom.NewTag(n.Tag()).Ns(n.Namespace()).Attrs(n.Attrs().Map())
	}
	if k, ok := n.Key(); ok {
		b.Key(k)
	}
	b.Ref(n.Ref())
	if c := n.Children(); c != nil {
		switch {
		case c.Kind() == vdom.ChildrenText && n.RawText():
			b.HTML(c.Text())
		case c.Kind() == vdom.ChildrenText:
			b.Text(c.Text())
		default:
			kids := make([]any, 0, c.Len())
			for _, k := range c.Nodes() {
				kids = append(kids, Copy(k))
			}
			b.Children(kids...)
		}
	}
	return b.Seal()
}

// Describe formats a tree compactly for failure messages.
func Describe(n *vdom.Node) string {
	if n == nil {
		return "<nil>"
	}
	s := n.String()
	switch n.Kind() {
	case vdom.KindText, vdom.KindComment:
		return fmt.Sprintf("%s(%q)", s, n.Text())
	}
	if c := n.Children(); c != nil {
		if c.Kind() == vdom.ChildrenText {
			return fmt.Sprintf("%s{%q}", s, c.Text())
		}
		s += "{"
		for i, k := range c.Nodes() {
			if i > 0 {
				s += " "
			}
			s += Describe(k)
		}
		s += "}"
	}
	return s
}
