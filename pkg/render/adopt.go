package render

import (
	"strings"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Adopt binds n to the existing live nodes starting at liveNodes[idx] and
// returns the index of the first node it did not consume. Nodes are matched
// by position; only listeners are attached, attributes are taken as they
// are. The text children of a tag are not separate positions.
//
// Markup parsing merges adjacent text and drops empty text, so Adopt splits
// a longer text node (leaving the remainder at liveNodes[idx]) and inserts a
// missing empty one. liveNodes must be the children of one parent, in order.
func Adopt(n *vdom.Node, liveNodes []*dom.Node, idx int) (int, error) {
	a := &adopter{nodes: liveNodes}
	if idx < len(liveNodes) {
		a.parent = liveNodes[idx].Parent()
	} else if len(liveNodes) > 0 {
		a.parent = liveNodes[0].Parent()
	}
	return a.adopt(n, idx)
}

// AdoptInto binds n to the children of parent starting at the first one
// and returns how many children were left unclaimed.
func AdoptInto(n *vdom.Node, parent *dom.Node) (int, error) {
	a := &adopter{nodes: parent.ChildNodes(), parent: parent}
	idx, err := a.adopt(n, 0)
	if err != nil {
		return 0, err
	}
	return len(a.nodes) - idx, nil
}

// AdoptChildren binds the node children of n to the children of el.
func AdoptChildren(n *vdom.Node, el *dom.Node) error {
	a := &adopter{nodes: el.ChildNodes(), parent: el}
	_, err := a.children(n, 0)
	return err
}

type adopter struct {
	nodes  []*dom.Node
	parent *dom.Node
}

func mismatch(n *vdom.Node, live *dom.Node) error {
	got := "nothing"
	if live != nil {
		got = live.Type.String()
		if live.Type == dom.ElementNode {
			got = "<" + live.Tag + ">"
		}
	}
	return errors.New(errors.CodeAdoptMismatch).WithDetailf("expected %s, found %s", n, got)
}

func (a *adopter) at(i int) *dom.Node {
	if i < len(a.nodes) {
		return a.nodes[i]
	}
	return nil
}

func (a *adopter) adopt(n *vdom.Node, idx int) (int, error) {
	live := a.at(idx)
	switch n.Kind() {
	case vdom.KindText:
		return a.text(n, idx)

	case vdom.KindComment:
		if live == nil || live.Type != dom.CommentNode {
			return idx, mismatch(n, live)
		}
		n.Bind(live)
		return idx + 1, nil

	case vdom.KindTag:
		if live == nil || live.Type != dom.ElementNode || !strings.EqualFold(live.Tag, n.Tag()) {
			return idx, mismatch(n, live)
		}
		n.Bind(live)
		var err error
		n.Attrs().Range(func(name string, v any) bool {
			if kind, ok := vdom.EventKind(name); ok && v != nil {
				if l, ok := v.(dom.Listener); ok {
					dom.AddListener(live, kind, l)
				}
			}
			return true
		})
		if c := n.Children(); c != nil && c.Kind() == vdom.ChildrenNodes {
			sub := &adopter{nodes: live.ChildNodes(), parent: live}
			_, err = sub.children(n, 0)
		}
		return idx + 1, err

	case vdom.KindFragment:
		if live == nil || live.Type != dom.CommentNode || live.Data != FragmentStart {
			return idx, mismatch(n, live)
		}
		next, err := a.children(n, idx+1)
		if err != nil {
			return next, err
		}
		end := a.at(next)
		if end == nil || end.Type != dom.CommentNode || end.Data != FragmentEnd {
			return next, mismatch(n, end)
		}
		n.BindRange(live, end)
		return next + 1, nil

	case vdom.KindComponent:
		return a.adopt(n.Rendered(), idx)
	}
	return idx, mismatch(n, live)
}

func (a *adopter) children(n *vdom.Node, idx int) (int, error) {
	kids := n.Children().Nodes()
	if vdom.DevMode() {
		if err := vdom.CheckKeys(n, kids); err != nil {
			return idx, err
		}
	}
	var err error
	for _, c := range kids {
		if idx, err = a.adopt(c, idx); err != nil {
			return idx, err
		}
	}
	return idx, nil
}

// text binds a text node, splitting or inserting live text as needed.
func (a *adopter) text(n *vdom.Node, idx int) (int, error) {
	want := n.Text()
	live := a.at(idx)
	if want == "" && (live == nil || live.Type != dom.TextNode) {
		if a.parent == nil {
			return idx, mismatch(n, live)
		}
		empty := dom.NewText("")
		a.parent.InsertBefore(empty, live)
		n.Bind(empty)
		return idx, nil
	}
	if live == nil || live.Type != dom.TextNode || !strings.HasPrefix(live.Data, want) {
		return idx, mismatch(n, live)
	}
	n.Bind(live)
	if len(live.Data) == len(want) {
		return idx + 1, nil
	}
	a.nodes[idx] = live.SplitText(len(want))
	return idx, nil
}
