package render

import (
	"fmt"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/domattrs"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// BuildLive creates the live nodes for n and binds them. It returns the
// first live node; a fragment's whole range sits in a dom fragment holder
// until it is inserted. Refs are not attached; that is the job of the
// lifecycle walker once the nodes are placed.
func BuildLive(n *vdom.Node, parentNs string) (*dom.Node, error) {
	if err := build(n, parentNs); err != nil {
		return nil, err
	}
	return n.Live(), nil
}

// Insert builds n and inserts its live nodes into parent before ref; a nil
// ref appends.
func Insert(n *vdom.Node, parent, ref *dom.Node, parentNs string) error {
	if err := build(n, parentNs); err != nil {
		return err
	}
	for _, x := range n.LiveNodes() {
		parent.InsertBefore(x, ref)
	}
	return nil
}

// build creates live nodes for n. Fragment ranges are left as unattached
// siblings inside a holder created here.
func build(n *vdom.Node, parentNs string) error {
	if vdom.DevMode() {
		if err := vdom.CheckUnbound(n); err != nil {
			return err
		}
	}
	switch n.Kind() {
	case vdom.KindText:
		n.Bind(dom.NewText(n.Text()))
	case vdom.KindComment:
		n.Bind(dom.NewComment(n.Text()))
	case vdom.KindTag:
		return buildElement(n, parentNs)
	case vdom.KindFragment:
		holder := dom.NewFragment()
		start, end := dom.NewComment(FragmentStart), dom.NewComment(FragmentEnd)
		holder.AppendChild(start)
		if err := buildChildren(n, holder, parentNs); err != nil {
			return err
		}
		holder.AppendChild(end)
		n.BindRange(start, end)
	case vdom.KindComponent:
		return build(n.Rendered(), parentNs)
	default:
		return fmt.Errorf("render: unknown node kind %d", n.Kind())
	}
	return nil
}

// buildElement builds children first, then applies attributes in name
// order, so a select value sees its options.
func buildElement(n *vdom.Node, parentNs string) error {
	ns := EffectiveNamespace(n, parentNs)
	el := dom.NewElement(n.Tag(), ns)

	if c := n.Children(); c != nil {
		switch c.Kind() {
		case vdom.ChildrenText:
			if err := SetText(el, c.Text(), n.RawText()); err != nil {
				return err
			}
		case vdom.ChildrenNodes:
			if err := buildChildren(n, el, ns); err != nil {
				return err
			}
		}
	}

	var err error
	n.Attrs().Range(func(name string, v any) bool {
		err = ApplyAttr(el, name, v)
		return err == nil
	})
	if err != nil {
		return err
	}
	n.Bind(el)
	return nil
}

func buildChildren(n *vdom.Node, parent *dom.Node, ns string) error {
	kids := n.Children().Nodes()
	if vdom.DevMode() {
		if err := vdom.CheckKeys(n, kids); err != nil {
			return err
		}
	}
	for _, c := range kids {
		if err := Insert(c, parent, nil, ns); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAttr sets one attribute on a live element: listeners go to the
// listener registry, everything else to the attribute handler table. Nil
// values are skipped.
func ApplyAttr(el *dom.Node, name string, v any) error {
	if v == nil {
		return nil
	}
	if kind, ok := vdom.EventKind(name); ok {
		l, ok := v.(dom.Listener)
		if !ok {
			return fmt.Errorf("render: listener %s has type %T", name, v)
		}
		dom.AddListener(el, kind, l)
		return nil
	}
	return domattrs.Set(el, name, v)
}

// SetText replaces the children of el with text, parsed as markup when raw.
func SetText(el *dom.Node, text string, raw bool) error {
	if raw {
		if err := el.SetInnerHTML(text); err != nil {
			return fmt.Errorf("render: raw content of <%s>: %w", el.Tag, err)
		}
		return nil
	}
	el.SetTextContent(text)
	return nil
}

// Materialize creates live nodes for n without binding anything, so the
// same sealed tree can be materialized any number of times. It is used to
// replay recorded patches against another copy of the live tree.
func Materialize(n *vdom.Node, parentNs string) ([]*dom.Node, error) {
	switch n.Kind() {
	case vdom.KindText:
		return []*dom.Node{dom.NewText(n.Text())}, nil
	case vdom.KindComment:
		return []*dom.Node{dom.NewComment(n.Text())}, nil
	case vdom.KindComponent:
		return Materialize(n.Rendered(), parentNs)
	case vdom.KindFragment:
		out := []*dom.Node{dom.NewComment(FragmentStart)}
		for _, c := range n.Children().Nodes() {
			nodes, err := Materialize(c, parentNs)
			if err != nil {
				return nil, err
			}
			out = append(out, nodes...)
		}
		return append(out, dom.NewComment(FragmentEnd)), nil
	case vdom.KindTag:
		ns := EffectiveNamespace(n, parentNs)
		el := dom.NewElement(n.Tag(), ns)
		if c := n.Children(); c != nil {
			if c.Kind() == vdom.ChildrenText {
				if err := SetText(el, c.Text(), n.RawText()); err != nil {
					return nil, err
				}
			}
			for _, child := range c.Nodes() {
				nodes, err := Materialize(child, ns)
				if err != nil {
					return nil, err
				}
				for _, x := range nodes {
					el.AppendChild(x)
				}
			}
		}
		var err error
		n.Attrs().Range(func(name string, v any) bool {
			err = ApplyAttr(el, name, v)
			return err == nil
		})
		if err != nil {
			return nil, err
		}
		return []*dom.Node{el}, nil
	}
	return nil, fmt.Errorf("render: unknown node kind %d", n.Kind())
}
