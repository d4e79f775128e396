package reconcile

import (
	"fmt"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/domattrs"
	"github.com/vango-dev/vtree/pkg/render"
)

// Apply replays patches, in order, against root: a copy of the live tree
// the patches were recorded from, as it was before the pass. Listeners are
// not replayed; SetListener is a no-op.
func Apply(root *dom.Node, patches []Patch) error {
	for i, p := range patches {
		if err := apply(root, p); err != nil {
			return fmt.Errorf("reconcile: patch %d (%s at %v): %w", i, p.Op, p.Path, err)
		}
	}
	return nil
}

func apply(root *dom.Node, p Patch) error {
	target := dom.Resolve(root, p.Path)
	if target == nil {
		return fmt.Errorf("no node at path")
	}

	switch p.Op {
	case OpAppendChild, OpInsertChild:
		nodes, err := materialize(p, target)
		if err != nil {
			return err
		}
		ref := target.Child(p.Index)
		if p.Op == OpAppendChild {
			ref = nil
		}
		for _, x := range nodes {
			target.InsertBefore(x, ref)
		}
	case OpMoveChild:
		x := target.Child(p.Index)
		to, ok := p.Value.(int)
		if x == nil || !ok {
			return fmt.Errorf("bad move %d -> %v", p.Index, p.Value)
		}
		target.RemoveChild(x)
		target.InsertBefore(x, target.Child(to))
	case OpRemoveChild:
		x := target.Child(p.Index)
		if x == nil {
			return fmt.Errorf("no child %d", p.Index)
		}
		target.RemoveChild(x)
	case OpReplace:
		old := target.Child(p.Index)
		if old == nil {
			return fmt.Errorf("no child %d", p.Index)
		}
		nodes, err := materialize(p, target)
		if err != nil {
			return err
		}
		for _, x := range nodes {
			target.InsertBefore(x, old)
		}
		target.RemoveChild(old)
	case OpUpdateAttr:
		return domattrs.Set(target, p.Name, p.Value)
	case OpPatchAttr:
		delta, _ := p.Value.(map[string]any)
		return domattrs.Patch(target, p.Name, delta)
	case OpRemoveAttr:
		return domattrs.Remove(target, p.Name)
	case OpUpdateText:
		text, _ := p.Value.(string)
		switch p.Name {
		case TextData:
			target.Data = text
		case TextHTML:
			return render.SetText(target, text, true)
		default:
			return render.SetText(target, text, false)
		}
	case OpUpdateComment:
		target.Data, _ = p.Value.(string)
	case OpRemoveText, OpRemoveChildren:
		target.RemoveChildren()
	case OpRemoveListener:
		dom.RemoveListener(target, p.Name)
	case OpSetListener:
	default:
		return fmt.Errorf("unknown op")
	}
	return nil
}

func materialize(p Patch, parent *dom.Node) ([]*dom.Node, error) {
	if p.Node == nil {
		return nil, fmt.Errorf("missing node")
	}
	return render.Materialize(p.Node, namespaceOf(parent))
}
