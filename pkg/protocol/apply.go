package protocol

import (
	"fmt"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/domattrs"
	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/render"
)

// Apply replays wire patches, in order, against root: the receiving copy
// of the container the patches were recorded against.
func Apply(root *dom.Node, patches []Patch) error {
	for i := range patches {
		p := &patches[i]
		if err := apply(root, p); err != nil {
			return fmt.Errorf("protocol: apply patch %d (%s at %v): %w", i, p.Op, p.Path, err)
		}
	}
	return nil
}

func apply(root *dom.Node, p *Patch) error {
	target := dom.Resolve(root, p.Path)
	if target == nil {
		return fmt.Errorf("no node at path")
	}

	switch p.Op {
	case reconcile.OpAppendChild, reconcile.OpInsertChild:
		var ref *dom.Node
		if p.Op == reconcile.OpInsertChild {
			ref = target.Child(p.Index)
		}
		for _, w := range p.Nodes {
			target.InsertBefore(w.DOM(), ref)
		}
	case reconcile.OpReplace:
		old := target.Child(p.Index)
		if old == nil {
			return fmt.Errorf("no child %d", p.Index)
		}
		for _, w := range p.Nodes {
			target.InsertBefore(w.DOM(), old)
		}
		target.RemoveChild(old)
	case reconcile.OpMoveChild:
		x := target.Child(p.Index)
		to, ok := p.Value.(int)
		if x == nil || !ok {
			return fmt.Errorf("bad move %d -> %v", p.Index, p.Value)
		}
		target.RemoveChild(x)
		target.InsertBefore(x, target.Child(to))
	case reconcile.OpRemoveChild:
		x := target.Child(p.Index)
		if x == nil {
			return fmt.Errorf("no child %d", p.Index)
		}
		target.RemoveChild(x)
	case reconcile.OpUpdateAttr:
		return domattrs.Set(target, p.Name, p.Value)
	case reconcile.OpPatchAttr:
		delta, ok := p.Value.(map[string]any)
		if !ok {
			return fmt.Errorf("patch value has type %T", p.Value)
		}
		return domattrs.Patch(target, p.Name, delta)
	case reconcile.OpRemoveAttr:
		return domattrs.Remove(target, p.Name)
	case reconcile.OpUpdateText:
		text, _ := p.Value.(string)
		switch p.Name {
		case reconcile.TextData:
			target.Data = text
		case reconcile.TextHTML:
			return render.SetText(target, text, true)
		default:
			return render.SetText(target, text, false)
		}
	case reconcile.OpUpdateComment:
		target.Data, _ = p.Value.(string)
	case reconcile.OpRemoveText, reconcile.OpRemoveChildren:
		target.RemoveChildren()
	case reconcile.OpSetListener, reconcile.OpRemoveListener:
		// Listeners live on the server.
	default:
		return fmt.Errorf("unknown op")
	}
	return nil
}
