package reconcile

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/domattrs"
	"github.com/vango-dev/vtree/pkg/render"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Engine reconciles sealed trees against the live tree. An Engine holds no
// per-pass state and may be reused, but passes over one live tree must not
// run concurrently.
type Engine struct {
	root     *dom.Node
	builder  render.Builder
	recorder Recorder
	logger   *slog.Logger
}

// PassObserver is implemented by recorders that want pass timings.
type PassObserver interface {
	ObservePass(d time.Duration, err error)
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Reconcile mutates the live tree that represents prev so that it
// represents next. prev must be built. The error is non-nil only for
// dev-mode validation failures and attribute handler failures; the live
// tree is left as far as the pass got.
func (e *Engine) Reconcile(prev, next *vdom.Node) error {
	if prev == nil || next == nil {
		return fmt.Errorf("reconcile: nil tree")
	}
	if prev.Live() == nil {
		return fmt.Errorf("reconcile: previous tree %s is not built", prev)
	}
	start := time.Now()
	p := &pass{Engine: e}
	err := p.patch(prev, next)
	if obs, ok := e.recorder.(PassObserver); ok {
		obs.ObservePass(time.Since(start), err)
	}
	if err != nil {
		e.logger.Error("reconcile: pass failed", "prev", prev.String(), "next", next.String(), "error", err)
		return err
	}
	e.logger.Debug("reconcile: pass done", "root", next.String(), "changes", p.changes, "duration", time.Since(start))
	return nil
}

// pass is the state of one Reconcile call.
type pass struct {
	*Engine
	changes int
}

func sameType(prev, next *vdom.Node) bool {
	if prev.Kind() != next.Kind() {
		return false
	}
	switch prev.Kind() {
	case vdom.KindTag:
		return prev.Tag() == next.Tag() && prev.Namespace() == next.Namespace()
	case vdom.KindComponent:
		return vdom.SameComponent(prev, next)
	}
	return true
}

// patch reconciles one node pair.
func (p *pass) patch(prev, next *vdom.Node) error {
	if prev == next {
		// A reused sealed subtree is already in place.
		return nil
	}
	if !sameType(prev, next) {
		return p.replace(prev, next)
	}
	if vdom.DevMode() {
		if err := vdom.CheckUnbound(next); err != nil {
			return err
		}
	}

	switch next.Kind() {
	case vdom.KindComponent:
		if err := p.patch(prev.Rendered(), next.Rendered()); err != nil {
			return err
		}
	case vdom.KindText:
		next.Adopt(prev)
		if prev.Text() != next.Text() {
			live := next.Live()
			live.Data = next.Text()
			p.record(Patch{Op: OpUpdateText, Path: p.path(live), Name: TextData, Value: next.Text()})
		}
	case vdom.KindComment:
		next.Adopt(prev)
		if prev.Text() != next.Text() {
			live := next.Live()
			live.Data = next.Text()
			p.record(Patch{Op: OpUpdateComment, Path: p.path(live), Value: next.Text()})
		}
	case vdom.KindTag:
		next.Adopt(prev)
		el := next.Live()
		if err := p.patchAttrs(el, prev, next); err != nil {
			return err
		}
		before := p.changes
		if err := p.patchChildren(prev, next, elementContainer(el)); err != nil {
			return err
		}
		if p.changes != before && next.Tag() == "select" {
			if err := p.reselect(el, next); err != nil {
				return err
			}
		}
	case vdom.KindFragment:
		next.Adopt(prev)
		if err := p.patchChildren(prev, next, rangeContainer(next)); err != nil {
			return err
		}
	}

	if prev.Ref() != next.Ref() {
		prev.Ref().Detach()
		next.Ref().Attach(next.Live())
	}
	return nil
}

// patchAttrs applies the attribute delta to el.
func (p *pass) patchAttrs(el *dom.Node, prev, next *vdom.Node) error {
	for _, c := range vdom.DiffAttrs(prev.Attrs(), next.Attrs()) {
		if c.Listener {
			kind, _ := vdom.EventKind(c.Name)
			switch c.Op {
			case vdom.AttrSet:
				l, ok := c.Value.(dom.Listener)
				if !ok {
					return fmt.Errorf("reconcile: listener %s has type %T", c.Name, c.Value)
				}
				dom.AddListener(el, kind, l)
				if !c.Replaces {
					p.record(Patch{Op: OpSetListener, Path: p.path(el), Name: kind})
				}
			case vdom.AttrRemove:
				dom.RemoveListener(el, kind)
				p.record(Patch{Op: OpRemoveListener, Path: p.path(el), Name: kind})
			}
			continue
		}

		switch c.Op {
		case vdom.AttrSet:
			if err := domattrs.Set(el, c.Name, c.Value); err != nil {
				return err
			}
			p.record(Patch{Op: OpUpdateAttr, Path: p.path(el), Name: c.Name, Value: c.Value})
		case vdom.AttrPatch:
			delta, _ := c.Value.(map[string]any)
			if err := domattrs.Patch(el, c.Name, delta); err != nil {
				return err
			}
			p.record(Patch{Op: OpPatchAttr, Path: p.path(el), Name: c.Name, Value: delta})
		case vdom.AttrRemove:
			if err := domattrs.Remove(el, c.Name); err != nil {
				return err
			}
			p.record(Patch{Op: OpRemoveAttr, Path: p.path(el), Name: c.Name})
		}
	}
	return nil
}

// reselect applies a select's value again after its options changed.
func (p *pass) reselect(el *dom.Node, next *vdom.Node) error {
	v, ok := next.Attrs().Get("value")
	if !ok || v == nil {
		return nil
	}
	if err := domattrs.Set(el, "value", v); err != nil {
		return err
	}
	p.record(Patch{Op: OpUpdateAttr, Path: p.path(el), Name: "value", Value: v})
	return nil
}

// replace unmounts prev, builds next and splices it where prev was.
func (p *pass) replace(prev, next *vdom.Node) error {
	p.logger.Debug("reconcile: replace", "prev", prev.String(), "next", next.String())

	old := prev.LiveNodes()
	if len(old) == 0 {
		return fmt.Errorf("reconcile: %s is not built", prev)
	}
	parent := old[0].Parent()
	Unmount(prev)

	if parent == nil {
		if _, err := p.builder.Build(next, dom.NamespaceHTML); err != nil {
			return err
		}
		Mount(next)
		return nil
	}

	if _, err := p.builder.Build(next, namespaceOf(parent)); err != nil {
		return err
	}
	fresh := next.LiveNodes()
	if len(old) == 1 && len(fresh) == 1 {
		idx := old[0].Index()
		parent.ReplaceChild(fresh[0], old[0])
		p.record(Patch{Op: OpReplace, Path: p.path(parent), Index: idx, Node: next})
	} else {
		p.insertNodes(parent, fresh, old[0], next)
		for _, x := range old {
			p.removeLive(parent, x)
		}
	}
	Mount(next)
	return nil
}

// insertNodes inserts the live nodes of n before ref and records it.
func (p *pass) insertNodes(parent *dom.Node, nodes []*dom.Node, ref *dom.Node, n *vdom.Node) {
	if len(nodes) == 0 {
		return
	}
	for _, x := range nodes {
		parent.InsertBefore(x, ref)
	}
	op := OpInsertChild
	if ref == nil {
		op = OpAppendChild
	}
	p.record(Patch{Op: op, Path: p.path(parent), Index: nodes[0].Index(), Node: n})
}

// removeLive detaches one live node and records it.
func (p *pass) removeLive(parent, x *dom.Node) {
	p.record(Patch{Op: OpRemoveChild, Path: p.path(parent), Index: x.Index()})
	parent.RemoveChild(x)
}

func (p *pass) record(patch Patch) {
	p.changes++
	if p.recorder != nil {
		p.recorder.Record(patch)
	}
}

// path returns the child-index path of n from the engine root. It is only
// computed when a recorder is set.
func (e *Engine) path(n *dom.Node) []int {
	if e.recorder == nil {
		return nil
	}
	var rev []int
	for x := n; x != e.root && x.Parent() != nil; x = x.Parent() {
		rev = append(rev, x.Index())
	}
	path := make([]int, len(rev))
	for i, v := range rev {
		path[len(rev)-1-i] = v
	}
	return path
}

// namespaceOf returns the namespace children of parent are created in.
func namespaceOf(parent *dom.Node) string {
	for x := parent; x != nil; x = x.Parent() {
		if x.Type == dom.ElementNode {
			return x.Namespace
		}
	}
	return dom.NamespaceHTML
}
