package reconcile

import (
	"fmt"
	"sync"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/render"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Root owns the tree rendered into one container element. The first Render
// builds, later ones reconcile against the previous tree. Root is safe for
// concurrent use; passes are serialized.
type Root struct {
	mu        sync.Mutex
	container *dom.Node
	engine    *Engine
	tree      *vdom.Node
}

// NewRoot creates a Root for container. Patch paths are relative to the
// container unless an option says otherwise.
func NewRoot(container *dom.Node, opts ...Option) *Root {
	return &Root{
		container: container,
		engine:    New(append([]Option{WithRoot(container)}, opts...)...),
	}
}

// Container returns the container element.
func (r *Root) Container() *dom.Node { return r.container }

// Tree returns the tree last rendered or hydrated, or nil.
func (r *Root) Tree() *vdom.Node {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tree
}

// Render makes the container show next.
func (r *Root) Render(next *vdom.Node) error {
	if next == nil {
		return fmt.Errorf("reconcile: nil tree")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.tree != nil {
		if err := r.engine.Reconcile(r.tree, next); err != nil {
			return err
		}
		r.tree = next
		return nil
	}

	p := &pass{Engine: r.engine}
	if _, err := p.builder.Build(next, namespaceOf(r.container)); err != nil {
		return err
	}
	p.insertNodes(r.container, next.LiveNodes(), nil, next)
	Mount(next)
	r.tree = next
	return nil
}

// Hydrate binds tree to the nodes already in the container, typically
// parsed from server-rendered markup, and mounts it. Every container child
// must be claimed.
func (r *Root) Hydrate(tree *vdom.Node) error {
	if tree == nil {
		return fmt.Errorf("reconcile: nil tree")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.tree != nil {
		return fmt.Errorf("reconcile: root already holds %s", r.tree)
	}
	left, err := render.AdoptInto(tree, r.container)
	if err != nil {
		Unmount(tree)
		return err
	}
	if left > 0 {
		Unmount(tree)
		return errors.New(errors.CodeAdoptMismatch).
			WithDetailf("%d container nodes left unclaimed", left).
			WithPath(tree.String())
	}
	Mount(tree)
	r.tree = tree
	return nil
}

// Unmount releases the tree and removes its nodes from the container. It
// is a no-op on an empty root.
func (r *Root) Unmount() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.tree == nil {
		return
	}
	p := &pass{Engine: r.engine}
	live := r.tree.LiveNodes()
	Unmount(r.tree)
	for _, x := range live {
		p.removeLive(r.container, x)
	}
	r.tree = nil
}
