package vtest

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Harness is a tree mounted into a detached container for a test.
type Harness struct {
	tb      testing.TB
	root    *reconcile.Root
	log     *reconcile.PatchLog
	replica *dom.Node
}

// Mount renders tree into a new div container. opts are passed to the
// root after the harness's own recorder; WithRoot must not be among them.
// The tree is unmounted when the test ends.
func Mount(tb testing.TB, tree *vdom.Node, opts ...reconcile.Option) *Harness {
	tb.Helper()
	h := &Harness{tb: tb, log: &reconcile.PatchLog{}}
	opts = append([]reconcile.Option{reconcile.WithRecorder(h.log)}, opts...)
	h.root = reconcile.NewRoot(dom.NewElement("div", dom.NamespaceHTML), opts...)
	if err := h.root.Render(tree); err != nil {
		tb.Fatalf("vtest: mount: %v", err)
	}
	h.log.Reset()
	h.replica = h.root.Container().Clone()
	tb.Cleanup(h.root.Unmount)
	return h
}

// Update reconciles next against the mounted tree and returns the
// patches of the pass.
func (h *Harness) Update(next *vdom.Node) []reconcile.Patch {
	h.tb.Helper()
	patches, err := h.TryUpdate(next)
	if err != nil {
		h.tb.Fatalf("vtest: update: %v", err)
	}
	return patches
}

// TryUpdate is Update for passes expected to fail. The patches applied
// before the failure are returned with the error.
func (h *Harness) TryUpdate(next *vdom.Node) ([]reconcile.Patch, error) {
	h.tb.Helper()
	err := h.root.Render(next)
	patches := h.log.Take()
	h.replay(patches)
	return patches, err
}

func (h *Harness) replay(patches []reconcile.Patch) {
	h.tb.Helper()
	if err := reconcile.Apply(h.replica, patches); err != nil {
		h.tb.Errorf("vtest: replay: %v", err)
	} else if diff := cmp.Diff(h.Markup(), dom.SerializeChildren(h.replica)); diff != "" {
		h.tb.Errorf("vtest: replayed patches diverge from the live tree (-live +replayed):\n%s", diff)
	}
	h.replica = h.root.Container().Clone()
}

// Dispatch fires an event of type typ at the node at path below the
// container and reports whether a listener ran.
func (h *Harness) Dispatch(path []int, typ string) bool {
	h.tb.Helper()
	target := dom.Resolve(h.root.Container(), path)
	if target == nil {
		h.tb.Fatalf("vtest: no node at path %v", path)
	}
	return dom.Dispatch(target, &dom.Event{Type: typ})
}

// Container returns the live container.
func (h *Harness) Container() *dom.Node { return h.root.Container() }

// Tree returns the mounted tree.
func (h *Harness) Tree() *vdom.Node { return h.root.Tree() }

// Markup serializes the container's children.
func (h *Harness) Markup() string { return dom.SerializeChildren(h.root.Container()) }

// ExpectMarkup asserts the container's markup.
func (h *Harness) ExpectMarkup(want string) {
	h.tb.Helper()
	if diff := cmp.Diff(want, h.Markup()); diff != "" {
		h.tb.Errorf("markup mismatch (-want +got):\n%s", diff)
	}
}
