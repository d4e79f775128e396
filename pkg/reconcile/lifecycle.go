package reconcile

import (
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Mount attaches refs bottom-up once n's live nodes are placed, so a ref
// callback sees a fully built subtree. Unbuilt nodes are skipped.
func Mount(n *vdom.Node) {
	if n == nil || n.Live() == nil {
		return
	}
	switch n.Kind() {
	case vdom.KindComponent:
		Mount(n.Rendered())
	case vdom.KindTag, vdom.KindFragment:
		if c := n.Children(); c != nil {
			for _, child := range c.Nodes() {
				Mount(child)
			}
		}
	}
	n.Ref().Attach(n.Live())
}

// Unmount releases n bottom-up: listeners are unbound, refs receive nil and
// the live back-references are dropped. Live nodes stay where they are;
// removing them is the caller's job.
func Unmount(n *vdom.Node) {
	if n == nil || n.Live() == nil {
		return
	}
	switch n.Kind() {
	case vdom.KindComponent:
		Unmount(n.Rendered())
		n.Ref().Detach()
		return
	case vdom.KindTag, vdom.KindFragment:
		if c := n.Children(); c != nil {
			for _, child := range c.Nodes() {
				Unmount(child)
			}
		}
	}
	if n.Kind() == vdom.KindTag {
		dom.RemoveListeners(n.Live())
	}
	n.Ref().Detach()
	n.Release()
}
