package vdom

import "github.com/vango-dev/vtree/pkg/dom"

// Ref is a reference capability: a callback that receives the live node when
// its owner is mounted and nil when it is unmounted. Refs compare by
// identity, so the same *Ref on both sides of a patch means no transition.
type Ref struct {
	fn func(*dom.Node)
}

// NewRef wraps fn as a reference capability.
func NewRef(fn func(*dom.Node)) *Ref {
	return &Ref{fn: fn}
}

// Capture returns a ref that stores the live node in *dst.
func Capture(dst **dom.Node) *Ref {
	return NewRef(func(n *dom.Node) { *dst = n })
}

// Attach calls the callback with the live node. It is safe on a nil Ref.
func (r *Ref) Attach(n *dom.Node) {
	if r == nil || r.fn == nil {
		return
	}
	r.fn(n)
}

// Detach calls the callback with nil.
func (r *Ref) Detach() { r.Attach(nil) }
