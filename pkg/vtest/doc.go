// Package vtest provides testing helpers for element trees.
//
// Render assertions check the markup of a tree without mounting it:
//
//	vtest.ExpectContains(t, vdom.P(vdom.InnerText("hi")), "<p>hi</p>")
//
// A Harness mounts a tree into a detached container and reconciles every
// following tree against it. Each Update also replays the recorded
// patches onto a copy of the previous container and fails the test if the
// copy does not end up with the same markup:
//
//	h := vtest.Mount(t, list("a", "b"))
//	patches := h.Update(list("b", "a"))
//	vtest.ExpectOps(t, patches, reconcile.OpMoveChild)
//	h.ExpectMarkup("<ul><li>b</li><li>a</li></ul>")
//
// Events are dispatched by child-index path from the container:
//
//	h.Dispatch([]int{0, 0}, "click")
package vtest
