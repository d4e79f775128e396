// Package dom is the live rendering target for vtree.
//
// A Node is a mutable document node (element, text or comment) with parent
// and child links, string attributes and a per-node listener registry. The
// reconciler mutates Nodes; nothing else in vtree does.
//
// Serialize produces canonical markup for a subtree: attributes sorted by
// name, void elements self-closed, xmlns emitted where the namespace changes.
// ParseFragment goes the other way using golang.org/x/net/html, which is how
// server-rendered markup becomes live nodes that can be adopted.
package dom
