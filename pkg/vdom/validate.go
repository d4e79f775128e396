package vdom

import "github.com/vango-dev/vtree/internal/errors"

// CheckKeys reports the first duplicate key among siblings as a V101 error.
func CheckKeys(parent *Node, nodes []*Node) error {
	var seen map[string]int
	for i, n := range nodes {
		k, ok := n.Key()
		if !ok {
			continue
		}
		if seen == nil {
			seen = make(map[string]int, len(nodes))
		}
		if j, dup := seen[k]; dup {
			return errors.New(errors.CodeDuplicateKey).
				WithDetailf("key %q at positions %d and %d", k, j, i).
				WithPath(parent.String())
		}
		seen[k] = i
	}
	return nil
}

// CheckUnbound reports a V102 error when n is already bound to a live node,
// which happens when one sealed node is placed at two positions.
func CheckUnbound(n *Node) error {
	if n.Live() == nil {
		return nil
	}
	return errors.New(errors.CodeNodeReused).WithPath(n.String())
}
