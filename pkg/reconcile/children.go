package reconcile

import (
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/render"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// container is the span of live siblings a child list occupies: all of an
// element's children, or the nodes between a fragment's markers.
type container struct {
	parent     *dom.Node
	start, end *dom.Node // markers; nil for an element
	ns         string
}

func elementContainer(el *dom.Node) container {
	return container{parent: el, ns: el.Namespace}
}

func rangeContainer(n *vdom.Node) container {
	start := n.Live()
	parent := start.Parent()
	return container{parent: parent, start: start, end: n.LiveEnd(), ns: namespaceOf(parent)}
}

// after returns the node a child placed right after x goes before. A nil x
// means the start of the container.
func (c container) after(x *dom.Node) *dom.Node {
	if x == nil {
		return c.parent.FirstChild()
	}
	return x.NextSibling()
}

// patchChildren reconciles the child lists of a same-typed pair.
func (p *pass) patchChildren(prev, next *vdom.Node, c container) error {
	pc, nc := prev.Children(), next.Children()
	if pc == nil && nc == nil {
		return nil
	}

	if nc != nil && nc.Kind() == vdom.ChildrenText {
		return p.patchText(prev, next, c.parent)
	}

	if nc == nil || nc.Len() == 0 {
		switch {
		case pc == nil:
		case pc.Kind() == vdom.ChildrenText:
			p.removeText(c.parent, pc)
		case pc.Len() > 0:
			p.clear(pc.Nodes(), c)
		}
		return nil
	}

	if vdom.DevMode() {
		if err := vdom.CheckKeys(next, nc.Nodes()); err != nil {
			return err
		}
	}

	if pc == nil || pc.Kind() == vdom.ChildrenText || pc.Len() == 0 {
		if pc != nil && pc.Kind() == vdom.ChildrenText {
			p.removeText(c.parent, pc)
		}
		for _, n := range nc.Nodes() {
			if err := p.place(n, c, c.end); err != nil {
				return err
			}
		}
		return nil
	}

	return p.patchKeyed(pc.Nodes(), nc.Nodes(), c)
}

// patchText handles a next child list that is text.
func (p *pass) patchText(prev, next *vdom.Node, el *dom.Node) error {
	pc, text := prev.Children(), next.Children().Text()
	if pc != nil && pc.Kind() == vdom.ChildrenText {
		if pc.Text() == text && prev.RawText() == next.RawText() {
			return nil
		}
	} else if pc != nil && pc.Len() > 0 {
		p.clear(pc.Nodes(), elementContainer(el))
		if text == "" {
			return nil
		}
	} else if text == "" {
		return nil
	}

	if err := render.SetText(el, text, next.RawText()); err != nil {
		return err
	}
	name := TextContent
	if next.RawText() {
		name = TextHTML
	}
	p.record(Patch{Op: OpUpdateText, Path: p.path(el), Name: name, Value: text})
	return nil
}

func (p *pass) removeText(el *dom.Node, pc *vdom.Children) {
	if pc.Text() == "" && el.ChildCount() == 0 {
		return
	}
	el.RemoveChildren()
	p.record(Patch{Op: OpRemoveText, Path: p.path(el)})
}

// clear unmounts nodes and removes their live nodes. An element drops all
// children at once; a fragment range removes node by node.
func (p *pass) clear(nodes []*vdom.Node, c container) {
	var live []*dom.Node
	if c.start != nil {
		for _, n := range nodes {
			live = append(live, n.LiveNodes()...)
		}
	}
	for _, n := range nodes {
		Unmount(n)
	}
	if c.start == nil {
		c.parent.RemoveChildren()
		p.record(Patch{Op: OpRemoveChildren, Path: p.path(c.parent)})
		return
	}
	for _, x := range live {
		p.removeLive(c.parent, x)
	}
}

// place builds n, inserts it before ref and mounts it.
func (p *pass) place(n *vdom.Node, c container, ref *dom.Node) error {
	if _, err := p.builder.Build(n, c.ns); err != nil {
		return err
	}
	p.insertNodes(c.parent, n.LiveNodes(), ref, n)
	Mount(n)
	return nil
}

// move puts the live nodes of n before ref.
func (p *pass) move(n *vdom.Node, c container, ref *dom.Node) {
	for _, x := range n.LiveNodes() {
		from := x.Index()
		c.parent.InsertBefore(x, ref)
		p.record(Patch{Op: OpMoveChild, Path: p.path(c.parent), Index: from, Value: x.Index()})
	}
}

// patchKeyed reconciles two non-empty child lists. Keyed children match by
// key, the rest by position among the unkeyed ones. Unmatched old children
// are removed first; then the new list is walked in order, moving only the
// matched children outside the longest run that kept its relative order.
func (p *pass) patchKeyed(prevNodes, nextNodes []*vdom.Node, c container) error {
	keyed := make(map[string]int)
	var unkeyed []int
	for i, n := range prevNodes {
		k, ok := n.Key()
		if !ok {
			unkeyed = append(unkeyed, i)
			continue
		}
		if _, dup := keyed[k]; !dup {
			keyed[k] = i
		}
	}

	source := make([]int, len(nextNodes))
	matched := make([]bool, len(prevNodes))
	u := 0
	for j, n := range nextNodes {
		source[j] = -1
		if k, ok := n.Key(); ok {
			if i, ok := keyed[k]; ok && !matched[i] {
				source[j] = i
				matched[i] = true
			}
			continue
		}
		if u < len(unkeyed) {
			i := unkeyed[u]
			u++
			source[j] = i
			matched[i] = true
		}
	}

	for i, n := range prevNodes {
		if matched[i] {
			continue
		}
		live := n.LiveNodes()
		Unmount(n)
		for _, x := range live {
			p.removeLive(c.parent, x)
		}
	}

	stable := longestIncreasing(source)
	after := c.start
	for j, n := range nextNodes {
		ref := c.after(after)
		if i := source[j]; i >= 0 {
			old := prevNodes[i]
			if !stable[j] && old.Live() != ref {
				p.move(old, c, ref)
			}
			if err := p.patch(old, n); err != nil {
				return err
			}
		} else if err := p.place(n, c, ref); err != nil {
			return err
		}
		after = n.LiveEnd()
	}
	return nil
}

// longestIncreasing marks the positions of one longest strictly increasing
// subsequence of the non-negative entries of source.
func longestIncreasing(source []int) []bool {
	stable := make([]bool, len(source))
	var tails []int // positions in source
	prev := make([]int, len(source))
	for j, v := range source {
		if v < 0 {
			continue
		}
		lo, hi := 0, len(tails)
		for lo < hi {
			mid := (lo + hi) / 2
			if source[tails[mid]] < v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if lo > 0 {
			prev[j] = tails[lo-1]
		} else {
			prev[j] = -1
		}
		if lo == len(tails) {
			tails = append(tails, j)
		} else {
			tails[lo] = j
		}
	}
	if len(tails) == 0 {
		return stable
	}
	for j := tails[len(tails)-1]; j >= 0; j = prev[j] {
		stable[j] = true
	}
	return stable
}
