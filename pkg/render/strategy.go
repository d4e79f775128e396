package render

import (
	"fmt"
	"strings"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Strategy selects how Builder creates live nodes.
type Strategy uint8

const (
	// StrategyLive creates every node directly.
	StrategyLive Strategy = iota
	// StrategyMarkup serializes the subtree, parses the markup and adopts
	// the parsed nodes. Large static subtrees are cheaper this way on
	// targets with a fast native parser.
	StrategyMarkup
)

// String returns the name of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyLive:
		return "live"
	case StrategyMarkup:
		return "markup"
	default:
		return "unknown"
	}
}

// ParseStrategy parses a strategy name.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "", "live":
		return StrategyLive, nil
	case "markup":
		return StrategyMarkup, nil
	}
	return StrategyLive, fmt.Errorf("render: unknown strategy %q", name)
}

// Builder creates live nodes for subtrees with a chosen strategy.
type Builder struct {
	Strategy Strategy
	Renderer *Renderer
}

// Build creates and binds the live nodes for n, like BuildLive.
func (b Builder) Build(n *vdom.Node, parentNs string) (*dom.Node, error) {
	if b.Strategy != StrategyMarkup {
		return BuildLive(n, parentNs)
	}
	holder, err := b.parse(n, parentNs)
	if err != nil {
		return nil, err
	}
	a := &adopter{nodes: holder.ChildNodes(), parent: holder}
	if _, err := a.adopt(n, 0); err != nil {
		return nil, fmt.Errorf("render: adopt parsed markup: %w", err)
	}
	return n.Live(), nil
}

// Insert builds n and inserts its live nodes into parent before ref.
func (b Builder) Insert(n *vdom.Node, parent, ref *dom.Node, parentNs string) error {
	if b.Strategy != StrategyMarkup {
		return Insert(n, parent, ref, parentNs)
	}
	if _, err := b.Build(n, parentNs); err != nil {
		return err
	}
	for _, x := range n.LiveNodes() {
		parent.InsertBefore(x, ref)
	}
	return nil
}

// parse renders n and parses the markup into a fragment holder, in a
// context that accepts any content of the parent namespace.
func (b Builder) parse(n *vdom.Node, parentNs string) (*dom.Node, error) {
	r := b.Renderer
	if r == nil || r.config.Pretty {
		r = defaultRenderer
	}
	var markup strings.Builder
	sw := &stringWriter{w: &markup, r: r}
	sw.node(n, parentNs, nil, 0)
	if sw.err != nil {
		return nil, sw.err
	}

	var context *dom.Node
	switch parentNs {
	case dom.NamespaceSVG:
		context = dom.NewElement("svg", dom.NamespaceSVG)
	case dom.NamespaceMathML:
		context = dom.NewElement("math", dom.NamespaceMathML)
	default:
		context = dom.NewElement("template", dom.NamespaceHTML)
	}
	nodes, err := dom.ParseFragment(markup.String(), context)
	if err != nil {
		return nil, err
	}
	holder := dom.NewFragment()
	for _, x := range nodes {
		holder.AppendChild(x)
	}
	return holder, nil
}
