package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/domattrs"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// RendererConfig configures the string renderer.
type RendererConfig struct {
	// Pretty enables indented output. Pretty markup is for reading only;
	// it does not match the live backend.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string
}

// Renderer serializes sealed trees to markup.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

var defaultRenderer = NewRenderer(RendererConfig{})

// RenderToString serializes n with the default configuration.
func RenderToString(n *vdom.Node) (string, error) {
	return defaultRenderer.RenderToString(n)
}

// RenderToString renders a tree to a markup string.
func (r *Renderer) RenderToString(n *vdom.Node) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a tree to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, n *vdom.Node) error {
	sw := &stringWriter{w: w, r: r}
	sw.node(n, dom.NamespaceHTML, nil, 0)
	return sw.err
}

// selection is the select value in effect for option descendants.
type selection struct {
	set map[string]bool
}

// stringWriter writes markup and keeps the first write error.
type stringWriter struct {
	w   io.Writer
	r   *Renderer
	err error
}

func (s *stringWriter) write(strs ...string) {
	for _, str := range strs {
		if s.err != nil {
			return
		}
		_, s.err = io.WriteString(s.w, str)
	}
}

// newline starts a new indented line in pretty mode.
func (s *stringWriter) newline(depth int) {
	if !s.r.config.Pretty {
		return
	}
	s.write("\n")
	for i := 0; i < depth; i++ {
		s.write(s.r.config.Indent)
	}
}

// node dispatches rendering based on node kind.
func (s *stringWriter) node(n *vdom.Node, parentNs string, sel *selection, depth int) {
	if n == nil || s.err != nil {
		return
	}
	switch n.Kind() {
	case vdom.KindTag:
		s.element(n, parentNs, sel, depth)
	case vdom.KindText:
		s.write(dom.EscapeText(n.Text()))
	case vdom.KindComment:
		s.write("<!--", n.Text(), "-->")
	case vdom.KindFragment:
		s.write("<!--", FragmentStart, "-->")
		for _, c := range n.Children().Nodes() {
			s.node(c, parentNs, sel, depth)
		}
		s.write("<!--", FragmentEnd, "-->")
	case vdom.KindComponent:
		s.node(n.Rendered(), parentNs, sel, depth)
	default:
		s.err = fmt.Errorf("render: unknown node kind %d", n.Kind())
	}
}

// element renders a tag with its attributes and children.
func (s *stringWriter) element(n *vdom.Node, parentNs string, sel *selection, depth int) {
	tag := n.Tag()
	ns := EffectiveNamespace(n, parentNs)

	if depth > 0 {
		s.newline(depth)
	}
	s.write("<", tag)
	if ns != parentNs {
		s.write(` xmlns="`, dom.EscapeAttr(ns), `"`)
	}
	for _, a := range markupAttrs(n, ns, sel) {
		s.write(" ", a.Name, `="`, dom.EscapeAttr(a.Value), `"`)
	}
	if dom.IsVoid(tag, ns) {
		s.write("/>")
		return
	}
	s.write(">")

	attrs := n.Attrs()
	switch {
	case ns == dom.NamespaceHTML && tag == "textarea" && attrs.Has("value"):
		v, ok, err := domattrs.Format(attrs.Value("value"))
		if err != nil {
			s.err = err
			return
		}
		if ok {
			s.write(dom.EscapeText(v))
		}
	case n.Children() == nil:
	case n.Children().Kind() == vdom.ChildrenText:
		if n.RawText() {
			s.write(n.Children().Text())
		} else {
			s.write(dom.EscapeText(n.Children().Text()))
		}
	default:
		if ns == dom.NamespaceHTML && tag == "select" && attrs.Has("value") {
			sel = &selection{set: domattrs.Selection(attrs.Value("value"))}
		}
		kids := n.Children().Nodes()
		for _, c := range kids {
			s.node(c, ns, sel, depth+1)
		}
		if len(kids) > 0 {
			s.newline(depth)
		}
	}
	s.write("</", tag, ">")
}

// markupAttrs returns the attributes written for n in name order. Listener
// and nil values are skipped. Under a select value, an option's selected
// attribute reflects the selection.
func markupAttrs(n *vdom.Node, ns string, sel *selection) []dom.Attr {
	tag := n.Tag()
	isOption := sel != nil && ns == dom.NamespaceHTML && tag == "option"
	var out []dom.Attr
	n.Attrs().Range(func(name string, v any) bool {
		if v == nil || vdom.IsEventAttr(name) || (isOption && name == "selected") {
			return true
		}
		if str, ok := domattrs.String(formTag(tag, ns), name, v); ok {
			out = append(out, dom.Attr{Name: name, Value: str})
		}
		return true
	})
	if isOption && sel.set[optionValue(n)] {
		out = append(out, dom.Attr{Name: "selected", Value: ""})
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	}
	return out
}

// formTag hides the form-control rules from foreign elements.
func formTag(tag, ns string) string {
	if ns != dom.NamespaceHTML {
		return ""
	}
	return tag
}

// optionValue mirrors domattrs.OptionValue on a sealed option.
func optionValue(n *vdom.Node) string {
	if v := n.Attrs().Value("value"); v != nil {
		if s, ok := domattrs.String("option", "value", v); ok {
			return s
		}
	}
	return textContent(n)
}

func textContent(n *vdom.Node) string {
	switch n.Kind() {
	case vdom.KindText:
		return n.Text()
	case vdom.KindComponent:
		return textContent(n.Rendered())
	case vdom.KindComment:
		return ""
	}
	c := n.Children()
	if c == nil {
		return ""
	}
	if c.Kind() == vdom.ChildrenText {
		return c.Text()
	}
	var out string
	for _, k := range c.Nodes() {
		out += textContent(k)
	}
	return out
}

// EffectiveNamespace returns the namespace n is created in: its declared
// namespace, or the inherited one.
func EffectiveNamespace(n *vdom.Node, parentNs string) string {
	if ns := n.Namespace(); ns != "" {
		return ns
	}
	return parentNs
}

// Fragment range markers, written as comments.
const (
	FragmentStart = "["
	FragmentEnd   = "]"
)
