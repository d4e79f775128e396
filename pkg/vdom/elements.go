package vdom

import (
	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/dom"
)

// content is the argument produced by InnerText and InnerHTML.
type content struct {
	s   string
	raw bool
}

// InnerText sets escaped text children on an element.
func InnerText(s string) any { return content{s: s} }

// InnerHTML sets raw markup children on an element.
// Use with caution: the content is not escaped.
func InnerHTML(s string) any { return content{s: s, raw: true} }

// El creates a sealed tag node. Arguments can be: nil, Attr, []Attr, *Node,
// []*Node, *Builder, Component, string (a text child) and the values of
// InnerText or InnerHTML. Attr names "key", "ref" and "xmlns" set the key,
// reference capability and namespace instead of attributes.
func El(tag string, args ...any) *Node {
	return createElement(tag, "", args)
}

func createElement(tag, ns string, args []any) *Node {
	b := NewTag(tag)
	if ns != "" {
		b.Ns(ns)
	}
	var (
		nodes []*Node
		text  *content
	)
	applyAttr := func(a Attr) {
		switch a.Name {
		case "":
		case "key":
			if s, ok := a.Value.(string); ok {
				b.Key(s)
			}
		case "ref":
			if r, ok := a.Value.(*Ref); ok {
				b.Ref(r)
			}
		case "xmlns":
			if s, ok := a.Value.(string); ok {
				b.ns = s
			}
		default:
			b.Attr(a.Name, a.Value)
		}
	}

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional attributes)
		case Attr:
			applyAttr(v)
		case []Attr:
			for _, a := range v {
				applyAttr(a)
			}
		case content:
			text = &v
		default:
			nodes = appendChild(nodes, arg)
		}
	}

	switch {
	case text != nil && len(nodes) > 0:
		if DevMode() {
			panic(errors.New(errors.CodeMixedChildren).WithDetailf("<%s> has both text content and child nodes", tag))
		}
		b.Children(toAny(nodes)...)
	case text != nil && text.raw:
		b.HTML(text.s)
	case text != nil:
		b.Text(text.s)
	case len(nodes) > 0:
		b.Children(toAny(nodes)...)
	}
	return b.Seal()
}

func toAny(nodes []*Node) []any {
	out := make([]any, len(nodes))
	for i, n := range nodes {
		out[i] = n
	}
	return out
}

// Document structure elements

func Html(args ...any) *Node  { return El("html", args...) }
func Head(args ...any) *Node  { return El("head", args...) }
func Body(args ...any) *Node  { return El("body", args...) }
func Title(args ...any) *Node { return El("title", args...) }

// Content sectioning elements

func Header(args ...any) *Node  { return El("header", args...) }
func Footer(args ...any) *Node  { return El("footer", args...) }
func Main(args ...any) *Node    { return El("main", args...) }
func Nav(args ...any) *Node     { return El("nav", args...) }
func Section(args ...any) *Node { return El("section", args...) }
func Article(args ...any) *Node { return El("article", args...) }
func H1(args ...any) *Node      { return El("h1", args...) }
func H2(args ...any) *Node      { return El("h2", args...) }
func H3(args ...any) *Node      { return El("h3", args...) }

// Text content elements

func Div(args ...any) *Node  { return El("div", args...) }
func P(args ...any) *Node    { return El("p", args...) }
func Span(args ...any) *Node { return El("span", args...) }
func Pre(args ...any) *Node  { return El("pre", args...) }
func Ul(args ...any) *Node   { return El("ul", args...) }
func Ol(args ...any) *Node   { return El("ol", args...) }
func Li(args ...any) *Node   { return El("li", args...) }
func Hr(args ...any) *Node   { return El("hr", args...) }

// Inline text semantics

func A(args ...any) *Node      { return El("a", args...) }
func Strong(args ...any) *Node { return El("strong", args...) }
func Em(args ...any) *Node     { return El("em", args...) }
func B(args ...any) *Node      { return El("b", args...) }
func Code(args ...any) *Node   { return El("code", args...) }
func Br(args ...any) *Node     { return El("br", args...) }

// Embedded content

func Img(args ...any) *Node { return El("img", args...) }

// Forms

func Form(args ...any) *Node     { return El("form", args...) }
func Label(args ...any) *Node    { return El("label", args...) }
func Input(args ...any) *Node    { return El("input", args...) }
func Button(args ...any) *Node   { return El("button", args...) }
func Select(args ...any) *Node   { return El("select", args...) }
func Option(args ...any) *Node   { return El("option", args...) }
func Optgroup(args ...any) *Node { return El("optgroup", args...) }
func Textarea(args ...any) *Node { return El("textarea", args...) }

// SVG elements carry the SVG namespace; their descendants inherit it.

func Svg(args ...any) *Node    { return createElement("svg", dom.NamespaceSVG, args) }
func G(args ...any) *Node      { return El("g", args...) }
func Circle(args ...any) *Node { return El("circle", args...) }
func Rect(args ...any) *Node   { return El("rect", args...) }
func Path(args ...any) *Node   { return El("path", args...) }
