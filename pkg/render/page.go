package render

import (
	"io"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// PageData contains all data needed to render a complete HTML page around a
// tree.
type PageData struct {
	// Body is rendered inside the root container.
	Body *vdom.Node

	// Title is the page title
	Title string

	// Lang is the language attribute for the html element
	// Defaults to "en" if not specified
	Lang string

	// RootID is the id of the container element holding Body.
	// Defaults to "root".
	RootID string

	// ClientScript is the path of the patch-applying client script.
	// No script tag is written when empty.
	ClientScript string

	// StyleSheets contains paths to external stylesheets
	StyleSheets []string
}

// RenderPage renders a complete HTML document to the given writer.
func (r *Renderer) RenderPage(w io.Writer, page PageData) error {
	lang := page.Lang
	if lang == "" {
		lang = "en"
	}
	rootID := page.RootID
	if rootID == "" {
		rootID = "root"
	}

	sw := &stringWriter{w: w, r: r}
	sw.write("<!DOCTYPE html>\n")
	sw.write(`<html lang="`, dom.EscapeAttr(lang), `">`, "\n<head>\n")
	sw.write(`<meta charset="utf-8"/>`, "\n")
	if page.Title != "" {
		sw.write("<title>", dom.EscapeText(page.Title), "</title>\n")
	}
	for _, href := range page.StyleSheets {
		sw.write(`<link rel="stylesheet" href="`, dom.EscapeAttr(href), `"/>`, "\n")
	}
	sw.write("</head>\n<body>\n")
	sw.write(`<div id="`, dom.EscapeAttr(rootID), `">`)
	sw.node(page.Body, dom.NamespaceHTML, nil, 0)
	sw.write("</div>\n")
	if page.ClientScript != "" {
		sw.write(`<script src="`, dom.EscapeAttr(page.ClientScript), `" defer></script>`, "\n")
	}
	sw.write("</body>\n</html>\n")
	return sw.err
}
