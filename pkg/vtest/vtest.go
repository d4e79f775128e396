package vtest

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/render"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// RenderToString renders a tree to markup, or "" if it cannot be
// rendered.
func RenderToString(node *vdom.Node) string {
	html, err := render.RenderToString(node)
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains asserts that the rendered markup contains expected.
func ExpectContains(t testing.TB, node *vdom.Node, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that the rendered markup does not contain
// unexpected.
func ExpectNotContains(t testing.TB, node *vdom.Node, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that the rendered markup contains a tag element.
func ExpectElement(t testing.TB, node *vdom.Node, tag string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, "<"+tag+">") && !strings.Contains(html, "<"+tag+" ") {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that the rendered markup contains attr="value".
func ExpectAttribute(t testing.TB, node *vdom.Node, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// ExpectOps asserts the operations of patches, in order.
func ExpectOps(t testing.TB, patches []reconcile.Patch, ops ...reconcile.PatchOp) {
	t.Helper()
	got := make([]string, len(patches))
	for i, p := range patches {
		got[i] = p.Op.String()
	}
	want := make([]string, len(ops))
	for i, op := range ops {
		want[i] = op.String()
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("patch ops mismatch (-want +got):\n%s", diff)
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
