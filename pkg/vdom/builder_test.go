package vdom

import (
	"bytes"
	stderrors "errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/dom"
)

func withDevMode(t *testing.T) {
	t.Helper()
	SetDevMode(true)
	t.Cleanup(func() { SetDevMode(false) })
}

func expectPanicCode(t *testing.T, code string, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic with %s", code)
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("panic value %v is not an error", r)
		}
		var verr *errors.Error
		if !stderrors.As(err, &verr) || verr.Code != code {
			t.Fatalf("panic = %v, want code %s", err, code)
		}
	}()
	fn()
}

func TestBuilderSeal(t *testing.T) {
	r := NewRef(func(*dom.Node) {})
	child := NewTag("span").Text("hi")
	n := NewTag("div").
		Key("k").
		Ref(r).
		Attrs(map[string]any{"id": "main", "class": "a"}).
		Children(child, "tail", nil).
		Seal()

	if n.Kind() != KindTag || n.Tag() != "div" {
		t.Fatalf("kind/tag = %v/%s", n.Kind(), n.Tag())
	}
	if k, ok := n.Key(); !ok || k != "k" {
		t.Errorf("Key() = %q, %v", k, ok)
	}
	if n.Ref() != r {
		t.Error("Ref() not preserved")
	}
	if got := n.Attrs().Names(); strings.Join(got, ",") != "class,id" {
		t.Errorf("Names() = %v", got)
	}
	kids := n.Children().Nodes()
	if len(kids) != 2 {
		t.Fatalf("children = %d, want 2", len(kids))
	}
	if kids[0] != child.Seal() {
		t.Error("child builder was not sealed into the parent")
	}
	if kids[1].Kind() != KindText || kids[1].Text() != "tail" {
		t.Errorf("string child = %v %q", kids[1].Kind(), kids[1].Text())
	}
	if !child.Sealed() {
		t.Error("child builder should be sealed")
	}
}

func TestBuilderTextChildren(t *testing.T) {
	n := NewTag("p").Text("a < b").Seal()
	if n.Children().Kind() != ChildrenText || n.Children().Text() != "a < b" || n.RawText() {
		t.Errorf("text children = %+v raw=%v", n.Children(), n.RawText())
	}
	raw := NewTag("p").HTML("<b>x</b>").Seal()
	if !raw.RawText() {
		t.Error("HTML should set the raw flag")
	}
	frag := NewFragment().Text("x").Seal()
	if frag.Children().Len() != 1 || frag.Children().Nodes()[0].Kind() != KindText {
		t.Error("fragment text should become a text node")
	}
}

func TestBuilderEmptyAttrs(t *testing.T) {
	n := NewTag("div").Attrs(map[string]any{}).Seal()
	if n.Attrs() != nil {
		t.Error("empty attrs should seal to nil")
	}
	if n.Children() != nil {
		t.Error("children should be absent")
	}
}

func TestBuilderAttrsMerge(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { SetLogger(nil) })
	withDevMode(t)

	n := NewTag("div").
		Attrs(map[string]any{"id": "a", "title": "t"}).
		Attrs(map[string]any{"id": "b"}).
		Seal()
	if n.Attrs().Value("id") != "b" || n.Attrs().Value("title") != "t" {
		t.Errorf("merged attrs = %v", n.Attrs().Map())
	}
	if !strings.Contains(buf.String(), "assigned twice") {
		t.Errorf("expected warning, got %q", buf.String())
	}
}

func TestBuilderAfterSeal(t *testing.T) {
	b := NewTag("div")
	n := b.Seal()
	if b.Seal() != n {
		t.Error("Seal should be idempotent")
	}

	// Production: ignored.
	b.Attrs(map[string]any{"id": "x"})
	if n.Attrs() != nil {
		t.Error("sealed node was modified")
	}

	withDevMode(t)
	expectPanicCode(t, errors.CodeBuilderSealed, func() {
		b.Key("late")
	})
}

func TestUnknownListenerAttr(t *testing.T) {
	withDevMode(t)
	expectPanicCode(t, errors.CodeUnknownListener, func() {
		NewTag("div").Attrs(map[string]any{"onfrobnicate": func() {}}).Seal()
	})
	expectPanicCode(t, errors.CodeInvalidAttrValue, func() {
		NewTag("div").Attrs(map[string]any{"onclick": "alert(1)"}).Seal()
	})
}

func TestAttrNormalization(t *testing.T) {
	called := false
	a := NewAttrs(map[string]any{
		"class":    []string{"a", "b"},
		"style":    map[string]string{"color": "red"},
		"onclick":  func() { called = true },
		"tabindex": 3,
	})
	if _, ok := a.Value("class").([]any); !ok {
		t.Errorf("class = %T, want []any", a.Value("class"))
	}
	if _, ok := a.Value("style").(map[string]any); !ok {
		t.Errorf("style = %T, want map[string]any", a.Value("style"))
	}
	l, ok := a.Value("onclick").(dom.Listener)
	if !ok {
		t.Fatalf("onclick = %T, want dom.Listener", a.Value("onclick"))
	}
	l(&dom.Event{Type: "click"})
	if !called {
		t.Error("wrapped listener not called")
	}
}

func TestClone(t *testing.T) {
	n := Div(Class("x"), Span(InnerText("a")))
	n.Bind(dom.NewElement("div", ""))
	c := n.Clone()
	if c.Attrs() != n.Attrs() || c.Children() != n.Children() {
		t.Error("clone should share attrs and children")
	}
	if c.Live() != nil {
		t.Error("clone should have an independent live slot")
	}
}

func TestComponentRendersOnce(t *testing.T) {
	calls := 0
	c := Func(func() *Node {
		calls++
		return P(InnerText("x"))
	})
	n := Comp(c)
	if n.Rendered() != n.Rendered() || calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	empty := Comp(Func(func() *Node { return nil }))
	if empty.Rendered().Kind() != KindComment {
		t.Error("nil render should become a comment")
	}
}

func TestCheckKeys(t *testing.T) {
	parent := Ul()
	ok := []*Node{Li(Key(1)), Li(), Li(Key(2))}
	if err := CheckKeys(parent, ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dup := []*Node{Li(Key(1)), Li(Key(1))}
	err := CheckKeys(parent, dup)
	var verr *errors.Error
	if !stderrors.As(err, &verr) || verr.Code != errors.CodeDuplicateKey {
		t.Fatalf("err = %v, want V101", err)
	}
}
