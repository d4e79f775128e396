package dom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func tags(n *Node) []string {
	var out []string
	for _, c := range n.ChildNodes() {
		switch c.Type {
		case ElementNode:
			out = append(out, c.Tag)
		default:
			out = append(out, "#"+c.Data)
		}
	}
	return out
}

func TestInsertBefore(t *testing.T) {
	parent := NewElement("div", NamespaceHTML)
	a := NewElement("a", NamespaceHTML)
	b := NewElement("b", NamespaceHTML)
	c := NewElement("c", NamespaceHTML)

	parent.AppendChild(a)
	parent.AppendChild(c)
	parent.InsertBefore(b, c)

	if diff := cmp.Diff([]string{"a", "b", "c"}, tags(parent)); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}

	t.Run("move existing child", func(t *testing.T) {
		parent.InsertBefore(c, a)
		if diff := cmp.Diff([]string{"c", "a", "b"}, tags(parent)); diff != "" {
			t.Errorf("children mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("nil ref appends", func(t *testing.T) {
		parent.InsertBefore(c, nil)
		if diff := cmp.Diff([]string{"a", "b", "c"}, tags(parent)); diff != "" {
			t.Errorf("children mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("reparent", func(t *testing.T) {
		other := NewElement("section", NamespaceHTML)
		other.AppendChild(b)
		if b.Parent() != other {
			t.Error("b should be reparented")
		}
		if diff := cmp.Diff([]string{"a", "c"}, tags(parent)); diff != "" {
			t.Errorf("children mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestRemoveAndReplace(t *testing.T) {
	parent := NewElement("ul", NamespaceHTML)
	items := []*Node{NewElement("li", ""), NewElement("li", ""), NewElement("li", "")}
	for _, it := range items {
		parent.AppendChild(it)
	}

	parent.RemoveChild(items[1])
	if parent.ChildCount() != 2 || items[1].Parent() != nil {
		t.Fatalf("RemoveChild failed: count=%d", parent.ChildCount())
	}

	p := NewElement("p", "")
	parent.ReplaceChild(p, items[0])
	if parent.FirstChild() != p || items[0].Parent() != nil {
		t.Error("ReplaceChild should swap first child")
	}
	if p.NextSibling() != items[2] || items[2].PrevSibling() != p {
		t.Error("sibling links wrong after replace")
	}

	parent.RemoveChildren()
	if parent.ChildCount() != 0 || p.Parent() != nil {
		t.Error("RemoveChildren should detach all")
	}
}

func TestTextContent(t *testing.T) {
	div := NewElement("div", "")
	div.SetTextContent("hello")
	if div.ChildCount() != 1 || div.TextContent() != "hello" {
		t.Fatalf("TextContent = %q", div.TextContent())
	}
	div.SetTextContent("")
	if div.ChildCount() != 0 {
		t.Error("empty text content should leave no children")
	}

	if err := div.SetInnerHTML("<b>x</b>y"); err != nil {
		t.Fatal(err)
	}
	if div.TextContent() != "xy" || div.FirstChild().Tag != "b" {
		t.Errorf("SetInnerHTML result %q", Serialize(div))
	}
}

func TestSplitText(t *testing.T) {
	div := NewElement("div", "")
	text := NewText("foobar")
	div.AppendChild(text)

	tail := text.SplitText(3)
	if text.Data != "foo" || tail.Data != "bar" {
		t.Fatalf("split = %q/%q", text.Data, tail.Data)
	}
	if text.NextSibling() != tail {
		t.Error("tail should follow head")
	}
	if NewElement("p", "").SplitText(0) != nil {
		t.Error("SplitText on element should return nil")
	}
}

func TestPathResolve(t *testing.T) {
	root := NewElement("div", "")
	a := NewElement("a", "")
	b := NewElement("b", "")
	leaf := NewText("x")
	root.AppendChild(a)
	root.AppendChild(b)
	b.AppendChild(leaf)

	path := Path(root, leaf)
	if diff := cmp.Diff([]int{1, 0}, path); diff != "" {
		t.Errorf("Path mismatch (-want +got):\n%s", diff)
	}
	if Resolve(root, path) != leaf {
		t.Error("Resolve should find leaf")
	}
	if Path(a, leaf) != nil {
		t.Error("Path outside root should be nil")
	}
	if len(Path(root, root)) != 0 {
		t.Error("Path of root should be empty")
	}
}

func TestListeners(t *testing.T) {
	outer := NewElement("div", "")
	inner := NewElement("button", "")
	outer.AppendChild(inner)

	var order []string
	AddListener(outer, "click", func(e *Event) { order = append(order, "outer") })
	AddListener(inner, "click", func(e *Event) {
		order = append(order, "inner")
		if e.Target != inner {
			t.Error("target should be inner")
		}
	})

	if !Dispatch(inner, &Event{Type: "click"}) {
		t.Fatal("Dispatch should report handled")
	}
	if diff := cmp.Diff([]string{"inner", "outer"}, order); diff != "" {
		t.Errorf("bubble order (-want +got):\n%s", diff)
	}

	order = nil
	AddListener(inner, "click", func(e *Event) {
		order = append(order, "inner2")
		e.StopPropagation()
	})
	Dispatch(inner, &Event{Type: "click"})
	if diff := cmp.Diff([]string{"inner2"}, order); diff != "" {
		t.Errorf("stop propagation (-want +got):\n%s", diff)
	}

	RemoveListeners(inner)
	if ListenerCount(inner) != 0 {
		t.Error("RemoveListeners should clear registry")
	}
	RemoveListener(outer, "click")
	if Dispatch(inner, &Event{Type: "click"}) {
		t.Error("no listener should run")
	}
}

func TestDeclarations(t *testing.T) {
	m := ParseDeclarations(" color : red; width:10px;;bogus")
	if diff := cmp.Diff(map[string]string{"color": "red", "width": "10px"}, m); diff != "" {
		t.Errorf("ParseDeclarations (-want +got):\n%s", diff)
	}
	if got := FormatDeclarations(m); got != "color:red;width:10px" {
		t.Errorf("FormatDeclarations = %q", got)
	}
	if FormatDeclarations(nil) != "" {
		t.Error("empty map should format to empty string")
	}
}
