package reconcile

import (
	stderrors "errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/render"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// fixture is a rendered root plus a snapshot of its container taken before
// the next pass, for checking that recorded patches replay.
type fixture struct {
	t        *testing.T
	root     *Root
	log      *PatchLog
	snapshot *dom.Node
}

func newFixture(t *testing.T, tree *vdom.Node) *fixture {
	t.Helper()
	f := &fixture{t: t, log: &PatchLog{}}
	f.root = NewRoot(dom.NewElement("div", dom.NamespaceHTML), WithRecorder(f.log))
	if err := f.root.Render(tree); err != nil {
		t.Fatalf("initial Render: %v", err)
	}
	f.log.Reset()
	f.snapshot = f.root.Container().Clone()
	return f
}

// render reconciles to next, checks the result against the string renderer
// and the replayed log, and returns the patches of the pass.
func (f *fixture) render(next *vdom.Node) []Patch {
	f.t.Helper()
	if err := f.root.Render(next); err != nil {
		f.t.Fatalf("Render: %v", err)
	}
	want, err := render.RenderToString(next)
	if err != nil {
		f.t.Fatalf("RenderToString: %v", err)
	}
	if got := dom.SerializeChildren(f.root.Container()); got != want {
		f.t.Fatalf("live markup differs\n got: %s\nwant: %s", got, want)
	}
	patches := f.log.Take()
	if err := Apply(f.snapshot, patches); err != nil {
		f.t.Fatalf("Apply: %v", err)
	}
	if got := dom.SerializeChildren(f.snapshot); got != want {
		f.t.Fatalf("replayed markup differs\n got: %s\nwant: %s", got, want)
	}
	f.snapshot = f.root.Container().Clone()
	return patches
}

var ignoreNode = cmpopts.IgnoreFields(Patch{}, "Node")

func withDevMode(t *testing.T) {
	t.Helper()
	vdom.SetDevMode(true)
	t.Cleanup(func() { vdom.SetDevMode(false) })
}

func TestAppendChildren(t *testing.T) {
	f := newFixture(t, vdom.Div(vdom.Div()))
	patches := f.render(vdom.Div(vdom.Div(), vdom.Div(), vdom.Span()))

	want := []Patch{
		{Op: OpAppendChild, Path: []int{0}, Index: 1},
		{Op: OpAppendChild, Path: []int{0}, Index: 2},
	}
	if diff := cmp.Diff(want, patches, ignoreNode); diff != "" {
		t.Fatalf("patches mismatch (-want +got):\n%s", diff)
	}
	if got := patches[0].Node.Tag(); got != "div" {
		t.Errorf("first appended node = %s, want div", got)
	}
	if got := patches[1].Node.Tag(); got != "span" {
		t.Errorf("second appended node = %s, want span", got)
	}
}

func TestKeyedSwapMovesOnce(t *testing.T) {
	item := func(k string) *vdom.Node { return vdom.Li(vdom.Key(k), vdom.InnerText(k)) }
	prev := vdom.Ul(item("a"), item("b"))
	f := newFixture(t, prev)
	a, b := prev.Children().Nodes()[0].Live(), prev.Children().Nodes()[1].Live()

	next := vdom.Ul(item("b"), item("a"))
	patches := f.render(next)

	want := []Patch{{Op: OpMoveChild, Path: []int{0}, Index: 1, Value: 0}}
	if diff := cmp.Diff(want, patches, ignoreNode); diff != "" {
		t.Fatalf("patches mismatch (-want +got):\n%s", diff)
	}
	if next.Children().Nodes()[0].Live() != b || next.Children().Nodes()[1].Live() != a {
		t.Error("keyed items were not reused")
	}
}

func TestKeyedReorder(t *testing.T) {
	list := func(keys ...string) *vdom.Node {
		return vdom.Ul(vdom.Range(keys, func(k string, _ int) *vdom.Node {
			return vdom.Li(vdom.Key(k), vdom.InnerText(k))
		}))
	}
	tests := []struct {
		name  string
		from  []string
		to    []string
		moves int
	}{
		{"reverse", []string{"a", "b", "c", "d"}, []string{"d", "c", "b", "a"}, 3},
		{"rotate", []string{"a", "b", "c", "d"}, []string{"b", "c", "d", "a"}, 1},
		{"insert middle", []string{"a", "c"}, []string{"a", "b", "c"}, 0},
		{"remove and move", []string{"a", "b", "c", "d"}, []string{"d", "a", "c"}, 1},
		{"replace all", []string{"a", "b"}, []string{"x", "y"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, list(tt.from...))
			moves := 0
			for _, p := range f.render(list(tt.to...)) {
				if p.Op == OpMoveChild {
					moves++
				}
			}
			if moves != tt.moves {
				t.Errorf("moves = %d, want %d", moves, tt.moves)
			}
		})
	}
}

func TestIdenticalTreesProduceNoPatches(t *testing.T) {
	tree := func() *vdom.Node {
		return vdom.Div(vdom.ID("x"), vdom.Class("a b"),
			vdom.Style(map[string]any{"color": "red", "top": 0}),
			vdom.Ul(
				vdom.Li(vdom.Key(1), vdom.InnerText("one")),
				vdom.Li(vdom.Key(2), vdom.InnerText("two")),
			),
			vdom.Fragment(vdom.Span(vdom.InnerText("s")), vdom.Text("t")),
			vdom.Comment("c"),
			vdom.Select(vdom.Value("b"), vdom.Option(vdom.Value("a")), vdom.Option(vdom.Value("b"))),
			vdom.Textarea(vdom.Value("text")),
		)
	}
	prev := tree()
	f := newFixture(t, prev)

	if err := New(WithRecorder(f.log)).Reconcile(prev, prev); err != nil {
		t.Fatalf("Reconcile(T, T): %v", err)
	}
	if f.log.Len() != 0 {
		t.Fatalf("Reconcile(T, T) recorded %v", f.log.Ops())
	}

	if patches := f.render(tree()); len(patches) != 0 {
		t.Fatalf("equal trees recorded %v", f.log.Ops())
	}
}

func TestLooseAttributeEquality(t *testing.T) {
	f := newFixture(t, vdom.Div(vdom.TabIndex(1), vdom.Data("n", "2")))
	if patches := f.render(vdom.Div(vdom.Attribute("tabindex", "1"), vdom.Data("n", 2))); len(patches) != 0 {
		t.Fatalf("loosely equal attributes recorded %v", patches)
	}
}

func TestAttributePatches(t *testing.T) {
	f := newFixture(t, vdom.Div(vdom.ID("a"), vdom.Style(map[string]any{"color": "red", "top": 0}), vdom.Hidden(true)))
	patches := f.render(vdom.Div(vdom.ID("b"), vdom.Style(map[string]any{"color": "blue"}), vdom.Attribute("title", "t")))

	want := []Patch{
		{Op: OpRemoveAttr, Path: []int{0}, Name: "hidden"},
		{Op: OpUpdateAttr, Path: []int{0}, Name: "id", Value: "b"},
		{Op: OpPatchAttr, Path: []int{0}, Name: "style", Value: map[string]any{"color": "blue", "top": nil}},
		{Op: OpUpdateAttr, Path: []int{0}, Name: "title", Value: "t"},
	}
	if diff := cmp.Diff(want, patches, ignoreNode); diff != "" {
		t.Fatalf("patches mismatch (-want +got):\n%s", diff)
	}
}

func TestTextChildren(t *testing.T) {
	f := newFixture(t, vdom.Div(vdom.InnerText("a")))

	steps := []struct {
		next *vdom.Node
		want []PatchOp
	}{
		{vdom.Div(vdom.InnerText("b")), []PatchOp{OpUpdateText}},
		{vdom.Div(vdom.InnerText("b")), nil},
		{vdom.Div(vdom.Span()), []PatchOp{OpRemoveText, OpAppendChild}},
		{vdom.Div(vdom.InnerText("c")), []PatchOp{OpRemoveChildren, OpUpdateText}},
		{vdom.Div(vdom.InnerHTML("<em>x</em>")), []PatchOp{OpUpdateText}},
		{vdom.Div(), []PatchOp{OpRemoveText}},
		{vdom.Div(vdom.Text("x"), vdom.Text("")), []PatchOp{OpAppendChild, OpAppendChild}},
		{vdom.Div(vdom.Text("y"), vdom.Text("")), []PatchOp{OpUpdateText}},
		{vdom.Div(), []PatchOp{OpRemoveChildren}},
		{vdom.Div(vdom.Span()), []PatchOp{OpAppendChild}},
		{vdom.NewTag("div").Text("").Seal(), []PatchOp{OpRemoveChildren}},
	}
	for i, step := range steps {
		patches := f.render(step.next)
		var got []PatchOp
		for _, p := range patches {
			got = append(got, p.Op)
		}
		if diff := cmp.Diff(step.want, got, cmpopts.EquateEmpty()); diff != "" {
			t.Fatalf("step %d ops mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestReplaceDifferentTypes(t *testing.T) {
	f := newFixture(t, vdom.Div(vdom.P(vdom.InnerText("p")), vdom.Span()))

	patches := f.render(vdom.Div(vdom.Em(vdom.InnerText("e")), vdom.Span()))
	want := []Patch{{Op: OpReplace, Path: []int{0}, Index: 0}}
	if diff := cmp.Diff(want, patches, ignoreNode); diff != "" {
		t.Fatalf("patches mismatch (-want +got):\n%s", diff)
	}

	// Multi-node ranges are inserted before the old node, then the old
	// node is removed.
	patches = f.render(vdom.Div(vdom.Fragment(vdom.B(), vdom.Strong()), vdom.Span()))
	var ops []PatchOp
	for _, p := range patches {
		ops = append(ops, p.Op)
	}
	if diff := cmp.Diff([]PatchOp{OpInsertChild, OpRemoveChild}, ops); diff != "" {
		t.Fatalf("ops mismatch (-want +got):\n%s", diff)
	}

	f.render(vdom.Div(vdom.Text("plain"), vdom.Span()))
}

func TestFragmentChildren(t *testing.T) {
	item := func(k string) *vdom.Node { return vdom.Li(vdom.Key(k), vdom.InnerText(k)) }
	prev := vdom.Ul(vdom.Fragment(item("a"), item("b")), vdom.Li(vdom.InnerText("tail")))
	f := newFixture(t, prev)
	tail := prev.Children().Nodes()[1].Live()

	next := vdom.Ul(vdom.Fragment(item("b"), item("c"), item("a")), vdom.Li(vdom.InnerText("tail")))
	f.render(next)
	if next.Children().Nodes()[1].Live() != tail {
		t.Error("sibling after the fragment was not reused")
	}

	f.render(vdom.Ul(vdom.Fragment(), vdom.Li(vdom.InnerText("tail"))))
	f.render(vdom.Ul(vdom.Fragment(item("z")), vdom.Li(vdom.InnerText("tail"))))
}

type badge struct{ text string }

func (b badge) Render() *vdom.Node { return vdom.Strong(vdom.InnerText(b.text)) }

func TestComponents(t *testing.T) {
	label := func(s string) vdom.Component {
		return vdom.Func(func() *vdom.Node { return vdom.Span(vdom.InnerText(s)) })
	}
	prev := vdom.Div(vdom.Comp(label("a")))
	f := newFixture(t, prev)
	span := prev.Children().Nodes()[0].Live()

	next := vdom.Div(vdom.Comp(label("b")))
	patches := f.render(next)
	if next.Children().Nodes()[0].Live() != span {
		t.Error("component output was not patched in place")
	}
	if len(patches) != 1 || patches[0].Op != OpUpdateText {
		t.Errorf("patches = %v, want one UpdateText", patches)
	}

	// A different component type replaces the output.
	patches = f.render(vdom.Div(vdom.Comp(badge{text: "c"})))
	if len(patches) != 1 || patches[0].Op != OpReplace {
		t.Errorf("patches = %v, want one Replace", patches)
	}
}

func TestSelectReappliesValue(t *testing.T) {
	f := newFixture(t, vdom.Select(vdom.Value("b"), vdom.Option(vdom.Value("a"))))
	next := vdom.Select(vdom.Value("b"), vdom.Option(vdom.Value("a")), vdom.Option(vdom.Value("b")))
	patches := f.render(next)

	opt := next.Children().Nodes()[1].Live()
	if !opt.HasAttribute("selected") {
		t.Fatal("new option matching the select value is not selected")
	}
	last := patches[len(patches)-1]
	if last.Op != OpUpdateAttr || last.Name != "value" {
		t.Errorf("last patch = %v %s, want UpdateAttr value", last.Op, last.Name)
	}
}

func TestDuplicateKeys(t *testing.T) {
	t.Run("dev", func(t *testing.T) {
		withDevMode(t)
		root := NewRoot(dom.NewElement("div", dom.NamespaceHTML))
		if err := root.Render(vdom.Ul(vdom.Li(vdom.Key(1)))); err != nil {
			t.Fatalf("Render: %v", err)
		}
		err := root.Render(vdom.Ul(vdom.Li(vdom.Key(1)), vdom.Li(vdom.Key(1))))
		var verr *errors.Error
		if !stderrors.As(err, &verr) || verr.Code != errors.CodeDuplicateKey {
			t.Fatalf("Render = %v, want %s", err, errors.CodeDuplicateKey)
		}
	})

	t.Run("production", func(t *testing.T) {
		f := newFixture(t, vdom.Ul(vdom.Li(vdom.Key(1), vdom.InnerText("a")), vdom.Li(vdom.Key(1), vdom.InnerText("b"))))
		f.render(vdom.Ul(vdom.Li(vdom.Key(1), vdom.InnerText("c"))))
	})
}

func TestNodeReuse(t *testing.T) {
	shared := vdom.Span(vdom.InnerText("shared"))

	t.Run("same position", func(t *testing.T) {
		f := newFixture(t, vdom.Div(shared))
		if patches := f.render(vdom.Div(shared)); len(patches) != 0 {
			t.Fatalf("reused subtree recorded %v", patches)
		}
		f.root.Unmount()
	})

	t.Run("second position in dev", func(t *testing.T) {
		withDevMode(t)
		root := NewRoot(dom.NewElement("div", dom.NamespaceHTML))
		if err := root.Render(vdom.Div(shared)); err != nil {
			t.Fatalf("Render: %v", err)
		}
		err := root.Render(vdom.Div(shared, shared))
		var verr *errors.Error
		if !stderrors.As(err, &verr) || verr.Code != errors.CodeNodeReused {
			t.Fatalf("Render = %v, want %s", err, errors.CodeNodeReused)
		}
	})
}

func TestNamespaces(t *testing.T) {
	f := newFixture(t, vdom.Div(vdom.Svg(vdom.G())))
	next := vdom.Div(vdom.Svg(vdom.G(), vdom.Circle(vdom.Attribute("r", 2))))
	f.render(next)

	circle := next.Children().Nodes()[0].Children().Nodes()[1].Live()
	if circle.Namespace != dom.NamespaceSVG {
		t.Errorf("circle namespace = %q, want %q", circle.Namespace, dom.NamespaceSVG)
	}
}

func TestReconcileErrors(t *testing.T) {
	e := New()
	if err := e.Reconcile(nil, vdom.Div()); err == nil {
		t.Error("Reconcile(nil, _) succeeded")
	}
	if err := e.Reconcile(vdom.Div(), vdom.Div()); err == nil {
		t.Error("Reconcile of an unbuilt tree succeeded")
	}
}

func TestDetachedReplace(t *testing.T) {
	prev := vdom.Div()
	if _, err := render.BuildLive(prev, dom.NamespaceHTML); err != nil {
		t.Fatalf("BuildLive: %v", err)
	}
	next := vdom.Span()
	if err := New().Reconcile(prev, next); err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if next.Live() == nil || next.Live().Tag != "span" {
		t.Fatalf("next was not built: %v", next.Live())
	}
	if prev.Live() != nil {
		t.Error("prev is still bound")
	}
}

func TestLongestIncreasing(t *testing.T) {
	tests := []struct {
		source []int
		want   int
	}{
		{nil, 0},
		{[]int{-1, -1}, 0},
		{[]int{0, 1, 2}, 3},
		{[]int{2, 1, 0}, 1},
		{[]int{1, -1, 2, 0, 3}, 3},
		{[]int{3, 0, 1, -1, 2}, 3},
	}
	for _, tt := range tests {
		stable := longestIncreasing(tt.source)
		got, last := 0, -1
		for j, ok := range stable {
			if !ok {
				continue
			}
			if tt.source[j] <= last {
				t.Errorf("longestIncreasing(%v) = %v is not increasing", tt.source, stable)
			}
			last = tt.source[j]
			got++
		}
		if got != tt.want {
			t.Errorf("longestIncreasing(%v) length = %d, want %d", tt.source, got, tt.want)
		}
	}
}
