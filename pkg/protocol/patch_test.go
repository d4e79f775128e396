package protocol

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"pgregory.net/rapid"

	"github.com/vango-dev/vtree/internal/treegen"
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/render"
	"github.com/vango-dev/vtree/pkg/vdom"
)

type fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

// remote mirrors a server root the way a client would: a snapshot on
// connect, then decoded patch frames.
type remote struct {
	container *dom.Node
	seq       uint64
}

func connect(t fataler, root *reconcile.Root) *remote {
	t.Helper()
	s := &Snapshot{}
	for _, c := range root.Container().ChildNodes() {
		s.Nodes = append(s.Nodes, FromDOM(c))
	}
	decoded, err := DecodeSnapshot(EncodeSnapshot(s))
	if err != nil {
		t.Fatalf("DecodeSnapshot: %v", err)
	}
	r := &remote{container: dom.NewElement("div", dom.NamespaceHTML), seq: decoded.Seq}
	for _, n := range decoded.Nodes {
		r.container.AppendChild(n.DOM())
	}
	return r
}

func (r *remote) receive(t fataler, log *reconcile.PatchLog) {
	t.Helper()
	wire, err := FromPatches(log.Take())
	if err != nil {
		t.Fatalf("FromPatches: %v", err)
	}
	data, err := EncodePatches(&PatchesFrame{Seq: r.seq + 1, Patches: wire})
	if err != nil {
		t.Fatalf("EncodePatches: %v", err)
	}
	frame, err := DecodeFrame(NewFrame(FramePatches, data).Encode())
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	pf, err := DecodePatches(frame.Payload)
	if err != nil {
		t.Fatalf("DecodePatches: %v", err)
	}
	if pf.Seq != r.seq+1 {
		t.Fatalf("seq = %d, want %d", pf.Seq, r.seq+1)
	}
	r.seq = pf.Seq
	if err := Apply(r.container, pf.Patches); err != nil {
		t.Fatalf("Apply: %v", err)
	}
}

func TestPatchStream(t *testing.T) {
	log := &reconcile.PatchLog{}
	root := reconcile.NewRoot(dom.NewElement("div", dom.NamespaceHTML), reconcile.WithRecorder(log))
	item := func(k string) *vdom.Node { return vdom.Li(vdom.Key(k), vdom.InnerText(k)) }

	if err := root.Render(vdom.Ul(vdom.Class("list"), item("a"), item("b"))); err != nil {
		t.Fatalf("Render: %v", err)
	}
	log.Reset()
	r := connect(t, root)

	steps := []*vdom.Node{
		vdom.Ul(vdom.Class("list"), item("b"), item("a"), item("c")),
		vdom.Ul(vdom.Class("list big"), vdom.Style(map[string]any{"top": 1}), item("c")),
		vdom.Ul(vdom.Style(map[string]any{"left": 2.5}), vdom.Fragment(item("x"), vdom.Comment("note"))),
		vdom.Div(vdom.InnerHTML("<b>raw</b>"), vdom.Data("n", uint(3))),
		vdom.Div(vdom.Svg(vdom.Circle(vdom.Attribute("r", 1)))),
		vdom.Select(vdom.Value("b"), vdom.Option(vdom.Value("a")), vdom.Option(vdom.Value("b"))),
	}
	for i, next := range steps {
		if err := root.Render(next); err != nil {
			t.Fatalf("step %d Render: %v", i, err)
		}
		r.receive(t, log)
		want, _ := render.RenderToString(next)
		if got := dom.SerializeChildren(r.container); got != want {
			t.Fatalf("step %d remote markup\n got: %s\nwant: %s", i, got, want)
		}
	}
	if r.seq != uint64(len(steps)) {
		t.Errorf("seq = %d, want %d", r.seq, len(steps))
	}
}

func TestPatchEncoding(t *testing.T) {
	text := vdom.Text("t")
	if _, err := render.BuildLive(text, dom.NamespaceHTML); err != nil {
		t.Fatalf("BuildLive: %v", err)
	}
	in := []reconcile.Patch{
		{Op: reconcile.OpAppendChild, Path: []int{0}, Index: 2, Node: text},
		{Op: reconcile.OpMoveChild, Path: []int{0}, Index: 1, Value: 0},
		{Op: reconcile.OpRemoveChild, Path: []int{0, 1}, Index: 3},
		{Op: reconcile.OpUpdateAttr, Path: []int{}, Name: "id", Value: "x"},
		{Op: reconcile.OpPatchAttr, Path: []int{1}, Name: "style", Value: map[string]any{"top": nil}},
		{Op: reconcile.OpRemoveAttr, Path: []int{1}, Name: "hidden"},
		{Op: reconcile.OpUpdateText, Path: []int{1}, Name: reconcile.TextContent, Value: "hi"},
		{Op: reconcile.OpRemoveText, Path: []int{1}},
		{Op: reconcile.OpRemoveChildren, Path: []int{1}},
		{Op: reconcile.OpSetListener, Path: []int{1}, Name: "click"},
		{Op: reconcile.OpRemoveListener, Path: []int{1}, Name: "click"},
		{Op: reconcile.OpUpdateComment, Path: []int{2}, Value: "c"},
	}
	wire, err := FromPatches(in)
	if err != nil {
		t.Fatalf("FromPatches: %v", err)
	}
	data, err := EncodePatches(&PatchesFrame{Seq: 7, Patches: wire})
	if err != nil {
		t.Fatalf("EncodePatches: %v", err)
	}
	pf, err := DecodePatches(data)
	if err != nil {
		t.Fatalf("DecodePatches: %v", err)
	}
	if diff := cmp.Diff(&PatchesFrame{Seq: 7, Patches: wire}, pf); diff != "" {
		t.Errorf("frame mismatch (-want +got):\n%s", diff)
	}
}

func TestFromPatchesRequiresBuiltNodes(t *testing.T) {
	if _, err := FromPatches([]reconcile.Patch{{Op: reconcile.OpAppendChild, Node: vdom.Div()}}); err == nil {
		t.Error("FromPatches accepted an unbuilt node")
	}
	if _, err := FromPatches([]reconcile.Patch{{Op: reconcile.OpReplace}}); err == nil {
		t.Error("FromPatches accepted a missing node")
	}
}

func TestEncodeRejectsBadMove(t *testing.T) {
	_, err := EncodePatches(&PatchesFrame{Patches: []Patch{{Op: reconcile.OpMoveChild, Value: "x"}}})
	if err == nil {
		t.Error("EncodePatches accepted a non-int move target")
	}
}

func TestRemoteMatchesServer(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		log := &reconcile.PatchLog{}
		root := reconcile.NewRoot(dom.NewElement("div", dom.NamespaceHTML), reconcile.WithRecorder(log))
		if err := root.Render(treegen.Tree(3).Draw(t, "first")); err != nil {
			t.Fatalf("Render: %v", err)
		}
		log.Reset()
		r := connect(t, root)

		for i := 0; i < 3; i++ {
			next := treegen.Tree(3).Draw(t, "next")
			if err := root.Render(next); err != nil {
				t.Fatalf("Render: %v", err)
			}
			r.receive(t, log)
			if got, want := dom.SerializeChildren(r.container), dom.SerializeChildren(root.Container()); got != want {
				t.Fatalf("remote differs after %s\n got: %s\nwant: %s", treegen.Describe(next), got, want)
			}
		}
	})
}
