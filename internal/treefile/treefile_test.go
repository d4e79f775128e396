package treefile

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/render"
)

func TestAppendChildFixture(t *testing.T) {
	trees, err := Load("testdata/appendChild1.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(trees) != 2 {
		t.Fatalf("Load returned %d trees, want 2", len(trees))
	}

	log := &reconcile.PatchLog{}
	root := reconcile.NewRoot(dom.NewElement("div", dom.NamespaceHTML), reconcile.WithRecorder(log))
	if err := root.Render(trees[0]); err != nil {
		t.Fatalf("Render: %v", err)
	}
	log.Reset()
	if err := root.Render(trees[1]); err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := []reconcile.PatchOp{reconcile.OpAppendChild, reconcile.OpAppendChild}
	if diff := cmp.Diff(want, log.Ops()); diff != "" {
		t.Errorf("ops mismatch (-want +got):\n%s", diff)
	}
	if got := dom.SerializeChildren(root.Container()); got != "<div><div></div><div></div><span></span></div>" {
		t.Errorf("markup = %s", got)
	}
}

func TestKeyedFixture(t *testing.T) {
	trees, err := Load("testdata/keyed.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if key, _ := trees[0].Children().Nodes()[1].Key(); key != "b" {
		t.Errorf("second item key = %q, want b", key)
	}

	root := reconcile.NewRoot(dom.NewElement("div", dom.NamespaceHTML))
	for i, tree := range trees {
		if err := root.Render(tree); err != nil {
			t.Fatalf("Render %d: %v", i, err)
		}
		want, err := render.RenderToString(tree)
		if err != nil {
			t.Fatalf("RenderToString: %v", err)
		}
		if got := dom.SerializeChildren(root.Container()); got != want {
			t.Errorf("tree %d live markup\n got: %s\nwant: %s", i, got, want)
		}
	}

	markup, _ := render.RenderToString(trees[1])
	for _, s := range []string{`style="color:blue"`, `<svg xmlns="http://www.w3.org/2000/svg"><circle r="2"></circle></svg>`, "<!--moved-->", "tail"} {
		if !strings.Contains(markup, s) {
			t.Errorf("markup %s does not contain %s", markup, s)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"empty", "", "no documents"},
		{"syntax", "tag: [", "document 0"},
		{"no kind", "attrs: {a: 1}", "exactly one"},
		{"two kinds", "tag: p\ncomment: x", "exactly one"},
		{"text and children", "tag: p\ntext: x\nchildren: [{tag: b}]", "exclusive"},
		{"bad child", "tag: p\nchildren: [{comment: x, text: y}]", "child 0"},
		{"second document", "tag: p\n---\n{}", "document 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Decode() error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestDecodeKinds(t *testing.T) {
	trees, err := Decode(strings.NewReader(`
fragment:
  - text: a
  - {tag: b, html: "<i>x</i>"}
  - {tag: math, ns: math, children: [{tag: mi, text: y}]}
`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	got, err := render.RenderToString(trees[0])
	if err != nil {
		t.Fatalf("RenderToString: %v", err)
	}
	want := `<!--[-->a<b><i>x</i></b><math xmlns="http://www.w3.org/1998/Math/MathML"><mi>y</mi></math><!--]-->`
	if got != want {
		t.Errorf("markup\n got: %s\nwant: %s", got, want)
	}
}
