package reconcile

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/vango-dev/vtree/internal/treegen"
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/render"
	"github.com/vango-dev/vtree/pkg/vdom"
)

func TestReconcileMatchesRender(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		prev := treegen.Tree(3).Draw(t, "prev")
		next := treegen.Tree(3).Draw(t, "next")

		log := &PatchLog{}
		root := NewRoot(dom.NewElement("div", dom.NamespaceHTML), WithRecorder(log))
		if err := root.Render(prev); err != nil {
			t.Fatalf("Render(prev): %v", err)
		}
		snapshot := root.Container().Clone()
		log.Reset()

		if err := root.Render(next); err != nil {
			t.Fatalf("Render(next): %v", err)
		}
		want, err := render.RenderToString(next)
		if err != nil {
			t.Fatalf("RenderToString: %v", err)
		}
		if got := dom.SerializeChildren(root.Container()); got != want {
			t.Fatalf("%s -> %s\n got: %s\nwant: %s", treegen.Describe(prev), treegen.Describe(next), got, want)
		}

		if err := Apply(snapshot, log.Patches()); err != nil {
			t.Fatalf("Apply: %v", err)
		}
		if got := dom.SerializeChildren(snapshot); got != want {
			t.Fatalf("replay of %v\n got: %s\nwant: %s", log.Ops(), got, want)
		}
	})
}

func TestHydrateThenReconcile(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		prev := treegen.Tree(3).Draw(t, "prev")
		next := treegen.Tree(3).Draw(t, "next")

		markup, err := render.RenderToString(prev)
		if err != nil {
			t.Fatalf("RenderToString: %v", err)
		}
		container, err := dom.Parse(markup, "div")
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		root := NewRoot(container)
		if err := root.Hydrate(prev); err != nil {
			t.Fatalf("Hydrate %s: %v", treegen.Describe(prev), err)
		}
		if err := root.Render(next); err != nil {
			t.Fatalf("Render: %v", err)
		}
		want, _ := render.RenderToString(next)
		if got := dom.SerializeChildren(container); got != want {
			t.Fatalf("%s -> %s\n got: %s\nwant: %s", treegen.Describe(prev), treegen.Describe(next), got, want)
		}
	})
}

func TestMarkupStrategyReconcile(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		prev := treegen.Tree(3).Draw(t, "prev")
		next := treegen.Tree(3).Draw(t, "next")

		root := NewRoot(dom.NewElement("div", dom.NamespaceHTML), WithStrategy(render.StrategyMarkup))
		if err := root.Render(prev); err != nil {
			t.Fatalf("Render(prev): %v", err)
		}
		if err := root.Render(next); err != nil {
			t.Fatalf("Render(next): %v", err)
		}
		want, _ := render.RenderToString(next)
		if got := dom.SerializeChildren(root.Container()); got != want {
			t.Fatalf("%s -> %s\n got: %s\nwant: %s", treegen.Describe(prev), treegen.Describe(next), got, want)
		}
	})
}

func TestReconcileChain(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		root := NewRoot(dom.NewElement("div", dom.NamespaceHTML))
		var last *vdom.Node
		for i := 0; i < 4; i++ {
			last = treegen.Element(3).Draw(t, "tree")
			if err := root.Render(last); err != nil {
				t.Fatalf("Render %d: %v", i, err)
			}
		}
		want, _ := render.RenderToString(last)
		if got := dom.SerializeChildren(root.Container()); got != want {
			t.Fatalf("after chain\n got: %s\nwant: %s", got, want)
		}
	})
}
