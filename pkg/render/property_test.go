package render

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/vango-dev/vtree/internal/treegen"
	"github.com/vango-dev/vtree/pkg/dom"
)

func TestBackendsAgree(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := treegen.Tree(3).Draw(t, "tree")
		want, err := RenderToString(n)
		if err != nil {
			t.Fatalf("RenderToString: %v", err)
		}

		if _, err := BuildLive(n, dom.NamespaceHTML); err != nil {
			t.Fatalf("BuildLive: %v", err)
		}
		if got := liveMarkup(n); got != want {
			t.Fatalf("live backend differs for %s\n live:   %s\n string: %s", treegen.Describe(n), got, want)
		}

		m := treegen.Copy(n)
		if _, err := (Builder{Strategy: StrategyMarkup}).Build(m, dom.NamespaceHTML); err != nil {
			t.Fatalf("markup Build: %v", err)
		}
		if got := liveMarkup(m); got != want {
			t.Fatalf("markup backend differs for %s\n adopted: %s\n string:  %s", treegen.Describe(n), got, want)
		}
	})
}
