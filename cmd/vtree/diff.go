package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/internal/treefile"
	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/render"
	"github.com/vango-dev/vtree/pkg/vdom"
)

func diffCmd(g *globals) *cobra.Command {
	var (
		patchesOnly bool
		markupOnly  bool
	)

	cmd := &cobra.Command{
		Use:   "diff PREV [NEXT]",
		Short: "Print the patches between trees",
		Long: `Reconcile trees against a live container and print every patch.

With two files, the first tree of PREV is rendered and then updated to the
first tree of NEXT. With one file, each tree in it is rendered in turn and
every step is printed. Each step is followed by a diff of the container
markup.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if patchesOnly && markupOnly {
				return errors.New(errors.CodeBadArgs).
					WithDetail("--patches and --markup are mutually exclusive")
			}
			cfg, err := g.load()
			if err != nil {
				return err
			}
			steps, err := loadSteps(args)
			if err != nil {
				return err
			}
			d := &differ{
				out:      cmd.OutOrStdout(),
				strategy: cfg.Strategy(),
				patches:  !markupOnly,
				markup:   !patchesOnly,
			}
			return d.run(steps)
		},
	}

	cmd.Flags().BoolVar(&patchesOnly, "patches", false, "Print only the patches")
	cmd.Flags().BoolVar(&markupOnly, "markup", false, "Print only the markup diff")
	return cmd
}

// loadSteps returns the trees to reconcile in order.
func loadSteps(args []string) ([]*vdom.Node, error) {
	if len(args) == 2 {
		prev, err := treefile.LoadOne(args[0])
		if err != nil {
			return nil, err
		}
		next, err := treefile.LoadOne(args[1])
		if err != nil {
			return nil, err
		}
		return []*vdom.Node{prev, next}, nil
	}
	trees, err := treefile.Load(args[0])
	if err != nil {
		return nil, err
	}
	if len(trees) < 2 {
		return nil, errors.New(errors.CodeBadArgs).
			WithDetailf("%s holds %d tree(s), need at least 2 to diff", args[0], len(trees)).
			WithSuggestion("Separate trees with ---, or pass a second file")
	}
	return trees, nil
}

type differ struct {
	out      io.Writer
	strategy render.Strategy
	patches  bool
	markup   bool
}

func (d *differ) run(steps []*vdom.Node) error {
	log := &reconcile.PatchLog{}
	root := reconcile.NewRoot(dom.NewElement("div", dom.NamespaceHTML),
		reconcile.WithRecorder(log),
		reconcile.WithStrategy(d.strategy),
	)
	if err := root.Render(steps[0]); err != nil {
		return err
	}
	log.Reset()

	for i := 1; i < len(steps); i++ {
		before := dom.SerializeChildren(root.Container())
		if err := root.Render(steps[i]); err != nil {
			return errors.New(errors.CodeRenderFailed).
				WithDetailf("step %d -> %d", i-1, i).
				Wrap(err)
		}
		patches := log.Take()
		after := dom.SerializeChildren(root.Container())

		fmt.Fprintf(d.out, "%s %d -> %d (%d patches)\n", cyan("step"), i-1, i, len(patches))
		if d.patches {
			for _, p := range patches {
				fmt.Fprintf(d.out, "  %s\n", formatPatch(p))
			}
		}
		if d.markup {
			fmt.Fprintf(d.out, "  %s\n", markupDiff(before, after))
		}
	}
	return nil
}

// formatPatch renders one patch as a single line.
func formatPatch(p reconcile.Patch) string {
	var b strings.Builder
	b.WriteString(opColor(p.Op)(fmt.Sprintf("%-15s", p.Op.String())))
	fmt.Fprintf(&b, " %s", formatPath(p.Path))

	switch p.Op {
	case reconcile.OpInsertChild, reconcile.OpRemoveChild, reconcile.OpReplace:
		fmt.Fprintf(&b, " [%d]", p.Index)
	case reconcile.OpMoveChild:
		fmt.Fprintf(&b, " [%d] -> [%v]", p.Index, p.Value)
	}
	if p.Name != "" {
		fmt.Fprintf(&b, " %s", p.Name)
	}
	if p.Value != nil && p.Op != reconcile.OpMoveChild {
		fmt.Fprintf(&b, " = %s", formatValue(p.Value))
	}
	if p.Node != nil {
		if s, err := render.RenderToString(p.Node); err == nil {
			fmt.Fprintf(&b, " %s", faint(s))
		}
	}
	return b.String()
}

func formatPath(path []int) string {
	if len(path) == 0 {
		return "/"
	}
	parts := make([]string, len(path))
	for i, n := range path {
		parts[i] = fmt.Sprint(n)
	}
	return "/" + strings.Join(parts, "/")
}

func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case map[string]any:
		return dom.FormatDeclarations(stringMap(v))
	default:
		return fmt.Sprint(v)
	}
}

func stringMap(m map[string]any) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		if v == nil {
			out[k] = "<removed>"
			continue
		}
		out[k] = fmt.Sprint(v)
	}
	return out
}

func opColor(op reconcile.PatchOp) func(a ...any) string {
	switch op {
	case reconcile.OpAppendChild, reconcile.OpInsertChild, reconcile.OpSetListener:
		return green
	case reconcile.OpRemoveChild, reconcile.OpRemoveChildren, reconcile.OpRemoveAttr,
		reconcile.OpRemoveText, reconcile.OpRemoveListener:
		return red
	case reconcile.OpReplace, reconcile.OpMoveChild:
		return yellow
	default:
		return cyan
	}
}

// markupDiff returns a word-level diff of two markup strings, with
// deletions as [-text-] and insertions as {+text+}.
func markupDiff(before, after string) string {
	if before == after {
		return faint("(markup unchanged)")
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffCleanupSemantic(dmp.DiffMain(before, after, false))

	var b strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			b.WriteString(red("[-" + d.Text + "-]"))
		case diffmatchpatch.DiffInsert:
			b.WriteString(green("{+" + d.Text + "+}"))
		default:
			b.WriteString(d.Text)
		}
	}
	return b.String()
}
