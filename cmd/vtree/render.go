package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/internal/treefile"
	"github.com/vango-dev/vtree/pkg/render"
	"github.com/vango-dev/vtree/pkg/vdom"
)

func renderCmd(g *globals) *cobra.Command {
	var (
		pretty bool
		page   bool
		title  string
		index  int
	)

	cmd := &cobra.Command{
		Use:   "render FILE",
		Short: "Render a tree file to markup",
		Long: `Render one tree of a YAML tree file to markup.

A file may hold several trees separated by "---"; --index selects which
one is rendered. With --page the markup is wrapped in a full document.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			tree, err := pickTree(args[0], index)
			if err != nil {
				return err
			}

			r := render.NewRenderer(render.RendererConfig{Pretty: pretty || cfg.Render.Pretty})
			out := cmd.OutOrStdout()
			if page {
				if title == "" {
					title = cfg.Name
				}
				return r.RenderPage(out, render.PageData{
					Body:         tree,
					Title:        title,
					ClientScript: cfg.Server.ClientScript,
				})
			}
			if err := r.RenderToWriter(out, tree); err != nil {
				return err
			}
			fmt.Fprintln(out)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "Indent the markup")
	cmd.Flags().BoolVar(&page, "page", false, "Render a full HTML document")
	cmd.Flags().StringVar(&title, "title", "", "Page title (default: project name)")
	cmd.Flags().IntVarP(&index, "index", "i", 0, "Index of the tree in the file")
	return cmd
}

// pickTree loads the tree at index from a tree file.
func pickTree(path string, index int) (*vdom.Node, error) {
	trees, err := treefile.Load(path)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(trees) {
		return nil, errors.New(errors.CodeBadArgs).
			WithDetailf("%s holds %d trees, no tree at index %d", path, len(trees), index)
	}
	return trees[index], nil
}
