package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/internal/config"
	"github.com/vango-dev/vtree/internal/dev"
	"github.com/vango-dev/vtree/pkg/server"
	"github.com/vango-dev/vtree/pkg/vdom"
)

func serveCmd(g *globals) *cobra.Command {
	var (
		addr  string
		index int
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "serve FILE",
		Short: "Serve a tree file over a live patch stream",
		Long: `Serve one tree of a YAML tree file as a live page.

Browsers load the page from / and follow updates over the /ws websocket.
The tree file is read again on every update: POST /reload, or pass
--watch to update whenever the file changes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			file := args[0]
			if _, err := pickTree(file, index); err != nil {
				return err
			}

			logger := g.logger(cmd.ErrOrStderr())
			sc := serverConfig(cfg)
			sc.Logger = logger
			if addr != "" {
				sc.Address = addr
			}

			srv := server.New(func(ctx context.Context) (*vdom.Node, error) {
				return pickTree(file, index)
			}, sc)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if watch {
				w := dev.NewWatcher(dev.WatcherConfig{Paths: []string{file}})
				w.OnChange(func(changed []string) {
					if err := srv.Session().Update(ctx); err != nil {
						logger.Error("update failed", "error", err)
						return
					}
					logger.Info("updated", "files", changed, "seq", srv.Session().Seq())
				})
				go w.Start(ctx)
				defer w.Stop()
			}

			out := cmd.OutOrStdout()
			success(out, "Serving %s", file)
			info(out, "Page:    http://localhost%s/", sc.Address)
			if sc.MetricsPath != "" {
				info(out, "Metrics: http://localhost%s%s", sc.Address, sc.MetricsPath)
			}
			if watch {
				info(out, "Watching for changes")
			}
			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Address to listen on (default: server.addr)")
	cmd.Flags().IntVarP(&index, "index", "i", 0, "Index of the tree in the file")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Update when the file changes")
	return cmd
}

// serverConfig maps the project config onto a server config.
func serverConfig(cfg *config.Config) *server.Config {
	sc := server.DefaultConfig()
	sc.Address = cfg.Server.Addr
	sc.Title = cfg.Name
	sc.ClientScript = cfg.Server.ClientScript
	sc.Pretty = cfg.Render.Pretty
	sc.Strategy = cfg.Strategy()
	sc.MetricsPath = cfg.MetricsPath()
	sc.WriteTimeout = cfg.WriteTimeout()
	sc.MaxPatchHistory = cfg.Server.MaxPatchHistory
	return sc
}
