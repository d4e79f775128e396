package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vtree/internal/config"
	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	faint  = color.New(color.Faint).SprintFunc()
)

// globals are the persistent flags shared by every command.
type globals struct {
	configDir string
	dev       bool
	verbose   bool
	noColor   bool
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		errors.Fprint(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	g := &globals{}
	rootCmd := &cobra.Command{
		Use:   "vtree",
		Short: "Render, diff and serve element trees",
		Long: `vtree reconciles element trees against a live document.

Trees are described in YAML files (one tree per document). vtree can
render them to markup, print the patches that turn one tree into the
next, serve a tree to browsers over a websocket patch stream, and
publish rendered markup to a snapshot store.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if g.noColor {
				color.NoColor = true
				errors.DisableColors()
			}
		},
	}
	rootCmd.SetOut(out)

	rootCmd.PersistentFlags().StringVarP(&g.configDir, "config", "c", ".", "Directory holding "+config.ConfigFileName)
	rootCmd.PersistentFlags().BoolVar(&g.dev, "dev", false, "Validate trees (duplicate keys, reused nodes)")
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log debug output")
	rootCmd.PersistentFlags().BoolVar(&g.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(
		renderCmd(g),
		diffCmd(g),
		serveCmd(g),
		publishCmd(g),
		fetchCmd(g),
		versionCmd(),
	)
	return rootCmd
}

// load reads the project config and applies the global flags.
func (g *globals) load() (*config.Config, error) {
	cfg, err := config.LoadOrNew(g.configDir)
	if err != nil {
		return nil, err
	}
	if g.dev {
		cfg.Dev = true
	}
	vdom.SetDevMode(cfg.Dev)
	return cfg, nil
}

func (g *globals) logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if g.verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", green("✓"), fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
