package reconcile

import (
	"log/slog"

	"github.com/vango-dev/vtree/pkg/dom"
	"github.com/vango-dev/vtree/pkg/render"
)

// Option configures an Engine or a Root.
type Option func(*Engine)

// WithLogger sets the logger. Replacements are logged at debug level and
// failed passes at error level. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithRecorder sets the recorder that receives every patch.
func WithRecorder(r Recorder) Option {
	return func(e *Engine) {
		e.recorder = r
	}
}

// WithStrategy sets how new subtrees are built.
func WithStrategy(s render.Strategy) Option {
	return func(e *Engine) {
		e.builder.Strategy = s
	}
}

// WithRoot sets the node patch paths are relative to. Without it paths
// start at the topmost ancestor.
func WithRoot(root *dom.Node) Option {
	return func(e *Engine) {
		e.root = root
	}
}
