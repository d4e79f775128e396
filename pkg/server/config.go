package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/render"
)

// Config holds configuration for a Session and its Server.
type Config struct {
	// Address is the address to listen on.
	// Default: ":8080".
	Address string

	// Title is the page title written by ServePage.
	Title string

	// RootID is the id of the element holding the tree on the page.
	// Default: "root".
	RootID string

	// ClientScript is the path of the client script written by ServePage.
	ClientScript string

	// Pretty renders the page markup indented.
	Pretty bool

	// Strategy selects how the session builds new live nodes.
	Strategy render.Strategy

	// MetricsPath is the route serving Prometheus metrics. Empty disables it.
	// Default: "/metrics".
	MetricsPath string

	// Timeouts

	// WriteTimeout is the maximum time to wait when sending a frame.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// ReadTimeout is the maximum time to wait for a client message.
	// Default: 60 seconds.
	ReadTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 30 seconds.
	ShutdownTimeout time.Duration

	// Limits

	// MaxMessageSize is the maximum size of an incoming websocket message.
	// Default: 64KB.
	MaxMessageSize int64

	// MaxPatchHistory is the number of recent patch frames kept for
	// reconnecting clients.
	// Default: 100.
	MaxPatchHistory int

	// ReadBufferSize and WriteBufferSize size the websocket buffers.
	// Default: 1024 each.
	ReadBufferSize  int
	WriteBufferSize int

	// CheckOrigin validates the websocket origin. Nil allows same-origin
	// requests only.
	CheckOrigin func(*http.Request) bool

	// TracerName names the OpenTelemetry tracer for update spans.
	// Default: "vtree".
	TracerName string

	// Recorder additionally receives every patch, for example
	// reconcile.Metrics.
	Recorder reconcile.Recorder

	// Metrics receives session metrics. Nil records none.
	Metrics *Metrics

	// Logger receives connection and update logs.
	// Default: slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Address:         ":8080",
		RootID:          "root",
		MetricsPath:     "/metrics",
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		ShutdownTimeout: 30 * time.Second,
		MaxMessageSize:  64 * 1024,
		MaxPatchHistory: 100,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		TracerName:      "vtree",
	}
}

// Clone returns a copy of the Config.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

// withDefaults returns a copy of c with zero fields filled in.
func (c *Config) withDefaults() *Config {
	d := DefaultConfig()
	if c == nil {
		d.Logger = slog.Default()
		return d
	}
	out := c.Clone()
	if out.Address == "" {
		out.Address = d.Address
	}
	if out.RootID == "" {
		out.RootID = d.RootID
	}
	if out.WriteTimeout == 0 {
		out.WriteTimeout = d.WriteTimeout
	}
	if out.ReadTimeout == 0 {
		out.ReadTimeout = d.ReadTimeout
	}
	if out.ShutdownTimeout == 0 {
		out.ShutdownTimeout = d.ShutdownTimeout
	}
	if out.MaxMessageSize == 0 {
		out.MaxMessageSize = d.MaxMessageSize
	}
	if out.MaxPatchHistory == 0 {
		out.MaxPatchHistory = d.MaxPatchHistory
	}
	if out.ReadBufferSize == 0 {
		out.ReadBufferSize = d.ReadBufferSize
	}
	if out.WriteBufferSize == 0 {
		out.WriteBufferSize = d.WriteBufferSize
	}
	if out.TracerName == "" {
		out.TracerName = d.TracerName
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	return out
}
