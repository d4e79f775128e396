package vdom

import (
	"log/slog"
	"sync/atomic"
)

var (
	devMode atomic.Bool
	logger  atomic.Pointer[slog.Logger]
)

// SetDevMode turns structural validation on or off for the whole process.
func SetDevMode(on bool) { devMode.Store(on) }

// DevMode reports whether structural validation is enabled.
func DevMode() bool { return devMode.Load() }

// SetLogger sets the logger used for dev-mode warnings.
// A nil logger restores slog.Default().
func SetLogger(l *slog.Logger) { logger.Store(l) }

// Logger returns the package logger.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return slog.Default()
}
