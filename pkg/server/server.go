package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/vtree/pkg/reconcile"
)

// Server serves one Session over HTTP.
//
// Routes:
//
//	GET  /         the page around the mounted tree
//	GET  /ws       the patch stream
//	POST /reload   run an Update
//	GET  /metrics  Prometheus metrics (Config.MetricsPath)
type Server struct {
	cfg        *Config
	session    *Session
	registry   *prometheus.Registry
	router     chi.Router
	httpServer *http.Server
	logger     *slog.Logger
}

// New creates a server whose session renders with fn. Reconcile, session
// and Go runtime metrics are registered on a registry of the server's own.
func New(fn RenderFunc, cfg *Config) *Server {
	cfg = cfg.withDefaults()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	metrics := reconcile.NewMetrics(reconcile.WithRegistry(registry))

	sc := cfg.Clone()
	if cfg.Recorder != nil {
		sc.Recorder = reconcile.MultiRecorder{metrics, cfg.Recorder}
	} else {
		sc.Recorder = metrics
	}
	if sc.Metrics == nil {
		sc.Metrics = NewMetrics(registry)
	}

	s := &Server{
		cfg:      cfg,
		session:  NewSession(fn, sc),
		registry: registry,
		logger:   cfg.Logger.With("component", "server"),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/", s.session.ServePage)
	r.Get("/ws", s.session.ServeWS)
	r.Post("/reload", s.handleReload)
	if s.cfg.MetricsPath != "" {
		r.Method(http.MethodGet, s.cfg.MetricsPath, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	}
	return r
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Update(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Session returns the served session.
func (s *Server) Session() *Session { return s.session }

// Registry returns the server's metrics registry.
func (s *Server) Registry() *prometheus.Registry { return s.registry }

// Run renders the first tree and serves until ctx is done, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	if err := s.session.Update(ctx); err != nil {
		return err
	}

	s.httpServer = &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.cfg.Address)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes the session and gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()

	s.session.Close()
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}
	s.logger.Info("server shutdown complete")
	return nil
}
