package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects session metrics: events, frames, clients and
// reconnects. A nil *Metrics records nothing.
type Metrics struct {
	eventsTotal   *prometheus.CounterVec
	eventDuration prometheus.Histogram
	framesSent    *prometheus.CounterVec
	frameBytes    prometheus.Counter
	clients       prometheus.Gauge
	reconnects    *prometheus.CounterVec
	wsErrors      *prometheus.CounterVec
}

// NewMetrics registers the session metrics on reg under the vtree_server
// prefix.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	const namespace, subsystem = "vtree", "server"

	return &Metrics{
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "events_total",
			Help:      "Total number of client events by outcome",
		}, []string{"status"}),

		eventDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "event_duration_seconds",
			Help:      "Event handling duration in seconds, including the update",
			Buckets:   prometheus.DefBuckets,
		}),

		framesSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "frames_sent_total",
			Help:      "Total number of frames sent by type; a broadcast counts once",
		}, []string{"type"}),

		frameBytes: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "frame_bytes_total",
			Help:      "Total bytes of frames sent; a broadcast counts once",
		}),

		clients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "clients",
			Help:      "Number of connected websocket clients",
		}),

		reconnects: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "reconnects_total",
			Help:      "Total number of reconnecting clients by how they caught up",
		}, []string{"mode"}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "websocket_errors_total",
			Help:      "Total websocket errors by type",
		}, []string{"type"}),
	}
}

// event records one handled event. status is "handled", "ignored" or
// "error".
func (m *Metrics) event(status string, d time.Duration) {
	if m == nil {
		return
	}
	m.eventsTotal.WithLabelValues(status).Inc()
	m.eventDuration.Observe(d.Seconds())
}

func (m *Metrics) frame(kind string, size int) {
	if m == nil {
		return
	}
	m.framesSent.WithLabelValues(kind).Inc()
	m.frameBytes.Add(float64(size))
}

func (m *Metrics) connected(delta float64) {
	if m == nil {
		return
	}
	m.clients.Add(delta)
}

// reconnect records a client that asked to resume; mode is "current",
// "history" or "snapshot".
func (m *Metrics) reconnect(mode string) {
	if m == nil {
		return
	}
	m.reconnects.WithLabelValues(mode).Inc()
}

// wsError records a websocket failure: "upgrade", "read", "write" or
// "protocol".
func (m *Metrics) wsError(kind string) {
	if m == nil {
		return
	}
	m.wsErrors.WithLabelValues(kind).Inc()
}
