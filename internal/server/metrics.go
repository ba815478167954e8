package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics tracks the Prometheus metrics of the server.
//
// All metrics use the notecache_ prefix.
type Metrics struct {
	// RequestsTotal counts HTTP requests by route pattern, method and status
	RequestsTotal *prometheus.CounterVec

	// RequestDuration tracks latency distribution
	RequestDuration *prometheus.HistogramVec

	// StoreEvents counts store changes seen by the watcher, by event type
	StoreEvents *prometheus.CounterVec
}

// NewMetrics creates the server metrics and registers them on reg.
// Panics if registration fails (expected during initialization only).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notecache_http_requests_total",
				Help: "Total HTTP requests by route, method and status",
			},
			[]string{"route", "method", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "notecache_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		StoreEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notecache_store_events_total",
				Help: "Store changes observed by the watcher, by event type",
			},
			[]string{"type"}, // "CREATE", "MODIFY", "DELETE"
		),
	}

	reg.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.StoreEvents,
	)
	return m
}
