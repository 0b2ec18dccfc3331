package server

import (
	"github.com/prometheus/client_golang/prometheus"
)

// metrics holds the server's Prometheus collectors on a private registry so
// that multiple servers can coexist in one process.
type metrics struct {
	registry *prometheus.Registry

	searches   *prometheus.CounterVec
	injections *prometheus.CounterVec
	duration   prometheus.Histogram
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "maamar_search_requests_total",
			Help: "Search requests by outcome.",
		}, []string{"outcome"}),
		injections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "maamar_injections_total",
			Help: "Conversation injections by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "maamar_search_duration_seconds",
			Help:    "Search request latency.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	m.registry.MustRegister(m.searches, m.injections, m.duration)
	return m
}
