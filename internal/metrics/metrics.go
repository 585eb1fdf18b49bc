// Package metrics exposes widget counters through Prometheus.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors on a dedicated registry
type Metrics struct {
	registry       *prometheus.Registry
	fetches        *prometheus.CounterVec
	fetchDuration  prometheus.Histogram
	categories     *prometheus.CounterVec
	sessionsActive prometheus.Gauge
}

// New creates and registers all collectors
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		fetches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wxwidget_fetch_total",
				Help: "Timeline fetches by outcome.",
			},
			[]string{"outcome"},
		),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "wxwidget_fetch_duration_seconds",
			Help:    "Timeline fetch latency.",
			Buckets: prometheus.DefBuckets,
		}),
		categories: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wxwidget_condition_category_total",
				Help: "Classified current conditions of successful fetches.",
			},
			[]string{"category"},
		),
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "wxwidget_sessions_active",
			Help: "Open widget sessions.",
		}),
	}

	m.registry.MustRegister(
		m.fetches,
		m.fetchDuration,
		m.categories,
		m.sessionsActive,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveFetch records one completed fetch
func (m *Metrics) ObserveFetch(outcome string, duration time.Duration) {
	m.fetches.WithLabelValues(outcome).Inc()
	m.fetchDuration.Observe(duration.Seconds())
}

// ObserveCategory records the category of a successful fetch
func (m *Metrics) ObserveCategory(category string) {
	m.categories.WithLabelValues(category).Inc()
}

// SessionOpened increments the active session gauge
func (m *Metrics) SessionOpened() {
	m.sessionsActive.Inc()
}

// SessionClosed decrements the active session gauge
func (m *Metrics) SessionClosed() {
	m.sessionsActive.Dec()
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
