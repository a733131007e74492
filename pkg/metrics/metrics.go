package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "smarttodo"

// Metrics owns a private registry so tests and multiple instances never collide on the default one.
type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	bulkTotal       *prometheus.CounterVec
	bulkItems       *prometheus.CounterVec
}

// New creates and registers every collector.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "Remote calls issued by the gateway, by operation and outcome.",
		}, []string{"op", "outcome"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "gateway",
			Name:      "request_duration_seconds",
			Help:      "Latency of remote calls issued by the gateway.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		bulkTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bulk",
			Name:      "operations_total",
			Help:      "Bulk operations by kind and aggregate outcome (success, partial, failed).",
		}, []string{"op", "outcome"}),
		bulkItems: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bulk",
			Name:      "items_total",
			Help:      "Individual members of bulk operations by kind and outcome.",
		}, []string{"op", "outcome"}),
	}

	m.registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.bulkTotal,
		m.bulkItems,
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveRequest records one gateway call. outcome is "ok" or the error kind.
func (m *Metrics) ObserveRequest(op, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(op, outcome).Inc()
	m.requestDuration.WithLabelValues(op).Observe(elapsed.Seconds())
}

// ObserveBulk records the aggregate and per-member outcome of a bulk operation.
func (m *Metrics) ObserveBulk(op string, succeeded, failed int) {
	if m == nil {
		return
	}
	outcome := "success"
	switch {
	case failed > 0 && succeeded > 0:
		outcome = "partial"
	case failed > 0:
		outcome = "failed"
	}
	m.bulkTotal.WithLabelValues(op, outcome).Inc()
	m.bulkItems.WithLabelValues(op, "succeeded").Add(float64(succeeded))
	m.bulkItems.WithLabelValues(op, "failed").Add(float64(failed))
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
