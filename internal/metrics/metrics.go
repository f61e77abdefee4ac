// Package metrics exposes registry activity as Prometheus metrics.
package metrics

import (
	"context"
	"net/http"

	"github.com/aretw0/turnstile/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Query results used as the "result" label.
const (
	ResultAccepted = "accepted"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// Metrics holds the collectors fed by registry lifecycle hooks.
type Metrics struct {
	gatherer prometheus.Gatherer

	Queries     *prometheus.CounterVec
	WordLength  prometheus.Histogram
	Duration    prometheus.Histogram
	StoreWrites *prometheus.CounterVec
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		gatherer: reg,
		Queries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turnstile_queries_total",
				Help: "Total number of membership queries",
			},
			[]string{"automaton", "result"},
		),
		WordLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "turnstile_query_word_length",
			Help:    "Length of queried words in symbols",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "turnstile_query_duration_seconds",
			Help:    "Duration of membership queries",
			Buckets: prometheus.ExponentialBuckets(1e-6, 10, 7),
		}),
		StoreWrites: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "turnstile_store_operations_total",
				Help: "Total number of automaton store writes",
			},
			[]string{"operation"},
		),
	}
	reg.MustRegister(m.Queries, m.WordLength, m.Duration, m.StoreWrites)
	return m
}

// Hooks returns lifecycle hooks that record into the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnQuery: func(ctx context.Context, e *domain.QueryEvent) {
			result := ResultRejected
			switch {
			case e.Err != nil:
				result = ResultError
			case e.Accepted:
				result = ResultAccepted
			}
			m.Queries.WithLabelValues(e.Automaton, result).Inc()
			m.WordLength.Observe(float64(e.Length))
			m.Duration.Observe(e.Duration.Seconds())
		},
		OnStore: func(ctx context.Context, e *domain.StoreEvent) {
			m.StoreWrites.WithLabelValues(e.Operation).Inc()
		},
	}
}

// Handler serves the collected metrics in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
