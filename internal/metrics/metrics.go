// Package metrics exposes Prometheus instrumentation for the bills pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "billed"

// Fetch outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics holds the collectors recorded by the bills pipeline.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	fetches       *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	fetchedBills  prometheus.Counter
	degraded      *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bill_fetches_total",
			Help:      "Bill list fetches from the store, by outcome.",
		}, []string{"outcome"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "bill_fetch_duration_seconds",
			Help:      "Latency of bill list fetches from the store.",
			Buckets:   prometheus.DefBuckets,
		}),
		fetchedBills: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bills_fetched_total",
			Help:      "Bill records returned by the store.",
		}),
		degraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "format_degraded_total",
			Help:      "Bill fields shown raw because they could not be formatted, by field.",
		}, []string{"field"}),
	}
	reg.MustRegister(m.fetches, m.fetchDuration, m.fetchedBills, m.degraded)
	return m
}

// ObserveFetch records one store fetch.
func (m *Metrics) ObserveFetch(start time.Time, count int, err error) {
	if m == nil {
		return
	}
	m.fetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		m.fetches.WithLabelValues(OutcomeError).Inc()
		return
	}
	m.fetches.WithLabelValues(OutcomeOK).Inc()
	m.fetchedBills.Add(float64(count))
}

// Degraded records a field that fell back to its raw value.
func (m *Metrics) Degraded(field string) {
	if m == nil {
		return
	}
	m.degraded.WithLabelValues(field).Inc()
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
