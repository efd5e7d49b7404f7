package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "aggbot"

// Outcome labels
const (
	OutcomeOK       = "ok"
	OutcomeInvalid  = "invalid"
	OutcomeNoResult = "no_result"
	OutcomeError    = "error"
)

// Metrics holds the aggregation collectors
type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	buckets  *prometheus.HistogramVec
}

// NewMetrics registers the collectors on reg. A nil reg uses a private
// registry so tests can build as many instances as they like.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "aggregate_requests_total",
			Help:      "Aggregation requests by group type and outcome.",
		}, []string{"group_type", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "aggregate_duration_seconds",
			Help:      "Time spent answering an aggregation request.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"group_type"}),
		buckets: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "aggregate_buckets",
			Help:      "Number of buckets returned per successful request.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"group_type"}),
	}

	reg.MustRegister(m.requests, m.duration, m.buckets)
	return m
}

// NewDefaultMetrics registers on the global prometheus registry served by promhttp
func NewDefaultMetrics() *Metrics {
	return NewMetrics(prometheus.DefaultRegisterer)
}

// Observe records one finished request
func (m *Metrics) Observe(groupType, outcome string, started time.Time, buckets int) {
	if m == nil {
		return
	}
	if groupType == "" {
		groupType = "unknown"
	}
	m.requests.WithLabelValues(groupType, outcome).Inc()
	m.duration.WithLabelValues(groupType).Observe(time.Since(started).Seconds())
	if outcome == OutcomeOK {
		m.buckets.WithLabelValues(groupType).Observe(float64(buckets))
	}
}

// Requests exposes the request counter for tests
func (m *Metrics) Requests() *prometheus.CounterVec {
	return m.requests
}
