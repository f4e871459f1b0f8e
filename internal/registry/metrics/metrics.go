package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the registry orchestrator.
type Metrics struct {
	Operations *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
}

// New creates and registers the registry metrics.
func New() *Metrics {
	return &Metrics{
		Operations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "nameledger_registry_operations_total",
			Help: "Registry operations, by operation and result code.",
		}, []string{"op", "code"}),
		Duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nameledger_registry_operation_seconds",
			Help:    "Registry operation latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
	}
}

// Observe records one operation outcome. code is "ok" on success, a domain
// error code otherwise.
func (m *Metrics) Observe(op, code string, seconds float64) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(op, code).Inc()
	m.Duration.WithLabelValues(op).Observe(seconds)
}
