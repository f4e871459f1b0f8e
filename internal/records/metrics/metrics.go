package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the record store and reverse
// registry.
type Metrics struct {
	TargetUpdates        prometheus.Counter
	Reclaims             prometheus.Counter
	ReverseInvalidations prometheus.Counter
	StaleTokenRejections prometheus.Counter
}

// New creates and registers the records metrics.
func New() *Metrics {
	return &Metrics{
		TargetUpdates: promauto.NewCounter(prometheus.CounterOpts{
			Name: "nameledger_target_updates_total",
			Help: "Total forward target address changes (set and unset).",
		}),
		Reclaims: promauto.NewCounter(prometheus.CounterOpts{
			Name: "nameledger_reclaims_total",
			Help: "Total record owner reclaims.",
		}),
		ReverseInvalidations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "nameledger_reverse_invalidations_total",
			Help: "Reverse entries removed because their forward target changed.",
		}),
		StaleTokenRejections: promauto.NewCounter(prometheus.CounterOpts{
			Name: "nameledger_stale_token_rejections_total",
			Help: "Mutating calls rejected because the token failed the freshness or expiry guard.",
		}),
	}
}

func (m *Metrics) IncTargetUpdate() {
	if m == nil {
		return
	}
	m.TargetUpdates.Inc()
}

func (m *Metrics) IncReclaim() {
	if m == nil {
		return
	}
	m.Reclaims.Inc()
}

func (m *Metrics) IncReverseInvalidation() {
	if m == nil {
		return
	}
	m.ReverseInvalidations.Inc()
}

func (m *Metrics) IncStaleTokenRejection() {
	if m == nil {
		return
	}
	m.StaleTokenRejections.Inc()
}
