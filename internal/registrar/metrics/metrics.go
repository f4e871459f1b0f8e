package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the registrar.
type Metrics struct {
	Registrations *prometheus.CounterVec
	Renewals      *prometheus.CounterVec
	Failures      *prometheus.CounterVec
}

// New creates and registers the registrar metrics.
func New() *Metrics {
	return &Metrics{
		Registrations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "nameledger_registrations_total",
			Help: "Total successful name registrations, by TLD.",
		}, []string{"tld"}),
		Renewals: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "nameledger_renewals_total",
			Help: "Total successful lease renewals, by TLD.",
		}, []string{"tld"}),
		Failures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "nameledger_registrar_failures_total",
			Help: "Registrar operation failures, by error code.",
		}, []string{"code"}),
	}
}

func (m *Metrics) IncRegistration(tld string) {
	if m == nil {
		return
	}
	m.Registrations.WithLabelValues(tld).Inc()
}

func (m *Metrics) IncRenewal(tld string) {
	if m == nil {
		return
	}
	m.Renewals.WithLabelValues(tld).Inc()
}

func (m *Metrics) IncFailure(code string) {
	if m == nil {
		return
	}
	m.Failures.WithLabelValues(code).Inc()
}
