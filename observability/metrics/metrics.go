package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts loan action outcomes per verb and contract version.
type Metrics struct {
	actions *prometheus.CounterVec
}

// New registers the SDK collectors against reg. A nil registerer yields
// unregistered collectors, which is what library tests want.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "nftfi",
			Subsystem: "loans",
			Name:      "actions_total",
			Help:      "Loan actions issued, by verb, contract version and outcome.",
		}, []string{"verb", "contract", "outcome"}),
	}
	if reg != nil {
		reg.MustRegister(m.actions)
	}
	return m
}

// ObserveAction records one completed action.
func (m *Metrics) ObserveAction(verb, contract string, success bool) {
	if m == nil || m.actions == nil {
		return
	}
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.actions.WithLabelValues(verb, contract, outcome).Inc()
}
