package gov

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "rigo_dao"

type Metrics struct {
	ProposalsCreated  prometheus.Counter
	ProposalsFinished *prometheus.CounterVec
	VotesCast         *prometheus.CounterVec
	ActiveProposals   prometheus.Gauge
}

// NewMetrics registers the governance metrics to `reg`.
// The collectors are left unregistered when `reg` is nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		ProposalsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "gov",
			Name:      "proposals_created_total",
			Help:      "Number of created proposals.",
		}),
		ProposalsFinished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "gov",
			Name:      "proposals_finished_total",
			Help:      "Number of finished proposals by final state.",
		}, []string{"state"}),
		VotesCast: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "gov",
			Name:      "votes_cast_total",
			Help:      "Number of accepted votes by side.",
		}, []string{"side"}),
		ActiveProposals: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "gov",
			Name:      "active_proposals",
			Help:      "Number of proposals in the active set.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.ProposalsCreated, m.ProposalsFinished, m.VotesCast, m.ActiveProposals)
	}
	return m
}
