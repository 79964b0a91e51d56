package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the workflow engine. All methods are
// nil-safe so wiring stays optional in tests.
type Metrics struct {
	// Transition attempts by action and outcome (accepted/rejected)
	TransitionsTotal *prometheus.CounterVec

	// End-to-end transition latency including lock wait and store write
	TransitionDuration prometheus.Histogram

	// Candidate list mutations by operation
	CandidateMutations *prometheus.CounterVec
}

// New creates and registers all workflow metrics.
func New() *Metrics {
	return &Metrics{
		TransitionsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "razeflow_transitions_total",
			Help: "Total workflow transition attempts by action and outcome",
		}, []string{"action", "outcome"}),

		TransitionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "razeflow_transition_duration_seconds",
			Help:    "Duration of workflow transitions including lock acquisition and persistence",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),

		CandidateMutations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "razeflow_candidate_mutations_total",
			Help: "Total priority-candidate list mutations by operation",
		}, []string{"operation"}),
	}
}

// IncrementTransition records one transition attempt.
func (m *Metrics) IncrementTransition(action, outcome string) {
	if m != nil {
		m.TransitionsTotal.WithLabelValues(action, outcome).Inc()
	}
}

// ObserveTransitionDuration records how long a transition took.
func (m *Metrics) ObserveTransitionDuration(d time.Duration) {
	if m != nil {
		m.TransitionDuration.Observe(d.Seconds())
	}
}

// IncrementCandidateMutation records one ranking mutation.
func (m *Metrics) IncrementCandidateMutation(operation string) {
	if m != nil {
		m.CandidateMutations.WithLabelValues(operation).Inc()
	}
}
