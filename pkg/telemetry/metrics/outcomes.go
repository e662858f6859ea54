package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// OutcomeMetrics tracks determination outcomes.
//
// Metrics:
//   - casefold_triage_eligibility_determinations_total: Determinations by program and status
//   - casefold_triage_risk_levels_total: Assessments by bucketed risk level
//   - casefold_triage_risk_score: Histogram of normalized risk scores
//   - casefold_triage_review_decisions_total: Reviewer decisions by disposition
type OutcomeMetrics struct {
	eligibilityTotal *prometheus.CounterVec
	riskLevels       *prometheus.CounterVec
	riskScore        prometheus.Histogram
	reviewDecisions  *prometheus.CounterVec
}

// NewOutcomeMetrics creates and registers outcome metrics.
func NewOutcomeMetrics(registry *prometheus.Registry) *OutcomeMetrics {
	om := &OutcomeMetrics{
		eligibilityTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: Subsystem,
				Name:      "eligibility_determinations_total",
				Help:      "Total number of program eligibility determinations",
			},
			[]string{"program", "status"},
		),

		riskLevels: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: Subsystem,
				Name:      "risk_levels_total",
				Help:      "Total number of risk assessments by level",
			},
			[]string{"level"},
		),

		riskScore: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Subsystem: Subsystem,
				Name:      "risk_score",
				Help:      "Distribution of normalized risk scores",
				Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 80, 90},
			},
		),

		reviewDecisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: Subsystem,
				Name:      "review_decisions_total",
				Help:      "Total number of supervisor review decisions",
			},
			[]string{"disposition"},
		),
	}

	registry.MustRegister(
		om.eligibilityTotal,
		om.riskLevels,
		om.riskScore,
		om.reviewDecisions,
	)

	return om
}

// RecordEligibility records one program determination.
func (om *OutcomeMetrics) RecordEligibility(program, status string) {
	if om == nil {
		return
	}
	om.eligibilityTotal.WithLabelValues(program, status).Inc()
}

// RecordRisk records one completed risk assessment.
func (om *OutcomeMetrics) RecordRisk(level string, score float64) {
	if om == nil {
		return
	}
	om.riskLevels.WithLabelValues(level).Inc()
	om.riskScore.Observe(score)
}

// RecordReviewDecision records one reviewer disposition
// ("approved", "edited", "more_questions").
func (om *OutcomeMetrics) RecordReviewDecision(disposition string) {
	if om == nil {
		return
	}
	om.reviewDecisions.WithLabelValues(disposition).Inc()
}
