package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// WorkflowMetrics tracks workflow engine activity.
//
// Metrics:
//   - casefold_triage_stage_transitions_total: Stage transition count by from/to stage
//   - casefold_triage_stage_duration_seconds: Stage processing duration histogram
//   - casefold_triage_cases_total: Cases opened, suspended, resumed, completed
//   - casefold_triage_questions_asked_total: Interview questions asked by topic
type WorkflowMetrics struct {
	stageTransitions *prometheus.CounterVec
	stageDuration    *prometheus.HistogramVec
	casesTotal       *prometheus.CounterVec
	questionsAsked   *prometheus.CounterVec
}

// NewWorkflowMetrics creates and registers workflow metrics.
func NewWorkflowMetrics(registry *prometheus.Registry) *WorkflowMetrics {
	wm := &WorkflowMetrics{
		stageTransitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: Subsystem,
				Name:      "stage_transitions_total",
				Help:      "Total number of workflow stage transitions",
			},
			[]string{"from", "to"},
		),

		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Subsystem: Subsystem,
				Name:      "stage_duration_seconds",
				Help:      "Processing duration per workflow stage in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
			},
			[]string{"stage"},
		),

		casesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: Subsystem,
				Name:      "cases_total",
				Help:      "Total number of case lifecycle events",
			},
			[]string{"event"},
		),

		questionsAsked: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: Subsystem,
				Name:      "questions_asked_total",
				Help:      "Total number of interview questions asked",
			},
			[]string{"topic"},
		),
	}

	registry.MustRegister(
		wm.stageTransitions,
		wm.stageDuration,
		wm.casesTotal,
		wm.questionsAsked,
	)

	return wm
}

// RecordTransition records a workflow stage transition.
func (wm *WorkflowMetrics) RecordTransition(from, to string) {
	if wm == nil {
		return
	}
	wm.stageTransitions.WithLabelValues(from, to).Inc()
}

// RecordStageDuration records how long a stage took to process.
func (wm *WorkflowMetrics) RecordStageDuration(stage string, duration time.Duration) {
	if wm == nil {
		return
	}
	wm.stageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordCaseEvent records a case lifecycle event
// ("opened", "suspended", "resumed", "completed", "failed").
func (wm *WorkflowMetrics) RecordCaseEvent(event string) {
	if wm == nil {
		return
	}
	wm.casesTotal.WithLabelValues(event).Inc()
}

// RecordQuestion records one asked interview question.
func (wm *WorkflowMetrics) RecordQuestion(topic string) {
	if wm == nil {
		return
	}
	wm.questionsAsked.WithLabelValues(topic).Inc()
}
