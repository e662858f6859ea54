// Package metrics provides Prometheus metrics for the triage service.
//
// The Collector owns a registry and groups metrics by concern: workflow
// stage transitions and durations, determination outcomes (eligibility
// and risk), and storage operations (checkpoint and audit). All recording
// methods are safe on a nil Collector, so components can treat metrics as
// optional.
package metrics
