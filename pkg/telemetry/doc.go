// Package telemetry provides observability for the triage service.
//
// # Components
//
//   - logging: structured slog logging with subject redaction
//   - metrics: Prometheus metrics collection
//
// # Usage
//
//	logger, err := logging.New(cfg.Telemetry.Logging, os.Stdout)
//	logger.Info("Case opened", "case_id", rec.CaseID)
//
//	collector := metrics.NewCollector(nil)
//	collector.Workflow().RecordCaseEvent("opened")
//
// # Subject Protection
//
// Case records describe minors. With redaction enabled (the default),
// youth- and guardian-identifying attribute values are masked before log
// lines are emitted:
//
//	subject_name: John Doe → [REDACTED]
//
// Case IDs and derived facts (age, risk level, stage) pass through so log
// lines stay correlatable without exposing identity.
package telemetry
