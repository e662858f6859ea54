// Package logging provides structured logging for the triage service.
//
// Loggers are built on log/slog with a configurable level and output
// format. When subject redaction is enabled, attributes that identify the
// youth (name, date of birth, guardian contact) are masked before they
// reach the output handler, so case-level logging never leaks juvenile
// identity into log aggregation.
package logging
