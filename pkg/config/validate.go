package config

import (
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for a specific configuration
// field.
type FieldError struct {
	// Field is the dotted path to the configuration field
	// (e.g. "checkpoint.backend").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a
// configuration. All field errors are collected and returned together.
type ValidationError struct {
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration. It returns nil when the
// configuration is valid, otherwise a ValidationError listing every
// failed rule.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateWorkflow(&cfg.Workflow)...)
	errs = append(errs, validateRetrieval(&cfg.Retrieval)...)
	errs = append(errs, validateCheckpoint(&cfg.Checkpoint)...)
	errs = append(errs, validateAudit(&cfg.Audit)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}

func validateWorkflow(cfg *WorkflowConfig) []FieldError {
	var errs []FieldError

	if cfg.OfficerID == "" {
		errs = append(errs, FieldError{
			Field:   "workflow.officer_id",
			Message: "officer id is required",
		})
	}
	if cfg.MaxQuestions < 0 {
		errs = append(errs, FieldError{
			Field:   "workflow.max_questions",
			Message: "must be zero or positive",
		})
	}

	return errs
}

func validateRetrieval(cfg *RetrievalConfig) []FieldError {
	var errs []FieldError

	switch cfg.Mode {
	case "builtin", "dir":
	default:
		errs = append(errs, FieldError{
			Field:   "retrieval.mode",
			Message: fmt.Sprintf("invalid mode %q, must be one of: builtin, dir", cfg.Mode),
		})
	}

	if cfg.Mode == "dir" && cfg.Dir == "" {
		errs = append(errs, FieldError{
			Field:   "retrieval.dir",
			Message: "corpus directory is required when mode is \"dir\"",
		})
	}
	if cfg.Watch && cfg.Mode != "dir" {
		errs = append(errs, FieldError{
			Field:   "retrieval.watch",
			Message: "watch requires mode \"dir\"",
		})
	}
	if cfg.TopK <= 0 {
		errs = append(errs, FieldError{
			Field:   "retrieval.top_k",
			Message: "must be positive",
		})
	}

	return errs
}

func validateCheckpoint(cfg *CheckpointConfig) []FieldError {
	var errs []FieldError

	switch cfg.Backend {
	case "memory", "sqlite":
	default:
		errs = append(errs, FieldError{
			Field:   "checkpoint.backend",
			Message: fmt.Sprintf("invalid backend %q, must be one of: memory, sqlite", cfg.Backend),
		})
	}

	if cfg.Backend == "sqlite" && cfg.SQLite.Path == "" {
		errs = append(errs, FieldError{
			Field:   "checkpoint.sqlite.path",
			Message: "database path is required when backend is \"sqlite\"",
		})
	}
	if cfg.SQLite.BusyTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "checkpoint.sqlite.busy_timeout",
			Message: "must be zero or positive",
		})
	}

	if cfg.Retention.MaxSuspensionDays <= 0 {
		errs = append(errs, FieldError{
			Field:   "checkpoint.retention.max_suspension_days",
			Message: "must be positive",
		})
	}
	if cfg.Retention.SweepSchedule != "" {
		if _, err := cron.ParseStandard(cfg.Retention.SweepSchedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "checkpoint.retention.sweep_schedule",
				Message: fmt.Sprintf("invalid cron expression: %v", err),
			})
		}
	}

	return errs
}

func validateAudit(cfg *AuditConfig) []FieldError {
	var errs []FieldError

	if cfg.Enabled && cfg.Path == "" {
		errs = append(errs, FieldError{
			Field:   "audit.path",
			Message: "database path is required when audit is enabled",
		})
	}

	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid level %q, must be one of: debug, info, warn, error", cfg.Logging.Level),
		})
	}

	switch cfg.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid format %q, must be one of: json, text", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled {
		if cfg.Metrics.ListenAddress == "" {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.listen_address",
				Message: "listen address is required when metrics are enabled",
			})
		}
		if !strings.HasPrefix(cfg.Metrics.Path, "/") {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.path",
				Message: "path must start with \"/\"",
			})
		}
	}

	return errs
}
