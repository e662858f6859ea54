package config

import "time"

// Config is the root configuration for the triage service.
type Config struct {
	// Workflow configures the intake workflow engine.
	Workflow WorkflowConfig `yaml:"workflow"`

	// Catalog configures the reference-data catalog.
	Catalog CatalogConfig `yaml:"catalog"`

	// Retrieval configures the policy-document collaborator.
	Retrieval RetrievalConfig `yaml:"retrieval"`

	// Checkpoint configures suspension checkpoint storage.
	Checkpoint CheckpointConfig `yaml:"checkpoint"`

	// Audit configures the audit record store.
	Audit AuditConfig `yaml:"audit"`

	// Telemetry configures logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// WorkflowConfig contains workflow engine settings.
type WorkflowConfig struct {
	// OfficerID identifies the intake officer recorded on cases opened
	// by this instance.
	OfficerID string `yaml:"officer_id"`

	// MaxQuestions caps the number of questions asked in a single
	// questioning pass. Zero means no cap beyond topic exhaustion.
	MaxQuestions int `yaml:"max_questions"`
}

// CatalogConfig contains reference-data catalog settings.
type CatalogConfig struct {
	// Path is an optional YAML file whose sections override the built-in
	// catalog tables. Empty means the built-in catalog is used as-is.
	Path string `yaml:"path"`
}

// RetrievalConfig contains policy retrieval settings.
type RetrievalConfig struct {
	// Mode selects the corpus source: "builtin" or "dir".
	Mode string `yaml:"mode"`

	// Dir is the corpus directory when Mode is "dir".
	Dir string `yaml:"dir"`

	// TopK is the number of documents returned per retrieval.
	TopK int `yaml:"top_k"`

	// Watch enables fsnotify-based corpus reloading when Mode is "dir".
	Watch bool `yaml:"watch"`
}

// CheckpointConfig contains checkpoint storage settings.
type CheckpointConfig struct {
	// Backend selects the checkpoint store: "memory" or "sqlite".
	Backend string `yaml:"backend"`

	// SQLite configures the sqlite backend.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Retention configures pruning of stale suspended checkpoints.
	Retention RetentionConfig `yaml:"retention"`
}

// SQLiteConfig contains SQLite connection settings.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string `yaml:"path"`

	// WALMode enables write-ahead logging.
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is the SQLite busy timeout.
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// RetentionConfig contains checkpoint retention settings.
type RetentionConfig struct {
	// MaxSuspensionDays is how long a suspended case may wait for review
	// before its checkpoint is pruned.
	MaxSuspensionDays int `yaml:"max_suspension_days"`

	// SweepSchedule is the cron expression for the pruning sweep.
	SweepSchedule string `yaml:"sweep_schedule"`
}

// AuditConfig contains audit record store settings.
type AuditConfig struct {
	// Enabled controls whether completed cases are written to the audit
	// store.
	Enabled bool `yaml:"enabled"`

	// Path is the audit database file path.
	Path string `yaml:"path"`
}

// TelemetryConfig contains observability settings.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, or error.
	Level string `yaml:"level"`

	// Format is the log output format: json or text.
	Format string `yaml:"format"`

	// RedactSubjects controls whether youth-identifying fields are
	// redacted from log output.
	RedactSubjects bool `yaml:"redact_subjects"`
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	// Enabled controls metrics collection.
	Enabled bool `yaml:"enabled"`

	// ListenAddress is the address the metrics endpoint binds to.
	ListenAddress string `yaml:"listen_address"`

	// Path is the HTTP path the metrics are exposed on.
	Path string `yaml:"path"`
}
