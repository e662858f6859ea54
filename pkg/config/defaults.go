package config

import "time"

// Default values for configuration fields.
const (
	// Workflow defaults
	DefaultOfficerID = "intake-officer"

	// Retrieval defaults
	DefaultRetrievalMode = "builtin"
	DefaultRetrievalTopK = 5

	// Checkpoint defaults
	DefaultCheckpointBackend   = "memory"
	DefaultSQLitePath          = "data/checkpoints.db"
	DefaultSQLiteWALMode       = true
	DefaultSQLiteBusyTimeout   = 5 * time.Second
	DefaultMaxSuspensionDays   = 30
	DefaultRetentionSchedule   = "0 3 * * *"

	// Audit defaults
	DefaultAuditEnabled = true
	DefaultAuditPath    = "data/audit.db"

	// Telemetry defaults
	DefaultLoggingLevel         = "info"
	DefaultLoggingFormat        = "json"
	DefaultRedactSubjects       = true
	DefaultMetricsEnabled       = true
	DefaultMetricsListenAddress = "127.0.0.1:9090"
	DefaultMetricsPath          = "/metrics"
)

// DefaultConfig returns a configuration with all defaults applied.
func DefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults applies default values to zero-valued fields.
// It is idempotent and safe to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Workflow defaults
	if cfg.Workflow.OfficerID == "" {
		cfg.Workflow.OfficerID = DefaultOfficerID
	}

	// Retrieval defaults
	if cfg.Retrieval.Mode == "" {
		cfg.Retrieval.Mode = DefaultRetrievalMode
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = DefaultRetrievalTopK
	}

	// Checkpoint defaults
	if cfg.Checkpoint.Backend == "" {
		cfg.Checkpoint.Backend = DefaultCheckpointBackend
	}
	if cfg.Checkpoint.SQLite.Path == "" {
		cfg.Checkpoint.SQLite.Path = DefaultSQLitePath
		cfg.Checkpoint.SQLite.WALMode = DefaultSQLiteWALMode
	}
	if cfg.Checkpoint.SQLite.BusyTimeout == 0 {
		cfg.Checkpoint.SQLite.BusyTimeout = DefaultSQLiteBusyTimeout
	}
	if cfg.Checkpoint.Retention.MaxSuspensionDays == 0 {
		cfg.Checkpoint.Retention.MaxSuspensionDays = DefaultMaxSuspensionDays
	}
	if cfg.Checkpoint.Retention.SweepSchedule == "" {
		cfg.Checkpoint.Retention.SweepSchedule = DefaultRetentionSchedule
	}

	// Audit defaults
	if cfg.Audit.Path == "" {
		cfg.Audit.Enabled = DefaultAuditEnabled
		cfg.Audit.Path = DefaultAuditPath
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
		cfg.Telemetry.Logging.RedactSubjects = DefaultRedactSubjects
	}
	if cfg.Telemetry.Metrics.ListenAddress == "" {
		cfg.Telemetry.Metrics.Enabled = DefaultMetricsEnabled
		cfg.Telemetry.Metrics.ListenAddress = DefaultMetricsListenAddress
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
}
