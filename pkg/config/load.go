package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a YAML file at the specified path,
// applies defaults, and validates the result. Environment variables are
// not consulted; use LoadWithEnvOverrides for that.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Variables follow the naming convention
// TRIAGE_SECTION_FIELD (e.g. TRIAGE_CHECKPOINT_BACKEND) and always take
// precedence over file values.
func LoadWithEnvOverrides(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies TRIAGE_* environment variable overrides.
func applyEnvOverrides(cfg *Config) {
	// Workflow overrides
	if val := os.Getenv("TRIAGE_WORKFLOW_OFFICER_ID"); val != "" {
		cfg.Workflow.OfficerID = val
	}
	if val := os.Getenv("TRIAGE_WORKFLOW_MAX_QUESTIONS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Workflow.MaxQuestions = i
		}
	}

	// Catalog overrides
	if val := os.Getenv("TRIAGE_CATALOG_PATH"); val != "" {
		cfg.Catalog.Path = val
	}

	// Retrieval overrides
	if val := os.Getenv("TRIAGE_RETRIEVAL_MODE"); val != "" {
		cfg.Retrieval.Mode = val
	}
	if val := os.Getenv("TRIAGE_RETRIEVAL_DIR"); val != "" {
		cfg.Retrieval.Dir = val
	}
	if val := os.Getenv("TRIAGE_RETRIEVAL_TOP_K"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Retrieval.TopK = i
		}
	}
	if val := os.Getenv("TRIAGE_RETRIEVAL_WATCH"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Retrieval.Watch = b
		}
	}

	// Checkpoint overrides
	if val := os.Getenv("TRIAGE_CHECKPOINT_BACKEND"); val != "" {
		cfg.Checkpoint.Backend = val
	}
	if val := os.Getenv("TRIAGE_CHECKPOINT_SQLITE_PATH"); val != "" {
		cfg.Checkpoint.SQLite.Path = val
	}
	if val := os.Getenv("TRIAGE_CHECKPOINT_SQLITE_WAL_MODE"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Checkpoint.SQLite.WALMode = b
		}
	}
	if val := os.Getenv("TRIAGE_CHECKPOINT_SQLITE_BUSY_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Checkpoint.SQLite.BusyTimeout = d
		}
	}
	if val := os.Getenv("TRIAGE_CHECKPOINT_RETENTION_MAX_SUSPENSION_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Checkpoint.Retention.MaxSuspensionDays = i
		}
	}
	if val := os.Getenv("TRIAGE_CHECKPOINT_RETENTION_SWEEP_SCHEDULE"); val != "" {
		cfg.Checkpoint.Retention.SweepSchedule = val
	}

	// Audit overrides
	if val := os.Getenv("TRIAGE_AUDIT_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Audit.Enabled = b
		}
	}
	if val := os.Getenv("TRIAGE_AUDIT_PATH"); val != "" {
		cfg.Audit.Path = val
	}

	// Telemetry overrides
	if val := os.Getenv("TRIAGE_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("TRIAGE_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("TRIAGE_TELEMETRY_LOGGING_REDACT_SUBJECTS"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Logging.RedactSubjects = b
		}
	}
	if val := os.Getenv("TRIAGE_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("TRIAGE_TELEMETRY_METRICS_LISTEN_ADDRESS"); val != "" {
		cfg.Telemetry.Metrics.ListenAddress = val
	}
	if val := os.Getenv("TRIAGE_TELEMETRY_METRICS_PATH"); val != "" {
		cfg.Telemetry.Metrics.Path = val
	}
}
