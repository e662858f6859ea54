package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"casefold-hq/triage/pkg/config"
)

func TestNew_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LoggingConfig{Level: "warn", Format: "text"}, &buf)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	logger.Info("below threshold")
	logger.Warn("at threshold")

	out := buf.String()
	if strings.Contains(out, "below threshold") {
		t.Error("info line emitted at warn level")
	}
	if !strings.Contains(out, "at threshold") {
		t.Error("warn line missing")
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LoggingConfig{Level: "info", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	logger.Info("case opened", "case_id", "ABCD1234")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["msg"] != "case opened" || entry["case_id"] != "ABCD1234" {
		t.Errorf("entry = %v", entry)
	}
}

func TestNew_RejectsBadLevelAndFormat(t *testing.T) {
	if _, err := New(config.LoggingConfig{Level: "loud", Format: "json"}, nil); err == nil {
		t.Error("New() accepted an unknown level")
	}
	if _, err := New(config.LoggingConfig{Level: "info", Format: "csv"}, nil); err == nil {
		t.Error("New() accepted an unknown format")
	}
}

func TestNew_RedactsSubjectAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LoggingConfig{Level: "info", Format: "json", RedactSubjects: true}, &buf)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	logger.Info("case opened",
		"case_id", "ABCD1234",
		"subject_name", "John Doe",
		"date_of_birth", "2009-05-15",
	)

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["subject_name"] != RedactedValue {
		t.Errorf("subject_name = %v, want redacted", entry["subject_name"])
	}
	if entry["date_of_birth"] != RedactedValue {
		t.Errorf("date_of_birth = %v, want redacted", entry["date_of_birth"])
	}
	if entry["case_id"] != "ABCD1234" {
		t.Errorf("case_id = %v, want passed through", entry["case_id"])
	}
}

func TestRedactingHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LoggingConfig{Level: "info", Format: "json", RedactSubjects: true}, &buf)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	logger.With("guardian_name", "Jane Doe").Info("guardian contacted")

	if strings.Contains(buf.String(), "Jane Doe") {
		t.Error("pre-bound guardian_name leaked through With")
	}
	if !strings.Contains(buf.String(), RedactedValue) {
		t.Error("redacted marker missing from output")
	}
}

func TestRedactingHandler_Groups(t *testing.T) {
	var buf bytes.Buffer
	handler := NewRedactingHandler(slog.NewJSONHandler(&buf, nil))
	logger := slog.New(handler)

	logger.Info("case opened", slog.Group("subject_info",
		slog.String("subject_name", "John Doe"),
		slog.Int("age", 15),
	))

	out := buf.String()
	if strings.Contains(out, "John Doe") {
		t.Error("grouped subject_name leaked")
	}
	if !strings.Contains(out, `"age":15`) {
		t.Error("non-sensitive group member altered")
	}
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(config.LoggingConfig{Level: "info", Format: "json"}, &buf)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	Component(logger, "workflow").Info("step complete")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if entry["component"] != "workflow" {
		t.Errorf("component = %v, want workflow", entry["component"])
	}
}

func TestParseLevel_Defaults(t *testing.T) {
	level, err := parseLevel("")
	if err != nil || level != slog.LevelInfo {
		t.Errorf("parseLevel(\"\") = (%v, %v), want info", level, err)
	}
	level, err = parseLevel("WARNING")
	if err != nil || level != slog.LevelWarn {
		t.Errorf("parseLevel(WARNING) = (%v, %v), want warn", level, err)
	}
}
