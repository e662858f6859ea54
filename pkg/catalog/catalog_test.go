package catalog

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"casefold-hq/triage/pkg/casefile"
)

func TestDefault_Validates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v, want nil", err)
	}
}

func TestDefault_RequiredTopicsSupersetOfRegistry(t *testing.T) {
	c := Default()

	required := make(map[string]bool)
	for _, k := range c.RequiredTopics() {
		required[k] = true
	}
	for _, topic := range c.Topics() {
		if !required[topic.Key] {
			t.Errorf("registry topic %q missing from required set", topic.Key)
		}
	}

	// Demographics is coverage-tracked but has no interview questions.
	if !required["demographics"] {
		t.Error("demographics missing from required topics")
	}
	if _, ok := c.Topic("demographics"); ok {
		t.Error("demographics should not be in the question registry")
	}
}

func TestDefault_MaxPossibleRiskScore(t *testing.T) {
	// Eight domains, weights 2.0 + 1.5*5 + 1.0*2, high severity 3.0 each.
	got := Default().MaxPossibleRiskScore()
	if math.Abs(got-34.5) > 1e-9 {
		t.Errorf("MaxPossibleRiskScore() = %v, want 34.5", got)
	}
}

func TestDomainForTopic(t *testing.T) {
	c := Default()

	tests := []struct {
		topic  string
		domain string
		ok     bool
	}{
		{"prior_offenses", "prior_offenses", true},
		{"current_offense", "prior_offenses", true},
		{"family_situation", "family_circumstances", true},
		{"mental_health", "personality_behavior", true},
		{"substance_use", "substance_abuse", true},
		{"strengths_protective_factors", "", false},
		{"demographics", "", false},
	}

	for _, tt := range tests {
		d, ok := c.DomainForTopic(tt.topic)
		if ok != tt.ok {
			t.Errorf("DomainForTopic(%q) ok = %v, want %v", tt.topic, ok, tt.ok)
			continue
		}
		if ok && d.Key != tt.domain {
			t.Errorf("DomainForTopic(%q) = %q, want %q", tt.topic, d.Key, tt.domain)
		}
	}
}

func TestIndicatorKeywords(t *testing.T) {
	c := Default()

	if kws := c.IndicatorKeywords("substance_use"); len(kws) == 0 {
		t.Error("substance_use keyword set is empty")
	}
	if kws := c.IndicatorKeywords("mental_health"); len(kws) == 0 {
		t.Error("mental_health keyword set is empty")
	}
	if kws := c.IndicatorKeywords("education"); kws != nil {
		t.Errorf("education keyword set = %v, want nil", kws)
	}
}

func TestTopics_SortedUniquePriorities(t *testing.T) {
	c := Default()
	for _, topic := range c.Topics() {
		if topic.Priority <= 0 {
			t.Errorf("topic %q priority = %d, want positive", topic.Key, topic.Priority)
		}
		if len(topic.Questions) == 0 {
			t.Errorf("topic %q has no questions", topic.Key)
		}
	}
}

func TestSeverityScores(t *testing.T) {
	if got := casefile.SeverityHigh.Score(); got != 3 {
		t.Errorf("high severity score = %v, want 3", got)
	}
	if got := casefile.SeverityModerate.Score(); got != 2 {
		t.Errorf("moderate severity score = %v, want 2", got)
	}
	if got := casefile.SeverityLow.Score(); got != 1 {
		t.Errorf("low severity score = %v, want 1", got)
	}
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") = %v, want nil", err)
	}
	if len(c.Programs()) != 5 {
		t.Errorf("default catalog has %d programs, want 5", len(c.Programs()))
	}
}

func TestLoad_SectionOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `
programs:
  - key: pilot_program
    name: Pilot Program
    policy_citation: "Pilot Manual, Section 1"
    criteria:
      age_min: 10
      age_max: 17
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v, want nil", err)
	}

	// Programs replaced wholesale, other sections untouched.
	if len(c.Programs()) != 1 {
		t.Fatalf("catalog has %d programs, want 1", len(c.Programs()))
	}
	if _, ok := c.Program("pilot_program"); !ok {
		t.Error("pilot_program not found after override")
	}
	if len(c.Domains()) != 8 {
		t.Errorf("catalog has %d domains, want the 8 defaults", len(c.Domains()))
	}
}

func TestLoad_RejectsInvalidOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	content := `
domains:
  - key: broken
    weight: -1
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() = nil error for a negative domain weight, want error")
	}
}
