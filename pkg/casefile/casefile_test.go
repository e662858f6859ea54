package casefile

import (
	"strings"
	"testing"
	"time"
)

var testTopics = []string{"demographics", "family_situation", "education"}

func newTestRecord() *CaseRecord {
	return New("officer-1",
		SubjectInfo{Name: "John Doe", DateOfBirth: "2009-05-15"},
		GuardianInfo{Name: "Jane Doe", Relationship: "Mother"},
		ReferralInfo{Source: "School", Reason: "Theft - Shoplifting"},
		testTopics,
	)
}

func TestNew_StartsUncovered(t *testing.T) {
	rec := newTestRecord()

	if rec.Phase != PhaseIntake {
		t.Errorf("Phase = %q, want %q", rec.Phase, PhaseIntake)
	}
	if len(rec.CoveredTopics) != 0 {
		t.Errorf("CoveredTopics = %v, want empty", rec.CoveredTopics)
	}
	if len(rec.UncoveredTopics) != len(testTopics) {
		t.Errorf("UncoveredTopics has %d entries, want %d", len(rec.UncoveredTopics), len(testTopics))
	}
	if err := rec.CheckInvariants(testTopics); err != nil {
		t.Errorf("CheckInvariants() = %v, want nil", err)
	}
}

func TestNewCaseID_Format(t *testing.T) {
	id := NewCaseID()
	if len(id) != 8 {
		t.Errorf("len(id) = %d, want 8", len(id))
	}
	if id != strings.ToUpper(id) {
		t.Errorf("id %q is not uppercase", id)
	}
}

func TestCoverTopic_MaintainsInvariant(t *testing.T) {
	rec := newTestRecord()

	rec.CoverTopic("education")
	if !rec.IsCovered("education") {
		t.Fatal("education should be covered")
	}
	if err := rec.CheckInvariants(testTopics); err != nil {
		t.Errorf("CheckInvariants() = %v, want nil", err)
	}

	// Covering again must be a no-op.
	rec.CoverTopic("education")
	if got := len(rec.CoveredTopics); got != 1 {
		t.Errorf("CoveredTopics has %d entries after double cover, want 1", got)
	}

	// Unknown topics are ignored.
	rec.CoverTopic("does_not_exist")
	if err := rec.CheckInvariants(testTopics); err != nil {
		t.Errorf("CheckInvariants() after unknown cover = %v, want nil", err)
	}
}

func TestReopenTopic(t *testing.T) {
	rec := newTestRecord()
	rec.CoverTopic("education")

	if !rec.ReopenTopic("education") {
		t.Fatal("ReopenTopic(education) = false, want true")
	}
	if rec.IsCovered("education") {
		t.Error("education still covered after reopen")
	}
	if err := rec.CheckInvariants(testTopics); err != nil {
		t.Errorf("CheckInvariants() = %v, want nil", err)
	}

	// Reopening an uncovered topic is a no-op.
	if rec.ReopenTopic("family_situation") {
		t.Error("ReopenTopic on an uncovered topic = true, want false")
	}
}

func TestCheckInvariants_DetectsViolations(t *testing.T) {
	rec := newTestRecord()

	rec.CoveredTopics = append(rec.CoveredTopics, "education")
	if err := rec.CheckInvariants(testTopics); err == nil {
		t.Error("CheckInvariants() = nil with education in both sets, want error")
	}

	rec = newTestRecord()
	rec.UncoveredTopics = rec.UncoveredTopics[:1]
	if err := rec.CheckInvariants(testTopics); err == nil {
		t.Error("CheckInvariants() = nil with a missing topic, want error")
	}
}

func TestRecordWarning_Accumulates(t *testing.T) {
	rec := newTestRecord()

	rec.RecordWarning("first")
	rec.RecordWarning("second")

	if rec.ErrorText != "first; second" {
		t.Errorf("ErrorText = %q, want %q", rec.ErrorText, "first; second")
	}
	if len(rec.AuditLog) != 2 {
		t.Errorf("AuditLog has %d entries, want 2", len(rec.AuditLog))
	}
}

func TestValidateSubject(t *testing.T) {
	tests := []struct {
		name     string
		subject  SubjectInfo
		warnings int
	}{
		{"complete", SubjectInfo{Name: "John Doe", DateOfBirth: "2009-05-15"}, 0},
		{"missing name", SubjectInfo{DateOfBirth: "2009-05-15"}, 1},
		{"missing dob", SubjectInfo{Name: "John Doe"}, 1},
		{"malformed dob", SubjectInfo{Name: "John Doe", DateOfBirth: "05/15/2009"}, 1},
		{"empty", SubjectInfo{}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateSubject(tt.subject)
			if len(got) != tt.warnings {
				t.Errorf("ValidateSubject() = %v, want %d warnings", got, tt.warnings)
			}
		})
	}
}

func TestAgeAt(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		dob     string
		wantAge int
		wantOK  bool
	}{
		{"2009-05-15", 15, true},
		{"2009-06-01", 15, true},  // birthday today
		{"2009-06-02", 14, true},  // birthday tomorrow
		{"2009-12-31", 14, true},  // birthday later this year
		{"2030-01-01", 0, false},  // future date
		{"not-a-date", 0, false},
	}

	for _, tt := range tests {
		age, ok := AgeAt(tt.dob, now)
		if age != tt.wantAge || ok != tt.wantOK {
			t.Errorf("AgeAt(%q) = (%d, %v), want (%d, %v)", tt.dob, age, ok, tt.wantAge, tt.wantOK)
		}
	}
}

func TestBuildAuditRecord(t *testing.T) {
	rec := newTestRecord()
	rec.Responses = append(rec.Responses, QuestionAnswer{Topic: "education", Answer: "enrolled"})
	rec.CoverTopic("education")
	rec.RiskAssessment = &RiskAssessment{Score: 42.5, Level: RiskModerate}
	rec.EligibilityResults = []EligibilityResult{
		{ProgramName: "Youth Diversion Program", Status: StatusEligible, PolicyCitation: "Manual 3.2"},
	}
	rec.Recommendations = []string{"Refer to Youth Diversion Program (per Manual 3.2)"}
	rec.Review = ReviewOutcome{Approved: true, Notes: "ok"}

	audit := rec.BuildAuditRecord()

	if audit.CaseID != rec.CaseID {
		t.Errorf("CaseID = %q, want %q", audit.CaseID, rec.CaseID)
	}
	if audit.RiskLevel != RiskModerate || audit.RiskScore != 42.5 {
		t.Errorf("risk projection = (%s, %v), want (moderate, 42.5)", audit.RiskLevel, audit.RiskScore)
	}
	if len(audit.Eligibility) != 1 || audit.Eligibility[0].Program != "Youth Diversion Program" {
		t.Errorf("Eligibility = %+v, want one diversion entry", audit.Eligibility)
	}
	if audit.QuestionsAsked != 1 || audit.TopicsCoveredCount != 1 {
		t.Errorf("counts = (%d, %d), want (1, 1)", audit.QuestionsAsked, audit.TopicsCoveredCount)
	}
	if !audit.Approved {
		t.Error("Approved = false, want true")
	}
}

func TestSortedCitations_DeduplicatesAndSorts(t *testing.T) {
	rec := newTestRecord()
	rec.EligibilityResults = []EligibilityResult{
		{PolicyCitation: "Manual B"},
		{PolicyCitation: "Manual A"},
		{PolicyCitation: "Manual B"},
		{PolicyCitation: ""},
	}
	rec.RiskAssessment = &RiskAssessment{Citation: "Risk Policy 2.1"}

	got := rec.SortedCitations()
	want := []string{"Manual A", "Manual B", "Risk Policy 2.1"}
	if len(got) != len(want) {
		t.Fatalf("SortedCitations() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SortedCitations()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
