package synthesis

import (
	"strings"
	"testing"
	"time"

	"casefold-hq/triage/pkg/casefile"
	"casefold-hq/triage/pkg/catalog"
)

func newTestRecord(t *testing.T) *casefile.CaseRecord {
	t.Helper()
	cat := catalog.Default()
	return casefile.New("officer-1",
		casefile.SubjectInfo{Name: "John Doe", DateOfBirth: "2009-05-15"},
		casefile.GuardianInfo{Name: "Jane Doe", Relationship: "Mother"},
		casefile.ReferralInfo{Source: "School Resource Officer", Reason: "Theft - Shoplifting"},
		cat.RequiredTopics(),
	)
}

func TestRecommend_Precedence(t *testing.T) {
	rec := newTestRecord(t)
	rec.EligibilityResults = []casefile.EligibilityResult{
		{ProgramName: "Youth Diversion Program", PolicyCitation: "County Diversion Policy Manual, Section 3.2", Status: casefile.StatusEligible},
		{ProgramName: "Community Service Program", PolicyCitation: "Community Service Guidelines, Section 2.1", Status: casefile.StatusConditional},
		{ProgramName: "Mental Health Services", PolicyCitation: "Mental Health Services Policy, Section 4.2", Status: casefile.StatusEligible},
	}
	rec.RiskAssessment = &casefile.RiskAssessment{
		Level: casefile.RiskModerate,
		RiskFactors: []casefile.RiskFactor{
			{Domain: "substance_abuse", Severity: casefile.SeverityHigh},
			{Domain: "education_employment", Severity: casefile.SeverityModerate},
		},
	}

	got := Recommend(rec)
	want := []string{
		"Refer to Youth Diversion Program (per County Diversion Policy Manual, Section 3.2)",
		"Refer to Mental Health Services (per Mental Health Services Policy, Section 4.2)",
		"Standard probation supervision with targeted services",
		"Substance abuse assessment and treatment referral",
	}
	if len(got) != len(want) {
		t.Fatalf("Recommend() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Recommend()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRecommend_CapsProgramReferrals(t *testing.T) {
	rec := newTestRecord(t)
	for _, name := range []string{"A", "B", "C", "D"} {
		rec.EligibilityResults = append(rec.EligibilityResults, casefile.EligibilityResult{
			ProgramName:    name,
			PolicyCitation: "Policy " + name,
			Status:         casefile.StatusEligible,
		})
	}

	got := Recommend(rec)
	referrals := 0
	for _, line := range got {
		if strings.HasPrefix(line, "Refer to ") {
			referrals++
		}
	}
	if referrals != 3 {
		t.Errorf("program referrals = %d, want 3", referrals)
	}
	if strings.Contains(strings.Join(got, "\n"), "Refer to D") {
		t.Error("fourth eligible program referred, want capped at three")
	}
}

func TestRecommend_RiskBands(t *testing.T) {
	tests := []struct {
		level casefile.RiskLevel
		want  string
	}{
		{casefile.RiskVeryHigh, "Schedule immediate case conference due to elevated risk level"},
		{casefile.RiskHigh, "Prioritize services addressing highest-risk domains"},
		{casefile.RiskModerate, "Standard probation supervision with targeted services"},
		{casefile.RiskLow, "Consider diversion options if eligible"},
	}
	for _, tt := range tests {
		rec := newTestRecord(t)
		rec.RiskAssessment = &casefile.RiskAssessment{Level: tt.level}
		got := strings.Join(Recommend(rec), "\n")
		if !strings.Contains(got, tt.want) {
			t.Errorf("Recommend() for level %q missing %q", tt.level, tt.want)
		}
	}
}

func TestRecommend_NilAssessmentDefaultsToLowBand(t *testing.T) {
	rec := newTestRecord(t)
	got := Recommend(rec)
	if len(got) != 2 {
		t.Fatalf("Recommend() = %v, want the two low-band lines", got)
	}
	if got[0] != "Consider diversion options if eligible" || got[1] != "Minimal intervention approach recommended" {
		t.Errorf("Recommend() = %v", got)
	}
}

func TestRecommend_DomainReferralOrderAndDedup(t *testing.T) {
	rec := newTestRecord(t)
	rec.RiskAssessment = &casefile.RiskAssessment{
		Level: casefile.RiskHigh,
		RiskFactors: []casefile.RiskFactor{
			// Reversed relative to output order, with a duplicate domain and
			// a domain with no referral line.
			{Domain: "family_circumstances", Severity: casefile.SeverityHigh},
			{Domain: "substance_abuse", Severity: casefile.SeverityHigh},
			{Domain: "substance_abuse", Severity: casefile.SeverityHigh},
			{Domain: "prior_offenses", Severity: casefile.SeverityHigh},
		},
	}

	got := Recommend(rec)
	var tail []string
	for _, line := range got {
		switch line {
		case "Substance abuse assessment and treatment referral",
			"Family therapy or parenting support services":
			tail = append(tail, line)
		}
	}
	if len(tail) != 2 {
		t.Fatalf("service referrals = %v, want exactly one per domain", tail)
	}
	if tail[0] != "Substance abuse assessment and treatment referral" {
		t.Errorf("referral order = %v, want substance_abuse before family_circumstances", tail)
	}
}

func TestSummarize_SectionsInOrder(t *testing.T) {
	rec := newTestRecord(t)
	rec.Subject.Age = 15
	rec.Subject.AgeKnown = true
	rec.Responses = append(rec.Responses, casefile.QuestionAnswer{
		Topic: "current_offense", Question: "q", Answer: "Took headphones from a store.", Timestamp: time.Now(),
	})
	rec.RiskAssessment = &casefile.RiskAssessment{
		Level:          casefile.RiskLow,
		Score:          8.7,
		AssessmentTool: catalog.RiskAssessmentTool,
		Citation:       catalog.RiskAssessmentCitation,
	}
	rec.EligibilityResults = []casefile.EligibilityResult{
		{ProgramName: "Youth Diversion Program", PolicyCitation: "County Diversion Policy Manual, Section 3.2", Status: casefile.StatusEligible},
	}
	rec.Recommendations = []string{"Consider diversion options if eligible"}

	got := Summarize(catalog.Default(), rec, time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC))

	sections := []string{
		"JUVENILE JUSTICE INTAKE CASE SUMMARY",
		"1. IDENTIFYING INFORMATION",
		"2. REFERRAL REASON AND PRESENTING ISSUE",
		"3. BACKGROUND AND HISTORY",
		"4. RISK AND NEEDS ASSESSMENT",
		"5. ELIGIBILITY FOR PROGRAMS/SERVICES",
		"6. RECOMMENDED NEXT STEPS",
		"7. CITATIONS AND REFERENCES",
		"END OF CASE SUMMARY",
	}
	last := -1
	for _, s := range sections {
		idx := strings.Index(got, s)
		if idx < 0 {
			t.Fatalf("summary missing section %q", s)
		}
		if idx < last {
			t.Errorf("section %q out of order", s)
		}
		last = idx
	}

	for _, want := range []string{
		"Case ID: " + rec.CaseID,
		"Date: 2026-08-30 10:00",
		"Youth Name: John Doe",
		"Age: 15",
		"Offense Details: Took headphones from a store.",
		"OVERALL RISK LEVEL: LOW",
		"Risk Score: 8.7/100",
		"[ELIGIBLE] Youth Diversion Program",
		"  1. Consider diversion options if eligible",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q", want)
		}
	}
	if strings.Contains(got, "Amended by officer:") {
		t.Error("unedited summary carries an amendment note")
	}
}

func TestSummarize_OfficerEdits(t *testing.T) {
	rec := newTestRecord(t)
	rec.Review = casefile.ReviewOutcome{
		Approved: true,
		Edits: map[string]string{
			"name":            "Jonathan Doe",
			"referral_reason": "Theft - Shoplifting (amended)",
		},
	}

	got := Summarize(catalog.Default(), rec, time.Now())
	if !strings.Contains(got, "Amended by officer: name, referral_reason") {
		t.Error("amendment note missing or keys unsorted")
	}
	if !strings.Contains(got, "Youth Name: Jonathan Doe") {
		t.Error("name edit not applied")
	}
	if !strings.Contains(got, "Current Offense: Theft - Shoplifting (amended)") {
		t.Error("referral reason edit not applied")
	}
	if strings.Contains(got, "Youth Name: John Doe") {
		t.Error("original name still displayed after edit")
	}
}

func TestSummarize_MissingDataMarkers(t *testing.T) {
	rec := newTestRecord(t)
	got := Summarize(catalog.Default(), rec, time.Now())
	if !strings.Contains(got, "Age: N/A") {
		t.Error("unknown age not rendered as N/A")
	}
	if !strings.Contains(got, "Gender: N/A") {
		t.Error("missing gender not rendered as N/A")
	}
	if !strings.Contains(got, "Risk assessment not available.") {
		t.Error("nil assessment not noted")
	}
}

func TestSummarize_CitationsDeduplicatedSorted(t *testing.T) {
	rec := newTestRecord(t)
	rec.EligibilityResults = []casefile.EligibilityResult{
		{ProgramName: "A", PolicyCitation: "Zeta Policy, Section 9", Status: casefile.StatusEligible},
		{ProgramName: "B", PolicyCitation: "Alpha Policy, Section 1", Status: casefile.StatusEligible},
		{ProgramName: "C", PolicyCitation: "Alpha Policy, Section 1", Status: casefile.StatusIneligible},
	}

	got := Summarize(catalog.Default(), rec, time.Now())
	alpha := strings.Index(got, "  - Alpha Policy, Section 1")
	zeta := strings.Index(got, "  - Zeta Policy, Section 9")
	if alpha < 0 || zeta < 0 {
		t.Fatal("citations missing from summary")
	}
	if alpha > zeta {
		t.Error("citations not sorted")
	}
	if strings.Count(got, "  - Alpha Policy, Section 1") != 1 {
		t.Error("duplicate citation not collapsed")
	}
}
