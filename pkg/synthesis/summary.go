package synthesis

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"casefold-hq/triage/pkg/casefile"
	"casefold-hq/triage/pkg/catalog"
)

const (
	heavyRule = "============================================================"
	lightRule = "----------------------------------------"
)

// Summarize renders the formatted case summary. Officer edits, when
// present on the record's review outcome, override the corresponding
// display fields without re-running the engines; the amended keys are
// noted in the header.
func Summarize(cat *catalog.Catalog, rec *casefile.CaseRecord, now time.Time) string {
	edits := rec.Review.Edits
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	// Header.
	line(heavyRule)
	line("JUVENILE JUSTICE INTAKE CASE SUMMARY")
	line(heavyRule)
	line("")
	line("Case ID: %s", rec.CaseID)
	line("Date: %s", now.Format("2006-01-02 15:04"))
	line("Intake Officer: %s", orNA(rec.OfficerID))
	if len(edits) > 0 {
		line("Amended by officer: %s", strings.Join(sortedKeys(edits), ", "))
	}
	line("")

	// Section 1: identifying information.
	age := "N/A"
	if rec.Subject.AgeKnown {
		age = fmt.Sprintf("%d", rec.Subject.Age)
	}
	line(lightRule)
	line("1. IDENTIFYING INFORMATION")
	line(lightRule)
	line("Youth Name: %s", editOr(edits, "name", rec.Subject.Name))
	line("Date of Birth: %s", editOr(edits, "date_of_birth", rec.Subject.DateOfBirth))
	line("Age: %s", age)
	line("Gender: %s", editOr(edits, "gender", rec.Subject.Gender))
	line("Race/Ethnicity: %s", editOr(edits, "race", rec.Subject.Race))
	line("")
	line("Guardian: %s", editOr(edits, "guardian_name", rec.Guardian.Name))
	line("Relationship: %s", editOr(edits, "guardian_relationship", rec.Guardian.Relationship))
	line("Contact: %s", editOr(edits, "guardian_phone", rec.Guardian.Phone))
	line("")

	// Section 2: referral.
	line(lightRule)
	line("2. REFERRAL REASON AND PRESENTING ISSUE")
	line(lightRule)
	line("Referral Source: %s", editOr(edits, "referral_source", rec.Referral.Source))
	line("Referral Date: %s", editOr(edits, "referral_date", rec.Referral.Date))
	line("Current Offense: %s", editOr(edits, "referral_reason", rec.Referral.Reason))
	line("")
	for _, qa := range rec.Responses {
		if qa.Topic == "current_offense" {
			line("Offense Details: %s", qa.Answer)
			line("")
			break
		}
	}

	// Section 3: background, grouped by fixed topic display order.
	line(lightRule)
	line("3. BACKGROUND AND HISTORY")
	line(lightRule)
	for _, entry := range cat.SummaryTopicOrder() {
		responses := rec.ResponsesForTopic(entry.Key)
		if len(responses) == 0 {
			continue
		}
		line("")
		line("%s:", entry.Label)
		for _, qa := range responses {
			line("  %s", qa.Answer)
		}
	}
	line("")

	// Section 4: risk assessment.
	line(lightRule)
	line("4. RISK AND NEEDS ASSESSMENT")
	line(lightRule)
	if ra := rec.RiskAssessment; ra != nil {
		line("Assessment Tool: %s", ra.AssessmentTool)
		line("(Citation: %s)", ra.Citation)
		line("")
		line("OVERALL RISK LEVEL: %s", strings.ToUpper(string(ra.Level)))
		line("Risk Score: %.1f/100", ra.Score)
		line("")
		line("Risk Factors Identified:")
		for _, f := range ra.RiskFactors {
			line("  - [%s] %s: %s", strings.ToUpper(string(f.Severity)), f.Domain, f.Factor)
		}
		line("")
		line("Protective Factors:")
		for _, f := range ra.ProtectiveFactors {
			line("  - %s: %s", f.Type, f.Factor)
		}
	} else {
		line("Risk assessment not available.")
	}
	line("")

	// Section 5: eligibility, in catalog order.
	line(lightRule)
	line("5. ELIGIBILITY FOR PROGRAMS/SERVICES")
	line(lightRule)
	for _, er := range rec.EligibilityResults {
		line("")
		line("%s %s", statusMarker(er.Status), er.ProgramName)
		line("   Citation: %s", er.PolicyCitation)
		if len(er.Barriers) > 0 {
			line("   Barriers:")
			for _, barrier := range er.Barriers {
				line("     - %s", barrier)
			}
		}
	}
	line("")

	// Section 6: recommendations.
	line(lightRule)
	line("6. RECOMMENDED NEXT STEPS")
	line(lightRule)
	for i, rcm := range rec.Recommendations {
		line("  %d. %s", i+1, rcm)
	}
	line("")

	// Section 7: citations, deduplicated and sorted.
	line(lightRule)
	line("7. CITATIONS AND REFERENCES")
	line(lightRule)
	for _, c := range rec.SortedCitations() {
		line("  - %s", c)
	}

	line("")
	line(heavyRule)
	line("END OF CASE SUMMARY")
	line(heavyRule)

	return b.String()
}

func statusMarker(s casefile.EligibilityStatus) string {
	switch s {
	case casefile.StatusEligible:
		return "[ELIGIBLE]"
	case casefile.StatusIneligible:
		return "[INELIGIBLE]"
	case casefile.StatusConditional:
		return "[CONDITIONAL]"
	}
	return "[?]"
}

func editOr(edits map[string]string, key, value string) string {
	if v, ok := edits[key]; ok {
		return v
	}
	return orNA(value)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
