package synthesis

import (
	"fmt"

	"casefold-hq/triage/pkg/casefile"
)

// maxProgramReferrals caps the number of eligible-program referrals.
const maxProgramReferrals = 3

// domainReferrals maps a risk domain with a high-severity factor to its
// service referral line. Domains without an entry are silently skipped.
var domainReferrals = []struct {
	Domain string
	Line   string
}{
	{"substance_abuse", "Substance abuse assessment and treatment referral"},
	{"family_circumstances", "Family therapy or parenting support services"},
	{"education_employment", "Educational support and tutoring services"},
	{"peer_relations", "Mentoring program to develop prosocial connections"},
}

// Recommend builds the recommendation list with fixed precedence:
// eligible-program referrals first (up to three, citing each program),
// then exactly one risk-level-banded block, then one service referral per
// distinct domain carrying a high-severity risk factor.
func Recommend(rec *casefile.CaseRecord) []string {
	var out []string

	count := 0
	for _, er := range rec.EligibilityResults {
		if er.Status != casefile.StatusEligible {
			continue
		}
		out = append(out, fmt.Sprintf("Refer to %s (per %s)", er.ProgramName, er.PolicyCitation))
		count++
		if count == maxProgramReferrals {
			break
		}
	}

	level := casefile.RiskLevel("")
	if rec.RiskAssessment != nil {
		level = rec.RiskAssessment.Level
	}
	switch level {
	case casefile.RiskVeryHigh:
		out = append(out,
			"Schedule immediate case conference due to elevated risk level",
			"Consider intensive supervision or secure placement evaluation",
		)
	case casefile.RiskHigh:
		out = append(out,
			"Prioritize services addressing highest-risk domains",
			"Weekly check-ins recommended during initial supervision period",
		)
	case casefile.RiskModerate:
		out = append(out, "Standard probation supervision with targeted services")
	default:
		out = append(out,
			"Consider diversion options if eligible",
			"Minimal intervention approach recommended",
		)
	}

	highDomains := make(map[string]bool)
	if rec.RiskAssessment != nil {
		for _, f := range rec.RiskAssessment.RiskFactors {
			if f.Severity == casefile.SeverityHigh {
				highDomains[f.Domain] = true
			}
		}
	}
	for _, ref := range domainReferrals {
		if highDomains[ref.Domain] {
			out = append(out, ref.Line)
		}
	}

	return out
}
