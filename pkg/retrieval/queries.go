package retrieval

import (
	"fmt"
	"strings"

	"casefold-hq/triage/pkg/casefile"
)

// QueryContext holds the key facts extracted from a case that drive
// retrieval query construction.
type QueryContext struct {
	Age      int
	AgeKnown bool
	Offense  string

	// RiskFactors and Needs are derived from interview responses and
	// preserve first-seen order without duplicates.
	RiskFactors []string
	Needs       []string
}

// Response-derived signals. Each entry maps an interview topic to the
// answer keywords that raise a risk factor, a service need, or both.
var querySignals = []struct {
	topic      string
	keywords   []string
	riskFactor string
	need       string
}{
	{
		topic:      "substance_use",
		keywords:   []string{"yes", "marijuana", "alcohol", "drugs"},
		riskFactor: "substance_use",
		need:       "substance_abuse_treatment",
	},
	{
		topic:    "mental_health",
		keywords: []string{"yes", "diagnosed", "treatment", "therapy"},
		need:     "mental_health_services",
	},
	{
		topic:      "education",
		keywords:   []string{"truant", "suspended", "expelled", "failing"},
		riskFactor: "education_issues",
		need:       "educational_support",
	},
	{
		topic:      "family_situation",
		keywords:   []string{"conflict", "divorce", "absent", "unstable"},
		riskFactor: "family_instability",
		need:       "family_counseling",
	},
}

// ExtractQueryContext pulls the facts relevant to policy retrieval out of
// a case record.
func ExtractQueryContext(rec *casefile.CaseRecord) QueryContext {
	ctx := QueryContext{
		Age:      rec.Subject.Age,
		AgeKnown: rec.Subject.AgeKnown,
		Offense:  rec.Referral.Reason,
	}

	for _, qa := range rec.Responses {
		answer := strings.ToLower(qa.Answer)
		for _, sig := range querySignals {
			if qa.Topic != sig.topic {
				continue
			}
			if !containsAny(answer, sig.keywords) {
				continue
			}
			if sig.riskFactor != "" {
				ctx.RiskFactors = appendUnique(ctx.RiskFactors, sig.riskFactor)
			}
			if sig.need != "" {
				ctx.Needs = appendUnique(ctx.Needs, sig.need)
			}
		}
	}

	return ctx
}

// BuildQueries turns a query context into retrieval queries. It always
// returns at least one query.
func BuildQueries(ctx QueryContext) []string {
	var queries []string

	if ctx.AgeKnown && ctx.Offense != "" {
		queries = append(queries, fmt.Sprintf(
			"Eligibility requirements for %d year old charged with %s",
			ctx.Age, ctx.Offense))
	}

	for _, factor := range ctx.RiskFactors {
		queries = append(queries, fmt.Sprintf(
			"Risk assessment criteria for youth with %s", despace(factor)))
	}

	for _, need := range ctx.Needs {
		queries = append(queries, fmt.Sprintf(
			"Program eligibility for %s", despace(need)))
	}

	if len(queries) == 0 {
		queries = append(queries, "Juvenile diversion program eligibility criteria")
	}

	return queries
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

func despace(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}
