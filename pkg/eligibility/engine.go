package eligibility

import (
	"fmt"
	"log/slog"
	"strings"

	"casefold-hq/triage/pkg/casefile"
	"casefold-hq/triage/pkg/catalog"
)

// Fixed confidences for the three-way status tie-break.
const (
	ConfidenceEligible    = 0.95
	ConfidenceConditional = 0.75
	ConfidenceIneligible  = 0.90
)

// Engine evaluates the program catalog against case facts.
type Engine struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// New creates an eligibility engine over the given catalog.
func New(cat *catalog.Catalog, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		catalog: cat,
		logger:  logger.With("component", "eligibility"),
	}
}

// Evaluate computes one determination per catalog program, in catalog
// order. It never returns a partial result set.
func (e *Engine) Evaluate(rec *casefile.CaseRecord) []casefile.EligibilityResult {
	results := make([]casefile.EligibilityResult, 0, len(e.catalog.Programs()))
	for _, p := range e.catalog.Programs() {
		results = append(results, e.evaluateProgram(p, rec))
	}

	eligible := 0
	for _, r := range results {
		if r.Status == casefile.StatusEligible {
			eligible++
		}
	}
	e.logger.Debug("eligibility evaluation complete",
		"case_id", rec.CaseID,
		"programs", len(results),
		"eligible", eligible,
	)
	return results
}

// EvaluateProgram computes the determination for a single program key.
// An unknown key is a lookup miss: Ineligible with a "Program not found"
// barrier and zero confidence, never an error.
func (e *Engine) EvaluateProgram(key string, rec *casefile.CaseRecord) casefile.EligibilityResult {
	p, ok := e.catalog.Program(key)
	if !ok {
		return casefile.EligibilityResult{
			ProgramKey:      key,
			ProgramName:     "Unknown",
			Status:          casefile.StatusIneligible,
			CriteriaMatched: []casefile.CriterionCheck{},
			Barriers:        []string{"Program not found"},
			PolicyCitation:  "N/A",
			Confidence:      0,
		}
	}
	return e.evaluateProgram(p, rec)
}

func (e *Engine) evaluateProgram(p catalog.Program, rec *casefile.CaseRecord) casefile.EligibilityResult {
	crit := p.Criteria
	var checks []casefile.CriterionCheck
	var barriers []string

	// Age range.
	age := 0
	if rec.Subject.AgeKnown {
		age = rec.Subject.Age
	}
	ageCheck := casefile.CriterionCheck{
		Criterion:    fmt.Sprintf("Age %d-%d", crit.AgeMin, crit.AgeMax),
		SubjectValue: fmt.Sprintf("%d", age),
		Matched:      crit.AgeMin <= age && age <= crit.AgeMax,
	}
	checks = append(checks, ageCheck)
	if !ageCheck.Matched {
		barriers = append(barriers, fmt.Sprintf("Age %d outside eligible range (%d-%d)", age, crit.AgeMin, crit.AgeMax))
	}

	// Offense exclusion. An excluded-offense substring in the referral
	// reason excludes the program outright. The allowed-offense list is
	// advisory only: a non-matching allowed list records a match and never
	// produces a barrier.
	offense := strings.ToLower(rec.Referral.Reason)
	excluded := ""
	for _, tag := range crit.ExcludedOffenses {
		if strings.Contains(offense, strings.ToLower(tag)) {
			excluded = tag
			break
		}
	}
	if excluded != "" {
		checks = append(checks, casefile.CriterionCheck{
			Criterion:    "Non-excluded offense",
			SubjectValue: offense,
			Matched:      false,
		})
		barriers = append(barriers, fmt.Sprintf("Offense type %q is excluded from this program", offense))
	} else if len(crit.OffenseTypes) > 0 {
		checks = append(checks, casefile.CriterionCheck{
			Criterion:    fmt.Sprintf("Offense type in [%s]", strings.Join(crit.OffenseTypes, ", ")),
			SubjectValue: offense,
			Matched:      true,
		})
	}

	// Indicator requirements.
	if crit.RequiresSubstanceIndicator {
		present := e.hasIndicator(rec, "substance_use")
		checks = append(checks, casefile.CriterionCheck{
			Criterion:    "Substance use indicator present",
			SubjectValue: yesNo(present),
			Matched:      present,
		})
		if !present {
			barriers = append(barriers, "No substance use indicator identified")
		}
	}
	if crit.RequiresMentalHealthIndctor {
		present := e.hasIndicator(rec, "mental_health")
		checks = append(checks, casefile.CriterionCheck{
			Criterion:    "Mental health indicator present",
			SubjectValue: yesNo(present),
			Matched:      present,
		})
		if !present {
			barriers = append(barriers, "No mental health indicator identified")
		}
	}

	// Status tie-break on barrier count, not severity.
	allMatched := true
	for _, c := range checks {
		if !c.Matched {
			allMatched = false
			break
		}
	}

	var status casefile.EligibilityStatus
	var confidence float64
	switch {
	case allMatched:
		status = casefile.StatusEligible
		confidence = ConfidenceEligible
	case len(barriers) == 1:
		status = casefile.StatusConditional
		confidence = ConfidenceConditional
	default:
		status = casefile.StatusIneligible
		confidence = ConfidenceIneligible
	}

	return casefile.EligibilityResult{
		ProgramKey:      p.Key,
		ProgramName:     p.Name,
		Status:          status,
		CriteriaMatched: checks,
		Barriers:        barriers,
		PolicyCitation:  p.Citation,
		Confidence:      confidence,
	}
}

// hasIndicator reports whether any recorded response under the indicator
// topic contains one of its fixed keywords (case-insensitive substring
// match over the whole answer text).
func (e *Engine) hasIndicator(rec *casefile.CaseRecord, topic string) bool {
	keywords := e.catalog.IndicatorKeywords(topic)
	for _, qa := range rec.Responses {
		if qa.Topic != topic {
			continue
		}
		answer := strings.ToLower(qa.Answer)
		for _, kw := range keywords {
			if strings.Contains(answer, kw) {
				return true
			}
		}
	}
	return false
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
