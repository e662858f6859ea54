package risk

import (
	"log/slog"
	"strings"

	"casefold-hq/triage/pkg/casefile"
	"casefold-hq/triage/pkg/catalog"
)

// Level bucket lower bounds, inclusive.
const (
	VeryHighThreshold = 70
	HighThreshold     = 50
	ModerateThreshold = 30
)

// evidenceLimit truncates stored answer evidence.
const evidenceLimit = 200

// Engine scores interview responses against the risk domain catalog.
type Engine struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// New creates a risk scoring engine over the given catalog.
func New(cat *catalog.Catalog, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		catalog: cat,
		logger:  logger.With("component", "risk"),
	}
}

// Assess runs the full assessment: factor extraction, protective factor
// extraction, scoring, and level bucketing.
func (e *Engine) Assess(rec *casefile.CaseRecord) *casefile.RiskAssessment {
	factors := e.ExtractRiskFactors(rec)
	protective := e.ExtractProtectiveFactors(rec)
	score, level := e.Score(factors)

	domains := make([]string, 0, len(e.catalog.Domains()))
	for _, d := range e.catalog.Domains() {
		domains = append(domains, d.Key)
	}

	e.logger.Debug("risk assessment complete",
		"case_id", rec.CaseID,
		"score", score,
		"level", level,
		"risk_factors", len(factors),
		"protective_factors", len(protective),
	)

	return &casefile.RiskAssessment{
		Score:             score,
		Level:             level,
		RiskFactors:       factors,
		ProtectiveFactors: protective,
		DomainsAssessed:   domains,
		AssessmentTool:    catalog.RiskAssessmentTool,
		Citation:          catalog.RiskAssessmentCitation,
	}
}

// ExtractRiskFactors maps each response to its risk domain and scans the
// severity tiers in strict order high → moderate → low. The first keyword
// match wins: at most one risk factor per response.
func (e *Engine) ExtractRiskFactors(rec *casefile.CaseRecord) []casefile.RiskFactor {
	var factors []casefile.RiskFactor

	for _, qa := range rec.Responses {
		domain, ok := e.catalog.DomainForTopic(qa.Topic)
		if !ok {
			continue
		}

		answer := strings.ToLower(qa.Answer)
		evidence := answer
		if len(evidence) > evidenceLimit {
			evidence = evidence[:evidenceLimit]
		}

	scan:
		for _, sev := range catalog.SeverityScanOrder {
			for _, indicator := range domain.Indicators(sev) {
				if strings.Contains(answer, indicator) {
					factors = append(factors, casefile.RiskFactor{
						Domain:   domain.Key,
						Factor:   indicator,
						Evidence: evidence,
						Source:   "Intake interview - " + qa.Topic,
						Severity: sev,
					})
					break scan
				}
			}
		}
	}
	return factors
}

// ExtractProtectiveFactors scans every response against the protective
// factor table. A response may contribute to multiple factor types, but at
// most one indicator per type per response.
func (e *Engine) ExtractProtectiveFactors(rec *casefile.CaseRecord) []casefile.ProtectiveFactor {
	var protective []casefile.ProtectiveFactor

	for _, qa := range rec.Responses {
		answer := strings.ToLower(qa.Answer)
		evidence := answer
		if len(evidence) > evidenceLimit {
			evidence = evidence[:evidenceLimit]
		}

		for _, def := range e.catalog.ProtectiveFactors() {
			for _, indicator := range def.Indicators {
				if strings.Contains(answer, indicator) {
					protective = append(protective, casefile.ProtectiveFactor{
						Type:     def.Type,
						Factor:   indicator,
						Evidence: evidence,
						Source:   "Intake interview - " + qa.Topic,
					})
					break
				}
			}
		}
	}
	return protective
}

// Score computes the normalized score for a factor set and buckets it into
// a level. The normalized score is always within [0, 100].
func (e *Engine) Score(factors []casefile.RiskFactor) (float64, casefile.RiskLevel) {
	maxPossible := e.catalog.MaxPossibleRiskScore()
	if maxPossible == 0 {
		return 0, casefile.RiskLow
	}

	var total float64
	for _, f := range factors {
		domain, ok := e.catalog.Domain(f.Domain)
		weight := 1.0
		if ok {
			weight = domain.Weight
		}
		total += weight * f.Severity.Score()
	}

	normalized := total / maxPossible * 100
	if normalized > 100 {
		normalized = 100
	}
	return normalized, BucketLevel(normalized)
}

// BucketLevel maps a normalized score onto a risk level. Bucket boundaries
// are inclusive on the lower bound.
func BucketLevel(score float64) casefile.RiskLevel {
	switch {
	case score >= VeryHighThreshold:
		return casefile.RiskVeryHigh
	case score >= HighThreshold:
		return casefile.RiskHigh
	case score >= ModerateThreshold:
		return casefile.RiskModerate
	default:
		return casefile.RiskLow
	}
}
