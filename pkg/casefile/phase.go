package casefile

// Phase is the current workflow stage of a case record.
type Phase string

const (
	PhaseIntake          Phase = "intake"
	PhaseQuestioning     Phase = "questioning"
	PhasePolicyRetrieval Phase = "policy_retrieval"
	PhaseEligibility     Phase = "eligibility"
	PhaseRiskAssessment  Phase = "risk_assessment"
	PhaseSummary         Phase = "summary"
	PhaseReview          Phase = "review"
	PhaseComplete        Phase = "complete"
)

// IsValid reports whether p is a known phase.
func (p Phase) IsValid() bool {
	switch p {
	case PhaseIntake, PhaseQuestioning, PhasePolicyRetrieval, PhaseEligibility,
		PhaseRiskAssessment, PhaseSummary, PhaseReview, PhaseComplete:
		return true
	}
	return false
}

// IsTerminal reports whether p is the terminal phase.
func (p Phase) IsTerminal() bool {
	return p == PhaseComplete
}

// EligibilityStatus is the outcome of an eligibility determination.
type EligibilityStatus string

const (
	StatusEligible    EligibilityStatus = "eligible"
	StatusIneligible  EligibilityStatus = "ineligible"
	StatusConditional EligibilityStatus = "conditional"
)

// IsValid reports whether s is a known eligibility status.
func (s EligibilityStatus) IsValid() bool {
	switch s {
	case StatusEligible, StatusIneligible, StatusConditional:
		return true
	}
	return false
}

// RiskLevel is an overall or per-factor risk classification.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskVeryHigh RiskLevel = "very_high"
)

// IsValid reports whether l is a known risk level.
func (l RiskLevel) IsValid() bool {
	switch l {
	case RiskLow, RiskModerate, RiskHigh, RiskVeryHigh:
		return true
	}
	return false
}

// Severity is the severity tier of a single risk indicator.
type Severity string

const (
	SeverityHigh     Severity = "high"
	SeverityModerate Severity = "moderate"
	SeverityLow      Severity = "low"
)

// Score returns the numeric contribution of the severity tier.
func (s Severity) Score() float64 {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityModerate:
		return 2
	default:
		return 1
	}
}
