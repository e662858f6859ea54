package casefile

import (
	"time"
)

// SubjectInfo holds identifying information for the youth subject of a case.
// All fields are optional at intake; missing Name or DateOfBirth is recorded
// as a validation warning, not rejected.
type SubjectInfo struct {
	// Name is the subject's full name.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// DateOfBirth is the subject's date of birth in YYYY-MM-DD format.
	DateOfBirth string `json:"date_of_birth,omitempty" yaml:"date_of_birth,omitempty"`

	// Age is derived once at intake from DateOfBirth and immutable after.
	// Zero with AgeKnown false means the age could not be derived.
	Age int `json:"age,omitempty" yaml:"age,omitempty"`

	// AgeKnown reports whether Age was successfully derived at intake.
	AgeKnown bool `json:"age_known,omitempty" yaml:"age_known,omitempty"`

	Gender string `json:"gender,omitempty" yaml:"gender,omitempty"`
	Race   string `json:"race,omitempty" yaml:"race,omitempty"`
}

// GuardianInfo holds contact information for the subject's guardian.
type GuardianInfo struct {
	Name         string `json:"name,omitempty" yaml:"name,omitempty"`
	Relationship string `json:"relationship,omitempty" yaml:"relationship,omitempty"`
	Phone        string `json:"phone,omitempty" yaml:"phone,omitempty"`
}

// ReferralInfo describes how and why the case was referred.
type ReferralInfo struct {
	// Source is the referring party (school, law enforcement, court).
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// Reason is the referral reason / current offense description.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`

	// Date is the referral date in YYYY-MM-DD format.
	Date string `json:"date,omitempty" yaml:"date,omitempty"`
}

// QuestionAnswer is one recorded interview exchange.
type QuestionAnswer struct {
	Topic     string    `json:"topic"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Timestamp time.Time `json:"timestamp"`
}

// PolicyDocument is a retrieved reference document. The core treats the
// content as opaque enrichment supplied by the retrieval collaborator.
type PolicyDocument struct {
	Content        string            `json:"content"`
	Source         string            `json:"source"`
	Section        string            `json:"section"`
	RelevanceScore float64           `json:"relevance_score"`
	Metadata       map[string]string `json:"metadata,omitempty"`
}

// CriterionCheck records one evaluated eligibility criterion.
type CriterionCheck struct {
	// Criterion is a human-readable description of the rule checked.
	Criterion string `json:"criterion"`

	// SubjectValue is the case fact the rule was checked against.
	SubjectValue string `json:"subject_value"`

	// Matched reports whether the criterion was satisfied.
	Matched bool `json:"matched"`
}

// EligibilityResult is the determination for a single program.
type EligibilityResult struct {
	ProgramKey      string            `json:"program_key"`
	ProgramName     string            `json:"program_name"`
	Status          EligibilityStatus `json:"status"`
	CriteriaMatched []CriterionCheck  `json:"criteria_matched"`
	Barriers        []string          `json:"barriers,omitempty"`
	PolicyCitation  string            `json:"policy_citation"`
	Confidence      float64           `json:"confidence"`
}

// RiskFactor is one identified risk indicator tied to a domain.
type RiskFactor struct {
	Domain   string   `json:"domain"`
	Factor   string   `json:"factor"`
	Evidence string   `json:"evidence"`
	Source   string   `json:"source"`
	Severity Severity `json:"severity"`
}

// ProtectiveFactor is one identified protective indicator.
type ProtectiveFactor struct {
	Type     string `json:"type"`
	Factor   string `json:"factor"`
	Evidence string `json:"evidence"`
	Source   string `json:"source"`
}

// RiskAssessment is the complete output of the risk scoring engine.
type RiskAssessment struct {
	// Score is the normalized risk score in [0, 100].
	Score float64 `json:"score"`

	// Level is the bucketed risk level derived from Score.
	Level RiskLevel `json:"level"`

	RiskFactors       []RiskFactor       `json:"risk_factors"`
	ProtectiveFactors []ProtectiveFactor `json:"protective_factors"`

	// DomainsAssessed lists every catalog domain, in catalog order.
	DomainsAssessed []string `json:"domains_assessed"`

	AssessmentTool string `json:"assessment_tool"`
	Citation       string `json:"citation"`
}

// ReviewOutcome captures the human reviewer's decision.
type ReviewOutcome struct {
	Approved             bool              `json:"approved"`
	Notes                string            `json:"notes,omitempty"`
	Edits                map[string]string `json:"edits,omitempty"`
	RequestMoreQuestions bool              `json:"request_more_questions"`
}

// AuditEntry is one append-only audit log message.
type AuditEntry struct {
	Role      string    `json:"role"` // "system" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// AuditRecord is a pure projection of a finished case for the audit trail.
// It introduces no new facts.
type AuditRecord struct {
	CaseID             string                 `json:"case_id"`
	Officer            string                 `json:"officer"`
	CreatedAt          time.Time              `json:"created_at"`
	SubjectName        string                 `json:"subject_name"`
	ReferralReason     string                 `json:"referral_reason"`
	RiskLevel          RiskLevel              `json:"risk_level,omitempty"`
	RiskScore          float64                `json:"risk_score"`
	Eligibility        []AuditEligibilityItem `json:"eligibility"`
	Recommendations    []string               `json:"recommendations"`
	Approved           bool                   `json:"approved"`
	Notes              string                 `json:"notes,omitempty"`
	Edits              map[string]string      `json:"edits,omitempty"`
	TopicsCoveredCount int                    `json:"topics_covered_count"`
	QuestionsAsked     int                    `json:"questions_asked"`
}

// AuditEligibilityItem is the audit projection of one eligibility result.
type AuditEligibilityItem struct {
	Program  string            `json:"program"`
	Status   EligibilityStatus `json:"status"`
	Citation string            `json:"citation"`
}
