package casefile

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CaseRecord is the single mutable unit of work for one intake. It is owned
// exclusively by the workflow engine for the duration of a run; stages read
// and extend it, never replace it.
type CaseRecord struct {
	// Immutable after creation.
	CaseID    string    `json:"case_id"`
	CreatedAt time.Time `json:"created_at"`
	OfficerID string    `json:"officer_id"`

	Subject  SubjectInfo  `json:"subject"`
	Guardian GuardianInfo `json:"guardian"`
	Referral ReferralInfo `json:"referral"`

	// Phase is the current workflow stage.
	Phase Phase `json:"phase"`

	// CoveredTopics and UncoveredTopics are disjoint; their union is always
	// the full topic registry key set.
	CoveredTopics   []string `json:"covered_topics"`
	UncoveredTopics []string `json:"uncovered_topics"`

	// Responses is the append-only interview transcript.
	Responses []QuestionAnswer `json:"responses"`

	// PolicyDocuments holds documents supplied by the retrieval collaborator.
	PolicyDocuments []PolicyDocument `json:"policy_documents,omitempty"`

	RiskAssessment     *RiskAssessment     `json:"risk_assessment,omitempty"`
	EligibilityResults []EligibilityResult `json:"eligibility_results,omitempty"`

	// SummaryText and Recommendations are derived and regenerable at any
	// time from the fields above.
	SummaryText     string   `json:"summary_text,omitempty"`
	Recommendations []string `json:"recommendations,omitempty"`

	Review ReviewOutcome `json:"review"`

	// AuditLog is append-only and never truncated or reordered.
	AuditLog []AuditEntry `json:"audit_log"`

	// ErrorText annotates non-fatal stage failures. The pipeline continues
	// past any error recorded here.
	ErrorText string `json:"error_text,omitempty"`
}

// New creates a case record at the start of intake. topics is the full topic
// registry key set; every topic starts uncovered.
func New(officerID string, subject SubjectInfo, guardian GuardianInfo, referral ReferralInfo, topics []string) *CaseRecord {
	uncovered := make([]string, len(topics))
	copy(uncovered, topics)

	return &CaseRecord{
		CaseID:          NewCaseID(),
		CreatedAt:       time.Now(),
		OfficerID:       officerID,
		Subject:         subject,
		Guardian:        guardian,
		Referral:        referral,
		Phase:           PhaseIntake,
		CoveredTopics:   []string{},
		UncoveredTopics: uncovered,
		Responses:       []QuestionAnswer{},
		AuditLog:        []AuditEntry{},
	}
}

// NewCaseID generates a short uppercase case identifier.
func NewCaseID() string {
	return strings.ToUpper(uuid.NewString()[:8])
}

// AppendAudit appends a message to the audit log.
func (r *CaseRecord) AppendAudit(role, content string) {
	r.AuditLog = append(r.AuditLog, AuditEntry{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
}

// AppendSystem appends a system message to the audit log.
func (r *CaseRecord) AppendSystem(format string, args ...any) {
	r.AppendAudit("system", fmt.Sprintf(format, args...))
}

// RecordWarning records a non-fatal error annotation and an audit entry.
// Multiple warnings accumulate separated by "; ".
func (r *CaseRecord) RecordWarning(msg string) {
	if r.ErrorText == "" {
		r.ErrorText = msg
	} else {
		r.ErrorText += "; " + msg
	}
	r.AppendSystem("Warning: %s", msg)
}

// CoverTopic moves topic from the uncovered set to the covered set. The move
// is atomic with respect to the coverage invariant: a topic is never in both
// or neither set. Covering an already-covered topic is a no-op.
func (r *CaseRecord) CoverTopic(topic string) {
	idx := -1
	for i, t := range r.UncoveredTopics {
		if t == topic {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	r.UncoveredTopics = append(r.UncoveredTopics[:idx], r.UncoveredTopics[idx+1:]...)
	r.CoveredTopics = append(r.CoveredTopics, topic)
}

// ReopenTopic moves a covered topic back to the uncovered set so it can be
// re-asked by officer request. This is distinct from normal coverage
// tracking and is only used when a reviewer requests more questioning after
// full coverage. Reopening an uncovered or unknown topic is a no-op.
func (r *CaseRecord) ReopenTopic(topic string) bool {
	idx := -1
	for i, t := range r.CoveredTopics {
		if t == topic {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	r.CoveredTopics = append(r.CoveredTopics[:idx], r.CoveredTopics[idx+1:]...)
	r.UncoveredTopics = append(r.UncoveredTopics, topic)
	return true
}

// IsCovered reports whether topic is in the covered set.
func (r *CaseRecord) IsCovered(topic string) bool {
	for _, t := range r.CoveredTopics {
		if t == topic {
			return true
		}
	}
	return false
}

// ResponsesForTopic returns the recorded responses for one topic, in
// transcript order.
func (r *CaseRecord) ResponsesForTopic(topic string) []QuestionAnswer {
	var out []QuestionAnswer
	for _, qa := range r.Responses {
		if qa.Topic == topic {
			out = append(out, qa)
		}
	}
	return out
}

// CheckInvariants verifies the coverage-set invariant against the given
// registry key set. It returns nil when the covered and uncovered sets are
// disjoint and their union equals the registry key set.
func (r *CaseRecord) CheckInvariants(registryTopics []string) error {
	seen := make(map[string]int, len(registryTopics))
	for _, t := range r.CoveredTopics {
		seen[t]++
	}
	for _, t := range r.UncoveredTopics {
		seen[t]++
	}
	for t, n := range seen {
		if n > 1 {
			return fmt.Errorf("topic %q appears in both coverage sets", t)
		}
	}
	if len(seen) != len(registryTopics) {
		return fmt.Errorf("coverage sets hold %d topics, registry has %d", len(seen), len(registryTopics))
	}
	for _, t := range registryTopics {
		if seen[t] == 0 {
			return fmt.Errorf("registry topic %q missing from coverage sets", t)
		}
	}
	return nil
}

// BuildAuditRecord projects the case into an audit record. It is a pure
// function of the record and has no side effects.
func (r *CaseRecord) BuildAuditRecord() AuditRecord {
	rec := AuditRecord{
		CaseID:             r.CaseID,
		Officer:            r.OfficerID,
		CreatedAt:          r.CreatedAt,
		SubjectName:        r.Subject.Name,
		ReferralReason:     r.Referral.Reason,
		Recommendations:    append([]string(nil), r.Recommendations...),
		Approved:           r.Review.Approved,
		Notes:              r.Review.Notes,
		Edits:              r.Review.Edits,
		TopicsCoveredCount: len(r.CoveredTopics),
		QuestionsAsked:     len(r.Responses),
	}
	if r.RiskAssessment != nil {
		rec.RiskLevel = r.RiskAssessment.Level
		rec.RiskScore = r.RiskAssessment.Score
	}
	for _, er := range r.EligibilityResults {
		rec.Eligibility = append(rec.Eligibility, AuditEligibilityItem{
			Program:  er.ProgramName,
			Status:   er.Status,
			Citation: er.PolicyCitation,
		})
	}
	return rec
}

// ValidateSubject checks that required subject fields are present and the
// date of birth is well formed. It returns a warning list; an empty list
// means the subject information is complete.
func ValidateSubject(s SubjectInfo) []string {
	var warnings []string
	if s.Name == "" {
		warnings = append(warnings, "missing required field: name")
	}
	if s.DateOfBirth == "" {
		warnings = append(warnings, "missing required field: date_of_birth")
	} else if _, err := time.Parse("2006-01-02", s.DateOfBirth); err != nil {
		warnings = append(warnings, fmt.Sprintf("malformed date_of_birth %q (want YYYY-MM-DD)", s.DateOfBirth))
	}
	return warnings
}

// AgeAt derives an age in whole years from a YYYY-MM-DD date of birth.
// It returns false when the date cannot be parsed or lies in the future.
func AgeAt(dateOfBirth string, now time.Time) (int, bool) {
	dob, err := time.Parse("2006-01-02", dateOfBirth)
	if err != nil {
		return 0, false
	}
	if dob.After(now) {
		return 0, false
	}
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age, true
}

// SortedCitations gathers every eligibility citation plus the risk
// assessment citation, deduplicated and sorted alphabetically.
func (r *CaseRecord) SortedCitations() []string {
	set := make(map[string]struct{})
	for _, er := range r.EligibilityResults {
		if er.PolicyCitation != "" {
			set[er.PolicyCitation] = struct{}{}
		}
	}
	if r.RiskAssessment != nil && r.RiskAssessment.Citation != "" {
		set[r.RiskAssessment.Citation] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
