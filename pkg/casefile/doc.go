// Package casefile defines the case record and its supporting types.
//
// # Overview
//
// A CaseRecord is the single evolving unit of work for one intake. It is
// created once at intake start, handed to each workflow stage by reference,
// and extended (never replaced) as the stages run. The record carries:
//   - Immutable case identity (ID, creation time, officer)
//   - Subject, guardian, and referral information captured at intake
//   - Topic coverage tracking and the append-only interview transcript
//   - Retrieved policy documents, eligibility results, and the risk assessment
//   - The generated summary, recommendations, and review outcome
//   - An append-only audit log of system and assistant messages
//
// # Invariants
//
// CoveredTopics and UncoveredTopics are disjoint and their union always
// equals the full topic registry key set. Responses and the audit log are
// append-only and never reordered. EligibilityResults is either absent or
// complete in catalog order. CheckInvariants verifies these properties and
// is exercised by the workflow engine around every stage.
package casefile
