// Package eligibility determines program eligibility by matching case
// facts against the immutable program catalog.
//
// For every program, each configured criterion is evaluated independently
// and recorded with a matched flag; unmatched criteria additionally record
// a barrier string. The overall status is a pure function of the recorded
// criteria: Eligible when every criterion matched (confidence 0.95),
// Conditional when exactly one barrier was recorded (confidence 0.75),
// Ineligible otherwise (confidence 0.90). The tie-break counts barriers,
// never weighs their severity.
//
// Evaluation is deterministic and idempotent: re-running the engine on
// unchanged inputs yields identical results.
package eligibility
