// Package workflow implements the intake triage workflow engine.
//
// The engine drives a case record through a fixed stage order: intake,
// questioning, policy retrieval, eligibility, risk assessment, summary,
// and review. Questioning is interactive: the engine surfaces one pending
// question at a time and the host records the answer before advancing.
// At review the engine checkpoints the case and suspends; a supervisor
// decision later resumes it, either completing the case or looping back
// into questioning.
//
// An engine run reports one of three statuses:
//
//   - Running: more stages (or a pending question) remain
//   - SuspendedAtReview: the case is checkpointed awaiting review
//   - Complete: the case is finished and audited
//
// Determinations degrade rather than abort: a failed retrieval or an
// incomplete subject profile is recorded on the case and the pipeline
// continues. The single hard failure is an unsaveable review checkpoint,
// because suspending without durable state would strand the case.
package workflow
