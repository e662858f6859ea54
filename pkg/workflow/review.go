package workflow

import (
	"context"
	"fmt"

	"casefold-hq/triage/pkg/casefile"
	"casefold-hq/triage/pkg/interview"
)

// Resume loads a suspended case by checkpoint token and applies the
// supervisor's decision. Routing priority when a decision carries several
// signals: a request for more questioning wins over edits, and edits win
// over plain approval. Only a plain approval completes the case.
//
// On a loop-back the returned result is Running with the case back in
// questioning; the host drives it with Run as usual, and the case will
// suspend at review again. A decision carrying edits likewise returns
// Running with the case back in summary: the amended summary is
// regenerated and the case re-suspends for a fresh decision.
func (e *Engine) Resume(ctx context.Context, token string, decision casefile.ReviewOutcome) (*casefile.CaseRecord, StepResult, error) {
	started := e.now()
	rec, err := e.checkpoints.Load(ctx, token)
	e.metrics.Storage().RecordOperation("checkpoint", "load", e.now().Sub(started), err)
	if err != nil {
		return nil, StepResult{}, fmt.Errorf("workflow: resume %s: %w", token, err)
	}

	if rec.Phase != casefile.PhaseReview {
		return nil, StepResult{}, fmt.Errorf("workflow: case %s resumed in phase %q, want %q",
			rec.CaseID, rec.Phase, casefile.PhaseReview)
	}

	// The checkpoint is consumed regardless of the decision; a loop-back
	// writes a fresh one when it reaches review again.
	if err := e.checkpoints.Delete(ctx, token); err != nil {
		e.logger.Warn("Stale checkpoint not deleted",
			"case_id", rec.CaseID,
			"checkpoint", token,
			"error", err,
		)
	}

	e.metrics.Workflow().RecordCaseEvent("resumed")
	e.logger.Info("Case resumed from review",
		"case_id", rec.CaseID,
		"approved", decision.Approved,
		"more_questions", decision.RequestMoreQuestions,
		"edits", len(decision.Edits),
	)

	if decision.RequestMoreQuestions {
		return rec, e.loopBack(rec, decision), nil
	}

	rec.Review = decision
	if decision.Notes != "" {
		rec.AppendAudit("assistant", "Reviewer notes: "+decision.Notes)
	}

	if len(decision.Edits) > 0 {
		e.metrics.Outcomes().RecordReviewDecision("edited")
		rec.AppendSystem("Summary amendments received, %d officer edits. Regenerating for re-review.",
			len(decision.Edits))
		rec.Phase = casefile.PhaseSummary
		e.metrics.Workflow().RecordTransition(string(casefile.PhaseReview), string(rec.Phase))
		return rec, StepResult{Status: StatusRunning, Phase: rec.Phase}, nil
	}

	e.metrics.Outcomes().RecordReviewDecision("approved")
	res, err := e.complete(ctx, rec)
	return rec, res, err
}

// loopBack reopens a topic for further questioning at the reviewer's
// request. The reviewer's notes pick the topic when they name one;
// otherwise the highest-priority covered topic is reopened.
func (e *Engine) loopBack(rec *casefile.CaseRecord, decision casefile.ReviewOutcome) StepResult {
	e.metrics.Outcomes().RecordReviewDecision("more_questions")

	// The decision is recorded without its edits: the questioning request
	// outranks them, and the next decision replaces the outcome anyway.
	rec.Review = casefile.ReviewOutcome{
		RequestMoreQuestions: true,
		Notes:                decision.Notes,
	}

	topic, ok := interview.ChooseReopenTopic(e.catalog, rec, decision.Notes)
	if !ok {
		rec.RecordWarning("reviewer requested more questions but no topic could be reopened")
		rec.Phase = casefile.PhaseQuestioning
		return StepResult{Status: StatusRunning, Phase: rec.Phase}
	}

	rec.ReopenTopic(topic)
	rec.AppendSystem("Reviewer requested more questioning, topic %s reopened.", topic)
	if decision.Notes != "" {
		rec.AppendAudit("assistant", "Reviewer notes: "+decision.Notes)
	}

	rec.Phase = casefile.PhaseQuestioning
	e.metrics.Workflow().RecordTransition(string(casefile.PhaseReview), string(rec.Phase))
	return StepResult{Status: StatusRunning, Phase: rec.Phase}
}

// complete finalizes the case and writes its audit record. An audit save
// failure is recorded on the case but does not reverse completion.
func (e *Engine) complete(ctx context.Context, rec *casefile.CaseRecord) (StepResult, error) {
	rec.Phase = casefile.PhaseComplete
	rec.AppendSystem("Case %s complete.", rec.CaseID)
	e.metrics.Workflow().RecordTransition(string(casefile.PhaseReview), string(rec.Phase))
	e.metrics.Workflow().RecordCaseEvent("completed")

	if e.audits != nil {
		started := e.now()
		err := e.audits.Save(ctx, rec.BuildAuditRecord())
		e.metrics.Storage().RecordOperation("audit", "save", e.now().Sub(started), err)
		if err != nil {
			rec.RecordWarning("audit record not persisted: " + err.Error())
			e.logger.Error("Audit record save failed",
				"case_id", rec.CaseID,
				"error", err,
			)
		}
	}

	e.logger.Info("Case complete",
		"case_id", rec.CaseID,
		"approved", rec.Review.Approved,
		"recommendations", len(rec.Recommendations),
	)
	return StepResult{Status: StatusComplete, Phase: rec.Phase}, nil
}
