package workflow

import (
	"context"

	"casefold-hq/triage/pkg/casefile"
	"casefold-hq/triage/pkg/interview"
	"casefold-hq/triage/pkg/retrieval"
	"casefold-hq/triage/pkg/synthesis"
)

// stepIntake validates the referral packet, derives the subject's age,
// and retires topics that intake itself satisfies. Incomplete subject
// information is recorded as warnings, never rejected.
func (e *Engine) stepIntake(rec *casefile.CaseRecord) StepResult {
	for _, w := range casefile.ValidateSubject(rec.Subject) {
		rec.RecordWarning(w)
	}

	if rec.Subject.DateOfBirth != "" && !rec.Subject.AgeKnown {
		if age, ok := casefile.AgeAt(rec.Subject.DateOfBirth, e.now()); ok {
			rec.Subject.Age = age
			rec.Subject.AgeKnown = true
		}
	}

	// Identity topics are satisfied by the referral packet only when it
	// actually carries the identity fields. An incomplete packet leaves
	// them uncovered; questioning retires them later since they have no
	// registry questions.
	if rec.Subject.Name != "" && rec.Subject.DateOfBirth != "" {
		for _, topic := range interview.Unaskable(e.catalog, rec) {
			rec.CoverTopic(topic)
			rec.AppendSystem("Topic %s covered by referral packet at intake", topic)
		}
	}

	rec.AppendSystem("Intake processed for case %s. Beginning interview.", rec.CaseID)
	rec.Phase = casefile.PhaseQuestioning

	e.logger.Info("Intake processed",
		"case_id", rec.CaseID,
		"age_known", rec.Subject.AgeKnown,
		"uncovered_topics", len(rec.UncoveredTopics),
	)
	return StepResult{Status: StatusRunning, Phase: rec.Phase}
}

// stepQuestioning surfaces the next interview question, or advances the
// case once every required topic is covered. Topics that become unaskable
// (no registry questions) are retired with a warning so the interview
// always terminates.
func (e *Engine) stepQuestioning(rec *casefile.CaseRecord) StepResult {
	if e.maxQuestions > 0 && len(rec.Responses) >= e.maxQuestions {
		for _, topic := range append([]string(nil), rec.UncoveredTopics...) {
			rec.CoverTopic(topic)
		}
		rec.RecordWarning("interview question cap reached before full topic coverage")
	}

	for _, topic := range interview.Unaskable(e.catalog, rec) {
		rec.CoverTopic(topic)
		rec.RecordWarning("topic " + topic + " has no interview questions, marked covered")
	}

	if q := interview.NextQuestion(e.catalog, rec); q != nil {
		e.logger.Debug("Pending question",
			"case_id", rec.CaseID,
			"topic", q.Topic,
		)
		return StepResult{Status: StatusRunning, Phase: rec.Phase, PendingQuestion: q}
	}

	rec.AppendSystem("Interview complete: %d topics covered over %d questions.",
		len(rec.CoveredTopics), len(rec.Responses))
	rec.Phase = casefile.PhasePolicyRetrieval
	return StepResult{Status: StatusRunning, Phase: rec.Phase}
}

// stepRetrieval consults the policy-document collaborator. A missing or
// failing retriever degrades to an empty document set.
func (e *Engine) stepRetrieval(ctx context.Context, rec *casefile.CaseRecord) StepResult {
	queries := retrieval.BuildQueries(retrieval.ExtractQueryContext(rec))
	rec.AppendSystem("Retrieving policies for: %s", joinFirst(queries, 3))

	switch {
	case e.retriever == nil:
		rec.RecordWarning("policy retrieval unavailable, continuing without documents")

	default:
		docs, err := e.retriever.Retrieve(ctx, queries, e.retrievalTopK)
		if err != nil {
			rec.RecordWarning("policy retrieval failed: " + err.Error())
			e.logger.Warn("Policy retrieval failed",
				"case_id", rec.CaseID,
				"error", err,
			)
		} else {
			rec.PolicyDocuments = docs
			rec.AppendSystem("Retrieved %d relevant policy documents.", len(docs))
		}
	}

	rec.Phase = casefile.PhaseEligibility
	return StepResult{Status: StatusRunning, Phase: rec.Phase}
}

// stepEligibility evaluates every catalog program.
func (e *Engine) stepEligibility(rec *casefile.CaseRecord) StepResult {
	rec.EligibilityResults = e.eligibility.Evaluate(rec)

	eligible := 0
	for _, res := range rec.EligibilityResults {
		if res.Status == casefile.StatusEligible {
			eligible++
		}
		e.metrics.Outcomes().RecordEligibility(res.ProgramKey, string(res.Status))
	}
	rec.AppendSystem("Eligibility determined: %d of %d programs eligible.",
		eligible, len(rec.EligibilityResults))

	rec.Phase = casefile.PhaseRiskAssessment
	return StepResult{Status: StatusRunning, Phase: rec.Phase}
}

// stepRisk scores the interview transcript across every risk domain.
func (e *Engine) stepRisk(rec *casefile.CaseRecord) StepResult {
	rec.RiskAssessment = e.risk.Assess(rec)

	e.metrics.Outcomes().RecordRisk(string(rec.RiskAssessment.Level), rec.RiskAssessment.Score)
	rec.AppendSystem("Risk assessment complete: %s risk (score %.1f), %d risk factors, %d protective factors.",
		rec.RiskAssessment.Level,
		rec.RiskAssessment.Score,
		len(rec.RiskAssessment.RiskFactors),
		len(rec.RiskAssessment.ProtectiveFactors),
	)

	rec.Phase = casefile.PhaseSummary
	return StepResult{Status: StatusRunning, Phase: rec.Phase}
}

// stepSummary synthesizes recommendations and the officer-facing summary.
func (e *Engine) stepSummary(rec *casefile.CaseRecord) StepResult {
	rec.Recommendations = synthesis.Recommend(rec)
	rec.SummaryText = synthesis.Summarize(e.catalog, rec, e.now())
	rec.AppendSystem("Case summary generated with %d recommendations. Submitting for review.",
		len(rec.Recommendations))

	rec.Phase = casefile.PhaseReview
	return StepResult{Status: StatusRunning, Phase: rec.Phase}
}

// stepReview checkpoints the case and suspends it for supervisor review.
// A checkpoint save failure is the engine's one hard error: suspending
// without durable state would strand the case.
func (e *Engine) stepReview(ctx context.Context, rec *casefile.CaseRecord) (StepResult, error) {
	started := e.now()
	token, err := e.checkpoints.Save(ctx, rec)
	e.metrics.Storage().RecordOperation("checkpoint", "save", e.now().Sub(started), err)
	if err != nil {
		e.logger.Error("Checkpoint save failed at review",
			"case_id", rec.CaseID,
			"error", err,
		)
		return StepResult{Status: StatusRunning, Phase: rec.Phase}, err
	}

	rec.AppendSystem("Case suspended for supervisor review.")
	e.metrics.Workflow().RecordCaseEvent("suspended")
	e.logger.Info("Case suspended at review",
		"case_id", rec.CaseID,
		"checkpoint", token,
	)

	return StepResult{
		Status:          StatusSuspendedAtReview,
		Phase:           rec.Phase,
		CheckpointToken: token,
	}, nil
}

func joinFirst(items []string, n int) string {
	if len(items) > n {
		items = items[:n]
	}
	out := ""
	for i, item := range items {
		if i > 0 {
			out += ", "
		}
		out += item
	}
	return out
}
