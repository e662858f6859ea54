package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"casefold-hq/triage/pkg/audit"
	"casefold-hq/triage/pkg/casefile"
	"casefold-hq/triage/pkg/catalog"
	"casefold-hq/triage/pkg/checkpoint"
	"casefold-hq/triage/pkg/eligibility"
	"casefold-hq/triage/pkg/interview"
	"casefold-hq/triage/pkg/risk"
	"casefold-hq/triage/pkg/telemetry/metrics"
)

// Status is the externally visible state of an engine run.
type Status string

const (
	// StatusRunning means the case needs further processing, possibly a
	// pending question answered first.
	StatusRunning Status = "running"

	// StatusSuspendedAtReview means the case is checkpointed and waiting
	// for a supervisor decision.
	StatusSuspendedAtReview Status = "suspended_at_review"

	// StatusComplete means the case is finished.
	StatusComplete Status = "complete"
)

// StepResult reports the outcome of advancing a case.
type StepResult struct {
	// Status is the run status after the step.
	Status Status

	// Phase is the case's current stage after the step.
	Phase casefile.Phase

	// PendingQuestion is set when Status is Running and the engine is
	// waiting for an interview answer.
	PendingQuestion *interview.Question

	// CheckpointToken is set when Status is SuspendedAtReview.
	CheckpointToken string
}

// Retriever is the policy-document collaborator consulted during the
// retrieval stage. A retrieval failure degrades the case, it never stops
// the pipeline.
type Retriever interface {
	Retrieve(ctx context.Context, queries []string, topK int) ([]casefile.PolicyDocument, error)
}

// Config assembles an engine's collaborators. Catalog and Checkpoints are
// required; everything else is optional.
type Config struct {
	Catalog     *catalog.Catalog
	Checkpoints checkpoint.Store

	// Retriever supplies policy documents. Nil skips retrieval with a
	// case warning.
	Retriever Retriever

	// Audits receives the audit record of every completed case. Nil
	// disables audit persistence.
	Audits *audit.Store

	// Metrics is optional; a nil collector records nothing.
	Metrics *metrics.Collector

	Logger *slog.Logger

	// OfficerID is stamped on cases opened by this engine.
	OfficerID string

	// RetrievalTopK caps documents returned per retrieval. Zero uses the
	// retriever's default.
	RetrievalTopK int

	// MaxQuestions caps the interview transcript length. Zero means no
	// cap beyond topic exhaustion.
	MaxQuestions int

	// Now overrides the clock, for tests. Nil uses time.Now.
	Now func() time.Time
}

// Engine coordinates the triage stages over a case record.
type Engine struct {
	catalog     *catalog.Catalog
	eligibility *eligibility.Engine
	risk        *risk.Engine
	retriever   Retriever
	checkpoints checkpoint.Store
	audits      *audit.Store
	metrics     *metrics.Collector
	logger      *slog.Logger

	officerID     string
	retrievalTopK int
	maxQuestions  int
	now           func() time.Time
}

// New creates a workflow engine.
func New(cfg Config) (*Engine, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("workflow: catalog is required")
	}
	if cfg.Checkpoints == nil {
		return nil, fmt.Errorf("workflow: checkpoint store is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "workflow")

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	officerID := cfg.OfficerID
	if officerID == "" {
		officerID = "intake-officer"
	}

	return &Engine{
		catalog:       cfg.Catalog,
		eligibility:   eligibility.New(cfg.Catalog, logger),
		risk:          risk.New(cfg.Catalog, logger),
		retriever:     cfg.Retriever,
		checkpoints:   cfg.Checkpoints,
		audits:        cfg.Audits,
		metrics:       cfg.Metrics,
		logger:        logger,
		officerID:     officerID,
		retrievalTopK: cfg.RetrievalTopK,
		maxQuestions:  cfg.MaxQuestions,
		now:           now,
	}, nil
}

// Open creates a new case record in the intake stage.
func (e *Engine) Open(subject casefile.SubjectInfo, guardian casefile.GuardianInfo, referral casefile.ReferralInfo) *casefile.CaseRecord {
	rec := casefile.New(e.officerID, subject, guardian, referral, e.catalog.RequiredTopics())
	rec.AppendSystem("Case %s opened by %s", rec.CaseID, rec.OfficerID)

	e.metrics.Workflow().RecordCaseEvent("opened")
	e.logger.Info("Case opened",
		"case_id", rec.CaseID,
		"officer", rec.OfficerID,
		"referral_source", rec.Referral.Source,
	)
	return rec
}

// RecordResponse records an interview answer on the case, covers the
// topic, and scans the answer for risk indicators worth follow-up.
func (e *Engine) RecordResponse(rec *casefile.CaseRecord, topic, question, answer string) {
	interview.RecordResponse(rec, topic, question, answer, e.now())
	e.metrics.Workflow().RecordQuestion(topic)

	for _, ind := range interview.ScanRiskIndicators(e.catalog, topic, answer) {
		rec.AppendSystem("Noted %s risk indicator %q in %s response: %s",
			ind.Severity, ind.Keyword, topic, ind.Context)
	}
}

// Run advances the case until it needs outside input: a pending interview
// answer, a supervisor review, or completion.
func (e *Engine) Run(ctx context.Context, rec *casefile.CaseRecord) (StepResult, error) {
	for {
		res, err := e.Step(ctx, rec)
		if err != nil {
			return res, err
		}
		if res.Status != StatusRunning || res.PendingQuestion != nil {
			return res, nil
		}
	}
}

// Step advances the case by a single stage. It returns a pending question
// without changing stage when questioning needs an answer.
func (e *Engine) Step(ctx context.Context, rec *casefile.CaseRecord) (StepResult, error) {
	if err := ctx.Err(); err != nil {
		return StepResult{Status: StatusRunning, Phase: rec.Phase}, err
	}

	started := e.now()
	from := rec.Phase

	var (
		res StepResult
		err error
	)

	switch rec.Phase {
	case casefile.PhaseIntake:
		res = e.stepIntake(rec)
	case casefile.PhaseQuestioning:
		res = e.stepQuestioning(rec)
	case casefile.PhasePolicyRetrieval:
		res = e.stepRetrieval(ctx, rec)
	case casefile.PhaseEligibility:
		res = e.stepEligibility(rec)
	case casefile.PhaseRiskAssessment:
		res = e.stepRisk(rec)
	case casefile.PhaseSummary:
		res = e.stepSummary(rec)
	case casefile.PhaseReview:
		res, err = e.stepReview(ctx, rec)
	case casefile.PhaseComplete:
		res = StepResult{Status: StatusComplete, Phase: rec.Phase}
	default:
		return StepResult{Status: StatusRunning, Phase: rec.Phase},
			fmt.Errorf("workflow: unknown phase %q on case %s", rec.Phase, rec.CaseID)
	}

	e.metrics.Workflow().RecordStageDuration(string(from), e.now().Sub(started))
	if rec.Phase != from {
		e.metrics.Workflow().RecordTransition(string(from), string(rec.Phase))
	}

	if invErr := rec.CheckInvariants(e.catalog.RequiredTopics()); invErr != nil {
		e.logger.Error("Coverage invariant violated",
			"case_id", rec.CaseID,
			"phase", rec.Phase,
			"error", invErr,
		)
		if err == nil {
			err = fmt.Errorf("workflow: case %s: %w", rec.CaseID, invErr)
		}
	}

	return res, err
}
