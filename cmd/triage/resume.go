package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"casefold-hq/triage/pkg/casefile"
	"casefold-hq/triage/pkg/workflow"
)

var resumeFlags struct {
	approve       bool
	notes         string
	edits         []string
	moreQuestions bool
}

var resumeCmd = &cobra.Command{
	Use:   "resume <token>",
	Short: "Apply a review decision to a suspended case",
	Long: `Resume a case suspended at supervisor review, identified by its
checkpoint token, and apply the reviewer's decision.

A request for more questioning takes precedence over edits, and edits
take precedence over plain approval. After a loop-back the case runs
through questioning again and suspends with a fresh token; a decision
with edits regenerates the amended summary and re-suspends for a fresh
review. Only a plain approval completes the case.

Examples:
  # Approve as-is
  triage resume a1b2c3d4 --approve --notes "Concur with recommendations"

  # Amend the summary and send it back through review
  triage resume a1b2c3d4 --edit "recommendations=Add mentoring referral"

  # Send back for more questioning
  triage resume a1b2c3d4 --more-questions --notes "Probe substance_use further"`,
	Args: cobra.ExactArgs(1),
	RunE: resumeCase,
}

func init() {
	rootCmd.AddCommand(resumeCmd)

	resumeCmd.Flags().BoolVar(&resumeFlags.approve, "approve", false, "approve the case")
	resumeCmd.Flags().StringVar(&resumeFlags.notes, "notes", "", "reviewer notes")
	resumeCmd.Flags().StringArrayVar(&resumeFlags.edits, "edit", nil, "summary edit as section=text (repeatable)")
	resumeCmd.Flags().BoolVar(&resumeFlags.moreQuestions, "more-questions", false, "send the case back for more questioning")
}

func resumeCase(cmd *cobra.Command, args []string) error {
	token := args[0]

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		return err
	}

	deps, err := buildRuntime(cfg, logger)
	if err != nil {
		return err
	}
	defer deps.cleanup()

	edits := make(map[string]string, len(resumeFlags.edits))
	for _, e := range resumeFlags.edits {
		key, value, ok := strings.Cut(e, "=")
		if !ok {
			return fmt.Errorf("invalid --edit %q, want section=text", e)
		}
		edits[key] = value
	}

	decision := casefile.ReviewOutcome{
		Approved:             resumeFlags.approve,
		Notes:                resumeFlags.notes,
		Edits:                edits,
		RequestMoreQuestions: resumeFlags.moreQuestions,
	}

	ctx := context.Background()
	rec, res, err := deps.engine.Resume(ctx, token, decision)
	if err != nil {
		return err
	}

	switch res.Status {
	case workflow.StatusComplete:
		fmt.Printf("Case %s complete.\n\n", rec.CaseID)
		fmt.Println(rec.SummaryText)
		return nil

	case workflow.StatusRunning:
		if resumeFlags.moreQuestions {
			fmt.Printf("Case %s reopened for questioning.\n", rec.CaseID)
		} else {
			fmt.Printf("Case %s summary amended, resubmitting for review.\n", rec.CaseID)
		}
		return continueQuestioning(ctx, deps, rec)

	default:
		return fmt.Errorf("unexpected status %q after resume", res.Status)
	}
}

// continueQuestioning drives a looped-back case through its reopened
// topics interactively, then reports the fresh suspension token.
func continueQuestioning(ctx context.Context, deps *runtimeDeps, rec *casefile.CaseRecord) error {
	reader := newStdinReader()

	for {
		res, err := deps.engine.Run(ctx, rec)
		if err != nil {
			return err
		}

		switch {
		case res.PendingQuestion != nil:
			q := res.PendingQuestion
			fmt.Printf("[%s] %s\n> ", q.Topic, q.Question)
			answer, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("read answer: %w", err)
			}
			deps.engine.RecordResponse(rec, q.Topic, q.Question, strings.TrimSpace(answer))

		case res.Status == workflow.StatusSuspendedAtReview:
			fmt.Printf("\nCase %s suspended for review again.\n", rec.CaseID)
			fmt.Printf("Checkpoint token: %s\n", res.CheckpointToken)
			return nil

		case res.Status == workflow.StatusComplete:
			fmt.Printf("Case %s complete.\n", rec.CaseID)
			return nil
		}
	}
}
