package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"casefold-hq/triage/pkg/casefile"
	"casefold-hq/triage/pkg/workflow"
)

var runFlags struct {
	name      string
	dob       string
	gender    string
	race      string
	guardian  string
	relation  string
	phone     string
	source    string
	reason    string
	date      string
	officerID string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an interactive intake",
	Long: `Open a new intake case and drive it through the triage workflow.

Interview questions are asked one at a time on the terminal. When every
required topic is covered the case is processed and suspended for review;
the printed checkpoint token is later passed to "triage resume".

Examples:
  # Interactive intake with subject details on flags
  triage run --name "John Doe" --dob 2009-05-15 --reason "Theft - Shoplifting"

  # Use a custom configuration
  triage run --config /etc/triage/config.yaml`,
	RunE: runIntake,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runFlags.name, "name", "", "subject name")
	runCmd.Flags().StringVar(&runFlags.dob, "dob", "", "subject date of birth (YYYY-MM-DD)")
	runCmd.Flags().StringVar(&runFlags.gender, "gender", "", "subject gender")
	runCmd.Flags().StringVar(&runFlags.race, "race", "", "subject race")
	runCmd.Flags().StringVar(&runFlags.guardian, "guardian", "", "guardian name")
	runCmd.Flags().StringVar(&runFlags.relation, "relationship", "", "guardian relationship")
	runCmd.Flags().StringVar(&runFlags.phone, "phone", "", "guardian phone")
	runCmd.Flags().StringVar(&runFlags.source, "source", "", "referral source")
	runCmd.Flags().StringVar(&runFlags.reason, "reason", "", "referral reason / offense")
	runCmd.Flags().StringVar(&runFlags.date, "date", "", "referral date (YYYY-MM-DD)")
	runCmd.Flags().StringVar(&runFlags.officerID, "officer", "", "override intake officer id")
}

func newStdinReader() *bufio.Reader {
	return bufio.NewReader(os.Stdin)
}

func runIntake(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if runFlags.officerID != "" {
		cfg.Workflow.OfficerID = runFlags.officerID
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

	rec := deps.engine.Open(
		casefile.SubjectInfo{
			Name:        runFlags.name,
			DateOfBirth: runFlags.dob,
			Gender:      runFlags.gender,
			Race:        runFlags.race,
		},
		casefile.GuardianInfo{
			Name:         runFlags.guardian,
			Relationship: runFlags.relation,
			Phone:        runFlags.phone,
		},
		casefile.ReferralInfo{
			Source: runFlags.source,
			Reason: runFlags.reason,
			Date:   runFlags.date,
		},
	)

	fmt.Printf("Case %s opened.\n\n", rec.CaseID)

	reader := newStdinReader()
	ctx := context.Background()

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
			fmt.Println()
			fmt.Println(rec.SummaryText)
			fmt.Println()
			fmt.Printf("Case %s suspended for supervisor review.\n", rec.CaseID)
			fmt.Printf("Checkpoint token: %s\n", res.CheckpointToken)
			fmt.Printf("Resume with: triage resume %s --approve\n", res.CheckpointToken)
			return nil

		case res.Status == workflow.StatusComplete:
			fmt.Printf("Case %s complete.\n", rec.CaseID)
			return nil
		}
	}
}
