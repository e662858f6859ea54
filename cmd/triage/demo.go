package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"casefold-hq/triage/pkg/casefile"
	"casefold-hq/triage/pkg/workflow"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the scripted demonstration case",
	Long: `Run a complete intake for a scripted sample case: a first-time
shoplifting referral with pre-recorded interview answers. The case is
driven through every stage, suspended at review, and immediately resumed
with an approval, so the full lifecycle prints in one invocation.`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

// demoResponses is the scripted interview transcript, keyed by topic.
var demoResponses = map[string]string{
	"family_situation": "Lives with mother and younger sister. Parents divorced 2 years ago. " +
		"Father has limited contact. Mother works two jobs and has difficulty supervising.",
	"education": "Currently enrolled in 9th grade. Has been truant several times this semester. " +
		"Grades have dropped from Bs to Ds. No IEP.",
	"peer_relations": "Has a small group of friends from school. One friend has been in trouble " +
		"with the law. Also has some prosocial friends from basketball team.",
	"substance_use": "Admits to trying marijuana once at a party. Denies regular use. " +
		"No alcohol use reported.",
	"mental_health": "No formal diagnosis. Mother reports youth has been more withdrawn since " +
		"divorce. Some anger management issues noted at school.",
	"prior_offenses": "No prior arrests or referrals. This is first contact with juvenile " +
		"justice system.",
	"current_offense": "Youth was caught shoplifting $50 worth of items from a store. Youth " +
		"admits to the offense and expressed regret. No co-participants.",
	"strengths_protective_factors": "Good at basketball, on the school team. Has goals of going " +
		"to college. Mother is supportive despite work schedule. Has an uncle who is a positive mentor.",
	"living_situation": "Stable housing with mother. No recent moves.",
	"employment":       "Not currently employed. Interested in a part-time job next summer.",
}

func runDemo(cmd *cobra.Command, args []string) error {
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

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("INTAKE TRIAGE - DEMO")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()

	rec := deps.engine.Open(
		casefile.SubjectInfo{
			Name:        "John Doe",
			DateOfBirth: "2009-05-15",
			Gender:      "Male",
			Race:        "White",
		},
		casefile.GuardianInfo{
			Name:         "Jane Doe",
			Relationship: "Mother",
			Phone:        "(555) 123-4567",
		},
		casefile.ReferralInfo{
			Source: "School Resource Officer",
			Reason: "Theft - Shoplifting",
		},
	)

	fmt.Printf("Case ID: %s\n", rec.CaseID)
	fmt.Printf("Youth: %s\n", rec.Subject.Name)
	fmt.Printf("Referral: %s\n\n", rec.Referral.Reason)

	ctx := context.Background()

	// Drive the interview from the scripted transcript.
	var token string
	for {
		res, err := deps.engine.Run(ctx, rec)
		if err != nil {
			return err
		}

		if q := res.PendingQuestion; q != nil {
			answer, ok := demoResponses[q.Topic]
			if !ok {
				answer = "No concerns reported."
			}
			fmt.Printf("[%s] %s\n  -> %s\n", q.Topic, q.Question, truncate(answer, 70))
			deps.engine.RecordResponse(rec, q.Topic, q.Question, answer)
			continue
		}

		if res.Status != workflow.StatusSuspendedAtReview {
			return fmt.Errorf("demo: expected suspension at review, got status %q", res.Status)
		}
		token = res.CheckpointToken
		break
	}

	fmt.Println()
	fmt.Printf("Case suspended for review (checkpoint %s). Approving...\n\n", token)

	rec, res, err := deps.engine.Resume(ctx, token, casefile.ReviewOutcome{
		Approved: true,
		Notes:    "Reviewed and approved. First-time offense, strong protective factors.",
	})
	if err != nil {
		return err
	}
	if res.Status != workflow.StatusComplete {
		return fmt.Errorf("demo: expected completion, got status %q", res.Status)
	}

	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("WORKFLOW COMPLETE")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()

	fmt.Println("GENERATED CASE SUMMARY:")
	fmt.Println()
	fmt.Println(rec.SummaryText)
	fmt.Println()

	fmt.Println("RECOMMENDATIONS:")
	for i, r := range rec.Recommendations {
		fmt.Printf("  %d. %s\n", i+1, r)
	}
	fmt.Println()

	fmt.Println("ELIGIBILITY SUMMARY:")
	for _, er := range rec.EligibilityResults {
		fmt.Printf("  [%s] %s\n", strings.ToUpper(string(er.Status)), er.ProgramName)
	}
	fmt.Println()

	if rec.RiskAssessment != nil {
		fmt.Printf("RISK LEVEL: %s\n\n", strings.ToUpper(string(rec.RiskAssessment.Level)))
	}

	auditRec := rec.BuildAuditRecord()
	fmt.Println("AUDIT RECORD CREATED")
	fmt.Printf("  Questions asked: %d\n", auditRec.QuestionsAsked)
	fmt.Printf("  Topics covered: %d\n", auditRec.TopicsCoveredCount)

	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
