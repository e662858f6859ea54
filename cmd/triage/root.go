package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "triage",
	Short: "Juvenile-justice intake triage workflow engine",
	Long: `Triage drives juvenile-justice intake cases through a staged workflow:
interviewing, policy retrieval, program eligibility determination, risk
scoring, and summary synthesis. Every case suspends for supervisor review
before completion; suspended cases are checkpointed and resumed with the
reviewer's decision.

Determinations are deterministic and rule-based, with policy citations
attached to every eligibility outcome.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
