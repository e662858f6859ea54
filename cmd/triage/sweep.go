package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"casefold-hq/triage/pkg/checkpoint"
)

var sweepFlags struct {
	daemon bool
}

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Prune stale suspended checkpoints",
	Long: `Delete checkpoints whose suspension has outlived the configured
retention bound (checkpoint.retention.max_suspension_days).

By default the sweep runs once and exits. With --daemon the sweeper stays
resident and runs on the configured cron schedule until interrupted.

Examples:
  # One-off sweep
  triage sweep

  # Resident sweeper on the configured schedule
  triage sweep --daemon`,
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().BoolVar(&sweepFlags.daemon, "daemon", false, "run on the configured cron schedule until interrupted")
}

func runSweep(cmd *cobra.Command, args []string) error {
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

	pruner := checkpoint.NewPruner(deps.checkpoints, &checkpoint.RetentionConfig{
		MaxSuspension: time.Duration(cfg.Checkpoint.Retention.MaxSuspensionDays) * 24 * time.Hour,
		SweepSchedule: cfg.Checkpoint.Retention.SweepSchedule,
	})

	ctx := context.Background()

	if !sweepFlags.daemon {
		pruned, err := pruner.Prune(ctx)
		if err != nil {
			return err
		}
		deps.collector.Storage().RecordPruned(pruned)
		fmt.Printf("Pruned %d stale checkpoints.\n", pruned)
		return nil
	}

	if err := pruner.Start(ctx); err != nil {
		return err
	}
	defer pruner.Stop()

	fmt.Printf("Sweeper running on schedule %q. Press Ctrl-C to stop.\n",
		cfg.Checkpoint.Retention.SweepSchedule)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	fmt.Println("Stopping sweeper.")
	return nil
}
