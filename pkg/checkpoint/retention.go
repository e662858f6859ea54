package checkpoint

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// RetentionConfig bounds how long a suspended case may wait for its
// reviewer decision. The engine itself imposes no timeout; the bound lives
// here at the storage boundary.
type RetentionConfig struct {
	// MaxSuspension is the age after which an undecided checkpoint is
	// pruned. 0 means keep checkpoints forever.
	MaxSuspension time.Duration

	// SweepSchedule is a cron expression for scheduling sweeps.
	// Example: "0 3 * * *" (daily at 3 AM). Empty disables the sweeper.
	SweepSchedule string
}

// DefaultRetentionConfig returns the default retention configuration.
func DefaultRetentionConfig() *RetentionConfig {
	return &RetentionConfig{
		MaxSuspension: 30 * 24 * time.Hour,
		SweepSchedule: "0 3 * * *",
	}
}

// Pruner deletes checkpoints whose suspension outlived the retention bound.
type Pruner struct {
	store  Store
	config *RetentionConfig
	logger *slog.Logger

	cron    *cron.Cron
	mu      sync.Mutex
	running bool
}

// NewPruner creates a retention pruner over a checkpoint store.
func NewPruner(store Store, config *RetentionConfig) *Pruner {
	if config == nil {
		config = DefaultRetentionConfig()
	}
	return &Pruner{
		store:  store,
		config: config,
		logger: slog.Default().With("component", "checkpoint.retention"),
		cron:   cron.New(),
	}
}

// Prune deletes every checkpoint older than the suspension bound and
// returns the number deleted.
func (p *Pruner) Prune(ctx context.Context) (int, error) {
	if p.config.MaxSuspension <= 0 {
		return 0, nil
	}

	cutoff := time.Now().Add(-p.config.MaxSuspension)
	tokens, err := p.store.List(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale checkpoints: %w", err)
	}

	deleted := 0
	for _, token := range tokens {
		if err := p.store.Delete(ctx, token); err != nil {
			p.logger.Error("failed to delete stale checkpoint",
				"token", token,
				"error", err,
			)
			continue
		}
		deleted++
	}

	if deleted > 0 {
		p.logger.Info("stale checkpoints pruned",
			"deleted_count", deleted,
			"max_suspension", p.config.MaxSuspension,
		)
	}
	return deleted, nil
}

// Start begins scheduled sweeping based on the cron expression. An empty
// schedule does nothing.
func (p *Pruner) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.config.SweepSchedule == "" {
		p.logger.Info("sweep schedule not configured, skipping retention scheduler")
		return nil
	}

	if _, err := cron.ParseStandard(p.config.SweepSchedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", p.config.SweepSchedule, err)
	}

	if _, err := p.cron.AddFunc(p.config.SweepSchedule, func() {
		if _, err := p.Prune(ctx); err != nil {
			p.logger.Error("scheduled checkpoint sweep failed", "error", err)
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule checkpoint sweep: %w", err)
	}

	p.cron.Start()
	p.running = true
	p.logger.Info("checkpoint retention scheduler started",
		"schedule", p.config.SweepSchedule,
		"max_suspension", p.config.MaxSuspension,
	)

	go func() {
		<-ctx.Done()
		p.Stop()
	}()
	return nil
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (p *Pruner) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		<-p.cron.Stop().Done()
		p.running = false
		p.logger.Info("checkpoint retention scheduler stopped")
	}
}

// IsRunning reports whether the scheduler is running.
func (p *Pruner) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}
