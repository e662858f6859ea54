package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"casefold-hq/triage/pkg/audit"
	"casefold-hq/triage/pkg/catalog"
	"casefold-hq/triage/pkg/checkpoint"
	"casefold-hq/triage/pkg/config"
	"casefold-hq/triage/pkg/retrieval"
	"casefold-hq/triage/pkg/telemetry/logging"
	"casefold-hq/triage/pkg/telemetry/metrics"
	"casefold-hq/triage/pkg/workflow"
)

// defaultConfigFile is the value of --config when the user did not set it.
const defaultConfigFile = "config.yaml"

// loadConfig loads the configuration file. A missing file is an error
// unless the flag was left at its default, in which case the built-in
// defaults are used.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadWithEnvOverrides(cfgFile)
	if err != nil {
		if cfgFile == defaultConfigFile && errors.Is(err, os.ErrNotExist) {
			return config.DefaultConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// buildLogger creates the process logger and installs it as the slog
// default. --verbose forces debug level.
func buildLogger(cfg *config.Config) (*slog.Logger, error) {
	logCfg := cfg.Telemetry.Logging
	if verbose {
		logCfg.Level = "debug"
	}

	logger, err := logging.New(logCfg, os.Stderr)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return logger, nil
}

// runtimeDeps holds everything a workflow command needs, plus the
// cleanup that releases it.
type runtimeDeps struct {
	engine      *workflow.Engine
	checkpoints checkpoint.Store
	catalog     *catalog.Catalog
	collector   *metrics.Collector
	cleanup     func()
}

// buildRuntime assembles the workflow engine and its collaborators from
// configuration.
func buildRuntime(cfg *config.Config, logger *slog.Logger) (*runtimeDeps, error) {
	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	var cleanups []func()
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	// Checkpoint store
	var store checkpoint.Store
	switch cfg.Checkpoint.Backend {
	case "sqlite":
		store, err = checkpoint.NewSQLiteStore(&checkpoint.SQLiteConfig{
			Path:        cfg.Checkpoint.SQLite.Path,
			WALMode:     cfg.Checkpoint.SQLite.WALMode,
			BusyTimeout: cfg.Checkpoint.SQLite.BusyTimeout,
		})
		if err != nil {
			return nil, fmt.Errorf("open checkpoint store: %w", err)
		}
	default:
		store = checkpoint.NewMemoryStore()
	}
	cleanups = append(cleanups, func() {
		if err := store.Close(); err != nil {
			logger.Warn("Checkpoint store close failed", "error", err)
		}
	})

	// Audit store
	var audits *audit.Store
	if cfg.Audit.Enabled {
		audits, err = audit.NewStore(audit.StoreConfig{Path: cfg.Audit.Path})
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("open audit store: %w", err)
		}
		cleanups = append(cleanups, func() {
			if err := audits.Close(); err != nil {
				logger.Warn("Audit store close failed", "error", err)
			}
		})
	}

	// Retrieval corpus
	var retriever workflow.Retriever
	switch cfg.Retrieval.Mode {
	case "dir":
		idx, err := retrieval.NewDirIndex(cfg.Retrieval.Dir, logger)
		if err != nil {
			cleanup()
			return nil, fmt.Errorf("load retrieval corpus: %w", err)
		}
		if cfg.Retrieval.Watch {
			watcher, err := retrieval.NewWatcher(idx, logger)
			if err != nil {
				cleanup()
				return nil, fmt.Errorf("watch retrieval corpus: %w", err)
			}
			go func() {
				if err := watcher.Watch(context.Background()); err != nil {
					logger.Warn("Corpus watcher stopped", "error", err)
				}
			}()
			cleanups = append(cleanups, func() {
				if err := watcher.Stop(); err != nil {
					logger.Warn("Corpus watcher stop failed", "error", err)
				}
			})
		}
		retriever = idx
	default:
		retriever = retrieval.NewIndex(logger)
	}

	// Metrics
	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(nil)
		mux := http.NewServeMux()
		mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
		srv := &http.Server{Addr: cfg.Telemetry.Metrics.ListenAddress, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Warn("Metrics endpoint failed", "error", err)
			}
		}()
		cleanups = append(cleanups, func() { srv.Close() })
	}

	engine, err := workflow.New(workflow.Config{
		Catalog:       cat,
		Checkpoints:   store,
		Retriever:     retriever,
		Audits:        audits,
		Metrics:       collector,
		Logger:        logger,
		OfficerID:     cfg.Workflow.OfficerID,
		RetrievalTopK: cfg.Retrieval.TopK,
		MaxQuestions:  cfg.Workflow.MaxQuestions,
	})
	if err != nil {
		cleanup()
		return nil, err
	}

	return &runtimeDeps{
		engine:      engine,
		checkpoints: store,
		catalog:     cat,
		collector:   collector,
		cleanup:     cleanup,
	}, nil
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog.Path == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}
