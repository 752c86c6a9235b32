// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/tomtom215/affinitas/internal/config"
	"github.com/tomtom215/affinitas/internal/database"
	"github.com/tomtom215/affinitas/internal/export"
	"github.com/tomtom215/affinitas/internal/graph"
	"github.com/tomtom215/affinitas/internal/logging"
	"github.com/tomtom215/affinitas/internal/metrics"
	"github.com/tomtom215/affinitas/internal/snapshot"
)

const buildLockName = ".affinitas-build.lock"

var (
	flagSnapshot  string
	flagGazetteer string
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the similarity graph and write all enabled sinks",
	Long: `Build loads the collection snapshot, computes the text, temporal, and
spatial similarity channels, fuses them into ranked neighbor lists, and
writes every enabled sink (neighbors.json, the Badger graph store, the
DuckDB run history).

An exclusive lock on the sink directory guards against two builds
interleaving their output; a second build started while one is running
fails immediately.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&flagSnapshot, "snapshot", "",
		"Snapshot file to load (overrides snapshot.path)")
	buildCmd.Flags().StringVar(&flagGazetteer, "gazetteer", "",
		"Gazetteer file for coordinate backfill (overrides snapshot.gazetteer_path)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if flagSnapshot != "" {
		cfg.Snapshot.Path = flagSnapshot
	}
	if flagGazetteer != "" {
		cfg.Snapshot.GazetteerPath = flagGazetteer
	}

	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	unlock, err := acquireBuildLock(cfg)
	if err != nil {
		return err
	}
	defer unlock()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal; aborting after the current stage")
		cancel()
	}()

	start := time.Now()
	logger := logging.Logger()

	stageStart := time.Now()
	loader := snapshot.NewLoader(logger)
	table, err := loader.Load(cfg.Snapshot.Path)
	if err != nil {
		return fmt.Errorf("loading snapshot: %w", err)
	}
	if cfg.Snapshot.GazetteerPath != "" {
		gaz, err := snapshot.LoadGazetteer(cfg.Snapshot.GazetteerPath)
		if err != nil {
			return fmt.Errorf("loading gazetteer: %w", err)
		}
		loader.ApplyGazetteer(table, gaz)
	}
	metrics.StageDurationSeconds.WithLabelValues("load").Observe(time.Since(stageStart).Seconds())

	builder, err := graph.NewBuilder(cfg.ToGraphConfig(), logger)
	if err != nil {
		return err
	}
	g, err := builder.Build(ctx, table)
	if err != nil {
		return err
	}

	stageStart = time.Now()
	if err := writeSinks(ctx, cfg, g); err != nil {
		return err
	}
	metrics.StageDurationSeconds.WithLabelValues("export").Observe(time.Since(stageStart).Seconds())

	elapsed := time.Since(start)
	metrics.PipelineDuration.Observe(elapsed.Seconds())
	logging.Info().
		Str("run_id", g.Manifest.RunID).
		Int("records", g.Manifest.RecordCount).
		Int("vocabulary_size", g.Manifest.VocabularySize).
		Int("edges", len(g.Edges)).
		Dur("elapsed", elapsed).
		Msg("Build complete")
	return nil
}

// writeSinks writes the finished graph to every enabled sink. The first
// failure stops the run; sinks written earlier keep their output, which
// is safe because each sink is internally atomic per run.
func writeSinks(ctx context.Context, cfg *config.Config, g *graph.Graph) error {
	logger := logging.Logger()

	if path := cfg.Export.JSONPath; path != "" {
		if err := export.WriteJSON(path, g.Neighbors); err != nil {
			metrics.RecordExportError("json")
			return fmt.Errorf("writing neighbors JSON: %w", err)
		}
		logging.Info().Str("path", path).Msg("Wrote neighbors JSON")
	}

	if dir := cfg.Export.StorePath; dir != "" {
		store, err := export.OpenStore(dir, logger)
		if err != nil {
			metrics.RecordExportError("store")
			return fmt.Errorf("opening graph store: %w", err)
		}
		err = store.WriteGraph(ctx, g.Neighbors, g.Manifest)
		if closeErr := store.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			metrics.RecordExportError("store")
			return fmt.Errorf("writing graph store: %w", err)
		}
		logging.Info().Str("path", dir).Msg("Wrote graph store")
	}

	if path := cfg.Export.DatabasePath; path != "" {
		db, err := database.New(path)
		if err != nil {
			metrics.RecordExportError("database")
			return fmt.Errorf("opening run database: %w", err)
		}
		err = db.WriteRun(ctx, g.Manifest, g.Edges)
		if closeErr := db.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			metrics.RecordExportError("database")
			return fmt.Errorf("writing run database: %w", err)
		}
		logging.Info().Str("path", path).Int("edges", len(g.Edges)).Msg("Wrote run history database")
	}

	return nil
}

// acquireBuildLock takes an exclusive flock in the sink directory and
// returns the unlock function. A held lock means another build is
// mid-write; failing fast beats interleaving output. With every sink
// disabled there is nothing to guard and the lock is skipped.
func acquireBuildLock(cfg *config.Config) (func(), error) {
	path := buildLockPath(cfg)
	if path == "" {
		return func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating sink directory: %w", err)
	}

	l := flock.New(path)
	locked, err := l.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquiring build lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("another build is in progress (lock: %s)", path)
	}
	return func() { _ = l.Unlock() }, nil
}

// buildLockPath places the lock file next to the first enabled sink so
// that builds configured for the same outputs contend on the same lock.
func buildLockPath(cfg *config.Config) string {
	switch {
	case cfg.Export.JSONPath != "":
		return filepath.Join(filepath.Dir(cfg.Export.JSONPath), buildLockName)
	case cfg.Export.StorePath != "":
		return filepath.Join(filepath.Dir(cfg.Export.StorePath), buildLockName)
	case cfg.Export.DatabasePath != "":
		return filepath.Join(filepath.Dir(cfg.Export.DatabasePath), buildLockName)
	default:
		return ""
	}
}
