// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/affinitas/internal/api"
	"github.com/tomtom215/affinitas/internal/export"
	"github.com/tomtom215/affinitas/internal/logging"
	"github.com/tomtom215/affinitas/internal/metrics"
	"github.com/tomtom215/affinitas/internal/serve"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the stored similarity graph over HTTP",
	Long: `Serve opens the Badger graph store written by a previous build and
answers neighbor queries over a read-only HTTP API until SIGINT or
SIGTERM. The server and a store maintenance ticker run under a
supervisor that restarts either on failure.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)

	if cfg.Export.StorePath == "" {
		return errors.New("serve requires export.store_path; there is no graph store to read")
	}

	logger := logging.Logger()
	store, err := export.OpenStore(cfg.Export.StorePath, logger)
	if err != nil {
		return fmt.Errorf("opening graph store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logging.Error().Err(err).Msg("Closing graph store")
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	// Surface an empty store once at startup instead of only as
	// per-request 404s.
	switch manifest, err := store.LatestManifest(ctx); {
	case err == nil:
		logging.Info().
			Str("run_id", manifest.RunID).
			Time("created_at", manifest.CreatedAt).
			Int("records", manifest.RecordCount).
			Msg("Serving graph")
	case errors.Is(err, export.ErrNotFound):
		logging.Warn().Msg("Store holds no graph yet; queries will 404 until a build runs")
	default:
		return fmt.Errorf("reading run manifest: %w", err)
	}

	handler := api.NewHandler(store, cfg, version)
	router := api.NewRouter(handler, cfg)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.SetupChi(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	tree, err := serve.NewTree(logging.NewSlogLogger(), serve.DefaultTreeConfig())
	if err != nil {
		return fmt.Errorf("creating supervisor: %w", err)
	}
	tree.AddAPIService(serve.NewHTTPService(server, 10*time.Second))
	tree.AddStoreService(serve.NewGCService(store, 5*time.Minute))

	logging.Info().Str("addr", server.Addr).Bool("metrics", cfg.Metrics.Enabled).Msg("Starting API server")
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor: %w", err)
	}

	if unstopped, err := tree.UnstoppedServiceReport(); err == nil && len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
		}
	}

	logging.Info().Msg("Server stopped gracefully")
	return nil
}
