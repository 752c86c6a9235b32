// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tomtom215/affinitas/internal/config"
	"github.com/tomtom215/affinitas/internal/logging"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:          "affinitas",
	Short:        "Affinitas — similarity graphs over cultural heritage collections",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `Affinitas builds a weighted similarity graph over a collection snapshot:
each record gets a ranked list of its most similar neighbors, scored by
fusing text (TF-IDF cosine), temporal, and spatial proximity channels.

Build once, then serve the stored graph over a read-only HTTP API.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "",
		"Path to a YAML config file (overrides the default search paths)")
}

// Execute is called by main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves configuration for a command run and initializes
// the global logger from it. The --config flag is routed through the
// config package's own path environment variable so flag, env, and
// search-path resolution stay in one place.
func loadConfig() (*config.Config, error) {
	if flagConfig != "" {
		if _, err := os.Stat(flagConfig); err != nil {
			return nil, fmt.Errorf("config file %s: %w", flagConfig, err)
		}
		if err := os.Setenv(config.ConfigPathEnvVar, flagConfig); err != nil {
			return nil, fmt.Errorf("setting config path: %w", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	return cfg, nil
}
