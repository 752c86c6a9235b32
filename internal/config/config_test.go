// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package config

import (
	"strings"
	"testing"
)

// TestValidate exercises the per-section validators directly
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "defaults pass",
			mutate:  func(c *Config) {},
			wantErr: "",
		},
		{
			name:    "missing snapshot path",
			mutate:  func(c *Config) { c.Snapshot.Path = "" },
			wantErr: "AFFINITAS_SNAPSHOT_PATH is required",
		},
		{
			name:    "negative text weight",
			mutate:  func(c *Config) { c.Graph.Weights.Text = -1 },
			wantErr: "AFFINITAS_WEIGHT_TEXT must be non-negative",
		},
		{
			name:    "negative profile weight",
			mutate:  func(c *Config) { c.Graph.Weights.Profile = -0.1 },
			wantErr: "AFFINITAS_WEIGHT_PROFILE must be non-negative",
		},
		{
			name: "all weights zero",
			mutate: func(c *Config) {
				c.Graph.Weights = WeightsConfig{}
			},
			wantErr: "must not all be zero",
		},
		{
			name:    "top_k too small",
			mutate:  func(c *Config) { c.Graph.TopK = 0 },
			wantErr: "AFFINITAS_TOP_K must be between",
		},
		{
			name:    "top_k too large",
			mutate:  func(c *Config) { c.Graph.TopK = 20000 },
			wantErr: "AFFINITAS_TOP_K must be between",
		},
		{
			name:    "zero bandwidth",
			mutate:  func(c *Config) { c.Graph.BandwidthYears = 0 },
			wantErr: "AFFINITAS_BANDWIDTH_YEARS must be positive",
		},
		{
			name:    "negative sigma",
			mutate:  func(c *Config) { c.Graph.SigmaKM = -400 },
			wantErr: "AFFINITAS_SIGMA_KM must be positive",
		},
		{
			name:    "zero max vocabulary",
			mutate:  func(c *Config) { c.Graph.MaxVocabulary = 0 },
			wantErr: "AFFINITAS_MAX_VOCABULARY must be between",
		},
		{
			name:    "zero min doc freq",
			mutate:  func(c *Config) { c.Graph.MinDocFreq = 0 },
			wantErr: "AFFINITAS_MIN_DOC_FREQ must be at least 1",
		},
		{
			name: "all sinks disabled",
			mutate: func(c *Config) {
				c.Export.JSONPath = ""
				c.Export.StorePath = ""
				c.Export.DatabasePath = ""
			},
			wantErr: "at least one export sink is required",
		},
		{
			name: "single sink is enough",
			mutate: func(c *Config) {
				c.Export.StorePath = ""
				c.Export.DatabasePath = ""
			},
			wantErr: "",
		},
		{
			name:    "port zero",
			mutate:  func(c *Config) { c.Server.Port = 0 },
			wantErr: "AFFINITAS_HTTP_PORT must be between 1 and 65535",
		},
		{
			name:    "port too large",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: "AFFINITAS_HTTP_PORT must be between 1 and 65535",
		},
		{
			name:    "timeout too short",
			mutate:  func(c *Config) { c.Server.Timeout = 0 },
			wantErr: "AFFINITAS_HTTP_TIMEOUT must be between",
		},
		{
			name:    "negative rate limit",
			mutate:  func(c *Config) { c.Server.RateLimit = -1 },
			wantErr: "AFFINITAS_RATE_LIMIT must be between",
		},
		{
			name:    "rate limit zero disables",
			mutate:  func(c *Config) { c.Server.RateLimit = 0 },
			wantErr: "",
		},
		{
			name:    "unknown log level",
			mutate:  func(c *Config) { c.Logging.Level = "loud" },
			wantErr: "AFFINITAS_LOG_LEVEL must be one of",
		},
		{
			name:    "unknown log format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "AFFINITAS_LOG_FORMAT must be one of",
		},
		{
			name:    "empty log format allowed",
			mutate:  func(c *Config) { c.Logging.Format = "" },
			wantErr: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

// TestToGraphConfig verifies the mapping into the graph package config
func TestToGraphConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.Graph.Weights.Text = 0.6
	cfg.Graph.Weights.Profile = 0
	cfg.Graph.TopK = 12
	cfg.Graph.BandwidthYears = 50
	cfg.Graph.SigmaKM = 200
	cfg.Graph.MaxVocabulary = 1000
	cfg.Graph.MinDocFreq = 3

	gcfg := cfg.ToGraphConfig()

	if gcfg.Weights.Text != 0.6 {
		t.Errorf("Weights.Text = %v, want 0.6", gcfg.Weights.Text)
	}
	if gcfg.Weights.Date != 0.2 {
		t.Errorf("Weights.Date = %v, want 0.2", gcfg.Weights.Date)
	}
	if gcfg.Weights.Profile != 0 {
		t.Errorf("Weights.Profile = %v, want 0", gcfg.Weights.Profile)
	}
	if gcfg.TopK != 12 {
		t.Errorf("TopK = %d, want 12", gcfg.TopK)
	}
	if gcfg.BandwidthYears != 50 {
		t.Errorf("BandwidthYears = %v, want 50", gcfg.BandwidthYears)
	}
	if gcfg.SigmaKm != 200 {
		t.Errorf("SigmaKm = %v, want 200", gcfg.SigmaKm)
	}
	if gcfg.MaxVocabulary != 1000 {
		t.Errorf("MaxVocabulary = %d, want 1000", gcfg.MaxVocabulary)
	}
	if gcfg.MinDocFreq != 3 {
		t.Errorf("MinDocFreq = %d, want 3", gcfg.MinDocFreq)
	}

	// The produced config must satisfy the graph package's own checks
	if err := gcfg.Validate(); err != nil {
		t.Errorf("ToGraphConfig().Validate() error = %v", err)
	}
}
