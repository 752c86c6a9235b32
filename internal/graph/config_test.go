// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package graph

import (
	"math"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Weights.Text != 0.5 {
		t.Errorf("Weights.Text = %v, want 0.5", cfg.Weights.Text)
	}
	if cfg.Weights.Date != 0.2 {
		t.Errorf("Weights.Date = %v, want 0.2", cfg.Weights.Date)
	}
	if cfg.Weights.Place != 0.2 {
		t.Errorf("Weights.Place = %v, want 0.2", cfg.Weights.Place)
	}
	if cfg.Weights.Profile != 0.1 {
		t.Errorf("Weights.Profile = %v, want 0.1", cfg.Weights.Profile)
	}
	if cfg.TopK != 50 {
		t.Errorf("TopK = %d, want 50", cfg.TopK)
	}
	if cfg.BandwidthYears != 25 {
		t.Errorf("BandwidthYears = %v, want 25", cfg.BandwidthYears)
	}
	if cfg.SigmaKm != 400 {
		t.Errorf("SigmaKm = %v, want 400", cfg.SigmaKm)
	}
	if cfg.MaxVocabulary != 5000 {
		t.Errorf("MaxVocabulary = %d, want 5000", cfg.MaxVocabulary)
	}
	if cfg.MinDocFreq != 2 {
		t.Errorf("MinDocFreq = %d, want 2", cfg.MinDocFreq)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "default is valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "negative text weight",
			mutate:  func(c *Config) { c.Weights.Text = -0.1 },
			wantErr: "weights.text",
		},
		{
			name:    "negative profile weight",
			mutate:  func(c *Config) { c.Weights.Profile = -1 },
			wantErr: "weights.profile",
		},
		{
			name:    "all weights zero",
			mutate:  func(c *Config) { c.Weights = ChannelWeights{} },
			wantErr: "must not all be zero",
		},
		{
			name:    "zero top_k",
			mutate:  func(c *Config) { c.TopK = 0 },
			wantErr: "top_k must be positive",
		},
		{
			name:    "negative bandwidth",
			mutate:  func(c *Config) { c.BandwidthYears = -25 },
			wantErr: "bandwidth_years must be positive",
		},
		{
			name:    "zero sigma",
			mutate:  func(c *Config) { c.SigmaKm = 0 },
			wantErr: "sigma_km must be positive",
		},
		{
			name:    "zero max vocabulary",
			mutate:  func(c *Config) { c.MaxVocabulary = 0 },
			wantErr: "max_vocabulary must be positive",
		},
		{
			name:    "zero min doc freq",
			mutate:  func(c *Config) { c.MinDocFreq = 0 },
			wantErr: "min_doc_freq must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestConfigClone(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()

	clone.TopK = 10
	clone.Weights.Text = 0.9

	if cfg.TopK != 50 {
		t.Errorf("original TopK = %d after mutating clone, want 50", cfg.TopK)
	}
	if cfg.Weights.Text != 0.5 {
		t.Errorf("original Weights.Text = %v after mutating clone, want 0.5", cfg.Weights.Text)
	}
}

func TestChannelWeightsSum(t *testing.T) {
	w := ChannelWeights{Text: 0.5, Date: 0.2, Place: 0.2, Profile: 0.1}
	if got := w.Sum(); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("Sum() = %v, want 1.0", got)
	}
	if got := (ChannelWeights{}).Sum(); got != 0 {
		t.Errorf("zero weights Sum() = %v, want 0", got)
	}
}

func TestChannelWeightsToMap(t *testing.T) {
	w := ChannelWeights{Text: 0.5, Date: 0.2, Place: 0.2, Profile: 0.1}
	m := w.ToMap()

	if len(m) != 4 {
		t.Fatalf("len(ToMap()) = %d, want 4", len(m))
	}
	if m[ChannelText] != 0.5 {
		t.Errorf("ToMap()[text] = %v, want 0.5", m[ChannelText])
	}
	if m[ChannelProfile] != 0.1 {
		t.Errorf("ToMap()[profile] = %v, want 0.1", m[ChannelProfile])
	}
}

func TestChannelWeightsNormalize(t *testing.T) {
	tests := []struct {
		name    string
		weights ChannelWeights
	}{
		{
			name:    "already normalized",
			weights: ChannelWeights{Text: 0.5, Date: 0.2, Place: 0.2, Profile: 0.1},
		},
		{
			name:    "unequal weights",
			weights: ChannelWeights{Text: 3, Date: 2, Place: 1},
		},
		{
			name:    "all zeros returns equal weights",
			weights: ChannelWeights{},
		},
		{
			name:    "large values",
			weights: ChannelWeights{Text: 100, Date: 200, Place: 300, Profile: 400},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalized := tt.weights.Normalize()

			if sum := normalized.Sum(); math.Abs(sum-1.0) > 1e-9 {
				t.Errorf("normalized Sum() = %v, want ~1.0", sum)
			}
		})
	}
}

func TestChannelWeightsNormalizeProportions(t *testing.T) {
	w := ChannelWeights{Text: 3, Date: 2, Place: 1}
	normalized := w.Normalize()

	if normalized.Text != w.Text/w.Sum() {
		t.Errorf("Text = %v, want %v", normalized.Text, w.Text/w.Sum())
	}
	if normalized.Profile != 0 {
		t.Errorf("Profile = %v, want 0", normalized.Profile)
	}

	zero := ChannelWeights{}.Normalize()
	if zero.Text != 0.25 || zero.Date != 0.25 || zero.Place != 0.25 || zero.Profile != 0.25 {
		t.Errorf("zero-weight Normalize() = %+v, want equal 0.25 split", zero)
	}
}
