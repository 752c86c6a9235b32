// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package graph

import "fmt"

// ChannelWeights holds the fusion weight of every similarity channel.
// Weights are applied as-is during fusion, so the exported fused score
// is always the literal weighted sum of the channel scores; callers
// that want weights summing to one can rescale with Normalize first.
type ChannelWeights struct {
	// Text weights the TF-IDF cosine channel.
	// Default: 0.5.
	Text float64 `yaml:"text" json:"text"`

	// Date weights the temporal proximity channel.
	// Default: 0.2.
	Date float64 `yaml:"date" json:"date"`

	// Place weights the spatial proximity channel.
	// Default: 0.2.
	Place float64 `yaml:"place" json:"place"`

	// Profile weights the reserved visitor-profile channel. No profile
	// kernel exists yet, so this weight contributes nothing to fused
	// scores until one does.
	// Default: 0.1.
	Profile float64 `yaml:"profile" json:"profile"`
}

// Sum returns the total of all channel weights.
func (w ChannelWeights) Sum() float64 {
	return w.Text + w.Date + w.Place + w.Profile
}

// Normalize returns a copy of the weights rescaled to sum to one.
// All-zero weights come back as an equal split across the four
// channels.
func (w ChannelWeights) Normalize() ChannelWeights {
	sum := w.Sum()
	if sum == 0 {
		const equalWeight = 1.0 / 4.0
		return ChannelWeights{
			Text:    equalWeight,
			Date:    equalWeight,
			Place:   equalWeight,
			Profile: equalWeight,
		}
	}
	return ChannelWeights{
		Text:    w.Text / sum,
		Date:    w.Date / sum,
		Place:   w.Place / sum,
		Profile: w.Profile / sum,
	}
}

// ToMap returns the weights keyed by channel name, for run manifests
// and diagnostics.
func (w ChannelWeights) ToMap() map[string]float64 {
	return map[string]float64{
		ChannelText:    w.Text,
		ChannelDate:    w.Date,
		ChannelPlace:   w.Place,
		ChannelProfile: w.Profile,
	}
}

// Config controls graph construction: channel weights, neighbor list
// size, and the kernel parameters of the three similarity channels.
type Config struct {
	// Weights are the per-channel fusion weights.
	Weights ChannelWeights `yaml:"weights" json:"weights"`

	// TopK is the maximum number of neighbors kept per record. The
	// effective list length is min(TopK, N-1) for a corpus of N records.
	// Default: 50.
	TopK int `yaml:"top_k" json:"top_k"`

	// BandwidthYears is the e-folding distance of the temporal decay
	// kernel: a gap of BandwidthYears years scores 1/e.
	// Default: 25.
	BandwidthYears float64 `yaml:"bandwidth_years" json:"bandwidth_years"`

	// SigmaKm is the e-folding distance of the spatial decay kernel: a
	// great-circle distance of SigmaKm kilometers scores 1/e.
	// Default: 400.
	SigmaKm float64 `yaml:"sigma_km" json:"sigma_km"`

	// MaxVocabulary caps the TF-IDF vocabulary size. When the corpus
	// yields more eligible terms, the most frequent ones are kept.
	// Default: 5000.
	MaxVocabulary int `yaml:"max_vocabulary" json:"max_vocabulary"`

	// MinDocFreq is the minimum number of documents a term must appear
	// in to enter the vocabulary. If no term qualifies, the fit is
	// retried once with a threshold of 1.
	// Default: 2.
	MinDocFreq int `yaml:"min_doc_freq" json:"min_doc_freq"`
}

// DefaultConfig returns the graph configuration used when no overrides
// are supplied.
func DefaultConfig() *Config {
	return &Config{
		Weights: ChannelWeights{
			Text:    0.5,
			Date:    0.2,
			Place:   0.2,
			Profile: 0.1,
		},
		TopK:           50,
		BandwidthYears: 25,
		SigmaKm:        400,
		MaxVocabulary:  5000,
		MinDocFreq:     2,
	}
}

// Validate checks the configuration for values that would make graph
// construction meaningless or divide by zero.
func (c *Config) Validate() error {
	if c.Weights.Text < 0 {
		return fmt.Errorf("weights.text must be non-negative, got %v", c.Weights.Text)
	}
	if c.Weights.Date < 0 {
		return fmt.Errorf("weights.date must be non-negative, got %v", c.Weights.Date)
	}
	if c.Weights.Place < 0 {
		return fmt.Errorf("weights.place must be non-negative, got %v", c.Weights.Place)
	}
	if c.Weights.Profile < 0 {
		return fmt.Errorf("weights.profile must be non-negative, got %v", c.Weights.Profile)
	}
	if c.Weights.Sum() == 0 {
		return fmt.Errorf("weights must not all be zero")
	}
	if c.TopK <= 0 {
		return fmt.Errorf("top_k must be positive, got %d", c.TopK)
	}
	if c.BandwidthYears <= 0 {
		return fmt.Errorf("bandwidth_years must be positive, got %v", c.BandwidthYears)
	}
	if c.SigmaKm <= 0 {
		return fmt.Errorf("sigma_km must be positive, got %v", c.SigmaKm)
	}
	if c.MaxVocabulary <= 0 {
		return fmt.Errorf("max_vocabulary must be positive, got %d", c.MaxVocabulary)
	}
	if c.MinDocFreq <= 0 {
		return fmt.Errorf("min_doc_freq must be positive, got %d", c.MinDocFreq)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
