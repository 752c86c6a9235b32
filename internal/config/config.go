// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package config

import (
	"time"

	"github.com/tomtom215/affinitas/internal/graph"
)

// Config is the root configuration structure for Affinitas.
// Values are loaded in three layers with increasing priority:
// built-in defaults, an optional YAML config file, and
// AFFINITAS_-prefixed environment variables.
type Config struct {
	Snapshot SnapshotConfig `koanf:"snapshot"`
	Graph    GraphConfig    `koanf:"graph"`
	Export   ExportConfig   `koanf:"export"`
	Server   ServerConfig   `koanf:"server"`
	Logging  LoggingConfig  `koanf:"logging"`
	Metrics  MetricsConfig  `koanf:"metrics"`
}

// SnapshotConfig holds the input data sources for a build run.
type SnapshotConfig struct {
	// Path is the collection snapshot to load (JSON array of records).
	// Default: data/records.json
	Path string `koanf:"path"`

	// GazetteerPath is an optional place-name to coordinate lookup table.
	// When set, records with a place name but no coordinates are
	// backfilled from it. Empty disables gazetteer backfill.
	// Default: "" (disabled)
	GazetteerPath string `koanf:"gazetteer_path"`
}

// GraphConfig holds graph construction parameters: channel weights,
// neighbor list size, and the kernel parameters of the similarity
// channels. It mirrors graph.Config so the whole surface is reachable
// from YAML and environment variables.
type GraphConfig struct {
	Weights WeightsConfig `koanf:"weights"`

	// TopK is the maximum number of neighbors kept per record.
	// Default: 50
	TopK int `koanf:"top_k"`

	// BandwidthYears is the e-folding distance of the temporal decay
	// kernel in years.
	// Default: 25
	BandwidthYears float64 `koanf:"bandwidth_years"`

	// SigmaKM is the e-folding distance of the spatial decay kernel in
	// kilometers.
	// Default: 400
	SigmaKM float64 `koanf:"sigma_km"`

	// MaxVocabulary caps the TF-IDF vocabulary size.
	// Default: 5000
	MaxVocabulary int `koanf:"max_vocabulary"`

	// MinDocFreq is the minimum document frequency for a term to enter
	// the vocabulary.
	// Default: 2
	MinDocFreq int `koanf:"min_doc_freq"`
}

// WeightsConfig holds the per-channel fusion weights.
type WeightsConfig struct {
	Text    float64 `koanf:"text"`    // TF-IDF cosine channel (default 0.5)
	Date    float64 `koanf:"date"`    // temporal proximity channel (default 0.2)
	Place   float64 `koanf:"place"`   // spatial proximity channel (default 0.2)
	Profile float64 `koanf:"profile"` // reserved visitor-profile channel (default 0.1)
}

// ExportConfig holds the output sinks of a build run. Setting a path
// to the empty string disables that sink.
type ExportConfig struct {
	// JSONPath is the neighbors.json export destination.
	// Default: data/neighbors.json
	JSONPath string `koanf:"json_path"`

	// StorePath is the Badger store directory that the serve command
	// reads neighbor lists from.
	// Default: data/graph.db
	StorePath string `koanf:"store_path"`

	// DatabasePath is the DuckDB file that keeps the full run history
	// for SQL analysis. Unlike the Badger store, runs accumulate here.
	// Default: data/affinitas.duckdb
	DatabasePath string `koanf:"database_path"`
}

// ServerConfig holds HTTP server settings for the serve command.
type ServerConfig struct {
	// Host is the listen address.
	// Default: 0.0.0.0
	Host string `koanf:"host"`

	// Port is the listen port.
	// Default: 8080
	Port int `koanf:"port"`

	// Timeout bounds request read and write durations.
	// Default: 30s
	Timeout time.Duration `koanf:"timeout"`

	// CORSOrigins lists the origins allowed to call the API. The API is
	// read-only, so the wildcard default is safe.
	// Default: ["*"]
	CORSOrigins []string `koanf:"cors_origins"`

	// RateLimit is the maximum number of requests per client IP per
	// minute. Zero disables rate limiting.
	// Default: 300
	RateLimit int `koanf:"rate_limit"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level"`

	// Format is the output format: json or console.
	// JSON is recommended for production (structured, machine-parseable).
	// Console is human-readable for development.
	// Default: json
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	// Adds slight performance overhead.
	// Default: false
	Caller bool `koanf:"caller"`
}

// MetricsConfig holds Prometheus metrics settings.
type MetricsConfig struct {
	// Enabled exposes /metrics on the API server.
	// Default: true
	Enabled bool `koanf:"enabled"`
}

// ToGraphConfig converts the configuration's graph section into the
// graph package's Config, ready to hand to graph.NewBuilder.
func (c *Config) ToGraphConfig() *graph.Config {
	return &graph.Config{
		Weights: graph.ChannelWeights{
			Text:    c.Graph.Weights.Text,
			Date:    c.Graph.Weights.Date,
			Place:   c.Graph.Weights.Place,
			Profile: c.Graph.Weights.Profile,
		},
		TopK:           c.Graph.TopK,
		BandwidthYears: c.Graph.BandwidthYears,
		SigmaKm:        c.Graph.SigmaKM,
		MaxVocabulary:  c.Graph.MaxVocabulary,
		MinDocFreq:     c.Graph.MinDocFreq,
	}
}
