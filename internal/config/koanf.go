// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/affinitas/config.yaml",
	"/etc/affinitas/config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "AFFINITAS_CONFIG_PATH"

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Snapshot: SnapshotConfig{
			Path:          "data/records.json",
			GazetteerPath: "", // Gazetteer backfill is opt-in
		},
		Graph: GraphConfig{
			Weights: WeightsConfig{
				Text:    0.5,
				Date:    0.2,
				Place:   0.2,
				Profile: 0.1,
			},
			TopK:           50,
			BandwidthYears: 25,
			SigmaKM:        400,
			MaxVocabulary:  5000,
			MinDocFreq:     2,
		},
		Export: ExportConfig{
			JSONPath:     "data/neighbors.json",
			StorePath:    "data/graph.db",
			DatabasePath: "data/affinitas.duckdb",
		},
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8080,
			Timeout:     30 * time.Second,
			CORSOrigins: []string{"*"},
			RateLimit:   300,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
//
// This function provides:
//   - Type-safe configuration unmarshaling
//   - Clear precedence: ENV > File > Defaults
//   - Support for nested configuration via koanf struct tags
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	defaults := defaultConfig()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath := findConfigFile()
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// Transform environment variable names to koanf paths:
	// AFFINITAS_TOP_K -> graph.top_k
	// AFFINITAS_SNAPSHOT_PATH -> snapshot.path
	envProvider := env.Provider("", ".", envTransformFunc)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Post-process slice fields from comma-separated strings
	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	// Unmarshal into Config struct
	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	// Check environment variable first
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	// Search default paths
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// This is necessary because env vars come in as strings, but the config expects slices.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		if val == nil {
			continue
		}

		// If it's already a slice (from YAML file), skip
		if _, ok := val.([]interface{}); ok {
			continue
		}
		if _, ok := val.([]string); ok {
			continue
		}

		// If it's a string, split by comma
		if strVal, ok := val.(string); ok {
			if strVal == "" {
				continue
			}
			parts := strings.Split(strVal, ",")
			trimmed := make([]string, 0, len(parts))
			for _, p := range parts {
				p = strings.TrimSpace(p)
				if p != "" {
					trimmed = append(trimmed, p)
				}
			}
			if len(trimmed) > 0 {
				if err := k.Set(path, trimmed); err != nil {
					return fmt.Errorf("failed to set %s: %w", path, err)
				}
			}
		}
	}
	return nil
}

// envMappings maps AFFINITAS_-prefixed environment variable names
// (lowercased) to koanf config paths. An explicit table rather than a
// mechanical transform because section keys themselves contain
// underscores (graph.top_k, snapshot.gazetteer_path).
var envMappings = map[string]string{
	// Snapshot mappings
	"affinitas_snapshot_path":  "snapshot.path",
	"affinitas_gazetteer_path": "snapshot.gazetteer_path",

	// Graph mappings
	"affinitas_weight_text":     "graph.weights.text",
	"affinitas_weight_date":     "graph.weights.date",
	"affinitas_weight_place":    "graph.weights.place",
	"affinitas_weight_profile":  "graph.weights.profile",
	"affinitas_top_k":           "graph.top_k",
	"affinitas_bandwidth_years": "graph.bandwidth_years",
	"affinitas_sigma_km":        "graph.sigma_km",
	"affinitas_max_vocabulary":  "graph.max_vocabulary",
	"affinitas_min_doc_freq":    "graph.min_doc_freq",

	// Export mappings
	"affinitas_json_path":     "export.json_path",
	"affinitas_store_path":    "export.store_path",
	"affinitas_database_path": "export.database_path",

	// Server mappings
	"affinitas_http_host":    "server.host",
	"affinitas_http_port":    "server.port",
	"affinitas_http_timeout": "server.timeout",
	"affinitas_cors_origins": "server.cors_origins",
	"affinitas_rate_limit":   "server.rate_limit",

	// Logging mappings
	"affinitas_log_level":  "logging.level",
	"affinitas_log_format": "logging.format",
	"affinitas_log_caller": "logging.caller",

	// Metrics mappings
	"affinitas_metrics_enabled": "metrics.enabled",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - AFFINITAS_SNAPSHOT_PATH -> snapshot.path
//   - AFFINITAS_WEIGHT_TEXT -> graph.weights.text
//   - AFFINITAS_TOP_K -> graph.top_k
//   - AFFINITAS_HTTP_PORT -> server.port
func envTransformFunc(key string) string {
	key = strings.ToLower(key)

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	// This prevents random environment variables from polluting config
	return ""
}

// WatchConfigFile sets up a file watcher for hot-reload capability.
// Note: The caller is responsible for mutex protection when accessing
// configuration during reloads.
func WatchConfigFile(path string, callback func()) error {
	provider := file.Provider(path)

	// Start watching the file for changes
	return provider.Watch(func(event interface{}, err error) {
		if err != nil {
			return
		}
		callback()
	})
}
