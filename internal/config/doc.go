// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

/*
Package config provides centralized configuration management for Affinitas.

Configuration is loaded with Koanf v2 in three layers with increasing
priority: built-in defaults, an optional YAML config file, and
AFFINITAS_-prefixed environment variables. The same Config feeds both the
build command (snapshot paths, graph parameters, export sinks) and the
serve command (store path, HTTP server settings).

# Configuration Sources

The package reads configuration from, in order of priority:
  - Environment variables (highest priority)
  - YAML config file (config.yaml, config.yml, /etc/affinitas/config.yaml,
    /etc/affinitas/config.yml, or the path in AFFINITAS_CONFIG_PATH)
  - Built-in defaults

# Environment Variables

Snapshot (SnapshotConfig):
  - AFFINITAS_SNAPSHOT_PATH: Collection snapshot to load (default: data/records.json)
  - AFFINITAS_GAZETTEER_PATH: Optional place-name gazetteer; empty disables backfill

Graph (GraphConfig):
  - AFFINITAS_WEIGHT_TEXT: Text channel fusion weight (default: 0.5)
  - AFFINITAS_WEIGHT_DATE: Date channel fusion weight (default: 0.2)
  - AFFINITAS_WEIGHT_PLACE: Place channel fusion weight (default: 0.2)
  - AFFINITAS_WEIGHT_PROFILE: Reserved profile channel weight (default: 0.1)
  - AFFINITAS_TOP_K: Neighbors kept per record (default: 50)
  - AFFINITAS_BANDWIDTH_YEARS: Temporal decay bandwidth (default: 25)
  - AFFINITAS_SIGMA_KM: Spatial decay bandwidth (default: 400)
  - AFFINITAS_MAX_VOCABULARY: TF-IDF vocabulary cap (default: 5000)
  - AFFINITAS_MIN_DOC_FREQ: Minimum document frequency (default: 2)

Export (ExportConfig):
  - AFFINITAS_JSON_PATH: neighbors.json destination (default: data/neighbors.json)
  - AFFINITAS_STORE_PATH: Badger store directory (default: data/graph.db)
  - AFFINITAS_DATABASE_PATH: DuckDB run history file (default: data/affinitas.duckdb)

Setting an export path to the empty string disables that sink; at least
one sink must remain enabled.

Server (ServerConfig):
  - AFFINITAS_HTTP_HOST: Bind address (default: 0.0.0.0)
  - AFFINITAS_HTTP_PORT: Listen port (default: 8080)
  - AFFINITAS_HTTP_TIMEOUT: Request timeout (default: 30s)
  - AFFINITAS_CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - AFFINITAS_RATE_LIMIT: Requests per client IP per minute, 0 disables (default: 300)

Logging (LoggingConfig):
  - AFFINITAS_LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - AFFINITAS_LOG_FORMAT: json or console (default: json)
  - AFFINITAS_LOG_CALLER: Include caller file:line (default: false)

Metrics (MetricsConfig):
  - AFFINITAS_METRICS_ENABLED: Expose /metrics (default: true)

# Usage Example

Basic configuration loading:

	import "github.com/tomtom215/affinitas/internal/config"

	cfg, err := config.Load()
	if err != nil {
	    log.Fatalf("Failed to load config: %v", err)
	}

	fmt.Printf("Snapshot: %s\n", cfg.Snapshot.Path)
	fmt.Printf("Serving on %s:%d\n", cfg.Server.Host, cfg.Server.Port)

Testing with custom configuration:

	os.Setenv("AFFINITAS_TOP_K", "10")
	os.Setenv("AFFINITAS_LOG_LEVEL", "debug")

	cfg, err := config.Load()
	// Use cfg for testing

# Validation

Load() validates the configuration before returning it:

  - Required fields: AFFINITAS_SNAPSHOT_PATH, at least one export sink
  - Weights: non-negative, not all zero
  - Numeric ranges: AFFINITAS_TOP_K (1-10000), AFFINITAS_HTTP_PORT (1-65535),
    AFFINITAS_MAX_VOCABULARY (1-1000000)
  - Positive decay bandwidths: AFFINITAS_BANDWIDTH_YEARS, AFFINITAS_SIGMA_KM
  - Enumerations: AFFINITAS_LOG_LEVEL, AFFINITAS_LOG_FORMAT

# Thread Safety

The Config struct is immutable after Load() returns, making it safe for
concurrent access from multiple goroutines without synchronization.
*/
package config
