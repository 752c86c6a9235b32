// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

// Package main is the Affinitas command line entry point.
//
// Affinitas computes weighted multi-modal similarity graphs over
// cultural heritage collections: for every record in a snapshot it
// ranks the most similar other records by fusing a TF-IDF text
// channel, a temporal proximity channel, and a spatial proximity
// channel into one score, keeping the per-channel breakdown alongside.
//
// # Commands
//
//	affinitas build    run the pipeline once and write all enabled sinks
//	affinitas serve    serve the stored graph over HTTP until SIGINT/SIGTERM
//	affinitas version  print build metadata
//
// # Configuration
//
// Configuration is loaded via Koanf with layered sources (highest
// priority wins):
//   - AFFINITAS_-prefixed environment variables
//   - YAML config file (--config, AFFINITAS_CONFIG_PATH, or default
//     search paths)
//   - Built-in defaults
//
// # Outputs
//
// A build run writes up to three sinks, each individually disabled by
// setting its path to the empty string:
//   - export.json_path: the neighbors.json document
//   - export.store_path: the Badger store that serve mode reads
//   - export.database_path: the DuckDB run history for SQL analysis
//
// # Signal Handling
//
// Both long-running commands shut down on SIGINT and SIGTERM. A build
// finishes its current pipeline stage and exits without writing sinks;
// serve drains in-flight requests for up to 10 seconds.
package main

func main() {
	Execute()
}
