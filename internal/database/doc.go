// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

// Package database provides the relational sink for pipeline runs.
//
// # Overview
//
// While the Badger store holds the serve-mode view of the latest graph,
// this package keeps the full history of runs as flat rows in DuckDB, so
// curators can compare runs, diff edge scores after reweighting, or pull
// the graph into notebooks with plain SQL.
//
// # Schema
//
// Two tables, created on open with CREATE TABLE IF NOT EXISTS:
//
//	runs(run_id PRIMARY KEY, created_at, snapshot_path, snapshot_sha256,
//	     record_count, vocabulary_size, top_k,
//	     weight_text, weight_date, weight_place, weight_profile,
//	     bandwidth_years, sigma_km, max_vocabulary, min_doc_freq)
//
//	edges(run_id, source_id, target_id, score, s_text, s_date, s_place)
//
// Each record's top-K list becomes one edges row per neighbor; the list
// order is recoverable by sorting on score DESC. Channel scores are the
// post-normalization values, stored even when exactly 0.
//
// # Write Semantics
//
// WriteRun persists the run row and all edge rows inside a single
// transaction. A run is either fully present or absent; readers never see
// a manifest without its edges. Runs are append-only — re-running the
// pipeline adds a new run_id rather than rewriting history.
//
// # Database Technology
//
// DuckDB (github.com/duckdb/duckdb-go/v2, CGO-based): OLAP-optimized,
// single-file, and queryable from Python/R tooling without a server. The
// connection checkpoints the WAL on open and close so the file is always
// replayable.
//
// # Usage
//
//	db, err := database.New("data/affinitas.duckdb")
//	if err != nil {
//	    return err
//	}
//	defer db.Close()
//
//	if err := db.WriteRun(ctx, graph.Manifest, graph.Edges); err != nil {
//	    return err
//	}
package database
