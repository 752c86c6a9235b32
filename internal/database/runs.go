// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tomtom215/affinitas/internal/logging"
	"github.com/tomtom215/affinitas/internal/models"
)

// WriteRun atomically persists one pipeline run: its manifest row and all
// of its edge rows. Either everything is committed or nothing is; a failed
// export never leaves a run without its edges.
func (db *DB) WriteRun(ctx context.Context, manifest models.RunManifest, edges []models.Edge) (err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// Ensure transaction is finalized
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				logging.Error().
					Err(rbErr).
					AnErr("original_error", err).
					Msg("Transaction rollback failed")
			}
		}
	}()

	_, err = tx.ExecContext(ctx, `INSERT INTO runs (
		run_id, created_at, snapshot_path, snapshot_sha256,
		record_count, vocabulary_size, top_k,
		weight_text, weight_date, weight_place, weight_profile,
		bandwidth_years, sigma_km, max_vocabulary, min_doc_freq
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		manifest.RunID, manifest.CreatedAt, manifest.SnapshotPath, manifest.SnapshotSHA256,
		manifest.RecordCount, manifest.VocabularySize, manifest.TopK,
		manifest.Weights["text"], manifest.Weights["date"], manifest.Weights["place"], manifest.Weights["profile"],
		manifest.BandwidthYears, manifest.SigmaKM, manifest.MaxVocabulary, manifest.MinDocFreq,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", manifest.RunID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO edges (
		run_id, source_id, target_id, score, s_text, s_date, s_place
	) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare edge insert: %w", err)
	}
	defer func() {
		if closeErr := stmt.Close(); closeErr != nil {
			logging.Warn().Err(closeErr).Msg("Failed to close prepared statement")
		}
	}()

	for i := range edges {
		edge := &edges[i]
		if _, execErr := stmt.ExecContext(ctx,
			edge.RunID, edge.SourceID, edge.TargetID,
			edge.Score, edge.TextScore, edge.DateScore, edge.PlaceScore,
		); execErr != nil {
			err = fmt.Errorf("failed to insert edge %d (%s -> %s): %w", i, edge.SourceID, edge.TargetID, execErr)
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run %s: %w", manifest.RunID, err)
	}

	logging.Info().
		Str("run_id", manifest.RunID).
		Int("edges", len(edges)).
		Msg("Run persisted to database")

	return nil
}

// LatestRun returns the manifest of the most recent run, or ErrNotFound
// if no run has been persisted yet.
func (db *DB) LatestRun(ctx context.Context) (*models.RunManifest, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	row := db.conn.QueryRowContext(ctx, selectRunColumns+` FROM runs
		ORDER BY created_at DESC, run_id DESC LIMIT 1`)
	return scanRun(row)
}

// Run returns the manifest of the given run, or ErrNotFound.
func (db *DB) Run(ctx context.Context, runID string) (*models.RunManifest, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	row := db.conn.QueryRowContext(ctx, selectRunColumns+` FROM runs WHERE run_id = ?`, runID)
	return scanRun(row)
}

// NeighborEdges returns the stored edges for one source record within a
// run, highest score first. Ties are broken by target id to keep the
// ordering deterministic.
func (db *DB) NeighborEdges(ctx context.Context, runID, sourceID string) ([]models.Edge, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `SELECT
		run_id, source_id, target_id, score, s_text, s_date, s_place
		FROM edges WHERE run_id = ? AND source_id = ?
		ORDER BY score DESC, target_id ASC`, runID, sourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query edges: %w", err)
	}
	defer closeQuietly(rows)

	edges := make([]models.Edge, 0)
	for rows.Next() {
		var e models.Edge
		if err := rows.Scan(&e.RunID, &e.SourceID, &e.TargetID,
			&e.Score, &e.TextScore, &e.DateScore, &e.PlaceScore); err != nil {
			return nil, fmt.Errorf("failed to scan edge: %w", err)
		}
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("edge iteration failed: %w", err)
	}

	return edges, nil
}

// GetRowCounts returns the number of persisted runs and edges.
func (db *DB) GetRowCounts(ctx context.Context) (runs int64, edges int64, err error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	err = db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM runs").Scan(&runs)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count runs: %w", err)
	}

	err = db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM edges").Scan(&edges)
	if err != nil {
		return runs, 0, fmt.Errorf("failed to count edges: %w", err)
	}

	return runs, edges, nil
}

const selectRunColumns = `SELECT
	run_id, created_at, snapshot_path, snapshot_sha256,
	record_count, vocabulary_size, top_k,
	weight_text, weight_date, weight_place, weight_profile,
	bandwidth_years, sigma_km, max_vocabulary, min_doc_freq`

// scanRun reads one runs row back into a manifest, rebuilding the weights
// map from the flattened columns.
func scanRun(row *sql.Row) (*models.RunManifest, error) {
	var m models.RunManifest
	var wText, wDate, wPlace, wProfile float64

	err := row.Scan(&m.RunID, &m.CreatedAt, &m.SnapshotPath, &m.SnapshotSHA256,
		&m.RecordCount, &m.VocabularySize, &m.TopK,
		&wText, &wDate, &wPlace, &wProfile,
		&m.BandwidthYears, &m.SigmaKM, &m.MaxVocabulary, &m.MinDocFreq)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	m.Weights = map[string]float64{
		"text":    wText,
		"date":    wDate,
		"place":   wPlace,
		"profile": wProfile,
	}

	return &m, nil
}
