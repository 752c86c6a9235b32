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
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"github.com/tomtom215/affinitas/internal/logging"
)

// ErrNotFound is returned when a requested run does not exist.
var ErrNotFound = errors.New("not found in database")

// DB wraps the DuckDB connection holding the relational edge and run tables.
type DB struct {
	conn *sql.DB
	path string
}

// New opens (or creates) the DuckDB database at path and initializes the
// schema. Use ":memory:" for an ephemeral database in tests.
func New(path string) (*DB, error) {
	// Ensure parent directory exists for database file.
	// Use 0750 permissions (owner: rwx, group: rx, other: none) per gosec G301.
	dbDir := filepath.Dir(path)
	if dbDir != "" && dbDir != "." {
		if err := os.MkdirAll(dbDir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dbDir, err)
		}
	}

	// Disable auto-install/auto-load to prevent hangs in restricted network
	// environments; this schema needs no extensions.
	connStr := fmt.Sprintf("%s?access_mode=read_write&threads=%d&autoinstall_known_extensions=false&autoload_known_extensions=false",
		path, runtime.NumCPU())

	conn, err := sql.Open("duckdb", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db := &DB{
		conn: conn,
		path: path,
	}

	db.configureConnectionPool()

	if err := db.createSchema(); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Checkpoint after schema initialization to flush the WAL, so a crash
	// before the first run leaves a replayable file.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Checkpoint(ctx); err != nil {
		logging.Warn().Err(err).Msg("Failed to checkpoint after schema initialization")
	}

	return db, nil
}

// configureConnectionPool sets connection pool parameters.
func (db *DB) configureConnectionPool() {
	db.conn.SetMaxOpenConns(runtime.NumCPU())
	db.conn.SetMaxIdleConns(2)
	db.conn.SetConnMaxLifetime(time.Hour)
	db.conn.SetConnMaxIdleTime(5 * time.Minute)
}

// createSchema creates the run and edge tables and their indexes.
func (db *DB) createSchema() error {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	queries := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			created_at TIMESTAMP NOT NULL,
			snapshot_path TEXT NOT NULL,
			snapshot_sha256 TEXT NOT NULL,
			record_count INTEGER NOT NULL,
			vocabulary_size INTEGER NOT NULL,
			top_k INTEGER NOT NULL,
			weight_text DOUBLE NOT NULL,
			weight_date DOUBLE NOT NULL,
			weight_place DOUBLE NOT NULL,
			weight_profile DOUBLE NOT NULL,
			bandwidth_years DOUBLE NOT NULL,
			sigma_km DOUBLE NOT NULL,
			max_vocabulary INTEGER NOT NULL,
			min_doc_freq INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS edges (
			run_id TEXT NOT NULL,
			source_id TEXT NOT NULL,
			target_id TEXT NOT NULL,
			score DOUBLE NOT NULL,
			s_text DOUBLE NOT NULL,
			s_date DOUBLE NOT NULL,
			s_place DOUBLE NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_edges_run_source ON edges(run_id, source_id)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
	}

	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}

// Close checkpoints and closes the database connection. The checkpoint
// flushes the WAL to the main file so the next open needs no replay.
func (db *DB) Close() error {
	if db.conn == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.Checkpoint(ctx); err != nil {
		logging.Warn().Err(err).Msg("Failed to checkpoint database before close")
	}
	cancel()

	return db.conn.Close()
}

// Ping checks if the database connection is alive.
func (db *DB) Ping(ctx context.Context) error {
	if db.conn == nil {
		return fmt.Errorf("database connection is nil")
	}
	return db.conn.PingContext(ctx)
}

// Checkpoint forces a WAL checkpoint.
func (db *DB) Checkpoint(ctx context.Context) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if _, err := db.conn.ExecContext(ctx, "CHECKPOINT"); err != nil {
		return fmt.Errorf("checkpoint failed: %w", err)
	}
	return nil
}

// Path returns the database file path.
func (db *DB) Path() string {
	return db.path
}

// ensureContext creates a context with 30-second timeout if none provided.
func (db *DB) ensureContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		return context.WithTimeout(context.Background(), 30*time.Second)
	}

	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		return context.WithTimeout(ctx, 30*time.Second)
	}

	return ctx, func() {}
}

// closeQuietly closes a resource and explicitly ignores any error.
// Use this in error paths where Close() errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // Explicitly ignore error - cleanup is best-effort
	}
}
