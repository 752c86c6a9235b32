// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package export

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/affinitas/internal/metrics"
	"github.com/tomtom215/affinitas/internal/models"
)

// Key prefixes for BadgerDB storage
const (
	neighborKeyPrefix = "neighbors:"
	manifestKeyPrefix = "manifest:"
	latestManifestKey = manifestKeyPrefix + "latest"
)

// ErrNotFound is returned when a record or manifest is absent from the
// store.
var ErrNotFound = errors.New("not found in graph store")

// Store is the BadgerDB-backed graph store. Build mode writes one
// complete graph per run; serve mode reads neighbor lists and manifests
// from it.
type Store struct {
	db     *badger.DB
	logger zerolog.Logger
}

// OpenStore opens (creating if needed) the graph store at dir.
func OpenStore(dir string, logger zerolog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening graph store %s: %w", dir, err)
	}
	return &Store{
		db:     db,
		logger: logger.With().Str("component", "store").Logger(),
	}, nil
}

// OpenStoreInMemory opens an ephemeral store. Used in tests and for
// serve mode dry runs.
func OpenStoreInMemory(logger zerolog.Logger) (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening in-memory graph store: %w", err)
	}
	return &Store{
		db:     db,
		logger: logger.With().Str("component", "store").Logger(),
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// WriteGraph replaces the stored neighbor lists with the given graph
// and records its manifest. All neighbor keys from prior runs are
// dropped first; the latest-manifest pointer is rewritten only after
// every neighbor list is flushed, so a reader never resolves a manifest
// whose lists are not fully present.
func (s *Store) WriteGraph(ctx context.Context, neighbors map[string][]models.NeighborEntry, manifest models.RunManifest) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.db.DropPrefix([]byte(neighborKeyPrefix)); err != nil {
		return fmt.Errorf("dropping stale neighbor lists: %w", err)
	}

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	entriesWritten := 0
	for id, entries := range neighbors {
		data, err := json.Marshal(entries)
		if err != nil {
			return fmt.Errorf("marshal neighbors for %s: %w", id, err)
		}
		if err := wb.Set([]byte(neighborKeyPrefix+id), data); err != nil {
			return fmt.Errorf("set neighbors for %s: %w", id, err)
		}
		entriesWritten += len(entries)
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flushing neighbor lists: %w", err)
	}

	manifestData, err := json.Marshal(&manifest)
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(manifestKeyPrefix+manifest.RunID), manifestData); err != nil {
			return fmt.Errorf("set run manifest: %w", err)
		}
		if err := txn.Set([]byte(latestManifestKey), manifestData); err != nil {
			return fmt.Errorf("set latest manifest: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	metrics.NeighborsExported.Add(float64(entriesWritten))
	s.logger.Info().
		Str("run_id", manifest.RunID).
		Int("records", len(neighbors)).
		Int("entries", entriesWritten).
		Msg("Wrote graph to store")
	return nil
}

// Neighbors returns the stored neighbor list for a record id.
func (s *Store) Neighbors(ctx context.Context, id string) ([]models.NeighborEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var entries []models.NeighborEntry
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(neighborKeyPrefix + id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get neighbors: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &entries)
		})
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// LatestManifest returns the manifest of the most recent run.
func (s *Store) LatestManifest(ctx context.Context) (*models.RunManifest, error) {
	return s.manifestByKey(ctx, latestManifestKey)
}

// Manifest returns the manifest of a specific run.
func (s *Store) Manifest(ctx context.Context, runID string) (*models.RunManifest, error) {
	return s.manifestByKey(ctx, manifestKeyPrefix+runID)
}

func (s *Store) manifestByKey(ctx context.Context, key string) (*models.RunManifest, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var manifest models.RunManifest
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get manifest: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &manifest)
		})
	})
	if err != nil {
		return nil, err
	}
	return &manifest, nil
}

// CountNeighborLists returns the number of stored neighbor lists.
func (s *Store) CountNeighborLists(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(neighborKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// RunGC triggers one round of Badger value-log garbage collection.
// Returns nil when there was nothing to rewrite.
func (s *Store) RunGC() error {
	err := s.db.RunValueLogGC(0.5)
	if errors.Is(err, badger.ErrNoRewrite) {
		return nil
	}
	return err
}
