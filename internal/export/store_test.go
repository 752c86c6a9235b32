// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package export

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/affinitas/internal/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStoreInMemory(zerolog.Nop())
	if err != nil {
		t.Fatalf("OpenStoreInMemory() error = %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return store
}

func testManifest(runID string) models.RunManifest {
	return models.RunManifest{
		RunID:          runID,
		CreatedAt:      time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		SnapshotPath:   "data/records.json",
		SnapshotSHA256: "0123abcd",
		RecordCount:    3,
		VocabularySize: 42,
		TopK:           50,
		Weights:        map[string]float64{"text": 0.5, "date": 0.2, "place": 0.2, "profile": 0.1},
		BandwidthYears: 25,
		SigmaKM:        400,
		MaxVocabulary:  5000,
		MinDocFreq:     2,
	}
}

func TestStoreWriteAndReadGraph(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	neighbors := sampleNeighbors()
	manifest := testManifest("run-1")
	if err := store.WriteGraph(ctx, neighbors, manifest); err != nil {
		t.Fatalf("WriteGraph() error = %v", err)
	}

	for id, want := range neighbors {
		got, err := store.Neighbors(ctx, id)
		if err != nil {
			t.Fatalf("Neighbors(%q) error = %v", id, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Neighbors(%q) = %+v, want %+v", id, got, want)
		}
	}

	count, err := store.CountNeighborLists(ctx)
	if err != nil {
		t.Fatalf("CountNeighborLists() error = %v", err)
	}
	if count != len(neighbors) {
		t.Errorf("CountNeighborLists() = %d, want %d", count, len(neighbors))
	}
}

func TestStoreNeighborsNotFound(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.WriteGraph(ctx, sampleNeighbors(), testManifest("run-1")); err != nil {
		t.Fatalf("WriteGraph() error = %v", err)
	}

	_, err := store.Neighbors(ctx, "no-such-record")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Neighbors() error = %v, want ErrNotFound", err)
	}
}

func TestStoreManifests(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	manifest := testManifest("run-1")
	if err := store.WriteGraph(ctx, sampleNeighbors(), manifest); err != nil {
		t.Fatalf("WriteGraph() error = %v", err)
	}

	latest, err := store.LatestManifest(ctx)
	if err != nil {
		t.Fatalf("LatestManifest() error = %v", err)
	}
	if !reflect.DeepEqual(*latest, manifest) {
		t.Errorf("LatestManifest() = %+v, want %+v", *latest, manifest)
	}

	byID, err := store.Manifest(ctx, "run-1")
	if err != nil {
		t.Fatalf("Manifest() error = %v", err)
	}
	if byID.RunID != "run-1" {
		t.Errorf("Manifest().RunID = %q, want run-1", byID.RunID)
	}

	if _, err := store.Manifest(ctx, "run-missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Manifest(missing) error = %v, want ErrNotFound", err)
	}
}

func TestStoreLatestManifestEmpty(t *testing.T) {
	store := newTestStore(t)

	_, err := store.LatestManifest(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("LatestManifest() on empty store error = %v, want ErrNotFound", err)
	}
}

// A re-export fully replaces the neighbor lists: ids absent from the new
// graph must not survive from the previous run. Manifests are additive,
// keyed by run id, with the latest pointer moving to the newest run.
func TestStoreReExportReplacesGraph(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := sampleNeighbors()
	if err := store.WriteGraph(ctx, first, testManifest("run-1")); err != nil {
		t.Fatalf("first WriteGraph() error = %v", err)
	}

	second := map[string][]models.NeighborEntry{
		"amphora": {
			{ID: "krater", Score: 0.5, TextScore: 0.5, DateScore: 0.5, PlaceScore: 0.5, Title: "Attic red-figure krater"},
		},
		"krater": {
			{ID: "amphora", Score: 0.5, TextScore: 0.5, DateScore: 0.5, PlaceScore: 0.5, Title: "Attic black-figure amphora"},
		},
	}
	if err := store.WriteGraph(ctx, second, testManifest("run-2")); err != nil {
		t.Fatalf("second WriteGraph() error = %v", err)
	}

	if _, err := store.Neighbors(ctx, "cope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("stale id error = %v, want ErrNotFound", err)
	}

	count, err := store.CountNeighborLists(ctx)
	if err != nil {
		t.Fatalf("CountNeighborLists() error = %v", err)
	}
	if count != len(second) {
		t.Errorf("CountNeighborLists() = %d, want %d", count, len(second))
	}

	got, err := store.Neighbors(ctx, "amphora")
	if err != nil {
		t.Fatalf("Neighbors(amphora) error = %v", err)
	}
	if !reflect.DeepEqual(got, second["amphora"]) {
		t.Errorf("Neighbors(amphora) = %+v, want %+v", got, second["amphora"])
	}

	latest, err := store.LatestManifest(ctx)
	if err != nil {
		t.Fatalf("LatestManifest() error = %v", err)
	}
	if latest.RunID != "run-2" {
		t.Errorf("LatestManifest().RunID = %q, want run-2", latest.RunID)
	}

	// The superseded run's manifest stays readable for provenance.
	if _, err := store.Manifest(ctx, "run-1"); err != nil {
		t.Errorf("Manifest(run-1) after re-export error = %v", err)
	}
}

func TestStoreWriteGraphEmpty(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.WriteGraph(ctx, map[string][]models.NeighborEntry{}, testManifest("run-1")); err != nil {
		t.Fatalf("WriteGraph() error = %v", err)
	}

	count, err := store.CountNeighborLists(ctx)
	if err != nil {
		t.Fatalf("CountNeighborLists() error = %v", err)
	}
	if count != 0 {
		t.Errorf("CountNeighborLists() = %d, want 0", count)
	}

	if _, err := store.LatestManifest(ctx); err != nil {
		t.Errorf("LatestManifest() error = %v", err)
	}
}

func TestStoreWriteGraphCancelled(t *testing.T) {
	store := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.WriteGraph(ctx, sampleNeighbors(), testManifest("run-1"))
	if err == nil {
		t.Fatal("WriteGraph() with cancelled context expected error, got nil")
	}
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := OpenStore(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	neighbors := sampleNeighbors()
	if err := store.WriteGraph(ctx, neighbors, testManifest("run-1")); err != nil {
		t.Fatalf("WriteGraph() error = %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := OpenStore(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("reopening store: %v", err)
	}
	defer func() {
		if err := reopened.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	}()

	got, err := reopened.Neighbors(ctx, "amphora")
	if err != nil {
		t.Fatalf("Neighbors() after reopen error = %v", err)
	}
	if !reflect.DeepEqual(got, neighbors["amphora"]) {
		t.Errorf("Neighbors() after reopen = %+v, want %+v", got, neighbors["amphora"])
	}

	latest, err := reopened.LatestManifest(ctx)
	if err != nil {
		t.Fatalf("LatestManifest() after reopen error = %v", err)
	}
	if latest.RunID != "run-1" {
		t.Errorf("LatestManifest().RunID = %q, want run-1", latest.RunID)
	}
}

func TestStoreRunGC(t *testing.T) {
	store, err := OpenStore(t.TempDir(), zerolog.Nop())
	if err != nil {
		t.Fatalf("OpenStore() error = %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	}()

	if err := store.WriteGraph(context.Background(), sampleNeighbors(), testManifest("run-1")); err != nil {
		t.Fatalf("WriteGraph() error = %v", err)
	}

	// A fresh store has nothing to rewrite; that is not an error.
	if err := store.RunGC(); err != nil {
		t.Errorf("RunGC() error = %v", err)
	}
}
