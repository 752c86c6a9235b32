// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/affinitas/internal/metrics"
	"github.com/tomtom215/affinitas/internal/models"
	"github.com/tomtom215/affinitas/internal/similarity"
	"github.com/tomtom215/affinitas/internal/snapshot"
)

// Builder constructs similarity graphs from loaded snapshot tables. A
// Builder is immutable after construction and safe for repeated Build
// calls; each call owns all of its intermediate matrices.
type Builder struct {
	cfg    *Config
	logger zerolog.Logger
}

// NewBuilder validates the configuration and returns a Builder. A nil
// config selects DefaultConfig.
func NewBuilder(cfg *Config, logger zerolog.Logger) (*Builder, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Builder{
		cfg:    cfg.Clone(),
		logger: logger.With().Str("component", "graph").Logger(),
	}, nil
}

// Graph is the completed output of one build run: every record's ranked
// neighbor list, the same relations as flat edge rows, and the run
// manifest describing provenance.
type Graph struct {
	Neighbors map[string][]models.NeighborEntry
	Edges     []models.Edge
	Manifest  models.RunManifest
}

// Build runs the full pipeline over the table: text, temporal, and
// spatial kernels, normalization, fusion, and ranking. Cancellation is
// honored between stages; an aborted or failed build returns no Graph.
func (b *Builder) Build(ctx context.Context, table *snapshot.Table) (*Graph, error) {
	metrics.PipelineRunsTotal.Inc()
	g, err := b.build(ctx, table)
	if err != nil {
		metrics.PipelineFailuresTotal.Inc()
		return nil, err
	}
	return g, nil
}

func (b *Builder) build(ctx context.Context, table *snapshot.Table) (*Graph, error) {
	n := table.Len()
	runID := uuid.NewString()
	stageSeconds := make(map[string]float64, 6)

	b.logger.Info().
		Str("run_id", runID).
		Int("records", n).
		Int("top_k", b.cfg.TopK).
		Float64("weight_text", b.cfg.Weights.Text).
		Float64("weight_date", b.cfg.Weights.Date).
		Float64("weight_place", b.cfg.Weights.Place).
		Msg("Building similarity graph")

	stageStart := time.Now()
	kernel := similarity.NewTextKernel(similarity.TextConfig{
		MaxVocabulary: b.cfg.MaxVocabulary,
		MinDocFreq:    b.cfg.MinDocFreq,
	})
	blobs := make([]string, n)
	for i := range table.Records {
		blobs[i] = table.Records[i].TextBlob()
	}
	kernel.Fit(blobs)
	if kernel.UsedFallback() {
		b.logger.Warn().
			Int("min_doc_freq", b.cfg.MinDocFreq).
			Msg("No term met the document frequency threshold; refitted with threshold 1")
	}
	if kernel.VocabularySize() == 0 {
		b.logger.Warn().Msg("Vocabulary is empty; text channel contributes zero")
	}
	metrics.VocabularySize.Set(float64(kernel.VocabularySize()))
	sText := kernel.Matrix(blobs)
	observeStage(stageSeconds, "text", stageStart)
	if err := stageCheckpoint(ctx, "text"); err != nil {
		return nil, err
	}

	stageStart = time.Now()
	ranges := similarity.DeriveTemporalRanges(table.Records)
	sDate := similarity.BuildTemporalMatrix(ranges, b.cfg.BandwidthYears)
	observeStage(stageSeconds, "temporal", stageStart)
	if err := stageCheckpoint(ctx, "temporal"); err != nil {
		return nil, err
	}

	stageStart = time.Now()
	sPlace := similarity.BuildSpatialMatrix(table.Records, b.cfg.SigmaKm)
	observeStage(stageSeconds, "spatial", stageStart)
	if err := stageCheckpoint(ctx, "spatial"); err != nil {
		return nil, err
	}

	stageStart = time.Now()
	dateScaled := sDate.MinMaxScale()
	placeScaled := sPlace.MinMaxScale()
	observeStage(stageSeconds, "normalize", stageStart)
	if err := stageCheckpoint(ctx, "normalize"); err != nil {
		return nil, err
	}
	b.logger.Debug().
		Bool("date_scaled", dateScaled).
		Bool("place_scaled", placeScaled).
		Msg("Normalized decay channels")

	stageStart = time.Now()
	fused := Fuse(n, []Channel{
		{Name: ChannelText, Weight: b.cfg.Weights.Text, Matrix: sText},
		{Name: ChannelDate, Weight: b.cfg.Weights.Date, Matrix: sDate},
		{Name: ChannelPlace, Weight: b.cfg.Weights.Place, Matrix: sPlace},
		{Name: ChannelProfile, Weight: b.cfg.Weights.Profile, Matrix: nil},
	})
	observeStage(stageSeconds, "fuse", stageStart)
	if err := stageCheckpoint(ctx, "fuse"); err != nil {
		return nil, err
	}

	stageStart = time.Now()
	neighbors, edges := rankNeighbors(runID, table.Records, fused, sText, sDate, sPlace, b.cfg.TopK)
	observeStage(stageSeconds, "rank", stageStart)

	b.logger.Info().
		Str("run_id", runID).
		Int("records", n).
		Int("vocabulary_size", kernel.VocabularySize()).
		Int("edges", len(edges)).
		Msg("Similarity graph complete")

	return &Graph{
		Neighbors: neighbors,
		Edges:     edges,
		Manifest: models.RunManifest{
			RunID:          runID,
			CreatedAt:      time.Now().UTC(),
			SnapshotPath:   table.Path,
			SnapshotSHA256: table.SHA256,
			RecordCount:    n,
			VocabularySize: kernel.VocabularySize(),
			TopK:           b.cfg.TopK,
			Weights:        b.cfg.Weights.ToMap(),
			BandwidthYears: b.cfg.BandwidthYears,
			SigmaKM:        b.cfg.SigmaKm,
			MaxVocabulary:  b.cfg.MaxVocabulary,
			MinDocFreq:     b.cfg.MinDocFreq,
			StageSeconds:   stageSeconds,
		},
	}, nil
}

// stageCheckpoint reports context cancellation between pipeline stages.
func stageCheckpoint(ctx context.Context, stage string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("build aborted after %s stage: %w", stage, err)
	}
	return nil
}

// observeStage records a stage duration in both the run manifest and
// the stage histogram.
func observeStage(stageSeconds map[string]float64, stage string, start time.Time) {
	elapsed := time.Since(start).Seconds()
	stageSeconds[stage] = elapsed
	metrics.StageDurationSeconds.WithLabelValues(stage).Observe(elapsed)
}
