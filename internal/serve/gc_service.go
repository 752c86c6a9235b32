// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package serve

import (
	"context"
	"fmt"
	"time"
)

// GCRunner matches the store's value-log garbage collection entry
// point. Satisfied by *export.Store.
type GCRunner interface {
	RunGC() error
}

// GCService periodically triggers Badger value-log garbage collection
// while serve mode is running. Badger does not reclaim value-log space
// on its own; without this ticker a long-lived server rereading the
// same graph directory would grow the value log across successive
// build runs.
//
// A GC error ends the service; the supervisor restarts it under the
// store layer's backoff policy, so a persistent failure never disturbs
// the API layer.
type GCService struct {
	store    GCRunner
	interval time.Duration
	name     string
}

// NewGCService wraps a store for periodic garbage collection. Intervals
// <= 0 fall back to 5 minutes, a typical cadence for Badger value-log
// GC.
func NewGCService(store GCRunner, interval time.Duration) *GCService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &GCService{
		store:    store,
		interval: interval,
		name:     "badger-gc",
	}
}

// Serve implements suture.Service. It runs one GC round per tick until
// the context is canceled.
func (g *GCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(g.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := g.store.RunGC(); err != nil {
				return fmt.Errorf("badger value-log gc: %w", err)
			}
		}
	}
}

// String implements fmt.Stringer; suture uses it to name the service in
// log messages.
func (g *GCService) String() string {
	return g.name
}
