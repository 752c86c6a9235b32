// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/tomtom215/affinitas/internal/metrics"
	"github.com/tomtom215/affinitas/internal/models"
)

// WriteJSON writes the id-to-neighbors mapping to path as an indented
// JSON document with sorted keys. The file appears atomically: content
// goes to a temp file in the same directory, is fsynced, and is renamed
// over the target, so a failed export never leaves partial output.
func WriteJSON(path string, neighbors map[string][]models.NeighborEntry) error {
	data, err := json.MarshalIndent(neighbors, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling neighbors: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".neighbors-*.json")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()          //nolint:errcheck // Best effort cleanup on error
		os.Remove(tmpPath)   //nolint:errcheck // Best effort cleanup on error
		return fmt.Errorf("writing neighbors document: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()          //nolint:errcheck // Best effort cleanup on error
		os.Remove(tmpPath)   //nolint:errcheck // Best effort cleanup on error
		return fmt.Errorf("syncing neighbors document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath) //nolint:errcheck // Best effort cleanup on error
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath) //nolint:errcheck // Best effort cleanup on error
		return fmt.Errorf("publishing neighbors document: %w", err)
	}

	for _, entries := range neighbors {
		metrics.NeighborsExported.Add(float64(len(entries)))
	}
	return nil
}
