// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

/*
Package models defines data structures for the Affinitas application.

This package contains all data models shared across the pipeline and the
serve-mode API. It is the single source of truth for the snapshot wire
shapes, the normalized record table row, the exported graph entities, and
the API response envelope.

Key Components:

  - RawRecord: Tolerant wire shape of one harvested catalog item
  - Record: Normalized catalog item (scalars only, nullable via pointers)
  - TemporalRange: Derived (min_year, max_year) span for temporal similarity
  - NeighborEntry: One ranked neighbor with per-channel score breakdown
  - Edge: Flat directed neighbor row for the edges table
  - RunManifest: Provenance record for one pipeline run
  - APIResponse / APIError: Standard API envelope

Model Categories:

 1. Snapshot Models:
    RawRecord and Gazetteer capture exactly what harvesters emit, with
    flexible fields typed as any (string-or-list text, language-keyed
    place labels, sentinel year strings). The snapshot loader resolves
    them into Record values.

 2. Graph Models:
    NeighborEntry, Edge, RunManifest, and GraphStats describe the
    computed similarity graph and its provenance. NeighborEntry's JSON
    field names (S_text, S_date, S_place) are a published contract.

 3. API Models:
    APIResponse, Metadata, APIError, and HealthStatus wrap every HTTP
    endpoint's payload.

Thread Safety:

All models are plain data structures with no internal synchronization.
They are safe for concurrent reads after construction.

See Also:

  - internal/snapshot: Loader producing Record values from RawRecord
  - internal/graph: Builder producing NeighborEntry lists and manifests
  - internal/export, internal/database: Persistence of graph models
*/
package models
