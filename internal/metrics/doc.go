// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

/*
Package metrics provides Prometheus instrumentation for the pipeline and
the serve-mode API.

All metrics are registered on the default registry via promauto at
package load, so importing any component that records metrics is enough
to expose them. Serve mode publishes the registry at /metrics.

# Available Metrics

Pipeline:
  - affinitas_pipeline_runs_total: build runs started (counter)
  - affinitas_pipeline_failures_total: build runs failed (counter)
  - affinitas_pipeline_duration_seconds: end-to-end run duration (histogram)
  - affinitas_stage_duration_seconds: per-stage duration (histogram)
    Labels: stage (load, text, temporal, spatial, normalize, fuse, rank, export)

Corpus:
  - affinitas_records_loaded: records in the current snapshot (gauge)
  - affinitas_records_skipped_total: entries dropped for missing ids (counter)
  - affinitas_vocabulary_size: fitted TF-IDF vocabulary size (gauge)
  - affinitas_gazetteer_backfills_total: coordinates filled from the gazetteer (counter)

Export:
  - affinitas_neighbors_exported_total: neighbor entries written (counter)
  - affinitas_export_errors_total: failed sink writes (counter)
    Labels: sink (json, store, database)

HTTP (serve mode):
  - affinitas_http_requests_total: requests served (counter)
    Labels: method, endpoint, status_code
  - affinitas_http_request_duration_seconds: request latency (histogram)
    Labels: method, endpoint

System:
  - affinitas_app_info: constant 1, carrying build identity
    Labels: version, go_version
*/
package metrics
