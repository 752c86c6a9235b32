// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Pipeline Metrics
	PipelineRunsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "affinitas_pipeline_runs_total",
			Help: "Total number of graph build runs started",
		},
	)

	PipelineFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "affinitas_pipeline_failures_total",
			Help: "Total number of graph build runs that failed",
		},
	)

	PipelineDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "affinitas_pipeline_duration_seconds",
			Help:    "End-to-end duration of a build run (load through export) in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300, 600}, // O(N^2) stages can take minutes on large corpora
		},
	)

	StageDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "affinitas_stage_duration_seconds",
			Help:    "Duration of individual pipeline stages in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"stage"}, // "load", "text", "temporal", "spatial", "normalize", "fuse", "rank", "export"
	)

	// Corpus Metrics
	RecordsLoaded = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "affinitas_records_loaded",
			Help: "Number of records in the most recently loaded snapshot",
		},
	)

	RecordsSkipped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "affinitas_records_skipped_total",
			Help: "Total number of snapshot entries dropped for missing or empty identifiers",
		},
	)

	VocabularySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "affinitas_vocabulary_size",
			Help: "Size of the TF-IDF vocabulary fitted in the most recent run",
		},
	)

	GazetteerBackfills = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "affinitas_gazetteer_backfills_total",
			Help: "Total number of records whose coordinates were filled from the gazetteer",
		},
	)

	// Export Metrics
	NeighborsExported = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "affinitas_neighbors_exported_total",
			Help: "Total number of neighbor entries written across all sinks",
		},
	)

	ExportErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "affinitas_export_errors_total",
			Help: "Total number of export failures",
		},
		[]string{"sink"}, // "json", "store", "database"
	)

	// HTTP Metrics (serve mode)
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "affinitas_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "affinitas_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "affinitas_app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordHTTPRequest records one served HTTP request.
func RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordExportError records a failed write to one of the export sinks.
func RecordExportError(sink string) {
	ExportErrors.WithLabelValues(sink).Inc()
}
