// Affinitas - Cultural Heritage Similarity Graph
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinitas

package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
)

// getHistogramSampleCount extracts the observation count from a Prometheus
// histogram. testutil.ToFloat64 only handles counters and gauges, so
// histograms are read through the wire protobuf instead.
func getHistogramSampleCount(t *testing.T, h prometheus.Histogram) uint64 {
	t.Helper()
	var m io_prometheus_client.Metric
	if err := h.Write(&m); err != nil {
		t.Fatalf("failed to write metric: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

// TestRecordHTTPRequest verifies request recording accepts the label
// combinations the API middleware produces.
func TestRecordHTTPRequest(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		endpoint   string
		statusCode string
		duration   time.Duration
	}{
		{
			name:       "successful neighbor lookup",
			method:     "GET",
			endpoint:   "/api/v1/neighbors/{id}",
			statusCode: "200",
			duration:   5 * time.Millisecond,
		},
		{
			name:       "neighbor not found",
			method:     "GET",
			endpoint:   "/api/v1/neighbors/{id}",
			statusCode: "404",
			duration:   time.Millisecond,
		},
		{
			name:       "health check",
			method:     "GET",
			endpoint:   "/api/v1/health",
			statusCode: "200",
			duration:   500 * time.Microsecond,
		},
		{
			name:       "rate limited",
			method:     "GET",
			endpoint:   "/api/v1/graph/stats",
			statusCode: "429",
			duration:   100 * time.Microsecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			RecordHTTPRequest(tt.method, tt.endpoint, tt.statusCode, tt.duration)
			after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(tt.method, tt.endpoint, tt.statusCode))
			if after != before+1 {
				t.Errorf("HTTPRequestsTotal = %v, want %v", after, before+1)
			}
		})
	}
}

// TestRecordExportError verifies per-sink failure counting.
func TestRecordExportError(t *testing.T) {
	for _, sink := range []string{"json", "store", "database"} {
		t.Run(sink, func(t *testing.T) {
			before := testutil.ToFloat64(ExportErrors.WithLabelValues(sink))
			RecordExportError(sink)
			after := testutil.ToFloat64(ExportErrors.WithLabelValues(sink))
			if after != before+1 {
				t.Errorf("ExportErrors[%s] = %v, want %v", sink, after, before+1)
			}
		})
	}
}

// TestPipelineCounters exercises the pipeline metrics the builder records.
func TestPipelineCounters(t *testing.T) {
	runsBefore := testutil.ToFloat64(PipelineRunsTotal)
	failuresBefore := testutil.ToFloat64(PipelineFailuresTotal)

	PipelineRunsTotal.Inc()
	PipelineFailuresTotal.Inc()
	StageDurationSeconds.WithLabelValues("text").Observe(0.01)
	PipelineDuration.Observe(0.5)
	RecordsLoaded.Set(42)
	VocabularySize.Set(1234)

	if got := testutil.ToFloat64(PipelineRunsTotal); got != runsBefore+1 {
		t.Errorf("PipelineRunsTotal = %v, want %v", got, runsBefore+1)
	}
	if got := testutil.ToFloat64(PipelineFailuresTotal); got != failuresBefore+1 {
		t.Errorf("PipelineFailuresTotal = %v, want %v", got, failuresBefore+1)
	}
	if got := testutil.ToFloat64(RecordsLoaded); got != 42 {
		t.Errorf("RecordsLoaded = %v, want 42", got)
	}
	if got := testutil.ToFloat64(VocabularySize); got != 1234 {
		t.Errorf("VocabularySize = %v, want 1234", got)
	}
}

// TestStageDurationHistograms verifies stage and pipeline observations
// land in the histograms the build command reads back.
func TestStageDurationHistograms(t *testing.T) {
	pipelineBefore := getHistogramSampleCount(t, PipelineDuration)
	PipelineDuration.Observe(1.25)
	if got := getHistogramSampleCount(t, PipelineDuration); got != pipelineBefore+1 {
		t.Errorf("PipelineDuration sample count = %d, want %d", got, pipelineBefore+1)
	}

	obs, err := StageDurationSeconds.GetMetricWithLabelValues("normalize")
	if err != nil {
		t.Fatalf("failed to get stage histogram: %v", err)
	}
	stage, ok := obs.(prometheus.Histogram)
	if !ok {
		t.Fatalf("stage observer is %T, want prometheus.Histogram", obs)
	}

	stageBefore := getHistogramSampleCount(t, stage)
	StageDurationSeconds.WithLabelValues("normalize").Observe(0.02)
	if got := getHistogramSampleCount(t, stage); got != stageBefore+1 {
		t.Errorf("StageDurationSeconds[normalize] sample count = %d, want %d", got, stageBefore+1)
	}
}

// TestAllMetricsDescribable verifies every metric registered by this
// package can be described, which catches duplicate registration.
func TestAllMetricsDescribable(t *testing.T) {
	metrics := []prometheus.Collector{
		PipelineRunsTotal,
		PipelineFailuresTotal,
		PipelineDuration,
		StageDurationSeconds,
		RecordsLoaded,
		RecordsSkipped,
		VocabularySize,
		GazetteerBackfills,
		NeighborsExported,
		ExportErrors,
		HTTPRequestsTotal,
		HTTPRequestDuration,
		AppInfo,
	}

	for _, m := range metrics {
		ch := make(chan *prometheus.Desc, 10)
		m.Describe(ch)
		close(ch)

		count := 0
		for range ch {
			count++
		}
		if count == 0 {
			t.Errorf("Metric has no descriptors")
		}
	}
}

// TestMetricGathering verifies the default registry can gather and lint
// everything this package registers.
func TestMetricGathering(t *testing.T) {
	RecordHTTPRequest("GET", "/test", "200", time.Millisecond)

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Logf("Lint errors (may be expected): %v", err)
	}
	for _, p := range problems {
		t.Logf("Metric lint problem: %s", p.Text)
	}
}

func BenchmarkRecordHTTPRequest(b *testing.B) {
	for i := 0; i < b.N; i++ {
		RecordHTTPRequest("GET", "/api/v1/neighbors/{id}", "200", 5*time.Millisecond)
	}
}
