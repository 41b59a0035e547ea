package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordProviderRequest(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		success bool
		result  string
	}{
		{name: "api success", source: "api", success: true, result: "success"},
		{name: "api failure", source: "api", success: false, result: "failure"},
		{name: "database success", source: "database", success: true, result: "success"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(ProviderRequestsTotal.WithLabelValues(tt.source, tt.result))
			RecordProviderRequest(tt.source, tt.success, 120*time.Millisecond)
			after := testutil.ToFloat64(ProviderRequestsTotal.WithLabelValues(tt.source, tt.result))
			assert.Equal(t, before+1, after)
		})
	}
}

func TestRecordProviderError(t *testing.T) {
	before := testutil.ToFloat64(ProviderErrorsTotal.WithLabelValues("navigate"))
	RecordProviderError("navigate")
	assert.Equal(t, before+1, testutil.ToFloat64(ProviderErrorsTotal.WithLabelValues("navigate")))
}

func TestRecordStaleResponse(t *testing.T) {
	before := testutil.ToFloat64(StaleResponsesTotal)
	RecordStaleResponse()
	assert.Equal(t, before+1, testutil.ToFloat64(StaleResponsesTotal))
}

func TestRecordSelectionMutation(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		performed bool
		outcome   string
	}{
		{name: "performed", operation: "toggle_row", performed: true, outcome: "performed"},
		{name: "not performed", operation: "select_first_n", performed: false, outcome: "not_performed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := SelectionMutationsTotal.WithLabelValues(tt.operation, tt.outcome)
			before := testutil.ToFloat64(c)
			RecordSelectionMutation(tt.operation, tt.performed)
			assert.Equal(t, before+1, testutil.ToFloat64(c))
		})
	}
}

func TestUpdateSelectedRecords(t *testing.T) {
	UpdateSelectedRecords(42)
	assert.Equal(t, float64(42), testutil.ToFloat64(SelectedRecords))
	UpdateSelectedRecords(0)
	assert.Equal(t, float64(0), testutil.ToFloat64(SelectedRecords))
}

func TestRecordPersistError(t *testing.T) {
	before := testutil.ToFloat64(PersistErrorsTotal)
	RecordPersistError()
	assert.Equal(t, before+1, testutil.ToFloat64(PersistErrorsTotal))
}

func TestUpdateDBConnectionStats(t *testing.T) {
	tests := []struct {
		name   string
		active int
		idle   int
	}{
		{name: "no connections", active: 0, idle: 0},
		{name: "some active", active: 5, idle: 10},
		{name: "all active", active: 25, idle: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			UpdateDBConnectionStats(tt.active, tt.idle)
			assert.Equal(t, float64(tt.active), testutil.ToFloat64(DBConnectionsActive))
			assert.Equal(t, float64(tt.idle), testutil.ToFloat64(DBConnectionsIdle))
		})
	}
}

func TestMetricsFunctions_AllCallable(t *testing.T) {
	// Test that all functions can be called in sequence without panic
	assert.NotPanics(t, func() {
		RecordProviderRequest("api", true, time.Second)
		RecordProviderError("select_first_n")
		RecordStaleResponse()
		RecordSelectionMutation("select_all_visible", true)
		UpdateSelectedRecords(10)
		RecordBulkMarked(12)
		RecordPersistError()
		RecordDBQuery("save_blob", 10*time.Millisecond)
		UpdateDBConnectionStats(5, 10)
		RecordMirrorRun(true, 120, 3*time.Second)
	})
}

func TestRecordMirrorRun(t *testing.T) {
	successBefore := testutil.ToFloat64(MirrorRunsTotal.WithLabelValues("success"))
	failureBefore := testutil.ToFloat64(MirrorRunsTotal.WithLabelValues("failure"))
	recordsBefore := testutil.ToFloat64(MirrorRecordsTotal)
	samplesBefore := mirrorDurationSamples(t)

	RecordMirrorRun(true, 24, time.Second)
	RecordMirrorRun(false, 99, time.Second)

	assert.Equal(t, successBefore+1, testutil.ToFloat64(MirrorRunsTotal.WithLabelValues("success")))
	assert.Equal(t, failureBefore+1, testutil.ToFloat64(MirrorRunsTotal.WithLabelValues("failure")))
	assert.Equal(t, recordsBefore+24, testutil.ToFloat64(MirrorRecordsTotal), "failed runs do not count records")
	assert.Greater(t, testutil.ToFloat64(MirrorLastSuccess), float64(0))
	assert.Equal(t, samplesBefore+2, mirrorDurationSamples(t), "both runs are timed")
}

func mirrorDurationSamples(t *testing.T) uint64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, MirrorDuration.Write(&m))
	return m.GetHistogram().GetSampleCount()
}

func TestRecordCircuitBreakerState(t *testing.T) {
	before := testutil.ToFloat64(CircuitBreakerTransitionsTotal.WithLabelValues("test-breaker", "open"))

	RecordCircuitBreakerState("test-breaker", 2, "open")
	assert.Equal(t, float64(2), testutil.ToFloat64(CircuitBreakerState.WithLabelValues("test-breaker")))
	assert.Equal(t, before+1, testutil.ToFloat64(CircuitBreakerTransitionsTotal.WithLabelValues("test-breaker", "open")))

	RecordCircuitBreakerState("test-breaker", 0, "closed")
	assert.Equal(t, float64(0), testutil.ToFloat64(CircuitBreakerState.WithLabelValues("test-breaker")))
}
