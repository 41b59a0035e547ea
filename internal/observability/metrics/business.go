package metrics

import (
	"time"
)

// RecordProviderRequest records one provider page fetch.
// Source identifies the provider implementation ("api" or "database").
func RecordProviderRequest(source string, success bool, duration time.Duration) {
	result := "success"
	if !success {
		result = "failure"
	}
	ProviderRequestsTotal.WithLabelValues(source, result).Inc()
	ProviderRequestDuration.WithLabelValues(source).Observe(duration.Seconds())
}

// RecordProviderError records a provider failure absorbed by the controller.
func RecordProviderError(operation string) {
	ProviderErrorsTotal.WithLabelValues(operation).Inc()
}

// RecordStaleResponse records a page response dropped by the cursor.
func RecordStaleResponse() {
	StaleResponsesTotal.Inc()
}

// RecordSelectionMutation records the outcome of a selection operation.
//
// Example:
//
//	outcome := ctrl.ToggleRow(ctx, id, true)
//	RecordSelectionMutation("toggle_row", outcome == selection.OutcomePerformed)
func RecordSelectionMutation(operation string, performed bool) {
	outcome := "performed"
	if !performed {
		outcome = "not_performed"
	}
	SelectionMutationsTotal.WithLabelValues(operation, outcome).Inc()
}

// UpdateSelectedRecords sets the selected-records gauge.
func UpdateSelectedRecords(count int) {
	SelectedRecords.Set(float64(count))
}

// RecordBulkMarked records how many records one select-first-N call marked.
func RecordBulkMarked(count int) {
	BulkMarkedRecords.Observe(float64(count))
}

// RecordPersistError records a failed write-through of the selection blob.
func RecordPersistError() {
	PersistErrorsTotal.Inc()
}

// RecordDBQuery records the duration of a database query operation.
// Operation should describe the query type (e.g., "load_blob", "fetch_page").
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// UpdateDBConnectionStats updates database connection pool statistics.
func UpdateDBConnectionStats(active, idle int) {
	DBConnectionsActive.Set(float64(active))
	DBConnectionsIdle.Set(float64(idle))
}

// RecordMirrorRun records one catalog mirror run.
func RecordMirrorRun(success bool, records int64, duration time.Duration) {
	if !success {
		MirrorRunsTotal.WithLabelValues("failure").Inc()
		MirrorDuration.Observe(duration.Seconds())
		return
	}
	MirrorRunsTotal.WithLabelValues("success").Inc()
	MirrorRecordsTotal.Add(float64(records))
	MirrorDuration.Observe(duration.Seconds())
	MirrorLastSuccess.SetToCurrentTime()
}

// RecordCircuitBreakerState records a breaker entering state. state follows
// gobreaker's numbering (0 closed, 1 half-open, 2 open) and stateName its String().
func RecordCircuitBreakerState(name string, state int, stateName string) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
	CircuitBreakerTransitionsTotal.WithLabelValues(name, stateName).Inc()
}
