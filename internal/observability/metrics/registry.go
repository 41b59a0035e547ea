// Package metrics provides centralized Prometheus business metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Catalog provider metrics track calls to the remote or database record provider
var (
	// ProviderRequestsTotal counts provider page fetches by source and result
	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_provider_requests_total",
			Help: "Total number of catalog provider page fetches",
		},
		[]string{"source", "result"}, // result: success, failure
	)

	// ProviderRequestDuration measures provider page fetch duration in seconds
	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_provider_request_duration_seconds",
			Help:    "Catalog provider page fetch duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 6.4},
		},
		[]string{"source"},
	)

	// ProviderErrorsTotal counts provider failures seen by the selection controller
	ProviderErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_provider_errors_total",
			Help: "Total number of catalog provider failures handled by the controller",
		},
		[]string{"operation"}, // operation: navigate, select_first_n
	)

	// StaleResponsesTotal counts page responses dropped because a newer navigation superseded them
	StaleResponsesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_stale_responses_total",
			Help: "Total number of page responses discarded as stale",
		},
	)
)

// Selection metrics track the cross-page selection set
var (
	// SelectionMutationsTotal counts controller mutations by operation and outcome
	SelectionMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "selection_mutations_total",
			Help: "Total number of selection mutations",
		},
		[]string{"operation", "outcome"}, // outcome: performed, not_performed
	)

	// SelectedRecords tracks the number of records currently selected
	SelectedRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "selection_selected_records",
			Help: "Number of records currently selected",
		},
	)

	// BulkMarkedRecords measures how many records a select-first-N call newly marked
	BulkMarkedRecords = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "selection_bulk_marked_records",
			Help:    "Number of records newly marked by a select-first-N call",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		},
	)

	// PersistErrorsTotal counts failed selection write-throughs
	PersistErrorsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "selection_persist_errors_total",
			Help: "Total number of failed selection write-throughs",
		},
	)
)

// Database metrics track database performance
var (
	// DBQueryDuration measures database query duration
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
		},
		[]string{"operation"},
	)

	// DBConnectionsActive tracks active database connections
	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	// DBConnectionsIdle tracks idle database connections
	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

// Catalog mirror metrics track the scheduled copy of the remote catalog
// into the database-served provider.
var (
	// MirrorRunsTotal counts mirror runs by result (success, failure)
	MirrorRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_mirror_runs_total",
			Help: "Total number of catalog mirror runs",
		},
		[]string{"result"},
	)

	// MirrorRecordsTotal counts records written by mirror runs
	MirrorRecordsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_mirror_records_total",
			Help: "Total number of records upserted by the catalog mirror",
		},
	)

	// MirrorDuration measures the duration of a mirror run
	MirrorDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_mirror_duration_seconds",
			Help:    "Catalog mirror run duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)

	// MirrorLastSuccess is the Unix time of the last successful run
	MirrorLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_mirror_last_success_timestamp",
			Help: "Unix timestamp of the last successful catalog mirror run",
		},
	)
)

// Circuit breaker metrics expose the state of the catalog and database breakers
var (
	// CircuitBreakerState is 0 closed, 1 half-open, 2 open
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)

	// CircuitBreakerTransitionsTotal counts state changes by target state
	CircuitBreakerTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state changes",
		},
		[]string{"name", "to"},
	)
)
