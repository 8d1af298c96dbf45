// Package metrics defines the Prometheus instrumentation for the board.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Board metrics
var (
	// ArticlesCreatedTotal counts successfully created articles
	ArticlesCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "board_articles_created_total",
			Help: "Total articles created",
		},
	)

	// VotesTotal counts vote attempts by direction and outcome
	VotesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_votes_total",
			Help: "Vote attempts by direction and outcome",
		},
		[]string{"direction", "outcome"},
	)

	// GroupViewRebuildsTotal counts cached group view recomputations
	GroupViewRebuildsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "board_group_view_rebuilds_total",
			Help: "Total group view cache rebuilds",
		},
	)

	// DanglingIndexEntriesTotal counts index entries skipped during hydration
	DanglingIndexEntriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "board_dangling_index_entries_total",
			Help: "Index entries skipped because no valid article record was found",
		},
	)
)

// Store metrics
var (
	// StoreOpsTotal tracks store operations by command and status
	StoreOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operations_total",
			Help: "Total store operations by command and status",
		},
		[]string{"operation", "status"},
	)

	// StoreOpDuration tracks store operation latency in seconds
	StoreOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Store operation duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)

	// StoreConnectionErrors tracks failed store connection attempts
	StoreConnectionErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "store_connection_errors_total",
			Help: "Total store connection errors",
		},
	)

	// StoreBreakerState tracks the circuit breaker state (0=closed, 1=half-open, 2=open)
	StoreBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "store_circuit_breaker_state",
			Help: "Current store circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	// StoreBreakerTransitions tracks circuit breaker state changes
	StoreBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_circuit_breaker_transitions_total",
			Help: "Store circuit breaker state transitions by new state",
		},
		[]string{"state"},
	)
)
