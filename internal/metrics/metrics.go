// Package metrics exposes the Prometheus metrics of the account data eraser.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Deletion outcomes.
const (
	OutcomeSuccess         = "success"
	OutcomeUnauthenticated = "unauthenticated"
	OutcomeFailed          = "failed"
)

var (
	// DeletionTotal tracks account data deletions by outcome (success, unauthenticated, or failed)
	DeletionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eraser_deletion_total",
			Help: "Total number of account data deletions by outcome (success, unauthenticated, or failed)",
		},
		[]string{"outcome"},
	)

	// DeletionDuration tracks how long the delegated subtree deletion takes
	DeletionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "eraser_deletion_duration_seconds",
			Help:    "Duration of subtree deletions in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 14),
		},
	)

	// DocumentsDeletedTotal tracks the number of documents removed by subtree deletions
	DocumentsDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "eraser_documents_deleted_total",
			Help: "Total number of documents removed by subtree deletions",
		},
	)

	// EventTotal tracks the total number of analytics events by event type
	EventTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eraser_event_total",
			Help: "Total number of analytics events by event type",
		},
		[]string{"event_type"},
	)
)

// RecordDeletion records a deletion with the given outcome
func RecordDeletion(outcome string) {
	DeletionTotal.WithLabelValues(outcome).Inc()
}

// ObserveDeletionDuration records the duration of a subtree deletion
func ObserveDeletionDuration(seconds float64) {
	DeletionDuration.Observe(seconds)
}

// RecordDocumentsDeleted adds n to the deleted documents counter
func RecordDocumentsDeleted(n int) {
	if n <= 0 {
		return
	}
	DocumentsDeletedTotal.Add(float64(n))
}

// RecordEvent records an event with the given event type
func RecordEvent(eventType string) {
	EventTotal.WithLabelValues(eventType).Inc()
}
