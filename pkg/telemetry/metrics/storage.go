package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StorageMetrics tracks checkpoint and audit store operations.
//
// Metrics:
//   - casefold_triage_storage_operations_total: Operations by store, op, status
//   - casefold_triage_storage_operation_duration_seconds: Operation latency histogram
//   - casefold_triage_checkpoints_pruned_total: Checkpoints removed by retention sweeps
type StorageMetrics struct {
	operations        *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	pruned            prometheus.Counter
}

// NewStorageMetrics creates and registers storage metrics.
func NewStorageMetrics(registry *prometheus.Registry) *StorageMetrics {
	sm := &StorageMetrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: Subsystem,
				Name:      "storage_operations_total",
				Help:      "Total number of storage operations",
			},
			[]string{"store", "operation", "status"},
		),

		operationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Subsystem: Subsystem,
				Name:      "storage_operation_duration_seconds",
				Help:      "Duration of storage operations in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
			[]string{"store", "operation"},
		),

		pruned: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Subsystem: Subsystem,
				Name:      "checkpoints_pruned_total",
				Help:      "Total number of checkpoints removed by retention sweeps",
			},
		),
	}

	registry.MustRegister(
		sm.operations,
		sm.operationDuration,
		sm.pruned,
	)

	return sm
}

// RecordOperation records one storage operation with its outcome.
func (sm *StorageMetrics) RecordOperation(store, operation string, duration time.Duration, err error) {
	if sm == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	sm.operations.WithLabelValues(store, operation, status).Inc()
	sm.operationDuration.WithLabelValues(store, operation).Observe(duration.Seconds())
}

// RecordPruned adds to the pruned checkpoint count.
func (sm *StorageMetrics) RecordPruned(count int) {
	if sm == nil || count <= 0 {
		return
	}
	sm.pruned.Add(float64(count))
}
