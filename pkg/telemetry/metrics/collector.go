package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metric namespace and subsystem shared by all triage metrics.
const (
	Namespace = "casefold"
	Subsystem = "triage"
)

// Collector owns the Prometheus registry and all triage metric groups.
// A nil Collector is valid and records nothing.
type Collector struct {
	registry *prometheus.Registry

	workflow *WorkflowMetrics
	outcomes *OutcomeMetrics
	storage  *StorageMetrics
}

// NewCollector creates a collector with all metric groups registered.
// If registry is nil a new registry is created.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	return &Collector{
		registry: registry,
		workflow: NewWorkflowMetrics(registry),
		outcomes: NewOutcomeMetrics(registry),
		storage:  NewStorageMetrics(registry),
	}
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler returns an HTTP handler exposing the registry in Prometheus
// exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		ErrorHandling:     promhttp.ContinueOnError,
	})
}

// Workflow returns the workflow metric group, or nil on a nil Collector.
func (c *Collector) Workflow() *WorkflowMetrics {
	if c == nil {
		return nil
	}
	return c.workflow
}

// Outcomes returns the outcome metric group, or nil on a nil Collector.
func (c *Collector) Outcomes() *OutcomeMetrics {
	if c == nil {
		return nil
	}
	return c.outcomes
}

// Storage returns the storage metric group, or nil on a nil Collector.
func (c *Collector) Storage() *StorageMetrics {
	if c == nil {
		return nil
	}
	return c.storage
}
