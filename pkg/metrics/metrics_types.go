package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for the application
type Registry struct {
	// Ingestion Metrics
	IngestRowsTotal     prometheus.Counter
	IngestMissingValues prometheus.Counter
	IngestFailuresTotal prometheus.Counter
	IngestDuration      prometheus.Histogram

	// Graph Metrics
	GraphNodesTotal    prometheus.Gauge
	GraphEdgesTotal    prometheus.Gauge
	GraphBuildDuration prometheus.Histogram

	// Clustering Metrics
	ClusteringRunsTotal *prometheus.CounterVec
	ClusteringDuration  *prometheus.HistogramVec
	CommunitiesDetected prometheus.Gauge
	CommunityModularity prometheus.Gauge

	registry *prometheus.Registry
	mu       sync.RWMutex
}

var (
	// Global registry instance
	defaultRegistry *Registry
	once            sync.Once
)

// DefaultRegistry returns the global metrics registry
func DefaultRegistry() *Registry {
	once.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// NewRegistry creates a new metrics registry with all metrics initialized
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initIngestMetrics()
	r.initGraphMetrics()
	r.initClusteringMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
