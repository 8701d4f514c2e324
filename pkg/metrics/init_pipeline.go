package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initIngestMetrics() {
	r.IngestRowsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "statgraph_ingest_rows_total",
			Help: "Total number of records parsed from input files",
		},
	)

	r.IngestMissingValues = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "statgraph_ingest_missing_values_total",
			Help: "Records whose value cell was blank or unparseable",
		},
	)

	r.IngestFailuresTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "statgraph_ingest_failures_total",
			Help: "Input streams that could not be read or parsed at all",
		},
	)

	r.IngestDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "statgraph_ingest_duration_seconds",
			Help:    "Time spent loading and parsing input files",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
	)
}

func (r *Registry) initGraphMetrics() {
	r.GraphNodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "statgraph_graph_nodes_total",
			Help: "Number of nodes in the most recently built graph",
		},
	)

	r.GraphEdgesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "statgraph_graph_edges_total",
			Help: "Number of edges in the most recently built graph",
		},
	)

	r.GraphBuildDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "statgraph_graph_build_duration_seconds",
			Help:    "Time spent accumulating records into the graph",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
	)
}

func (r *Registry) initClusteringMetrics() {
	r.ClusteringRunsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "statgraph_clustering_runs_total",
			Help: "Clustering executions by algorithm and status",
		},
		[]string{"algorithm", "status"},
	)

	r.ClusteringDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "statgraph_clustering_duration_seconds",
			Help:    "Clustering duration by algorithm",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"algorithm"},
	)

	r.CommunitiesDetected = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "statgraph_communities_detected",
			Help: "Community count from the most recent detection run",
		},
	)

	r.CommunityModularity = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "statgraph_community_modularity",
			Help: "Modularity of the most recent community partition",
		},
	)
}
