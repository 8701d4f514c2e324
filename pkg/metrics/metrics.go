package metrics

import (
	"time"
)

// RecordIngest records one completed ingestion, counting rows seen and rows
// whose value cell was absent.
func (r *Registry) RecordIngest(rows, missingValues int, duration time.Duration) {
	r.IngestRowsTotal.Add(float64(rows))
	r.IngestMissingValues.Add(float64(missingValues))
	r.IngestDuration.Observe(duration.Seconds())
}

// RecordIngestFailure records a fatal ingestion failure.
func (r *Registry) RecordIngestFailure() {
	r.IngestFailuresTotal.Inc()
}

// RecordGraphBuild records the shape of a freshly built graph.
func (r *Registry) RecordGraphBuild(nodes, edges int, duration time.Duration) {
	r.GraphNodesTotal.Set(float64(nodes))
	r.GraphEdgesTotal.Set(float64(edges))
	r.GraphBuildDuration.Observe(duration.Seconds())
}

// RecordClustering records one clustering execution
func (r *Registry) RecordClustering(algorithm, status string, duration time.Duration) {
	r.ClusteringRunsTotal.WithLabelValues(algorithm, status).Inc()
	r.ClusteringDuration.WithLabelValues(algorithm).Observe(duration.Seconds())
}

// RecordCommunities records the outcome of a community detection run
func (r *Registry) RecordCommunities(count int, modularity float64) {
	r.CommunitiesDetected.Set(float64(count))
	r.CommunityModularity.Set(modularity)
}
