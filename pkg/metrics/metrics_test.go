package metrics

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}

	// Verify all metrics are initialized
	if r.IngestRowsTotal == nil {
		t.Error("IngestRowsTotal not initialized")
	}
	if r.GraphNodesTotal == nil {
		t.Error("GraphNodesTotal not initialized")
	}
	if r.ClusteringRunsTotal == nil {
		t.Error("ClusteringRunsTotal not initialized")
	}
	if r.CommunityModularity == nil {
		t.Error("CommunityModularity not initialized")
	}
	if r.registry == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	// Should return the same instance
	r1 := DefaultRegistry()
	r2 := DefaultRegistry()

	if r1 != r2 {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordIngest(t *testing.T) {
	r := NewRegistry()

	r.RecordIngest(100, 7, 50*time.Millisecond)
	r.RecordIngest(50, 3, 20*time.Millisecond)

	var metric dto.Metric
	if err := r.IngestRowsTotal.Write(&metric); err != nil {
		t.Fatalf("Failed to read metric: %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 150 {
		t.Errorf("Expected 150 rows, got %v", got)
	}

	if err := r.IngestMissingValues.Write(&metric); err != nil {
		t.Fatalf("Failed to read metric: %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 10 {
		t.Errorf("Expected 10 missing values, got %v", got)
	}
}

func TestRecordGraphBuild(t *testing.T) {
	r := NewRegistry()

	r.RecordGraphBuild(42, 17, 5*time.Millisecond)

	var metric dto.Metric
	if err := r.GraphNodesTotal.Write(&metric); err != nil {
		t.Fatalf("Failed to read metric: %v", err)
	}
	if got := metric.GetGauge().GetValue(); got != 42 {
		t.Errorf("Expected 42 nodes, got %v", got)
	}

	if err := r.GraphEdgesTotal.Write(&metric); err != nil {
		t.Fatalf("Failed to read metric: %v", err)
	}
	if got := metric.GetGauge().GetValue(); got != 17 {
		t.Errorf("Expected 17 edges, got %v", got)
	}
}

func TestRecordClustering(t *testing.T) {
	r := NewRegistry()

	r.RecordClustering("louvain", "ok", 10*time.Millisecond)
	r.RecordClustering("kmeans", "error", time.Millisecond)
	r.RecordClustering("louvain", "ok", 15*time.Millisecond)

	counter, err := r.ClusteringRunsTotal.GetMetricWithLabelValues("louvain", "ok")
	if err != nil {
		t.Fatalf("Failed to get metric: %v", err)
	}

	var metric dto.Metric
	if err := counter.Write(&metric); err != nil {
		t.Fatalf("Failed to read metric: %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 2 {
		t.Errorf("Expected 2 louvain runs, got %v", got)
	}
}

func TestRecordCommunities(t *testing.T) {
	r := NewRegistry()

	r.RecordCommunities(8, 0.42)

	var metric dto.Metric
	if err := r.CommunitiesDetected.Write(&metric); err != nil {
		t.Fatalf("Failed to read metric: %v", err)
	}
	if got := metric.GetGauge().GetValue(); got != 8 {
		t.Errorf("Expected 8 communities, got %v", got)
	}

	if err := r.CommunityModularity.Write(&metric); err != nil {
		t.Fatalf("Failed to read metric: %v", err)
	}
	if got := metric.GetGauge().GetValue(); got != 0.42 {
		t.Errorf("Expected modularity 0.42, got %v", got)
	}
}
