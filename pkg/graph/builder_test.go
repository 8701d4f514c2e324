package graph

import (
	"testing"

	"github.com/dd0wney/statgraph/pkg/ingest"
)

// twoEntityRecords is the reference scenario: two entities, one observation
// each, in the same year.
func twoEntityRecords() []ingest.Record {
	return []ingest.Record{
		{Entity: "A", Year: 2020, Indicator: "edu", Series: "s", Value: ingest.Float64(10.0)},
		{Entity: "B", Year: 2020, Indicator: "edu", Series: "s", Value: ingest.Float64(20.0)},
	}
}

// TestBuild_SelfWeight tests the self-weight policy against the reference
// scenario: each entity's value lands on its own self-loop and no
// cross-entity edge appears
func TestBuild_SelfWeight(t *testing.T) {
	g, labels := Build(twoEntityRecords(), PolicySelfWeight)

	if g.NodeCount() != 2 {
		t.Fatalf("Expected 2 nodes, got %d", g.NodeCount())
	}
	if len(labels) != 2 || labels[0] != "A" || labels[1] != "B" {
		t.Errorf("Expected labels [A B], got %v", labels)
	}

	a, _ := g.IndexOf("A")
	b, _ := g.IndexOf("B")

	if g.Weight(a, a) != 10.0 {
		t.Errorf("Expected weight(A,A) = 10.0, got %v", g.Weight(a, a))
	}
	if g.Weight(b, b) != 20.0 {
		t.Errorf("Expected weight(B,B) = 20.0, got %v", g.Weight(b, b))
	}
	if g.Weight(a, b) != 0.0 {
		t.Errorf("Expected weight(A,B) = 0.0, got %v", g.Weight(a, b))
	}
}

// TestBuild_EmptyRecords tests that no records produce a zero-node graph
func TestBuild_EmptyRecords(t *testing.T) {
	g, labels := Build(nil, PolicySelfWeight)

	if g.NodeCount() != 0 {
		t.Errorf("Expected 0 nodes, got %d", g.NodeCount())
	}
	if g.EdgeCount() != 0 {
		t.Errorf("Expected 0 edges, got %d", g.EdgeCount())
	}
	if len(labels) != 0 {
		t.Errorf("Expected no labels, got %v", labels)
	}
}

// TestBuild_MissingValue tests that an absent value creates the node but
// contributes no weight
func TestBuild_MissingValue(t *testing.T) {
	records := []ingest.Record{
		{Entity: "A", Year: 2020},
		{Entity: "A", Year: 2021, Value: ingest.Float64(7.0)},
	}

	g, _ := Build(records, PolicySelfWeight)

	if g.NodeCount() != 1 {
		t.Fatalf("Expected 1 node, got %d", g.NodeCount())
	}
	a, _ := g.IndexOf("A")
	if g.Weight(a, a) != 7.0 {
		t.Errorf("Expected weight 7.0, got %v", g.Weight(a, a))
	}
}

// TestBuild_RepeatedEntityAccumulates tests that repeated observations add up
func TestBuild_RepeatedEntityAccumulates(t *testing.T) {
	records := []ingest.Record{
		{Entity: "A", Year: 2019, Value: ingest.Float64(1.0)},
		{Entity: "A", Year: 2020, Value: ingest.Float64(2.0)},
		{Entity: "A", Year: 2021, Value: ingest.Float64(3.0)},
	}

	g, _ := Build(records, PolicySelfWeight)
	a, _ := g.IndexOf("A")
	if g.Weight(a, a) != 6.0 {
		t.Errorf("Expected accumulated weight 6.0, got %v", g.Weight(a, a))
	}
}

// TestBuild_Idempotent tests that rebuilding from the same sequence yields
// identical node sets and weights
func TestBuild_Idempotent(t *testing.T) {
	records := []ingest.Record{
		{Entity: "A", Year: 2020, Value: ingest.Float64(10.0)},
		{Entity: "B", Year: 2021, Value: ingest.Float64(20.0)},
		{Entity: "A", Year: 2022, Value: ingest.Float64(5.0)},
	}

	for _, policy := range []Policy{PolicySelfWeight, PolicyTemporalDecay} {
		first, firstLabels := Build(records, policy)
		second, secondLabels := Build(records, policy)

		if first.NodeCount() != second.NodeCount() {
			t.Fatalf("[%s] Node counts differ: %d vs %d", policy, first.NodeCount(), second.NodeCount())
		}
		for i := range firstLabels {
			if firstLabels[i] != secondLabels[i] {
				t.Errorf("[%s] Label %d differs: %q vs %q", policy, i, firstLabels[i], secondLabels[i])
			}
		}
		for i := 0; i < first.NodeCount(); i++ {
			for j := 0; j < first.NodeCount(); j++ {
				if first.Weight(i, j) != second.Weight(i, j) {
					t.Errorf("[%s] Weight (%d,%d) differs: %v vs %v", policy, i, j, first.Weight(i, j), second.Weight(i, j))
				}
			}
		}
	}
}

// TestBuild_TemporalDecay tests year-scaled fan-out over nodes present at
// accumulation time. With scale 1, record r contributes value*year to every
// pair (r.entity, existing node).
func TestBuild_TemporalDecay(t *testing.T) {
	records := []ingest.Record{
		{Entity: "A", Year: 1, Value: ingest.Float64(2.0)},
		{Entity: "B", Year: 2, Value: ingest.Float64(3.0)},
	}

	g, _ := BuildWithConfig(records, BuildConfig{Policy: PolicyTemporalDecay, DecayScale: 1.0})

	a, _ := g.IndexOf("A")
	b, _ := g.IndexOf("B")

	// Record 1: only A exists, contribution 2*1 = 2 lands on (A,A).
	// Record 2: A and B exist, contribution 3*2 = 6 lands on (B,A) and (B,B).
	if g.Weight(a, a) != 2.0 {
		t.Errorf("Expected weight(A,A) = 2.0, got %v", g.Weight(a, a))
	}
	if g.Weight(a, b) != 6.0 {
		t.Errorf("Expected weight(A,B) = 6.0, got %v", g.Weight(a, b))
	}
	if g.Weight(b, b) != 6.0 {
		t.Errorf("Expected weight(B,B) = 6.0, got %v", g.Weight(b, b))
	}
}

// TestBuild_TemporalDecayOrderSensitive tests the documented contract that
// input order changes which pairs receive contributions
func TestBuild_TemporalDecayOrderSensitive(t *testing.T) {
	forward := []ingest.Record{
		{Entity: "A", Year: 1, Value: ingest.Float64(2.0)},
		{Entity: "B", Year: 2, Value: ingest.Float64(3.0)},
	}
	reversed := []ingest.Record{forward[1], forward[0]}

	fg, _ := BuildWithConfig(forward, BuildConfig{Policy: PolicyTemporalDecay, DecayScale: 1.0})
	rg, _ := BuildWithConfig(reversed, BuildConfig{Policy: PolicyTemporalDecay, DecayScale: 1.0})

	fa, _ := fg.IndexOf("A")
	fb, _ := fg.IndexOf("B")
	ra, _ := rg.IndexOf("A")
	rb, _ := rg.IndexOf("B")

	// Forward: (A,B) gets B's fan-out. Reversed: (A,B) gets A's fan-out.
	if fg.Weight(fa, fb) == rg.Weight(ra, rb) {
		t.Errorf("Expected order-sensitive cross weights, both are %v", fg.Weight(fa, fb))
	}
}

// TestParsePolicy tests policy string parsing
func TestParsePolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    Policy
		wantErr bool
	}{
		{"self-weight", PolicySelfWeight, false},
		{"temporal-decay", PolicyTemporalDecay, false},
		{"", PolicySelfWeight, false},
		{"bogus", "", true},
	}

	for _, tt := range tests {
		got, err := ParsePolicy(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParsePolicy(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePolicy(%q): unexpected error %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParsePolicy(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
