package graph

import (
	"fmt"

	"github.com/dd0wney/statgraph/pkg/ingest"
)

// Policy selects how a record's value accumulates into edge weights.
type Policy string

const (
	// PolicySelfWeight adds each record's value to the self-loop of its own
	// entity. A single yearbook row relates an entity only to itself, so no
	// cross-entity edge can honestly be derived from it.
	PolicySelfWeight Policy = "self-weight"

	// PolicyTemporalDecay scales each record's value by its year
	// (value * year * decay scale) and fans the result over every pair
	// involving the record's entity and a node already inserted at that
	// point in the stream. Later records therefore reach more pairs than
	// earlier ones: accumulation is deliberately sensitive to input order,
	// and reruns over the same sequence reproduce the same weights.
	PolicyTemporalDecay Policy = "temporal-decay"
)

// DefaultDecayScale keeps year-scaled contributions in a workable range
// (2020 * 1e-4 ≈ 0.2 per unit of value).
const DefaultDecayScale = 1e-4

// BuildConfig configures graph construction.
type BuildConfig struct {
	Policy     Policy
	DecayScale float64 // only used by PolicyTemporalDecay
}

// Builder accumulates records into a graph. The entity-to-index map lives on
// the builder, not in package state, so concurrent builds never interfere.
type Builder struct {
	config BuildConfig
	graph  *Graph
}

// NewBuilder creates a builder with the given policy and default scale.
func NewBuilder(policy Policy) *Builder {
	return NewBuilderWithConfig(BuildConfig{Policy: policy, DecayScale: DefaultDecayScale})
}

// NewBuilderWithConfig creates a builder with explicit configuration.
func NewBuilderWithConfig(config BuildConfig) *Builder {
	if config.Policy == "" {
		config.Policy = PolicySelfWeight
	}
	if config.DecayScale == 0 {
		config.DecayScale = DefaultDecayScale
	}
	return &Builder{
		config: config,
		graph:  NewGraph(),
	}
}

// Add accumulates one record. A record with an absent value still creates
// its entity's node but contributes zero weight.
func (b *Builder) Add(record ingest.Record) {
	idx := b.graph.AddNode(record.Entity)
	value := record.ValueOrZero()

	switch b.config.Policy {
	case PolicyTemporalDecay:
		contribution := value * float64(record.Year) * b.config.DecayScale
		if contribution == 0 {
			return
		}
		for j := 0; j < b.graph.NodeCount(); j++ {
			b.graph.AddWeight(idx, j, contribution)
		}
	default: // PolicySelfWeight
		if value == 0 {
			return
		}
		b.graph.AddWeight(idx, idx, value)
	}
}

// Graph returns the accumulated graph. The builder must not be reused after.
func (b *Builder) Graph() *Graph {
	return b.graph
}

// Build constructs a graph from the full record sequence under the given
// policy and returns it with the insertion-ordered labels. An empty sequence
// yields a zero-node graph; downstream partitioners accept that.
func Build(records []ingest.Record, policy Policy) (*Graph, []string) {
	return BuildWithConfig(records, BuildConfig{Policy: policy})
}

// BuildWithConfig is Build with explicit configuration.
func BuildWithConfig(records []ingest.Record, config BuildConfig) (*Graph, []string) {
	builder := NewBuilderWithConfig(config)
	for _, record := range records {
		builder.Add(record)
	}
	g := builder.Graph()
	return g, g.Labels()
}

// ParsePolicy converts a config string into a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch Policy(s) {
	case PolicySelfWeight, PolicyTemporalDecay:
		return Policy(s), nil
	case "":
		return PolicySelfWeight, nil
	default:
		return "", fmt.Errorf("unknown accumulation policy %q", s)
	}
}
