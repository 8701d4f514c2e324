package algorithms

import (
	"sort"

	"github.com/dd0wney/statgraph/pkg/graph"
)

// LouvainConfig tunes the community detection loop.
type LouvainConfig struct {
	MaxPasses         int     // upper bound on local-move + coarsen cycles
	MinModularityGain float64 // a move must beat this to count as an improvement
}

// DefaultLouvainConfig returns the settings used by the pipeline.
func DefaultLouvainConfig() LouvainConfig {
	return LouvainConfig{
		MaxPasses:         10,
		MinModularityGain: 1e-9,
	}
}

// Louvain partitions the graph's nodes into communities by modularity
// optimization: greedy local moving of nodes between communities, then
// contraction of each community into a super-node, repeated until no move
// improves modularity. The number of communities is data-determined.
//
// The procedure is deterministic for a fixed node ordering: nodes are swept
// in index order and ties between candidate communities go to the lowest
// community index. Isolated nodes end up as singleton communities; a
// zero-node graph yields an empty partition.
func Louvain(g *graph.Graph) (*CommunityDetectionResult, error) {
	return LouvainWithConfig(g, DefaultLouvainConfig())
}

// LouvainWithConfig runs Louvain with explicit settings.
func LouvainWithConfig(g *graph.Graph, config LouvainConfig) (*CommunityDetectionResult, error) {
	n := g.NodeCount()
	if n == 0 {
		return &CommunityDetectionResult{
			Communities:   []*Community{},
			NodeCommunity: map[int]int{},
		}, nil
	}
	if config.MaxPasses <= 0 {
		config.MaxPasses = DefaultLouvainConfig().MaxPasses
	}

	m := g.TotalWeight()
	if m == 0 {
		// No edges: every node is its own community and modularity is 0.
		return singletonResult(n), nil
	}

	// Working multigraph, coarsened between passes. nodeComm[i] tracks the
	// current community of original node i across levels.
	work := newWorkGraph(g)
	nodeComm := make([]int, n)
	for i := range nodeComm {
		nodeComm[i] = i
	}

	for pass := 0; pass < config.MaxPasses; pass++ {
		community, moved := localMove(work, m, config.MinModularityGain)
		renumbered, count := renumberCommunities(community)

		for i := range nodeComm {
			nodeComm[i] = renumbered[nodeComm[i]]
		}

		if !moved || count == len(work.adj) {
			break
		}
		work = work.coarsen(renumbered, count)
	}

	result := buildResult(nodeComm, n)
	result.Modularity = modularity(g, nodeComm, m)
	return result, nil
}

// workGraph is the coarsenable view Louvain iterates on: symmetric adjacency
// maps with self-loops holding intra-community weight.
type workGraph struct {
	adj []map[int]float64
}

func newWorkGraph(g *graph.Graph) *workGraph {
	adj := make([]map[int]float64, g.NodeCount())
	for i := range adj {
		adj[i] = make(map[int]float64)
		g.Neighbors(i, func(j int, w float64) {
			adj[i][j] = w
		})
	}
	return &workGraph{adj: adj}
}

// degree returns the weighted degree of node i, self-loops counted twice.
func (w *workGraph) degree(i int) float64 {
	d := 0.0
	for j, weight := range w.adj[i] {
		d += weight
		if j == i {
			d += weight
		}
	}
	return d
}

// localMove greedily reassigns nodes to neighboring communities while any
// reassignment improves modularity. Nodes are swept in index order; the
// winning community on a tied gain is the one with the lowest index.
func localMove(w *workGraph, m, minGain float64) ([]int, bool) {
	n := len(w.adj)
	community := make([]int, n)
	commDegree := make([]float64, n)
	for i := 0; i < n; i++ {
		community[i] = i
		commDegree[i] = w.degree(i)
	}

	anyMoved := false
	for {
		changed := false
		for i := 0; i < n; i++ {
			ki := w.degree(i)
			current := community[i]

			// Weight from i to each adjacent community, self-loop excluded.
			neighWeight := map[int]float64{current: 0}
			for j, weight := range w.adj[i] {
				if j != i {
					neighWeight[community[j]] += weight
				}
			}

			// Evaluate gains with i lifted out of its community.
			commDegree[current] -= ki

			candidates := make([]int, 0, len(neighWeight))
			for c := range neighWeight {
				candidates = append(candidates, c)
			}
			sort.Ints(candidates)

			best := current
			bestGain := neighWeight[current] - commDegree[current]*ki/(2*m)
			for _, c := range candidates {
				if c == current {
					continue
				}
				gain := neighWeight[c] - commDegree[c]*ki/(2*m)
				if gain > bestGain+minGain || (gain == bestGain && c < best) {
					best = c
					bestGain = gain
				}
			}

			commDegree[best] += ki
			if best != current {
				community[i] = best
				changed = true
				anyMoved = true
			}
		}
		if !changed {
			break
		}
	}

	return community, anyMoved
}

// renumberCommunities maps community labels onto 0..count-1 in order of
// their lowest member node index, keeping results stable across runs.
func renumberCommunities(community []int) ([]int, int) {
	renumbered := make([]int, len(community))
	seen := make(map[int]int, len(community))
	next := 0
	for i, c := range community {
		id, ok := seen[c]
		if !ok {
			id = next
			seen[c] = id
			next++
		}
		renumbered[i] = id
	}
	return renumbered, next
}

// coarsen contracts each community into one super-node. Intra-community
// weight (edges once plus self-loops) becomes the super-node's self-loop, so
// total weight and degrees are preserved.
func (w *workGraph) coarsen(renumbered []int, count int) *workGraph {
	adj := make([]map[int]float64, count)
	for i := range adj {
		adj[i] = make(map[int]float64)
	}

	for i := range w.adj {
		for j, weight := range w.adj[i] {
			if j < i {
				continue
			}
			ci, cj := renumbered[i], renumbered[j]
			if ci == cj {
				adj[ci][ci] += weight
			} else {
				adj[ci][cj] += weight
				adj[cj][ci] += weight
			}
		}
	}

	return &workGraph{adj: adj}
}

// buildResult groups original nodes by final community, renumbering
// community IDs by first appearance in node index order.
func buildResult(nodeComm []int, n int) *CommunityDetectionResult {
	renumbered, count := renumberCommunities(nodeComm)

	communities := make([]*Community, count)
	nodeCommunity := make(map[int]int, n)
	for i := 0; i < n; i++ {
		id := renumbered[i]
		if communities[id] == nil {
			communities[id] = &Community{ID: id, Nodes: make([]int, 0, 4)}
		}
		communities[id].Nodes = append(communities[id].Nodes, i)
		nodeCommunity[i] = id
	}
	for _, c := range communities {
		c.Size = len(c.Nodes)
	}

	return &CommunityDetectionResult{
		Communities:   communities,
		NodeCommunity: nodeCommunity,
	}
}

// modularity evaluates the partition against the original graph:
// Q = sum over node pairs in the same community of (A_ij - k_i*k_j/2m) / 2m,
// with self-loop weight entering A's diagonal twice so degrees stay
// consistent.
func modularity(g *graph.Graph, nodeComm []int, m float64) float64 {
	twoM := 2 * m

	intra := 0.0
	commDegree := make(map[int]float64)
	for i := 0; i < g.NodeCount(); i++ {
		commDegree[nodeComm[i]] += g.WeightedDegree(i)
		g.Neighbors(i, func(j int, w float64) {
			if nodeComm[i] != nodeComm[j] {
				return
			}
			if j == i {
				intra += 2 * w
			} else {
				intra += w
			}
		})
	}

	q := intra / twoM
	for _, degree := range commDegree {
		share := degree / twoM
		q -= share * share
	}
	return q
}

func singletonResult(n int) *CommunityDetectionResult {
	communities := make([]*Community, n)
	nodeCommunity := make(map[int]int, n)
	for i := 0; i < n; i++ {
		communities[i] = &Community{ID: i, Nodes: []int{i}, Size: 1}
		nodeCommunity[i] = i
	}
	return &CommunityDetectionResult{
		Communities:   communities,
		NodeCommunity: nodeCommunity,
	}
}
