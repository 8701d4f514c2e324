package graph

import "fmt"

// Graph is a weighted undirected graph over entity labels. Nodes are created
// in first-seen order and keep a stable integer index for their lifetime.
// Self-loops are allowed and carry meaning (an entity's accumulated own
// weight). The graph is built once per run and treated as immutable by
// everything downstream.
type Graph struct {
	labels []string
	index  map[string]int
	adj    []map[int]float64
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		labels: make([]string, 0),
		index:  make(map[string]int),
		adj:    make([]map[int]float64, 0),
	}
}

// AddNode inserts a node for label if it does not exist yet and returns its
// index. Adding an existing label returns the original index.
func (g *Graph) AddNode(label string) int {
	if idx, ok := g.index[label]; ok {
		return idx
	}
	idx := len(g.labels)
	g.index[label] = idx
	g.labels = append(g.labels, label)
	g.adj = append(g.adj, make(map[int]float64))
	return idx
}

// AddWeight accumulates delta onto the undirected edge (i, j). The stored
// weight stays symmetric; i == j accumulates a self-loop.
func (g *Graph) AddWeight(i, j int, delta float64) error {
	if i < 0 || i >= len(g.labels) || j < 0 || j >= len(g.labels) {
		return fmt.Errorf("node index out of range: (%d, %d) with %d nodes", i, j, len(g.labels))
	}
	g.adj[i][j] += delta
	if i != j {
		g.adj[j][i] += delta
	}
	return nil
}

// Weight returns the accumulated weight of the edge (i, j), 0 if absent.
func (g *Graph) Weight(i, j int) float64 {
	if i < 0 || i >= len(g.adj) {
		return 0
	}
	return g.adj[i][j]
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.labels)
}

// EdgeCount returns the number of distinct undirected edges, counting
// self-loops once each.
func (g *Graph) EdgeCount() int {
	count := 0
	for i, neighbors := range g.adj {
		for j := range neighbors {
			if j >= i {
				count++
			}
		}
	}
	return count
}

// Labels returns the node labels in index order. The returned slice is a
// copy; the graph's own ordering never changes after construction.
func (g *Graph) Labels() []string {
	out := make([]string, len(g.labels))
	copy(out, g.labels)
	return out
}

// Label returns the label of node i.
func (g *Graph) Label(i int) string {
	return g.labels[i]
}

// IndexOf returns the index for label and whether it exists.
func (g *Graph) IndexOf(label string) (int, bool) {
	idx, ok := g.index[label]
	return idx, ok
}

// Neighbors calls fn for every neighbor j of node i with the edge weight,
// including a self-loop if present. Iteration order is unspecified.
func (g *Graph) Neighbors(i int, fn func(j int, weight float64)) {
	if i < 0 || i >= len(g.adj) {
		return
	}
	for j, w := range g.adj[i] {
		fn(j, w)
	}
}

// WeightedDegree returns the sum of edge weights incident to node i.
// Self-loop weight is counted twice, as modularity arithmetic expects.
func (g *Graph) WeightedDegree(i int) float64 {
	if i < 0 || i >= len(g.adj) {
		return 0
	}
	degree := 0.0
	for j, w := range g.adj[i] {
		degree += w
		if j == i {
			degree += w
		}
	}
	return degree
}

// TotalWeight returns the sum of all edge weights, counting each undirected
// edge once and self-loops once.
func (g *Graph) TotalWeight() float64 {
	total := 0.0
	for i, neighbors := range g.adj {
		for j, w := range neighbors {
			if j >= i {
				total += w
			}
		}
	}
	return total
}

// AdjacencyMatrix materializes the dense symmetric |N|x|N| weight matrix.
// Cell (i, j) is the edge weight, 0 where no edge exists; the diagonal holds
// self-loop weights. Recomputed on every call, never cached.
func (g *Graph) AdjacencyMatrix() [][]float64 {
	n := len(g.labels)
	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
		for j, w := range g.adj[i] {
			matrix[i][j] = w
		}
	}
	return matrix
}
