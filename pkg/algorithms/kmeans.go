package algorithms

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/dd0wney/statgraph/pkg/graph"
	"github.com/dd0wney/statgraph/pkg/vector"
)

// ErrInvalidClusterCount is returned when k lies outside [1, node count].
var ErrInvalidClusterCount = errors.New("invalid cluster count")

// ErrEmptyGraph is returned when an operation needing at least one node is
// invoked on a zero-node graph.
var ErrEmptyGraph = errors.New("empty graph")

// KMeansConfig tunes the vector clustering loop.
type KMeansConfig struct {
	K             int
	MaxIterations int
	Seed          int64 // seed for k-means++ centroid selection
}

// DefaultKMeansSeed fixes centroid seeding so repeated runs over the same
// graph produce the same labels.
const DefaultKMeansSeed = 1

const defaultKMeansIterations = 100

// KMeans clusters the graph's nodes in adjacency space: each node is the
// dense vector of its edge weights to every node, and clusters form by
// Euclidean distance to k centroids. Centroids are seeded with k-means++
// driven by a fixed-seed PRNG, so output is reproducible for a fixed node
// ordering.
//
// The result is one label in [0, k) per node, indexed like the graph's
// labels. This is deliberately not the grouped-partition shape Louvain
// returns; callers needing groups must build them explicitly.
func KMeans(g *graph.Graph, k int) ([]int, error) {
	return KMeansWithConfig(g, KMeansConfig{K: k, MaxIterations: defaultKMeansIterations, Seed: DefaultKMeansSeed})
}

// KMeansWithConfig runs k-means with explicit settings.
func KMeansWithConfig(g *graph.Graph, config KMeansConfig) ([]int, error) {
	n := g.NodeCount()
	if n == 0 {
		return nil, fmt.Errorf("%w: no vectors to cluster", ErrEmptyGraph)
	}
	if config.K < 1 || config.K > n {
		return nil, fmt.Errorf("%w: k=%d with %d nodes", ErrInvalidClusterCount, config.K, n)
	}
	if config.MaxIterations <= 0 {
		config.MaxIterations = defaultKMeansIterations
	}

	rows := g.AdjacencyMatrix()
	centroids := seedCentroids(rows, config.K, rand.New(rand.NewSource(config.Seed)))

	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}

	for iter := 0; iter < config.MaxIterations; iter++ {
		changed := false
		for i, row := range rows {
			best := nearestCentroid(row, centroids)
			if best != labels[i] {
				labels[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}

		// Update step: each centroid becomes the mean of its members. A
		// centroid that lost all members keeps its position.
		members := make([][][]float64, config.K)
		for i, row := range rows {
			members[labels[i]] = append(members[labels[i]], row)
		}
		for c := range centroids {
			if len(members[c]) > 0 {
				centroids[c] = vector.Mean(members[c], n)
			}
		}
	}

	return labels, nil
}

// seedCentroids implements k-means++: the first centroid is drawn uniformly,
// each further one proportionally to squared distance from the nearest
// centroid chosen so far. Degenerate inputs where every remaining point sits
// on an existing centroid fall back to the lowest unused row.
func seedCentroids(rows [][]float64, k int, rng *rand.Rand) [][]float64 {
	n := len(rows)
	centroids := make([][]float64, 0, k)
	chosen := make(map[int]bool, k)

	first := rng.Intn(n)
	centroids = append(centroids, cloneVector(rows[first]))
	chosen[first] = true

	distances := make([]float64, n)
	for len(centroids) < k {
		total := 0.0
		for i, row := range rows {
			if chosen[i] {
				distances[i] = 0
				continue
			}
			nearest, _ := vector.SquaredEuclideanDistance(row, centroids[0])
			for _, c := range centroids[1:] {
				if d, _ := vector.SquaredEuclideanDistance(row, c); d < nearest {
					nearest = d
				}
			}
			distances[i] = nearest
			total += nearest
		}

		next := -1
		if total > 0 {
			target := rng.Float64() * total
			cumulative := 0.0
			for i, d := range distances {
				cumulative += d
				if cumulative >= target && !chosen[i] {
					next = i
					break
				}
			}
		}
		if next == -1 {
			// All remaining rows coincide with a centroid.
			for i := 0; i < n; i++ {
				if !chosen[i] {
					next = i
					break
				}
			}
		}

		centroids = append(centroids, cloneVector(rows[next]))
		chosen[next] = true
	}

	return centroids
}

// nearestCentroid returns the index of the closest centroid, lowest index
// winning ties. Distances are compared in squared form.
func nearestCentroid(row []float64, centroids [][]float64) int {
	best := 0
	bestDist, _ := vector.SquaredEuclideanDistance(row, centroids[0])
	for c := 1; c < len(centroids); c++ {
		if d, _ := vector.SquaredEuclideanDistance(row, centroids[c]); d < bestDist {
			best = c
			bestDist = d
		}
	}
	return best
}

func cloneVector(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	return out
}
