package vector

import (
	"fmt"
	"math"
)

// ErrDimensionMismatch is returned when vector dimensions don't match
var ErrDimensionMismatch = fmt.Errorf("vector dimensions mismatch")

// EuclideanDistance calculates the Euclidean (L2) distance between two vectors
// Formula: sqrt(sum((a[i] - b[i])^2))
// Returns error if vector dimensions don't match
func EuclideanDistance(a, b []float64) (float64, error) {
	sq, err := SquaredEuclideanDistance(a, b)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(sq), nil
}

// SquaredEuclideanDistance calculates the squared L2 distance between two
// vectors. Cheaper than EuclideanDistance and order-equivalent, so nearest
// centroid searches use this form.
// Returns error if vector dimensions don't match
func SquaredEuclideanDistance(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, len(a), len(b))
	}

	sum := 0.0
	for i := 0; i < len(a); i++ {
		diff := a[i] - b[i]
		sum += diff * diff
	}

	return sum, nil
}

// Magnitude calculates the magnitude (L2 norm) of a vector
func Magnitude(v []float64) float64 {
	sum := 0.0
	for _, val := range v {
		sum += val * val
	}
	return math.Sqrt(sum)
}

// Mean computes the component-wise mean of the given vectors. dim is the
// expected dimension and is used when the slice is empty; all vectors must
// share it.
func Mean(vectors [][]float64, dim int) []float64 {
	mean := make([]float64, dim)
	if len(vectors) == 0 {
		return mean
	}

	for _, v := range vectors {
		for i, val := range v {
			mean[i] += val
		}
	}
	for i := range mean {
		mean[i] /= float64(len(vectors))
	}
	return mean
}
