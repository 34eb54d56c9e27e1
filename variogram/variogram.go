// Package variogram estimates empirical variograms of spatial random
// fields with the Matheron estimator.
package variogram

import (
	"math"
	"sort"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/joshua-benabou/gstools-go/core/parallel"
	gserrors "github.com/joshua-benabou/gstools-go/pkg/errors"
)

// pairScanSeqThreshold is the point count below which the quadratic pair
// scan runs sequentially.
const pairScanSeqThreshold = 64

// EstimateUnstructured computes the Matheron variogram estimator
//
//	gamma(b) = 1/(2 N_b) * sum_{(i,j) in b} (z_i - z_j)^2
//
// over all point pairs whose distance falls into the bins spanned by
// binEdges. pos holds one point per column (dim x n) and field one value
// per point. A pair belongs to bin b when binEdges[b] <= dist <
// binEdges[b+1]. It returns the bin centers and the semivariance per bin;
// bins without pairs yield zero.
func EstimateUnstructured(pos mat.Matrix, field, binEdges []float64) (centers, gamma []float64, err error) {
	dim, n := pos.Dims()
	if len(field) != n {
		return nil, nil, gserrors.NewDimensionError("variogram.EstimateUnstructured", n, len(field), 1)
	}
	if len(binEdges) < 2 {
		return nil, nil, gserrors.NewValueError("variogram.EstimateUnstructured",
			"at least two bin edges are needed")
	}
	if binEdges[0] < 0 {
		return nil, nil, gserrors.NewValueError("variogram.EstimateUnstructured",
			"bin edges must not be negative")
	}
	for k := 1; k < len(binEdges); k++ {
		if binEdges[k] <= binEdges[k-1] {
			return nil, nil, gserrors.NewValueError("variogram.EstimateUnstructured",
				"bin edges must be strictly increasing")
		}
	}

	bins := len(binEdges) - 1
	centers = make([]float64, bins)
	for k := 0; k < bins; k++ {
		centers[k] = (binEdges[k] + binEdges[k+1]) / 2
	}

	sums := make([]float64, bins)
	counts := make([]int64, bins)
	var mu sync.Mutex

	parallel.ParallelizeWithThreshold(n, pairScanSeqThreshold, func(start, end int) {
		localSums := make([]float64, bins)
		localCounts := make([]int64, bins)
		for i := start; i < end; i++ {
			for j := i + 1; j < n; j++ {
				var d2 float64
				for d := 0; d < dim; d++ {
					diff := pos.At(d, i) - pos.At(d, j)
					d2 += diff * diff
				}
				b := findBin(binEdges, math.Sqrt(d2))
				if b < 0 {
					continue
				}
				diff := field[i] - field[j]
				localSums[b] += diff * diff
				localCounts[b]++
			}
		}
		mu.Lock()
		for k := 0; k < bins; k++ {
			sums[k] += localSums[k]
			counts[k] += localCounts[k]
		}
		mu.Unlock()
	})

	gamma = make([]float64, bins)
	for k := 0; k < bins; k++ {
		if counts[k] > 0 {
			gamma[k] = sums[k] / (2 * float64(counts[k]))
		}
	}
	return centers, gamma, nil
}

// findBin locates the bin with edges[b] <= d < edges[b+1], or -1 when d
// falls outside the binned range.
func findBin(edges []float64, d float64) int {
	if d < edges[0] || d >= edges[len(edges)-1] {
		return -1
	}
	idx := sort.Search(len(edges), func(i int) bool { return edges[i] > d })
	return idx - 1
}

// EstimateStructured computes the Matheron variogram of a gridded field
// along one axis: for every lag k it averages the squared increments over
// all grid lines in that direction,
//
//	gamma(k) = 1/(2 N_k) * sum_lines sum_i (f[i] - f[i+k])^2.
//
// Axis 0 takes lags along the row index, axis 1 along the column index.
// The result has one entry per possible lag, starting with gamma(0) = 0.
func EstimateStructured(field *mat.Dense, axis int) ([]float64, error) {
	if field == nil {
		return nil, gserrors.NewValueError("variogram.EstimateStructured", "field must not be nil")
	}
	var grid mat.Matrix = field
	switch axis {
	case 0:
	case 1:
		grid = field.T()
	default:
		return nil, gserrors.NewValueError("variogram.EstimateStructured", "axis must be 0 or 1")
	}
	lags, lines := grid.Dims()

	gamma := make([]float64, lags)
	parallel.ParallelizeWithThreshold(lags, 8, func(start, end int) {
		for k := start; k < end; k++ {
			if k == 0 {
				continue
			}
			var sum float64
			for i := 0; i+k < lags; i++ {
				for j := 0; j < lines; j++ {
					diff := grid.At(i, j) - grid.At(i+k, j)
					sum += diff * diff
				}
			}
			gamma[k] = sum / (2 * float64((lags-k)*lines))
		}
	})
	return gamma, nil
}
