package engine

import (
	"fmt"
	"math"
)

// singularTol is the smallest pivot magnitude accepted by invert.
const singularTol = 1e-12

// invert returns the inverse of the square matrix m.
// Blueprint:
//
//	Stage 1 (Prepare): build the augmented matrix [m | I].
//	Stage 2 (Eliminate): for each column pick the largest |pivot| at or below
//	the diagonal, swap it up, scale the row and clear the column elsewhere.
//	Stage 3 (Finalize): read the right half.
//
// Complexity: O(n³) time, O(n²) memory.
func invert(m [][]float64) ([][]float64, error) {
	// Stage 1: augmented matrix
	n := len(m)
	aug := make([][]float64, n)
	var i, j, k int
	for i = 0; i < n; i++ {
		if len(m[i]) != n {
			return nil, fmt.Errorf("row %d has %d entries, want %d: %w", i, len(m[i]), n, ErrSingularBasis)
		}
		aug[i] = make([]float64, 2*n)
		copy(aug[i], m[i])
		aug[i][n+i] = 1
	}

	// Stage 2: Gauss–Jordan with partial pivoting
	var p, f float64
	var best int
	for k = 0; k < n; k++ {
		best = k
		for i = k + 1; i < n; i++ {
			if math.Abs(aug[i][k]) > math.Abs(aug[best][k]) {
				best = i
			}
		}
		if math.Abs(aug[best][k]) < singularTol {
			return nil, fmt.Errorf("zero pivot in column %d: %w", k, ErrSingularBasis)
		}
		aug[k], aug[best] = aug[best], aug[k]

		p = aug[k][k]
		for j = 0; j < 2*n; j++ {
			aug[k][j] /= p
		}
		for i = 0; i < n; i++ {
			if i == k {
				continue
			}
			f = aug[i][k]
			if f == 0 {
				continue
			}
			for j = 0; j < 2*n; j++ {
				aug[i][j] -= f * aug[k][j]
			}
		}
	}

	// Stage 3: right half
	inv := make([][]float64, n)
	for i = 0; i < n; i++ {
		inv[i] = append([]float64(nil), aug[i][n:]...)
	}

	return inv, nil
}
