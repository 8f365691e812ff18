// SPDX-License-Identifier: MIT

package tableau

import (
	"fmt"
	"math"
)

// denseErrorf attaches the method and coordinates to a sentinel.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major numeric grid.
//   - r,c hold dimensions.
//   - data is a flat buffer of length r*c (offset = i*c + j).
type Dense struct {
	r, c int
	data []float64
}

// NewDense creates a rows×cols zero grid.
//
// Errors:
//   - ErrInvalidDimensions when rows<=0 or cols<=0.
//
// Complexity: O(rows*cols) time and space.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{r: rows, c: cols, data: make([]float64, rows*cols)}, nil
}

// FromRows copies a [][]float64 into a new Dense.
//
// Implementation:
//   - Stage 1: validate non-empty and rectangular input.
//   - Stage 2: reject NaN entries.
//   - Stage 3: copy row by row into the flat buffer.
//
// Errors:
//   - ErrInvalidDimensions for an empty input or empty first row.
//   - ErrRagged when rows differ in length.
//   - ErrNaN when any entry is NaN.
func FromRows(rows [][]float64) (*Dense, error) {
	// 1. Shape
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrInvalidDimensions
	}
	c := len(rows[0])
	var i, j int
	for i = range rows {
		if len(rows[i]) != c {
			return nil, fmt.Errorf("row %d has %d values, want %d: %w", i, len(rows[i]), c, ErrRagged)
		}
		// 2. Numeric policy
		for j = range rows[i] {
			if math.IsNaN(rows[i][j]) {
				return nil, denseErrorf("FromRows", i, j, ErrNaN)
			}
		}
	}

	// 3. Copy
	d := &Dense{r: len(rows), c: c, data: make([]float64, len(rows)*c)}
	for i = range rows {
		copy(d.data[i*c:(i+1)*c], rows[i])
	}

	return d, nil
}

// Rows returns the row count.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count.
func (m *Dense) Cols() int { return m.c }

func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// Set stores v at (row, col).
//
// Errors:
//   - ErrOutOfRange for invalid indices.
//   - ErrNaN when v is NaN.
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if math.IsNaN(v) {
		return denseErrorf(ctxSet, row, col, ErrNaN)
	}
	m.data[off] = v

	return nil
}

// RowsCopy returns the grid as freshly allocated [][]float64.
func (m *Dense) RowsCopy() [][]float64 {
	out := make([][]float64, m.r)
	for i := 0; i < m.r; i++ {
		out[i] = make([]float64, m.c)
		copy(out[i], m.data[i*m.c:(i+1)*m.c])
	}

	return out
}
