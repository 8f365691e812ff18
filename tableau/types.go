package tableau

import "errors"

// Every message is prefixed with "tableau: ..." so callers can grep logs and
// match with errors.Is after fmt.Errorf wrapping.
var (
	// ErrInvalidDimensions indicates a requested shape with rows<=0 or cols<=0.
	ErrInvalidDimensions = errors.New("tableau: dimensions must be > 0")

	// ErrOutOfRange indicates a row or column index outside the grid.
	ErrOutOfRange = errors.New("tableau: index out of range")

	// ErrRagged indicates input rows of unequal length.
	ErrRagged = errors.New("tableau: ragged rows")

	// ErrNaN indicates a NaN value. Infinities are allowed: engines use them
	// as "no ratio" markers in diagnostic columns.
	ErrNaN = errors.New("tableau: NaN value")

	// ErrLabelMismatch indicates that the column or row label count does not
	// match the grid shape.
	ErrLabelMismatch = errors.New("tableau: label count does not match grid shape")

	// ErrNilTableau indicates a nil tableau or a tableau without a grid.
	ErrNilTableau = errors.New("tableau: nil tableau")
)

const ctxSet = "Set"
