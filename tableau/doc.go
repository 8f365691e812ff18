// Package tableau provides the labelled numeric grid exchanged between
// solving engines and the reporting layer.
//
// A Tableau is one snapshot of an optimization algorithm's state: the objective
// row followed by one row per constraint, laid out over decision, slack and
// right-hand-side columns. Storage is a row-major Dense grid, so the offset of
// (i, j) is i*cols + j and every accessor is bounds-checked.
//
// Dimension contract:
//
//   - len(Columns()) == values.Cols()
//   - len(Rows())    == values.Rows()
//
// New enforces the contract on construction; Validate re-checks it for
// tableaus assembled by hand. Violations wrap ErrLabelMismatch.
//
// Errors:
//
//   - ErrInvalidDimensions  non-positive shape requested.
//   - ErrOutOfRange         index outside the grid.
//   - ErrRagged             rows of unequal length passed to FromRows.
//   - ErrNaN                NaN written into a grid.
//   - ErrLabelMismatch      label counts disagree with the grid shape.
//   - ErrNilTableau         nil receiver or nil grid.
package tableau
