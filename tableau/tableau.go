package tableau

import "fmt"

// Tableau is an immutable labelled grid: ordered column labels, ordered row
// labels and a Dense of matching shape.
type Tableau struct {
	columns []string
	rows    []string
	values  *Dense
}

// New builds a tableau from labels and row-major values.
// Inputs are copied; later mutation of the arguments has no effect.
//
// Errors:
//   - FromRows errors (ErrInvalidDimensions, ErrRagged, ErrNaN).
//   - ErrLabelMismatch when label counts disagree with the grid.
func New(columns, rows []string, values [][]float64) (*Tableau, error) {
	d, err := FromRows(values)
	if err != nil {
		return nil, err
	}
	t := &Tableau{
		columns: append([]string(nil), columns...),
		rows:    append([]string(nil), rows...),
		values:  d,
	}
	if err = t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

// Validate checks the dimension contract.
func (t *Tableau) Validate() error {
	if t == nil || t.values == nil {
		return ErrNilTableau
	}
	if len(t.columns) != t.values.Cols() {
		return fmt.Errorf("%d column labels for %d columns: %w", len(t.columns), t.values.Cols(), ErrLabelMismatch)
	}
	if len(t.rows) != t.values.Rows() {
		return fmt.Errorf("%d row labels for %d rows: %w", len(t.rows), t.values.Rows(), ErrLabelMismatch)
	}

	return nil
}

// Columns returns a copy of the column labels.
func (t *Tableau) Columns() []string { return append([]string(nil), t.columns...) }

// Rows returns a copy of the row labels as supplied by the engine.
func (t *Tableau) Rows() []string { return append([]string(nil), t.rows...) }

// NumRows returns the grid row count.
func (t *Tableau) NumRows() int { return t.values.Rows() }

// NumCols returns the grid column count.
func (t *Tableau) NumCols() int { return t.values.Cols() }

// Values returns a fresh copy of the grid.
func (t *Tableau) Values() [][]float64 { return t.values.RowsCopy() }

// FromDense binds labels to a grid the caller filled cell by cell and
// checks the dimension contract. The grid is not copied.
func FromDense(columns, rows []string, values *Dense) (*Tableau, error) {
	t := Assemble(columns, rows, values)
	if err := t.Validate(); err != nil {
		return nil, err
	}

	return t, nil
}

// Assemble wraps an existing grid without checking the dimension contract.
// Consumers call Validate before trusting the result.
func Assemble(columns, rows []string, values *Dense) *Tableau {
	return &Tableau{
		columns: append([]string(nil), columns...),
		rows:    append([]string(nil), rows...),
		values:  values,
	}
}
