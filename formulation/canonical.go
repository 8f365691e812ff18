package formulation

// Column maps one canonical decision column back to an original variable:
// value(Var) += Factor * value(column).
type Column struct {
	Label   string
	Var     int
	Factor  float64
	Integer bool // the source variable is integer or binary restricted
}

// Canonical is the ≤-form of a formulation in maximization sense.
// Rows are indexed like RHS; every row has len(Columns) coefficients.
// Slack columns are not materialized here; engines append one per row.
type Canonical struct {
	Columns   []Column
	Objective []float64
	Rows      [][]float64
	RHS       []float64
	Origins   []string // source constraint of each row, e.g. "c2", "c2(=)", "x3<=1"
}

// NumRows returns the number of canonical constraint rows.
func (c *Canonical) NumRows() int { return len(c.RHS) }

// NumCols returns the number of canonical decision columns.
func (c *Canonical) NumCols() int { return len(c.Columns) }

// Labels returns the decision column labels in order.
func (c *Canonical) Labels() []string {
	out := make([]string, len(c.Columns))
	for i := range c.Columns {
		out[i] = c.Columns[i].Label
	}

	return out
}

// HasNegativeRHS reports the first row with a negative right-hand side.
func (c *Canonical) HasNegativeRHS() (row int, ok bool) {
	for i, b := range c.RHS {
		if b < 0 {
			return i, true
		}
	}

	return -1, false
}

// Recover folds column values back into original variable values.
// colValues shorter than Columns are treated as zero-padded.
func (c *Canonical) Recover(colValues []float64, numVars int) []float64 {
	out := make([]float64, numVars)
	for j, col := range c.Columns {
		if j >= len(colValues) {
			break
		}
		out[col.Var] += col.Factor * colValues[j]
	}

	return out
}

// Canonical derives the ≤-form of f. See the package documentation for the
// substitution and row rules. The result is freshly allocated on every call.
func (f *Formulation) Canonical() *Canonical {
	// 1. Columns from sign restrictions
	cf := &Canonical{}
	colsOf := make([][]int, len(f.vars)) // variable -> its column indices
	var i int
	for i = range f.vars {
		v := f.vars[i]
		isInt := v.Int != Continuous
		switch v.Sign {
		case Negative:
			colsOf[i] = []int{len(cf.Columns)}
			cf.Columns = append(cf.Columns, Column{Label: v.Name + "'", Var: i, Factor: -1, Integer: isInt})
		case Unrestricted:
			colsOf[i] = []int{len(cf.Columns), len(cf.Columns) + 1}
			cf.Columns = append(cf.Columns,
				Column{Label: v.Name + "+", Var: i, Factor: 1, Integer: isInt},
				Column{Label: v.Name + "-", Var: i, Factor: -1, Integer: isInt},
			)
		default:
			colsOf[i] = []int{len(cf.Columns)}
			cf.Columns = append(cf.Columns, Column{Label: v.Name, Var: i, Factor: 1, Integer: isInt})
		}
	}

	// expand writes original coefficients into column space.
	expand := func(coeffs []float64, scale float64) []float64 {
		row := make([]float64, len(cf.Columns))
		for v, a := range coeffs {
			if a == 0 {
				continue // keep +0 entries, no -0 from scaling
			}
			for _, j := range colsOf[v] {
				row[j] = scale * a * cf.Columns[j].Factor
			}
		}

		return row
	}

	// 2. Objective in max form
	sign := 1.0
	if f.sense == Minimize {
		sign = -1
	}
	cf.Objective = expand(f.ObjectiveCoeffs(), sign)

	// 3. Declared constraints
	for _, c := range f.constraints {
		switch c.Relation {
		case GE:
			cf.addRow(expand(c.Coeffs, -1), negate(c.RHS), c.Name)
		case EQ:
			cf.addRow(expand(c.Coeffs, 1), c.RHS, c.Name+"(=)")
			cf.addRow(expand(c.Coeffs, -1), negate(c.RHS), c.Name+"(=)")
		default:
			cf.addRow(expand(c.Coeffs, 1), c.RHS, c.Name)
		}
	}

	// 4. Binary upper bounds
	for i = range f.vars {
		if f.vars[i].Int != Binary {
			continue
		}
		unit := make([]float64, len(f.vars))
		unit[i] = 1
		cf.addRow(expand(unit, 1), 1, f.vars[i].Name+"<=1")
	}

	return cf
}

func (c *Canonical) addRow(row []float64, rhs float64, origin string) {
	c.Rows = append(c.Rows, row)
	c.RHS = append(c.RHS, rhs)
	c.Origins = append(c.Origins, origin)
}

// negate flips x without producing -0.
func negate(x float64) float64 {
	if x == 0 {
		return 0
	}

	return -x
}
