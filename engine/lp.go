package engine

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lpsolve/formulation"
	"github.com/katalvlaran/lpsolve/solvetree"
	"github.com/katalvlaran/lpsolve/tableau"
)

const rhsLabel = "rhs"

// lp is the working state of one simplex run.
type lp struct {
	labels  []string    // column labels, RHS excluded
	t       [][]float64 // row 0 = objective, rows 1..m = constraints, last column = RHS
	basis   []int       // basis[i] is the column basic in row i+1
	origins []string    // origins[i] names the source of row i+1
	cost    []float64   // max-form objective coefficient per column
	eps     float64

	// Revised mode keeps the original system and recomputes t from B⁻¹
	// instead of pivoting in place.
	revised bool
	a       [][]float64
	b       []float64
}

// newLP builds the slack-basis tableau of cf.
func newLP(cf *formulation.Canonical, eps float64, revised bool) *lp {
	n, m := cf.NumCols(), cf.NumRows()
	l := &lp{
		labels:  append(cf.Labels(), make([]string, m)...),
		t:       make([][]float64, m+1),
		basis:   make([]int, m),
		origins: append([]string(nil), cf.Origins...),
		cost:    make([]float64, n+m),
		eps:     eps,
		revised: revised,
	}
	width := n + m + 1
	l.t[0] = make([]float64, width)
	for j := 0; j < n; j++ {
		l.cost[j] = cf.Objective[j]
		l.t[0][j] = neg(cf.Objective[j])
	}
	for i := 0; i < m; i++ {
		l.labels[n+i] = fmt.Sprintf("s%d", i+1)
		row := make([]float64, width)
		copy(row, cf.Rows[i])
		row[n+i] = 1
		row[width-1] = cf.RHS[i]
		l.t[i+1] = row
		l.basis[i] = n + i
	}
	if revised {
		l.a = make([][]float64, m)
		l.b = make([]float64, m)
		for i := 0; i < m; i++ {
			l.a[i] = append([]float64(nil), l.t[i+1][:width-1]...)
			l.b[i] = cf.RHS[i]
		}
	}

	return l
}

func (l *lp) rhs() int   { return len(l.labels) }
func (l *lp) rows() int  { return len(l.t) - 1 }
func (l *lp) ncols() int { return len(l.labels) }

// objective returns the max-form objective value.
func (l *lp) objective() float64 { return l.t[0][l.rhs()] }

func (l *lp) clone() *lp {
	c := *l
	c.labels = append([]string(nil), l.labels...)
	c.basis = append([]int(nil), l.basis...)
	c.origins = append([]string(nil), l.origins...)
	c.cost = append([]float64(nil), l.cost...)
	c.t = copyGrid(l.t)
	if l.revised {
		c.a = copyGrid(l.a)
		c.b = append([]float64(nil), l.b...)
	}

	return &c
}

func copyGrid(g [][]float64) [][]float64 {
	out := make([][]float64, len(g))
	for i := range g {
		out[i] = append([]float64(nil), g[i]...)
	}

	return out
}

// snapshot freezes the current tableau; rows are labelled by basic columns.
func (l *lp) snapshot() (*tableau.Tableau, error) {
	cols := append(append([]string(nil), l.labels...), rhsLabel)
	rows := make([]string, len(l.t))
	rows[0] = "z"
	for i, j := range l.basis {
		rows[i+1] = l.labels[j]
	}

	return tableau.New(cols, rows, l.t)
}

// values returns the current value of every column.
func (l *lp) values() []float64 {
	out := make([]float64, l.ncols())
	r := l.rhs()
	for i, j := range l.basis {
		out[j] = l.t[i+1][r]
	}

	return out
}

// rowOf returns the row basic in column j, or -1.
func (l *lp) rowOf(j int) int {
	for i, b := range l.basis {
		if b == j {
			return i + 1
		}
	}

	return -1
}

// entering picks the most negative objective-row entry (lowest column on ties).
func (l *lp) entering() int {
	best, col := -l.eps, -1
	for j := 0; j < l.ncols(); j++ {
		if l.t[0][j] < best {
			best, col = l.t[0][j], j
		}
	}

	return col
}

// leaving runs the minimum-ratio test on column c (lowest row on ties).
// When prefer >= 0, a tied row whose basic column is prefer wins.
func (l *lp) leaving(c, prefer int) int {
	r := l.rhs()
	row, best := -1, math.Inf(1)
	for i := 1; i <= l.rows(); i++ {
		a := l.t[i][c]
		if a <= l.eps {
			continue
		}
		ratio := l.t[i][r] / a
		switch {
		case ratio < best-l.eps:
			row, best = i, ratio
		case ratio <= best+l.eps && prefer >= 0 && l.basis[i-1] == prefer:
			row, best = i, ratio
		}
	}

	return row
}

// dualLeaving picks the most negative RHS row (lowest row on ties).
func (l *lp) dualLeaving() int {
	r := l.rhs()
	best, row := -l.eps, -1
	for i := 1; i <= l.rows(); i++ {
		if l.t[i][r] < best {
			best, row = l.t[i][r], i
		}
	}

	return row
}

// dualEntering runs the dual ratio test on row r (lowest column on ties).
func (l *lp) dualEntering(r int) int {
	col, best := -1, math.Inf(1)
	for j := 0; j < l.ncols(); j++ {
		a := l.t[r][j]
		if a >= -l.eps {
			continue
		}
		ratio := math.Abs(l.t[0][j] / a)
		if ratio < best-l.eps {
			col, best = j, ratio
		}
	}

	return col
}

// negativeRHS reports whether any constraint row has a negative RHS.
func (l *lp) negativeRHS() bool { return l.dualLeaving() > 0 }

// dualFeasible reports whether the objective row has no negative entry.
func (l *lp) dualFeasible() bool { return l.entering() < 0 }

// pivot makes column c basic in row r.
func (l *lp) pivot(r, c int) error {
	l.basis[r-1] = c
	if l.revised {
		return l.refresh()
	}
	p := l.t[r][c]
	var i, k int
	for k = range l.t[r] {
		l.t[r][k] /= p
	}
	for i = range l.t {
		if i == r {
			continue
		}
		f := l.t[i][c]
		if f == 0 {
			continue
		}
		for k = range l.t[i] {
			l.t[i][k] -= f * l.t[r][k]
		}
	}
	l.snapAll()

	return nil
}

// refresh recomputes every row from the original system and the basis:
// rows = B⁻¹A, rhs = B⁻¹b, objective row = c_B·B⁻¹A - c.
func (l *lp) refresh() error {
	m, n := l.rows(), l.ncols()
	bm := make([][]float64, m)
	for i := 0; i < m; i++ {
		bm[i] = make([]float64, m)
		for k, j := range l.basis {
			bm[i][k] = l.a[i][j]
		}
	}
	inv, err := invert(bm)
	if err != nil {
		return fmt.Errorf("basis %v: %w", l.basis, err)
	}
	var i, j, k int
	var s float64
	for i = 0; i < m; i++ {
		row := l.t[i+1]
		for j = 0; j < n; j++ {
			s = 0
			for k = 0; k < m; k++ {
				s += inv[i][k] * l.a[k][j]
			}
			row[j] = s
		}
		s = 0
		for k = 0; k < m; k++ {
			s += inv[i][k] * l.b[k]
		}
		row[n] = s
	}
	l.resetObjective()

	return nil
}

// resetObjective rebuilds row 0 from the cost vector: z_j = Σ c_B·t_ij - c_j.
func (l *lp) resetObjective() {
	width := l.rhs() + 1
	for j := 0; j < width; j++ {
		var s float64
		for i, b := range l.basis {
			s += l.cost[b] * l.t[i+1][j]
		}
		if j < l.ncols() {
			s -= l.cost[j]
		}
		l.t[0][j] = s
	}
	l.snapAll()
}

// addColumn inserts a zero column before the RHS and returns its index.
func (l *lp) addColumn(label string, cost float64) int {
	j := l.ncols()
	l.labels = append(l.labels, label)
	l.cost = append(l.cost, cost)
	for i := range l.t {
		row := l.t[i]
		rhs := row[j]
		l.t[i] = append(row[:j], 0, rhs)
	}
	for i := range l.a {
		l.a[i] = append(l.a[i], 0)
	}

	return j
}

// addRow appends a constraint row (ncols+1 wide, RHS last) basic in column basic.
func (l *lp) addRow(row []float64, basic int, origin string) {
	l.t = append(l.t, row)
	l.basis = append(l.basis, basic)
	l.origins = append(l.origins, origin)
	l.snapAll()
}

// dropColumn removes column j, which must be nonbasic.
func (l *lp) dropColumn(j int) {
	l.labels = append(l.labels[:j], l.labels[j+1:]...)
	l.cost = append(l.cost[:j], l.cost[j+1:]...)
	for i := range l.t {
		l.t[i] = append(l.t[i][:j], l.t[i][j+1:]...)
	}
	for i := range l.a {
		l.a[i] = append(l.a[i][:j], l.a[i][j+1:]...)
	}
	for i, b := range l.basis {
		if b > j {
			l.basis[i] = b - 1
		}
	}
}

// dropRow removes constraint row r (1-based).
func (l *lp) dropRow(r int) {
	l.t = append(l.t[:r], l.t[r+1:]...)
	l.basis = append(l.basis[:r-1], l.basis[r:]...)
	l.origins = append(l.origins[:r-1], l.origins[r:]...)
	if l.revised {
		l.a = append(l.a[:r-1], l.a[r:]...)
		l.b = append(l.b[:r-1], l.b[r:]...)
	}
}

func (l *lp) snapAll() {
	for i := range l.t {
		for k := range l.t[i] {
			l.t[i][k] = snap(l.t[i][k], l.eps)
		}
	}
}

// snap rounds x to the nearest integer when within eps of it, without -0.
func snap(x, eps float64) float64 {
	r := math.Round(x)
	if math.Abs(x-r) < eps {
		if r == 0 {
			return 0
		}

		return r
	}

	return x
}

// neg flips x without producing -0.
func neg(x float64) float64 {
	if x == 0 {
		return 0
	}

	return -x
}

// frac returns the fractional part of x in [0, 1), snapped.
func frac(x, eps float64) float64 {
	f := x - math.Floor(x)
	if f < eps || f > 1-eps {
		return 0
	}

	return f
}

// solution recovers original variable values and the declared objective.
func solution(l *lp, f *formulation.Formulation, cf *formulation.Canonical) solvetree.Optimal {
	vals := cf.Recover(l.values()[:cf.NumCols()], f.NumVars())
	names := f.VarNames()
	pairs := make(solvetree.Pairs, len(names))
	byName := make(map[string]float64, len(names))
	for i, n := range names {
		v := snap(vals[i], l.eps)
		pairs[i] = solvetree.Pair{Name: n, Value: v}
		byName[n] = v
	}

	return solvetree.Optimal{Assignment: pairs, Objective: snap(f.Evaluate(byName), l.eps)}
}
