package engine

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lpsolve/formulation"
	"github.com/katalvlaran/lpsolve/solvetree"
)

// CuttingPlane solves the integer program f with Gomory fractional cuts.
// Each round picks the row whose basic integer column is most fractional
// (lowest row on ties), appends the cut Σ -frac(a_rj)·x_j + g = -frac(b_r)
// and re-optimizes by dual simplex. The whole run is one chain.
//
// The cuts are valid for pure integer programs with integral data; mixed
// problems may lose their optimum.
func CuttingPlane(f *formulation.Formulation, opts Options) (solvetree.Node, error) {
	if f == nil {
		return nil, ErrNilFormulation
	}
	opts = opts.normalized()
	cf := f.Canonical()

	// 1. Relaxation
	l := newLP(cf, opts.Eps, false)
	ch := &chain{}
	if err := ch.push(l); err != nil {
		return nil, err
	}
	s := &solver{l: l, ch: ch, limit: opts.MaxIterations}
	v, err := s.auto()
	if err != nil {
		return nil, err
	}

	// 2. Cut rounds
	for cuts := 0; v.st == stOptimal; {
		r := cutSource(l, cf)
		if r < 0 {
			break
		}
		if cuts >= opts.MaxCuts {
			ch.cur.Conclude(solvetree.Unrecognized{Tag: TagCutLimit})

			return ch.root, nil
		}
		cuts++
		addGomoryCut(l, r, fmt.Sprintf("g%d", cuts), fmt.Sprintf("cut%d", cuts))
		if err = ch.push(l); err != nil {
			return nil, err
		}
		s.iter = 0
		if v, err = s.reoptimize(); err != nil {
			return nil, err
		}
	}
	concludeLP(ch, v, l, f, cf)

	return ch.root, nil
}

// cutSource returns the row whose basic integer column has the most
// fractional value, or -1 when the tableau is integral.
func cutSource(l *lp, cf *formulation.Canonical) int {
	rhs := l.rhs()
	row, best := -1, math.Inf(1)
	for i, j := range l.basis {
		if j >= cf.NumCols() || !cf.Columns[j].Integer {
			continue
		}
		fr := frac(l.t[i+1][rhs], l.eps)
		if fr == 0 {
			continue
		}
		if d := math.Abs(fr - 0.5); d < best-l.eps {
			row, best = i+1, d
		}
	}

	return row
}

// addGomoryCut appends the fractional cut derived from row r.
func addGomoryCut(l *lp, r int, slack, origin string) {
	sc := l.addColumn(slack, 0)
	rhs := l.rhs()
	row := make([]float64, rhs+1)
	src := l.t[r]
	for c := 0; c < rhs; c++ {
		row[c] = neg(frac(src[c], l.eps))
	}
	row[sc] = 1
	row[rhs] = neg(frac(src[rhs], l.eps))
	l.addRow(row, sc, origin)
}
