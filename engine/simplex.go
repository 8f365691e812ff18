package engine

import (
	"math"

	"github.com/katalvlaran/lpsolve/formulation"
	"github.com/katalvlaran/lpsolve/solvetree"
)

// status is the conclusion of one LP solve.
type status int

const (
	stOptimal status = iota
	stUnbounded
	stInfeasible
	stLimit
)

// verdict pairs a status with the column or row it refers to.
type verdict struct {
	st  status
	ref solvetree.Ref
}

// chain appends each snapshot as the single child of the previous one.
type chain struct {
	root, cur *solvetree.Step
}

func (c *chain) push(l *lp) error {
	tb, err := l.snapshot()
	if err != nil {
		return err
	}
	s := solvetree.NewStep(tb)
	if c.cur == nil {
		c.root = s
	} else {
		c.cur.Attach(s)
	}
	c.cur = s

	return nil
}

// conclude turns a non-optimal verdict into the terminal outcome of the chain tip.
func (c *chain) conclude(v verdict) {
	switch v.st {
	case stUnbounded:
		c.cur.Conclude(solvetree.Unbounded{Variable: v.ref})
	case stInfeasible:
		c.cur.Conclude(solvetree.Infeasible{Constraint: v.ref})
	case stLimit:
		c.cur.Conclude(solvetree.Unrecognized{Tag: TagIterationLimit})
	}
}

// solver runs pivots on one lp and records them on a chain.
type solver struct {
	l     *lp
	ch    *chain
	limit int
	iter  int
}

func (s *solver) step(r, c int) (bool, error) {
	if s.iter >= s.limit {
		return false, nil
	}
	s.iter++
	if err := s.l.pivot(r, c); err != nil {
		return false, err
	}

	return true, s.ch.push(s.l)
}

// primal iterates until no entering column remains. prefer biases ratio ties
// toward the row whose basic column is prefer (-1 for none).
func (s *solver) primal(prefer int) (verdict, error) {
	for {
		c := s.l.entering()
		if c < 0 {
			return verdict{st: stOptimal}, nil
		}
		r := s.l.leaving(c, prefer)
		if r < 0 {
			return verdict{st: stUnbounded, ref: solvetree.Ref{Name: s.l.labels[c], Index: c + 1}}, nil
		}
		ok, err := s.step(r, c)
		if err != nil {
			return verdict{}, err
		}
		if !ok {
			return verdict{st: stLimit}, nil
		}
	}
}

// dual iterates while a negative RHS remains.
func (s *solver) dual() (verdict, error) {
	for {
		r := s.l.dualLeaving()
		if r < 0 {
			return verdict{st: stOptimal}, nil
		}
		c := s.l.dualEntering(r)
		if c < 0 {
			return verdict{st: stInfeasible, ref: solvetree.Ref{Name: s.l.origins[r-1], Index: r}}, nil
		}
		ok, err := s.step(r, c)
		if err != nil {
			return verdict{}, err
		}
		if !ok {
			return verdict{st: stLimit}, nil
		}
	}
}

// reoptimize restores optimality after rows were added to an optimal tableau.
func (s *solver) reoptimize() (verdict, error) {
	v, err := s.dual()
	if err != nil || v.st != stOptimal {
		return v, err
	}

	return s.primal(-1)
}

// auto picks primal, dual-then-primal, or phase one depending on the start.
func (s *solver) auto() (verdict, error) {
	switch {
	case !s.l.negativeRHS():
		return s.primal(-1)
	case s.l.dualFeasible():
		return s.reoptimize()
	}
	v, err := s.phaseOne()
	if err != nil || v.st != stOptimal {
		return v, err
	}

	return s.primal(-1)
}

// phaseOne reaches a feasible basis with one artificial column a0:
// every constraint gets -a0, the objective becomes max -a0, a0 enters on the
// most negative RHS row, and primal simplex drives a0 to zero.
func (s *solver) phaseOne() (verdict, error) {
	l := s.l
	saved := append([]float64(nil), l.cost...)

	// 1. Artificial column and phase-one objective
	a0 := l.addColumn("a0", 0)
	for i := 1; i <= l.rows(); i++ {
		l.t[i][a0] = -1
	}
	for i := range l.a {
		l.a[i][a0] = -1
	}
	for j := range l.cost {
		l.cost[j] = 0
	}
	l.cost[a0] = -1
	l.resetObjective()
	if err := s.ch.push(l); err != nil {
		return verdict{}, err
	}

	// 2. Enter a0 on the most negative row, then optimize
	if ok, err := s.step(l.dualLeaving(), a0); err != nil || !ok {
		return verdict{st: stLimit}, err
	}
	v, err := s.primal(a0)
	if err != nil || v.st != stOptimal {
		return v, err
	}

	// 3. Infeasible when a0 stays positive
	if r := l.rowOf(a0); r > 0 {
		if l.objective() < -l.eps {
			return verdict{st: stInfeasible, ref: solvetree.Ref{Name: l.origins[r-1], Index: r}}, nil
		}
		// a0 basic at zero: swap it for any structural column, or drop the redundant row.
		swapped := false
		for j := 0; j < l.ncols(); j++ {
			if j != a0 && math.Abs(l.t[r][j]) > l.eps {
				if err = l.pivot(r, j); err != nil {
					return verdict{}, err
				}
				swapped = true

				break
			}
		}
		if !swapped {
			l.dropRow(r)
		}
	}

	// 4. Drop a0 and restore the real objective
	l.dropColumn(a0)
	l.cost = saved
	if l.revised {
		if err = l.refresh(); err != nil {
			return verdict{}, err
		}
	} else {
		l.resetObjective()
	}

	return verdict{st: stOptimal}, s.ch.push(l)
}

// concludeLP finishes an LP chain: optimal verdicts become Optimal outcomes.
func concludeLP(ch *chain, v verdict, l *lp, f *formulation.Formulation, cf *formulation.Canonical) {
	if v.st == stOptimal {
		ch.cur.Conclude(solution(l, f, cf))

		return
	}
	ch.conclude(v)
}

// runLP is the shared body of the continuous entry points.
func runLP(f *formulation.Formulation, opts Options, revised, auto bool) (solvetree.Node, error) {
	if f == nil {
		return nil, ErrNilFormulation
	}
	opts = opts.normalized()
	cf := f.Canonical()
	l := newLP(cf, opts.Eps, revised)
	ch := &chain{}
	if revised {
		if err := l.refresh(); err != nil {
			return nil, err
		}
	}
	if err := ch.push(l); err != nil {
		return nil, err
	}
	s := &solver{l: l, ch: ch, limit: opts.MaxIterations}

	var (
		v   verdict
		err error
	)
	switch {
	case auto:
		v, err = s.auto()
	case l.negativeRHS():
		ch.cur.Conclude(solvetree.Unrecognized{Tag: TagInfeasibleStart})

		return ch.root, nil
	default:
		v, err = s.primal(-1)
	}
	if err != nil {
		return nil, err
	}
	concludeLP(ch, v, l, f, cf)

	return ch.root, nil
}

// PrimalSimplex solves f with the tableau primal simplex from the slack
// basis. A negative canonical RHS concludes the root with
// Unrecognized{"InfeasibleStart"}.
func PrimalSimplex(f *formulation.Formulation, opts Options) (solvetree.Node, error) {
	return runLP(f, opts, false, false)
}

// RevisedPrimalSimplex is PrimalSimplex with every tableau recomputed from
// the basis inverse.
func RevisedPrimalSimplex(f *formulation.Formulation, opts Options) (solvetree.Node, error) {
	return runLP(f, opts, true, false)
}

// RevisedDualSimplex solves any continuous f: dual simplex when the start is
// dual feasible, single-artificial phase one otherwise, then primal simplex.
func RevisedDualSimplex(f *formulation.Formulation, opts Options) (solvetree.Node, error) {
	return runLP(f, opts, true, true)
}
