package engine

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lpsolve/formulation"
	"github.com/katalvlaran/lpsolve/solvetree"
)

// Branch-and-bound over the LP relaxation.
//
//  1. The root relaxation is solved with the automatic start (primal, dual or
//     phase one) and recorded as a chain.
//  2. At an optimal node the incumbent bound is checked first: a relaxation
//     that cannot beat the incumbent by more than Eps is pruned (Finish).
//  3. Otherwise the most fractional integer column is chosen (closest to .5,
//     lowest column on ties). An integral node concludes Optimal and may
//     become the incumbent.
//  4. Branching adds one bound row to a clone of the optimal tableau for each
//     child, x ≤ ⌊v⌋ (left) and x ≥ ⌈v⌉ (right); each child re-optimizes
//     with dual simplex. Children are explored depth first, left first.

// bnbEngine holds the search state.
type bnbEngine struct {
	f    *formulation.Formulation
	cf   *formulation.Canonical
	opts Options

	nodes int // subproblems solved after the root
	seq   int // bound-row counter for slack labels

	haveInc   bool
	incumbent float64 // max-form objective of the best integral node
}

// bnbTask is a child subproblem whose first snapshot is already attached.
type bnbTask struct {
	l    *lp
	step *solvetree.Step
}

// BranchAndBound solves the integer program f.
func BranchAndBound(f *formulation.Formulation, opts Options) (solvetree.Node, error) {
	if f == nil {
		return nil, ErrNilFormulation
	}
	e := &bnbEngine{f: f, cf: f.Canonical(), opts: opts.normalized()}

	// 1. Root relaxation
	l := newLP(e.cf, e.opts.Eps, false)
	root := &chain{}
	if err := root.push(l); err != nil {
		return nil, err
	}
	s := &solver{l: l, ch: root, limit: e.opts.MaxIterations}
	v, err := s.auto()
	if err != nil {
		return nil, err
	}
	kids, err := e.settle(l, root, v)
	if err != nil {
		return nil, err
	}

	// 2. Depth-first over child subproblems
	stack := pushTasks(nil, kids)
	var task bnbTask
	for len(stack) > 0 {
		task = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if e.nodes >= e.opts.MaxNodes {
			task.step.Conclude(solvetree.Unrecognized{Tag: TagNodeLimit})
			continue
		}
		e.nodes++

		ch := &chain{root: task.step, cur: task.step}
		s = &solver{l: task.l, ch: ch, limit: e.opts.MaxIterations}
		if v, err = s.reoptimize(); err != nil {
			return nil, err
		}
		if kids, err = e.settle(task.l, ch, v); err != nil {
			return nil, err
		}
		stack = pushTasks(stack, kids)
	}

	return root.root, nil
}

// pushTasks pushes kids right first so the left child pops next.
func pushTasks(stack, kids []bnbTask) []bnbTask {
	for i := len(kids) - 1; i >= 0; i-- {
		stack = append(stack, kids[i])
	}

	return stack
}

// settle concludes, prunes or branches the chain tip and returns child tasks in order.
func (e *bnbEngine) settle(l *lp, ch *chain, v verdict) ([]bnbTask, error) {
	if v.st != stOptimal {
		ch.conclude(v)

		return nil, nil
	}
	z := l.objective()
	if e.haveInc && z <= e.incumbent+e.opts.Eps {
		ch.cur.Finish()

		return nil, nil
	}
	j := mostFractional(l, e.cf)
	if j < 0 {
		ch.cur.Conclude(solution(l, e.f, e.cf))
		e.haveInc, e.incumbent = true, z

		return nil, nil
	}

	x := l.values()[j]
	down := math.Floor(x)
	left, err := e.child(l, j, down, true)
	if err != nil {
		return nil, err
	}
	right, err := e.child(l, j, down+1, false)
	if err != nil {
		return nil, err
	}
	ch.cur.Attach(left.step, right.step)

	return []bnbTask{left, right}, nil
}

// child clones l and adds the bound row x_j ≤ k (upper) or x_j ≥ k.
func (e *bnbEngine) child(l *lp, j int, k float64, upper bool) (bnbTask, error) {
	c := l.clone()
	e.seq++
	op := ">="
	if upper {
		op = "<="
	}
	origin := fmt.Sprintf("%s%s%g", c.labels[j], op, k)
	addBoundRow(c, j, k, upper, fmt.Sprintf("b%d", e.seq), origin)

	tb, err := c.snapshot()
	if err != nil {
		return bnbTask{}, err
	}

	return bnbTask{l: c, step: solvetree.NewStep(tb)}, nil
}

// addBoundRow expresses a bound on the basic column j in terms of the
// nonbasic columns of its row r:
//
//	x_j ≤ k:  -Σ a_rk·x_k + s = k - b_r
//	x_j ≥ k:   Σ a_rk·x_k + s = b_r - k
func addBoundRow(l *lp, j int, k float64, upper bool, slack, origin string) {
	r := l.rowOf(j)
	sc := l.addColumn(slack, 0)
	rhs := l.rhs()
	row := make([]float64, rhs+1)
	src := l.t[r]
	for c := 0; c < rhs; c++ {
		if upper {
			row[c] = neg(src[c])
		} else {
			row[c] = src[c]
		}
	}
	row[j] = 0
	row[sc] = 1
	if upper {
		row[rhs] = k - src[rhs]
	} else {
		row[rhs] = src[rhs] - k
	}
	l.addRow(row, sc, origin)
}

// mostFractional returns the integer column whose value is closest to a half,
// or -1 when every integer column is integral.
func mostFractional(l *lp, cf *formulation.Canonical) int {
	vals := l.values()
	col, best := -1, math.Inf(1)
	for j := 0; j < cf.NumCols(); j++ {
		if !cf.Columns[j].Integer {
			continue
		}
		fr := frac(vals[j], l.eps)
		if fr == 0 {
			continue
		}
		if d := math.Abs(fr - 0.5); d < best-l.eps {
			col, best = j, d
		}
	}

	return col
}
