package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"

	pbsolver "github.com/crillab/gophersat/solver"

	"github.com/katalvlaran/lpsolve/formulation"
	"github.com/katalvlaran/lpsolve/solvetree"
	"github.com/katalvlaran/lpsolve/tableau"
)

// item states inside a knapsack node.
const (
	free int8 = -1
	out  int8 = 0
	in   int8 = 1
)

// knapsack holds one instance: maximize Σ v_i·x_i s.t. Σ w_i·x_i ≤ capacity.
type knapsack struct {
	names    []string
	value    []float64
	weight   []float64
	capacity float64
	order    []int // items by value/weight ratio, best first, lowest index on ties
	eps      float64
}

// relaxation is the greedy LP bound of one node.
type relaxation struct {
	x        []float64
	bound    float64
	critical int // fractional item, -1 when the relaxation is integral
	feasible bool
}

func newKnapsack(f *formulation.Formulation, eps float64) (*knapsack, error) {
	if f == nil {
		return nil, ErrNilFormulation
	}
	cons := f.Constraints()
	if f.Sense() != formulation.Maximize || len(cons) != 1 || cons[0].Relation != formulation.LE {
		return nil, ErrNotKnapsack
	}
	k := &knapsack{
		names:    f.VarNames(),
		value:    f.ObjectiveCoeffs(),
		weight:   cons[0].Coeffs,
		capacity: cons[0].RHS,
		eps:      eps,
	}
	if k.capacity < 0 {
		return nil, fmt.Errorf("capacity %g: %w", k.capacity, ErrNotKnapsack)
	}
	for i := range k.names {
		if k.value[i] < 0 || k.weight[i] < 0 {
			return nil, fmt.Errorf("item %q: %w", k.names[i], ErrNotKnapsack)
		}
	}
	k.order = make([]int, len(k.names))
	for i := range k.order {
		k.order[i] = i
	}
	sort.SliceStable(k.order, func(a, b int) bool {
		return k.ratio(k.order[a]) > k.ratio(k.order[b])
	})

	return k, nil
}

func (k *knapsack) ratio(i int) float64 {
	if k.weight[i] == 0 {
		return math.Inf(1)
	}

	return k.value[i] / k.weight[i]
}

// relax fills free items greedily by ratio; the first item that does not fit
// is taken fractionally and ends the fill.
func (k *knapsack) relax(fixed []int8) relaxation {
	rx := relaxation{x: make([]float64, len(fixed)), critical: -1}
	used := 0.0
	for i, s := range fixed {
		if s == in {
			rx.x[i] = 1
			used += k.weight[i]
			rx.bound += k.value[i]
		}
	}
	if used > k.capacity+k.eps {
		return rx
	}
	rx.feasible = true
	remaining := k.capacity - used
	for _, i := range k.order {
		if fixed[i] != free {
			continue
		}
		if k.weight[i] <= remaining+k.eps {
			rx.x[i] = 1
			remaining -= k.weight[i]
			rx.bound += k.value[i]
			continue
		}
		if part := snap(remaining/k.weight[i], k.eps); part > 0 {
			rx.x[i] = part
			rx.bound += k.value[i] * part
			rx.critical = i
		}

		break
	}
	rx.bound = snap(rx.bound, k.eps)

	return rx
}

// snapshot renders a node as rows z (item fractions | bound) and c1
// (weight taken per item | capacity).
func (k *knapsack) snapshot(rx relaxation) (*tableau.Tableau, error) {
	n := len(k.names)
	cols := append(append([]string(nil), k.names...), rhsLabel)
	d, err := tableau.NewDense(2, n+1)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		if err = d.Set(0, i, rx.x[i]); err != nil {
			return nil, err
		}
		if err = d.Set(1, i, snap(k.weight[i]*rx.x[i], k.eps)); err != nil {
			return nil, err
		}
	}
	if err = d.Set(0, n, rx.bound); err != nil {
		return nil, err
	}
	if err = d.Set(1, n, k.capacity); err != nil {
		return nil, err
	}

	return tableau.FromDense(cols, []string{"z", "c1"}, d)
}

type ksTask struct {
	fixed []int8
	rx    relaxation
	step  *solvetree.Step
}

// Knapsack solves a binary knapsack by depth-first branch and bound on the
// critical item of the greedy relaxation: the x=0 child is attached and
// explored before the x=1 child.
func Knapsack(f *formulation.Formulation, opts Options) (solvetree.Node, error) {
	opts = opts.normalized()
	k, err := newKnapsack(f, opts.Eps)
	if err != nil {
		return nil, err
	}

	fixed := make([]int8, len(k.names))
	for i := range fixed {
		fixed[i] = free
	}
	root, err := k.task(fixed)
	if err != nil {
		return nil, err
	}

	var (
		haveInc   bool
		incumbent float64
		nodes     int
		t         ksTask
	)
	stack := []ksTask{root}
	for len(stack) > 0 {
		t = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if nodes >= opts.MaxNodes {
			t.step.Conclude(solvetree.Unrecognized{Tag: TagNodeLimit})
			continue
		}
		nodes++

		switch {
		case !t.rx.feasible:
			t.step.Conclude(solvetree.Infeasible{Constraint: solvetree.Ref{Name: "c1", Index: 1}})
		case haveInc && t.rx.bound <= incumbent+k.eps:
			t.step.Finish()
		case t.rx.critical < 0:
			t.step.Conclude(k.optimal(t.rx))
			haveInc, incumbent = true, t.rx.bound
		default:
			zero, err := k.task(with(t.fixed, t.rx.critical, out))
			if err != nil {
				return nil, err
			}
			one, err := k.task(with(t.fixed, t.rx.critical, in))
			if err != nil {
				return nil, err
			}
			t.step.Attach(zero.step, one.step)
			stack = append(stack, one, zero)
		}
	}

	return root.step, nil
}

func (k *knapsack) task(fixed []int8) (ksTask, error) {
	rx := k.relax(fixed)
	tb, err := k.snapshot(rx)
	if err != nil {
		return ksTask{}, err
	}

	return ksTask{fixed: fixed, rx: rx, step: solvetree.NewStep(tb)}, nil
}

func (k *knapsack) optimal(rx relaxation) solvetree.Optimal {
	pairs := make(solvetree.Pairs, len(k.names))
	for i, n := range k.names {
		pairs[i] = solvetree.Pair{Name: n, Value: rx.x[i]}
	}

	return solvetree.Optimal{Assignment: pairs, Objective: rx.bound}
}

func with(fixed []int8, i int, s int8) []int8 {
	cp := append([]int8(nil), fixed...)
	cp[i] = s

	return cp
}

// Solution is an exact knapsack optimum.
type Solution struct {
	Values    solvetree.Pairs
	Objective float64
}

// ExactKnapsack solves the knapsack f exactly with the gophersat
// pseudo-boolean optimizer. Values, weights and capacity must be integral.
//
// Encoding (OPB, x_i true = item taken):
//
//	min: Σ v_i ~x_i ;             (value left behind)
//	Σ w_i ~x_i >= Σ w_i - W ;     (weight left behind)
func ExactKnapsack(f *formulation.Formulation) (*Solution, error) {
	k, err := newKnapsack(f, DefaultOptions().Eps)
	if err != nil {
		return nil, err
	}

	// 1. Integral data
	n := len(k.names)
	v := make([]int, n)
	w := make([]int, n)
	var totalV, totalW int
	for i := 0; i < n; i++ {
		if v[i], err = k.integral(k.value[i]); err != nil {
			return nil, fmt.Errorf("value of %q: %w", k.names[i], err)
		}
		if w[i], err = k.integral(k.weight[i]); err != nil {
			return nil, fmt.Errorf("weight of %q: %w", k.names[i], err)
		}
		totalV += v[i]
		totalW += w[i]
	}
	capacity, err := k.integral(k.capacity)
	if err != nil {
		return nil, fmt.Errorf("capacity: %w", err)
	}

	taken := make([]bool, n)
	if totalV > 0 {
		// 2. OPB model
		var b strings.Builder
		fmt.Fprintf(&b, "* #variable= %d #constraint= 1\n", n)
		b.WriteString("min:")
		for i := 0; i < n; i++ {
			if v[i] > 0 {
				fmt.Fprintf(&b, " +%d ~x%d", v[i], i+1)
			}
		}
		b.WriteString(" ;\n")
		if need := totalW - capacity; need > 0 {
			for i := 0; i < n; i++ {
				if w[i] > 0 {
					fmt.Fprintf(&b, "+%d ~x%d ", w[i], i+1)
				}
			}
			fmt.Fprintf(&b, ">= %d ;\n", need)
		}

		// 3. Optimize
		pb, err := pbsolver.ParseOPB(strings.NewReader(b.String()))
		if err != nil {
			return nil, fmt.Errorf("encode knapsack: %w", err)
		}
		s := pbsolver.New(pb)
		if cost := s.Minimize(); cost < 0 {
			return nil, fmt.Errorf("pseudo-boolean model unsatisfiable: %w", ErrNotKnapsack)
		}
		model := s.Model()
		for i := 0; i < n && i < len(model); i++ {
			taken[i] = model[i]
		}
	}

	// 4. Assignment
	sol := &Solution{Values: make(solvetree.Pairs, n)}
	for i, name := range k.names {
		x := 0.0
		if taken[i] {
			x = 1
			sol.Objective += k.value[i]
		}
		sol.Values[i] = solvetree.Pair{Name: name, Value: x}
	}

	return sol, nil
}

func (k *knapsack) integral(x float64) (int, error) {
	r := math.Round(x)
	if math.Abs(x-r) > k.eps || r > math.MaxInt32 {
		return 0, fmt.Errorf("%g: %w", x, ErrNonIntegral)
	}

	return int(r), nil
}
