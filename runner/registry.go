package runner

import (
	"fmt"

	"github.com/katalvlaran/lpsolve/applicability"
	"github.com/katalvlaran/lpsolve/engine"
)

// Registry keys.
const (
	KeyPrimalSimplex        = "primal-simplex"
	KeyRevisedPrimalSimplex = "revised-primal-simplex"
	KeyRevisedDualSimplex   = "revised-dual-simplex"
	KeyBranchAndBound       = "branch-and-bound"
	KeyCuttingPlane         = "cutting-plane"
	KeyKnapsack             = "knapsack"
)

// Entry is one registered algorithm.
type Entry struct {
	Key     string
	Display string
	New     func(opts ...Option) Runner
}

var algorithms = []algorithm{
	{
		key:     KeyPrimalSimplex,
		display: "Primal Simplex (Continuous LP, Feasible Start)",
		method:  "Primal Simplex",
		rules:   applicability.FeasibleStartContinuous(),
		solve:   engine.PrimalSimplex,
	},
	{
		key:     KeyRevisedPrimalSimplex,
		display: "Revised Primal Simplex (Continuous LP)",
		method:  "Revised Primal Simplex",
		rules:   applicability.RevisedPrimal(),
		solve:   engine.RevisedPrimalSimplex,
	},
	{
		key:     KeyRevisedDualSimplex,
		display: "Revised Dual Simplex (Continuous LP, Auto Primal)",
		method:  "Revised Dual Simplex",
		rules:   applicability.RevisedDual(),
		solve:   engine.RevisedDualSimplex,
	},
	{
		key:     KeyBranchAndBound,
		display: "Branch & Bound (Integer LP)",
		method:  "Branch & Bound",
		rules:   applicability.IntegerProgram("Branch & Bound"),
		solve:   engine.BranchAndBound,
	},
	{
		key:     KeyCuttingPlane,
		display: "Cutting Plane (Integer LP)",
		method:  "Cutting Plane",
		rules:   applicability.CuttingPlane(),
		solve:   engine.CuttingPlane,
	},
	{
		key:     KeyKnapsack,
		display: "Knapsack (Binary Variables)",
		method:  "Knapsack",
		rules:   applicability.Knapsack(),
		solve:   engine.Knapsack,
	},
}

// NewPrimalSimplex returns the tableau primal simplex runner. It accepts
// continuous formulations with a feasible slack basis and no free variables.
func NewPrimalSimplex(opts ...Option) Runner { return newRunner(algorithms[0], opts...) }

// NewRevisedPrimalSimplex returns the revised primal simplex runner.
func NewRevisedPrimalSimplex(opts ...Option) Runner { return newRunner(algorithms[1], opts...) }

// NewRevisedDualSimplex returns the revised dual simplex runner; it accepts any
// continuous formulation.
func NewRevisedDualSimplex(opts ...Option) Runner { return newRunner(algorithms[2], opts...) }

// NewBranchAndBound returns the branch-and-bound runner for integer programs.
func NewBranchAndBound(opts ...Option) Runner { return newRunner(algorithms[3], opts...) }

// NewCuttingPlane returns the Gomory cutting-plane runner for integer programs.
func NewCuttingPlane(opts ...Option) Runner { return newRunner(algorithms[4], opts...) }

// NewKnapsack returns the binary knapsack runner.
func NewKnapsack(opts ...Option) Runner { return newRunner(algorithms[5], opts...) }

// Available returns a copy of the registry in stable order.
func Available() []Entry {
	ctors := []func(...Option) Runner{
		NewPrimalSimplex,
		NewRevisedPrimalSimplex,
		NewRevisedDualSimplex,
		NewBranchAndBound,
		NewCuttingPlane,
		NewKnapsack,
	}
	out := make([]Entry, len(algorithms))
	for i, a := range algorithms {
		out[i] = Entry{Key: a.key, Display: a.display, New: ctors[i]}
	}

	return out
}

// Lookup returns the entry registered under key.
func Lookup(key string) (Entry, error) {
	for _, e := range Available() {
		if e.Key == key {
			return e, nil
		}
	}

	return Entry{}, fmt.Errorf("%q: %w", key, ErrUnknownAlgorithm)
}

// Keys returns the registry keys in stable order.
func Keys() []string {
	out := make([]string, len(algorithms))
	for i, a := range algorithms {
		out[i] = a.key
	}

	return out
}
