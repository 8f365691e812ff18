package engine

import "errors"

var (
	// ErrNilFormulation is returned when an entry point receives nil.
	ErrNilFormulation = errors.New("engine: formulation is nil")

	// ErrSingularBasis indicates a basis matrix that cannot be inverted.
	ErrSingularBasis = errors.New("engine: singular basis")

	// ErrNotKnapsack indicates a formulation that is not a single-constraint
	// binary maximization.
	ErrNotKnapsack = errors.New("engine: not a knapsack formulation")

	// ErrNonIntegral indicates knapsack data that the exact solver cannot encode.
	ErrNonIntegral = errors.New("engine: knapsack data must be integral")
)

// Outcome tags for capped runs.
const (
	TagIterationLimit  = "IterationLimit"
	TagCutLimit        = "CutLimit"
	TagNodeLimit       = "NodeLimit"
	TagInfeasibleStart = "InfeasibleStart"
)

// Options bounds the work of one engine call.
type Options struct {
	// MaxIterations caps pivots per LP solve (one subproblem).
	MaxIterations int
	// MaxCuts caps Gomory cuts.
	MaxCuts int
	// MaxNodes caps branch-and-bound and knapsack subproblems.
	MaxNodes int
	// Eps is the numeric tolerance for signs, ratios and integrality.
	Eps float64
}

// DefaultOptions returns conservative limits for textbook-sized problems.
func DefaultOptions() Options {
	return Options{
		MaxIterations: 500,
		MaxCuts:       50,
		MaxNodes:      10000,
		Eps:           1e-9,
	}
}

// normalized fills zero or negative fields with defaults.
func (o Options) normalized() Options {
	d := DefaultOptions()
	if o.MaxIterations <= 0 {
		o.MaxIterations = d.MaxIterations
	}
	if o.MaxCuts <= 0 {
		o.MaxCuts = d.MaxCuts
	}
	if o.MaxNodes <= 0 {
		o.MaxNodes = d.MaxNodes
	}
	if o.Eps <= 0 {
		o.Eps = d.Eps
	}

	return o
}
