package classify

import (
	"errors"

	"github.com/katalvlaran/lpsolve/report"
)

var (
	// ErrMalformedOutcome indicates an outcome that violates the Solve Tree contract.
	ErrMalformedOutcome = errors.New("classify: malformed outcome")

	// ErrCoercion indicates an assignment value with no numeric interpretation.
	ErrCoercion = errors.New("classify: value is not numeric")
)

// Classifier turns outcomes into summary updates. Method is the algorithm's
// human name used in the optimal message, e.g. "Primal Simplex".
type Classifier struct {
	Method string
}

// Update is the set of summary fields one outcome overwrites.
type Update struct {
	Optimal   bool
	Objective float64
	Values    report.Values
	Message   string
	Kind      Kind
}

// Kind tags the decoded outcome variant.
type Kind int

const (
	KindUnrecognized Kind = iota
	KindOptimal
	KindUnbounded
	KindInfeasible
)

// String returns a lower-case label suitable for metrics.
func (k Kind) String() string {
	switch k {
	case KindOptimal:
		return "optimal"
	case KindUnbounded:
		return "unbounded"
	case KindInfeasible:
		return "infeasible"
	default:
		return "unrecognized"
	}
}
