package formulation

import (
	"errors"
	"strings"
)

var (
	// ErrNoVariables is returned when a formulation declares no decision variables.
	ErrNoVariables = errors.New("formulation: no variables")

	// ErrEmptyName indicates a variable with an empty (or blank) name.
	ErrEmptyName = errors.New("formulation: empty variable name")

	// ErrDuplicateVariable indicates two variables sharing one name.
	ErrDuplicateVariable = errors.New("formulation: duplicate variable name")

	// ErrCoefficientCount indicates a constraint whose coefficient vector length
	// differs from the number of variables.
	ErrCoefficientCount = errors.New("formulation: coefficient count mismatch")

	// ErrNonFinite indicates a NaN or ±Inf coefficient, objective or RHS value.
	ErrNonFinite = errors.New("formulation: NaN or Inf value")

	// ErrNonLinear is returned by the parser for products of variables,
	// division by a variable, or unsupported operators.
	ErrNonLinear = errors.New("formulation: expression is not linear")

	// ErrUnknownVariable is returned by the parser for identifiers that are not
	// declared variables.
	ErrUnknownVariable = errors.New("formulation: unknown variable")

	// ErrMissingRelation is returned when a constraint has no <=, >= or = operator.
	ErrMissingRelation = errors.New("formulation: constraint has no relation")

	// ErrInvalidDocument wraps struct-validation failures of a YAML model.
	ErrInvalidDocument = errors.New("formulation: invalid document")
)

// Sense is the optimization direction of the objective.
type Sense int

const (
	Maximize Sense = iota
	Minimize
)

// String returns "maximization" or "minimization".
func (s Sense) String() string {
	if s == Minimize {
		return "minimization"
	}

	return "maximization"
}

// ParseSense accepts "max", "maximize", "min", "minimize" (case-insensitive).
func ParseSense(s string) (Sense, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "max", "maximize", "maximise", "maximization":
		return Maximize, true
	case "min", "minimize", "minimise", "minimization":
		return Minimize, true
	}

	return Maximize, false
}

// SignRestriction constrains the sign of a decision variable.
type SignRestriction int

const (
	Positive     SignRestriction = iota // x >= 0
	Negative                            // x <= 0
	Unrestricted                        // x free
)

// String returns "+", "-" or "urs".
func (s SignRestriction) String() string {
	switch s {
	case Negative:
		return "-"
	case Unrestricted:
		return "urs"
	default:
		return "+"
	}
}

// ParseSign accepts "+", "-", "urs" and their long forms.
func ParseSign(s string) (SignRestriction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "+", "positive", "nonnegative":
		return Positive, true
	case "-", "negative", "nonpositive":
		return Negative, true
	case "urs", "free", "unrestricted":
		return Unrestricted, true
	}

	return Positive, false
}

// IntRestriction constrains the domain of a decision variable.
// The zero value leaves the variable continuous.
type IntRestriction int

const (
	Continuous IntRestriction = iota
	Integer
	Binary
)

// String returns "continuous", "int" or "bin".
func (r IntRestriction) String() string {
	switch r {
	case Integer:
		return "int"
	case Binary:
		return "bin"
	default:
		return "continuous"
	}
}

// ParseIntRestriction accepts "continuous", "int", "bin" and their long forms.
func ParseIntRestriction(s string) (IntRestriction, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "continuous", "real":
		return Continuous, true
	case "int", "integer":
		return Integer, true
	case "bin", "binary":
		return Binary, true
	}

	return Continuous, false
}

// Relation is the comparison operator of a constraint.
type Relation int

const (
	LE Relation = iota // <=
	GE                 // >=
	EQ                 // =
)

// String returns the operator literal.
func (r Relation) String() string {
	switch r {
	case GE:
		return ">="
	case EQ:
		return "="
	default:
		return "<="
	}
}

// Variable is one decision variable with its objective coefficient.
type Variable struct {
	Name      string
	Objective float64
	Sign      SignRestriction
	Int       IntRestriction
}

// Constraint is one linear row: Coeffs · x  Relation  RHS.
// Coeffs is indexed like the formulation's variables.
type Constraint struct {
	Name     string
	Coeffs   []float64
	Relation Relation
	RHS      float64
}
