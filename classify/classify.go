package classify

import (
	"fmt"

	"github.com/katalvlaran/lpsolve/formulation"
	"github.com/katalvlaran/lpsolve/report"
	"github.com/katalvlaran/lpsolve/solvetree"
)

// Classify decodes o for formulation f.
//
// Errors:
//   - ErrMalformedOutcome for nil outcomes, nil assignments or empty refs.
//   - ErrCoercion from Normalize.
func (c Classifier) Classify(o solvetree.Outcome, f *formulation.Formulation) (Update, error) {
	switch v := o.(type) {
	case solvetree.Optimal:
		if v.Assignment == nil {
			return Update{}, fmt.Errorf("optimal outcome without assignment: %w", ErrMalformedOutcome)
		}
		vals, err := Normalize(v.Assignment)
		if err != nil {
			return Update{}, err
		}
		sense := formulation.Maximize
		if f != nil {
			sense = f.Sense()
		}

		return Update{
			Kind:      KindOptimal,
			Optimal:   true,
			Objective: v.Objective,
			Values:    vals,
			Message:   fmt.Sprintf("Optimal solution found using %s method for %s problem.", c.Method, sense),
		}, nil
	case solvetree.Unbounded:
		if v.Variable.IsZero() {
			return Update{}, fmt.Errorf("unbounded outcome without variable: %w", ErrMalformedOutcome)
		}

		return Update{Kind: KindUnbounded, Message: fmt.Sprintf("Unbounded (variable %s).", v.Variable)}, nil
	case solvetree.Infeasible:
		if v.Constraint.IsZero() {
			return Update{}, fmt.Errorf("infeasible outcome without constraint: %w", ErrMalformedOutcome)
		}

		return Update{Kind: KindInfeasible, Message: fmt.Sprintf("Infeasible (constraint %s).", v.Constraint)}, nil
	case solvetree.Unrecognized:
		return Update{Kind: KindUnrecognized, Message: "Result: " + v.Tag}, nil
	case nil:
		return Update{}, fmt.Errorf("nil outcome: %w", ErrMalformedOutcome)
	default:
		return Update{}, fmt.Errorf("outcome %T: %w", o, ErrMalformedOutcome)
	}
}

// Apply overwrites every summary field with the update.
func (u Update) Apply(s *report.Summary) {
	s.Optimal = u.Optimal
	s.Objective = u.Objective
	s.VariableValues = u.Values.Clone()
	s.Message = u.Message
}

// Normalize converts an assignment to ordered values, dropping empty names.
// A repeated name keeps its first position and its last value.
func Normalize(a solvetree.Assignment) (report.Values, error) {
	if a == nil {
		return report.Values{}, nil
	}
	pairs := a.Pairs()
	out := report.NewValues(len(pairs))
	for _, p := range pairs {
		if p.Name == "" {
			continue
		}
		x, err := Coerce(p.Value)
		if err != nil {
			return report.Values{}, fmt.Errorf("variable %q: %w", p.Name, err)
		}
		out.Set(p.Name, x)
	}

	return out, nil
}

// Better reports whether objective a improves on b under sense.
func Better(sense formulation.Sense, a, b float64) bool {
	if sense == formulation.Minimize {
		return a < b
	}

	return a > b
}
