package formulation

import (
	"fmt"
	"math"
	"strings"
)

// Formulation is an immutable linear (or integer) program.
// Build it with New; accessors return copies so callers cannot mutate it.
type Formulation struct {
	name        string
	sense       Sense
	vars        []Variable
	constraints []Constraint
}

// New validates and freezes a formulation.
// Stage 1 (Validate variables): at least one, non-blank unique names, finite objective.
// Stage 2 (Validate constraints): coefficient count == len(vars), finite values.
// Stage 3 (Finalize): deep-copy inputs.
// Unnamed constraints are labelled "c{i}" (1-based).
func New(name string, sense Sense, vars []Variable, constraints []Constraint) (*Formulation, error) {
	// 1. Variables
	if len(vars) == 0 {
		return nil, ErrNoVariables
	}
	seen := make(map[string]struct{}, len(vars))
	var i int
	for i = range vars {
		n := strings.TrimSpace(vars[i].Name)
		if n == "" {
			return nil, fmt.Errorf("variable %d: %w", i+1, ErrEmptyName)
		}
		if _, dup := seen[n]; dup {
			return nil, fmt.Errorf("variable %q: %w", n, ErrDuplicateVariable)
		}
		seen[n] = struct{}{}
		if !finite(vars[i].Objective) {
			return nil, fmt.Errorf("objective coefficient of %q: %w", n, ErrNonFinite)
		}
	}

	// 2. Constraints
	var j int
	for i = range constraints {
		c := constraints[i]
		if len(c.Coeffs) != len(vars) {
			return nil, fmt.Errorf("constraint %d: %d coefficients for %d variables: %w",
				i+1, len(c.Coeffs), len(vars), ErrCoefficientCount)
		}
		for j = range c.Coeffs {
			if !finite(c.Coeffs[j]) {
				return nil, fmt.Errorf("constraint %d, variable %q: %w", i+1, vars[j].Name, ErrNonFinite)
			}
		}
		if !finite(c.RHS) {
			return nil, fmt.Errorf("constraint %d rhs: %w", i+1, ErrNonFinite)
		}
	}

	// 3. Copy
	f := &Formulation{
		name:        name,
		sense:       sense,
		vars:        make([]Variable, len(vars)),
		constraints: make([]Constraint, len(constraints)),
	}
	copy(f.vars, vars)
	for i = range f.vars {
		f.vars[i].Name = strings.TrimSpace(f.vars[i].Name)
	}
	for i = range constraints {
		c := constraints[i]
		c.Coeffs = append([]float64(nil), c.Coeffs...)
		if strings.TrimSpace(c.Name) == "" {
			c.Name = fmt.Sprintf("c%d", i+1)
		}
		f.constraints[i] = c
	}

	return f, nil
}

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

// Name returns the model name (may be empty).
func (f *Formulation) Name() string { return f.name }

// Sense returns the objective direction.
func (f *Formulation) Sense() Sense { return f.sense }

// NumVars returns the number of decision variables.
func (f *Formulation) NumVars() int { return len(f.vars) }

// NumConstraints returns the number of declared constraints (before canonicalization).
func (f *Formulation) NumConstraints() int { return len(f.constraints) }

// Variables returns a copy of the ordered variable list.
func (f *Formulation) Variables() []Variable {
	out := make([]Variable, len(f.vars))
	copy(out, f.vars)

	return out
}

// Constraints returns a deep copy of the ordered constraint list.
func (f *Formulation) Constraints() []Constraint {
	out := make([]Constraint, len(f.constraints))
	for i, c := range f.constraints {
		c.Coeffs = append([]float64(nil), c.Coeffs...)
		out[i] = c
	}

	return out
}

// VarNames returns the ordered variable names.
func (f *Formulation) VarNames() []string {
	out := make([]string, len(f.vars))
	for i := range f.vars {
		out[i] = f.vars[i].Name
	}

	return out
}

// ObjectiveCoeffs returns the objective coefficients as declared (not sense-adjusted).
func (f *Formulation) ObjectiveCoeffs() []float64 {
	out := make([]float64, len(f.vars))
	for i := range f.vars {
		out[i] = f.vars[i].Objective
	}

	return out
}

// SignRestrictions returns the per-variable sign restrictions.
func (f *Formulation) SignRestrictions() []SignRestriction {
	out := make([]SignRestriction, len(f.vars))
	for i := range f.vars {
		out[i] = f.vars[i].Sign
	}

	return out
}

// IntRestrictions returns the per-variable integer restrictions.
func (f *Formulation) IntRestrictions() []IntRestriction {
	out := make([]IntRestriction, len(f.vars))
	for i := range f.vars {
		out[i] = f.vars[i].Int
	}

	return out
}

// Evaluate returns the declared objective at the given variable values.
// Missing names count as zero.
func (f *Formulation) Evaluate(values map[string]float64) float64 {
	var z float64
	for _, v := range f.vars {
		z += v.Objective * values[v.Name]
	}

	return z
}

// String renders the model in textbook form, one line per row.
func (f *Formulation) String() string {
	var b strings.Builder
	if f.sense == Minimize {
		b.WriteString("min z = ")
	} else {
		b.WriteString("max z = ")
	}
	b.WriteString(linearString(f.ObjectiveCoeffs(), f.VarNames()))
	b.WriteByte('\n')
	for _, c := range f.constraints {
		fmt.Fprintf(&b, "%s: %s %s %g\n", c.Name, linearString(c.Coeffs, f.VarNames()), c.Relation, c.RHS)
	}

	return b.String()
}

func linearString(coeffs []float64, names []string) string {
	var b strings.Builder
	first := true
	for i, a := range coeffs {
		if a == 0 {
			continue
		}
		switch {
		case first && a < 0:
			b.WriteString("-")
		case !first && a < 0:
			b.WriteString(" - ")
		case !first:
			b.WriteString(" + ")
		}
		if m := math.Abs(a); m != 1 {
			fmt.Fprintf(&b, "%g*", m)
		}
		b.WriteString(names[i])
		first = false
	}
	if first {
		return "0"
	}

	return b.String()
}
