package applicability

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lpsolve/formulation"
)

// Validate runs the rules of rs in order and returns the first failure.
func (rs RuleSet) Validate(f *formulation.Formulation) Result {
	if f == nil {
		return Result{Message: MsgNoFormulation}
	}
	for _, r := range rs {
		if ok, msg := r.Check(f); !ok {
			return Result{Message: msg, Rule: r.Name}
		}
	}

	return Result{Valid: true}
}

// Names lists the rule names in evaluation order.
func (rs RuleSet) Names() []string {
	out := make([]string, len(rs))
	for i := range rs {
		out[i] = rs[i].Name
	}

	return out
}

// FeasibleStartContinuous is the rule set of the tableau primal simplex:
// continuous variables, non-negative canonical RHS, no free variables.
func FeasibleStartContinuous() RuleSet {
	return RuleSet{
		NoIntegerRestriction("Primal Simplex"),
		NonNegativeRHS("Primal Simplex"),
		NoUnrestrictedSign("Primal Simplex"),
	}
}

// RevisedPrimal is the rule set of the revised primal simplex. Free variables
// are split by the canonical form, so only the feasible start is required.
func RevisedPrimal() RuleSet {
	return RuleSet{
		NoIntegerRestriction("Revised Primal Simplex"),
		NonNegativeRHS("Revised Primal Simplex"),
	}
}

// RevisedDual is the rule set of the revised dual simplex with automatic
// primal fallback; any continuous program is accepted.
func RevisedDual() RuleSet {
	return RuleSet{
		NoIntegerRestriction("Revised Dual Simplex"),
	}
}

// IntegerProgram is the rule set of branch & bound; mixed programs are accepted.
func IntegerProgram(method string) RuleSet {
	return RuleSet{
		HasIntegerVariable(method),
		IntegerVariablesNonNegative(method),
	}
}

// CuttingPlane is the rule set of the Gomory cutting plane. Fractional cuts
// are valid only when every column of a tableau row is integer valued, so
// the program must be pure integer with integral constraint data.
func CuttingPlane() RuleSet {
	const method = "Cutting Plane"

	return RuleSet{
		HasIntegerVariable(method),
		IntegerVariablesNonNegative(method),
		AllIntegerVariables(method),
		IntegralConstraintData(method),
	}
}

// Knapsack is the rule set of the binary knapsack solver.
func Knapsack() RuleSet {
	return RuleSet{
		{Name: "maximization", Check: func(f *formulation.Formulation) (bool, string) {
			if f.Sense() != formulation.Maximize {
				return false, "Knapsack requires a maximization objective. Use Branch & Bound for minimization problems."
			}

			return true, ""
		}},
		{Name: "all-binary", Check: func(f *formulation.Formulation) (bool, string) {
			for _, v := range f.Variables() {
				if v.Int != formulation.Binary {
					return false, fmt.Sprintf("Knapsack requires binary variables. Variable '%s' is not binary. Use Branch & Bound instead.", v.Name)
				}
			}

			return true, ""
		}},
		{Name: "single-capacity", Check: func(f *formulation.Formulation) (bool, string) {
			cons := f.Constraints()
			if len(cons) != 1 || cons[0].Relation != formulation.LE {
				return false, fmt.Sprintf("Knapsack requires exactly one <= capacity constraint, found %d constraints. Use Branch & Bound instead.", len(cons))
			}

			return true, ""
		}},
		{Name: "non-negative-data", Check: func(f *formulation.Formulation) (bool, string) {
			c := f.Constraints()[0]
			if c.RHS < 0 {
				return false, "Knapsack requires a non-negative capacity."
			}
			vars := f.Variables()
			for i, w := range c.Coeffs {
				if w < 0 || vars[i].Objective < 0 {
					return false, fmt.Sprintf("Knapsack requires non-negative weights and values. Item '%s' violates this.", vars[i].Name)
				}
			}

			return true, ""
		}},
	}
}

// NoIntegerRestriction rejects integer and binary variables, naming the first.
func NoIntegerRestriction(method string) Rule {
	return Rule{Name: "no-integer-restriction", Check: func(f *formulation.Formulation) (bool, string) {
		for _, v := range f.Variables() {
			if v.Int != formulation.Continuous {
				return false, fmt.Sprintf("%s cannot handle integer restrictions. Variable '%s' has integer restriction. Use Branch & Bound or Cutting Plane instead.", method, v.Name)
			}
		}

		return true, ""
	}}
}

// NonNegativeRHS rejects formulations whose canonical RHS has a negative entry.
func NonNegativeRHS(method string) Rule {
	return Rule{Name: "non-negative-rhs", Check: func(f *formulation.Formulation) (bool, string) {
		if _, neg := f.Canonical().HasNegativeRHS(); neg {
			return false, fmt.Sprintf("%s requires a feasible starting point. Problem has negative RHS values after conversion to canonical form. Use Revised Dual Simplex instead.", method)
		}

		return true, ""
	}}
}

// NoUnrestrictedSign rejects sign-unrestricted variables.
func NoUnrestrictedSign(method string) Rule {
	return Rule{Name: "no-unrestricted-sign", Check: func(f *formulation.Formulation) (bool, string) {
		for _, s := range f.SignRestrictions() {
			if s == formulation.Unrestricted {
				return false, fmt.Sprintf("%s works best with non-negative variables. Problem has unrestricted variables. Use Revised Simplex for better handling of unrestricted variables.", method)
			}
		}

		return true, ""
	}}
}

// HasIntegerVariable requires at least one integer or binary variable.
func HasIntegerVariable(method string) Rule {
	return Rule{Name: "has-integer-variable", Check: func(f *formulation.Formulation) (bool, string) {
		for _, k := range f.IntRestrictions() {
			if k != formulation.Continuous {
				return true, ""
			}
		}

		return false, fmt.Sprintf("%s requires at least one integer or binary variable. Use Primal Simplex or Revised Simplex for continuous problems.", method)
	}}
}

// IntegerVariablesNonNegative requires integer variables to be sign-positive,
// since branching bounds are expressed on non-negative columns.
func IntegerVariablesNonNegative(method string) Rule {
	return Rule{Name: "integer-variables-non-negative", Check: func(f *formulation.Formulation) (bool, string) {
		for _, v := range f.Variables() {
			if v.Int != formulation.Continuous && v.Sign != formulation.Positive {
				return false, fmt.Sprintf("%s requires integer variables to be non-negative. Variable '%s' is not.", method, v.Name)
			}
		}

		return true, ""
	}}
}

// AllIntegerVariables rejects continuous variables, naming the first.
func AllIntegerVariables(method string) Rule {
	return Rule{Name: "all-integer-variables", Check: func(f *formulation.Formulation) (bool, string) {
		for _, v := range f.Variables() {
			if v.Int == formulation.Continuous {
				return false, fmt.Sprintf("%s requires every variable to be integer or binary. Variable '%s' is continuous. Use Branch & Bound for mixed integer problems.", method, v.Name)
			}
		}

		return true, ""
	}}
}

// IntegralConstraintData rejects fractional constraint coefficients and
// right-hand sides, naming the first offending constraint.
func IntegralConstraintData(method string) Rule {
	return Rule{Name: "integral-constraint-data", Check: func(f *formulation.Formulation) (bool, string) {
		for _, c := range f.Constraints() {
			ok := isWhole(c.RHS)
			for _, a := range c.Coeffs {
				ok = ok && isWhole(a)
			}
			if !ok {
				return false, fmt.Sprintf("%s requires integral constraint coefficients and right-hand sides. Constraint '%s' has fractional data. Use Branch & Bound instead.", method, c.Name)
			}
		}

		return true, ""
	}}
}

func isWhole(x float64) bool { return x == math.Trunc(x) }
