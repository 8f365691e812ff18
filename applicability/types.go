package applicability

import "github.com/katalvlaran/lpsolve/formulation"

// MsgNoFormulation is returned for a nil formulation.
const MsgNoFormulation = "no formulation supplied"

// Check inspects a formulation. ok=false carries the rejection message.
type Check func(f *formulation.Formulation) (ok bool, message string)

// Rule is one named applicability predicate.
type Rule struct {
	Name  string
	Check Check
}

// RuleSet is an ordered list of rules evaluated with short-circuit.
type RuleSet []Rule

// Result is the ephemeral outcome of Validate.
type Result struct {
	Valid   bool
	Message string
	Rule    string // name of the failing rule, empty when Valid
}
