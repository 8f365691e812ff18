// Package applicability decides, before any tableau is computed, whether an
// algorithm family can accept a formulation.
//
// A RuleSet is an ordered list of declarative Rules. Validate evaluates them
// in order and stops at the first failure, whose message becomes the Result.
// Validation never returns an error: a rejected formulation is the expected
// outcome of choosing the wrong algorithm, and the message tells the caller
// which algorithm to use instead.
//
// Rule sets per family:
//
//   - FeasibleStartContinuous  primal simplex
//   - RevisedPrimal            revised primal simplex
//   - RevisedDual              revised dual simplex (auto primal)
//   - IntegerProgram           branch & bound
//   - CuttingPlane             Gomory cutting plane (pure integer, integral data)
//   - Knapsack                 binary knapsack
//
// Rules are pure functions of the formulation and safe for concurrent use.
package applicability
