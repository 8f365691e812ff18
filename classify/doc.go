// Package classify decodes terminal outcomes of a Solve Tree into summary
// updates and normalizes variable assignments.
//
// Classify matches the closed solvetree.Outcome variants exhaustively:
//
//   - Optimal       optimal=true, objective, normalized values, a message
//     naming the objective sense of the formulation.
//   - Unbounded     message names the unbounded variable.
//   - Infeasible    message names the violated constraint.
//   - Unrecognized  message reports the raw tag verbatim.
//
// Any other shape (nil outcome, nil assignment, empty reference) is an engine
// contract violation reported as ErrMalformedOutcome.
//
// Normalize turns an Assignment into an ordered report.Values. Pairs with an
// empty name are dropped silently. Values are coerced from ints, uints,
// floats, json.Number and numeric strings; anything else fails with
// ErrCoercion.
package classify
