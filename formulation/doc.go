// Package formulation models linear and integer programming problems as the
// solver layer receives them: an ordered list of decision variables, an
// objective sense, per-variable sign and integer restrictions, and an ordered
// list of linear constraints.
//
// What:
//
//   - Formulation: immutable problem description built via New.
//   - Canonical:   the ≤-form rewrite every tableau algorithm starts from
//     (sign substitutions, ≥ rows negated, = rows split, binary upper bounds).
//   - ParseObjective / ParseConstraint: linear expressions such as
//     "2*x1 + 3*x2" and "x1 - x2 <= -3" parsed through the expr-lang AST.
//   - Document / Load / LoadFile: YAML model files validated with struct tags.
//
// Canonical form:
//
//	Positive     x  →  column "x"
//	Negative     x  →  column "x'"        (x = -x')
//	Unrestricted x  →  columns "x+","x-"  (x = x+ - x-)
//
//	a·x <= b  →  a·x <= b
//	a·x >= b  → -a·x <= -b
//	a·x  = b  →  a·x <= b and -a·x <= -b
//	binary x  →  x <= 1 (appended after the declared constraints)
//
// The objective is always stored in maximization form; Minimize negates it.
//
// Errors:
//
//   - ErrNoVariables, ErrEmptyName, ErrDuplicateVariable, ErrCoefficientCount,
//     ErrNonFinite from New.
//   - ErrNonLinear, ErrUnknownVariable, ErrMissingRelation from the parser.
//   - ErrInvalidDocument from the YAML loader.
package formulation
