// Package traverse linearizes a Solve Tree into a display-ordered iteration
// log and drives outcome classification.
//
// Walk performs an explicit-stack depth-first preorder: the root is pushed at
// depth 0; each popped node becomes one report.Record titled
// "Tableau {depth} (Pivot)" or "Tableau {depth} (Final)", with row labels
// normalized to "z", "c1", ..., "c{R-1}"; its children are pushed in reverse
// so that popping reproduces the engine's left-to-right order. No recursion
// is used, so arbitrarily deep searches cannot exhaust the goroutine stack.
//
// Terminal outcomes are decoded by a classify.Classifier and folded into the
// summary according to a Policy:
//
//   - BestOptimal (default)  the best Optimal outcome by objective wins; when no
//     path is optimal, the last visited outcome wins.
//   - LastTerminal           the last visited outcome wins.
//
// Options:
//
//   - WithContext(ctx)     cancellation checked before every node.
//   - WithOnVisit(fn)      hook called with each record; an error aborts.
//   - WithMaxNodes(n)      abort with ErrNodeLimit beyond n nodes.
//   - WithPolicy(p)        summary aggregation policy.
//
// Errors:
//
//   - ErrNilRoot, ErrNilNode   missing nodes.
//   - ErrNilTableau            a node without a tableau.
//   - ErrShape                 labels disagree with the grid (wraps tableau.ErrLabelMismatch).
//   - ErrNodeLimit             WithMaxNodes exceeded.
//   - classify errors, context errors, hook errors.
//
// Complexity: O(N·R·C) for N nodes of R×C tableaus; the stack holds the
// current frontier only.
package traverse
