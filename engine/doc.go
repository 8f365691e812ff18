// Package engine builds Solve Trees for the registered algorithms.
//
// Every entry point takes a formulation and returns the root of a fully
// materialized solvetree whose nodes carry tableau snapshots:
//
//   - PrimalSimplex          tableau primal simplex from the slack basis.
//   - RevisedPrimalSimplex   same pivot rules; each tableau is recomputed from
//     the basis inverse (Gauss–Jordan with partial pivoting).
//   - RevisedDualSimplex     dual simplex while the objective row is dual
//     feasible, single-artificial phase one otherwise, then primal simplex.
//   - BranchAndBound         depth-first branching on the most fractional
//     integer column; children re-optimize the parent tableau by dual simplex.
//   - CuttingPlane           Gomory fractional cuts until integral. Cuts are
//     valid when every column of the source row is integer valued, which holds
//     for pure integer models with integral data; callers reject other models
//     before building the tree.
//   - Knapsack               ratio-ordered greedy relaxation with 0/1 branching.
//   - ExactKnapsack          exact optimum from the gophersat pseudo-boolean solver.
//
// Pivot rules (all LP variants):
//
//   - entering: most negative objective-row entry, lowest column on ties.
//   - leaving:  minimum ratio, lowest row on ties.
//   - dual leaving: most negative RHS, lowest row; dual entering: minimum
//     |z_j / a_rj| over a_rj < 0, lowest column.
//
// Tableau layout: row 0 is the objective row in maximization form
// (z - c·x = 0), rows 1..m are constraints, the last column is the RHS.
// Row labels are the basic column labels. Values within Eps of an integer are
// snapped to it after every pivot so integrality tests stay exact.
//
// Chains of pivots become parent→child chains in the tree; branching
// algorithms attach two children (left then right) to a branching node.
// Iteration, cut and node caps conclude the affected node with an
// Unrecognized outcome ("IterationLimit", "CutLimit", "NodeLimit").
package engine
