// Package lpsolve is a teaching-oriented toolkit for linear and integer
// programming that shows its work: every solver reports the full sequence
// of tableaus it visited, followed by one terminal summary.
//
// 🚀 What is lpsolve?
//
//	One reporting protocol over several textbook algorithms:
//		• Primal Simplex (tableau form, feasible start)
//		• Revised Primal Simplex (basis inverse recomputed each pivot)
//		• Revised Dual Simplex (dual start, single-artificial phase one)
//		• Branch & Bound (depth-first, most fractional variable)
//		• Cutting Plane (Gomory fractional cuts)
//		• Binary Knapsack (ratio bound, exact cross-check via gophersat)
//
// ✨ How a solve flows
//
//   - applicability checks whether the chosen algorithm can take the model
//     and explains the alternative when it cannot;
//   - engine builds a solve tree of tableau snapshots;
//   - traverse linearizes the tree in display order and classify turns
//     terminal outcomes into the summary;
//   - runner ties the steps together per algorithm and exposes the registry.
//
// Packages:
//
//	formulation/    models, canonical ≤-form, expression parser, YAML loader
//	tableau/        dense grids and labelled tableaus
//	solvetree/      the solve tree contract and terminal outcomes
//	applicability/  per-algorithm rule sets
//	classify/       outcome decoding and value normalization
//	traverse/       explicit-stack preorder walk and summary aggregation
//	report/         records, summaries and text/JSON/YAML output
//	engine/         the reference solving engines
//	runner/         solver runners, registry, logging, metrics and tracing
//	cmd/lpsolve/    command-line interface
//
// Quick start:
//
//	f, _ := formulation.LoadFile("model.yaml")
//	rep, err := runner.NewRevisedDualSimplex().Solve(ctx, f)
//	_ = report.Render(os.Stdout, rep)
//
// or from the shell:
//
//	lpsolve solve -f model.yaml -a revised-dual-simplex
package lpsolve
