// Package runner adapts the solving engines to one reporting protocol.
//
// A Runner is selected by key from the static registry (see Available and
// Lookup). Each Solve call:
//
//   - checks the formulation against the algorithm's applicability rules and,
//     on rejection, returns a Report with an empty iteration log and the
//     rule's message;
//   - echoes the canonical form as the first record ("Canonical Form");
//   - builds the solve tree with the engine and linearizes it with
//     traverse.Walk, classifying terminal outcomes with the algorithm's
//     method name.
//
// Runners keep no per-call state and are safe for concurrent use. Every
// call is logged through log/slog with a fresh run id, counted in the
// lpsolve_* Prometheus metrics and wrapped in a "runner.Solve" span.
package runner
