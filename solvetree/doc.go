// Package solvetree defines the Solve Tree contract shared by solving engines
// and the orchestration layer.
//
// A solving engine materializes its search as a tree of Nodes. Every node
// exposes a tableau snapshot, a State (InProgress for pivot steps, Terminal
// for nodes that end a search path), its ordered children, and, on nodes that
// conclude the search, an Outcome.
//
// Outcome is a closed sum type: Optimal, Unbounded, Infeasible and
// Unrecognized are its only implementations, enforced by an unexported marker
// method. Consumers decode it with an exhaustive type switch plus a default
// arm.
//
// Variable assignments reach the orchestration layer through the narrow
// Assignment adapter (an ordered sequence of name/value pairs). Pairs is the
// reference implementation; FromMap builds one from a map in name order.
//
// Children order is significant: consumers visit children in exactly the
// order Children returns them.
package solvetree
