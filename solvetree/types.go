package solvetree

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/lpsolve/tableau"
)

// State tags a node as an intermediate pivot or a search-path end.
type State int

const (
	// InProgress marks an interior computation step.
	InProgress State = iota
	// Terminal marks a node that ends its search path.
	Terminal
)

// String returns "InProgress" or "Terminal".
func (s State) String() string {
	if s == Terminal {
		return "Terminal"
	}

	return "InProgress"
}

// Node is one snapshot of an engine's search.
type Node interface {
	// Tableau returns the node's grid snapshot.
	Tableau() *tableau.Tableau
	// State returns the node's state tag.
	State() State
	// Children returns the ordered child nodes.
	Children() []Node
	// Outcome returns the terminal outcome, if the node carries one.
	Outcome() (Outcome, bool)
}

// Outcome is the closed set of search conclusions.
type Outcome interface {
	outcome()
}

// Optimal reports an optimal vertex of the search path.
type Optimal struct {
	Assignment Assignment
	Objective  float64
}

// Unbounded reports the variable (column) along which the objective grows without bound.
type Unbounded struct {
	Variable Ref
}

// Infeasible reports the constraint (row) that cannot be satisfied.
type Infeasible struct {
	Constraint Ref
}

// Unrecognized carries an engine-specific conclusion verbatim.
type Unrecognized struct {
	Tag string
}

func (Optimal) outcome()      {}
func (Unbounded) outcome()    {}
func (Infeasible) outcome()   {}
func (Unrecognized) outcome() {}

// Ref names a variable or constraint by label, by 1-based position, or both.
type Ref struct {
	Name  string
	Index int
}

// ByName returns a Ref holding only a label.
func ByName(name string) Ref { return Ref{Name: name} }

// ByIndex returns a Ref holding only a 1-based position.
func ByIndex(i int) Ref { return Ref{Index: i} }

// IsZero reports whether the Ref carries neither a name nor a position.
func (r Ref) IsZero() bool { return r.Name == "" && r.Index <= 0 }

// String prefers the name and falls back to "#index".
func (r Ref) String() string {
	if r.Name != "" {
		return r.Name
	}
	if r.Index > 0 {
		return fmt.Sprintf("#%d", r.Index)
	}

	return ""
}

// Pair is one name/value entry of an assignment. Value holds any numeric
// representation the engine produced; consumers coerce it.
type Pair struct {
	Name  string
	Value any
}

// Assignment is the adapter engines expose for variable values.
type Assignment interface {
	Pairs() []Pair
}

// Pairs is an ordered Assignment.
type Pairs []Pair

// Pairs returns a copy of p.
func (p Pairs) Pairs() []Pair { return append([]Pair(nil), p...) }

// FromMap returns the map entries as Pairs sorted by name.
func FromMap(m map[string]float64) Pairs {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	out := make(Pairs, len(names))
	for i, n := range names {
		out[i] = Pair{Name: n, Value: m[n]}
	}

	return out
}
