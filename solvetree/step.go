package solvetree

import "github.com/katalvlaran/lpsolve/tableau"

// Step is the concrete Node built by engines. A Step starts InProgress;
// Conclude or Finish turn it Terminal.
type Step struct {
	tab      *tableau.Tableau
	state    State
	children []Node
	outcome  Outcome
}

var _ Node = (*Step)(nil)

// NewStep returns an InProgress node for t.
func NewStep(t *tableau.Tableau) *Step {
	return &Step{tab: t, state: InProgress}
}

// Attach appends children in order and returns s for chaining.
// Nil children, including a nil *Step, are ignored.
func (s *Step) Attach(children ...Node) *Step {
	for _, c := range children {
		if c == nil {
			continue
		}
		if st, ok := c.(*Step); ok && st == nil {
			continue
		}
		s.children = append(s.children, c)
	}

	return s
}

// Conclude marks s Terminal with outcome o.
func (s *Step) Conclude(o Outcome) *Step {
	s.state = Terminal
	s.outcome = o

	return s
}

// Finish marks s Terminal without an outcome (e.g. a pruned branch).
func (s *Step) Finish() *Step {
	s.state = Terminal
	s.outcome = nil

	return s
}

// The Node accessors accept a nil *Step: it has no tableau, no children and
// no outcome, so a walk reports it instead of dereferencing it.

// Tableau implements Node.
func (s *Step) Tableau() *tableau.Tableau {
	if s == nil {
		return nil
	}

	return s.tab
}

// State implements Node.
func (s *Step) State() State {
	if s == nil {
		return InProgress
	}

	return s.state
}

// Children implements Node. The returned slice is a copy.
func (s *Step) Children() []Node {
	if s == nil {
		return nil
	}

	return append([]Node(nil), s.children...)
}

// Outcome implements Node.
func (s *Step) Outcome() (Outcome, bool) {
	if s == nil {
		return nil, false
	}

	return s.outcome, s.outcome != nil
}

// Size counts the nodes of the tree rooted at n without recursion.
func Size(n Node) int {
	if n == nil {
		return 0
	}
	count := 0
	stack := []Node{n}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++
		stack = append(stack, top.Children()...)
	}

	return count
}
