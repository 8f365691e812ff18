package traverse

import (
	"context"
	"errors"

	"github.com/katalvlaran/lpsolve/classify"
	"github.com/katalvlaran/lpsolve/report"
)

var (
	// ErrNilRoot is returned when Walk receives a nil root.
	ErrNilRoot = errors.New("traverse: root node is nil")

	// ErrNilNode indicates a nil child in a node's children list.
	ErrNilNode = errors.New("traverse: nil child node")

	// ErrNilTableau indicates a node that exposes no tableau.
	ErrNilTableau = errors.New("traverse: node has no tableau")

	// ErrShape indicates a tableau whose labels disagree with its grid.
	ErrShape = errors.New("traverse: tableau shape mismatch")

	// ErrNodeLimit is returned when the tree has more nodes than WithMaxNodes allows.
	ErrNodeLimit = errors.New("traverse: node limit exceeded")
)

// Policy selects how terminal outcomes fold into the summary.
type Policy int

const (
	// BestOptimal keeps the best Optimal outcome across all terminal nodes.
	BestOptimal Policy = iota
	// LastTerminal lets every outcome overwrite the summary in visit order.
	LastTerminal
)

// String returns "best" or "last".
func (p Policy) String() string {
	if p == LastTerminal {
		return "last"
	}

	return "best"
}

// ParsePolicy maps "best" and "last" to a Policy.
func ParsePolicy(s string) (Policy, bool) {
	switch s {
	case "", "best", "best-optimal":
		return BestOptimal, true
	case "last", "last-terminal":
		return LastTerminal, true
	}

	return BestOptimal, false
}

// Option configures Walk.
type Option func(*Options)

// Options holds traversal parameters.
type Options struct {
	// Ctx allows cancellation; defaults to context.Background().
	Ctx context.Context

	// OnVisit, if non-nil, is invoked with every record right after it is
	// appended. Returning an error aborts the walk.
	OnVisit func(rec report.Record, depth int) error

	// MaxNodes bounds the number of visited nodes; 0 means no limit.
	MaxNodes int

	// Policy selects summary aggregation.
	Policy Policy
}

// DefaultOptions returns background context, no hook, no node limit and BestOptimal.
func DefaultOptions() Options {
	return Options{
		Ctx:      context.Background(),
		OnVisit:  nil,
		MaxNodes: 0,
		Policy:   BestOptimal,
	}
}

// WithContext sets the cancellation context. A nil ctx is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit installs a per-record hook.
func WithOnVisit(fn func(rec report.Record, depth int) error) Option {
	return func(o *Options) {
		o.OnVisit = fn
	}
}

// WithMaxNodes limits the number of visited nodes. n<=0 disables the limit.
func WithMaxNodes(n int) Option {
	return func(o *Options) {
		if n < 0 {
			n = 0
		}
		o.MaxNodes = n
	}
}

// WithPolicy sets the aggregation policy.
func WithPolicy(p Policy) Option {
	return func(o *Options) {
		o.Policy = p
	}
}

// Result is the linearized walk.
type Result struct {
	// Records holds one record per visited node in preorder.
	Records []report.Record
	// Summary is the aggregated terminal summary.
	Summary report.Summary
	// Visited counts visited nodes.
	Visited int
	// Outcomes counts decoded terminal outcomes.
	Outcomes int
	// Kind is the variant of the outcome the Summary was last written from.
	Kind classify.Kind
}
