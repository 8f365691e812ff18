package traverse

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/lpsolve/classify"
	"github.com/katalvlaran/lpsolve/formulation"
	"github.com/katalvlaran/lpsolve/report"
	"github.com/katalvlaran/lpsolve/solvetree"
	"github.com/katalvlaran/lpsolve/tableau"
)

// frame is one pending stack entry.
type frame struct {
	node  solvetree.Node
	depth int
}

// walker encapsulates state during a walk.
type walker struct {
	f          *formulation.Formulation
	classifier classify.Classifier
	opts       Options
	res        *Result
	haveBest   bool
	best       float64
}

// Walk linearizes the tree rooted at root. f supplies the objective sense
// for messages and for BestOptimal comparisons.
// On error the partially filled Result is returned with the error.
func Walk(root solvetree.Node, f *formulation.Formulation, c classify.Classifier, opts ...Option) (*Result, error) {
	// 1. Validate input
	if root == nil {
		return nil, ErrNilRoot
	}

	// 2. Apply options
	wopts := DefaultOptions()
	var fn Option
	for _, fn = range opts {
		fn(&wopts)
	}

	w := &walker{f: f, classifier: c, opts: wopts, res: &Result{}}

	return w.res, w.run(root)
}

func (w *walker) run(root solvetree.Node) error {
	stack := []frame{{node: root, depth: 0}}
	var (
		top  frame
		rec  report.Record
		err  error
		kids []solvetree.Node
		i    int
	)
	for len(stack) > 0 {
		// 1. Cancellation and limits
		select {
		case <-w.opts.Ctx.Done():
			return w.opts.Ctx.Err()
		default:
		}
		if w.opts.MaxNodes > 0 && w.res.Visited >= w.opts.MaxNodes {
			return fmt.Errorf("%d nodes visited: %w", w.res.Visited, ErrNodeLimit)
		}

		// 2. Pop
		top = stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// 3. Record
		if rec, err = buildRecord(top.node, top.depth); err != nil {
			return fmt.Errorf("node %d at depth %d: %w", w.res.Visited, top.depth, err)
		}
		w.res.Records = append(w.res.Records, rec)
		w.res.Visited++
		if w.opts.OnVisit != nil {
			if err = w.opts.OnVisit(rec, top.depth); err != nil {
				return fmt.Errorf("traverse: OnVisit hook for %q: %w", rec.Title, err)
			}
		}

		// 4. Outcome
		if o, ok := top.node.Outcome(); ok {
			if err = w.fold(o); err != nil {
				return fmt.Errorf("%s: %w", rec.Title, err)
			}
		}

		// 5. Children in reverse so pops follow engine order
		kids = top.node.Children()
		for i = len(kids) - 1; i >= 0; i-- {
			if kids[i] == nil {
				return fmt.Errorf("child %d of %q: %w", i, rec.Title, ErrNilNode)
			}
			stack = append(stack, frame{node: kids[i], depth: top.depth + 1})
		}
	}

	return nil
}

// fold classifies o and merges it into the summary per policy.
func (w *walker) fold(o solvetree.Outcome) error {
	u, err := w.classifier.Classify(o, w.f)
	if err != nil {
		return err
	}
	w.res.Outcomes++

	if w.opts.Policy == LastTerminal {
		w.apply(u)

		return nil
	}

	// BestOptimal: an optimal outcome replaces the summary only if it improves
	// on the best one seen; non-optimal outcomes write only while none exists.
	if !u.Optimal {
		if !w.haveBest {
			w.apply(u)
		}

		return nil
	}
	sense := formulation.Maximize
	if w.f != nil {
		sense = w.f.Sense()
	}
	if !w.haveBest || classify.Better(sense, u.Objective, w.best) {
		w.haveBest, w.best = true, u.Objective
		w.apply(u)
	}

	return nil
}

func (w *walker) apply(u classify.Update) {
	u.Apply(&w.res.Summary)
	w.res.Kind = u.Kind
}

// buildRecord snapshots one node with a depth title and normalized row labels.
func buildRecord(n solvetree.Node, depth int) (report.Record, error) {
	t := n.Tableau()
	if t == nil {
		return report.Record{}, ErrNilTableau
	}
	if err := t.Validate(); err != nil {
		if errors.Is(err, tableau.ErrNilTableau) {
			return report.Record{}, ErrNilTableau
		}

		return report.Record{}, fmt.Errorf("%w: %w", ErrShape, err)
	}
	state := "Pivot"
	if n.State() == solvetree.Terminal {
		state = "Final"
	}

	return report.Record{
		Title:   fmt.Sprintf("Tableau %d (%s)", depth, state),
		Columns: t.Columns(),
		Rows:    RowLabels(t.NumRows()),
		Values:  t.Values(),
	}, nil
}

// RowLabels returns "z", "c1", ..., "c{n-1}".
func RowLabels(n int) []string {
	if n <= 0 {
		return nil
	}
	out := make([]string, n)
	out[0] = "z"
	for i := 1; i < n; i++ {
		out[i] = fmt.Sprintf("c%d", i)
	}

	return out
}
