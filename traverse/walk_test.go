package traverse_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lpsolve/classify"
	"github.com/katalvlaran/lpsolve/formulation"
	"github.com/katalvlaran/lpsolve/report"
	"github.com/katalvlaran/lpsolve/solvetree"
	"github.com/katalvlaran/lpsolve/tableau"
	"github.com/katalvlaran/lpsolve/traverse"
)

var method = classify.Classifier{Method: "Test"}

// tagged builds a node whose single rhs cell identifies it; rows are
// deliberately mislabelled to exercise normalization.
func tagged(t *testing.T, id float64, rows int) *solvetree.Step {
	t.Helper()
	labels := make([]string, rows)
	vals := make([][]float64, rows)
	for i := range vals {
		labels[i] = "engine-row"
		vals[i] = []float64{id}
	}
	tb, err := tableau.New([]string{"rhs"}, labels, vals)
	require.NoError(t, err)

	return solvetree.NewStep(tb)
}

func ids(recs []report.Record) []float64 {
	out := make([]float64, len(recs))
	for i, r := range recs {
		out[i] = r.Values[0][0]
	}

	return out
}

func titles(recs []report.Record) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Title
	}

	return out
}

func maxModel(t *testing.T, sense formulation.Sense) *formulation.Formulation {
	t.Helper()
	f, err := formulation.New("t", sense, []formulation.Variable{{Name: "x", Objective: 1}}, nil)
	require.NoError(t, err)

	return f
}

func TestWalk_StrictPreorder(t *testing.T) {
	// root(0) -> [c0(1) -> [c0a(2), c0b(3)], c1(4) -> [c1a(5)]]
	c0 := tagged(t, 1, 2).Attach(tagged(t, 2, 3).Finish(), tagged(t, 3, 3).Finish())
	c1 := tagged(t, 4, 2).Attach(tagged(t, 5, 3).Finish())
	root := tagged(t, 0, 2).Attach(c0, c1)

	res, err := traverse.Walk(root, nil, method)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 1, 2, 3, 4, 5}, ids(res.Records))
	assert.Equal(t, []string{
		"Tableau 0 (Pivot)",
		"Tableau 1 (Pivot)",
		"Tableau 2 (Final)",
		"Tableau 2 (Final)",
		"Tableau 1 (Pivot)",
		"Tableau 2 (Final)",
	}, titles(res.Records))
	assert.Equal(t, 6, res.Visited)
}

func TestWalk_RowLabelsNormalized(t *testing.T) {
	root := tagged(t, 0, 4).Attach(tagged(t, 1, 5))
	res, err := traverse.Walk(root, nil, method)
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "c1", "c2", "c3"}, res.Records[0].Rows)
	assert.Equal(t, []string{"z", "c1", "c2", "c3", "c4"}, res.Records[1].Rows)
	assert.Equal(t, []string{"z"}, traverse.RowLabels(1))
	assert.Nil(t, traverse.RowLabels(0))
}

func TestWalk_DeepChainNoRecursion(t *testing.T) {
	root := tagged(t, 0, 1)
	cur := root
	for i := 1; i < 20000; i++ {
		next := tagged(t, float64(i), 1)
		cur.Attach(next)
		cur = next
	}
	res, err := traverse.Walk(root, nil, method)
	require.NoError(t, err)
	assert.Equal(t, 20000, res.Visited)
	assert.Equal(t, "Tableau 19999 (Pivot)", res.Records[19999].Title)
}

func optimal(obj float64, x float64) solvetree.Outcome {
	return solvetree.Optimal{Assignment: solvetree.Pairs{{Name: "x", Value: x}}, Objective: obj}
}

func branching(t *testing.T) *solvetree.Step {
	return tagged(t, 0, 1).Attach(
		tagged(t, 1, 1).Conclude(optimal(5, 5)),
		tagged(t, 2, 1).Conclude(optimal(9, 9)),
		tagged(t, 3, 1).Conclude(optimal(7, 7)),
		tagged(t, 4, 1).Conclude(solvetree.Infeasible{Constraint: solvetree.ByName("c2")}),
	)
}

func TestWalk_BestOptimalPolicy(t *testing.T) {
	res, err := traverse.Walk(branching(t), maxModel(t, formulation.Maximize), method)
	require.NoError(t, err)
	assert.True(t, res.Summary.Optimal)
	assert.Equal(t, 9.0, res.Summary.Objective)
	assert.Equal(t, 4, res.Outcomes)

	res, err = traverse.Walk(branching(t), maxModel(t, formulation.Minimize), method)
	require.NoError(t, err)
	assert.Equal(t, 5.0, res.Summary.Objective)
	assert.Contains(t, res.Summary.Message, "minimization")
}

func TestWalk_LastTerminalPolicy(t *testing.T) {
	res, err := traverse.Walk(branching(t), maxModel(t, formulation.Maximize), method,
		traverse.WithPolicy(traverse.LastTerminal))
	require.NoError(t, err)
	assert.False(t, res.Summary.Optimal)
	assert.Equal(t, "Infeasible (constraint c2).", res.Summary.Message)
}

func TestWalk_NonOptimalOnly(t *testing.T) {
	root := tagged(t, 0, 1).Attach(
		tagged(t, 1, 1).Conclude(solvetree.Infeasible{Constraint: solvetree.ByName("c1")}),
		tagged(t, 2, 1).Conclude(solvetree.Unrecognized{Tag: "CutLimit"}),
	)
	res, err := traverse.Walk(root, nil, method)
	require.NoError(t, err)
	assert.Equal(t, "Result: CutLimit", res.Summary.Message)
}

func TestWalk_Errors(t *testing.T) {
	_, err := traverse.Walk(nil, nil, method)
	assert.ErrorIs(t, err, traverse.ErrNilRoot)

	_, err = traverse.Walk(solvetree.NewStep(nil), nil, method)
	assert.ErrorIs(t, err, traverse.ErrNilTableau)

	d, derr := tableau.NewDense(2, 2)
	require.NoError(t, derr)
	bad := solvetree.NewStep(tableau.Assemble([]string{"a"}, []string{"z", "c1"}, d))
	_, err = traverse.Walk(tagged(t, 0, 1).Attach(bad), nil, method)
	assert.ErrorIs(t, err, traverse.ErrShape)
	assert.ErrorIs(t, err, tableau.ErrLabelMismatch)

	malformed := tagged(t, 0, 1).Conclude(solvetree.Optimal{})
	res, err := traverse.Walk(malformed, nil, method)
	assert.ErrorIs(t, err, classify.ErrMalformedOutcome)
	assert.Len(t, res.Records, 1)

	coercion := tagged(t, 0, 1).Conclude(solvetree.Optimal{Assignment: solvetree.Pairs{{Name: "x", Value: "?"}}})
	_, err = traverse.Walk(coercion, nil, method)
	assert.ErrorIs(t, err, classify.ErrCoercion)
}

// wrapped overrides Children so a tree can carry children Attach would drop.
type wrapped struct {
	*solvetree.Step
	kids []solvetree.Node
}

func (n wrapped) Children() []solvetree.Node { return n.kids }

func TestWalk_NilStepChild(t *testing.T) {
	var missing *solvetree.Step
	root := wrapped{Step: tagged(t, 0, 1), kids: []solvetree.Node{tagged(t, 1, 1), missing}}

	var res *traverse.Result
	var err error
	require.NotPanics(t, func() { res, err = traverse.Walk(root, nil, method) })
	assert.ErrorIs(t, err, traverse.ErrNilTableau)
	assert.Len(t, res.Records, 2, "nodes before the nil child are kept")

	_, err = traverse.Walk(missing, nil, method)
	assert.ErrorIs(t, err, traverse.ErrNilTableau)
}

func TestWalk_Options(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := traverse.Walk(branching(t), nil, method, traverse.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = traverse.Walk(branching(t), nil, method, traverse.WithMaxNodes(3))
	assert.ErrorIs(t, err, traverse.ErrNodeLimit)

	res, err := traverse.Walk(branching(t), nil, method, traverse.WithMaxNodes(5))
	require.NoError(t, err)
	assert.Equal(t, 5, res.Visited)

	stop := errors.New("stop")
	var depths []int
	_, err = traverse.Walk(branching(t), nil, method, traverse.WithOnVisit(func(_ report.Record, depth int) error {
		depths = append(depths, depth)
		if len(depths) == 2 {
			return stop
		}

		return nil
	}))
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, []int{0, 1}, depths)
}

func TestParsePolicy(t *testing.T) {
	p, ok := traverse.ParsePolicy("last")
	assert.True(t, ok)
	assert.Equal(t, traverse.LastTerminal, p)
	assert.Equal(t, "best", traverse.BestOptimal.String())

	_, ok = traverse.ParsePolicy("worst")
	assert.False(t, ok)
}
