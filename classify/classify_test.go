package classify_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lpsolve/classify"
	"github.com/katalvlaran/lpsolve/formulation"
	"github.com/katalvlaran/lpsolve/report"
	"github.com/katalvlaran/lpsolve/solvetree"
)

type bogus struct{ solvetree.Outcome }

func model(t *testing.T, sense formulation.Sense) *formulation.Formulation {
	t.Helper()
	f, err := formulation.New("t", sense, []formulation.Variable{{Name: "x1", Objective: 1}}, nil)
	require.NoError(t, err)

	return f
}

func TestClassify_Optimal(t *testing.T) {
	c := classify.Classifier{Method: "Primal Simplex"}
	u, err := c.Classify(solvetree.Optimal{
		Assignment: solvetree.Pairs{{Name: "x1", Value: 2}, {Name: "x2", Value: "1.5"}},
		Objective:  7,
	}, model(t, formulation.Minimize))
	require.NoError(t, err)

	assert.True(t, u.Optimal)
	assert.Equal(t, 7.0, u.Objective)
	assert.Equal(t, classify.KindOptimal, u.Kind)
	assert.Equal(t, "Optimal solution found using Primal Simplex method for minimization problem.", u.Message)
	assert.Equal(t, []string{"x1", "x2"}, u.Values.Names())

	var s report.Summary
	u.Apply(&s)
	assert.True(t, s.Optimal)
	x, _ := s.VariableValues.Get("x2")
	assert.Equal(t, 1.5, x)
}

func TestClassify_OtherVariants(t *testing.T) {
	c := classify.Classifier{Method: "Branch & Bound"}
	f := model(t, formulation.Maximize)

	u, err := c.Classify(solvetree.Unbounded{Variable: solvetree.ByName("x2")}, f)
	require.NoError(t, err)
	assert.False(t, u.Optimal)
	assert.Equal(t, "Unbounded (variable x2).", u.Message)

	u, err = c.Classify(solvetree.Infeasible{Constraint: solvetree.ByIndex(3)}, f)
	require.NoError(t, err)
	assert.Equal(t, "Infeasible (constraint #3).", u.Message)

	u, err = c.Classify(solvetree.Unrecognized{Tag: "IterationLimit"}, f)
	require.NoError(t, err)
	assert.Equal(t, "Result: IterationLimit", u.Message)
	assert.Equal(t, "unrecognized", u.Kind.String())
}

func TestClassify_Malformed(t *testing.T) {
	c := classify.Classifier{Method: "m"}
	cases := []solvetree.Outcome{
		nil,
		solvetree.Optimal{},
		solvetree.Unbounded{},
		solvetree.Infeasible{},
		bogus{},
	}
	for _, o := range cases {
		_, err := c.Classify(o, nil)
		assert.ErrorIs(t, err, classify.ErrMalformedOutcome, "%T", o)
	}
}

func TestApply_OverwritesEveryField(t *testing.T) {
	s := report.Summary{Optimal: true, Objective: 3, Message: "old"}
	s.VariableValues.Set("x", 1)

	classify.Update{Message: "Result: X"}.Apply(&s)
	assert.False(t, s.Optimal)
	assert.Equal(t, 0.0, s.Objective)
	assert.Equal(t, 0, s.VariableValues.Len())
	assert.Equal(t, "Result: X", s.Message)
}

func TestNormalize(t *testing.T) {
	vals, err := classify.Normalize(solvetree.Pairs{{Name: "x1", Value: 2.5}, {Name: "x2", Value: 0}})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"x1": 2.5, "x2": 0.0}, vals.Map())
	assert.Equal(t, []string{"x1", "x2"}, vals.Names())

	vals, err = classify.Normalize(solvetree.Pairs{{Name: "", Value: 9}, {Name: "x1", Value: uint8(3)}})
	require.NoError(t, err)
	assert.Equal(t, []string{"x1"}, vals.Names())

	vals, err = classify.Normalize(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, vals.Len())

	_, err = classify.Normalize(solvetree.Pairs{{Name: "x1", Value: struct{}{}}})
	assert.ErrorIs(t, err, classify.ErrCoercion)
}

func TestCoerce(t *testing.T) {
	ok := map[string]any{
		"int":    int64(-4),
		"uint":   uint(4),
		"f32":    float32(0.5),
		"number": json.Number("2.25"),
		"string": " 1e2 ",
	}
	want := map[string]float64{"int": -4, "uint": 4, "f32": 0.5, "number": 2.25, "string": 100}
	for k, v := range ok {
		x, err := classify.Coerce(v)
		require.NoError(t, err, k)
		assert.Equal(t, want[k], x, k)
	}

	for _, bad := range []any{"abc", json.Number("x"), math.NaN(), math.Inf(-1), true, nil} {
		_, err := classify.Coerce(bad)
		assert.ErrorIs(t, err, classify.ErrCoercion, "%v", bad)
	}
}

func TestBetter(t *testing.T) {
	assert.True(t, classify.Better(formulation.Maximize, 3, 2))
	assert.False(t, classify.Better(formulation.Maximize, 2, 2))
	assert.True(t, classify.Better(formulation.Minimize, 1, 2))
}
