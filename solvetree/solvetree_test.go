package solvetree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lpsolve/solvetree"
	"github.com/katalvlaran/lpsolve/tableau"
)

func leaf(t *testing.T) *tableau.Tableau {
	t.Helper()
	tb, err := tableau.New([]string{"x", "rhs"}, []string{"z"}, [][]float64{{0, 0}})
	require.NoError(t, err)

	return tb
}

func TestStepLifecycle(t *testing.T) {
	s := solvetree.NewStep(leaf(t))
	assert.Equal(t, solvetree.InProgress, s.State())
	_, ok := s.Outcome()
	assert.False(t, ok)

	s.Conclude(solvetree.Unbounded{Variable: solvetree.ByName("x")})
	assert.Equal(t, solvetree.Terminal, s.State())
	o, ok := s.Outcome()
	require.True(t, ok)
	assert.Equal(t, solvetree.Unbounded{Variable: solvetree.Ref{Name: "x"}}, o)

	s.Finish()
	_, ok = s.Outcome()
	assert.False(t, ok)
	assert.Equal(t, "Terminal", s.State().String())
}

func TestAttachKeepsOrder(t *testing.T) {
	a, b := solvetree.NewStep(leaf(t)), solvetree.NewStep(leaf(t))
	root := solvetree.NewStep(leaf(t)).Attach(a, nil, b)

	kids := root.Children()
	require.Len(t, kids, 2)
	assert.Same(t, a, kids[0])
	assert.Same(t, b, kids[1])

	kids[0] = nil
	assert.NotNil(t, root.Children()[0], "Children returns a copy")
	assert.Equal(t, 3, solvetree.Size(root))
	assert.Equal(t, 0, solvetree.Size(nil))
}

func TestNilStep(t *testing.T) {
	var s *solvetree.Step
	assert.Nil(t, s.Tableau())
	assert.Equal(t, solvetree.InProgress, s.State())
	assert.Nil(t, s.Children())
	_, ok := s.Outcome()
	assert.False(t, ok)

	root := solvetree.NewStep(leaf(t)).Attach(s, solvetree.Node(s))
	assert.Empty(t, root.Children())
	assert.Equal(t, 1, solvetree.Size(root))
}

func TestRef(t *testing.T) {
	assert.Equal(t, "c2", solvetree.Ref{Name: "c2", Index: 2}.String())
	assert.Equal(t, "#3", solvetree.ByIndex(3).String())
	assert.True(t, solvetree.Ref{}.IsZero())
	assert.False(t, solvetree.ByIndex(1).IsZero())
}

func TestFromMapSortsByName(t *testing.T) {
	p := solvetree.FromMap(map[string]float64{"x2": 0, "x1": 2.5})
	assert.Equal(t, []solvetree.Pair{{Name: "x1", Value: 2.5}, {Name: "x2", Value: 0.0}}, p.Pairs())
}
