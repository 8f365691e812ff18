package runner_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lpsolve/applicability"
	"github.com/katalvlaran/lpsolve/formulation"
	"github.com/katalvlaran/lpsolve/report"
	"github.com/katalvlaran/lpsolve/runner"
	"github.com/katalvlaran/lpsolve/traverse"
)

var quiet = runner.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))

func model(t *testing.T, sense formulation.Sense, kind formulation.IntRestriction, obj []float64, cons ...formulation.Constraint) *formulation.Formulation {
	t.Helper()
	vars := make([]formulation.Variable, len(obj))
	for i, c := range obj {
		vars[i] = formulation.Variable{Name: []string{"x1", "x2", "x3"}[i], Objective: c, Int: kind}
	}
	f, err := formulation.New("t", sense, vars, cons)
	require.NoError(t, err)

	return f
}

func le(rhs float64, coeffs ...float64) formulation.Constraint {
	return formulation.Constraint{Coeffs: coeffs, Relation: formulation.LE, RHS: rhs}
}

// toy is max 2x1 + 3x2 s.t. x1 + x2 <= 4: one pivot to x2 = 4, z = 12.
func toy(t *testing.T) *formulation.Formulation {
	return model(t, formulation.Maximize, formulation.Continuous, []float64{2, 3}, le(4, 1, 1))
}

func ilp(t *testing.T) *formulation.Formulation {
	return model(t, formulation.Maximize, formulation.Integer, []float64{5, 4}, le(24, 6, 4), le(6, 1, 2))
}

func titles(rep *report.Report) []string {
	out := make([]string, len(rep.Iterations))
	for i := range rep.Iterations {
		out[i] = rep.Iterations[i].Title
	}

	return out
}

func TestSolve_EndToEnd(t *testing.T) {
	rep, err := runner.NewPrimalSimplex(quiet).Solve(context.Background(), toy(t))
	require.NoError(t, err)

	assert.Equal(t, runner.KeyPrimalSimplex, rep.Algorithm)
	assert.Equal(t, []string{"Canonical Form", "Tableau 0 (Pivot)", "Tableau 1 (Final)"}, titles(rep))

	echo := rep.Iterations[0]
	assert.Equal(t, []string{"x1", "x2", "rhs"}, echo.Columns)
	assert.Equal(t, []string{"z", "c1"}, echo.Rows)
	assert.Equal(t, [][]float64{{0, 0, 0}, {1, 1, 4}}, echo.Values)

	final := rep.Iterations[2]
	assert.Equal(t, []string{"z", "c1"}, final.Rows)
	assert.Equal(t, 12.0, final.Values[0][len(final.Columns)-1])

	s := rep.Summary
	assert.True(t, s.Optimal)
	assert.Equal(t, 12.0, s.Objective)
	assert.Equal(t, []string{"x1", "x2"}, s.VariableValues.Names())
	assert.Equal(t, map[string]float64{"x1": 0, "x2": 4}, s.VariableValues.Map())
	assert.Equal(t, "Optimal solution found using Primal Simplex method for maximization problem.", s.Message)
}

func TestSolve_RejectionLeavesEmptyLog(t *testing.T) {
	f := model(t, formulation.Maximize, formulation.Continuous, []float64{1, 1}, le(-3, 1, -1))
	before := testutil.ToFloat64(runner.RejectionsCounter(runner.KeyPrimalSimplex))

	rep, err := runner.NewPrimalSimplex(quiet).Solve(context.Background(), f)
	require.NoError(t, err)
	assert.Empty(t, rep.Iterations)
	assert.False(t, rep.Summary.Optimal)
	assert.Contains(t, rep.Summary.Message, "Revised Dual Simplex")
	assert.Equal(t, 0, rep.Summary.VariableValues.Len())
	assert.Equal(t, before+1, testutil.ToFloat64(runner.RejectionsCounter(runner.KeyPrimalSimplex)))
}

func TestSolve_RejectionMessages(t *testing.T) {
	ctx := context.Background()

	rep, err := runner.NewRevisedPrimalSimplex(quiet).Solve(ctx, ilp(t))
	require.NoError(t, err)
	assert.Equal(t,
		"Revised Primal Simplex cannot handle integer restrictions. Variable 'x1' has integer restriction. Use Branch & Bound or Cutting Plane instead.",
		rep.Summary.Message)

	rep, err = runner.NewBranchAndBound(quiet).Solve(ctx, toy(t))
	require.NoError(t, err)
	assert.Empty(t, rep.Iterations)
	assert.False(t, rep.Summary.Optimal)

	rep, err = runner.NewKnapsack(quiet).Solve(ctx, ilp(t))
	require.NoError(t, err)
	assert.Empty(t, rep.Iterations)
	assert.Contains(t, rep.Summary.Message, "Knapsack")

	rep, err = runner.NewCuttingPlane(quiet).Solve(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, applicability.MsgNoFormulation, rep.Summary.Message)
}

func TestSolve_CallIsolation(t *testing.T) {
	r := runner.NewPrimalSimplex(quiet)
	ctx := context.Background()

	first, err := r.Solve(ctx, toy(t))
	require.NoError(t, err)

	// a rejected call in between must not leak into either report
	bad := model(t, formulation.Maximize, formulation.Integer, []float64{1}, le(1, 1))
	rejected, err := r.Solve(ctx, bad)
	require.NoError(t, err)
	assert.Empty(t, rejected.Iterations)

	second, err := r.Solve(ctx, toy(t))
	require.NoError(t, err)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated solve differs (-first +second):\n%s", diff)
	}

	// reports do not alias each other
	second.Iterations[1].Values[0][0] = 99
	second.Summary.VariableValues.Set("x1", 99)
	assert.NotEqual(t, 99.0, first.Iterations[1].Values[0][0])
	x1, _ := first.Summary.VariableValues.Get("x1")
	assert.Equal(t, 0.0, x1)
}

func TestSolve_IntegerAlgorithms(t *testing.T) {
	for _, newRunner := range []func(...runner.Option) runner.Runner{runner.NewBranchAndBound, runner.NewCuttingPlane} {
		r := newRunner(quiet)
		t.Run(r.Key(), func(t *testing.T) {
			rep, err := r.Solve(context.Background(), ilp(t))
			require.NoError(t, err)
			assert.True(t, rep.Summary.Optimal)
			assert.Equal(t, 20.0, rep.Summary.Objective)
			assert.Equal(t, map[string]float64{"x1": 4, "x2": 0}, rep.Summary.VariableValues.Map())
			assert.Contains(t, rep.Summary.Message, "for maximization problem.")
			assert.Equal(t, runner.CanonicalTitle, rep.Iterations[0].Title)
		})
	}
}

func TestSolve_CuttingPlaneRejectsMixedAndFractional(t *testing.T) {
	mixed, err := formulation.New("mixed", formulation.Maximize, []formulation.Variable{
		{Name: "x1", Objective: 1, Int: formulation.Integer},
		{Name: "y", Objective: 1},
	}, []formulation.Constraint{le(2.5, 1, 1), le(0.5, 0, 1)})
	require.NoError(t, err)
	fractional := model(t, formulation.Minimize, formulation.Integer, []float64{3, 2},
		formulation.Constraint{Coeffs: []float64{1, 1}, Relation: formulation.GE, RHS: 3.5})

	for _, tc := range []struct {
		f       *formulation.Formulation
		message string
		best    float64
	}{
		{f: mixed, message: "Variable 'y' is continuous", best: 2.5},
		{f: fractional, message: "Constraint 'c1' has fractional data", best: 8},
	} {
		rep, err := runner.NewCuttingPlane(quiet).Solve(context.Background(), tc.f)
		require.NoError(t, err)
		assert.False(t, rep.Summary.Optimal)
		assert.Empty(t, rep.Iterations)
		assert.Contains(t, rep.Summary.Message, tc.message)
		assert.Contains(t, rep.Summary.Message, "Branch & Bound")

		rep, err = runner.NewBranchAndBound(quiet).Solve(context.Background(), tc.f)
		require.NoError(t, err)
		assert.True(t, rep.Summary.Optimal)
		assert.InDelta(t, tc.best, rep.Summary.Objective, 1e-9)
	}
}

func TestSolve_RevisedDualMinimization(t *testing.T) {
	f := model(t, formulation.Minimize, formulation.Continuous, []float64{1, 1},
		formulation.Constraint{Coeffs: []float64{1, 2}, Relation: formulation.GE, RHS: 4},
		formulation.Constraint{Coeffs: []float64{3, 1}, Relation: formulation.GE, RHS: 6})

	rep, err := runner.NewRevisedDualSimplex(quiet).Solve(context.Background(), f)
	require.NoError(t, err)
	assert.True(t, rep.Summary.Optimal)
	assert.InDelta(t, 2.8, rep.Summary.Objective, 1e-9)
	assert.Equal(t, "Optimal solution found using Revised Dual Simplex method for minimization problem.", rep.Summary.Message)

	// the canonical echo carries the negated GE rows
	assert.Equal(t, []float64{-1, -2, -4}, rep.Iterations[0].Values[1])
}

func TestSolve_Knapsack(t *testing.T) {
	vars := []formulation.Variable{
		{Name: "a", Objective: 10, Int: formulation.Binary},
		{Name: "b", Objective: 13, Int: formulation.Binary},
		{Name: "c", Objective: 7, Int: formulation.Binary},
	}
	f, err := formulation.New("ks", formulation.Maximize, vars,
		[]formulation.Constraint{{Coeffs: []float64{3, 4, 2}, RHS: 6}})
	require.NoError(t, err)

	rep, err := runner.NewKnapsack(quiet).Solve(context.Background(), f)
	require.NoError(t, err)
	assert.True(t, rep.Summary.Optimal)
	assert.Equal(t, 20.0, rep.Summary.Objective)
	assert.Equal(t, map[string]float64{"a": 0, "b": 1, "c": 1}, rep.Summary.VariableValues.Map())
	assert.Equal(t, "Optimal solution found using Knapsack method for maximization problem.", rep.Summary.Message)
}

func TestSolve_UnboundedSummary(t *testing.T) {
	f := model(t, formulation.Maximize, formulation.Continuous, []float64{1, 1}, le(1, 1, -1))

	rep, err := runner.NewRevisedPrimalSimplex(quiet).Solve(context.Background(), f)
	require.NoError(t, err)
	assert.False(t, rep.Summary.Optimal)
	assert.Equal(t, "Unbounded (variable x2).", rep.Summary.Message)
}

func TestSolve_WalkErrors(t *testing.T) {
	rep, err := runner.NewBranchAndBound(quiet, runner.WithMaxNodes(2)).Solve(context.Background(), ilp(t))
	require.ErrorIs(t, err, traverse.ErrNodeLimit)
	require.NotNil(t, rep)
	assert.Len(t, rep.Iterations, 3, "echo plus the two visited nodes")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = runner.NewPrimalSimplex(quiet).Solve(ctx, toy(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolve_Policy(t *testing.T) {
	// branch-and-bound visits (3,1) z=19 before (4,0) z=20; both policies end on 20
	for _, p := range []traverse.Policy{traverse.BestOptimal, traverse.LastTerminal} {
		rep, err := runner.NewBranchAndBound(quiet, runner.WithPolicy(p)).Solve(context.Background(), ilp(t))
		require.NoError(t, err)
		assert.Equal(t, 20.0, rep.Summary.Objective, p.String())
	}
}

func TestSolve_Metrics(t *testing.T) {
	solved := runner.SolvesCounter(runner.KeyRevisedPrimalSimplex, "optimal")
	before := testutil.ToFloat64(solved)

	_, err := runner.NewRevisedPrimalSimplex(quiet).Solve(context.Background(), toy(t))
	require.NoError(t, err)
	assert.Equal(t, before+1, testutil.ToFloat64(solved))
}

func TestSolve_Span(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))

	_, err := runner.NewPrimalSimplex(quiet, runner.WithTracerProvider(tp)).Solve(context.Background(), toy(t))
	require.NoError(t, err)

	spans := rec.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "runner.Solve", spans[0].Name())
	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, runner.KeyPrimalSimplex, attrs["algorithm"])
	assert.Equal(t, "optimal", attrs["outcome"])
	assert.Equal(t, "3", attrs["iterations"])
	assert.NotEmpty(t, attrs["run_id"])
}

func TestSolve_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := runner.NewPrimalSimplex(runner.WithLogger(logger)).Solve(context.Background(), toy(t))
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "run_id=")
	assert.Contains(t, out, "algorithm=primal-simplex")
	assert.Contains(t, out, `msg="node visited"`)
	assert.Contains(t, out, `msg="solve finished"`)
	assert.Contains(t, out, "outcome=optimal")
}

func TestSolve_ConcurrentUse(t *testing.T) {
	r := runner.NewBranchAndBound(quiet)
	f := ilp(t)
	want, err := r.Solve(context.Background(), f)
	require.NoError(t, err)

	reps := make([]*report.Report, 8)
	g, ctx := errgroup.WithContext(context.Background())
	for i := range reps {
		i := i
		g.Go(func() error {
			rep, err := r.Solve(ctx, f)
			reps[i] = rep

			return err
		})
	}
	require.NoError(t, g.Wait())
	for i, rep := range reps {
		assert.Empty(t, cmp.Diff(want, rep), "report %d", i)
	}
}
