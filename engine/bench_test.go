package engine_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/lpsolve/engine"
	"github.com/katalvlaran/lpsolve/formulation"
	"github.com/katalvlaran/lpsolve/solvetree"
)

// randomKnapsack builds an n-item instance with integral data from a fixed seed.
func randomKnapsack(b *testing.B, n int) *formulation.Formulation {
	rng := rand.New(rand.NewSource(int64(n)))
	values := make([]float64, n)
	weights := make([]float64, n)
	total := 0.0
	for i := 0; i < n; i++ {
		values[i] = float64(1 + rng.Intn(40))
		weights[i] = float64(1 + rng.Intn(20))
		total += weights[i]
	}

	return knapsackModel(b, values, weights, float64(int(total/2)))
}

func benchmarkEngine(b *testing.B, f *formulation.Formulation, run func(*formulation.Formulation, engine.Options) (solvetree.Node, error)) {
	opts := engine.DefaultOptions()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := run(f, opts); err != nil {
			b.Fatalf("engine failed: %v", err)
		}
	}
}

func BenchmarkPrimalSimplex_Textbook(b *testing.B) {
	f := build(b, formulation.Maximize, []float64{3, 5}, formulation.Continuous,
		le(4, 1, 0), le(12, 0, 2), le(18, 3, 2))
	benchmarkEngine(b, f, engine.PrimalSimplex)
}

func BenchmarkRevisedPrimalSimplex_Textbook(b *testing.B) {
	f := build(b, formulation.Maximize, []float64{3, 5}, formulation.Continuous,
		le(4, 1, 0), le(12, 0, 2), le(18, 3, 2))
	benchmarkEngine(b, f, engine.RevisedPrimalSimplex)
}

func BenchmarkBranchAndBound_ILP(b *testing.B) {
	benchmarkEngine(b, ilp(b), engine.BranchAndBound)
}

func BenchmarkCuttingPlane_ILP(b *testing.B) {
	benchmarkEngine(b, ilp(b), engine.CuttingPlane)
}

// BenchmarkKnapsack_20 measures the tree search on 20 items.
func BenchmarkKnapsack_20(b *testing.B) {
	benchmarkEngine(b, randomKnapsack(b, 20), engine.Knapsack)
}

// BenchmarkExactKnapsack_20 measures the pseudo-boolean cross-check on the same instance.
func BenchmarkExactKnapsack_20(b *testing.B) {
	f := randomKnapsack(b, 20)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := engine.ExactKnapsack(f); err != nil {
			b.Fatalf("ExactKnapsack failed: %v", err)
		}
	}
}
