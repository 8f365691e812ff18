package traverse_test

import (
	"fmt"

	"github.com/katalvlaran/lpsolve/classify"
	"github.com/katalvlaran/lpsolve/formulation"
	"github.com/katalvlaran/lpsolve/solvetree"
	"github.com/katalvlaran/lpsolve/tableau"
	"github.com/katalvlaran/lpsolve/traverse"
)

// ExampleWalk linearizes a two-branch tree and keeps the better optimum.
func ExampleWalk() {
	step := func(rhs float64) *solvetree.Step {
		t, _ := tableau.New([]string{"x", "rhs"}, []string{"obj", "cap"}, [][]float64{{0, rhs}, {1, 4}})
		return solvetree.NewStep(t)
	}
	opt := func(x float64) solvetree.Outcome {
		return solvetree.Optimal{Assignment: solvetree.Pairs{{Name: "x", Value: x}}, Objective: x}
	}
	root := step(0).Attach(step(3).Conclude(opt(3)), step(4).Conclude(opt(4)))

	f, _ := formulation.New("demo", formulation.Maximize, []formulation.Variable{{Name: "x", Objective: 1}}, nil)
	res, err := traverse.Walk(root, f, classify.Classifier{Method: "Branch & Bound"})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, r := range res.Records {
		fmt.Println(r.Title, r.Rows)
	}
	fmt.Println(res.Summary.Message)
	fmt.Println(res.Summary.Objective, res.Kind)
	// Output:
	// Tableau 0 (Pivot) [z c1]
	// Tableau 1 (Final) [z c1]
	// Tableau 1 (Final) [z c1]
	// Optimal solution found using Branch & Bound method for maximization problem.
	// 4 optimal
}
