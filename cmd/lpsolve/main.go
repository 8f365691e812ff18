// Command lpsolve solves linear and integer programs from YAML model files
// and prints the full iteration log of the chosen algorithm.
//
// Usage:
//
//	lpsolve list
//	lpsolve solve -f model.yaml -a revised-dual-simplex [--format json]
//	lpsolve solve -f knapsack.yaml -a knapsack --verify
//	lpsolve compare -f model.yaml
//	lpsolve watch -f model.yaml -a branch-and-bound
//
// A model file looks like:
//
//	name: toy
//	sense: max
//	variables:
//	  - {name: x1}
//	  - {name: x2, type: int}
//	objective: "2*x1 + 3*x2"
//	constraints:
//	  - {name: cap, expr: "x1 + x2 <= 4"}
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
