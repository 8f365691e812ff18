package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lpsolve/engine"
	"github.com/katalvlaran/lpsolve/formulation"
	"github.com/katalvlaran/lpsolve/report"
	"github.com/katalvlaran/lpsolve/runner"
)

// errVerifyMismatch is returned by solve --verify when the tree optimum
// differs from the exact optimum.
var errVerifyMismatch = errors.New("knapsack optimum differs from exact optimum")

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the registered algorithms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, e := range runner.Available() {
				if _, err := fmt.Fprintf(a.out, "%-24s %s\n", e.Key, e.Display); err != nil {
					return err
				}
			}

			return nil
		},
	}
}

func (a *app) solveCmd() *cobra.Command {
	var (
		o      runOptions
		verify bool
	)
	cmd := &cobra.Command{
		Use:   "solve -f model.yaml [-a algorithm]",
		Short: "Solve a model with one algorithm",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o = a.resolve(o)
			f, err := loadModel(o.file)
			if err != nil {
				return err
			}
			rep, err := a.solveOnce(cmd.Context(), f, o)
			if err != nil {
				return err
			}
			if verify {
				return a.verify(f, o, rep)
			}

			return nil
		},
	}
	o.bind(cmd, true)
	cmd.Flags().BoolVar(&verify, "verify", false, "cross-check a knapsack optimum with the exact pseudo-boolean solver")

	return cmd
}

// solveOnce runs one algorithm on f and writes the report.
func (a *app) solveOnce(ctx context.Context, f *formulation.Formulation, o runOptions) (*report.Report, error) {
	entry, err := runner.Lookup(o.algorithm)
	if err != nil {
		return nil, err
	}
	format, err := report.ParseFormat(o.format)
	if err != nil {
		return nil, fmt.Errorf("--format %q: %w", o.format, err)
	}
	ropts, err := a.runnerOptions(o)
	if err != nil {
		return nil, err
	}
	wopts, err := a.renderOptions(o)
	if err != nil {
		return nil, err
	}

	rep, err := entry.New(ropts...).Solve(ctx, f)
	if rep != nil {
		if werr := report.Write(a.out, rep, format, wopts...); werr != nil {
			return rep, werr
		}
	}

	return rep, err
}

func (a *app) verify(f *formulation.Formulation, o runOptions, rep *report.Report) error {
	if o.algorithm != runner.KeyKnapsack {
		return fmt.Errorf("--verify supports only the %s algorithm", runner.KeyKnapsack)
	}
	if !rep.Summary.Optimal {
		return fmt.Errorf("--verify: %s", rep.Summary.Message)
	}
	exact, err := engine.ExactKnapsack(f)
	if err != nil {
		return fmt.Errorf("--verify: %w", err)
	}
	writeVerify(a.out, rep.Summary.Objective, exact.Objective, o.precision)
	if exact.Objective != rep.Summary.Objective {
		return fmt.Errorf("tree %s, exact %s: %w",
			report.FormatNumber(rep.Summary.Objective, o.precision),
			report.FormatNumber(exact.Objective, o.precision), errVerifyMismatch)
	}

	return nil
}

func writeVerify(w io.Writer, tree, exact float64, prec int) {
	verdict := "ok"
	if tree != exact {
		verdict = "MISMATCH"
	}
	fmt.Fprintf(w, "verify: exact optimum %s, tree optimum %s: %s\n",
		report.FormatNumber(exact, prec), report.FormatNumber(tree, prec), verdict)
}
