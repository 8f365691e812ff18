package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lpsolve/report"
	"github.com/katalvlaran/lpsolve/runner"
)

func (a *app) compareCmd() *cobra.Command {
	var o runOptions
	cmd := &cobra.Command{
		Use:   "compare -f model.yaml",
		Short: "Solve a model with every registered algorithm and tabulate the summaries",
		Long: `compare runs all registered algorithms concurrently on the same model.
Algorithms that reject the model are listed with their rejection message,
and algorithms that fail are listed with their error.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			o = a.resolve(o)
			f, err := loadModel(o.file)
			if err != nil {
				return err
			}
			ropts, err := a.runnerOptions(o)
			if err != nil {
				return err
			}
			wopts, err := a.renderOptions(o)
			if err != nil {
				return err
			}

			// a failing algorithm gets an error row; the others keep running
			entries := runner.Available()
			reps := make([]*report.Report, len(entries))
			var g errgroup.Group
			for i, e := range entries {
				i, e := i, e
				g.Go(func() error {
					rep, err := e.New(ropts...).Solve(cmd.Context(), f)
					if err != nil {
						a.logger.Warn("compare: solve failed", slog.String("algorithm", e.Key), slog.String("error", err.Error()))
						rep = errorRow(e.Key, rep, err)
					}
					reps[i] = rep

					return nil
				})
			}
			_ = g.Wait()

			return report.RenderComparison(a.out, reps, wopts...)
		},
	}
	o.bind(cmd, false)

	return cmd
}

// errorRow turns a failed solve into a comparison row. A partial report keeps
// its iteration count.
func errorRow(key string, partial *report.Report, err error) *report.Report {
	row := &report.Report{Algorithm: key}
	if partial != nil {
		row.Iterations = partial.Iterations
	}
	row.Summary = report.Summary{Message: fmt.Sprintf("error: %v", err)}

	return row
}
