package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/lpsolve/formulation"
	"github.com/katalvlaran/lpsolve/report"
	"github.com/katalvlaran/lpsolve/runner"
	"github.com/katalvlaran/lpsolve/traverse"
)

// app carries the state shared by all subcommands of one invocation.
type app struct {
	out, errOut io.Writer

	configPath string
	logLevel   string

	cfg    Config
	logger *slog.Logger
}

// newRootCmd assembles the command tree writing to out and errOut.
func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut, cfg: defaultConfig()}
	root := &cobra.Command{
		Use:   "lpsolve",
		Short: "Solve linear and integer programs and print every tableau",
		Long: `lpsolve runs one of several simplex, branch-and-bound, cutting-plane
or knapsack solvers on a YAML model and prints the iteration log
followed by the terminal summary.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(out)
	root.SetErr(errOut)
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML file with CLI defaults")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	root.AddCommand(
		a.listCmd(),
		a.solveCmd(),
		a.compareCmd(),
		a.watchCmd(),
	)

	return root
}

// setup loads the config and builds the logger before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
		if err = configValidate.Struct(cfg); err != nil {
			return fmt.Errorf("--log-level %q: %w", a.logLevel, err)
		}
	}
	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: cfg.level()}))

	return nil
}

// runOptions are the per-command overrides shared by solve, compare and watch.
type runOptions struct {
	file        string
	algorithm   string
	format      string
	policy      string
	color       string
	precision   int
	maxNodes    int
	summaryOnly bool
}

func (o *runOptions) bind(cmd *cobra.Command, withAlgorithm bool) {
	fl := cmd.Flags()
	fl.StringVarP(&o.file, "file", "f", "", "model file (YAML)")
	if withAlgorithm {
		fl.StringVarP(&o.algorithm, "algorithm", "a", "", "registry key (see 'lpsolve list')")
	}
	fl.StringVar(&o.format, "format", "", "text, json or yaml")
	fl.StringVar(&o.policy, "policy", "", "summary aggregation: best or last")
	fl.StringVar(&o.color, "color", "", "auto, always or never")
	fl.IntVar(&o.precision, "precision", -1, "decimals printed in text output")
	fl.IntVar(&o.maxNodes, "max-nodes", -1, "limit on solve tree nodes walked (0 = none)")
	fl.BoolVar(&o.summaryOnly, "summary-only", false, "omit the iteration log in text output")
	_ = cmd.MarkFlagRequired("file")
}

// resolve fills unset overrides from the config.
func (a *app) resolve(o runOptions) runOptions {
	if o.algorithm == "" {
		o.algorithm = a.cfg.Algorithm
	}
	if o.format == "" {
		o.format = a.cfg.Format
	}
	if o.policy == "" {
		o.policy = a.cfg.Policy
	}
	if o.color == "" {
		o.color = a.cfg.Color
	}
	if o.precision < 0 {
		o.precision = a.cfg.Precision
	}
	if o.maxNodes < 0 {
		o.maxNodes = a.cfg.MaxNodes
	}

	return o
}

func (a *app) runnerOptions(o runOptions) ([]runner.Option, error) {
	policy, ok := traverse.ParsePolicy(o.policy)
	if !ok {
		return nil, fmt.Errorf("unknown policy %q (want best or last)", o.policy)
	}

	return []runner.Option{
		runner.WithLogger(a.logger),
		runner.WithPolicy(policy),
		runner.WithMaxNodes(o.maxNodes),
		runner.WithEngineOptions(a.cfg.engineOptions()),
	}, nil
}

func (a *app) renderOptions(o runOptions) ([]report.Option, error) {
	on, err := useColor(o.color, a.out)
	if err != nil {
		return nil, err
	}
	opts := []report.Option{report.WithColor(on), report.WithPrecision(o.precision)}
	if o.summaryOnly {
		opts = append(opts, report.WithSummaryOnly())
	}

	return opts, nil
}

func loadModel(path string) (*formulation.Formulation, error) {
	f, err := formulation.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	return f, nil
}

// useColor resolves auto/always/never. Auto colors only terminals and
// honours NO_COLOR.
func useColor(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "", "auto":
		if _, set := os.LookupEnv("NO_COLOR"); set {
			return false, nil
		}
		f, ok := w.(*os.File)
		if !ok {
			return false, nil
		}

		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	}

	return false, fmt.Errorf("unknown color mode %q (want auto, always or never)", mode)
}
