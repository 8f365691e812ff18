package runner

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/lpsolve/engine"
	"github.com/katalvlaran/lpsolve/formulation"
	"github.com/katalvlaran/lpsolve/report"
	"github.com/katalvlaran/lpsolve/traverse"
)

// ErrUnknownAlgorithm is returned by Lookup for keys outside the registry.
var ErrUnknownAlgorithm = errors.New("runner: unknown algorithm")

// CanonicalTitle is the title of the canonical-form echo record that opens
// every accepted iteration log.
const CanonicalTitle = "Canonical Form"

// Runner solves formulations with one algorithm and reports the result.
//
// Solve never shares state between calls: every call returns a fresh Report.
// A formulation the algorithm cannot handle is not an error; it yields a
// Report with an empty log and a non-optimal Summary carrying the reason.
type Runner interface {
	// Key is the stable registry key, e.g. "primal-simplex".
	Key() string
	// Display is the human label, e.g. "Primal Simplex (Continuous LP, Feasible Start)".
	Display() string
	// Solve validates f, runs the engine and linearizes its solve tree.
	Solve(ctx context.Context, f *formulation.Formulation) (*report.Report, error)
}

// Option configures a Runner.
type Option func(*Options)

// Options holds runner parameters.
type Options struct {
	// Logger receives one Info record per solve and one Debug record per visited node.
	Logger *slog.Logger
	// Policy selects how terminal outcomes fold into the summary.
	Policy traverse.Policy
	// MaxNodes bounds the number of tree nodes walked; 0 means no limit.
	MaxNodes int
	// Engine bounds the work of the solving engine.
	Engine engine.Options
	// TracerProvider supplies the tracer for the runner.Solve span;
	// nil means the global provider at solve time.
	TracerProvider trace.TracerProvider
}

// DefaultOptions returns the default logger, BestOptimal aggregation,
// no walk limit and default engine limits.
func DefaultOptions() Options {
	return Options{
		Logger: slog.Default(),
		Policy: traverse.BestOptimal,
		Engine: engine.DefaultOptions(),
	}
}

// WithLogger sets the logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithPolicy sets the aggregation policy.
func WithPolicy(p traverse.Policy) Option {
	return func(o *Options) { o.Policy = p }
}

// WithMaxNodes limits the number of nodes walked per solve. n<=0 disables the limit.
func WithMaxNodes(n int) Option {
	return func(o *Options) {
		if n < 0 {
			n = 0
		}
		o.MaxNodes = n
	}
}

// WithEngineOptions sets the engine limits.
func WithEngineOptions(e engine.Options) Option {
	return func(o *Options) { o.Engine = e }
}

// WithTracerProvider sets the tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *Options) { o.TracerProvider = tp }
}
