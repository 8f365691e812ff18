package runner

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/lpsolve/applicability"
	"github.com/katalvlaran/lpsolve/classify"
	"github.com/katalvlaran/lpsolve/engine"
	"github.com/katalvlaran/lpsolve/formulation"
	"github.com/katalvlaran/lpsolve/report"
	"github.com/katalvlaran/lpsolve/solvetree"
	"github.com/katalvlaran/lpsolve/traverse"
)

const tracerName = "github.com/katalvlaran/lpsolve/runner"

// solveFunc builds the solve tree of one engine.
type solveFunc func(f *formulation.Formulation, opts engine.Options) (solvetree.Node, error)

// algorithm is the static description of one registered method.
type algorithm struct {
	key     string
	display string
	method  string // name used in optimal messages
	rules   applicability.RuleSet
	solve   solveFunc
}

// solverRunner adapts one algorithm to the Runner contract.
// It holds no per-call state, so one value may serve concurrent calls.
type solverRunner struct {
	alg    algorithm
	opts   Options
	tracer trace.Tracer
}

var _ Runner = (*solverRunner)(nil)

func newRunner(alg algorithm, opts ...Option) *solverRunner {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	tp := o.TracerProvider
	if tp == nil {
		tp = otel.GetTracerProvider()
	}

	return &solverRunner{alg: alg, opts: o, tracer: tp.Tracer(tracerName)}
}

// Key implements Runner.
func (r *solverRunner) Key() string { return r.alg.key }

// Display implements Runner.
func (r *solverRunner) Display() string { return r.alg.display }

// Solve implements Runner.
//
//  1. Validate with the algorithm's rule set; a rejection returns an empty log.
//  2. Echo the canonical form as the first record.
//  3. Build the solve tree with the engine.
//  4. Walk the tree into records and the summary.
//
// Errors come from the engine or from the walk (cancellation, node limit,
// malformed trees). A walk error returns the partial report with it.
func (r *solverRunner) Solve(ctx context.Context, f *formulation.Formulation) (*report.Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	runID := uuid.NewString()
	ctx, span := r.tracer.Start(ctx, "runner.Solve", trace.WithAttributes(
		attribute.String("algorithm", r.alg.key),
		attribute.String("run_id", runID),
	))
	defer span.End()
	log := r.opts.Logger.With(slog.String("run_id", runID), slog.String("algorithm", r.alg.key))
	rep := &report.Report{Algorithm: r.alg.key, Iterations: []report.Record{}}

	// 1. Applicability
	if res := r.alg.rules.Validate(f); !res.Valid {
		rejectionsTotal.WithLabelValues(r.alg.key).Inc()
		span.SetAttributes(attribute.String("outcome", "rejected"), attribute.String("rule", res.Rule))
		log.Info("formulation rejected", slog.String("rule", res.Rule), slog.String("reason", res.Message))
		rep.Summary = report.Summary{Optimal: false, Message: res.Message}

		return rep, nil
	}
	start := time.Now()

	// 2. Canonical echo
	rep.Iterations = append(rep.Iterations, CanonicalRecord(f))

	// 3. Engine
	root, err := r.alg.solve(f, r.opts.Engine)
	if err != nil {
		return nil, r.fail(span, log, fmt.Errorf("%s engine: %w", r.alg.key, err))
	}

	// 4. Walk
	res, err := traverse.Walk(root, f, classify.Classifier{Method: r.alg.method},
		traverse.WithContext(ctx),
		traverse.WithPolicy(r.opts.Policy),
		traverse.WithMaxNodes(r.opts.MaxNodes),
		traverse.WithOnVisit(func(rec report.Record, depth int) error {
			log.Debug("node visited", slog.String("title", rec.Title), slog.Int("depth", depth),
				slog.Int("rows", len(rec.Rows)), slog.Int("cols", len(rec.Columns)))

			return nil
		}),
	)
	if res != nil {
		rep.Iterations = append(rep.Iterations, res.Records...)
		rep.Summary = res.Summary
	}
	if err != nil {
		return rep, r.fail(span, log, fmt.Errorf("%s walk: %w", r.alg.key, err))
	}

	// 5. Telemetry
	outcome := outcomeNone
	if res.Outcomes > 0 {
		outcome = res.Kind.String()
	}
	elapsed := time.Since(start)
	solvesTotal.WithLabelValues(r.alg.key, outcome).Inc()
	solveDuration.WithLabelValues(r.alg.key).Observe(elapsed.Seconds())
	iterations.WithLabelValues(r.alg.key).Observe(float64(len(rep.Iterations)))
	span.SetAttributes(
		attribute.String("outcome", outcome),
		attribute.Int("iterations", len(rep.Iterations)),
		attribute.Int("nodes", res.Visited),
	)
	log.Info("solve finished",
		slog.String("outcome", outcome),
		slog.Int("iterations", len(rep.Iterations)),
		slog.Float64("objective", rep.Summary.Objective),
		slog.Duration("duration", elapsed))

	return rep, nil
}

func (r *solverRunner) fail(span trace.Span, log *slog.Logger, err error) error {
	solvesTotal.WithLabelValues(r.alg.key, outcomeError).Inc()
	span.RecordError(err)
	span.SetStatus(codes.Error, "solve failed")
	log.Error("solve failed", slog.String("error", err.Error()))

	return err
}

// CanonicalRecord echoes the canonical form of f: the decision columns, an
// all-zero objective row placeholder, and one row per canonical constraint
// with its right-hand side.
func CanonicalRecord(f *formulation.Formulation) report.Record {
	cf := f.Canonical()
	cols := append(cf.Labels(), "rhs")
	values := make([][]float64, cf.NumRows()+1)
	values[0] = make([]float64, len(cols))
	for i := 0; i < cf.NumRows(); i++ {
		row := make([]float64, len(cols))
		copy(row, cf.Rows[i])
		row[len(cols)-1] = cf.RHS[i]
		values[i+1] = row
	}

	return report.Record{
		Title:   CanonicalTitle,
		Columns: cols,
		Rows:    traverse.RowLabels(len(values)),
		Values:  values,
	}
}
