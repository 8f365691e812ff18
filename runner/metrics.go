package runner

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	solvesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lpsolve_solves_total",
		Help: "Completed solves by algorithm and outcome",
	}, []string{"algorithm", "outcome"})

	rejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lpsolve_rejections_total",
		Help: "Formulations rejected by applicability rules",
	}, []string{"algorithm"})

	solveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lpsolve_solve_duration_seconds",
		Help:    "Wall time of accepted solves",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1, 10},
	}, []string{"algorithm"})

	iterations = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "lpsolve_iterations",
		Help:    "Tableau records per accepted solve",
		Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 500, 1000},
	}, []string{"algorithm"})
)

// Outcome labels of lpsolve_solves_total besides the classify.Kind names.
const (
	outcomeNone  = "none"
	outcomeError = "error"
)
