package runner

import "github.com/prometheus/client_golang/prometheus"

// SolvesCounter exposes lpsolve_solves_total for one label pair.
func SolvesCounter(key, outcome string) prometheus.Counter {
	return solvesTotal.WithLabelValues(key, outcome)
}

// RejectionsCounter exposes lpsolve_rejections_total for one algorithm.
func RejectionsCounter(key string) prometheus.Counter {
	return rejectionsTotal.WithLabelValues(key)
}
