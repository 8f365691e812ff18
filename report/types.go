package report

import (
	"errors"
	"strings"
)

// ErrUnknownFormat is returned by ParseFormat and Write for unsupported formats.
var ErrUnknownFormat = errors.New("report: unknown format")

// Record is one tableau snapshot of the iteration log.
type Record struct {
	Title   string      `json:"title" yaml:"title"`
	Columns []string    `json:"columns" yaml:"columns"`
	Rows    []string    `json:"rows" yaml:"rows"`
	Values  [][]float64 `json:"values" yaml:"values"`
}

// Summary is the terminal result of one solve.
type Summary struct {
	Optimal        bool    `json:"optimal" yaml:"optimal"`
	Objective      float64 `json:"objective" yaml:"objective"`
	VariableValues Values  `json:"variable_values" yaml:"variable_values"`
	Message        string  `json:"message" yaml:"message"`
}

// Report is the complete per-call result: algorithm key, iteration log and summary.
type Report struct {
	Algorithm  string   `json:"algorithm" yaml:"algorithm"`
	Iterations []Record `json:"iterations" yaml:"iterations"`
	Summary    Summary  `json:"summary" yaml:"summary"`
}

// Format selects an output encoding for Write.
type Format int

const (
	Text Format = iota
	JSON
	YAML
)

// String returns "text", "json" or "yaml".
func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	default:
		return "text"
	}
}

// ParseFormat maps "text", "json", "yaml" (or "yml") to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return Text, nil
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	}

	return Text, ErrUnknownFormat
}

// Option configures text rendering.
type Option func(*Options)

// Options holds text rendering parameters.
type Options struct {
	// Color enables ANSI colors for headings and status lines.
	Color bool
	// Precision is the number of decimals kept when printing values.
	Precision int
	// SummaryOnly skips the iteration log.
	SummaryOnly bool
}

// DefaultOptions returns plain output with 4 decimals.
func DefaultOptions() Options {
	return Options{Color: false, Precision: 4}
}

// WithColor enables or disables colors.
func WithColor(on bool) Option {
	return func(o *Options) { o.Color = on }
}

// WithPrecision sets the decimals kept when printing; negative values are ignored.
func WithPrecision(p int) Option {
	return func(o *Options) {
		if p >= 0 {
			o.Precision = p
		}
	}
}

// WithSummaryOnly suppresses the iteration log.
func WithSummaryOnly() Option {
	return func(o *Options) { o.SummaryOnly = true }
}
