package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// comparisonGap separates comparison columns.
const comparisonGap = 2

// palette holds the sprintf functions used for styled fragments.
type palette struct {
	title func(string, ...any) string
	good  func(string, ...any) string
	bad   func(string, ...any) string
	label func(string, ...any) string
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) func(string, ...any) string {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}

		return c.SprintfFunc()
	}

	return palette{
		title: mk(color.Bold, color.FgCyan),
		good:  mk(color.Bold, color.FgGreen),
		bad:   mk(color.Bold, color.FgRed),
		label: mk(color.Faint),
	}
}

// Render writes the iteration log followed by the summary as aligned text.
func Render(w io.Writer, rep *Report, opts ...Option) error {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	p := newPalette(o.Color)

	if rep.Algorithm != "" {
		if _, err := fmt.Fprintf(w, "%s %s\n\n", p.label("algorithm:"), rep.Algorithm); err != nil {
			return err
		}
	}
	if !o.SummaryOnly {
		for i := range rep.Iterations {
			if err := renderRecord(w, &rep.Iterations[i], p, o.Precision); err != nil {
				return err
			}
		}
	}

	return renderSummary(w, &rep.Summary, p, o.Precision)
}

func renderRecord(w io.Writer, r *Record, p palette, prec int) error {
	if _, err := fmt.Fprintln(w, p.title("== %s ==", r.Title)); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	var b strings.Builder
	b.WriteString("\t")
	for _, c := range r.Columns {
		b.WriteString(c)
		b.WriteString("\t")
	}
	b.WriteString("\n")
	for i, row := range r.Values {
		if i < len(r.Rows) {
			b.WriteString(r.Rows[i])
		}
		b.WriteString("\t")
		for _, x := range row {
			b.WriteString(FormatNumber(x, prec))
			b.WriteString("\t")
		}
		b.WriteString("\n")
	}
	if _, err := io.WriteString(tw, b.String()); err != nil {
		return err
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)

	return err
}

func renderSummary(w io.Writer, s *Summary, p palette, prec int) error {
	status := p.bad("not optimal")
	if s.Optimal {
		status = p.good("optimal")
	}
	if _, err := fmt.Fprintf(w, "%s %s\n", p.label("status:"), status); err != nil {
		return err
	}
	if s.Optimal {
		if _, err := fmt.Fprintf(w, "%s %s\n", p.label("objective:"), FormatNumber(s.Objective, prec)); err != nil {
			return err
		}
		var err error
		s.VariableValues.Range(func(name string, x float64) bool {
			_, err = fmt.Fprintf(w, "  %s = %s\n", name, FormatNumber(x, prec))

			return err == nil
		})
		if err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "%s %s\n", p.label("message:"), s.Message)

	return err
}

// RenderComparison writes one aligned line per report: algorithm, status,
// objective, iteration count and message. Columns are sized on the plain
// text; the status cell is coloured after padding.
func RenderComparison(w io.Writer, reps []*Report, opts ...Option) error {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	p := newPalette(o.Color)

	// 1. Plain cells
	rows := [][]string{{"ALGORITHM", "STATUS", "OBJECTIVE", "ITERATIONS", "MESSAGE"}}
	for _, r := range reps {
		status, obj := "-", "-"
		if r.Summary.Optimal {
			status, obj = "optimal", FormatNumber(r.Summary.Objective, o.Precision)
		}
		rows = append(rows, []string{r.Algorithm, status, obj, strconv.Itoa(len(r.Iterations)), r.Summary.Message})
	}

	// 2. Column widths; the last column is not padded
	widths := make([]int, len(rows[0])-1)
	for _, row := range rows {
		for j := range widths {
			widths[j] = max(widths[j], utf8.RuneCountInString(row[j]))
		}
	}

	// 3. Write, styling the status cell of data rows
	var b strings.Builder
	for i, row := range rows {
		for j, cell := range row {
			if j == len(widths) {
				b.WriteString(cell)
				break
			}
			pad := strings.Repeat(" ", widths[j]-utf8.RuneCountInString(cell)+comparisonGap)
			if i > 0 && j == 1 {
				if cell == "optimal" {
					cell = p.good(cell)
				} else {
					cell = p.bad(cell)
				}
			}
			b.WriteString(cell)
			b.WriteString(pad)
		}
		b.WriteString("\n")
	}
	_, err := io.WriteString(w, b.String())

	return err
}

// FormatNumber rounds x to prec decimals and prints the shortest form,
// never "-0".
func FormatNumber(x float64, prec int) string {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return strconv.FormatFloat(x, 'g', -1, 64)
	}
	scale := math.Pow(10, float64(prec))
	r := math.Round(x*scale) / scale
	if r == 0 {
		r = 0
	}

	return strconv.FormatFloat(r, 'f', -1, 64)
}

// Write encodes rep in the requested format. Text honours opts.
func Write(w io.Writer, rep *Report, format Format, opts ...Option) error {
	switch format {
	case Text:
		return Render(w, rep, opts...)
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")

		return enc.Encode(rep)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rep); err != nil {
			return err
		}

		return enc.Close()
	}

	return fmt.Errorf("format %d: %w", format, ErrUnknownFormat)
}
