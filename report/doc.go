// Package report holds the output contract of a solve: the ordered
// iteration log, the terminal summary and their renderings.
//
// A Report carries one Record per visited tableau, in visitation order, and
// exactly one Summary. Values is an insertion-ordered name→number mapping so
// variable assignments keep the order the classifier produced them in across
// text, JSON and YAML renderings.
//
// Rendering:
//
//   - Render(w, rep, opts...)   human-readable text; tables are aligned with
//     text/tabwriter and headings colored with fatih/color.
//   - Write(w, rep, format)     Text, JSON or YAML.
//   - RenderComparison          one line per report, used to compare algorithms.
package report
