package stats

import (
	"fmt"
	"strings"

	"github.com/kestrelworks/tsmod/internal/table"
)

// Comparison pairs the before and after statistics of one selected column.
type Comparison struct {
	Column string
	Before Summary
	After  Summary
}

// Report is the read-only projection of a completed preview or execute:
// the method label, whether the engine actually applied it, the row counts,
// and per-column before/after statistics.
type Report struct {
	Method     string
	Ratio      float64
	Applied    bool
	RowsBefore int
	RowsAfter  int
	Columns    []Comparison
}

// Compare builds a Report from the subsets a splice produced.
func Compare(method string, ratio float64, applied bool, before, after *table.Subset) *Report {
	r := &Report{
		Method:     method,
		Ratio:      ratio,
		Applied:    applied,
		RowsBefore: before.NumRows(),
		RowsAfter:  after.NumRows(),
	}
	for i := range before.Columns {
		b := &before.Columns[i]
		cmp := Comparison{Column: b.Name, Before: Summarize(b.Values, b.Valid)}
		if a, ok := after.Column(b.Name); ok {
			cmp.After = Summarize(a.Values, a.Valid)
		}
		r.Columns = append(r.Columns, cmp)
	}
	return r
}

// Markdown renders a compact comparison suitable for the terminal.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[MODIFICATION SUMMARY]\n")
	b.WriteString(fmt.Sprintf("Method: %s\n", r.Method))
	b.WriteString(fmt.Sprintf("Conversion ratio: %.10g\n", r.Ratio))
	if !r.Applied {
		b.WriteString("Note: method was outside its valid domain for this ratio; data returned unchanged\n")
	}
	if r.RowsBefore == r.RowsAfter {
		b.WriteString(fmt.Sprintf("Rows: %d\n", r.RowsBefore))
	} else {
		b.WriteString(fmt.Sprintf("Rows: %d -> %d\n", r.RowsBefore, r.RowsAfter))
	}
	b.WriteString("\n[COLUMNS]\n")
	for _, c := range r.Columns {
		b.WriteString(fmt.Sprintf("- %s\n", c.Column))
		b.WriteString("  before: " + formatSummary(c.Before) + "\n")
		b.WriteString("  after:  " + formatSummary(c.After) + "\n")
	}
	return b.String()
}

func formatSummary(s Summary) string {
	if s.Count == 0 {
		return "no valid samples"
	}
	return fmt.Sprintf("n %d, min %.4g, max %.4g, mean %.4g, std %.4g",
		s.Count, s.Min, s.Max, s.Mean, s.Std)
}
