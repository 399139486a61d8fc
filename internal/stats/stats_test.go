package stats

import (
	"math"
	"strings"
	"testing"

	"github.com/kestrelworks/tsmod/internal/table"
)

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9}, nil)
	if s.Count != 8 || s.Min != 2 || s.Max != 9 {
		t.Errorf("count/min/max wrong: %+v", s)
	}
	if math.Abs(s.Mean-5) > 1e-12 {
		t.Errorf("mean = %v, want 5", s.Mean)
	}
	// Sample std of this classic set: sqrt(32/7).
	want := math.Sqrt(32.0 / 7.0)
	if math.Abs(s.Std-want) > 1e-12 {
		t.Errorf("std = %v, want %v", s.Std, want)
	}
}

func TestSummarizeSkipsMissing(t *testing.T) {
	values := []float64{1, 999, 3}
	valid := []bool{true, false, true}
	s := Summarize(values, valid)
	if s.Count != 2 || s.Min != 1 || s.Max != 3 || s.Mean != 2 {
		t.Errorf("missing cell leaked into stats: %+v", s)
	}
}

func TestSummarizeEdgeCounts(t *testing.T) {
	if s := Summarize(nil, nil); s != (Summary{}) {
		t.Errorf("empty input should be the zero summary, got %+v", s)
	}
	s := Summarize([]float64{7}, nil)
	if s.Count != 1 || s.Min != 7 || s.Max != 7 || s.Mean != 7 || s.Std != 0 {
		t.Errorf("single sample wrong: %+v", s)
	}
	all := Summarize([]float64{1, 2}, []bool{false, false})
	if all != (Summary{}) {
		t.Errorf("all-missing should be the zero summary, got %+v", all)
	}
}

func TestSummarizeStableOnOffsetData(t *testing.T) {
	// A large common offset must not destroy the variance.
	base := 1e9
	values := []float64{base + 1, base + 2, base + 3}
	s := Summarize(values, nil)
	if math.Abs(s.Std-1) > 1e-6 {
		t.Errorf("std = %v, want 1", s.Std)
	}
}

func TestCompareAndMarkdown(t *testing.T) {
	before := &table.Subset{Columns: []table.Series{
		{Name: "x", Values: []float64{1, 2, 3}, Valid: []bool{true, true, true}},
	}}
	after := &table.Subset{Columns: []table.Series{
		{Name: "x", Values: []float64{2, 4, 6}, Valid: []bool{true, true, true}},
	}}
	r := Compare("multiply 2", 1.0, true, before, after)
	if r.RowsBefore != 3 || r.RowsAfter != 3 || len(r.Columns) != 1 {
		t.Fatalf("report shape wrong: %+v", r)
	}
	c := r.Columns[0]
	if c.Before.Mean != 2 || c.After.Mean != 4 {
		t.Errorf("means wrong: %+v", c)
	}
	md := r.Markdown()
	for _, want := range []string{"[MODIFICATION SUMMARY]", "Method: multiply 2", "[COLUMNS]", "- x", "Rows: 3"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "unchanged") {
		t.Error("applied report should not carry the no-op note")
	}
}

func TestMarkdownNotAppliedNote(t *testing.T) {
	sub := &table.Subset{Columns: []table.Series{
		{Name: "x", Values: []float64{1}, Valid: []bool{true}},
	}}
	r := Compare("lpf tau=0", 1.0, false, sub, sub)
	md := r.Markdown()
	if !strings.Contains(md, "unchanged") {
		t.Errorf("missing no-op note:\n%s", md)
	}
}

func TestMarkdownRowChange(t *testing.T) {
	before := &table.Subset{Columns: []table.Series{
		{Name: "x", Values: []float64{1, 2}, Valid: []bool{true, true}},
	}}
	after := &table.Subset{Columns: []table.Series{
		{Name: "x", Values: []float64{1, 1.5, 2}, Valid: []bool{true, true, true}},
	}}
	md := Compare("linear", 1.5, true, before, after).Markdown()
	if !strings.Contains(md, "Rows: 2 -> 3") {
		t.Errorf("missing row transition:\n%s", md)
	}
}
