package modify

import (
	"github.com/kestrelworks/tsmod/internal/table"
)

// applyFilter runs a single left-to-right pass of a first-order causal IIR
// recursion over every column independently. The row count never changes.
// A missing input sample holds the output at its previous value for that one
// row; the recursion resumes at the next valid sample.
func (e *Engine) applyFilter(in *table.Subset, k Kind, tau float64) Result {
	dt := e.DT
	if dt <= 0 {
		dt = 1.0
	}
	out := &table.Subset{Columns: make([]table.Series, len(in.Columns))}
	for ci := range in.Columns {
		src := &in.Columns[ci]
		switch k {
		case LowPassFilter:
			out.Columns[ci] = lowpass(src, tau, dt)
		case HighPassFilter:
			out.Columns[ci] = highpass(src, tau, dt)
		}
	}
	return Result{Subset: out, Applied: true}
}

// lowpass: alpha = dt/(tau+dt); y[0] = x[0]; y[i] = alpha x[i] + (1-alpha) y[i-1].
func lowpass(src *table.Series, tau, dt float64) table.Series {
	n := src.Len()
	out := table.Series{Name: src.Name, Values: make([]float64, n), Valid: make([]bool, n)}
	alpha := dt / (tau + dt)
	var prev float64
	if src.Valid[0] {
		prev = src.Values[0]
	}
	out.Values[0] = prev
	out.Valid[0] = true
	for i := 1; i < n; i++ {
		if src.Valid[i] {
			prev = alpha*src.Values[i] + (1-alpha)*prev
		}
		out.Values[i] = prev
		out.Valid[i] = true
	}
	return out
}

// highpass: alpha = tau/(tau+dt); y[0] = 0; y[i] = alpha (y[i-1] + x[i] - x[i-1]).
func highpass(src *table.Series, tau, dt float64) table.Series {
	n := src.Len()
	out := table.Series{Name: src.Name, Values: make([]float64, n), Valid: make([]bool, n)}
	alpha := tau / (tau + dt)
	var prev, lastX float64
	if src.Valid[0] {
		lastX = src.Values[0]
	}
	out.Values[0] = 0
	out.Valid[0] = true
	for i := 1; i < n; i++ {
		if src.Valid[i] {
			prev = alpha * (prev + src.Values[i] - lastX)
			lastX = src.Values[i]
		}
		out.Values[i] = prev
		out.Valid[i] = true
	}
	return out
}
