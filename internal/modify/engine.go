package modify

import (
	"math"

	"github.com/kestrelworks/tsmod/internal/table"
)

// ratioEps is the tolerance within which a conversion ratio counts as 1
// (same unit, filter-eligible).
const ratioEps = 1e-9

// Engine applies modifications to numeric subsets. It is stateless between
// calls; DT is the fixed sampling interval the filters assume between
// consecutive rows.
type Engine struct {
	DT float64
}

// NewEngine returns an engine with the default sampling interval of 1.0.
func NewEngine() *Engine { return &Engine{DT: 1.0} }

// Result is the engine's output. Applied is false when the method was
// skipped because its parameters were outside its valid domain (a ratio in
// the wrong direction, tau <= 0, a zero divisor); in that case Subset is an
// untouched copy of the input.
type Result struct {
	Subset  *table.Subset
	Applied bool
}

// Apply transforms in according to m and the conversion ratio. The input is
// never mutated. A method/ratio mismatch is not an error: the input comes
// back unchanged with Applied false, matching the lenient execute behavior
// the surrounding application relies on.
func (e *Engine) Apply(in *table.Subset, m Method, ratio float64) Result {
	switch {
	case m.Kind.IsArithmetic():
		return e.applyArithmetic(in, m)
	case m.Kind.IsUpsample():
		if ratio <= 1+ratioEps || in.NumRows() == 0 {
			return Result{Subset: in.Clone()}
		}
		return e.applyUpsample(in, m.Kind, ratio)
	case m.Kind.IsDownsample():
		if ratio >= 1-ratioEps || in.NumRows() == 0 {
			return Result{Subset: in.Clone()}
		}
		return e.applyDownsample(in, m.Kind, ratio)
	case m.Kind.IsFilter():
		if m.Tau <= 0 || math.Abs(ratio-1) > ratioEps || in.NumRows() == 0 {
			return Result{Subset: in.Clone()}
		}
		return e.applyFilter(in, m.Kind, m.Tau)
	default:
		return Result{Subset: in.Clone()}
	}
}

func (e *Engine) applyArithmetic(in *table.Subset, m Method) Result {
	if m.Kind == Divide && m.Value == 0 {
		// Dividing by zero is a documented no-op, not an error: the guard
		// keeps Inf out of downstream selection logic.
		return Result{Subset: in.Clone()}
	}
	out := in.Clone()
	for ci := range out.Columns {
		s := &out.Columns[ci]
		for i := range s.Values {
			if !s.Valid[i] {
				continue
			}
			switch m.Kind {
			case Multiply:
				s.Values[i] *= m.Value
			case Divide:
				s.Values[i] /= m.Value
			case Add:
				s.Values[i] += m.Value
			case Subtract:
				s.Values[i] -= m.Value
			}
		}
	}
	return Result{Subset: out, Applied: true}
}

func (e *Engine) applyUpsample(in *table.Subset, k Kind, ratio float64) Result {
	oldN := in.NumRows()
	newN := int(math.Floor(float64(oldN) * ratio))
	if newN < 1 {
		newN = 1
	}
	out := &table.Subset{Columns: make([]table.Series, len(in.Columns))}
	for ci := range in.Columns {
		src := &in.Columns[ci]
		if k == ZeroFill {
			out.Columns[ci] = zeroFill(src, newN, ratio)
			continue
		}
		ys := toNaN(src)
		vals, err := resample(ys, newN, k)
		if err != nil {
			// Kernel could not be constructed for this column (too few
			// points); fall back to linear for the column and keep going.
			vals, _ = resample(ys, newN, LinearInterp)
		}
		out.Columns[ci] = fromNaN(src.Name, vals)
	}
	return Result{Subset: out, Applied: true}
}

func (e *Engine) applyDownsample(in *table.Subset, k Kind, ratio float64) Result {
	group := int(math.Floor(1 / ratio))
	if group < 1 {
		group = 1
	}
	oldN := in.NumRows()
	newN := (oldN + group - 1) / group
	out := &table.Subset{Columns: make([]table.Series, len(in.Columns))}
	for ci := range in.Columns {
		out.Columns[ci] = reduceGroups(&in.Columns[ci], group, newN, k)
	}
	return Result{Subset: out, Applied: true}
}

// toNaN converts a series to a plain float slice with NaN for missing
// cells, the representation the interpolation kernels work in.
func toNaN(s *table.Series) []float64 {
	ys := make([]float64, len(s.Values))
	for i, v := range s.Values {
		if s.Valid[i] {
			ys[i] = v
		} else {
			ys[i] = math.NaN()
		}
	}
	return ys
}

// fromNaN converts kernel output back to a masked series.
func fromNaN(name string, vals []float64) table.Series {
	valid := make([]bool, len(vals))
	for i, v := range vals {
		valid[i] = !math.IsNaN(v)
		if !valid[i] {
			vals[i] = 0
		}
	}
	return table.Series{Name: name, Values: vals, Valid: valid}
}
