package modify

import (
	"sort"

	"github.com/kestrelworks/tsmod/internal/table"
)

// reduceGroups partitions the series into consecutive groups of group rows
// (the last group may be shorter) and reduces each to one sample. Missing
// cells are ignored inside a group; a group with no valid cell reduces to a
// missing sample.
func reduceGroups(src *table.Series, group, newN int, k Kind) table.Series {
	out := table.Series{
		Name:   src.Name,
		Values: make([]float64, newN),
		Valid:  make([]bool, newN),
	}
	for g := 0; g < newN; g++ {
		lo := g * group
		hi := lo + group
		if hi > len(src.Values) {
			hi = len(src.Values)
		}
		v, ok := reduceOne(src, lo, hi, k)
		out.Values[g] = v
		out.Valid[g] = ok
	}
	return out
}

func reduceOne(src *table.Series, lo, hi int, k Kind) (float64, bool) {
	if k == SkipGroup {
		// Decimation keeps the first sample of the group, missing or not.
		return src.Values[lo], src.Valid[lo]
	}
	var vals []float64
	for i := lo; i < hi; i++ {
		if src.Valid[i] {
			vals = append(vals, src.Values[i])
		}
	}
	if len(vals) == 0 {
		return 0, false
	}
	switch k {
	case AverageGroup:
		sum := 0.0
		for _, v := range vals {
			sum += v
		}
		return sum / float64(len(vals)), true
	case MaxGroup:
		m := vals[0]
		for _, v := range vals[1:] {
			if v > m {
				m = v
			}
		}
		return m, true
	case MinGroup:
		m := vals[0]
		for _, v := range vals[1:] {
			if v < m {
				m = v
			}
		}
		return m, true
	case MedianGroup:
		sort.Float64s(vals)
		n := len(vals)
		if n%2 == 0 {
			return (vals[n/2-1] + vals[n/2]) / 2, true
		}
		return vals[n/2], true
	default:
		return 0, false
	}
}
