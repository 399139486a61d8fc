// Package splice reinserts a transformed subset into its full table. It is
// the only component that produces a replacement Table; everything it
// returns is freshly allocated and never aliases the input.
package splice

import (
	"math"
	"strconv"

	"github.com/kestrelworks/tsmod/internal/modify"
	"github.com/kestrelworks/tsmod/internal/table"
)

// Outcome bundles the replacement table with the subsets the reporting
// layer compares: Before is the extracted selection, After the engine
// output. Applied mirrors the engine result.
type Outcome struct {
	Table   *table.Table
	Before  *table.Subset
	After   *table.Subset
	Applied bool
}

// Apply validates the selection, runs the engine over the selected subset
// and splices the result back into a full-width, row-aligned table.
//
// When the transformed block keeps its row count, only the selected cells in
// [start,end) change. When it does not, the table is rebuilt as head, middle
// and tail, and every non-selected column inside the range is resynchronized
// to the new row count: numeric columns with linear interpolation (ratio>1)
// or average aggregation (ratio<1), text columns by nearest-index mapping.
// This silently alters data the user did not select; it is the price of
// keeping all columns the same length.
//
// Validation failures (ErrInvalidRange, ErrEmptySelection, unknown column)
// reject the operation before anything is touched.
func Apply(eng *modify.Engine, t *table.Table, sel table.Selection, m modify.Method, ratio float64) (*Outcome, error) {
	if err := sel.Validate(t); err != nil {
		return nil, err
	}
	before := t.Extract(sel)
	res := eng.Apply(before, m, ratio)
	after := res.Subset

	var nt *table.Table
	if after.NumRows() == before.NumRows() {
		nt = writeBack(t, sel, after)
	} else {
		nt = rebuild(eng, t, sel, after, ratio)
	}
	return &Outcome{Table: nt, Before: before, After: after, Applied: res.Applied}, nil
}

// writeBack overwrites rows [start,end) of the selected columns in a clone;
// every other cell is untouched.
func writeBack(t *table.Table, sel table.Selection, after *table.Subset) *table.Table {
	nt := t.Clone()
	for _, name := range sel.Columns {
		col, _ := nt.Column(name)
		s, ok := after.Column(name)
		if !ok {
			continue
		}
		if col.Type == table.Text {
			for i := 0; i < s.Len(); i++ {
				// Cells that never coerced keep their original text.
				if s.Valid[i] {
					col.Texts[sel.Start+i] = formatCell(s.Values[i])
				}
			}
			continue
		}
		for i := 0; i < s.Len(); i++ {
			col.Floats[sel.Start+i] = s.Values[i]
			col.Valid[sel.Start+i] = s.Valid[i]
		}
		promoteIfFractional(col, s)
	}
	return nt
}

// rebuild concatenates head [0,start), a new middle block, and tail
// [end, oldRows) for every column, renumbering rows contiguously.
func rebuild(eng *modify.Engine, t *table.Table, sel table.Selection, after *table.Subset, ratio float64) *table.Table {
	midLen := after.NumRows()
	newRows := sel.Start + midLen + (t.NumRows() - sel.End)
	cols := make([]table.Column, 0, len(t.Columns))
	for i := range t.Columns {
		src := &t.Columns[i]
		var mid *table.Series
		if sel.Selected(src.Name) {
			mid, _ = after.Column(src.Name)
		} else if src.IsNumeric() {
			mid = syncColumn(eng, t, src.Name, sel, ratio)
		}
		cols = append(cols, rebuildColumn(src, sel, mid, midLen, newRows))
	}
	return &table.Table{Columns: cols}
}

// syncColumn runs the same row range of a non-selected numeric column
// through the engine with the direction's synchronization method, so the
// middle block comes out with the same length as the selected columns.
func syncColumn(eng *modify.Engine, t *table.Table, name string, sel table.Selection, ratio float64) *table.Series {
	one := table.Selection{Start: sel.Start, End: sel.End, Columns: []string{name}}
	sub := t.Extract(one)
	method := modify.Method{Kind: modify.LinearInterp}
	if ratio < 1 {
		method = modify.Method{Kind: modify.AverageGroup}
	}
	res := eng.Apply(sub, method, ratio)
	return &res.Subset.Columns[0]
}

func rebuildColumn(src *table.Column, sel table.Selection, mid *table.Series, midLen, newRows int) table.Column {
	if src.Type == table.Text {
		out := table.Column{Name: src.Name, Type: table.Text, Texts: make([]string, 0, newRows)}
		out.Texts = append(out.Texts, src.Texts[:sel.Start]...)
		middle := resampleTexts(src.Texts[sel.Start:sel.End], midLen)
		if mid != nil {
			// Selected text column: the engine output wins wherever it is
			// valid; failed coercions keep the nearest original text.
			for i := range middle {
				if mid.Valid[i] {
					middle[i] = formatCell(mid.Values[i])
				}
			}
		}
		out.Texts = append(out.Texts, middle...)
		out.Texts = append(out.Texts, src.Texts[sel.End:]...)
		return out
	}
	out := table.Column{
		Name:   src.Name,
		Type:   src.Type,
		Floats: make([]float64, 0, newRows),
		Valid:  make([]bool, 0, newRows),
	}
	out.Floats = append(out.Floats, src.Floats[:sel.Start]...)
	out.Valid = append(out.Valid, src.Valid[:sel.Start]...)
	if mid != nil {
		out.Floats = append(out.Floats, mid.Values...)
		out.Valid = append(out.Valid, mid.Valid...)
	} else {
		// A selected column missing from the engine output cannot happen,
		// but keep lengths aligned if it ever does.
		out.Floats = append(out.Floats, make([]float64, midLen)...)
		out.Valid = append(out.Valid, make([]bool, midLen)...)
	}
	out.Floats = append(out.Floats, src.Floats[sel.End:]...)
	out.Valid = append(out.Valid, src.Valid[sel.End:]...)
	if mid != nil {
		promoteIfFractional(&out, mid)
	}
	return out
}

// resampleTexts maps a text block onto a new length by nearest original
// index; values repeat when expanding and drop when shrinking.
func resampleTexts(texts []string, newLen int) []string {
	out := make([]string, newLen)
	if len(texts) == 0 || newLen == 0 {
		return out
	}
	if newLen == 1 {
		out[0] = texts[0]
		return out
	}
	step := float64(len(texts)-1) / float64(newLen-1)
	for i := range out {
		out[i] = texts[int(math.Round(float64(i)*step))]
	}
	return out
}

// promoteIfFractional switches an integer column to float once it has
// received a non-integral value, so nothing is silently truncated.
func promoteIfFractional(col *table.Column, written *table.Series) {
	if col.Type != table.Int {
		return
	}
	for i, v := range written.Values {
		if written.Valid[i] && v != math.Trunc(v) {
			col.Type = table.Float
			return
		}
	}
}

func formatCell(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
