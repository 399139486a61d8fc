// Package table holds the in-memory tabular model shared by the whole tool:
// a Table of equal-length named columns, a Selection describing the rows and
// columns an operation targets, and the numeric Subset that the modification
// engine consumes.
package table

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Type is the declared cell type of a column.
type Type int

const (
	Float Type = iota
	Int
	Text
)

func (t Type) String() string {
	switch t {
	case Float:
		return "float"
	case Int:
		return "int"
	case Text:
		return "text"
	default:
		return "unknown"
	}
}

// Column is one named column of a Table. Numeric columns (Float, Int) store
// their cells in Floats with a parallel Valid mask; a false entry marks a
// missing cell. Text columns use Texts. Int columns hold whole values in
// Floats so splicing can promote them without re-allocating.
type Column struct {
	Name   string
	Type   Type
	Floats []float64
	Valid  []bool
	Texts  []string
}

// NewFloat builds a fully-valid float column.
func NewFloat(name string, values []float64) Column {
	valid := make([]bool, len(values))
	for i := range valid {
		valid[i] = true
	}
	return Column{Name: name, Type: Float, Floats: values, Valid: valid}
}

// NewInt builds a fully-valid integer column.
func NewInt(name string, values []float64) Column {
	c := NewFloat(name, values)
	c.Type = Int
	return c
}

// NewText builds a text column.
func NewText(name string, values []string) Column {
	return Column{Name: name, Type: Text, Texts: values}
}

// IsNumeric reports whether the column holds numbers.
func (c *Column) IsNumeric() bool { return c.Type == Float || c.Type == Int }

// Len returns the row count of the column.
func (c *Column) Len() int {
	if c.Type == Text {
		return len(c.Texts)
	}
	return len(c.Floats)
}

// Clone deep-copies the column.
func (c *Column) Clone() Column {
	out := Column{Name: c.Name, Type: c.Type}
	if c.Type == Text {
		out.Texts = append([]string(nil), c.Texts...)
		return out
	}
	out.Floats = append([]float64(nil), c.Floats...)
	out.Valid = append([]bool(nil), c.Valid...)
	return out
}

// CellString renders row i for serialization: integers without a decimal
// point, missing cells as the empty string.
func (c *Column) CellString(i int) string {
	if c.Type == Text {
		return c.Texts[i]
	}
	if !c.Valid[i] {
		return ""
	}
	if c.Type == Int {
		return strconv.FormatInt(int64(c.Floats[i]), 10)
	}
	return strconv.FormatFloat(c.Floats[i], 'g', -1, 64)
}

// Table is an ordered set of equal-length, uniquely named columns. It is the
// unit of ownership in a session: operations never mutate a Table in place,
// they produce a replacement.
type Table struct {
	Columns []Column
}

// New validates column lengths and name uniqueness and wraps the columns.
func New(cols ...Column) (*Table, error) {
	if len(cols) == 0 {
		return &Table{}, nil
	}
	n := cols[0].Len()
	seen := make(map[string]bool, len(cols))
	for i := range cols {
		if cols[i].Name == "" {
			return nil, fmt.Errorf("column %d has no name", i)
		}
		if seen[cols[i].Name] {
			return nil, fmt.Errorf("duplicate column name %q", cols[i].Name)
		}
		seen[cols[i].Name] = true
		if cols[i].Len() != n {
			return nil, fmt.Errorf("column %q has %d rows, want %d", cols[i].Name, cols[i].Len(), n)
		}
	}
	return &Table{Columns: cols}, nil
}

// NumRows returns the shared row count.
func (t *Table) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return t.Columns[0].Len()
}

// NumCols returns the column count.
func (t *Table) NumCols() int { return len(t.Columns) }

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i := range t.Columns {
		names[i] = t.Columns[i].Name
	}
	return names
}

// Column finds a column by name.
func (t *Table) Column(name string) (*Column, bool) {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// Clone deep-copies the table.
func (t *Table) Clone() *Table {
	cols := make([]Column, len(t.Columns))
	for i := range t.Columns {
		cols[i] = t.Columns[i].Clone()
	}
	return &Table{Columns: cols}
}

// Extract builds the numeric Subset for the selection's rows and columns.
// Numeric columns copy values and validity; text columns are coerced per
// cell, unparseable cells becoming missing rather than failing the call.
// The selection must already be validated against the table.
func (t *Table) Extract(sel Selection) *Subset {
	sub := &Subset{Columns: make([]Series, 0, len(sel.Columns))}
	for _, name := range sel.Columns {
		col, ok := t.Column(name)
		if !ok {
			continue
		}
		n := sel.End - sel.Start
		s := Series{Name: name, Values: make([]float64, n), Valid: make([]bool, n)}
		for i := 0; i < n; i++ {
			row := sel.Start + i
			if col.IsNumeric() {
				s.Values[i] = col.Floats[row]
				s.Valid[i] = col.Valid[row]
				continue
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(col.Texts[row]), 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			s.Values[i] = v
			s.Valid[i] = true
		}
		sub.Columns = append(sub.Columns, s)
	}
	return sub
}
