package table

import (
	"errors"
	"fmt"
)

// Sentinel errors for rejected operations. Both are surfaced before any
// mutation; the table the caller holds stays untouched.
var (
	ErrInvalidRange   = errors.New("invalid row range")
	ErrEmptySelection = errors.New("no columns selected")
)

// Selection names the rows and columns an operation targets. The row range
// is 0-based and end-exclusive. Selections are ephemeral: they are built
// from caller state per operation and never stored on the Table.
type Selection struct {
	Start   int
	End     int
	Columns []string
}

// Validate checks the selection against t. It returns ErrInvalidRange for an
// out-of-bounds or inverted range, ErrEmptySelection when no columns are
// named, and a plain error for a column the table does not have.
func (s Selection) Validate(t *Table) error {
	if s.Start < 0 || s.End > t.NumRows() || s.Start > s.End {
		return fmt.Errorf("%w: [%d,%d) of %d rows", ErrInvalidRange, s.Start, s.End, t.NumRows())
	}
	if len(s.Columns) == 0 {
		return ErrEmptySelection
	}
	seen := make(map[string]bool, len(s.Columns))
	for _, name := range s.Columns {
		if _, ok := t.Column(name); !ok {
			return fmt.Errorf("unknown column %q", name)
		}
		if seen[name] {
			return fmt.Errorf("column %q selected twice", name)
		}
		seen[name] = true
	}
	return nil
}

// Len returns the number of rows the selection covers.
func (s Selection) Len() int { return s.End - s.Start }

// Selected reports whether name is part of the selection.
func (s Selection) Selected(name string) bool {
	for _, c := range s.Columns {
		if c == name {
			return true
		}
	}
	return false
}
