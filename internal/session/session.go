// Package session owns the current table across operations: it runs
// previews and executes, replaces the table wholesale after each successful
// execute, keeps the one-level undo and reset the surrounding application
// offers, and records an operation history.
package session

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/kestrelworks/tsmod/internal/modify"
	"github.com/kestrelworks/tsmod/internal/splice"
	"github.com/kestrelworks/tsmod/internal/stats"
	"github.com/kestrelworks/tsmod/internal/table"
)

// ErrNothingToUndo is returned by Undo when no execute has happened since
// the last undo or reset.
var ErrNothingToUndo = errors.New("nothing to undo")

// Record is one entry of the operation history.
type Record struct {
	ID         string    `yaml:"id"`
	Method     string    `yaml:"method"`
	Ratio      float64   `yaml:"ratio"`
	Columns    []string  `yaml:"columns"`
	StartRow   int       `yaml:"start_row"`
	EndRow     int       `yaml:"end_row"`
	Applied    bool      `yaml:"applied"`
	RowsBefore int       `yaml:"rows_before"`
	RowsAfter  int       `yaml:"rows_after"`
	AppliedAt  time.Time `yaml:"applied_at"`
}

// Session holds the table being modified. The core stays stateless per
// call; all "current table" state lives here.
type Session struct {
	ID      string
	History []Record

	engine   *modify.Engine
	original *table.Table
	current  *table.Table
	prev     *table.Table
}

// New starts a session over a freshly loaded table.
func New(t *table.Table, eng *modify.Engine) *Session {
	if eng == nil {
		eng = modify.NewEngine()
	}
	return &Session{
		ID:       uuid.NewString(),
		engine:   eng,
		original: t.Clone(),
		current:  t,
	}
}

// Table returns the current table.
func (s *Session) Table() *table.Table { return s.current }

// Preview runs the engine over the selection without touching the table and
// returns the before/after comparison.
func (s *Session) Preview(sel table.Selection, m modify.Method, ratio float64) (*stats.Report, error) {
	if err := sel.Validate(s.current); err != nil {
		return nil, err
	}
	before := s.current.Extract(sel)
	res := s.engine.Apply(before, m, ratio)
	return stats.Compare(m.Label(), ratio, res.Applied, before, res.Subset), nil
}

// Execute splices the modification into the table, replaces the current
// table with the result and appends a history record. The previous table is
// retained for one Undo.
func (s *Session) Execute(sel table.Selection, m modify.Method, ratio float64) (*stats.Report, error) {
	rowsBefore := s.current.NumRows()
	out, err := splice.Apply(s.engine, s.current, sel, m, ratio)
	if err != nil {
		return nil, err
	}
	s.prev = s.current
	s.current = out.Table
	s.History = append(s.History, Record{
		ID:         uuid.NewString(),
		Method:     m.Label(),
		Ratio:      ratio,
		Columns:    append([]string(nil), sel.Columns...),
		StartRow:   sel.Start,
		EndRow:     sel.End,
		Applied:    out.Applied,
		RowsBefore: rowsBefore,
		RowsAfter:  s.current.NumRows(),
		AppliedAt:  time.Now().UTC(),
	})
	return stats.Compare(m.Label(), ratio, out.Applied, out.Before, out.After), nil
}

// Undo restores the table from before the most recent Execute. Only one
// level is kept.
func (s *Session) Undo() error {
	if s.prev == nil {
		return ErrNothingToUndo
	}
	s.current = s.prev
	s.prev = nil
	return nil
}

// Reset restores the originally loaded table and clears the undo slot.
func (s *Session) Reset() {
	s.current = s.original.Clone()
	s.prev = nil
}

// ExportHistory writes the operation history as YAML.
func (s *Session) ExportHistory(path string) error {
	doc := struct {
		Session string   `yaml:"session"`
		Ops     []Record `yaml:"operations"`
	}{Session: s.ID, Ops: s.History}
	b, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}
