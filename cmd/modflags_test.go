package cmd

import (
	"errors"
	"math"
	"testing"

	cfgpkg "github.com/kestrelworks/tsmod/internal/config"
	"github.com/kestrelworks/tsmod/internal/table"
)

func flagTable(t *testing.T) *table.Table {
	t.Helper()
	tb, err := table.New(
		table.NewFloat("a", []float64{1, 2, 3, 4, 5}),
		table.NewFloat("b", []float64{6, 7, 8, 9, 10}),
	)
	if err != nil {
		t.Fatal(err)
	}
	return tb
}

func TestSelectionDefaults(t *testing.T) {
	tb := flagTable(t)
	f := &modFlags{startRow: 1, endRow: 0}
	sel, err := f.selection(tb)
	if err != nil {
		t.Fatal(err)
	}
	if sel.Start != 0 || sel.End != 5 {
		t.Errorf("range [%d,%d), want [0,5)", sel.Start, sel.End)
	}
	if len(sel.Columns) != 2 {
		t.Errorf("empty --columns should select all, got %v", sel.Columns)
	}
}

func TestSelectionOneBasedInclusive(t *testing.T) {
	tb := flagTable(t)
	f := &modFlags{startRow: 2, endRow: 4, columns: []string{"a"}}
	sel, err := f.selection(tb)
	if err != nil {
		t.Fatal(err)
	}
	// Rows 2..4 inclusive map to [1,4).
	if sel.Start != 1 || sel.End != 4 || sel.Len() != 3 {
		t.Errorf("range [%d,%d)", sel.Start, sel.End)
	}
}

func TestSelectionRejectsBadRange(t *testing.T) {
	tb := flagTable(t)
	f := &modFlags{startRow: 4, endRow: 2, columns: []string{"a"}}
	if _, err := f.selection(tb); !errors.Is(err, table.ErrInvalidRange) {
		t.Errorf("got %v", err)
	}
	f = &modFlags{startRow: 1, endRow: 9, columns: []string{"a"}}
	if _, err := f.selection(tb); !errors.Is(err, table.ErrInvalidRange) {
		t.Errorf("got %v", err)
	}
}

func TestParseDelimiter(t *testing.T) {
	cases := map[string]rune{
		"":          0,
		",":         ',',
		"comma":     ',',
		";":         ';',
		"semicolon": ';',
		"tab":       '\t',
		"TAB":       '\t',
	}
	for in, want := range cases {
		got, err := parseDelimiter(in)
		if err != nil || got != want {
			t.Errorf("parseDelimiter(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := parseDelimiter("|"); err == nil {
		t.Error("expected error for unsupported delimiter")
	}
}

func TestConversionRatio(t *testing.T) {
	f := &modFlags{fromUnit: "minute", toUnit: "second", fromScale: 1, toScale: 1}
	r, err := f.conversionRatio()
	if err != nil {
		t.Fatal(err)
	}
	if r != 60 {
		t.Errorf("minute->second = %v, want 60", r)
	}
	// 10s grain to 2s grain.
	f = &modFlags{fromUnit: "second", toUnit: "second", fromScale: 10, toScale: 2}
	r, err = f.conversionRatio()
	if err != nil || r != 5 {
		t.Errorf("10s->2s = %v, %v", r, err)
	}
}

func TestConversionRatioOverride(t *testing.T) {
	f := &modFlags{ratioOver: 2.5, fromUnit: "second", toUnit: "second", fromScale: 1, toScale: 1}
	r, err := f.conversionRatio()
	if err != nil || r != 2.5 {
		t.Errorf("override = %v, %v", r, err)
	}
	f = &modFlags{ratioOver: -1, fromUnit: "second", toUnit: "second"}
	if _, err := f.conversionRatio(); err == nil {
		t.Error("negative override should be rejected")
	}
}

func TestEngineDTPrecedence(t *testing.T) {
	old := cfg
	defer func() { cfg = old }()

	cfg = &cfgpkg.Global{FilterDT: 0.5}
	f := &modFlags{}
	if eng := f.engine(); eng.DT != 0.5 {
		t.Errorf("config dt ignored: %v", eng.DT)
	}
	f = &modFlags{dt: 0.25}
	if eng := f.engine(); eng.DT != 0.25 {
		t.Errorf("flag should beat config: %v", eng.DT)
	}
	cfg = nil
	f = &modFlags{}
	if eng := f.engine(); math.Abs(eng.DT-1.0) > 0 {
		t.Errorf("default dt wrong: %v", eng.DT)
	}
}
