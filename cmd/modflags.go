package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kestrelworks/tsmod/internal/load"
	"github.com/kestrelworks/tsmod/internal/modify"
	"github.com/kestrelworks/tsmod/internal/table"
	"github.com/kestrelworks/tsmod/internal/units"
)

// modFlags is the flag set shared by preview and apply: what to modify,
// how, and between which time units.
type modFlags struct {
	columns    []string
	startRow   int
	endRow     int
	method     string
	value      float64
	tau        float64
	dt         float64
	fromUnit   string
	toUnit     string
	fromScale  float64
	toScale    float64
	ratioOver  float64
	delimiter  string
	sheetName  string
	sheetIndex int
}

func (f *modFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&f.columns, "columns", nil, "columns to modify (default: all)")
	cmd.Flags().IntVar(&f.startRow, "start", 1, "first data row to modify (1-based, inclusive)")
	cmd.Flags().IntVar(&f.endRow, "end", 0, "last data row to modify (1-based, inclusive; 0 = last row)")
	cmd.Flags().StringVar(&f.method, "method", "", "modification method (multiply, divide, add, subtract, linear, nearest, next, previous, pchip, cubic, spline, akima, zerofill, average, max, min, median, skip, lpf, hpf)")
	cmd.Flags().Float64Var(&f.value, "value", 0, "scalar operand for arithmetic methods")
	cmd.Flags().Float64Var(&f.tau, "tau", 0, "filter time constant (lpf/hpf)")
	cmd.Flags().Float64Var(&f.dt, "dt", 0, "filter sampling interval (overrides config)")
	cmd.Flags().StringVar(&f.fromUnit, "from-unit", "second", "original time unit (second, minute, hour, day)")
	cmd.Flags().StringVar(&f.toUnit, "to-unit", "second", "target time unit (second, minute, hour, day)")
	cmd.Flags().Float64Var(&f.fromScale, "from-scale", 1, "custom multiplier of the original unit (e.g. 10 with --from-unit second = 10s grain)")
	cmd.Flags().Float64Var(&f.toScale, "to-scale", 1, "custom multiplier of the target unit")
	cmd.Flags().Float64Var(&f.ratioOver, "ratio", 0, "conversion ratio override; skips unit computation when set")
	registerLoadFlags(cmd, &f.delimiter, &f.sheetName, &f.sheetIndex)
	_ = cmd.MarkFlagRequired("method")
}

func registerLoadFlags(cmd *cobra.Command, delim *string, sheetName *string, sheetIndex *int) {
	cmd.Flags().StringVar(delim, "delimiter", "", "CSV delimiter: ',' ';' or 'tab' (default: sniffed)")
	cmd.Flags().StringVar(sheetName, "sheet-name", "", "XLSX sheet name")
	cmd.Flags().IntVar(sheetIndex, "sheet-index", 0, "XLSX sheet index (1-based)")
}

func parseDelimiter(s string) (rune, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return 0, nil
	case ",", "comma":
		return ',', nil
	case ";", "semicolon":
		return ';', nil
	case "\t", "tab":
		return '\t', nil
	default:
		return 0, fmt.Errorf("unsupported --delimiter: %s", s)
	}
}

func (f *modFlags) loadOptions() (load.Options, error) {
	opt := load.Options{SheetName: cfg.SheetName, SheetIndex: cfg.SheetIndex}
	delim := f.delimiter
	if delim == "" {
		delim = cfg.Delimiter
	}
	d, err := parseDelimiter(delim)
	if err != nil {
		return opt, err
	}
	opt.Delimiter = d
	if f.sheetName != "" {
		opt.SheetName = f.sheetName
	}
	if f.sheetIndex > 0 {
		opt.SheetIndex = f.sheetIndex
	}
	return opt, nil
}

// selection converts the 1-based inclusive row flags into the core's
// 0-based end-exclusive range and defaults the column set to every column,
// mirroring the select-all behavior of the original application.
func (f *modFlags) selection(t *table.Table) (table.Selection, error) {
	start := f.startRow - 1
	end := f.endRow
	if end <= 0 {
		end = t.NumRows()
	}
	cols := f.columns
	if len(cols) == 0 {
		cols = t.ColumnNames()
	}
	sel := table.Selection{Start: start, End: end, Columns: cols}
	return sel, sel.Validate(t)
}

func (f *modFlags) methodSpec() (modify.Method, error) {
	return modify.ParseMethod(f.method, f.value, f.tau)
}

func (f *modFlags) conversionRatio() (float64, error) {
	if f.ratioOver != 0 {
		if f.ratioOver < 0 {
			return 0, fmt.Errorf("--ratio must be positive")
		}
		return f.ratioOver, nil
	}
	from, err := units.ParseBase(f.fromUnit)
	if err != nil {
		return 0, err
	}
	to, err := units.ParseBase(f.toUnit)
	if err != nil {
		return 0, err
	}
	return units.Ratio(units.Custom(f.fromScale, from), units.Custom(f.toScale, to)), nil
}

func (f *modFlags) engine() *modify.Engine {
	eng := modify.NewEngine()
	if cfg != nil && cfg.FilterDT > 0 {
		eng.DT = cfg.FilterDT
	}
	if f.dt > 0 {
		eng.DT = f.dt
	}
	return eng
}
