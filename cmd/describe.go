package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kestrelworks/tsmod/internal/load"
	"github.com/kestrelworks/tsmod/internal/stats"
)

var (
	descDelimiter  string
	descSheetName  string
	descSheetIndex int
)

var describeCmd = &cobra.Command{
	Use:   "describe <file>",
	Short: "Summarize each column of a dataset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		delim := descDelimiter
		if delim == "" {
			delim = cfg.Delimiter
		}
		d, err := parseDelimiter(delim)
		if err != nil {
			return err
		}
		opt := load.Options{Delimiter: d, SheetName: cfg.SheetName, SheetIndex: cfg.SheetIndex}
		if descSheetName != "" {
			opt.SheetName = descSheetName
		}
		if descSheetIndex > 0 {
			opt.SheetIndex = descSheetIndex
		}
		t, err := load.Read(args[0], opt)
		if err != nil {
			return err
		}

		var b strings.Builder
		b.WriteString("[DATASET]\n")
		b.WriteString(fmt.Sprintf("Rows: %d\nColumns: %d\n\n[SCHEMA]\n", t.NumRows(), t.NumCols()))
		for i := range t.Columns {
			c := &t.Columns[i]
			if !c.IsNumeric() {
				b.WriteString(fmt.Sprintf("- %s: %s\n", c.Name, c.Type))
				continue
			}
			s := stats.Summarize(c.Floats, c.Valid)
			missing := c.Len() - s.Count
			b.WriteString(fmt.Sprintf("- %s: %s (valid %d, missing %d): min %.4g, max %.4g, mean %.4g, std %.4g\n",
				c.Name, c.Type, s.Count, missing, s.Min, s.Max, s.Mean, s.Std))
		}
		fmt.Print(b.String())
		return nil
	},
}

func init() {
	registerLoadFlags(describeCmd, &descDelimiter, &descSheetName, &descSheetIndex)
	rootCmd.AddCommand(describeCmd)
}
