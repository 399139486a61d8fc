package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kestrelworks/tsmod/internal/units"
)

var (
	ratioFrom      string
	ratioTo        string
	ratioFromScale float64
	ratioToScale   float64
)

var ratioCmd = &cobra.Command{
	Use:   "ratio",
	Short: "Print the conversion factor between two time units",
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := units.ParseBase(ratioFrom)
		if err != nil {
			return err
		}
		to, err := units.ParseBase(ratioTo)
		if err != nil {
			return err
		}
		orig := units.Custom(ratioFromScale, from)
		target := units.Custom(ratioToScale, to)
		r := units.Ratio(orig, target)
		fmt.Printf("%s -> %s: %.10f\n", orig, target, r)
		switch {
		case r > 1:
			fmt.Println("direction: upsampling (row expansion)")
		case r < 1:
			fmt.Println("direction: downsampling (row reduction)")
		default:
			fmt.Println("direction: same unit (filter-eligible)")
		}
		return nil
	},
}

func init() {
	ratioCmd.Flags().StringVar(&ratioFrom, "from", "second", "original unit")
	ratioCmd.Flags().StringVar(&ratioTo, "to", "minute", "target unit")
	ratioCmd.Flags().Float64Var(&ratioFromScale, "from-scale", 1, "custom multiplier of the original unit")
	ratioCmd.Flags().Float64Var(&ratioToScale, "to-scale", 1, "custom multiplier of the target unit")
	rootCmd.AddCommand(ratioCmd)
}
