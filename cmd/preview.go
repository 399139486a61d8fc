package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kestrelworks/tsmod/internal/load"
	"github.com/kestrelworks/tsmod/internal/session"
)

var previewFlags modFlags

var previewCmd = &cobra.Command{
	Use:   "preview <file>",
	Short: "Show before/after statistics without writing anything",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opt, err := previewFlags.loadOptions()
		if err != nil {
			return err
		}
		t, err := load.Read(args[0], opt)
		if err != nil {
			return err
		}
		sel, err := previewFlags.selection(t)
		if err != nil {
			return err
		}
		m, err := previewFlags.methodSpec()
		if err != nil {
			return err
		}
		ratio, err := previewFlags.conversionRatio()
		if err != nil {
			return err
		}
		rep, err := session.New(t, previewFlags.engine()).Preview(sel, m, ratio)
		if err != nil {
			return err
		}
		fmt.Println(rep.Markdown())
		return nil
	},
}

func init() {
	previewFlags.register(previewCmd)
	rootCmd.AddCommand(previewCmd)
}
