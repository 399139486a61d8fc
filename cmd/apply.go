package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kestrelworks/tsmod/internal/load"
	"github.com/kestrelworks/tsmod/internal/session"
)

var (
	applyFlags   modFlags
	applyOutPath string
	applyHistory string
)

var applyCmd = &cobra.Command{
	Use:   "apply <file>",
	Short: "Apply a modification and write the modified table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		opt, err := applyFlags.loadOptions()
		if err != nil {
			return err
		}
		t, err := load.Read(path, opt)
		if err != nil {
			return err
		}
		sel, err := applyFlags.selection(t)
		if err != nil {
			return err
		}
		m, err := applyFlags.methodSpec()
		if err != nil {
			return err
		}
		ratio, err := applyFlags.conversionRatio()
		if err != nil {
			return err
		}

		sess := session.New(t, applyFlags.engine())
		rep, err := sess.Execute(sel, m, ratio)
		if err != nil {
			return err
		}

		out := applyOutPath
		if out == "" {
			ext := filepath.Ext(path)
			out = strings.TrimSuffix(path, ext) + "_modified.csv"
		}
		if err := load.WriteCSV(out, sess.Table(), opt.Delimiter); err != nil {
			return err
		}
		if applyHistory != "" {
			if err := sess.ExportHistory(applyHistory); err != nil {
				return err
			}
		}

		fmt.Println(rep.Markdown())
		fmt.Printf("✓ Wrote %s (%d rows, %d columns)\n", out, sess.Table().NumRows(), sess.Table().NumCols())
		return nil
	},
}

func init() {
	applyFlags.register(applyCmd)
	applyCmd.Flags().StringVar(&applyOutPath, "out", "", "output path (default: <input>_modified.csv)")
	applyCmd.Flags().StringVar(&applyHistory, "history", "", "write the operation history to this YAML file")
	rootCmd.AddCommand(applyCmd)
}
