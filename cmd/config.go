package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	cfgpkg "github.com/kestrelworks/tsmod/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or change persisted defaults",
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("delimiter:   %q\n", cfg.Delimiter)
		fmt.Printf("filter_dt:   %g\n", cfg.FilterDT)
		fmt.Printf("sheet_name:  %q\n", cfg.SheetName)
		fmt.Printf("sheet_index: %d\n", cfg.SheetIndex)
		fmt.Printf("history_dir: %s\n", cfg.HistoryDir)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration key and save",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, val := args[0], args[1]
		switch key {
		case "delimiter":
			cfg.Delimiter = val
		case "filter_dt":
			f, err := strconv.ParseFloat(val, 64)
			if err != nil || f <= 0 {
				return fmt.Errorf("filter_dt must be a positive number, got %q", val)
			}
			cfg.FilterDT = f
		case "sheet_name":
			cfg.SheetName = val
		case "sheet_index":
			n, err := strconv.Atoi(val)
			if err != nil || n < 1 {
				return fmt.Errorf("sheet_index must be a positive integer, got %q", val)
			}
			cfg.SheetIndex = n
		case "history_dir":
			cfg.HistoryDir = val
		default:
			return fmt.Errorf("unknown config key %q", key)
		}
		if err := cfgpkg.Save(cfg, cfgFile); err != nil {
			return err
		}
		fmt.Printf("✓ %s = %s\n", key, val)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configViewCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
