// Package config loads and persists tool defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	// Delimiter is the default CSV delimiter ("," "\t" ";"); empty sniffs
	// from the file extension.
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	// FilterDT is the sampling interval the LPF/HPF recursions assume
	// between consecutive rows.
	FilterDT float64 `mapstructure:"filter_dt" yaml:"filter_dt"`
	// SheetName / SheetIndex select the default XLSX worksheet.
	SheetName  string `mapstructure:"sheet_name" yaml:"sheet_name"`
	SheetIndex int    `mapstructure:"sheet_index" yaml:"sheet_index"`
	// HistoryDir is where `apply --history` drops operation logs.
	HistoryDir string `mapstructure:"history_dir" yaml:"history_dir"`
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("TSMOD")
	v.AutomaticEnv()

	v.SetDefault("delimiter", "")
	v.SetDefault("filter_dt", 1.0)
	v.SetDefault("sheet_name", "")
	v.SetDefault("sheet_index", 1)
	// Registering the key is what lets AutomaticEnv surface TSMOD_HISTORY_DIR
	// through Unmarshal.
	v.SetDefault("history_dir", "")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".tsmod")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.HistoryDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		c.HistoryDir = filepath.Join(home, ".tsmod", "history")
	}
	return &c, nil
}

// Save writes the given configuration to cfgFile, or to
// ~/.tsmod/config.yaml when cfgFile is empty.
func Save(c *Global, cfgFile string) error {
	path := cfgFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".tsmod")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
