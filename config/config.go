// Package config loads the application configuration: the run parameters,
// the strategy selection, and where data and journals live.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ioyy900205/quantL/backtest"
	"github.com/ioyy900205/quantL/strategy"
)

// Config is the complete application configuration.
type Config struct {
	Run      backtest.Config `json:"run" yaml:"run"`
	Strategy StrategyConfig  `json:"strategy" yaml:"strategy"`
	Data     DataConfig      `json:"data" yaml:"data"`
	Journal  JournalConfig   `json:"journal" yaml:"journal"`
	LogLevel string          `json:"log_level" yaml:"log_level"`
}

// StrategyConfig names a registered strategy and carries its flat parameter
// map, handed to Init unmodified.
type StrategyConfig struct {
	Name   string          `json:"name" yaml:"name"`
	Params strategy.Params `json:"params" yaml:"params"`
}

// DataConfig locates the bar CSV directory and tunes batch acquisition.
type DataConfig struct {
	Dir             string `json:"dir" yaml:"dir"`
	ThrottleSeconds int    `json:"throttle_seconds" yaml:"throttle_seconds"`
}

// JournalConfig selects the journal backend.
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "sqlite", "csv", or "none"
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	FillsFile  string `json:"fills_file,omitempty" yaml:"fills_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
}

// LoadFromFile reads YAML or JSON configuration from path and validates it.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration, choosing the format by extension.
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks the configuration beyond what the run config validates
// itself.
func (c *Config) Validate() error {
	if err := c.Run.Validate(); err != nil {
		return err
	}
	if c.Strategy.Name == "" {
		return fmt.Errorf("strategy.name is required")
	}
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir is required")
	}
	if c.Data.ThrottleSeconds < 0 {
		return fmt.Errorf("data.throttle_seconds must be non-negative")
	}

	switch c.Journal.Type {
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for sqlite journal")
		}
	case "csv":
		if c.Journal.FillsFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal fills_file and equity_file required for csv journal")
		}
	case "none":
	default:
		return fmt.Errorf("journal.type must be 'sqlite', 'csv', or 'none'")
	}

	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn, or error")
	}
	return nil
}

// Default returns a runnable configuration against the local data directory.
func Default() *Config {
	return &Config{
		Run: backtest.DefaultConfig(),
		Strategy: StrategyConfig{
			Name: "dual-ma",
			Params: strategy.Params{
				"short_window":  5,
				"long_window":   20,
				"position_size": 0.2,
			},
		},
		Data: DataConfig{
			Dir:             "./data",
			ThrottleSeconds: 1,
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./quantl.db",
		},
		LogLevel: "info",
	}
}
