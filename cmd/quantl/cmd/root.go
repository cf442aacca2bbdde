package cmd

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ioyy900205/quantL/config"
	"github.com/ioyy900205/quantL/internal/util"
)

var rootCmd = &cobra.Command{
	Use:   "quantl",
	Short: "A deterministic backtesting engine for quantitative trading research",
	Long: `quantL replays historical price bars through pluggable trading
strategies, simulates execution with transaction costs, enforces portfolio
risk limits, and reports risk-adjusted performance.

Pipeline stages:
  - quantl data      generate or inspect bar datasets
  - quantl backtest  run a strategy over a dataset
  - quantl report    re-render a stored run
  - quantl config    generate or validate configuration files`,
}

var (
	cfgPath  string
	logLevel string
)

// Execute runs the CLI. A .env file, when present, seeds the environment
// before flags are read.
func Execute() error {
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (YAML or JSON); defaults to $QUANTL_CONFIG")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override configured log level (debug, info, warn, error)")
}

// loadConfig resolves the configuration: the --config flag, then the
// QUANTL_CONFIG environment variable, then built-in defaults.
func loadConfig() (*config.Config, error) {
	path := cfgPath
	if path == "" {
		path = os.Getenv("QUANTL_CONFIG")
	}
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(path)
}

// newLogger builds the process logger, honoring the --log-level override.
func newLogger(cfg *config.Config) *slog.Logger {
	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	return util.NewLogger(level)
}
