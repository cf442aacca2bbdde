package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ioyy900205/quantL/backtest"
)

func TestDefaultValidates(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
run:
  initial_capital: 50000
  commission_rate: 0.002
  slippage_rate: 0.0001
  max_position_fraction: 0.5
  stop_loss_fraction: 0.15
  periods_per_year: 52
  allow_short: true
strategy:
  name: momentum
  params:
    lookback: 10
    threshold: 0.03
data:
  dir: ./bars
journal:
  type: none
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 50000.0, cfg.Run.InitialCapital)
	assert.Equal(t, 52, cfg.Run.PeriodsPerYear)
	assert.True(t, cfg.Run.AllowShort)
	assert.Equal(t, "momentum", cfg.Strategy.Name)

	lookback, ok := cfg.Strategy.Params.Int("lookback")
	require.True(t, ok)
	assert.Equal(t, 10, lookback)

	assert.Equal(t, "./bars", cfg.Data.Dir)
	assert.Equal(t, "none", cfg.Journal.Type)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestSaveAndReload(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"config.yaml", "config.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			orig := Default()
			orig.Run.InitialCapital = 42000

			require.NoError(t, orig.SaveToFile(path))

			got, err := LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, 42000.0, got.Run.InitialCapital)
			assert.Equal(t, orig.Strategy.Name, got.Strategy.Name)
		})
	}
}

func TestValidateErrors(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Config)
		want string
	}{
		{"bad run config", func(c *Config) { c.Run.InitialCapital = -1 }, "initial_capital"},
		{"missing strategy", func(c *Config) { c.Strategy.Name = "" }, "strategy.name"},
		{"missing data dir", func(c *Config) { c.Data.Dir = "" }, "data.dir"},
		{"negative throttle", func(c *Config) { c.Data.ThrottleSeconds = -1 }, "throttle_seconds"},
		{"sqlite without path", func(c *Config) { c.Journal = JournalConfig{Type: "sqlite"} }, "db_path"},
		{"csv without files", func(c *Config) { c.Journal = JournalConfig{Type: "csv"} }, "fills_file"},
		{"unknown journal", func(c *Config) { c.Journal.Type = "parquet" }, "journal.type"},
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }, "log_level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mut(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestRunConfigErrorType(t *testing.T) {
	cfg := Default()
	cfg.Run.MaxPositionFraction = 2

	err := cfg.Validate()
	var ce *backtest.ConfigError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "max_position_fraction", ce.Field)
}
