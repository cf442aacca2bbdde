// Package backtest drives a deterministic single-pass replay: bars in,
// strategy intents through execution and the ledger, snapshots out.
package backtest

import (
	"fmt"
	"time"
)

// ConfigError reports an invalid run configuration. It is fatal: nothing is
// executed until the configuration validates.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("backtest: config %s: %s", e.Field, e.Reason)
}

// Config is the per-run configuration. A zero Start or End leaves that side
// of the date range unbounded.
type Config struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`

	InitialCapital float64 `json:"initial_capital" yaml:"initial_capital"`
	CommissionRate float64 `json:"commission_rate" yaml:"commission_rate"`
	SlippageRate   float64 `json:"slippage_rate" yaml:"slippage_rate"`

	MaxPositionFraction float64 `json:"max_position_fraction" yaml:"max_position_fraction"`
	StopLossFraction    float64 `json:"stop_loss_fraction" yaml:"stop_loss_fraction"`

	// AllowShort lets sell intents open negative positions. Off by default;
	// a bare sell only ever exits to flat.
	AllowShort bool `json:"allow_short" yaml:"allow_short"`

	// PeriodsPerYear scales annualized statistics; 252 suits daily bars.
	PeriodsPerYear int `json:"periods_per_year" yaml:"periods_per_year"`
}

// DefaultConfig returns the configuration used when a field is unset.
func DefaultConfig() Config {
	return Config{
		InitialCapital:      100_000,
		CommissionRate:      0.001,
		SlippageRate:        0.0005,
		MaxPositionFraction: 0.25,
		StopLossFraction:    0.10,
		PeriodsPerYear:      252,
	}
}

// Validate checks every field and returns a *ConfigError naming the first
// violation.
func (c Config) Validate() error {
	if c.InitialCapital <= 0 {
		return &ConfigError{Field: "initial_capital", Reason: "must be positive"}
	}
	if c.CommissionRate < 0 {
		return &ConfigError{Field: "commission_rate", Reason: "must be non-negative"}
	}
	if c.SlippageRate < 0 {
		return &ConfigError{Field: "slippage_rate", Reason: "must be non-negative"}
	}
	if c.MaxPositionFraction <= 0 || c.MaxPositionFraction > 1 {
		return &ConfigError{Field: "max_position_fraction", Reason: "must be in (0, 1]"}
	}
	if c.StopLossFraction <= 0 || c.StopLossFraction > 1 {
		return &ConfigError{Field: "stop_loss_fraction", Reason: "must be in (0, 1]"}
	}
	if c.PeriodsPerYear <= 0 {
		return &ConfigError{Field: "periods_per_year", Reason: "must be positive"}
	}
	if !c.Start.IsZero() && !c.End.IsZero() && c.End.Before(c.Start) {
		return &ConfigError{Field: "end", Reason: "must not precede start"}
	}
	return nil
}
