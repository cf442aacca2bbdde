// Package strategy defines the Strategy interface for trading strategies and
// provides a Registry for managing multiple strategy implementations.
package strategy

import (
	"time"

	"github.com/ioyy900205/quantL/market"
)

// Side is the direction of a trade intent or fill.
type Side int8

const (
	Sell Side = -1
	Hold Side = 0
	Buy  Side = +1
)

func (s Side) String() string {
	switch s {
	case Buy:
		return "BUY"
	case Sell:
		return "SELL"
	default:
		return "HOLD"
	}
}

// Intent is a strategy's wish to trade a symbol at a timestamp. Either
// Quantity (absolute shares) or Weight (target fraction of equity) sizes the
// trade; when both are zero a Sell means "exit the position". Intents are
// ephemeral: they live for one step of the driver loop.
type Intent struct {
	Symbol   string
	Time     time.Time
	Side     Side
	Quantity float64 // absolute shares, used when > 0
	Weight   float64 // target fraction of equity, used when Quantity == 0
}

// Window is the bar and signal history for one symbol, truncated so the last
// bar is the current simulated timestamp. Strategies never see later bars.
type Window struct {
	Symbol  string
	Bars    []market.Bar
	Signals map[string][]float64 // aligned with Bars; may be nil
}

// Last returns the current bar. Callers must not invoke it on an empty
// window; the driver never does.
func (w Window) Last() market.Bar {
	return w.Bars[len(w.Bars)-1]
}

// Signal returns the signal column by name, or false if absent.
func (w Window) Signal(name string) ([]float64, bool) {
	col, ok := w.Signals[name]
	return col, ok
}

// Strategy turns bar and signal history into trade intents. OnBar must be a
// pure function of the window (plus parameters fixed at Init) so that a
// backtest is reproducible and immune to look-ahead.
type Strategy interface {
	// Name returns the unique identifier for this strategy.
	Name() string

	// Init validates and stores strategy parameters. It returns a
	// *ConfigurationError when a required parameter is missing or out of
	// range.
	Init(p Params) error

	// OnBar returns zero or more intents for the window's last timestamp.
	OnBar(w Window) ([]Intent, error)

	// Finalize is an optional cleanup hook. It must not alter results.
	Finalize() error
}
