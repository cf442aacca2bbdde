// Package market holds immutable historical price data: per-symbol bar
// series and the multi-symbol view a backtest replays.
package market

import "time"

// Bar is one OHLCV record for a symbol at a timestamp.
type Bar struct {
	Symbol string
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}
