package exec

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ioyy900205/quantL/strategy"
)

// Fill reasons recorded on every execution.
const (
	ReasonSignal   = "signal"
	ReasonStopLoss = "stop_loss"
)

// Fill is the immutable record of one simulated execution. Quantity is
// always positive; Side carries the direction. RealizedPL and Closing are
// filled in by the ledger when the fill reduces an existing position.
type Fill struct {
	ID           string
	Symbol       string
	Time         time.Time
	Side         strategy.Side
	Quantity     decimal.Decimal
	Price        decimal.Decimal // close adjusted for slippage
	Commission   decimal.Decimal
	SlippageCost decimal.Decimal
	Reason       string

	RealizedPL decimal.Decimal
	Closing    bool
}

// Notional is price times quantity, before commission.
func (f *Fill) Notional() decimal.Decimal {
	return f.Price.Mul(f.Quantity)
}
