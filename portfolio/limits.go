package portfolio

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RiskLimitError rejects an intent whose resulting position would exceed the
// configured fraction of equity. The intent is dropped and the run continues.
type RiskLimitError struct {
	Symbol   string
	Time     time.Time
	Fraction decimal.Decimal
	Limit    decimal.Decimal
}

func (e *RiskLimitError) Error() string {
	return fmt.Sprintf("portfolio: %s at %s: position would be %s of equity, limit %s",
		e.Symbol, e.Time.Format(time.RFC3339), e.Fraction.StringFixed(4), e.Limit.StringFixed(4))
}

// Limits holds the per-run risk parameters.
type Limits struct {
	MaxPositionFraction decimal.Decimal
	StopLossFraction    decimal.Decimal
}

// NewLimits builds limits from float configuration values.
func NewLimits(maxPositionFraction, stopLossFraction float64) Limits {
	return Limits{
		MaxPositionFraction: decimal.NewFromFloat(maxPositionFraction),
		StopLossFraction:    decimal.NewFromFloat(stopLossFraction),
	}
}

// CheckPosition rejects a trade whose resulting absolute position value,
// marked at the trade price, would exceed MaxPositionFraction of equity.
func (lim Limits) CheckPosition(l *Ledger, symbol string, at time.Time, delta, price, equity decimal.Decimal) error {
	if equity.LessThanOrEqual(decimal.Zero) {
		return &RiskLimitError{Symbol: symbol, Time: at, Fraction: decimal.NewFromInt(1), Limit: lim.MaxPositionFraction}
	}

	resulting := l.Quantity(symbol).Add(delta).Abs().Mul(price)
	fraction := resulting.Div(equity)
	if fraction.GreaterThan(lim.MaxPositionFraction) {
		return &RiskLimitError{Symbol: symbol, Time: at, Fraction: fraction, Limit: lim.MaxPositionFraction}
	}
	return nil
}

// StopLosses returns, in sorted symbol order, the open positions whose
// unrealized loss at the given closes exceeds StopLossFraction of the
// capital committed at entry. Symbols without a close are skipped; the
// caller reports those as missing data.
func (lim Limits) StopLosses(l *Ledger, closes map[string]decimal.Decimal) []string {
	var hit []string
	for _, sym := range l.Symbols() {
		close, ok := closes[sym]
		if !ok {
			continue
		}
		p, _ := l.Position(sym)
		loss := p.UnrealizedPL(close).Neg()
		if loss.GreaterThan(p.EntryValue().Mul(lim.StopLossFraction)) {
			hit = append(hit, sym)
		}
	}
	return hit
}
