package portfolio

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ioyy900205/quantL/exec"
	"github.com/ioyy900205/quantL/strategy"
)

// InsufficientCashError rejects a buy that would drive cash negative. The
// intent is dropped and the run continues.
type InsufficientCashError struct {
	Symbol    string
	Time      time.Time
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientCashError) Error() string {
	return fmt.Sprintf("portfolio: %s at %s: buy requires %s cash, have %s",
		e.Symbol, e.Time.Format(time.RFC3339), e.Required.StringFixed(2), e.Available.StringFixed(2))
}

// Ledger is the single owner of cash and positions during a run. It is not
// safe for concurrent use; each run owns exactly one ledger.
type Ledger struct {
	cash      decimal.Decimal
	positions map[string]Position
}

func NewLedger(initialCash decimal.Decimal) *Ledger {
	return &Ledger{
		cash:      initialCash,
		positions: make(map[string]Position),
	}
}

func (l *Ledger) Cash() decimal.Decimal { return l.cash }

// Position returns the open position for symbol, if any.
func (l *Ledger) Position(symbol string) (Position, bool) {
	p, ok := l.positions[symbol]
	return p, ok
}

// Quantity returns the held quantity for symbol, zero when flat.
func (l *Ledger) Quantity(symbol string) decimal.Decimal {
	return l.positions[symbol].Quantity
}

// Symbols returns the open position symbols in sorted order.
func (l *Ledger) Symbols() []string {
	syms := make([]string, 0, len(l.positions))
	for s := range l.positions {
		syms = append(syms, s)
	}
	sort.Strings(syms)
	return syms
}

// Equity values every open position at the given closes and adds cash.
func (l *Ledger) Equity(closes map[string]decimal.Decimal) decimal.Decimal {
	eq := l.cash
	for sym, p := range l.positions {
		close, ok := closes[sym]
		if !ok {
			// A position can only exist after a fill, which required a
			// bar, so the driver always carries a last close. Fall back
			// to cost if a caller does not.
			close = p.AvgCost
		}
		eq = eq.Add(p.MarketValue(close))
	}
	return eq
}

// Apply commits a fill: cash moves by the fill notional plus or minus
// commission, and the position's quantity and volume-weighted average cost
// are updated. When the fill reduces exposure it is marked Closing and its
// RealizedPL is set to the price-versus-cost profit on the closed shares,
// net of the fill's commission. A fill that would drive cash negative
// returns *InsufficientCashError and leaves the ledger untouched.
func (l *Ledger) Apply(f *exec.Fill) error {
	signed := f.Quantity
	if f.Side == strategy.Sell {
		signed = signed.Neg()
	}

	notional := f.Notional()
	if f.Side == strategy.Buy {
		required := notional.Add(f.Commission)
		if required.GreaterThan(l.cash) {
			return &InsufficientCashError{
				Symbol:    f.Symbol,
				Time:      f.Time,
				Required:  required,
				Available: l.cash,
			}
		}
		l.cash = l.cash.Sub(required)
	} else {
		l.cash = l.cash.Add(notional).Sub(f.Commission)
	}

	pos := l.positions[f.Symbol]
	pos.Symbol = f.Symbol

	switch {
	case pos.Quantity.IsZero() || pos.Quantity.Sign() == signed.Sign():
		// Opening or adding: new volume-weighted average cost.
		oldAbs := pos.Quantity.Abs()
		addAbs := signed.Abs()
		total := oldAbs.Add(addAbs)
		pos.AvgCost = oldAbs.Mul(pos.AvgCost).Add(addAbs.Mul(f.Price)).Div(total)
		pos.Quantity = pos.Quantity.Add(signed)

	default:
		// Reducing, possibly crossing through flat.
		closed := signed.Abs()
		if closed.GreaterThan(pos.Quantity.Abs()) {
			closed = pos.Quantity.Abs()
		}
		gross := f.Price.Sub(pos.AvgCost).Mul(closed)
		if pos.Quantity.Sign() < 0 {
			gross = gross.Neg()
		}
		f.Closing = true
		f.RealizedPL = gross.Sub(f.Commission)

		pos.Quantity = pos.Quantity.Add(signed)
		if pos.Quantity.IsZero() {
			delete(l.positions, f.Symbol)
			return nil
		}
		if pos.Quantity.Sign() == signed.Sign() {
			// Crossed through flat: the remainder is a fresh position
			// opened at the fill price.
			pos.AvgCost = f.Price
		}
	}

	l.positions[f.Symbol] = pos
	return nil
}
