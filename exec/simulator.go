package exec

import (
	"math/rand"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"

	"github.com/ioyy900205/quantL/market"
	"github.com/ioyy900205/quantL/strategy"
)

var one = decimal.NewFromInt(1)

// Simulator converts sized trade intents into fills at the bar's closing
// price under a cost model. Fill IDs are ULIDs built from the bar timestamp
// with a fixed-seed entropy source, so two runs over the same data produce
// identical fill records.
type Simulator struct {
	costs      CostModel
	allowShort bool
	entropy    *ulid.MonotonicEntropy
}

func NewSimulator(costs CostModel, allowShort bool) *Simulator {
	return &Simulator{
		costs:      costs,
		allowShort: allowShort,
		entropy:    ulid.Monotonic(rand.New(rand.NewSource(1)), 0),
	}
}

// Size returns the signed whole-share delta implied by an intent, given the
// bar it trades against, current total equity and the shares currently held
// in the symbol. A zero delta means the intent produces no trade.
//
// Quantity, when positive, is an absolute share count. Otherwise Weight is a
// target fraction of equity: a Buy tops the position up to that fraction and
// a Sell exits to flat, or to the negative of that fraction when shorting is
// enabled. A bare Sell (both zero) always exits to flat.
func (s *Simulator) Size(intent strategy.Intent, bar market.Bar, equity, held decimal.Decimal) decimal.Decimal {
	if intent.Side == strategy.Hold {
		return decimal.Zero
	}

	if intent.Quantity > 0 {
		qty := decimal.NewFromFloat(intent.Quantity).Floor()
		if intent.Side == strategy.Buy {
			return qty
		}
		if !s.allowShort {
			// Cap the sale at the held quantity.
			if held.LessThanOrEqual(decimal.Zero) {
				return decimal.Zero
			}
			if qty.GreaterThan(held) {
				qty = held
			}
		}
		return qty.Neg()
	}

	close := decimal.NewFromFloat(bar.Close)
	if close.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	target := decimal.Zero
	switch {
	case intent.Side == strategy.Buy:
		target = decimal.NewFromFloat(intent.Weight).Mul(equity).Div(close).Floor()
	case s.allowShort && intent.Weight > 0:
		target = decimal.NewFromFloat(intent.Weight).Mul(equity).Div(close).Floor().Neg()
	}

	delta := target.Sub(held)
	// A Buy never sells and a Sell never buys; an intent that is already
	// satisfied is dropped rather than reversed.
	if intent.Side == strategy.Buy && delta.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	if intent.Side == strategy.Sell && delta.GreaterThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return delta
}

// Fill executes a sized intent completely at the bar close, with slippage
// applied in the adverse direction and commission charged on the adjusted
// notional. It returns nil when delta rounds to zero shares; the caller
// records that as a skipped intent, not an error.
func (s *Simulator) Fill(intent strategy.Intent, bar market.Bar, delta decimal.Decimal, reason string) *Fill {
	qty := delta.Floor()
	if qty.IsZero() {
		return nil
	}

	side := strategy.Buy
	if qty.IsNegative() {
		side = strategy.Sell
		qty = qty.Neg()
	}

	close := decimal.NewFromFloat(bar.Close)
	slip := close.Mul(s.costs.SlippageRate)
	price := close.Add(slip)
	if side == strategy.Sell {
		price = close.Sub(slip)
	}

	return &Fill{
		ID:           s.nextID(bar),
		Symbol:       intent.Symbol,
		Time:         bar.Time,
		Side:         side,
		Quantity:     qty,
		Price:        price,
		Commission:   price.Mul(qty).Mul(s.costs.CommissionRate),
		SlippageCost: slip.Mul(qty),
		Reason:       reason,
	}
}

func (s *Simulator) nextID(bar market.Bar) string {
	id, err := ulid.New(ulid.Timestamp(bar.Time.UTC()), s.entropy)
	if err != nil {
		panic(err)
	}
	return id.String()
}
