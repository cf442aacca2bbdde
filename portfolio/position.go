// Package portfolio owns cash and position state for one backtest run. All
// money amounts are decimals so that the equity identity
// equity = cash + sum(quantity * close) holds exactly, with no float drift.
package portfolio

import "github.com/shopspring/decimal"

// Position is the held quantity and volume-weighted average cost for one
// symbol. Quantity is negative for a short position. Positions are mutated
// only by applying fills.
type Position struct {
	Symbol   string
	Quantity decimal.Decimal
	AvgCost  decimal.Decimal
}

func (p Position) Flat() bool {
	return p.Quantity.IsZero()
}

// MarketValue is quantity times the given close, signed.
func (p Position) MarketValue(close decimal.Decimal) decimal.Decimal {
	return p.Quantity.Mul(close)
}

// UnrealizedPL is the profit if the position were liquidated at the given
// close, before transaction costs.
func (p Position) UnrealizedPL(close decimal.Decimal) decimal.Decimal {
	return close.Sub(p.AvgCost).Mul(p.Quantity)
}

// EntryValue is the absolute capital committed at the average cost.
func (p Position) EntryValue() decimal.Decimal {
	return p.Quantity.Abs().Mul(p.AvgCost)
}
