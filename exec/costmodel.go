// Package exec simulates order execution against historical bars. Intents
// are sized against current equity, filled completely at the bar close
// adjusted for slippage, and charged a proportional commission.
package exec

import "github.com/shopspring/decimal"

// CostModel holds the proportional transaction costs applied to every fill.
// Both rates are fractions of notional (0.001 = 10 basis points).
type CostModel struct {
	CommissionRate decimal.Decimal
	SlippageRate   decimal.Decimal
}

// NewCostModel builds a cost model from float rates as they appear in run
// configuration. Rates must be non-negative; validation happens at config
// load, not here.
func NewCostModel(commissionRate, slippageRate float64) CostModel {
	return CostModel{
		CommissionRate: decimal.NewFromFloat(commissionRate),
		SlippageRate:   decimal.NewFromFloat(slippageRate),
	}
}
