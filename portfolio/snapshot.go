package portfolio

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot is the ledger state at the end of one step. Equity is always
// recomputed from cash and marked positions, never carried forward, so the
// conservation identity holds by construction.
type Snapshot struct {
	Time      time.Time
	Cash      decimal.Decimal
	Positions map[string]Position
	Equity    decimal.Decimal
}

// Snapshot captures the ledger at ts with positions marked at the given
// closes. It is a pure read: the returned positions map is a copy and the
// ledger is not mutated.
func (l *Ledger) Snapshot(ts time.Time, closes map[string]decimal.Decimal) Snapshot {
	positions := make(map[string]Position, len(l.positions))
	for sym, p := range l.positions {
		positions[sym] = p
	}
	return Snapshot{
		Time:      ts,
		Cash:      l.cash,
		Positions: positions,
		Equity:    l.Equity(closes),
	}
}
