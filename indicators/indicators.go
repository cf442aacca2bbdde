// Package indicators computes derived per-bar signal values from bar
// history. Strategies consume these either as pre-computed signal columns
// (a Table) or by calling the batch helpers over their history window.
package indicators

import "github.com/ioyy900205/quantL/market"

// Indicator computes a single streaming value from bars.
// It is deterministic and safe to use in replay and backtests.
type Indicator interface {
	// Name returns a stable identifier like "SMA(20)".
	Name() string

	// Warmup returns how many updates are needed before Ready can be true.
	Warmup() int

	// Reset clears all internal state.
	Reset()

	// Update consumes the next closed bar.
	Update(b market.Bar)

	// Ready reports whether Value is meaningful (warmup completed).
	Ready() bool

	// Value returns the current indicator value. Callers should check
	// Ready first; before warmup the value tracks the available history.
	Value() float64
}
