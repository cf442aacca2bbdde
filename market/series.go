package market

import (
	"fmt"
	"sort"
	"time"
)

// IntegrityError reports a data-integrity violation found while building a
// series (out-of-order or duplicate timestamps, bad OHLC ranges). It is
// fatal: a series with broken ordering cannot be replayed.
type IntegrityError struct {
	Symbol string
	Time   time.Time
	Reason string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("market: %s at %s: %s", e.Symbol, e.Time.Format(time.RFC3339), e.Reason)
}

// Series is the time-ordered bar history for one symbol. It is validated at
// construction and never mutated afterwards.
type Series struct {
	symbol string
	bars   []Bar
}

// NewSeries validates and wraps bars into a Series. Bars must be strictly
// increasing in timestamp with no duplicates; the input slice is copied.
func NewSeries(symbol string, bars []Bar) (*Series, error) {
	if symbol == "" {
		return nil, fmt.Errorf("market: empty symbol")
	}

	owned := make([]Bar, len(bars))
	copy(owned, bars)

	var prev time.Time
	for i, b := range owned {
		if b.Symbol != "" && b.Symbol != symbol {
			return nil, &IntegrityError{Symbol: symbol, Time: b.Time,
				Reason: fmt.Sprintf("bar belongs to %q", b.Symbol)}
		}
		owned[i].Symbol = symbol

		if b.Time.IsZero() {
			return nil, &IntegrityError{Symbol: symbol, Time: b.Time, Reason: "zero timestamp"}
		}
		if i > 0 {
			if b.Time.Equal(prev) {
				return nil, &IntegrityError{Symbol: symbol, Time: b.Time, Reason: "duplicate timestamp"}
			}
			if b.Time.Before(prev) {
				return nil, &IntegrityError{Symbol: symbol, Time: b.Time, Reason: "timestamp out of order"}
			}
		}
		if b.High < b.Low {
			return nil, &IntegrityError{Symbol: symbol, Time: b.Time, Reason: "high below low"}
		}
		prev = b.Time
	}

	return &Series{symbol: symbol, bars: owned}, nil
}

func (s *Series) Symbol() string { return s.symbol }

func (s *Series) Len() int { return len(s.bars) }

// Bar returns the bar at index i. Panics on out-of-range, like a slice.
func (s *Series) Bar(i int) Bar { return s.bars[i] }

// Last returns the final bar and false if the series is empty.
func (s *Series) Last() (Bar, bool) {
	if len(s.bars) == 0 {
		return Bar{}, false
	}
	return s.bars[len(s.bars)-1], true
}

// IndexAt returns the index of the bar at exactly t, or false if the symbol
// has no bar at that timestamp.
func (s *Series) IndexAt(t time.Time) (int, bool) {
	i := sort.Search(len(s.bars), func(i int) bool { return !s.bars[i].Time.Before(t) })
	if i < len(s.bars) && s.bars[i].Time.Equal(t) {
		return i, true
	}
	return 0, false
}

// Upto returns the bars with timestamps at or before t. The returned slice
// shares the series' backing array; callers must not modify it.
func (s *Series) Upto(t time.Time) []Bar {
	i := sort.Search(len(s.bars), func(i int) bool { return s.bars[i].Time.After(t) })
	return s.bars[:i]
}

// Bars returns the full bar slice. Shared backing array; read-only.
func (s *Series) Bars() []Bar { return s.bars }
