package market

import (
	"fmt"
	"sort"
	"time"
)

// MultiSeries is the replay arena for a set of symbols: the per-symbol
// series plus the sorted union of their timestamps. The driver walks the
// axis once and uses a Cursor per symbol instead of re-scanning histories.
type MultiSeries struct {
	series  map[string]*Series
	symbols []string
	axis    []time.Time
}

// NewMultiSeries combines one or more series. Symbols must be unique.
func NewMultiSeries(series ...*Series) (*MultiSeries, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("market: no series")
	}

	m := &MultiSeries{series: make(map[string]*Series, len(series))}
	seen := make(map[time.Time]struct{})

	for _, s := range series {
		if _, dup := m.series[s.Symbol()]; dup {
			return nil, fmt.Errorf("market: duplicate series for %q", s.Symbol())
		}
		m.series[s.Symbol()] = s
		m.symbols = append(m.symbols, s.Symbol())

		for _, b := range s.Bars() {
			if _, ok := seen[b.Time]; !ok {
				seen[b.Time] = struct{}{}
				m.axis = append(m.axis, b.Time)
			}
		}
	}

	sort.Strings(m.symbols)
	sort.Slice(m.axis, func(i, j int) bool { return m.axis[i].Before(m.axis[j]) })

	return m, nil
}

// Symbols returns the sorted symbol list.
func (m *MultiSeries) Symbols() []string { return m.symbols }

// Series returns the series for symbol.
func (m *MultiSeries) Series(symbol string) (*Series, bool) {
	s, ok := m.series[symbol]
	return s, ok
}

// Axis returns the full sorted union of timestamps across all symbols.
func (m *MultiSeries) Axis() []time.Time { return m.axis }

// AxisBetween returns the axis restricted to [start, end]. A zero start or
// end leaves that side unbounded.
func (m *MultiSeries) AxisBetween(start, end time.Time) []time.Time {
	lo := 0
	if !start.IsZero() {
		lo = sort.Search(len(m.axis), func(i int) bool { return !m.axis[i].Before(start) })
	}
	hi := len(m.axis)
	if !end.IsZero() {
		hi = sort.Search(len(m.axis), func(i int) bool { return m.axis[i].After(end) })
	}
	if lo > hi {
		return nil
	}
	return m.axis[lo:hi]
}

// Cursor walks one symbol's series along a shared timestamp axis. Advance
// must be called with non-decreasing timestamps.
type Cursor struct {
	s   *Series
	idx int // last bar at or before the current axis timestamp, -1 before any
}

// Cursor returns a fresh cursor for symbol, or false if unknown.
func (m *MultiSeries) Cursor(symbol string) (*Cursor, bool) {
	s, ok := m.series[symbol]
	if !ok {
		return nil, false
	}
	return &Cursor{s: s, idx: -1}, true
}

// Advance moves the cursor to ts. It returns the bar stamped exactly ts and
// true, or the zero Bar and false when the symbol has no bar at ts (a gap).
func (c *Cursor) Advance(ts time.Time) (Bar, bool) {
	for c.idx+1 < c.s.Len() && !c.s.Bar(c.idx+1).Time.After(ts) {
		c.idx++
	}
	if c.idx >= 0 && c.s.Bar(c.idx).Time.Equal(ts) {
		return c.s.Bar(c.idx), true
	}
	return Bar{}, false
}

// Window returns the bars seen so far, ending at the cursor's position.
// Shared backing array; read-only. Empty before the first bar.
func (c *Cursor) Window() []Bar {
	return c.s.Bars()[:c.idx+1]
}

// LastClose returns the most recent close at or before the cursor position,
// or false before the first bar. Used to carry position values across gaps.
func (c *Cursor) LastClose() (float64, bool) {
	if c.idx < 0 {
		return 0, false
	}
	return c.s.Bar(c.idx).Close, true
}
