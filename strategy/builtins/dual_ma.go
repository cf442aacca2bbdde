// Package builtins provides the built-in strategy implementations that ship
// with quantL: dual moving-average crossover, momentum, and mean reversion.
package builtins

import (
	"github.com/ioyy900205/quantL/indicators"
	"github.com/ioyy900205/quantL/strategy"
)

// Compile-time interface checks.
var (
	_ strategy.Strategy = (*DualMA)(nil)
	_ strategy.Strategy = (*Momentum)(nil)
	_ strategy.Strategy = (*MeanReversion)(nil)
)

// RegisterAll registers every builtin strategy with r.
func RegisterAll(r *strategy.Registry) {
	r.Register("dual-ma", func() strategy.Strategy { return &DualMA{} })
	r.Register("momentum", func() strategy.Strategy { return &Momentum{} })
	r.Register("mean-reversion", func() strategy.Strategy { return &MeanReversion{} })
}

// DualMA buys when the short moving average crosses above the long one and
// exits when it crosses back below. Signal columns "ma_short"/"ma_long" are
// used when the window carries them; otherwise the averages are computed
// from the window's bars.
type DualMA struct {
	shortWindow  int
	longWindow   int
	positionSize float64
}

func (s *DualMA) Name() string { return "dual-ma" }

func (s *DualMA) Init(p strategy.Params) error {
	short, ok := p.Int("short_window")
	if !ok {
		return &strategy.ConfigurationError{Strategy: s.Name(), Param: "short_window", Reason: "required integer"}
	}
	long, ok := p.Int("long_window")
	if !ok {
		return &strategy.ConfigurationError{Strategy: s.Name(), Param: "long_window", Reason: "required integer"}
	}
	if short <= 0 {
		return &strategy.ConfigurationError{Strategy: s.Name(), Param: "short_window", Reason: "must be positive"}
	}
	if short >= long {
		return &strategy.ConfigurationError{Strategy: s.Name(), Param: "short_window", Reason: "must be less than long_window"}
	}

	size := 0.1
	if v, ok := p.Float("position_size"); ok {
		size = v
	}
	if size <= 0 || size > 1 {
		return &strategy.ConfigurationError{Strategy: s.Name(), Param: "position_size", Reason: "must be in (0, 1]"}
	}

	s.shortWindow = short
	s.longWindow = long
	s.positionSize = size
	return nil
}

// diffAt computes shortMA - longMA over the first n bars of the window.
func (s *DualMA) diffAt(w strategy.Window, n int) (float64, error) {
	if shortCol, ok := w.Signal("ma_short"); ok {
		if longCol, ok := w.Signal("ma_long"); ok && n <= len(shortCol) && n <= len(longCol) {
			return shortCol[n-1] - longCol[n-1], nil
		}
	}

	short, err := indicators.SMA(w.Bars[:n], s.shortWindow)
	if err != nil {
		return 0, err
	}
	long, err := indicators.SMA(w.Bars[:n], s.longWindow)
	if err != nil {
		return 0, err
	}
	return short - long, nil
}

func (s *DualMA) OnBar(w strategy.Window) ([]strategy.Intent, error) {
	n := len(w.Bars)
	if n < 2 {
		return nil, nil
	}

	cur, err := s.diffAt(w, n)
	if err != nil {
		return nil, err
	}
	prev, err := s.diffAt(w, n-1)
	if err != nil {
		return nil, err
	}

	last := w.Last()
	switch {
	case cur > 0 && prev <= 0:
		return []strategy.Intent{{
			Symbol: w.Symbol,
			Time:   last.Time,
			Side:   strategy.Buy,
			Weight: s.positionSize,
		}}, nil
	case cur < 0 && prev >= 0:
		return []strategy.Intent{{
			Symbol: w.Symbol,
			Time:   last.Time,
			Side:   strategy.Sell,
			Weight: s.positionSize,
		}}, nil
	}
	return nil, nil
}

func (s *DualMA) Finalize() error { return nil }
