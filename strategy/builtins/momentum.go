package builtins

import (
	"github.com/ioyy900205/quantL/indicators"
	"github.com/ioyy900205/quantL/strategy"
)

// Momentum buys when the rate of change over a lookback crosses above a
// positive threshold and exits when it crosses below the negative threshold.
type Momentum struct {
	lookback     int
	threshold    float64
	positionSize float64
}

func (s *Momentum) Name() string { return "momentum" }

func (s *Momentum) Init(p strategy.Params) error {
	lookback, ok := p.Int("lookback")
	if !ok {
		return &strategy.ConfigurationError{Strategy: s.Name(), Param: "lookback", Reason: "required integer"}
	}
	if lookback <= 0 {
		return &strategy.ConfigurationError{Strategy: s.Name(), Param: "lookback", Reason: "must be positive"}
	}

	threshold := 0.02
	if v, ok := p.Float("threshold"); ok {
		threshold = v
	}
	if threshold <= 0 {
		return &strategy.ConfigurationError{Strategy: s.Name(), Param: "threshold", Reason: "must be positive"}
	}

	size := 0.1
	if v, ok := p.Float("position_size"); ok {
		size = v
	}
	if size <= 0 || size > 1 {
		return &strategy.ConfigurationError{Strategy: s.Name(), Param: "position_size", Reason: "must be in (0, 1]"}
	}

	s.lookback = lookback
	s.threshold = threshold
	s.positionSize = size
	return nil
}

func (s *Momentum) rocAt(w strategy.Window, n int) (float64, error) {
	if col, ok := w.Signal("roc"); ok && n <= len(col) {
		return col[n-1], nil
	}
	return indicators.ROC(w.Bars[:n], s.lookback)
}

func (s *Momentum) OnBar(w strategy.Window) ([]strategy.Intent, error) {
	n := len(w.Bars)
	if n < 2 {
		return nil, nil
	}

	cur, err := s.rocAt(w, n)
	if err != nil {
		return nil, err
	}
	prev, err := s.rocAt(w, n-1)
	if err != nil {
		return nil, err
	}

	last := w.Last()
	switch {
	case cur > s.threshold && prev <= s.threshold:
		return []strategy.Intent{{
			Symbol: w.Symbol,
			Time:   last.Time,
			Side:   strategy.Buy,
			Weight: s.positionSize,
		}}, nil
	case cur < -s.threshold && prev >= -s.threshold:
		return []strategy.Intent{{
			Symbol: w.Symbol,
			Time:   last.Time,
			Side:   strategy.Sell,
			Weight: s.positionSize,
		}}, nil
	}
	return nil, nil
}

func (s *Momentum) Finalize() error { return nil }
