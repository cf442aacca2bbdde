package builtins

import (
	"github.com/ioyy900205/quantL/indicators"
	"github.com/ioyy900205/quantL/strategy"
)

// MeanReversion buys when price drops a configured fraction below its moving
// average and exits once price recovers to the average.
type MeanReversion struct {
	window       int
	entryDev     float64
	positionSize float64
}

func (s *MeanReversion) Name() string { return "mean-reversion" }

func (s *MeanReversion) Init(p strategy.Params) error {
	window, ok := p.Int("window")
	if !ok {
		return &strategy.ConfigurationError{Strategy: s.Name(), Param: "window", Reason: "required integer"}
	}
	if window <= 0 {
		return &strategy.ConfigurationError{Strategy: s.Name(), Param: "window", Reason: "must be positive"}
	}

	entry := 0.05
	if v, ok := p.Float("entry_deviation"); ok {
		entry = v
	}
	if entry <= 0 {
		return &strategy.ConfigurationError{Strategy: s.Name(), Param: "entry_deviation", Reason: "must be positive"}
	}

	size := 0.1
	if v, ok := p.Float("position_size"); ok {
		size = v
	}
	if size <= 0 || size > 1 {
		return &strategy.ConfigurationError{Strategy: s.Name(), Param: "position_size", Reason: "must be in (0, 1]"}
	}

	s.window = window
	s.entryDev = entry
	s.positionSize = size
	return nil
}

// deviationAt is (close - SMA) / SMA over the first n bars.
func (s *MeanReversion) deviationAt(w strategy.Window, n int) (float64, error) {
	ma, err := indicators.SMA(w.Bars[:n], s.window)
	if err != nil {
		return 0, err
	}
	if ma == 0 {
		return 0, nil
	}
	return (w.Bars[n-1].Close - ma) / ma, nil
}

func (s *MeanReversion) OnBar(w strategy.Window) ([]strategy.Intent, error) {
	n := len(w.Bars)
	if n < 2 {
		return nil, nil
	}

	cur, err := s.deviationAt(w, n)
	if err != nil {
		return nil, err
	}
	prev, err := s.deviationAt(w, n-1)
	if err != nil {
		return nil, err
	}

	last := w.Last()
	switch {
	case cur < -s.entryDev && prev >= -s.entryDev:
		return []strategy.Intent{{
			Symbol: w.Symbol,
			Time:   last.Time,
			Side:   strategy.Buy,
			Weight: s.positionSize,
		}}, nil
	case cur >= 0 && prev < 0:
		// Recovered to the mean: exit only. Weight zero targets flat.
		return []strategy.Intent{{
			Symbol: w.Symbol,
			Time:   last.Time,
			Side:   strategy.Sell,
		}}, nil
	}
	return nil, nil
}

func (s *MeanReversion) Finalize() error { return nil }
