package builtins

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ioyy900205/quantL/market"
	"github.com/ioyy900205/quantL/strategy"
)

func window(closes ...float64) strategy.Window {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	bars := make([]market.Bar, len(closes))
	for i, c := range closes {
		bars[i] = market.Bar{
			Symbol: "TEST",
			Time:   base.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		}
	}
	return strategy.Window{Symbol: "TEST", Bars: bars}
}

func TestDualMAInit(t *testing.T) {
	cases := []struct {
		name   string
		params strategy.Params
		param  string
	}{
		{"missing short", strategy.Params{"long_window": 20}, "short_window"},
		{"missing long", strategy.Params{"short_window": 5}, "long_window"},
		{"short not positive", strategy.Params{"short_window": 0, "long_window": 20}, "short_window"},
		{"short >= long", strategy.Params{"short_window": 20, "long_window": 20}, "short_window"},
		{"bad size", strategy.Params{"short_window": 5, "long_window": 20, "position_size": 1.5}, "position_size"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := (&DualMA{}).Init(tc.params)
			var ce *strategy.ConfigurationError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tc.param, ce.Param)
		})
	}

	s := &DualMA{}
	require.NoError(t, s.Init(strategy.Params{"short_window": 5, "long_window": 20}))
	assert.Equal(t, 0.1, s.positionSize)
}

func TestDualMACrossover(t *testing.T) {
	s := &DualMA{}
	require.NoError(t, s.Init(strategy.Params{"short_window": 2, "long_window": 4, "position_size": 0.5}))

	t.Run("bull cross emits buy", func(t *testing.T) {
		// Flat then up: diff is 0 at the previous bar and positive now.
		w := window(10, 10, 10, 10, 12)
		intents, err := s.OnBar(w)
		require.NoError(t, err)
		require.Len(t, intents, 1)
		assert.Equal(t, strategy.Buy, intents[0].Side)
		assert.Equal(t, 0.5, intents[0].Weight)
		assert.Equal(t, w.Last().Time, intents[0].Time)
	})

	t.Run("bear cross emits sell", func(t *testing.T) {
		w := window(10, 10, 10, 10, 8)
		intents, err := s.OnBar(w)
		require.NoError(t, err)
		require.Len(t, intents, 1)
		assert.Equal(t, strategy.Sell, intents[0].Side)
	})

	t.Run("no cross is silent", func(t *testing.T) {
		intents, err := s.OnBar(window(10, 11, 12, 13, 14))
		require.NoError(t, err)
		assert.Empty(t, intents)
	})

	t.Run("single bar is silent", func(t *testing.T) {
		intents, err := s.OnBar(window(10))
		require.NoError(t, err)
		assert.Empty(t, intents)
	})

	t.Run("stateless across calls", func(t *testing.T) {
		w := window(10, 10, 10, 10, 12)
		first, err := s.OnBar(w)
		require.NoError(t, err)
		second, err := s.OnBar(w)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestDualMAUsesSignalColumns(t *testing.T) {
	s := &DualMA{}
	require.NoError(t, s.Init(strategy.Params{"short_window": 2, "long_window": 4}))

	// Prices alone would not cross; the precomputed columns do.
	w := window(10, 10, 10, 10, 10)
	w.Signals = map[string][]float64{
		"ma_short": {9, 9, 9, 9, 11},
		"ma_long":  {10, 10, 10, 10, 10},
	}
	intents, err := s.OnBar(w)
	require.NoError(t, err)
	require.Len(t, intents, 1)
	assert.Equal(t, strategy.Buy, intents[0].Side)
}

func TestMomentum(t *testing.T) {
	t.Run("init requires lookback", func(t *testing.T) {
		err := (&Momentum{}).Init(strategy.Params{})
		var ce *strategy.ConfigurationError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, "lookback", ce.Param)
	})

	s := &Momentum{}
	require.NoError(t, s.Init(strategy.Params{"lookback": 2, "threshold": 0.05}))

	t.Run("buy on upward threshold cross", func(t *testing.T) {
		// ROC goes 0 -> +0.2 across the last bar.
		intents, err := s.OnBar(window(10, 10, 10, 12))
		require.NoError(t, err)
		require.Len(t, intents, 1)
		assert.Equal(t, strategy.Buy, intents[0].Side)
	})

	t.Run("sell on downward threshold cross", func(t *testing.T) {
		intents, err := s.OnBar(window(10, 10, 10, 9))
		require.NoError(t, err)
		require.Len(t, intents, 1)
		assert.Equal(t, strategy.Sell, intents[0].Side)
	})

	t.Run("inside the band is silent", func(t *testing.T) {
		intents, err := s.OnBar(window(10, 10, 10, 10.2))
		require.NoError(t, err)
		assert.Empty(t, intents)
	})
}

func TestMeanReversion(t *testing.T) {
	s := &MeanReversion{}
	require.NoError(t, s.Init(strategy.Params{"window": 3, "entry_deviation": 0.05}))

	t.Run("buy on dip below the mean", func(t *testing.T) {
		// Deviation moves from 0 to about -6.9%.
		intents, err := s.OnBar(window(10, 10, 10, 9))
		require.NoError(t, err)
		require.Len(t, intents, 1)
		assert.Equal(t, strategy.Buy, intents[0].Side)
		assert.Equal(t, 0.1, intents[0].Weight)
	})

	t.Run("exit on recovery to the mean", func(t *testing.T) {
		intents, err := s.OnBar(window(10, 10, 10, 9, 10.5))
		require.NoError(t, err)
		require.Len(t, intents, 1)
		assert.Equal(t, strategy.Sell, intents[0].Side)
		assert.Zero(t, intents[0].Weight)
	})
}

func TestRegisterAll(t *testing.T) {
	r := strategy.NewRegistry()
	RegisterAll(r)
	assert.Equal(t, []string{"dual-ma", "mean-reversion", "momentum"}, r.List())

	s, err := r.New("dual-ma", strategy.Params{"short_window": 5, "long_window": 20})
	require.NoError(t, err)
	assert.Equal(t, "dual-ma", s.Name())
}
