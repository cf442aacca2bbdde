package indicators

import (
	"fmt"

	"github.com/ioyy900205/quantL/market"
)

// SMA returns the simple moving average of closing prices over the last
// period bars. During warmup (fewer bars than period) the mean of the
// available history is returned, so the value is defined from the first bar.
func SMA(bars []market.Bar, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("indicators: period must be positive, got %d", period)
	}
	if len(bars) == 0 {
		return 0, fmt.Errorf("indicators: no bars")
	}

	n := period
	if len(bars) < n {
		n = len(bars)
	}

	sum := 0.0
	for i := len(bars) - n; i < len(bars); i++ {
		sum += bars[i].Close
	}
	return sum / float64(n), nil
}

// EMA returns the exponential moving average of closing prices. The value is
// seeded with the SMA of the first period bars; during warmup it tracks the
// running mean of the available history.
func EMA(bars []market.Bar, period int) (float64, error) {
	if period <= 0 {
		return 0, fmt.Errorf("indicators: period must be positive, got %d", period)
	}
	if len(bars) == 0 {
		return 0, fmt.Errorf("indicators: no bars")
	}

	if len(bars) <= period {
		return SMA(bars, period)
	}

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += bars[i].Close
	}
	ema := sum / float64(period)

	multiplier := 2.0 / float64(period+1)
	for i := period; i < len(bars); i++ {
		ema = (bars[i].Close-ema)*multiplier + ema
	}
	return ema, nil
}

// ROC returns the rate of change of the closing price over lookback bars:
// close[t]/close[t-lookback] - 1. During warmup the earliest available close
// is used as the base.
func ROC(bars []market.Bar, lookback int) (float64, error) {
	if lookback <= 0 {
		return 0, fmt.Errorf("indicators: lookback must be positive, got %d", lookback)
	}
	if len(bars) == 0 {
		return 0, fmt.Errorf("indicators: no bars")
	}

	base := len(bars) - 1 - lookback
	if base < 0 {
		base = 0
	}
	ref := bars[base].Close
	if ref == 0 {
		return 0, fmt.Errorf("indicators: zero reference close")
	}
	return bars[len(bars)-1].Close/ref - 1, nil
}
