package data

import (
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/ioyy900205/quantL/market"
)

// GenerateSample builds a deterministic daily random-walk series for demos
// and tests. The walk is seeded from the symbol name, so the same inputs
// always produce the same bars.
func GenerateSample(symbol string, start time.Time, n int, basePrice float64) *market.Series {
	h := fnv.New64a()
	h.Write([]byte(symbol))
	rng := rand.New(rand.NewSource(int64(h.Sum64())))

	bars := make([]market.Bar, 0, n)
	price := basePrice
	for i := 0; i < n; i++ {
		// Drifted daily move inside +-2%.
		change := (rng.Float64() - 0.48) * 0.04
		open := price
		close := price * (1 + change)
		if close < 0.01 {
			close = 0.01
		}

		high := open
		if close > high {
			high = close
		}
		high *= 1 + rng.Float64()*0.005
		low := open
		if close < low {
			low = close
		}
		low *= 1 - rng.Float64()*0.005

		bars = append(bars, market.Bar{
			Symbol: symbol,
			Time:   start.AddDate(0, 0, i),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  close,
			Volume: float64(1000 + rng.Intn(5000)),
		})
		price = close
	}

	s, err := market.NewSeries(symbol, bars)
	if err != nil {
		// Generated bars are ordered by construction.
		panic(err)
	}
	return s
}
