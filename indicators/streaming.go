package indicators

import (
	"fmt"
	"math"

	"github.com/ioyy900205/quantL/market"
)

// SimpleMA is a streaming simple moving average over closing prices.
type SimpleMA struct {
	period int
	closes []float64
}

// NewSMA creates a streaming SMA with the given period.
func NewSMA(period int) *SimpleMA {
	return &SimpleMA{
		period: period,
		closes: make([]float64, 0, period),
	}
}

func (m *SimpleMA) Name() string {
	return fmt.Sprintf("SMA(%d)", m.period)
}

func (m *SimpleMA) Warmup() int {
	return m.period
}

func (m *SimpleMA) Reset() {
	m.closes = m.closes[:0]
}

func (m *SimpleMA) Update(b market.Bar) {
	m.closes = append(m.closes, b.Close)
	if len(m.closes) > m.period {
		m.closes = m.closes[1:]
	}
}

func (m *SimpleMA) Ready() bool {
	return len(m.closes) >= m.period
}

func (m *SimpleMA) Value() float64 {
	if len(m.closes) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range m.closes {
		sum += c
	}
	return sum / float64(len(m.closes))
}

// ExponentialMA is a streaming exponential moving average over closing
// prices, seeded with the SMA of the first period bars.
type ExponentialMA struct {
	period     int
	multiplier float64
	ema        float64
	count      int
	warmupSum  float64
}

// NewEMA creates a streaming EMA with the given period.
func NewEMA(period int) *ExponentialMA {
	return &ExponentialMA{
		period:     period,
		multiplier: 2.0 / float64(period+1),
	}
}

func (e *ExponentialMA) Name() string {
	return fmt.Sprintf("EMA(%d)", e.period)
}

func (e *ExponentialMA) Warmup() int {
	return e.period
}

func (e *ExponentialMA) Reset() {
	e.ema = 0
	e.count = 0
	e.warmupSum = 0
}

func (e *ExponentialMA) Update(b market.Bar) {
	if e.count < e.period {
		e.warmupSum += b.Close
		e.count++
		e.ema = e.warmupSum / float64(e.count)
		return
	}
	e.ema = (b.Close-e.ema)*e.multiplier + e.ema
}

func (e *ExponentialMA) Ready() bool {
	return e.count >= e.period
}

func (e *ExponentialMA) Value() float64 {
	return e.ema
}

// RateOfChange is a streaming rate of change over closing prices:
// close[t]/close[t-lookback] - 1. During warmup the earliest seen close is
// the base.
type RateOfChange struct {
	lookback int
	closes   []float64
}

// NewROC creates a streaming rate of change with the given lookback.
func NewROC(lookback int) *RateOfChange {
	return &RateOfChange{
		lookback: lookback,
		closes:   make([]float64, 0, lookback+1),
	}
}

func (r *RateOfChange) Name() string {
	return fmt.Sprintf("ROC(%d)", r.lookback)
}

func (r *RateOfChange) Warmup() int {
	return r.lookback + 1
}

func (r *RateOfChange) Reset() {
	r.closes = r.closes[:0]
}

func (r *RateOfChange) Update(b market.Bar) {
	r.closes = append(r.closes, b.Close)
	if len(r.closes) > r.lookback+1 {
		r.closes = r.closes[1:]
	}
}

func (r *RateOfChange) Ready() bool {
	return len(r.closes) >= r.lookback+1
}

func (r *RateOfChange) Value() float64 {
	if len(r.closes) == 0 || r.closes[0] == 0 {
		return 0
	}
	return r.closes[len(r.closes)-1]/r.closes[0] - 1
}

// RelativeStrength is a streaming Wilder RSI over closing prices. During
// warmup the average gain and loss are plain means of the available
// changes; afterwards they are Wilder-smoothed.
type RelativeStrength struct {
	period    int
	prevClose float64
	hasPrev   bool
	count     int
	avgGain   float64
	avgLoss   float64
}

// NewRSI creates a streaming RSI with the given period.
func NewRSI(period int) *RelativeStrength {
	return &RelativeStrength{period: period}
}

func (r *RelativeStrength) Name() string {
	return fmt.Sprintf("RSI(%d)", r.period)
}

func (r *RelativeStrength) Warmup() int {
	// The first close seeds prevClose; changes start at the second bar.
	return r.period + 1
}

func (r *RelativeStrength) Reset() {
	r.prevClose = 0
	r.hasPrev = false
	r.count = 0
	r.avgGain = 0
	r.avgLoss = 0
}

func (r *RelativeStrength) Update(b market.Bar) {
	if !r.hasPrev {
		r.prevClose = b.Close
		r.hasPrev = true
		return
	}

	change := b.Close - r.prevClose
	r.prevClose = b.Close
	gain, loss := 0.0, 0.0
	if change > 0 {
		gain = change
	} else {
		loss = -change
	}

	if r.count < r.period {
		r.avgGain = (r.avgGain*float64(r.count) + gain) / float64(r.count+1)
		r.avgLoss = (r.avgLoss*float64(r.count) + loss) / float64(r.count+1)
		r.count++
		return
	}
	r.avgGain = (r.avgGain*float64(r.period-1) + gain) / float64(r.period)
	r.avgLoss = (r.avgLoss*float64(r.period-1) + loss) / float64(r.period)
}

func (r *RelativeStrength) Ready() bool {
	return r.count >= r.period
}

func (r *RelativeStrength) Value() float64 {
	if r.count == 0 {
		return 50
	}
	if r.avgLoss == 0 {
		if r.avgGain == 0 {
			return 50
		}
		return 100
	}
	rs := r.avgGain / r.avgLoss
	return 100 - 100/(1+rs)
}

// AverageTrueRange is a streaming Wilder ATR. True range needs a previous
// bar, so the first update seeds state and produces no value. During warmup
// the value is the mean of the available true ranges.
type AverageTrueRange struct {
	period  int
	prev    market.Bar
	hasPrev bool
	count   int
	atr     float64
}

// NewATR creates a streaming ATR with the given period.
func NewATR(period int) *AverageTrueRange {
	return &AverageTrueRange{period: period}
}

func (a *AverageTrueRange) Name() string {
	return fmt.Sprintf("ATR(%d)", a.period)
}

func (a *AverageTrueRange) Warmup() int {
	return a.period + 1
}

func (a *AverageTrueRange) Reset() {
	a.prev = market.Bar{}
	a.hasPrev = false
	a.count = 0
	a.atr = 0
}

func (a *AverageTrueRange) Update(b market.Bar) {
	if !a.hasPrev {
		a.prev = b
		a.hasPrev = true
		return
	}

	tr := trueRange(b, a.prev)
	a.prev = b

	if a.count < a.period {
		a.atr = (a.atr*float64(a.count) + tr) / float64(a.count+1)
		a.count++
		return
	}
	a.atr = (a.atr*float64(a.period-1) + tr) / float64(a.period)
}

func (a *AverageTrueRange) Ready() bool {
	return a.count >= a.period
}

func (a *AverageTrueRange) Value() float64 {
	return a.atr
}

func trueRange(cur, prev market.Bar) float64 {
	highLow := cur.High - cur.Low
	highClose := math.Abs(cur.High - prev.Close)
	lowClose := math.Abs(cur.Low - prev.Close)
	return math.Max(highLow, math.Max(highClose, lowClose))
}
