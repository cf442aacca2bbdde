// Package analytics reduces a run's snapshot and fill histories to summary
// performance statistics. Everything here is a pure function of its inputs.
package analytics

import (
	"math"

	"github.com/ioyy900205/quantL/exec"
	"github.com/ioyy900205/quantL/portfolio"
)

// Options scales time-dependent statistics. PeriodsPerYear is 252 for daily
// bars, 52 for weekly, 12 for monthly.
type Options struct {
	PeriodsPerYear int
}

// Report is the derived, read-only summary of one run.
type Report struct {
	TotalReturn          float64
	AnnualizedReturn     float64
	AnnualizedVolatility float64
	SharpeRatio          float64
	MaxDrawdown          float64
	WinRate              float64

	Trades        int // closing fills
	WinningTrades int

	TradeLog []*exec.Fill
}

// Analyze computes the report from the equity curve and fill log. Ratios
// that would divide by zero are defined as zero, never NaN: a flat equity
// curve has a Sharpe of 0 and a run without closing trades has a win rate
// of 0.
func Analyze(snapshots []portfolio.Snapshot, fills []*exec.Fill, opts Options) Report {
	r := Report{TradeLog: fills}
	if opts.PeriodsPerYear <= 0 {
		opts.PeriodsPerYear = 252
	}

	equity := make([]float64, len(snapshots))
	for i, s := range snapshots {
		equity[i] = s.Equity.InexactFloat64()
	}

	returns := periodReturns(equity)
	if len(equity) > 0 && equity[0] != 0 {
		r.TotalReturn = equity[len(equity)-1]/equity[0] - 1
	}

	years := float64(len(returns)) / float64(opts.PeriodsPerYear)
	if years > 0 && r.TotalReturn > -1 {
		r.AnnualizedReturn = math.Pow(1+r.TotalReturn, 1/years) - 1
	} else if r.TotalReturn <= -1 {
		r.AnnualizedReturn = -1
	}

	mean, stdev := meanStdev(returns)
	r.AnnualizedVolatility = stdev * math.Sqrt(float64(opts.PeriodsPerYear))
	if stdev > 0 {
		r.SharpeRatio = mean / stdev * math.Sqrt(float64(opts.PeriodsPerYear))
	}

	r.MaxDrawdown = maxDrawdown(equity)

	for _, f := range fills {
		if !f.Closing {
			continue
		}
		r.Trades++
		if f.RealizedPL.IsPositive() {
			r.WinningTrades++
		}
	}
	if r.Trades > 0 {
		r.WinRate = float64(r.WinningTrades) / float64(r.Trades)
	}

	return r
}

// periodReturns is r_t = equity_t/equity_{t-1} - 1. A zero prior equity
// yields a zero return for that period.
func periodReturns(equity []float64) []float64 {
	if len(equity) < 2 {
		return nil
	}
	out := make([]float64, 0, len(equity)-1)
	for i := 1; i < len(equity); i++ {
		if equity[i-1] == 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, equity[i]/equity[i-1]-1)
	}
	return out
}

// meanStdev returns the mean and sample standard deviation. Fewer than two
// observations have a stdev of zero.
func meanStdev(xs []float64) (float64, float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))
	if len(xs) < 2 {
		return mean, 0
	}

	ss := 0.0
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return mean, math.Sqrt(ss / float64(len(xs)-1))
}

// maxDrawdown is the most negative peak-to-trough equity ratio, always <= 0.
func maxDrawdown(equity []float64) float64 {
	dd := 0.0
	peak := math.Inf(-1)
	for _, e := range equity {
		if e > peak {
			peak = e
		}
		if peak > 0 {
			if d := e/peak - 1; d < dd {
				dd = d
			}
		}
	}
	return dd
}
