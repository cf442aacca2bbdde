package backtest

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ioyy900205/quantL/exec"
	"github.com/ioyy900205/quantL/portfolio"
)

// Result is the full output of one run: the fill and snapshot histories for
// analytics and journaling, plus the event log. All fields are read-only
// once the run finishes.
type Result struct {
	State    State
	Strategy string
	Start    time.Time
	End      time.Time
	Steps    int

	Fills     []*exec.Fill
	Snapshots []portfolio.Snapshot
	Events    []Event

	FinalEquity decimal.Decimal
}

func (d *Driver) result(axis []time.Time) *Result {
	r := &Result{
		State:       d.state,
		Strategy:    d.strat.Name(),
		Steps:       len(d.snapshots),
		Fills:       d.fills,
		Snapshots:   d.snapshots,
		Events:      d.events,
		FinalEquity: decimal.NewFromFloat(d.cfg.InitialCapital),
	}
	if len(axis) > 0 {
		r.Start = axis[0]
		r.End = axis[len(axis)-1]
	}
	if n := len(d.snapshots); n > 0 {
		r.FinalEquity = d.snapshots[n-1].Equity
	}
	return r
}
