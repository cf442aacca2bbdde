// Package journal persists backtest results (run summaries, fills, equity
// snapshots) so past runs can be listed and re-rendered without re-running.
package journal

import (
	"time"

	"github.com/ioyy900205/quantL/analytics"
	"github.com/ioyy900205/quantL/backtest"
)

// RunRecord mirrors the runs table: one row per completed backtest.
type RunRecord struct {
	RunID    string
	Created  time.Time
	Strategy string
	Symbols  string
	Start    time.Time
	End      time.Time
	Steps    int

	InitialCapital float64
	FinalEquity    float64

	TotalReturn          float64
	AnnualizedReturn     float64
	AnnualizedVolatility float64
	Sharpe               float64
	MaxDrawdown          float64
	WinRate              float64
	Trades               int
}

// FillRecord mirrors the fills table.
type FillRecord struct {
	FillID       string
	RunID        string
	Symbol       string
	Time         time.Time
	Side         string
	Quantity     float64
	Price        float64
	Commission   float64
	SlippageCost float64
	Reason       string
	RealizedPL   float64
	Closing      bool
}

// SnapshotRecord mirrors the snapshots table: the equity curve, one row per
// step. Positions is the count of open positions at that step.
type SnapshotRecord struct {
	RunID     string
	Time      time.Time
	Cash      float64
	Equity    float64
	Positions int
}

// Journal is the persistence boundary. Implementations: SQLite and CSV.
type Journal interface {
	RecordRun(RunRecord) error
	RecordFill(FillRecord) error
	RecordSnapshot(SnapshotRecord) error
	Close() error
}

// BuildRecords flattens a run result and its report into journal rows.
func BuildRecords(runID string, created time.Time, symbols string, cfg backtest.Config, res *backtest.Result, rep analytics.Report) (RunRecord, []FillRecord, []SnapshotRecord) {
	run := RunRecord{
		RunID:    runID,
		Created:  created,
		Strategy: res.Strategy,
		Symbols:  symbols,
		Start:    res.Start,
		End:      res.End,
		Steps:    res.Steps,

		InitialCapital: cfg.InitialCapital,
		FinalEquity:    res.FinalEquity.InexactFloat64(),

		TotalReturn:          rep.TotalReturn,
		AnnualizedReturn:     rep.AnnualizedReturn,
		AnnualizedVolatility: rep.AnnualizedVolatility,
		Sharpe:               rep.SharpeRatio,
		MaxDrawdown:          rep.MaxDrawdown,
		WinRate:              rep.WinRate,
		Trades:               rep.Trades,
	}

	fills := make([]FillRecord, 0, len(res.Fills))
	for _, f := range res.Fills {
		fills = append(fills, FillRecord{
			FillID:       f.ID,
			RunID:        runID,
			Symbol:       f.Symbol,
			Time:         f.Time,
			Side:         f.Side.String(),
			Quantity:     f.Quantity.InexactFloat64(),
			Price:        f.Price.InexactFloat64(),
			Commission:   f.Commission.InexactFloat64(),
			SlippageCost: f.SlippageCost.InexactFloat64(),
			Reason:       f.Reason,
			RealizedPL:   f.RealizedPL.InexactFloat64(),
			Closing:      f.Closing,
		})
	}

	snaps := make([]SnapshotRecord, 0, len(res.Snapshots))
	for _, s := range res.Snapshots {
		snaps = append(snaps, SnapshotRecord{
			RunID:     runID,
			Time:      s.Time,
			Cash:      s.Cash.InexactFloat64(),
			Equity:    s.Equity.InexactFloat64(),
			Positions: len(s.Positions),
		})
	}

	return run, fills, snaps
}

// Record writes a full run to j: the summary row, then every fill and
// snapshot in order.
func Record(j Journal, run RunRecord, fills []FillRecord, snaps []SnapshotRecord) error {
	if err := j.RecordRun(run); err != nil {
		return err
	}
	for _, f := range fills {
		if err := j.RecordFill(f); err != nil {
			return err
		}
	}
	for _, s := range snaps {
		if err := j.RecordSnapshot(s); err != nil {
			return err
		}
	}
	return nil
}
