package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

// CSVJournal writes fills and the equity curve to two CSV files. Run
// summaries are not persisted in CSV form; use the SQLite journal when runs
// need to be listed or re-rendered later.
type CSVJournal struct {
	fills  *csv.Writer
	equity *csv.Writer
	ff, ef *os.File
}

func NewCSV(fillsPath, equityPath string) (*CSVJournal, error) {
	ff, err := os.Create(fillsPath)
	if err != nil {
		return nil, err
	}
	ef, err := os.Create(equityPath)
	if err != nil {
		ff.Close()
		return nil, err
	}

	fw := csv.NewWriter(ff)
	ew := csv.NewWriter(ef)

	fw.Write([]string{"fill_id", "run_id", "symbol", "time", "side", "quantity", "price", "commission", "slippage_cost", "reason", "realized_pl", "closing"})
	fw.Flush()
	ew.Write([]string{"run_id", "time", "cash", "equity", "positions"})
	ew.Flush()

	if err := firstErr(fw.Error(), ew.Error()); err != nil {
		ff.Close()
		ef.Close()
		return nil, err
	}

	return &CSVJournal{fills: fw, equity: ew, ff: ff, ef: ef}, nil
}

func firstErr(a, b error) error {
	if a != nil {
		return a
	}
	return b
}

func (j *CSVJournal) RecordRun(RunRecord) error { return nil }

func (j *CSVJournal) RecordFill(f FillRecord) error {
	j.fills.Write([]string{
		f.FillID,
		f.RunID,
		f.Symbol,
		f.Time.Format(time.RFC3339),
		f.Side,
		fmtFloat(f.Quantity),
		fmtFloat(f.Price),
		fmtFloat(f.Commission),
		fmtFloat(f.SlippageCost),
		f.Reason,
		fmtFloat(f.RealizedPL),
		strconv.FormatBool(f.Closing),
	})
	j.fills.Flush()
	return j.fills.Error()
}

func (j *CSVJournal) RecordSnapshot(s SnapshotRecord) error {
	j.equity.Write([]string{
		s.RunID,
		s.Time.Format(time.RFC3339),
		fmtFloat(s.Cash),
		fmtFloat(s.Equity),
		strconv.Itoa(s.Positions),
	})
	j.equity.Flush()
	return j.equity.Error()
}

func (j *CSVJournal) Close() error {
	j.fills.Flush()
	j.equity.Flush()

	err := j.ff.Close()
	if cerr := j.ef.Close(); err == nil {
		err = cerr
	}
	return err
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
