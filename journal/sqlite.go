package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite stores runs, fills and snapshots in a single database file.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordRun(r RunRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, created, strategy, symbols, start_time, end_time, steps,
		 initial_capital, final_equity, total_return, annualized_return,
		 annualized_volatility, sharpe, max_drawdown, win_rate, trades)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Created, r.Strategy, r.Symbols, r.Start, r.End, r.Steps,
		r.InitialCapital, r.FinalEquity, r.TotalReturn, r.AnnualizedReturn,
		r.AnnualizedVolatility, r.Sharpe, r.MaxDrawdown, r.WinRate, r.Trades,
	)
	return err
}

func (j *SQLite) RecordFill(f FillRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO fills
		(fill_id, run_id, symbol, time, side, quantity, price, commission,
		 slippage_cost, reason, realized_pl, closing)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		f.FillID, f.RunID, f.Symbol, f.Time, f.Side, f.Quantity, f.Price,
		f.Commission, f.SlippageCost, f.Reason, f.RealizedPL, f.Closing,
	)
	return err
}

func (j *SQLite) RecordSnapshot(s SnapshotRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO snapshots (run_id, time, cash, equity, positions)
		VALUES (?, ?, ?, ?, ?)`,
		s.RunID, s.Time, s.Cash, s.Equity, s.Positions,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
