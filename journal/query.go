package journal

import (
	"database/sql"
	"fmt"
)

// GetRun returns a single run summary by ID.
func (j *SQLite) GetRun(runID string) (RunRecord, error) {
	row := j.db.QueryRow(`
		SELECT run_id, created, strategy, symbols, start_time, end_time, steps,
		       initial_capital, final_equity, total_return, annualized_return,
		       annualized_volatility, sharpe, max_drawdown, win_rate, trades
		FROM runs
		WHERE run_id = ?`, runID)

	var r RunRecord
	err := row.Scan(
		&r.RunID, &r.Created, &r.Strategy, &r.Symbols, &r.Start, &r.End, &r.Steps,
		&r.InitialCapital, &r.FinalEquity, &r.TotalReturn, &r.AnnualizedReturn,
		&r.AnnualizedVolatility, &r.Sharpe, &r.MaxDrawdown, &r.WinRate, &r.Trades,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return RunRecord{}, fmt.Errorf("run %q not found", runID)
		}
		return RunRecord{}, err
	}
	return r, nil
}

// LatestRun returns the most recently created run.
func (j *SQLite) LatestRun() (RunRecord, error) {
	row := j.db.QueryRow(`SELECT run_id FROM runs ORDER BY created DESC, run_id DESC LIMIT 1`)

	var id string
	if err := row.Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return RunRecord{}, fmt.Errorf("no runs recorded")
		}
		return RunRecord{}, err
	}
	return j.GetRun(id)
}

// ListRuns returns run summaries, newest first.
func (j *SQLite) ListRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := j.db.Query(`
		SELECT run_id, created, strategy, symbols, start_time, end_time, steps,
		       initial_capital, final_equity, total_return, annualized_return,
		       annualized_volatility, sharpe, max_drawdown, win_rate, trades
		FROM runs
		ORDER BY created DESC, run_id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(
			&r.RunID, &r.Created, &r.Strategy, &r.Symbols, &r.Start, &r.End, &r.Steps,
			&r.InitialCapital, &r.FinalEquity, &r.TotalReturn, &r.AnnualizedReturn,
			&r.AnnualizedVolatility, &r.Sharpe, &r.MaxDrawdown, &r.WinRate, &r.Trades,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ListFills returns a run's fills in time order.
func (j *SQLite) ListFills(runID string) ([]FillRecord, error) {
	rows, err := j.db.Query(`
		SELECT fill_id, run_id, symbol, time, side, quantity, price, commission,
		       slippage_cost, reason, realized_pl, closing
		FROM fills
		WHERE run_id = ?
		ORDER BY time ASC, fill_id ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FillRecord
	for rows.Next() {
		var f FillRecord
		if err := rows.Scan(
			&f.FillID, &f.RunID, &f.Symbol, &f.Time, &f.Side, &f.Quantity, &f.Price,
			&f.Commission, &f.SlippageCost, &f.Reason, &f.RealizedPL, &f.Closing,
		); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// ListSnapshots returns a run's equity curve in time order.
func (j *SQLite) ListSnapshots(runID string) ([]SnapshotRecord, error) {
	rows, err := j.db.Query(`
		SELECT run_id, time, cash, equity, positions
		FROM snapshots
		WHERE run_id = ?
		ORDER BY time ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SnapshotRecord
	for rows.Next() {
		var s SnapshotRecord
		if err := rows.Scan(&s.RunID, &s.Time, &s.Cash, &s.Equity, &s.Positions); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
