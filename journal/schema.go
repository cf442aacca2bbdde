package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	strategy TEXT NOT NULL,
	symbols TEXT NOT NULL,
	start_time DATETIME,
	end_time DATETIME,
	steps INTEGER NOT NULL,
	initial_capital REAL NOT NULL,
	final_equity REAL NOT NULL,
	total_return REAL NOT NULL,
	annualized_return REAL NOT NULL,
	annualized_volatility REAL NOT NULL,
	sharpe REAL NOT NULL,
	max_drawdown REAL NOT NULL,
	win_rate REAL NOT NULL,
	trades INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS fills (
	fill_id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL,
	symbol TEXT NOT NULL,
	time DATETIME NOT NULL,
	side TEXT NOT NULL,
	quantity REAL NOT NULL,
	price REAL NOT NULL,
	commission REAL NOT NULL,
	slippage_cost REAL NOT NULL,
	reason TEXT NOT NULL,
	realized_pl REAL NOT NULL,
	closing INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshots (
	run_id TEXT NOT NULL,
	time DATETIME NOT NULL,
	cash REAL NOT NULL,
	equity REAL NOT NULL,
	positions INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_fills_run ON fills(run_id, time);
CREATE INDEX IF NOT EXISTS idx_snapshots_run ON snapshots(run_id, time);
`
