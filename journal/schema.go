// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	strategy TEXT NOT NULL,
	ticker TEXT NOT NULL,
	size REAL NOT NULL,
	initial_cash REAL NOT NULL,
	params TEXT NOT NULL,
	metrics TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL,
	side TEXT NOT NULL,
	size REAL NOT NULL,
	entry_time DATETIME NOT NULL,
	entry_price REAL NOT NULL,
	exit_time DATETIME,
	exit_price REAL,
	profit REAL,
	open INTEGER NOT NULL,
	comment TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS cash (
	run_id TEXT NOT NULL,
	time DATETIME NOT NULL,
	cash REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_run ON trades(run_id);
CREATE INDEX IF NOT EXISTS idx_cash_run ON cash(run_id, time);
`
