// journal/schema.go
package journal

// Money columns are TEXT so decimal amounts round-trip exactly; NULL keeps
// "not applicable" distinct from zero.
const Schema = `
CREATE TABLE IF NOT EXISTS positions (
	position_id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	symbol TEXT NOT NULL,
	asset_type TEXT NOT NULL,
	strategy_type TEXT NOT NULL DEFAULT '',
	entry_date TEXT NOT NULL,
	entry_minute INTEGER,
	exit_date TEXT,
	exit_price TEXT,
	realized_pl TEXT,
	unrealized_pl TEXT,
	margin_used TEXT,
	days_to_expiration INTEGER,
	expired INTEGER,
	contract_month TEXT NOT NULL DEFAULT '',
	coin TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_positions_user ON positions(user_id);
CREATE INDEX IF NOT EXISTS idx_positions_exit ON positions(user_id, exit_date);

CREATE TABLE IF NOT EXISTS cash_transactions (
	transaction_id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	amount TEXT NOT NULL,
	occurred_at TEXT NOT NULL,
	kind TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_cash_user_date ON cash_transactions(user_id, occurred_at);
`
