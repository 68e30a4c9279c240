package database

// PostgresSchema creates the journal tables in PostgreSQL
const PostgresSchema = `
CREATE TABLE IF NOT EXISTS trades (
	id             UUID PRIMARY KEY,
	account_id     UUID NOT NULL,
	trade_date     TIMESTAMPTZ NOT NULL,
	symbol         TEXT NOT NULL DEFAULT '',
	side           TEXT NOT NULL DEFAULT '',
	pnl            DOUBLE PRECISION,
	fees           DOUBLE PRECISION NOT NULL DEFAULT 0,
	r_multiple     DOUBLE PRECISION,
	playbook       TEXT NOT NULL DEFAULT '',
	emotion        TEXT NOT NULL DEFAULT '',
	asset_class    TEXT NOT NULL DEFAULT '',
	close_date     TIMESTAMPTZ,
	followed_rules BOOLEAN NOT NULL DEFAULT TRUE,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_trades_account_date ON trades (account_id, trade_date);

CREATE TABLE IF NOT EXISTS evaluation_profiles (
	id                 UUID PRIMARY KEY,
	account_id         UUID NOT NULL,
	name               TEXT NOT NULL,
	firm               TEXT NOT NULL DEFAULT '',
	account_size       DOUBLE PRECISION NOT NULL,
	daily_loss_limit   DOUBLE PRECISION NOT NULL DEFAULT 0,
	daily_loss_unit    TEXT NOT NULL DEFAULT 'abs',
	max_drawdown       DOUBLE PRECISION NOT NULL DEFAULT 0,
	max_drawdown_unit  TEXT NOT NULL DEFAULT 'abs',
	profit_target      DOUBLE PRECISION NOT NULL DEFAULT 0,
	profit_target_unit TEXT NOT NULL DEFAULT 'abs',
	evaluation_days    INTEGER NOT NULL DEFAULT 0,
	min_trading_days   INTEGER NOT NULL DEFAULT 0,
	start_date         TIMESTAMPTZ,
	trailing_dd        BOOLEAN NOT NULL DEFAULT FALSE,
	active             BOOLEAN NOT NULL DEFAULT TRUE,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS statistics_snapshots (
	id               UUID PRIMARY KEY,
	account_id       UUID NOT NULL,
	computed_at      TIMESTAMPTZ NOT NULL,
	range_start      TIMESTAMPTZ NOT NULL,
	range_end        TIMESTAMPTZ NOT NULL,
	total_trades     INTEGER NOT NULL,
	total_pnl_cents  BIGINT NOT NULL,
	win_rate         DOUBLE PRECISION NOT NULL,
	sharpe_ratio     DOUBLE PRECISION NOT NULL,
	max_drawdown_pct DOUBLE PRECISION NOT NULL,
	risk_of_ruin     DOUBLE PRECISION NOT NULL,
	full_results     JSONB NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_account ON statistics_snapshots (account_id, computed_at DESC);
`

// SQLiteSchema creates the journal tables in SQLite
const SQLiteSchema = `
CREATE TABLE IF NOT EXISTS trades (
	id             TEXT PRIMARY KEY,
	account_id     TEXT NOT NULL,
	trade_date     TIMESTAMP NOT NULL,
	symbol         TEXT NOT NULL DEFAULT '',
	side           TEXT NOT NULL DEFAULT '',
	pnl            REAL,
	fees           REAL NOT NULL DEFAULT 0,
	r_multiple     REAL,
	playbook       TEXT NOT NULL DEFAULT '',
	emotion        TEXT NOT NULL DEFAULT '',
	asset_class    TEXT NOT NULL DEFAULT '',
	close_date     TIMESTAMP,
	followed_rules INTEGER NOT NULL DEFAULT 1,
	created_at     TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_trades_account_date ON trades (account_id, trade_date);

CREATE TABLE IF NOT EXISTS evaluation_profiles (
	id                 TEXT PRIMARY KEY,
	account_id         TEXT NOT NULL,
	name               TEXT NOT NULL,
	firm               TEXT NOT NULL DEFAULT '',
	account_size       REAL NOT NULL,
	daily_loss_limit   REAL NOT NULL DEFAULT 0,
	daily_loss_unit    TEXT NOT NULL DEFAULT 'abs',
	max_drawdown       REAL NOT NULL DEFAULT 0,
	max_drawdown_unit  TEXT NOT NULL DEFAULT 'abs',
	profit_target      REAL NOT NULL DEFAULT 0,
	profit_target_unit TEXT NOT NULL DEFAULT 'abs',
	evaluation_days    INTEGER NOT NULL DEFAULT 0,
	min_trading_days   INTEGER NOT NULL DEFAULT 0,
	start_date         TIMESTAMP,
	trailing_dd        INTEGER NOT NULL DEFAULT 0,
	active             INTEGER NOT NULL DEFAULT 1,
	created_at         TIMESTAMP NOT NULL,
	updated_at         TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS statistics_snapshots (
	id               TEXT PRIMARY KEY,
	account_id       TEXT NOT NULL,
	computed_at      TIMESTAMP NOT NULL,
	range_start      TIMESTAMP NOT NULL,
	range_end        TIMESTAMP NOT NULL,
	total_trades     INTEGER NOT NULL,
	total_pnl_cents  INTEGER NOT NULL,
	win_rate         REAL NOT NULL,
	sharpe_ratio     REAL NOT NULL,
	max_drawdown_pct REAL NOT NULL,
	risk_of_ruin     REAL NOT NULL,
	full_results     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_snapshots_account ON statistics_snapshots (account_id, computed_at);
`
