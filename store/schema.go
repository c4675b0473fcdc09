package store

// SQLite keeps timestamps as TEXT; rows are normalized through
// dataset.ParseTime on read so malformed values fail the run instead
// of silently zeroing.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS conversions (
	conv_id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	conv_time TEXT NOT NULL,
	revenue REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS session_sources (
	session_id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	channel_name TEXT NOT NULL,
	event_time TEXT NOT NULL,
	event_date TEXT NOT NULL,
	holder_engagement INTEGER NOT NULL,
	closer_engagement INTEGER NOT NULL,
	impression_interaction INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS session_costs (
	session_id TEXT PRIMARY KEY,
	cost REAL
);

CREATE TABLE IF NOT EXISTS attribution_customer_journey (
	conv_id TEXT NOT NULL,
	session_id TEXT NOT NULL,
	ihc REAL
);

CREATE TABLE IF NOT EXISTS channel_reporting (
	channel_name TEXT NOT NULL,
	date TEXT NOT NULL,
	cost REAL NOT NULL,
	ihc REAL NOT NULL,
	ihc_revenue REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_session_sources_user ON session_sources(user_id);
CREATE INDEX IF NOT EXISTS idx_conversions_user ON conversions(user_id);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS conversions (
	conv_id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	conv_time TIMESTAMPTZ NOT NULL,
	revenue DOUBLE PRECISION NOT NULL
);

CREATE TABLE IF NOT EXISTS session_sources (
	session_id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	channel_name TEXT NOT NULL,
	event_time TIMESTAMPTZ NOT NULL,
	event_date DATE NOT NULL,
	holder_engagement BOOLEAN NOT NULL,
	closer_engagement BOOLEAN NOT NULL,
	impression_interaction BOOLEAN NOT NULL
);

CREATE TABLE IF NOT EXISTS session_costs (
	session_id TEXT PRIMARY KEY,
	cost DOUBLE PRECISION
);

CREATE TABLE IF NOT EXISTS attribution_customer_journey (
	conv_id TEXT NOT NULL,
	session_id TEXT NOT NULL,
	ihc DOUBLE PRECISION
);

CREATE TABLE IF NOT EXISTS channel_reporting (
	channel_name TEXT NOT NULL,
	date TEXT NOT NULL,
	cost DOUBLE PRECISION NOT NULL,
	ihc DOUBLE PRECISION NOT NULL,
	ihc_revenue DOUBLE PRECISION NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_session_sources_user ON session_sources(user_id);
CREATE INDEX IF NOT EXISTS idx_conversions_user ON conversions(user_id);
`
