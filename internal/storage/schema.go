package storage

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id                TEXT PRIMARY KEY,
	created_at        TEXT NOT NULL,
	topic             TEXT NOT NULL,
	details           TEXT NOT NULL,
	primary_keyword   TEXT NOT NULL DEFAULT '',
	destination       TEXT NOT NULL DEFAULT '',
	story_mode        INTEGER NOT NULL DEFAULT 0,
	passed            INTEGER NOT NULL DEFAULT 0,
	repair_rounds     INTEGER NOT NULL DEFAULT 0,
	forced_expansions INTEGER NOT NULL DEFAULT 0,
	service_calls     INTEGER NOT NULL DEFAULT 0,
	strategies        TEXT NOT NULL DEFAULT '',
	words             INTEGER NOT NULL DEFAULT 0,
	final_markdown    TEXT NOT NULL,
	report_json       TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_runs_passed ON runs(passed);
`
