package storage

import "database/sql"

// migrateV001 creates the initial recap schema. Every statement uses
// IF NOT EXISTS for idempotency.
func migrateV001(tx *sql.Tx) error {
	stmts := []string{
		// ── Tables ──────────────────────────────────────────────

		`CREATE TABLE IF NOT EXISTS runs (
			id              TEXT PRIMARY KEY,
			day             TEXT NOT NULL,
			tier            TEXT NOT NULL,
			event_count     INTEGER NOT NULL DEFAULT 0,
			collapsed_count INTEGER NOT NULL DEFAULT 0,
			focus_score     REAL NOT NULL DEFAULT 0,
			passed          BOOLEAN NOT NULL DEFAULT 0,
			created_at      DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS run_events (
			run_id        TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			seq           INTEGER NOT NULL,
			ts            TEXT NOT NULL DEFAULT '',
			source        TEXT NOT NULL,
			activity_type TEXT NOT NULL,
			topics        TEXT NOT NULL DEFAULT '[]',
			entities      TEXT NOT NULL DEFAULT '[]',
			intent        TEXT NOT NULL DEFAULT '',
			confidence    REAL NOT NULL DEFAULT 0,
			category      TEXT NOT NULL DEFAULT '',
			summary       TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (run_id, seq)
		)`,

		`CREATE TABLE IF NOT EXISTS prompts (
			run_id     TEXT PRIMARY KEY REFERENCES runs(id) ON DELETE CASCADE,
			tier       TEXT NOT NULL,
			body       TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		// ── Indexes ────────────────────────────────────────────

		`CREATE INDEX IF NOT EXISTS idx_runs_day           ON runs(day)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_tier          ON runs(tier)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created       ON runs(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_run_events_type    ON run_events(activity_type)`,
		`CREATE INDEX IF NOT EXISTS idx_run_events_source  ON run_events(source)`,
	}

	for _, stmt := range stmts {
		if _, err := tx.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
