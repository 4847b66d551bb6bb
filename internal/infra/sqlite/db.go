// Package sqlite provides SQLite-based persistent storage for Glint.
// Uses WAL mode for concurrent reads and crash-safe writes. The store is
// the single canonical owner of engine state: services read a snapshot,
// transform it, and write it back through here (read-modify-write).
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure-Go SQLite driver (no CGO required)
)

// DB wraps a SQLite connection with WAL mode and migrations.
type DB struct {
	db *sql.DB
}

// Open creates or opens the SQLite database at dir/state.db.
// Enables WAL mode, foreign keys, and 5-second busy timeout.
func Open(dir string) (*DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dir, "state.db")
	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	// Connection pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	d := &DB{db: db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return d, nil
}

// Close cleanly shuts down the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Ping checks database connectivity.
func (d *DB) Ping() error {
	return d.db.Ping()
}

// migrate runs idempotent schema migrations.
func (d *DB) migrate() error {
	migrations := []string{
		// Gem ledger: singleton row (id=1) is ground truth,
		// entries are the append-only audit trail.
		`CREATE TABLE IF NOT EXISTS gem_ledger (
			id           INTEGER PRIMARY KEY CHECK (id = 1),
			balance      INTEGER NOT NULL DEFAULT 0,
			total_earned INTEGER NOT NULL DEFAULT 0,
			total_spent  INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS gem_ledger_entries (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			kind      TEXT NOT NULL,
			amount    INTEGER NOT NULL,
			reason    TEXT,
			balance   INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_ts ON gem_ledger_entries(timestamp)`,

		// Achievements with inline condition state
		`CREATE TABLE IF NOT EXISTS achievements (
			id                 TEXT PRIMARY KEY,
			name               TEXT NOT NULL,
			description        TEXT NOT NULL DEFAULT '',
			category           TEXT NOT NULL,
			icon               TEXT NOT NULL DEFAULT '',
			gem_reward         INTEGER NOT NULL,
			condition_type     TEXT NOT NULL,
			condition_target   REAL NOT NULL,
			condition_progress REAL NOT NULL DEFAULT 0,
			condition_met      BOOLEAN NOT NULL DEFAULT 0,
			is_unlocked        BOOLEAN NOT NULL DEFAULT 0,
			unlocked_at        INTEGER,
			is_revoked         BOOLEAN NOT NULL DEFAULT 0,
			revoked_at         INTEGER,
			revoke_reason      TEXT
		)`,

		// Reward catalog (both kinds) plus per-reward conditions
		`CREATE TABLE IF NOT EXISTS rewards (
			id              TEXT PRIMARY KEY,
			name            TEXT NOT NULL,
			description     TEXT NOT NULL DEFAULT '',
			type            TEXT NOT NULL,
			category        TEXT NOT NULL DEFAULT '',
			icon            TEXT NOT NULL DEFAULT '',
			is_unlocked     BOOLEAN NOT NULL DEFAULT 0,
			reset_frequency TEXT,
			last_reset_at   INTEGER,
			gem_cost        INTEGER NOT NULL DEFAULT 0,
			is_purchased    BOOLEAN NOT NULL DEFAULT 0,
			purchased_at    INTEGER,
			times_used      INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS reward_conditions (
			reward_id TEXT NOT NULL,
			position  INTEGER NOT NULL,
			type      TEXT NOT NULL,
			target    REAL NOT NULL,
			progress  REAL NOT NULL DEFAULT 0,
			is_met    BOOLEAN NOT NULL DEFAULT 0,
			PRIMARY KEY (reward_id, position)
		)`,

		// One checkmark per (routine, day) — later writes update in place
		`CREATE TABLE IF NOT EXISTS checkmarks (
			routine_id TEXT NOT NULL,
			day        TEXT NOT NULL,
			done       BOOLEAN NOT NULL DEFAULT 0,
			reflection TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (routine_id, day)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_checkmarks_day ON checkmarks(day)`,

		// Read-only domain snapshots the score aggregator consumes
		`CREATE TABLE IF NOT EXISTS tasks (
			id       TEXT PRIMARY KEY,
			title    TEXT NOT NULL DEFAULT '',
			status   TEXT NOT NULL,
			priority TEXT NOT NULL DEFAULT 'medium'
		)`,
		`CREATE TABLE IF NOT EXISTS applications (
			id      TEXT PRIMARY KEY,
			company TEXT NOT NULL DEFAULT '',
			status  TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS finance_logs (
			month TEXT PRIMARY KEY,
			net   REAL NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS time_entries (
			id    TEXT PRIMARY KEY,
			day   TEXT NOT NULL,
			label TEXT NOT NULL DEFAULT '',
			hours REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_time_day ON time_entries(day)`,
		`CREATE TABLE IF NOT EXISTS focus_sessions (
			id          TEXT PRIMARY KEY,
			finished_at INTEGER NOT NULL,
			minutes     INTEGER NOT NULL DEFAULT 25
		)`,

		// Dated performance history, one row per day (upsert on replay)
		`CREATE TABLE IF NOT EXISTS performance_history (
			day          TEXT PRIMARY KEY,
			score_pct    REAL NOT NULL,
			level        TEXT NOT NULL,
			suggestion   TEXT NOT NULL DEFAULT '',
			tasks        REAL NOT NULL,
			routines     REAL NOT NULL,
			applications REAL NOT NULL,
			finances     REAL NOT NULL,
			time_score   REAL NOT NULL,
			total_gems   INTEGER NOT NULL DEFAULT 0
		)`,

		// Key-value store for engine state (lifetime counters, seed marker)
		`CREATE TABLE IF NOT EXISTS engine_kv (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := d.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\nSQL: %s", err, m)
		}
	}
	return nil
}

// ─── Engine KV ──────────────────────────────────────────────────────────────

// SetState stores an engine key-value pair.
func (d *DB) SetState(key, value string) error {
	_, err := d.db.Exec(
		`INSERT INTO engine_kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
		key, value,
	)
	return err
}

// GetState retrieves an engine value by key. Returns "" if not found.
func (d *DB) GetState(key string) (string, error) {
	var value string
	err := d.db.QueryRow(`SELECT value FROM engine_kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
