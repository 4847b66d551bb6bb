package sqlite

import (
	"database/sql"
	"time"

	"github.com/glintlab/glint/internal/domain"
)

// ─── Gem Ledger ─────────────────────────────────────────────────────────────

// GetLedger returns the singleton ledger row, zero-valued when absent.
func (d *DB) GetLedger() (domain.GemLedger, error) {
	var l domain.GemLedger
	err := d.db.QueryRow(
		`SELECT balance, total_earned, total_spent FROM gem_ledger WHERE id = 1`,
	).Scan(&l.Balance, &l.TotalEarned, &l.TotalSpent)
	if err == sql.ErrNoRows {
		return domain.GemLedger{}, nil
	}
	return l, err
}

// SaveLedger upserts the singleton ledger row.
func (d *DB) SaveLedger(l domain.GemLedger) error {
	_, err := d.db.Exec(
		`INSERT INTO gem_ledger (id, balance, total_earned, total_spent)
		 VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			balance=excluded.balance,
			total_earned=excluded.total_earned,
			total_spent=excluded.total_spent`,
		l.Balance, l.TotalEarned, l.TotalSpent,
	)
	return err
}

// InsertLedgerEntry appends one audit-trail entry.
func (d *DB) InsertLedgerEntry(e domain.LedgerEntry) (int64, error) {
	res, err := d.db.Exec(
		`INSERT INTO gem_ledger_entries (timestamp, kind, amount, reason, balance)
		 VALUES (?, ?, ?, ?, ?)`,
		e.Timestamp.Unix(), string(e.Kind), e.Amount, e.Reason, e.Balance,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// LedgerEntries returns the most recent audit entries, newest first.
func (d *DB) LedgerEntries(limit int) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.db.Query(
		`SELECT id, timestamp, kind, amount, reason, balance
		 FROM gem_ledger_entries ORDER BY id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		var e domain.LedgerEntry
		var ts int64
		var kind string
		if err := rows.Scan(&e.ID, &ts, &kind, &e.Amount, &e.Reason, &e.Balance); err != nil {
			return nil, err
		}
		e.Timestamp = time.Unix(ts, 0)
		e.Kind = domain.TxKind(kind)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
