package sqlite

import (
	"time"

	"github.com/glintlab/glint/internal/domain"
)

// Storage for the read-only domain snapshots (spec collaborators): tasks,
// applications, finance logs, time-sink entries, focus sessions. The engine
// only reads these for scoring and condition context; writes come from the
// surrounding features via the API/CLI.

// ─── Tasks ──────────────────────────────────────────────────────────────────

// UpsertTask inserts or updates a task record.
func (d *DB) UpsertTask(t domain.TaskRecord) error {
	_, err := d.db.Exec(
		`INSERT INTO tasks (id, title, status, priority) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			title=excluded.title,
			status=excluded.status,
			priority=excluded.priority`,
		t.ID, t.Title, string(t.Status), string(t.Priority),
	)
	return err
}

// ListTasks returns all task records.
func (d *DB) ListTasks() ([]domain.TaskRecord, error) {
	rows, err := d.db.Query(`SELECT id, title, status, priority FROM tasks ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TaskRecord
	for rows.Next() {
		var t domain.TaskRecord
		var status, priority string
		if err := rows.Scan(&t.ID, &t.Title, &status, &priority); err != nil {
			return nil, err
		}
		t.Status = domain.TaskStatus(status)
		t.Priority = domain.TaskPriority(priority)
		out = append(out, t)
	}
	return out, rows.Err()
}

// ─── Applications ───────────────────────────────────────────────────────────

// UpsertApplication inserts or updates a job application record.
func (d *DB) UpsertApplication(a domain.ApplicationRecord) error {
	_, err := d.db.Exec(
		`INSERT INTO applications (id, company, status) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			company=excluded.company,
			status=excluded.status`,
		a.ID, a.Company, string(a.Status),
	)
	return err
}

// ListApplications returns all application records.
func (d *DB) ListApplications() ([]domain.ApplicationRecord, error) {
	rows, err := d.db.Query(`SELECT id, company, status FROM applications ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ApplicationRecord
	for rows.Next() {
		var a domain.ApplicationRecord
		var status string
		if err := rows.Scan(&a.ID, &a.Company, &status); err != nil {
			return nil, err
		}
		a.Status = domain.ApplicationStatus(status)
		out = append(out, a)
	}
	return out, rows.Err()
}

// SentApplicationCount counts applications past the wishlist stage.
func (d *DB) SentApplicationCount() (int64, error) {
	var count int64
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM applications WHERE status != ?`, string(domain.AppWishlist),
	).Scan(&count)
	return count, err
}

// ─── Finance Logs ───────────────────────────────────────────────────────────

// UpsertFinanceLog writes one month's net result.
func (d *DB) UpsertFinanceLog(f domain.FinanceLog) error {
	_, err := d.db.Exec(
		`INSERT INTO finance_logs (month, net) VALUES (?, ?)
		 ON CONFLICT(month) DO UPDATE SET net=excluded.net`,
		f.Month, f.Net,
	)
	return err
}

// ListFinanceLogs returns all monthly logs, oldest first.
func (d *DB) ListFinanceLogs() ([]domain.FinanceLog, error) {
	rows, err := d.db.Query(`SELECT month, net FROM finance_logs ORDER BY month`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.FinanceLog
	for rows.Next() {
		var f domain.FinanceLog
		if err := rows.Scan(&f.Month, &f.Net); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// ─── Time Entries ───────────────────────────────────────────────────────────

// InsertTimeEntry records hours lost to a time sink.
func (d *DB) InsertTimeEntry(e domain.TimeEntry) error {
	_, err := d.db.Exec(
		`INSERT INTO time_entries (id, day, label, hours) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			day=excluded.day,
			label=excluded.label,
			hours=excluded.hours`,
		e.ID, e.Day, e.Label, e.Hours,
	)
	return err
}

// ListTimeEntries returns all time-sink entries.
func (d *DB) ListTimeEntries() ([]domain.TimeEntry, error) {
	rows, err := d.db.Query(`SELECT id, day, label, hours FROM time_entries ORDER BY day`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.TimeEntry
	for rows.Next() {
		var e domain.TimeEntry
		if err := rows.Scan(&e.ID, &e.Day, &e.Label, &e.Hours); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ─── Focus Sessions ─────────────────────────────────────────────────────────

// InsertFocusSession records a finished pomodoro.
func (d *DB) InsertFocusSession(s domain.FocusSession) error {
	_, err := d.db.Exec(
		`INSERT INTO focus_sessions (id, finished_at, minutes) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO NOTHING`,
		s.ID, s.FinishedAt.Unix(), s.Minutes,
	)
	return err
}

// FocusSessionCount returns the lifetime number of finished sessions.
func (d *DB) FocusSessionCount() (int64, error) {
	var count int64
	err := d.db.QueryRow(`SELECT COUNT(*) FROM focus_sessions`).Scan(&count)
	return count, err
}

// ListFocusSessions returns recent sessions, newest first.
func (d *DB) ListFocusSessions(limit int) ([]domain.FocusSession, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.db.Query(
		`SELECT id, finished_at, minutes FROM focus_sessions
		 ORDER BY finished_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.FocusSession
	for rows.Next() {
		var s domain.FocusSession
		var ts int64
		if err := rows.Scan(&s.ID, &ts, &s.Minutes); err != nil {
			return nil, err
		}
		s.FinishedAt = time.Unix(ts, 0)
		out = append(out, s)
	}
	return out, rows.Err()
}
