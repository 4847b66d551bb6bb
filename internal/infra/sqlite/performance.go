package sqlite

import "github.com/glintlab/glint/internal/domain"

// ─── Performance History ────────────────────────────────────────────────────

// UpsertSnapshot writes one day's performance snapshot. Re-recording the
// same day replaces the row, never duplicates it.
func (d *DB) UpsertSnapshot(s domain.PerformanceSnapshot) error {
	_, err := d.db.Exec(
		`INSERT INTO performance_history
			(day, score_pct, level, suggestion, tasks, routines, applications, finances, time_score, total_gems)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(day) DO UPDATE SET
			score_pct=excluded.score_pct,
			level=excluded.level,
			suggestion=excluded.suggestion,
			tasks=excluded.tasks,
			routines=excluded.routines,
			applications=excluded.applications,
			finances=excluded.finances,
			time_score=excluded.time_score,
			total_gems=excluded.total_gems`,
		s.Day, s.ScorePct, string(s.Level), s.Suggestion,
		s.Domains.Tasks, s.Domains.Routines, s.Domains.Applications,
		s.Domains.Finances, s.Domains.Time, s.TotalGems,
	)
	return err
}

// SnapshotHistory returns snapshots ordered by day ascending, for trend
// display. limit <= 0 means all.
func (d *DB) SnapshotHistory(limit int) ([]domain.PerformanceSnapshot, error) {
	const cols = `day, score_pct, level, suggestion, tasks, routines, applications, finances, time_score, total_gems`
	query := `SELECT ` + cols + ` FROM performance_history ORDER BY day`
	args := []any{}
	if limit > 0 {
		query = `SELECT ` + cols + ` FROM (SELECT * FROM performance_history ORDER BY day DESC LIMIT ?) ORDER BY day`
		args = append(args, limit)
	}
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.PerformanceSnapshot
	for rows.Next() {
		var s domain.PerformanceSnapshot
		var level string
		if err := rows.Scan(&s.Day, &s.ScorePct, &level, &s.Suggestion,
			&s.Domains.Tasks, &s.Domains.Routines, &s.Domains.Applications,
			&s.Domains.Finances, &s.Domains.Time, &s.TotalGems); err != nil {
			return nil, err
		}
		s.Level = domain.ExcellenceLevel(level)
		out = append(out, s)
	}
	return out, rows.Err()
}
