package sqlite

import (
	"database/sql"
	"time"

	"github.com/glintlab/glint/internal/domain"
)

// ─── Achievements ───────────────────────────────────────────────────────────

// UpsertAchievement inserts or replaces a full achievement record,
// condition state included.
func (d *DB) UpsertAchievement(a domain.Achievement) error {
	_, err := d.db.Exec(
		`INSERT INTO achievements
			(id, name, description, category, icon, gem_reward,
			 condition_type, condition_target, condition_progress, condition_met,
			 is_unlocked, unlocked_at, is_revoked, revoked_at, revoke_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			description=excluded.description,
			category=excluded.category,
			icon=excluded.icon,
			gem_reward=excluded.gem_reward,
			condition_type=excluded.condition_type,
			condition_target=excluded.condition_target,
			condition_progress=excluded.condition_progress,
			condition_met=excluded.condition_met,
			is_unlocked=excluded.is_unlocked,
			unlocked_at=excluded.unlocked_at,
			is_revoked=excluded.is_revoked,
			revoked_at=excluded.revoked_at,
			revoke_reason=excluded.revoke_reason`,
		a.ID, a.Name, a.Description, string(a.Category), a.Icon, a.GemReward,
		string(a.Condition.Type), a.Condition.Target, a.Condition.Progress, a.Condition.IsMet,
		a.IsUnlocked, nullableUnix(a.UnlockedAt), a.IsRevoked, nullableUnix(a.RevokedAt), a.RevokeReason,
	)
	return err
}

// GetAchievement retrieves a single achievement by ID.
// Returns domain.ErrAchievementNotFound when absent.
func (d *DB) GetAchievement(id string) (*domain.Achievement, error) {
	row := d.db.QueryRow(achievementSelect+` WHERE id = ?`, id)
	a, err := scanAchievement(row)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrAchievementNotFound
	}
	return a, nil
}

// ListAchievements returns the whole catalog, stable by category then ID.
func (d *DB) ListAchievements() ([]domain.Achievement, error) {
	rows, err := d.db.Query(achievementSelect + ` ORDER BY category, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Achievement
	for rows.Next() {
		a, err := scanAchievement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

// UnlockedAchievementCount returns how many achievements are unlocked.
func (d *DB) UnlockedAchievementCount() (int, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM achievements WHERE is_unlocked = 1`).Scan(&count)
	return count, err
}

const achievementSelect = `SELECT id, name, description, category, icon, gem_reward,
	condition_type, condition_target, condition_progress, condition_met,
	is_unlocked, unlocked_at, is_revoked, revoked_at, revoke_reason
 FROM achievements`

func scanAchievement(s scanner) (*domain.Achievement, error) {
	var a domain.Achievement
	var category, condType string
	var unlockedAt, revokedAt sql.NullInt64
	var reason sql.NullString

	err := s.Scan(&a.ID, &a.Name, &a.Description, &category, &a.Icon, &a.GemReward,
		&condType, &a.Condition.Target, &a.Condition.Progress, &a.Condition.IsMet,
		&a.IsUnlocked, &unlockedAt, &a.IsRevoked, &revokedAt, &reason)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	a.Category = domain.AchievementCategory(category)
	a.Condition.Type = domain.ConditionType(condType)
	if unlockedAt.Valid {
		a.UnlockedAt = time.Unix(unlockedAt.Int64, 0)
	}
	if revokedAt.Valid {
		a.RevokedAt = time.Unix(revokedAt.Int64, 0)
	}
	a.RevokeReason = reason.String
	return &a, nil
}

// ─── Rewards ────────────────────────────────────────────────────────────────

// UpsertReward inserts or replaces a reward and its condition rows.
func (d *DB) UpsertReward(r domain.Reward) error {
	_, err := d.db.Exec(
		`INSERT INTO rewards
			(id, name, description, type, category, icon, is_unlocked,
			 reset_frequency, last_reset_at, gem_cost, is_purchased, purchased_at, times_used)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			description=excluded.description,
			type=excluded.type,
			category=excluded.category,
			icon=excluded.icon,
			is_unlocked=excluded.is_unlocked,
			reset_frequency=excluded.reset_frequency,
			last_reset_at=excluded.last_reset_at,
			gem_cost=excluded.gem_cost,
			is_purchased=excluded.is_purchased,
			purchased_at=excluded.purchased_at,
			times_used=excluded.times_used`,
		r.ID, r.Name, r.Description, string(r.Type), r.Category, r.Icon, r.IsUnlocked,
		string(r.ResetFrequency), nullableUnix(r.LastResetAt), r.GemCost,
		r.IsPurchased, nullableUnix(r.PurchasedAt), r.TimesUsed,
	)
	if err != nil {
		return err
	}

	// Replace condition rows wholesale — positions are ordinal.
	if _, err := d.db.Exec(`DELETE FROM reward_conditions WHERE reward_id = ?`, r.ID); err != nil {
		return err
	}
	for i, c := range r.Conditions {
		_, err := d.db.Exec(
			`INSERT INTO reward_conditions (reward_id, position, type, target, progress, is_met)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			r.ID, i, string(c.Type), c.Target, c.Progress, c.IsMet,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// GetReward retrieves a reward with its conditions.
// Returns domain.ErrRewardNotFound when absent.
func (d *DB) GetReward(id string) (*domain.Reward, error) {
	row := d.db.QueryRow(rewardSelect+` WHERE id = ?`, id)
	r, err := scanReward(row)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrRewardNotFound
	}
	if err := d.loadRewardConditions(r); err != nil {
		return nil, err
	}
	return r, nil
}

// ListRewards returns the whole catalog with conditions attached.
func (d *DB) ListRewards() ([]domain.Reward, error) {
	rows, err := d.db.Query(rewardSelect + ` ORDER BY type, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Reward
	for rows.Next() {
		r, err := scanReward(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := d.loadRewardConditions(&out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

const rewardSelect = `SELECT id, name, description, type, category, icon, is_unlocked,
	reset_frequency, last_reset_at, gem_cost, is_purchased, purchased_at, times_used
 FROM rewards`

func scanReward(s scanner) (*domain.Reward, error) {
	var r domain.Reward
	var typ string
	var freq sql.NullString
	var lastReset, purchasedAt sql.NullInt64

	err := s.Scan(&r.ID, &r.Name, &r.Description, &typ, &r.Category, &r.Icon, &r.IsUnlocked,
		&freq, &lastReset, &r.GemCost, &r.IsPurchased, &purchasedAt, &r.TimesUsed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	r.Type = domain.RewardType(typ)
	r.ResetFrequency = domain.ResetFrequency(freq.String)
	if lastReset.Valid {
		r.LastResetAt = time.Unix(lastReset.Int64, 0)
	}
	if purchasedAt.Valid {
		r.PurchasedAt = time.Unix(purchasedAt.Int64, 0)
	}
	return &r, nil
}

func (d *DB) loadRewardConditions(r *domain.Reward) error {
	rows, err := d.db.Query(
		`SELECT type, target, progress, is_met FROM reward_conditions
		 WHERE reward_id = ? ORDER BY position`, r.ID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	r.Conditions = nil
	for rows.Next() {
		var c domain.Condition
		var typ string
		if err := rows.Scan(&typ, &c.Target, &c.Progress, &c.IsMet); err != nil {
			return err
		}
		c.Type = domain.ConditionType(typ)
		r.Conditions = append(r.Conditions, c)
	}
	return rows.Err()
}

// ─── Checkmarks ─────────────────────────────────────────────────────────────

// UpsertCheckmark writes a checkmark, replacing any prior record for the
// same (routine, day).
func (d *DB) UpsertCheckmark(c domain.Checkmark) error {
	_, err := d.db.Exec(
		`INSERT INTO checkmarks (routine_id, day, done, reflection)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(routine_id, day) DO UPDATE SET
			done=excluded.done,
			reflection=excluded.reflection`,
		c.RoutineID, c.Day, c.Done, c.Reflection,
	)
	return err
}

// CheckmarkHistory returns all checkmarks grouped by day — the streak
// calculator's input shape.
func (d *DB) CheckmarkHistory() (map[string][]domain.Checkmark, error) {
	rows, err := d.db.Query(
		`SELECT routine_id, day, done, reflection FROM checkmarks ORDER BY day`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	history := make(map[string][]domain.Checkmark)
	for rows.Next() {
		var c domain.Checkmark
		if err := rows.Scan(&c.RoutineID, &c.Day, &c.Done, &c.Reflection); err != nil {
			return nil, err
		}
		history[c.Day] = append(history[c.Day], c)
	}
	return history, rows.Err()
}

// CompletedCheckmarksOn counts done checkmarks for one day.
func (d *DB) CompletedCheckmarksOn(day string) (int, error) {
	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM checkmarks WHERE day = ? AND done = 1`, day,
	).Scan(&count)
	return count, err
}

// ─── Helpers ────────────────────────────────────────────────────────────────

func nullableUnix(t time.Time) sql.NullInt64 {
	if t.IsZero() {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}
