package domain

import "time"

// ─── Achievements ───────────────────────────────────────────────────────────

// AchievementCategory groups achievements by life area.
type AchievementCategory string

const (
	CatStreaks      AchievementCategory = "streaks"
	CatTasks        AchievementCategory = "tasks"
	CatFocus        AchievementCategory = "focus"
	CatApplications AchievementCategory = "applications"
	CatFinance      AchievementCategory = "finance"
	CatCustom       AchievementCategory = "custom"
)

// Achievement is a one-shot unlockable with a gem reward.
//
// Lifecycle: created locked; unlocks exactly once when its condition is met
// (credits GemReward); may later be revoked. Both flags are one-way —
// revocation does not clear IsUnlocked ("was earned, later revoked" is
// preserved), and a revoked achievement is terminal: never re-unlockable
// under the same condition instance.
type Achievement struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Category    AchievementCategory `json:"category"`
	Icon        string              `json:"icon"` // opaque display metadata
	GemReward   int64               `json:"gem_reward"`
	Condition   Condition           `json:"condition"`

	IsUnlocked bool      `json:"is_unlocked"`
	UnlockedAt time.Time `json:"unlocked_at,omitempty"`

	IsRevoked    bool      `json:"is_revoked"`
	RevokedAt    time.Time `json:"revoked_at,omitempty"`
	RevokeReason string    `json:"revoke_reason,omitempty"`
}

// Terminal reports whether the achievement can still change state.
func (a Achievement) Terminal() bool {
	return a.IsRevoked
}
