package engagement

import (
	"fmt"
	"time"

	"github.com/glintlab/glint/internal/app/ledger"
	"github.com/glintlab/glint/internal/domain"
	"github.com/glintlab/glint/internal/infra/metrics"
	"github.com/glintlab/glint/internal/infra/sqlite"
)

// CheckAndUnlock applies the one-shot unlock transition to a copy of the
// achievement and reports whether it newly unlocked. Pure transform: the
// caller persists the result and credits the gem reward on true.
//
// Revoked achievements are terminal no-ops; already-unlocked ones are
// no-ops (unlock is one-shot, so replaying the same evaluation can never
// double-credit). Otherwise the condition is evaluated against the context
// and the unlock fires iff it is met.
func CheckAndUnlock(a domain.Achievement, ctx domain.EvalContext, now time.Time) (domain.Achievement, bool) {
	if a.IsRevoked || a.IsUnlocked {
		return a, false
	}

	a.Condition = a.Condition.Evaluate(ctx.Signal(a.Condition.Type, a.ID))
	if !a.Condition.IsMet {
		return a, false
	}

	a.IsUnlocked = true
	a.UnlockedAt = now
	return a, true
}

// Revoke applies the one-way revocation flag.
//
// Valid only when unlocked and not yet revoked; anything else fails with
// ErrNotUnlocked / ErrAlreadyTerminal and leaves the record untouched.
// IsUnlocked stays true — history records "was earned, later revoked".
//
// Policy: revocation does NOT claw the gem reward back. The credit stands
// and the achievement is merely marked forfeited, which keeps the ledger's
// balance >= 0 invariant unconditional even when the gems were already
// spent. (The alternative — debiting on revoke — would need a negative
// balance or a partial clawback.)
func Revoke(a domain.Achievement, reason string, now time.Time) (domain.Achievement, error) {
	if a.IsRevoked {
		return a, domain.ErrAlreadyTerminal
	}
	if !a.IsUnlocked {
		return a, domain.ErrNotUnlocked
	}
	a.IsRevoked = true
	a.RevokedAt = now
	a.RevokeReason = reason
	return a, nil
}

// AchievementService manages the achievement catalog and its state machine.
type AchievementService struct {
	db   *sqlite.DB
	gems *ledger.Service
}

// NewAchievementService creates an achievement service.
func NewAchievementService(db *sqlite.DB, gems *ledger.Service) *AchievementService {
	return &AchievementService{db: db, gems: gems}
}

// CheckAll evaluates every achievement against the context, persisting
// updated condition progress and crediting rewards for new unlocks.
// Returns the newly unlocked achievements.
func (s *AchievementService) CheckAll(ctx domain.EvalContext, now time.Time) ([]domain.Achievement, error) {
	all, err := s.db.ListAchievements()
	if err != nil {
		return nil, err
	}

	var unlocked []domain.Achievement
	for _, a := range all {
		next, isNew := CheckAndUnlock(a, ctx, now)
		if next == a {
			continue
		}
		if err := s.db.UpsertAchievement(next); err != nil {
			return unlocked, err
		}
		if isNew {
			if next.GemReward > 0 {
				if err := s.gems.Credit(next.GemReward, "achievement unlocked: "+next.Name); err != nil {
					return unlocked, fmt.Errorf("credit achievement reward: %w", err)
				}
			}
			metrics.AchievementsUnlocked.WithLabelValues(string(next.Category)).Inc()
			unlocked = append(unlocked, next)
		}
	}
	return unlocked, nil
}

// Revoke marks an unlocked achievement as revoked (no gem clawback).
func (s *AchievementService) Revoke(id, reason string, now time.Time) (*domain.Achievement, error) {
	a, err := s.db.GetAchievement(id)
	if err != nil {
		return nil, err
	}
	next, err := Revoke(*a, reason, now)
	if err != nil {
		return nil, err
	}
	if err := s.db.UpsertAchievement(next); err != nil {
		return nil, err
	}
	metrics.AchievementsRevoked.Inc()
	return &next, nil
}

// List returns the full catalog with unlock/revoke state.
func (s *AchievementService) List() ([]domain.Achievement, error) {
	return s.db.ListAchievements()
}

// UnlockedCount returns how many achievements are unlocked.
func (s *AchievementService) UnlockedCount() (int, error) {
	return s.db.UnlockedAchievementCount()
}

// ─── Starter Catalog ────────────────────────────────────────────────────────

// DefaultAchievements returns the built-in catalog seeded on first run.
func DefaultAchievements() []domain.Achievement {
	cond := func(t domain.ConditionType, target float64) domain.Condition {
		return domain.Condition{Type: t, Target: target}
	}
	return []domain.Achievement{
		// Streaks
		{ID: "streak-3", Name: "Warming Up", Description: "Keep a 3-day routine streak", Category: domain.CatStreaks,
			Icon: "🔥", GemReward: 15, Condition: cond(domain.CondRoutineStreak, 3)},
		{ID: "streak-7", Name: "Week Warrior", Description: "Keep a 7-day routine streak", Category: domain.CatStreaks,
			Icon: "🔥", GemReward: 50, Condition: cond(domain.CondRoutineStreak, 7)},
		{ID: "streak-30", Name: "Monthly Machine", Description: "Keep a 30-day routine streak", Category: domain.CatStreaks,
			Icon: "💪", GemReward: 200, Condition: cond(domain.CondRoutineStreak, 30)},
		{ID: "streak-100", Name: "Centurion", Description: "Keep a 100-day routine streak", Category: domain.CatStreaks,
			Icon: "🏛️", GemReward: 1000, Condition: cond(domain.CondRoutineStreak, 100)},

		// Tasks
		{ID: "tasks-1", Name: "First Step", Description: "Complete your first task", Category: domain.CatTasks,
			Icon: "✅", GemReward: 5, Condition: cond(domain.CondTaskCompleted, 1)},
		{ID: "tasks-50", Name: "Task Tamer", Description: "Complete 50 tasks", Category: domain.CatTasks,
			Icon: "📋", GemReward: 75, Condition: cond(domain.CondTaskCompleted, 50)},
		{ID: "tasks-500", Name: "Task Master", Description: "Complete 500 tasks", Category: domain.CatTasks,
			Icon: "🏆", GemReward: 500, Condition: cond(domain.CondTaskCompleted, 500)},

		// Focus
		{ID: "focus-1", Name: "First Focus", Description: "Finish a pomodoro session", Category: domain.CatFocus,
			Icon: "🍅", GemReward: 5, Condition: cond(domain.CondPomodoroSessions, 1)},
		{ID: "focus-25", Name: "Deep Worker", Description: "Finish 25 pomodoro sessions", Category: domain.CatFocus,
			Icon: "🎯", GemReward: 60, Condition: cond(domain.CondPomodoroSessions, 25)},
		{ID: "focus-200", Name: "Flow State", Description: "Finish 200 pomodoro sessions", Category: domain.CatFocus,
			Icon: "🧘", GemReward: 400, Condition: cond(domain.CondPomodoroSessions, 200)},

		// Applications
		{ID: "apps-1", Name: "Hat in the Ring", Description: "Send your first application", Category: domain.CatApplications,
			Icon: "📮", GemReward: 10, Condition: cond(domain.CondApplicationsSent, 1)},
		{ID: "apps-20", Name: "Persistent", Description: "Send 20 applications", Category: domain.CatApplications,
			Icon: "📬", GemReward: 100, Condition: cond(domain.CondApplicationsSent, 20)},

		// Finance
		{ID: "finance-positive", Name: "In the Black", Description: "Close a month with positive net", Category: domain.CatFinance,
			Icon: "💰", GemReward: 50, Condition: cond(domain.CondFinancialGoal, 1)},
	}
}

// SeedDefaults inserts the starter catalog once. Existing records are
// never overwritten — rerunning is a no-op.
func (s *AchievementService) SeedDefaults() error {
	seeded, err := s.db.GetState("achievements_seeded")
	if err != nil {
		return err
	}
	if seeded == "1" {
		return nil
	}
	for _, a := range DefaultAchievements() {
		if err := s.db.UpsertAchievement(a); err != nil {
			return fmt.Errorf("seed achievement %s: %w", a.ID, err)
		}
	}
	return s.db.SetState("achievements_seeded", "1")
}
