package engagement

import (
	"fmt"
	"time"

	"github.com/glintlab/glint/internal/app/ledger"
	"github.com/glintlab/glint/internal/domain"
	"github.com/glintlab/glint/internal/infra/metrics"
	"github.com/glintlab/glint/internal/infra/sqlite"
)

// RefreshConditional re-evaluates a conditional reward against the context,
// applying the reset-frequency boundary first. Pure transform.
//
// Conditional rewards are recurring gates: on a new calendar day / ISO week /
// month since LastResetAt (never for one-time), every condition's progress is
// zeroed and IsUnlocked cleared regardless of previous state, then all
// conditions are evaluated fresh. The reward unlocks iff all are met.
func RefreshConditional(r domain.Reward, ctx domain.EvalContext, now time.Time) domain.Reward {
	if r.Type != domain.RewardConditional {
		return r
	}

	// Copy the condition slice so the input reward is never aliased.
	conds := make([]domain.Condition, len(r.Conditions))
	copy(conds, r.Conditions)
	r.Conditions = conds

	if resetBoundaryCrossed(r.ResetFrequency, r.LastResetAt, now) {
		for i := range r.Conditions {
			r.Conditions[i].Progress = 0
			r.Conditions[i].IsMet = false
		}
		r.IsUnlocked = false
		r.LastResetAt = now
	}
	if r.LastResetAt.IsZero() {
		r.LastResetAt = now
	}

	for i, c := range r.Conditions {
		r.Conditions[i] = c.Evaluate(ctx.Signal(c.Type, r.ID))
	}
	r.IsUnlocked = r.AllConditionsMet()
	return r
}

// resetBoundaryCrossed reports whether now sits past the reset boundary
// implied by the frequency, relative to the last reset.
func resetBoundaryCrossed(freq domain.ResetFrequency, lastReset, now time.Time) bool {
	if lastReset.IsZero() {
		return false // first evaluation stamps the epoch, no reset yet
	}
	last, cur := lastReset.UTC(), now.UTC()
	switch freq {
	case domain.ResetDaily:
		return last.Format(domain.DayLayout) != cur.Format(domain.DayLayout)
	case domain.ResetWeekly:
		ly, lw := last.ISOWeek()
		cy, cw := cur.ISOWeek()
		return ly != cy || lw != cw
	case domain.ResetMonthly:
		return last.Year() != cur.Year() || last.Month() != cur.Month()
	default: // one-time, or unset
		return false
	}
}

// RewardService manages the reward catalog: conditional gates and
// gem-purchasable rewards.
type RewardService struct {
	db   *sqlite.DB
	gems *ledger.Service
}

// NewRewardService creates a reward service.
func NewRewardService(db *sqlite.DB, gems *ledger.Service) *RewardService {
	return &RewardService{db: db, gems: gems}
}

// Purchase buys a purchasable reward, debiting its gem cost.
//
// Fails with ErrRewardNotPurchasable for conditional rewards,
// ErrAlreadyTerminal when already purchased, and ErrInsufficientFunds when
// the balance does not cover the cost — all without touching state.
func (s *RewardService) Purchase(id string, now time.Time) (*domain.Reward, error) {
	r, err := s.db.GetReward(id)
	if err != nil {
		return nil, err
	}
	if r.Type != domain.RewardPurchasable {
		return nil, domain.ErrRewardNotPurchasable
	}
	if r.IsPurchased {
		return nil, domain.ErrAlreadyTerminal
	}

	// Debit first: its balance guard runs before any mutation, so an
	// insufficient balance leaves both ledger and reward untouched.
	if err := s.gems.Debit(r.GemCost, "reward purchased: "+r.Name); err != nil {
		return nil, err
	}

	r.IsPurchased = true
	r.PurchasedAt = now
	r.TimesUsed++
	if err := s.db.UpsertReward(*r); err != nil {
		return nil, fmt.Errorf("save purchased reward: %w", err)
	}
	metrics.RewardsPurchased.Inc()
	return r, nil
}

// RefreshAll re-evaluates every conditional reward against the context.
// Returns the rewards whose unlock state flipped to true this round. A
// reward that resets and re-unlocks in the same round counts as new — the
// stored flag belongs to the previous cycle.
func (s *RewardService) RefreshAll(ctx domain.EvalContext, now time.Time) ([]domain.Reward, error) {
	all, err := s.db.ListRewards()
	if err != nil {
		return nil, err
	}

	var newlyUnlocked []domain.Reward
	for _, r := range all {
		if r.Type != domain.RewardConditional {
			continue
		}
		wasUnlocked := r.IsUnlocked && !resetBoundaryCrossed(r.ResetFrequency, r.LastResetAt, now)
		next := RefreshConditional(r, ctx, now)
		if err := s.db.UpsertReward(next); err != nil {
			return newlyUnlocked, err
		}
		if next.IsUnlocked && !wasUnlocked {
			newlyUnlocked = append(newlyUnlocked, next)
		}
	}
	return newlyUnlocked, nil
}

// List returns the full catalog.
func (s *RewardService) List() ([]domain.Reward, error) {
	return s.db.ListRewards()
}

// ─── Starter Catalog ────────────────────────────────────────────────────────

// DefaultRewards returns the built-in catalog seeded on first run.
func DefaultRewards() []domain.Reward {
	return []domain.Reward{
		{
			ID: "daily-treat", Name: "Daily Treat", Type: domain.RewardConditional,
			Description: "Complete 3 routines today", Category: "daily", Icon: "🍫",
			ResetFrequency: domain.ResetDaily,
			Conditions: []domain.Condition{
				{Type: domain.CondRoutineCompletion, Target: 3},
			},
		},
		{
			ID: "weekend-game", Name: "Gaming Session", Type: domain.RewardConditional,
			Description: "Complete 5 tasks and study 4 concepts in one day", Category: "weekly", Icon: "🎮",
			ResetFrequency: domain.ResetWeekly,
			Conditions: []domain.Condition{
				{Type: domain.CondTaskCompletion, Target: 5},
				{Type: domain.CondStudyConcepts, Target: 4},
			},
		},
		{
			ID: "movie-night", Name: "Movie Night", Type: domain.RewardPurchasable,
			Description: "One guilt-free movie evening", Category: "leisure", Icon: "🎬",
			GemCost: 20,
		},
		{
			ID: "lazy-morning", Name: "Lazy Morning", Type: domain.RewardPurchasable,
			Description: "Sleep in with no alarm", Category: "leisure", Icon: "😴",
			GemCost: 50,
		},
		{
			ID: "fancy-dinner", Name: "Fancy Dinner", Type: domain.RewardPurchasable,
			Description: "Order from the good place", Category: "leisure", Icon: "🍣",
			GemCost: 100,
		},
	}
}

// SeedDefaults inserts the starter catalog once; rerunning is a no-op.
func (s *RewardService) SeedDefaults() error {
	seeded, err := s.db.GetState("rewards_seeded")
	if err != nil {
		return err
	}
	if seeded == "1" {
		return nil
	}
	for _, r := range DefaultRewards() {
		if err := s.db.UpsertReward(r); err != nil {
			return fmt.Errorf("seed reward %s: %w", r.ID, err)
		}
	}
	return s.db.SetState("rewards_seeded", "1")
}
