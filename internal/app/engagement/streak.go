// Package engagement implements the rewards and achievement engine:
// condition evaluation, the achievement state machine, the reward catalog,
// and streak reconstruction over checkmark history.
package engagement

import (
	"sort"
	"time"

	"github.com/glintlab/glint/internal/domain"
	"github.com/glintlab/glint/internal/infra/metrics"
	"github.com/glintlab/glint/internal/infra/sqlite"
)

// DefaultMinChecksPerDay is the completed-checkmark count a day needs to
// qualify for the streak.
const DefaultMinChecksPerDay = 5

// CalculateStreak reconstructs the streak from sparse per-day checkmark
// history. Pure and stateless: it holds no memory of previous invocations,
// so recomputing can never drift from the ground-truth checkmarks.
//
// A day qualifies when its done-count reaches minChecksPerDay. The current
// streak is only non-zero when the most recent qualifying day is now or the
// day before; it then extends backward while days are exactly consecutive.
func CalculateStreak(history map[string][]domain.Checkmark, minChecksPerDay int, now time.Time) domain.StreakSnapshot {
	if minChecksPerDay <= 0 {
		minChecksPerDay = DefaultMinChecksPerDay
	}

	var qualifying []time.Time
	for day, marks := range history {
		completed := 0
		for _, m := range marks {
			if m.Done {
				completed++
			}
		}
		if completed < minChecksPerDay {
			continue
		}
		t, err := time.ParseInLocation(domain.DayLayout, day, time.UTC)
		if err != nil {
			continue // malformed day key — skip, never fail
		}
		qualifying = append(qualifying, t)
	}

	var snap domain.StreakSnapshot
	if len(qualifying) == 0 {
		return snap
	}

	sort.Slice(qualifying, func(i, j int) bool { return qualifying[i].Before(qualifying[j]) })

	// Longest: maximum run of consecutive calendar days.
	longest, run := 1, 1
	for i := 1; i < len(qualifying); i++ {
		if qualifying[i].Sub(qualifying[i-1]) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	snap.LongestStreak = longest

	latest := qualifying[len(qualifying)-1]
	snap.LastQualifyingDate = latest.Format(domain.DayLayout)

	// Current: anchored to now — dead unless the latest qualifying day is
	// today or yesterday.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if today.Sub(latest) > 24*time.Hour {
		return snap
	}

	current := 1
	for i := len(qualifying) - 2; i >= 0; i-- {
		if qualifying[i+1].Sub(qualifying[i]) != 24*time.Hour {
			break
		}
		current++
	}
	snap.CurrentStreak = current
	return snap
}

// StreakService computes streak snapshots from stored checkmarks.
type StreakService struct {
	db        *sqlite.DB
	minChecks int
}

// NewStreakService creates a streak service. minChecks <= 0 uses the default.
func NewStreakService(db *sqlite.DB, minChecks int) *StreakService {
	if minChecks <= 0 {
		minChecks = DefaultMinChecksPerDay
	}
	return &StreakService{db: db, minChecks: minChecks}
}

// Current recomputes the streak snapshot from checkmark history.
func (s *StreakService) Current(now time.Time) (domain.StreakSnapshot, error) {
	history, err := s.db.CheckmarkHistory()
	if err != nil {
		return domain.StreakSnapshot{}, err
	}
	snap := CalculateStreak(history, s.minChecks, now)
	metrics.CurrentStreak.Set(float64(snap.CurrentStreak))
	return snap, nil
}

// RecordCheckmark upserts one routine-day checkmark (replace on rewrite).
func (s *StreakService) RecordCheckmark(c domain.Checkmark) error {
	return s.db.UpsertCheckmark(c)
}
