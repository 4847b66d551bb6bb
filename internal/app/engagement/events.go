package engagement

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/glintlab/glint/internal/app/ledger"
	"github.com/glintlab/glint/internal/domain"
	"github.com/glintlab/glint/internal/infra/sqlite"
)

// Tracker is the event entry point of the engine. Instead of a polling
// timer, callers invoke it whenever a relevant domain event occurs (routine
// done, task done, pomodoro finished); it grants the gem tier, bumps the
// counters conditions bind to, and re-evaluates achievements and rewards.
type Tracker struct {
	db           *sqlite.DB
	gems         *ledger.Service
	achievements *AchievementService
	rewards      *RewardService
	context      *ContextBuilder
}

// NewTracker wires the event tracker.
func NewTracker(db *sqlite.DB, gems *ledger.Service, a *AchievementService, r *RewardService, c *ContextBuilder) *Tracker {
	return &Tracker{db: db, gems: gems, achievements: a, rewards: r, context: c}
}

// EventResult reports what one event triggered.
type EventResult struct {
	GemsGranted          int64                `json:"gems_granted"`
	UnlockedAchievements []domain.Achievement `json:"unlocked_achievements,omitempty"`
	UnlockedRewards      []domain.Reward      `json:"unlocked_rewards,omitempty"`
}

// CompleteRoutine records a routine's checkmark for the day and grants the
// routine tier. Re-marking the same (routine, day) replaces the checkmark
// but grants again only when it was not already done.
func (t *Tracker) CompleteRoutine(routineID, reflection string, now time.Time) (*EventResult, error) {
	day := now.UTC().Format(domain.DayLayout)

	history, err := t.db.CheckmarkHistory()
	if err != nil {
		return nil, err
	}
	alreadyDone := false
	for _, m := range history[day] {
		if m.RoutineID == routineID && m.Done {
			alreadyDone = true
			break
		}
	}

	mark := domain.Checkmark{RoutineID: routineID, Day: day, Done: true, Reflection: reflection}
	if err := t.db.UpsertCheckmark(mark); err != nil {
		return nil, fmt.Errorf("record checkmark: %w", err)
	}

	var granted int64
	if !alreadyDone {
		granted = ledger.RoutineGems
		if reflection != "" {
			granted = ledger.RoutineReflectionGems
		}
		if err := t.gems.GrantRoutineGems(routineID, reflection != ""); err != nil {
			return nil, err
		}
	}

	return t.reevaluate(granted, now)
}

// CompleteTask marks a task done, grants its priority tier, and bumps the
// lifetime and today counters.
func (t *Tracker) CompleteTask(taskID string, priority domain.TaskPriority, now time.Time) (*EventResult, error) {
	task := domain.TaskRecord{ID: taskID, Status: domain.TaskDone, Priority: priority}
	if existing, err := t.findTask(taskID); err != nil {
		return nil, err
	} else if existing != nil {
		task.Title = existing.Title
		if existing.Status == domain.TaskDone {
			// Completing a completed task is a no-op, not a second grant.
			return t.reevaluate(0, now)
		}
	}
	if err := t.db.UpsertTask(task); err != nil {
		return nil, fmt.Errorf("record task: %w", err)
	}

	if err := t.gems.GrantTaskGems(taskID, priority); err != nil {
		return nil, err
	}
	if err := bumpCounter(t.db, kvTasksLifetime, 1); err != nil {
		return nil, err
	}
	day := now.UTC().Format(domain.DayLayout)
	if err := bumpCounter(t.db, kvTasksToday+day, 1); err != nil {
		return nil, err
	}

	granted := ledger.TaskGemsMedium
	switch priority {
	case domain.PriorityLow:
		granted = ledger.TaskGemsLow
	case domain.PriorityHigh:
		granted = ledger.TaskGemsHigh
	}
	return t.reevaluate(granted, now)
}

// CompletePomodoro records a finished focus session and grants its tier.
func (t *Tracker) CompletePomodoro(minutes int, now time.Time) (*EventResult, error) {
	if minutes <= 0 {
		minutes = 25
	}
	session := domain.FocusSession{ID: uuid.NewString(), FinishedAt: now, Minutes: minutes}
	if err := t.db.InsertFocusSession(session); err != nil {
		return nil, fmt.Errorf("record session: %w", err)
	}
	if err := t.gems.GrantPomodoroGems(session.ID); err != nil {
		return nil, err
	}
	return t.reevaluate(ledger.PomodoroGems, now)
}

// NoteConceptsStudied bumps today's studied-concepts counter and
// re-evaluates (feeds study-concepts reward conditions).
func (t *Tracker) NoteConceptsStudied(count int, now time.Time) (*EventResult, error) {
	if count <= 0 {
		return t.reevaluate(0, now)
	}
	day := now.UTC().Format(domain.DayLayout)
	if err := bumpCounter(t.db, kvConceptsToday+day, int64(count)); err != nil {
		return nil, err
	}
	return t.reevaluate(0, now)
}

// reevaluate runs one full evaluation round after an event.
func (t *Tracker) reevaluate(granted int64, now time.Time) (*EventResult, error) {
	ctx, err := t.context.Build(now)
	if err != nil {
		return nil, fmt.Errorf("build eval context: %w", err)
	}

	res := &EventResult{GemsGranted: granted}
	if res.UnlockedAchievements, err = t.achievements.CheckAll(ctx, now); err != nil {
		return nil, err
	}
	if res.UnlockedRewards, err = t.rewards.RefreshAll(ctx, now); err != nil {
		return nil, err
	}
	return res, nil
}

func (t *Tracker) findTask(id string) (*domain.TaskRecord, error) {
	tasks, err := t.db.ListTasks()
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		if tasks[i].ID == id {
			return &tasks[i], nil
		}
	}
	return nil, nil
}
