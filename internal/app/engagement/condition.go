package engagement

import (
	"strconv"
	"time"

	"github.com/glintlab/glint/internal/domain"
	"github.com/glintlab/glint/internal/infra/sqlite"
)

// Engine KV keys for lifetime counters the condition evaluator binds to.
// Bumped by the event paths in events.go; day-scoped keys carry the day.
const (
	kvTasksLifetime = "counter_tasks_completed"
	kvTasksToday    = "counter_tasks_today:"    // + day
	kvConceptsToday = "counter_concepts_today:" // + day
)

// ContextBuilder assembles EvalContext snapshots from stored records.
// Conditions themselves stay pure — all the impure reads happen here, once
// per evaluation round.
type ContextBuilder struct {
	db        *sqlite.DB
	minChecks int
}

// NewContextBuilder creates a context builder.
func NewContextBuilder(db *sqlite.DB, minChecks int) *ContextBuilder {
	if minChecks <= 0 {
		minChecks = DefaultMinChecksPerDay
	}
	return &ContextBuilder{db: db, minChecks: minChecks}
}

// Build gathers every counter conditions can bind to. Missing sources
// yield zero counters, never errors from the evaluation itself.
func (b *ContextBuilder) Build(now time.Time) (domain.EvalContext, error) {
	var ctx domain.EvalContext

	history, err := b.db.CheckmarkHistory()
	if err != nil {
		return ctx, err
	}
	snap := CalculateStreak(history, b.minChecks, now)
	ctx.CurrentStreak = snap.CurrentStreak

	if ctx.TasksCompleted, err = b.counter(kvTasksLifetime); err != nil {
		return ctx, err
	}
	if ctx.PomodoroSessions, err = b.db.FocusSessionCount(); err != nil {
		return ctx, err
	}
	if ctx.ApplicationsSent, err = b.db.SentApplicationCount(); err != nil {
		return ctx, err
	}

	logs, err := b.db.ListFinanceLogs()
	if err != nil {
		return ctx, err
	}
	if len(logs) > 0 {
		ctx.MonthNet = logs[len(logs)-1].Net
	}

	day := now.UTC().Format(domain.DayLayout)
	if ctx.RoutinesToday, err = b.db.CompletedCheckmarksOn(day); err != nil {
		return ctx, err
	}
	tasksToday, err := b.counter(kvTasksToday + day)
	if err != nil {
		return ctx, err
	}
	ctx.TasksToday = int(tasksToday)
	conceptsToday, err := b.counter(kvConceptsToday + day)
	if err != nil {
		return ctx, err
	}
	ctx.ConceptsToday = int(conceptsToday)

	return ctx, nil
}

func (b *ContextBuilder) counter(key string) (int64, error) {
	raw, err := b.db.GetState(key)
	if err != nil {
		return 0, err
	}
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, nil // corrupt counter reads as zero, not as a crash
	}
	return n, nil
}

// bumpCounter increments a KV counter by delta.
func bumpCounter(db *sqlite.DB, key string, delta int64) error {
	raw, err := db.GetState(key)
	if err != nil {
		return err
	}
	n, _ := strconv.ParseInt(raw, 10, 64)
	return db.SetState(key, strconv.FormatInt(n+delta, 10))
}
