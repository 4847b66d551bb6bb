package domain

import "math"

// ─── Conditions ─────────────────────────────────────────────────────────────

// ConditionType names the numeric signal a condition is checked against.
// The binding is fixed per type; see EvalContext.Signal.
type ConditionType string

const (
	// Achievement condition types (lifetime counters)
	CondRoutineStreak    ConditionType = "routine-streak"    // current streak in days
	CondTaskCompleted    ConditionType = "task-completed"    // lifetime tasks completed
	CondPomodoroSessions ConditionType = "pomodoro-sessions" // lifetime focus sessions finished
	CondApplicationsSent ConditionType = "applications-sent" // lifetime applications submitted
	CondFinancialGoal    ConditionType = "financial-goal"    // current month net amount

	// Reward condition types (today's counters)
	CondRoutineCompletion ConditionType = "routine-completion" // routines completed today
	CondTaskCompletion    ConditionType = "task-completion"    // tasks completed today
	CondStudyConcepts     ConditionType = "study-concepts"     // concepts studied today

	// CondCustom evaluates against a caller-supplied value keyed by the
	// owning record's ID. It never auto-resolves without context.
	CondCustom ConditionType = "custom"
)

// Condition is a typed numeric-target gate shared by achievements and
// conditional rewards. Progress is always clamped to [0, Target].
type Condition struct {
	Type     ConditionType `json:"type"`
	Target   float64       `json:"target"`
	Progress float64       `json:"progress"`
	IsMet    bool          `json:"is_met"`
}

// Evaluate returns the condition with Progress and IsMet recomputed from a
// context value. Pure: same inputs, same output, the receiver is not touched.
// A NaN context value (unknown signal) evaluates to not met, never an error —
// a false negative is cheaper than a crash in a rewards-display path.
func (c Condition) Evaluate(contextValue float64) Condition {
	if math.IsNaN(contextValue) {
		contextValue = 0
	}
	progress := contextValue
	if progress < 0 {
		progress = 0
	}
	if progress > c.Target {
		progress = c.Target
	}
	c.Progress = progress
	c.IsMet = contextValue >= c.Target
	return c
}

// EvalContext is a snapshot of the counters conditions are checked against.
// Callers assemble it from the domain records at evaluation time; the
// evaluator itself holds no state.
type EvalContext struct {
	CurrentStreak    int     `json:"current_streak"`
	TasksCompleted   int64   `json:"tasks_completed"`
	PomodoroSessions int64   `json:"pomodoro_sessions"`
	ApplicationsSent int64   `json:"applications_sent"`
	MonthNet         float64 `json:"month_net"`

	RoutinesToday int `json:"routines_today"`
	TasksToday    int `json:"tasks_today"`
	ConceptsToday int `json:"concepts_today"`

	// Custom holds caller-supplied values for custom conditions, keyed by
	// the achievement or reward ID that owns the condition.
	Custom map[string]float64 `json:"custom,omitempty"`
}

// Signal resolves the numeric value a condition type binds to. ownerID is
// the achievement/reward ID, used only for custom conditions. Unknown types
// and missing custom keys yield NaN, which Evaluate treats as not met.
func (ctx EvalContext) Signal(t ConditionType, ownerID string) float64 {
	switch t {
	case CondRoutineStreak:
		return float64(ctx.CurrentStreak)
	case CondTaskCompleted:
		return float64(ctx.TasksCompleted)
	case CondPomodoroSessions:
		return float64(ctx.PomodoroSessions)
	case CondApplicationsSent:
		return float64(ctx.ApplicationsSent)
	case CondFinancialGoal:
		return ctx.MonthNet
	case CondRoutineCompletion:
		return float64(ctx.RoutinesToday)
	case CondTaskCompletion:
		return float64(ctx.TasksToday)
	case CondStudyConcepts:
		return float64(ctx.ConceptsToday)
	case CondCustom:
		if v, ok := ctx.Custom[ownerID]; ok {
			return v
		}
		return math.NaN()
	default:
		return math.NaN()
	}
}
