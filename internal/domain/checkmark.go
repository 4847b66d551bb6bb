package domain

// ─── Checkmarks & Streaks ───────────────────────────────────────────────────

// DayLayout is the calendar-day format used throughout the engine.
// Days carry no time component; "2025-07-01" is a complete key.
const DayLayout = "2006-01-02"

// Checkmark is one routine's record for one calendar day. At most one
// exists per (RoutineID, Day) — later writes update in place.
type Checkmark struct {
	RoutineID  string `json:"routine_id"`
	Day        string `json:"day"` // DayLayout
	Done       bool   `json:"done"`
	Reflection string `json:"reflection,omitempty"`
}

// StreakSnapshot is derived from checkmark history on demand and never
// persisted as ground truth (recomputing prevents drift).
type StreakSnapshot struct {
	CurrentStreak      int    `json:"current_streak"`
	LongestStreak      int    `json:"longest_streak"`
	LastQualifyingDate string `json:"last_qualifying_date,omitempty"` // DayLayout, "" when none
}
