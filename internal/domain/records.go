package domain

import "time"

// ─── Domain Records ─────────────────────────────────────────────────────────
// Read-only snapshots of the surrounding features. The engine consumes these
// to score domains and to assemble EvalContext counters; it never owns their
// lifecycle beyond storage round-trips.

// TaskStatus is the kanban state of a task.
type TaskStatus string

const (
	TaskTodo  TaskStatus = "todo"
	TaskDoing TaskStatus = "doing"
	TaskDone  TaskStatus = "done"
)

// TaskPriority selects the gem tier granted on completion.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// TaskRecord is the engine's view of a task.
type TaskRecord struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Status   TaskStatus   `json:"status"`
	Priority TaskPriority `json:"priority"`
}

// ApplicationStatus is the pipeline stage of a job application.
type ApplicationStatus string

const (
	AppWishlist     ApplicationStatus = "wishlist"
	AppApplied      ApplicationStatus = "applied"
	AppInterviewing ApplicationStatus = "interviewing"
	AppOffer        ApplicationStatus = "offer"
	AppRejected     ApplicationStatus = "rejected"
)

// ApplicationRecord is the engine's view of a job application.
type ApplicationRecord struct {
	ID      string            `json:"id"`
	Company string            `json:"company"`
	Status  ApplicationStatus `json:"status"`
}

// FinanceLog is one month's net result. Month uses "2006-01".
type FinanceLog struct {
	Month string  `json:"month"`
	Net   float64 `json:"net"`
}

// TimeEntry records hours lost to a time sink on a given day.
type TimeEntry struct {
	ID    string  `json:"id"`
	Day   string  `json:"day"` // DayLayout
	Label string  `json:"label"`
	Hours float64 `json:"hours"`
}

// FocusSession is one finished pomodoro.
type FocusSession struct {
	ID         string    `json:"id"`
	FinishedAt time.Time `json:"finished_at"`
	Minutes    int       `json:"minutes"`
}
