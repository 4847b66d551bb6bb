package performance

import (
	"math"
	"testing"
	"time"

	"github.com/glintlab/glint/internal/domain"
	"github.com/glintlab/glint/internal/infra/sqlite"
)

func TestScoreTasks(t *testing.T) {
	tasks := func(done, total int) []domain.TaskRecord {
		out := make([]domain.TaskRecord, total)
		for i := range out {
			out[i].Status = domain.TaskTodo
			if i < done {
				out[i].Status = domain.TaskDone
			}
		}
		return out
	}

	tests := []struct {
		name        string
		done, total int
		want        float64
	}{
		{"no tasks", 0, 0, 0},
		{"none done", 0, 4, 0},
		{"seven of ten", 7, 10, 70},
		{"all done", 5, 5, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreTasks(tasks(tt.done, tt.total)); got != tt.want {
				t.Errorf("ScoreTasks = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreRoutinesAveragesPerDayPercentages(t *testing.T) {
	history := map[string][]domain.Checkmark{
		// 100% day
		"2025-07-01": {
			{RoutineID: "a", Day: "2025-07-01", Done: true},
			{RoutineID: "b", Day: "2025-07-01", Done: true},
		},
		// 50% day
		"2025-07-02": {
			{RoutineID: "a", Day: "2025-07-02", Done: true},
			{RoutineID: "b", Day: "2025-07-02", Done: false},
		},
	}

	if got := ScoreRoutines(history); got != 75 {
		t.Errorf("ScoreRoutines = %v, want 75", got)
	}
	if got := ScoreRoutines(nil); got != 0 {
		t.Errorf("ScoreRoutines(empty) = %v, want 0", got)
	}
}

func TestScoreApplications(t *testing.T) {
	apps := func(statuses ...domain.ApplicationStatus) []domain.ApplicationRecord {
		out := make([]domain.ApplicationRecord, len(statuses))
		for i, st := range statuses {
			out[i].Status = st
		}
		return out
	}

	tests := []struct {
		name string
		apps []domain.ApplicationRecord
		want float64
	}{
		{"no applications", nil, 0},
		{"single offer", apps(domain.AppOffer), 100},
		{"single rejection", apps(domain.AppRejected), 0},
		{"mixed pipeline", apps(domain.AppWishlist, domain.AppApplied, domain.AppInterviewing, domain.AppOffer), 47.5},
		{"unknown status weighs zero", apps(domain.ApplicationStatus("ghosted")), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreApplications(tt.apps); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ScoreApplications = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScoreFinances(t *testing.T) {
	logs := []domain.FinanceLog{
		{Month: "2025-05", Net: 250},
		{Month: "2025-06", Net: -40},
		{Month: "2025-07", Net: 0}, // zero counts as non-negative
	}

	want := 100 * 2.0 / 3.0
	if got := ScoreFinances(logs); math.Abs(got-want) > 1e-9 {
		t.Errorf("ScoreFinances = %v, want %v", got, want)
	}

	// No logs scores 0, not a vacuous pass.
	if got := ScoreFinances(nil); got != 0 {
		t.Errorf("ScoreFinances(empty) = %v, want 0", got)
	}
}

func TestScoreTime(t *testing.T) {
	tests := []struct {
		name    string
		entries []domain.TimeEntry
		want    float64
	}{
		// No sink entries is the opposite default from finances: 100.
		{"no entries", nil, 100},
		{"one hour one day", []domain.TimeEntry{
			{ID: "1", Day: "2025-07-01", Label: "scrolling", Hours: 1},
		}, 75},
		{"four hours over two days average to two", []domain.TimeEntry{
			{ID: "1", Day: "2025-07-01", Label: "scrolling", Hours: 3},
			{ID: "2", Day: "2025-07-02", Label: "videos", Hours: 1},
		}, 50},
		{"heavy sink clamps to zero", []domain.TimeEntry{
			{ID: "1", Day: "2025-07-01", Label: "binge", Hours: 12},
		}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreTime(tt.entries); got != tt.want {
				t.Errorf("ScoreTime = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOverallExcludesNaN(t *testing.T) {
	scores := domain.DomainScores{
		Tasks:        80,
		Routines:     60,
		Applications: math.NaN(),
		Finances:     math.NaN(),
		Time:         100,
	}
	if got := Overall(scores); got != 80 {
		t.Errorf("Overall = %v, want 80 (mean of the three valid domains)", got)
	}

	allNaN := domain.DomainScores{
		Tasks: math.NaN(), Routines: math.NaN(), Applications: math.NaN(),
		Finances: math.NaN(), Time: math.NaN(),
	}
	if got := Overall(allNaN); got != 0 {
		t.Errorf("Overall(all NaN) = %v, want 0", got)
	}
}

func TestClassifyBands(t *testing.T) {
	tests := []struct {
		pct  float64
		want domain.ExcellenceLevel
	}{
		{0, domain.LevelVeryBad},
		{50, domain.LevelVeryBad},
		{50.1, domain.LevelBad},
		{70, domain.LevelBad},
		{70.1, domain.LevelRegular},
		{80, domain.LevelRegular},
		{80.1, domain.LevelGood},
		{90, domain.LevelGood},
		{90.1, domain.LevelGreat},
		{95, domain.LevelGreat},
		{95.1, domain.LevelExcellent},
		{100, domain.LevelExcellent},
	}

	for _, tt := range tests {
		level, suggestion := Classify(tt.pct)
		if level != tt.want {
			t.Errorf("Classify(%v) = %s, want %s", tt.pct, level, tt.want)
		}
		if suggestion == "" {
			t.Errorf("Classify(%v) has no suggestion", tt.pct)
		}
	}
}

func TestClassifyCoversEveryScore(t *testing.T) {
	// Sweep the whole range: every score must land in exactly one band.
	for pct := 0.0; pct <= 100.0; pct += 0.5 {
		level, _ := Classify(pct)
		if level == "" {
			t.Fatalf("Classify(%v) returned no level", pct)
		}
	}
	if level, _ := Classify(math.NaN()); level != domain.LevelVeryBad {
		t.Errorf("Classify(NaN) = %s, want very-bad", level)
	}
	if level, _ := Classify(-3); level != domain.LevelVeryBad {
		t.Errorf("Classify(-3) = %s, want very-bad", level)
	}
	if level, _ := Classify(140); level != domain.LevelExcellent {
		t.Errorf("Classify(140) = %s, want excellent", level)
	}
}

func TestServiceSnapshotRoundTrip(t *testing.T) {
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	svc := NewService(db)
	now := time.Date(2025, 7, 15, 18, 0, 0, 0, time.UTC)

	// 7 of 10 tasks done; no sink entries (time defaults to 100).
	for i := 0; i < 10; i++ {
		task := domain.TaskRecord{ID: string(rune('a' + i)), Title: "t", Status: domain.TaskTodo, Priority: domain.PriorityLow}
		if i < 7 {
			task.Status = domain.TaskDone
		}
		if err := db.UpsertTask(task); err != nil {
			t.Fatalf("UpsertTask: %v", err)
		}
	}

	snap, err := svc.RecordSnapshot(now)
	if err != nil {
		t.Fatalf("RecordSnapshot: %v", err)
	}
	if snap.Day != "2025-07-15" {
		t.Errorf("Day = %q, want 2025-07-15", snap.Day)
	}
	if snap.Domains.Tasks != 70 {
		t.Errorf("Domains.Tasks = %v, want 70", snap.Domains.Tasks)
	}

	// Re-record the same day: replaced, not appended.
	if _, err := svc.RecordSnapshot(now.Add(2 * time.Hour)); err != nil {
		t.Fatalf("RecordSnapshot rerun: %v", err)
	}
	history, err := svc.History(0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history has %d entries, want 1", len(history))
	}
	got := history[0]
	if got.Level == "" || got.Suggestion == "" {
		t.Errorf("persisted snapshot missing classification: %+v", got)
	}
	if got.Domains.Tasks != 70 || got.Domains.Time != 100 {
		t.Errorf("persisted domains = %+v", got.Domains)
	}
}
