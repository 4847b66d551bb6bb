package engagement

import (
	"testing"
	"time"

	"github.com/glintlab/glint/internal/app/ledger"
	"github.com/glintlab/glint/internal/domain"
)

func newTestTracker(t *testing.T) (*Tracker, *ledger.Service) {
	t.Helper()
	db := newTestDB(t)
	gems := ledger.NewService(db)
	achievements := NewAchievementService(db, gems)
	rewards := NewRewardService(db, gems)
	if err := achievements.SeedDefaults(); err != nil {
		t.Fatalf("seed achievements: %v", err)
	}
	if err := rewards.SeedDefaults(); err != nil {
		t.Fatalf("seed rewards: %v", err)
	}
	builder := NewContextBuilder(db, DefaultMinChecksPerDay)
	return NewTracker(db, gems, achievements, rewards, builder), gems
}

func TestCompleteRoutineGrantsOncePerDay(t *testing.T) {
	tracker, gems := newTestTracker(t)

	res, err := tracker.CompleteRoutine("morning-run", "", testNow)
	if err != nil {
		t.Fatalf("CompleteRoutine: %v", err)
	}
	if res.GemsGranted != ledger.RoutineGems {
		t.Errorf("GemsGranted = %d, want %d", res.GemsGranted, ledger.RoutineGems)
	}

	// Re-marking the same routine the same day replaces the checkmark
	// without a second grant.
	res, err = tracker.CompleteRoutine("morning-run", "felt great", testNow.Add(time.Hour))
	if err != nil {
		t.Fatalf("CompleteRoutine rerun: %v", err)
	}
	if res.GemsGranted != 0 {
		t.Errorf("rerun GemsGranted = %d, want 0", res.GemsGranted)
	}

	l, err := gems.Ledger()
	if err != nil {
		t.Fatalf("Ledger: %v", err)
	}
	if l.Balance != ledger.RoutineGems {
		t.Errorf("Balance = %d, want %d", l.Balance, ledger.RoutineGems)
	}
}

func TestCompleteRoutineReflectionDoublesGrant(t *testing.T) {
	tracker, gems := newTestTracker(t)

	res, err := tracker.CompleteRoutine("journal", "wrote two pages", testNow)
	if err != nil {
		t.Fatalf("CompleteRoutine: %v", err)
	}
	if res.GemsGranted != ledger.RoutineReflectionGems {
		t.Errorf("GemsGranted = %d, want %d", res.GemsGranted, ledger.RoutineReflectionGems)
	}

	l, err := gems.Ledger()
	if err != nil {
		t.Fatalf("Ledger: %v", err)
	}
	if l.Balance != ledger.RoutineReflectionGems {
		t.Errorf("Balance = %d, want %d", l.Balance, ledger.RoutineReflectionGems)
	}
}

func TestCompleteTaskUnlocksFirstTaskAchievement(t *testing.T) {
	tracker, gems := newTestTracker(t)

	res, err := tracker.CompleteTask("t1", domain.PriorityHigh, testNow)
	if err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	if res.GemsGranted != ledger.TaskGemsHigh {
		t.Errorf("GemsGranted = %d, want %d", res.GemsGranted, ledger.TaskGemsHigh)
	}

	found := false
	for _, a := range res.UnlockedAchievements {
		if a.ID == "tasks-1" {
			found = true
		}
	}
	if !found {
		t.Errorf("first task did not unlock tasks-1; got %+v", res.UnlockedAchievements)
	}

	// Task tier + the tasks-1 achievement reward.
	l, err := gems.Ledger()
	if err != nil {
		t.Fatalf("Ledger: %v", err)
	}
	want := ledger.TaskGemsHigh + 5
	if l.Balance != want {
		t.Errorf("Balance = %d, want %d", l.Balance, want)
	}
}

func TestCompleteTaskTwiceIsNoOp(t *testing.T) {
	tracker, gems := newTestTracker(t)

	if _, err := tracker.CompleteTask("t1", domain.PriorityLow, testNow); err != nil {
		t.Fatalf("CompleteTask: %v", err)
	}
	before, err := gems.Ledger()
	if err != nil {
		t.Fatalf("Ledger: %v", err)
	}

	res, err := tracker.CompleteTask("t1", domain.PriorityLow, testNow.Add(time.Minute))
	if err != nil {
		t.Fatalf("CompleteTask rerun: %v", err)
	}
	if res.GemsGranted != 0 {
		t.Errorf("rerun GemsGranted = %d, want 0", res.GemsGranted)
	}

	after, err := gems.Ledger()
	if err != nil {
		t.Fatalf("Ledger: %v", err)
	}
	if after.Balance != before.Balance {
		t.Errorf("Balance moved %d -> %d on a replayed completion", before.Balance, after.Balance)
	}
}

func TestCompletePomodoro(t *testing.T) {
	tracker, _ := newTestTracker(t)

	res, err := tracker.CompletePomodoro(25, testNow)
	if err != nil {
		t.Fatalf("CompletePomodoro: %v", err)
	}
	if res.GemsGranted != ledger.PomodoroGems {
		t.Errorf("GemsGranted = %d, want %d", res.GemsGranted, ledger.PomodoroGems)
	}

	found := false
	for _, a := range res.UnlockedAchievements {
		if a.ID == "focus-1" {
			found = true
		}
	}
	if !found {
		t.Errorf("first session did not unlock focus-1; got %+v", res.UnlockedAchievements)
	}
}

func TestDailyTreatUnlocksAfterThreeRoutines(t *testing.T) {
	tracker, _ := newTestTracker(t)

	var last *EventResult
	for i, id := range []string{"run", "read", "tidy"} {
		res, err := tracker.CompleteRoutine(id, "", testNow.Add(time.Duration(i)*time.Minute))
		if err != nil {
			t.Fatalf("CompleteRoutine(%s): %v", id, err)
		}
		last = res
	}

	found := false
	for _, r := range last.UnlockedRewards {
		if r.ID == "daily-treat" {
			found = true
		}
	}
	if !found {
		t.Errorf("third routine did not unlock daily-treat; got %+v", last.UnlockedRewards)
	}
}

func TestStudyConceptsFeedRewardConditions(t *testing.T) {
	tracker, _ := newTestTracker(t)

	for i := 0; i < 5; i++ {
		id := string(rune('a' + i))
		if _, err := tracker.CompleteTask("task-"+id, domain.PriorityLow, testNow); err != nil {
			t.Fatalf("CompleteTask: %v", err)
		}
	}
	res, err := tracker.NoteConceptsStudied(4, testNow)
	if err != nil {
		t.Fatalf("NoteConceptsStudied: %v", err)
	}

	found := false
	for _, r := range res.UnlockedRewards {
		if r.ID == "weekend-game" {
			found = true
		}
	}
	if !found {
		t.Errorf("5 tasks + 4 concepts did not unlock weekend-game; got %+v", res.UnlockedRewards)
	}
}
