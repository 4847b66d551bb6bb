package engagement

import (
	"errors"
	"testing"
	"time"

	"github.com/glintlab/glint/internal/app/ledger"
	"github.com/glintlab/glint/internal/domain"
	"github.com/glintlab/glint/internal/infra/sqlite"
)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

var testNow = time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC)

func TestCheckAndUnlock(t *testing.T) {
	a := domain.Achievement{
		ID:        "tasks-50",
		Name:      "Task Tamer",
		GemReward: 75,
		Condition: domain.Condition{Type: domain.CondTaskCompleted, Target: 50},
	}

	// Below target: progress advances, no unlock.
	next, isNew := CheckAndUnlock(a, domain.EvalContext{TasksCompleted: 30}, testNow)
	if isNew {
		t.Error("unlocked below target")
	}
	if next.Condition.Progress != 30 {
		t.Errorf("Progress = %v, want 30", next.Condition.Progress)
	}

	// At target: unlocks exactly once.
	next, isNew = CheckAndUnlock(a, domain.EvalContext{TasksCompleted: 50}, testNow)
	if !isNew {
		t.Fatal("did not unlock at target")
	}
	if !next.IsUnlocked || !next.UnlockedAt.Equal(testNow) {
		t.Errorf("unlock state = unlocked %v at %v", next.IsUnlocked, next.UnlockedAt)
	}

	// Replaying the evaluation on the unlocked copy is a no-op.
	again, isNew := CheckAndUnlock(next, domain.EvalContext{TasksCompleted: 60}, testNow.Add(time.Hour))
	if isNew {
		t.Error("unlocked a second time")
	}
	if again != next {
		t.Errorf("unlocked achievement mutated by replay: %+v", again)
	}
}

func TestCheckAndUnlockSkipsRevoked(t *testing.T) {
	a := domain.Achievement{
		ID:         "streak-7",
		IsUnlocked: true,
		IsRevoked:  true,
		Condition:  domain.Condition{Type: domain.CondRoutineStreak, Target: 7},
	}

	next, isNew := CheckAndUnlock(a, domain.EvalContext{CurrentStreak: 10}, testNow)
	if isNew || next != a {
		t.Errorf("revoked achievement changed: isNew=%v next=%+v", isNew, next)
	}
}

func TestRevoke(t *testing.T) {
	locked := domain.Achievement{ID: "streak-7"}
	if _, err := Revoke(locked, "cheating", testNow); !errors.Is(err, domain.ErrNotUnlocked) {
		t.Errorf("Revoke(locked) = %v, want ErrNotUnlocked", err)
	}

	unlocked := domain.Achievement{ID: "streak-7", IsUnlocked: true, UnlockedAt: testNow.Add(-24 * time.Hour)}
	revoked, err := Revoke(unlocked, "streak data corrected", testNow)
	if err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if !revoked.IsRevoked || revoked.RevokeReason != "streak data corrected" {
		t.Errorf("revoked = %+v", revoked)
	}
	if !revoked.IsUnlocked {
		t.Error("revocation cleared IsUnlocked; history must keep the earn")
	}

	if _, err := Revoke(revoked, "again", testNow); !errors.Is(err, domain.ErrAlreadyTerminal) {
		t.Errorf("Revoke(revoked) = %v, want ErrAlreadyTerminal", err)
	}
}

func TestCheckAllCreditsExactlyOnce(t *testing.T) {
	db := newTestDB(t)
	gems := ledger.NewService(db)
	svc := NewAchievementService(db, gems)

	a := domain.Achievement{
		ID:        "focus-1",
		Name:      "First Focus",
		Category:  domain.CatFocus,
		GemReward: 5,
		Condition: domain.Condition{Type: domain.CondPomodoroSessions, Target: 1},
	}
	if err := db.UpsertAchievement(a); err != nil {
		t.Fatalf("UpsertAchievement: %v", err)
	}

	ctx := domain.EvalContext{PomodoroSessions: 1}
	unlocked, err := svc.CheckAll(ctx, testNow)
	if err != nil {
		t.Fatalf("CheckAll: %v", err)
	}
	if len(unlocked) != 1 || unlocked[0].ID != "focus-1" {
		t.Fatalf("unlocked = %+v, want [focus-1]", unlocked)
	}

	// Replay with a higher counter: still unlocked, no second credit.
	unlocked, err = svc.CheckAll(domain.EvalContext{PomodoroSessions: 3}, testNow.Add(time.Hour))
	if err != nil {
		t.Fatalf("CheckAll replay: %v", err)
	}
	if len(unlocked) != 0 {
		t.Errorf("replay unlocked %d achievements, want 0", len(unlocked))
	}

	l, err := gems.Ledger()
	if err != nil {
		t.Fatalf("Ledger: %v", err)
	}
	if l.Balance != 5 {
		t.Errorf("Balance = %d, want 5 (credited exactly once)", l.Balance)
	}
}

func TestServiceRevokeKeepsGems(t *testing.T) {
	db := newTestDB(t)
	gems := ledger.NewService(db)
	svc := NewAchievementService(db, gems)

	a := domain.Achievement{
		ID:        "apps-1",
		Name:      "Hat in the Ring",
		Category:  domain.CatApplications,
		GemReward: 10,
		Condition: domain.Condition{Type: domain.CondApplicationsSent, Target: 1},
	}
	if err := db.UpsertAchievement(a); err != nil {
		t.Fatalf("UpsertAchievement: %v", err)
	}
	if _, err := svc.CheckAll(domain.EvalContext{ApplicationsSent: 1}, testNow); err != nil {
		t.Fatalf("CheckAll: %v", err)
	}

	revoked, err := svc.Revoke("apps-1", "duplicate entry", testNow.Add(time.Hour))
	if err != nil {
		t.Fatalf("Revoke: %v", err)
	}
	if !revoked.IsRevoked {
		t.Error("achievement not marked revoked")
	}

	// No clawback: the earlier credit stands.
	l, err := gems.Ledger()
	if err != nil {
		t.Fatalf("Ledger: %v", err)
	}
	if l.Balance != 10 {
		t.Errorf("Balance = %d, want 10 (revocation never debits)", l.Balance)
	}

	count, err := svc.UnlockedCount()
	if err != nil {
		t.Fatalf("UnlockedCount: %v", err)
	}
	if count != 1 {
		t.Errorf("UnlockedCount = %d, want 1 (revoked stays counted as earned)", count)
	}
}

func TestServiceRevokeUnknownID(t *testing.T) {
	db := newTestDB(t)
	svc := NewAchievementService(db, ledger.NewService(db))

	if _, err := svc.Revoke("no-such", "reason", testNow); !errors.Is(err, domain.ErrAchievementNotFound) {
		t.Errorf("Revoke(unknown) = %v, want ErrAchievementNotFound", err)
	}
}

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	gems := ledger.NewService(db)
	svc := NewAchievementService(db, gems)

	if err := svc.SeedDefaults(); err != nil {
		t.Fatalf("SeedDefaults: %v", err)
	}

	// Unlock one, then reseed: the unlock must survive.
	if _, err := svc.CheckAll(domain.EvalContext{TasksCompleted: 1}, testNow); err != nil {
		t.Fatalf("CheckAll: %v", err)
	}
	if err := svc.SeedDefaults(); err != nil {
		t.Fatalf("SeedDefaults rerun: %v", err)
	}

	all, err := svc.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != len(DefaultAchievements()) {
		t.Errorf("catalog has %d entries, want %d", len(all), len(DefaultAchievements()))
	}
	a, err := db.GetAchievement("tasks-1")
	if err != nil {
		t.Fatalf("GetAchievement: %v", err)
	}
	if !a.IsUnlocked {
		t.Error("reseed reset the unlocked tasks-1 achievement")
	}
}
