package ledger

import (
	"errors"
	"testing"

	"github.com/glintlab/glint/internal/domain"
	"github.com/glintlab/glint/internal/infra/sqlite"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := sqlite.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewService(db)
}

func TestServiceCreditDebitRoundTrip(t *testing.T) {
	svc := newTestService(t)

	if err := svc.Credit(10, "test earn"); err != nil {
		t.Fatalf("Credit: %v", err)
	}
	if err := svc.Debit(4, "test spend"); err != nil {
		t.Fatalf("Debit: %v", err)
	}

	l, err := svc.Ledger()
	if err != nil {
		t.Fatalf("Ledger: %v", err)
	}
	if l.Balance != 6 || l.TotalEarned != 10 || l.TotalSpent != 4 {
		t.Errorf("ledger = %+v, want balance 6, earned 10, spent 4", l)
	}
	if !l.Consistent() {
		t.Error("persisted ledger violates invariant")
	}
}

func TestServiceEmptyLedgerIsZero(t *testing.T) {
	svc := newTestService(t)

	l, err := svc.Ledger()
	if err != nil {
		t.Fatalf("Ledger: %v", err)
	}
	if l.Balance != 0 || l.TotalEarned != 0 || l.TotalSpent != 0 {
		t.Errorf("fresh ledger = %+v, want all zero", l)
	}
}

func TestServiceDebitGuardLeavesStorageUntouched(t *testing.T) {
	svc := newTestService(t)
	if err := svc.Credit(15, "seed"); err != nil {
		t.Fatalf("Credit: %v", err)
	}

	err := svc.Debit(20, "too expensive")
	if !errors.Is(err, domain.ErrInsufficientFunds) {
		t.Fatalf("Debit(20) = %v, want ErrInsufficientFunds", err)
	}

	l, err := svc.Ledger()
	if err != nil {
		t.Fatalf("Ledger: %v", err)
	}
	if l.Balance != 15 || l.TotalSpent != 0 {
		t.Errorf("ledger mutated by rejected debit: %+v", l)
	}

	// No audit entry for the failed transaction either.
	entries, err := svc.History(0)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("history has %d entries, want 1 (the seed credit)", len(entries))
	}
}

func TestServiceReset(t *testing.T) {
	svc := newTestService(t)
	if err := svc.Credit(100, "seed"); err != nil {
		t.Fatalf("Credit: %v", err)
	}
	if err := svc.Reset("operator reset"); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	l, err := svc.Ledger()
	if err != nil {
		t.Fatalf("Ledger: %v", err)
	}
	if l.Balance != 0 || l.TotalEarned != 0 || l.TotalSpent != 0 {
		t.Errorf("ledger after reset = %+v, want all zero", l)
	}
}

func TestGrantTiers(t *testing.T) {
	tests := []struct {
		name  string
		grant func(s *Service) error
		want  int64
	}{
		{"routine", func(s *Service) error { return s.GrantRoutineGems("r1", false) }, 5},
		{"routine with reflection", func(s *Service) error { return s.GrantRoutineGems("r1", true) }, 10},
		{"task low", func(s *Service) error { return s.GrantTaskGems("t1", domain.PriorityLow) }, 2},
		{"task medium", func(s *Service) error { return s.GrantTaskGems("t1", domain.PriorityMedium) }, 5},
		{"task high", func(s *Service) error { return s.GrantTaskGems("t1", domain.PriorityHigh) }, 10},
		{"task unknown priority defaults to medium", func(s *Service) error { return s.GrantTaskGems("t1", "urgent") }, 5},
		{"pomodoro", func(s *Service) error { return s.GrantPomodoroGems("s1") }, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t)
			if err := tt.grant(svc); err != nil {
				t.Fatalf("grant: %v", err)
			}
			l, err := svc.Ledger()
			if err != nil {
				t.Fatalf("Ledger: %v", err)
			}
			if l.Balance != tt.want {
				t.Errorf("Balance = %d, want %d", l.Balance, tt.want)
			}
		})
	}
}

func TestHistoryNewestFirstWithRunningBalance(t *testing.T) {
	svc := newTestService(t)
	if err := svc.Credit(10, "first"); err != nil {
		t.Fatalf("Credit: %v", err)
	}
	if err := svc.Credit(5, "second"); err != nil {
		t.Fatalf("Credit: %v", err)
	}
	if err := svc.Debit(3, "third"); err != nil {
		t.Fatalf("Debit: %v", err)
	}

	entries, err := svc.History(10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].Reason != "third" || entries[0].Kind != domain.TxSpend || entries[0].Balance != 12 {
		t.Errorf("entries[0] = %+v, want spend of 3 leaving balance 12", entries[0])
	}
	if entries[2].Reason != "first" || entries[2].Balance != 10 {
		t.Errorf("entries[2] = %+v, want the first credit at balance 10", entries[2])
	}
}
