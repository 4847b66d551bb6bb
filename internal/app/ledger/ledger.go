// Package ledger implements the gem currency ledger.
// One singleton account per user; balance == total earned - total spent is
// an invariant checked before every mutation, never corrected after.
package ledger

import (
	"fmt"
	"time"

	"github.com/glintlab/glint/internal/domain"
	"github.com/glintlab/glint/internal/infra/metrics"
	"github.com/glintlab/glint/internal/infra/sqlite"
)

// Gem grant tiers. Policy constants, not computed — the sole sources of gem
// inflow outside achievement unlocks.
const (
	RoutineGems           int64 = 5  // routine completed
	RoutineReflectionGems int64 = 10 // routine completed with a reflection attached
	TaskGemsLow           int64 = 2
	TaskGemsMedium        int64 = 5
	TaskGemsHigh          int64 = 10
	PomodoroGems          int64 = 3 // focus session finished
)

// Service manages the gem economy.
type Service struct {
	db *sqlite.DB
}

// NewService creates a ledger service.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db}
}

// Ledger returns the current ledger snapshot.
func (s *Service) Ledger() (domain.GemLedger, error) {
	return s.db.GetLedger()
}

// Credit adds gems and appends an audit entry.
func (s *Service) Credit(amount int64, reason string) error {
	l, err := s.db.GetLedger()
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}
	if err := l.Credit(amount); err != nil {
		return err
	}
	if err := s.persist(l, domain.TxEarn, amount, reason); err != nil {
		return err
	}
	metrics.GemsEarned.Add(float64(amount))
	return nil
}

// Debit removes gems. The insufficient-funds check happens inside the pure
// ledger transform, before anything is written.
func (s *Service) Debit(amount int64, reason string) error {
	l, err := s.db.GetLedger()
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}
	if err := l.Debit(amount); err != nil {
		return err
	}
	if err := s.persist(l, domain.TxSpend, amount, reason); err != nil {
		return err
	}
	metrics.GemsSpent.Add(float64(amount))
	return nil
}

// Reset zeroes the account. Explicit operator action only.
func (s *Service) Reset(reason string) error {
	var l domain.GemLedger
	return s.persist(l, domain.TxReset, 0, reason)
}

// History returns recent audit entries, newest first.
func (s *Service) History(limit int) ([]domain.LedgerEntry, error) {
	return s.db.LedgerEntries(limit)
}

// persist writes the ledger row and its audit entry together.
func (s *Service) persist(l domain.GemLedger, kind domain.TxKind, amount int64, reason string) error {
	if err := s.db.SaveLedger(l); err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	_, err := s.db.InsertLedgerEntry(domain.LedgerEntry{
		Timestamp: time.Now(),
		Kind:      kind,
		Amount:    amount,
		Reason:    reason,
		Balance:   l.Balance,
	})
	if err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}
	return nil
}

// ─── Grant Tiers ────────────────────────────────────────────────────────────

// GrantRoutineGems credits the routine-completion tier. A reflection doubles
// the grant.
func (s *Service) GrantRoutineGems(routineID string, withReflection bool) error {
	amount := RoutineGems
	if withReflection {
		amount = RoutineReflectionGems
	}
	return s.Credit(amount, "routine completed: "+routineID)
}

// GrantTaskGems credits the task-completion tier by priority.
// An unrecognized priority falls back to the medium tier.
func (s *Service) GrantTaskGems(taskID string, priority domain.TaskPriority) error {
	amount := TaskGemsMedium
	switch priority {
	case domain.PriorityLow:
		amount = TaskGemsLow
	case domain.PriorityHigh:
		amount = TaskGemsHigh
	}
	return s.Credit(amount, "task completed: "+taskID)
}

// GrantPomodoroGems credits the focus-session tier.
func (s *Service) GrantPomodoroGems(sessionID string) error {
	return s.Credit(PomodoroGems, "focus session finished: "+sessionID)
}
