// Package domain holds the pure types of the Glint scoring engine.
// No infrastructure imports: everything here is plain data plus the
// invariant-preserving transforms on it.
package domain

import "time"

// ─── Gem Ledger ─────────────────────────────────────────────────────────────

// GemLedger is the singleton gem account.
// Invariant: Balance == TotalEarned - TotalSpent, all fields >= 0,
// TotalEarned and TotalSpent only ever grow (Reset excepted).
type GemLedger struct {
	Balance     int64 `json:"balance"`
	TotalEarned int64 `json:"total_earned"`
	TotalSpent  int64 `json:"total_spent"`
}

// Credit adds gems to the ledger. Fails with ErrInvalidAmount on
// non-positive amounts; the ledger is untouched on error.
func (l *GemLedger) Credit(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	l.Balance += amount
	l.TotalEarned += amount
	return nil
}

// Debit removes gems from the ledger. The balance check runs before any
// mutation — Balance can never go negative.
func (l *GemLedger) Debit(amount int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if l.Balance < amount {
		return ErrInsufficientFunds
	}
	l.Balance -= amount
	l.TotalSpent += amount
	return nil
}

// Reset zeroes all three fields. Explicit operator action only — nothing
// in the engine calls this implicitly.
func (l *GemLedger) Reset() {
	l.Balance = 0
	l.TotalEarned = 0
	l.TotalSpent = 0
}

// Consistent reports whether the ledger invariant holds.
func (l GemLedger) Consistent() bool {
	return l.Balance >= 0 && l.TotalEarned >= 0 && l.TotalSpent >= 0 &&
		l.Balance == l.TotalEarned-l.TotalSpent
}

// ─── Ledger Entry History ───────────────────────────────────────────────────

// TxKind categorizes a ledger history entry.
type TxKind string

const (
	TxEarn  TxKind = "EARN"
	TxSpend TxKind = "SPEND"
	TxReset TxKind = "RESET"
)

// LedgerEntry is one line of the append-only gem audit trail. The singleton
// GemLedger row is ground truth; entries exist for display and audit.
type LedgerEntry struct {
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Kind      TxKind    `json:"kind"`
	Amount    int64     `json:"amount"`
	Reason    string    `json:"reason"`
	Balance   int64     `json:"balance"` // running balance after this entry
}
