package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency. A failed operation
// never mutates state: every guard runs before the write, not after.

var (
	// Ledger errors
	ErrInvalidAmount     = errors.New("gem amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient gems for this operation")

	// Achievement errors
	ErrAchievementNotFound = errors.New("achievement not found")
	ErrNotUnlocked         = errors.New("achievement has not been unlocked")
	ErrAlreadyTerminal     = errors.New("record is in a terminal state")

	// Reward errors
	ErrRewardNotFound       = errors.New("reward not found")
	ErrRewardNotPurchasable = errors.New("reward is conditional, not purchasable")
)
