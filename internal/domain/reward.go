package domain

import "time"

// ─── Rewards ────────────────────────────────────────────────────────────────

// RewardType distinguishes the two reward kinds.
type RewardType string

const (
	RewardConditional RewardType = "conditional" // unlocks when all conditions are met
	RewardPurchasable RewardType = "purchasable" // bought with gems
)

// ResetFrequency governs when a conditional reward's conditions cycle back
// to unmet. Conditional rewards are recurring gates, not permanent unlocks.
type ResetFrequency string

const (
	ResetDaily   ResetFrequency = "daily"
	ResetWeekly  ResetFrequency = "weekly"
	ResetMonthly ResetFrequency = "monthly"
	ResetNever   ResetFrequency = "one-time"
)

// Reward is a catalog entry of either kind. Conditional fields
// (Conditions, ResetFrequency, LastResetAt) and purchasable fields
// (GemCost, IsPurchased, PurchasedAt) are mutually exclusive in use.
type Reward struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Type        RewardType `json:"type"`
	Category    string     `json:"category"`
	Icon        string     `json:"icon"` // opaque display metadata

	// Conditional
	Conditions     []Condition    `json:"conditions,omitempty"`
	IsUnlocked     bool           `json:"is_unlocked"`
	ResetFrequency ResetFrequency `json:"reset_frequency,omitempty"`
	LastResetAt    time.Time      `json:"last_reset_at,omitempty"`

	// Purchasable
	GemCost     int64     `json:"gem_cost,omitempty"`
	IsPurchased bool      `json:"is_purchased,omitempty"`
	PurchasedAt time.Time `json:"purchased_at,omitempty"`

	TimesUsed int64 `json:"times_used"`
}

// AllConditionsMet reports whether every condition is met. Vacuously false
// for a reward with no conditions — an empty gate never unlocks.
func (r Reward) AllConditionsMet() bool {
	if len(r.Conditions) == 0 {
		return false
	}
	for _, c := range r.Conditions {
		if !c.IsMet {
			return false
		}
	}
	return true
}
