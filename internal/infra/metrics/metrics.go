// Package metrics provides Prometheus metrics for the Glint engine:
// gem flow, achievement unlocks, reward purchases, streak and score gauges.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Gems ───────────────────────────────────────────────────────────────────

// GemsEarned tracks total gems credited.
var GemsEarned = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "glint",
	Name:      "gems_earned_total",
	Help:      "Total gems credited to the ledger.",
})

// GemsSpent tracks total gems debited.
var GemsSpent = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "glint",
	Name:      "gems_spent_total",
	Help:      "Total gems debited from the ledger.",
})

// ─── Engagement ─────────────────────────────────────────────────────────────

// AchievementsUnlocked tracks unlock events by category.
var AchievementsUnlocked = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "glint",
	Name:      "achievements_unlocked_total",
	Help:      "Total achievements unlocked.",
}, []string{"category"})

// AchievementsRevoked tracks revocation events.
var AchievementsRevoked = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "glint",
	Name:      "achievements_revoked_total",
	Help:      "Total achievements revoked.",
})

// RewardsPurchased tracks purchase events.
var RewardsPurchased = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "glint",
	Name:      "rewards_purchased_total",
	Help:      "Total purchasable rewards bought.",
})

// CurrentStreak mirrors the latest computed streak length.
var CurrentStreak = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "glint",
	Name:      "current_streak_days",
	Help:      "Current routine completion streak in days.",
})

// ─── Performance ────────────────────────────────────────────────────────────

// PerformanceScore mirrors the latest overall performance score.
var PerformanceScore = promauto.NewGauge(prometheus.GaugeOpts{
	Namespace: "glint",
	Name:      "performance_score_pct",
	Help:      "Latest overall performance score (0-100).",
})
