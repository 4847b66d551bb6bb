// Package api provides the HTTP server for the Glint engine. It exposes
// the ledger, the achievement and reward catalogs, streaks, performance
// scores, and the domain-event endpoints that drive re-evaluation.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/glintlab/glint/internal/app/engagement"
	"github.com/glintlab/glint/internal/app/ledger"
	"github.com/glintlab/glint/internal/app/performance"
	"github.com/glintlab/glint/internal/domain"
	"github.com/glintlab/glint/internal/infra/sqlite"
)

// Server is the Glint HTTP API server.
type Server struct {
	db             *sqlite.DB
	gems           *ledger.Service
	achievements   *engagement.AchievementService
	rewards        *engagement.RewardService
	streaks        *engagement.StreakService
	tracker        *engagement.Tracker
	context        *engagement.ContextBuilder
	performance    *performance.Service
	metricsEnabled bool
}

// NewServer creates a new API server over the wired services.
func NewServer(db *sqlite.DB, gems *ledger.Service, a *engagement.AchievementService,
	r *engagement.RewardService, s *engagement.StreakService, t *engagement.Tracker,
	c *engagement.ContextBuilder, p *performance.Service) *Server {
	return &Server{
		db: db, gems: gems, achievements: a, rewards: r,
		streaks: s, tracker: t, context: c, performance: p,
	}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		// Ledger
		r.Get("/gems", s.handleGems)
		r.Get("/gems/history", s.handleGemHistory)
		r.Post("/gems/reset", s.handleGemReset)

		// Achievements
		r.Get("/achievements", s.handleAchievements)
		r.Post("/achievements/check", s.handleAchievementCheck)
		r.Post("/achievements/{id}/revoke", s.handleAchievementRevoke)

		// Rewards
		r.Get("/rewards", s.handleRewards)
		r.Post("/rewards/refresh", s.handleRewardRefresh)
		r.Post("/rewards/{id}/purchase", s.handleRewardPurchase)

		// Streak
		r.Get("/streak", s.handleStreak)

		// Performance
		r.Get("/performance", s.handlePerformance)
		r.Get("/performance/history", s.handlePerformanceHistory)
		r.Post("/performance/snapshot", s.handlePerformanceSnapshot)

		// Domain events ("re-evaluate on event" — no polling)
		r.Post("/events/routine", s.handleRoutineEvent)
		r.Post("/events/task", s.handleTaskEvent)
		r.Post("/events/pomodoro", s.handlePomodoroEvent)
		r.Post("/events/study", s.handleStudyEvent)

		// Domain record feeds (collaborator snapshots)
		r.Post("/checkmarks", s.handleCheckmarkUpsert)
		r.Post("/records/tasks", s.handleTaskUpsert)
		r.Post("/records/applications", s.handleApplicationUpsert)
		r.Post("/records/finances", s.handleFinanceUpsert)
		r.Post("/records/time", s.handleTimeEntryInsert)
	})

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

// ─── Helpers ────────────────────────────────────────────────────────────────

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// errStatus maps domain sentinel errors to HTTP status codes.
func errStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrAchievementNotFound),
		errors.Is(err, domain.ErrRewardNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrRewardNotPurchasable),
		errors.Is(err, domain.ErrNotUnlocked):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, domain.ErrAlreadyTerminal):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// corsMiddleware adds CORS headers for the local dashboard.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
