package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/glintlab/glint/internal/domain"
)

// ─── Ledger ─────────────────────────────────────────────────────────────────

func (s *Server) handleGems(w http.ResponseWriter, r *http.Request) {
	l, err := s.gems.Ledger()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, l)
}

func (s *Server) handleGemHistory(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	entries, err := s.gems.History(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

func (s *Server) handleGemReset(w http.ResponseWriter, r *http.Request) {
	if err := s.gems.Reset("operator reset via API"); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// ─── Achievements ───────────────────────────────────────────────────────────

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	list, err := s.achievements.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	unlocked, err := s.achievements.UnlockedCount()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"achievements": list,
		"unlocked":     unlocked,
		"total":        len(list),
	})
}

func (s *Server) handleAchievementCheck(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	ctx, err := s.context.Build(now)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	unlocked, err := s.achievements.CheckAll(ctx, now)
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"newly_unlocked": unlocked})
}

type revokeRequest struct {
	Reason string `json:"reason"`
}

func (s *Server) handleAchievementRevoke(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req revokeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	a, err := s.achievements.Revoke(id, req.Reason, time.Now())
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// ─── Rewards ────────────────────────────────────────────────────────────────

func (s *Server) handleRewards(w http.ResponseWriter, r *http.Request) {
	list, err := s.rewards.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"rewards": list})
}

func (s *Server) handleRewardRefresh(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	ctx, err := s.context.Build(now)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	unlocked, err := s.rewards.RefreshAll(ctx, now)
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"newly_unlocked": unlocked})
}

func (s *Server) handleRewardPurchase(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	reward, err := s.rewards.Purchase(id, time.Now())
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, reward)
}

// ─── Streak ─────────────────────────────────────────────────────────────────

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	snap, err := s.streaks.Current(time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// ─── Performance ────────────────────────────────────────────────────────────

func (s *Server) handlePerformance(w http.ResponseWriter, r *http.Request) {
	snap, err := s.performance.Compute(time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handlePerformanceHistory(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	history, err := s.performance.History(limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"history": history})
}

func (s *Server) handlePerformanceSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := s.performance.RecordSnapshot(time.Now())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// ─── Domain Events ──────────────────────────────────────────────────────────

type routineEvent struct {
	RoutineID  string `json:"routine_id"`
	Reflection string `json:"reflection"`
}

func (s *Server) handleRoutineEvent(w http.ResponseWriter, r *http.Request) {
	var ev routineEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if ev.RoutineID == "" {
		writeError(w, http.StatusBadRequest, "routine_id is required")
		return
	}
	res, err := s.tracker.CompleteRoutine(ev.RoutineID, ev.Reflection, time.Now())
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type taskEvent struct {
	TaskID   string              `json:"task_id"`
	Priority domain.TaskPriority `json:"priority"`
}

func (s *Server) handleTaskEvent(w http.ResponseWriter, r *http.Request) {
	var ev taskEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if ev.TaskID == "" {
		ev.TaskID = uuid.NewString()
	}
	if ev.Priority == "" {
		ev.Priority = domain.PriorityMedium
	}
	res, err := s.tracker.CompleteTask(ev.TaskID, ev.Priority, time.Now())
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type pomodoroEvent struct {
	Minutes int `json:"minutes"`
}

func (s *Server) handlePomodoroEvent(w http.ResponseWriter, r *http.Request) {
	var ev pomodoroEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := s.tracker.CompletePomodoro(ev.Minutes, time.Now())
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

type studyEvent struct {
	Concepts int `json:"concepts"`
}

func (s *Server) handleStudyEvent(w http.ResponseWriter, r *http.Request) {
	var ev studyEvent
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	res, err := s.tracker.NoteConceptsStudied(ev.Concepts, time.Now())
	if err != nil {
		writeError(w, errStatus(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// ─── Record Feeds ───────────────────────────────────────────────────────────

func (s *Server) handleCheckmarkUpsert(w http.ResponseWriter, r *http.Request) {
	var c domain.Checkmark
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if c.RoutineID == "" || c.Day == "" {
		writeError(w, http.StatusBadRequest, "routine_id and day are required")
		return
	}
	if _, err := time.Parse(domain.DayLayout, c.Day); err != nil {
		writeError(w, http.StatusBadRequest, "day must be YYYY-MM-DD")
		return
	}
	if err := s.streaks.RecordCheckmark(c); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleTaskUpsert(w http.ResponseWriter, r *http.Request) {
	var t domain.TaskRecord
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Status == "" {
		t.Status = domain.TaskTodo
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	if err := s.db.UpsertTask(t); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleApplicationUpsert(w http.ResponseWriter, r *http.Request) {
	var a domain.ApplicationRecord
	if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.Status == "" {
		a.Status = domain.AppWishlist
	}
	if err := s.db.UpsertApplication(a); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (s *Server) handleFinanceUpsert(w http.ResponseWriter, r *http.Request) {
	var f domain.FinanceLog
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if f.Month == "" {
		writeError(w, http.StatusBadRequest, "month is required")
		return
	}
	if err := s.db.UpsertFinanceLog(f); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) handleTimeEntryInsert(w http.ResponseWriter, r *http.Request) {
	var e domain.TimeEntry
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Day == "" {
		e.Day = time.Now().UTC().Format(domain.DayLayout)
	}
	if err := s.db.InsertTimeEntry(e); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, e)
}
