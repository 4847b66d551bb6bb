// Package performance computes the per-domain scores and the overall
// excellence classification. Every formula is deterministic, clamped to
// [0,100], and degrades to a documented default on empty input — the
// dashboard must always render a number, so nothing here ever errors.
package performance

import (
	"github.com/glintlab/glint/internal/domain"
)

// ─── Per-Domain Formulas ────────────────────────────────────────────────────

// applicationWeights map each pipeline stage to its score weight.
var applicationWeights = map[domain.ApplicationStatus]float64{
	domain.AppWishlist:     0.1,
	domain.AppApplied:      0.2,
	domain.AppInterviewing: 0.6,
	domain.AppOffer:        1.0,
	domain.AppRejected:     0,
}

// ScoreTasks is 100 * done / total, 0 when there are no tasks.
func ScoreTasks(tasks []domain.TaskRecord) float64 {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Status == domain.TaskDone {
			done++
		}
	}
	return clamp(100 * float64(done) / float64(len(tasks)))
}

// ScoreRoutines averages, over days with at least one logged checkmark,
// the day's completion percentage. 0 when no days are logged.
func ScoreRoutines(history map[string][]domain.Checkmark) float64 {
	if len(history) == 0 {
		return 0
	}
	var sum float64
	days := 0
	for _, marks := range history {
		if len(marks) == 0 {
			continue
		}
		completed := 0
		for _, m := range marks {
			if m.Done {
				completed++
			}
		}
		sum += 100 * float64(completed) / float64(len(marks))
		days++
	}
	if days == 0 {
		return 0
	}
	return clamp(sum / float64(days))
}

// ScoreApplications is the mean status weight times 100, 0 when there are
// no applications. Unknown statuses weigh 0.
func ScoreApplications(apps []domain.ApplicationRecord) float64 {
	if len(apps) == 0 {
		return 0
	}
	var sum float64
	for _, a := range apps {
		sum += applicationWeights[a.Status]
	}
	return clamp(100 * sum / float64(len(apps)))
}

// ScoreFinances is 100 * months-with-non-negative-net / total months,
// 0 when there are no logs. Note the empty default is the opposite of
// ScoreTime's.
func ScoreFinances(logs []domain.FinanceLog) float64 {
	if len(logs) == 0 {
		return 0
	}
	good := 0
	for _, l := range logs {
		if l.Net >= 0 {
			good++
		}
	}
	return clamp(100 * float64(good) / float64(len(logs)))
}

// ScoreTime inverts the average daily time-sink hours:
// clamp(100 - avg*25). Defaults to 100 when no sink entries exist —
// no logged waste scores as good, not neutral.
func ScoreTime(entries []domain.TimeEntry) float64 {
	if len(entries) == 0 {
		return 100
	}
	var total float64
	days := make(map[string]bool)
	for _, e := range entries {
		total += e.Hours
		days[e.Day] = true
	}
	avg := total / float64(len(days))
	return clamp(100 - avg*25)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
