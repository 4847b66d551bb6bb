package performance

import (
	"math"
	"time"

	"github.com/glintlab/glint/internal/domain"
	"github.com/glintlab/glint/internal/infra/metrics"
	"github.com/glintlab/glint/internal/infra/sqlite"
)

// ─── Overall Composition ────────────────────────────────────────────────────

// Overall averages the numerically valid domain scores. NaN domains are
// excluded from the mean, not counted as zero; all five NaN yields 0.
func Overall(scores domain.DomainScores) float64 {
	vals := []float64{scores.Tasks, scores.Routines, scores.Applications, scores.Finances, scores.Time}
	var sum float64
	n := 0
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0
	}
	return clamp(sum / float64(n))
}

// levelBand pairs an upper bound with its level and suggestion. Bands are
// inclusive at the upper bound and ordered ascending, so the first bound
// >= pct wins: very-bad [0,50], bad (50,70], regular (70,80], good (80,90],
// great (90,95], excellent (95,100].
type levelBand struct {
	upper      float64
	level      domain.ExcellenceLevel
	suggestion string
}

var levelBands = []levelBand{
	{50, domain.LevelVeryBad, "Rough patch. Pick one tiny routine and just do that — momentum beats ambition."},
	{70, domain.LevelBad, "Below your baseline. Knock out two quick tasks to get the wheel turning again."},
	{80, domain.LevelRegular, "Steady. Your weakest domain is dragging the average — give it one focused block."},
	{90, domain.LevelGood, "Good week-shape. Protect the streak and keep the time sinks where they are."},
	{95, domain.LevelGreat, "Great form. Consider banking gems for a bigger reward instead of small treats."},
	{100, domain.LevelExcellent, "Peak performance. Document what worked — future you will want the recipe."},
}

// Classify maps a score to its excellence level and canned suggestion.
// Exactly one band matches any score in [0,100]; out-of-range scores clamp
// to the boundary bands.
func Classify(pct float64) (domain.ExcellenceLevel, string) {
	if math.IsNaN(pct) || pct < 0 {
		pct = 0
	}
	for _, b := range levelBands {
		if pct <= b.upper {
			return b.level, b.suggestion
		}
	}
	last := levelBands[len(levelBands)-1]
	return last.level, last.suggestion
}

// ─── Service ────────────────────────────────────────────────────────────────

// Service composes domain scores into dated performance snapshots and owns
// the snapshot history.
type Service struct {
	db *sqlite.DB
}

// NewService creates a performance service.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db}
}

// Compute builds the current snapshot from stored records without
// persisting it.
func (s *Service) Compute(now time.Time) (domain.PerformanceSnapshot, error) {
	var snap domain.PerformanceSnapshot

	tasks, err := s.db.ListTasks()
	if err != nil {
		return snap, err
	}
	history, err := s.db.CheckmarkHistory()
	if err != nil {
		return snap, err
	}
	apps, err := s.db.ListApplications()
	if err != nil {
		return snap, err
	}
	logs, err := s.db.ListFinanceLogs()
	if err != nil {
		return snap, err
	}
	entries, err := s.db.ListTimeEntries()
	if err != nil {
		return snap, err
	}
	gems, err := s.db.GetLedger()
	if err != nil {
		return snap, err
	}

	snap.Domains = domain.DomainScores{
		Tasks:        ScoreTasks(tasks),
		Routines:     ScoreRoutines(history),
		Applications: ScoreApplications(apps),
		Finances:     ScoreFinances(logs),
		Time:         ScoreTime(entries),
	}
	snap.Day = now.UTC().Format(domain.DayLayout)
	snap.ScorePct = Overall(snap.Domains)
	snap.Level, snap.Suggestion = Classify(snap.ScorePct)
	snap.TotalGems = gems.Balance

	metrics.PerformanceScore.Set(snap.ScorePct)
	return snap, nil
}

// RecordSnapshot computes the current snapshot and upserts it into the
// history under its day key. Idempotent per day: re-recording replaces.
func (s *Service) RecordSnapshot(now time.Time) (domain.PerformanceSnapshot, error) {
	snap, err := s.Compute(now)
	if err != nil {
		return snap, err
	}
	if err := s.db.UpsertSnapshot(snap); err != nil {
		return snap, err
	}
	return snap, nil
}

// History returns snapshots for trend display, oldest first.
func (s *Service) History(limit int) ([]domain.PerformanceSnapshot, error) {
	return s.db.SnapshotHistory(limit)
}
