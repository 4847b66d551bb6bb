package domain

// ─── Performance Scoring ────────────────────────────────────────────────────

// DomainScores holds the five independent life-area scores, each in [0,100].
// A NaN field means the domain had no measurable data and is excluded from
// the overall mean (not treated as zero).
type DomainScores struct {
	Tasks        float64 `json:"tasks"`
	Routines     float64 `json:"routines"`
	Applications float64 `json:"applications"`
	Finances     float64 `json:"finances"`
	Time         float64 `json:"time"`
}

// ExcellenceLevel is one of six discrete labels assigned to an overall score.
type ExcellenceLevel string

const (
	LevelVeryBad   ExcellenceLevel = "very-bad"  // [0, 50]
	LevelBad       ExcellenceLevel = "bad"       // (50, 70]
	LevelRegular   ExcellenceLevel = "regular"   // (70, 80]
	LevelGood      ExcellenceLevel = "good"      // (80, 90]
	LevelGreat     ExcellenceLevel = "great"     // (90, 95]
	LevelExcellent ExcellenceLevel = "excellent" // (95, 100]
)

// PerformanceSnapshot is one dated entry of the performance history.
// History is keyed by Day: re-recording the same day replaces the entry.
type PerformanceSnapshot struct {
	Day        string          `json:"day"` // DayLayout
	ScorePct   float64         `json:"score_pct"`
	Level      ExcellenceLevel `json:"level"`
	Suggestion string          `json:"suggestion"`
	Domains    DomainScores    `json:"domains"`
	TotalGems  int64           `json:"total_gems"`
}
