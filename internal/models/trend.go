package models

// Badge is the discrete trend label shown next to a skill.
type Badge string

const (
	BadgeNew     Badge = "new"
	BadgeHot     Badge = "hot"
	BadgeRising  Badge = "rising"
	BadgeCooling Badge = "cooling"
	BadgeStable  Badge = "stable"
)

// TrendSummary is the per-skill trending snapshot produced by the daily job.
// It is recomputed on every run; first_seen_at is the only write-once field.
type TrendSummary struct {
	SkillID       string   `json:"skill_id"`
	Slug          string   `json:"slug"`
	Title         string   `json:"title"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	TrendingScore float64  `json:"trending_score"`
	// VelocityPercent is nil when the activity baseline gate fails
	VelocityPercent *int      `json:"velocity_percent"`
	History7d       []float64 `json:"history_7d"`
	Views7d         int64     `json:"views_7d"`
	FirstSeenAt     string    `json:"first_seen_at"`
	Badge           Badge     `json:"badge"`
	Rank            int       `json:"rank"`
	LowSignal       bool      `json:"low_signal"`
}

// DailyPoint is one (unix day, value) sample of a per-skill time series.
type DailyPoint struct {
	Day   int64
	Value float64
}
