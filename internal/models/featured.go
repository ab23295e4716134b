package models

// FeaturedType distinguishes admin-pinned entries from score-ranked ones.
type FeaturedType string

const (
	FeaturedPermanent FeaturedType = "permanent"
	FeaturedRotating  FeaturedType = "rotating"
)

// FeaturedScore is the per-skill factor breakdown of the weekly featured job.
// Ephemeral: only the final ranked list is persisted.
type FeaturedScore struct {
	SkillID         string  `json:"skillId"`
	TrendingScore   float64 `json:"trendingScore"`
	EngagementScore float64 `json:"engagementScore"`
	RecencyScore    float64 `json:"recencyScore"`
	ReputationScore float64 `json:"reputationScore"`
	DiversityScore  float64 `json:"diversityScore"`
	TotalScore      float64 `json:"totalScore"`
	PublishedAt     string  `json:"publishedAt"`
	CategoryCount   int     `json:"categoryCount"`
}

// FeaturedSkillEntry is one slot of the published featured list.
type FeaturedSkillEntry struct {
	Slug         string       `json:"slug"`
	Title        string       `json:"title"`
	Description  string       `json:"description"`
	Category     string       `json:"category"`
	Author       string       `json:"author,omitempty"`
	FeaturedType FeaturedType `json:"featured_type"`
	Priority     int          `json:"priority,omitempty"`
	TotalScore   float64      `json:"total_score,omitempty"`
}
