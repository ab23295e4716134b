// Package keys is the single source of truth for the Redis key schema.
// Serving endpoints and ranking jobs share these shapes as a wire contract;
// changing any of them is a breaking change for every consumer.
package keys

import "fmt"

// Versioned list cache keys. Bump the version when the cached JSON shape changes.
const (
	TrendingList      = "skills:trending:v1"
	TrendingLastGood  = "skills:trending:last_good"
	FeaturedList      = "skills:featured:v4"
	FeaturedPermanent = "skills:featured:permanent"
	FeaturedRotating  = "skills:featured:rotating"
)

// Views24h is the 24-hour view counter for a skill.
func Views24h(slug string) string {
	return fmt.Sprintf("skill:%s:views:24h", slug)
}

// Clicks24h is the 24-hour click counter for a skill.
func Clicks24h(slug string) string {
	return fmt.Sprintf("skill:%s:clicks:24h", slug)
}

// Views7d is the 7-day view counter for a skill.
func Views7d(slug string) string {
	return fmt.Sprintf("skill:%s:views:7d", slug)
}

// Clicks7d is the 7-day click counter for a skill.
func Clicks7d(slug string) string {
	return fmt.Sprintf("skill:%s:clicks:7d", slug)
}

// VoteHelpful is the sorted set of helpful voters (member=voter id, score=unix time).
func VoteHelpful(slug string) string {
	return fmt.Sprintf("skill:vote:helpful:%s", slug)
}

// VoteNotHelpful is the sorted set of not-helpful voters.
func VoteNotHelpful(slug string) string {
	return fmt.Sprintf("skill:vote:not_helpful:%s", slug)
}

// ScoreSeries is the per-day trending score series (score=unix day, member=value).
func ScoreSeries(slug string) string {
	return fmt.Sprintf("skill:%s:score", slug)
}

// ViewSeries is the per-day view count series.
func ViewSeries(slug string) string {
	return fmt.Sprintf("skill:%s:views", slug)
}

// FirstSeenAt is the write-once first-seen timestamp for a skill.
func FirstSeenAt(slug string) string {
	return fmt.Sprintf("skill:%s:first_seen_at", slug)
}

// TrendSummary is the cached per-skill trend summary JSON.
func TrendSummary(slug string) string {
	return fmt.Sprintf("skill:%s:trend", slug)
}

// RateLimit is the per-client request counter for an intake endpoint.
func RateLimit(scope, client string) string {
	return fmt.Sprintf("ratelimit:%s:%s", scope, client)
}
