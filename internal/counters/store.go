// Package counters implements the Counter Store operations backing the
// ranking jobs: engagement counters, vote sets, day-bucketed time series and
// the published list caches.
package counters

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/skillsmarket/skillsmarket/internal/cache"
	"github.com/skillsmarket/skillsmarket/internal/keys"
	"github.com/skillsmarket/skillsmarket/internal/models"
)

const (
	// TTLs mirror the documented key conventions: the 24h counters outlive
	// their window slightly so a late-running job still sees them.
	ttl24h      = 25 * time.Hour
	ttl7d       = 8 * 24 * time.Hour
	ttlTrending = 24 * time.Hour
	ttlFeatured = 7 * 24 * time.Hour

	// seriesRetentionDays is how many daily points a series keeps
	seriesRetentionDays = 14
)

// UnixDay returns the UTC-stable day index for t (floor of epoch ms / 86,400,000).
func UnixDay(t time.Time) int64 {
	return t.UnixMilli() / 86_400_000
}

// Store provides typed access to the per-skill counters and caches.
type Store struct {
	cache *cache.Cache
}

// NewStore creates a counter store over the given cache.
func NewStore(c *cache.Cache) *Store {
	return &Store{cache: c}
}

// BumpView increments the 24h and 7d view counters for a skill.
func (s *Store) BumpView(ctx context.Context, slug string) error {
	if _, err := s.cache.IncrWithTTL(ctx, keys.Views24h(slug), ttl24h); err != nil {
		return fmt.Errorf("failed to bump 24h views for %s: %w", slug, err)
	}
	if _, err := s.cache.IncrWithTTL(ctx, keys.Views7d(slug), ttl7d); err != nil {
		return fmt.Errorf("failed to bump 7d views for %s: %w", slug, err)
	}
	return nil
}

// BumpClick increments the 24h and 7d click counters for a skill.
func (s *Store) BumpClick(ctx context.Context, slug string) error {
	if _, err := s.cache.IncrWithTTL(ctx, keys.Clicks24h(slug), ttl24h); err != nil {
		return fmt.Errorf("failed to bump 24h clicks for %s: %w", slug, err)
	}
	if _, err := s.cache.IncrWithTTL(ctx, keys.Clicks7d(slug), ttl7d); err != nil {
		return fmt.Errorf("failed to bump 7d clicks for %s: %w", slug, err)
	}
	return nil
}

// AddVote records a vote for a skill. A voter switching sides is removed from
// the opposite set first, so each voter counts at most once.
func (s *Store) AddVote(ctx context.Context, slug, voterID string, helpful bool, now time.Time) error {
	target, opposite := keys.VoteHelpful(slug), keys.VoteNotHelpful(slug)
	if !helpful {
		target, opposite = opposite, target
	}
	if err := s.cache.ZRem(ctx, opposite, voterID); err != nil {
		return fmt.Errorf("failed to clear opposite vote for %s: %w", slug, err)
	}
	if err := s.cache.ZAdd(ctx, target, float64(now.Unix()), voterID); err != nil {
		return fmt.Errorf("failed to record vote for %s: %w", slug, err)
	}
	return nil
}

// Views24h reads the 24h view counter; missing keys read as zero.
func (s *Store) Views24h(ctx context.Context, slug string) (int64, error) {
	return s.cache.GetInt(ctx, keys.Views24h(slug))
}

// Clicks24h reads the 24h click counter.
func (s *Store) Clicks24h(ctx context.Context, slug string) (int64, error) {
	return s.cache.GetInt(ctx, keys.Clicks24h(slug))
}

// Views7d reads the 7d view counter.
func (s *Store) Views7d(ctx context.Context, slug string) (int64, error) {
	return s.cache.GetInt(ctx, keys.Views7d(slug))
}

// VotesSince counts helpful and not-helpful votes cast at or after since.
func (s *Store) VotesSince(ctx context.Context, slug string, since time.Time) (helpful, notHelpful int64, err error) {
	min := strconv.FormatInt(since.Unix(), 10)
	helpful, err = s.cache.ZCount(ctx, keys.VoteHelpful(slug), min, "+inf")
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count helpful votes for %s: %w", slug, err)
	}
	notHelpful, err = s.cache.ZCount(ctx, keys.VoteNotHelpful(slug), min, "+inf")
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count not-helpful votes for %s: %w", slug, err)
	}
	return helpful, notHelpful, nil
}

// Metric names for the per-skill daily series.
const (
	MetricScore = "score"
	MetricViews = "views"
)

func seriesKey(slug, metric string) string {
	if metric == MetricViews {
		return keys.ViewSeries(slug)
	}
	return keys.ScoreSeries(slug)
}

// seriesMember encodes a daily point as "day:value". The day prefix keeps
// members unique per day, so equal values on different days never collide.
func seriesMember(day int64, value float64) string {
	return fmt.Sprintf("%d:%s", day, strconv.FormatFloat(value, 'f', -1, 64))
}

func parseSeriesMember(member string) (int64, float64, error) {
	parts := strings.SplitN(member, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("malformed series member %q", member)
	}
	day, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed series day in %q: %w", member, err)
	}
	value, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed series value in %q: %w", member, err)
	}
	return day, value, nil
}

// UpsertDailyPoint writes today's value for a series, replacing any existing
// point for the same day, then prunes points older than the retention window.
func (s *Store) UpsertDailyPoint(ctx context.Context, slug, metric string, day int64, value float64) error {
	key := seriesKey(slug, metric)
	dayStr := strconv.FormatInt(day, 10)

	// One point per day: drop the old sample before writing the new one
	if err := s.cache.ZRemRangeByScore(ctx, key, dayStr, dayStr); err != nil {
		return fmt.Errorf("failed to replace day %d in %s: %w", day, key, err)
	}
	if err := s.cache.ZAdd(ctx, key, float64(day), seriesMember(day, value)); err != nil {
		return fmt.Errorf("failed to write day %d to %s: %w", day, key, err)
	}

	cutoff := strconv.FormatInt(day-seriesRetentionDays, 10)
	if err := s.cache.ZRemRangeByScore(ctx, key, "-inf", cutoff); err != nil {
		return fmt.Errorf("failed to prune %s: %w", key, err)
	}
	return nil
}

// SeriesPoints returns a series in ascending day order.
func (s *Store) SeriesPoints(ctx context.Context, slug, metric string) ([]models.DailyPoint, error) {
	zs, err := s.cache.ZRangeWithScores(ctx, seriesKey(slug, metric))
	if err != nil {
		return nil, fmt.Errorf("failed to read series %s/%s: %w", slug, metric, err)
	}
	points := make([]models.DailyPoint, 0, len(zs))
	for _, z := range zs {
		member, ok := z.Member.(string)
		if !ok {
			continue
		}
		day, value, err := parseSeriesMember(member)
		if err != nil {
			// A malformed point should not poison the whole series
			continue
		}
		points = append(points, models.DailyPoint{Day: day, Value: value})
	}
	return points, nil
}

// GetOrInitFirstSeen returns the write-once first-seen timestamp for a skill,
// initializing it to now on first call.
func (s *Store) GetOrInitFirstSeen(ctx context.Context, slug string, now time.Time) (time.Time, error) {
	key := keys.FirstSeenAt(slug)
	stamp := now.UTC().Format(time.RFC3339)
	if _, err := s.cache.SetNX(ctx, key, stamp, 0); err != nil {
		return time.Time{}, fmt.Errorf("failed to init first_seen_at for %s: %w", slug, err)
	}
	val, err := s.cache.Get(ctx, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read first_seen_at for %s: %w", slug, err)
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed first_seen_at for %s: %w", slug, err)
	}
	return t, nil
}
