package ranking

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/skillsmarket/skillsmarket/internal/catalog"
	"github.com/skillsmarket/skillsmarket/internal/counters"
	"github.com/skillsmarket/skillsmarket/internal/models"
	"github.com/skillsmarket/skillsmarket/pkg/config"
	"github.com/skillsmarket/skillsmarket/pkg/logging"
	"github.com/skillsmarket/skillsmarket/pkg/telemetry"
)

// Trending score weights. A click is a stronger intent signal than a page
// view; a downvote offsets less than an upvote so one bad actor cannot
// swing the ranking.
const (
	weightClicks     = 3.0
	weightViews      = 0.2
	weightHelpful    = 2.0
	weightNotHelpful = 1.0
)

// maxSummaryTags caps the tags carried into a trend summary
const maxSummaryTags = 3

// TrendingScore blends the 24h engagement counters into a single score.
func TrendingScore(clicks24h, views24h, helpful24h, notHelpful24h int64) float64 {
	return weightClicks*float64(clicks24h) +
		weightViews*float64(views24h) +
		weightHelpful*float64(helpful24h) -
		weightNotHelpful*float64(notHelpful24h)
}

// TrendingResult summarizes one trending job run.
type TrendingResult struct {
	Success     bool                  `json:"success"`
	Trending    int                   `json:"trending"`
	Timestamp   string                `json:"timestamp"`
	TopTrending []TrendingResultEntry `json:"top_trending"`
}

// TrendingResultEntry is one ranked row of the job summary.
type TrendingResultEntry struct {
	Slug          string       `json:"slug"`
	TrendingScore float64      `json:"trending_score"`
	Badge         models.Badge `json:"badge"`
	Rank          int          `json:"rank"`
}

// TrendingRanker runs the daily trending computation.
type TrendingRanker struct {
	catalog    *catalog.Loader
	store      *counters.Store
	velocity   VelocityParams
	thresholds BadgeThresholds
	limit      int
	logger     *zap.Logger

	// now is swappable for tests
	now func() time.Time
}

// NewTrendingRanker creates the daily trending job.
func NewTrendingRanker(loader *catalog.Loader, store *counters.Store, cfg *config.Config) *TrendingRanker {
	return &TrendingRanker{
		catalog:    loader,
		store:      store,
		velocity:   VelocityParamsFrom(&cfg.Ranking),
		thresholds: BadgeThresholdsFrom(&cfg.Ranking),
		limit:      cfg.Jobs.TrendingLimit,
		logger:     logging.WithJob("compute-trending"),
		now:        time.Now,
	}
}

// Run computes trend summaries for every skill, ranks them and publishes the
// top list. A failing skill is logged and dropped from this run's output; a
// partial ranking beats a failed cron run. Catalog or publish failures abort
// the run and leave the previous cache untouched.
func (r *TrendingRanker) Run(ctx context.Context) (*TrendingResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "jobs.compute_trending")
	defer span.End()

	now := r.now().UTC()

	skills, err := r.catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load skill catalog: %w", err)
	}

	summaries := make([]models.TrendSummary, 0, len(skills))
	for i := range skills {
		summary, sig, err := r.computeSkill(ctx, &skills[i], now)
		if err != nil {
			r.logger.Error("Skipping skill after compute failure",
				zap.String("slug", skills[i].Slug),
				zap.Error(err))
			continue
		}
		if eligible(sig, summary.TrendingScore) {
			summaries = append(summaries, *summary)
			continue
		}
		// Skills below the signal floor still get their summary cached
		// for detail pages; only the top list excludes them
		if err := r.store.PublishTrendSummary(ctx, summary); err != nil {
			r.logger.Error("Failed to cache trend summary",
				zap.String("slug", skills[i].Slug),
				zap.Error(err))
		}
	}

	// Score descending; ties break by slug so the ranking is deterministic
	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].TrendingScore != summaries[j].TrendingScore {
			return summaries[i].TrendingScore > summaries[j].TrendingScore
		}
		return summaries[i].Slug < summaries[j].Slug
	})

	ranked := summaries
	if len(ranked) > r.limit {
		ranked = summaries[:r.limit]
		// Eligible skills cut by the limit keep their cached summary too
		for i := r.limit; i < len(summaries); i++ {
			if err := r.store.PublishTrendSummary(ctx, &summaries[i]); err != nil {
				r.logger.Error("Failed to cache trend summary",
					zap.String("slug", summaries[i].Slug),
					zap.Error(err))
			}
		}
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	if err := r.store.PublishTrending(ctx, ranked); err != nil {
		return nil, fmt.Errorf("failed to publish trending list: %w", err)
	}

	result := &TrendingResult{
		Success:   true,
		Trending:  len(ranked),
		Timestamp: now.Format(time.RFC3339),
	}
	for _, s := range ranked {
		result.TopTrending = append(result.TopTrending, TrendingResultEntry{
			Slug:          s.Slug,
			TrendingScore: s.TrendingScore,
			Badge:         s.Badge,
			Rank:          s.Rank,
		})
	}

	r.logger.Info("Trending job complete",
		zap.Int("skills_scored", len(skills)),
		zap.Int("trending", len(ranked)))

	return result, nil
}

// eligible applies the minimum-signal filter: no 24h engagement means no
// spot in the top list, whatever the historical 7-day numbers say.
func eligible(sig skillSignals, score float64) bool {
	return sig.clicks24h >= 1 || sig.helpful24h >= 1 || score > 0
}

// skillSignals are the 24h counters a score is computed from.
type skillSignals struct {
	views24h      int64
	clicks24h     int64
	helpful24h    int64
	notHelpful24h int64
}

func (r *TrendingRanker) readSignals(ctx context.Context, slug string, now time.Time) (skillSignals, error) {
	var sig skillSignals
	var err error

	if sig.views24h, err = r.store.Views24h(ctx, slug); err != nil {
		return sig, fmt.Errorf("failed to read 24h views: %w", err)
	}
	if sig.clicks24h, err = r.store.Clicks24h(ctx, slug); err != nil {
		return sig, fmt.Errorf("failed to read 24h clicks: %w", err)
	}
	since := now.Add(-24 * time.Hour)
	if sig.helpful24h, sig.notHelpful24h, err = r.store.VotesSince(ctx, slug, since); err != nil {
		return sig, fmt.Errorf("failed to read 24h votes: %w", err)
	}
	return sig, nil
}

func (r *TrendingRanker) computeSkill(ctx context.Context, skill *catalog.SkillRecord, now time.Time) (*models.TrendSummary, skillSignals, error) {
	sig, err := r.readSignals(ctx, skill.Slug, now)
	if err != nil {
		return nil, sig, err
	}

	score := TrendingScore(sig.clicks24h, sig.views24h, sig.helpful24h, sig.notHelpful24h)
	today := counters.UnixDay(now)

	// Persist today's samples; reruns within a day overwrite, not accumulate
	if err := r.store.UpsertDailyPoint(ctx, skill.Slug, counters.MetricScore, today, score); err != nil {
		return nil, sig, err
	}
	if err := r.store.UpsertDailyPoint(ctx, skill.Slug, counters.MetricViews, today, float64(sig.views24h)); err != nil {
		return nil, sig, err
	}

	points, err := r.store.SeriesPoints(ctx, skill.Slug, counters.MetricScore)
	if err != nil {
		return nil, sig, err
	}
	history := History7d(points, today)

	views7d, err := r.store.Views7d(ctx, skill.Slug)
	if err != nil {
		return nil, sig, fmt.Errorf("failed to read 7d views: %w", err)
	}

	firstSeen, err := r.store.GetOrInitFirstSeen(ctx, skill.Slug, now)
	if err != nil {
		return nil, sig, err
	}

	var scoreYesterday float64
	for _, p := range points {
		if p.Day == today-1 {
			scoreYesterday = p.Value
			break
		}
	}

	velocity := Velocity(score, scoreYesterday, views7d, r.velocity)
	badge := ClassifyBadge(velocity, views7d, firstSeen, now, r.thresholds)

	tags := skill.Tags
	if len(tags) > maxSummaryTags {
		tags = tags[:maxSummaryTags]
	}

	return &models.TrendSummary{
		SkillID:         skill.Slug,
		Slug:            skill.Slug,
		Title:           skill.Title,
		Category:        skill.PrimaryCategory(),
		Tags:            tags,
		TrendingScore:   score,
		VelocityPercent: velocity,
		History7d:       history,
		Views7d:         views7d,
		FirstSeenAt:     firstSeen.Format(time.RFC3339),
		Badge:           badge,
		LowSignal:       velocity == nil,
	}, sig, nil
}
