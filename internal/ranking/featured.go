package ranking

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/skillsmarket/skillsmarket/internal/catalog"
	"github.com/skillsmarket/skillsmarket/internal/counters"
	"github.com/skillsmarket/skillsmarket/internal/models"
	"github.com/skillsmarket/skillsmarket/pkg/config"
	"github.com/skillsmarket/skillsmarket/pkg/logging"
	"github.com/skillsmarket/skillsmarket/pkg/telemetry"
)

// Featured score factor weights; they sum to 1.
const (
	weightTrendingFactor   = 0.40
	weightEngagementFactor = 0.25
	weightRecencyFactor    = 0.20
	weightReputationFactor = 0.10
	weightDiversityFactor  = 0.05
)

const (
	// recencyWindowDays grants the flat recency bonus to skills published
	// within this many days (step function, no decay)
	recencyWindowDays = 14

	// diversityPermanentCap is how many permanent entries a category can
	// hold before candidates in it are penalized
	diversityPermanentCap = 2

	// engagementScale lifts the votes-per-view ratio into a usable range
	engagementScale = 10
)

// FeaturedResult summarizes one featured job run.
type FeaturedResult struct {
	Success     bool                  `json:"success"`
	Permanent   int                   `json:"permanent"`
	Rotating    int                   `json:"rotating"`
	Timestamp   string                `json:"timestamp"`
	TopRotating []FeaturedResultEntry `json:"top_rotating"`
}

// FeaturedResultEntry is one rotating slot of the job summary.
type FeaturedResultEntry struct {
	SkillID    string  `json:"skillId"`
	TotalScore float64 `json:"totalScore"`
}

// FeaturedScorer runs the weekly featured computation.
type FeaturedScorer struct {
	catalog         *catalog.Loader
	store           *counters.Store
	verifiedAuthors map[string]bool
	rotatingSlots   int
	logger          *zap.Logger

	now func() time.Time
}

// NewFeaturedScorer creates the weekly featured job.
func NewFeaturedScorer(loader *catalog.Loader, store *counters.Store, cfg *config.Config) *FeaturedScorer {
	return &FeaturedScorer{
		catalog:         loader,
		store:           store,
		verifiedAuthors: cfg.Jobs.VerifiedAuthorSet(),
		rotatingSlots:   cfg.Jobs.RotatingSlots,
		logger:          logging.WithJob("compute-featured"),
		now:             time.Now,
	}
}

// Run scores every non-permanent skill, fills the rotating slots with the top
// scorers and publishes permanent + rotating lists. Admin-pinned permanent
// entries are never scored and never displaced.
func (f *FeaturedScorer) Run(ctx context.Context) (*FeaturedResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "jobs.compute_featured")
	defer span.End()

	now := f.now().UTC()

	skills, err := f.catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load skill catalog: %w", err)
	}

	permanent := permanentEntries(skills)
	permanentByCategory := make(map[string]int)
	permanentSlugs := make(map[string]bool)
	for _, p := range permanent {
		permanentByCategory[p.Category]++
		permanentSlugs[p.Slug] = true
	}

	type candidate struct {
		skill *catalog.SkillRecord
		score models.FeaturedScore
	}
	var candidates []candidate
	for i := range skills {
		if permanentSlugs[skills[i].Slug] {
			continue
		}
		score, err := f.scoreSkill(ctx, &skills[i], permanentByCategory, now)
		if err != nil {
			f.logger.Error("Skipping skill after scoring failure",
				zap.String("slug", skills[i].Slug),
				zap.Error(err))
			continue
		}
		candidates = append(candidates, candidate{skill: &skills[i], score: *score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score.TotalScore != candidates[j].score.TotalScore {
			return candidates[i].score.TotalScore > candidates[j].score.TotalScore
		}
		return candidates[i].skill.Slug < candidates[j].skill.Slug
	})

	if len(candidates) > f.rotatingSlots {
		candidates = candidates[:f.rotatingSlots]
	}

	rotating := make([]models.FeaturedSkillEntry, 0, len(candidates))
	for _, c := range candidates {
		rotating = append(rotating, models.FeaturedSkillEntry{
			Slug:         c.skill.Slug,
			Title:        c.skill.Title,
			Description:  c.skill.Description,
			Category:     c.skill.PrimaryCategory(),
			Author:       c.skill.Author,
			FeaturedType: models.FeaturedRotating,
			TotalScore:   c.score.TotalScore,
		})
	}

	if err := f.store.PublishFeatured(ctx, permanent, rotating); err != nil {
		return nil, fmt.Errorf("failed to publish featured lists: %w", err)
	}

	result := &FeaturedResult{
		Success:   true,
		Permanent: len(permanent),
		Rotating:  len(rotating),
		Timestamp: now.Format(time.RFC3339),
	}
	for _, c := range candidates {
		result.TopRotating = append(result.TopRotating, FeaturedResultEntry{
			SkillID:    c.skill.Slug,
			TotalScore: c.score.TotalScore,
		})
	}

	f.logger.Info("Featured job complete",
		zap.Int("permanent", len(permanent)),
		zap.Int("rotating", len(rotating)))

	return result, nil
}

// permanentEntries collects the admin-pinned skills ordered by priority,
// ties broken alphabetically by title.
func permanentEntries(skills []catalog.SkillRecord) []models.FeaturedSkillEntry {
	var pinned []catalog.SkillRecord
	for _, s := range skills {
		if s.Featured && s.FeaturedType == string(models.FeaturedPermanent) {
			pinned = append(pinned, s)
		}
	}
	sort.SliceStable(pinned, func(i, j int) bool {
		if pinned[i].FeaturedPriority != pinned[j].FeaturedPriority {
			return pinned[i].FeaturedPriority < pinned[j].FeaturedPriority
		}
		return strings.ToLower(pinned[i].Title) < strings.ToLower(pinned[j].Title)
	})

	entries := make([]models.FeaturedSkillEntry, 0, len(pinned))
	for _, s := range pinned {
		entries = append(entries, models.FeaturedSkillEntry{
			Slug:         s.Slug,
			Title:        s.Title,
			Description:  s.Description,
			Category:     s.PrimaryCategory(),
			Author:       s.Author,
			FeaturedType: models.FeaturedPermanent,
			Priority:     s.FeaturedPriority,
		})
	}
	return entries
}

// FeaturedSignals are the engagement aggregates the weighted score is
// computed from.
type FeaturedSignals struct {
	Views7d    int64
	Votes7d    int64
	TotalVotes int64
}

func (f *FeaturedScorer) readSignals(ctx context.Context, slug string, now time.Time) (FeaturedSignals, error) {
	var sig FeaturedSignals
	var err error

	if sig.Views7d, err = f.store.Views7d(ctx, slug); err != nil {
		return sig, fmt.Errorf("failed to read 7d views: %w", err)
	}
	helpful7d, notHelpful7d, err := f.store.VotesSince(ctx, slug, now.Add(-7*24*time.Hour))
	if err != nil {
		return sig, fmt.Errorf("failed to read 7d votes: %w", err)
	}
	sig.Votes7d = helpful7d + notHelpful7d
	helpfulAll, notHelpfulAll, err := f.store.VotesSince(ctx, slug, time.Unix(0, 0))
	if err != nil {
		return sig, fmt.Errorf("failed to read vote totals: %w", err)
	}
	sig.TotalVotes = helpfulAll + notHelpfulAll
	return sig, nil
}

func (f *FeaturedScorer) scoreSkill(ctx context.Context, skill *catalog.SkillRecord, permanentByCategory map[string]int, now time.Time) (*models.FeaturedScore, error) {
	sig, err := f.readSignals(ctx, skill.Slug, now)
	if err != nil {
		return nil, err
	}

	score := ScoreFeatured(skill, sig, permanentByCategory, f.verifiedAuthors, now)
	return score, nil
}

// ScoreFeatured computes the 5-factor weighted featured score for a skill.
func ScoreFeatured(skill *catalog.SkillRecord, sig FeaturedSignals, permanentByCategory map[string]int, verifiedAuthors map[string]bool, now time.Time) *models.FeaturedScore {
	trending := trendingVelocityProxy(sig)
	engagement := engagementQuality(sig)
	recency := recencyBonus(skill.Date, now)
	reputation := reputationBonus(skill, verifiedAuthors)
	diversity := diversityPenalty(skill.PrimaryCategory(), permanentByCategory)

	total := weightTrendingFactor*trending +
		weightEngagementFactor*engagement +
		weightRecencyFactor*recency +
		weightReputationFactor*reputation +
		weightDiversityFactor*diversity

	return &models.FeaturedScore{
		SkillID:         skill.Slug,
		TrendingScore:   trending,
		EngagementScore: engagement,
		RecencyScore:    recency,
		ReputationScore: reputation,
		DiversityScore:  diversity,
		TotalScore:      total,
		PublishedAt:     skill.Date,
		CategoryCount:   len(skill.Categories),
	}
}

// trendingVelocityProxy approximates week-over-week growth from the available
// aggregates. The ratios bottom out at their own totals, so any activity at
// all pushes this factor toward 100; that quirk is part of the published
// scoring behavior and consumers have calibrated around it.
func trendingVelocityProxy(sig FeaturedSignals) float64 {
	voteGrowthRate := float64(sig.Votes7d) / math.Max(float64(sig.Votes7d), 1)
	viewGrowthRate := float64(sig.Views7d) / math.Max(float64(sig.Views7d), 1)
	return clamp((voteGrowthRate+viewGrowthRate)/2*100, 0, 100)
}

// engagementQuality scores votes per view, scaled up since raw ratios are
// typically far below 1%.
func engagementQuality(sig FeaturedSignals) float64 {
	if sig.Views7d == 0 {
		return 0
	}
	ratio := float64(sig.TotalVotes) / float64(sig.Views7d)
	return clamp(ratio*100*engagementScale, 0, 100)
}

// recencyBonus grants the full bonus inside the publish window, nothing after.
func recencyBonus(publishedAt string, now time.Time) float64 {
	if publishedAt == "" {
		return 0
	}
	t, err := time.Parse("2006-01-02", publishedAt)
	if err != nil {
		if t, err = time.Parse(time.RFC3339, publishedAt); err != nil {
			return 0
		}
	}
	if now.Sub(t).Hours() <= recencyWindowDays*24 {
		return 100
	}
	return 0
}

func reputationBonus(skill *catalog.SkillRecord, verifiedAuthors map[string]bool) float64 {
	if verifiedAuthors[strings.ToLower(skill.Author)] {
		return 100
	}
	if skill.Featured {
		// Previously featured counts for half credit
		return 50
	}
	return 0
}

// diversityPenalty discourages one category from monopolizing the featured
// slots once its permanent entries hit the cap.
func diversityPenalty(category string, permanentByCategory map[string]int) float64 {
	if category != "" && permanentByCategory[category] >= diversityPermanentCap {
		return -100
	}
	return 0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
