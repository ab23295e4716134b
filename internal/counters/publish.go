package counters

import (
	"context"
	"fmt"

	"github.com/skillsmarket/skillsmarket/internal/cache"
	"github.com/skillsmarket/skillsmarket/internal/keys"
	"github.com/skillsmarket/skillsmarket/internal/models"
)

// PublishTrending writes the ranked trending list under the versioned key and
// mirrors it to the un-expiring last_good key for stale-while-revalidate
// reads. The ranked entries' per-skill trend summaries are cached alongside.
func (s *Store) PublishTrending(ctx context.Context, list []models.TrendSummary) error {
	if err := s.cache.SetJSON(ctx, keys.TrendingList, list, ttlTrending); err != nil {
		return fmt.Errorf("failed to publish trending list: %w", err)
	}
	if err := s.cache.SetJSON(ctx, keys.TrendingLastGood, list, 0); err != nil {
		return fmt.Errorf("failed to publish trending backup: %w", err)
	}
	for i := range list {
		if err := s.PublishTrendSummary(ctx, &list[i]); err != nil {
			return err
		}
	}
	return nil
}

// PublishTrendSummary caches one per-skill trend summary. Detail-page
// consumers read this key for every skill, ranked or not.
func (s *Store) PublishTrendSummary(ctx context.Context, summary *models.TrendSummary) error {
	if err := s.cache.SetJSON(ctx, keys.TrendSummary(summary.Slug), summary, ttlTrending); err != nil {
		return fmt.Errorf("failed to publish trend summary for %s: %w", summary.Slug, err)
	}
	return nil
}

// ReadTrending returns the cached trending list, falling back to the backup
// key when the primary has expired. stale reports which copy was served.
func (s *Store) ReadTrending(ctx context.Context) (list []models.TrendSummary, stale bool, err error) {
	if err := s.cache.GetJSON(ctx, keys.TrendingList, &list); err == nil {
		return list, false, nil
	} else if err != cache.ErrNotFound {
		return nil, false, fmt.Errorf("failed to read trending list: %w", err)
	}
	if err := s.cache.GetJSON(ctx, keys.TrendingLastGood, &list); err != nil {
		if err == cache.ErrNotFound {
			return nil, false, cache.ErrNotFound
		}
		return nil, false, fmt.Errorf("failed to read trending backup: %w", err)
	}
	return list, true, nil
}

// PublishFeatured writes the combined featured list plus the permanent-only
// and rotating-only splits, each under its own key for independent consumers.
func (s *Store) PublishFeatured(ctx context.Context, permanent, rotating []models.FeaturedSkillEntry) error {
	combined := make([]models.FeaturedSkillEntry, 0, len(permanent)+len(rotating))
	combined = append(combined, permanent...)
	combined = append(combined, rotating...)

	if err := s.cache.SetJSON(ctx, keys.FeaturedList, combined, ttlFeatured); err != nil {
		return fmt.Errorf("failed to publish featured list: %w", err)
	}
	if err := s.cache.SetJSON(ctx, keys.FeaturedPermanent, permanent, ttlFeatured); err != nil {
		return fmt.Errorf("failed to publish permanent featured list: %w", err)
	}
	if err := s.cache.SetJSON(ctx, keys.FeaturedRotating, rotating, ttlFeatured); err != nil {
		return fmt.Errorf("failed to publish rotating featured list: %w", err)
	}
	return nil
}

// ReadFeatured returns one of the cached featured lists by type:
// "" for the combined list, "permanent" or "rotating" for the splits.
func (s *Store) ReadFeatured(ctx context.Context, featuredType string) ([]models.FeaturedSkillEntry, error) {
	key := keys.FeaturedList
	switch featuredType {
	case string(models.FeaturedPermanent):
		key = keys.FeaturedPermanent
	case string(models.FeaturedRotating):
		key = keys.FeaturedRotating
	}
	var list []models.FeaturedSkillEntry
	if err := s.cache.GetJSON(ctx, key, &list); err != nil {
		return nil, err
	}
	return list, nil
}
