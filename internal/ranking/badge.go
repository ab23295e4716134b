package ranking

import (
	"time"

	"github.com/skillsmarket/skillsmarket/internal/models"
	"github.com/skillsmarket/skillsmarket/pkg/config"
)

// BadgeThresholds are the tunables of badge assignment.
type BadgeThresholds struct {
	Hot             int
	Rising          int
	Cooling         int
	BaselineViews   int64
	CoolingBaseline int64
	NewHours        int
}

// BadgeThresholdsFrom builds badge thresholds from the ranking config.
func BadgeThresholdsFrom(cfg *config.RankingConfig) BadgeThresholds {
	return BadgeThresholds{
		Hot:             cfg.HotThreshold,
		Rising:          cfg.RisingThreshold,
		Cooling:         cfg.CoolingThreshold,
		BaselineViews:   cfg.BadgeBaselineViews,
		CoolingBaseline: cfg.CoolingBaselineViews,
		NewHours:        cfg.NewBadgeHours,
	}
}

// DefaultBadgeThresholds returns the production defaults.
func DefaultBadgeThresholds() BadgeThresholds {
	return BadgeThresholds{
		Hot:             50,
		Rising:          15,
		Cooling:         -25,
		BaselineViews:   50,
		CoolingBaseline: 100,
		NewHours:        48,
	}
}

// badgeInput is what a single badge rule gets to look at.
type badgeInput struct {
	velocity      *int
	views7d       int64
	hoursSinceNew float64
}

// badgeRule pairs a predicate with the badge it assigns.
type badgeRule struct {
	badge   models.Badge
	applies func(in badgeInput, th BadgeThresholds) bool
}

// badgeRules is evaluated top to bottom, first match wins. Order matters:
// several conditions can hold at once and the earlier rule takes the badge.
var badgeRules = []badgeRule{
	{
		// A debut always shows as new, whatever its launch burst looks like
		badge: models.BadgeNew,
		applies: func(in badgeInput, th BadgeThresholds) bool {
			return in.hoursSinceNew <= float64(th.NewHours)
		},
	},
	{
		badge: models.BadgeHot,
		applies: func(in badgeInput, th BadgeThresholds) bool {
			return in.velocity != nil && *in.velocity >= th.Hot && in.views7d >= th.BaselineViews
		},
	},
	{
		badge: models.BadgeRising,
		applies: func(in badgeInput, th BadgeThresholds) bool {
			return in.velocity != nil && *in.velocity >= th.Rising && in.views7d >= th.BaselineViews
		},
	},
	{
		// Cooling demands a higher view floor than hot/rising: low-traffic
		// skills are never labeled as declining
		badge: models.BadgeCooling,
		applies: func(in badgeInput, th BadgeThresholds) bool {
			return in.velocity != nil && *in.velocity <= th.Cooling && in.views7d >= th.CoolingBaseline
		},
	},
}

// ClassifyBadge assigns a trend badge from velocity, 7-day views and the
// skill's first-seen time. The nil-velocity low-signal case falls through
// to stable.
func ClassifyBadge(velocity *int, views7d int64, firstSeenAt, now time.Time, th BadgeThresholds) models.Badge {
	in := badgeInput{
		velocity:      velocity,
		views7d:       views7d,
		hoursSinceNew: now.Sub(firstSeenAt).Hours(),
	}
	for _, rule := range badgeRules {
		if rule.applies(in, th) {
			return rule.badge
		}
	}
	return models.BadgeStable
}
