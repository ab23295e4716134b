// Package ranking implements the scoring core: day-over-day velocity,
// trend badges, the daily trending ranker and the weekly featured scorer.
package ranking

import (
	"math"

	"github.com/skillsmarket/skillsmarket/pkg/config"
)

const (
	// Clamp bounds; raw percent change on small counters is meaningless
	// beyond this range
	velocityMax = 999
	velocityMin = -999

	// denominatorFloor bounds the smoothed ratio when yesterday's score
	// is near zero
	denominatorFloor = 5
)

// VelocityParams are the tunables of the velocity calculation.
type VelocityParams struct {
	BayesianPrior    float64
	MinBaselineViews int64
	MinBaselineScore float64
}

// VelocityParamsFrom builds velocity params from the ranking config.
func VelocityParamsFrom(cfg *config.RankingConfig) VelocityParams {
	return VelocityParams{
		BayesianPrior:    cfg.BayesianPrior,
		MinBaselineViews: cfg.MinBaselineViews,
		MinBaselineScore: cfg.MinBaselineScore,
	}
}

// DefaultVelocityParams returns the production defaults.
func DefaultVelocityParams() VelocityParams {
	return VelocityParams{
		BayesianPrior:    5,
		MinBaselineViews: 50,
		MinBaselineScore: 5,
	}
}

// Velocity computes the smoothed day-over-day percentage change of a skill's
// score, rounded to the nearest integer and clamped to [-999, 999].
//
// Returns nil when the activity baseline gate fails: without a minimum of
// views or a prior-day score there is not enough signal for the ratio to
// mean anything, and dividing by near-zero yesterday values would produce
// explosive percentages for dead or brand-new skills.
func Velocity(scoreToday, scoreYesterday float64, views7d int64, p VelocityParams) *int {
	if views7d < p.MinBaselineViews && scoreYesterday < p.MinBaselineScore {
		return nil
	}

	// Additive prior on both sides keeps the ratio stable at small scales
	numerator := (scoreToday + p.BayesianPrior) - (scoreYesterday + p.BayesianPrior)
	denominator := math.Max(scoreYesterday+p.BayesianPrior, denominatorFloor)

	pct := int(math.Round(numerator / denominator * 100))
	if pct > velocityMax {
		pct = velocityMax
	}
	if pct < velocityMin {
		pct = velocityMin
	}
	return &pct
}
