package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/skillsmarket/skillsmarket/internal/catalog"
	"github.com/skillsmarket/skillsmarket/internal/counters"
	"github.com/skillsmarket/skillsmarket/internal/ranking"
	"github.com/skillsmarket/skillsmarket/pkg/config"
	"github.com/skillsmarket/skillsmarket/pkg/logging"
)

// JobsAPI exposes the scheduled ranking jobs as authenticated HTTP triggers
type JobsAPI struct {
	trending *ranking.TrendingRanker
	featured *ranking.FeaturedScorer
	logger   *zap.Logger
}

// NewJobsAPI creates a new jobs API
func NewJobsAPI(loader *catalog.Loader, store *counters.Store, cfg *config.Config) *JobsAPI {
	return &JobsAPI{
		trending: ranking.NewTrendingRanker(loader, store, cfg),
		featured: ranking.NewFeaturedScorer(loader, store, cfg),
		logger:   logging.WithComponent("jobs-api"),
	}
}

// ComputeTrending handles GET /api/jobs/compute-trending
func (j *JobsAPI) ComputeTrending(c *gin.Context) {
	result, err := j.trending.Run(c.Request.Context())
	if err != nil {
		j.logger.Error("Trending job failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "trending computation failed",
		})
		return
	}
	c.JSON(http.StatusOK, result)
}

// ComputeFeatured handles GET /api/jobs/compute-featured
func (j *JobsAPI) ComputeFeatured(c *gin.Context) {
	result, err := j.featured.Run(c.Request.Context())
	if err != nil {
		j.logger.Error("Featured job failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "featured computation failed",
		})
		return
	}
	c.JSON(http.StatusOK, result)
}
