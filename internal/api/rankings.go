package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/skillsmarket/skillsmarket/internal/cache"
	"github.com/skillsmarket/skillsmarket/internal/counters"
	"github.com/skillsmarket/skillsmarket/internal/models"
	"github.com/skillsmarket/skillsmarket/pkg/logging"
)

// RankingsAPI serves the precomputed trending and featured lists
type RankingsAPI struct {
	store  *counters.Store
	logger *zap.Logger
}

// NewRankingsAPI creates a new rankings API
func NewRankingsAPI(store *counters.Store) *RankingsAPI {
	return &RankingsAPI{
		store:  store,
		logger: logging.WithComponent("rankings-api"),
	}
}

// GetTrending handles GET /api/trending. When the primary cache key has
// expired (a missed cron run), the un-expiring backup copy is served with
// stale=true so clients can choose to soften the presentation.
func (r *RankingsAPI) GetTrending(c *gin.Context) {
	list, stale, err := r.store.ReadTrending(c.Request.Context())
	if err != nil {
		if err == cache.ErrNotFound {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "trending list not computed yet"})
			return
		}
		r.logger.Error("Failed to read trending list", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read trending list"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trending": list,
		"stale":    stale,
	})
}

// GetFeatured handles GET /api/featured with an optional type=permanent|rotating split
func (r *RankingsAPI) GetFeatured(c *gin.Context) {
	featuredType := c.Query("type")
	switch featuredType {
	case "", string(models.FeaturedPermanent), string(models.FeaturedRotating):
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid type: must be permanent or rotating"})
		return
	}

	list, err := r.store.ReadFeatured(c.Request.Context(), featuredType)
	if err != nil {
		if err == cache.ErrNotFound {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "featured list not computed yet"})
			return
		}
		r.logger.Error("Failed to read featured list", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read featured list"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"featured": list})
}
