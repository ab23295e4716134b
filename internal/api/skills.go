package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/skillsmarket/skillsmarket/internal/cache"
	"github.com/skillsmarket/skillsmarket/internal/catalog"
	"github.com/skillsmarket/skillsmarket/pkg/logging"
)

// listCacheTTL keeps catalog list responses hot without serving stale
// search results for long
const listCacheTTL = 60 * time.Second

// SkillsAPI serves the skill catalog read endpoints
type SkillsAPI struct {
	loader *catalog.Loader
	cache  *cache.Cache
	logger *zap.Logger
}

// NewSkillsAPI creates a new skills API
func NewSkillsAPI(loader *catalog.Loader, redisCache *cache.Cache) *SkillsAPI {
	return &SkillsAPI{
		loader: loader,
		cache:  redisCache,
		logger: logging.WithComponent("skills-api"),
	}
}

// List handles GET /api/skills with q, category and sort filters
func (s *SkillsAPI) List(c *gin.Context) {
	query := c.Query("q")
	category := c.Query("category")
	sortMode := c.DefaultQuery("sort", "alpha")

	cacheKey := cache.HashKey("skills_list", query, category, sortMode)
	var cached []catalog.SkillRecord
	if err := s.cache.GetJSON(c.Request.Context(), cacheKey, &cached); err == nil {
		c.JSON(http.StatusOK, gin.H{"skills": cached, "total": len(cached)})
		return
	}

	skills, err := s.loader.Load()
	if err != nil {
		s.logger.Error("Failed to load catalog", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load skills"})
		return
	}

	skills = catalog.Filter(skills, query, category)
	catalog.Sort(skills, sortMode)

	if err := s.cache.SetJSON(c.Request.Context(), cacheKey, skills, listCacheTTL); err != nil {
		// Serving beats caching; log and move on
		s.logger.Warn("Failed to cache skills list", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"skills": skills, "total": len(skills)})
}

// Get handles GET /api/skills/:slug
func (s *SkillsAPI) Get(c *gin.Context) {
	slug := c.Param("slug")

	skill, err := s.loader.Get(slug)
	if err != nil {
		s.logger.Error("Failed to load catalog", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load skill"})
		return
	}
	if skill == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "skill not found"})
		return
	}

	c.JSON(http.StatusOK, skill)
}
