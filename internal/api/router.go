package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/skillsmarket/skillsmarket/internal/cache"
	"github.com/skillsmarket/skillsmarket/internal/catalog"
	"github.com/skillsmarket/skillsmarket/internal/counters"
	"github.com/skillsmarket/skillsmarket/internal/db"
	"github.com/skillsmarket/skillsmarket/pkg/config"
	"github.com/skillsmarket/skillsmarket/pkg/logging"
)

// Router sets up API routes
type Router struct {
	cfg     *config.Config
	loader  *catalog.Loader
	store   *counters.Store
	cache   *cache.Cache
	events  *db.EventRepository
	logger  *zap.Logger
	dbConn  *db.DB
}

// NewRouter creates a new API router
func NewRouter(cfg *config.Config, loader *catalog.Loader, redisCache *cache.Cache, database *db.DB) *Router {
	return &Router{
		cfg:    cfg,
		loader: loader,
		store:  counters.NewStore(redisCache),
		cache:  redisCache,
		events: db.NewEventRepository(database),
		dbConn: database,
		logger: logging.WithComponent("api-router"),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	skills := NewSkillsAPI(r.loader, r.cache)
	rankings := NewRankingsAPI(r.store)
	intake := NewIntakeAPI(r.loader, r.store, r.events)
	jobs := NewJobsAPI(r.loader, r.store, r.cfg)

	api := engine.Group("/api")
	{
		api.GET("/skills", skills.List)
		api.GET("/skills/:slug", skills.Get)
		api.GET("/trending", rankings.GetTrending)
		api.GET("/featured", rankings.GetFeatured)

		limit := r.cfg.RateLimit.RequestsPerMinute
		api.POST("/skills/:slug/view", RateLimit(r.cache, "view", limit), intake.PostView)
		api.POST("/skills/:slug/click", RateLimit(r.cache, "click", limit), intake.PostClick)
		api.POST("/skills/:slug/vote", RateLimit(r.cache, "vote", limit), intake.PostVote)

		cron := api.Group("/jobs", RequireJobSecret(r.cfg.Jobs.Secret))
		cron.GET("/compute-trending", jobs.ComputeTrending)
		cron.GET("/compute-featured", jobs.ComputeFeatured)
	}
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	status := "OK"
	code := http.StatusOK

	if err := r.cache.Health(c.Request.Context()); err != nil {
		r.logger.Warn("Redis health check failed", zap.Error(err))
		status = "DEGRADED"
		code = http.StatusServiceUnavailable
	}

	// The event log is optional, so its health is reported but never
	// fails the check
	dbStatus := "disabled"
	if r.dbConn != nil {
		dbStatus = "OK"
		if err := r.dbConn.Health(c.Request.Context()); err != nil {
			dbStatus = "DEGRADED"
		}
	}

	c.JSON(code, gin.H{
		"status":   status,
		"service":  "skillsmarket-api",
		"database": dbStatus,
	})
}
