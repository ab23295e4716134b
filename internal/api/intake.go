package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/skillsmarket/skillsmarket/internal/catalog"
	"github.com/skillsmarket/skillsmarket/internal/counters"
	"github.com/skillsmarket/skillsmarket/internal/db"
	"github.com/skillsmarket/skillsmarket/internal/models"
	"github.com/skillsmarket/skillsmarket/pkg/logging"
)

// IntakeAPI accepts the engagement signals: views, clicks and votes.
// Redis counters are the serving path; the Postgres event log is a best-effort
// audit trail whose failures never reject an event.
type IntakeAPI struct {
	loader *catalog.Loader
	store  *counters.Store
	events *db.EventRepository
	logger *zap.Logger
}

// NewIntakeAPI creates a new intake API
func NewIntakeAPI(loader *catalog.Loader, store *counters.Store, events *db.EventRepository) *IntakeAPI {
	return &IntakeAPI{
		loader: loader,
		store:  store,
		events: events,
		logger: logging.WithComponent("intake-api"),
	}
}

// PostView handles POST /api/skills/:slug/view
func (a *IntakeAPI) PostView(c *gin.Context) {
	slug, ok := a.resolveSlug(c)
	if !ok {
		return
	}
	if err := a.store.BumpView(c.Request.Context(), slug); err != nil {
		a.logger.Error("Failed to record view", zap.String("slug", slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record view"})
		return
	}
	a.logEvent(c, slug, models.EventView, "")
	c.JSON(http.StatusAccepted, gin.H{"recorded": true})
}

// PostClick handles POST /api/skills/:slug/click
func (a *IntakeAPI) PostClick(c *gin.Context) {
	slug, ok := a.resolveSlug(c)
	if !ok {
		return
	}
	if err := a.store.BumpClick(c.Request.Context(), slug); err != nil {
		a.logger.Error("Failed to record click", zap.String("slug", slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record click"})
		return
	}
	a.logEvent(c, slug, models.EventClick, "")
	c.JSON(http.StatusAccepted, gin.H{"recorded": true})
}

// voteRequest is the body of POST /api/skills/:slug/vote
type voteRequest struct {
	Helpful bool   `json:"helpful"`
	VoterID string `json:"voter_id"`
}

// PostVote handles POST /api/skills/:slug/vote. Anonymous voters get a
// generated id back so repeat votes dedupe instead of stacking.
func (a *IntakeAPI) PostVote(c *gin.Context) {
	slug, ok := a.resolveSlug(c)
	if !ok {
		return
	}

	var req voteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vote body"})
		return
	}
	if req.VoterID == "" {
		req.VoterID = uuid.NewString()
	}

	if err := a.store.AddVote(c.Request.Context(), slug, req.VoterID, req.Helpful, time.Now()); err != nil {
		a.logger.Error("Failed to record vote", zap.String("slug", slug), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record vote"})
		return
	}

	kind := models.EventVoteHelpful
	if !req.Helpful {
		kind = models.EventVoteNotHelpful
	}
	a.logEvent(c, slug, kind, req.VoterID)

	c.JSON(http.StatusAccepted, gin.H{"recorded": true, "voter_id": req.VoterID})
}

// resolveSlug validates the slug against the catalog so counters are never
// created for skills that do not exist.
func (a *IntakeAPI) resolveSlug(c *gin.Context) (string, bool) {
	slug := c.Param("slug")
	skill, err := a.loader.Get(slug)
	if err != nil {
		a.logger.Error("Failed to load catalog", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to validate skill"})
		return "", false
	}
	if skill == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "skill not found"})
		return "", false
	}
	return slug, true
}

func (a *IntakeAPI) logEvent(c *gin.Context, slug string, kind models.EventKind, voterID string) {
	if a.events == nil {
		return
	}
	event := &models.SkillEvent{Slug: slug, Kind: string(kind), VoterID: voterID}
	if err := a.events.Record(c.Request.Context(), event); err != nil {
		a.logger.Warn("Failed to append analytics event",
			zap.String("slug", slug),
			zap.String("kind", string(kind)),
			zap.Error(err))
	}
}
