package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/skillsmarket/skillsmarket/internal/cache"
	"github.com/skillsmarket/skillsmarket/internal/keys"
	"github.com/skillsmarket/skillsmarket/pkg/logging"
)

// RequireJobSecret guards the job trigger endpoints with a bearer secret.
// An unset secret rejects everything; a misconfigured deployment must not
// expose the cron surface.
func RequireJobSecret(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		token := strings.TrimPrefix(auth, "Bearer ")
		if secret == "" || token == auth ||
			subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "unauthorized",
			})
			return
		}
		c.Next()
	}
}

// RateLimit throttles an intake endpoint per client IP using a shared Redis
// counter with a one-minute TTL, so the limit holds across instances.
func RateLimit(redisCache *cache.Cache, scope string, perMinute int) gin.HandlerFunc {
	logger := logging.WithComponent("ratelimit")
	return func(c *gin.Context) {
		key := keys.RateLimit(scope, c.ClientIP())
		count, err := redisCache.IncrWithTTL(c.Request.Context(), key, time.Minute)
		if err != nil {
			// Fail open: losing the limiter should not take down intake
			logger.Warn("Rate limit counter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if count > int64(perMinute) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded",
			})
			return
		}
		c.Next()
	}
}
