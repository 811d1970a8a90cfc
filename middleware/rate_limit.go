package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/parkpal/parkpal-backend/errors"
	"github.com/parkpal/parkpal-backend/logger"
	"github.com/parkpal/parkpal-backend/services"
)

// ChatRateLimiter limits chat requests per client IP. A denied request gets
// 429 with a Retry-After header; a limiter backend failure lets the request
// through rather than taking chat down with Redis.
func ChatRateLimiter(limiter services.RateLimiterInterface) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, retryAfter, err := limiter.AllowChat(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.GetLogger().Warnw("Rate limit check failed, allowing request", "error", err)
			c.Next()
			return
		}
		if !allowed {
			seconds := int(retryAfter.Seconds())
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))
			_ = c.Error(apperrors.RateLimited(strconv.Itoa(seconds)))
			c.Abort()
			return
		}
		c.Next()
	}
}
