package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/parkpal/parkpal-backend/config"
)

// SecurityHeadersMiddleware adds defensive HTTP headers to every response.
// HSTS is only set in production so local HTTP development keeps working.
func SecurityHeadersMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")

		if cfg.IsProduction() {
			c.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}
