package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/parkpal/parkpal-backend/errors"
	"github.com/parkpal/parkpal-backend/logger"
)

// ErrorHandler converts errors attached to the gin context into JSON
// responses. AppErrors carry their own status code and taxonomy; anything
// else becomes a 500 without leaking internals.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		log := logger.GetLogger()

		if appError, ok := err.(*errors.AppError); ok {
			statusCode := appError.GetHTTPStatus()
			log.Warnw("Request failed",
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"status", statusCode,
				"errorType", string(appError.Type),
				"error", appError.Message,
				"detail", appError.Detail)

			response := gin.H{
				"type":    string(appError.Type),
				"message": appError.Message,
				"code":    strconv.Itoa(statusCode),
			}
			if appError.Detail != "" {
				response["details"] = appError.Detail
			}
			c.JSON(statusCode, response)
			return
		}

		log.Errorw("Unhandled error",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"type":    string(errors.ServerError),
			"message": "Internal server error",
			"code":    strconv.Itoa(http.StatusInternalServerError),
		})
	}
}
