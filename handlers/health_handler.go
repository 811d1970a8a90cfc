package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parkpal/parkpal-backend/services"
	"github.com/parkpal/parkpal-backend/types"
)

type HealthHandler struct {
	healthService *services.HealthService
}

func NewHealthHandler(healthService *services.HealthService) *HealthHandler {
	return &HealthHandler{healthService: healthService}
}

// LivenessCheck handles the kubernetes liveness probe.
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.Status(http.StatusOK)
}

// ReadinessCheck handles the kubernetes readiness probe.
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	health := h.healthService.CheckHealth(c.Request.Context())

	if health.Status == types.HealthStatusDown {
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}
	c.JSON(http.StatusOK, health)
}

// DetailedHealth reports per-component health.
func (h *HealthHandler) DetailedHealth(c *gin.Context) {
	c.JSON(http.StatusOK, h.healthService.CheckHealth(c.Request.Context()))
}
