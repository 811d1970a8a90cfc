package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parkpal/parkpal-backend/errors"
	"github.com/parkpal/parkpal-backend/services"
	"github.com/parkpal/parkpal-backend/types"
)

type VehicleHandler struct {
	vehicleService *services.VehicleService
}

func NewVehicleHandler(vehicleService *services.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

// CreateVehicle godoc
// @Summary Register a vehicle
// @Tags vehicles
// @Accept json
// @Produce json
// @Param request body types.CreateVehicleRequest true "Vehicle details"
// @Success 201 {object} types.Vehicle
// @Failure 400 {object} types.ErrorResponse "Invalid request"
// @Failure 404 {object} types.ErrorResponse "User not found"
// @Router /vehicles [post]
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	var req types.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	vehicle, err := h.vehicleService.CreateVehicle(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, vehicle)
}

// ListUserVehicles godoc
// @Summary List a user's vehicles
// @Tags vehicles
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {array} types.Vehicle
// @Router /users/{id}/vehicles [get]
func (h *VehicleHandler) ListUserVehicles(c *gin.Context) {
	vehicles, err := h.vehicleService.ListUserVehicles(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	if vehicles == nil {
		vehicles = []types.Vehicle{}
	}
	c.JSON(http.StatusOK, vehicles)
}
