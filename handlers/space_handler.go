package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parkpal/parkpal-backend/errors"
	"github.com/parkpal/parkpal-backend/internal/store"
	"github.com/parkpal/parkpal-backend/search"
	"github.com/parkpal/parkpal-backend/services"
	"github.com/parkpal/parkpal-backend/types"
)

type SpaceHandler struct {
	inventoryService *services.InventoryService
	spaceStore       store.SpaceStore
}

// NewSpaceHandler builds the space endpoints. spaceStore may be nil in
// fixture mode; GetSpace then falls back to scanning the inventory.
func NewSpaceHandler(inventoryService *services.InventoryService, spaceStore store.SpaceStore) *SpaceHandler {
	return &SpaceHandler{
		inventoryService: inventoryService,
		spaceStore:       spaceStore,
	}
}

// ListSpaces godoc
// @Summary List parking spaces
// @Description Lists the inventory. Pass available=true to exclude fully booked spaces.
// @Tags spaces
// @Produce json
// @Param available query bool false "Only spaces with remaining capacity"
// @Success 200 {array} types.ParkingSpace
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /spaces [get]
func (h *SpaceHandler) ListSpaces(c *gin.Context) {
	var (
		spaces []types.ParkingSpace
		err    error
	)
	if c.Query("available") == "true" {
		spaces, err = h.inventoryService.GetAvailableSpaces(c.Request.Context())
	} else {
		spaces, err = h.inventoryService.GetAllSpaces(c.Request.Context())
	}
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, spaces)
}

// GetSpace godoc
// @Summary Get a parking space
// @Tags spaces
// @Produce json
// @Param id path string true "Space ID"
// @Success 200 {object} types.ParkingSpace
// @Failure 404 {object} types.ErrorResponse "Space not found"
// @Router /spaces/{id} [get]
func (h *SpaceHandler) GetSpace(c *gin.Context) {
	id := c.Param("id")

	if h.spaceStore != nil {
		space, err := h.spaceStore.GetSpaceByID(c.Request.Context(), id)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, space)
		return
	}

	spaces, err := h.inventoryService.GetAllSpaces(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}
	for i := range spaces {
		if spaces[i].ID == id {
			c.JSON(http.StatusOK, spaces[i])
			return
		}
	}
	_ = c.Error(errors.SpaceNotFound(id))
}

// SearchSpaces godoc
// @Summary Search parking spaces
// @Description Interprets a free-text message, filters the inventory and returns up to three ranked results.
// @Tags spaces
// @Accept json
// @Produce json
// @Param request body types.SearchRequest true "Search request"
// @Success 200 {object} types.SearchResponse
// @Failure 400 {object} types.ErrorResponse "Invalid request body"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /spaces/search [post]
func (h *SpaceHandler) SearchSpaces(c *gin.Context) {
	var req types.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	spaces, err := h.inventoryService.GetAllSpaces(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	constraints, results := search.Search(req.Message, spaces, req.Coordinates)
	c.JSON(http.StatusOK, types.SearchResponse{
		Constraints: constraints,
		Results:     results,
	})
}
