package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parkpal/parkpal-backend/errors"
	"github.com/parkpal/parkpal-backend/services"
	"github.com/parkpal/parkpal-backend/types"
)

type UserHandler struct {
	userService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUser godoc
// @Summary Register a user
// @Description Registers an account and links it to a commerce customer record.
// @Tags users
// @Accept json
// @Produce json
// @Param request body types.CreateUserRequest true "User details"
// @Success 201 {object} types.User
// @Failure 400 {object} types.ErrorResponse "Invalid request"
// @Failure 409 {object} types.ErrorResponse "Email already registered"
// @Router /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req types.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(errors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// GetUser godoc
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} types.User
// @Failure 404 {object} types.ErrorResponse "User not found"
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, user)
}
