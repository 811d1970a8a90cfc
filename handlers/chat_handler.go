package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/parkpal/parkpal-backend/errors"
	"github.com/parkpal/parkpal-backend/logger"
	"github.com/parkpal/parkpal-backend/services"
	"github.com/parkpal/parkpal-backend/types"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// HandleChatMessage godoc
// @Summary Send a chat message
// @Description Runs one conversational turn: interprets the message, searches the inventory and returns a reply with up to three suggested spaces.
// @Tags chat
// @Accept json
// @Produce json
// @Param request body types.ChatRequest true "Chat turn"
// @Success 200 {object} types.ChatResponse "Reply and suggestions"
// @Failure 400 {object} types.ErrorResponse "Invalid request body"
// @Failure 429 {object} types.ErrorResponse "Rate limit exceeded"
// @Failure 500 {object} types.ErrorResponse "Internal server error"
// @Router /chat [post]
func (h *ChatHandler) HandleChatMessage(c *gin.Context) {
	log := logger.GetLogger()

	var req types.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Debugw("Invalid chat request", "error", err)
		_ = c.Error(errors.ValidationFailed("Invalid request body", err.Error()))
		return
	}

	resp, err := h.chatService.Chat(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
