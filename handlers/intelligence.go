package handlers

import (
	"net/http"

	"medibook/middleware"
	"medibook/models"
	ai "medibook/services/intelligence"

	"github.com/gin-gonic/gin"
)

// AIHandler fronts the health assistant.
type AIHandler struct {
	Assistant ai.AssistantService
}

func NewAIHandler(as ai.AssistantService) *AIHandler {
	return &AIHandler{Assistant: as}
}

func (h *AIHandler) ChatHandler(c *gin.Context) {
	var req models.AIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	resp, err := h.Assistant.Chat(c.Request.Context(), middleware.CurrentUser(c).ID, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ResetChatHandler forgets the stored conversation.
func (h *AIHandler) ResetChatHandler(c *gin.Context) {
	if err := h.Assistant.Reset(c.Request.Context(), middleware.CurrentUser(c).ID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
