package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JoshuaCYin/Event-Echo-Lite/internal/ai"
	"github.com/JoshuaCYin/Event-Echo-Lite/internal/api/dto"
)

// AIHandler handles HTTP requests for the planning assistant
type AIHandler struct {
	service ai.Service
}

// NewAIHandler creates a new assistant handler instance
func NewAIHandler(service ai.Service) *AIHandler {
	return &AIHandler{service: service}
}

// Chat proxies a chat transcript to the configured model provider.
func (h *AIHandler) Chat(c *gin.Context) {
	var req ai.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RenderBindingError(c, err)
		return
	}

	resp, err := h.service.Chat(c.Request.Context(), req)
	if err != nil {
		dto.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Wizard turns a rough idea into an event draft.
func (h *AIHandler) Wizard(c *gin.Context) {
	var req ai.WizardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.RenderBindingError(c, err)
		return
	}

	resp, err := h.service.Wizard(c.Request.Context(), req)
	if err != nil {
		dto.RenderError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
