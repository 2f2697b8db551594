package handlers

import (
	"fmt"
	"io"
	"net/http"

	"lingobot-api/internal/chatbot"
	"lingobot-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// WebhookHandler handles Telegram webhook requests
type WebhookHandler struct {
	chatbotService chatbot.ChatbotService
	logger         *logger.Logger
}

// NewWebhookHandler creates a new WebhookHandler instance
func NewWebhookHandler(chatbotService chatbot.ChatbotService, logger *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		chatbotService: chatbotService,
		logger:         logger,
	}
}

// HandleTelegramWebhook processes incoming Telegram webhook updates
func (h *WebhookHandler) HandleTelegramWebhook(c *gin.Context) {
	correlationID := fmt.Sprintf("webhook_%s_%d", c.ClientIP(), c.Request.ContentLength)

	h.logger.Debug("Received Telegram webhook",
		"correlation_id", correlationID,
		"content_length", c.Request.ContentLength)

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Error("Failed to read webhook body",
			"correlation_id", correlationID,
			"error", err)
		// Always return 200 as per Telegram webhook requirements
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	if len(body) == 0 {
		h.logger.Warn("Received empty webhook body", "correlation_id", correlationID)
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	if err := h.chatbotService.HandleWebhook(c.Request.Context(), body); err != nil {
		h.logger.Error("Failed to process webhook",
			"correlation_id", correlationID,
			"error", err,
			"body_size", len(body))
		// Still return 200 to prevent Telegram from retrying
		c.JSON(http.StatusOK, gin.H{"ok": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
