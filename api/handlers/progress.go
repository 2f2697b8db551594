package handlers

import (
	"net/http"

	"lingobot-api/internal/common"
	"lingobot-api/internal/progress"
	"lingobot-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ProgressHandler serves learning sessions and statistics.
type ProgressHandler struct {
	progress progress.ProgressService
	clock    common.Clock
	logger   *logger.Logger
}

// NewProgressHandler creates a new ProgressHandler instance
func NewProgressHandler(progressService progress.ProgressService, clock common.Clock, logger *logger.Logger) *ProgressHandler {
	return &ProgressHandler{
		progress: progressService,
		clock:    clock,
		logger:   logger,
	}
}

// LearnWords applies a batch of studied word ids to the user. The body is a
// bare JSON array of word ids, matching what the web-app sends.
func (h *ProgressHandler) LearnWords(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	var wordIDs []int64
	if err := c.ShouldBindJSON(&wordIDs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	result, err := h.progress.RecordSession(c.Request.Context(), id, wordIDs, h.clock.Now().UTC())
	if err != nil {
		h.logger.Error("Failed to record session",
			"user_id", id,
			"batch_size", len(wordIDs),
			"error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetStats returns the derived statistics snapshot for a user.
func (h *ProgressHandler) GetStats(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	stats, err := h.progress.ComputeStats(c.Request.Context(), id, h.clock.Now().UTC())
	if err != nil {
		h.logger.Error("Failed to compute stats", "user_id", id, "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
