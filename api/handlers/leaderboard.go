package handlers

import (
	"net/http"
	"strconv"

	"lingobot-api/internal/leaderboard"
	"lingobot-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// defaultLeaderboardSize is the board size when the client does not ask for one.
const defaultLeaderboardSize = 10

// maxLeaderboardSize caps how many rows one request may fetch.
const maxLeaderboardSize = 100

// LeaderboardHandler serves XP rankings.
type LeaderboardHandler struct {
	leaderboard leaderboard.LeaderboardService
	logger      *logger.Logger
}

// NewLeaderboardHandler creates a new LeaderboardHandler instance
func NewLeaderboardHandler(leaderboardService leaderboard.LeaderboardService, logger *logger.Logger) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboard: leaderboardService,
		logger:      logger,
	}
}

// GetLeaderboard returns the top rows and the asking user's own rank.
func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	topN := defaultLeaderboardSize
	if raw := c.Query("top"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "top must be a positive integer"})
			return
		}
		topN = parsed
	}
	if topN > maxLeaderboardSize {
		topN = maxLeaderboardSize
	}

	view, err := h.leaderboard.GetView(c.Request.Context(), id, topN)
	if err != nil {
		h.logger.Error("Failed to build leaderboard", "user_id", id, "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}
