package handlers

import (
	"net/http"
	"strconv"

	"lingobot-api/internal/progress"
	"lingobot-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the user resource.
type UserHandler struct {
	progress progress.ProgressService
	logger   *logger.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(progressService progress.ProgressService, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		progress: progressService,
		logger:   logger,
	}
}

// parseUserID reads the :id path parameter as a Telegram id.
func parseUserID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user id must be an integer"})
		return 0, false
	}
	return id, true
}

// GetUser fetches a user record, creating a default one on first contact.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	user, err := h.progress.GetOrCreateUser(c.Request.Context(), progress.Identity{UserID: id})
	if err != nil {
		h.logger.Error("Failed to get or create user", "user_id", id, "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// CreateUser registers a user from identity-provider fields. The call is
// idempotent: an existing record is returned untouched.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var identity progress.Identity
	if err := c.ShouldBindJSON(&identity); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if identity.UserID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "telegram_id is required"})
		return
	}

	user, err := h.progress.GetOrCreateUser(c.Request.Context(), identity)
	if err != nil {
		h.logger.Error("Failed to create user", "user_id", identity.UserID, "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUser applies a partial update to an existing user.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	var patch progress.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	user, err := h.progress.UpdateUser(c.Request.Context(), id, patch)
	if err != nil {
		h.logger.Error("Failed to update user", "user_id", id, "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
