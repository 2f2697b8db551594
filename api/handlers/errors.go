package handlers

import (
	"net/http"

	"lingobot-api/internal/common"
	"lingobot-api/internal/progress"
	"lingobot-api/internal/tasks"
	"lingobot-api/internal/words"

	"github.com/gin-gonic/gin"
)

// respondError maps a domain error to the right HTTP status and a uniform
// JSON error body.
func respondError(c *gin.Context, err error) {
	switch {
	case common.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case common.IsValidation(err),
		progress.IsValidationError(err),
		words.IsBatchValidationError(err),
		tasks.IsTaskValidationError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
