package handlers

import (
	"net/http"
	"strconv"

	"lingobot-api/internal/common"
	"lingobot-api/internal/progress"
	"lingobot-api/internal/words"
	"lingobot-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// defaultRandomCount is how many random words a sample returns by default.
const defaultRandomCount = 10

// WordHandler serves the word catalog.
type WordHandler struct {
	words    words.WordService
	progress progress.ProgressService
	logger   *logger.Logger
}

// NewWordHandler creates a new WordHandler instance
func NewWordHandler(wordService words.WordService, progressService progress.ProgressService, logger *logger.Logger) *WordHandler {
	return &WordHandler{
		words:    wordService,
		progress: progressService,
		logger:   logger,
	}
}

// GetWord fetches one catalog entry.
func (h *WordHandler) GetWord(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("wordId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "word id must be an integer"})
		return
	}

	word, err := h.words.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, word)
}

type wordsByIDsRequest struct {
	IDs []int64 `json:"ids" binding:"required"`
}

// GetWordsByIDs fetches a batch of catalog entries; missing ids are omitted.
func (h *WordHandler) GetWordsByIDs(c *gin.Context) {
	var request wordsByIDsRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	found, err := h.words.GetByIDs(c.Request.Context(), request.IDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"words": found})
}

// GetRandomWords samples unseen words for a user. The user's learned and
// skipped sets are excluded from the sample.
func (h *WordHandler) GetRandomWords(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	count := defaultRandomCount
	if raw := c.Query("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "count must be a positive integer"})
			return
		}
		count = parsed
	}

	user, err := h.progress.GetUser(c.Request.Context(), id)
	if err != nil {
		if common.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		respondError(c, err)
		return
	}

	exclude := make([]int64, 0, len(user.LearnedWords)+len(user.SkippedWords))
	exclude = append(exclude, user.LearnedWords...)
	exclude = append(exclude, user.SkippedWords...)

	sample, err := h.words.GetRandom(c.Request.Context(), count, exclude)
	if err != nil {
		h.logger.Error("Failed to sample words", "user_id", id, "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"words": sample})
}

// ListWords pages through the catalog in id order.
func (h *WordHandler) ListWords(c *gin.Context) {
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	page, err := h.words.List(c.Request.Context(), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"words": page})
}
