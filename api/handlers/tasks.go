package handlers

import (
	"net/http"
	"strconv"
	"time"

	"lingobot-api/internal/tasks"
	"lingobot-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// TaskHandler serves personal to-do items.
type TaskHandler struct {
	tasks  tasks.TaskService
	logger *logger.Logger
}

// NewTaskHandler creates a new TaskHandler instance
func NewTaskHandler(taskService tasks.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		tasks:  taskService,
		logger: logger,
	}
}

type createTaskRequest struct {
	Text string `json:"text" binding:"required"`
	Date string `json:"date" binding:"required"`
}

// CreateTask adds a task to a user's list. The date travels as YYYY-MM-DD.
func (h *TaskHandler) CreateTask(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	var request createTaskRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", request.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	task, err := h.tasks.CreateTask(c.Request.Context(), &id, request.Text, date)
	if err != nil {
		h.logger.Error("Failed to create task", "user_id", id, "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// CreateSharedTask adds an unowned task that appears in every user's list.
func (h *TaskHandler) CreateSharedTask(c *gin.Context) {
	var request createTaskRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", request.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	task, err := h.tasks.CreateTask(c.Request.Context(), nil, request.Text, date)
	if err != nil {
		h.logger.Error("Failed to create shared task", "error", err)
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

// ListTasks returns a user's tasks, optionally filtered by date.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	id, ok := parseUserID(c)
	if !ok {
		return
	}

	if raw := c.Query("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		list, err := h.tasks.GetTasksForDate(c.Request.Context(), id, date)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"tasks": list})
		return
	}

	list, err := h.tasks.GetTasks(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": list})
}

func parseTaskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("taskId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "task id must be an integer"})
		return 0, false
	}
	return id, true
}

// UpdateTask applies a partial update to a task.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	var patch tasks.TaskPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	task, err := h.tasks.UpdateTask(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// ToggleTask flips a task's completion flag.
func (h *TaskHandler) ToggleTask(c *gin.Context) {
	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	task, err := h.tasks.ToggleDone(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// DeleteTask removes a task.
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	if err := h.tasks.DeleteTask(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
