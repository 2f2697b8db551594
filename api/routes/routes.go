package routes

import (
	"lingobot-api/api/handlers"
	"lingobot-api/api/middleware"
	"lingobot-api/internal/chatbot"
	"lingobot-api/internal/common"
	"lingobot-api/internal/leaderboard"
	"lingobot-api/internal/progress"
	"lingobot-api/internal/tasks"
	"lingobot-api/internal/words"
	"lingobot-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Services bundles everything the HTTP surface needs.
type Services struct {
	Progress    progress.ProgressService
	Words       words.WordService
	Leaderboard leaderboard.LeaderboardService
	Tasks       tasks.TaskService
	Chatbot     chatbot.ChatbotService
	Clock       common.Clock
}

func SetupRoutes(router *gin.Engine, db *gorm.DB, logger *logger.Logger, services Services) {
	// Add middleware
	router.Use(middleware.RequestLogging(logger))
	router.Use(gin.Recovery())

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, logger)
	userHandler := handlers.NewUserHandler(services.Progress, logger)
	progressHandler := handlers.NewProgressHandler(services.Progress, services.Clock, logger)
	leaderboardHandler := handlers.NewLeaderboardHandler(services.Leaderboard, logger)
	wordHandler := handlers.NewWordHandler(services.Words, services.Progress, logger)
	taskHandler := handlers.NewTaskHandler(services.Tasks, logger)

	api := router.Group("/api")
	{
		api.GET("/health", healthHandler.Check)

		api.POST("/users", userHandler.CreateUser)

		users := api.Group("/users/:id")
		{
			users.GET("", userHandler.GetUser)
			users.PATCH("", userHandler.UpdateUser)
			users.POST("/learn-words", progressHandler.LearnWords)
			users.GET("/stats", progressHandler.GetStats)
			users.GET("/leaderboard", leaderboardHandler.GetLeaderboard)
			users.GET("/words/random", wordHandler.GetRandomWords)

			users.GET("/tasks", taskHandler.ListTasks)
			users.POST("/tasks", taskHandler.CreateTask)
		}

		wordsGroup := api.Group("/words")
		{
			wordsGroup.GET("", wordHandler.ListWords)
			wordsGroup.POST("/by-ids", wordHandler.GetWordsByIDs)
			wordsGroup.GET("/:wordId", wordHandler.GetWord)
		}

		api.POST("/tasks", taskHandler.CreateSharedTask)

		tasksGroup := api.Group("/tasks/:taskId")
		{
			tasksGroup.PATCH("", taskHandler.UpdateTask)
			tasksGroup.POST("/toggle", taskHandler.ToggleTask)
			tasksGroup.DELETE("", taskHandler.DeleteTask)
		}
	}

	if services.Chatbot != nil {
		webhookHandler := handlers.NewWebhookHandler(services.Chatbot, logger)
		router.POST("/telegram/webhook", webhookHandler.HandleTelegramWebhook)
	}

	// Root health check
	router.GET("/health", healthHandler.Check)
}
