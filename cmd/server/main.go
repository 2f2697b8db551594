package main

import (
	_ "github.com/joho/godotenv/autoload" // Load .env file automatically

	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lingobot-api/api/routes"
	"lingobot-api/internal/chatbot"
	"lingobot-api/internal/common"
	"lingobot-api/internal/config"
	"lingobot-api/internal/database"
	"lingobot-api/internal/events"
	"lingobot-api/internal/leaderboard"
	"lingobot-api/internal/progress"
	"lingobot-api/internal/scheduler"
	"lingobot-api/internal/tasks"
	"lingobot-api/internal/words"
	"lingobot-api/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Initialize logger
	logger := logger.New()
	defer logger.Sync()

	// Get the underlying zap logger for services
	zapLogger := logger.SugaredLogger.Desugar()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	// Run module migrations
	if err := progress.RunMigrations(db); err != nil {
		logger.Fatal("Failed to run progress migrations", "error", err)
	}
	if err := words.RunMigrations(db); err != nil {
		logger.Fatal("Failed to run word catalog migrations", "error", err)
	}
	if err := tasks.RunMigrations(db); err != nil {
		logger.Fatal("Failed to run task migrations", "error", err)
	}

	// Initialize event bus
	eventBus := events.NewEventBus(zapLogger)

	clock := common.NewRealClock()

	// Optional redis-backed leaderboard mirror
	var leaderboardCache *leaderboard.Cache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warn("Redis unreachable, leaderboard cache disabled", "error", err)
		} else {
			leaderboardCache = leaderboard.NewCache(redisClient)
			logger.Info("Leaderboard cache enabled", "addr", cfg.Redis.Addr)
		}
	}

	// Initialize services
	userRepository := progress.NewGormUserRepository(db, zapLogger)
	progressService := progress.NewProgressService(eventBus, zapLogger, userRepository)

	wordRepository := words.NewGormWordRepository(db, zapLogger)
	wordService := words.NewWordService(zapLogger, wordRepository, cfg.Words)

	leaderboardService := leaderboard.NewLeaderboardService(eventBus, zapLogger, userRepository, leaderboardCache)

	taskRepository := tasks.NewGormTaskRepository(db, zapLogger)
	taskService := tasks.NewTaskService(zapLogger, taskRepository)

	var chatbotService chatbot.ChatbotService
	if cfg.Chatbot.Token != "" {
		chatbotService, err = chatbot.NewChatbotService(eventBus, zapLogger, cfg.Chatbot,
			progressService, leaderboardService, taskService, clock)
		if err != nil {
			logger.Fatal("Failed to initialize chatbot service", "error", err)
		}
	} else {
		logger.Warn("Chatbot token not configured, bot surface disabled")
	}

	// Initialize scheduler
	var reminderScheduler *scheduler.ReminderScheduler
	if cfg.Scheduler.Enabled {
		reminderScheduler = scheduler.NewReminderScheduler(eventBus, zapLogger, userRepository, clock, cfg.Scheduler)
		if err := reminderScheduler.Start(); err != nil {
			logger.Fatal("Failed to start reminder scheduler", "error", err)
		}
	} else {
		logger.Info("Reminder scheduler disabled")
	}

	// Setup Gin router
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	routes.SetupRoutes(router, db, logger, routes.Services{
		Progress:    progressService,
		Words:       wordService,
		Leaderboard: leaderboardService,
		Tasks:       taskService,
		Chatbot:     chatbotService,
		Clock:       clock,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	if reminderScheduler != nil {
		reminderScheduler.Stop()
	}

	if err := eventBus.Close(); err != nil {
		logger.Error("Failed to close event bus", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
