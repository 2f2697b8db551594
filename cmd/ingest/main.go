package main

import (
	_ "github.com/joho/godotenv/autoload" // Load .env file automatically

	"context"
	"flag"
	"log"

	"lingobot-api/internal/config"
	"lingobot-api/internal/database"
	"lingobot-api/internal/ingest"
	"lingobot-api/internal/words"
	"lingobot-api/pkg/logger"
)

func main() {
	importConfig := ingest.DefaultImportConfig()

	flag.StringVar(&importConfig.FilePath, "file", "", "path to the .xlsx or .csv file to import")
	flag.StringVar(&importConfig.SheetName, "sheet", importConfig.SheetName, "Excel sheet name")
	flag.StringVar(&importConfig.EngColumn, "eng-col", importConfig.EngColumn, "column with the English word")
	flag.StringVar(&importConfig.TranscriptColumn, "transcript-col", importConfig.TranscriptColumn, "column with the transcription")
	flag.StringVar(&importConfig.RusColumn, "rus-col", importConfig.RusColumn, "column with the translation")
	flag.IntVar(&importConfig.StartRow, "start-row", importConfig.StartRow, "1-based row to start importing from")
	flag.Parse()

	if importConfig.FilePath == "" {
		log.Fatal("-file is required")
	}

	logger := logger.New()
	defer logger.Sync()
	zapLogger := logger.SugaredLogger.Desugar()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewPostgresConnection(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	if err := words.RunMigrations(db); err != nil {
		logger.Fatal("Failed to run word catalog migrations", "error", err)
	}

	importer := ingest.NewImporter(zapLogger, words.NewGormWordRepository(db, zapLogger))

	result, err := importer.ImportWords(context.Background(), importConfig)
	if err != nil {
		logger.Fatal("Import failed", "error", err)
	}

	logger.Info("Import finished",
		"processed", result.TotalProcessed,
		"created", result.Created,
		"skipped", result.Skipped,
		"errors", len(result.Errors))

	for _, importError := range result.Errors {
		logger.Warn("Import row error", "detail", importError)
	}
}
