package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"lingobot-api/internal/words"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// ImportConfig defines where catalog rows come from and how they are laid out.
type ImportConfig struct {
	FilePath         string // Path to the Excel or CSV file
	EngColumn        string // Column with the English word
	RusColumn        string // Column with the translation
	TranscriptColumn string // Column with the transcription
	SheetName        string // Name of the sheet to import
	StartRow         int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		EngColumn:        "A",
		TranscriptColumn: "B",
		RusColumn:        "C",
		SheetName:        "Sheet1",
		StartRow:         2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Skipped        int
	Errors         []string
}

// Importer loads catalog entries from spreadsheet files.
type Importer struct {
	logger     *zap.Logger
	repository words.WordRepository
}

// NewImporter creates a new Importer
func NewImporter(logger *zap.Logger, repository words.WordRepository) *Importer {
	return &Importer{
		logger:     logger,
		repository: repository,
	}
}

// ImportWords imports words from an Excel or CSV file, dispatching on the
// file extension.
func (im *Importer) ImportWords(ctx context.Context, config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))

	if ext == ".csv" {
		return im.importFromCSV(ctx, config)
	}
	return im.importFromExcel(ctx, config)
}

// importFromExcel imports words from an Excel file
func (im *Importer) importFromExcel(ctx context.Context, config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}

	result := &ImportResult{Errors: make([]string, 0)}
	batch := make([]*words.Word, 0, len(rows))

	for i, row := range rows {
		if i < config.StartRow-1 {
			continue
		}
		result.TotalProcessed++

		word, err := extractWord(row, config)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
			continue
		}
		batch = append(batch, word)
	}

	if err := im.flush(ctx, batch, result); err != nil {
		return nil, err
	}
	return result, nil
}

// importFromCSV imports words from a CSV file
func (im *Importer) importFromCSV(ctx context.Context, config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	result := &ImportResult{Errors: make([]string, 0)}
	batch := make([]*words.Word, 0)

	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}

		rowNum++
		if rowNum < config.StartRow {
			continue
		}
		result.TotalProcessed++

		word, err := extractCSVWord(row)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		batch = append(batch, word)
	}

	if err := im.flush(ctx, batch, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (im *Importer) flush(ctx context.Context, batch []*words.Word, result *ImportResult) error {
	if len(batch) == 0 {
		return nil
	}
	if err := im.repository.CreateBatch(ctx, batch); err != nil {
		return fmt.Errorf("failed to store imported words: %w", err)
	}
	result.Created = len(batch)

	im.logger.Info("Word import finished",
		zap.Int("processed", result.TotalProcessed),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped))
	return nil
}

// extractWord builds a catalog entry from an Excel row using the configured
// column letters.
func extractWord(row []string, config ImportConfig) (*words.Word, error) {
	var eng, rus, transcript string

	if idx := columnToIndex(config.EngColumn); idx >= 0 && idx < len(row) {
		eng = CleanWord(row[idx])
	}
	if idx := columnToIndex(config.RusColumn); idx >= 0 && idx < len(row) {
		rus = strings.TrimSpace(row[idx])
	}
	if config.TranscriptColumn != "" {
		if idx := columnToIndex(config.TranscriptColumn); idx >= 0 && idx < len(row) {
			transcript = strings.TrimSpace(row[idx])
		}
	}

	return buildWord(eng, rus, transcript)
}

// extractCSVWord handles the eng,[transcript],rus CSV layout.
func extractCSVWord(row []string) (*words.Word, error) {
	if len(row) < 3 {
		return nil, fmt.Errorf("expected at least 3 fields, got %d", len(row))
	}
	return buildWord(CleanWord(row[0]), strings.TrimSpace(row[2]), strings.TrimSpace(row[1]))
}

func buildWord(eng, rus, transcript string) (*words.Word, error) {
	if eng == "" {
		return nil, fmt.Errorf("english word cannot be empty")
	}
	if rus == "" {
		return nil, fmt.Errorf("translation cannot be empty")
	}
	return &words.Word{
		Eng:        eng,
		Rus:        rus,
		Transcript: transcript,
	}, nil
}

// CleanWord strips extra forms in parentheses, e.g. "go (went, gone)".
func CleanWord(word string) string {
	if idx := strings.Index(word, "("); idx > 0 {
		return strings.TrimSpace(word[:idx])
	}
	return strings.TrimSpace(word)
}

// columnToIndex converts an Excel column letter to a zero-based index.
func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	if column == "" {
		return -1
	}
	index := 0
	for i := 0; i < len(column); i++ {
		index = index*26 + int(column[i]-'A'+1)
	}
	return index - 1
}
