package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"lingobot-api/internal/words"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestCleanWord(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"go (went, gone)", "go"},
		{"  run  ", "run"},
		{"plain", "plain"},
		{"(odd)", "(odd)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, CleanWord(tt.input))
	}
}

func TestColumnToIndex(t *testing.T) {
	assert.Equal(t, 0, columnToIndex("A"))
	assert.Equal(t, 2, columnToIndex("c"))
	assert.Equal(t, 26, columnToIndex("AA"))
	assert.Equal(t, -1, columnToIndex(""))
}

func TestExtractCSVWord(t *testing.T) {
	word, err := extractCSVWord([]string{"go (went, gone)", "[gəʊ]", "идти"})
	require.NoError(t, err)
	assert.Equal(t, "go", word.Eng)
	assert.Equal(t, "идти", word.Rus)
	assert.Equal(t, "[gəʊ]", word.Transcript)

	_, err = extractCSVWord([]string{"only", "two"})
	assert.Error(t, err)

	_, err = extractCSVWord([]string{"", "[x]", "пусто"})
	assert.Error(t, err)
}

func TestImportWords_CSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.csv")
	content := "eng,transcript,rus\n" +
		"go (went; gone),[gəʊ],идти\n" +
		"cat,[kæt],кот\n" +
		",,missing\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	repo := words.NewMockWordRepository()
	importer := NewImporter(zaptest.NewLogger(t), repo)

	config := DefaultImportConfig()
	config.FilePath = path

	result, err := importer.ImportWords(context.Background(), config)
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalProcessed)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Skipped)
	require.Len(t, result.Errors, 1)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
