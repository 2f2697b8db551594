package words

import (
	"context"

	"lingobot-api/internal/config"

	"go.uber.org/zap"
)

// WordService exposes catalog reads with the batch limits enforced.
type WordService interface {
	// GetByID fetches a single word.
	GetByID(ctx context.Context, id int64) (*Word, error)

	// GetByIDs fetches a bounded batch of words; missing ids are omitted.
	GetByIDs(ctx context.Context, ids []int64) ([]*Word, error)

	// GetRandom samples random words, clamped to the configured maximum,
	// excluding the given ids (typically the caller's already-learned set).
	GetRandom(ctx context.Context, count int, exclude []int64) ([]*Word, error)

	// List pages through the catalog in id order.
	List(ctx context.Context, offset, limit int) ([]*Word, error)
}

// wordService implements the WordService interface
type wordService struct {
	logger     *zap.Logger
	repository WordRepository
	maxBatch   int
	maxRandom  int
}

// NewWordService creates a new instance of WordService. Non-positive config
// limits fall back to the package defaults.
func NewWordService(logger *zap.Logger, repository WordRepository, cfg config.WordsConfig) WordService {
	maxBatch := cfg.MaxBatchSize
	if maxBatch <= 0 {
		maxBatch = MaxBatchSize
	}
	maxRandom := cfg.MaxRandomSize
	if maxRandom <= 0 {
		maxRandom = MaxRandomSize
	}
	return &wordService{
		logger:     logger,
		repository: repository,
		maxBatch:   maxBatch,
		maxRandom:  maxRandom,
	}
}

func (s *wordService) GetByID(ctx context.Context, id int64) (*Word, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *wordService) GetByIDs(ctx context.Context, ids []int64) ([]*Word, error) {
	if len(ids) == 0 {
		return []*Word{}, nil
	}
	if len(ids) > s.maxBatch {
		return nil, NewBatchValidationError("ids", len(ids), s.maxBatch, "too many ids in one request")
	}
	return s.repository.GetByIDs(ctx, ids)
}

func (s *wordService) GetRandom(ctx context.Context, count int, exclude []int64) ([]*Word, error) {
	if count <= 0 {
		return []*Word{}, nil
	}
	// Oversized requests are clamped, not rejected.
	if count > s.maxRandom {
		count = s.maxRandom
	}
	return s.repository.GetRandom(ctx, count, exclude)
}

func (s *wordService) List(ctx context.Context, offset, limit int) ([]*Word, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > s.maxBatch {
		limit = s.maxBatch
	}
	return s.repository.List(ctx, offset, limit)
}
