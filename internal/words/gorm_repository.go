package words

import (
	"context"
	"errors"
	"fmt"

	"lingobot-api/internal/common"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// gormWordRepository implements WordRepository using GORM
type gormWordRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewGormWordRepository creates a new GORM-based word repository
func NewGormWordRepository(db *gorm.DB, logger *zap.Logger) WordRepository {
	return &gormWordRepository{
		db:     db,
		logger: logger,
	}
}

func (r *gormWordRepository) GetByID(ctx context.Context, id int64) (*Word, error) {
	var word Word
	err := r.db.WithContext(ctx).First(&word, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NotFoundError{Resource: "Word", ID: common.WordID(id).String()}
		}
		r.logger.Error("Failed to get word", zap.Int64("wordID", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get word: %w", err)
	}
	return &word, nil
}

func (r *gormWordRepository) GetByIDs(ctx context.Context, ids []int64) ([]*Word, error) {
	if len(ids) == 0 {
		return []*Word{}, nil
	}

	var found []*Word
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&found).Error; err != nil {
		r.logger.Error("Failed to get words by ids", zap.Int("count", len(ids)), zap.Error(err))
		return nil, fmt.Errorf("failed to get words by ids: %w", err)
	}

	// Missing ids are omitted; the rest follow the input order.
	byID := make(map[int64]*Word, len(found))
	for _, w := range found {
		byID[w.ID] = w
	}
	ordered := make([]*Word, 0, len(found))
	for _, id := range ids {
		if w, ok := byID[id]; ok {
			ordered = append(ordered, w)
		}
	}
	return ordered, nil
}

func (r *gormWordRepository) GetRandom(ctx context.Context, count int, exclude []int64) ([]*Word, error) {
	query := r.db.WithContext(ctx).Order("RANDOM()").Limit(count)
	if len(exclude) > 0 {
		query = query.Where("id NOT IN ?", exclude)
	}

	var sample []*Word
	if err := query.Find(&sample).Error; err != nil {
		r.logger.Error("Failed to sample random words", zap.Int("count", count), zap.Error(err))
		return nil, fmt.Errorf("failed to sample random words: %w", err)
	}
	return sample, nil
}

func (r *gormWordRepository) List(ctx context.Context, offset, limit int) ([]*Word, error) {
	var page []*Word
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&page).Error
	if err != nil {
		r.logger.Error("Failed to list words", zap.Error(err))
		return nil, fmt.Errorf("failed to list words: %w", err)
	}
	return page, nil
}

func (r *gormWordRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&Word{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count words: %w", err)
	}
	return count, nil
}

func (r *gormWordRepository) Create(ctx context.Context, word *Word) error {
	if err := r.db.WithContext(ctx).Create(word).Error; err != nil {
		r.logger.Error("Failed to create word", zap.String("eng", word.Eng), zap.Error(err))
		return fmt.Errorf("failed to create word: %w", err)
	}
	return nil
}

func (r *gormWordRepository) CreateBatch(ctx context.Context, batch []*Word) error {
	if len(batch) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(batch, 200).Error; err != nil {
		r.logger.Error("Failed to create word batch", zap.Int("count", len(batch)), zap.Error(err))
		return fmt.Errorf("failed to create word batch: %w", err)
	}
	return nil
}
