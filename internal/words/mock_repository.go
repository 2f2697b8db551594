package words

import (
	"context"
	"math/rand"
	"sort"
	"sync"

	"lingobot-api/internal/common"
)

// MockWordRepository provides an in-memory implementation for testing
type MockWordRepository struct {
	mu          sync.Mutex
	words       map[int64]*Word
	nextID      int64
	getError    error
	listError   error
	createError error
}

// NewMockWordRepository creates a new mock repository
func NewMockWordRepository() *MockWordRepository {
	return &MockWordRepository{
		words:  make(map[int64]*Word),
		nextID: 1,
	}
}

func (m *MockWordRepository) GetByID(ctx context.Context, id int64) (*Word, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if word, exists := m.words[id]; exists {
		copied := *word
		return &copied, nil
	}
	return nil, common.NotFoundError{Resource: "Word", ID: common.WordID(id).String()}
}

func (m *MockWordRepository) GetByIDs(ctx context.Context, ids []int64) ([]*Word, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]*Word, 0, len(ids))
	for _, id := range ids {
		if word, exists := m.words[id]; exists {
			copied := *word
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *MockWordRepository) GetRandom(ctx context.Context, count int, exclude []int64) ([]*Word, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	excluded := make(map[int64]struct{}, len(exclude))
	for _, id := range exclude {
		excluded[id] = struct{}{}
	}

	candidates := make([]*Word, 0, len(m.words))
	for id, word := range m.words {
		if _, skip := excluded[id]; skip {
			continue
		}
		copied := *word
		candidates = append(candidates, &copied)
	}
	rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	if len(candidates) > count {
		candidates = candidates[:count]
	}
	return candidates, nil
}

func (m *MockWordRepository) List(ctx context.Context, offset, limit int) ([]*Word, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]int64, 0, len(m.words))
	for id := range m.words {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	if offset >= len(ids) {
		return []*Word{}, nil
	}
	ids = ids[offset:]
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}

	page := make([]*Word, 0, len(ids))
	for _, id := range ids {
		copied := *m.words[id]
		page = append(page, &copied)
	}
	return page, nil
}

func (m *MockWordRepository) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.words)), nil
}

func (m *MockWordRepository) Create(ctx context.Context, word *Word) error {
	if m.createError != nil {
		return m.createError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if word.ID == 0 {
		word.ID = m.nextID
		m.nextID++
	} else if word.ID >= m.nextID {
		m.nextID = word.ID + 1
	}
	copied := *word
	m.words[word.ID] = &copied
	return nil
}

func (m *MockWordRepository) CreateBatch(ctx context.Context, batch []*Word) error {
	for _, word := range batch {
		if err := m.Create(ctx, word); err != nil {
			return err
		}
	}
	return nil
}

// SetGetError injects an error for read calls
func (m *MockWordRepository) SetGetError(err error) { m.getError = err }

// SetListError injects an error for List calls
func (m *MockWordRepository) SetListError(err error) { m.listError = err }

// SetCreateError injects an error for Create calls
func (m *MockWordRepository) SetCreateError(err error) { m.createError = err }
