package words

import "context"

// WordRepository defines the persistence interface for the word catalog.
type WordRepository interface {
	// GetByID fetches one word by id.
	GetByID(ctx context.Context, id int64) (*Word, error)

	// GetByIDs fetches words by id. Ids with no matching word are silently
	// omitted from the result; order follows the input ids.
	GetByIDs(ctx context.Context, ids []int64) ([]*Word, error)

	// GetRandom samples up to count random words, excluding the given ids.
	GetRandom(ctx context.Context, count int, exclude []int64) ([]*Word, error)

	// List returns a stable id-ordered page of the catalog.
	List(ctx context.Context, offset, limit int) ([]*Word, error)

	// Count returns the catalog size.
	Count(ctx context.Context) (int64, error)

	// Create inserts a new word.
	Create(ctx context.Context, word *Word) error

	// CreateBatch inserts many words in one statement.
	CreateBatch(ctx context.Context, batch []*Word) error
}
