package leaderboard

import (
	"context"
	"sort"
	"testing"

	"lingobot-api/internal/events"
	"lingobot-api/internal/progress"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type nopEventBus struct{}

func (nopEventBus) Publish(topic string, data interface{}) error             { return nil }
func (nopEventBus) Subscribe(topic string, handler interface{}) error       { return nil }
func (nopEventBus) Unsubscribe(topic string, handler interface{}) error     { return nil }
func (nopEventBus) Close() error                                            { return nil }

func seedCompetitor(t *testing.T, repo *progress.MockUserRepository, id int64, name string, exp int) {
	user := progress.NewUser(id, "", name, "")
	user.Exp = exp
	require.NoError(t, repo.CreateUser(context.Background(), user))
}

func TestGetView(t *testing.T) {
	repo := progress.NewMockUserRepository()
	seedCompetitor(t, repo, 1, "Anna", 50)
	seedCompetitor(t, repo, 2, "Boris", 10)
	seedCompetitor(t, repo, 3, "Clara", 30)

	svc := NewLeaderboardService(nopEventBus{}, zaptest.NewLogger(t), repo, nil)

	view, err := svc.GetView(context.Background(), 2, 2)
	require.NoError(t, err)

	require.Len(t, view.Top, 2)
	assert.Equal(t, "Anna", view.Top[0].Name)
	assert.Equal(t, "Clara", view.Top[1].Name)

	require.NotNil(t, view.Rank)
	assert.Equal(t, 3, *view.Rank)
}

func TestGetView_UnknownUserHasNoRank(t *testing.T) {
	repo := progress.NewMockUserRepository()
	seedCompetitor(t, repo, 1, "Anna", 50)

	svc := NewLeaderboardService(nopEventBus{}, zaptest.NewLogger(t), repo, nil)

	view, err := svc.GetView(context.Background(), 404, 10)
	require.NoError(t, err)
	assert.Len(t, view.Top, 1)
	assert.Nil(t, view.Rank)
}

func TestGetView_NamelessUsersGetPlaceholder(t *testing.T) {
	repo := progress.NewMockUserRepository()
	user := progress.NewUser(1, "ghost", "x", "")
	user.FirstName = ""
	user.Exp = 5
	require.NoError(t, repo.CreateUser(context.Background(), user))

	svc := NewLeaderboardService(nopEventBus{}, zaptest.NewLogger(t), repo, nil)

	view, err := svc.GetView(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, view.Top, 1)
	assert.Equal(t, "No name", view.Top[0].Name)
}

func TestGetView_RepositoryError(t *testing.T) {
	repo := progress.NewMockUserRepository()
	repo.SetListError(assert.AnError)

	svc := NewLeaderboardService(nopEventBus{}, zaptest.NewLogger(t), repo, nil)

	_, err := svc.GetView(context.Background(), 1, 10)
	assert.Error(t, err)
}

// fakeScoreCache is an in-memory ScoreCache ranking by exp descending with
// id-ascending tie-break.
type fakeScoreCache struct {
	scores  map[int64]int
	readErr error
}

func newFakeScoreCache() *fakeScoreCache {
	return &fakeScoreCache{scores: make(map[int64]int)}
}

func (f *fakeScoreCache) SetScore(_ context.Context, userID int64, exp int) error {
	f.scores[userID] = exp
	return nil
}

func (f *fakeScoreCache) ranked() []Member {
	members := make([]Member, 0, len(f.scores))
	for id, exp := range f.scores {
		members = append(members, Member{ID: id, Exp: exp})
	}
	sort.Slice(members, func(i, j int) bool {
		if members[i].Exp != members[j].Exp {
			return members[i].Exp > members[j].Exp
		}
		return members[i].ID < members[j].ID
	})
	return members
}

func (f *fakeScoreCache) TopMembers(_ context.Context, n int) ([]Member, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	if n <= 0 {
		return nil, nil
	}
	members := f.ranked()
	if n < len(members) {
		members = members[:n]
	}
	return members, nil
}

func (f *fakeScoreCache) Rank(_ context.Context, userID int64) (*int, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	for i, member := range f.ranked() {
		if member.ID == userID {
			rank := i + 1
			return &rank, nil
		}
	}
	return nil, nil
}

func TestGetView_ServedFromCache(t *testing.T) {
	repo := progress.NewMockUserRepository()
	seedCompetitor(t, repo, 1, "Anna", 0)
	seedCompetitor(t, repo, 2, "Boris", 0)
	seedCompetitor(t, repo, 3, "Clara", 0)

	cache := newFakeScoreCache()
	cache.scores = map[int64]int{1: 50, 2: 10, 3: 30}

	svc := NewLeaderboardServiceWithCache(nopEventBus{}, zaptest.NewLogger(t), repo, cache)

	view, err := svc.GetView(context.Background(), 2, 2)
	require.NoError(t, err)

	// Exp values come from the cache, not the zeroed database records.
	require.Len(t, view.Top, 2)
	assert.Equal(t, Entry{Name: "Anna", Exp: 50}, view.Top[0])
	assert.Equal(t, Entry{Name: "Clara", Exp: 30}, view.Top[1])

	require.NotNil(t, view.Rank)
	assert.Equal(t, 3, *view.Rank)
}

func TestGetView_CacheErrorFallsBackToDatabase(t *testing.T) {
	repo := progress.NewMockUserRepository()
	seedCompetitor(t, repo, 1, "Anna", 50)
	seedCompetitor(t, repo, 2, "Boris", 10)

	cache := newFakeScoreCache()
	cache.scores[1] = 999
	cache.readErr = assert.AnError

	svc := NewLeaderboardServiceWithCache(nopEventBus{}, zaptest.NewLogger(t), repo, cache)

	view, err := svc.GetView(context.Background(), 2, 10)
	require.NoError(t, err)

	require.Len(t, view.Top, 2)
	assert.Equal(t, Entry{Name: "Anna", Exp: 50}, view.Top[0])
	require.NotNil(t, view.Rank)
	assert.Equal(t, 2, *view.Rank)
}

func TestGetView_ColdCacheFallsBackToDatabase(t *testing.T) {
	repo := progress.NewMockUserRepository()
	seedCompetitor(t, repo, 1, "Anna", 50)

	svc := NewLeaderboardServiceWithCache(nopEventBus{}, zaptest.NewLogger(t), repo, newFakeScoreCache())

	view, err := svc.GetView(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, view.Top, 1)
	assert.Equal(t, Entry{Name: "Anna", Exp: 50}, view.Top[0])
}

func TestGetView_CacheSkipsStaleMembers(t *testing.T) {
	repo := progress.NewMockUserRepository()
	seedCompetitor(t, repo, 1, "Anna", 0)

	cache := newFakeScoreCache()
	cache.scores = map[int64]int{1: 50, 99: 80}

	svc := NewLeaderboardServiceWithCache(nopEventBus{}, zaptest.NewLogger(t), repo, cache)

	view, err := svc.GetView(context.Background(), 1, 10)
	require.NoError(t, err)
	require.Len(t, view.Top, 1)
	assert.Equal(t, "Anna", view.Top[0].Name)
}

func TestWordsLearnedWritesThroughCache(t *testing.T) {
	repo := progress.NewMockUserRepository()
	cache := newFakeScoreCache()
	bus := events.NewEventBus(zaptest.NewLogger(t))

	NewLeaderboardServiceWithCache(bus, zaptest.NewLogger(t), repo, cache)

	require.NoError(t, bus.Publish(events.TopicWordsLearned, events.WordsLearned{
		UserID:   7,
		TotalExp: 40,
	}))

	assert.Equal(t, 40, cache.scores[7])
}
