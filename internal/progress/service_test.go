package progress

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"lingobot-api/internal/common"
	"lingobot-api/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// Simple mock event bus for testing
type mockEventBus struct {
	mu              sync.RWMutex
	publishedEvents map[string][]interface{}
}

func newMockEventBus() *mockEventBus {
	return &mockEventBus{publishedEvents: make(map[string][]interface{})}
}

func (m *mockEventBus) Publish(topic string, data interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.publishedEvents[topic] = append(m.publishedEvents[topic], data)
	return nil
}

func (m *mockEventBus) Subscribe(topic string, handler interface{}) error   { return nil }
func (m *mockEventBus) Unsubscribe(topic string, handler interface{}) error { return nil }
func (m *mockEventBus) Close() error                                        { return nil }

func (m *mockEventBus) Published(topic string) []interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.publishedEvents[topic]
}

func newTestService(t *testing.T) (ProgressService, *MockUserRepository, *mockEventBus) {
	repo := NewMockUserRepository()
	bus := newMockEventBus()
	svc := NewProgressService(bus, zaptest.NewLogger(t), repo)
	return svc, repo, bus
}

func seedUser(t *testing.T, repo *MockUserRepository, id int64) *User {
	user := NewUser(id, "", fmt.Sprintf("user%d", id), "")
	require.NoError(t, repo.CreateUser(context.Background(), user))
	return user
}

// noonUTC is mid-day UTC so that the default UTC+3 offset does not cross
// a date boundary in either direction.
var noonUTC = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func TestRecordSession_NewUser(t *testing.T) {
	svc, repo, bus := newTestService(t)
	seedUser(t, repo, 1)

	result, err := svc.RecordSession(context.Background(), 1, []int64{1, 2, 3}, noonUTC)
	require.NoError(t, err)

	assert.Equal(t, 3, result.LearnedWords)
	assert.Equal(t, 3, result.NewWords)
	assert.Equal(t, 30, result.ExpGained)
	assert.Equal(t, 1, result.CurrentStreak)

	stored, err := repo.GetUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 30, stored.Exp)
	assert.ElementsMatch(t, []int64{1, 2, 3}, stored.LearnedWords)
	require.NotNil(t, stored.LastLearningDate)

	assert.Len(t, bus.Published(events.TopicWordsLearned), 1)
}

func TestRecordSession_OverlappingBatchSameDay(t *testing.T) {
	svc, repo, _ := newTestService(t)
	seedUser(t, repo, 1)

	_, err := svc.RecordSession(context.Background(), 1, []int64{1, 2, 3}, noonUTC)
	require.NoError(t, err)

	// {3,4} later the same local day: only 4 is new, streak unchanged.
	result, err := svc.RecordSession(context.Background(), 1, []int64{3, 4}, noonUTC.Add(2*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, 4, result.LearnedWords)
	assert.Equal(t, 1, result.NewWords)
	assert.Equal(t, 10, result.ExpGained)
	assert.Equal(t, 1, result.CurrentStreak)
}

func TestRecordSession_IdempotentWithinSameLocalDay(t *testing.T) {
	svc, repo, _ := newTestService(t)
	seedUser(t, repo, 1)

	first, err := svc.RecordSession(context.Background(), 1, []int64{5, 6}, noonUTC)
	require.NoError(t, err)
	assert.Equal(t, 2, first.NewWords)

	second, err := svc.RecordSession(context.Background(), 1, []int64{5, 6}, noonUTC.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0, second.NewWords)
	assert.Equal(t, 0, second.ExpGained)
	assert.Equal(t, first.CurrentStreak, second.CurrentStreak)

	stored, err := repo.GetUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 20, stored.Exp)
}

func TestRecordSession_DisjointBatchesEqualUnion(t *testing.T) {
	svc, repo, _ := newTestService(t)
	seedUser(t, repo, 1)
	seedUser(t, repo, 2)

	_, err := svc.RecordSession(context.Background(), 1, []int64{1, 2}, noonUTC)
	require.NoError(t, err)
	_, err = svc.RecordSession(context.Background(), 1, []int64{3, 4}, noonUTC)
	require.NoError(t, err)

	_, err = svc.RecordSession(context.Background(), 2, []int64{1, 2, 3, 4}, noonUTC)
	require.NoError(t, err)

	split, err := repo.GetUser(context.Background(), 1)
	require.NoError(t, err)
	whole, err := repo.GetUser(context.Background(), 2)
	require.NoError(t, err)

	assert.ElementsMatch(t, whole.LearnedWords, split.LearnedWords)
	assert.Equal(t, whole.Exp, split.Exp)
}

func TestRecordSession_StreakConsecutiveDays(t *testing.T) {
	svc, repo, _ := newTestService(t)
	seedUser(t, repo, 1)

	for day := 0; day < 3; day++ {
		result, err := svc.RecordSession(context.Background(), 1, []int64{int64(100 + day)}, noonUTC.AddDate(0, 0, day))
		require.NoError(t, err)
		assert.Equal(t, day+1, result.CurrentStreak)
	}
}

func TestRecordSession_StreakResetsAfterGap(t *testing.T) {
	svc, repo, _ := newTestService(t)
	seedUser(t, repo, 1)

	_, err := svc.RecordSession(context.Background(), 1, []int64{1}, noonUTC)
	require.NoError(t, err)

	result, err := svc.RecordSession(context.Background(), 1, []int64{2}, noonUTC.AddDate(0, 0, 5))
	require.NoError(t, err)
	assert.Equal(t, 1, result.CurrentStreak)
}

func TestRecordSession_LocalDayCrossesUTCDate(t *testing.T) {
	svc, repo, _ := newTestService(t)
	user := seedUser(t, repo, 1)
	user.TimeLine = "UTC+12:00"
	require.NoError(t, repo.UpdateUser(context.Background(), user))

	// 22:00 UTC June 15th is already June 16th at UTC+12. A session at
	// 13:00 UTC June 16th (June 17th local, next local day) extends the streak.
	_, err := svc.RecordSession(context.Background(), 1, []int64{1}, time.Date(2024, 6, 15, 22, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	result, err := svc.RecordSession(context.Background(), 1, []int64{2}, time.Date(2024, 6, 16, 13, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2, result.CurrentStreak)
}

func TestRecordSession_EmptyBatchRejected(t *testing.T) {
	svc, repo, _ := newTestService(t)
	seedUser(t, repo, 1)

	_, err := svc.RecordSession(context.Background(), 1, nil, noonUTC)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestRecordSession_OversizedBatchRejectedWithoutMutation(t *testing.T) {
	svc, repo, _ := newTestService(t)
	seedUser(t, repo, 1)

	batch := make([]int64, MaxSessionWords+1)
	for i := range batch {
		batch[i] = int64(i + 1)
	}

	_, err := svc.RecordSession(context.Background(), 1, batch, noonUTC)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	stored, err := repo.GetUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.Exp)
	assert.Empty(t, stored.LearnedWords)
	assert.Equal(t, 0, stored.CurrentStreak)
	assert.Nil(t, stored.LastLearningDate)
}

func TestRecordSession_DuplicatesCollapseBelowLimit(t *testing.T) {
	svc, repo, _ := newTestService(t)
	seedUser(t, repo, 1)

	// 60 ids but only 30 distinct: allowed after the duplicates collapse.
	batch := make([]int64, 0, 60)
	for i := 0; i < 30; i++ {
		batch = append(batch, int64(i), int64(i))
	}

	result, err := svc.RecordSession(context.Background(), 1, batch, noonUTC)
	require.NoError(t, err)
	assert.Equal(t, 30, result.NewWords)
	assert.Equal(t, 300, result.ExpGained)
}

func TestRecordSession_UnknownUser(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.RecordSession(context.Background(), 999, []int64{1}, noonUTC)
	require.Error(t, err)
	assert.True(t, common.IsNotFound(err))
}

func TestRecordSession_RepositoryFailureLeavesNoPartialState(t *testing.T) {
	svc, repo, _ := newTestService(t)
	seedUser(t, repo, 1)
	repo.SetUpdateError(fmt.Errorf("connection reset"))

	_, err := svc.RecordSession(context.Background(), 1, []int64{1, 2}, noonUTC)
	require.Error(t, err)

	repo.SetUpdateError(nil)
	stored, err := repo.GetUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, stored.LearnedWords)
	assert.Equal(t, 0, stored.Exp)
}

func TestComputeStats_LearnedTodayApproximation(t *testing.T) {
	// learned_today is min(words_per_day, total learned) when the last
	// session fell on the local today; there is no real per-day counter.
	wordsPerDay := 5
	today := LocalDate(noonUTC, 180)

	user := NewUser(1, "", "Anna", "")
	user.WordsPerDay = &wordsPerDay
	user.LearnedWords = Int64List{1, 2, 3, 4, 5, 6, 7, 8}
	user.LastLearningDate = &today
	user.CurrentStreak = 4
	user.Exp = 80

	stats := ComputeStats(user, noonUTC)
	assert.Equal(t, 4, stats.Streak)
	assert.Equal(t, 8, stats.TotalWords)
	assert.Equal(t, 5, stats.LearnedToday)
	assert.Equal(t, 5, stats.WordsPerDay)
}

func TestComputeStats_TotalBelowTarget(t *testing.T) {
	wordsPerDay := 10
	today := LocalDate(noonUTC, 180)

	user := NewUser(1, "", "Anna", "")
	user.WordsPerDay = &wordsPerDay
	user.LearnedWords = Int64List{1, 2, 3}
	user.LastLearningDate = &today

	stats := ComputeStats(user, noonUTC)
	assert.Equal(t, 3, stats.LearnedToday)
}

func TestComputeStats_NoSessionToday(t *testing.T) {
	wordsPerDay := 5
	yesterday := LocalDate(noonUTC, 180).AddDate(0, 0, -1)

	user := NewUser(1, "", "Anna", "")
	user.WordsPerDay = &wordsPerDay
	user.LearnedWords = Int64List{1, 2, 3}
	user.LastLearningDate = &yesterday

	stats := ComputeStats(user, noonUTC)
	assert.Equal(t, 0, stats.LearnedToday)
}

func TestComputeStats_UnknownUserNotCreated(t *testing.T) {
	svc, repo, _ := newTestService(t)

	_, err := svc.ComputeStats(context.Background(), 404, noonUTC)
	require.Error(t, err)
	assert.True(t, common.IsNotFound(err))

	_, err = repo.GetUser(context.Background(), 404)
	assert.Error(t, err)
}

func TestGetOrCreateUser_CreatesWithDefaults(t *testing.T) {
	svc, _, bus := newTestService(t)

	user, err := svc.GetOrCreateUser(context.Background(), Identity{UserID: 7})
	require.NoError(t, err)

	assert.Equal(t, "User", user.FirstName)
	assert.Equal(t, 0, user.Exp)
	assert.Equal(t, 0, user.CurrentStreak)
	assert.Empty(t, user.LearnedWords)
	assert.Len(t, bus.Published(events.TopicUserRegistered), 1)
}

func TestGetOrCreateUser_Idempotent(t *testing.T) {
	svc, repo, _ := newTestService(t)
	existing := seedUser(t, repo, 7)
	existing.Exp = 50
	require.NoError(t, repo.UpdateUser(context.Background(), existing))

	user, err := svc.GetOrCreateUser(context.Background(), Identity{UserID: 7, FirstName: "Other"})
	require.NoError(t, err)
	assert.Equal(t, 50, user.Exp)
	assert.Equal(t, "user7", user.FirstName)
}

func TestRegisterUser_SetsTimeLine(t *testing.T) {
	svc, repo, _ := newTestService(t)

	user, err := svc.RegisterUser(context.Background(), Identity{UserID: 9, FirstName: "Anna"}, "UTC+05:00")
	require.NoError(t, err)
	assert.Equal(t, "UTC+05:00", user.TimeLine)

	// Re-registration only adjusts the timezone.
	user.Exp = 40
	require.NoError(t, repo.UpdateUser(context.Background(), user))

	again, err := svc.RegisterUser(context.Background(), Identity{UserID: 9, FirstName: "Anna"}, "UTC-02:00")
	require.NoError(t, err)
	assert.Equal(t, "UTC-02:00", again.TimeLine)
	assert.Equal(t, 40, again.Exp)
}

func TestUpdateUser_PartialPatch(t *testing.T) {
	svc, repo, _ := newTestService(t)
	seedUser(t, repo, 1)

	wordsPerDay := 10
	updated, err := svc.UpdateUser(context.Background(), 1, UserPatch{WordsPerDay: &wordsPerDay})
	require.NoError(t, err)

	assert.Equal(t, 10, *updated.WordsPerDay)
	assert.Equal(t, "user1", updated.FirstName)
}

func TestUpdateUser_Unknown(t *testing.T) {
	svc, _, _ := newTestService(t)

	name := "X"
	_, err := svc.UpdateUser(context.Background(), 404, UserPatch{FirstName: &name})
	require.Error(t, err)
	assert.True(t, common.IsNotFound(err))
}
