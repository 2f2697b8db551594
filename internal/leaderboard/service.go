package leaderboard

import (
	"context"

	"lingobot-api/internal/common"
	"lingobot-api/internal/events"
	"lingobot-api/internal/progress"

	"go.uber.org/zap"
)

// View is one leaderboard response: the top rows plus the asking user's own
// 1-based rank (absent when the user is unknown).
type View struct {
	Top  []Entry `json:"top"`
	Rank *int    `json:"rank,omitempty"`
}

// LeaderboardService serves XP rankings over the user population.
type LeaderboardService interface {
	// GetView builds the top-n board and the asking user's rank in one pass.
	GetView(ctx context.Context, userID int64, topN int) (*View, error)
}

// ScoreCache mirrors per-user XP for fast ranking reads. *Cache implements
// it over a redis sorted set.
type ScoreCache interface {
	SetScore(ctx context.Context, userID int64, exp int) error
	TopMembers(ctx context.Context, n int) ([]Member, error)
	Rank(ctx context.Context, userID int64) (*int, error)
}

// leaderboardService implements the LeaderboardService interface. The
// database is the authoritative ranking source; the cache, when configured,
// is written through on every scoring change and serves reads until it
// errors or runs cold.
type leaderboardService struct {
	logger *zap.Logger
	users  progress.UserRepository
	cache  ScoreCache
}

// NewLeaderboardService creates a new instance of LeaderboardService. The
// cache may be nil when redis is disabled.
func NewLeaderboardService(eventBus events.EventBus, logger *zap.Logger, users progress.UserRepository, cache *Cache) LeaderboardService {
	var scoreCache ScoreCache
	if cache != nil {
		scoreCache = cache
	}
	return NewLeaderboardServiceWithCache(eventBus, logger, users, scoreCache)
}

// NewLeaderboardServiceWithCache wires a pre-built score cache; used by
// tests and by setups that mirror scores somewhere other than redis.
func NewLeaderboardServiceWithCache(eventBus events.EventBus, logger *zap.Logger, users progress.UserRepository, cache ScoreCache) LeaderboardService {
	s := &leaderboardService{
		logger: logger,
		users:  users,
		cache:  cache,
	}

	if cache != nil {
		if err := eventBus.Subscribe(events.TopicWordsLearned, s.handleWordsLearned); err != nil {
			logger.Error("Failed to subscribe to words learned events", zap.Error(err))
		}
	}
	return s
}

func (s *leaderboardService) handleWordsLearned(event events.WordsLearned) {
	ctx := context.Background()
	if err := s.cache.SetScore(ctx, event.UserID, event.TotalExp); err != nil {
		// Cache divergence is tolerable; the next write refreshes it.
		s.logger.Warn("Failed to mirror score to leaderboard cache",
			zap.Int64("userID", event.UserID),
			zap.Error(err))
	}
}

func (s *leaderboardService) GetView(ctx context.Context, userID int64, topN int) (*View, error) {
	if s.cache != nil {
		if view, ok := s.cachedView(ctx, userID, topN); ok {
			return view, nil
		}
	}

	users, err := s.users.ListAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list users for leaderboard", zap.Error(err))
		return nil, err
	}

	competitors := make([]Competitor, 0, len(users))
	for _, u := range users {
		competitors = append(competitors, Competitor{
			ID:   u.TelegramID,
			Name: u.DisplayName(),
			Exp:  u.Exp,
		})
	}

	return &View{
		Top:  TopN(competitors, topN),
		Rank: RankOf(competitors, userID),
	}, nil
}

// cachedView serves the board from the score mirror. It reports false on any
// cache problem or when the mirror is cold, and the caller falls back to the
// authoritative database path.
func (s *leaderboardService) cachedView(ctx context.Context, userID int64, topN int) (*View, bool) {
	members, err := s.cache.TopMembers(ctx, topN)
	if err != nil {
		s.logger.Warn("Leaderboard cache read failed, serving from database", zap.Error(err))
		return nil, false
	}
	if len(members) == 0 {
		return nil, false
	}

	top := make([]Entry, 0, len(members))
	for _, member := range members {
		user, err := s.users.GetUser(ctx, member.ID)
		if err != nil {
			if common.IsNotFound(err) {
				// Stale mirror entry with no backing user record.
				continue
			}
			s.logger.Warn("Failed to resolve cached leaderboard member",
				zap.Int64("userID", member.ID),
				zap.Error(err))
			return nil, false
		}
		top = append(top, Entry{Name: user.DisplayName(), Exp: member.Exp})
	}

	rank, err := s.cache.Rank(ctx, userID)
	if err != nil {
		s.logger.Warn("Leaderboard cache rank read failed, serving from database", zap.Error(err))
		return nil, false
	}

	return &View{Top: top, Rank: rank}, true
}
