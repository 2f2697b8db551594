package progress

import (
	"context"
	"time"

	"lingobot-api/internal/common"
	"lingobot-api/internal/events"

	"go.uber.org/zap"
)

// ProgressService converts learning sessions into updated streak, learned-set
// and XP state, and derives display statistics.
type ProgressService interface {
	// RecordSession applies a batch of studied word ids to one user. The
	// whole batch is applied atomically or the call fails without mutating
	// the user.
	RecordSession(ctx context.Context, telegramID int64, wordIDs []int64, nowUTC time.Time) (*SessionResult, error)

	// ComputeStats derives the read-only statistics snapshot.
	ComputeStats(ctx context.Context, telegramID int64, nowUTC time.Time) (*StatsView, error)

	// GetUser fetches an existing user without side effects.
	GetUser(ctx context.Context, telegramID int64) (*User, error)

	// GetOrCreateUser fetches a user, lazily creating one with defaults on
	// first contact.
	GetOrCreateUser(ctx context.Context, identity Identity) (*User, error)

	// RegisterUser creates or re-times a user during bot onboarding.
	RegisterUser(ctx context.Context, identity Identity, timeLine string) (*User, error)

	// UpdateUser applies a partial update to an existing user.
	UpdateUser(ctx context.Context, telegramID int64, patch UserPatch) (*User, error)
}

// progressService implements the ProgressService interface
type progressService struct {
	eventBus   events.EventBus
	logger     *zap.Logger
	repository UserRepository
}

// NewProgressService creates a new instance of ProgressService
func NewProgressService(eventBus events.EventBus, logger *zap.Logger, repository UserRepository) ProgressService {
	return &progressService{
		eventBus:   eventBus,
		logger:     logger,
		repository: repository,
	}
}

// dedupe collapses duplicate word ids, preserving first-seen order.
func dedupe(wordIDs []int64) []int64 {
	seen := make(map[int64]struct{}, len(wordIDs))
	out := make([]int64, 0, len(wordIDs))
	for _, id := range wordIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func (s *progressService) RecordSession(ctx context.Context, telegramID int64, wordIDs []int64, nowUTC time.Time) (*SessionResult, error) {
	studied := dedupe(wordIDs)

	if len(studied) == 0 {
		return nil, NewSessionValidationError("word_ids", len(wordIDs), "no word ids provided")
	}
	if len(studied) > MaxSessionWords {
		return nil, NewSessionValidationError("word_ids", len(studied), "too many words in one request")
	}

	var result *SessionResult

	err := s.repository.WithTransaction(func(tx UserRepository) error {
		user, err := tx.GetUserForUpdate(ctx, telegramID)
		if err != nil {
			return err
		}

		localToday := user.LocalDate(nowUTC)

		learned := user.LearnedWords.ToSet()
		newWords := 0
		for _, id := range studied {
			if _, known := learned[id]; known {
				continue
			}
			user.LearnedWords = append(user.LearnedWords, id)
			learned[id] = struct{}{}
			newWords++
		}

		// Streak advances at most once per distinct local day.
		switch {
		case user.LastLearningDate != nil && SameDay(*user.LastLearningDate, localToday):
			// Re-submission within the same local day: streak unchanged.
		case user.LastLearningDate != nil && SameDay(*user.LastLearningDate, localToday.AddDate(0, 0, -1)):
			user.CurrentStreak++
			user.LastLearningDate = &localToday
		default:
			user.CurrentStreak = 1
			user.LastLearningDate = &localToday
		}

		expGained := newWords * ExpPerNewWord
		user.Exp += expGained

		if err := tx.UpdateUser(ctx, user); err != nil {
			return err
		}

		result = &SessionResult{
			LearnedWords:  len(user.LearnedWords),
			NewWords:      newWords,
			ExpGained:     expGained,
			CurrentStreak: user.CurrentStreak,
		}

		s.eventBus.Publish(events.TopicWordsLearned, events.WordsLearned{
			Event:         events.NewEvent(),
			UserID:        user.TelegramID,
			NewWords:      newWords,
			LearnedWords:  len(user.LearnedWords),
			ExpGained:     expGained,
			TotalExp:      user.Exp,
			CurrentStreak: user.CurrentStreak,
		})
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to record session",
			zap.Int64("telegramID", telegramID),
			zap.Int("batchSize", len(studied)),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Session recorded",
		zap.Int64("telegramID", telegramID),
		zap.Int("newWords", result.NewWords),
		zap.Int("expGained", result.ExpGained),
		zap.Int("currentStreak", result.CurrentStreak))

	return result, nil
}

func (s *progressService) ComputeStats(ctx context.Context, telegramID int64, nowUTC time.Time) (*StatsView, error) {
	user, err := s.repository.GetUser(ctx, telegramID)
	if err != nil {
		return nil, err
	}
	return ComputeStats(user, nowUTC), nil
}

// ComputeStats derives display statistics from a user record. LearnedToday is
// min(words_per_day, total learned) when the last session fell on the user's
// local today, else 0; the source system never tracked a per-day count.
func ComputeStats(user *User, nowUTC time.Time) *StatsView {
	totalWords := len(user.LearnedWords)

	wordsPerDay := 0
	if user.WordsPerDay != nil {
		wordsPerDay = *user.WordsPerDay
	}

	learnedToday := 0
	if user.LastLearningDate != nil && SameDay(*user.LastLearningDate, user.LocalDate(nowUTC)) {
		learnedToday = wordsPerDay
		if totalWords < learnedToday {
			learnedToday = totalWords
		}
	}

	return &StatsView{
		Streak:       user.CurrentStreak,
		TotalWords:   totalWords,
		LearnedToday: learnedToday,
		WordsPerDay:  wordsPerDay,
	}
}

func (s *progressService) GetUser(ctx context.Context, telegramID int64) (*User, error) {
	return s.repository.GetUser(ctx, telegramID)
}

func (s *progressService) GetOrCreateUser(ctx context.Context, identity Identity) (*User, error) {
	user, err := s.repository.GetUser(ctx, identity.UserID)
	if err == nil {
		return user, nil
	}
	if !common.IsNotFound(err) {
		return nil, err
	}

	user = NewUser(identity.UserID, identity.Username, identity.FirstName, identity.LastName)
	if err := s.repository.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.eventBus.Publish(events.TopicUserRegistered, events.UserRegistered{
		Event:     events.NewEvent(),
		UserID:    user.TelegramID,
		Username:  user.Username,
		FirstName: user.FirstName,
		TimeLine:  user.TimeLine,
	})

	s.logger.Info("User created on first contact", zap.Int64("telegramID", user.TelegramID))
	return user, nil
}

func (s *progressService) RegisterUser(ctx context.Context, identity Identity, timeLine string) (*User, error) {
	user, err := s.repository.GetUser(ctx, identity.UserID)
	if err == nil {
		user.TimeLine = timeLine
		if err := s.repository.UpdateUser(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	}
	if !common.IsNotFound(err) {
		return nil, err
	}

	user = NewUser(identity.UserID, identity.Username, identity.FirstName, identity.LastName)
	user.TimeLine = timeLine
	if err := s.repository.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	s.eventBus.Publish(events.TopicUserRegistered, events.UserRegistered{
		Event:     events.NewEvent(),
		UserID:    user.TelegramID,
		Username:  user.Username,
		FirstName: user.FirstName,
		TimeLine:  user.TimeLine,
	})

	s.logger.Info("User registered",
		zap.Int64("telegramID", user.TelegramID),
		zap.String("timeLine", timeLine))
	return user, nil
}

func (s *progressService) UpdateUser(ctx context.Context, telegramID int64, patch UserPatch) (*User, error) {
	var updated *User

	err := s.repository.WithTransaction(func(tx UserRepository) error {
		user, err := tx.GetUserForUpdate(ctx, telegramID)
		if err != nil {
			return err
		}

		if patch.Username != nil {
			user.Username = *patch.Username
		}
		if patch.FirstName != nil {
			user.FirstName = *patch.FirstName
		}
		if patch.LastName != nil {
			user.LastName = *patch.LastName
		}
		if patch.TimeLine != nil {
			user.TimeLine = *patch.TimeLine
		}
		if patch.WordsPerDay != nil {
			user.WordsPerDay = patch.WordsPerDay
		}
		if patch.LearnedWords != nil {
			user.LearnedWords = dedupe(*patch.LearnedWords)
		}
		if patch.SkippedWords != nil {
			user.SkippedWords = dedupe(*patch.SkippedWords)
		}
		if patch.LastLearningDate != nil {
			user.LastLearningDate = patch.LastLearningDate
		}
		if patch.CurrentStreak != nil {
			user.CurrentStreak = *patch.CurrentStreak
		}
		if patch.Exp != nil {
			user.Exp = *patch.Exp
		}

		if err := tx.UpdateUser(ctx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
