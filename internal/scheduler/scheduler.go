package scheduler

import (
	"context"
	"fmt"
	"time"

	"lingobot-api/internal/common"
	"lingobot-api/internal/config"
	"lingobot-api/internal/events"
	"lingobot-api/internal/progress"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

// ReminderScheduler runs an hourly sweep and publishes a ReminderDue event
// for every user whose local clock has reached the reminder hour and who has
// not studied yet on their local today.
type ReminderScheduler struct {
	eventBus  events.EventBus
	logger    *zap.Logger
	users     progress.UserRepository
	clock     common.Clock
	config    config.SchedulerConfig
	scheduler *gocron.Scheduler
}

// NewReminderScheduler creates a new ReminderScheduler
func NewReminderScheduler(
	eventBus events.EventBus,
	logger *zap.Logger,
	users progress.UserRepository,
	clock common.Clock,
	cfg config.SchedulerConfig,
) *ReminderScheduler {
	return &ReminderScheduler{
		eventBus:  eventBus,
		logger:    logger,
		users:     users,
		clock:     clock,
		config:    cfg,
		scheduler: gocron.NewScheduler(time.UTC),
	}
}

// Start schedules the hourly sweep and begins running it in the background.
func (s *ReminderScheduler) Start() error {
	_, err := s.scheduler.Every(1).Hour().StartAt(nextFullHour(s.clock.Now())).Do(func() {
		if err := s.Sweep(context.Background()); err != nil {
			s.logger.Error("Reminder sweep failed", zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule reminder sweep: %w", err)
	}

	s.scheduler.StartAsync()
	s.logger.Info("Reminder scheduler started",
		zap.Int("reminder_hour", s.config.ReminderHour))
	return nil
}

// Stop halts the scheduler and waits for a running sweep to finish.
func (s *ReminderScheduler) Stop() {
	s.scheduler.Stop()
	s.logger.Info("Reminder scheduler stopped")
}

// Sweep publishes reminders for all users due at the current instant. The
// user listing is retried with exponential backoff since a transient database
// hiccup should not silently skip a whole hour of reminders.
func (s *ReminderScheduler) Sweep(ctx context.Context) error {
	var users []*progress.User

	operation := func() error {
		var err error
		users, err = s.users.ListAll(ctx)
		return err
	}

	policy := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(s.config.MaxRetries))
	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return fmt.Errorf("failed to list users for reminders: %w", err)
	}

	nowUTC := s.clock.Now().UTC()
	due := 0
	for _, user := range users {
		if !s.isDue(user, nowUTC) {
			continue
		}
		s.eventBus.Publish(events.TopicReminderDue, events.ReminderDue{
			Event:  events.NewEvent(),
			UserID: user.TelegramID,
			ChatID: user.TelegramID,
		})
		due++
	}

	s.logger.Info("Reminder sweep finished",
		zap.Int("users", len(users)),
		zap.Int("due", due))
	return nil
}

// isDue checks whether the user's local hour matches the reminder hour and
// the user has not studied on their local today.
func (s *ReminderScheduler) isDue(user *progress.User, nowUTC time.Time) bool {
	offset := progress.ParseOffset(user.TimeLine)
	local := nowUTC.Add(time.Duration(offset) * time.Minute)
	if local.Hour() != s.config.ReminderHour {
		return false
	}

	localToday := progress.LocalDate(nowUTC, offset)
	if user.LastLearningDate != nil && progress.SameDay(*user.LastLearningDate, localToday) {
		return false
	}
	return true
}

func nextFullHour(now time.Time) time.Time {
	return now.UTC().Truncate(time.Hour).Add(time.Hour)
}
