package events

import (
	"time"

	"github.com/google/uuid"
)

// Event represents the base event structure with common fields
type Event struct {
	CorrelationID string    `json:"correlation_id"`
	Timestamp     time.Time `json:"timestamp"`
}

// NewEvent creates a new base event with generated correlation ID
func NewEvent() Event {
	return Event{
		CorrelationID: uuid.New().String(),
		Timestamp:     time.Now(),
	}
}

// UserRegistered is published when a user completes onboarding
// (timezone setup via the bot or first contact through the API).
type UserRegistered struct {
	Event
	UserID    int64  `json:"user_id"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name"`
	TimeLine  string `json:"time_line"`
}

// WordsLearned is published after a learning session has been persisted.
type WordsLearned struct {
	Event
	UserID        int64 `json:"user_id"`
	NewWords      int   `json:"new_words"`
	LearnedWords  int   `json:"learned_words"`
	ExpGained     int   `json:"exp_gained"`
	TotalExp      int   `json:"total_exp"`
	CurrentStreak int   `json:"current_streak"`
}

// ReminderDue is published when a user should receive a study reminder.
type ReminderDue struct {
	Event
	UserID int64 `json:"user_id"`
	ChatID int64 `json:"chat_id"`
}

// Event topics constants
const (
	TopicUserRegistered = "user.registered"
	TopicWordsLearned   = "progress.words_learned"
	TopicReminderDue    = "reminder.due"
)
