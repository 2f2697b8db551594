package chatbot

import "time"

// MessageType represents the type of message received
type MessageType string

const (
	MessageTypeCommand  MessageType = "command"
	MessageTypeText     MessageType = "text"
	MessageTypeCallback MessageType = "callback"
)

// Message is one inbound user message reduced to the fields the bot needs.
type Message struct {
	MessageID int64       `json:"message_id"`
	UserID    int64       `json:"user_id"`
	ChatID    int64       `json:"chat_id"`
	Username  string      `json:"username,omitempty"`
	FirstName string      `json:"first_name,omitempty"`
	LastName  string      `json:"last_name,omitempty"`
	Text      string      `json:"text"`
	Timestamp time.Time   `json:"timestamp"`
	Type      MessageType `json:"type"`
}

// InlineKeyboard represents a Telegram inline keyboard
type InlineKeyboard struct {
	Buttons [][]InlineKeyboardButton `json:"inline_keyboard"`
}

// InlineKeyboardButton represents a single button in an inline keyboard
type InlineKeyboardButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data,omitempty"`
	URL          string `json:"url,omitempty"`
	WebAppURL    string `json:"web_app_url,omitempty"`
}

// SessionState tracks where a chat is in the onboarding conversation.
type SessionState string

const (
	SessionStateIdle             SessionState = "idle"
	SessionStateAwaitingReady    SessionState = "awaiting_ready"
	SessionStateAwaitingGroup    SessionState = "awaiting_group"
	SessionStateAwaitingLocalTime SessionState = "awaiting_local_time"
)

// Command represents supported bot commands
type Command string

const (
	CommandStart Command = "/start"
	CommandHelp  Command = "/help"
	CommandStats Command = "/stats"
	CommandTop   Command = "/top"
	CommandTasks Command = "/tasks"
)

// CallbackData represents data from inline keyboard callbacks
type CallbackData struct {
	Action string            `json:"action"`
	Data   map[string]string `json:"data"`
}

// IsValid checks if the session state is valid
func (ss SessionState) IsValid() bool {
	switch ss {
	case SessionStateIdle, SessionStateAwaitingReady, SessionStateAwaitingGroup, SessionStateAwaitingLocalTime:
		return true
	default:
		return false
	}
}

// IsValid checks if the command is valid
func (c Command) IsValid() bool {
	switch c {
	case CommandStart, CommandHelp, CommandStats, CommandTop, CommandTasks:
		return true
	default:
		return false
	}
}
