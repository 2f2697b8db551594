package chatbot

import (
	"encoding/json"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// WebhookParser provides utilities for parsing Telegram webhook updates
type WebhookParser struct{}

// NewWebhookParser creates a new WebhookParser instance
func NewWebhookParser() *WebhookParser {
	return &WebhookParser{}
}

// ParseUpdate unmarshals webhook data into a Telegram Update struct
func (p *WebhookParser) ParseUpdate(updateData []byte) (*tgbotapi.Update, error) {
	if len(updateData) == 0 {
		return nil, fmt.Errorf("empty update data")
	}

	var update tgbotapi.Update
	if err := json.Unmarshal(updateData, &update); err != nil {
		return nil, fmt.Errorf("failed to unmarshal update data: %w", err)
	}

	if update.UpdateID == 0 {
		return nil, fmt.Errorf("invalid update: missing update ID")
	}

	return &update, nil
}

// ExtractMessage converts a Telegram message to domain Message struct
func (p *WebhookParser) ExtractMessage(update *tgbotapi.Update) (*Message, error) {
	if update == nil {
		return nil, fmt.Errorf("update is nil")
	}

	if update.Message == nil {
		return nil, fmt.Errorf("update does not contain a message")
	}

	msg := update.Message
	if msg.From == nil {
		return nil, fmt.Errorf("message does not contain sender information")
	}
	if msg.Chat == nil {
		return nil, fmt.Errorf("message does not contain chat information")
	}

	text := msg.Text
	if text == "" && msg.Caption != "" {
		text = msg.Caption // Use caption for media messages
	}

	return &Message{
		MessageID: int64(msg.MessageID),
		UserID:    msg.From.ID,
		ChatID:    msg.Chat.ID,
		Username:  msg.From.UserName,
		FirstName: msg.From.FirstName,
		LastName:  msg.From.LastName,
		Text:      text,
		Timestamp: time.Unix(int64(msg.Date), 0).UTC(),
		Type:      p.DetermineMessageType(update),
	}, nil
}

// ExtractCallbackQuery parses inline keyboard callback data
func (p *WebhookParser) ExtractCallbackQuery(update *tgbotapi.Update) (*CallbackData, error) {
	if update == nil {
		return nil, fmt.Errorf("update is nil")
	}

	if update.CallbackQuery == nil {
		return nil, fmt.Errorf("update does not contain a callback query")
	}

	callbackQuery := update.CallbackQuery
	if callbackQuery.Data == "" {
		return nil, fmt.Errorf("callback query does not contain data")
	}

	// Try to parse as JSON first
	var callbackData CallbackData
	if err := json.Unmarshal([]byte(callbackQuery.Data), &callbackData); err == nil {
		return &callbackData, nil
	}

	// Fallback to simple string format
	return &CallbackData{
		Action: callbackQuery.Data,
		Data:   make(map[string]string),
	}, nil
}

// DetermineMessageType classifies the message type
func (p *WebhookParser) DetermineMessageType(update *tgbotapi.Update) MessageType {
	if update.CallbackQuery != nil {
		return MessageTypeCallback
	}

	if update.Message != nil && update.Message.IsCommand() {
		return MessageTypeCommand
	}

	return MessageTypeText
}

// ExtractCommand parses bot commands from messages
func (p *WebhookParser) ExtractCommand(message *tgbotapi.Message) (Command, error) {
	if message == nil {
		return "", fmt.Errorf("message is nil")
	}

	if !message.IsCommand() {
		return "", fmt.Errorf("message is not a command")
	}

	switch message.Command() {
	case "start":
		return CommandStart, nil
	case "help":
		return CommandHelp, nil
	case "stats":
		return CommandStats, nil
	case "top":
		return CommandTop, nil
	case "tasks":
		return CommandTasks, nil
	default:
		return "", fmt.Errorf("unknown command: %s", message.Command())
	}
}

// GetUserID extracts the Telegram user id from an update
func (p *WebhookParser) GetUserID(update *tgbotapi.Update) (int64, error) {
	if update == nil {
		return 0, fmt.Errorf("update is nil")
	}

	if update.Message != nil && update.Message.From != nil {
		return update.Message.From.ID, nil
	}
	if update.CallbackQuery != nil && update.CallbackQuery.From != nil {
		return update.CallbackQuery.From.ID, nil
	}
	return 0, fmt.Errorf("no user information found in update")
}

// GetChatID extracts the chat id from an update
func (p *WebhookParser) GetChatID(update *tgbotapi.Update) (int64, error) {
	if update == nil {
		return 0, fmt.Errorf("update is nil")
	}

	if update.Message != nil && update.Message.Chat != nil {
		return update.Message.Chat.ID, nil
	}
	if update.CallbackQuery != nil && update.CallbackQuery.Message != nil {
		return update.CallbackQuery.Message.Chat.ID, nil
	}
	return 0, fmt.Errorf("no chat information found in update")
}
