package chatbot

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleUpdateJSON() []byte {
	return []byte(`{
		"update_id": 12345,
		"message": {
			"message_id": 67,
			"from": {"id": 111, "is_bot": false, "first_name": "Anna", "last_name": "Smith", "username": "anna"},
			"chat": {"id": 111, "type": "private"},
			"date": 1718451600,
			"text": "/start",
			"entities": [{"type": "bot_command", "offset": 0, "length": 6}]
		}
	}`)
}

func TestParseUpdate(t *testing.T) {
	parser := NewWebhookParser()

	update, err := parser.ParseUpdate(sampleUpdateJSON())
	require.NoError(t, err)
	assert.Equal(t, 12345, update.UpdateID)
	require.NotNil(t, update.Message)
	assert.Equal(t, "/start", update.Message.Text)
}

func TestParseUpdate_Invalid(t *testing.T) {
	parser := NewWebhookParser()

	_, err := parser.ParseUpdate(nil)
	assert.Error(t, err)

	_, err = parser.ParseUpdate([]byte("not json"))
	assert.Error(t, err)

	_, err = parser.ParseUpdate([]byte(`{"message": {}}`))
	assert.Error(t, err)
}

func TestExtractMessage(t *testing.T) {
	parser := NewWebhookParser()

	update, err := parser.ParseUpdate(sampleUpdateJSON())
	require.NoError(t, err)

	message, err := parser.ExtractMessage(update)
	require.NoError(t, err)

	assert.Equal(t, int64(111), message.UserID)
	assert.Equal(t, int64(111), message.ChatID)
	assert.Equal(t, "Anna", message.FirstName)
	assert.Equal(t, "anna", message.Username)
	assert.Equal(t, "/start", message.Text)
	assert.Equal(t, MessageTypeCommand, message.Type)
}

func TestExtractCommand(t *testing.T) {
	parser := NewWebhookParser()

	tests := []struct {
		text     string
		length   int
		expected Command
	}{
		{"/start", 6, CommandStart},
		{"/help", 5, CommandHelp},
		{"/stats", 6, CommandStats},
		{"/top", 4, CommandTop},
		{"/tasks", 6, CommandTasks},
	}

	for _, tt := range tests {
		msg := &tgbotapi.Message{
			Text:     tt.text,
			Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: tt.length}},
		}
		command, err := parser.ExtractCommand(msg)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, command)
	}
}

func TestExtractCommand_Unknown(t *testing.T) {
	parser := NewWebhookParser()

	msg := &tgbotapi.Message{
		Text:     "/frobnicate",
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 11}},
	}
	_, err := parser.ExtractCommand(msg)
	assert.Error(t, err)
}

func TestExtractCallbackQuery(t *testing.T) {
	parser := NewWebhookParser()

	update := &tgbotapi.Update{
		UpdateID: 1,
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cb1",
			Data: `{"action":"task_toggle","data":{"task_id":"5"}}`,
		},
	}

	callback, err := parser.ExtractCallbackQuery(update)
	require.NoError(t, err)
	assert.Equal(t, "task_toggle", callback.Action)
	assert.Equal(t, "5", callback.Data["task_id"])
}

func TestExtractCallbackQuery_PlainString(t *testing.T) {
	parser := NewWebhookParser()

	update := &tgbotapi.Update{
		UpdateID: 1,
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:   "cb1",
			Data: "ready",
		},
	}

	callback, err := parser.ExtractCallbackQuery(update)
	require.NoError(t, err)
	assert.Equal(t, "ready", callback.Action)
	assert.Empty(t, callback.Data)
}
