package chatbot

import (
	"encoding/json"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// KeyboardBuilder provides utilities for creating inline keyboards
type KeyboardBuilder struct{}

// NewKeyboardBuilder creates a new KeyboardBuilder instance
func NewKeyboardBuilder() *KeyboardBuilder {
	return &KeyboardBuilder{}
}

// CallbackAction constants for different button actions
const (
	CallbackActionReady      = "ready"
	CallbackActionJoined     = "joined"
	CallbackActionStats      = "stats"
	CallbackActionTop        = "top"
	CallbackActionTasks      = "tasks"
	CallbackActionTaskToggle = "task_toggle"
	CallbackActionHelp       = "help"
)

// BuildReadinessKeyboard asks a newcomer to confirm they want to start.
func (kb *KeyboardBuilder) BuildReadinessKeyboard() tgbotapi.InlineKeyboardMarkup {
	readyData := kb.encodeCallbackData(CallbackActionReady, map[string]string{})

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚀 I'm ready!", readyData),
		),
	)
}

// BuildGroupInviteKeyboard links to the learners' group and offers a
// membership re-check.
func (kb *KeyboardBuilder) BuildGroupInviteKeyboard(inviteLink string) tgbotapi.InlineKeyboardMarkup {
	joinedData := kb.encodeCallbackData(CallbackActionJoined, map[string]string{})

	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("👥 Join the group", inviteLink),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ I've joined", joinedData),
		),
	)
}

// BuildMainMenuKeyboard creates the main bot menu. The first row opens the
// learning web app directly inside Telegram.
func (kb *KeyboardBuilder) BuildMainMenuKeyboard(webAppURL string) tgbotapi.InlineKeyboardMarkup {
	statsData := kb.encodeCallbackData(CallbackActionStats, map[string]string{})
	topData := kb.encodeCallbackData(CallbackActionTop, map[string]string{})
	tasksData := kb.encodeCallbackData(CallbackActionTasks, map[string]string{})

	rows := [][]tgbotapi.InlineKeyboardButton{}

	if webAppURL != "" {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.InlineKeyboardButton{
				Text:   "📖 Learn words",
				WebApp: &tgbotapi.WebAppInfo{URL: webAppURL},
			},
		))
	}

	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 My stats", statsData),
			tgbotapi.NewInlineKeyboardButtonData("🏆 Leaderboard", topData),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📝 My tasks", tasksData),
		),
	)

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// BuildTaskListKeyboard creates one toggle button per task.
func (kb *KeyboardBuilder) BuildTaskListKeyboard(taskIDs []int64, titles []string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	for i, id := range taskIDs {
		title := ""
		if i < len(titles) {
			title = truncateText(titles[i], 30)
		}
		toggleData := kb.encodeCallbackData(CallbackActionTaskToggle, map[string]string{
			"task_id": fmt.Sprintf("%d", id),
		})
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(title, toggleData),
		))
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// ConvertDomainKeyboard converts domain InlineKeyboard to Telegram format
func (kb *KeyboardBuilder) ConvertDomainKeyboard(domainKeyboard InlineKeyboard) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	for _, buttonRow := range domainKeyboard.Buttons {
		var tgButtonRow []tgbotapi.InlineKeyboardButton

		for _, button := range buttonRow {
			var tgButton tgbotapi.InlineKeyboardButton

			switch {
			case button.WebAppURL != "":
				tgButton = tgbotapi.InlineKeyboardButton{
					Text:   button.Text,
					WebApp: &tgbotapi.WebAppInfo{URL: button.WebAppURL},
				}
			case button.URL != "":
				tgButton = tgbotapi.NewInlineKeyboardButtonURL(button.Text, button.URL)
			default:
				tgButton = tgbotapi.NewInlineKeyboardButtonData(button.Text, button.CallbackData)
			}

			tgButtonRow = append(tgButtonRow, tgButton)
		}

		rows = append(rows, tgButtonRow)
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// encodeCallbackData encodes callback data as JSON string
func (kb *KeyboardBuilder) encodeCallbackData(action string, data map[string]string) string {
	callbackData := CallbackData{
		Action: action,
		Data:   data,
	}

	jsonData, err := json.Marshal(callbackData)
	if err != nil {
		return action
	}

	// Telegram has a 64-byte limit for callback data
	if len(jsonData) > 64 {
		return action
	}

	return string(jsonData)
}

// DecodeCallbackData decodes JSON callback data
func (kb *KeyboardBuilder) DecodeCallbackData(callbackDataStr string) (*CallbackData, error) {
	var callbackData CallbackData

	if err := json.Unmarshal([]byte(callbackDataStr), &callbackData); err != nil {
		return &CallbackData{
			Action: callbackDataStr,
			Data:   make(map[string]string),
		}, nil
	}

	return &callbackData, nil
}

// truncateText truncates text to specified length with ellipsis
func truncateText(text string, maxLength int) string {
	if len(text) <= maxLength {
		return text
	}

	if maxLength <= 3 {
		return text[:maxLength]
	}

	return text[:maxLength-3] + "..."
}
