package chatbot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"lingobot-api/internal/common"
	"lingobot-api/internal/config"
	"lingobot-api/internal/events"
	"lingobot-api/internal/leaderboard"
	"lingobot-api/internal/progress"
	"lingobot-api/internal/tasks"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// leaderboardSize is how many rows the bot shows in chat.
const leaderboardSize = 10

// streakMilestones get a congratulation message when reached.
var streakMilestones = map[int]string{
	3:  "🔥 3 days in a row! Keep it up!",
	7:  "🔥 A full week streak! You're on fire!",
	30: "🏆 30 days straight. Incredible discipline!",
}

// ChatbotService defines the interface for chatbot operations
type ChatbotService interface {
	// HandleWebhook processes one raw Telegram update.
	HandleWebhook(ctx context.Context, webhookData []byte) error

	// SendMessage sends a text message to the specified chat.
	SendMessage(chatID int64, text string) error
}

// chatbotService implements the ChatbotService interface
type chatbotService struct {
	eventBus        events.EventBus
	logger          *zap.Logger
	provider        TelegramProvider
	parser          *WebhookParser
	keyboardBuilder *KeyboardBuilder
	progress        progress.ProgressService
	leaderboard     leaderboard.LeaderboardService
	tasks           tasks.TaskService
	clock           common.Clock
	config          config.ChatbotConfig

	mu       sync.Mutex
	sessions map[int64]SessionState
}

// NewChatbotService creates a new instance of ChatbotService
func NewChatbotService(
	eventBus events.EventBus,
	logger *zap.Logger,
	cfg config.ChatbotConfig,
	progressService progress.ProgressService,
	leaderboardService leaderboard.LeaderboardService,
	taskService tasks.TaskService,
	clock common.Clock,
) (ChatbotService, error) {
	provider, err := NewTelegramProvider(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram provider: %w", err)
	}
	return newChatbotServiceWithProvider(eventBus, logger, cfg, provider, progressService, leaderboardService, taskService, clock), nil
}

// NewChatbotServiceWithProvider wires a pre-built provider; used by tests
// and by setups that talk to Telegram through a stub.
func NewChatbotServiceWithProvider(
	eventBus events.EventBus,
	logger *zap.Logger,
	cfg config.ChatbotConfig,
	provider TelegramProvider,
	progressService progress.ProgressService,
	leaderboardService leaderboard.LeaderboardService,
	taskService tasks.TaskService,
	clock common.Clock,
) ChatbotService {
	return newChatbotServiceWithProvider(eventBus, logger, cfg, provider, progressService, leaderboardService, taskService, clock)
}

func newChatbotServiceWithProvider(
	eventBus events.EventBus,
	logger *zap.Logger,
	cfg config.ChatbotConfig,
	provider TelegramProvider,
	progressService progress.ProgressService,
	leaderboardService leaderboard.LeaderboardService,
	taskService tasks.TaskService,
	clock common.Clock,
) ChatbotService {
	service := &chatbotService{
		eventBus:        eventBus,
		logger:          logger,
		provider:        provider,
		parser:          NewWebhookParser(),
		keyboardBuilder: NewKeyboardBuilder(),
		progress:        progressService,
		leaderboard:     leaderboardService,
		tasks:           taskService,
		clock:           clock,
		config:          cfg,
		sessions:        make(map[int64]SessionState),
	}

	service.setupEventSubscriptions()

	if cfg.WebhookURL != "" {
		if err := provider.SetWebhook(cfg.WebhookURL); err != nil {
			logger.Warn("Failed to set webhook", zap.Error(err))
		}
	}

	return service
}

// setupEventSubscriptions sets up event subscriptions for the chatbot service
func (s *chatbotService) setupEventSubscriptions() {
	if err := s.eventBus.Subscribe(events.TopicWordsLearned, s.handleWordsLearned); err != nil {
		s.logger.Error("Failed to subscribe to WordsLearned events", zap.Error(err))
	}
	if err := s.eventBus.Subscribe(events.TopicReminderDue, s.handleReminderDue); err != nil {
		s.logger.Error("Failed to subscribe to ReminderDue events", zap.Error(err))
	}
}

// handleWordsLearned congratulates users crossing a streak milestone. For a
// private bot chat the chat id equals the user's telegram id.
func (s *chatbotService) handleWordsLearned(event events.WordsLearned) {
	text, ok := streakMilestones[event.CurrentStreak]
	if !ok || event.NewWords == 0 {
		return
	}
	if err := s.provider.SendMessage(event.UserID, text); err != nil {
		s.logger.Warn("Failed to send streak milestone",
			zap.Int64("user_id", event.UserID),
			zap.Error(err))
	}
}

// handleReminderDue delivers a daily learning reminder.
func (s *chatbotService) handleReminderDue(event events.ReminderDue) {
	text := "📚 Time to learn today's words! Your streak is waiting."
	if err := s.provider.SendMessage(event.UserID, text); err != nil {
		s.logger.Warn("Failed to send reminder",
			zap.Int64("user_id", event.UserID),
			zap.Error(err))
	}
}

func (s *chatbotService) SendMessage(chatID int64, text string) error {
	return s.provider.SendMessage(chatID, text)
}

func (s *chatbotService) sessionState(chatID int64) SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state, ok := s.sessions[chatID]; ok {
		return state
	}
	return SessionStateIdle
}

func (s *chatbotService) setSessionState(chatID int64, state SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if state == SessionStateIdle {
		delete(s.sessions, chatID)
		return
	}
	s.sessions[chatID] = state
}

// HandleWebhook processes incoming webhook data from Telegram
func (s *chatbotService) HandleWebhook(ctx context.Context, webhookData []byte) error {
	update, err := s.parser.ParseUpdate(webhookData)
	if err != nil {
		return NewWebhookError("parse", err)
	}

	if update.CallbackQuery != nil {
		return s.handleCallback(ctx, update)
	}

	if update.Message == nil {
		// Edits, channel posts and other update kinds are ignored.
		return nil
	}

	message, err := s.parser.ExtractMessage(update)
	if err != nil {
		return NewWebhookError("extract", err)
	}

	if message.Type == MessageTypeCommand {
		command, err := s.parser.ExtractCommand(update.Message)
		if err != nil {
			return s.provider.SendMessage(message.ChatID, "I don't know that command. Try /help.")
		}
		return s.handleCommand(ctx, command, message)
	}

	return s.handleText(ctx, message)
}

func (s *chatbotService) handleCommand(ctx context.Context, command Command, message *Message) error {
	s.logger.Info("Handling command",
		zap.String("command", string(command)),
		zap.Int64("user_id", message.UserID))

	switch command {
	case CommandStart:
		return s.handleStart(ctx, message)
	case CommandHelp:
		return s.provider.SendMessage(message.ChatID, helpText())
	case CommandStats:
		return s.sendStats(ctx, message.UserID, message.ChatID)
	case CommandTop:
		return s.sendLeaderboard(ctx, message.UserID, message.ChatID)
	case CommandTasks:
		return s.sendTasks(ctx, message.UserID, message.ChatID)
	default:
		return s.provider.SendMessage(message.ChatID, "I don't know that command. Try /help.")
	}
}

func (s *chatbotService) handleStart(ctx context.Context, message *Message) error {
	_, err := s.progress.GetUser(ctx, message.UserID)
	if err == nil {
		// Returning user goes straight to the main menu.
		s.setSessionState(message.ChatID, SessionStateIdle)
		keyboard := s.keyboardBuilder.BuildMainMenuKeyboard(s.config.WebAppURL)
		return s.provider.SendMessageWithKeyboard(message.ChatID, "Welcome back! What shall we do?", keyboard)
	}
	if !common.IsNotFound(err) {
		return err
	}

	s.setSessionState(message.ChatID, SessionStateAwaitingReady)
	keyboard := s.keyboardBuilder.BuildReadinessKeyboard()
	text := "Hi! I'll help you learn English words every day.\nReady to start?"
	return s.provider.SendMessageWithKeyboard(message.ChatID, text, keyboard)
}

func (s *chatbotService) handleCallback(ctx context.Context, update *tgbotapi.Update) error {
	callback, err := s.parser.ExtractCallbackQuery(update)
	if err != nil {
		return NewWebhookError("callback", err)
	}

	userID, err := s.parser.GetUserID(update)
	if err != nil {
		return NewWebhookError("callback", err)
	}
	chatID, err := s.parser.GetChatID(update)
	if err != nil {
		return NewWebhookError("callback", err)
	}

	switch callback.Action {
	case CallbackActionReady:
		return s.advancePastGroupGate(chatID, userID)

	case CallbackActionJoined:
		member, err := s.provider.IsGroupMember(s.config.GroupID, userID)
		if err != nil {
			return err
		}
		if !member {
			keyboard := s.keyboardBuilder.BuildGroupInviteKeyboard(s.config.InviteLink)
			return s.provider.SendMessageWithKeyboard(chatID, "I can't see you in the group yet. Join and try again!", keyboard)
		}
		return s.askLocalTime(chatID)

	case CallbackActionStats:
		return s.sendStats(ctx, userID, chatID)

	case CallbackActionTop:
		return s.sendLeaderboard(ctx, userID, chatID)

	case CallbackActionTasks:
		return s.sendTasks(ctx, userID, chatID)

	case CallbackActionTaskToggle:
		return s.toggleTask(ctx, callback, userID, chatID)

	case CallbackActionHelp:
		return s.provider.SendMessage(chatID, helpText())

	default:
		s.logger.Warn("Unknown callback action", zap.String("action", callback.Action))
		return nil
	}
}

// advancePastGroupGate either sends the group invite or, when no group is
// configured, moves straight to the timezone question.
func (s *chatbotService) advancePastGroupGate(chatID, userID int64) error {
	if s.config.GroupID == 0 {
		return s.askLocalTime(chatID)
	}

	member, err := s.provider.IsGroupMember(s.config.GroupID, userID)
	if err == nil && member {
		return s.askLocalTime(chatID)
	}

	s.setSessionState(chatID, SessionStateAwaitingGroup)
	keyboard := s.keyboardBuilder.BuildGroupInviteKeyboard(s.config.InviteLink)
	text := "Great! First, join our learners' group so you don't miss announcements."
	return s.provider.SendMessageWithKeyboard(chatID, text, keyboard)
}

func (s *chatbotService) askLocalTime(chatID int64) error {
	s.setSessionState(chatID, SessionStateAwaitingLocalTime)
	text := "Almost done! What time is it for you right now?\nReply like <b>18:45</b> so I can schedule reminders in your timezone."
	return s.provider.SendMessage(chatID, text)
}

func (s *chatbotService) handleText(ctx context.Context, message *Message) error {
	if s.sessionState(message.ChatID) != SessionStateAwaitingLocalTime {
		return s.provider.SendMessage(message.ChatID, "Try /help to see what I can do.")
	}

	timeLine, err := DeriveTimeLine(message.Text, s.clock.Now())
	if err != nil {
		return s.provider.SendMessage(message.ChatID, "That doesn't look like a time. Reply like <b>18:45</b>.")
	}

	identity := progress.Identity{
		UserID:    message.UserID,
		Username:  message.Username,
		FirstName: message.FirstName,
		LastName:  message.LastName,
	}
	if _, err := s.progress.RegisterUser(ctx, identity, timeLine); err != nil {
		s.logger.Error("Failed to register user",
			zap.Int64("user_id", message.UserID),
			zap.Error(err))
		return s.provider.SendMessage(message.ChatID, "Something went wrong, please try again.")
	}

	s.setSessionState(message.ChatID, SessionStateIdle)

	keyboard := s.keyboardBuilder.BuildMainMenuKeyboard(s.config.WebAppURL)
	text := fmt.Sprintf("You're all set! Your timezone is %s.\nLet's learn some words 💪", timeLine)
	return s.provider.SendMessageWithKeyboard(message.ChatID, text, keyboard)
}

func (s *chatbotService) sendStats(ctx context.Context, userID, chatID int64) error {
	stats, err := s.progress.ComputeStats(ctx, userID, s.clock.Now())
	if err != nil {
		if common.IsNotFound(err) {
			return s.provider.SendMessage(chatID, "You're not registered yet. Send /start to begin!")
		}
		return err
	}

	text := fmt.Sprintf(
		"📊 <b>Your progress</b>\n\n🔥 Streak: %d days\n📖 Words learned: %d\n✅ Today: %d of %d",
		stats.Streak, stats.TotalWords, stats.LearnedToday, stats.WordsPerDay)
	return s.provider.SendMessage(chatID, text)
}

func (s *chatbotService) sendLeaderboard(ctx context.Context, userID, chatID int64) error {
	view, err := s.leaderboard.GetView(ctx, userID, leaderboardSize)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("🏆 <b>Leaderboard</b>\n\n")
	medals := []string{"🥇", "🥈", "🥉"}
	for i, entry := range view.Top {
		prefix := fmt.Sprintf("%d.", i+1)
		if i < len(medals) {
			prefix = medals[i]
		}
		fmt.Fprintf(&b, "%s %s — %d XP\n", prefix, entry.Name, entry.Exp)
	}
	if view.Rank != nil {
		fmt.Fprintf(&b, "\nYour place: %d", *view.Rank)
	}
	return s.provider.SendMessage(chatID, b.String())
}

func (s *chatbotService) sendTasks(ctx context.Context, userID, chatID int64) error {
	list, err := s.tasks.GetTasks(ctx, userID)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		return s.provider.SendMessage(chatID, "No tasks yet. Add some in the app!")
	}

	ids := make([]int64, 0, len(list))
	titles := make([]string, 0, len(list))
	for _, task := range list {
		mark := "⬜"
		if task.IsDone {
			mark = "✅"
		}
		ids = append(ids, task.ID)
		titles = append(titles, fmt.Sprintf("%s %s", mark, task.Text))
	}

	keyboard := s.keyboardBuilder.BuildTaskListKeyboard(ids, titles)
	return s.provider.SendMessageWithKeyboard(chatID, "📝 <b>Your tasks</b>\nTap one to toggle it.", keyboard)
}

func (s *chatbotService) toggleTask(ctx context.Context, callback *CallbackData, userID, chatID int64) error {
	raw, ok := callback.Data["task_id"]
	if !ok {
		return s.provider.SendMessage(chatID, "That task is gone.")
	}
	taskID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return s.provider.SendMessage(chatID, "That task is gone.")
	}

	if _, err := s.tasks.ToggleDone(ctx, taskID); err != nil {
		if common.IsNotFound(err) {
			return s.provider.SendMessage(chatID, "That task is gone.")
		}
		return err
	}
	return s.sendTasks(ctx, userID, chatID)
}

func helpText() string {
	return strings.Join([]string{
		"Here's what I can do:",
		"",
		"/start — begin or show the main menu",
		"/stats — your streak, XP and daily progress",
		"/top — the XP leaderboard",
		"/tasks — your personal to-do list",
	}, "\n")
}
