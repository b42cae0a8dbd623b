package middleware

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// UpdateFunc processes a single update
type UpdateFunc func(ctx context.Context, update tgbotapi.Update)

// LoggingMiddleware logs all incoming updates and scopes a logger to each one
type LoggingMiddleware struct {
	logger *zap.Logger
}

// NewLoggingMiddleware creates a new logging middleware
func NewLoggingMiddleware(logger *zap.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{
		logger: logger,
	}
}

// Handle logs the update and hands next a context carrying the update logger
func (m *LoggingMiddleware) Handle(ctx context.Context, update tgbotapi.Update, next UpdateFunc) {
	start := time.Now()

	userID, chatID := UpdateChat(update)
	updateLogger := m.logger.With(
		zap.Int("update_id", update.UpdateID),
		zap.Int64("user_id", userID),
		zap.Int64("chat_id", chatID),
	)

	updateLogger.Info("telegram update received",
		zap.String("type", updateType(update)),
	)

	next(ctxzap.ToContext(ctx, updateLogger), update)

	updateLogger.Info("telegram update processed",
		zap.Duration("duration", time.Since(start)),
	)
}

// UpdateChat returns the sender and chat of an update, zero when absent
func UpdateChat(update tgbotapi.Update) (userID, chatID int64) {
	switch {
	case update.Message != nil:
		if update.Message.From != nil {
			userID = update.Message.From.ID
		}
		if update.Message.Chat != nil {
			chatID = update.Message.Chat.ID
		}
	case update.CallbackQuery != nil:
		if update.CallbackQuery.From != nil {
			userID = update.CallbackQuery.From.ID
		}
		if update.CallbackQuery.Message != nil && update.CallbackQuery.Message.Chat != nil {
			chatID = update.CallbackQuery.Message.Chat.ID
		}
	}
	return userID, chatID
}

func updateType(update tgbotapi.Update) string {
	switch {
	case update.CallbackQuery != nil:
		return "callback"
	case update.Message == nil:
		return "other"
	case update.Message.IsCommand():
		return "command"
	case update.Message.Text != "":
		return "text"
	default:
		return "other"
	}
}
