package middleware

import (
	"context"
	"runtime/debug"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const msgPanic = "❌ Something went wrong. Please try again or use /new"

// Notifier tells a chat that its update failed
type Notifier func(ctx context.Context, chatID int64, text string) error

// RecoveryMiddleware recovers from panics
type RecoveryMiddleware struct {
	notify Notifier
}

// NewRecoveryMiddleware creates a new recovery middleware
func NewRecoveryMiddleware(notify Notifier) *RecoveryMiddleware {
	return &RecoveryMiddleware{
		notify: notify,
	}
}

// Handle recovers from panics
func (m *RecoveryMiddleware) Handle(ctx context.Context, update tgbotapi.Update, next UpdateFunc) {
	defer func() {
		if r := recover(); r != nil {
			ctxzap.Error(ctx, "panic recovered in telegram handler",
				zap.Any("panic", r),
				zap.String("stack", string(debug.Stack())),
			)

			_, chatID := UpdateChat(update)
			if chatID != 0 && m.notify != nil {
				if err := m.notify(ctx, chatID, msgPanic); err != nil {
					ctxzap.Error(ctx, "failed to send error message", zap.Error(err))
				}
			}
		}
	}()

	next(ctx, update)
}
