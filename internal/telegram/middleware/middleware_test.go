package middleware_test

import (
	"context"
	"testing"

	"github.com/futig/ai-tutor/internal/telegram/middleware"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/m-mizutani/gt"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func textUpdate(chatID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: 42,
		Message: &tgbotapi.Message{
			From: &tgbotapi.User{ID: 7},
			Chat: &tgbotapi.Chat{ID: chatID},
			Text: text,
		},
	}
}

func TestLoggingMiddlewareScopesLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	mw := middleware.NewLoggingMiddleware(zap.New(core))

	called := false
	mw.Handle(context.Background(), textUpdate(100, "hi"), func(ctx context.Context, _ tgbotapi.Update) {
		called = true
		ctxzap.Info(ctx, "inside")
	})

	gt.Bool(t, called).True()
	entries := logs.FilterMessage("inside").All()
	gt.Array(t, entries).Length(1).Required()
	gt.Value(t, entries[0].ContextMap()["chat_id"]).Equal(int64(100))
	gt.Value(t, entries[0].ContextMap()["update_id"]).Equal(int64(42))
	gt.Array(t, logs.FilterMessage("telegram update processed").All()).Length(1)
}

func TestRecoveryMiddlewareNotifiesChat(t *testing.T) {
	var notified int64
	mw := middleware.NewRecoveryMiddleware(func(_ context.Context, chatID int64, text string) error {
		notified = chatID
		gt.String(t, text).Contains("/new")
		return nil
	})

	mw.Handle(context.Background(), textUpdate(55, "boom"), func(context.Context, tgbotapi.Update) {
		panic("handler exploded")
	})

	gt.Value(t, notified).Equal(int64(55))
}

func TestUpdateChatCallback(t *testing.T) {
	u := tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		From:    &tgbotapi.User{ID: 3},
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 9}},
	}}
	userID, chatID := middleware.UpdateChat(u)
	gt.Value(t, userID).Equal(int64(3))
	gt.Value(t, chatID).Equal(int64(9))
}
