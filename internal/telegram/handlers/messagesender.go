package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/ai-tutor/internal/entity"
	"github.com/futig/ai-tutor/internal/pkg/retry"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MessageSender provides centralized message sending functionality
type MessageSender struct {
	bot      *tgbotapi.BotAPI
	retryCfg *retry.RetryConfig
}

// NewMessageSender creates a new MessageSender
func NewMessageSender(bot *tgbotapi.BotAPI, retryCfg *retry.RetryConfig) *MessageSender {
	if retryCfg == nil {
		retryCfg = retry.DefaultRetryConfig()
	}
	return &MessageSender{
		bot:      bot,
		retryCfg: retryCfg,
	}
}

// Send sends a message to the specified chat
func (s *MessageSender) Send(ctx context.Context, chatID int64, text string, markup interface{}) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = markup
	}

	if err := s.deliver(ctx, chatID, msg); err != nil {
		ctxzap.Error(ctx, "failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
		return err
	}
	return nil
}

// SendDocument uploads an exported document to the chat
func (s *MessageSender) SendDocument(ctx context.Context, chatID int64, doc *entity.ExportedDocument) error {
	msg := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  doc.Filename,
		Bytes: doc.Content,
	})

	if err := s.deliver(ctx, chatID, msg); err != nil {
		return fmt.Errorf("send document: %w", err)
	}
	return nil
}

// SendTyping shows the "typing" status; Telegram clears it after about 5 seconds
func (s *MessageSender) SendTyping(ctx context.Context, chatID int64) error {
	_, err := s.bot.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping))
	return err
}

// AnswerCallback acknowledges a button press
func (s *MessageSender) AnswerCallback(ctx context.Context, callbackID, text string) error {
	_, err := s.bot.Request(tgbotapi.NewCallback(callbackID, text))
	return err
}

func (s *MessageSender) deliver(ctx context.Context, chatID int64, msg tgbotapi.Chattable) error {
	return retry.Do(ctx, s.retryCfg,
		func() error {
			_, err := s.bot.Send(msg)
			return err
		},
		isRetryableSendError,
		func(attempt uint, err error) {
			ctxzap.Warn(ctx, "failed to send message, retrying",
				zap.Error(err),
				zap.Uint("attempt", attempt+1),
				zap.Int64("chat_id", chatID),
			)
		},
	)
}

// isRetryableSendError retries transport failures and flood-control replies.
// Other Bot API errors (bad request, blocked by user) will not change on retry.
func isRetryableSendError(err error) bool {
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == 429 || apiErr.Code >= 500
	}
	return true
}
