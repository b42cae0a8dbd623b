package bot

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/futig/ai-tutor/internal/config"
	"github.com/futig/ai-tutor/internal/entity"
	"github.com/futig/ai-tutor/internal/telegram/handlers"
	"github.com/futig/ai-tutor/internal/telegram/middleware"
	"github.com/futig/ai-tutor/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Bot represents the Telegram bot
type Bot struct {
	api         *tgbotapi.BotAPI
	cfg         *config.TelegramConfig
	sender      *handlers.MessageSender
	handlers    map[string]handlers.Handler
	logger      *zap.Logger
	loggingMW   *middleware.LoggingMiddleware
	recoveryMW  *middleware.RecoveryMiddleware
	updatesChan tgbotapi.UpdatesChannel
	stopChan    chan struct{}
	stopOnce    sync.Once
	wg          sync.WaitGroup
}

// New creates a new Telegram bot
func New(cfg *config.TelegramConfig, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	api.Debug = false

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	sender := handlers.NewMessageSender(api, &cfg.SendRetry)

	bot := &Bot{
		api:      api,
		cfg:      cfg,
		sender:   sender,
		logger:   logger,
		handlers: make(map[string]handlers.Handler),
		stopChan: make(chan struct{}),
	}

	bot.loggingMW = middleware.NewLoggingMiddleware(logger)
	bot.recoveryMW = middleware.NewRecoveryMiddleware(func(ctx context.Context, chatID int64, text string) error {
		return sender.Send(ctx, chatID, text, nil)
	})

	return bot, nil
}

// Start starts the bot
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout

	b.updatesChan = b.api.GetUpdatesChan(u)

	ctx = ctxzap.ToContext(ctx, b.logger)

	go b.processUpdates(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops the bot gracefully with timeout
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	b.stopOnce.Do(func() {
		close(b.stopChan)
		b.api.StopReceivingUpdates()
	})

	// Wait for all active handlers to complete
	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(shutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

// processUpdates processes incoming updates
func (b *Bot) processUpdates(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update, ok := <-b.updatesChan:
			if !ok {
				return
			}
			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer b.wg.Done()
				b.handleUpdateWithMiddleware(ctx, u)
			}(update)
		}
	}
}

// handleUpdateWithMiddleware processes update through middleware chain
func (b *Bot) handleUpdateWithMiddleware(ctx context.Context, update tgbotapi.Update) {
	b.loggingMW.Handle(ctx, update, func(ctx context.Context, u tgbotapi.Update) {
		b.recoveryMW.Handle(ctx, u, b.handleUpdate)
	})
}

// handleUpdate routes update to appropriate handler
func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg, route := Normalize(update)
	if msg == nil {
		return
	}

	handler, exists := b.handlers[route]
	if !exists {
		ctxzap.Warn(ctx, "no handler for route", zap.String("route", route))
		return
	}

	if err := handler.Handle(ctx, msg); err != nil {
		b.sendError(ctx, msg.ChatID, route, err)
	}
}

// sendError logs err and replies with a user-friendly message
func (b *Bot) sendError(ctx context.Context, chatID int64, route string, err error) {
	if errors.Is(err, entity.ErrSessionNotFound) {
		ctxzap.Warn(ctx, "session not found", zap.Error(err), zap.String("route", route))
	} else {
		ctxzap.Error(ctx, "handler error", zap.Error(err), zap.String("route", route))
	}

	b.sender.Send(ctx, chatID, render.ClassifyError(err), nil)
}

// Normalize converts an update into a handler message and the route that should process it.
// Updates the bot does not act on yield a nil message.
func Normalize(update tgbotapi.Update) (*handlers.Message, string) {
	if q := update.CallbackQuery; q != nil {
		if q.Message == nil || q.Message.Chat == nil || q.From == nil {
			return nil, ""
		}
		return &handlers.Message{
			ChatID:       q.Message.Chat.ID,
			UserID:       q.From.ID,
			MessageID:    q.Message.MessageID,
			CallbackData: q.Data,
			CallbackID:   q.ID,
		}, handlers.HandlerStateCallback
	}

	m := update.Message
	if m == nil || m.Chat == nil {
		return nil, ""
	}

	msg := &handlers.Message{
		ChatID:    m.Chat.ID,
		MessageID: m.MessageID,
		Text:      m.Text,
	}
	if m.From != nil {
		msg.UserID = m.From.ID
	}

	if m.IsCommand() {
		msg.Command = m.Command()
		return msg, handlers.HandlerStateCommand
	}
	return msg, handlers.HandlerStateQuestion
}

// RegisterHandler registers a handler for a route
func (b *Bot) RegisterHandler(handler handlers.Handler) {
	state := handler.GetState()

	if !handlers.IsValidState(state) {
		b.logger.Fatal("invalid handler state",
			zap.String("state", state),
		)
	}

	b.handlers[state] = handler
	b.logger.Info("handler registered",
		zap.String("state", state),
	)
}

// GetSender returns the message sender (for handlers)
func (b *Bot) GetSender() *handlers.MessageSender {
	return b.sender
}
