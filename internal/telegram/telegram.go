package telegram

import (
	"context"
	"fmt"

	"github.com/futig/ai-tutor/internal/config"
	"github.com/futig/ai-tutor/internal/entity"
	"github.com/futig/ai-tutor/internal/telegram/bot"
	"github.com/futig/ai-tutor/internal/telegram/handlers"
	"github.com/futig/ai-tutor/internal/telegram/keyboard"
	"go.uber.org/zap"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot initializes the telegram bot with all dependencies
func NewBot(
	cfg *config.TelegramConfig,
	tutorUC handlers.TutorUsecase,
	formats []entity.ResultFormat,
	logger *zap.Logger,
) (Bot, error) {
	b, err := bot.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	registerHandlers(b, tutorUC, formats, logger)

	logger.Info("telegram bot initialized successfully")

	return b, nil
}

// registerHandlers registers all handlers with the bot
func registerHandlers(b *bot.Bot, tutorUC handlers.TutorUsecase, formats []entity.ResultFormat, logger *zap.Logger) {
	sender := b.GetSender()
	kb := keyboard.NewBuilder(formats)

	b.RegisterHandler(handlers.NewCommandHandler(sender, tutorUC, kb))
	b.RegisterHandler(handlers.NewQuestionHandler(sender, tutorUC, kb))
	b.RegisterHandler(handlers.NewCallbackHandler(sender, tutorUC, kb))

	logger.Info("telegram handlers registered",
		zap.Int("handler_count", 3),
	)
}
