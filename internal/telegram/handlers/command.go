package handlers

import (
	"context"
	"errors"

	"github.com/futig/ai-tutor/internal/entity"
	"github.com/futig/ai-tutor/internal/telegram/keyboard"
	"github.com/futig/ai-tutor/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// CommandHandler handles slash commands
type CommandHandler struct {
	BaseHandler
}

func NewCommandHandler(sender Sender, tutorUC TutorUsecase, kb *keyboard.Builder) *CommandHandler {
	return &CommandHandler{
		BaseHandler: BaseHandler{
			stateName: HandlerStateCommand,
			sender:    sender,
			tutorUC:   tutorUC,
			keyboard:  kb,
		},
	}
}

func (h *CommandHandler) Handle(ctx context.Context, msg *Message) error {
	ctxzap.Info(ctx, "command received",
		zap.String("command", msg.Command),
		zap.Int64("user_id", msg.UserID),
	)

	switch msg.Command {
	case "start":
		h.tutorUC.OpenSession(ctx, SessionID(msg.ChatID))
		h.sendMessage(ctx, msg.ChatID, render.MsgWelcome, nil)
	case "help":
		h.sendMessage(ctx, msg.ChatID, render.MsgHelp, nil)
	case "history":
		return h.showHistory(ctx, msg.ChatID)
	case "clear":
		return h.clearHistory(ctx, msg.ChatID)
	case "pdf":
		return h.sendExport(ctx, msg.ChatID, entity.FormatPDF)
	case "new":
		return h.newSession(ctx, msg.ChatID)
	default:
		h.sendMessage(ctx, msg.ChatID, render.MsgUnknownCommand, nil)
	}
	return nil
}

func (h *CommandHandler) newSession(ctx context.Context, chatID int64) error {
	sessionID := SessionID(chatID)
	if err := h.tutorUC.EndSession(ctx, sessionID); err != nil && !errors.Is(err, entity.ErrSessionNotFound) {
		return err
	}

	h.tutorUC.OpenSession(ctx, sessionID)
	h.sendMessage(ctx, chatID, render.MsgNewSession, nil)
	return nil
}
