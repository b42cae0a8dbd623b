package handlers

import (
	"context"
	"fmt"

	"github.com/futig/ai-tutor/internal/entity"
	"github.com/futig/ai-tutor/internal/telegram/keyboard"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// CallbackHandler handles inline keyboard button presses
type CallbackHandler struct {
	BaseHandler
}

func NewCallbackHandler(sender Sender, tutorUC TutorUsecase, kb *keyboard.Builder) *CallbackHandler {
	return &CallbackHandler{
		BaseHandler: BaseHandler{
			stateName: HandlerStateCallback,
			sender:    sender,
			tutorUC:   tutorUC,
			keyboard:  kb,
		},
	}
}

func (h *CallbackHandler) Handle(ctx context.Context, msg *Message) error {
	data, err := keyboard.ParseCallback(msg.CallbackData)
	if err != nil {
		h.answer(ctx, msg.CallbackID, "❌ Invalid button")
		return nil
	}

	ctxzap.Info(ctx, "callback query received",
		zap.String("callback_action", data.Action),
		zap.String("value", data.Value),
		zap.Int64("user_id", msg.UserID),
	)

	// Answer right away so Telegram does not show the spinner until the export is ready
	h.answer(ctx, msg.CallbackID, "")

	switch data.Action {
	case keyboard.ActionDownload:
		format := entity.ResultFormat(data.Value)
		if !h.keyboard.Offers(format) {
			return fmt.Errorf("%w: %q", entity.ErrInvalidFormat, data.Value)
		}
		return h.sendExport(ctx, msg.ChatID, format)
	case keyboard.ActionHistory:
		return h.showHistory(ctx, msg.ChatID)
	case keyboard.ActionClear:
		return h.clearHistory(ctx, msg.ChatID)
	default:
		ctxzap.Warn(ctx, "unknown callback action", zap.String("callback_action", data.Action))
	}
	return nil
}

func (h *CallbackHandler) answer(ctx context.Context, callbackID, text string) {
	if err := h.sender.AnswerCallback(ctx, callbackID, text); err != nil {
		ctxzap.Warn(ctx, "failed to answer callback",
			zap.Error(err),
			zap.String("callback_id", callbackID),
		)
	}
}
