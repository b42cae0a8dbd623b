package handlers

import (
	"context"
	"fmt"

	"github.com/futig/ai-tutor/internal/telegram/keyboard"
	"github.com/futig/ai-tutor/internal/telegram/render"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// QuestionHandler answers free text messages
type QuestionHandler struct {
	BaseHandler
}

func NewQuestionHandler(sender Sender, tutorUC TutorUsecase, kb *keyboard.Builder) *QuestionHandler {
	return &QuestionHandler{
		BaseHandler: BaseHandler{
			stateName: HandlerStateQuestion,
			sender:    sender,
			tutorUC:   tutorUC,
			keyboard:  kb,
		},
	}
}

func (h *QuestionHandler) Handle(ctx context.Context, msg *Message) error {
	if msg.Text == "" {
		h.sendMessage(ctx, msg.ChatID, render.MsgTextOnly, nil)
		return nil
	}

	sessionID := SessionID(msg.ChatID)
	h.tutorUC.OpenSession(ctx, sessionID)

	typing := StartTyping(ctx, h.sender, msg.ChatID)
	_, result, err := h.tutorUC.AskQuestion(ctx, sessionID, msg.Text)
	typing.Stop()
	if err != nil {
		return fmt.Errorf("ask question: %w", err)
	}

	ctxzap.Debug(ctx, "answer ready", zap.String("kind", string(result.Kind)))

	// Rejections get no export buttons: there is nothing worth downloading
	var markup interface{}
	if result.OK() {
		markup = h.keyboard.AnswerKeyboard()
	}
	h.sendLong(ctx, msg.ChatID, result.String(), markup)
	return nil
}
