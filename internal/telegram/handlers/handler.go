package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/ai-tutor/internal/entity"
	"github.com/futig/ai-tutor/internal/telegram/keyboard"
	"github.com/futig/ai-tutor/internal/telegram/render"
)

// Handler route constants
const (
	HandlerStateCallback = "CALLBACK"
	HandlerStateCommand  = "COMMAND"
	HandlerStateQuestion = "QUESTION"
)

// Message represents a normalized Telegram message
type Message struct {
	ChatID       int64
	UserID       int64
	MessageID    int
	Text         string
	Command      string
	CallbackData string
	CallbackID   string
}

// Handler defines the interface for route-specific handlers
type Handler interface {
	// Handle processes a message for this route
	Handle(ctx context.Context, msg *Message) error

	// GetState returns the route this handler manages
	GetState() string
}

// BaseHandler provides common functionality for all handlers
type BaseHandler struct {
	stateName string
	sender    Sender
	tutorUC   TutorUsecase
	keyboard  *keyboard.Builder
}

// GetState implements Handler
func (h *BaseHandler) GetState() string {
	return h.stateName
}

// SessionID is the session key of a chat; every chat has exactly one live session
func SessionID(chatID int64) string {
	return fmt.Sprintf("tg:%d", chatID)
}

// sendMessage is a convenience wrapper for sender.Send
func (h *BaseHandler) sendMessage(ctx context.Context, chatID int64, text string, markup interface{}) {
	h.sender.Send(ctx, chatID, text, markup)
}

// sendLong sends text in as many messages as needed, attaching markup to the last one
func (h *BaseHandler) sendLong(ctx context.Context, chatID int64, text string, markup interface{}) {
	parts := render.SplitMessage(text, render.MaxMessageLength)
	for i, part := range parts {
		if i == len(parts)-1 {
			h.sendMessage(ctx, chatID, part, markup)
			return
		}
		h.sendMessage(ctx, chatID, part, nil)
	}
}

func (h *BaseHandler) showHistory(ctx context.Context, chatID int64) error {
	sessionID := SessionID(chatID)
	h.tutorUC.OpenSession(ctx, sessionID)

	items, _, err := h.tutorUC.History(ctx, sessionID, entity.DefaultRecentWindow)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	h.sendLong(ctx, chatID, render.FormatHistory(items), nil)
	return nil
}

func (h *BaseHandler) clearHistory(ctx context.Context, chatID int64) error {
	sessionID := SessionID(chatID)
	h.tutorUC.OpenSession(ctx, sessionID)

	if err := h.tutorUC.ClearHistory(ctx, sessionID); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}

	h.sendMessage(ctx, chatID, render.MsgHistoryCleared, nil)
	return nil
}

func (h *BaseHandler) sendExport(ctx context.Context, chatID int64, format entity.ResultFormat) error {
	sessionID := SessionID(chatID)
	h.tutorUC.OpenSession(ctx, sessionID)

	doc, err := h.tutorUC.ExportCurrent(ctx, sessionID, format)
	if errors.Is(err, entity.ErrNoCurrentAnswer) {
		h.sendMessage(ctx, chatID, render.MsgNoCurrent, nil)
		return nil
	}
	if err != nil {
		return err
	}

	return h.sender.SendDocument(ctx, chatID, doc)
}

// validStates defines all valid handler routes
var validStates = map[string]bool{
	HandlerStateCallback: true,
	HandlerStateCommand:  true,
	HandlerStateQuestion: true,
}

// IsValidState checks if a route is valid for handler registration
func IsValidState(state string) bool {
	_, ok := validStates[state]
	return ok
}
