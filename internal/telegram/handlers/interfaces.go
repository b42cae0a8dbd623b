package handlers

import (
	"context"

	"github.com/futig/ai-tutor/internal/entity"
)

// TutorUsecase defines the session operations the Telegram front end needs
type TutorUsecase interface {
	OpenSession(ctx context.Context, id string) entity.SessionSnapshot
	EndSession(ctx context.Context, sessionID string) error
	AskQuestion(ctx context.Context, sessionID, question string) (entity.QARecord, entity.AnswerResult, error)
	History(ctx context.Context, sessionID string, limit int) ([]entity.NumberedRecord, int, error)
	ClearHistory(ctx context.Context, sessionID string) error
	ExportCurrent(ctx context.Context, sessionID string, format entity.ResultFormat) (*entity.ExportedDocument, error)
}

// Sender delivers replies to a chat
type Sender interface {
	Send(ctx context.Context, chatID int64, text string, markup interface{}) error
	SendDocument(ctx context.Context, chatID int64, doc *entity.ExportedDocument) error
	SendTyping(ctx context.Context, chatID int64) error
	AnswerCallback(ctx context.Context, callbackID, text string) error
}
