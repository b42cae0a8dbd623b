package session

import (
	"context"

	"github.com/futig/ai-tutor/internal/entity"
)

type SessionUsecase interface {
	StartSession(ctx context.Context) entity.SessionSnapshot
	GetSession(ctx context.Context, sessionID string) (entity.SessionSnapshot, error)
	EndSession(ctx context.Context, sessionID string) error
	AskQuestion(ctx context.Context, sessionID, question string) (entity.QARecord, entity.AnswerResult, error)
	History(ctx context.Context, sessionID string, limit int) ([]entity.NumberedRecord, int, error)
	ClearHistory(ctx context.Context, sessionID string) error
	ExportCurrent(ctx context.Context, sessionID string, format entity.ResultFormat) (*entity.ExportedDocument, error)
}
