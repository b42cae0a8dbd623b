package session

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/futig/ai-tutor/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const exportFilenamePrefix = "ai_tutor_session_"

// SessionUsecase drives a tutoring session: asking, history and export
type SessionUsecase struct {
	store      *Store
	answers    AnswerService
	formatters FormatterFactory
	logger     *zap.Logger
	now        func() time.Time
}

// NewUsecase creates a new session use case
func NewUsecase(
	store *Store,
	answers AnswerService,
	formatters FormatterFactory,
	logger *zap.Logger,
) *SessionUsecase {
	return &SessionUsecase{
		store:      store,
		answers:    answers,
		formatters: formatters,
		logger:     logger,
		now:        time.Now,
	}
}

// StartSession creates an empty session
func (uc *SessionUsecase) StartSession(ctx context.Context) entity.SessionSnapshot {
	sess := uc.store.Create()
	ctxzap.Info(ctx, "session started", zap.String("session_id", sess.ID))
	return sess.Snapshot()
}

// OpenSession returns the session stored under id, creating it on first use.
// Chat front ends use their own stable ids (for example a chat id).
func (uc *SessionUsecase) OpenSession(ctx context.Context, id string) entity.SessionSnapshot {
	return uc.store.GetOrCreate(id).Snapshot()
}

func (uc *SessionUsecase) GetSession(ctx context.Context, sessionID string) (entity.SessionSnapshot, error) {
	sess, err := uc.store.Get(sessionID)
	if err != nil {
		return entity.SessionSnapshot{}, err
	}
	return sess.Snapshot(), nil
}

// EndSession discards the session and its history
func (uc *SessionUsecase) EndSession(ctx context.Context, sessionID string) error {
	if _, err := uc.store.Get(sessionID); err != nil {
		return err
	}
	uc.store.Delete(sessionID)
	ctxzap.Info(ctx, "session ended")
	return nil
}

// AskQuestion answers question, makes the pair current and appends it to the session log.
// Rejections (short question, endpoint failure) are recorded the same way as answers.
func (uc *SessionUsecase) AskQuestion(ctx context.Context, sessionID, question string) (entity.QARecord, entity.AnswerResult, error) {
	sess, err := uc.store.Get(sessionID)
	if err != nil {
		return entity.QARecord{}, entity.AnswerResult{}, err
	}

	result := uc.answers.Ask(ctx, question)
	rec := sess.Record(question, result.String())

	ctxzap.Info(ctx, "question answered",
		zap.String("kind", string(result.Kind)),
		zap.Int("history_size", sess.Log().Len()),
	)

	return rec, result, nil
}

// History returns up to limit records, newest first, each numbered by its position in the log
func (uc *SessionUsecase) History(ctx context.Context, sessionID string, limit int) ([]entity.NumberedRecord, int, error) {
	sess, err := uc.store.Get(sessionID)
	if err != nil {
		return nil, 0, err
	}

	log := sess.Log()
	return slices.Collect(log.RecentNumbered(limit)), log.Len(), nil
}

// ClearHistory empties the session log and the current pair
func (uc *SessionUsecase) ClearHistory(ctx context.Context, sessionID string) error {
	sess, err := uc.store.Get(sessionID)
	if err != nil {
		return err
	}

	sess.Clear()
	ctxzap.Info(ctx, "session history cleared")
	return nil
}

// ExportCurrent renders the current question and answer as a downloadable document
func (uc *SessionUsecase) ExportCurrent(ctx context.Context, sessionID string, format entity.ResultFormat) (*entity.ExportedDocument, error) {
	sess, err := uc.store.Get(sessionID)
	if err != nil {
		return nil, err
	}

	cur, ok := sess.Current()
	if !ok {
		return nil, entity.ErrNoCurrentAnswer
	}

	fmtr, err := uc.formatters.Create(format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrInvalidFormat, err)
	}

	content, err := fmtr.Format(cur.Question, cur.Answer)
	if err != nil {
		ctxzap.Error(ctx, "failed to render document", zap.Error(err), zap.String("format", string(format)))
		return nil, fmt.Errorf("%w: %w", entity.ErrExportFailed, err)
	}

	return &entity.ExportedDocument{
		Filename:    exportFilenamePrefix + uc.now().Format("20060102_150405") + fmtr.FileExtension(),
		ContentType: fmtr.ContentType(),
		Content:     content,
	}, nil
}
