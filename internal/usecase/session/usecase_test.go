package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/futig/ai-tutor/internal/entity"
	"github.com/futig/ai-tutor/internal/pkg/formatter"
	"github.com/futig/ai-tutor/internal/usecase/session"
	"github.com/futig/ai-tutor/internal/usecase/tutor"
	"github.com/m-mizutani/gt"
	"go.uber.org/zap"
)

type stubConnector struct {
	answer string
	err    error
	calls  int
}

func (s *stubConnector) Complete(_ context.Context, _ *entity.LLMCompletionRequest) (string, error) {
	s.calls++
	return s.answer, s.err
}

type failingFormatter struct{}

func (failingFormatter) Format(string, string) ([]byte, error) { return nil, errors.New("boom") }
func (failingFormatter) ContentType() string                  { return "application/pdf" }
func (failingFormatter) FileExtension() string                { return ".pdf" }

type failingFactory struct{}

func (failingFactory) Create(entity.ResultFormat) (formatter.Formatter, error) {
	return failingFormatter{}, nil
}

func newUsecase(conn *stubConnector, factory session.FormatterFactory) *session.SessionUsecase {
	uc := session.NewUsecase(
		session.NewStore(time.Hour, time.Minute),
		tutor.NewService(conn, zap.NewNop()),
		factory,
		zap.NewNop(),
	)
	uc.SetClock(func() time.Time { return time.Date(2026, 10, 16, 9, 5, 7, 0, time.UTC) })
	return uc
}

func TestAskQuestionRecordsAnswer(t *testing.T) {
	ctx := context.Background()
	conn := &stubConnector{answer: "Recursion is..."}
	uc := newUsecase(conn, formatter.NewFactory(false))

	snap := uc.StartSession(ctx)
	gt.Value(t, snap.HistorySize).Equal(0)

	rec, result, err := uc.AskQuestion(ctx, snap.ID, "Explain recursion")
	gt.NoError(t, err).Required()
	gt.Value(t, result.Kind).Equal(entity.AnswerKindOK)
	gt.Value(t, rec).Equal(entity.QARecord{Question: "Explain recursion", Answer: "Recursion is..."})

	items, total, err := uc.History(ctx, snap.ID, entity.DefaultRecentWindow)
	gt.NoError(t, err).Required()
	gt.Value(t, total).Equal(1)
	gt.Array(t, items).Length(1).Required()
	gt.Value(t, items[0].Number).Equal(1)
	gt.Value(t, items[0].Question).Equal("Explain recursion")
	gt.Value(t, items[0].Answer).Equal("Recursion is...")

	got, err := uc.GetSession(ctx, snap.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, got.CurrentAnswer).Equal("Recursion is...")
}

func TestAskQuestionRecordsRejections(t *testing.T) {
	ctx := context.Background()
	conn := &stubConnector{err: errors.New("Error: RATE limit hit")}
	uc := newUsecase(conn, formatter.NewFactory(false))
	snap := uc.StartSession(ctx)

	rec, result, err := uc.AskQuestion(ctx, snap.ID, "hi")
	gt.NoError(t, err).Required()
	gt.Value(t, result.Kind).Equal(entity.AnswerKindValidation)
	gt.Value(t, rec.Answer).Equal(tutor.MsgNeedMoreDetail)
	gt.Value(t, conn.calls).Equal(0)

	rec, result, err = uc.AskQuestion(ctx, snap.ID, "Explain recursion")
	gt.NoError(t, err).Required()
	gt.Value(t, result.Kind).Equal(entity.AnswerKindRateLimited)
	gt.Value(t, rec.Answer).Equal(tutor.MsgRateLimited)
	gt.Value(t, conn.calls).Equal(1)

	_, total, err := uc.History(ctx, snap.ID, 5)
	gt.NoError(t, err).Required()
	gt.Value(t, total).Equal(2)
}

func TestUnknownSession(t *testing.T) {
	ctx := context.Background()
	uc := newUsecase(&stubConnector{}, formatter.NewFactory(false))

	_, _, err := uc.AskQuestion(ctx, "missing", "Explain recursion")
	gt.Bool(t, errors.Is(err, entity.ErrSessionNotFound)).True()

	_, _, err = uc.History(ctx, "missing", 5)
	gt.Bool(t, errors.Is(err, entity.ErrSessionNotFound)).True()

	gt.Bool(t, errors.Is(uc.ClearHistory(ctx, "missing"), entity.ErrSessionNotFound)).True()
	gt.Bool(t, errors.Is(uc.EndSession(ctx, "missing"), entity.ErrSessionNotFound)).True()
}

func TestClearHistoryThenAsk(t *testing.T) {
	ctx := context.Background()
	uc := newUsecase(&stubConnector{answer: "ok"}, formatter.NewFactory(false))
	snap := uc.StartSession(ctx)

	for _, q := range []string{"first question", "second question"} {
		_, _, err := uc.AskQuestion(ctx, snap.ID, q)
		gt.NoError(t, err).Required()
	}

	gt.NoError(t, uc.ClearHistory(ctx, snap.ID)).Required()
	items, total, err := uc.History(ctx, snap.ID, 5)
	gt.NoError(t, err).Required()
	gt.Array(t, items).Length(0)
	gt.Value(t, total).Equal(0)

	_, err = uc.ExportCurrent(ctx, snap.ID, entity.FormatMarkdown)
	gt.Bool(t, errors.Is(err, entity.ErrNoCurrentAnswer)).True()

	_, _, err = uc.AskQuestion(ctx, snap.ID, "third question")
	gt.NoError(t, err).Required()
	items, _, err = uc.History(ctx, snap.ID, 5)
	gt.NoError(t, err).Required()
	gt.Array(t, items).Length(1).Required()
	gt.Value(t, items[0].Question).Equal("third question")
}

func TestExportCurrent(t *testing.T) {
	ctx := context.Background()
	uc := newUsecase(&stubConnector{answer: "Recursion is..."}, formatter.NewFactory(false))
	snap := uc.StartSession(ctx)

	_, err := uc.ExportCurrent(ctx, snap.ID, entity.FormatPDF)
	gt.Bool(t, errors.Is(err, entity.ErrNoCurrentAnswer)).True()

	_, _, err = uc.AskQuestion(ctx, snap.ID, "Explain recursion")
	gt.NoError(t, err).Required()

	doc, err := uc.ExportCurrent(ctx, snap.ID, entity.FormatMarkdown)
	gt.NoError(t, err).Required()
	gt.Value(t, doc.Filename).Equal("ai_tutor_session_20261016_090507.md")
	gt.Value(t, doc.ContentType).Equal("text/markdown; charset=utf-8")
	gt.String(t, string(doc.Content)).Contains("Recursion is...")

	pdf, err := uc.ExportCurrent(ctx, snap.ID, entity.FormatPDF)
	gt.NoError(t, err).Required()
	gt.Value(t, pdf.Filename).Equal("ai_tutor_session_20261016_090507.pdf")

	_, err = uc.ExportCurrent(ctx, snap.ID, entity.ResultFormat("html"))
	gt.Bool(t, errors.Is(err, entity.ErrInvalidFormat)).True()
}

func TestExportFailurePropagates(t *testing.T) {
	ctx := context.Background()
	uc := newUsecase(&stubConnector{answer: "Recursion is..."}, failingFactory{})
	snap := uc.StartSession(ctx)

	_, _, err := uc.AskQuestion(ctx, snap.ID, "Explain recursion")
	gt.NoError(t, err).Required()

	_, err = uc.ExportCurrent(ctx, snap.ID, entity.FormatPDF)
	gt.Bool(t, errors.Is(err, entity.ErrExportFailed)).True()
}

func TestEndSession(t *testing.T) {
	ctx := context.Background()
	uc := newUsecase(&stubConnector{}, formatter.NewFactory(false))
	snap := uc.StartSession(ctx)

	gt.NoError(t, uc.EndSession(ctx, snap.ID)).Required()
	_, err := uc.GetSession(ctx, snap.ID)
	gt.Bool(t, errors.Is(err, entity.ErrSessionNotFound)).True()
}
