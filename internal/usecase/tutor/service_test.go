package tutor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/futig/ai-tutor/internal/entity"
	"github.com/futig/ai-tutor/internal/usecase/tutor"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"github.com/m-mizutani/gt"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeConnector struct {
	answer   string
	err      error
	requests []*entity.LLMCompletionRequest
}

func (f *fakeConnector) Complete(_ context.Context, req *entity.LLMCompletionRequest) (string, error) {
	f.requests = append(f.requests, req)
	return f.answer, f.err
}

func TestAnswerShortQuestionSkipsEndpoint(t *testing.T) {
	for _, q := range []string{"", " ", "ab", "  ab  ", "\n\t", "é?", "  日本 "} {
		t.Run(q, func(t *testing.T) {
			conn := &fakeConnector{answer: "should not be used"}
			svc := tutor.NewService(conn, zap.NewNop())

			result := svc.Ask(context.Background(), q)
			gt.Value(t, result.Kind).Equal(entity.AnswerKindValidation)
			gt.Value(t, result.Text).Equal(tutor.MsgNeedMoreDetail)
			gt.Value(t, svc.Answer(context.Background(), q)).Equal(tutor.MsgNeedMoreDetail)
			gt.Array(t, conn.requests).Length(0)
		})
	}
}

func TestAnswerShortQuestionLogsCharacterCount(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ctx := ctxzap.ToContext(context.Background(), zap.New(core))
	svc := tutor.NewService(&fakeConnector{}, zap.NewNop())

	// two Cyrillic letters take four bytes
	svc.Ask(ctx, "  ёж  ")

	entries := logs.FilterMessage("question too short, skipping completion").All()
	gt.Array(t, entries).Length(1).Required()
	gt.Value(t, entries[0].ContextMap()["length"]).Equal(int64(2))
}

func TestAnswerSendsSingleStatelessRequest(t *testing.T) {
	conn := &fakeConnector{answer: "Recursion is..."}
	svc := tutor.NewService(conn, zap.NewNop())

	gt.Value(t, svc.Answer(context.Background(), "Explain recursion")).Equal("Recursion is...")
	gt.Value(t, svc.Answer(context.Background(), "  abc  ")).Equal("Recursion is...")

	gt.Array(t, conn.requests).Length(2).Required()
	for i, want := range []string{"Explain recursion", "  abc  "} {
		msgs := conn.requests[i].Messages
		gt.Array(t, msgs).Length(2).Required()
		gt.Value(t, msgs[0].Role).Equal(entity.RoleSystem)
		gt.String(t, msgs[0].Content).Contains("friendly AI tutor")
		gt.Value(t, msgs[1].Role).Equal(entity.RoleUser)
		gt.Value(t, msgs[1].Content).Equal(want)
	}
}

func TestAnswerReturnsCompletionUnmodified(t *testing.T) {
	raw := "  Step 1:\n\n```go\n// comment\n```\n\n  "
	svc := tutor.NewService(&fakeConnector{answer: raw}, zap.NewNop())

	result := svc.Ask(context.Background(), "show me Go code")
	gt.Bool(t, result.OK()).True()
	gt.Value(t, result.Text).Equal(raw)
}

func TestAnswerClassifiesEndpointErrors(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		kind entity.AnswerKind
		want string
	}{
		{
			name: "api key in lower case",
			err:  errors.New("invalid api_key supplied"),
			kind: entity.AnswerKindCredential,
			want: tutor.MsgCredentialError,
		},
		{
			name: "api key wins over quota and rate",
			err:  errors.New("Api_Key rejected: QUOTA and RATE exceeded"),
			kind: entity.AnswerKindCredential,
			want: tutor.MsgCredentialError,
		},
		{
			name: "quota wins over rate",
			err:  errors.New("QUOTA exceeded, RATE limited"),
			kind: entity.AnswerKindQuota,
			want: tutor.MsgQuotaExceeded,
		},
		{
			name: "rate limited",
			err:  errors.New("Error: RATE limit hit"),
			kind: entity.AnswerKindRateLimited,
			want: tutor.MsgRateLimited,
		},
		{
			name: "rate inside another word",
			err:  errors.New("could not generate content"),
			kind: entity.AnswerKindRateLimited,
			want: tutor.MsgRateLimited,
		},
		{
			name: "unclassified keeps raw text",
			err:  errors.New("connection refused"),
			kind: entity.AnswerKindUnclassified,
			want: "**Error**: connection refused\n\n💡 Please try rephrasing your question or check your internet connection.",
		},
		{
			name: "no choices",
			err:  entity.ErrNoChoices,
			kind: entity.AnswerKindUnclassified,
			want: "**Error**: no choices returned\n\n💡 Please try rephrasing your question or check your internet connection.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			conn := &fakeConnector{err: tc.err}
			svc := tutor.NewService(conn, zap.NewNop())

			result := svc.Ask(context.Background(), "Explain recursion")
			gt.Value(t, result.Kind).Equal(tc.kind)
			gt.Value(t, result.Text).Equal(tc.want)

			// one call, never retried
			gt.Array(t, conn.requests).Length(1)
		})
	}
}

func TestRateLimitMessageHidesRawText(t *testing.T) {
	svc := tutor.NewService(&fakeConnector{err: errors.New("Error: RATE limit hit")}, zap.NewNop())

	got := svc.Answer(context.Background(), "Explain recursion")
	gt.Value(t, got).Equal(tutor.MsgRateLimited)
	gt.String(t, got).NotEqual("Error: RATE limit hit")
}
