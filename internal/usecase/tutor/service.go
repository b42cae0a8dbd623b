package tutor

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/futig/ai-tutor/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Service answers single questions. It keeps no memory between calls:
// every question goes to the endpoint on its own, with no earlier turns.
type Service struct {
	llmConnector LLMConnector
	logger       *zap.Logger
}

func NewService(llmConnector LLMConnector, logger *zap.Logger) *Service {
	return &Service{
		llmConnector: llmConnector,
		logger:       logger,
	}
}

// Answer returns the text to display for question. It never fails:
// endpoint errors are turned into a descriptive message.
func (s *Service) Answer(ctx context.Context, question string) string {
	return s.Ask(ctx, question).String()
}

// Ask is Answer with the outcome category kept.
// Questions shorter than three characters after trimming get guidance and no outbound call.
func (s *Service) Ask(ctx context.Context, question string) entity.AnswerResult {
	if n := utf8.RuneCountInString(strings.TrimSpace(question)); n < minQuestionLength {
		ctxzap.Debug(ctx, "question too short, skipping completion", zap.Int("length", n))
		return entity.AnswerResult{Kind: entity.AnswerKindValidation, Text: MsgNeedMoreDetail}
	}

	answer, err := s.llmConnector.Complete(ctx, &entity.LLMCompletionRequest{
		Messages: []entity.LLMMessage{
			{Role: entity.RoleSystem, Content: systemInstruction},
			{Role: entity.RoleUser, Content: question},
		},
	})
	if err != nil {
		result := Classify(err)
		ctxzap.Warn(ctx, "completion failed",
			zap.Error(err),
			zap.String("kind", string(result.Kind)),
		)
		return result
	}

	return entity.AnswerResult{Kind: entity.AnswerKindOK, Text: answer}
}
