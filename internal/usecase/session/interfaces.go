package session

import (
	"context"

	"github.com/futig/ai-tutor/internal/entity"
	"github.com/futig/ai-tutor/internal/pkg/formatter"
)

type AnswerService interface {
	Ask(ctx context.Context, question string) entity.AnswerResult
}

type FormatterFactory interface {
	Create(format entity.ResultFormat) (formatter.Formatter, error)
}
