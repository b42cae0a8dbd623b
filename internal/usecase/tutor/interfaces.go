package tutor

import (
	"context"

	"github.com/futig/ai-tutor/internal/entity"
)

type LLMConnector interface {
	Complete(ctx context.Context, req *entity.LLMCompletionRequest) (string, error)
}
