package llm

import (
	"context"
	"fmt"

	"github.com/futig/ai-tutor/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector is an offline stand-in for the completion endpoint, used when ENABLE_MOCKS is set
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

// Complete returns a canned tutoring answer that quotes the last user message
func (m *MockConnector) Complete(ctx context.Context, req *entity.LLMCompletionRequest) (string, error) {
	ctxzap.Info(ctx, "[MOCK] requesting completion from LLM")

	var question string
	for _, msg := range req.Messages {
		if msg.Role == entity.RoleUser {
			question = msg.Content
		}
	}

	answer := fmt.Sprintf(`Great question! You asked: %q

Let's break it down step by step:
1. Start from what you already know about the topic.
2. Split the problem into small parts and solve each one.
3. Put the parts back together and check the result.

Think of it like building with blocks: each small piece is easy on its own.

*This answer was generated offline (MOCK)*`, question)

	ctxzap.Info(ctx, "[MOCK] completion received", zap.Int("result_length", len(answer)))
	return answer, nil
}
