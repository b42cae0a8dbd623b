package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/futig/ai-tutor/internal/config"
	"github.com/futig/ai-tutor/internal/entity"
	"github.com/futig/ai-tutor/internal/integration/common"
	pkgHTTP "github.com/futig/ai-tutor/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// Connector talks to an OpenAI-compatible chat completion endpoint
type Connector struct {
	config config.LLMConnectorConfig
	client *openai.Client
	logger *zap.Logger
}

func NewConnector(
	cfg config.LLMConnectorConfig,
	logger *zap.Logger,
) *Connector {
	clientCfg := openai.DefaultConfig(cfg.Token)
	if cfg.Url != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.Url, "/")
	}
	clientCfg.HTTPClient = common.NewBaseHTTPClient(cfg.HTTPClientConfig)

	return &Connector{
		config: cfg,
		client: openai.NewClientWithConfig(clientCfg),
		logger: logger,
	}
}

// Complete sends one chat completion request and returns the first choice verbatim.
// Endpoint errors keep their type and carry the full error response in their text.
func (c *Connector) Complete(ctx context.Context, req *entity.LLMCompletionRequest) (string, error) {
	ctxzap.Info(ctx, "requesting completion from LLM service",
		zap.String("model", c.config.Model),
		zap.Int("message_count", len(req.Messages)),
	)

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	ctx, errBody := pkgHTTP.ContextWithErrorBody(ctx)
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.config.Model,
		Messages:    messages,
		MaxTokens:   c.config.MaxTokens,
		Temperature: c.config.Temperature,
	})
	if err != nil {
		err = withErrorDetails(err, errBody.Bytes())
		ctxzap.Error(ctx, "completion request failed", zap.Error(err))
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", entity.ErrNoChoices
	}

	content := resp.Choices[0].Message.Content
	ctxzap.Info(ctx, "completion received",
		zap.Int("result_length", len(content)),
		zap.Int("total_tokens", resp.Usage.TotalTokens),
	)

	return content, nil
}

// withErrorDetails appends what go-openai drops from an API error: its type, its
// code and the raw body, where providers put details such as "reason": "API_KEY_INVALID".
func withErrorDetails(err error, body []byte) error {
	var apiErr *openai.APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	details := fmt.Sprintf("type: %s, code: %v", apiErr.Type, apiErr.Code)
	if body = bytes.TrimSpace(body); len(body) > 0 {
		details += ", body: " + string(body)
	}
	return fmt.Errorf("%w (%s)", err, details)
}
