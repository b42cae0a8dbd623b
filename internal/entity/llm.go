package entity

// Chat roles understood by OpenAI-compatible completion endpoints
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

type LLMMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// LLMCompletionRequest is a single, stateless completion call.
// Sampling parameters come from connector configuration.
type LLMCompletionRequest struct {
	Messages []LLMMessage `json:"messages"`
}
