package llm

import "context"

// Role constants for chat messages.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single role-tagged turn sent to the backend.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type GenerationParams struct {
	Temperature *float32 `json:"temperature"`
	TopP        *float32 `json:"top_p"`
	MaxTokens   *int     `json:"max_tokens"`
	Stop        []string `json:"stop"`
	// JSONResponse asks the backend for a JSON-object response, used for
	// structured classification calls.
	JSONResponse bool `json:"json_response"`
}

// LLMClient defines the standard interface for any LLM backend.
//
// Callers that can run without a backend hold a nil LLMClient and take
// their documented fallback path instead of calling out.
type LLMClient interface {
	Generate(ctx context.Context, prompt string, params GenerationParams) (string, error)
	Chat(ctx context.Context, messages []Message, params GenerationParams) (string, error)
}
