package llm

import "context"

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete performs a single chat completion
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)

	// IsAvailable checks if the provider is properly configured and reachable
	IsAvailable(ctx context.Context) bool
}

// CompletionRequest contains the input for one completion call
type CompletionRequest struct {
	// System is the system role instruction
	System string

	// Prompt is the user message
	Prompt string

	// Model overrides the configured model for this call
	Model string

	// MaxTokens limits the response length
	MaxTokens int

	// Temperature controls sampling (0 falls back to the configured value)
	Temperature float32
}

// CompletionResponse contains the model's reply
type CompletionResponse struct {
	// Text is the raw reply content
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "ollama"
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama, OpenAI-compatible proxies)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// Temperature for sampling
	Temperature float32

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Timeout:     60,
		Temperature: 0.1,
		MaxTokens:   4000,
	}
}
