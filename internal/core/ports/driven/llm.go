package driven

import "context"

// GenerateOptions configures a text generation request.
type GenerateOptions struct {
	// MaxTokens limits the response length (0 = model default).
	MaxTokens int

	// Temperature controls randomness (0 = model default).
	Temperature float64

	// StopWords halt generation when encountered.
	StopWords []string
}

// LLMService produces answers from prompts.
type LLMService interface {
	// Generate produces a text completion for a prompt.
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
