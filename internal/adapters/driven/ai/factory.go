// Package ai provides factory functions for creating model service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/ghostvault-labs/ghostvault/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/ghostvault-labs/ghostvault/internal/adapters/driven/embedding/openai"
	anthropicllm "github.com/ghostvault-labs/ghostvault/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/ghostvault-labs/ghostvault/internal/adapters/driven/llm/ollama"
	openaillm "github.com/ghostvault-labs/ghostvault/internal/adapters/driven/llm/openai"
	"github.com/ghostvault-labs/ghostvault/internal/core/domain"
	"github.com/ghostvault-labs/ghostvault/internal/core/ports/driven"
)

// Supported providers. Ollama is the default and needs no API key.
const (
	ProviderOllama    = "ollama"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// pingTimeout is the maximum time to wait for connectivity validation.
const pingTimeout = 5 * time.Second

// Settings selects and configures a model provider.
type Settings struct {
	// Provider is ollama, openai, or anthropic. Empty means ollama.
	Provider string

	// BaseURL overrides the provider's default endpoint.
	BaseURL string

	// Model is the model name. Empty uses the provider default.
	Model string

	// APIKey authenticates cloud providers. Unused by Ollama.
	APIKey string

	// Timeout bounds individual requests.
	Timeout time.Duration
}

func (s Settings) provider() string {
	if s.Provider == "" {
		return ProviderOllama
	}
	return s.Provider
}

// CreateAndValidateEmbeddingService creates an embedding service and
// verifies the backend is reachable before returning it.
func CreateAndValidateEmbeddingService(settings Settings) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w)",
			domain.ErrEmbeddingUnavailable, err)
	}

	return svc, nil
}

// CreateAndValidateLLMService creates an LLM service and verifies the
// backend is reachable before returning it.
func CreateAndValidateLLMService(settings Settings) (driven.LLMService, error) {
	svc, err := CreateLLMService(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrModelUnavailable, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w)",
			domain.ErrModelUnavailable, err)
	}

	return svc, nil
}

// CreateEmbeddingService creates the appropriate embedding service for
// the configured provider.
func CreateEmbeddingService(settings Settings) (driven.EmbeddingService, error) {
	switch settings.provider() {
	case ProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: settings.Timeout,
		}), nil

	case ProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: settings.Timeout,
		})

	case ProviderAnthropic:
		// Anthropic does not support embeddings.
		return nil, fmt.Errorf("anthropic does not support embeddings, use ollama or openai")

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
}

// CreateLLMService creates the appropriate LLM service for the
// configured provider.
func CreateLLMService(settings Settings) (driven.LLMService, error) {
	switch settings.provider() {
	case ProviderOllama:
		return ollamallm.NewLLMService(ollamallm.LLMConfig{
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: settings.Timeout,
		}), nil

	case ProviderOpenAI:
		return openaillm.NewLLMService(openaillm.LLMConfig{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: settings.Timeout,
		})

	case ProviderAnthropic:
		return anthropicllm.NewLLMService(anthropicllm.Config{
			APIKey:  settings.APIKey,
			BaseURL: settings.BaseURL,
			Model:   settings.Model,
			Timeout: settings.Timeout,
		})

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", settings.Provider)
	}
}
