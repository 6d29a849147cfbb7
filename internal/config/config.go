// Package config loads application settings from environment variables,
// an optional .env file, and the TOML config store, in that order of
// precedence (environment wins, defaults fill the rest).
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/ghostvault-labs/ghostvault/internal/core/ports/driven"
)

// Default values applied when neither the environment nor the config
// store provides a setting.
const (
	DefaultOllamaBaseURL  = "http://localhost:11434"
	DefaultLLMModel       = "llama3"
	DefaultEmbedModel     = "nomic-embed-text"
	DefaultRequestTimeout = 300 * time.Second
	DefaultCollection     = "ghostvault"
	DefaultTopK           = 5
	DefaultCutoff         = 0.7
	DefaultSettleDelay    = time.Second
	DefaultStreamingDelay = 10 * time.Millisecond
	DefaultMaxRetries     = 3
	DefaultRetryDelay     = 2 * time.Second
)

// SupportedExtensions lists the file types the watcher ingests.
var SupportedExtensions = []string{".pdf", ".txt", ".md", ".markdown"}

// Config holds the resolved application settings.
type Config struct {
	// OllamaBaseURL is the Ollama API endpoint.
	OllamaBaseURL string

	// LLMModel is the generation model name.
	LLMModel string

	// EmbedModel is the embedding model name.
	EmbedModel string

	// LLMProvider selects the generation backend: ollama, openai, or
	// anthropic.
	LLMProvider string

	// EmbedProvider selects the embedding backend: ollama or openai.
	EmbedProvider string

	// OpenAIKey authenticates the OpenAI backend.
	OpenAIKey string

	// AnthropicKey authenticates the Anthropic backend.
	AnthropicKey string

	// RequestTimeout bounds individual model requests.
	RequestTimeout time.Duration

	// Collection names the chunk collection.
	Collection string

	// DataDir holds the collection database. Empty means the default
	// under the user's home directory.
	DataDir string

	// WatchDir is the ingestion directory.
	WatchDir string

	// PersonaDir overrides the default persona directory when set.
	PersonaDir string

	// TopK is the number of chunks retrieved per question.
	TopK int

	// Cutoff is the minimum similarity score for retrieved chunks.
	Cutoff float64

	// SettleDelay is how long the watcher waits before reading a new file.
	SettleDelay time.Duration

	// StreamingDelay paces the typewriter output in the chat TUI.
	StreamingDelay time.Duration

	// MaxRetries is the attempt count for indexing operations.
	MaxRetries int

	// RetryDelay is the initial backoff between indexing attempts.
	RetryDelay time.Duration

	// LogFile receives a copy of all log output when set.
	LogFile string
}

// Load resolves the configuration. A .env file in the working directory
// is read first so its variables behave like environment variables.
// store may be nil.
func Load(store driven.ConfigStore) Config {
	// Missing .env is the normal case.
	_ = godotenv.Load()

	cfg := Config{
		OllamaBaseURL:  lookup(store, "OLLAMA_BASE_URL", "ollama.base_url", DefaultOllamaBaseURL),
		LLMModel:       lookup(store, "OLLAMA_MODEL", "ollama.model", DefaultLLMModel),
		EmbedModel:     lookup(store, "OLLAMA_EMBEDDING_MODEL", "ollama.embedding_model", DefaultEmbedModel),
		LLMProvider:    lookup(store, "GHOSTVAULT_LLM_PROVIDER", "llm.provider", "ollama"),
		EmbedProvider:  lookup(store, "GHOSTVAULT_EMBED_PROVIDER", "embedding.provider", "ollama"),
		OpenAIKey:      lookup(store, "OPENAI_API_KEY", "openai.api_key", ""),
		AnthropicKey:   lookup(store, "ANTHROPIC_API_KEY", "anthropic.api_key", ""),
		Collection:     lookup(store, "CHROMA_COLLECTION_NAME", "store.collection", DefaultCollection),
		DataDir:        lookup(store, "GHOSTVAULT_DATA_DIR", "store.data_dir", ""),
		WatchDir:       lookup(store, "GHOSTVAULT_WATCH_DIR", "watcher.dir", defaultWatchDir()),
		PersonaDir:     lookup(store, "GHOSTVAULT_PERSONA_DIR", "personas.dir", ""),
		LogFile:        lookup(store, "GHOSTVAULT_LOG_FILE", "log.file", ""),
		RequestTimeout: lookupSeconds(store, "OLLAMA_REQUEST_TIMEOUT", "ollama.timeout_seconds", DefaultRequestTimeout),
		TopK:           lookupInt(store, "SIMILARITY_TOP_K", "retrieval.top_k", DefaultTopK),
		Cutoff:         lookupFloat(store, "SIMILARITY_CUTOFF", "retrieval.cutoff", DefaultCutoff),
		SettleDelay:    lookupSeconds(store, "FILE_WRITE_DELAY", "watcher.settle_seconds", DefaultSettleDelay),
		StreamingDelay: lookupSeconds(store, "STREAMING_DELAY", "ui.streaming_delay_seconds", DefaultStreamingDelay),
		MaxRetries:     lookupInt(store, "MAX_RETRIES", "retry.max_attempts", DefaultMaxRetries),
		RetryDelay:     lookupSeconds(store, "RETRY_DELAY", "retry.delay_seconds", DefaultRetryDelay),
	}

	return cfg
}

// defaultWatchDir is ./data, mirroring where users expect to drop files.
func defaultWatchDir() string {
	return filepath.Join(".", "data")
}

func lookup(store driven.ConfigStore, envKey, storeKey, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		return v
	}
	if store != nil {
		if v := store.GetString(storeKey); v != "" {
			return v
		}
	}
	return fallback
}

func lookupInt(store driven.ConfigStore, envKey, storeKey string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	if store != nil {
		if n := store.GetInt(storeKey); n != 0 {
			return n
		}
	}
	return fallback
}

func lookupFloat(store driven.ConfigStore, envKey, storeKey string, fallback float64) float64 {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	if store != nil {
		if v, ok := store.Get(storeKey); ok {
			if f, ok := v.(float64); ok {
				return f
			}
		}
	}
	return fallback
}

// lookupSeconds parses a float number of seconds, matching the units
// used in .env files.
func lookupSeconds(store driven.ConfigStore, envKey, storeKey string, fallback time.Duration) time.Duration {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			return time.Duration(f * float64(time.Second))
		}
	}
	if store != nil {
		if v, ok := store.Get(storeKey); ok {
			switch f := v.(type) {
			case float64:
				return time.Duration(f * float64(time.Second))
			case int64:
				return time.Duration(f) * time.Second
			}
		}
	}
	return fallback
}
