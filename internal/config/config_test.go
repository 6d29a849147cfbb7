package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeStore implements driven.ConfigStore over a plain map.
type fakeStore struct {
	data map[string]any
}

func (f *fakeStore) Get(key string) (any, bool) {
	v, ok := f.data[key]
	return v, ok
}

func (f *fakeStore) GetString(key string) string {
	if v, ok := f.data[key].(string); ok {
		return v
	}
	return ""
}

func (f *fakeStore) GetInt(key string) int {
	switch v := f.data[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}

func (f *fakeStore) GetBool(key string) bool {
	v, _ := f.data[key].(bool)
	return v
}

func (f *fakeStore) GetStringSlice(key string) []string {
	v, _ := f.data[key].([]string)
	return v
}

func (f *fakeStore) Set(key string, value any) error {
	f.data[key] = value
	return nil
}

func (f *fakeStore) Save() error { return nil }
func (f *fakeStore) Load() error { return nil }
func (f *fakeStore) Path() string {
	return ""
}

func TestLoad_Defaults(t *testing.T) {
	cfg := Load(nil)

	assert.Equal(t, "http://localhost:11434", cfg.OllamaBaseURL)
	assert.Equal(t, "llama3", cfg.LLMModel)
	assert.Equal(t, "nomic-embed-text", cfg.EmbedModel)
	assert.Equal(t, 300*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "ghostvault", cfg.Collection)
	assert.Equal(t, 5, cfg.TopK)
	assert.Equal(t, 0.7, cfg.Cutoff)
	assert.Equal(t, time.Second, cfg.SettleDelay)
	assert.Equal(t, 10*time.Millisecond, cfg.StreamingDelay)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, 2*time.Second, cfg.RetryDelay)
	assert.Equal(t, "ollama", cfg.LLMProvider)
	assert.Equal(t, "ollama", cfg.EmbedProvider)
	assert.Empty(t, cfg.DataDir)
	assert.Empty(t, cfg.LogFile)
}

func TestLoad_ProviderKeys(t *testing.T) {
	t.Setenv("GHOSTVAULT_LLM_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "sk-ant-test")

	cfg := Load(nil)

	assert.Equal(t, "anthropic", cfg.LLMProvider)
	assert.Equal(t, "sk-ant-test", cfg.AnthropicKey)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("OLLAMA_BASE_URL", "http://models.internal:11434")
	t.Setenv("OLLAMA_MODEL", "mistral")
	t.Setenv("OLLAMA_EMBEDDING_MODEL", "mxbai-embed-large")
	t.Setenv("OLLAMA_REQUEST_TIMEOUT", "30.5")
	t.Setenv("CHROMA_COLLECTION_NAME", "research")
	t.Setenv("SIMILARITY_TOP_K", "8")
	t.Setenv("SIMILARITY_CUTOFF", "0.55")
	t.Setenv("FILE_WRITE_DELAY", "0.25")
	t.Setenv("MAX_RETRIES", "5")

	cfg := Load(nil)

	assert.Equal(t, "http://models.internal:11434", cfg.OllamaBaseURL)
	assert.Equal(t, "mistral", cfg.LLMModel)
	assert.Equal(t, "mxbai-embed-large", cfg.EmbedModel)
	assert.Equal(t, 30500*time.Millisecond, cfg.RequestTimeout)
	assert.Equal(t, "research", cfg.Collection)
	assert.Equal(t, 8, cfg.TopK)
	assert.Equal(t, 0.55, cfg.Cutoff)
	assert.Equal(t, 250*time.Millisecond, cfg.SettleDelay)
	assert.Equal(t, 5, cfg.MaxRetries)
}

func TestLoad_Store(t *testing.T) {
	store := &fakeStore{data: map[string]any{
		"ollama.model":     "phi3",
		"store.collection": "archive",
		"retrieval.top_k":  int64(12),
		"retrieval.cutoff": 0.8,
	}}

	cfg := Load(store)

	assert.Equal(t, "phi3", cfg.LLMModel)
	assert.Equal(t, "archive", cfg.Collection)
	assert.Equal(t, 12, cfg.TopK)
	assert.Equal(t, 0.8, cfg.Cutoff)
	// Unset keys still fall back to defaults.
	assert.Equal(t, "nomic-embed-text", cfg.EmbedModel)
}

func TestLoad_EnvironmentWinsOverStore(t *testing.T) {
	t.Setenv("OLLAMA_MODEL", "from-env")
	store := &fakeStore{data: map[string]any{"ollama.model": "from-store"}}

	cfg := Load(store)

	assert.Equal(t, "from-env", cfg.LLMModel)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("SIMILARITY_TOP_K", "many")
	t.Setenv("SIMILARITY_CUTOFF", "high")
	t.Setenv("OLLAMA_REQUEST_TIMEOUT", "-1")

	cfg := Load(nil)

	assert.Equal(t, 5, cfg.TopK)
	assert.Equal(t, 0.7, cfg.Cutoff)
	assert.Equal(t, 300*time.Second, cfg.RequestTimeout)
}

func TestSupportedExtensions(t *testing.T) {
	assert.ElementsMatch(t,
		[]string{".pdf", ".txt", ".md", ".markdown"},
		SupportedExtensions)
}
