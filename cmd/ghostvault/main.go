// Command ghostvault is a local document Q&A assistant. It watches a
// folder for documents, indexes them into a SQLite-backed vector
// store, and answers questions about them through a local or cloud
// LLM.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ghostvault-labs/ghostvault/internal/adapters/driven/ai"
	"github.com/ghostvault-labs/ghostvault/internal/adapters/driven/config/file"
	"github.com/ghostvault-labs/ghostvault/internal/adapters/driven/storage/sqlite"
	"github.com/ghostvault-labs/ghostvault/internal/adapters/driving/cli"
	"github.com/ghostvault-labs/ghostvault/internal/chunker"
	"github.com/ghostvault-labs/ghostvault/internal/config"
	"github.com/ghostvault-labs/ghostvault/internal/core/ports/driving"
	"github.com/ghostvault-labs/ghostvault/internal/core/services"
	"github.com/ghostvault-labs/ghostvault/internal/loader"
	"github.com/ghostvault-labs/ghostvault/internal/loader/markdown"
	"github.com/ghostvault-labs/ghostvault/internal/loader/pdf"
	"github.com/ghostvault-labs/ghostvault/internal/loader/text"
	"github.com/ghostvault-labs/ghostvault/internal/logger"
	"github.com/ghostvault-labs/ghostvault/internal/retriever"
	"github.com/ghostvault-labs/ghostvault/internal/watcher"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config store: %w", err)
	}

	cfg := config.Load(configStore)

	if cfg.LogFile != "" {
		if err := logger.OpenFile(cfg.LogFile); err != nil {
			logger.Warn("log file disabled: %v", err)
		}
		defer logger.CloseFile()
	}

	cli.Configure(cli.Dependencies{
		Library:     libraryFactory(cfg),
		Session:     sessionFactory(cfg),
		Watch:       watchRunner(cfg),
		ConfigStore: configStore,
		StreamDelay: cfg.StreamingDelay,
	})

	return cli.Execute()
}

// libraryFactory opens the existing collection for management commands.
func libraryFactory(cfg config.Config) func(context.Context) (driving.LibraryService, func() error, error) {
	return func(_ context.Context) (driving.LibraryService, func() error, error) {
		store, err := sqlite.OpenStore(cfg.DataDir, cfg.Collection)
		if err != nil {
			return nil, nil, err
		}
		return services.NewLibrary(store), store.Close, nil
	}
}

// sessionFactory wires a full retrieval-and-generation session.
func sessionFactory(cfg config.Config) func(context.Context, string) (driving.ChatSession, func() error, error) {
	return func(_ context.Context, persona string) (driving.ChatSession, func() error, error) {
		store, err := sqlite.OpenStore(cfg.DataDir, cfg.Collection)
		if err != nil {
			return nil, nil, err
		}

		embedder, err := ai.CreateAndValidateEmbeddingService(embedSettings(cfg))
		if err != nil {
			store.Close() //nolint:errcheck
			return nil, nil, err
		}

		llm, err := ai.CreateAndValidateLLMService(llmSettings(cfg))
		if err != nil {
			embedder.Close()
			store.Close() //nolint:errcheck
			return nil, nil, err
		}

		personas, err := file.NewPersonaStore(cfg.PersonaDir)
		if err != nil {
			llm.Close()
			embedder.Close()
			store.Close() //nolint:errcheck
			return nil, nil, err
		}

		session, err := services.NewChatSession(
			services.ChatConfig{Persona: persona, TopK: cfg.TopK, Cutoff: cfg.Cutoff},
			personas,
			services.NewLibrary(store),
			retriever.New(embedder, store),
			llm,
		)
		if err != nil {
			llm.Close()
			embedder.Close()
			store.Close() //nolint:errcheck
			return nil, nil, err
		}

		closeAll := func() error {
			llm.Close()
			embedder.Close()
			return store.Close()
		}
		return session, closeAll, nil
	}
}

// watchRunner wires the ingestion pipeline and runs the watcher loop.
func watchRunner(cfg config.Config) func(context.Context) error {
	return func(ctx context.Context) error {
		store, err := sqlite.NewStore(cfg.DataDir, cfg.Collection)
		if err != nil {
			return fmt.Errorf("opening collection: %w", err)
		}
		defer store.Close() //nolint:errcheck

		embedder, err := ai.CreateAndValidateEmbeddingService(embedSettings(cfg))
		if err != nil {
			return err
		}
		defer embedder.Close()

		indexer := services.NewIndexer(
			store,
			embedder,
			loader.NewRegistry(text.New(), markdown.New(), pdf.New()),
			chunker.New(),
			services.IndexerConfig{
				AllowedExtensions: config.SupportedExtensions,
				Retry: services.RetryPolicy{
					MaxAttempts: cfg.MaxRetries,
					Delay:       cfg.RetryDelay,
					Backoff:     services.DefaultRetryBackoff,
				},
			},
		)

		w := watcher.New(watcher.Config{
			Dir:         cfg.WatchDir,
			SettleDelay: cfg.SettleDelay,
		}, indexer)

		return w.Run(ctx)
	}
}

func embedSettings(cfg config.Config) ai.Settings {
	return ai.Settings{
		Provider: cfg.EmbedProvider,
		BaseURL:  baseURLFor(cfg.EmbedProvider, cfg),
		Model:    embedModelFor(cfg),
		APIKey:   apiKeyFor(cfg.EmbedProvider, cfg),
		Timeout:  cfg.RequestTimeout,
	}
}

func llmSettings(cfg config.Config) ai.Settings {
	return ai.Settings{
		Provider: cfg.LLMProvider,
		BaseURL:  baseURLFor(cfg.LLMProvider, cfg),
		Model:    llmModelFor(cfg),
		APIKey:   apiKeyFor(cfg.LLMProvider, cfg),
		Timeout:  cfg.RequestTimeout,
	}
}

// baseURLFor returns the Ollama endpoint for the local provider and
// leaves cloud providers on their library defaults.
func baseURLFor(provider string, cfg config.Config) string {
	if provider == ai.ProviderOllama || provider == "" {
		return cfg.OllamaBaseURL
	}
	return ""
}

// The configured model names target Ollama; cloud providers fall back
// to their own defaults unless the name is explicitly theirs.
func llmModelFor(cfg config.Config) string {
	if cfg.LLMProvider == ai.ProviderOllama || cfg.LLMProvider == "" {
		return cfg.LLMModel
	}
	return ""
}

func embedModelFor(cfg config.Config) string {
	if cfg.EmbedProvider == ai.ProviderOllama || cfg.EmbedProvider == "" {
		return cfg.EmbedModel
	}
	return ""
}

func apiKeyFor(provider string, cfg config.Config) string {
	switch provider {
	case ai.ProviderOpenAI:
		return cfg.OpenAIKey
	case ai.ProviderAnthropic:
		return cfg.AnthropicKey
	}
	return ""
}
