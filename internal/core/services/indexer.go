package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ghostvault-labs/ghostvault/internal/core/domain"
	"github.com/ghostvault-labs/ghostvault/internal/core/ports/driven"
	"github.com/ghostvault-labs/ghostvault/internal/core/ports/driving"
	"github.com/ghostvault-labs/ghostvault/internal/logger"
)

// Ensure Indexer implements the interface.
var _ driving.Ingestor = (*Indexer)(nil)

// IndexerConfig configures an Indexer.
type IndexerConfig struct {
	// AllowedExtensions lists the file extensions (with dot) to index.
	// Matching is case-insensitive.
	AllowedExtensions []string

	// Retry controls the policy around embedding and storage.
	Retry RetryPolicy
}

// Indexer turns source files into stored chunks: load, chunk, embed,
// insert. The embed-and-insert step is retried on transient failure.
//
// A processed set guards against duplicate indexing within one run:
// the filesystem watcher delivers at-least-once, so the same path can
// arrive from the startup scan and a create event. A path is claimed
// before any work starts and marked processed only after a successful
// insert, so concurrent calls for the same path insert exactly once.
// Processed paths are never removed, so a file changed mid-run is not
// re-indexed.
type Indexer struct {
	store    driven.ChunkStore
	embedder driven.EmbeddingService
	loader   driven.DocumentLoader
	chunker  driven.Chunker
	allowed  map[string]struct{}
	retry    RetryPolicy

	mu        sync.Mutex
	processed map[string]struct{}
	inflight  map[string]struct{}
}

// NewIndexer creates an indexer over the given collaborators.
func NewIndexer(
	store driven.ChunkStore,
	embedder driven.EmbeddingService,
	loader driven.DocumentLoader,
	chunker driven.Chunker,
	cfg IndexerConfig,
) *Indexer {
	allowed := make(map[string]struct{}, len(cfg.AllowedExtensions))
	for _, ext := range cfg.AllowedExtensions {
		allowed[strings.ToLower(ext)] = struct{}{}
	}

	retry := cfg.Retry
	if retry.MaxAttempts == 0 {
		retry = DefaultRetryPolicy()
	}

	return &Indexer{
		store:     store,
		embedder:  embedder,
		loader:    loader,
		chunker:   chunker,
		allowed:   allowed,
		retry:     retry,
		processed: make(map[string]struct{}),
		inflight:  make(map[string]struct{}),
	}
}

// IndexFile loads, chunks, embeds, and stores one file.
func (ix *Indexer) IndexFile(ctx context.Context, path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := ix.allowed[ext]; !ok {
		logger.Debug("skipping %s: extension %q not allowed", path, ext)
		return nil
	}

	if !ix.claim(path) {
		logger.Debug("skipping %s: already processed or in flight", path)
		return nil
	}

	name := filepath.Base(path)
	logger.Info("indexing: %s", name)

	doc, err := ix.loader.Load(ctx, path)
	if err != nil {
		ix.release(path)
		return fmt.Errorf("%w: loading %s: %v", domain.ErrExtractionFailed, name, err)
	}
	if doc.Empty() {
		ix.release(path)
		logger.Warn("no text extracted from %s, leaving unprocessed", name)
		return fmt.Errorf("%w: %s produced no text", domain.ErrExtractionFailed, name)
	}

	chunks := ix.chunker.Chunk(doc)

	err = Retry(ctx, ix.retry, "index "+name, func() error {
		texts := make([]string, len(chunks))
		for i := range chunks {
			texts[i] = chunks[i].Text
		}

		embeddings, err := ix.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("embedding %s: %w", name, err)
		}
		for i := range chunks {
			chunks[i].Embedding = embeddings[i]
		}

		if err := ix.store.InsertChunks(ctx, chunks); err != nil {
			return fmt.Errorf("storing %s: %w", name, err)
		}
		return nil
	})
	if err != nil {
		ix.release(path)
		return err
	}

	ix.markProcessed(path)
	logger.Info("successfully indexed: %s (%d chunks)", name, len(chunks))
	return nil
}

// IsProcessed reports whether path was indexed during this run.
func (ix *Indexer) IsProcessed(path string) bool {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	_, ok := ix.processed[path]
	return ok
}

// claim reserves path for the current call. It fails when the path is
// already indexed or another goroutine is indexing it right now, so
// the duplicate check and the insert act as one step.
func (ix *Indexer) claim(path string) bool {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if _, ok := ix.processed[path]; ok {
		return false
	}
	if _, ok := ix.inflight[path]; ok {
		return false
	}
	ix.inflight[path] = struct{}{}
	return true
}

// release returns a claimed path after a failed attempt so a later
// event can try again.
func (ix *Indexer) release(path string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	delete(ix.inflight, path)
}

func (ix *Indexer) markProcessed(path string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	delete(ix.inflight, path)
	ix.processed[path] = struct{}{}
}
