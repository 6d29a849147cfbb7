// Package retriever implements similarity retrieval over the chunk store.
package retriever

import (
	"context"
	"fmt"

	"github.com/ghostvault-labs/ghostvault/internal/core/ports/driven"
	"github.com/ghostvault-labs/ghostvault/internal/logger"
)

// Ensure Retriever implements the interface.
var _ driven.Retriever = (*Retriever)(nil)

// Retriever embeds a query and searches the vector store for the
// nearest chunks.
type Retriever struct {
	embedder driven.EmbeddingService
	searcher driven.VectorSearcher
}

// New creates a retriever over the given embedder and searcher.
func New(embedder driven.EmbeddingService, searcher driven.VectorSearcher) *Retriever {
	return &Retriever{embedder: embedder, searcher: searcher}
}

// Retrieve embeds query and returns up to topK chunks scoring at or
// above cutoff, best first.
func (r *Retriever) Retrieve(ctx context.Context, query string, topK int, cutoff float64) ([]driven.SearchHit, error) {
	embedding, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	hits, err := r.searcher.Search(ctx, embedding, topK, cutoff)
	if err != nil {
		return nil, fmt.Errorf("searching chunks: %w", err)
	}

	logger.Debug("retrieved %d chunks for query (topK=%d cutoff=%.2f)", len(hits), topK, cutoff)
	return hits, nil
}
