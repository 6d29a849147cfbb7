package driven

import (
	"context"

	"github.com/ghostvault-labs/ghostvault/internal/core/domain"
)

// ChunkStore persists chunk records for the indexed collection.
type ChunkStore interface {
	// GetAllMetadata returns the id and metadata of every stored chunk.
	// Returns domain.ErrCollectionNotFound when the collection has never
	// been created, domain.ErrStoreUnavailable for other failures.
	GetAllMetadata(ctx context.Context) ([]domain.ChunkInfo, error)

	// InsertChunks appends chunk records. No deduplication is performed;
	// re-indexing the same file grows the collection.
	InsertChunks(ctx context.Context, chunks []domain.ChunkRecord) error

	// DeleteByIDs removes chunks in bulk. Unknown ids are ignored.
	DeleteByIDs(ctx context.Context, ids []string) error

	// Count returns the number of stored chunks.
	Count(ctx context.Context) (int, error)

	// Close releases the underlying storage.
	Close() error
}

// SearchHit is a chunk ranked by similarity to a query.
type SearchHit struct {
	Chunk domain.ChunkRecord
	Score float64
}

// VectorSearcher ranks stored chunks against a query embedding.
type VectorSearcher interface {
	// Search returns up to topK chunks with similarity >= cutoff,
	// ordered by descending score.
	Search(ctx context.Context, embedding []float32, topK int, cutoff float64) ([]SearchHit, error)
}

// Retriever finds the chunks most relevant to a query string.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int, cutoff float64) ([]SearchHit, error)
}
