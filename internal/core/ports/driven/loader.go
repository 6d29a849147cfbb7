package driven

import (
	"context"

	"github.com/ghostvault-labs/ghostvault/internal/core/domain"
)

// DocumentLoader extracts text from a source file.
type DocumentLoader interface {
	// Load reads the file at path and returns its extracted pages.
	// Returns domain.ErrUnsupportedType for file types the loader
	// does not handle.
	Load(ctx context.Context, path string) (*domain.ExtractedDocument, error)

	// Extensions lists the lowercase file extensions (with dot) this
	// loader handles.
	Extensions() []string
}

// Chunker splits an extracted document into chunk records carrying
// source metadata.
type Chunker interface {
	Chunk(doc *domain.ExtractedDocument) []domain.ChunkRecord
}
