package driving

import (
	"context"

	"github.com/ghostvault-labs/ghostvault/internal/core/domain"
)

// LibraryService manages the indexed document collection.
type LibraryService interface {
	// ListDocuments returns every indexed document, sorted by file name.
	ListDocuments(ctx context.Context) ([]domain.DocumentView, error)

	// GetDocumentInfo returns the view for a single document by file
	// name. Returns domain.ErrNotFound when no chunks match.
	GetDocumentInfo(ctx context.Context, fileName string) (*domain.DocumentView, error)

	// DeleteDocument removes all chunks belonging to a document and
	// returns how many were removed. Returns domain.ErrNotFound when
	// no chunks match.
	DeleteDocument(ctx context.Context, fileName string) (int, error)

	// ClearAll removes every chunk and returns how many were removed.
	ClearAll(ctx context.Context) (int, error)

	// Stats summarises the collection. Failures are reported inside
	// the result via the error status rather than as an error return.
	Stats(ctx context.Context) domain.CollectionStats

	// DocumentCount returns the number of distinct documents.
	DocumentCount(ctx context.Context) (int, error)
}
