package services

import (
	"context"
	"fmt"

	"github.com/ghostvault-labs/ghostvault/internal/core/domain"
	"github.com/ghostvault-labs/ghostvault/internal/core/ports/driven"
	"github.com/ghostvault-labs/ghostvault/internal/core/ports/driving"
	"github.com/ghostvault-labs/ghostvault/internal/logger"
)

// Ensure Library implements the interface.
var _ driving.LibraryService = (*Library)(nil)

// Library aggregates the chunk store's metadata into document-level
// views. All reads work on a full metadata snapshot; the store itself
// only knows about chunks.
type Library struct {
	store driven.ChunkStore
}

// NewLibrary creates a library service over the given chunk store.
func NewLibrary(store driven.ChunkStore) *Library {
	return &Library{store: store}
}

// ListDocuments returns every indexed document, sorted by file name.
func (l *Library) ListDocuments(ctx context.Context) ([]domain.DocumentView, error) {
	chunks, err := l.store.GetAllMetadata(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	return domain.AggregateDocuments(chunks), nil
}

// GetDocumentInfo returns the view for a single document by file name.
func (l *Library) GetDocumentInfo(ctx context.Context, fileName string) (*domain.DocumentView, error) {
	docs, err := l.ListDocuments(ctx)
	if err != nil {
		return nil, err
	}
	for i := range docs {
		if docs[i].FileName == fileName {
			return &docs[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// DeleteDocument removes all chunks whose identity matches fileName.
func (l *Library) DeleteDocument(ctx context.Context, fileName string) (int, error) {
	chunks, err := l.store.GetAllMetadata(ctx)
	if err != nil {
		return 0, fmt.Errorf("deleting document: %w", err)
	}

	var ids []string
	for _, chunk := range chunks {
		if domain.DocumentKey(chunk.Metadata) == fileName {
			ids = append(ids, chunk.ID)
		}
	}

	if len(ids) == 0 {
		logger.Warn("no chunks found for document: %s", fileName)
		return 0, domain.ErrNotFound
	}

	if err := l.store.DeleteByIDs(ctx, ids); err != nil {
		return 0, fmt.Errorf("deleting document %s: %w", fileName, err)
	}

	logger.Info("deleted %d chunks for document: %s", len(ids), fileName)
	return len(ids), nil
}

// ClearAll removes every chunk from the collection.
func (l *Library) ClearAll(ctx context.Context) (int, error) {
	chunks, err := l.store.GetAllMetadata(ctx)
	if err != nil {
		return 0, fmt.Errorf("clearing documents: %w", err)
	}

	if len(chunks) == 0 {
		return 0, nil
	}

	ids := make([]string, len(chunks))
	for i, chunk := range chunks {
		ids[i] = chunk.ID
	}

	if err := l.store.DeleteByIDs(ctx, ids); err != nil {
		return 0, fmt.Errorf("clearing documents: %w", err)
	}

	logger.Info("cleared %d chunks from index", len(ids))
	return len(ids), nil
}

// Stats summarises the collection. Store failures are folded into the
// result's error status so callers can always render something.
func (l *Library) Stats(ctx context.Context) domain.CollectionStats {
	chunks, err := l.store.GetAllMetadata(ctx)
	if err != nil {
		logger.Error("getting collection stats: %v", err)
		return domain.CollectionStats{
			FileTypes: make(map[string]int),
			Status:    domain.StatusError,
			Err:       err.Error(),
		}
	}
	return domain.StatsFrom(domain.AggregateDocuments(chunks))
}

// DocumentCount returns the number of distinct documents.
func (l *Library) DocumentCount(ctx context.Context) (int, error) {
	docs, err := l.ListDocuments(ctx)
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}
