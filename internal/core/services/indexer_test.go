package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghostvault-labs/ghostvault/internal/core/domain"
)

func testDoc() *domain.ExtractedDocument {
	return &domain.ExtractedDocument{
		FilePath: "/data/report.pdf",
		FileName: "report.pdf",
		Pages: []domain.ExtractedPage{
			{Label: "1", Text: "first page"},
			{Label: "2", Text: "second page"},
		},
	}
}

func newTestIndexer(store *fakeChunkStore, embedder *fakeEmbedder, loader *fakeLoader) *Indexer {
	return NewIndexer(store, embedder, loader, fakeChunker{}, IndexerConfig{
		AllowedExtensions: []string{".pdf", ".txt"},
		Retry:             fastPolicy(3),
	})
}

func TestIndexer_IndexFile(t *testing.T) {
	ctx := context.Background()

	t.Run("indexes an allowed file and marks it processed", func(t *testing.T) {
		store := &fakeChunkStore{}
		ix := newTestIndexer(store, &fakeEmbedder{}, &fakeLoader{doc: testDoc()})

		err := ix.IndexFile(ctx, "/data/report.pdf")

		require.NoError(t, err)
		assert.True(t, ix.IsProcessed("/data/report.pdf"))

		count, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})

	t.Run("skips disallowed extensions without error", func(t *testing.T) {
		store := &fakeChunkStore{}
		ix := newTestIndexer(store, &fakeEmbedder{}, &fakeLoader{doc: testDoc()})

		err := ix.IndexFile(ctx, "/data/image.png")

		require.NoError(t, err)
		assert.False(t, ix.IsProcessed("/data/image.png"))

		count, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("extension match is case-insensitive", func(t *testing.T) {
		store := &fakeChunkStore{}
		ix := newTestIndexer(store, &fakeEmbedder{}, &fakeLoader{doc: testDoc()})

		err := ix.IndexFile(ctx, "/data/REPORT.PDF")

		require.NoError(t, err)
		assert.True(t, ix.IsProcessed("/data/REPORT.PDF"))
	})

	t.Run("second index of same path is a no-op", func(t *testing.T) {
		store := &fakeChunkStore{}
		ix := newTestIndexer(store, &fakeEmbedder{}, &fakeLoader{doc: testDoc()})

		require.NoError(t, ix.IndexFile(ctx, "/data/report.pdf"))
		require.NoError(t, ix.IndexFile(ctx, "/data/report.pdf"))

		count, err := store.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, count, "chunks inserted only once")
	})

	t.Run("load failure is extraction failure and not processed", func(t *testing.T) {
		ix := newTestIndexer(&fakeChunkStore{}, &fakeEmbedder{}, &fakeLoader{err: errors.New("corrupt file")})

		err := ix.IndexFile(ctx, "/data/report.pdf")

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrExtractionFailed)
		assert.False(t, ix.IsProcessed("/data/report.pdf"))
	})

	t.Run("empty extraction aborts without retry", func(t *testing.T) {
		store := &fakeChunkStore{}
		empty := &domain.ExtractedDocument{
			FilePath: "/data/blank.pdf",
			FileName: "blank.pdf",
			Pages:    []domain.ExtractedPage{{Label: "1", Text: "   \n\t"}},
		}
		ix := newTestIndexer(store, &fakeEmbedder{}, &fakeLoader{doc: empty})

		err := ix.IndexFile(ctx, "/data/blank.pdf")

		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrExtractionFailed)
		assert.False(t, ix.IsProcessed("/data/blank.pdf"))
		assert.Equal(t, 0, store.insertCalls, "no insert attempted")
	})

	t.Run("transient insert failure is retried to success", func(t *testing.T) {
		store := &fakeChunkStore{insertFails: 2}
		ix := newTestIndexer(store, &fakeEmbedder{}, &fakeLoader{doc: testDoc()})

		err := ix.IndexFile(ctx, "/data/report.pdf")

		require.NoError(t, err)
		assert.Equal(t, 3, store.insertCalls)
		assert.True(t, ix.IsProcessed("/data/report.pdf"))
	})

	t.Run("exhausted retries leave path unprocessed", func(t *testing.T) {
		store := &fakeChunkStore{insertErr: errors.New("disk full")}
		ix := newTestIndexer(store, &fakeEmbedder{}, &fakeLoader{doc: testDoc()})

		err := ix.IndexFile(ctx, "/data/report.pdf")

		require.Error(t, err)
		assert.Equal(t, 3, store.insertCalls, "one call per attempt")
		assert.False(t, ix.IsProcessed("/data/report.pdf"))

		// A later attempt may succeed and must not be blocked.
		store.insertErr = nil
		require.NoError(t, ix.IndexFile(ctx, "/data/report.pdf"))
		assert.True(t, ix.IsProcessed("/data/report.pdf"))
	})

	t.Run("embedding failure is retried", func(t *testing.T) {
		embedder := &fakeEmbedder{err: errors.New("model loading")}
		ix := newTestIndexer(&fakeChunkStore{}, embedder, &fakeLoader{doc: testDoc()})

		err := ix.IndexFile(ctx, "/data/report.pdf")

		require.Error(t, err)
		// First chunk embed fails on each of the three attempts.
		assert.Equal(t, 3, embedder.calls)
	})
}

func TestIndexer_ConcurrentIndexing(t *testing.T) {
	ctx := context.Background()
	store := &fakeChunkStore{}
	ix := newTestIndexer(store, &fakeEmbedder{}, &fakeLoader{doc: testDoc()})

	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			_ = ix.IndexFile(ctx, "/data/report.pdf")
		}()
	}
	for i := 0; i < 8; i++ {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("timeout waiting for concurrent indexing")
		}
	}

	assert.True(t, ix.IsProcessed("/data/report.pdf"))

	// Only one of the racing calls may win the claim: the store must
	// see a single insert, not one per caller.
	assert.Equal(t, 1, store.insertCalls)
	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
