// Package memory provides in-memory implementations of driven port
// interfaces, useful for tests and ephemeral sessions.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/ghostvault-labs/ghostvault/internal/core/domain"
	"github.com/ghostvault-labs/ghostvault/internal/core/ports/driven"
)

// Ensure ChunkStore implements the interfaces.
var (
	_ driven.ChunkStore     = (*ChunkStore)(nil)
	_ driven.VectorSearcher = (*ChunkStore)(nil)
)

// ChunkStore is an in-memory implementation of driven.ChunkStore.
type ChunkStore struct {
	mu     sync.RWMutex
	chunks map[string]domain.ChunkRecord
	order  []string
}

// NewChunkStore creates a new in-memory chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		chunks: make(map[string]domain.ChunkRecord),
	}
}

// InsertChunks stores or updates chunks.
func (s *ChunkStore) InsertChunks(_ context.Context, chunks []domain.ChunkRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, chunk := range chunks {
		if _, exists := s.chunks[chunk.ID]; !exists {
			s.order = append(s.order, chunk.ID)
		}
		s.chunks[chunk.ID] = chunk
	}
	return nil
}

// GetAllMetadata returns the ID and metadata of every chunk in
// insertion order.
func (s *ChunkStore) GetAllMetadata(_ context.Context) ([]domain.ChunkInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	infos := make([]domain.ChunkInfo, 0, len(s.order))
	for _, id := range s.order {
		chunk := s.chunks[id]
		infos = append(infos, domain.ChunkInfo{ID: chunk.ID, Metadata: chunk.Metadata})
	}
	return infos, nil
}

// DeleteByIDs removes the chunks with the given IDs.
func (s *ChunkStore) DeleteByIDs(_ context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
		delete(s.chunks, id)
	}
	kept := s.order[:0]
	for _, id := range s.order {
		if _, ok := drop[id]; !ok {
			kept = append(kept, id)
		}
	}
	s.order = kept
	return nil
}

// Count returns the number of stored chunks.
func (s *ChunkStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks), nil
}

// Close is a no-op.
func (s *ChunkStore) Close() error { return nil }

// Search returns up to topK chunks whose cosine similarity to
// embedding is at least cutoff, best first.
func (s *ChunkStore) Search(_ context.Context, embedding []float32, topK int, cutoff float64) ([]driven.SearchHit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var hits []driven.SearchHit
	for _, id := range s.order {
		chunk := s.chunks[id]
		score := cosineSimilarity(embedding, chunk.Embedding)
		if score < cutoff {
			continue
		}
		hits = append(hits, driven.SearchHit{Chunk: chunk, Score: score})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if topK > 0 && len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
