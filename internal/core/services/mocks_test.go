package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/ghostvault-labs/ghostvault/internal/core/domain"
	"github.com/ghostvault-labs/ghostvault/internal/core/ports/driven"
)

// fakeChunkStore is an in-memory driven.ChunkStore with scriptable
// failures for exercising error paths.
type fakeChunkStore struct {
	mu     sync.Mutex
	chunks []domain.ChunkRecord

	metadataErr error
	insertErr   error
	insertFails int // fail this many inserts before succeeding
	insertCalls int
}

var _ driven.ChunkStore = (*fakeChunkStore)(nil)

func (s *fakeChunkStore) GetAllMetadata(_ context.Context) ([]domain.ChunkInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.metadataErr != nil {
		return nil, s.metadataErr
	}
	infos := make([]domain.ChunkInfo, len(s.chunks))
	for i, chunk := range s.chunks {
		infos[i] = domain.ChunkInfo{ID: chunk.ID, Metadata: chunk.Metadata}
	}
	return infos, nil
}

func (s *fakeChunkStore) InsertChunks(_ context.Context, chunks []domain.ChunkRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.insertCalls++
	if s.insertErr != nil {
		return s.insertErr
	}
	if s.insertFails > 0 {
		s.insertFails--
		return fmt.Errorf("transient insert failure")
	}
	s.chunks = append(s.chunks, chunks...)
	return nil
}

func (s *fakeChunkStore) DeleteByIDs(_ context.Context, ids []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := s.chunks[:0]
	for _, chunk := range s.chunks {
		if _, ok := drop[chunk.ID]; !ok {
			kept = append(kept, chunk)
		}
	}
	s.chunks = kept
	return nil
}

func (s *fakeChunkStore) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.chunks), nil
}

func (s *fakeChunkStore) Close() error { return nil }

// fakeEmbedder returns fixed-size embeddings or a scripted error.
type fakeEmbedder struct {
	err   error
	calls int
}

var _ driven.EmbeddingService = (*fakeEmbedder)(nil)

func (e *fakeEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	return []float32{1, 0, 0}, nil
}

func (e *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		emb, err := e.Embed(ctx, texts[i])
		if err != nil {
			return nil, err
		}
		out[i] = emb
	}
	return out, nil
}

func (e *fakeEmbedder) Dimensions() int              { return 3 }
func (e *fakeEmbedder) ModelName() string            { return "fake-embed" }
func (e *fakeEmbedder) Ping(_ context.Context) error { return nil }
func (e *fakeEmbedder) Close() error                 { return nil }

// fakeLoader returns a scripted document or error.
type fakeLoader struct {
	doc *domain.ExtractedDocument
	err error
}

var _ driven.DocumentLoader = (*fakeLoader)(nil)

func (l *fakeLoader) Load(_ context.Context, _ string) (*domain.ExtractedDocument, error) {
	if l.err != nil {
		return nil, l.err
	}
	return l.doc, nil
}

func (l *fakeLoader) Extensions() []string { return []string{".pdf", ".txt"} }

// fakeChunker emits one chunk per page.
type fakeChunker struct{}

var _ driven.Chunker = (*fakeChunker)(nil)

func (fakeChunker) Chunk(doc *domain.ExtractedDocument) []domain.ChunkRecord {
	chunks := make([]domain.ChunkRecord, 0, len(doc.Pages))
	for i, page := range doc.Pages {
		chunks = append(chunks, domain.ChunkRecord{
			ID:   fmt.Sprintf("%s-%d", doc.FileName, i),
			Text: page.Text,
			Metadata: map[string]any{
				domain.MetaFilePath:  doc.FilePath,
				domain.MetaFileName:  doc.FileName,
				domain.MetaPageLabel: page.Label,
			},
		})
	}
	return chunks
}

// fakeRetriever returns scripted hits or an error.
type fakeRetriever struct {
	hits      []driven.SearchHit
	err       error
	lastQuery string
}

var _ driven.Retriever = (*fakeRetriever)(nil)

func (r *fakeRetriever) Retrieve(_ context.Context, query string, _ int, _ float64) ([]driven.SearchHit, error) {
	r.lastQuery = query
	if r.err != nil {
		return nil, r.err
	}
	return r.hits, nil
}

// fakeLLM echoes a canned answer and records the prompt.
type fakeLLM struct {
	answer     string
	err        error
	lastPrompt string
}

var _ driven.LLMService = (*fakeLLM)(nil)

func (l *fakeLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	l.lastPrompt = prompt
	if l.err != nil {
		return "", l.err
	}
	return l.answer, nil
}

func (l *fakeLLM) ModelName() string            { return "fake-llm" }
func (l *fakeLLM) Ping(_ context.Context) error { return nil }
func (l *fakeLLM) Close() error                 { return nil }

// fakePersonaStore serves instructions from a map.
type fakePersonaStore struct {
	prompts map[string]string
}

var _ driven.PersonaStore = (*fakePersonaStore)(nil)

func (s *fakePersonaStore) Load(name string) (string, error) {
	if prompt, ok := s.prompts[name]; ok {
		return prompt, nil
	}
	return "", fmt.Errorf("persona %q: %w", name, domain.ErrNotFound)
}

func (s *fakePersonaStore) Reload()     {}
func (s *fakePersonaStore) Dir() string { return "" }
