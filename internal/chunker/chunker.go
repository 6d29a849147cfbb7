// Package chunker provides a fixed-size text chunking splitter.
package chunker

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ghostvault-labs/ghostvault/internal/core/domain"
	"github.com/ghostvault-labs/ghostvault/internal/core/ports/driven"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// Splitter splits extracted documents into fixed-size chunks, one run
// per page so every chunk keeps its page label.
// It implements the Chunker interface.
type Splitter struct {
	chunkSize int
	overlap   int
}

var _ driven.Chunker = (*Splitter)(nil)

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		if size > 0 {
			s.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		if overlap >= 0 {
			s.overlap = overlap
		}
	}
}

// New creates a new splitter with the given options.
func New(opts ...Option) *Splitter {
	s := &Splitter{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	// Ensure overlap doesn't exceed chunk size
	if s.overlap >= s.chunkSize {
		s.overlap = s.chunkSize / 4
	}

	return s
}

// Chunk splits each page of doc into chunks carrying the source
// metadata used for aggregation and citations. Pages without usable
// text produce no chunks.
func (s *Splitter) Chunk(doc *domain.ExtractedDocument) []domain.ChunkRecord {
	var chunks []domain.ChunkRecord

	for _, page := range doc.Pages {
		text := page.Text
		if strings.TrimSpace(text) == "" {
			continue
		}

		textLen := len(text)
		start := 0

		for start < textLen {
			end := start + s.chunkSize
			if end > textLen {
				end = textLen
			}

			chunks = append(chunks, domain.ChunkRecord{
				ID:   uuid.New().String(),
				Text: text[start:end],
				Metadata: map[string]any{
					domain.MetaFilePath:     doc.FilePath,
					domain.MetaFileName:     doc.FileName,
					domain.MetaPageLabel:    page.Label,
					domain.MetaLastModified: doc.LastModified.Format(time.RFC3339),
				},
			})

			// Move start forward by (chunkSize - overlap)
			start += s.chunkSize - s.overlap

			// Avoid infinite loop for edge cases
			if s.chunkSize <= s.overlap {
				break
			}
		}
	}

	return chunks
}
