package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ghostvault-labs/ghostvault/internal/core/domain"
	"github.com/ghostvault-labs/ghostvault/internal/core/ports/driven"
	"github.com/ghostvault-labs/ghostvault/internal/core/ports/driving"
	"github.com/ghostvault-labs/ghostvault/internal/logger"
)

// Ensure ChatSession implements the interface.
var _ driving.ChatSession = (*ChatSession)(nil)

// ChatConfig configures a chat session.
type ChatConfig struct {
	// Persona selects the answer style. Unknown names fall back to
	// domain.DefaultPersona.
	Persona string

	// TopK is the number of chunks retrieved per question.
	TopK int

	// Cutoff is the minimum similarity score for retrieved chunks.
	Cutoff float64
}

// ChatSession answers questions against the indexed collection.
// The persona instruction is resolved once at session start; each turn
// prefixes it to the user question before retrieval.
type ChatSession struct {
	persona     string
	instruction string
	topK        int
	cutoff      float64

	library   driving.LibraryService
	retriever driven.Retriever
	llm       driven.LLMService
}

// NewChatSession resolves the persona and builds a session.
func NewChatSession(
	cfg ChatConfig,
	personas driven.PersonaStore,
	library driving.LibraryService,
	retriever driven.Retriever,
	llm driven.LLMService,
) (*ChatSession, error) {
	persona := cfg.Persona
	if !domain.IsKnownPersona(persona) {
		persona = domain.DefaultPersona
	}

	instruction, err := personas.Load(persona)
	if err != nil {
		return nil, fmt.Errorf("loading persona %q: %w", persona, err)
	}

	topK := cfg.TopK
	if topK <= 0 {
		topK = 5
	}

	return &ChatSession{
		persona:     persona,
		instruction: instruction,
		topK:        topK,
		cutoff:      cfg.Cutoff,
		library:     library,
		retriever:   retriever,
		llm:         llm,
	}, nil
}

// Persona returns the resolved persona name.
func (s *ChatSession) Persona() string {
	return s.persona
}

// Welcome returns the session banner. A missing collection produces the
// ingestion remedy instead of the document count.
func (s *ChatSession) Welcome(ctx context.Context) string {
	var b strings.Builder
	b.WriteString("GhostVault System Online\n\n")
	b.WriteString(domain.PersonaDisplayName(s.persona))
	b.WriteString("\n\n")

	stats := s.library.Stats(ctx)
	switch {
	case stats.Status == domain.StatusError:
		b.WriteString("Knowledge base not available: " + stats.Err + "\n")
		b.WriteString("Run the ingestion watcher first:\n\n")
		b.WriteString("    ghostvault watch\n\n")
		b.WriteString("Then place documents in the watched directory.")
		return b.String()
	case stats.DocumentCount == 1:
		b.WriteString("1 document indexed\n\n")
	case stats.DocumentCount > 1:
		fmt.Fprintf(&b, "%d documents indexed\n\n", stats.DocumentCount)
	}

	b.WriteString("How can I assist you today?")
	return b.String()
}

// Ask processes one user turn.
func (s *ChatSession) Ask(ctx context.Context, text string) (*driving.Answer, error) {
	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)

	// Slash commands bypass retrieval entirely.
	switch {
	case strings.HasPrefix(lower, "/list") || lower == "/docs":
		docs, err := s.library.ListDocuments(ctx)
		if err != nil {
			return nil, err
		}
		return &driving.Answer{Text: FormatDocumentList(docs), Command: true}, nil

	case strings.HasPrefix(lower, "/stats") || lower == "/stat":
		return &driving.Answer{Text: FormatStats(s.library.Stats(ctx)), Command: true}, nil

	case strings.HasPrefix(lower, "/delete "):
		fileName := strings.TrimSpace(trimmed[len("/delete"):])
		count, err := s.library.DeleteDocument(ctx, fileName)
		if err != nil {
			return &driving.Answer{
				Text:    fmt.Sprintf("Could not delete %q. Document may not exist.", fileName),
				Command: true,
			}, nil
		}
		return &driving.Answer{
			Text:    fmt.Sprintf("Removed %q (%d chunks).", fileName, count),
			Command: true,
		}, nil
	}

	fullQuery := s.instruction + "\n\nUser Question: " + text

	logger.Info("processing query with persona: %s", s.persona)

	hits, err := s.retriever.Retrieve(ctx, fullQuery, s.topK, s.cutoff)
	if err != nil {
		return nil, fmt.Errorf("%w: retrieval failed: %v", domain.ErrModelUnavailable, err)
	}

	answer, err := s.llm.Generate(ctx, buildPrompt(fullQuery, hits), driven.GenerateOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: generation failed: %v", domain.ErrModelUnavailable, err)
	}

	citations := make([]domain.Citation, 0, len(hits))
	for _, hit := range hits {
		citations = append(citations, domain.CitationFrom(hit.Chunk.Metadata))
	}
	citations = domain.DedupCitations(citations)
	logger.Info("retrieved %d unique sources for query", len(citations))

	return &driving.Answer{Text: answer, Citations: citations}, nil
}

// buildPrompt embeds the retrieved chunk texts ahead of the query so
// the model answers from the documents.
func buildPrompt(fullQuery string, hits []driven.SearchHit) string {
	if len(hits) == 0 {
		return fullQuery
	}

	var b strings.Builder
	b.WriteString("Context information is below.\n")
	b.WriteString("---------------------\n")
	for _, hit := range hits {
		b.WriteString(hit.Chunk.Text)
		b.WriteString("\n\n")
	}
	b.WriteString("---------------------\n")
	b.WriteString("Answer using the context above.\n\n")
	b.WriteString(fullQuery)
	return b.String()
}
