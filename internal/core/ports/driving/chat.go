package driving

import (
	"context"

	"github.com/ghostvault-labs/ghostvault/internal/core/domain"
)

// Answer is the outcome of one chat turn.
type Answer struct {
	// Text is the answer body, or the command output for intercepted
	// commands.
	Text string

	// Citations lists the deduplicated sources behind the answer.
	// Always empty for command turns.
	Citations []domain.Citation

	// Command is true when the turn was handled as a slash command and
	// no retrieval took place.
	Command bool
}

// ChatSession answers questions against the indexed collection using a
// fixed persona. Sessions survive backend failures: Ask returns an
// error for the failed turn and remains usable.
type ChatSession interface {
	// Ask processes one user turn: slash commands are intercepted,
	// anything else goes through retrieval and the LLM.
	Ask(ctx context.Context, text string) (*Answer, error)

	// Persona returns the resolved persona name for this session.
	Persona() string

	// Welcome returns the session banner shown at start.
	Welcome(ctx context.Context) string
}
