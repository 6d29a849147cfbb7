package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ghostvault-labs/ghostvault/internal/core/ports/driving"
)

// Run starts the chat UI and blocks until the user quits or the
// context is cancelled.
func Run(ctx context.Context, session driving.ChatSession, opts Options) error {
	if opts.StreamDelay == 0 {
		opts.StreamDelay = DefaultStreamDelay
	}

	model := NewModel(ctx, session, opts)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("chat UI: %w", err)
	}
	return nil
}
