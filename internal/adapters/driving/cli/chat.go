package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/ghostvault-labs/ghostvault/internal/adapters/driving/tui"
	"github.com/ghostvault-labs/ghostvault/internal/core/domain"
)

var chatPersona string

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Starts an interactive Q&A session over the indexed documents.

Commands inside the session:
  /list, /docs    list indexed documents
  /stats          show collection statistics
  /delete <file>  remove a document from the index
  /exit           leave the session

Controls:
  Enter  - send
  Ctrl+C - quit`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().StringVarP(&chatPersona, "persona", "p", domain.DefaultPersona,
		"answer persona (the-architect, the-executive, the-skeptic)")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if newSession == nil {
		return errors.New("chat service not configured")
	}

	// Panic recovery keeps the terminal usable and shows the stack.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in chat UI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ctx := cmd.Context()
	session, closeFn, err := newSession(ctx, chatPersona)
	if err != nil {
		if reportMissingCollection(cmd, err) {
			return nil
		}
		return err
	}
	defer closeFn() //nolint:errcheck

	return tui.Run(ctx, session, tui.Options{StreamDelay: streamDelay})
}
