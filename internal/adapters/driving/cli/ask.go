package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ghostvault-labs/ghostvault/internal/core/domain"
	"github.com/ghostvault-labs/ghostvault/internal/core/services"
)

var askPersona string

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a single question",
	Long: `Asks one question against the indexed documents and prints the answer
with its sources. For an interactive session use "ghostvault chat".`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askPersona, "persona", "p", domain.DefaultPersona,
		"answer persona (the-architect, the-executive, the-skeptic)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if newSession == nil {
		return errors.New("chat service not configured")
	}

	ctx := cmd.Context()
	session, closeFn, err := newSession(ctx, askPersona)
	if err != nil {
		if reportMissingCollection(cmd, err) {
			return nil
		}
		return err
	}
	defer closeFn() //nolint:errcheck

	answer, err := session.Ask(ctx, args[0])
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	cmd.Println(services.FormatAnswer(answer))
	return nil
}
