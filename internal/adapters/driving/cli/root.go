// Package cli implements the ghostvault command-line interface.
// Commands receive their services through Configure so the package
// stays free of construction and wiring concerns.
package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/ghostvault-labs/ghostvault/internal/core/domain"
	"github.com/ghostvault-labs/ghostvault/internal/core/ports/driven"
	"github.com/ghostvault-labs/ghostvault/internal/core/ports/driving"
	"github.com/ghostvault-labs/ghostvault/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var verboseFlag bool

// Dependencies carries the service factories the commands depend on.
// Factories defer construction until a command actually runs, so
// `ghostvault version` works without a database or a model backend.
// Each factory returns the service plus a close function.
type Dependencies struct {
	// Library opens the indexed collection for management commands.
	Library func(ctx context.Context) (driving.LibraryService, func() error, error)

	// Session starts a chat session with the given persona.
	Session func(ctx context.Context, persona string) (driving.ChatSession, func() error, error)

	// Watch runs the ingestion loop until the context is cancelled.
	Watch func(ctx context.Context) error

	// ConfigStore backs the config commands.
	ConfigStore driven.ConfigStore

	// StreamDelay paces the typewriter output in chat mode.
	StreamDelay time.Duration
}

var (
	newLibrary  func(ctx context.Context) (driving.LibraryService, func() error, error)
	newSession  func(ctx context.Context, persona string) (driving.ChatSession, func() error, error)
	runWatchFn  func(ctx context.Context) error
	configStore driven.ConfigStore
	streamDelay time.Duration
)

// Configure injects the services the commands depend on.
// Must be called before Execute.
func Configure(deps Dependencies) {
	newLibrary = deps.Library
	newSession = deps.Session
	runWatchFn = deps.Watch
	configStore = deps.ConfigStore
	streamDelay = deps.StreamDelay
}

var rootCmd = &cobra.Command{
	Use:   "ghostvault",
	Short: "Local document Q&A assistant",
	Long: `GhostVault watches a folder for documents, indexes them into a local
vector store, and answers questions about them through a local LLM.

Typical usage:
  ghostvault watch          index documents as they arrive
  ghostvault chat           interactive Q&A over indexed documents
  ghostvault ask "..."      one-shot question`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// reportMissingCollection turns a collection-not-found error into the
// ingestion remedy. Commands that need an existing index call it on
// their service factory error so a fresh install gets a hint instead
// of a raw error. Reports whether the error was handled.
func reportMissingCollection(cmd *cobra.Command, err error) bool {
	if !errors.Is(err, domain.ErrCollectionNotFound) {
		return false
	}
	cmd.Println("No documents indexed yet.")
	cmd.Println("Run the ingestion watcher first:")
	cmd.Println()
	cmd.Println("    ghostvault watch")
	cmd.Println()
	cmd.Println("Then place documents in the watched directory.")
	return true
}
