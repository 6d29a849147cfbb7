package cli

import (
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a directory and index documents",
	Long: `Watches the configured directory and indexes every supported document
placed in it. Existing files are indexed on startup; new files are picked
up as they arrive. Runs until interrupted.

Supported file types: .pdf, .txt, .md, .markdown`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	if runWatchFn == nil {
		return errors.New("watch service not configured")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := runWatchFn(ctx); err != nil {
		return err
	}

	cmd.Println("Watcher stopped.")
	return nil
}
