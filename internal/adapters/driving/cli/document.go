package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ghostvault-labs/ghostvault/internal/core/domain"
	"github.com/ghostvault-labs/ghostvault/internal/core/services"
)

var documentClearForce bool

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage indexed documents",
	Long:  `List, inspect, or remove documents from the index.`,
}

var documentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed documents",
	RunE:  runDocumentList,
}

var documentInfoCmd = &cobra.Command{
	Use:   "info [file-name]",
	Short: "Show document details",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentInfo,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [file-name]",
	Short: "Remove a document from the index",
	Long: `Removes all indexed chunks belonging to the named document.
The file itself is not touched; dropping it into the watched directory
again re-indexes it.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentDelete,
}

var documentClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every document from the index",
	RunE:  runDocumentClear,
}

var documentStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show collection statistics",
	RunE:  runDocumentStats,
}

func init() {
	documentClearCmd.Flags().BoolVar(&documentClearForce, "force", false,
		"clear without confirmation")

	documentCmd.AddCommand(documentListCmd)
	documentCmd.AddCommand(documentInfoCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	documentCmd.AddCommand(documentClearCmd)
	documentCmd.AddCommand(documentStatsCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentList(cmd *cobra.Command, _ []string) error {
	if newLibrary == nil {
		return errors.New("library service not configured")
	}

	ctx := cmd.Context()
	library, closeFn, err := newLibrary(ctx)
	if err != nil {
		if reportMissingCollection(cmd, err) {
			return nil
		}
		return err
	}
	defer closeFn() //nolint:errcheck

	docs, err := library.ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("listing documents: %w", err)
	}

	cmd.Println(services.FormatDocumentList(docs))
	return nil
}

func runDocumentInfo(cmd *cobra.Command, args []string) error {
	if newLibrary == nil {
		return errors.New("library service not configured")
	}

	ctx := cmd.Context()
	library, closeFn, err := newLibrary(ctx)
	if err != nil {
		if reportMissingCollection(cmd, err) {
			return nil
		}
		return err
	}
	defer closeFn() //nolint:errcheck

	doc, err := library.GetDocumentInfo(ctx, args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			cmd.Printf("Document not found: %s\n", args[0])
			return nil
		}
		return fmt.Errorf("document info: %w", err)
	}

	cmd.Printf("%s\n", doc.FileName)
	cmd.Printf("  Path:   %s\n", doc.FilePath)
	cmd.Printf("  Chunks: %d\n", doc.ChunkCount)
	cmd.Printf("  Pages:  %d\n", doc.PageCount())
	// Size comes from the file itself; the source may have moved since
	// indexing.
	if info, err := os.Stat(doc.FilePath); err == nil {
		cmd.Printf("  Size:   %s\n", domain.FormatFileSize(info.Size()))
	}
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if newLibrary == nil {
		return errors.New("library service not configured")
	}

	ctx := cmd.Context()
	library, closeFn, err := newLibrary(ctx)
	if err != nil {
		if reportMissingCollection(cmd, err) {
			return nil
		}
		return err
	}
	defer closeFn() //nolint:errcheck

	removed, err := library.DeleteDocument(ctx, args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			cmd.Printf("Document not found: %s\n", args[0])
			return nil
		}
		return fmt.Errorf("deleting document: %w", err)
	}

	cmd.Printf("Deleted %s (%d chunks removed).\n", args[0], removed)
	return nil
}

func runDocumentClear(cmd *cobra.Command, _ []string) error {
	if newLibrary == nil {
		return errors.New("library service not configured")
	}
	if !documentClearForce {
		return errors.New("refusing to clear the index without --force")
	}

	ctx := cmd.Context()
	library, closeFn, err := newLibrary(ctx)
	if err != nil {
		if reportMissingCollection(cmd, err) {
			return nil
		}
		return err
	}
	defer closeFn() //nolint:errcheck

	removed, err := library.ClearAll(ctx)
	if err != nil {
		return fmt.Errorf("clearing index: %w", err)
	}

	cmd.Printf("Cleared the index (%d chunks removed).\n", removed)
	return nil
}

func runDocumentStats(cmd *cobra.Command, _ []string) error {
	if newLibrary == nil {
		return errors.New("library service not configured")
	}

	ctx := cmd.Context()
	library, closeFn, err := newLibrary(ctx)
	if err != nil {
		if reportMissingCollection(cmd, err) {
			return nil
		}
		return err
	}
	defer closeFn() //nolint:errcheck

	cmd.Println(services.FormatStats(library.Stats(ctx)))
	return nil
}
