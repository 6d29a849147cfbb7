package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ghostvault-labs/ghostvault/internal/core/domain"
	"github.com/ghostvault-labs/ghostvault/internal/core/ports/driving"
)

// FormatDocumentList renders documents as a plain-text block shared by
// the CLI and the chat commands.
func FormatDocumentList(docs []domain.DocumentView) string {
	if len(docs) == 0 {
		return "No documents indexed.\n\nAdd documents to the watched directory to get started."
	}

	var b strings.Builder
	b.WriteString("Indexed Documents\n\n")
	for _, doc := range docs {
		fmt.Fprintf(&b, "%s\n", doc.FileName)
		fmt.Fprintf(&b, "  %d chunks, %d pages\n\n", doc.ChunkCount, doc.PageCount())
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatStats renders collection statistics as a plain-text block.
func FormatStats(stats domain.CollectionStats) string {
	var b strings.Builder
	b.WriteString("Knowledge Base Statistics\n\n")
	fmt.Fprintf(&b, "Documents:    %d\n", stats.DocumentCount)
	fmt.Fprintf(&b, "Total Chunks: %d\n", stats.TotalChunks)
	fmt.Fprintf(&b, "Total Pages:  %d\n", stats.TotalPages)

	if len(stats.FileTypes) > 0 {
		b.WriteString("\nBy File Type\n")
		exts := make([]string, 0, len(stats.FileTypes))
		for ext := range stats.FileTypes {
			exts = append(exts, ext)
		}
		sort.Strings(exts)
		for _, ext := range exts {
			display := ext
			if display == "" {
				display = "no extension"
			}
			fmt.Fprintf(&b, "  %s: %d\n", display, stats.FileTypes[ext])
		}
	}

	fmt.Fprintf(&b, "\nStatus: %s", strings.ToUpper(stats.Status))
	if stats.Err != "" {
		fmt.Fprintf(&b, " (%s)", stats.Err)
	}
	return b.String()
}

// FormatAnswer renders an answer followed by its sources section.
// Command answers are returned as-is.
func FormatAnswer(answer *driving.Answer) string {
	if answer.Command {
		return answer.Text
	}

	var b strings.Builder
	b.WriteString(answer.Text)
	b.WriteString("\n\n---\n\nSources\n\n")
	if len(answer.Citations) == 0 {
		b.WriteString("No sources retrieved.")
		return b.String()
	}
	for _, c := range answer.Citations {
		fmt.Fprintf(&b, "  - %s (Page %s)\n", c.FileName, c.Page)
	}
	return strings.TrimRight(b.String(), "\n")
}
