package driving

import "context"

// Ingestor indexes source files into the chunk collection.
type Ingestor interface {
	// IndexFile loads, chunks, embeds, and stores one file. Files with
	// disallowed extensions and files already processed in this run are
	// skipped silently. The file is marked processed only on success.
	IndexFile(ctx context.Context, path string) error

	// IsProcessed reports whether path was successfully indexed during
	// this run.
	IsProcessed(path string) bool
}
