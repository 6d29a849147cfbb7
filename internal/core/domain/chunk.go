package domain

import "path/filepath"

// Metadata keys written by the ingestion pipeline and read back during
// aggregation and citation. Keys are stored as-is in the chunk store.
const (
	MetaFilePath     = "file_path"
	MetaFileName     = "file_name"
	MetaPageLabel    = "page_label"
	MetaPageNumber   = "page_number"
	MetaPage         = "page"
	MetaLastModified = "last_modified"
)

// UnknownDocument is the identity assigned to chunks whose metadata
// carries neither a file path nor a file name.
const UnknownDocument = "Unknown"

// ChunkRecord is a stored unit of a document: its text, vector
// embedding, and source metadata.
type ChunkRecord struct {
	// ID is the unique identifier for the chunk.
	ID string

	// Text is the chunk content.
	Text string

	// Embedding is the vector representation for semantic search.
	Embedding []float32

	// Metadata contains source attribution key-value pairs.
	Metadata map[string]any
}

// ChunkInfo is the id-plus-metadata projection returned by metadata
// scans. Aggregation never needs chunk text or embeddings.
type ChunkInfo struct {
	ID       string
	Metadata map[string]any
}

// DocumentKey derives the document identity for a chunk: the basename
// of file_path, falling back to file_name, falling back to
// UnknownDocument. Two files with the same basename in different
// directories share an identity; callers relying on this aggregation
// must account for it.
func DocumentKey(metadata map[string]any) string {
	path := metaString(metadata, MetaFilePath)
	if path == "" {
		path = metaString(metadata, MetaFileName)
	}
	if path == "" {
		return UnknownDocument
	}
	return filepath.Base(path)
}

// SourcePath returns the original path recorded for a chunk, preferring
// file_path over file_name.
func SourcePath(metadata map[string]any) string {
	if path := metaString(metadata, MetaFilePath); path != "" {
		return path
	}
	if name := metaString(metadata, MetaFileName); name != "" {
		return name
	}
	return UnknownDocument
}

// PageOf returns the page identifier for a chunk, preferring page_label
// over page_number over page. Returns empty when no page key is set.
func PageOf(metadata map[string]any) string {
	for _, key := range []string{MetaPageLabel, MetaPageNumber, MetaPage} {
		if v, ok := metadata[key]; ok {
			if s := anyToString(v); s != "" {
				return s
			}
		}
	}
	return ""
}

func metaString(metadata map[string]any, key string) string {
	v, ok := metadata[key]
	if !ok {
		return ""
	}
	return anyToString(v)
}
