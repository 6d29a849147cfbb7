package domain

import (
	"path/filepath"
	"strings"
)

// Collection status values reported by Stats.
const (
	StatusActive = "active"
	StatusEmpty  = "empty"
	StatusError  = "error"
)

// CollectionStats summarises the indexed collection.
type CollectionStats struct {
	// DocumentCount is the number of distinct documents.
	DocumentCount int

	// TotalChunks is the number of stored chunks.
	TotalChunks int

	// TotalPages is the sum of distinct pages across documents.
	TotalPages int

	// FileTypes counts documents by lowercase file extension
	// (including the dot). Documents without an extension count
	// under the empty key.
	FileTypes map[string]int

	// Status is active, empty, or error.
	Status string

	// Err carries the failure detail when Status is error.
	Err string
}

// StatsFrom computes collection statistics from aggregated documents.
func StatsFrom(docs []DocumentView) CollectionStats {
	stats := CollectionStats{
		FileTypes: make(map[string]int),
		Status:    StatusEmpty,
	}

	for _, doc := range docs {
		stats.DocumentCount++
		stats.TotalChunks += doc.ChunkCount
		stats.TotalPages += doc.PageCount()
		ext := strings.ToLower(filepath.Ext(doc.FileName))
		stats.FileTypes[ext]++
	}

	if stats.TotalChunks > 0 {
		stats.Status = StatusActive
	}
	return stats
}
