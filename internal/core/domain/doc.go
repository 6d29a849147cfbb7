// Package domain defines the core business entities for GhostVault.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ChunkRecord: A stored chunk with text, embedding, and metadata
//   - DocumentView: A document reconstructed from its chunks' metadata
//   - Citation: Source attribution for a retrieved chunk
//   - CollectionStats: A summary of the indexed collection
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
