// Package sqlite provides a SQLite-backed implementation of the chunk
// store and vector search ports.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that
// requires no CGO, enabling easy cross-compilation. Embeddings are stored as
// little-endian float32 blobs and similarity search is a brute-force cosine
// scan, which is plenty for collections of personal-document size.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
// # Data Location
//
// By default, the database is stored at ~/.ghostvault/data/<collection>.db
//
// # Thread Safety
//
// All operations are thread-safe. The store uses database-level locking provided
// by SQLite in WAL mode.
package sqlite
