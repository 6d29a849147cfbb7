package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/ghostvault-labs/ghostvault/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/ghostvault-labs/ghostvault/internal/core/domain"
	"github.com/ghostvault-labs/ghostvault/internal/core/ports/driven"
)

// Ensure Store implements the interfaces.
var (
	_ driven.ChunkStore     = (*Store)(nil)
	_ driven.VectorSearcher = (*Store)(nil)
)

// Store is a SQLite-backed chunk store with brute-force vector search.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates (or opens) the collection database under dataDir
// and runs pending migrations. If dataDir is empty, defaults to
// ~/.ghostvault/data.
func NewStore(dataDir, collection string) (*Store, error) {
	dbPath, err := databasePath(dataDir, collection)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	return open(dbPath)
}

// OpenStore opens an existing collection database. It returns
// domain.ErrCollectionNotFound when the collection has never been
// created, so callers can tell the user to run ingestion first.
func OpenStore(dataDir, collection string) (*Store, error) {
	dbPath, err := databasePath(dataDir, collection)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: collection %q", domain.ErrCollectionNotFound, collection)
		}
		return nil, fmt.Errorf("checking collection database: %w", err)
	}

	return open(dbPath)
}

func databasePath(dataDir, collection string) (string, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".ghostvault", "data")
	}
	if collection == "" {
		collection = "ghostvault"
	}
	return filepath.Join(dataDir, collection+".db"), nil
}

func open(dbPath string) (*Store, error) {
	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", domain.ErrStoreUnavailable, err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: running migrations: %v", domain.ErrStoreUnavailable, err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// InsertChunks stores chunks in a single transaction.
func (s *Store) InsertChunks(ctx context.Context, chunks []domain.ChunkRecord) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", domain.ErrStoreUnavailable, err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, text, embedding, metadata)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			text = excluded.text,
			embedding = excluded.embedding,
			metadata = excluded.metadata
	`)
	if err != nil {
		return fmt.Errorf("%w: preparing statement: %v", domain.ErrStoreUnavailable, err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		metadataJSON, err := json.Marshal(chunk.Metadata)
		if err != nil {
			return fmt.Errorf("marshalling chunk metadata: %w", err)
		}

		embeddingBlob := float32SliceToBytes(chunk.Embedding)

		if _, err := stmt.ExecContext(ctx, chunk.ID, chunk.Text,
			embeddingBlob, string(metadataJSON)); err != nil {
			return fmt.Errorf("%w: saving chunk: %v", domain.ErrStoreUnavailable, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing transaction: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// GetAllMetadata returns the ID and metadata of every chunk.
func (s *Store) GetAllMetadata(ctx context.Context) ([]domain.ChunkInfo, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, metadata FROM chunks")
	if err != nil {
		return nil, fmt.Errorf("%w: querying chunk metadata: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var infos []domain.ChunkInfo //nolint:prealloc // size unknown from query
	for rows.Next() {
		var info domain.ChunkInfo
		var metadataJSON string
		if err := rows.Scan(&info.ID, &metadataJSON); err != nil {
			return nil, fmt.Errorf("%w: scanning chunk metadata: %v", domain.ErrStoreUnavailable, err)
		}
		if metadataJSON != "" {
			if err := json.Unmarshal([]byte(metadataJSON), &info.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshaling chunk metadata: %w", err)
			}
		}
		infos = append(infos, info)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating chunk metadata: %v", domain.ErrStoreUnavailable, err)
	}

	return infos, nil
}

// DeleteByIDs removes the chunks with the given IDs.
func (s *Store) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	query := fmt.Sprintf("DELETE FROM chunks WHERE id IN (%s)", placeholders)
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: deleting chunks: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Count returns the number of stored chunks.
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	row := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks")
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: counting chunks: %v", domain.ErrStoreUnavailable, err)
	}
	return count, nil
}

// Search scans all embeddings and returns up to topK chunks whose
// cosine similarity to embedding is at least cutoff, best first.
func (s *Store) Search(ctx context.Context, embedding []float32, topK int, cutoff float64) ([]driven.SearchHit, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, text, embedding, metadata FROM chunks")
	if err != nil {
		return nil, fmt.Errorf("%w: querying chunks: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var hits []driven.SearchHit
	for rows.Next() {
		var chunk domain.ChunkRecord
		var embeddingBlob []byte
		var metadataJSON string
		if err := rows.Scan(&chunk.ID, &chunk.Text, &embeddingBlob, &metadataJSON); err != nil {
			return nil, fmt.Errorf("%w: scanning chunk: %v", domain.ErrStoreUnavailable, err)
		}

		chunk.Embedding = bytesToFloat32Slice(embeddingBlob)
		if metadataJSON != "" {
			if err := json.Unmarshal([]byte(metadataJSON), &chunk.Metadata); err != nil {
				return nil, fmt.Errorf("unmarshaling chunk metadata: %w", err)
			}
		}

		score := cosineSimilarity(embedding, chunk.Embedding)
		if score < cutoff {
			continue
		}
		hits = append(hits, driven.SearchHit{Chunk: chunk, Score: score})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating chunks: %v", domain.ErrStoreUnavailable, err)
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if topK > 0 && len(hits) > topK {
		hits = hits[:topK]
	}
	return hits, nil
}

// cosineSimilarity returns the cosine of the angle between a and b, or
// 0 when either vector is empty, mismatched, or zero-length.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// float32SliceToBytes converts a []float32 to a byte slice for storage.
func float32SliceToBytes(floats []float32) []byte {
	if len(floats) == 0 {
		return nil
	}
	buf := make([]byte, len(floats)*4)
	for i, f := range floats {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// bytesToFloat32Slice converts a byte slice back to []float32.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	floats := make([]float32, len(data)/4)
	for i := range floats {
		floats[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return floats
}
