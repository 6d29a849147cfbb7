package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCollectionNotFound indicates the chunk collection has never
	// been created. The remedy is to run ingestion first.
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrStoreUnavailable indicates the chunk store cannot be reached
	// or queried.
	ErrStoreUnavailable = errors.New("store unavailable")

	// ErrExtractionFailed indicates a document produced no usable text.
	// The file is not marked processed so a later attempt can retry it.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrUnsupportedType indicates a file extension with no registered loader.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrModelUnavailable indicates the LLM or embedding backend is not
	// reachable. Query sessions survive this and report a remedy.
	ErrModelUnavailable = errors.New("model unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
