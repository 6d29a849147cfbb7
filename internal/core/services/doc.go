// Package services implements GhostVault's use cases: the document
// library (aggregation over chunk metadata), the indexer (load, chunk,
// embed, store with retry), and the chat session (persona-prefixed
// retrieval question answering with slash-command interception).
//
// Services depend only on domain types and ports. Adapters are
// injected at construction.
package services
