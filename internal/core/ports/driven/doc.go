// Package driven defines outbound ports: the contracts GhostVault's
// core services require from infrastructure adapters (chunk storage,
// document loading, embeddings, LLMs, persona and config stores).
//
// Adapters under internal/adapters/driven implement these interfaces;
// services under internal/core/services consume them.
package driven
