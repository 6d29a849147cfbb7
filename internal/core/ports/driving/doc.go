// Package driving defines inbound ports: the use cases GhostVault
// exposes to its CLI and TUI adapters (library management, chat
// sessions, ingestion).
package driving
