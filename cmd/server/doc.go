// Package main is the entry point for the ZenExplorer server.
//
// The server hosts one file-manager workspace: an in-memory (or
// host-backed) C: drive, media drives, a recycle bin, a clipboard and an
// undo stack shared by every explorer window. Clients drive it through
// the service registry:
//
//	POST /services/execute   {"tool_id": "explorer.navigate", "params": {"path": "/C:"}}
//	GET  /stream             WebSocket for events and tool execution
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# In-memory C: drive
//	./server -port 8000
//
//	# Back C: with a host directory, colored debug logs
//	./server -c-root /srv/zen -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
