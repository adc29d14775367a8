// Package server wires the explorer workspace, the service registry and
// the HTTP and WebSocket transports into one runnable server.
package server
