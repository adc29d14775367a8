// Package http provides the REST handlers of the explorer backend.
//
// Endpoints:
//   - GET  /, /health: liveness and component stats
//   - GET  /services, POST /services/discover, POST /services/execute:
//     tool catalog and dispatch through the service registry
//   - GET  /explorer/windows, GET /explorer/windows/:id/state,
//     GET /explorer/windows/:id/listing: read-only window snapshots
//   - GET  /metrics/json: metrics snapshot
//
// Every mutation goes through POST /services/execute so that the HTTP and
// WebSocket transports share one code path.
package http
