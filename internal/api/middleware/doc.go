// Package middleware provides the Gin middleware of the explorer backend:
// CORS for the browser front end and per-client rate limiting.
package middleware
