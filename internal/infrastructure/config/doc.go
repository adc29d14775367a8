// Package config provides 12-factor configuration management for the
// file manager service.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - Explorer: Start folder, recycle bin location, MRU size, hidden patterns
//   - Drives: Host directory for C: and letters reserved from removable disks
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
//   - EXPLORER_START_PATH, EXPLORER_RECYCLE_PATH, EXPLORER_MRU_SIZE,
//     EXPLORER_EVENT_BUFFER, EXPLORER_AUTO_CONFIRM, EXPLORER_HIDDEN
//   - C_DRIVE_ROOT, DRIVE_LETTERS_RESERVED
package config
