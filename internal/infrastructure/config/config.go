package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	Explorer  ExplorerConfig
	Drives    DriveConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// CORSOrigins lists origins allowed to call the API
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int           `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst             int           `envconfig:"RATE_LIMIT_BURST" default:"200"`
	Enabled           bool          `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
	IdleTTL           time.Duration `envconfig:"RATE_LIMIT_IDLE_TTL" default:"5m"`
}

// ExplorerConfig holds file manager session settings.
type ExplorerConfig struct {
	StartPath   string `envconfig:"EXPLORER_START_PATH" default:"/C:"`
	RecyclePath string `envconfig:"EXPLORER_RECYCLE_PATH" default:"/C:/Recycled"`
	MRUSize     int    `envconfig:"EXPLORER_MRU_SIZE" default:"10"`
	EventBuffer int    `envconfig:"EXPLORER_EVENT_BUFFER" default:"64"`

	// AutoConfirm answers confirmation prompts with "yes" for headless use
	AutoConfirm bool `envconfig:"EXPLORER_AUTO_CONFIRM" default:"true"`

	// Hidden lists doublestar patterns hidden from folder listings
	Hidden []string `envconfig:"EXPLORER_HIDDEN" default:".metadata.json"`

	// SessionDir stores saved window sessions; empty keeps them in memory
	SessionDir string `envconfig:"EXPLORER_SESSION_DIR" default:""`
}

// DriveConfig holds drive backend configuration.
type DriveConfig struct {
	// CRoot backs the C: drive with a host directory; empty keeps it in memory
	CRoot string `envconfig:"C_DRIVE_ROOT" default:""`

	// Reserved letters are never handed out to removable disks
	Reserved []string `envconfig:"DRIVE_LETTERS_RESERVED" default:"A,B,C,E"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        "8000",
			Host:        "0.0.0.0",
			CORSOrigins: []string{"*"},
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           true,
			IdleTTL:           5 * time.Minute,
		},
		Explorer: ExplorerConfig{
			StartPath:   "/C:",
			RecyclePath: "/C:/Recycled",
			MRUSize:     10,
			EventBuffer: 64,
			AutoConfirm: true,
			Hidden:      []string{".metadata.json"},
		},
		Drives: DriveConfig{
			CRoot:    "",
			Reserved: []string{"A", "B", "C", "E"},
		},
	}
}
