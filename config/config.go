package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

var (
	// ErrInvalidMode is returned when MODE names neither dev nor prod.
	ErrInvalidMode = errors.New("invalid run mode")
)

// Run modes. Dev logs pretty console output and skips archiving; prod logs
// JSON and archives evicted rooms.
const (
	ModeDev  = "dev"
	ModeProd = "prod"
)

// Config holds the process configuration, populated from the environment.
type Config struct {
	Port            int           `env:"PORT" envDefault:"8080"`
	Mode            string        `env:"MODE" envDefault:"dev"`
	StaticDir       string        `env:"STATIC_DIR" envDefault:"./static"`
	RoomTTL         time.Duration `env:"ROOM_TTL" envDefault:"1h"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"5m"`
	ArchiveDir      string        `env:"ARCHIVE_DIR" envDefault:"./archive"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	NgrokEnabled    bool          `env:"NGROK_ENABLED" envDefault:"false"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints that tags cannot express.
func (c Config) Validate() error {
	if c.Mode != ModeDev && c.Mode != ModeProd {
		return fmt.Errorf("%w: %q", ErrInvalidMode, c.Mode)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	if c.RoomTTL <= 0 {
		return fmt.Errorf("room ttl must be positive, got %s", c.RoomTTL)
	}
	if c.CleanupInterval <= 0 {
		return fmt.Errorf("cleanup interval must be positive, got %s", c.CleanupInterval)
	}
	return nil
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// IsProd reports whether the server runs in production mode.
func (c Config) IsProd() bool {
	return c.Mode == ModeProd
}
