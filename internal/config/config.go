// Package config loads engine-wide configuration from YAML with safe
// defaults for every field.
package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hollowmoor/hollowmoor/server/internal/dungeon"
	"github.com/hollowmoor/hollowmoor/server/internal/wild"
)

// EngineConfig holds generator-wide configuration settings.
type EngineConfig struct {
	Dungeon *dungeon.Tuning   `yaml:"dungeon"`
	Wild    *wild.Constraints `yaml:"wilderness"`

	// TreeFile optionally replaces the built-in terrain classifier.
	// Empty selects the default tree.
	TreeFile string `yaml:"tree_file"`

	Store StoreConfig `yaml:"store"`
	Serve ServeConfig `yaml:"serve"`
}

// StoreConfig selects where generated levels are persisted.
type StoreConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string `yaml:"driver"`

	// Path is the database file for SQLite.
	Path string `yaml:"path"`

	// DSN is the connection string for PostgreSQL.
	DSN string `yaml:"dsn"`
}

// ServeConfig holds map server settings.
type ServeConfig struct {
	// ListenAddr is the address the map server binds to.
	ListenAddr string `yaml:"listen_addr"`

	// AllowedOrigins is a list of origins allowed to connect via WebSocket.
	// Empty list enforces same-origin policy.
	// Use "*" to allow all origins (not recommended for production).
	AllowedOrigins []string `yaml:"allowed_origins"`

	// MaxMessageSize is the maximum WebSocket message size in bytes.
	MaxMessageSize int64 `yaml:"max_message_size"`
}

// DefaultConfig returns an EngineConfig with working defaults.
func DefaultConfig() *EngineConfig {
	return &EngineConfig{
		Dungeon: dungeon.DefaultTuning(),
		Wild:    wild.DefaultConstraints(),
		Store: StoreConfig{
			Driver: "sqlite",
			Path:   "data/levels.db",
		},
		Serve: ServeConfig{
			ListenAddr:     ":8465",
			AllowedOrigins: []string{}, // Same-origin only by default
			MaxMessageSize: 4096,
		},
	}
}

// LoadConfig loads engine configuration from a YAML file.
// If the file doesn't exist, returns default config.
func LoadConfig(path string) (*EngineConfig, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil // Use defaults if file doesn't exist
		}
		return config, err
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), err
	}

	return config, nil
}

// IsOriginAllowed checks if the given origin is allowed based on the config.
// Returns true if:
// - AllowedOrigins contains "*" (allow all)
// - AllowedOrigins contains the exact origin
// - AllowedOrigins is empty and origin matches the request host (same-origin)
func (c *ServeConfig) IsOriginAllowed(origin, requestHost string) bool {
	// If no origins configured, enforce same-origin policy
	if len(c.AllowedOrigins) == 0 {
		return isSameOrigin(origin, requestHost)
	}

	for _, allowed := range c.AllowedOrigins {
		// Wildcard allows all origins
		if allowed == "*" {
			return true
		}
		// Exact match
		if allowed == origin {
			return true
		}
	}

	return false
}

// isSameOrigin checks if the origin matches the request host (same-origin policy).
func isSameOrigin(origin, requestHost string) bool {
	if origin == "" {
		return true // No origin header means same-origin (e.g., non-browser client)
	}

	// Extract host from origin URL (e.g., "http://localhost:3000" -> "localhost:3000")
	originHost := origin
	if idx := strings.Index(origin, "://"); idx != -1 {
		originHost = origin[idx+3:]
	}
	// Remove trailing slash if present
	originHost = strings.TrimSuffix(originHost, "/")

	return originHost == requestHost
}
