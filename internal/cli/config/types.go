// Package config loads pgframe's CLI configuration from its project file,
// environment variables, and command-line flags.
package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/leapstack-labs/pgframe/pkg/adapter"
)

// TargetConfig holds database target configuration.
type TargetConfig struct {
	Type string `koanf:"type"` // postgres, sqlite, duckdb

	// File-based databases (SQLite, DuckDB)
	Path string `koanf:"path"` // file path, or ":memory:"

	// Network databases
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	Database string `koanf:"database"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`

	// Common
	Schema string `koanf:"schema"`

	// Additional driver-specific options
	Options map[string]string `koanf:"options"`
}

// Config holds the full CLI configuration.
type Config struct {
	Target  TargetConfig `koanf:"target"`
	Verbose bool         `koanf:"verbose"`
}

// Validate checks if the target configuration is valid.
// It uses the adapter registry to determine which adapter types are available.
func (t *TargetConfig) Validate() error {
	if t.Type == "" {
		return fmt.Errorf("target type is required (set target.type in pgframe.yaml)")
	}

	// Use adapter registry as single source of truth
	if !adapter.IsRegistered(strings.ToLower(t.Type)) {
		return &adapter.UnknownAdapterError{
			Type:      t.Type,
			Available: adapter.ListAdapters(),
		}
	}

	return nil
}

// ToAdapterConfig converts the target section into an adapter.Config.
func (t *TargetConfig) ToAdapterConfig() adapter.Config {
	return adapter.Config{
		Type:     strings.ToLower(t.Type),
		Path:     t.Path,
		Host:     t.Host,
		Port:     t.Port,
		Database: t.Database,
		Username: t.User,
		Password: t.Password,
		Schema:   t.Schema,
		Options:  t.Options,
	}
}

// contextKey stores the loaded config in a command context.
type contextKey struct{}

// NewContext returns a context carrying the config.
func NewContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, contextKey{}, cfg)
}

// FromContext retrieves the config stored by NewContext, or nil.
func FromContext(ctx context.Context) *Config {
	cfg, _ := ctx.Value(contextKey{}).(*Config)
	return cfg
}
