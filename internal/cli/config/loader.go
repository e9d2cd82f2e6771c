package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Package-level koanf instance and config file tracking
var (
	k              = koanf.New(".")
	configFileUsed string
)

// targetFlags are the persistent CLI flags that map onto the target section.
var targetFlags = map[string]bool{
	"type":     true,
	"path":     true,
	"host":     true,
	"port":     true,
	"database": true,
	"user":     true,
	"password": true,
	"schema":   true,
}

// findConfigFile finds the config file to use.
// Priority: explicit path > pgframe.yaml > pgframe.yml
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat("pgframe.yaml"); err == nil {
		return "pgframe.yaml"
	}
	if _, err := os.Stat("pgframe.yml"); err == nil {
		return "pgframe.yml"
	}
	return ""
}

// GetConfigFileUsed returns the path of the config file loaded by the last
// Load call, or "" when none was found.
func GetConfigFileUsed() string {
	return configFileUsed
}

// Reset resets the koanf instance. Used for testing.
func Reset() {
	k = koanf.New(".")
	configFileUsed = ""
}

// Load loads configuration from file, environment variables, and flags.
// Precedence (highest to lowest): flags > env vars > config file > defaults
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	// Reset koanf for fresh load
	k = koanf.New(".")

	// 1. Load defaults
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"target.schema": "",
		"verbose":       false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Find and load config file
	configFileUsed = findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// 3. Load environment variables (PGFRAME_ prefix)
	// Transform: PGFRAME_TARGET_TYPE -> target.type
	if err := k.Load(env.Provider("PGFRAME_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "PGFRAME_")), "_", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Load flags (highest priority - overrides env vars and config file)
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			// Only load flags that were explicitly set
			if !f.Changed {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			if targetFlags[key] {
				return "target." + key, posflag.FlagVal(flags, f)
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
