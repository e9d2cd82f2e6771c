package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pgframe/pkg/adapter"

	// Import adapter packages to ensure adapters are registered via init()
	_ "github.com/leapstack-labs/pgframe/pkg/adapters/duckdb"
	_ "github.com/leapstack-labs/pgframe/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/pgframe/pkg/adapters/sqlite"
)

func TestTargetConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		target    TargetConfig
		wantErr   bool
		errSubstr string
	}{
		{
			name:      "empty type",
			target:    TargetConfig{Type: ""},
			wantErr:   true,
			errSubstr: "target type is required",
		},
		{
			name:    "valid sqlite",
			target:  TargetConfig{Type: "sqlite"},
			wantErr: false,
		},
		{
			name:    "valid sqlite uppercase",
			target:  TargetConfig{Type: "SQLite"},
			wantErr: false,
		},
		{
			name:    "valid postgres",
			target:  TargetConfig{Type: "postgres"},
			wantErr: false,
		},
		{
			name:    "valid duckdb",
			target:  TargetConfig{Type: "duckdb"},
			wantErr: false,
		},
		{
			name:      "unknown type mysql",
			target:    TargetConfig{Type: "mysql"},
			wantErr:   true,
			errSubstr: "unknown adapter type",
		},
		{
			name:      "unknown type oracle",
			target:    TargetConfig{Type: "oracle"},
			wantErr:   true,
			errSubstr: "unknown adapter type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.target.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errSubstr != "" {
					assert.Contains(t, err.Error(), tt.errSubstr)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTargetConfig_Validate_ErrorContainsAvailable(t *testing.T) {
	target := TargetConfig{Type: "invalid_db"}
	err := target.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "sqlite", "error should list available adapters")
	assert.Contains(t, errStr, "pgframe.yaml", "error should mention config file")
}

func TestTargetConfig_ToAdapterConfig(t *testing.T) {
	target := TargetConfig{
		Type:     "Postgres",
		Path:     "/tmp/db",
		Host:     "db.internal",
		Port:     5433,
		Database: "analytics",
		User:     "svc",
		Password: "secret",
		Schema:   "reporting",
		Options:  map[string]string{"sslmode": "require"},
	}

	got := target.ToAdapterConfig()
	want := adapter.Config{
		Type:     "postgres",
		Path:     "/tmp/db",
		Host:     "db.internal",
		Port:     5433,
		Database: "analytics",
		Username: "svc",
		Password: "secret",
		Schema:   "reporting",
		Options:  map[string]string{"sslmode": "require"},
	}
	assert.Equal(t, want, got)
}

func TestContextRoundTrip(t *testing.T) {
	cfg := &Config{Target: TargetConfig{Type: "sqlite"}, Verbose: true}

	ctx := NewContext(context.Background(), cfg)
	assert.Same(t, cfg, FromContext(ctx))

	assert.Nil(t, FromContext(context.Background()))
}
