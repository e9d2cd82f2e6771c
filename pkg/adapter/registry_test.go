package adapter

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnknownAdapterError_Error(t *testing.T) {
	err := &UnknownAdapterError{
		Type:      "fake_db",
		Available: []string{"duckdb", "postgres", "sqlite"},
	}

	msg := err.Error()

	assert.Contains(t, msg, "fake_db", "error should mention the unknown type")
	assert.Contains(t, msg, "pgframe.yaml", "error should mention config file")
	assert.Contains(t, msg, "duckdb", "error should list available adapters")
}

func TestRegister(t *testing.T) {
	Register("test_adapter_internal", func(_ *slog.Logger) Adapter { return nil })

	assert.True(t, IsRegistered("test_adapter_internal"))

	factory, ok := Get("test_adapter_internal")
	assert.True(t, ok)
	assert.NotNil(t, factory)
}

func TestNew_EmptyType(t *testing.T) {
	_, err := New(Config{Type: ""}, nil)
	require.Error(t, err)
	assert.Equal(t, "adapter type not specified", err.Error())
}

func TestNew_UnknownType(t *testing.T) {
	_, err := New(Config{Type: "unknown_adapter"}, nil)
	require.Error(t, err)

	var unknownErr *UnknownAdapterError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "unknown_adapter", unknownErr.Type)
}
