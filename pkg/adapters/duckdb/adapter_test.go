package duckdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pgframe/pkg/adapter"
	"github.com/leapstack-labs/pgframe/pkg/frame"
)

func TestColumnType(t *testing.T) {
	a := New(nil)

	tests := []struct {
		typ  frame.LogicalType
		want string
	}{
		{frame.Float, "DOUBLE"},
		{frame.Integer, "INTEGER"},
		{frame.BigInteger, "BIGINT"},
		{frame.Boolean, "BOOLEAN"},
		{frame.String, "VARCHAR"},
		{frame.DateTime, "TIMESTAMP"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := a.ColumnType(tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := a.ColumnType(frame.LogicalType(42))
	var schemaErr *adapter.SchemaError
	require.ErrorAs(t, err, &schemaErr)
}

func TestPlaceholder(t *testing.T) {
	a := New(nil)
	assert.Equal(t, "?", a.Placeholder(1))
	assert.Equal(t, "?", a.Placeholder(7))
}

func TestDialectName(t *testing.T) {
	assert.Equal(t, "duckdb", New(nil).DialectName())
}

func TestSequenceName(t *testing.T) {
	assert.Equal(t, "events_id_seq", sequenceName("events"))
}

func TestOperationsWithoutConnection(t *testing.T) {
	ctx := context.Background()
	a := New(nil)

	assert.ErrorIs(t, a.Exec(ctx, "SELECT 1"), adapter.ErrNotConnected)
	assert.ErrorIs(t, a.CreateTable(ctx, "t", []adapter.ColumnDef{
		{Name: "id", Type: frame.Integer, PrimaryKey: true, AutoIncrement: true},
	}), adapter.ErrNotConnected)
	assert.False(t, a.IsConnected())
}

func TestSchemaDefault(t *testing.T) {
	a := New(nil)
	assert.Equal(t, "main", a.schema())

	a.Cfg.Schema = "analytics"
	assert.Equal(t, "analytics", a.schema())
}
