package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pgframe/internal/testutil"
	"github.com/leapstack-labs/pgframe/pkg/adapter"
	"github.com/leapstack-labs/pgframe/pkg/frame"
)

func TestBuildPostgresDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  adapter.Config
		want string
	}{
		{
			name: "defaults",
			cfg:  adapter.Config{Database: "analytics"},
			want: "host=localhost port=5432 dbname=analytics sslmode=disable",
		},
		{
			name: "full config",
			cfg: adapter.Config{
				Host:     "db.internal",
				Port:     5433,
				Database: "analytics",
				Username: "svc",
				Password: "secret",
			},
			want: "host=db.internal port=5433 dbname=analytics sslmode=disable user=svc password=secret",
		},
		{
			name: "sslmode from options",
			cfg: adapter.Config{
				Database: "analytics",
				Options:  map[string]string{"sslmode": "require"},
			},
			want: "host=localhost port=5432 dbname=analytics sslmode=require",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildPostgresDSN(tt.cfg))
		})
	}
}

func TestColumnType(t *testing.T) {
	a := New(nil)

	tests := []struct {
		typ  frame.LogicalType
		want string
	}{
		{frame.Float, "DOUBLE PRECISION"},
		{frame.Integer, "INTEGER"},
		{frame.BigInteger, "BIGINT"},
		{frame.Boolean, "BOOLEAN"},
		{frame.String, "TEXT"},
		{frame.DateTime, "TIMESTAMP"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := a.ColumnType(tt.typ)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestColumnType_Invalid(t *testing.T) {
	a := New(nil)

	_, err := a.ColumnType(frame.LogicalType(42))
	require.Error(t, err)

	var schemaErr *adapter.SchemaError
	require.ErrorAs(t, err, &schemaErr)
}

func TestPlaceholder(t *testing.T) {
	a := New(nil)
	assert.Equal(t, "$1", a.Placeholder(1))
	assert.Equal(t, "$12", a.Placeholder(12))
}

func TestDialectName(t *testing.T) {
	assert.Equal(t, "postgres", New(nil).DialectName())
}

func TestOperationsWithoutConnection(t *testing.T) {
	ctx := context.Background()
	a := New(testutil.NewTestLogger(t))

	err := a.Exec(ctx, "SELECT 1")
	assert.ErrorIs(t, err, adapter.ErrNotConnected)

	_, err = a.ListTables(ctx)
	assert.ErrorIs(t, err, adapter.ErrNotConnected)

	_, err = a.TableExists(ctx, "t")
	assert.ErrorIs(t, err, adapter.ErrNotConnected)
}

func TestConnectIsLazy(t *testing.T) {
	a := New(testutil.NewTestLogger(t))

	// sql.Open does not dial, so connecting to an unreachable host succeeds.
	err := a.Connect(context.Background(), adapter.Config{
		Host:     "unreachable.invalid",
		Database: "nope",
	})
	require.NoError(t, err)
	assert.True(t, a.IsConnected())
	require.NoError(t, a.Close())
}

func TestSchemaDefault(t *testing.T) {
	a := New(nil)
	assert.Equal(t, "public", a.schema())

	a.Cfg.Schema = "analytics"
	assert.Equal(t, "analytics", a.schema())
}
