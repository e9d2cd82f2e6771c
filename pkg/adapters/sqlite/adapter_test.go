package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pgframe/internal/testutil"
	"github.com/leapstack-labs/pgframe/pkg/adapter"
	"github.com/leapstack-labs/pgframe/pkg/frame"
)

func newMemoryAdapter(t *testing.T) *Adapter {
	t.Helper()
	a := New(testutil.NewTestLogger(t))
	require.NoError(t, a.Connect(context.Background(), adapter.Config{Path: ":memory:"}))
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestConnect_InMemory(t *testing.T) {
	a := newMemoryAdapter(t)
	assert.True(t, a.IsConnected())
	assert.NoError(t, a.Ping(context.Background()))
}

func TestConnect_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	a := New(nil)
	require.NoError(t, a.Connect(context.Background(), adapter.Config{Path: path}))
	defer func() { _ = a.Close() }()

	require.NoError(t, a.Exec(context.Background(), "CREATE TABLE t (id INTEGER)"))
	exists, err := a.TableExists(context.Background(), "t")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCreateTableAndMetadata(t *testing.T) {
	ctx := context.Background()
	a := newMemoryAdapter(t)

	err := a.CreateTable(ctx, "payments", []adapter.ColumnDef{
		{Name: "id", Type: frame.Integer, PrimaryKey: true, AutoIncrement: true},
		{Name: "amount", Type: frame.Float},
		{Name: "note", Type: frame.String},
	})
	require.NoError(t, err)

	md, err := a.GetTableMetadata(ctx, "payments")
	require.NoError(t, err)
	assert.Equal(t, "main", md.Schema)
	assert.Equal(t, "payments", md.Name)
	require.Len(t, md.Columns, 3)
	assert.Equal(t, "id", md.Columns[0].Name)
	assert.Equal(t, 1, md.Columns[0].Position)
	assert.Equal(t, "REAL", md.Columns[1].Type)
	assert.Equal(t, int64(0), md.RowCount)
}

func TestGetTableMetadata_NotFound(t *testing.T) {
	a := newMemoryAdapter(t)

	_, err := a.GetTableMetadata(context.Background(), "missing")
	require.Error(t, err)

	var notFound *adapter.TableNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "missing", notFound.Table)
}

func TestInsertAndListTables(t *testing.T) {
	ctx := context.Background()
	a := newMemoryAdapter(t)

	require.NoError(t, a.CreateTable(ctx, "events", []adapter.ColumnDef{
		{Name: "name", Type: frame.String},
		{Name: "count", Type: frame.BigInteger},
	}))

	err := a.InsertRows(ctx, "events", []string{"name", "count"}, [][]any{
		{"signup", int64(3)},
		{"login", int64(7)},
	})
	require.NoError(t, err)

	tables, err := a.ListTables(ctx)
	require.NoError(t, err)
	require.Contains(t, tables, "events")
	assert.Equal(t, int64(2), tables["events"].RowCount)
}

func TestTruncateTable(t *testing.T) {
	ctx := context.Background()
	a := newMemoryAdapter(t)

	require.NoError(t, a.CreateTable(ctx, "t", []adapter.ColumnDef{
		{Name: "x", Type: frame.BigInteger},
	}))
	require.NoError(t, a.InsertRows(ctx, "t", []string{"x"}, [][]any{{int64(1)}, {int64(2)}}))

	require.NoError(t, a.TruncateTable(ctx, "t"))

	md, err := a.GetTableMetadata(ctx, "t")
	require.NoError(t, err)
	assert.Equal(t, int64(0), md.RowCount)
	assert.Len(t, md.Columns, 1, "truncate should preserve the schema")
}

func TestDropTable(t *testing.T) {
	ctx := context.Background()
	a := newMemoryAdapter(t)

	require.NoError(t, a.CreateTable(ctx, "t", []adapter.ColumnDef{
		{Name: "x", Type: frame.BigInteger},
	}))
	require.NoError(t, a.DropTable(ctx, "t"))

	exists, err := a.TableExists(ctx, "t")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestColumnType_Invalid(t *testing.T) {
	a := New(nil)
	_, err := a.ColumnType(frame.LogicalType(42))

	var schemaErr *adapter.SchemaError
	require.ErrorAs(t, err, &schemaErr)
}
