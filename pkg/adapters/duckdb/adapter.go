// Package duckdb provides a DuckDB database adapter for pgframe.
package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/pgframe/pkg/adapter"
	"github.com/leapstack-labs/pgframe/pkg/frame"

	_ "github.com/marcboeker/go-duckdb" // duckdb driver
)

const defaultSchema = "main"

// Adapter implements the adapter.Adapter interface for DuckDB.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new DuckDB adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
	}
}

// DialectName returns the SQL dialect for this adapter.
func (a *Adapter) DialectName() string {
	return "duckdb"
}

// Placeholder formats the n-th statement placeholder (always "?").
func (a *Adapter) Placeholder(_ int) string {
	return "?"
}

// Connect establishes a connection to DuckDB.
// Use ":memory:" as the path for an in-memory database.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	a.Logger.Debug("connecting to duckdb", slog.String("path", path))

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return &adapter.ConnectionError{Type: "duckdb", Err: err}
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return &adapter.ConnectionError{Type: "duckdb", Err: err}
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// ColumnType maps a logical type to its DuckDB column type.
func (a *Adapter) ColumnType(t frame.LogicalType) (string, error) {
	switch t {
	case frame.Float:
		return "DOUBLE", nil
	case frame.Integer:
		return "INTEGER", nil
	case frame.BigInteger:
		return "BIGINT", nil
	case frame.Boolean:
		return "BOOLEAN", nil
	case frame.String:
		return "VARCHAR", nil
	case frame.DateTime:
		return "TIMESTAMP", nil
	default:
		return "", &adapter.SchemaError{Reason: fmt.Sprintf("duckdb has no column type for %s", t)}
	}
}

// CreateTable creates a table from column definitions. DuckDB has no serial
// column type; an auto-incrementing primary key is backed by a sequence
// created alongside the table.
func (a *Adapter) CreateTable(ctx context.Context, table string, columns []adapter.ColumnDef) error {
	for _, col := range columns {
		if col.PrimaryKey && col.AutoIncrement {
			//nolint:gosec // Table names are validated by caller
			if err := a.Exec(ctx, fmt.Sprintf("CREATE SEQUENCE %s START 1", sequenceName(table))); err != nil {
				return err
			}
			break
		}
	}
	return a.CreateTableCommon(ctx, table, columns, a.ColumnType, func() string {
		return fmt.Sprintf("INTEGER PRIMARY KEY DEFAULT nextval('%s')", sequenceName(table))
	})
}

// DropTable removes the table and any sequence backing its primary key.
func (a *Adapter) DropTable(ctx context.Context, table string) error {
	if err := a.BaseSQLAdapter.DropTable(ctx, table); err != nil {
		return err
	}
	//nolint:gosec // Table names are validated by caller
	return a.Exec(ctx, fmt.Sprintf("DROP SEQUENCE IF EXISTS %s", sequenceName(table)))
}

// sequenceName is keyed by table only; one auto-increment column per table.
func sequenceName(table string) string {
	return table + "_id_seq"
}

// InsertRows appends rows to an existing table.
func (a *Adapter) InsertRows(ctx context.Context, table string, columns []string, rows [][]any) error {
	return a.InsertRowsCommon(ctx, table, columns, rows, a.Placeholder)
}

// ListTables reflects all base tables in the configured schema.
func (a *Adapter) ListTables(ctx context.Context) (map[string]*adapter.Metadata, error) {
	return a.ListTablesCommon(ctx, a.schema(), a.Placeholder)
}

// TableExists reports whether a table exists, by live reflection.
func (a *Adapter) TableExists(ctx context.Context, table string) (bool, error) {
	return a.TableExistsCommon(ctx, table, a.schema(), a.Placeholder)
}

// GetTableMetadata retrieves metadata for a specified table.
func (a *Adapter) GetTableMetadata(ctx context.Context, table string) (*adapter.Metadata, error) {
	return a.GetTableMetadataCommon(ctx, table, a.schema(), a.Placeholder)
}

func (a *Adapter) schema() string {
	if a.Cfg.Schema != "" {
		return a.Cfg.Schema
	}
	return defaultSchema
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
