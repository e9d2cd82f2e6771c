// Package adapter provides the database access contract for pgframe.
//
// This package contains the interface that all database adapters must
// implement, the shared connection configuration, and the error taxonomy.
// Concrete adapter implementations are in pkg/adapters/ subdirectories.
package adapter

import (
	"context"
	"database/sql"

	"github.com/leapstack-labs/pgframe/pkg/frame"
)

// Config holds the configuration for connecting to a database.
// No local validation is performed; malformed parameters surface when the
// adapter assembles its DSN or on the first real operation.
type Config struct {
	// Type specifies the database type (e.g., "postgres", "sqlite", "duckdb")
	Type string

	// Path is the file path for file-based databases (SQLite, DuckDB).
	// Use ":memory:" for in-memory databases.
	Path string

	// Host is the hostname for network-based databases
	Host string

	// Port is the port number for network-based databases
	Port int

	// Database is the database name
	Database string

	// Username for authentication
	Username string

	// Password for authentication
	Password string

	// Schema is the default schema to use
	Schema string

	// Options contains additional driver-specific options
	Options map[string]string
}

// ColumnDef describes one column of a table to be created.
type ColumnDef struct {
	// Name is the column name
	Name string

	// Type is the logical type the column stores
	Type frame.LogicalType

	// PrimaryKey marks the column as the table's primary key
	PrimaryKey bool

	// AutoIncrement requests database-generated sequential values.
	// Only meaningful together with PrimaryKey.
	AutoIncrement bool
}

// Column represents a column in a live database table.
type Column struct {
	// Name is the column name
	Name string

	// Type is the database-reported data type of the column
	Type string

	// Nullable indicates whether the column allows NULL values
	Nullable bool

	// Position is the ordinal position of the column in the table
	Position int
}

// Metadata holds reflected metadata about a database table.
type Metadata struct {
	// Schema is the schema containing the table
	Schema string

	// Name is the table name
	Name string

	// Columns contains metadata for each column
	Columns []Column

	// RowCount is the number of rows at reflection time
	RowCount int64
}

// Rows wraps sql.Rows to provide a consistent interface across adapters.
type Rows struct {
	*sql.Rows
}

// Adapter defines the interface that all database adapters must implement.
// Every blocking operation takes a context; the adapter itself performs no
// retry, locking, or timeout handling beyond what database/sql provides.
type Adapter interface {
	// Connect establishes a connection to the database using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the database connection and releases resources.
	Close() error

	// Ping verifies the database is reachable.
	Ping(ctx context.Context) error

	// Exec executes a SQL statement that doesn't return rows.
	Exec(ctx context.Context, sql string, args ...any) error

	// Query executes a SQL statement that returns rows.
	Query(ctx context.Context, sql string, args ...any) (*Rows, error)

	// CreateTable creates a table from column definitions.
	// Returns a SchemaError for column types the dialect cannot express.
	CreateTable(ctx context.Context, table string, columns []ColumnDef) error

	// TruncateTable removes all rows, preserving the schema.
	TruncateTable(ctx context.Context, table string) error

	// DropTable removes the table schema and all rows.
	DropTable(ctx context.Context, table string) error

	// InsertRows appends rows to an existing table. Each row holds one value
	// per named column, in column order.
	InsertRows(ctx context.Context, table string, columns []string, rows [][]any) error

	// ListTables reflects the live schema, returning metadata per table name.
	// Results are never cached; each call re-derives from the database.
	ListTables(ctx context.Context) (map[string]*Metadata, error)

	// TableExists reports whether a table exists, by live reflection.
	TableExists(ctx context.Context, table string) (bool, error)

	// GetTableMetadata retrieves metadata for a specified table.
	GetTableMetadata(ctx context.Context, table string) (*Metadata, error)

	// ColumnType maps a logical type to this dialect's column type.
	// Unknown logical types fail with a SchemaError.
	ColumnType(t frame.LogicalType) (string, error)

	// Placeholder formats the n-th (1-based) statement placeholder
	// (e.g. "$1" for postgres, "?" for sqlite).
	Placeholder(n int) string

	// DialectName returns the SQL dialect name for this adapter.
	DialectName() string
}
