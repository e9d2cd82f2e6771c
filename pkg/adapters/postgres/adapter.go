// Package postgres provides a PostgreSQL database adapter for pgframe.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/pgframe/pkg/adapter"
	"github.com/leapstack-labs/pgframe/pkg/frame"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver in database/sql mode
)

const defaultSchema = "public"

// Adapter implements the adapter.Adapter interface for PostgreSQL.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new PostgreSQL adapter instance.
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
	return "postgres"
}

// Placeholder formats the n-th statement placeholder ($1, $2, ...).
func (a *Adapter) Placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

// Connect establishes a connection to PostgreSQL. The handle is lazy:
// sql.Open does not reach the network, so unreachable hosts surface on the
// first real operation rather than here.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	dsn := buildPostgresDSN(cfg)

	a.Logger.Debug("connecting to postgres", slog.String("host", cfg.Host), slog.String("database", cfg.Database))

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return &adapter.ConnectionError{Type: "postgres", Err: err}
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// buildPostgresDSN constructs a PostgreSQL connection string.
func buildPostgresDSN(cfg adapter.Config) string {
	// Build key=value format: host=localhost port=5432 user=postgres ...
	host := cfg.Host
	if host == "" {
		host = "localhost"
	}

	port := cfg.Port
	if port == 0 {
		port = 5432
	}

	sslmode := "disable"
	if cfg.Options != nil {
		if mode, ok := cfg.Options["sslmode"]; ok {
			sslmode = mode
		}
	}

	dsn := fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s",
		host, port, cfg.Database, sslmode)

	if cfg.Username != "" {
		dsn += fmt.Sprintf(" user=%s", cfg.Username)
	}
	if cfg.Password != "" {
		dsn += fmt.Sprintf(" password=%s", cfg.Password)
	}

	return dsn
}

// ColumnType maps a logical type to its PostgreSQL column type.
func (a *Adapter) ColumnType(t frame.LogicalType) (string, error) {
	switch t {
	case frame.Float:
		return "DOUBLE PRECISION", nil
	case frame.Integer:
		return "INTEGER", nil
	case frame.BigInteger:
		return "BIGINT", nil
	case frame.Boolean:
		return "BOOLEAN", nil
	case frame.String:
		return "TEXT", nil
	case frame.DateTime:
		return "TIMESTAMP", nil
	default:
		return "", &adapter.SchemaError{Reason: fmt.Sprintf("postgres has no column type for %s", t)}
	}
}

// CreateTable creates a table from column definitions. An auto-incrementing
// primary key becomes SERIAL PRIMARY KEY.
func (a *Adapter) CreateTable(ctx context.Context, table string, columns []adapter.ColumnDef) error {
	return a.CreateTableCommon(ctx, table, columns, a.ColumnType, func() string {
		return "SERIAL PRIMARY KEY"
	})
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
