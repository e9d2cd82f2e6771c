// Package sqlite provides a SQLite database adapter for pgframe.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/leapstack-labs/pgframe/pkg/adapter"
	"github.com/leapstack-labs/pgframe/pkg/frame"

	_ "modernc.org/sqlite" // cgo-free sqlite driver
)

// Adapter implements the adapter.Adapter interface for SQLite.
type Adapter struct {
	adapter.BaseSQLAdapter
}

// New creates a new SQLite adapter instance.
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
	return "sqlite"
}

// Placeholder formats the n-th statement placeholder (always "?").
func (a *Adapter) Placeholder(_ int) string {
	return "?"
}

// Connect establishes a connection to SQLite.
// Use ":memory:" as the path for an in-memory database.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	path := cfg.Path
	if path == "" {
		path = ":memory:"
	}

	a.Logger.Debug("connecting to sqlite", slog.String("path", path))

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return &adapter.ConnectionError{Type: "sqlite", Err: err}
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return &adapter.ConnectionError{Type: "sqlite", Err: err}
	}

	// The in-memory database vanishes when its last connection closes;
	// pin the pool to one connection so it survives the whole session.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// ColumnType maps a logical type to its SQLite column type.
func (a *Adapter) ColumnType(t frame.LogicalType) (string, error) {
	switch t {
	case frame.Float:
		return "REAL", nil
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
		return "", &adapter.SchemaError{Reason: fmt.Sprintf("sqlite has no column type for %s", t)}
	}
}

// CreateTable creates a table from column definitions. An auto-incrementing
// primary key becomes INTEGER PRIMARY KEY AUTOINCREMENT.
func (a *Adapter) CreateTable(ctx context.Context, table string, columns []adapter.ColumnDef) error {
	return a.CreateTableCommon(ctx, table, columns, a.ColumnType, func() string {
		return "INTEGER PRIMARY KEY AUTOINCREMENT"
	})
}

// TruncateTable removes all rows. SQLite has no TRUNCATE statement; an
// unqualified DELETE takes the same fast path and resets nothing else.
func (a *Adapter) TruncateTable(ctx context.Context, table string) error {
	if a.DB == nil {
		return adapter.ErrNotConnected
	}
	//nolint:gosec // Table names are validated by caller
	if _, err := a.DB.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", table)); err != nil {
		return fmt.Errorf("failed to truncate table %s: %w", table, err)
	}
	return nil
}

// InsertRows appends rows to an existing table.
func (a *Adapter) InsertRows(ctx context.Context, table string, columns []string, rows [][]any) error {
	return a.InsertRowsCommon(ctx, table, columns, rows, a.Placeholder)
}

// ListTables reflects all tables via sqlite_master, returning metadata per
// table name. The sqlite_sequence bookkeeping table is excluded.
func (a *Adapter) ListTables(ctx context.Context) (map[string]*adapter.Metadata, error) {
	if a.DB == nil {
		return nil, adapter.ErrNotConnected
	}

	rows, err := a.DB.QueryContext(ctx, `
		SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating table names: %w", err)
	}

	tables := make(map[string]*adapter.Metadata, len(names))
	for _, name := range names {
		meta, err := a.GetTableMetadata(ctx, name)
		if err != nil {
			return nil, err
		}
		tables[name] = meta
	}
	return tables, nil
}

// TableExists reports whether a table exists, by live reflection.
func (a *Adapter) TableExists(ctx context.Context, table string) (bool, error) {
	if a.DB == nil {
		return false, adapter.ErrNotConnected
	}

	var count int
	err := a.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check table existence: %w", err)
	}
	return count > 0, nil
}

// GetTableMetadata retrieves metadata for a specified table via PRAGMA table_info.
func (a *Adapter) GetTableMetadata(ctx context.Context, table string) (*adapter.Metadata, error) {
	if a.DB == nil {
		return nil, adapter.ErrNotConnected
	}

	//nolint:gosec // Table names are validated by caller
	rows, err := a.DB.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []adapter.Column
	for rows.Next() {
		var (
			cid     int
			name    string
			colType string
			notNull int
			dfltVal sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltVal, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		columns = append(columns, adapter.Column{
			Name:     name,
			Type:     colType,
			Nullable: notNull == 0,
			Position: cid + 1,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}

	if len(columns) == 0 {
		return nil, &adapter.TableNotFoundError{Table: table}
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", table) //nolint:gosec // Table names are from metadata
	var rowCount int64
	if err := a.DB.QueryRowContext(ctx, countQuery).Scan(&rowCount); err != nil {
		rowCount = 0
	}

	return &adapter.Metadata{
		Schema:   "main",
		Name:     table,
		Columns:  columns,
		RowCount: rowCount,
	}, nil
}

// Ensure Adapter implements adapter.Adapter interface
var _ adapter.Adapter = (*Adapter)(nil)
