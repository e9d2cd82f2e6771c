package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/pgframe/pkg/frame"
)

// BaseSQLAdapter provides common database/sql functionality for adapters.
// Embed this struct in concrete adapter implementations to get standard
// Close, Ping, Exec, Query, and DropTable implementations plus shared
// helpers for the information_schema dialects.
type BaseSQLAdapter struct {
	DB     *sql.DB
	Cfg    Config
	Logger *slog.Logger
}

// Close closes the database connection.
func (b *BaseSQLAdapter) Close() error {
	if b.DB != nil {
		if b.Logger != nil {
			b.Logger.Debug("closing database connection")
		}
		return b.DB.Close()
	}
	return nil
}

// Ping verifies the database is reachable.
func (b *BaseSQLAdapter) Ping(ctx context.Context) error {
	if b.DB == nil {
		return ErrNotConnected
	}
	return b.DB.PingContext(ctx)
}

// Exec executes a SQL statement that doesn't return rows.
func (b *BaseSQLAdapter) Exec(ctx context.Context, sqlStr string, args ...any) error {
	if b.DB == nil {
		return ErrNotConnected
	}
	_, err := b.DB.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("failed to execute SQL: %w", err)
	}
	return nil
}

// Query executes a SQL statement that returns rows.
func (b *BaseSQLAdapter) Query(ctx context.Context, sqlStr string, args ...any) (*Rows, error) {
	if b.DB == nil {
		return nil, ErrNotConnected
	}
	//nolint:rowserrcheck // rows.Err() must be checked by caller after iteration completes
	rows, err := b.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, &QueryError{SQL: sqlStr, Err: err}
	}
	return &Rows{Rows: rows}, nil
}

// IsConnected returns true if the database connection is established.
func (b *BaseSQLAdapter) IsConnected() bool {
	return b.DB != nil
}

// DropTable removes the table schema and all rows.
func (b *BaseSQLAdapter) DropTable(ctx context.Context, table string) error {
	if b.DB == nil {
		return ErrNotConnected
	}
	//nolint:gosec // Table names are validated by caller
	if _, err := b.DB.ExecContext(ctx, fmt.Sprintf("DROP TABLE %s", table)); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", table, err)
	}
	return nil
}

// TruncateTable removes all rows, preserving the schema. Dialects without
// TRUNCATE support (SQLite) override this.
func (b *BaseSQLAdapter) TruncateTable(ctx context.Context, table string) error {
	if b.DB == nil {
		return ErrNotConnected
	}
	//nolint:gosec // Table names are validated by caller
	if _, err := b.DB.ExecContext(ctx, fmt.Sprintf("TRUNCATE TABLE %s", table)); err != nil {
		return fmt.Errorf("failed to truncate table %s: %w", table, err)
	}
	return nil
}

// InsertRowsCommon appends rows with one multi-row INSERT statement.
// The placeholder function supplies the dialect's parameter syntax.
func (b *BaseSQLAdapter) InsertRowsCommon(ctx context.Context, table string, columns []string, rows [][]any, placeholder func(int) string) error {
	if b.DB == nil {
		return ErrNotConnected
	}
	if len(rows) == 0 {
		return nil
	}

	var sb strings.Builder
	//nolint:gosec // Table and column names are validated by caller
	sb.WriteString(fmt.Sprintf("INSERT INTO %s (%s) VALUES ", table, strings.Join(columns, ", ")))

	args := make([]any, 0, len(rows)*len(columns))
	n := 1
	for i, row := range rows {
		if len(row) != len(columns) {
			return &SchemaError{Reason: fmt.Sprintf("row %d has %d values for %d columns", i, len(row), len(columns))}
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("(")
		for j, v := range row {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(placeholder(n))
			args = append(args, v)
			n++
		}
		sb.WriteString(")")
	}

	if _, err := b.DB.ExecContext(ctx, sb.String(), args...); err != nil {
		return fmt.Errorf("failed to insert %d rows into %s: %w", len(rows), table, err)
	}
	return nil
}

// ParseQualifiedName splits a table reference into schema and name,
// falling back to the given default schema.
func ParseQualifiedName(table, defaultSchema string) (schema, name string) {
	if parts := strings.Split(table, "."); len(parts) == 2 {
		return parts[0], parts[1]
	}
	return defaultSchema, table
}

// GetTableMetadataCommon provides a shared implementation of GetTableMetadata
// over information_schema.columns with dialect-appropriate placeholders.
func (b *BaseSQLAdapter) GetTableMetadataCommon(ctx context.Context, table, defaultSchema string, placeholder func(int) string) (*Metadata, error) {
	if b.DB == nil {
		return nil, ErrNotConnected
	}

	schema, tableName := ParseQualifiedName(table, defaultSchema)

	//nolint:gosec // Placeholders are safe - they come from the dialect's Placeholder
	query := fmt.Sprintf(`
		SELECT
			column_name,
			data_type,
			is_nullable,
			ordinal_position
		FROM information_schema.columns
		WHERE table_schema = %s AND table_name = %s
		ORDER BY ordinal_position
	`, placeholder(1), placeholder(2))

	rows, err := b.DB.QueryContext(ctx, query, schema, tableName)
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []Column
	for rows.Next() {
		var col Column
		var nullable string
		if err := rows.Scan(&col.Name, &col.Type, &nullable, &col.Position); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		col.Nullable = nullable == "YES"
		columns = append(columns, col)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}

	if len(columns) == 0 {
		return nil, &TableNotFoundError{Table: table}
	}

	// Get row count
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s.%s", schema, tableName) //nolint:gosec // Table names are from metadata
	var rowCount int64
	if err := b.DB.QueryRowContext(ctx, countQuery).Scan(&rowCount); err != nil {
		// Non-fatal error, just set to 0
		rowCount = 0
	}

	return &Metadata{
		Schema:   schema,
		Name:     tableName,
		Columns:  columns,
		RowCount: rowCount,
	}, nil
}

// ListTablesCommon reflects all base tables in a schema via
// information_schema, returning metadata keyed by table name.
func (b *BaseSQLAdapter) ListTablesCommon(ctx context.Context, schema string, placeholder func(int) string) (map[string]*Metadata, error) {
	if b.DB == nil {
		return nil, ErrNotConnected
	}

	//nolint:gosec // Placeholders are safe - they come from the dialect's Placeholder
	query := fmt.Sprintf(`
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = %s AND table_type = 'BASE TABLE'
		ORDER BY table_name
	`, placeholder(1))

	rows, err := b.DB.QueryContext(ctx, query, schema)
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

	tables := make(map[string]*Metadata, len(names))
	for _, name := range names {
		meta, err := b.GetTableMetadataCommon(ctx, schema+"."+name, schema, placeholder)
		if err != nil {
			return nil, err
		}
		tables[name] = meta
	}
	return tables, nil
}

// TableExistsCommon reports table existence via information_schema.
func (b *BaseSQLAdapter) TableExistsCommon(ctx context.Context, table, defaultSchema string, placeholder func(int) string) (bool, error) {
	if b.DB == nil {
		return false, ErrNotConnected
	}

	schema, tableName := ParseQualifiedName(table, defaultSchema)

	//nolint:gosec // Placeholders are safe - they come from the dialect's Placeholder
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_schema = %s AND table_name = %s
	`, placeholder(1), placeholder(2))

	var count int
	if err := b.DB.QueryRowContext(ctx, query, schema, tableName).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check table existence: %w", err)
	}
	return count > 0, nil
}

// CreateTableCommon builds and executes a CREATE TABLE statement from column
// definitions. The autoIncrementType function renders the full column type
// clause for an auto-incrementing primary key, since that syntax is what
// actually differs between dialects.
func (b *BaseSQLAdapter) CreateTableCommon(ctx context.Context, table string, columns []ColumnDef, columnType func(frame.LogicalType) (string, error), autoIncrementType func() string) error {
	if b.DB == nil {
		return ErrNotConnected
	}

	defs := make([]string, 0, len(columns))
	for _, col := range columns {
		if col.PrimaryKey && col.AutoIncrement {
			defs = append(defs, fmt.Sprintf("%s %s", col.Name, autoIncrementType()))
			continue
		}
		dbType, err := columnType(col.Type)
		if err != nil {
			return err
		}
		def := fmt.Sprintf("%s %s", col.Name, dbType)
		if col.PrimaryKey {
			def += " PRIMARY KEY"
		}
		defs = append(defs, def)
	}

	//nolint:gosec // Table and column names are validated by caller
	createSQL := fmt.Sprintf("CREATE TABLE %s (%s)", table, strings.Join(defs, ", "))
	if _, err := b.DB.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("failed to create table %s: %w", table, err)
	}
	return nil
}
