// Package bridge moves tabular data between in-memory frames and a
// relational database, enforcing logical column types along the way. It is a
// thin convenience layer: type coercion is a lookup, table creation delegates
// to the adapter's dialect, and bulk load and query delegate to the
// database/sql machinery underneath the adapter.
//
// A Bridge wraps exactly one adapter connection. It performs no locking;
// concurrent use of one Bridge from multiple goroutines is unsupported.
package bridge

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/leapstack-labs/pgframe/pkg/adapter"
	"github.com/leapstack-labs/pgframe/pkg/frame"
)

// Bridge ties a frame type system to one database adapter connection.
type Bridge struct {
	adapter adapter.Adapter
	logger  *slog.Logger
}

// New wraps an already-connected adapter.
// If logger is nil, a discard logger is used.
func New(a adapter.Adapter, logger *slog.Logger) *Bridge {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Bridge{adapter: a, logger: logger}
}

// Open constructs the adapter named by cfg.Type from the registry and
// connects it. Callers own the returned bridge and release the connection
// with Close, typically via defer.
func Open(ctx context.Context, cfg adapter.Config, logger *slog.Logger) (*Bridge, error) {
	a, err := adapter.New(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := a.Connect(ctx, cfg); err != nil {
		return nil, err
	}
	return New(a, logger), nil
}

// Close releases the underlying database connection.
func (b *Bridge) Close() error {
	return b.adapter.Close()
}

// Adapter returns the wrapped adapter.
func (b *Bridge) Adapter() adapter.Adapter {
	return b.adapter
}

// CreateTable creates a table whose non-key columns are exactly the type
// map's entries, in order. By default an auto-incrementing integer primary
// key named "id" is prepended; see WithAutoIncrement and
// WithAutoIncrementName. Fails with a TableExistsError when the name is
// taken and a SchemaError for types the dialect cannot express.
func (b *Bridge) CreateTable(ctx context.Context, table string, tm frame.TypeMap, opts ...CreateOption) error {
	o := newCreateOptions(opts)

	exists, err := b.adapter.TableExists(ctx, table)
	if err != nil {
		return err
	}
	if exists {
		return &adapter.TableExistsError{Table: table}
	}

	columns := make([]adapter.ColumnDef, 0, len(tm)+1)
	if o.autoIncrement {
		columns = append(columns, adapter.ColumnDef{
			Name:          o.autoIncrementName,
			Type:          frame.Integer,
			PrimaryKey:    true,
			AutoIncrement: true,
		})
	}
	for _, e := range tm {
		columns = append(columns, adapter.ColumnDef{Name: e.Name, Type: e.Type})
	}

	if err := b.adapter.CreateTable(ctx, table, columns); err != nil {
		return err
	}
	b.logger.Info("table created", slog.String("table", table), slog.Int("columns", len(columns)))
	return nil
}

// CreateTableFromFrame creates a table matching the frame's structure,
// leaving it empty. Every frame column becomes a table column: a non-nil tm
// overrides the types of the columns it names (after validating the frame
// coerces to it) and the rest are inferred from the frame's values. No
// primary key is added. Fails with a TableExistsError when the name is
// taken.
func (b *Bridge) CreateTableFromFrame(ctx context.Context, f *frame.Frame, table string, tm frame.TypeMap) error {
	exists, err := b.adapter.TableExists(ctx, table)
	if err != nil {
		return err
	}
	if exists {
		return &adapter.TableExistsError{Table: table}
	}

	if tm != nil {
		if _, err := frame.Coerce(f, tm, b.logger); err != nil {
			return err
		}
	}

	columns := make([]adapter.ColumnDef, 0, len(f.Columns()))
	for _, e := range inferTypeMap(f) {
		if t, ok := tm.Get(e.Name); ok {
			e.Type = t
		}
		columns = append(columns, adapter.ColumnDef{Name: e.Name, Type: e.Type})
	}

	if err := b.adapter.CreateTable(ctx, table, columns); err != nil {
		return err
	}
	b.logger.Info("table created from frame", slog.String("table", table), slog.Int("columns", len(columns)))
	return nil
}

// Append coerces the frame to tm (when non-nil) and appends every row to an
// existing table. Fails with a TableNotFoundError when the table is absent
// and a SchemaError when a row's shape does not match the column list.
// Any other insert rejection from the driver, type conflicts and constraint
// violations alike, is reported as a TypeMismatchError wrapping the driver
// error.
func (b *Bridge) Append(ctx context.Context, f *frame.Frame, table string, tm frame.TypeMap) error {
	exists, err := b.adapter.TableExists(ctx, table)
	if err != nil {
		return err
	}
	if !exists {
		return &adapter.TableNotFoundError{Table: table}
	}

	if tm != nil {
		f, err = frame.Coerce(f, tm, b.logger)
		if err != nil {
			return err
		}
	}

	rows := make([][]any, f.Len())
	for i := range rows {
		rows[i] = f.Row(i)
	}

	if err := b.adapter.InsertRows(ctx, table, f.Columns(), rows); err != nil {
		var schemaErr *adapter.SchemaError
		if errors.As(err, &schemaErr) || errors.Is(err, adapter.ErrNotConnected) {
			return err
		}
		return &adapter.TypeMismatchError{Table: table, Err: err}
	}
	b.logger.Info("rows appended", slog.String("table", table), slog.Int("rows", f.Len()))
	return nil
}

// Truncate removes all rows, preserving the schema.
// Fails with a TableNotFoundError when the table is absent.
func (b *Bridge) Truncate(ctx context.Context, table string) error {
	exists, err := b.adapter.TableExists(ctx, table)
	if err != nil {
		return err
	}
	if !exists {
		return &adapter.TableNotFoundError{Table: table}
	}
	if err := b.adapter.TruncateTable(ctx, table); err != nil {
		return err
	}
	b.logger.Info("table truncated", slog.String("table", table))
	return nil
}

// Drop removes the table schema and all rows.
// Fails with a TableNotFoundError when the table is absent.
func (b *Bridge) Drop(ctx context.Context, table string) error {
	exists, err := b.adapter.TableExists(ctx, table)
	if err != nil {
		return err
	}
	if !exists {
		return &adapter.TableNotFoundError{Table: table}
	}
	if err := b.adapter.DropTable(ctx, table); err != nil {
		return err
	}
	b.logger.Info("table dropped", slog.String("table", table))
	return nil
}

// Tables reflects the live database schema on every call; nothing is cached,
// so the result is always consistent with the database at call time.
func (b *Bridge) Tables(ctx context.Context) (map[string]*adapter.Metadata, error) {
	return b.adapter.ListTables(ctx)
}

// Exists reports whether a table exists. It is derived from Tables, so it
// costs a full live reflection rather than a point lookup.
func (b *Bridge) Exists(ctx context.Context, table string) (bool, error) {
	tables, err := b.Tables(ctx)
	if err != nil {
		return false, err
	}
	_, ok := tables[table]
	return ok, nil
}

// inferTypeMap derives a type map from the first non-nil value of each
// column, defaulting to String for empty or all-nil columns.
func inferTypeMap(f *frame.Frame) frame.TypeMap {
	var tm frame.TypeMap
	for _, name := range f.Columns() {
		vals, _ := f.Column(name)
		t := frame.String
		for _, v := range vals {
			if v == nil {
				continue
			}
			t = inferType(v)
			break
		}
		tm = append(tm, frame.ColumnType{Name: name, Type: t})
	}
	return tm
}

func inferType(v any) frame.LogicalType {
	switch v.(type) {
	case float64, float32:
		return frame.Float
	case int32:
		return frame.Integer
	case int, int64:
		return frame.BigInteger
	case bool:
		return frame.Boolean
	case time.Time:
		return frame.DateTime
	case string, []byte:
		return frame.String
	default:
		return frame.String
	}
}
