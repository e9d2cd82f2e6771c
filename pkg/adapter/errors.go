package adapter

import (
	"errors"
	"fmt"
)

// ErrNotConnected is returned when an operation is attempted before Connect.
var ErrNotConnected = errors.New("database connection not established")

// ConnectionError is returned when a connection handle cannot be constructed
// or the database cannot be reached.
type ConnectionError struct {
	Type string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to %s: %v", e.Type, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// TableExistsError is returned when creating a table whose name is taken.
type TableExistsError struct {
	Table string
}

func (e *TableExistsError) Error() string {
	return fmt.Sprintf("table %q already exists", e.Table)
}

// TableNotFoundError is returned by operations whose target table is absent.
type TableNotFoundError struct {
	Table string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("table %q not found", e.Table)
}

// TypeMismatchError is returned when loaded values conflict with a table's
// live column types.
type TypeMismatchError struct {
	Table string
	Err   error
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("values rejected by table %q schema: %v", e.Table, e.Err)
}

func (e *TypeMismatchError) Unwrap() error {
	return e.Err
}

// SchemaError is returned for DDL the dialect cannot express, including
// unknown logical types.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return "schema error: " + e.Reason
}

// QueryError is returned for malformed SQL or mismatches reported by the
// database while reading results.
type QueryError struct {
	SQL string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query failed: %v (sql: %s)", e.Err, e.SQL)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
