package bridge

import "github.com/leapstack-labs/pgframe/pkg/frame"

// CreateOption configures CreateTable.
type CreateOption func(*createOptions)

type createOptions struct {
	autoIncrement     bool
	autoIncrementName string
}

func newCreateOptions(opts []CreateOption) createOptions {
	o := createOptions{autoIncrement: true, autoIncrementName: "id"}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithAutoIncrement controls whether an auto-incrementing integer primary
// key is prepended to the created table. Enabled by default.
func WithAutoIncrement(enabled bool) CreateOption {
	return func(o *createOptions) { o.autoIncrement = enabled }
}

// WithAutoIncrementName sets the name of the auto-increment column
// (default "id"). Only meaningful while auto-increment is enabled.
func WithAutoIncrementName(name string) CreateOption {
	return func(o *createOptions) { o.autoIncrementName = name }
}

// QueryOption configures Query and QueryChunks.
type QueryOption func(*queryOptions)

type queryOptions struct {
	params     []any
	indexCols  []string
	parseDates []string
	typeMap    frame.TypeMap
}

func newQueryOptions(opts []QueryOption) queryOptions {
	var o queryOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithParams supplies statement parameters for the query's placeholders.
func WithParams(args ...any) QueryOption {
	return func(o *queryOptions) { o.params = args }
}

// WithIndexColumns records the named columns as the result frame's index.
func WithIndexColumns(columns ...string) QueryOption {
	return func(o *queryOptions) { o.indexCols = columns }
}

// WithParseDates names result columns to parse as DateTime values.
// Ignored when a type map is also supplied.
func WithParseDates(columns ...string) QueryOption {
	return func(o *queryOptions) { o.parseDates = columns }
}

// WithTypeMap coerces the result columns to the map's logical types.
// DateTime entries take the date-parsing path; the map overrides any
// WithParseDates list.
func WithTypeMap(tm frame.TypeMap) QueryOption {
	return func(o *queryOptions) { o.typeMap = tm }
}
