package bridge

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/leapstack-labs/pgframe/pkg/frame"
)

// Query executes a read query and returns the full result as one frame.
// See the QueryOption constructors for parameters, index columns, date
// parsing, and type coercion. Fails with a QueryError on malformed SQL or
// result mismatches reported by the database.
func (b *Bridge) Query(ctx context.Context, sqlText string, opts ...QueryOption) (*frame.Frame, error) {
	o := newQueryOptions(opts)

	rows, err := b.adapter.Query(ctx, sqlText, o.params...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	f, _, err := readRows(rows.Rows, columns, -1)
	if err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating result rows: %w", err)
	}

	return b.shapeResult(f, o)
}

// shapeResult applies coercion and index metadata to a scanned frame.
// A type map wins over a parse-dates list; its non-DateTime entries coerce in
// one pass and its DateTime entries take the date-parsing path.
func (b *Bridge) shapeResult(f *frame.Frame, o queryOptions) (*frame.Frame, error) {
	tm := o.typeMap
	if tm == nil && len(o.parseDates) > 0 {
		for _, name := range o.parseDates {
			tm = append(tm, frame.ColumnType{Name: name, Type: frame.DateTime})
		}
	}
	if tm != nil {
		var err error
		f, err = frame.Coerce(f, tm, b.logger)
		if err != nil {
			return nil, err
		}
	}
	if len(o.indexCols) > 0 {
		if err := f.SetIndex(o.indexCols...); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// readRows scans up to limit rows (all rows when limit < 0) into a frame.
// Byte slices are converted to strings, matching how drivers surface text.
// The second return reports whether the cursor has more rows.
func readRows(rows *sql.Rows, columns []string, limit int) (*frame.Frame, bool, error) {
	series := make([]frame.Series, len(columns))
	for i, name := range columns {
		series[i] = frame.Series{Name: name}
	}

	count := 0
	exhausted := false
	for limit < 0 || count < limit {
		if !rows.Next() {
			exhausted = true
			break
		}
		values := make([]any, len(columns))
		valuePtrs := make([]any, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, false, fmt.Errorf("failed to scan result row: %w", err)
		}
		for i, v := range values {
			if bs, ok := v.([]byte); ok {
				v = string(bs)
			}
			series[i].Values = append(series[i].Values, v)
		}
		count++
	}

	f, err := frame.New(series...)
	if err != nil {
		return nil, false, err
	}
	return f, !exhausted, nil
}
