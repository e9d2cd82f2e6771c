package bridge

import (
	"context"
	"fmt"

	"github.com/leapstack-labs/pgframe/pkg/adapter"
	"github.com/leapstack-labs/pgframe/pkg/frame"
)

// Chunks is a lazy, forward-only iterator over query results, yielding one
// frame per chunk. It is not restartable: once consumed, the underlying
// cursor is gone. Callers must Close it, typically via defer.
//
//	chunks, err := b.QueryChunks(ctx, sqlText, 1000)
//	if err != nil { ... }
//	defer chunks.Close()
//	for chunks.Next() {
//		f := chunks.Frame()
//		...
//	}
//	if err := chunks.Err(); err != nil { ... }
type Chunks struct {
	bridge  *Bridge
	rows    *adapter.Rows
	columns []string
	size    int
	opts    queryOptions

	cur  *frame.Frame
	err  error
	done bool
}

// QueryChunks executes a read query and returns its results as a sequence of
// frames of at most chunkSize rows each, scanned on demand.
func (b *Bridge) QueryChunks(ctx context.Context, sqlText string, chunkSize int, opts ...QueryOption) (*Chunks, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}
	o := newQueryOptions(opts)

	rows, err := b.adapter.Query(ctx, sqlText, o.params...)
	if err != nil {
		return nil, err
	}

	columns, err := rows.Columns()
	if err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	return &Chunks{
		bridge:  b,
		rows:    rows,
		columns: columns,
		size:    chunkSize,
		opts:    o,
	}, nil
}

// Next scans the next chunk. It returns false when the results are exhausted
// or an error occurred; check Err after the loop.
func (c *Chunks) Next() bool {
	if c.done || c.err != nil {
		return false
	}

	f, more, err := readRows(c.rows.Rows, c.columns, c.size)
	if err != nil {
		c.err = err
		c.done = true
		return false
	}
	if !more {
		c.done = true
		if err := c.rows.Err(); err != nil {
			c.err = fmt.Errorf("error iterating result rows: %w", err)
			return false
		}
	}
	if f.Len() == 0 {
		return false
	}

	shaped, err := c.bridge.shapeResult(f, c.opts)
	if err != nil {
		c.err = err
		c.done = true
		return false
	}
	c.cur = shaped
	return true
}

// Frame returns the chunk scanned by the last successful Next.
func (c *Chunks) Frame() *frame.Frame {
	return c.cur
}

// Err returns the first error encountered while iterating.
func (c *Chunks) Err() error {
	return c.err
}

// Close releases the underlying cursor.
func (c *Chunks) Close() error {
	return c.rows.Close()
}
