// Package frame provides the in-memory table representation moved in and out
// of relational databases by the bridge. A Frame holds ordered, named columns
// of untyped values; coercion against a TypeMap narrows them to the Go types
// the logical type system defines.
package frame

import (
	"fmt"
	"time"
)

// Series is a single named column of values.
type Series struct {
	Name   string
	Values []any
}

// Frame is an ordered collection of equal-length columns.
type Frame struct {
	names  []string
	data   map[string][]any
	index  []string
	length int
}

// New builds a frame from series. All series must have the same length and
// unique names. A frame with zero series is valid and has zero rows.
func New(series ...Series) (*Frame, error) {
	f := &Frame{data: make(map[string][]any, len(series))}
	for i, s := range series {
		if _, ok := f.data[s.Name]; ok {
			return nil, fmt.Errorf("duplicate column %q", s.Name)
		}
		if i == 0 {
			f.length = len(s.Values)
		} else if len(s.Values) != f.length {
			return nil, fmt.Errorf("column %q has %d values, expected %d", s.Name, len(s.Values), f.length)
		}
		f.names = append(f.names, s.Name)
		f.data[s.Name] = s.Values
	}
	return f, nil
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return f.length
}

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.names))
	copy(out, f.names)
	return out
}

// Column returns the values of a named column.
func (f *Frame) Column(name string) ([]any, bool) {
	vals, ok := f.data[name]
	return vals, ok
}

// Value returns the value at (row, column).
func (f *Frame) Value(row int, column string) (any, error) {
	vals, ok := f.data[column]
	if !ok {
		return nil, fmt.Errorf("no column %q", column)
	}
	if row < 0 || row >= f.length {
		return nil, fmt.Errorf("row %d out of range [0,%d)", row, f.length)
	}
	return vals[row], nil
}

// Row returns the values of one row in column order.
func (f *Frame) Row(i int) []any {
	out := make([]any, len(f.names))
	for j, name := range f.names {
		out[j] = f.data[name][i]
	}
	return out
}

// AppendRow appends one value per column, in column order.
func (f *Frame) AppendRow(values ...any) error {
	if len(values) != len(f.names) {
		return fmt.Errorf("got %d values for %d columns", len(values), len(f.names))
	}
	for i, name := range f.names {
		f.data[name] = append(f.data[name], values[i])
	}
	f.length++
	return nil
}

// SetIndex records which columns act as the frame's index. The values stay
// in place; the index is advisory metadata for consumers.
func (f *Frame) SetIndex(columns ...string) error {
	for _, c := range columns {
		if _, ok := f.data[c]; !ok {
			return fmt.Errorf("no column %q", c)
		}
	}
	f.index = append([]string(nil), columns...)
	return nil
}

// Index returns the recorded index column names, if any.
func (f *Frame) Index() []string {
	return append([]string(nil), f.index...)
}

// typeVector renders each column's current Go type for diagnostic logging,
// sampled from the first non-nil value.
func (f *Frame) typeVector() []string {
	out := make([]string, 0, len(f.names))
	for _, name := range f.names {
		goType := "nil"
		for _, v := range f.data[name] {
			if v == nil {
				continue
			}
			switch v.(type) {
			case time.Time:
				goType = "time.Time"
			default:
				goType = fmt.Sprintf("%T", v)
			}
			break
		}
		out = append(out, name+":"+goType)
	}
	return out
}
