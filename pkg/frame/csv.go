package frame

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// ReadCSV reads a CSV document with a header row into a frame. Every value
// is read as a string; use Coerce with a TypeMap to narrow the columns.
func ReadCSV(r io.Reader) (*Frame, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	series := make([]Series, len(header))
	for i, name := range header {
		series[i] = Series{Name: name}
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		for i := range series {
			series[i].Values = append(series[i].Values, record[i])
		}
	}

	return New(series...)
}

// WriteCSV writes the frame as a CSV document with a header row.
// DateTime values are rendered in RFC 3339.
func (f *Frame) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(f.names); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	record := make([]string, len(f.names))
	for i := 0; i < f.length; i++ {
		for j, name := range f.names {
			record[j] = formatCSVValue(f.data[name][i])
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func formatCSVValue(v any) string {
	if v == nil {
		return ""
	}
	if ts, ok := v.(time.Time); ok {
		return ts.Format(time.RFC3339)
	}
	s, _ := toString(v)
	return s
}
