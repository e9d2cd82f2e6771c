package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/leapstack-labs/pgframe/pkg/frame"
)

func renderFrame(w io.Writer, f *frame.Frame, format string) error {
	switch format {
	case "json":
		return renderJSON(w, f)
	case "csv":
		return f.WriteCSV(w)
	case "md", "markdown":
		renderPretty(w, f, true)
		return nil
	case "table":
		renderPretty(w, f, false)
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want table, json, csv, or md)", format)
	}
}

func renderPretty(w io.Writer, f *frame.Frame, markdown bool) {
	if f.Len() == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return
	}

	cols := f.Columns()

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	// Header
	headerRow := make(table.Row, len(cols))
	for i, col := range cols {
		headerRow[i] = col
	}
	t.AppendHeader(headerRow)

	// Rows
	for i := 0; i < f.Len(); i++ {
		values := f.Row(i)
		row := make(table.Row, len(cols))
		for j := range cols {
			row[j] = formatValue(values[j])
		}
		t.AppendRow(row)
	}

	if markdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}
	_, _ = fmt.Fprintf(w, "(%d rows)\n", f.Len())
}

func renderJSON(w io.Writer, f *frame.Frame) error {
	cols := f.Columns()
	results := make([]map[string]any, 0, f.Len())
	for i := 0; i < f.Len(); i++ {
		values := f.Row(i)
		row := make(map[string]any, len(cols))
		for j, col := range cols {
			row[col] = values[j]
		}
		results = append(results, row)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	if ts, ok := v.(time.Time); ok {
		return ts.Format(time.RFC3339)
	}
	s := fmt.Sprintf("%v", v)
	return strings.TrimSpace(s)
}
