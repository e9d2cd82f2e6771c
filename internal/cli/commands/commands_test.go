package commands

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/pgframe/pkg/frame"
)

func TestNewCreateCommand(t *testing.T) {
	cmd := NewCreateCommand()

	assert.Contains(t, cmd.Use, "create")
	assert.NotEmpty(t, cmd.Short)
	assert.NotNil(t, cmd.Flags().Lookup("no-autoincrement"))
	assert.NotNil(t, cmd.Flags().Lookup("id-name"))
}

func TestNewLoadCommand(t *testing.T) {
	cmd := NewLoadCommand()

	assert.Contains(t, cmd.Use, "load")
	for _, flag := range []string{"table", "types", "create"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewQueryCommand(t *testing.T) {
	cmd := NewQueryCommand()

	assert.Contains(t, cmd.Use, "query")
	for _, flag := range []string{"format", "input", "types", "parse-dates", "chunk-size"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestNewTablesCommand(t *testing.T) {
	cmd := NewTablesCommand()

	assert.Contains(t, cmd.Use, "tables")
	assert.NotNil(t, cmd.Flags().Lookup("format"))
}

func TestNewDropCommand(t *testing.T) {
	cmd := NewDropCommand()

	assert.Contains(t, cmd.Use, "drop")
	assert.NotNil(t, cmd.Flags().Lookup("if-exists"))
}

func TestParseTypeSpecs(t *testing.T) {
	tests := []struct {
		name    string
		specs   []string
		want    frame.TypeMap
		wantErr string
	}{
		{
			name:  "empty returns nil map",
			specs: nil,
			want:  nil,
		},
		{
			name:  "separate arguments",
			specs: []string{"amount:Float", "ts:DateTime"},
			want: frame.TypeMap{
				{Name: "amount", Type: frame.Float},
				{Name: "ts", Type: frame.DateTime},
			},
		},
		{
			name:  "comma separated",
			specs: []string{"amount:Float,count:BigInteger"},
			want: frame.TypeMap{
				{Name: "amount", Type: frame.Float},
				{Name: "count", Type: frame.BigInteger},
			},
		},
		{
			name:  "whitespace tolerated",
			specs: []string{" amount : Float "},
			want: frame.TypeMap{
				{Name: "amount", Type: frame.Float},
			},
		},
		{
			name:    "missing colon",
			specs:   []string{"amount"},
			wantErr: "invalid column spec",
		},
		{
			name:    "unknown type",
			specs:   []string{"amount:Decimal"},
			wantErr: "unknown logical type",
		},
		{
			name:    "duplicate column",
			specs:   []string{"a:Float", "a:String"},
			wantErr: "duplicate column",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm, err := parseTypeSpecs(tt.specs)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, tm)
		})
	}
}

func renderTestFrame(t *testing.T) *frame.Frame {
	t.Helper()
	f, err := frame.New(
		frame.Series{Name: "id", Values: []any{int64(1), int64(2)}},
		frame.Series{Name: "note", Values: []any{"hello", nil}},
		frame.Series{Name: "ts", Values: []any{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), nil}},
	)
	require.NoError(t, err)
	return f
}

func TestRenderFrame_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderFrame(&buf, renderTestFrame(t), "table"))

	out := buf.String()
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "NULL")
	assert.Contains(t, out, "(2 rows)")
}

func TestRenderFrame_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderFrame(&buf, renderTestFrame(t), "csv"))

	out := buf.String()
	assert.Contains(t, out, "id,note,ts")
	assert.Contains(t, out, "1,hello,2024-01-01T00:00:00Z")
}

func TestRenderFrame_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderFrame(&buf, renderTestFrame(t), "json"))

	out := buf.String()
	assert.Contains(t, out, `"id"`)
	assert.Contains(t, out, `"hello"`)
}

func TestRenderFrame_Markdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderFrame(&buf, renderTestFrame(t), "md"))
	assert.Contains(t, buf.String(), "|")
}

func TestRenderFrame_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := renderFrame(&buf, renderTestFrame(t), "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}
