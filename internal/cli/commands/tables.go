package commands

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/leapstack-labs/pgframe/pkg/bridge"
	"github.com/leapstack-labs/pgframe/pkg/frame"
	"github.com/spf13/cobra"
)

// TablesOptions holds options for the tables command.
type TablesOptions struct {
	Format string
}

// NewTablesCommand creates the tables command.
func NewTablesCommand() *cobra.Command {
	opts := &TablesOptions{}

	cmd := &cobra.Command{
		Use:   "tables [TABLE]",
		Short: "List tables or show a table's schema",
		Long: `List the tables in the target database, or show the column
schema of a single table when a name is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTables(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "table", "Output format (table, json, csv, md)")

	return cmd
}

func runTables(cmd *cobra.Command, args []string, opts *TablesOptions) error {
	b, _, err := openBridge(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = b.Close() }()

	ctx := cmd.Context()
	if len(args) == 1 {
		return renderTableSchema(ctx, cmd.OutOrStdout(), b, args[0], opts.Format)
	}
	return renderTableList(ctx, cmd.OutOrStdout(), b, opts.Format)
}

func renderTableList(ctx context.Context, w io.Writer, b *bridge.Bridge, format string) error {
	tables, err := b.Tables(ctx)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	f, err := frame.New(
		frame.Series{Name: "table", Values: make([]any, 0, len(names))},
		frame.Series{Name: "columns", Values: make([]any, 0, len(names))},
		frame.Series{Name: "rows", Values: make([]any, 0, len(names))},
	)
	if err != nil {
		return err
	}
	for _, name := range names {
		md := tables[name]
		if err := f.AppendRow(name, int64(len(md.Columns)), md.RowCount); err != nil {
			return err
		}
	}

	return renderFrame(w, f, format)
}

func renderTableSchema(ctx context.Context, w io.Writer, b *bridge.Bridge, table, format string) error {
	md, err := b.Adapter().GetTableMetadata(ctx, table)
	if err != nil {
		return err
	}

	f, err := frame.New(
		frame.Series{Name: "column", Values: make([]any, 0, len(md.Columns))},
		frame.Series{Name: "type", Values: make([]any, 0, len(md.Columns))},
		frame.Series{Name: "nullable", Values: make([]any, 0, len(md.Columns))},
	)
	if err != nil {
		return err
	}
	for _, col := range md.Columns {
		if err := f.AppendRow(col.Name, col.Type, col.Nullable); err != nil {
			return err
		}
	}

	if err := renderFrame(w, f, format); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "%d rows in %s\n", md.RowCount, table)
	return nil
}
