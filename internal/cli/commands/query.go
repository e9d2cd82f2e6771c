package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/leapstack-labs/pgframe/pkg/bridge"
	"github.com/spf13/cobra"
)

// QueryOptions holds options for the query command.
type QueryOptions struct {
	Format     string
	Input      string
	Types      []string
	ParseDates []string
	ChunkSize  int
}

// NewQueryCommand creates the query command.
func NewQueryCommand() *cobra.Command {
	opts := &QueryOptions{}

	cmd := &cobra.Command{
		Use:   "query [SQL]",
		Short: "Run a read query and print the result",
		Long: `Execute a read-only SQL query against the configured database and print
the result as a table, CSV, JSON, or Markdown.

With --types, result columns are coerced to the given logical types
(DateTime columns are parsed as timestamps). With --chunk-size, results are
fetched and printed chunk by chunk.

When invoked without arguments, enters interactive REPL mode.`,
		Example: `  # Execute SQL directly
  pgframe query "SELECT * FROM sales"

  # Coerce result columns
  pgframe query "SELECT * FROM sales" --types "amount:Float,ts:DateTime"

  # Output as JSON
  pgframe query "SELECT * FROM sales" --format json

  # Interactive mode
  pgframe query`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "table", "Output format: table, json, csv, md")
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Read SQL from file")
	cmd.Flags().StringSliceVar(&opts.Types, "types", nil, "Column type specs, e.g. \"amount:Float,ts:DateTime\"")
	cmd.Flags().StringSliceVar(&opts.ParseDates, "parse-dates", nil, "Columns to parse as DateTime (ignored with --types)")
	cmd.Flags().IntVar(&opts.ChunkSize, "chunk-size", 0, "Fetch and print results in chunks of this many rows")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string, opts *QueryOptions) error {
	sqlText, err := resolveSQL(args, opts)
	if err != nil {
		return err
	}

	b, _, err := openBridge(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = b.Close() }()

	// No SQL given: interactive mode
	if sqlText == "" {
		return runQueryREPL(cmd, b, opts)
	}

	queryOpts, err := buildQueryOptions(opts)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if opts.ChunkSize > 0 {
		chunks, err := b.QueryChunks(cmd.Context(), sqlText, opts.ChunkSize, queryOpts...)
		if err != nil {
			return err
		}
		defer func() { _ = chunks.Close() }()
		for chunks.Next() {
			if err := renderFrame(out, chunks.Frame(), opts.Format); err != nil {
				return err
			}
		}
		return chunks.Err()
	}

	f, err := b.Query(cmd.Context(), sqlText, queryOpts...)
	if err != nil {
		return err
	}
	return renderFrame(out, f, opts.Format)
}

// resolveSQL determines the SQL source: argument > --input file > none (REPL).
func resolveSQL(args []string, opts *QueryOptions) (string, error) {
	if len(args) > 0 {
		return strings.TrimSpace(strings.Join(args, " ")), nil
	}
	if opts.Input != "" {
		content, err := os.ReadFile(opts.Input) //nolint:gosec // path is user-provided by design
		if err != nil {
			return "", fmt.Errorf("failed to read SQL file: %w", err)
		}
		return strings.TrimSpace(string(content)), nil
	}
	return "", nil
}

func buildQueryOptions(opts *QueryOptions) ([]bridge.QueryOption, error) {
	var queryOpts []bridge.QueryOption
	tm, err := parseTypeSpecs(opts.Types)
	if err != nil {
		return nil, err
	}
	if tm != nil {
		queryOpts = append(queryOpts, bridge.WithTypeMap(tm))
	}
	if len(opts.ParseDates) > 0 {
		queryOpts = append(queryOpts, bridge.WithParseDates(opts.ParseDates...))
	}
	return queryOpts, nil
}
