package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/leapstack-labs/pgframe/pkg/adapter"
	"github.com/leapstack-labs/pgframe/pkg/frame"
	"github.com/spf13/cobra"
)

// LoadOptions holds options for the load command.
type LoadOptions struct {
	Table  string
	Types  []string
	Create bool
}

// NewLoadCommand creates the load command.
func NewLoadCommand() *cobra.Command {
	opts := &LoadOptions{}

	cmd := &cobra.Command{
		Use:   "load CSVFILE",
		Short: "Load a CSV file into a database table",
		Long: `Load rows from a CSV file (with a header row) into a database table.

With --types, columns are coerced to the given logical types before loading.
With --create, the table is created from the CSV's structure first when it
does not exist yet.`,
		Example: `  # Append into an existing table
  pgframe load sales.csv --table sales --types "amount:Float,count:Integer,ts:DateTime"

  # Create the table if needed, then load
  pgframe load sales.csv --table sales --create`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoad(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Table, "table", "t", "", "Target table name (required)")
	cmd.Flags().StringSliceVar(&opts.Types, "types", nil, "Column type specs, e.g. \"amount:Float,ts:DateTime\"")
	cmd.Flags().BoolVar(&opts.Create, "create", false, "Create the table from the CSV structure when absent")
	_ = cmd.MarkFlagRequired("table")

	return cmd
}

func runLoad(cmd *cobra.Command, path string, opts *LoadOptions) error {
	tm, err := parseTypeSpecs(opts.Types)
	if err != nil {
		return err
	}

	f, err := readCSVFile(path)
	if err != nil {
		return err
	}

	b, _, err := openBridge(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = b.Close() }()

	ctx := cmd.Context()
	if opts.Create {
		err := b.CreateTableFromFrame(ctx, f, opts.Table, tm)
		var exists *adapter.TableExistsError
		if err != nil && !errors.As(err, &exists) {
			return err
		}
	}

	if err := b.Append(ctx, f, opts.Table, tm); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d rows into %q\n", f.Len(), opts.Table)
	return nil
}

func readCSVFile(path string) (*frame.Frame, error) {
	file, err := os.Open(path) //nolint:gosec // path is user-provided by design
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return frame.ReadCSV(file)
}
