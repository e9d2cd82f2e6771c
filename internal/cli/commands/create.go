package commands

import (
	"fmt"

	"github.com/leapstack-labs/pgframe/pkg/bridge"
	"github.com/spf13/cobra"
)

// CreateOptions holds options for the create command.
type CreateOptions struct {
	NoAutoIncrement bool
	IDName          string
}

// NewCreateCommand creates the create command.
func NewCreateCommand() *cobra.Command {
	opts := &CreateOptions{}

	cmd := &cobra.Command{
		Use:   "create TABLE COLUMN:TYPE...",
		Short: "Create a table from column type specs",
		Long: `Create a database table from column:type specs.

Types: Float, Integer, BigInteger, Boolean, String, DateTime.
Unless --no-autoincrement is given, an auto-incrementing integer primary key
is prepended (named by --id-name, default "id").`,
		Example: `  # Create a table with an id primary key
  pgframe create orders amount:Float count:Integer ts:DateTime

  # No primary key, custom spec list
  pgframe create tags --no-autoincrement "name:String,active:Boolean"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.NoAutoIncrement, "no-autoincrement", false, "Do not prepend an auto-incrementing primary key")
	cmd.Flags().StringVar(&opts.IDName, "id-name", "id", "Name of the auto-increment column")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string, opts *CreateOptions) error {
	table := args[0]
	tm, err := parseTypeSpecs(args[1:])
	if err != nil {
		return err
	}
	if tm == nil {
		return fmt.Errorf("no columns specified")
	}

	b, _, err := openBridge(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = b.Close() }()

	createOpts := []bridge.CreateOption{
		bridge.WithAutoIncrement(!opts.NoAutoIncrement),
		bridge.WithAutoIncrementName(opts.IDName),
	}
	if err := b.CreateTable(cmd.Context(), table, tm, createOpts...); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Table %q created\n", table)
	return nil
}
