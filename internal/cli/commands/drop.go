package commands

import (
	"errors"
	"fmt"

	"github.com/leapstack-labs/pgframe/pkg/adapter"
	"github.com/spf13/cobra"
)

// DropOptions holds options for the drop command.
type DropOptions struct {
	IfExists bool
}

// NewDropCommand creates the drop command.
func NewDropCommand() *cobra.Command {
	opts := &DropOptions{}

	cmd := &cobra.Command{
		Use:   "drop TABLE...",
		Short: "Drop one or more tables",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDrop(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.IfExists, "if-exists", false, "Do not fail when a table is missing")

	return cmd
}

func runDrop(cmd *cobra.Command, args []string, opts *DropOptions) error {
	b, _, err := openBridge(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = b.Close() }()

	for _, table := range args {
		if err := b.Drop(cmd.Context(), table); err != nil {
			var notFound *adapter.TableNotFoundError
			if opts.IfExists && errors.As(err, &notFound) {
				continue
			}
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Dropped table %q\n", table)
	}
	return nil
}
