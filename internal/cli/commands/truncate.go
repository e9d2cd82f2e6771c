package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewTruncateCommand creates the truncate command.
func NewTruncateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "truncate TABLE",
		Short: "Remove all rows from a table",
		Long: `Remove every row from a table while keeping its schema intact.
The table must already exist in the target database.`,
		Args: cobra.ExactArgs(1),
		RunE: runTruncate,
	}
}

func runTruncate(cmd *cobra.Command, args []string) error {
	b, _, err := openBridge(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = b.Close() }()

	table := args[0]
	if err := b.Truncate(cmd.Context(), table); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Truncated table %q\n", table)
	return nil
}
