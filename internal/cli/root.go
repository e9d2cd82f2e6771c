// Package cli provides the command-line interface for pgframe.
package cli

import (
	"fmt"
	"os"

	"github.com/leapstack-labs/pgframe/internal/cli/commands"
	"github.com/leapstack-labs/pgframe/internal/cli/config"
	"github.com/spf13/cobra"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pgframe",
		Short: "pgframe - typed tables in and out of your database",
		Long: `pgframe moves tabular data between CSV files, in-memory frames, and a
relational database (PostgreSQL, SQLite, or DuckDB), enforcing a small set of
logical column types along the way.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			cmd.SetContext(config.NewContext(cmd.Context(), cfg))

			if cfg.Verbose {
				if configFile := config.GetConfigFileUsed(); configFile != "" {
					fmt.Fprintf(os.Stderr, "Using config file: %s\n", configFile)
				}
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./pgframe.yaml)")
	rootCmd.PersistentFlags().String("type", "", "Database type (postgres|sqlite|duckdb)")
	rootCmd.PersistentFlags().String("path", "", "Database file path for sqlite/duckdb (empty for in-memory)")
	rootCmd.PersistentFlags().String("host", "", "Database host")
	rootCmd.PersistentFlags().Int("port", 0, "Database port")
	rootCmd.PersistentFlags().String("database", "", "Database name")
	rootCmd.PersistentFlags().String("user", "", "Database user")
	rootCmd.PersistentFlags().String("password", "", "Database password")
	rootCmd.PersistentFlags().String("schema", "", "Default schema")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	// Register completion for type flag
	_ = rootCmd.RegisterFlagCompletionFunc("type", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"postgres", "sqlite", "duckdb"}, cobra.ShellCompDirectiveNoFileComp
	})

	// Add subcommands
	rootCmd.AddCommand(commands.NewVersionCommand(Version, BuildDate, GitCommit))
	rootCmd.AddCommand(commands.NewCreateCommand())
	rootCmd.AddCommand(commands.NewLoadCommand())
	rootCmd.AddCommand(commands.NewQueryCommand())
	rootCmd.AddCommand(commands.NewTablesCommand())
	rootCmd.AddCommand(commands.NewTruncateCommand())
	rootCmd.AddCommand(commands.NewDropCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
