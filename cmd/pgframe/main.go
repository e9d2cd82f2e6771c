// Package main provides the pgframe command line interface.
package main

import (
	"os"

	"github.com/leapstack-labs/pgframe/internal/cli"

	// Register the built-in database adapters.
	_ "github.com/leapstack-labs/pgframe/pkg/adapters/duckdb"
	_ "github.com/leapstack-labs/pgframe/pkg/adapters/postgres"
	_ "github.com/leapstack-labs/pgframe/pkg/adapters/sqlite"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
