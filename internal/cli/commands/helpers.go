// Package commands implements the pgframe CLI subcommands.
package commands

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/pgframe/internal/cli/config"
	"github.com/leapstack-labs/pgframe/pkg/bridge"
	"github.com/leapstack-labs/pgframe/pkg/frame"
	"github.com/spf13/cobra"
)

// openBridge builds a connected bridge from the config stored on the command
// context. The caller owns the bridge and must Close it.
func openBridge(cmd *cobra.Command) (*bridge.Bridge, *config.Config, error) {
	cfg := config.FromContext(cmd.Context())
	if cfg == nil {
		return nil, nil, fmt.Errorf("no configuration loaded")
	}
	if err := cfg.Target.Validate(); err != nil {
		return nil, nil, err
	}

	b, err := bridge.Open(cmd.Context(), cfg.Target.ToAdapterConfig(), newLogger(cmd, cfg.Verbose))
	if err != nil {
		return nil, nil, err
	}
	return b, cfg, nil
}

// newLogger returns a text logger on the command's stderr, debug-level when
// verbose.
func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

// parseTypeSpecs parses "name:Type" column specs (as separate arguments or
// one comma-separated string) into a TypeMap.
func parseTypeSpecs(specs []string) (frame.TypeMap, error) {
	var entries []frame.ColumnType
	for _, spec := range specs {
		for _, part := range strings.Split(spec, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			name, typeName, ok := strings.Cut(part, ":")
			if !ok {
				return nil, fmt.Errorf("invalid column spec %q (want name:Type)", part)
			}
			t, err := frame.ParseLogicalType(strings.TrimSpace(typeName))
			if err != nil {
				return nil, err
			}
			entries = append(entries, frame.ColumnType{Name: strings.TrimSpace(name), Type: t})
		}
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return frame.NewTypeMap(entries...)
}
