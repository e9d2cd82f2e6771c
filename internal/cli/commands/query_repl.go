package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/pgframe/pkg/bridge"
	"github.com/spf13/cobra"
)

func runQueryREPL(cmd *cobra.Command, b *bridge.Bridge, opts *QueryOptions) error {
	ctx := cmd.Context()

	// Get table names for completion
	completer := newTableCompleter(ctx, b)

	// Configure readline
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "pgframe> ",
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	// Print welcome message
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "pgframe Query REPL (%s)\n", b.Adapter().DialectName())
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	// REPL loop
	var multiLineBuffer strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			multiLineBuffer.Reset()
			rl.SetPrompt("pgframe> ")
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Handle dot-commands
		if strings.HasPrefix(line, ".") {
			if quit := handleDotCommand(cmd, b, line, opts.Format); quit {
				break
			}
			continue
		}

		// Accumulate multi-line SQL until semicolon
		multiLineBuffer.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			multiLineBuffer.WriteString(" ")
			rl.SetPrompt("    ...> ")
			continue
		}
		rl.SetPrompt("pgframe> ")

		// Execute query
		query := strings.TrimSuffix(multiLineBuffer.String(), ";")
		multiLineBuffer.Reset()

		f, err := b.Query(ctx, query)
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		} else if err := renderFrame(cmd.OutOrStdout(), f, opts.Format); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout())
	}

	return nil
}

// handleDotCommand runs one REPL dot-command and reports whether to quit.
func handleDotCommand(cmd *cobra.Command, b *bridge.Bridge, line, format string) bool {
	ctx := cmd.Context()
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(cmd.OutOrStdout())

	case ".tables":
		if err := renderTableList(ctx, cmd.OutOrStdout(), b, format); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}

	case ".schema":
		if len(parts) < 2 {
			_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Usage: .schema <table>")
			break
		}
		if err := renderTableSchema(ctx, cmd.OutOrStdout(), b, parts[1], format); err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		}

	case ".clear":
		fmt.Print("\033[H\033[2J")

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .tables         List all tables
  .schema <name>  Show schema for a table
  .clear          Clear the screen
  .quit / .exit   Exit the REPL

Tips:
  - SQL statements must end with a semicolon (;)
  - Use arrow keys to navigate history
  - Tab completion works for table names
`
	_, _ = fmt.Fprintln(w, help)
}

// newTableCompleter creates a readline completer for table names.
func newTableCompleter(ctx context.Context, b *bridge.Bridge) *readline.PrefixCompleter {
	tables, err := b.Tables(ctx)
	if err != nil {
		return readline.NewPrefixCompleter()
	}

	names := make([]string, 0, len(tables))
	for name := range tables {
		names = append(names, name)
	}
	sort.Strings(names)

	var items []readline.PrefixCompleterInterface
	for _, name := range names {
		items = append(items, readline.PcItem(name))
	}

	return readline.NewPrefixCompleter(
		readline.PcItem("SELECT", readline.PcItem("* FROM", items...)),
		readline.PcItem(".schema", items...),
		readline.PcItem(".tables"),
		readline.PcItem(".help"),
		readline.PcItem(".quit"),
	)
}
