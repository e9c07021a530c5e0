// Package cli implements the lattice command-line interface: offline
// inspection and repair of JSON graph files, without a running server or any
// LLM provider.
package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// Execute runs the lattice CLI. The logger is attached to the command context
// and picked up by subcommands; --verbose switches it to debug level.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "lattice",
		Short:        "lattice inspects and repairs extracted knowledge graphs",
		Long:         `lattice is a CLI companion to the lattice server: it validates, analyzes, and normalizes JSON graph files offline.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
				ReportTimestamp: true,
				TimeFormat:      "15:04:05.00",
				Level:           level,
			})
			cmd.SetContext(withLogger(cmd.Context(), logger))
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newValidateCmd())
	root.AddCommand(newComponentsCmd())
	root.AddCommand(newNormalizeCmd())

	return root.ExecuteContext(context.Background())
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *charmlog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

func loggerFromContext(ctx context.Context) *charmlog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*charmlog.Logger); ok {
		return l
	}
	return charmlog.Default()
}
