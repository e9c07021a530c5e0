package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agenthands/lattice/internal/core/graph"
	"github.com/agenthands/lattice/internal/core/model"
)

func loadGraphFile(path string) (model.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Graph{}, fmt.Errorf("failed to read %q: %w", path, err)
	}
	return model.ParseGraph(data)
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Report dangling links in a JSON graph file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			g, err := loadGraphFile(args[0])
			if err != nil {
				return err
			}

			report := graph.Validate(g)
			if report.IsValid {
				logger.Info("graph is structurally valid", "nodes", len(g.Nodes), "links", len(g.Links))
				return nil
			}

			for _, issue := range report.Issues {
				fmt.Fprintln(cmd.OutOrStdout(), issue)
			}
			return fmt.Errorf("%d issue(s) found", len(report.Issues))
		},
	}
}

func newComponentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "components FILE",
		Short: "List the connected components of a JSON graph file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := loadGraphFile(args[0])
			if err != nil {
				return err
			}

			components := graph.Components(g)
			fmt.Fprintf(cmd.OutOrStdout(), "%d component(s)\n", len(components))
			for i, members := range components {
				fmt.Fprintf(cmd.OutOrStdout(), "%d: %s\n", i+1, strings.Join(members, ", "))
			}
			return nil
		},
	}
}

func newNormalizeCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "normalize FILE",
		Short: "Normalize a JSON graph file (apply defaults, drop dangling links)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			g, err := loadGraphFile(args[0])
			if err != nil {
				return err
			}

			clean, dropped := graph.Normalize(g)
			if dropped > 0 {
				logger.Warn("dropped invalid links", "count", dropped)
			}

			data, err := json.MarshalIndent(clean, "", "  ")
			if err != nil {
				return err
			}
			data = append(data, '\n')

			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %q: %w", output, err)
			}
			logger.Info("wrote normalized graph", "path", output, "nodes", len(clean.Nodes), "links", len(clean.Links))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the normalized graph to this file instead of stdout")
	return cmd
}
