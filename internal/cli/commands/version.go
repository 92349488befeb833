package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func NewVersionCommand(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display famplot version and build information.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "famplot v%s\n", version)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Dependency family charts built with %s, gonum/plot and DuckDB\n", runtime.Version())
		},
	}
}
