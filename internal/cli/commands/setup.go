// Package commands implements the famplot subcommands.
package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/wgraj/famplot/internal/batch"
	"github.com/wgraj/famplot/internal/cli/config"
	"github.com/wgraj/famplot/internal/cli/output"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext creates a CommandContext from the loaded configuration.
// Commands run outside the root command load configuration from defaults,
// files and the environment.
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	cfg, err := getConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := config.GetLogger(cmd.Context())
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.OutputFormat))

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: r,
	}, nil
}

// NewBatch creates the chart batch renderer for the context's configuration.
func (c *CommandContext) NewBatch() *batch.Renderer {
	return batch.New(c.Cfg.BatchOptions(c.Logger))
}

// getConfig returns the current configuration, loading it from the
// command's flags when no root command has done so.
func getConfig(cmd *cobra.Command) (*config.Config, error) {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg, nil
	}
	cfg, err := config.LoadConfig("", cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}
