package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/wgraj/famplot/internal/cli/config"
	"github.com/wgraj/famplot/internal/cli/output"
)

// NewConfigCommand creates the config command.
func NewConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration after merging defaults, famplot.yaml,
FAMPLOT_ environment variables and flags. The YAML output is a valid
famplot.yaml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(cmd)
		},
	}
}

func runConfig(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer
	cfg := cmdCtx.Cfg

	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(cfg)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	source := config.GetConfigFileUsed()
	if source == "" {
		source = "(none)"
	}

	switch r.EffectiveMode() {
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Configuration"))
		r.Println("")
		r.Println(output.FormatKeyValue("Config File", source))
		r.Println("")
		r.Println(output.FormatCodeBlock("yaml", string(data)))
	default:
		r.Muted("# config file: " + source)
		r.Printf("%s", data)
	}
	return nil
}
