package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wgraj/famplot/internal/batch"
	"github.com/wgraj/famplot/internal/cli/output"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the charts and their inputs and outputs",
		Long: `List every chart with its input CSV file and the files it writes.

Use --output to override: auto, text, markdown, json`,
		Example: `  # List charts
  famplot list

  # List charts as JSON
  famplot list --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd)
		},
	}

	return cmd
}

func runList(cmd *cobra.Command) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer
	b := cmdCtx.NewBatch()

	charts := chartInfos(b, cmdCtx.Cfg.DataDir, cmdCtx.Cfg.Formats)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(output.ListOutput{Charts: charts})
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, fmt.Sprintf("Charts (%d total)", len(charts))))
		r.Println("")
	default:
		r.Header(1, fmt.Sprintf("Charts (%d total)", len(charts)))
	}

	rows := make([][]string, 0, len(charts))
	for _, c := range charts {
		rows = append(rows, []string{c.ID, c.Name, filepath.Base(c.Input), strings.Join(baseNames(c.Outputs), ", ")})
	}
	r.Table([]string{"ID", "Chart", "Input", "Outputs"}, rows)
	return nil
}

func chartInfos(b *batch.Renderer, dataDir string, formats []string) []output.ChartInfo {
	jobs := b.Jobs()
	charts := make([]output.ChartInfo, 0, len(jobs))
	for _, j := range jobs {
		base := b.OutputBase(j)
		outputs := make([]string, len(formats))
		for i, f := range formats {
			outputs[i] = base + "." + f
		}
		charts = append(charts, output.ChartInfo{
			ID:          j.ID,
			Name:        j.Name,
			Description: j.Description,
			Table:       j.Table.Name,
			Input:       filepath.Join(dataDir, j.Table.File),
			Outputs:     outputs,
		})
	}
	return charts
}
