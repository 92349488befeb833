package commands

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wgraj/famplot/internal/batch"
	"github.com/wgraj/famplot/internal/cli/output"
)

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "render [chart...]",
		Short: "Render charts from the input CSV files",
		Long: `Render every chart, or the named charts, from the CSV files in the data
directory. Each chart is written to the plots directory once per output format.

Charts are named by ID (2_1_1) or name (family-cardinality); see 'famplot list'.
The first error stops the batch.

Output adapts to environment:
  - Terminal: Styled, colored output
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # Render all charts as PGF and PNG
  famplot render

  # Render two charts as PDF only
  famplot render 2_1_1 co-use --format pdf

  # Re-render charts whenever their input CSV changes
  famplot render --watch`,
		ValidArgsFunction: completeCharts,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, watch)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-render charts when their input files change")
	cmd.Flags().StringSliceP("format", "f", nil, "Output formats (tex|pdf|svg|eps|png|jpg|tif), repeatable")
	cmd.Flags().Bool("titles", false, "Draw chart titles")
	cmd.Flags().Int("average-rank-limit", 0, "Ranks shown in the rank average chart (0 for all)")

	return cmd
}

func runRender(cmd *cobra.Command, args []string, watch bool) error {
	cmdCtx, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	if err := cmdCtx.Cfg.ValidateDirectories(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := cmdCtx.Renderer
	b := cmdCtx.NewBatch()

	start := time.Now()
	artifacts, err := b.Run(ctx, args...)
	if err != nil {
		return err
	}
	if err := renderSummary(r, cmdCtx.Cfg.PlotsDir, artifacts, time.Since(start)); err != nil {
		return err
	}

	if !watch {
		return nil
	}
	if r.EffectiveMode() == output.ModeText {
		r.Muted("Watching " + cmdCtx.Cfg.DataDir + " for changes (Ctrl+C to stop)")
	}
	return b.Watch(ctx, func(artifacts []batch.Artifact) {
		if err := renderSummary(r, cmdCtx.Cfg.PlotsDir, artifacts, 0); err != nil {
			cmdCtx.Logger.Error("failed to print summary", "error", err)
		}
	})
}

// renderSummary prints the artifacts written by one run.
func renderSummary(r *output.Renderer, plotsDir string, artifacts []batch.Artifact, elapsed time.Duration) error {
	files := 0
	for _, a := range artifacts {
		files += len(a.Files)
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return renderJSON(r, plotsDir, artifacts, files, elapsed)
	case output.ModeMarkdown:
		renderMarkdown(r, plotsDir, artifacts, files)
	default:
		renderText(r, plotsDir, artifacts, files, elapsed)
	}
	return nil
}

func renderText(r *output.Renderer, plotsDir string, artifacts []batch.Artifact, files int, elapsed time.Duration) {
	r.Println("")
	r.Header(2, "Rendered Charts")
	for _, a := range artifacts {
		r.StatusLine(a.ID+" "+a.Name, "success", strings.Join(baseNames(a.Files), " "))
		if a.Dropped > 0 {
			r.Warning(fmt.Sprintf("%s: %s observations not shown (empty cells or non-positive values on log axes)", a.ID, output.FormatCount(a.Dropped)))
		}
	}
	r.Println("")
	summary := fmt.Sprintf("%d charts, %d files in %s", len(artifacts), files, plotsDir)
	if elapsed > 0 {
		summary += fmt.Sprintf(" (%s)", elapsed.Round(time.Millisecond))
	}
	r.Muted(summary)
}

func renderMarkdown(r *output.Renderer, plotsDir string, artifacts []batch.Artifact, files int) {
	r.Println(output.FormatHeader(1, "Rendered Charts"))
	r.Println("")

	rows := make([][]string, 0, len(artifacts))
	for _, a := range artifacts {
		rows = append(rows, []string{
			a.ID,
			a.Name,
			output.FormatCount(a.Points),
			strings.Join(baseNames(a.Files), ", "),
		})
	}
	r.Table([]string{"ID", "Chart", "Points", "Files"}, rows)
	r.Println("")
	r.Println(output.FormatKeyValue("Plots Directory", plotsDir))
	r.Printf("**Total Files:** %d\n", files)
}

func renderJSON(r *output.Renderer, plotsDir string, artifacts []batch.Artifact, files int, elapsed time.Duration) error {
	charts := make([]output.ChartResult, 0, len(artifacts))
	for _, a := range artifacts {
		charts = append(charts, output.ChartResult{
			ID:         a.ID,
			Name:       a.Name,
			Files:      a.Files,
			Points:     a.Points,
			Dropped:    a.Dropped,
			DurationMs: a.Duration.Milliseconds(),
		})
	}
	return r.JSON(output.RenderOutput{
		Charts: charts,
		Summary: output.RenderSummary{
			Charts:     len(charts),
			Files:      files,
			PlotsDir:   plotsDir,
			DurationMs: elapsed.Milliseconds(),
		},
	})
}

func baseNames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return names
}

// completeCharts completes chart names not already given.
func completeCharts(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	given := make(map[string]bool, len(args))
	for _, a := range args {
		given[a] = true
	}
	var names []string
	for _, j := range batch.Jobs() {
		if given[j.ID] || given[j.Name] {
			continue
		}
		names = append(names, j.Name+"\t"+j.Description)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
