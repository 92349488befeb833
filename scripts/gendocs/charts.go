package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/wgraj/famplot/internal/batch"
)

// generateChartDocs generates the chart catalog page.
func generateChartDocs(outDir string) error {
	log.Printf("Generating chart docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Charts", "Charts rendered by famplot")
	w.GeneratedMarker()

	w.Header(1, "Charts")
	w.Paragraph("Each chart reads one CSV file from `data_dir` and is written to `plots_dir/<ID>.<format>` " +
		"for every configured format. Render a subset with `famplot render <ID or name>...`.")

	jobs := batch.Jobs()
	var rows [][]string
	for _, j := range jobs {
		rows = append(rows, []string{InlineCode(j.ID), InlineCode(j.Name), InlineCode(j.Table.File), j.Description})
	}
	w.Table([]string{"ID", "Name", "Input", "Description"}, rows)

	for _, j := range jobs {
		w.Header(2, fmt.Sprintf("%s %s", j.ID, j.Name))
		w.Paragraph(j.Description + ".")
		w.BulletList([]string{
			"Input: " + InlineCode(j.Table.File) + " (columns " + InlineCode(fmt.Sprint(j.Table.Columns)) + ")",
			"Title: " + j.Labels.Title,
			"X axis: " + j.Labels.X,
			"Y axis: " + j.Labels.Y,
		})
	}

	filename := filepath.Join(outDir, "charts.md")
	if err := os.WriteFile(filename, w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated charts.md")
	return nil
}
