package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wgraj/famplot/internal/cli/config"
)

// ConfigField represents a configuration key.
type ConfigField struct {
	Name        string
	Type        string
	Default     string
	Description string
}

// configFields lists the famplot.yaml keys with their built-in defaults.
func configFields() []ConfigField {
	return []ConfigField{
		{Name: "data_dir", Type: "string", Default: config.DefaultDataDir, Description: "Directory holding the input CSV files"},
		{Name: "plots_dir", Type: "string", Default: config.DefaultPlotsDir, Description: "Directory the charts are written to (created if missing)"},
		{Name: "database", Type: "string", Description: "DuckDB file caching the loaded tables; empty keeps them in memory"},
		{Name: "formats", Type: "[]string", Default: strings.Join(config.DefaultFormats, ","), Description: "Output formats: tex, pdf, svg, eps, png, jpg, tif"},
		{Name: "titles", Type: "bool", Default: fmt.Sprint(config.DefaultTitles), Description: "Draw chart titles"},
		{Name: "average_rank_limit", Type: "int", Default: fmt.Sprint(config.DefaultAverageRankLimit), Description: "Ranks shown in the rank average chart; 0 shows all"},
		{Name: "verbose", Type: "bool", Default: "false", Description: "Debug logging"},
		{Name: "output", Type: "string", Default: config.DefaultOutput, Description: "Command output: auto, text, markdown, json"},
		{Name: "figure.width", Type: "float", Default: fmt.Sprint(config.DefaultFigureWidth), Description: "Figure width in inches"},
		{Name: "figure.height", Type: "float", Default: fmt.Sprint(config.DefaultFigureHeight), Description: "Figure height in inches"},
		{Name: "figure.dpi", Type: "int", Default: fmt.Sprint(config.DefaultFigureDPI), Description: "Raster output resolution"},
		{Name: "figure.marker_size", Type: "float", Default: fmt.Sprint(config.DefaultMarkerSize), Description: "Scatter marker area in pt²"},
	}
}

// envName returns the environment variable setting key.
func envName(key string) string {
	return config.EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "__"))
}

// generateConfigDocs generates the configuration reference page.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating configuration docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()
	w.Frontmatter("Configuration", "famplot configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph("famplot reads `famplot.yaml` (or `famplot.yml`) from the working directory or the nearest parent. " +
		"Relative paths in the file are resolved against the file's directory. Every key is optional.")

	headers := []string{"Key", "Type", "Default", "Environment", "Description"}
	var rows [][]string
	for _, f := range configFields() {
		def := f.Default
		if def == "" {
			def = "-"
		}
		rows = append(rows, []string{InlineCode(f.Name), f.Type, InlineCode(def), InlineCode(envName(f.Name)), f.Description})
	}
	w.Table(headers, rows)

	example, err := defaultConfigYAML()
	if err != nil {
		return err
	}
	w.Header(2, "Default Configuration")
	w.CodeBlock("yaml", example)

	w.Header(2, "Environment Variables in Values")
	w.Paragraph("Path values may reference environment variables with `${VAR}`:")
	w.CodeBlock("yaml", `data_dir: ${STATS_ROOT}/csv
plots_dir: ${STATS_ROOT}/plots`)

	filename := filepath.Join(outDir, "configuration.md")
	if err := os.WriteFile(filename, w.Bytes(), 0600); err != nil {
		return err
	}
	log.Printf("  Generated configuration.md")
	return nil
}

// defaultConfigYAML renders the built-in defaults as famplot.yaml.
func defaultConfigYAML() (string, error) {
	cfg := config.Config{
		DataDir:          config.DefaultDataDir,
		PlotsDir:         config.DefaultPlotsDir,
		Formats:          config.DefaultFormats,
		Titles:           config.DefaultTitles,
		AverageRankLimit: config.DefaultAverageRankLimit,
		OutputFormat:     config.DefaultOutput,
		Figure: config.FigureConfig{
			Width:      config.DefaultFigureWidth,
			Height:     config.DefaultFigureHeight,
			DPI:        config.DefaultFigureDPI,
			MarkerSize: config.DefaultMarkerSize,
		},
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode default configuration: %w", err)
	}
	return string(data), nil
}
