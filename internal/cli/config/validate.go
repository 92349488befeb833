package config

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/wgraj/famplot/internal/chart"
)

var outputModes = []string{"auto", "text", "markdown", "json"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if c.PlotsDir == "" {
		return fmt.Errorf("plots_dir is required")
	}
	if len(c.Formats) == 0 {
		return fmt.Errorf("at least one output format is required (available: %s)", strings.Join(chart.Formats, ", "))
	}
	for _, f := range c.Formats {
		if !chart.IsSupported(f) {
			return fmt.Errorf("%w: %q (available: %s)", chart.ErrUnsupportedFormat, f, strings.Join(chart.Formats, ", "))
		}
	}
	if c.Figure.Width <= 0 || c.Figure.Height <= 0 {
		return fmt.Errorf("figure size must be positive, got %gx%g", c.Figure.Width, c.Figure.Height)
	}
	if c.Figure.DPI <= 0 {
		return fmt.Errorf("figure dpi must be positive, got %d", c.Figure.DPI)
	}
	if c.Figure.MarkerSize <= 0 {
		return fmt.Errorf("figure marker_size must be positive, got %g", c.Figure.MarkerSize)
	}
	if c.AverageRankLimit < 0 {
		return fmt.Errorf("average_rank_limit must not be negative, got %d", c.AverageRankLimit)
	}
	if !slices.Contains(outputModes, c.OutputFormat) {
		return fmt.Errorf("invalid output format %q (available: %s)", c.OutputFormat, strings.Join(outputModes, ", "))
	}
	return nil
}

// ValidateDirectories checks that the data directory exists.
func (c *Config) ValidateDirectories() error {
	info, err := os.Stat(c.DataDir)
	if err != nil {
		return fmt.Errorf("data directory does not exist: %s\nHint: use --data-dir to point at the CSV directory", c.DataDir)
	}
	if !info.IsDir() {
		return fmt.Errorf("data directory is not a directory: %s", c.DataDir)
	}
	return nil
}
