// Package config provides configuration management for the famplot CLI.
//
// Values are layered with koanf: built-in defaults, then famplot.yaml,
// then FAMPLOT_ environment variables, then explicitly set flags.
package config

import (
	"log/slog"
	"math"

	"gonum.org/v1/plot/vg"

	"github.com/wgraj/famplot/internal/batch"
	"github.com/wgraj/famplot/internal/chart"
)

// FigureConfig holds the figure geometry.
type FigureConfig struct {
	// Width and Height are in inches.
	Width  float64 `koanf:"width" yaml:"width" json:"width"`
	Height float64 `koanf:"height" yaml:"height" json:"height"`
	// DPI is the raster output resolution.
	DPI int `koanf:"dpi" yaml:"dpi" json:"dpi"`
	// MarkerSize is the scatter marker area in pt².
	MarkerSize float64 `koanf:"marker_size" yaml:"marker_size" json:"marker_size"`
}

// Config holds all CLI configuration options.
type Config struct {
	DataDir          string       `koanf:"data_dir" yaml:"data_dir" json:"data_dir"`
	PlotsDir         string       `koanf:"plots_dir" yaml:"plots_dir" json:"plots_dir"`
	Database         string       `koanf:"database" yaml:"database,omitempty" json:"database,omitempty"`
	Formats          []string     `koanf:"formats" yaml:"formats" json:"formats"`
	Titles           bool         `koanf:"titles" yaml:"titles" json:"titles"`
	AverageRankLimit int          `koanf:"average_rank_limit" yaml:"average_rank_limit" json:"average_rank_limit"`
	Verbose          bool         `koanf:"verbose" yaml:"verbose" json:"verbose"`
	OutputFormat     string       `koanf:"output" yaml:"output" json:"output"`
	Figure           FigureConfig `koanf:"figure" yaml:"figure" json:"figure"`

	// ProjectRoot is the directory of the config file in use, or the
	// working directory when there is none.
	ProjectRoot string `koanf:"-" yaml:"-" json:"-"`
}

// Default configuration values.
const (
	DefaultDataDir          = ".."
	DefaultPlotsDir         = "../plots"
	DefaultTitles           = false
	DefaultAverageRankLimit = 1000
	DefaultOutput           = "auto" // Auto-detect: TTY=text, non-TTY=markdown
	DefaultFigureWidth      = 3.4
	DefaultFigureHeight     = 2.55
	DefaultFigureDPI        = 600
	DefaultMarkerSize       = 16
)

// DefaultFormats are the output formats written when none are configured.
var DefaultFormats = chart.DefaultFormats

// Style converts the figure settings into a chart style.
func (c *Config) Style() chart.Style {
	return chart.Style{
		Width:        vg.Length(c.Figure.Width) * vg.Inch,
		Height:       vg.Length(c.Figure.Height) * vg.Inch,
		DPI:          c.Figure.DPI,
		MarkerRadius: vg.Points(math.Sqrt(c.Figure.MarkerSize) / 2),
		Titles:       c.Titles,
	}
}

// BatchOptions returns the renderer options for this configuration.
func (c *Config) BatchOptions(logger *slog.Logger) batch.Options {
	return batch.Options{
		DataDir:          c.DataDir,
		PlotsDir:         c.PlotsDir,
		Database:         c.Database,
		Formats:          c.Formats,
		Style:            c.Style(),
		AverageRankLimit: c.AverageRankLimit,
		Logger:           logger,
	}
}
