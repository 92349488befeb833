// Package chart builds the famplot figures with gonum/plot and writes
// them to vector and raster files.
package chart

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/wgraj/famplot/internal/stats"
)

// Grayscale palette.
var (
	Black = color.Gray{Y: 0}
	Gray  = color.Gray{Y: 128}
	White = color.Gray{Y: 255}
)

// Style holds the rendering options shared by every figure.
type Style struct {
	Width  vg.Length
	Height vg.Length
	// DPI applies to raster formats only.
	DPI int
	// MarkerRadius is the scatter glyph radius.
	MarkerRadius vg.Length
	// Titles enables figure titles.
	Titles bool
}

// DefaultStyle returns the journal figure style: 3.4in x 2.55in at 600dpi
// with 16pt² markers.
func DefaultStyle() Style {
	return Style{
		Width:        3.4 * vg.Inch,
		Height:       2.55 * vg.Inch,
		DPI:          600,
		MarkerRadius: vg.Points(2),
	}
}

// Labels are the literal title and axis labels of a figure.
type Labels struct {
	Title string
	X     string
	Y     string
}

// Figure is a built plot with the number of data points it shows.
type Figure struct {
	Plot *plot.Plot
	// Points is the number of plotted observations.
	Points int
	// Dropped counts observations that could not be placed, such as
	// non-positive values on a log axis.
	Dropped int
	// XYs are the plotted coordinates of point and line figures.
	XYs plotter.XYs
	// Bins are the plotted bars of histogram figures.
	Bins []stats.Bin
	// Groups are the distributions of violin figures.
	Groups []stats.RankGroup
}

func (s Style) newPlot(l Labels) *plot.Plot {
	p := plot.New()
	serif := font.Font{Typeface: "Liberation", Variant: "Serif"}

	if s.Titles {
		p.Title.Text = l.Title
	}
	p.Title.TextStyle.Font = serif
	p.Title.TextStyle.Font.Size = vg.Points(10)

	for _, a := range []*plot.Axis{&p.X, &p.Y} {
		a.Label.TextStyle.Font = serif
		a.Label.TextStyle.Font.Size = vg.Points(8)
		a.Tick.Label.Font = serif
		a.Tick.Label.Font.Size = vg.Points(7)
		a.LineStyle.Color = Black
		a.Tick.LineStyle.Color = Black
	}
	p.X.Label.Text = l.X
	p.Y.Label.Text = l.Y
	return p
}

func edgeStyle() draw.LineStyle {
	return draw.LineStyle{Color: Black, Width: vg.Points(0.5)}
}
