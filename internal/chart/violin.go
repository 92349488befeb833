package chart

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/wgraj/famplot/internal/stats"
)

// Violin draws the mirrored kernel density outline of one distribution.
// It shows no mean, median or extrema marks.
type Violin struct {
	Location float64
	// Outline holds the half widths, in data units, along the value axis.
	Outline   []stats.DensityPoint
	FillColor color.Color
	Hatch     Hatch
	LineStyle draw.LineStyle
}

// NewViolin estimates the density of values and scales it to width data
// units at its widest point.
func NewViolin(location float64, values []float64, width float64) *Violin {
	outline := stats.ScaleDensity(stats.KDE(values, stats.DensityPoints), width/2)
	return &Violin{
		Location:  location,
		Outline:   outline,
		FillColor: Gray,
		Hatch:     CrossHatch(),
		LineStyle: edgeStyle(),
	}
}

// Plot implements plot.Plotter.
func (v *Violin) Plot(c draw.Canvas, plt *plot.Plot) {
	if len(v.Outline) == 0 {
		return
	}
	trX, trY := plt.Transforms(&c)

	if len(v.Outline) == 1 {
		o := v.Outline[0]
		y := trY(o.Value)
		c.StrokeLine2(v.LineStyle, trX(v.Location-o.Density), y, trX(v.Location+o.Density), y)
		return
	}

	pts := make([]vg.Point, 0, 2*len(v.Outline))
	for _, o := range v.Outline {
		pts = append(pts, vg.Point{X: trX(v.Location + o.Density), Y: trY(o.Value)})
	}
	for i := len(v.Outline) - 1; i >= 0; i-- {
		o := v.Outline[i]
		pts = append(pts, vg.Point{X: trX(v.Location - o.Density), Y: trY(o.Value)})
	}

	if v.FillColor != nil {
		c.FillPolygon(v.FillColor, c.ClipPolygonXY(pts))
	}
	v.Hatch.Fill(c, pts)
	c.StrokeLines(v.LineStyle, c.ClipLinesXY(append(pts, pts[0]))...)
}

// DataRange implements plot.DataRanger.
func (v *Violin) DataRange() (xmin, xmax, ymin, ymax float64) {
	if len(v.Outline) == 0 {
		return v.Location, v.Location, 0, 0
	}
	var half float64
	ymin, ymax = v.Outline[0].Value, v.Outline[0].Value
	for _, o := range v.Outline {
		half = max(half, o.Density)
		ymin = min(ymin, o.Value)
		ymax = max(ymax, o.Value)
	}
	return v.Location - half, v.Location + half, ymin, ymax
}
