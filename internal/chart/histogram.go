package chart

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/wgraj/famplot/internal/stats"
)

// Histogram plots precomputed bins as gray bars with black edges and a
// "////" hatch.
func (s Style) Histogram(l Labels, bins []stats.Bin) (*Figure, error) {
	p := s.newPlot(l)

	hbins := make([]plotter.HistogramBin, len(bins))
	var total float64
	for i, b := range bins {
		hbins[i] = plotter.HistogramBin{Min: b.Min, Max: b.Max, Weight: b.Count}
		total += b.Count
	}
	h := &plotter.Histogram{
		Bins:      hbins,
		FillColor: Gray,
		LineStyle: edgeStyle(),
	}
	if len(bins) > 0 {
		h.Width = bins[0].Max - bins[0].Min
	}
	p.Add(h, &hatchedBins{bins: bins, hatch: SingleHatch()})

	if len(bins) > 0 {
		p.X.Min = bins[0].Min
		p.X.Max = bins[len(bins)-1].Max
	}
	p.Y.Min = 0

	return &Figure{Plot: p, Points: int(total), Bins: bins}, nil
}

// hatchedBins overlays a hatch pattern on non-empty histogram bars.
type hatchedBins struct {
	bins  []stats.Bin
	hatch Hatch
}

// Plot implements plot.Plotter.
func (h *hatchedBins) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for _, b := range h.bins {
		if b.Count <= 0 {
			continue
		}
		x0, x1 := trX(b.Min), trX(b.Max)
		y0, y1 := trY(0), trY(b.Count)
		h.hatch.Fill(c, []vg.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}})
	}
}
