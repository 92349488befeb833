package chart

import (
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"

	"github.com/wgraj/famplot/internal/stats"
)

// logPadding is the share of the data's decades added on each side of a
// log axis.
const logPadding = 0.05

// LogScatter plots pts as filled black markers on log-log axes. Points
// with a non-positive coordinate are dropped.
func (s Style) LogScatter(l Labels, pts plotter.XYs) (*Figure, error) {
	p := s.newPlot(l)

	kept := make(plotter.XYs, 0, len(pts))
	for _, pt := range pts {
		if pt.X > 0 && pt.Y > 0 {
			kept = append(kept, pt)
		}
	}

	sc, err := plotter.NewScatter(kept)
	if err != nil {
		return nil, fmt.Errorf("failed to create scatter: %w", err)
	}
	sc.GlyphStyle = draw.GlyphStyle{Color: Black, Radius: s.MarkerRadius, Shape: draw.CircleGlyph{}}
	p.Add(sc)

	if len(kept) > 0 {
		xs := make([]float64, len(kept))
		ys := make([]float64, len(kept))
		for i, pt := range kept {
			xs[i], ys[i] = pt.X, pt.Y
		}
		setLogAxis(&p.X, xs)
		setLogAxis(&p.Y, ys)
	}

	return &Figure{Plot: p, Points: len(kept), Dropped: len(pts) - len(kept), XYs: kept}, nil
}

// RankAverages plots the per-rank means against rank on log-log axes.
func (s Style) RankAverages(l Labels, avgs []stats.RankAverage) (*Figure, error) {
	pts := make(plotter.XYs, len(avgs))
	for i, a := range avgs {
		pts[i] = plotter.XY{X: float64(a.Rank), Y: a.Mean}
	}
	return s.LogScatter(l, pts)
}

// setLogAxis switches a to a log scale spanning the positive values.
func setLogAxis(a *plot.Axis, values []float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if v > 0 {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		return
	}
	a.Scale = plot.LogScale{}
	a.Tick.Marker = plot.LogTicks{Prec: -1}
	a.Min, a.Max = logRange(lo, hi)
}

// logRange pads [lo, hi] by logPadding of its width in decades. A single
// value is given one decade of room.
func logRange(lo, hi float64) (float64, float64) {
	llo, lhi := math.Log10(lo), math.Log10(hi)
	span := lhi - llo
	if span == 0 {
		span = 1 / (2 * logPadding)
	}
	pad := logPadding * span
	return math.Pow(10, llo-pad), math.Pow(10, lhi+pad)
}
