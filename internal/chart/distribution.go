package chart

import (
	"fmt"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/wgraj/famplot/internal/stats"
)

// ViolinWidth is the violin width in data units.
const ViolinWidth = 0.5

// Distribution overlays violins and box plots of the groups at x
// positions firstRank, firstRank+1, ... Boxes are unfilled, show no
// fliers and draw a black median line.
func (s Style) Distribution(l Labels, groups []stats.RankGroup, firstRank int) (*Figure, error) {
	p := s.newPlot(l)

	var ticks []plot.Tick
	var points int
	for i, g := range groups {
		loc := float64(firstRank + i)
		ticks = append(ticks, plot.Tick{Value: loc, Label: strconv.Itoa(firstRank + i)})
		if len(g.Values) == 0 {
			continue
		}
		points += len(g.Values)

		box, err := newRankBox(s.Width*ViolinWidth/vg.Length(len(groups)), loc, g.Values)
		if err != nil {
			return nil, fmt.Errorf("failed to create box plot for rank %d: %w", firstRank+i, err)
		}
		box.FillColor = nil
		box.Outside = nil
		box.BoxStyle = edgeStyle()
		box.WhiskerStyle = edgeStyle()
		box.MedianStyle = edgeStyle()
		box.MedianStyle.Width = vg.Points(1)

		p.Add(NewViolin(loc, g.Values, ViolinWidth), box)
	}

	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	if len(groups) > 0 {
		p.X.Min = float64(firstRank) - 0.5
		p.X.Max = float64(firstRank+len(groups)-1) + 0.5
	}

	return &Figure{Plot: p, Points: points, Groups: groups}, nil
}

// rankBox is a box plot whose width is ViolinWidth in x data units.
type rankBox struct {
	*plotter.BoxPlot
}

// newRankBox creates a rankBox at loc. w is the initial width used for
// glyph padding until the box is drawn.
func newRankBox(w vg.Length, loc float64, values []float64) (*rankBox, error) {
	b, err := plotter.NewBoxPlot(w, loc, plotter.Values(values))
	if err != nil {
		return nil, err
	}
	return &rankBox{BoxPlot: b}, nil
}

// Plot implements plot.Plotter.
func (b *rankBox) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, _ := plt.Transforms(&c)
	b.setWidth(trX(b.Location+ViolinWidth/2) - trX(b.Location-ViolinWidth/2))
	b.BoxPlot.Plot(c, plt)
}

func (b *rankBox) setWidth(w vg.Length) {
	b.Width = w
	b.CapWidth = 3 * w / 4
}
