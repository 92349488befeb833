package chart

import (
	"fmt"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/wgraj/famplot/internal/stats"
)

// ECDF plots cumulative steps as a post-step line with a log x axis.
func (s Style) ECDF(l Labels, steps []stats.Step) (*Figure, error) {
	p := s.newPlot(l)

	pts := make(plotter.XYs, 0, len(steps)+1)
	var xs []float64
	dropped := 0
	for _, st := range steps {
		if st.X <= 0 {
			dropped++
			continue
		}
		if len(pts) == 0 {
			pts = append(pts, plotter.XY{X: st.X, Y: 0})
		}
		pts = append(pts, plotter.XY{X: st.X, Y: st.P})
		xs = append(xs, st.X)
	}

	if len(pts) > 0 {
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("failed to create ecdf line: %w", err)
		}
		line.StepStyle = plotter.PostStep
		line.LineStyle.Color = Black
		line.LineStyle.Width = vg.Points(1)
		p.Add(line)
		setLogAxis(&p.X, xs)
	}
	p.Y.Min, p.Y.Max = 0, 1

	return &Figure{Plot: p, Points: len(xs), Dropped: dropped, XYs: pts}, nil
}
