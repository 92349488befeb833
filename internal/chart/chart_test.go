package chart

import (
	"bytes"
	"image"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/recorder"

	"github.com/wgraj/famplot/internal/stats"
)

var testLabels = Labels{Title: "Title", X: "X Label", Y: "Y Label"}

func TestLogScatter(t *testing.T) {
	st := DefaultStyle()
	pts := plotter.XYs{{X: 1, Y: 100}, {X: 2, Y: 10}}

	fig, err := st.LogScatter(testLabels, pts)
	require.NoError(t, err)

	assert.Equal(t, 2, fig.Points)
	assert.Equal(t, 0, fig.Dropped)
	assert.Equal(t, pts, fig.XYs)
	assert.IsType(t, plot.LogScale{}, fig.Plot.X.Scale)
	assert.IsType(t, plot.LogScale{}, fig.Plot.Y.Scale)
	assert.Less(t, fig.Plot.X.Min, 1.0)
	assert.Greater(t, fig.Plot.X.Max, 2.0)
	assert.Less(t, fig.Plot.Y.Min, 10.0)
	assert.Greater(t, fig.Plot.Y.Max, 100.0)
	assert.Equal(t, "X Label", fig.Plot.X.Label.Text)
	assert.Empty(t, fig.Plot.Title.Text, "titles are off by default")
}

func TestLogScatter_DropsNonPositive(t *testing.T) {
	fig, err := DefaultStyle().LogScatter(testLabels, plotter.XYs{{X: 0, Y: 1}, {X: 1, Y: -1}, {X: 3, Y: 3}})
	require.NoError(t, err)

	assert.Equal(t, 1, fig.Points)
	assert.Equal(t, 2, fig.Dropped)
	assert.Equal(t, plotter.XYs{{X: 3, Y: 3}}, fig.XYs)
}

func TestLogScatter_Empty(t *testing.T) {
	st := DefaultStyle()
	fig, err := st.LogScatter(testLabels, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, fig.Points)
	require.NoError(t, st.WriteTo(&bytes.Buffer{}, fig.Plot, FormatSVG))
}

func TestTitles(t *testing.T) {
	st := DefaultStyle()
	st.Titles = true

	fig, err := st.LogScatter(testLabels, plotter.XYs{{X: 1, Y: 1}})
	require.NoError(t, err)
	assert.Equal(t, "Title", fig.Plot.Title.Text)
}

func TestLogRange(t *testing.T) {
	lo, hi := logRange(1, 100)
	assert.InDelta(t, -0.1, math.Log10(lo), 1e-9)
	assert.InDelta(t, 2.1, math.Log10(hi), 1e-9)

	lo, hi = logRange(10, 10)
	assert.InDelta(t, 0.5, math.Log10(lo), 1e-9)
	assert.InDelta(t, 1.5, math.Log10(hi), 1e-9)
}

func TestHistogram(t *testing.T) {
	values := []float64{0.5, 0.5, 0.5, 0.5, 0.5}
	fig, err := DefaultStyle().Histogram(testLabels, stats.FixedBins(values, 0, 1, 20))
	require.NoError(t, err)

	require.Len(t, fig.Bins, 20)
	assert.Equal(t, 5, fig.Points)

	var nonZero int
	for _, b := range fig.Bins {
		if b.Count > 0 {
			nonZero++
			assert.Equal(t, 5.0, b.Count)
			assert.True(t, b.Min <= 0.5 && 0.5 < b.Max)
		}
	}
	assert.Equal(t, 1, nonZero)
	assert.Equal(t, 0.0, fig.Plot.X.Min)
	assert.Equal(t, 1.0, fig.Plot.X.Max)
}

func TestHistogram_AllZeroBins(t *testing.T) {
	st := DefaultStyle()
	bins := stats.DataBins(nil, 16)
	fig, err := st.Histogram(testLabels, bins)
	require.NoError(t, err)

	require.Len(t, fig.Bins, 16)
	assert.Equal(t, 0, fig.Points)
	require.NoError(t, st.WriteTo(&bytes.Buffer{}, fig.Plot, FormatSVG))
}

func TestDistribution(t *testing.T) {
	groups := []stats.RankGroup{
		{Position: 1, Values: []float64{0.4, 0.3, 0.35, 0.9}},
		{Position: 2, Values: []float64{0.2, 0.25}},
		{Position: 3, Values: []float64{0.1}},
	}
	fig, err := DefaultStyle().Distribution(testLabels, groups, 2)
	require.NoError(t, err)

	assert.Equal(t, 7, fig.Points)
	assert.Equal(t, groups, fig.Groups)
	assert.Equal(t, 1.5, fig.Plot.X.Min)
	assert.Equal(t, 4.5, fig.Plot.X.Max)

	ticks := fig.Plot.X.Tick.Marker.Ticks(fig.Plot.X.Min, fig.Plot.X.Max)
	require.Len(t, ticks, 3)
	assert.Equal(t, "2", ticks[0].Label)
	assert.Equal(t, "4", ticks[2].Label)

	require.NoError(t, DefaultStyle().WriteTo(&bytes.Buffer{}, fig.Plot, FormatSVG))
}

func TestDistribution_NoGroups(t *testing.T) {
	st := DefaultStyle()
	fig, err := st.Distribution(testLabels, nil, 2)
	require.NoError(t, err)

	assert.Equal(t, 0, fig.Points)
	require.NoError(t, st.WriteTo(&bytes.Buffer{}, fig.Plot, FormatSVG))
}

func TestRankBox_WidthInDataUnits(t *testing.T) {
	tests := []struct {
		name        string
		canvasWidth vg.Length
		ranks       float64
		want        vg.Length
	}{
		{name: "four ranks", canvasWidth: 400, ranks: 4, want: 50},
		{name: "wider canvas", canvasWidth: 800, ranks: 4, want: 100},
		{name: "two ranks", canvasWidth: 400, ranks: 2, want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := plot.New()
			p.X.Min, p.X.Max = 0, tt.ranks
			p.Y.Min, p.Y.Max = 0, 1

			b, err := newRankBox(1, 1, []float64{0.1, 0.2, 0.3})
			require.NoError(t, err)

			c := draw.Canvas{
				Canvas:    &recorder.Canvas{},
				Rectangle: vg.Rectangle{Max: vg.Point{X: tt.canvasWidth, Y: 300}},
			}
			b.Plot(c, p)

			assert.InDelta(t, float64(tt.want), float64(b.Width), 1e-9)
			assert.InDelta(t, float64(tt.want)*3/4, float64(b.CapWidth), 1e-9)
		})
	}
}

func TestViolin_DataRange(t *testing.T) {
	v := NewViolin(3, []float64{0.1, 0.2, 0.4}, ViolinWidth)
	xmin, xmax, ymin, ymax := v.DataRange()

	assert.InDelta(t, 2.75, xmin, 1e-12)
	assert.InDelta(t, 3.25, xmax, 1e-12)
	assert.Equal(t, 0.1, ymin)
	assert.Equal(t, 0.4, ymax)
}

func TestECDF(t *testing.T) {
	steps := stats.WeightedECDF([]stats.Weighted{{Value: 1, Weight: 100}, {Value: 2, Weight: 10}})
	fig, err := DefaultStyle().ECDF(testLabels, steps)
	require.NoError(t, err)

	assert.Equal(t, 2, fig.Points)
	require.Len(t, fig.XYs, 3)
	assert.Equal(t, plotter.XY{X: 1, Y: 0}, fig.XYs[0])
	assert.Equal(t, plotter.XY{X: 2, Y: 1}, fig.XYs[2])
	assert.IsType(t, plot.LogScale{}, fig.Plot.X.Scale)
	assert.Equal(t, 1.0, fig.Plot.Y.Max)
}

func TestECDF_NoSteps(t *testing.T) {
	st := DefaultStyle()
	fig, err := st.ECDF(testLabels, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, fig.Points)
	assert.Empty(t, fig.XYs)
	require.NoError(t, st.WriteTo(&bytes.Buffer{}, fig.Plot, FormatSVG))
}

func TestHatchFill(t *testing.T) {
	rec := &recorder.Canvas{}
	c := draw.Canvas{Canvas: rec}
	h := Hatch{Forward: true, Spacing: 1, Line: draw.LineStyle{Color: Black, Width: 1}}

	h.Fill(c, []vg.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}})

	var strokes int
	for _, a := range rec.Actions {
		if _, ok := a.(*recorder.Stroke); ok {
			strokes++
		}
	}
	assert.InDelta(t, 20, strokes, 1)
}

func TestHatchFill_Degenerate(t *testing.T) {
	rec := &recorder.Canvas{}
	c := draw.Canvas{Canvas: rec}

	Hatch{Forward: true}.Fill(c, []vg.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}})
	SingleHatch().Fill(c, []vg.Point{{X: 0, Y: 0}, {X: 1, Y: 1}})
	assert.Empty(t, rec.Actions)
}

func TestSave(t *testing.T) {
	st := DefaultStyle()
	fig, err := st.LogScatter(testLabels, plotter.XYs{{X: 1, Y: 100}, {X: 2, Y: 10}})
	require.NoError(t, err)

	base := filepath.Join(t.TempDir(), "plots", "2_1_1")
	paths, err := st.Save(fig.Plot, base, Formats)
	require.NoError(t, err)
	require.Len(t, paths, len(Formats))

	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size(), p)
	}

	f, err := os.Open(base + ".png")
	require.NoError(t, err)
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	require.NoError(t, err)
	assert.InDelta(t, 2040, cfg.Width, 1)
	assert.InDelta(t, 1530, cfg.Height, 1)
}

func TestSave_UnsupportedFormat(t *testing.T) {
	st := DefaultStyle()
	fig, err := st.LogScatter(testLabels, plotter.XYs{{X: 1, Y: 1}})
	require.NoError(t, err)

	_, err = st.Save(fig.Plot, filepath.Join(t.TempDir(), "x"), []string{"gif"})
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.False(t, IsSupported("gif"))
	assert.True(t, IsSupported(FormatTeX))
}

func TestWriteTo_Deterministic(t *testing.T) {
	st := DefaultStyle()
	render := func() []byte {
		fig, err := st.Histogram(testLabels, stats.FixedBins([]float64{0.1, 0.2, 0.2, 0.7}, 0, 1, 20))
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, st.WriteTo(&buf, fig.Plot, FormatTeX))
		return buf.Bytes()
	}

	assert.Equal(t, render(), render())
}
